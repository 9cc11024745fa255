package flappy

import (
	"strconv"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Sprite runes.
const (
	PipeChar       = '█'
	PipeLipTop     = '▀' // Lip under the top pipe, drawn inverted
	PipeLipBottom  = '▄' // Lip over the bottom pipe
	GroundTexture  = '▚'
	CloudChar      = '░'
	BirdBodyChar   = '█'
	BirdRisingChar = '◥'
	BirdLevelChar  = '►'
	BirdDivingChar = '◢'
)

const (
	scoreY      = 50.0 // World y of the score text
	cloudPeriod = 100.0
	cloudWidth  = 48.0
)

// Render draws the world onto dst, scaled to its size. It reads state
// only. Layers go back to front: sky, pipes, ground, bird, score, and the
// pause overlay last.
func (g *Game) Render(dst *core.Screen) {
	vp := core.NewViewport(g.cfg.World.Width, g.cfg.World.Height, dst.Width(), dst.Height())

	dst.Fill(core.Color(g.theme.Background))
	g.drawClouds(dst, vp)
	for _, p := range g.pipes.Pipes() {
		g.drawPipe(dst, vp, p)
	}
	g.drawGround(dst, vp)
	g.drawBird(dst, vp)
	g.drawScore(dst, vp)

	if g.phase == PhasePaused {
		dst.Dim()
		label := " PAUSED "
		x := (dst.Width() - len(label)) / 2
		dst.DrawStyledText(x, dst.Height()/2, label, core.Cell{
			Fg:   core.ColorBrightWhite,
			Bg:   core.ColorBlack,
			Bold: true,
		})
	}
}

// drawClouds draws the background layer, repeating every cloudPeriod
// units and shifted by the background scroll offset.
func (g *Game) drawClouds(dst *core.Screen, vp core.Viewport) {
	cloud := core.Cell{Rune: CloudChar, Fg: core.ColorWhite, Bg: core.Color(g.theme.Background)}
	n := int(g.cfg.World.Width/cloudPeriod) + 1
	for i := 0; i <= n; i++ {
		x := g.scroll.Background + float64(i)*cloudPeriod
		y := 60 + float64(i%3)*70
		dst.PaintRect(vp.Rect(core.Box{X: x, Y: y, W: cloudWidth, H: 1}), cloud)
	}
}

// drawPipe draws both halves. The top half hangs from the ceiling with its
// lip at the bottom; the bottom half stands on the ground with its lip on top.
func (g *Game) drawPipe(dst *core.Screen, vp core.Viewport, p Pipe) {
	color := core.Color(g.theme.Pipe)
	body := core.Cell{Rune: PipeChar, Fg: color}
	gapBottom := p.TopHeight + g.cfg.Pipes.Gap
	w := g.cfg.Pipes.Width

	top := vp.Rect(core.Box{X: p.X, Y: 0, W: w, H: p.TopHeight})
	bottom := vp.Rect(core.Box{X: p.X, Y: gapBottom, W: w, H: g.cfg.GroundLine() - gapBottom})

	// The gap is never narrower than one row on screen
	if top.Bottom() > vp.Row(gapBottom) {
		top.H = vp.Row(gapBottom) - top.Y
	}

	dst.PaintRect(top, body)
	dst.PaintRect(bottom, body)

	if top.H > 0 {
		lip := core.NewRect(top.X-1, top.Bottom()-1, top.W+2, 1)
		dst.PaintRect(lip, core.Cell{Rune: PipeLipTop, Fg: color, Bg: core.Color(g.theme.Background)})
	}
	if bottom.H > 0 {
		lip := core.NewRect(bottom.X-1, bottom.Y, bottom.W+2, 1)
		dst.PaintRect(lip, core.Cell{Rune: PipeLipBottom, Fg: color, Bg: core.Color(g.theme.Background)})
	}
}

// drawGround fills the strip below the ground line. Its top row carries
// a texture that scrolls with the ground offset.
func (g *Game) drawGround(dst *core.Screen, vp core.Viewport) {
	groundColor := core.Color(g.theme.Ground)
	top := vp.Row(g.cfg.GroundLine())
	dst.PaintRect(core.NewRect(0, top, dst.Width(), dst.Height()-top), core.Cell{Rune: ' ', Bg: groundColor})

	tile := g.cfg.Scroll.GroundTile
	for col := 0; col < dst.Width(); col++ {
		phase := vp.X(col) - g.scroll.Ground
		// Two stripes per tile
		if int(phase/(tile/2))%2 == 0 {
			dst.SetCell(col, top, core.Cell{Rune: GroundTexture, Fg: core.ColorBlack, Bg: groundColor, Faint: true})
		}
	}
}

// drawBird draws the body with a head glyph chosen by tilt.
func (g *Game) drawBird(dst *core.Screen, vp core.Viewport) {
	color := core.Color(g.theme.Bird)
	r := vp.Rect(g.bird.Box())
	dst.PaintRect(r, core.Cell{Rune: BirdBodyChar, Fg: color})

	head := core.Cell{Rune: birdGlyph(g.bird.Rotation), Fg: color, Bg: core.ColorBlack, Bold: true}
	dst.SetCell(r.Right()-1, r.Y+(r.H-1)/2, head)
}

// birdGlyph picks the head glyph for a tilt in degrees.
func birdGlyph(rotation float64) rune {
	switch {
	case rotation < -10:
		return BirdRisingChar
	case rotation > 30:
		return BirdDivingChar
	default:
		return BirdLevelChar
	}
}

// drawScore draws the score near the top on a dark band so it stays
// readable against any theme.
func (g *Game) drawScore(dst *core.Screen, vp core.Viewport) {
	text := " " + strconv.Itoa(g.score) + " "
	x := (dst.Width() - len(text)) / 2
	dst.DrawStyledText(x, vp.Row(scoreY), text, core.Cell{
		Fg:   core.ColorBrightWhite,
		Bg:   core.ColorBlack,
		Bold: true,
	})
}
