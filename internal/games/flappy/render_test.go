package flappy

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

func renderedGame(t *testing.T) (*Game, *core.Screen) {
	t.Helper()
	g := New(config.DefaultFlappyConfig())
	if _, err := g.Start("water", 1); err != nil {
		t.Fatal(err)
	}
	return g, core.NewScreen(80, 24)
}

func TestRenderGroundAndScore(t *testing.T) {
	g, screen := renderedGame(t)
	g.score = 12

	g.Render(screen)

	// Ground line 500 of 600 maps to row 20 of 24
	for _, y := range []int{21, 22, 23} {
		if c := screen.GetCell(0, y); c.Bg != "#deb887" {
			t.Errorf("row %d background = %q, expected ground color", y, c.Bg)
		}
	}
	if c := screen.GetCell(0, 10); c.Bg != "#70c5ce" {
		t.Errorf("sky background = %q, expected theme background", c.Bg)
	}
	if !strings.Contains(screen.Row(2), " 12 ") {
		t.Errorf("score row = %q, expected to contain 12", screen.Row(2))
	}
}

func TestRenderPipeInverted(t *testing.T) {
	g, screen := renderedGame(t)
	// Top pipe covers rows 0..7, gap bottom at world 340 is row 13
	g.pipes.pipes = []Pipe{{X: 200, TopHeight: 190}}

	g.Render(screen)

	tests := []struct {
		y    int
		want rune
	}{
		{0, PipeChar},
		{7, PipeLipTop},
		{10, ' '},
		{13, PipeLipBottom},
		{16, PipeChar},
	}
	for _, tc := range tests {
		if got := screen.Get(45, tc.y); got != tc.want {
			t.Errorf("cell (45,%d) = %q, expected %q", tc.y, got, tc.want)
		}
	}
}

func TestRenderBird(t *testing.T) {
	g, screen := renderedGame(t)

	g.Render(screen)

	// Bird box 100..140 x 300..330 covers rows 12..13
	row := screen.Row(12)
	if !strings.ContainsRune(row, BirdLevelChar) {
		t.Errorf("bird head missing from row 12: %q", row)
	}
	if c := screen.GetCell(20, 12); c.Rune != BirdBodyChar || c.Fg != "#f7d51d" {
		t.Errorf("bird body cell = %+v", c)
	}
}

func TestRenderPaused(t *testing.T) {
	g, screen := renderedGame(t)
	g.TogglePause()

	g.Render(screen)

	if !screen.GetCell(0, 0).Faint || !screen.GetCell(79, 23).Faint {
		t.Error("paused frame should be dimmed")
	}
	row := screen.Row(12)
	if !strings.Contains(row, "PAUSED") {
		t.Fatalf("paused label missing: %q", row)
	}
	x := strings.Index(row, "PAUSED")
	if screen.GetCell(x, 12).Faint {
		t.Error("paused label should not be dimmed")
	}
}

func TestRenderDoesNotMutate(t *testing.T) {
	g, screen := renderedGame(t)
	for i := 0; i < 30; i++ {
		step(g)
	}

	bird, scroll, ticks := g.Bird(), g.Scroll(), g.Ticks()
	pipes := append([]Pipe(nil), g.Pipes()...)

	g.Render(screen)
	g.Render(screen)

	if g.Bird() != bird || g.Scroll() != scroll || g.Ticks() != ticks {
		t.Error("Render changed the game state")
	}
	for i, p := range g.Pipes() {
		if p != pipes[i] {
			t.Errorf("Render changed pipe %d", i)
		}
	}
}

func TestRenderOnTinyScreen(t *testing.T) {
	g := New(config.DefaultFlappyConfig())
	g.Start("night", 1)
	for i := 0; i < 10; i++ {
		step(g)
	}

	g.Render(core.NewScreen(1, 1)) // must not panic
	g.Render(core.NewScreen(0, 0))
}

func TestBirdGlyph(t *testing.T) {
	tests := []struct {
		rotation float64
		want     rune
	}{
		{-25, BirdRisingChar},
		{0, BirdLevelChar},
		{30, BirdLevelChar},
		{90, BirdDivingChar},
	}

	for _, tc := range tests {
		if got := birdGlyph(tc.rotation); got != tc.want {
			t.Errorf("birdGlyph(%v) = %q, expected %q", tc.rotation, got, tc.want)
		}
	}
}
