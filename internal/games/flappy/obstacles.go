package flappy

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Pipe is a top and bottom barrier with a gap between them.
type Pipe struct {
	X         float64 // Left edge, decreases every step
	TopHeight float64 // Height of the top barrier; the gap starts here
	Scored    bool    // Whether the bird has already passed this pipe
}

// PipeManager handles spawning, movement, collision and removal of pipes.
type PipeManager struct {
	pipes      []Pipe
	rng        *rand.Rand
	cfg        config.Pipes
	worldW     float64
	groundLine float64
}

// NewPipeManager creates a pipe manager with the given RNG seed.
func NewPipeManager(seed int64, cfg config.FlappyConfig) *PipeManager {
	pm := &PipeManager{
		pipes:      make([]Pipe, 0, 4),
		cfg:        cfg.Pipes,
		worldW:     cfg.World.Width,
		groundLine: cfg.GroundLine(),
	}
	pm.Reset(seed)
	return pm
}

// Reset clears all pipes and reseeds the RNG.
func (pm *PipeManager) Reset(seed int64) {
	pm.pipes = pm.pipes[:0]
	pm.rng = rand.New(rand.NewSource(seed))
}

// TopHeightRange returns the inclusive bounds for a new pipe's top height.
// The gap plus the margin above and below always fits over the ground line.
func (pm *PipeManager) TopHeightRange() (lo, hi int) {
	lo = pm.cfg.MinMargin
	hi = int(math.Floor(pm.groundLine-pm.cfg.Gap)) - pm.cfg.MinMargin
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

// ShouldSpawn reports whether the last pipe is far enough from the right edge.
func (pm *PipeManager) ShouldSpawn() bool {
	if len(pm.pipes) == 0 {
		return true
	}
	return pm.worldW-pm.pipes[len(pm.pipes)-1].X > pm.cfg.Spacing
}

// Spawn adds a pipe at the right edge with a random gap position.
func (pm *PipeManager) Spawn() Pipe {
	lo, hi := pm.TopHeightRange()
	p := Pipe{
		X:         pm.worldW,
		TopHeight: float64(lo + pm.rng.Intn(hi-lo+1)),
	}
	pm.pipes = append(pm.pipes, p)
	return p
}

// Update runs one step for the obstacles: spawn if due, move every pipe
// left, test the bird against each pipe and count pipes passed.
// On a hit it stops at once and returns hit=true; scored only counts pipes
// evaluated before the hit. Off-screen pipes are dropped afterwards.
func (pm *PipeManager) Update(bird core.Box) (scored int, hit bool) {
	if pm.ShouldSpawn() {
		pm.Spawn()
	}

	for i := range pm.pipes {
		p := &pm.pipes[i]
		p.X -= pm.cfg.Speed

		if pm.Collides(bird, *p) {
			return scored, true
		}

		if !p.Scored && bird.X > p.X+pm.cfg.Width {
			p.Scored = true
			scored++
		}
	}

	pm.removeOffscreen()
	return scored, false
}

// removeOffscreen drops pipes from the front once their right edge is past
// the left edge. Pipes move uniformly, so they leave in creation order.
func (pm *PipeManager) removeOffscreen() {
	n := 0
	for n < len(pm.pipes) && pm.pipes[n].X+pm.cfg.Width < 0 {
		n++
	}
	if n > 0 {
		pm.pipes = append(pm.pipes[:0], pm.pipes[n:]...)
	}
}

// Collides reports whether the bird overlaps the pipe horizontally while
// not being fully inside its gap.
func (pm *PipeManager) Collides(bird core.Box, p Pipe) bool {
	if !bird.OverlapsX(pm.Box(p)) {
		return false
	}
	return bird.Y < p.TopHeight || bird.Bottom() > p.TopHeight+pm.cfg.Gap
}

// Box returns the pipe's horizontal span from the top of the world down to
// the ground line. The gap is not cut out.
func (pm *PipeManager) Box(p Pipe) core.Box {
	return core.Box{X: p.X, Y: 0, W: pm.cfg.Width, H: pm.groundLine}
}

// Pipes returns the current pipes, oldest first.
func (pm *PipeManager) Pipes() []Pipe {
	return pm.pipes
}
