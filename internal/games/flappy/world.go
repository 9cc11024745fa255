package flappy

import (
	"math"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Bird is the player. X never changes after a run starts; the world
// scrolls past it instead.
type Bird struct {
	X, Y     float64
	Width    float64
	Height   float64
	Velocity float64 // Positive is downward
	Rotation float64 // Display tilt in degrees, derived from Velocity
}

// newBird places a bird at its start position, at rest.
func newBird(cfg config.Bird) Bird {
	return Bird{
		X:      cfg.X,
		Y:      cfg.Y,
		Width:  cfg.Width,
		Height: cfg.Height,
	}
}

// Box returns the bird's hitbox.
func (b Bird) Box() core.Box {
	return core.Box{X: b.X, Y: b.Y, W: b.Width, H: b.Height}
}

// Fall applies one step of gravity and updates the tilt.
// The tilt only has an upper bound; a fast climb tilts without limit.
func (b *Bird) Fall(p config.Physics) {
	b.Velocity += p.Gravity
	b.Y += b.Velocity
	b.Rotation = math.Min(b.Velocity*p.RotationGain, p.MaxRotation)
}

// Flap sets the velocity to the impulse, discarding the current one.
func (b *Bird) Flap(p config.Physics) {
	b.Velocity = p.JumpImpulse
}

// Scroll holds the phase of the two cosmetic layers.
type Scroll struct {
	Background float64 // Wraps at the world width
	Ground     float64 // Wraps at the ground tile
}

// Advance moves both layers left. Offsets stay in (-period, 0].
func (s *Scroll) Advance(worldW float64, cfg config.Scroll) {
	s.Background = math.Mod(s.Background-cfg.BackgroundSpeed, worldW)
	s.Ground = math.Mod(s.Ground-cfg.GroundSpeed, cfg.GroundTile)
}
