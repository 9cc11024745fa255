// Package config provides YAML-based game configuration loading and
// validation for the flappy game.
package config

import (
	"errors"
	"fmt"
)

// FlappyConfig contains all configuration for the game.
type FlappyConfig struct {
	World        World   `yaml:"world"`
	Physics      Physics `yaml:"physics"`
	Bird         Bird    `yaml:"bird"`
	Pipes        Pipes   `yaml:"pipes"`
	Scroll       Scroll  `yaml:"scroll"`
	Audio        Audio   `yaml:"audio"`
	DefaultTheme string  `yaml:"default_theme"`
	Themes       []Theme `yaml:"themes"`
}

// World is the logical play area. The renderer scales it to the terminal.
type World struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Physics defines the per-step bird dynamics.
type Physics struct {
	Gravity      float64 `yaml:"gravity"`       // Added to velocity every step
	JumpImpulse  float64 `yaml:"jump_impulse"`  // Velocity set by a flap (negative = up)
	RotationGain float64 `yaml:"rotation_gain"` // Degrees of tilt per unit of velocity
	MaxRotation  float64 `yaml:"max_rotation"`  // Upper clamp for tilt
}

// Bird defines the bird's start position and hitbox.
type Bird struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Pipes defines obstacle geometry and cadence.
type Pipes struct {
	Width     float64 `yaml:"width"`
	Gap       float64 `yaml:"gap"`        // Vertical size of the opening
	Spacing   float64 `yaml:"spacing"`    // Distance from the right edge before the next spawn
	Speed     float64 `yaml:"speed"`      // Leftward movement per step
	MinMargin int     `yaml:"min_margin"` // Minimum pipe height above and below the gap
}

// Scroll defines the cosmetic background and ground layers.
type Scroll struct {
	BackgroundSpeed float64 `yaml:"background_speed"`
	GroundSpeed     float64 `yaml:"ground_speed"`
	GroundHeight    float64 `yaml:"ground_height"`
	GroundTile      float64 `yaml:"ground_tile"` // Period of the ground texture
}

// Audio holds the initial state of the two audio toggles.
type Audio struct {
	Sound bool `yaml:"sound"`
	Music bool `yaml:"music"`
}

// Theme is a named color scheme. Colors are hex triplets or ANSI indexes.
type Theme struct {
	Name       string `yaml:"name"`
	Background string `yaml:"background"`
	Ground     string `yaml:"ground"`
	Pipe       string `yaml:"pipe"`
	Bird       string `yaml:"bird"`
}

// GroundLine returns the y-coordinate of the top of the ground strip.
func (c FlappyConfig) GroundLine() float64 {
	return c.World.Height - c.Scroll.GroundHeight
}

// Theme looks up a theme by name.
func (c FlappyConfig) Theme(name string) (Theme, bool) {
	for _, t := range c.Themes {
		if t.Name == name {
			return t, true
		}
	}
	return Theme{}, false
}

// ThemeOrDefault returns the named theme, or the default theme and false
// when the name is unknown.
func (c FlappyConfig) ThemeOrDefault(name string) (Theme, bool) {
	if t, ok := c.Theme(name); ok {
		return t, true
	}
	t, _ := c.Theme(c.DefaultTheme)
	return t, false
}

// ThemeNames returns theme names in configuration order.
func (c FlappyConfig) ThemeNames() []string {
	names := make([]string, len(c.Themes))
	for i, t := range c.Themes {
		names[i] = t.Name
	}
	return names
}

// Validate checks that the configuration describes a playable world.
func (c FlappyConfig) Validate() error {
	var errs []error

	if c.World.Width <= 0 || c.World.Height <= 0 {
		errs = append(errs, fmt.Errorf("world size must be positive, got %vx%v", c.World.Width, c.World.Height))
	}
	if c.Scroll.GroundHeight < 0 || c.Scroll.GroundHeight >= c.World.Height {
		errs = append(errs, fmt.Errorf("ground height %v must be within the world height", c.Scroll.GroundHeight))
	}
	if c.Scroll.GroundTile <= 0 {
		errs = append(errs, errors.New("ground tile must be positive"))
	}
	if c.Bird.Width <= 0 || c.Bird.Height <= 0 {
		errs = append(errs, errors.New("bird size must be positive"))
	}
	if c.Pipes.Width <= 0 || c.Pipes.Gap <= 0 || c.Pipes.Spacing <= 0 {
		errs = append(errs, errors.New("pipe width, gap and spacing must be positive"))
	}
	if c.Pipes.MinMargin < 0 {
		errs = append(errs, errors.New("pipe min margin must not be negative"))
	}
	if need := c.Pipes.Gap + 2*float64(c.Pipes.MinMargin); need > c.GroundLine() {
		errs = append(errs, fmt.Errorf("gap %v plus margins does not fit above the ground line %v", c.Pipes.Gap, c.GroundLine()))
	}

	if len(c.Themes) == 0 {
		errs = append(errs, errors.New("at least one theme is required"))
	}
	seen := make(map[string]bool, len(c.Themes))
	for _, t := range c.Themes {
		if t.Name == "" {
			errs = append(errs, errors.New("theme name must not be empty"))
			continue
		}
		if seen[t.Name] {
			errs = append(errs, fmt.Errorf("duplicate theme %q", t.Name))
		}
		seen[t.Name] = true
	}
	if _, ok := c.Theme(c.DefaultTheme); !ok {
		errs = append(errs, fmt.Errorf("default theme %q is not defined", c.DefaultTheme))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}
