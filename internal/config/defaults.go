package config

import (
	_ "embed"
)

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

// DefaultFlappyConfig returns the built-in configuration.
// It matches defaults/flappy.yaml and is used when the embedded file
// cannot be parsed.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		World: World{
			Width:  400,
			Height: 600,
		},
		Physics: Physics{
			Gravity:      0.2,
			JumpImpulse:  -5,
			RotationGain: 5,
			MaxRotation:  90,
		},
		Bird: Bird{
			X:      100,
			Y:      300,
			Width:  40,
			Height: 30,
		},
		Pipes: Pipes{
			Width:     80,
			Gap:       150,
			Spacing:   250,
			Speed:     2,
			MinMargin: 80,
		},
		Scroll: Scroll{
			BackgroundSpeed: 1,
			GroundSpeed:     2,
			GroundHeight:    100,
			GroundTile:      50,
		},
		Audio: Audio{
			Sound: true,
			Music: true,
		},
		DefaultTheme: "water",
		Themes: []Theme{
			{Name: "water", Background: "#70c5ce", Ground: "#deb887", Pipe: "#5fa832", Bird: "#f7d51d"},
			{Name: "desert", Background: "#f4a460", Ground: "#cd853f", Pipe: "#3e8e41", Bird: "#ffffff"},
			{Name: "snow", Background: "#b0e0e6", Ground: "#ffffff", Pipe: "#2e7d32", Bird: "#e53935"},
			{Name: "night", Background: "#0a0a2a", Ground: "#333333", Pipe: "#1b5e20", Bird: "#ffd54f"},
		},
	}
}

// DefaultYAML returns the embedded default YAML, e.g. for writing a
// starter config file.
func DefaultYAML() []byte {
	return defaultFlappyYAML
}
