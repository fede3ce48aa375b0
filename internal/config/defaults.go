package config

import (
	_ "embed"
)

//go:embed defaults/flappy.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Physics: Physics{
			Gravity:      0.25,
			JumpImpulse:  -1.8,
			MaxFallSpeed: 0,
			PipeSpeed:    0.8,
		},
		Obstacles: Obstacles{
			PipeWidth:     5,
			SpawnInterval: 50,
			GapHeight:     10,
			TopMargin:     3,
			GroundBuffer:  3,
		},
		Player: Player{
			X:      10,
			Width:  2,
			Height: 2,
		},
		Commentary: Commentary{
			Endpoint:  "",
			TimeoutMS: 3000,
			Fallback:  "Gravity always wins.",
		},
	}
}
