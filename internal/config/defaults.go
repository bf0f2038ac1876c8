package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

// DefaultFlappyConfig returns the built-in Flappy Bird configuration.
// It matches defaults/flappy.yaml.
func DefaultFlappyConfig() FlappyConfig {
	const worldWidth = 400
	return FlappyConfig{
		World: World{
			Width:  worldWidth,
			Height: 600,
		},
		Physics: Physics{
			Gravity:      0.5,
			JumpStrength: -10,
			ScrollSpeed:  2,
			TickInterval: 20 * time.Millisecond,
		},
		Bird: Bird{
			X:      50,
			Width:  34,
			Height: 24,
		},
		Pipes: Pipes{
			Width:         52,
			Gap:           200,
			SpawnX:        worldWidth + 100,
			SpawnDistance: 200,
			Margin:        50,
		},
		Collision: Collision{
			Timing: TimingPreTick,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultFlappyYAML
}
