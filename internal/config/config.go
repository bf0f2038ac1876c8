// Package config provides YAML-based configuration of the Flappy Bird
// constants: world size, physics, bird hitbox and pipe geometry.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// CollisionTiming selects which state the per-tick collision test reads.
type CollisionTiming string

const (
	// TimingPreTick tests the bird and pipes as they were before the tick's
	// movement was applied, one tick behind what is on screen.
	TimingPreTick CollisionTiming = "pre_tick"
	// TimingPostTick tests the freshly moved bird and pipes.
	TimingPostTick CollisionTiming = "post_tick"
)

// FlappyConfig contains all configuration for the Flappy Bird game.
type FlappyConfig struct {
	World     World     `yaml:"world"`
	Physics   Physics   `yaml:"physics"`
	Bird      Bird      `yaml:"bird"`
	Pipes     Pipes     `yaml:"pipes"`
	Collision Collision `yaml:"collision"`
}

// World is the size of the playfield.
type World struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Physics defines the constant-gravity, constant-scroll model.
type Physics struct {
	Gravity      float64       `yaml:"gravity"`       // Added to velocity every tick
	JumpStrength float64       `yaml:"jump_strength"` // Velocity set by a jump (negative = up)
	ScrollSpeed  float64       `yaml:"scroll_speed"`  // Pipe movement to the left per tick
	TickInterval time.Duration `yaml:"tick_interval"` // Wall-clock period of one tick
}

// Bird defines the bird hitbox and its fixed horizontal position.
type Bird struct {
	X      float64 `yaml:"x"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Pipes defines obstacle geometry and spawning.
type Pipes struct {
	Width         float64 `yaml:"width"`
	Gap           float64 `yaml:"gap"`            // Height of the passable gap
	SpawnX        float64 `yaml:"spawn_x"`        // X coordinate of new pipes
	SpawnDistance float64 `yaml:"spawn_distance"` // Spawn once the last pipe is left of width - spawn_distance
	Margin        float64 `yaml:"margin"`         // Minimum distance between the gap and the world edges
}

// Collision configures the collision test.
type Collision struct {
	Timing CollisionTiming `yaml:"timing"`
}

// TickRate returns the number of ticks per second implied by TickInterval.
func (c FlappyConfig) TickRate() int {
	if c.Physics.TickInterval <= 0 {
		return 0
	}
	return int(time.Second / c.Physics.TickInterval)
}

// Validate checks that the configuration describes a playable world.
func (c FlappyConfig) Validate() error {
	switch {
	case c.World.Width <= 0 || c.World.Height <= 0:
		return fmt.Errorf("%w: world size must be positive, got %gx%g", ErrInvalidConfig, c.World.Width, c.World.Height)
	case c.Bird.Width <= 0 || c.Bird.Height <= 0:
		return fmt.Errorf("%w: bird size must be positive", ErrInvalidConfig)
	case c.Bird.Height >= c.World.Height:
		return fmt.Errorf("%w: bird height %g does not fit world height %g", ErrInvalidConfig, c.Bird.Height, c.World.Height)
	case c.Pipes.Width <= 0:
		return fmt.Errorf("%w: pipe width must be positive", ErrInvalidConfig)
	case c.Pipes.Gap <= c.Bird.Height:
		return fmt.Errorf("%w: pipe gap %g must be taller than the bird", ErrInvalidConfig, c.Pipes.Gap)
	case c.Pipes.Margin <= 0:
		return fmt.Errorf("%w: pipe margin must be positive", ErrInvalidConfig)
	case c.Pipes.Gap+2*c.Pipes.Margin >= c.World.Height:
		return fmt.Errorf("%w: gap %g plus margins %g does not fit world height %g",
			ErrInvalidConfig, c.Pipes.Gap, 2*c.Pipes.Margin, c.World.Height)
	case c.Pipes.SpawnX < c.World.Width:
		return fmt.Errorf("%w: spawn_x %g must be at or beyond world width %g", ErrInvalidConfig, c.Pipes.SpawnX, c.World.Width)
	case c.Pipes.SpawnDistance <= 0:
		return fmt.Errorf("%w: spawn_distance must be positive", ErrInvalidConfig)
	case c.Physics.ScrollSpeed <= 0:
		return fmt.Errorf("%w: scroll_speed must be positive", ErrInvalidConfig)
	case c.Physics.TickInterval <= 0:
		return fmt.Errorf("%w: tick_interval must be positive", ErrInvalidConfig)
	}

	switch c.Collision.Timing {
	case TimingPreTick, TimingPostTick:
	default:
		return fmt.Errorf("%w: unknown collision timing %q", ErrInvalidConfig, c.Collision.Timing)
	}
	return nil
}
