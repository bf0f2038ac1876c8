package flappy

import (
	"math/rand"

	"github.com/nepaliayush/flappy-bird/internal/config"
	"github.com/nepaliayush/flappy-bird/internal/core"
)

// Obstacle is a pipe pair sharing one horizontal position and one gap.
type Obstacle struct {
	X      float64 // Left edge
	GapTop float64 // Y where the gap starts; fixed at spawn
}

// Box returns the obstacle's horizontal span as a world box covering the
// full height.
func (o Obstacle) Box(cfg config.FlappyConfig) core.Box {
	return core.Box{X: o.X, Y: 0, W: cfg.Pipes.Width, H: cfg.World.Height}
}

// GapBottom returns the Y where the bottom pipe starts.
func (o Obstacle) GapBottom(cfg config.FlappyConfig) float64 {
	return o.GapTop + cfg.Pipes.Gap
}

// PipeManager handles spawning, movement and removal of obstacles.
// Obstacles are kept in spawn order, which is also left-to-right order.
type PipeManager struct {
	pipes []Obstacle
	rng   *rand.Rand
	cfg   config.FlappyConfig
}

// NewPipeManager creates a new pipe manager with the given RNG seed.
func NewPipeManager(cfg config.FlappyConfig, seed int64) *PipeManager {
	pm := &PipeManager{
		pipes: make([]Obstacle, 0, 4),
		cfg:   cfg,
	}
	pm.Reset(seed)
	return pm
}

// Reset clears all obstacles and reseeds the RNG.
func (pm *PipeManager) Reset(seed int64) {
	pm.pipes = pm.pipes[:0]
	pm.rng = rand.New(rand.NewSource(seed))
}

// Update scrolls every obstacle left, drops the ones that left the world and
// appends a new one when the spawn gate opens.
// The gate reads the sequence as it was before scrolling: it is open when
// the sequence was empty or its last obstacle was left of
// World.Width - SpawnDistance. Returns true if an obstacle was spawned.
func (pm *PipeManager) Update() bool {
	gateOpen := len(pm.pipes) == 0 ||
		pm.pipes[len(pm.pipes)-1].X < pm.cfg.World.Width-pm.cfg.Pipes.SpawnDistance

	speed := pm.cfg.Physics.ScrollSpeed
	kept := pm.pipes[:0]
	for _, p := range pm.pipes {
		p.X -= speed
		if p.X+pm.cfg.Pipes.Width > 0 {
			kept = append(kept, p)
		}
	}
	pm.pipes = kept

	if gateOpen {
		pm.pipes = append(pm.pipes, Obstacle{
			X:      pm.cfg.Pipes.SpawnX,
			GapTop: pm.gapTop(),
		})
	}
	return gateOpen
}

// gapTop draws a gap position uniformly from [margin, height - gap - margin).
func (pm *PipeManager) gapTop() float64 {
	margin := pm.cfg.Pipes.Margin
	span := pm.cfg.World.Height - pm.cfg.Pipes.Gap - 2*margin
	return margin + pm.rng.Float64()*span
}

// Pipes returns the live obstacles. The slice is owned by the manager.
func (pm *PipeManager) Pipes() []Obstacle {
	return pm.pipes
}

// Len returns the number of live obstacles.
func (pm *PipeManager) Len() int {
	return len(pm.pipes)
}
