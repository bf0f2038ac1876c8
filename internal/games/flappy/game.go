// Package flappy implements the Flappy Bird game loop: a bird falling under
// constant gravity through a stream of scrolling pipe pairs.
//
// The Game owns all round state and advances it one fixed tick at a time.
// Hosts call Tick (or Step) on a fixed cadence and Jump whenever input
// arrives; both must be called from the same goroutine.
package flappy

import (
	"github.com/nepaliayush/flappy-bird/internal/config"
	"github.com/nepaliayush/flappy-bird/internal/core"
)

// ID is the identifier under which scores are stored.
const ID = "flappy"

// Title is the display name of the game.
const Title = "Flappy Bird"

// Bird is the player's vertical state. Its horizontal position is fixed.
type Bird struct {
	Y        float64 // Top of the hitbox
	Velocity float64 // Positive is downward
}

// Phase is the round state machine.
type Phase int

const (
	Running Phase = iota
	GameOver
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	if p == GameOver {
		return "game over"
	}
	return "running"
}

// seedStride separates the pipe RNG seeds of consecutive rounds.
const seedStride = 7919

// Game implements the Flappy Bird game logic.
type Game struct {
	cfg    config.FlappyConfig
	bird   Bird
	pipes  *PipeManager
	prev   []Obstacle // Pre-tick obstacle snapshot for the collision test
	score  int
	phase  Phase
	paused bool
	ticks  int   // Ticks in the current round
	seed   int64 // Base seed for pipe gaps
	round  int
}

// New creates a game in the Running phase with an empty course.
func New(cfg config.FlappyConfig, seed int64) *Game {
	g := &Game{
		cfg:   cfg,
		seed:  seed,
		pipes: NewPipeManager(cfg, seed),
	}
	g.Reset()
	return g
}

// Config returns the constants the game runs with.
func (g *Game) Config() config.FlappyConfig {
	return g.cfg
}

// Reset starts a new round: bird at mid-height with zero velocity, no
// obstacles, score 0, Running.
func (g *Game) Reset() {
	g.bird = Bird{Y: g.cfg.World.Height / 2, Velocity: 0}
	g.pipes.Reset(g.seed + int64(g.round)*seedStride)
	g.prev = g.prev[:0]
	g.score = 0
	g.phase = Running
	g.paused = false
	g.ticks = 0
	g.round++
}

// Jump sets the bird's velocity to the jump strength, replacing whatever
// gravity had accumulated. The position changes on the next tick.
// Returns false, and does nothing, once the round is over or while paused.
func (g *Game) Jump() bool {
	if g.phase == GameOver || g.paused {
		return false
	}
	g.bird.Velocity = g.cfg.Physics.JumpStrength
	return true
}

// Tick advances the simulation by one step. It does nothing once the round
// is over or while paused.
func (g *Game) Tick() core.StepResult {
	if g.phase == GameOver || g.paused {
		return core.StepResult{State: g.State()}
	}

	var events []core.Event

	before := g.bird
	g.prev = append(g.prev[:0], g.pipes.Pipes()...)

	g.bird.Y += g.bird.Velocity
	g.bird.Velocity += g.cfg.Physics.Gravity

	if g.pipes.Update() {
		events = append(events, core.EventSpawn)
	}
	g.ticks++

	bird, obstacles := g.bird, g.pipes.Pipes()
	if g.cfg.Collision.Timing == config.TimingPreTick {
		bird, obstacles = before, g.prev
	}

	if Collides(g.cfg, bird, obstacles) {
		g.phase = GameOver
		events = append(events, core.EventGameOver)
		return core.StepResult{State: g.State(), Events: events}
	}

	g.score++
	return core.StepResult{State: g.State(), Events: events}
}

// Collides reports whether the bird hits the top or bottom of the world or
// the solid part of any obstacle overlapping it horizontally.
func Collides(cfg config.FlappyConfig, bird Bird, obstacles []Obstacle) bool {
	if bird.Y < 0 {
		return true
	}
	if bird.Y+cfg.Bird.Height > cfg.World.Height {
		return true
	}

	hitbox := birdBox(cfg, bird)
	for _, o := range obstacles {
		if !hitbox.OverlapsX(o.Box(cfg)) {
			continue
		}
		if bird.Y < o.GapTop || hitbox.Bottom() > o.GapBottom(cfg) {
			return true
		}
	}
	return false
}

func birdBox(cfg config.FlappyConfig, bird Bird) core.Box {
	return core.Box{X: cfg.Bird.X, Y: bird.Y, W: cfg.Bird.Width, H: cfg.Bird.Height}
}

// Step is the host adapter for one tick with the input gathered since the
// previous one. Restart is honored only when the round is over and replaces
// the tick; pause toggles before the tick; jump is applied before the tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	var events []core.Event

	if in.Has(core.ActionRestart) && g.phase == GameOver {
		g.Reset()
		return core.StepResult{State: g.State(), Events: []core.Event{core.EventRestart}}
	}

	if in.Has(core.ActionPause) {
		if ev, ok := g.togglePause(); ok {
			events = append(events, ev)
		}
	}

	if in.Has(core.ActionJump) && g.Jump() {
		events = append(events, core.EventJump)
	}

	result := g.Tick()
	result.Events = append(events, result.Events...)
	return result
}

// Act applies an action immediately, between ticks. Returns the resulting
// event, or EventNone if the action had no effect in the current state.
func (g *Game) Act(a core.Action) core.Event {
	switch a {
	case core.ActionJump:
		if g.Jump() {
			return core.EventJump
		}
	case core.ActionRestart:
		if g.phase == GameOver {
			g.Reset()
			return core.EventRestart
		}
	case core.ActionPause:
		if ev, ok := g.togglePause(); ok {
			return ev
		}
	}
	return core.EventNone
}

func (g *Game) togglePause() (core.Event, bool) {
	if g.phase == GameOver {
		return core.EventNone, false
	}
	g.paused = !g.paused
	if g.paused {
		return core.EventPause, true
	}
	return core.EventResume, true
}

// Bird returns the bird's current state.
func (g *Game) Bird() Bird {
	return g.bird
}

// Obstacles returns a copy of the live obstacles in left-to-right order.
func (g *Game) Obstacles() []Obstacle {
	out := make([]Obstacle, g.pipes.Len())
	copy(out, g.pipes.Pipes())
	return out
}

// Score returns the number of live ticks survived this round.
func (g *Game) Score() int {
	return g.score
}

// Phase returns the current round phase.
func (g *Game) Phase() Phase {
	return g.phase
}

// Paused reports whether the simulation is paused.
func (g *Game) Paused() bool {
	return g.paused
}

// Ticks returns the number of ticks simulated this round.
func (g *Game) Ticks() int {
	return g.ticks
}

// Round returns how many rounds have been started, counting the current one.
func (g *Game) Round() int {
	return g.round
}

// State returns the summary reported to hosts.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.phase == GameOver,
		Paused:   g.paused,
	}
}

// Snapshot captures everything the renderer needs.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Bird:      g.bird,
		Obstacles: g.Obstacles(),
		Score:     g.score,
		Phase:     g.phase,
		Paused:    g.paused,
	}
}

// Render rasterizes the current scene into dst and returns the cell layout.
func (g *Game) Render(dst *core.Screen) Layout {
	return Rasterize(BuildScene(g.cfg, g.Snapshot()), dst)
}
