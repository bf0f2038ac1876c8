package flappy

import "github.com/nepaliayush/flappy-bird/internal/config"

// autopilotSlack keeps the bird this far above the bottom of the gap.
const autopilotSlack = 20

// Autopilot flaps whenever the bird is about to sink below the gap of the
// next obstacle, or below mid-height when no obstacle is ahead.
type Autopilot struct {
	cfg config.FlappyConfig
}

// NewAutopilot creates an autopilot for the given constants.
func NewAutopilot(cfg config.FlappyConfig) *Autopilot {
	return &Autopilot{cfg: cfg}
}

// ShouldJump decides whether to jump before the next tick.
func (a *Autopilot) ShouldJump(bird Bird, obstacles []Obstacle) bool {
	if bird.Velocity < 0 {
		return false
	}

	floor := a.cfg.World.Height/2 + a.cfg.Pipes.Gap/4
	if next, ok := a.next(obstacles); ok {
		floor = next.GapBottom(a.cfg) - autopilotSlack
	}

	// Compare where the bird will be after the next move.
	return bird.Y+bird.Velocity+a.cfg.Bird.Height > floor
}

// next returns the first obstacle the bird has not fully passed.
func (a *Autopilot) next(obstacles []Obstacle) (Obstacle, bool) {
	for _, o := range obstacles {
		if o.X+a.cfg.Pipes.Width > a.cfg.Bird.X {
			return o, true
		}
	}
	return Obstacle{}, false
}

// Drive is a convenience for hosts: it jumps g when the autopilot says so.
func (a *Autopilot) Drive(g *Game) bool {
	if a.ShouldJump(g.Bird(), g.pipes.Pipes()) {
		return g.Jump()
	}
	return false
}
