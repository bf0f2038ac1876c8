// Package headless drives a flappy game without a terminal: on a real-time
// ticker for demos and soak runs, or as fast as possible for simulations.
package headless

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nepaliayush/flappy-bird/internal/core"
	"github.com/nepaliayush/flappy-bird/internal/games/flappy"
)

// EndReason describes why a run stopped.
type EndReason int

const (
	EndCancelled EndReason = iota
	EndMaxTicks
	EndRounds
)

// String returns a human-readable name for the reason.
func (r EndReason) String() string {
	switch r {
	case EndMaxTicks:
		return "max ticks"
	case EndRounds:
		return "rounds complete"
	default:
		return "cancelled"
	}
}

// RoundResult is the outcome of one finished round.
type RoundResult struct {
	Round int
	Score int
	Ticks int
}

// Result summarizes a run.
type Result struct {
	Reason EndReason
	Ticks  uint64 // Ticks stepped, including restarts
	Rounds []RoundResult
}

// Best returns the highest round score, or 0 when no round finished.
func (r Result) Best() int {
	best := 0
	for _, rr := range r.Rounds {
		best = core.Max(best, rr.Score)
	}
	return best
}

// Options configures a Runner.
type Options struct {
	MaxTicks    uint64 // 0 runs until cancelled or Rounds is reached
	Rounds      int    // Stop after this many finished rounds; 0 is unlimited
	Realtime    bool   // Pace ticks at the game's tick interval
	AutoRestart bool   // Start a new round right after a game over
	Pilot       *flappy.Autopilot
	OnGameOver  func(RoundResult)
	Logger      *log.Logger
}

// Runner owns a game and steps it on a fixed cadence. Actions may be sent
// from any goroutine; the game itself is only touched by Run.
type Runner struct {
	game    *flappy.Game
	opts    Options
	logger  *log.Logger
	inbox   chan core.Action
	pending core.InputFrame
}

// NewRunner creates a runner for g.
func NewRunner(g *flappy.Game, opts Options) *Runner {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		game:    g,
		opts:    opts,
		logger:  logger.WithPrefix("headless"),
		inbox:   make(chan core.Action, 64),
		pending: core.NewInputFrame(),
	}
}

// Send queues an action for the next tick. Non-blocking.
func (r *Runner) Send(a core.Action) {
	select {
	case r.inbox <- a:
	default:
		// Inbox full, drop the action
	}
}

// Jump queues a flap for the next tick.
func (r *Runner) Jump() { r.Send(core.ActionJump) }

// Restart queues a new round; it only takes effect after a game over.
func (r *Runner) Restart() { r.Send(core.ActionRestart) }

// Run steps the game until ctx is cancelled or a stop condition is met.
// On cancellation it returns the partial result together with ctx.Err().
func (r *Runner) Run(ctx context.Context) (Result, error) {
	var res Result

	r.logger.Debug("run started",
		"realtime", r.opts.Realtime,
		"max_ticks", r.opts.MaxTicks,
		"rounds", r.opts.Rounds,
		"autopilot", r.opts.Pilot != nil)

	if !r.opts.Realtime {
		for {
			if err := ctx.Err(); err != nil {
				res.Reason = EndCancelled
				return res, err
			}
			if r.runTick(&res) {
				return res, nil
			}
		}
	}

	ticker := time.NewTicker(r.game.Config().Physics.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			res.Reason = EndCancelled
			return res, ctx.Err()
		case <-ticker.C:
			if r.runTick(&res) {
				return res, nil
			}
		}
	}
}

// runTick performs one step and reports whether the run is finished.
func (r *Runner) runTick(res *Result) bool {
	r.drainInbox()

	if r.opts.Pilot != nil && r.game.Phase() == flappy.Running &&
		r.opts.Pilot.ShouldJump(r.game.Bird(), r.game.Obstacles()) {
		r.pending.Set(core.ActionJump)
	}

	// A restart in this step advances the round number.
	round := r.game.Round()
	step := r.game.Step(r.pending)
	r.pending.Clear()
	res.Ticks++

	if step.Has(core.EventGameOver) {
		rr := RoundResult{Round: round, Score: step.State.Score, Ticks: r.game.Ticks()}
		res.Rounds = append(res.Rounds, rr)
		r.logger.Info("game over", "round", rr.Round, "score", rr.Score, "ticks", rr.Ticks)

		if r.opts.OnGameOver != nil {
			r.opts.OnGameOver(rr)
		}
		if r.opts.Rounds > 0 && len(res.Rounds) >= r.opts.Rounds {
			res.Reason = EndRounds
			return true
		}
		if r.opts.AutoRestart {
			r.pending.Set(core.ActionRestart)
		}
	}

	if r.opts.MaxTicks > 0 && res.Ticks >= r.opts.MaxTicks {
		res.Reason = EndMaxTicks
		return true
	}
	return false
}

func (r *Runner) drainInbox() {
	for {
		select {
		case a := <-r.inbox:
			r.pending.Set(a)
		default:
			return
		}
	}
}
