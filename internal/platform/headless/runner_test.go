package headless

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nepaliayush/flappy-bird/internal/config"
	"github.com/nepaliayush/flappy-bird/internal/core"
	"github.com/nepaliayush/flappy-bird/internal/games/flappy"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestRunStopsAfterRounds(t *testing.T) {
	g := flappy.New(config.DefaultFlappyConfig(), 1)

	var seen []RoundResult
	r := NewRunner(g, Options{
		Rounds:      3,
		AutoRestart: true,
		Logger:      quietLogger(),
		OnGameOver:  func(rr RoundResult) { seen = append(seen, rr) },
	})

	res, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if res.Reason != EndRounds {
		t.Errorf("Reason = %v, expected %v", res.Reason, EndRounds)
	}
	if len(res.Rounds) != 3 || len(seen) != 3 {
		t.Fatalf("rounds = %d, callbacks = %d, expected 3 each", len(res.Rounds), len(seen))
	}

	// Without input the bird falls the same way every round.
	for i, rr := range res.Rounds {
		if rr.Round != i+1 {
			t.Errorf("round %d numbered %d", i, rr.Round)
		}
		if rr.Score != res.Rounds[0].Score {
			t.Errorf("round %d score = %d, expected %d", i, rr.Score, res.Rounds[0].Score)
		}
		if rr.Ticks != rr.Score+1 {
			t.Errorf("round %d ticks = %d, expected score+1 = %d", i, rr.Ticks, rr.Score+1)
		}
	}
	if res.Best() != res.Rounds[0].Score {
		t.Errorf("Best() = %d, expected %d", res.Best(), res.Rounds[0].Score)
	}
}

func TestRunMaxTicks(t *testing.T) {
	g := flappy.New(config.DefaultFlappyConfig(), 1)
	r := NewRunner(g, Options{MaxTicks: 10, Logger: quietLogger()})

	res, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if res.Reason != EndMaxTicks || res.Ticks != 10 {
		t.Errorf("Run() = %v after %d ticks, expected max ticks after 10", res.Reason, res.Ticks)
	}
	if g.Score() != 10 {
		t.Errorf("score = %d, expected 10", g.Score())
	}
}

func TestRunWithoutRestartWaits(t *testing.T) {
	g := flappy.New(config.DefaultFlappyConfig(), 1)
	r := NewRunner(g, Options{MaxTicks: 500, Logger: quietLogger()})

	res, _ := r.Run(context.Background())
	if len(res.Rounds) != 1 {
		t.Fatalf("rounds = %d, expected 1", len(res.Rounds))
	}
	if g.Phase() != flappy.GameOver {
		t.Errorf("phase = %v, expected game over", g.Phase())
	}
}

func TestAutopilotRun(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	g := flappy.New(cfg, 42)
	r := NewRunner(g, Options{
		MaxTicks: 1500,
		Pilot:    flappy.NewAutopilot(cfg),
		Logger:   quietLogger(),
	})

	res, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(res.Rounds) != 0 {
		t.Errorf("autopilot crashed in round %+v", res.Rounds[0])
	}
	if g.Score() != 1500 {
		t.Errorf("score = %d, expected 1500", g.Score())
	}
}

func TestRunDeterministic(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	run := func() []flappy.Obstacle {
		g := flappy.New(cfg, 99)
		r := NewRunner(g, Options{MaxTicks: 700, Pilot: flappy.NewAutopilot(cfg), Logger: quietLogger()})
		if _, err := r.Run(context.Background()); err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		return g.Obstacles()
	}

	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("obstacle counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("obstacle %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestSendJump(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	g := flappy.New(cfg, 1)
	r := NewRunner(g, Options{MaxTicks: 1, Logger: quietLogger()})

	r.Jump()
	if _, err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// Jump replaces velocity, then one tick of movement and gravity.
	if g.Bird().Y != cfg.World.Height/2+cfg.Physics.JumpStrength {
		t.Errorf("bird Y = %f, expected %f", g.Bird().Y, cfg.World.Height/2+cfg.Physics.JumpStrength)
	}
	if g.Bird().Velocity != cfg.Physics.JumpStrength+cfg.Physics.Gravity {
		t.Errorf("velocity = %f, expected %f", g.Bird().Velocity, cfg.Physics.JumpStrength+cfg.Physics.Gravity)
	}
}

func TestRestartAfterGameOver(t *testing.T) {
	g := flappy.New(config.DefaultFlappyConfig(), 1)
	// Without AutoRestart a queued restart starts the next round.
	var r *Runner
	r = NewRunner(g, Options{
		Rounds:     2,
		Logger:     quietLogger(),
		OnGameOver: func(RoundResult) { r.Restart() },
	})

	res, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(res.Rounds) != 2 {
		t.Errorf("rounds = %d, expected 2", len(res.Rounds))
	}
}

func TestSendDoesNotBlockWhenFull(t *testing.T) {
	g := flappy.New(config.DefaultFlappyConfig(), 1)
	r := NewRunner(g, Options{Logger: quietLogger()})

	done := make(chan struct{})
	go func() {
		for i := 0; i < 1000; i++ {
			r.Send(core.ActionJump)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Send blocked on a full inbox")
	}
}

func TestRealtimeCancel(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	cfg.Physics.TickInterval = time.Millisecond
	g := flappy.New(cfg, 1)
	r := NewRunner(g, Options{Realtime: true, Pilot: flappy.NewAutopilot(cfg), Logger: quietLogger()})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	res, err := r.Run(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Run() error = %v, expected deadline exceeded", err)
	}
	if res.Reason != EndCancelled {
		t.Errorf("Reason = %v, expected %v", res.Reason, EndCancelled)
	}
	if res.Ticks == 0 {
		t.Error("expected some ticks before cancellation")
	}
}

func TestCancelledBeforeStart(t *testing.T) {
	g := flappy.New(config.DefaultFlappyConfig(), 1)
	r := NewRunner(g, Options{Logger: quietLogger()})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := r.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, expected context canceled", err)
	}
	if res.Ticks != 0 {
		t.Errorf("Ticks = %d, expected 0", res.Ticks)
	}
}

func TestEndReasonString(t *testing.T) {
	tests := []struct {
		reason   EndReason
		expected string
	}{
		{EndCancelled, "cancelled"},
		{EndMaxTicks, "max ticks"},
		{EndRounds, "rounds complete"},
	}

	for _, tc := range tests {
		if got := tc.reason.String(); got != tc.expected {
			t.Errorf("%d.String() = %q, expected %q", tc.reason, got, tc.expected)
		}
	}
}
