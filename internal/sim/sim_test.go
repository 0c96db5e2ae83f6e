package sim

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/vovakirdan/paddle-arcade/internal/config"
	"github.com/vovakirdan/paddle-arcade/internal/physics"
)

// boxConfig keeps the ball on a small field with every edge bouncing.
func boxConfig(speedUps ...string) config.SimConfig {
	cfg := config.DefaultSimConfig()
	cfg.Field = config.FieldConfig{Width: 20, Height: 10}
	cfg.Paddles = nil
	cfg.Ball.BounceLeftRight = true
	cfg.Ball.SpeedUps = speedUps
	if len(speedUps) == 0 {
		cfg.Ball.SpeedUps = []string{"none"}
	}
	return cfg
}

func TestRunDeterminism(t *testing.T) {
	cfg := config.DefaultSimConfig()

	a, err := Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	b, err := Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if a != b {
		t.Errorf("Run() not deterministic:\n%+v\n%+v", a, b)
	}

	cfg.Seed = 2
	c, err := Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if c.Hash == a.Hash {
		t.Error("different seeds produced the same trajectory hash")
	}
}

func TestRunSurvivesInClosedBox(t *testing.T) {
	cfg := boxConfig()

	rep, err := Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !rep.Survived() {
		t.Fatalf("ball died at tick %d through %v in a closed box", rep.DiedAt, rep.Exit)
	}
	if rep.Ticks != cfg.Ticks {
		t.Errorf("Ticks = %d, expected %d", rep.Ticks, cfg.Ticks)
	}
	if rep.Bounces == 0 {
		t.Error("Bounces = 0, expected wall hits in a 20x10 box")
	}
	if rep.SpeedUps != 0 {
		t.Errorf("SpeedUps = %d, expected none", rep.SpeedUps)
	}
	if got := rep.FinalVelocity.Magnitude(); math.Abs(got-cfg.Ball.Speed) > 1e-9 {
		t.Errorf("final speed = %v, expected %v without speed-ups", got, cfg.Ball.Speed)
	}
	if math.Abs(rep.PeakSpeed-cfg.Ball.Speed) > 1e-9 {
		t.Errorf("PeakSpeed = %v, expected %v", rep.PeakSpeed, cfg.Ball.Speed)
	}
}

func TestRunContinuousSpeedUps(t *testing.T) {
	cfg := boxConfig("continuous:uniform")

	rep, err := Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// 600 ticks at 60 Hz is ten seconds; float drift may push the tenth
	// interval past the end.
	if rep.SpeedUps < 9 || rep.SpeedUps > 10 {
		t.Fatalf("SpeedUps = %d, expected 9 or 10", rep.SpeedUps)
	}

	want := cfg.Ball.Speed * math.Pow(cfg.Ball.Multiplier, float64(rep.SpeedUps))
	if got := rep.FinalVelocity.Magnitude(); math.Abs(got-want) > 1e-6 {
		t.Errorf("final speed = %v, expected %v", got, want)
	}
}

func TestRunBallLeavesField(t *testing.T) {
	cfg := boxConfig()
	cfg.Ball.BounceLeftRight = false

	rep, err := Run(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if rep.Survived() {
		t.Fatal("ball survived a field with open sides")
	}
	if rep.Exit != physics.SideLeft && rep.Exit != physics.SideRight {
		t.Errorf("Exit = %v, expected left or right", rep.Exit)
	}
	if rep.Ticks != rep.DiedAt {
		t.Errorf("Ticks = %d, expected the run to stop at tick %d", rep.Ticks, rep.DiedAt)
	}
}

func TestRunTickFunc(t *testing.T) {
	cfg := boxConfig()
	cfg.Ticks = 50

	calls := 0
	last := 0
	_, err := Run(context.Background(), cfg, WithTickFunc(func(tick int, b *physics.Ball, _ physics.TickResult) {
		calls++
		if tick != last+1 {
			t.Errorf("tick = %d after %d", tick, last)
		}
		last = tick
		if !b.Alive() {
			t.Errorf("tick %d: ball reported dead in a closed box", tick)
		}
	}))
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if calls != 50 {
		t.Errorf("TickFunc called %d times, expected 50", calls)
	}
}

func TestRunCancelled(t *testing.T) {
	cfg := boxConfig()
	cfg.Ticks = 10 * cancelCheckEvery

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, cfg)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, expected context.Canceled", err)
	}
}

func TestNewRunnerValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.SimConfig)
	}{
		{"zero width", func(c *config.SimConfig) { c.Field.Width = 0 }},
		{"zero tick rate", func(c *config.SimConfig) { c.TickHz = 0 }},
		{"negative ticks", func(c *config.SimConfig) { c.Ticks = -1 }},
		{"zero ball", func(c *config.SimConfig) { c.Ball.Size = 0 }},
		{"negative interval", func(c *config.SimConfig) { c.Ball.Interval = -1 }},
		{"unknown speed-up", func(c *config.SimConfig) { c.Ball.SpeedUps = []string{"sideways"} }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.DefaultSimConfig()
			tc.mutate(&cfg)
			if _, err := NewRunner(cfg); err == nil {
				t.Error("NewRunner() error = nil, expected a validation error")
			}
		})
	}
}
