// Package sim runs a single ball headlessly at a fixed tick rate and reports
// what happened. It is used by the `arcade sim` command to try out speed-up
// configurations without a terminal UI, and by tests as a determinism check.
package sim

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"

	"github.com/charmbracelet/log"
	"github.com/zeebo/xxh3"

	"github.com/vovakirdan/paddle-arcade/internal/config"
	"github.com/vovakirdan/paddle-arcade/internal/physics"
)

// cancelCheckEvery is how many ticks run between context checks.
const cancelCheckEvery = 256

// Report summarises one run.
type Report struct {
	Seed          int64
	Ticks         int // ticks actually simulated
	Bounces       int // wall hits
	PaddleHits    int
	SpeedUps      int
	PeakSpeed     float64
	FinalVelocity physics.Velocity
	DiedAt        int // tick the ball left the field, -1 if it survived
	Exit          physics.Side
	Hash          uint64 // xxh3 over the full trajectory
}

// Survived reports whether the ball was still on the field at the end.
func (r Report) Survived() bool {
	return r.DiedAt < 0
}

// TickFunc observes the ball after every tick.
type TickFunc func(tick int, b *physics.Ball, res physics.TickResult)

// Runner executes simulations for one config.
type Runner struct {
	cfg    config.SimConfig
	logger *log.Logger
	onTick TickFunc
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger. Speed-ups are logged at debug level and the
// ball leaving the field at info level.
func WithLogger(l *log.Logger) Option {
	return func(r *Runner) { r.logger = l }
}

// WithTickFunc installs a per-tick observer, e.g. for tracing a trajectory.
func WithTickFunc(f TickFunc) Option {
	return func(r *Runner) { r.onTick = f }
}

// NewRunner validates the config and builds a runner.
func NewRunner(cfg config.SimConfig, opts ...Option) (*Runner, error) {
	if cfg.Field.Width <= 0 || cfg.Field.Height <= 0 {
		return nil, fmt.Errorf("sim: field must be positive, got %vx%v", cfg.Field.Width, cfg.Field.Height)
	}
	if cfg.TickHz <= 0 {
		return nil, fmt.Errorf("sim: tick_rate must be positive, got %d", cfg.TickHz)
	}
	if cfg.Ticks < 0 {
		return nil, fmt.Errorf("sim: ticks must not be negative, got %d", cfg.Ticks)
	}
	if cfg.Ball.Size <= 0 {
		return nil, errors.New("sim: ball size must be positive")
	}
	if cfg.Ball.Interval < 0 {
		return nil, errors.New("sim: ball interval must not be negative")
	}
	if _, err := config.ParseFlags(cfg.Ball.SpeedUps); err != nil {
		return nil, fmt.Errorf("sim: %w", err)
	}

	r := &Runner{
		cfg:    cfg,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Run simulates cfg.Ticks ticks, or fewer if the ball leaves the field.
// The same config always yields the same Report.
func (r *Runner) Run(ctx context.Context) (Report, error) {
	cfg := r.cfg
	rep := Report{Seed: cfg.Seed, DiedAt: -1}

	opts, err := cfg.Ball.Options()
	if err != nil {
		return rep, fmt.Errorf("sim: %w", err)
	}
	opts = append(opts, physics.WithID(1))

	field := physics.NewField(cfg.Field.Width, cfg.Field.Height)
	rng := rand.New(rand.NewSource(cfg.Seed))
	ball := physics.Spawn(field, rng, cfg.Ball.Size, cfg.Ball.Speed, opts...)

	paddles := make([]physics.Paddle, len(cfg.Paddles))
	for i, p := range cfg.Paddles {
		paddles[i] = physics.StaticPaddle(p.Rect())
	}

	dt := 1.0 / float64(cfg.TickHz)
	h := xxh3.New()
	var buf [32]byte

	r.logger.Debug("sim start",
		"seed", cfg.Seed,
		"ticks", cfg.Ticks,
		"flags", config.FormatFlags(ball.Flags()),
		"velocity", ball.Velocity())

	for tick := 1; tick <= cfg.Ticks; tick++ {
		if tick%cancelCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return rep, fmt.Errorf("sim: interrupted at tick %d: %w", tick, err)
			}
		}

		res := ball.Tick(dt, paddles...)
		rep.Ticks = tick
		rep.Bounces += len(res.WallHits)
		rep.PaddleHits += res.PaddleHits
		rep.SpeedUps += res.SpeedUps

		v := ball.Velocity()
		rect := ball.Rect()
		binary.LittleEndian.PutUint64(buf[0:], math.Float64bits(rect.X))
		binary.LittleEndian.PutUint64(buf[8:], math.Float64bits(rect.Y))
		binary.LittleEndian.PutUint64(buf[16:], math.Float64bits(v.X))
		binary.LittleEndian.PutUint64(buf[24:], math.Float64bits(v.Y))
		_, _ = h.Write(buf[:])

		rep.PeakSpeed = math.Max(rep.PeakSpeed, v.Magnitude())
		if res.SpeedUps > 0 {
			r.logger.Debug("speed-up", "tick", tick, "speed", v.Magnitude())
		}
		if r.onTick != nil {
			r.onTick(tick, ball, res)
		}

		if res.Destroyed {
			rep.DiedAt = tick
			rep.Exit = res.Exit
			r.logger.Info("ball left the field", "tick", tick, "side", res.Exit)
			break
		}
	}

	rep.FinalVelocity = ball.Velocity()
	rep.Hash = h.Sum64()
	return rep, nil
}

// Run is a shortcut for NewRunner followed by Runner.Run.
func Run(ctx context.Context, cfg config.SimConfig, opts ...Option) (Report, error) {
	r, err := NewRunner(cfg, opts...)
	if err != nil {
		return Report{}, err
	}
	return r.Run(ctx)
}
