package physics

import (
	"github.com/elliotchance/orderedmap/v2"

	"github.com/vovakirdan/paddle-arcade/internal/core"
)

// Defaults for a freshly built ball.
const (
	DefaultMultiplier = 1.15
	DefaultInterval   = 1.0 // seconds between continuous speed-ups
	DefaultEdgeInset  = 1.0 // cells a bounced ball is moved inside the edge
)

// Sound plays the collision effect. Calls are fire-and-forget.
type Sound interface {
	PlayCollision()
}

// Config is everything a ball is built from. There is no package-level
// mutable configuration; games pass one of these (or options) per ball.
type Config struct {
	ID              int
	Rect            core.RectF
	Velocity        Velocity
	BounceTopBottom bool
	BounceLeftRight bool
	Flags           Flags
	Multiplier      float64
	Interval        float64 // seconds; negative values are a caller error
	EdgeInset       float64
	Sound           Sound // nil plays nothing
}

// DefaultConfig returns the construction defaults: a 1x1 ball at the origin
// bouncing top/bottom only, with the mild continuous horizontal speed-up.
func DefaultConfig() Config {
	return Config{
		Rect:            core.NewRectF(0, 0, 1, 1),
		BounceTopBottom: true,
		BounceLeftRight: false,
		Flags:           DefaultFlags,
		Multiplier:      DefaultMultiplier,
		Interval:        DefaultInterval,
		EdgeInset:       DefaultEdgeInset,
	}
}

// Option adjusts a Config before the ball is built.
type Option func(*Config)

func WithID(id int) Option { return func(c *Config) { c.ID = id } }

func WithRect(r core.RectF) Option { return func(c *Config) { c.Rect = r } }

// WithVelocity sets the starting velocity, keeping any increment already set
// when v.Increment is zero.
func WithVelocity(v Velocity) Option {
	return func(c *Config) {
		inc := c.Velocity.Increment
		c.Velocity = v
		if v.Increment == 0 {
			c.Velocity.Increment = inc
		}
	}
}

func WithIncrement(inc float64) Option { return func(c *Config) { c.Velocity.Increment = inc } }

func WithBounce(topBottom, leftRight bool) Option {
	return func(c *Config) {
		c.BounceTopBottom = topBottom
		c.BounceLeftRight = leftRight
	}
}

func WithFlags(f Flags) Option { return func(c *Config) { c.Flags = f } }

func WithMultiplier(m float64) Option { return func(c *Config) { c.Multiplier = m } }

func WithInterval(seconds float64) Option { return func(c *Config) { c.Interval = seconds } }

func WithEdgeInset(inset float64) Option { return func(c *Config) { c.EdgeInset = inset } }

func WithSound(s Sound) Option { return func(c *Config) { c.Sound = s } }

// Ball is a moving object integrated once per tick.
type Ball struct {
	id    int
	field Field

	rect core.RectF
	vel  Velocity

	bounceTopBottom bool
	bounceLeftRight bool

	flags      Flags
	multiplier float64
	interval   float64
	inset      float64
	sound      Sound

	clock       float64 // sum of all dt fed to Tick
	lastSpeedUp float64 // clock value of the last continuous speed-up
	cooldowns   *orderedmap.OrderedMap[int, float64]
	speedUps    int // acceleration events during the current tick

	alive bool
	dirty bool
}

// NewBall builds a live ball on the field from the defaults plus options.
func NewBall(field Field, opts ...Option) *Ball {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return NewBallFromConfig(field, cfg)
}

// NewBallFromConfig builds a live ball from an explicit config.
func NewBallFromConfig(field Field, cfg Config) *Ball {
	return &Ball{
		id:              cfg.ID,
		field:           field,
		rect:            cfg.Rect,
		vel:             cfg.Velocity,
		bounceTopBottom: cfg.BounceTopBottom,
		bounceLeftRight: cfg.BounceLeftRight,
		flags:           cfg.Flags,
		multiplier:      cfg.Multiplier,
		interval:        cfg.Interval,
		inset:           cfg.EdgeInset,
		sound:           cfg.Sound,
		cooldowns:       orderedmap.NewOrderedMap[int, float64](),
		alive:           true,
		dirty:           true,
	}
}

// TickResult reports what happened to a ball during one tick.
type TickResult struct {
	WallHits   []Side
	PaddleHits int
	SpeedUps   int  // acceleration events that changed the velocity rules
	Destroyed  bool // the ball left the field on a non-bouncing axis
	Exit       Side // which edge it left through when Destroyed
}

// Collisions counts wall and paddle hits together.
func (r TickResult) Collisions() int {
	return len(r.WallHits) + r.PaddleHits
}

// Tick advances the ball by dt seconds:
//
//  1. move by velocity*dt
//  2. resolve field edges; leaving through a non-bouncing edge kills the ball
//     and ends the tick
//  3. resolve every overlapping paddle
//  4. advance the clock and, once per interval, apply the continuous trigger
//
// Ticking a dead ball does nothing.
func (b *Ball) Tick(dt float64, paddles ...Paddle) TickResult {
	var res TickResult
	if !b.alive {
		return res
	}

	b.speedUps = 0
	b.rect = b.rect.Translate(b.vel.X*dt, b.vel.Y*dt)
	if dt != 0 && (b.vel.X != 0 || b.vel.Y != 0) {
		b.dirty = true
	}

	hits, exit := b.resolveBoundary()
	res.WallHits = hits
	if exit != SideNone {
		b.alive = false
		res.Destroyed = true
		res.Exit = exit
		res.SpeedUps = b.speedUps
		return res
	}

	for _, p := range paddles {
		if b.ResolvePaddle(p) {
			res.PaddleHits++
		}
	}

	b.clock += dt
	if b.clock-b.lastSpeedUp >= b.interval {
		b.accelerate(TriggerContinuous)
		b.lastSpeedUp = b.clock
	}

	res.SpeedUps = b.speedUps
	return res
}

// accelerate applies the ball's flags for one trigger.
func (b *Ball) accelerate(t Trigger) {
	if Accelerate(&b.vel, b.flags, b.multiplier, t) > 0 {
		b.speedUps++
	}
}

func (b *Ball) playSound() {
	if b.sound != nil {
		b.sound.PlayCollision()
	}
}

// SpeedUpNow applies one curve with an explicit multiplier right away,
// bypassing the configured flags and the interval timer.
func (b *Ball) SpeedUpNow(multiplier float64, curve Curve, axis Axis) {
	ApplyCurve(&b.vel, axis, curve, multiplier)
	b.dirty = true
}

// Kill marks the ball as no longer alive.
func (b *Ball) Kill() { b.alive = false }

func (b *Ball) ID() int                { return b.id }
func (b *Ball) Rect() core.RectF       { return b.rect }
func (b *Ball) Velocity() Velocity     { return b.vel }
func (b *Ball) Alive() bool            { return b.alive }
func (b *Ball) Dirty() bool            { return b.dirty }
func (b *Ball) ClearDirty()            { b.dirty = false }
func (b *Ball) Clock() float64         { return b.clock }
func (b *Ball) Flags() Flags           { return b.flags }
func (b *Ball) Multiplier() float64    { return b.multiplier }
func (b *Ball) Field() Field           { return b.field }
func (b *Ball) SetVelocity(v Velocity) { b.vel = v; b.dirty = true }

// SetRect moves the ball without any collision handling.
func (b *Ball) SetRect(r core.RectF) { b.rect = r; b.dirty = true }

// SetField replaces the play field, e.g. after a terminal resize.
func (b *Ball) SetField(f Field) { b.field = f }

// Center returns the center of the ball's rectangle.
func (b *Ball) Center() (float64, float64) { return b.rect.Center() }

// Radius treats the ball as a circle inscribed in its rectangle width.
func (b *Ball) Radius() float64 { return b.rect.W / 2 }

// MarkCollision records a resolved pairwise collision with peer at the
// current clock. The entry moves to the back so the table stays in time order.
func (b *Ball) MarkCollision(peer int) {
	b.cooldowns.Delete(peer)
	b.cooldowns.Set(peer, b.clock)
}

// CoolingDown reports whether a collision with peer was resolved less than
// window seconds ago.
func (b *Ball) CoolingDown(peer int, window float64) bool {
	at, ok := b.cooldowns.Get(peer)
	return ok && b.clock-at < window
}

// PruneCooldowns drops entries older than window and returns how many went.
func (b *Ball) PruneCooldowns(window float64) int {
	pruned := 0
	for el := b.cooldowns.Front(); el != nil; {
		if b.clock-el.Value < window {
			break
		}
		next := el.Next()
		b.cooldowns.Delete(el.Key)
		el = next
		pruned++
	}
	return pruned
}

// Cooldowns returns the number of peers currently tracked.
func (b *Ball) Cooldowns() int { return b.cooldowns.Len() }
