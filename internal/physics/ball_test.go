package physics

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/paddle-arcade/internal/core"
)

type countingSound struct {
	plays int
}

func (s *countingSound) PlayCollision() { s.plays++ }

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if !cfg.BounceTopBottom || cfg.BounceLeftRight {
		t.Errorf("bounce defaults = (%v, %v), expected (true, false)", cfg.BounceTopBottom, cfg.BounceLeftRight)
	}
	if cfg.Flags != DefaultFlags {
		t.Errorf("Flags = %v, expected %v", cfg.Flags, DefaultFlags)
	}
	if cfg.Multiplier != DefaultMultiplier || cfg.Interval != DefaultInterval {
		t.Errorf("Multiplier/Interval = %v/%v, expected %v/%v",
			cfg.Multiplier, cfg.Interval, DefaultMultiplier, DefaultInterval)
	}
	if cfg.Sound != nil {
		t.Error("default Sound should be nil")
	}
}

func TestWallBounceTopScenario(t *testing.T) {
	b := NewBall(NewField(80, 24),
		WithRect(core.NewRectF(10, -5, 1, 1)),
		WithVelocity(Velocity{X: 0, Y: -2}),
		WithFlags(None),
		WithEdgeInset(0),
	)

	res := b.Tick(0)

	if got := b.Rect().Y; got != 0 {
		t.Errorf("rect.y = %v, expected 0", got)
	}
	if got := b.Velocity().Y; got != 2 {
		t.Errorf("speed.y = %v, expected 2", got)
	}
	if len(res.WallHits) != 1 || res.WallHits[0] != SideTop {
		t.Errorf("WallHits = %v, expected [top]", res.WallHits)
	}
	if !b.Alive() {
		t.Error("ball should survive a top bounce")
	}
}

func TestWallBounceInset(t *testing.T) {
	tests := []struct {
		name  string
		rect  core.RectF
		vel   Velocity
		wantY float64
		wantV float64
	}{
		{"top", core.NewRectF(10, -0.5, 1, 1), Velocity{Y: -3}, 1, 3},
		{"bottom", core.NewRectF(10, 23.5, 1, 1), Velocity{Y: 3}, 22, -3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := NewBall(NewField(80, 24), WithRect(tc.rect), WithVelocity(tc.vel), WithFlags(None))
			b.Tick(0)

			if got := b.Rect().Y; got != tc.wantY {
				t.Errorf("rect.y = %v, expected %v", got, tc.wantY)
			}
			if got := b.Velocity().Y; got != tc.wantV {
				t.Errorf("speed.y = %v, expected %v", got, tc.wantV)
			}
		})
	}
}

func TestWallBounceAcceleratesOnWallTrigger(t *testing.T) {
	sound := &countingSound{}
	b := NewBall(NewField(80, 24),
		WithRect(core.NewRectF(10, -1, 1, 1)),
		WithVelocity(Velocity{X: 4, Y: -2}),
		WithFlags(WallUniform|PaddlePerAxisX),
		WithMultiplier(1.5),
		WithSound(sound),
	)

	res := b.Tick(0)

	v := b.Velocity()
	if !approxEqual(v.X, 6, eps) || !approxEqual(v.Y, 3, eps) {
		t.Errorf("velocity = (%v, %v), expected (6, 3)", v.X, v.Y)
	}
	if res.SpeedUps != 1 {
		t.Errorf("SpeedUps = %d, expected 1", res.SpeedUps)
	}
	if sound.plays != 1 {
		t.Errorf("sound played %d times, expected 1", sound.plays)
	}
}

func TestLifecycleRightEdge(t *testing.T) {
	tests := []struct {
		name      string
		leftRight bool
		wantAlive bool
	}{
		{"bounce disabled destroys", false, false},
		{"bounce enabled reflects", true, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := NewBall(NewField(80, 24),
				WithRect(core.NewRectF(79.5, 10, 1, 1)),
				WithVelocity(Velocity{X: 10, Y: 0}),
				WithBounce(true, tc.leftRight),
				WithFlags(None),
			)

			res := b.Tick(0.1)

			if b.Alive() != tc.wantAlive {
				t.Fatalf("Alive() = %v, expected %v", b.Alive(), tc.wantAlive)
			}
			if tc.wantAlive {
				if b.Velocity().X >= 0 {
					t.Errorf("speed.x = %v, expected the sign to flip", b.Velocity().X)
				}
				if got := b.Rect().X; got != 78 {
					t.Errorf("rect.x = %v, expected 78", got)
				}
				return
			}
			if !res.Destroyed || res.Exit != SideRight {
				t.Errorf("TickResult = %+v, expected destroyed through the right edge", res)
			}
			if b.Velocity().X != 10 {
				t.Errorf("speed.x = %v, expected no reversal on a destroyed ball", b.Velocity().X)
			}
		})
	}
}

func TestNoBounceAxesDestroyOnAnyEdge(t *testing.T) {
	b := NewBall(NewField(80, 24),
		WithRect(core.NewRectF(10, 0.5, 1, 1)),
		WithVelocity(Velocity{X: 0, Y: -10}),
		WithBounce(false, false),
	)

	res := b.Tick(0.1)
	if b.Alive() || res.Exit != SideTop {
		t.Errorf("Alive() = %v, Exit = %v, expected dead through top", b.Alive(), res.Exit)
	}

	before := b.Rect()
	b.Tick(1)
	if b.Rect() != before {
		t.Error("Tick() moved a dead ball")
	}
}

func TestBoundaryContainment(t *testing.T) {
	field := NewField(60, 20)
	for seed := int64(1); seed <= 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		b := Spawn(field, rng, 1, 40,
			WithBounce(true, true),
			WithFlags(AllUniform),
			WithMultiplier(1.05),
		)

		for tick := range 600 {
			b.Tick(1.0 / 60)
			r := b.Rect()
			if r.Y < 0 || r.Bottom() > field.H {
				t.Fatalf("seed %d tick %d: rect %+v left the field vertically", seed, tick, r)
			}
			if !b.Alive() {
				t.Fatalf("seed %d tick %d: ball died with both axes bouncing", seed, tick)
			}
		}
	}
}

func TestPaddleBounceScenario(t *testing.T) {
	sound := &countingSound{}
	b := NewBall(NewField(80, 24),
		WithRect(core.NewRectF(10, 10, 1, 1)),
		WithVelocity(Velocity{X: 200, Y: 150}),
		WithFlags(PaddlePerAxisX),
		WithMultiplier(1.4),
		WithSound(sound),
	)
	paddle := StaticPaddle(core.NewRectF(10.5, 5, 1, 10))

	res := b.Tick(0, paddle)

	v := b.Velocity()
	if !approxEqual(v.X, -280, eps) {
		t.Errorf("speed.x = %v, expected -280", v.X)
	}
	if v.Y != 150 {
		t.Errorf("speed.y = %v, expected 150 (unchanged)", v.Y)
	}
	if got := b.Rect().Right(); got != 10.5 {
		t.Errorf("ball right edge = %v, expected paddle left edge 10.5", got)
	}
	if res.PaddleHits != 1 || res.Collisions() != 1 {
		t.Errorf("PaddleHits = %d, Collisions() = %d, expected 1 and 1", res.PaddleHits, res.Collisions())
	}
	if sound.plays != 1 {
		t.Errorf("sound played %d times, expected 1", sound.plays)
	}
}

func TestPaddleEscapeDirection(t *testing.T) {
	paddle := StaticPaddle(core.NewRectF(10.5, 5, 1, 10))
	tests := []struct {
		name   string
		rect   core.RectF
		vel    Velocity
		wantX  float64
		wantVX float64
	}{
		{"left of centre", core.NewRectF(10, 10, 1, 1), Velocity{X: 5, Y: 1}, 9.5, -5},
		{"left of centre moving away", core.NewRectF(10, 10, 1, 1), Velocity{X: -5, Y: 1}, 9.5, -5},
		{"right of centre", core.NewRectF(11.2, 10, 1, 1), Velocity{X: -5, Y: 1}, 11.5, 5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := NewBall(NewField(80, 24), WithRect(tc.rect), WithVelocity(tc.vel), WithFlags(None))
			if !b.ResolvePaddle(paddle) {
				t.Fatal("ResolvePaddle() = false, expected a hit")
			}
			if got := b.Rect().X; !approxEqual(got, tc.wantX, eps) {
				t.Errorf("rect.x = %v, expected %v", got, tc.wantX)
			}
			if got := b.Velocity().X; got != tc.wantVX {
				t.Errorf("speed.x = %v, expected %v", got, tc.wantVX)
			}
			if got := b.Velocity().Y; got != tc.vel.Y {
				t.Errorf("speed.y = %v, expected %v", got, tc.vel.Y)
			}
			if b.Rect().Intersects(paddle.Rect()) {
				t.Error("ball still overlaps the paddle")
			}
		})
	}
}

func TestPaddleMiss(t *testing.T) {
	b := NewBall(NewField(80, 24),
		WithRect(core.NewRectF(2, 2, 1, 1)),
		WithVelocity(Velocity{X: 5, Y: 5}),
		WithFlags(AllPaddle),
	)
	b.ClearDirty()

	if b.ResolvePaddle(StaticPaddle(core.NewRectF(3, 2, 1, 5))) {
		t.Error("ResolvePaddle() = true for touching edges")
	}
	if v := b.Velocity(); v.X != 5 || v.Y != 5 {
		t.Errorf("velocity = %+v, expected unchanged", v)
	}
	if b.Dirty() {
		t.Error("a miss should not mark the ball dirty")
	}
}

func TestContinuousIntervalGate(t *testing.T) {
	b := NewBall(NewField(1000, 1000),
		WithRect(core.NewRectF(500, 500, 1, 1)),
		WithVelocity(Velocity{X: 1, Y: 1}),
		WithFlags(ContinuousUniform),
		WithMultiplier(2),
		WithInterval(1),
	)

	for i := 1; i <= 3; i++ {
		if res := b.Tick(0.25); res.SpeedUps != 0 {
			t.Fatalf("tick %d: SpeedUps = %d before the interval elapsed", i, res.SpeedUps)
		}
	}
	if v := b.Velocity(); v.X != 1 || v.Y != 1 {
		t.Fatalf("velocity = %+v, expected (1, 1) before the interval", v)
	}

	res := b.Tick(0.25)
	if res.SpeedUps != 1 {
		t.Errorf("SpeedUps = %d, expected 1 at the interval", res.SpeedUps)
	}
	if v := b.Velocity(); v.X != 2 || v.Y != 2 {
		t.Errorf("velocity = %+v, expected (2, 2)", v)
	}
	if b.Clock() != 1 {
		t.Errorf("Clock() = %v, expected 1", b.Clock())
	}

	// The next interval starts from the last speed-up, not from zero.
	for range 3 {
		b.Tick(0.25)
	}
	if v := b.Velocity(); v.X != 2 {
		t.Errorf("speed.x = %v, expected 2 mid-interval", v.X)
	}
}

func TestZeroIntervalAcceleratesEveryTick(t *testing.T) {
	b := NewBall(NewField(1000, 1000),
		WithRect(core.NewRectF(500, 500, 1, 1)),
		WithVelocity(Velocity{X: 1, Y: 0}),
		WithFlags(ContinuousPerAxisX),
		WithMultiplier(2),
		WithInterval(0),
	)

	for range 3 {
		b.Tick(0.01)
	}
	if got := b.Velocity().X; got != 8 {
		t.Errorf("speed.x = %v, expected 8", got)
	}
}

func TestSpeedUpNow(t *testing.T) {
	b := NewBall(NewField(80, 24), WithVelocity(Velocity{X: 10, Y: -4}), WithFlags(None))

	b.SpeedUpNow(2, CurveUniform, AxisBoth)
	if v := b.Velocity(); v.X != 20 || v.Y != -8 {
		t.Errorf("after uniform: %+v, expected (20, -8)", v)
	}

	b.SpeedUpNow(1.5, CurvePerAxis, AxisY)
	if v := b.Velocity(); v.X != 20 || v.Y != -12 {
		t.Errorf("after per-axis y: %+v, expected (20, -12)", v)
	}
}

func TestDirtyTracking(t *testing.T) {
	b := NewBall(NewField(80, 24),
		WithRect(core.NewRectF(10, 10, 1, 1)),
		WithVelocity(Velocity{X: 1, Y: 0}),
		WithFlags(None),
	)
	if !b.Dirty() {
		t.Error("new ball should start dirty")
	}

	b.ClearDirty()
	b.Tick(0)
	if b.Dirty() {
		t.Error("a zero-dt tick with no hits should leave the ball clean")
	}

	b.Tick(0.5)
	if !b.Dirty() {
		t.Error("moving should mark the ball dirty")
	}
}

func TestCollisionCooldowns(t *testing.T) {
	b := NewBall(NewField(1000, 1000),
		WithRect(core.NewRectF(500, 500, 1, 1)),
		WithFlags(None),
	)

	b.MarkCollision(2)
	b.MarkCollision(3)
	if !b.CoolingDown(2, 0.1) {
		t.Error("CoolingDown(2) = false right after MarkCollision")
	}
	if b.CoolingDown(4, 0.1) {
		t.Error("CoolingDown(4) = true for an unknown peer")
	}

	b.Tick(0.25)
	if b.CoolingDown(2, 0.1) {
		t.Error("CoolingDown(2) = true after the window passed")
	}
	if n := b.PruneCooldowns(0.1); n != 2 {
		t.Errorf("PruneCooldowns() = %d, expected 2", n)
	}
	if b.Cooldowns() != 0 {
		t.Errorf("Cooldowns() = %d, expected 0", b.Cooldowns())
	}
}
