package physics

import (
	"testing"

	"github.com/vovakirdan/paddle-arcade/internal/core"
)

func newHeadingBall(opts ...Option) *HeadingBall {
	base := []Option{
		WithRect(core.NewRectF(10, 10, 1, 1)),
		WithFlags(None),
	}
	return NewHeadingBall(NewBall(NewField(80, 24), append(base, opts...)...))
}

func TestHeadingRoundTrip(t *testing.T) {
	tests := []struct {
		heading float64
		speed   float64
		wantX   float64
		wantY   float64
	}{
		{0, 5, 5, 0},
		{90, 2, 0, 2},
		{180, 3, -3, 0},
		{225, 1, -0.7071067811865476, -0.7071067811865476},
	}

	for _, tc := range tests {
		h := newHeadingBall()
		h.SetHeading(tc.heading, tc.speed)

		v := h.Velocity()
		if !approxEqual(v.X, tc.wantX, eps) || !approxEqual(v.Y, tc.wantY, eps) {
			t.Errorf("SetHeading(%v, %v) velocity = (%v, %v), expected (%v, %v)",
				tc.heading, tc.speed, v.X, v.Y, tc.wantX, tc.wantY)
		}
		if !approxEqual(h.Heading(), tc.heading, 1e-9) {
			t.Errorf("Heading() = %v, expected %v", h.Heading(), tc.heading)
		}
		if !approxEqual(h.Speed(), tc.speed, eps) {
			t.Errorf("Speed() = %v, expected %v", h.Speed(), tc.speed)
		}
	}
}

func TestHeadingKeepsIncrement(t *testing.T) {
	h := newHeadingBall(WithIncrement(0.5))
	h.SetHeading(45, 3)
	if got := h.Velocity().Increment; got != 0.5 {
		t.Errorf("Increment = %v, expected 0.5", got)
	}
}

func TestHeadingBounce(t *testing.T) {
	tests := []struct {
		name    string
		heading float64
		diff    float64
		want    float64
	}{
		{"mirror", 30, 0, 150},
		{"mirror back", 150, 0, 30},
		{"skewed", 0, 10, 170},
		{"wraps", 200, 0, 340},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newHeadingBall()
			h.SetHeading(tc.heading, 10)
			h.Bounce(tc.diff)

			if !approxEqual(h.Heading(), tc.want, 1e-9) {
				t.Errorf("Heading() = %v, expected %v", h.Heading(), tc.want)
			}
			if !approxEqual(h.Speed(), 10, 1e-9) {
				t.Errorf("Speed() = %v, expected 10 with zero increment", h.Speed())
			}
		})
	}
}

func TestHeadingBounceSpeedsUp(t *testing.T) {
	h := newHeadingBall(WithIncrement(1))
	h.SetHeading(0, 4)
	h.Bounce(0)

	v := h.Velocity()
	if !approxEqual(v.X, -5, eps) {
		t.Errorf("speed.x = %v, expected -5", v.X)
	}
	if !approxEqual(v.Y, 1, eps) {
		t.Errorf("speed.y = %v, expected 1", v.Y)
	}
}

func TestHeadingBouncePaddle(t *testing.T) {
	sound := &countingSound{}
	h := newHeadingBall(WithSound(sound))
	h.SetHeading(0, 5)
	paddle := StaticPaddle(core.NewRectF(10.5, 5, 1, 10))

	if !h.BouncePaddle(paddle, 0) {
		t.Fatal("BouncePaddle() = false, expected a hit")
	}
	if got := h.Velocity().X; !approxEqual(got, -5, eps) {
		t.Errorf("speed.x = %v, expected -5", got)
	}
	if got := h.Rect().X; got != 9.5 {
		t.Errorf("rect.x = %v, expected 9.5", got)
	}
	if sound.plays != 1 {
		t.Errorf("sound played %d times, expected 1", sound.plays)
	}

	if h.BouncePaddle(paddle, 0) {
		t.Error("BouncePaddle() hit again after the ball was pushed out")
	}
}

func TestHeadingBallTicksThroughBall(t *testing.T) {
	h := newHeadingBall()
	h.SetHeading(90, 2)
	h.Tick(1)

	if got := h.Rect().Y; !approxEqual(got, 12, eps) {
		t.Errorf("rect.y = %v, expected 12", got)
	}
}
