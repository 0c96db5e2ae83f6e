package physics

import "math"

// HeadingBall drives a Ball by heading and speed instead of raw velocity, for
// games written against the older angle-based model. It is a view over the
// same Ball; ticking, walls and dirty tracking all go through the embedded
// ball.
//
// Headings are in degrees, 0 pointing right and 90 pointing down the screen.
type HeadingBall struct {
	*Ball
}

// NewHeadingBall wraps an existing ball.
func NewHeadingBall(b *Ball) *HeadingBall {
	return &HeadingBall{Ball: b}
}

// Heading returns the direction of travel in [0, 360).
func (h *HeadingBall) Heading() float64 {
	return normalizeDegrees(h.vel.Angle() * 180 / math.Pi)
}

// Speed returns the magnitude of the velocity.
func (h *HeadingBall) Speed() float64 {
	return h.vel.Magnitude()
}

// SetHeading points the ball at deg with the given speed. The velocity
// increment is left alone.
func (h *HeadingBall) SetHeading(deg, speed float64) {
	rad := deg * math.Pi / 180
	h.vel.X = speed * math.Cos(rad)
	h.vel.Y = speed * math.Sin(rad)
	h.dirty = true
}

// Bounce mirrors the heading horizontally, skews it by diff degrees, and then
// steps both components up by the velocity increment.
func (h *HeadingBall) Bounce(diff float64) {
	heading := normalizeDegrees(180-h.Heading()) - diff
	h.SetHeading(heading, h.Speed())
	h.vel.SpeedUp()
}

// BouncePaddle is the heading flavour of ResolvePaddle: on overlap the ball
// bounces with the given skew before being pushed out of the paddle.
func (h *HeadingBall) BouncePaddle(p Paddle, diff float64) bool {
	if !h.alive {
		return false
	}
	pr := p.Rect()
	if !h.rect.Intersects(pr) {
		return false
	}

	h.Bounce(diff)
	h.escapePaddle(pr)
	h.playSound()
	h.accelerate(TriggerPaddle)
	return true
}

func normalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}
