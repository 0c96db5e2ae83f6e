package physics

import (
	"math"

	"github.com/vovakirdan/paddle-arcade/internal/core"
)

// Paddle is anything the ball can be struck by. The engine only reads its
// rectangle.
type Paddle interface {
	Rect() core.RectF
}

// StaticPaddle is a paddle with a fixed rectangle, handy for tests and
// headless simulation.
type StaticPaddle core.RectF

// Rect implements Paddle.
func (p StaticPaddle) Rect() core.RectF {
	return core.RectF(p)
}

// ResolvePaddle handles a hit from the paddle if the two rectangles overlap.
//
// The ball is pushed fully outside the paddle on the side its center is on,
// and its horizontal velocity is pointed away from the paddle. The vertical
// component is never touched. Returns whether a hit was resolved.
func (b *Ball) ResolvePaddle(p Paddle) bool {
	if !b.alive {
		return false
	}
	pr := p.Rect()
	if !b.rect.Intersects(pr) {
		return false
	}

	b.escapePaddle(pr)
	b.dirty = true
	b.playSound()
	b.accelerate(TriggerPaddle)
	return true
}

// escapePaddle repositions the ball against the paddle edge facing it and
// forces the horizontal velocity sign to match that escape direction.
func (b *Ball) escapePaddle(pr core.RectF) Side {
	ballCX, _ := b.rect.Center()
	padCX, _ := pr.Center()

	if ballCX < padCX {
		b.rect.X = pr.X - b.rect.W
		b.vel.X = -math.Abs(b.vel.X)
		return SideLeft
	}
	b.rect.X = pr.Right()
	b.vel.X = math.Abs(b.vel.X)
	return SideRight
}
