package physics

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Ball-to-ball defaults.
const (
	DefaultRestitution       = 1.0
	DefaultCollisionCooldown = 0.1 // seconds a resolved pair is left alone
)

// BallCollisionResolver bounces balls off each other. Balls never do this on
// their own; a scene that wants it runs the resolver after ticking its balls.
//
// Balls are treated as equal-mass circles inscribed in their rectangles and
// must carry distinct IDs, which key the per-peer cooldown tables.
type BallCollisionResolver struct {
	// Restitution 1 swaps the normal components (fully elastic); 0 leaves
	// each ball's normal component where it was.
	Restitution float64
	Cooldown    float64
	Sound       Sound
}

// NewBallCollisionResolver returns a fully elastic resolver.
func NewBallCollisionResolver() *BallCollisionResolver {
	return &BallCollisionResolver{
		Restitution: DefaultRestitution,
		Cooldown:    DefaultCollisionCooldown,
	}
}

// Resolve handles every overlapping, approaching pair among the live balls
// and returns how many pairs were resolved.
func (r *BallCollisionResolver) Resolve(balls []*Ball) int {
	for _, b := range balls {
		b.PruneCooldowns(r.Cooldown)
	}

	resolved := 0
	for i := 0; i < len(balls); i++ {
		a := balls[i]
		if !a.Alive() {
			continue
		}
		for j := i + 1; j < len(balls); j++ {
			b := balls[j]
			if !b.Alive() {
				continue
			}
			if a.CoolingDown(b.ID(), r.Cooldown) || b.CoolingDown(a.ID(), r.Cooldown) {
				continue
			}
			if r.resolvePair(a, b) {
				resolved++
			}
		}
	}
	return resolved
}

func (r *BallCollisionResolver) resolvePair(a, b *Ball) bool {
	ca := centerVec(a)
	cb := centerVec(b)
	delta := cb.Sub(ca)
	dist := delta.Len()
	minDist := a.Radius() + b.Radius()
	if dist >= minDist {
		return false
	}

	n := mgl64.Vec2{1, 0}
	if dist > 0 {
		n = delta.Mul(1 / dist)
	}

	va := velocityVec(a.vel)
	vb := velocityVec(b.vel)
	if va.Sub(vb).Dot(n) <= 0 {
		return false
	}

	// Split into normal and tangent parts; only the normal parts are exchanged.
	an := va.Dot(n)
	bn := vb.Dot(n)
	at := va.Sub(n.Mul(an))
	bt := vb.Sub(n.Mul(bn))

	e := r.Restitution
	newAn := e*bn + (1-e)*an
	newBn := e*an + (1-e)*bn

	a.setVelocityVec(at.Add(n.Mul(newAn)))
	b.setVelocityVec(bt.Add(n.Mul(newBn)))

	// Push apart until the circles just touch.
	push := n.Mul((minDist - dist) / 2)
	a.rect = a.rect.Translate(-push.X(), -push.Y())
	b.rect = b.rect.Translate(push.X(), push.Y())

	a.MarkCollision(b.ID())
	b.MarkCollision(a.ID())
	if r.Sound != nil {
		r.Sound.PlayCollision()
	}
	return true
}

func centerVec(b *Ball) mgl64.Vec2 {
	x, y := b.Center()
	return mgl64.Vec2{x, y}
}

func velocityVec(v Velocity) mgl64.Vec2 {
	return mgl64.Vec2{v.X, v.Y}
}

func (b *Ball) setVelocityVec(v mgl64.Vec2) {
	b.vel.X = v.X()
	b.vel.Y = v.Y()
	b.dirty = true
}
