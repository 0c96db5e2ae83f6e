package physics

import "github.com/vovakirdan/paddle-arcade/internal/core"

// Field is the play area. The origin is the top-left corner and y grows down.
type Field struct {
	W, H float64
}

// NewField creates a play field of the given size.
func NewField(w, h float64) Field {
	return Field{W: w, H: h}
}

// Contains reports whether the rectangle lies fully inside the field.
func (f Field) Contains(r core.RectF) bool {
	return r.X >= 0 && r.Y >= 0 && r.Right() <= f.W && r.Bottom() <= f.H
}

// Side indicates which edge of the field (or of a paddle) was involved.
type Side int

const (
	SideNone Side = iota
	SideTop
	SideBottom
	SideLeft
	SideRight
)

func (s Side) String() string {
	switch s {
	case SideTop:
		return "top"
	case SideBottom:
		return "bottom"
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return "none"
	}
}

// Vertical reports whether the side belongs to the top/bottom axis.
func (s Side) Vertical() bool {
	return s == SideTop || s == SideBottom
}

// resolveBoundary bounces the ball off every crossed edge whose axis has
// bouncing enabled. Bounced balls are moved EdgeInset cells inside the edge
// so the same crossing does not fire again on the next tick.
//
// A crossing on an axis with bouncing disabled stops resolution and is
// returned as exit; the caller decides what to do with the ball.
func (b *Ball) resolveBoundary() (hits []Side, exit Side) {
	switch {
	case b.rect.Y < 0:
		if !b.bounceTopBottom {
			return hits, SideTop
		}
		b.rect.Y = b.inset
		hits = append(hits, b.bounceOff(SideTop))
	case b.rect.Bottom() > b.field.H:
		if !b.bounceTopBottom {
			return hits, SideBottom
		}
		b.rect.Y = b.field.H - b.rect.H - b.inset
		hits = append(hits, b.bounceOff(SideBottom))
	}

	switch {
	case b.rect.X < 0:
		if !b.bounceLeftRight {
			return hits, SideLeft
		}
		b.rect.X = b.inset
		hits = append(hits, b.bounceOff(SideLeft))
	case b.rect.Right() > b.field.W:
		if !b.bounceLeftRight {
			return hits, SideRight
		}
		b.rect.X = b.field.W - b.rect.W - b.inset
		hits = append(hits, b.bounceOff(SideRight))
	}

	return hits, SideNone
}

// bounceOff reverses the component normal to the side, then runs the wall
// trigger.
func (b *Ball) bounceOff(side Side) Side {
	if side.Vertical() {
		b.vel.Y = -b.vel.Y
	} else {
		b.vel.X = -b.vel.X
	}
	b.dirty = true
	b.playSound()
	b.accelerate(TriggerWall)
	return side
}
