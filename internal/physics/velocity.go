// Package physics implements the ball engine shared by the paddle games:
// velocity integration, wall and paddle collision resolution, and the
// configurable speed-up rules that accelerate a ball over a round.
//
// Everything here is single-threaded and deterministic. A ball owns its
// velocity, rectangle and timers; paddles and the play field are read-only.
package physics

import "math"

// Velocity is a ball's speed in cells per second on each axis.
// Increment is the additive step used by SpeedUp and must not be negative.
type Velocity struct {
	X, Y      float64
	Increment float64
}

// Scaled returns a copy with both components multiplied by factor.
// Increment is carried over unchanged.
func (v Velocity) Scaled(factor float64) Velocity {
	v.X *= factor
	v.Y *= factor
	return v
}

// Scale multiplies both components in place.
func (v *Velocity) Scale(factor float64) {
	v.X *= factor
	v.Y *= factor
}

// SpeedUp grows both components by Increment away from zero.
// A zero component counts as positive and becomes +Increment.
func (v *Velocity) SpeedUp() {
	v.X = stepAway(v.X, v.Increment)
	v.Y = stepAway(v.Y, v.Increment)
}

func stepAway(c, inc float64) float64 {
	if c >= 0 {
		return c + inc
	}
	return c - inc
}

// Magnitude returns the speed regardless of direction.
func (v Velocity) Magnitude() float64 {
	return math.Hypot(v.X, v.Y)
}

// Angle returns the heading in radians, atan2(y, x).
func (v Velocity) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// Component returns the value on a single axis. AxisBoth is not a component.
func (v Velocity) Component(a Axis) float64 {
	if a == AxisY {
		return v.Y
	}
	return v.X
}

// SetComponent overwrites a single axis.
func (v *Velocity) SetComponent(a Axis, value float64) {
	if a == AxisY {
		v.Y = value
		return
	}
	v.X = value
}
