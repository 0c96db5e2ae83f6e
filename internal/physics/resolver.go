package physics

import "math"

// Op is one curve applied to one axis (or both) of a velocity.
type Op struct {
	Axis  Axis
	Curve Curve
}

// Resolve picks the operations a trigger applies under the given flags.
//
// Each axis is decided on its own: exponential beats per-axis, which beats
// uniform. When both axes fall back to uniform a single both-axis op is
// returned; when only one does, the uniform multiplier touches that axis alone.
func Resolve(flags Flags, trigger Trigger) []Op {
	uniform := flags.Has(Mode{Trigger: trigger, Axis: AxisBoth, Curve: CurveUniform})

	var ops []Op
	var uniformAxes []Axis
	for _, axis := range [...]Axis{AxisX, AxisY} {
		switch {
		case flags.Has(Mode{Trigger: trigger, Axis: axis, Curve: CurveExponential}):
			ops = append(ops, Op{Axis: axis, Curve: CurveExponential})
		case flags.Has(Mode{Trigger: trigger, Axis: axis, Curve: CurvePerAxis}):
			ops = append(ops, Op{Axis: axis, Curve: CurvePerAxis})
		case uniform:
			uniformAxes = append(uniformAxes, axis)
		}
	}

	switch len(uniformAxes) {
	case 2:
		ops = append(ops, Op{Axis: AxisBoth, Curve: CurveUniform})
	case 1:
		ops = append(ops, Op{Axis: uniformAxes[0], Curve: CurveUniform})
	}
	return ops
}

// ApplyCurve grows the velocity on the given axis using one curve.
// AxisBoth applies the curve to X and Y independently, which for the uniform
// curve keeps the heading unchanged. Zero components always stay zero.
func ApplyCurve(v *Velocity, axis Axis, curve Curve, multiplier float64) {
	if axis == AxisBoth {
		applyComponent(v, AxisX, curve, multiplier)
		applyComponent(v, AxisY, curve, multiplier)
		return
	}
	applyComponent(v, axis, curve, multiplier)
}

func applyComponent(v *Velocity, axis Axis, curve Curve, m float64) {
	c := v.Component(axis)
	if c == 0 {
		return
	}

	switch curve {
	case CurveUniform, CurvePerAxis:
		c *= m
	case CurveExponential:
		c *= math.Pow(m, math.Abs(c)/100.0)
	}
	v.SetComponent(axis, c)
}

// Accelerate resolves the trigger against the flags and applies the result.
// It returns how many operations ran; zero means the trigger is not configured.
func Accelerate(v *Velocity, flags Flags, multiplier float64, trigger Trigger) int {
	ops := Resolve(flags, trigger)
	for _, op := range ops {
		ApplyCurve(v, op.Axis, op.Curve, multiplier)
	}
	return len(ops)
}
