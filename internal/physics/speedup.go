package physics

import (
	"fmt"
	"math/bits"
	"strings"
)

// Trigger is the event that may accelerate a ball.
type Trigger uint8

const (
	TriggerContinuous Trigger = iota // time based, gated by the speed-up interval
	TriggerPaddle                    // the ball bounced off a paddle
	TriggerWall                      // the ball bounced off a field edge
)

var triggerNames = [...]string{"continuous", "paddle", "wall"}

func (t Trigger) String() string {
	if int(t) < len(triggerNames) {
		return triggerNames[t]
	}
	return fmt.Sprintf("trigger(%d)", t)
}

// Axis selects which velocity component a curve acts on.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
	AxisBoth
)

var axisNames = [...]string{"x", "y", "both"}

func (a Axis) String() string {
	if int(a) < len(axisNames) {
		return axisNames[a]
	}
	return fmt.Sprintf("axis(%d)", a)
}

// Curve is the rule used to grow a velocity component.
type Curve uint8

const (
	// CurveUniform multiplies both components together, keeping the heading.
	CurveUniform Curve = iota
	// CurvePerAxis multiplies one component only, which bends the heading.
	// Older configs call this curve "logarithmic"; it has always been a plain
	// multiply.
	CurvePerAxis
	// CurveExponential grows a component by multiplier^(|c|/100), so fast
	// balls accelerate harder than slow ones.
	CurveExponential
)

var curveNames = [...]string{"uniform", "per_axis", "exponential"}

func (c Curve) String() string {
	if int(c) < len(curveNames) {
		return curveNames[c]
	}
	return fmt.Sprintf("curve(%d)", c)
}

// Mode is one atomic speed-up capability. Uniform modes are axis-less and
// always carry AxisBoth; per-axis and exponential modes carry AxisX or AxisY.
type Mode struct {
	Trigger Trigger
	Axis    Axis
	Curve   Curve
}

// modesPerTrigger is the number of atomic modes one trigger can hold:
// uniform, per-axis x/y, exponential x/y.
const modesPerTrigger = 5

// Valid reports whether the mode is one of the fifteen atomic modes.
func (m Mode) Valid() bool {
	if m.Trigger > TriggerWall {
		return false
	}
	switch m.Curve {
	case CurveUniform:
		return m.Axis == AxisBoth
	case CurvePerAxis, CurveExponential:
		return m.Axis == AxisX || m.Axis == AxisY
	default:
		return false
	}
}

// slot is the bit position of the mode inside its trigger's group.
func (m Mode) slot() int {
	switch m.Curve {
	case CurvePerAxis:
		return 1 + int(m.Axis)
	case CurveExponential:
		return 3 + int(m.Axis)
	default:
		return 0
	}
}

// Flag returns the single-bit flag value for the mode, or None when the
// mode is not valid.
func (m Mode) Flag() Flags {
	if !m.Valid() {
		return None
	}
	return Flags(1) << (int(m.Trigger)*modesPerTrigger + m.slot())
}

// String renders the mode as trigger:curve[:axis], the form used in configs.
func (m Mode) String() string {
	if m.Curve == CurveUniform {
		return m.Trigger.String() + ":" + m.Curve.String()
	}
	return m.Trigger.String() + ":" + m.Curve.String() + ":" + m.Axis.String()
}

// ParseMode parses the trigger:curve[:axis] form produced by Mode.String.
// "linear" is accepted for uniform and "logarithmic" for per_axis.
func ParseMode(s string) (Mode, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return Mode{}, fmt.Errorf("physics: malformed speed-up mode %q", s)
	}

	var m Mode
	switch parts[0] {
	case "continuous":
		m.Trigger = TriggerContinuous
	case "paddle":
		m.Trigger = TriggerPaddle
	case "wall":
		m.Trigger = TriggerWall
	default:
		return Mode{}, fmt.Errorf("physics: unknown trigger %q in %q", parts[0], s)
	}

	switch parts[1] {
	case "uniform", "linear":
		m.Curve = CurveUniform
		m.Axis = AxisBoth
	case "per_axis", "logarithmic":
		m.Curve = CurvePerAxis
	case "exponential":
		m.Curve = CurveExponential
	default:
		return Mode{}, fmt.Errorf("physics: unknown curve %q in %q", parts[1], s)
	}

	if m.Curve != CurveUniform {
		if len(parts) != 3 {
			return Mode{}, fmt.Errorf("physics: curve %s needs an axis in %q", m.Curve, s)
		}
		switch parts[2] {
		case "x":
			m.Axis = AxisX
		case "y":
			m.Axis = AxisY
		default:
			return Mode{}, fmt.Errorf("physics: unknown axis %q in %q", parts[2], s)
		}
	} else if len(parts) == 3 {
		return Mode{}, fmt.Errorf("physics: uniform curve takes no axis in %q", s)
	}

	return m, nil
}

// Flags is a set of atomic modes combined with bitwise OR.
// Any subset is legal, including None.
type Flags uint16

// Atomic flags. The order matches Mode.Flag: five slots per trigger.
const (
	ContinuousUniform Flags = 1 << iota
	ContinuousPerAxisX
	ContinuousPerAxisY
	ContinuousExponentialX
	ContinuousExponentialY
	PaddleUniform
	PaddlePerAxisX
	PaddlePerAxisY
	PaddleExponentialX
	PaddleExponentialY
	WallUniform
	WallPerAxisX
	WallPerAxisY
	WallExponentialX
	WallExponentialY
)

// Aggregates.
const (
	None Flags = 0

	AllContinuous = ContinuousUniform | ContinuousPerAxisX | ContinuousPerAxisY |
		ContinuousExponentialX | ContinuousExponentialY
	AllPaddle = PaddleUniform | PaddlePerAxisX | PaddlePerAxisY |
		PaddleExponentialX | PaddleExponentialY
	AllWall = WallUniform | WallPerAxisX | WallPerAxisY |
		WallExponentialX | WallExponentialY
	All = AllContinuous | AllPaddle | AllWall

	// AllUniform accelerates on every trigger without bending the heading.
	AllUniform = ContinuousUniform | PaddleUniform | WallUniform
)

// Single-curve aliases kept for configs written before triggers existed.
// Every legacy mode was continuous.
const (
	LegacyLinear       = ContinuousUniform
	LegacyLogarithmicX = ContinuousPerAxisX
	LegacyLogarithmicY = ContinuousPerAxisY
	LegacyLogarithmic  = ContinuousPerAxisX | ContinuousPerAxisY
	LegacyExponentialX = ContinuousExponentialX
	LegacyExponentialY = ContinuousExponentialY
	LegacyExponential  = ContinuousExponentialX | ContinuousExponentialY
)

// DefaultFlags is the mild continuous horizontal speed-up most games start with.
const DefaultFlags = ContinuousPerAxisX

// FlagsOf combines modes into a flag set. Invalid modes are ignored.
func FlagsOf(modes ...Mode) Flags {
	return None.With(modes...)
}

// With returns the set extended by the given modes.
func (f Flags) With(modes ...Mode) Flags {
	for _, m := range modes {
		f |= m.Flag()
	}
	return f
}

// Has reports whether the mode is in the set.
func (f Flags) Has(m Mode) bool {
	flag := m.Flag()
	return flag != None && f&flag == flag
}

// Len returns the number of atomic modes in the set.
func (f Flags) Len() int {
	return bits.OnesCount16(uint16(f & All))
}

// Modes lists the atomic modes in the set in flag order.
func (f Flags) Modes() []Mode {
	var out []Mode
	for _, m := range AllModes() {
		if f.Has(m) {
			out = append(out, m)
		}
	}
	return out
}

func (f Flags) String() string {
	modes := f.Modes()
	if len(modes) == 0 {
		return "none"
	}
	names := make([]string, len(modes))
	for i, m := range modes {
		names[i] = m.String()
	}
	return strings.Join(names, "|")
}

// AllModes returns the fifteen atomic modes in flag order.
func AllModes() []Mode {
	out := make([]Mode, 0, 3*modesPerTrigger)
	for t := TriggerContinuous; t <= TriggerWall; t++ {
		out = append(out,
			Mode{Trigger: t, Axis: AxisBoth, Curve: CurveUniform},
			Mode{Trigger: t, Axis: AxisX, Curve: CurvePerAxis},
			Mode{Trigger: t, Axis: AxisY, Curve: CurvePerAxis},
			Mode{Trigger: t, Axis: AxisX, Curve: CurveExponential},
			Mode{Trigger: t, Axis: AxisY, Curve: CurveExponential},
		)
	}
	return out
}
