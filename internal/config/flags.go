package config

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/paddle-arcade/internal/core"
	"github.com/vovakirdan/paddle-arcade/internal/physics"
)

// namedFlags are the aggregate names accepted in speed_ups lists.
var namedFlags = map[string]physics.Flags{
	"none":                 physics.None,
	"default":              physics.DefaultFlags,
	"all":                  physics.All,
	"continuous":           physics.AllContinuous,
	"paddle":               physics.AllPaddle,
	"wall":                 physics.AllWall,
	"uniform":              physics.AllUniform,
	"legacy_linear":        physics.LegacyLinear,
	"legacy_logarithmic":   physics.LegacyLogarithmic,
	"legacy_logarithmic_x": physics.LegacyLogarithmicX,
	"legacy_logarithmic_y": physics.LegacyLogarithmicY,
	"legacy_exponential":   physics.LegacyExponential,
	"legacy_exponential_x": physics.LegacyExponentialX,
	"legacy_exponential_y": physics.LegacyExponentialY,
}

// ParseFlags combines a speed_ups list into one flag set. Each entry is an
// aggregate name ("wall", "all", "legacy_linear", ...) or a single mode in
// trigger:curve[:axis] form ("paddle:per_axis:x", "wall:uniform").
//
// An empty list means the engine default. Use "none" to turn speed-ups off.
func ParseFlags(entries []string) (physics.Flags, error) {
	if len(entries) == 0 {
		return physics.DefaultFlags, nil
	}

	flags := physics.None
	for i, entry := range entries {
		key := strings.ToLower(strings.TrimSpace(entry))
		if f, ok := namedFlags[key]; ok {
			flags |= f
			continue
		}
		m, err := physics.ParseMode(key)
		if err != nil {
			return physics.None, fmt.Errorf("config: speed_ups[%d]: %w", i, err)
		}
		flags = flags.With(m)
	}
	return flags, nil
}

// FormatFlags is the inverse of ParseFlags, one mode per entry.
func FormatFlags(flags physics.Flags) []string {
	modes := flags.Modes()
	if len(modes) == 0 {
		return []string{"none"}
	}
	out := make([]string, len(modes))
	for i, m := range modes {
		out[i] = m.String()
	}
	return out
}

// Options turns the ball config into construction options. Size and serve
// speed are left to the caller since games spawn balls themselves.
func (b BallConfig) Options() ([]physics.Option, error) {
	flags, err := ParseFlags(b.SpeedUps)
	if err != nil {
		return nil, err
	}
	return []physics.Option{
		physics.WithFlags(flags),
		physics.WithMultiplier(b.Multiplier),
		physics.WithInterval(b.Interval),
		physics.WithEdgeInset(b.EdgeInset),
		physics.WithBounce(b.BounceTopBottom, b.BounceLeftRight),
		physics.WithIncrement(b.Increment),
	}, nil
}

// Rect converts the config rectangle for the physics engine.
func (r RectConfig) Rect() core.RectF {
	return core.NewRectF(r.X, r.Y, r.W, r.H)
}
