// Package config provides YAML-based game configuration loading and
// difficulty management for the arcade platform.
package config

// BallConfig describes how a game builds its balls. Speeds are in cells per
// second; the speed-up rules are listed as strings, see ParseFlags.
type BallConfig struct {
	Size            float64  `yaml:"size"`
	Speed           float64  `yaml:"speed"`     // serve speed
	Increment       float64  `yaml:"increment"` // additive step of the heading model
	MaxSpeed        float64  `yaml:"max_speed"` // 0 means uncapped
	Multiplier      float64  `yaml:"multiplier"`
	Interval        float64  `yaml:"interval"` // seconds between continuous speed-ups
	EdgeInset       float64  `yaml:"edge_inset"`
	BounceTopBottom bool     `yaml:"bounce_top_bottom"`
	BounceLeftRight bool     `yaml:"bounce_left_right"`
	SpeedUps        []string `yaml:"speed_ups"`
}

// PaddleConfig defines paddle geometry and movement.
type PaddleConfig struct {
	Height int     `yaml:"height"`
	Width  int     `yaml:"width"`
	Offset int     `yaml:"offset"` // distance from the side edge
	Speed  float64 `yaml:"speed"`  // cells per second
}

// CPUConfig defines the computer opponent.
type CPUConfig struct {
	MinSkill float64 `yaml:"min_skill"` // 0-1, fraction of paddle speed used when tracking
	MaxSkill float64 `yaml:"max_skill"`
}

// PaddleSlapConfig contains all configuration for Paddle Slap.
type PaddleSlapConfig struct {
	Ball       BallConfig       `yaml:"ball"`
	Paddles    PaddleConfig     `yaml:"paddles"`
	Gameplay   PaddleSlapPlay   `yaml:"gameplay"`
	CPU        CPUConfig        `yaml:"cpu"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// PaddleSlapPlay defines round rules for Paddle Slap.
type PaddleSlapPlay struct {
	Balls          int     `yaml:"balls"`       // balls in play at once
	WinScore       int     `yaml:"win_score"`   // points needed by either side
	ServeDelay     int     `yaml:"serve_delay"` // ticks before a respawned ball moves
	BallCollisions bool    `yaml:"ball_collisions"`
	Restitution    float64 `yaml:"restitution"`
	Cooldown       float64 `yaml:"cooldown"` // seconds between two resolutions of the same pair
}

// PongConfig contains all configuration for the Pong template.
type PongConfig struct {
	Ball       BallConfig       `yaml:"ball"`
	Paddles    PaddleConfig     `yaml:"paddles"`
	Gameplay   PongGameplay     `yaml:"gameplay"`
	CPU        CPUConfig        `yaml:"cpu"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// PongGameplay defines round rules for Pong.
type PongGameplay struct {
	WinScore   int     `yaml:"win_score"`
	ServeDelay int     `yaml:"serve_delay"`
	Spin       float64 `yaml:"spin"` // heading skew in degrees at the paddle tip
}

// SimConfig drives a headless run of a single ball.
type SimConfig struct {
	Field   FieldConfig  `yaml:"field"`
	Ticks   int          `yaml:"ticks"`
	TickHz  int          `yaml:"tick_rate"`
	Seed    int64        `yaml:"seed"`
	Ball    BallConfig   `yaml:"ball"`
	Paddles []RectConfig `yaml:"paddles"`
}

// FieldConfig is a play-field size in cells.
type FieldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// RectConfig is a rectangle in cells.
type RectConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to serve speed at max difficulty
	SkillBonus      float64 `yaml:"skill_bonus"`      // CPU skill added at max difficulty
	PaddleReduction int     `yaml:"paddle_reduction"` // Player paddle cells removed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI value to a preset. Unknown values give "".
func ParsePreset(s string) DifficultyPreset {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
