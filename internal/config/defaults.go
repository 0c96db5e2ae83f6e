package config

import (
	_ "embed"
)

//go:embed defaults/paddleslap.yaml
var defaultPaddleSlapYAML []byte

//go:embed defaults/pong.yaml
var defaultPongYAML []byte

//go:embed defaults/sim.yaml
var defaultSimYAML []byte

// DefaultBallConfig returns the engine defaults as a ball config.
func DefaultBallConfig() BallConfig {
	return BallConfig{
		Size:            1,
		Speed:           30,
		Multiplier:      1.15,
		Interval:        1.0,
		EdgeInset:       1,
		BounceTopBottom: true,
		BounceLeftRight: false,
		SpeedUps:        []string{"continuous:per_axis:x"},
	}
}

// DefaultPaddleSlapConfig returns the default Paddle Slap configuration.
func DefaultPaddleSlapConfig() PaddleSlapConfig {
	ball := DefaultBallConfig()
	ball.MaxSpeed = 120
	ball.SpeedUps = []string{"continuous:per_axis:x", "paddle:per_axis:x", "wall:uniform"}
	ball.Multiplier = 1.05

	return PaddleSlapConfig{
		Ball: ball,
		Paddles: PaddleConfig{
			Height: 5,
			Width:  1,
			Offset: 2,
			Speed:  60,
		},
		Gameplay: PaddleSlapPlay{
			Balls:          2,
			WinScore:       11,
			ServeDelay:     45,
			BallCollisions: true,
			Restitution:    1.0,
			Cooldown:       0.1,
		},
		CPU: CPUConfig{
			MinSkill: 0.55,
			MaxSkill: 0.85,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 20,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.5,
				SkillBonus:      0.2,
				PaddleReduction: 2,
			},
		},
	}
}

// DefaultPongConfig returns the default Pong configuration.
func DefaultPongConfig() PongConfig {
	ball := DefaultBallConfig()
	ball.Increment = 1.5
	ball.MaxSpeed = 90
	ball.SpeedUps = []string{"none"}

	return PongConfig{
		Ball: ball,
		Paddles: PaddleConfig{
			Height: 5,
			Width:  1,
			Offset: 2,
			Speed:  60,
		},
		Gameplay: PongGameplay{
			WinScore:   5,
			ServeDelay: 60,
			Spin:       25,
		},
		CPU: CPUConfig{
			MinSkill: 0.6,
			MaxSkill: 0.85,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "time",
				MaxAt: 36000, // 10 minutes at 60fps
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 0.5,
				SkillBonus:      0.1,
				PaddleReduction: 0,
			},
		},
	}
}

// DefaultSimConfig returns the default headless simulation.
func DefaultSimConfig() SimConfig {
	ball := DefaultBallConfig()
	ball.SpeedUps = []string{"continuous:exponential:x", "wall:uniform"}

	return SimConfig{
		Field:  FieldConfig{Width: 80, Height: 24},
		Ticks:  600,
		TickHz: 60,
		Seed:   1,
		Ball:   ball,
		Paddles: []RectConfig{
			{X: 2, Y: 0, W: 1, H: 24},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "paddleslap":
		return defaultPaddleSlapYAML
	case "pong":
		return defaultPongYAML
	case "sim":
		return defaultSimYAML
	default:
		return nil
	}
}
