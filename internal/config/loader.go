package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// load resolves one game's config.
// Search order: customPath -> ~/.arcade/configs/<name>.yaml -> ./configs/<name>.yaml -> embedded default
func load[T any](name, customPath string, embedded []byte, fallback func() T) (T, error) {
	var cfg T

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(name + ".yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			var user T
			if err := yaml.Unmarshal(data, &user); err == nil {
				return user, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", name+".yaml")); err == nil {
		var local T
		if err := yaml.Unmarshal(data, &local); err == nil {
			return local, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(embedded, &cfg); err != nil {
		return fallback(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// LoadPaddleSlap loads Paddle Slap configuration.
func LoadPaddleSlap(customPath string) (PaddleSlapConfig, error) {
	return load("paddleslap", customPath, defaultPaddleSlapYAML, DefaultPaddleSlapConfig)
}

// LoadPong loads Pong configuration.
func LoadPong(customPath string) (PongConfig, error) {
	return load("pong", customPath, defaultPongYAML, DefaultPongConfig)
}

// LoadSim loads the headless simulation configuration.
func LoadSim(customPath string) (SimConfig, error) {
	return load("sim", customPath, defaultSimYAML, DefaultSimConfig)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// ApplyBallPreset tunes how hard a ball accelerates. The fixed preset turns
// every speed-up off so the serve speed holds for the whole round.
func ApplyBallPreset(cfg *BallConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Multiplier = 1 + (cfg.Multiplier-1)/2
		cfg.Interval *= 2
	case DifficultyHard:
		cfg.Multiplier = 1 + (cfg.Multiplier-1)*1.5
		cfg.Interval /= 2
		cfg.Speed *= 1.25
	case DifficultyFixed:
		cfg.SpeedUps = []string{"none"}
		cfg.Increment = 0
	}
}

func applyDifficultyPreset(cfg *DifficultyConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Enabled = false
	} else {
		cfg.Enabled = true
		cfg.InitialLevel = InitialLevelForPreset(preset)
	}
}

// ApplyPaddleSlapPreset modifies the config based on a difficulty preset.
func ApplyPaddleSlapPreset(cfg *PaddleSlapConfig, preset DifficultyPreset) {
	applyDifficultyPreset(&cfg.Difficulty, preset)
	ApplyBallPreset(&cfg.Ball, preset)

	switch preset {
	case DifficultyEasy:
		cfg.Gameplay.Balls = 1
		cfg.Paddles.Height += 2
	case DifficultyHard:
		cfg.Gameplay.Balls = 3
	}
}

// ApplyPongPreset modifies the config based on a difficulty preset.
func ApplyPongPreset(cfg *PongConfig, preset DifficultyPreset) {
	applyDifficultyPreset(&cfg.Difficulty, preset)
	ApplyBallPreset(&cfg.Ball, preset)
}
