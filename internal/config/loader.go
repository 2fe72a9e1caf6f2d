package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is returned when a configuration fails validation.
var ErrInvalid = errors.New("config: invalid")

// LoadBear loads the Bear Run configuration.
// Search order: customPath -> ~/.bearrun/configs/bear.yaml -> ./configs/bear.yaml -> embedded default
func LoadBear(customPath string) (BearConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return BearConfig{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := ParseBear(data)
		if err != nil {
			return BearConfig{}, fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("bear.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := ParseBear(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "bear.yaml")); err == nil {
		if cfg, err := ParseBear(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := ParseBear(defaultBearYAML)
	if err != nil {
		return DefaultBearConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// ParseBear decodes YAML on top of the defaults, so partial files only
// override the keys they name, and validates the result.
func ParseBear(data []byte) (BearConfig, error) {
	cfg := DefaultBearConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return BearConfig{}, fmt.Errorf("failed to parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return BearConfig{}, err
	}
	return cfg, nil
}

// Validate checks that the configuration describes a playable world.
func (c BearConfig) Validate() error {
	switch {
	case c.Field.Width <= 0 || c.Field.Height <= 0:
		return fmt.Errorf("%w: field must have positive size", ErrInvalid)
	case c.Field.GroundY <= 0 || c.Field.GroundY > c.Field.Height:
		return fmt.Errorf("%w: ground_y must be inside the field", ErrInvalid)
	case c.Physics.Gravity <= 0:
		return fmt.Errorf("%w: gravity must be positive", ErrInvalid)
	case c.Physics.JumpVelocity >= 0:
		return fmt.Errorf("%w: jump_velocity must be negative (upward)", ErrInvalid)
	case c.Runner.HitRight <= c.Runner.HitLeft || c.Runner.HitHeight <= 0:
		return fmt.Errorf("%w: runner hitbox is empty", ErrInvalid)
	case c.Obstacles.Width <= 2*c.Obstacles.HitInsetX:
		return fmt.Errorf("%w: obstacle hitbox is empty", ErrInvalid)
	case c.Obstacles.ShortHeight <= c.Obstacles.HitInsetTop || c.Obstacles.TallHeight < c.Obstacles.ShortHeight:
		return fmt.Errorf("%w: obstacle heights must satisfy inset < short <= tall", ErrInvalid)
	case c.Obstacles.MinGap <= 0 || c.Obstacles.MinGap > c.Obstacles.BaseGap:
		return fmt.Errorf("%w: min_gap must be in (0, base_gap]", ErrInvalid)
	case c.Obstacles.SpawnRate < 0 || c.Obstacles.TallChance < 0 || c.Obstacles.TallChance > 1:
		return fmt.Errorf("%w: probabilities must be within [0, 1]", ErrInvalid)
	case c.Night.Threshold < 0 || c.Night.Step <= 0 || c.Night.Step > 1:
		return fmt.Errorf("%w: night step must be in (0, 1]", ErrInvalid)
	case c.Difficulty.BaseSpeed <= 0 || c.Difficulty.SpeedStep < 0:
		return fmt.Errorf("%w: speeds must be positive", ErrInvalid)
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".bearrun", "configs", filename)
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *BearConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
	case DifficultyEasy:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.BaseSpeed = 4.0
		cfg.Obstacles.SpawnRate = 0.015
	case DifficultyNormal:
		cfg.Difficulty.Enabled = true
	case DifficultyHard:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.BaseSpeed = 6.0
		cfg.Obstacles.TallAfter = 0
	}
}
