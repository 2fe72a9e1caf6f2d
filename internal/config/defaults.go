package config

import (
	_ "embed"
)

//go:embed defaults/bear.yaml
var defaultBearYAML []byte

// DefaultBearConfig returns the default Bear Run configuration.
// It mirrors defaults/bear.yaml and is used if the embedded file fails to parse.
func DefaultBearConfig() BearConfig {
	return BearConfig{
		Field: Field{
			Width:   800,
			Height:  300,
			GroundY: 230,
		},
		Physics: Physics{
			Gravity:      0.6,
			JumpVelocity: -12,
			AnimRate:     0.15,
		},
		Runner: Runner{
			X:         80,
			HitLeft:   6,
			HitRight:  34,
			HitHeight: 48,
		},
		Obstacles: Obstacles{
			Width:       30,
			ShortHeight: 20,
			TallHeight:  38,
			HitInsetX:   4,
			HitInsetTop: 4,
			SpawnOffset: 20,
			PruneMargin: 10,
			BaseGap:     280,
			GapShrink:   8,
			MinGap:      180,
			SpawnRate:   0.02,
			TallAfter:   5,
			TallChance:  0.4,
		},
		Night: Night{
			Threshold: 17,
			Step:      0.005,
		},
		Difficulty: DifficultyConfig{
			Enabled:   true,
			BaseSpeed: 5.0,
			SpeedStep: 0.5,
			StepEvery: 5,
		},
	}
}

// DefaultYAML returns the embedded default YAML, e.g. for `config print`.
func DefaultYAML() []byte {
	return defaultBearYAML
}
