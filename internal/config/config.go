// Package config provides YAML-based game configuration loading and
// difficulty management for Bear Run.
package config

// BearConfig contains all tunables of the Bear Run simulation.
// World units are pixels of the original 800x300 playfield; Y grows downward.
type BearConfig struct {
	Field      Field            `yaml:"field"`
	Physics    Physics          `yaml:"physics"`
	Runner     Runner           `yaml:"runner"`
	Obstacles  Obstacles        `yaml:"obstacles"`
	Night      Night            `yaml:"night"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// Field defines the visible world.
type Field struct {
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	GroundY float64 `yaml:"ground_y"`
}

// Physics defines the vertical jump arc.
type Physics struct {
	Gravity      float64 `yaml:"gravity"`       // Added to velocity every airborne tick
	JumpVelocity float64 `yaml:"jump_velocity"` // Negative is upward
	AnimRate     float64 `yaml:"anim_rate"`     // Leg cycle advance per unit of speed
}

// Runner defines the bear's fixed column and its hitbox.
type Runner struct {
	X         float64 `yaml:"x"`
	HitLeft   float64 `yaml:"hit_left"`  // Hitbox left edge, relative to X
	HitRight  float64 `yaml:"hit_right"` // Hitbox right edge, relative to X
	HitHeight float64 `yaml:"hit_height"`
}

// Obstacles defines log geometry, spawning and pruning.
type Obstacles struct {
	Width       float64 `yaml:"width"`
	ShortHeight float64 `yaml:"short_height"`
	TallHeight  float64 `yaml:"tall_height"`
	HitInsetX   float64 `yaml:"hit_inset_x"`   // Hitbox inset from both sides
	HitInsetTop float64 `yaml:"hit_inset_top"` // Hitbox inset from the top
	SpawnOffset float64 `yaml:"spawn_offset"`  // Distance beyond the right edge
	PruneMargin float64 `yaml:"prune_margin"`  // Removed once right edge <= -margin

	BaseGap    float64 `yaml:"base_gap"`
	GapShrink  float64 `yaml:"gap_shrink"` // Gap lost per unit of speed
	MinGap     float64 `yaml:"min_gap"`
	SpawnRate  float64 `yaml:"spawn_rate"` // Spawn chance per tick per unit of speed
	TallAfter  int     `yaml:"tall_after"` // Tall logs only once score exceeds this
	TallChance float64 `yaml:"tall_chance"`
}

// Night defines the day to night transition.
type Night struct {
	Threshold int     `yaml:"threshold"`
	Step      float64 `yaml:"step"` // Blend increase per tick
}

// DifficultyConfig defines the speed staircase.
type DifficultyConfig struct {
	Enabled   bool    `yaml:"enabled"`
	BaseSpeed float64 `yaml:"base_speed"`
	SpeedStep float64 `yaml:"speed_step"` // Added per milestone
	StepEvery int     `yaml:"step_every"` // Score between milestones
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI string onto a preset. Unknown strings yield "".
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}
