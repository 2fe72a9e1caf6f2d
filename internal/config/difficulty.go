package config

import "math"

// DifficultyManager derives world speed and obstacle pacing from the score.
// Every value is a pure function of its inputs, so it stays consistent with
// the score across restarts without any accumulated state.
type DifficultyManager struct {
	cfg       DifficultyConfig
	obstacles Obstacles
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig, obstacles Obstacles) *DifficultyManager {
	return &DifficultyManager{
		cfg:       cfg,
		obstacles: obstacles,
	}
}

// IsEnabled returns whether the speed staircase is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.StepEvery > 0
}

// Level returns the number of full milestones reached at this score.
func (d *DifficultyManager) Level(score int) int {
	if !d.IsEnabled() || score <= 0 {
		return 0
	}
	return score / d.cfg.StepEvery
}

// Speed returns the world scroll speed for the given score:
// base speed plus one step per full milestone.
func (d *DifficultyManager) Speed(score int) float64 {
	return d.cfg.BaseSpeed + float64(d.Level(score))*d.cfg.SpeedStep
}

// Gap returns the minimum horizontal gap between the newest obstacle and a
// new one. It shrinks with speed but never drops below the configured floor.
func (d *DifficultyManager) Gap(speed float64) float64 {
	return math.Max(d.obstacles.BaseGap-speed*d.obstacles.GapShrink, d.obstacles.MinGap)
}

// SpawnChance returns the per-tick spawn probability once the gap allows it.
func (d *DifficultyManager) SpawnChance(speed float64) float64 {
	return clampF(d.obstacles.SpawnRate*speed, 0.0, 1.0)
}

// TallAllowed reports whether tall obstacles may be generated at this score.
func (d *DifficultyManager) TallAllowed(score int) bool {
	return score > d.obstacles.TallAfter
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
