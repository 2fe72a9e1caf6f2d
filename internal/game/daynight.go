package game

// NightCycle drives the day to night blend from the score.
type NightCycle struct {
	threshold int
	step      float64
	blend     float64
	announced bool
}

// NewNightCycle creates a cycle that ramps once score reaches threshold.
func NewNightCycle(threshold int, step float64) NightCycle {
	return NightCycle{threshold: threshold, step: step}
}

// Update advances the blend for one tick. Below the threshold the blend is
// zero; at or above it the blend ramps linearly to 1. Returns true on the
// first ramping tick since the last Reset.
func (n *NightCycle) Update(score int) bool {
	if score < n.threshold {
		n.blend = 0
		return false
	}
	n.blend += n.step
	if n.blend > 1 {
		n.blend = 1
	}
	if n.announced {
		return false
	}
	n.announced = true
	return true
}

// Reset returns to full day and re-arms the transition event.
func (n *NightCycle) Reset() {
	n.blend = 0
	n.announced = false
}

// Blend returns the current blend in [0, 1].
func (n NightCycle) Blend() float64 {
	return n.blend
}
