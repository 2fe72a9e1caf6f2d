package game

import "github.com/vovakirdan/bear-run/internal/config"

// autopilotLookahead is how many ticks ahead of contact the autopilot jumps.
const autopilotLookahead = 6

// Autopilot decides whether a bot should press jump now. It jumps when the
// nearest unscored obstacle will reach the runner's hitbox within a few ticks
// at the current speed. Used for headless balancing runs.
func Autopilot(snap Snapshot, cfg config.BearConfig) bool {
	if snap.Phase != PhaseRunning || snap.Runner.Airborne {
		return false
	}

	front := snap.Runner.X + cfg.Runner.HitRight
	back := snap.Runner.X + cfg.Runner.HitLeft
	window := snap.Speed * autopilotLookahead

	for _, o := range snap.Obstacles {
		if o.Scored {
			continue
		}
		lead := o.X + cfg.Obstacles.HitInsetX
		tail := o.X + cfg.Obstacles.Width - cfg.Obstacles.HitInsetX
		if tail <= back {
			continue // already behind the hitbox
		}
		if lead-front <= window {
			return true
		}
	}
	return false
}
