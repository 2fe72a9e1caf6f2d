package game

import (
	"github.com/vovakirdan/bear-run/internal/config"
	"github.com/vovakirdan/bear-run/internal/core"
)

// Runner is the bear. X never changes; Y is the position of its feet.
type Runner struct {
	X        float64
	Y        float64
	VY       float64
	Airborne bool
	Frame    float64 // Leg animation phase, advances only on the ground
}

// newRunner places the runner on the ground at its fixed column.
func newRunner(cfg config.BearConfig) Runner {
	return Runner{
		X: cfg.Runner.X,
		Y: cfg.Field.GroundY,
	}
}

// jump starts an arc if grounded. Reports whether it took effect.
func (r *Runner) jump(velocity float64) bool {
	if r.Airborne {
		return false
	}
	r.Airborne = true
	r.VY = velocity
	return true
}

// integrate advances one tick of vertical motion. Reports a landing.
func (r *Runner) integrate(p config.Physics, groundY, speed float64) bool {
	landed := false
	if r.Airborne {
		r.VY += p.Gravity
		r.Y += r.VY
		if r.Y >= groundY {
			r.Y = groundY
			r.VY = 0
			r.Airborne = false
			landed = true
		}
	}
	if !r.Airborne {
		r.Frame += p.AnimRate * speed
	}
	return landed
}

// Hitbox returns the runner's collision box in world units.
func (r Runner) Hitbox(rc config.Runner) core.Box {
	return core.Box{
		MinX: r.X + rc.HitLeft,
		MinY: r.Y - rc.HitHeight,
		MaxX: r.X + rc.HitRight,
		MaxY: r.Y,
	}
}
