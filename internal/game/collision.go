package game

import (
	"github.com/vovakirdan/bear-run/internal/core"
)

// Hitbox returns the obstacle's collision box. Its height depends on the
// variant; the box is inset from the sides and the top of the drawn log.
func (om *ObstacleManager) Hitbox(o Obstacle) core.Box {
	oc := om.cfg.Obstacles
	ground := om.cfg.Field.GroundY
	return core.Box{
		MinX: o.X + oc.HitInsetX,
		MinY: ground - om.Height(o) + oc.HitInsetTop,
		MaxX: o.X + oc.Width - oc.HitInsetX,
		MaxY: ground,
	}
}

// FirstCollision returns the first live obstacle, in insertion order,
// whose hitbox overlaps runner. Edge contact is not a collision.
func (om *ObstacleManager) FirstCollision(runner core.Box) (Obstacle, bool) {
	for _, id := range om.arena.active {
		o := om.arena.slots[id]
		if runner.Intersects(om.Hitbox(o)) {
			return o, true
		}
	}
	return Obstacle{}, false
}
