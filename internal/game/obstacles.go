package game

import (
	"github.com/vovakirdan/bear-run/internal/config"
)

// ObstacleID is a stable index into the obstacle arena.
// IDs of removed obstacles are recycled by later spawns.
type ObstacleID int

// Obstacle is a log lying on the ground.
type Obstacle struct {
	ID     ObstacleID
	X      float64 // Left edge
	Tall   bool    // Stacked log, taller collision box
	Scored bool    // Set once when the runner passes it
}

// arena stores obstacles by stable index. active keeps insertion order,
// so its last element is always the newest obstacle.
type arena struct {
	slots  []Obstacle
	free   []ObstacleID
	active []ObstacleID
}

func newArena() *arena {
	return &arena{
		slots:  make([]Obstacle, 0, 8),
		active: make([]ObstacleID, 0, 8),
	}
}

// spawn stores a new obstacle and returns its ID.
func (a *arena) spawn(x float64, tall bool) ObstacleID {
	var id ObstacleID
	if n := len(a.free); n > 0 {
		id = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		id = ObstacleID(len(a.slots))
		a.slots = append(a.slots, Obstacle{})
	}
	a.slots[id] = Obstacle{ID: id, X: x, Tall: tall}
	a.active = append(a.active, id)
	return id
}

// get returns the obstacle stored at id.
func (a *arena) get(id ObstacleID) *Obstacle {
	return &a.slots[id]
}

// newest returns the most recently spawned live obstacle.
func (a *arena) newest() (*Obstacle, bool) {
	if len(a.active) == 0 {
		return nil, false
	}
	return a.get(a.active[len(a.active)-1]), true
}

// each visits live obstacles in insertion order.
func (a *arena) each(fn func(*Obstacle)) {
	for _, id := range a.active {
		fn(a.get(id))
	}
}

// compact drops every live obstacle for which keep returns false and
// releases its slot. Returns the number removed.
func (a *arena) compact(keep func(*Obstacle) bool) int {
	kept := a.active[:0]
	removed := 0
	for _, id := range a.active {
		if keep(a.get(id)) {
			kept = append(kept, id)
			continue
		}
		a.free = append(a.free, id)
		removed++
	}
	a.active = kept
	return removed
}

// len returns the number of live obstacles.
func (a *arena) len() int {
	return len(a.active)
}

// reset discards all obstacles.
func (a *arena) reset() {
	a.slots = a.slots[:0]
	a.free = a.free[:0]
	a.active = a.active[:0]
}

// list copies live obstacles in insertion order.
func (a *arena) list() []Obstacle {
	out := make([]Obstacle, 0, len(a.active))
	for _, id := range a.active {
		out = append(out, a.slots[id])
	}
	return out
}

// ObstacleManager owns the live obstacles: it spawns them ahead of the
// runner, scrolls them, scores passes and prunes what left the field.
type ObstacleManager struct {
	arena      *arena
	rng        Rand
	cfg        *config.BearConfig
	difficulty *config.DifficultyManager
}

// NewObstacleManager creates an empty obstacle manager.
func NewObstacleManager(rng Rand, cfg *config.BearConfig, diff *config.DifficultyManager) *ObstacleManager {
	return &ObstacleManager{
		arena:      newArena(),
		rng:        rng,
		cfg:        cfg,
		difficulty: diff,
	}
}

// Reset clears all obstacles. The random source keeps its position.
func (om *ObstacleManager) Reset() {
	om.arena.reset()
}

// Generate may spawn one obstacle just beyond the right edge.
// A spawn is only attempted once the newest obstacle has scrolled at least
// the current gap away from the right edge, and then only with a
// probability proportional to speed.
func (om *ObstacleManager) Generate(speed float64, score int) (ObstacleID, bool) {
	if last, ok := om.arena.newest(); ok {
		if last.X >= om.cfg.Field.Width-om.difficulty.Gap(speed) {
			return 0, false
		}
	}
	if om.rng.Float64() >= om.difficulty.SpawnChance(speed) {
		return 0, false
	}

	// The variant draw is only consumed once tall logs are allowed
	tall := om.difficulty.TallAllowed(score) && om.rng.Float64() > 1-om.cfg.Obstacles.TallChance

	x := om.cfg.Field.Width + om.cfg.Obstacles.SpawnOffset
	return om.arena.spawn(x, tall), true
}

// Advance scrolls every obstacle left by speed and calls onPass exactly
// once for each obstacle whose right edge is now behind runnerX.
func (om *ObstacleManager) Advance(speed, runnerX float64, onPass func(Obstacle)) {
	om.arena.each(func(o *Obstacle) {
		o.X -= speed
	})
	om.arena.each(func(o *Obstacle) {
		if o.Scored || om.RightEdge(*o) >= runnerX {
			return
		}
		o.Scored = true
		if onPass != nil {
			onPass(*o)
		}
	})
}

// Prune removes obstacles whose right edge is past the left margin.
// Returns the number removed.
func (om *ObstacleManager) Prune() int {
	limit := -om.cfg.Obstacles.PruneMargin
	return om.arena.compact(func(o *Obstacle) bool {
		return om.RightEdge(*o) > limit
	})
}

// RightEdge returns the x-coordinate of the obstacle's right edge.
func (om *ObstacleManager) RightEdge(o Obstacle) float64 {
	return o.X + om.cfg.Obstacles.Width
}

// Height returns the visual height of the obstacle.
func (om *ObstacleManager) Height(o Obstacle) float64 {
	if o.Tall {
		return om.cfg.Obstacles.TallHeight
	}
	return om.cfg.Obstacles.ShortHeight
}

// Obstacles returns a copy of the live obstacles in insertion order.
func (om *ObstacleManager) Obstacles() []Obstacle {
	return om.arena.list()
}

// Len returns the number of live obstacles.
func (om *ObstacleManager) Len() int {
	return om.arena.len()
}
