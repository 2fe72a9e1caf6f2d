package game

// Snapshot is a read-only copy of everything a renderer needs.
// It shares no memory with the session.
type Snapshot struct {
	Runner     Runner
	Obstacles  []Obstacle
	Tick       uint64
	NightBlend float64
	Score      int
	Best       int
	Speed      float64
	Phase      Phase
	Running    bool
	Dead       bool
}

// Snapshot captures the current state.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Runner:     s.runner,
		Obstacles:  s.obstacles.Obstacles(),
		Tick:       s.tick,
		NightBlend: s.night.Blend(),
		Score:      s.score,
		Best:       s.best,
		Speed:      s.speed,
		Phase:      s.phase,
		Running:    s.phase == PhaseRunning,
		Dead:       s.phase == PhaseDead,
	}
}
