package game

import (
	"testing"

	"github.com/vovakirdan/bear-run/internal/config"
)

// scriptedRand replays vals in order, then keeps returning fallback.
type scriptedRand struct {
	vals     []float64
	fallback float64
	draws    int
}

func (r *scriptedRand) Float64() float64 {
	r.draws++
	if len(r.vals) == 0 {
		return r.fallback
	}
	v := r.vals[0]
	r.vals = r.vals[1:]
	return v
}

// never returns a source that never passes a spawn roll.
func never() *scriptedRand {
	return &scriptedRand{fallback: 0.999}
}

// eventLog records events by kind.
type eventLog map[EventKind]int

func (l eventLog) listen(e Event) { l[e.Kind]++ }

// newTestSession returns a session using rng and recording events.
func newTestSession(rng Rand) (*Session, eventLog) {
	log := eventLog{}
	s := NewSession(config.DefaultBearConfig(), WithRand(rng), WithListener(log.listen))
	return s, log
}

// runningGrounded puts a fresh session straight into Running without the
// start jump, so collision geometry is easy to reason about.
func runningGrounded(rng Rand) (*Session, eventLog) {
	s, log := newTestSession(rng)
	s.phase = PhaseRunning
	return s, log
}

func TestNewSessionIsIdle(t *testing.T) {
	s, _ := newTestSession(never())

	if s.Phase() != PhaseIdle {
		t.Errorf("new session phase = %v, expected idle", s.Phase())
	}
	if s.Speed() != 5.0 {
		t.Errorf("initial speed = %v, expected 5.0", s.Speed())
	}
	if s.runner.Y != s.cfg.Field.GroundY || s.runner.Airborne {
		t.Error("runner should start grounded")
	}
}

func TestIdleTickDoesNothing(t *testing.T) {
	s, _ := newTestSession(never())

	for i := 0; i < 10; i++ {
		if s.Tick() {
			t.Fatal("Tick() should not advance while idle")
		}
	}
	if s.TickCount() != 0 {
		t.Errorf("tick count = %d, expected 0", s.TickCount())
	}
}

func TestStartAlsoJumps(t *testing.T) {
	s, log := newTestSession(never())

	if got := s.Press(); got != TransitionStarted {
		t.Fatalf("Press() from idle = %v, expected TransitionStarted", got)
	}
	if !s.Running() {
		t.Error("session should be running after start")
	}
	if !s.runner.Airborne || s.runner.VY != s.cfg.Physics.JumpVelocity {
		t.Errorf("start should jump, runner = %+v", s.runner)
	}
	if log[EventJumped] != 1 {
		t.Errorf("jumped events = %d, expected 1", log[EventJumped])
	}

	// Start is only valid from idle
	if got := s.Start(); got != TransitionIgnored {
		t.Errorf("Start() while running = %v, expected ignored", got)
	}
}

func TestJumpArc(t *testing.T) {
	s, _ := newTestSession(never())
	s.Start()

	ground := s.cfg.Field.GroundY
	g := s.cfg.Physics.Gravity
	for i := 0; i < 200 && s.runner.Airborne; i++ {
		vy, y := s.runner.VY, s.runner.Y
		s.Tick()

		wantVY := vy + g
		wantY := y + wantVY
		if wantY >= ground {
			if s.runner.Y != ground || s.runner.VY != 0 || s.runner.Airborne {
				t.Fatalf("tick %d: landing should clamp, runner = %+v", i, s.runner)
			}
			continue
		}
		if s.runner.VY != wantVY || s.runner.Y != wantY {
			t.Fatalf("tick %d: got y=%v vy=%v, expected y=%v vy=%v", i, s.runner.Y, s.runner.VY, wantY, wantVY)
		}
		if !s.runner.Airborne {
			t.Fatalf("tick %d: runner landed above ground", i)
		}
	}

	if s.runner.Airborne {
		t.Fatal("runner never landed")
	}
}

func TestNoDoubleJump(t *testing.T) {
	s, log := newTestSession(never())
	s.Start()
	s.Tick()

	before := s.runner
	if got := s.Press(); got != TransitionIgnored {
		t.Errorf("Press() while airborne = %v, expected ignored", got)
	}
	if s.runner != before {
		t.Errorf("airborne jump changed runner: %+v -> %+v", before, s.runner)
	}
	if log[EventJumped] != 1 {
		t.Errorf("jumped events = %d, expected 1", log[EventJumped])
	}
	if !s.Running() {
		t.Error("ignored jump must not end the run")
	}
}

func TestAnimationAdvancesOnlyWhenGrounded(t *testing.T) {
	s, _ := newTestSession(never())
	s.Start()

	frame := s.runner.Frame
	s.Tick()
	if s.runner.Frame != frame {
		t.Error("animation should not advance while airborne")
	}

	for s.runner.Airborne {
		s.Tick()
	}

	frame = s.runner.Frame
	s.Tick()
	want := frame + s.cfg.Physics.AnimRate*s.Speed()
	if s.runner.Frame != want {
		t.Errorf("grounded frame = %v, expected %v", s.runner.Frame, want)
	}
}

func TestLongRunWithoutObstacles(t *testing.T) {
	s, _ := newTestSession(never())
	s.Start()

	for i := 0; i < 1000; i++ {
		s.Tick()
	}

	snap := s.Snapshot()
	if snap.Score != 0 {
		t.Errorf("score = %d, expected 0", snap.Score)
	}
	if snap.Dead || !snap.Running {
		t.Errorf("expected alive and running, got dead=%v running=%v", snap.Dead, snap.Running)
	}
	if snap.Tick != 1000 {
		t.Errorf("tick = %d, expected 1000", snap.Tick)
	}
	if len(snap.Obstacles) != 0 {
		t.Errorf("obstacles = %d, expected none", len(snap.Obstacles))
	}
}

func TestForcedCollisionKills(t *testing.T) {
	s, log := runningGrounded(never())
	// Scrolls to x=80 this tick, well inside the runner's hitbox
	s.obstacles.arena.spawn(85, false)

	s.Tick()

	if s.Phase() != PhaseDead {
		t.Fatalf("phase = %v, expected dead", s.Phase())
	}
	snap := s.Snapshot()
	if !snap.Dead || snap.Running {
		t.Errorf("dead=%v running=%v, expected dead and not running", snap.Dead, snap.Running)
	}
	if log[EventCrashed] != 1 {
		t.Errorf("crashed events = %d, expected 1", log[EventCrashed])
	}

	// No further mutation once dead
	before := s.Snapshot()
	for i := 0; i < 50; i++ {
		if s.Tick() {
			t.Fatal("Tick() should not advance while dead")
		}
	}
	after := s.Snapshot()
	if after.Score != before.Score || after.Tick != before.Tick || len(after.Obstacles) != len(before.Obstacles) {
		t.Errorf("state changed after death: %+v -> %+v", before, after)
	}
	if after.Obstacles[0].X != before.Obstacles[0].X {
		t.Error("obstacles moved after death")
	}
}

func TestCollisionBoundaries(t *testing.T) {
	tests := []struct {
		name    string
		spawnX  float64 // before this tick's scroll of 5
		tall    bool
		y, vy   float64 // runner state before the tick; vy=0 means grounded
		airborne bool
		dead    bool
	}{
		{name: "right edge touch", spawnX: 115, y: 230, dead: false},
		{name: "right edge overlap", spawnX: 114.9, y: 230, dead: true},
		{name: "left edge touch", spawnX: 65, y: 230, dead: false},
		{name: "left edge overlap", spawnX: 65.1, y: 230, dead: true},
		{name: "feet touching top of short log", spawnX: 85, y: 214, vy: -0.6, airborne: true, dead: false},
		{name: "feet inside short log", spawnX: 85, y: 214, vy: -0.5, airborne: true, dead: true},
		{name: "clears short log", spawnX: 85, y: 200, vy: -0.6, airborne: true, dead: false},
		{name: "hits tall log at same height", spawnX: 85, tall: true, y: 200, vy: -0.6, airborne: true, dead: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, _ := runningGrounded(never())
			s.runner.Y = tc.y
			s.runner.VY = tc.vy
			s.runner.Airborne = tc.airborne
			s.obstacles.arena.spawn(tc.spawnX, tc.tall)

			s.Tick()

			if got := s.Phase() == PhaseDead; got != tc.dead {
				t.Errorf("dead = %v, expected %v (runner %+v, obstacles %+v)", got, tc.dead, s.runner, s.obstacles.Obstacles())
			}
		})
	}
}

func TestRightEdgeTouchCollidesNextTick(t *testing.T) {
	s, _ := runningGrounded(never())
	s.obstacles.arena.spawn(115, false)

	s.Tick()
	if s.Phase() == PhaseDead {
		t.Fatal("edge contact must not kill")
	}
	s.Tick()
	if s.Phase() != PhaseDead {
		t.Fatal("overlap on the following tick should kill")
	}
}

func TestScoringOncePerObstacle(t *testing.T) {
	s, log := runningGrounded(never())
	// Right edge lands at 70 after the scroll, behind the runner at 80
	s.obstacles.arena.spawn(45, false)

	s.Tick()
	if s.Score() != 1 || s.Best() != 1 {
		t.Fatalf("score=%d best=%d, expected 1 and 1", s.Score(), s.Best())
	}
	if !s.obstacles.Obstacles()[0].Scored {
		t.Error("passed obstacle should be marked scored")
	}

	for i := 0; i < 5; i++ {
		s.Tick()
	}
	if s.Score() != 1 {
		t.Errorf("score = %d after more ticks, expected 1", s.Score())
	}
	if log[EventScored] != 1 {
		t.Errorf("scored events = %d, expected 1", log[EventScored])
	}
}

func TestScoredBeforePruned(t *testing.T) {
	s, _ := runningGrounded(never())
	// Right edge lands exactly on the prune margin this tick
	s.obstacles.arena.spawn(-35, false)

	s.Tick()

	if s.Score() != 1 {
		t.Errorf("score = %d, expected obstacle to be scored before pruning", s.Score())
	}
	if s.obstacles.Len() != 0 {
		t.Errorf("obstacles = %d, expected pruned", s.obstacles.Len())
	}
}

func TestRestartKeepsBest(t *testing.T) {
	s, _ := runningGrounded(never())
	s.obstacles.arena.spawn(45, false)
	s.obstacles.arena.spawn(48, false)
	s.obstacles.arena.spawn(85, false)

	s.Tick()
	if s.Phase() != PhaseDead || s.Score() != 2 {
		t.Fatalf("phase=%v score=%d, expected dead with 2", s.Phase(), s.Score())
	}

	if got := s.Press(); got != TransitionRestarted {
		t.Fatalf("Press() while dead = %v, expected restart", got)
	}

	snap := s.Snapshot()
	if snap.Score != 0 || snap.Best != 2 {
		t.Errorf("after restart score=%d best=%d, expected 0 and 2", snap.Score, snap.Best)
	}
	if !snap.Running || snap.Dead {
		t.Error("restart should resume running")
	}
	if snap.Tick != 0 || len(snap.Obstacles) != 0 || snap.NightBlend != 0 {
		t.Errorf("restart should clear the world, got %+v", snap)
	}
	if snap.Runner.Airborne || snap.Runner.Y != s.cfg.Field.GroundY {
		t.Errorf("restart should not jump, runner = %+v", snap.Runner)
	}
	if snap.Speed != 5.0 {
		t.Errorf("speed after restart = %v, expected 5.0", snap.Speed)
	}
}

func TestSpeedFollowsScore(t *testing.T) {
	s, _ := runningGrounded(never())
	s.score = 10

	s.Tick()
	if s.Speed() != 6.0 {
		t.Errorf("speed at score 10 = %v, expected 6.0", s.Speed())
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	s, _ := runningGrounded(never())
	s.obstacles.arena.spawn(500, false)

	snap := s.Snapshot()
	snap.Obstacles[0].X = -1000
	snap.Runner.Y = 0

	if s.obstacles.Obstacles()[0].X != 500 {
		t.Error("mutating the snapshot changed session obstacles")
	}
	if s.runner.Y != s.cfg.Field.GroundY {
		t.Error("mutating the snapshot changed the runner")
	}
}

func TestSessionInvariants(t *testing.T) {
	cfg := config.DefaultBearConfig()
	s := NewSession(cfg, WithSeed(42))

	prevScore := 0
	for i := 0; i < 20000; i++ {
		snap := s.Snapshot()
		if Autopilot(snap, cfg) || snap.Phase != PhaseRunning {
			if s.Press() == TransitionRestarted {
				prevScore = 0
			}
		}
		s.Tick()

		snap = s.Snapshot()
		if snap.Dead && snap.Running {
			t.Fatalf("tick %d: dead and running", i)
		}
		if snap.Score > snap.Best {
			t.Fatalf("tick %d: score %d above best %d", i, snap.Score, snap.Best)
		}
		if snap.Score < prevScore {
			t.Fatalf("tick %d: score dropped from %d to %d within a run", i, prevScore, snap.Score)
		}
		if snap.Score < cfg.Night.Threshold && snap.NightBlend != 0 {
			t.Fatalf("tick %d: blend %v below threshold", i, snap.NightBlend)
		}
		if snap.Runner.Y > cfg.Field.GroundY {
			t.Fatalf("tick %d: runner below ground", i)
		}
		prevScore = snap.Score
	}
}

func TestDeterministicWithSeed(t *testing.T) {
	cfg := config.DefaultBearConfig()
	play := func() Snapshot {
		s := NewSession(cfg, WithSeed(7))
		s.Start()
		for i := 0; i < 3000; i++ {
			if Autopilot(s.Snapshot(), cfg) {
				s.Press()
			}
			s.Tick()
		}
		return s.Snapshot()
	}

	a, b := play(), play()
	if a.Score != b.Score || a.Tick != b.Tick || a.Phase != b.Phase || len(a.Obstacles) != len(b.Obstacles) {
		t.Errorf("runs diverged: %+v vs %+v", a, b)
	}
}
