package loop

import (
	"errors"
	"testing"
)

// fakeStepper counts ticks and stops running after limit ticks.
type fakeStepper struct {
	ticks   int
	limit   int
	panicAt int
}

func (f *fakeStepper) Tick() bool {
	f.ticks++
	if f.panicAt > 0 && f.ticks == f.panicAt {
		panic("boom")
	}
	return true
}

func (f *fakeStepper) Running() bool {
	return f.limit == 0 || f.ticks < f.limit
}

func TestDriverInactiveDoesNotTick(t *testing.T) {
	sim := &fakeStepper{}
	d := NewDriver(sim, nil)

	for i := 0; i < 5; i++ {
		if d.Frame() {
			t.Fatal("Frame() on a stopped driver should not ask for more frames")
		}
	}
	if sim.ticks != 0 {
		t.Errorf("ticks = %d, expected 0", sim.ticks)
	}
}

func TestDriverOneTickPerFrame(t *testing.T) {
	sim := &fakeStepper{}
	d := NewDriver(sim, nil)
	d.Start()

	for i := 0; i < 100; i++ {
		if !d.Frame() {
			t.Fatalf("frame %d: driver stopped unexpectedly", i)
		}
	}
	if sim.ticks != 100 || d.Frames() != 100 {
		t.Errorf("ticks=%d frames=%d, expected 100 each", sim.ticks, d.Frames())
	}
}

func TestDriverStartStopIdempotent(t *testing.T) {
	sim := &fakeStepper{}
	d := NewDriver(sim, nil)

	d.Stop()
	if d.Active() {
		t.Error("Stop() on a new driver should leave it stopped")
	}

	d.Start()
	d.Start()
	if !d.Active() {
		t.Error("driver should be active after Start()")
	}
	d.Frame()

	d.Stop()
	d.Stop()
	if d.Active() {
		t.Error("driver should be stopped after Stop()")
	}
	d.Frame()
	if sim.ticks != 1 {
		t.Errorf("ticks = %d, expected 1", sim.ticks)
	}
}

func TestDriverStopsWhenSimulationEnds(t *testing.T) {
	sim := &fakeStepper{limit: 3}
	d := NewDriver(sim, nil)
	d.Start()

	results := []bool{d.Frame(), d.Frame(), d.Frame(), d.Frame()}
	want := []bool{true, true, false, false}
	for i := range want {
		if results[i] != want[i] {
			t.Errorf("frame %d = %v, expected %v", i, results[i], want[i])
		}
	}
	if d.Active() {
		t.Error("driver should stop once the simulation stops running")
	}
	if sim.ticks != 3 {
		t.Errorf("ticks = %d, expected 3", sim.ticks)
	}
	if d.Err() != nil {
		t.Errorf("Err() = %v, expected nil for a normal stop", d.Err())
	}
}

func TestDriverRecoversPanic(t *testing.T) {
	sim := &fakeStepper{panicAt: 2}
	d := NewDriver(sim, nil)
	d.Start()

	if !d.Frame() {
		t.Fatal("first frame should succeed")
	}
	if d.Frame() {
		t.Error("panicking frame should not ask for more frames")
	}
	if d.Active() {
		t.Error("driver should stop after a panic")
	}
	if !errors.Is(d.Err(), ErrTickPanic) {
		t.Errorf("Err() = %v, expected ErrTickPanic", d.Err())
	}

	d.Frame()
	if sim.ticks != 2 {
		t.Errorf("ticks = %d, expected no ticks after the panic", sim.ticks)
	}

	d.Start()
	if d.Err() != nil {
		t.Error("Start() should clear the previous error")
	}
	if !d.Frame() {
		t.Error("restarted driver should tick again")
	}
}
