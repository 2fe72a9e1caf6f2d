// Package loop drives a fixed-step simulation from an external frame source.
// The frame source (a Bubble Tea tick, a test, a headless loop) calls Frame
// once per display frame; the driver decides whether a tick happens.
package loop

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// ErrTickPanic is wrapped into the error recorded when a tick panics.
var ErrTickPanic = errors.New("loop: tick panicked")

// Stepper is a simulation advanced one fixed step at a time.
type Stepper interface {
	// Tick advances one step and reports whether anything happened.
	Tick() bool
	// Running reports whether further ticks would advance the world.
	Running() bool
}

// Driver runs exactly one Stepper tick per frame while active.
// Frames that arrive late are never caught up: one frame, at most one tick.
// It is not safe for concurrent use.
type Driver struct {
	sim    Stepper
	logger *log.Logger
	active bool
	frames uint64
	err    error
}

// NewDriver creates a stopped driver. A nil logger discards output.
func NewDriver(sim Stepper, logger *log.Logger) *Driver {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Driver{sim: sim, logger: logger}
}

// Start activates the driver. A driver stopped by a tick panic stays
// stopped until the error is cleared by a new Start.
func (d *Driver) Start() {
	if d.active {
		return
	}
	d.active = true
	d.err = nil
	d.logger.Debug("driver started", "frames", d.frames)
}

// Stop deactivates the driver. Calling it on a stopped driver is a no-op.
func (d *Driver) Stop() {
	if !d.active {
		return
	}
	d.active = false
	d.logger.Debug("driver stopped", "frames", d.frames)
}

// Active reports whether frames currently tick the simulation.
func (d *Driver) Active() bool {
	return d.active
}

// Frames returns the number of frames that ran a tick.
func (d *Driver) Frames() uint64 {
	return d.frames
}

// Err returns the error that stopped the driver, if any.
func (d *Driver) Err() error {
	return d.err
}

// Frame runs one simulation tick if the driver is active and reports
// whether the caller should schedule another frame. The driver stops
// itself once the simulation is no longer running, and when a tick panics.
func (d *Driver) Frame() (more bool) {
	if !d.active {
		return false
	}

	defer func() {
		if r := recover(); r != nil {
			d.err = fmt.Errorf("%w: %v", ErrTickPanic, r)
			d.logger.Error("tick failed, stopping", "error", d.err, "frame", d.frames)
			d.active = false
			more = false
		}
	}()

	d.sim.Tick()
	d.frames++

	if !d.sim.Running() {
		d.Stop()
		return false
	}
	return true
}
