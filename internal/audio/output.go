// Package audio plays the game's sound cues through beep.
//
// The output device is acquired lazily on the first user gesture. If it
// cannot be acquired the output goes silent for the rest of the process;
// the game never waits on audio.
package audio

import (
	"io"
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/bear-run/internal/game"
)

// DefaultSampleRate is the rate cues are synthesized at.
const DefaultSampleRate = beep.SampleRate(44100)

// bufferLatency is the device buffer length.
const bufferLatency = 100 * time.Millisecond

// Device is a sound card. Lock and Unlock guard streamers the device is
// currently pulling from.
type Device interface {
	Init(rate beep.SampleRate, bufferSize int) error
	Play(s ...beep.Streamer)
	Lock()
	Unlock()
}

// Speaker is the system audio device via beep/speaker.
type Speaker struct{}

func (Speaker) Init(rate beep.SampleRate, bufferSize int) error {
	return speaker.Init(rate, bufferSize)
}
func (Speaker) Play(s ...beep.Streamer) { speaker.Play(s...) }
func (Speaker) Lock()                   { speaker.Lock() }
func (Speaker) Unlock()                 { speaker.Unlock() }

// Options configures an Output.
type Options struct {
	Device     Device
	SampleRate beep.SampleRate
	Volume     float64 // Master gain, 1 is unchanged
	Muted      bool
	Logger     *log.Logger
}

// Output is a game.Sound that synthesizes cues into a beep mixer.
type Output struct {
	mu       sync.Mutex
	device   Device
	rate     beep.SampleRate
	mixer    *beep.Mixer
	master   *effects.Volume
	unlocked bool
	silent   bool
	muted    bool
	seed     int64
	logger   *log.Logger
}

var _ game.Sound = (*Output)(nil)

// New creates an output. Nothing touches the device until Unlock.
func New(opts Options) *Output {
	if opts.Device == nil {
		opts.Device = Speaker{}
	}
	if opts.SampleRate == 0 {
		opts.SampleRate = DefaultSampleRate
	}
	if opts.Volume == 0 {
		opts.Volume = 1
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	mixer := &beep.Mixer{}
	return &Output{
		device: opts.Device,
		rate:   opts.SampleRate,
		mixer:  mixer,
		master: newVolume(mixer, opts.Volume),
		muted:  opts.Muted,
		seed:   time.Now().UnixNano(),
		logger: opts.Logger,
	}
}

// newVolume wraps s in a gain stage. Non-positive gain is silence.
func newVolume(s beep.Streamer, vol float64) *effects.Volume {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// Unlock acquires the device on the first call. Later calls do nothing.
func (o *Output) Unlock() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.unlocked {
		return
	}
	o.unlocked = true

	if err := o.device.Init(o.rate, o.rate.N(bufferLatency)); err != nil {
		o.silent = true
		o.logger.Warn("audio unavailable, continuing silently", "error", err)
		return
	}
	o.device.Play(o.master)
	o.logger.Debug("audio ready", "rate", int(o.rate))
}

// Play queues the cue for e. It never blocks on playback.
func (o *Output) Play(e game.Event) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.unlocked || o.silent || o.muted {
		return
	}
	tones := Cues[e.Kind]
	if len(tones) == 0 {
		return
	}

	streams := make([]beep.Streamer, 0, len(tones))
	for _, t := range tones {
		o.seed++
		streams = append(streams, t.streamer(o.rate, o.seed))
	}

	o.device.Lock()
	o.mixer.Add(streams...)
	o.device.Unlock()
}

// SetMuted silences or restores cues. Cues already ringing stop too.
func (o *Output) SetMuted(muted bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.muted = muted
	if !o.unlocked || o.silent {
		return
	}
	o.device.Lock()
	if muted {
		o.mixer.Clear()
	}
	o.device.Unlock()
}

// ToggleMute flips the mute state and returns the new one.
func (o *Output) ToggleMute() bool {
	o.mu.Lock()
	muted := !o.muted
	o.mu.Unlock()

	o.SetMuted(muted)
	return muted
}

// Muted reports whether cues are silenced by the user.
func (o *Output) Muted() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.muted
}

// Silent reports whether the device failed to open.
func (o *Output) Silent() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.silent
}

// Pending returns the number of cue streams still ringing.
func (o *Output) Pending() int {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.unlocked || o.silent {
		return 0
	}
	o.device.Lock()
	defer o.device.Unlock()
	return o.mixer.Len()
}

// Close drops every ringing cue.
func (o *Output) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.unlocked || o.silent {
		return
	}
	o.device.Lock()
	o.mixer.Clear()
	o.device.Unlock()
}
