package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// String returns the wave name.
func (w Wave) String() string {
	switch w {
	case WaveSine:
		return "sine"
	case WaveSquare:
		return "square"
	case WaveSaw:
		return "sawtooth"
	case WaveNoise:
		return "noise"
	default:
		return "unknown"
	}
}

// Tone is one note of a cue. Its gain starts at Volume and decays
// exponentially to near silence over Duration. Delay offsets it from the
// start of the cue.
type Tone struct {
	Freq     float64
	Duration time.Duration
	Wave     Wave
	Volume   float64
	Delay    time.Duration
}

// floorGain is the gain a tone has decayed to when it ends.
const floorGain = 0.001

// oscillator renders a single Tone.
type oscillator struct {
	tone     Tone
	rate     beep.SampleRate
	phase    float64
	position int
	total    int
	decay    float64 // per-sample gain multiplier
	gain     float64
	rng      *rand.Rand
}

func newOscillator(t Tone, rate beep.SampleRate, seed int64) *oscillator {
	total := rate.N(t.Duration)
	decay := 1.0
	if total > 0 && t.Volume > floorGain {
		decay = math.Pow(floorGain/t.Volume, 1/float64(total))
	}
	return &oscillator{
		tone:  t,
		rate:  rate,
		total: total,
		decay: decay,
		gain:  t.Volume,
		rng:   rand.New(rand.NewSource(seed)),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	if o.position >= o.total {
		return 0, false
	}
	for i := range samples {
		if o.position >= o.total {
			return i, true
		}

		var val float64
		switch o.tone.Wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
		}
		val *= o.gain

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.tone.Freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.gain *= o.decay
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// streamer renders a tone with its leading delay.
func (t Tone) streamer(rate beep.SampleRate, seed int64) beep.Streamer {
	osc := newOscillator(t, rate, seed)
	if pad := rate.N(t.Delay); pad > 0 {
		return beep.Seq(beep.Silence(pad), osc)
	}
	return osc
}
