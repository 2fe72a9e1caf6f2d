package audio

import (
	"time"

	"github.com/vovakirdan/bear-run/internal/game"
)

const ms = time.Millisecond

// Cues maps each game event to the tones it plays.
var Cues = map[game.EventKind][]Tone{
	game.EventJumped: {
		{Freq: 523, Duration: 80 * ms, Wave: WaveSquare, Volume: 0.12},
		{Freq: 659, Duration: 60 * ms, Wave: WaveSquare, Volume: 0.10, Delay: 50 * ms},
	},
	game.EventScored: {
		{Freq: 784, Duration: 60 * ms, Wave: WaveSquare, Volume: 0.10},
		{Freq: 1047, Duration: 80 * ms, Wave: WaveSquare, Volume: 0.12, Delay: 60 * ms},
	},
	game.EventCrashed: {
		{Duration: 200 * ms, Wave: WaveNoise, Volume: 0.15},
		{Freq: 131, Duration: 150 * ms, Wave: WaveSaw, Volume: 0.10, Delay: 50 * ms},
	},
	game.EventNightBegan: {
		{Freq: 330, Duration: 500 * ms, Wave: WaveSine, Volume: 0.08},
		{Freq: 392, Duration: 400 * ms, Wave: WaveSine, Volume: 0.07, Delay: 300 * ms},
		{Freq: 494, Duration: 600 * ms, Wave: WaveSine, Volume: 0.08, Delay: 600 * ms},
	},
}

// CueLength returns how long the cue for kind rings, zero if it has none.
func CueLength(kind game.EventKind) time.Duration {
	var longest time.Duration
	for _, t := range Cues[kind] {
		if end := t.Delay + t.Duration; end > longest {
			longest = end
		}
	}
	return longest
}
