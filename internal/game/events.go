package game

// EventKind identifies a discrete simulation event.
type EventKind int

const (
	EventJumped EventKind = iota + 1
	EventScored
	EventCrashed
	EventNightBegan
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventJumped:
		return "jumped"
	case EventScored:
		return "scored"
	case EventCrashed:
		return "crashed"
	case EventNightBegan:
		return "night_began"
	default:
		return "unknown"
	}
}

// Event is a fire-and-forget notification for the audio and UI layers.
type Event struct {
	Kind  EventKind
	Tick  uint64
	Score int
}

// Sound is the audio output owned by a session.
// Unlock is called on every user gesture; the first call may acquire the
// device. Play must never block the tick and must tolerate a missing device.
type Sound interface {
	Unlock()
	Play(Event)
}

// NopSound discards all audio cues. Used headless and in tests.
type NopSound struct{}

func (NopSound) Unlock()    {}
func (NopSound) Play(Event) {}

// Listener observes every event after the sound output has seen it.
type Listener func(Event)
