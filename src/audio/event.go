package audio

import "fmt"

// ----- Control Event ----- //

// EventKind ...
type EventKind int

const (
	// Unhandled is the zero value; it is never applied.
	Unhandled EventKind = iota
	NoteOn
	NoteOff
	SetVolume
	Play
	Stop
	Disconnect
)

var eventKindNames = [...]string{
	Unhandled:  "unhandled",
	NoteOn:     "note_on",
	NoteOff:    "note_off",
	SetVolume:  "set_volume",
	Play:       "play",
	Stop:       "stop",
	Disconnect: "disconnect",
}

func (k EventKind) String() string {
	if k < 0 || int(k) >= len(eventKindNames) {
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
	return eventKindNames[k]
}

// Event is a semantic control message. It is passed by value so that sending
// and draining never box anything.
type Event struct {
	Kind     EventKind
	Note     Note
	Velocity uint8
	Gain     float32
}

// NewNoteOn ...
func NewNoteOn(note Note, velocity uint8) Event {
	return Event{Kind: NoteOn, Note: note, Velocity: velocity}
}

// NewNoteOff ...
func NewNoteOff(note Note) Event {
	return Event{Kind: NoteOff, Note: note}
}

// NewSetVolume ...
func NewSetVolume(gain float32) Event {
	return Event{Kind: SetVolume, Gain: gain}
}

func (e Event) String() string {
	switch e.Kind {
	case NoteOn:
		return fmt.Sprintf("%v(%d, %d)", e.Kind, e.Note, e.Velocity)
	case NoteOff:
		return fmt.Sprintf("%v(%d)", e.Kind, e.Note)
	case SetVolume:
		return fmt.Sprintf("%v(%.4f)", e.Kind, e.Gain)
	}
	return e.Kind.String()
}

// Sender accepts control events from any goroutine.
type Sender interface {
	Send(ev Event) error
}
