package midi

import (
	"github.com/jinjor/desktop-sine/src/audio"
)

// PacketSize is the length of a USB-MIDI event packet.
const PacketSize = 4

const (
	kindNoteOn        = 0x9
	kindNoteOff       = 0x8
	kindControlChange = 0xb
)

// ----- Decoder ----- //

// Decode converts a raw packet into a control event. The packet layout is
// [kind, status, data1, data2]; the kind is taken from the upper nibble of
// byte 0, or from the lower nibble when the upper one is zero (USB-MIDI
// code index of cable 0).
//
// Packets that are too short or carry an unknown kind decode to
// audio.Unhandled, and so do notes outside the synth's tables.
func Decode(p []byte) audio.Event {
	if len(p) < PacketSize {
		return audio.Event{}
	}
	kind := p[0] >> 4
	if kind == 0 {
		kind = p[0] & 0x0f
	}
	switch kind {
	case kindNoteOn:
		note := audio.Note(p[2])
		if !note.Valid() {
			return audio.Event{}
		}
		if p[3] == 0 {
			return audio.NewNoteOff(note)
		}
		return audio.NewNoteOn(note, p[3])
	case kindControlChange:
		return audio.NewSetVolume(float32(p[3]) / 127)
	}
	return audio.Event{}
}

// Frame wraps a raw MIDI message into a packet Decode understands. Note-off
// messages become note-on with velocity 0. Other messages keep their status,
// so their kind is preserved and unknown ones stay unhandled.
func Frame(msg []byte) []byte {
	if len(msg) == 0 {
		return nil
	}
	p := make([]byte, PacketSize)
	status := msg[0]
	copy(p[1:], msg)
	if status>>4 == kindNoteOff {
		status = kindNoteOn<<4 | status&0x0f
		p[1] = status
		p[3] = 0
	}
	p[0] = status >> 4
	return p
}
