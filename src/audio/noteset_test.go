package audio

import "testing"

func TestNoteSet(t *testing.T) {
	var s NoteSet
	expectEqual(t, s.Len(), 0)
	expectEqual(t, s.Add(60), true)
	expectEqual(t, s.Add(60), false)
	expectEqual(t, s.Add(0), true)
	expectEqual(t, s.Add(NumNotes-1), true)
	expectEqual(t, s.Add(NumNotes), false)
	expectEqual(t, s.Add(255), false)
	expectEqual(t, s.Len(), 3)
	expectEqual(t, s.Contains(60), true)
	expectEqual(t, s.Contains(61), false)
	expectEqual(t, s.Contains(NumNotes), false)

	notes := s.AppendTo(nil)
	expectEqual(t, len(notes), 3)
	expectEqual(t, notes[0], Note(0))
	expectEqual(t, notes[1], Note(60))
	expectEqual(t, notes[2], Note(NumNotes-1))

	expectEqual(t, s.Remove(60), true)
	expectEqual(t, s.Remove(60), false)
	expectEqual(t, s.Remove(NumNotes), false)
	expectEqual(t, s.Len(), 2)

	s.Clear()
	expectEqual(t, s.Len(), 0)
	expectEqual(t, len(s.AppendTo(nil)), 0)
}

func TestNoteSetWordBoundaries(t *testing.T) {
	var s NoteSet
	for _, n := range []Note{63, 64, 127, 128} {
		expectEqual(t, s.Add(n), true)
	}
	notes := s.AppendTo(nil)
	expectEqual(t, len(notes), 4)
	expectEqual(t, notes[0], Note(63))
	expectEqual(t, notes[1], Note(64))
	expectEqual(t, notes[2], Note(127))
	expectEqual(t, notes[3], Note(128))
}
