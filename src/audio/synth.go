package audio

import (
	"math"
	"math/bits"
)

// ----- Retrigger ----- //

// Retrigger selects what happens to a note's phases when it starts again.
type Retrigger int

const (
	// RetriggerContinue keeps the phase reached at note-off, so a retriggered
	// note has no discontinuity.
	RetriggerContinue Retrigger = iota
	// RetriggerReset restarts every partial at phase 0.
	RetriggerReset
)

// ParseRetrigger ...
func ParseRetrigger(s string) (Retrigger, bool) {
	switch s {
	case "", "continue":
		return RetriggerContinue, true
	case "reset":
		return RetriggerReset, true
	}
	return RetriggerContinue, false
}

// ----- Synth ----- //

// Synth is the oscillator bank. It must be owned by a single goroutine.
type Synth struct {
	table     *DeltaTable
	notes     NoteSet
	phases    [NumNotes][]float64
	retrigger Retrigger
}

// SynthOption ...
type SynthOption func(*Synth)

// WithRetrigger ...
func WithRetrigger(r Retrigger) SynthOption {
	return func(s *Synth) {
		s.retrigger = r
	}
}

// NewSynth ...
func NewSynth(table *DeltaTable, opts ...SynthOption) *Synth {
	s := &Synth{table: table}
	for n := 0; n < NumNotes; n++ {
		s.phases[n] = make([]float64, len(table.audible[n]))
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Apply updates the active notes. It returns true if the set changed.
func (s *Synth) Apply(ev Event) bool {
	switch ev.Kind {
	case NoteOn:
		if ev.Velocity == 0 {
			return s.notes.Remove(ev.Note)
		}
		if !s.notes.Add(ev.Note) {
			return false
		}
		if s.retrigger == RetriggerReset {
			clear(s.phases[ev.Note])
		}
		return true
	case NoteOff:
		return s.notes.Remove(ev.Note)
	}
	return false
}

// Next returns the next unscaled sample: the plain sum over active notes
// and their audible partials. Volume is applied by the output.
func (s *Synth) Next() float64 {
	sum := 0.0
	for i, w := range s.notes.words {
		for w != 0 {
			n := i*64 + bits.TrailingZeros64(w)
			w &= w - 1
			sum += s.step(n)
		}
	}
	return sum
}

func (s *Synth) step(n int) float64 {
	phases := s.phases[n]
	partials := s.table.audible[n]
	value := 0.0
	for k := range phases {
		value += partials[k].amp * math.Sin(phases[k])
		phases[k] += partials[k].delta
		if phases[k] >= twoPi {
			phases[k] -= twoPi
		}
	}
	return value
}

// Render fills out with consecutive samples.
func (s *Synth) Render(out []float32) {
	for i := range out {
		out[i] = float32(s.Next())
	}
}

// Active returns the number of sounding notes.
func (s *Synth) Active() int {
	return s.notes.Len()
}

// IsActive ...
func (s *Synth) IsActive(n Note) bool {
	return s.notes.Contains(n)
}

// Phases returns the current phases of note n. The slice aliases internal
// state and is only valid on the owning goroutine.
func (s *Synth) Phases(n Note) []float64 {
	if !n.Valid() {
		return nil
	}
	return s.phases[n]
}

// Table ...
func (s *Synth) Table() *DeltaTable {
	return s.table
}
