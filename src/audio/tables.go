package audio

import (
	"errors"
	"fmt"
	"math"
)

// NumNotes is the size of every per-note table. It covers more than the
// 0-127 MIDI range because some controllers send out-of-range keys.
const NumNotes = 154

const referenceNote = 69
const twoPi = 2.0 * math.Pi

// ErrInvalidSampleRate ...
var ErrInvalidSampleRate = errors.New("sample rate must be positive")

// Note ...
type Note uint8

// Valid reports whether n has an entry in the per-note tables.
func (n Note) Valid() bool {
	return int(n) < NumNotes
}

// Tuning ...
type Tuning struct {
	A4 float64 // Hz of note 69
}

// StandardTuning ...
var StandardTuning = Tuning{A4: 440}

// Partial is one additive component of every note.
type Partial struct {
	Harmonic  int // multiple of the fundamental, 1 = fundamental
	Amplitude float64
}

var fundamentalOnly = []Partial{{Harmonic: 1, Amplitude: 1}}

// NoteToFreq ...
func NoteToFreq(note Note, a4 float64) float64 {
	return a4 * math.Pow(2, float64(int(note)-referenceNote)/12)
}

func delta(freq float64, sampleRate int) float64 {
	return twoPi * freq / float64(sampleRate)
}

// ----- Delta Table ----- //

type partialDelta struct {
	delta float64
	amp   float64
}

// DeltaTable holds per-sample phase increments for every note and partial.
// It is immutable once built and shared read-only by Synth.
type DeltaTable struct {
	sampleRate int
	tuning     Tuning
	partials   []Partial
	freqs      [NumNotes]float64
	deltas     [NumNotes][]float64
	// audible holds only the partials below Nyquist. Their delta is < π,
	// so a single subtraction keeps an advancing phase in [0, 2π).
	audible [NumNotes][]partialDelta
}

// NewDeltaTable ...
func NewDeltaTable(sampleRate int, tuning Tuning, partials []Partial) (*DeltaTable, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSampleRate, sampleRate)
	}
	if !(tuning.A4 > 0) {
		return nil, fmt.Errorf("invalid tuning: a4 = %v", tuning.A4)
	}
	if len(partials) == 0 {
		partials = fundamentalOnly
	}
	for i, p := range partials {
		if p.Harmonic < 1 {
			return nil, fmt.Errorf("invalid partial %d: harmonic %d", i, p.Harmonic)
		}
	}
	t := &DeltaTable{
		sampleRate: sampleRate,
		tuning:     tuning,
		partials:   append([]Partial(nil), partials...),
	}
	nyquist := float64(sampleRate) / 2
	for n := 0; n < NumNotes; n++ {
		freq := NoteToFreq(Note(n), tuning.A4)
		t.freqs[n] = freq
		t.deltas[n] = make([]float64, len(partials))
		t.audible[n] = make([]partialDelta, 0, len(partials))
		for k, p := range partials {
			f := freq * float64(p.Harmonic)
			d := delta(f, sampleRate)
			t.deltas[n][k] = d
			if f < nyquist {
				t.audible[n] = append(t.audible[n], partialDelta{delta: d, amp: p.Amplitude})
			}
		}
	}
	return t, nil
}

// SampleRate ...
func (t *DeltaTable) SampleRate() int {
	return t.sampleRate
}

// Tuning ...
func (t *DeltaTable) Tuning() Tuning {
	return t.tuning
}

// Len returns the number of notes in the table.
func (t *DeltaTable) Len() int {
	return NumNotes
}

// NumPartials returns the number of configured partials per note.
func (t *DeltaTable) NumPartials() int {
	return len(t.partials)
}

// Freq ...
func (t *DeltaTable) Freq(note Note) float64 {
	if !note.Valid() {
		return 0
	}
	return t.freqs[note]
}

// Delta returns the phase increment in radians per sample of partial k.
func (t *DeltaTable) Delta(note Note, k int) float64 {
	if !note.Valid() || k < 0 || k >= len(t.partials) {
		return 0
	}
	return t.deltas[note][k]
}

// Audible returns how many partials of note render below Nyquist.
func (t *DeltaTable) Audible(note Note) int {
	if !note.Valid() {
		return 0
	}
	return len(t.audible[note])
}
