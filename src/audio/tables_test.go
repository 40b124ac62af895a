package audio

import (
	"errors"
	"math"
	"testing"
)

func TestDeltaTable(t *testing.T) {
	for _, sampleRate := range []int{8000, 44100, 48000, 96000} {
		table, err := NewDeltaTable(sampleRate, StandardTuning, nil)
		expectNoError(t, err)
		expectEqual(t, table.Len(), NumNotes)
		expectEqual(t, table.NumPartials(), 1)
		for n := 0; n < NumNotes; n++ {
			freq := 440 * math.Pow(2, float64(n-69)/12)
			expected := 2 * math.Pi * freq / float64(sampleRate)
			actual := table.Delta(Note(n), 0)
			if math.Abs(actual-expected) > 1e-12 {
				t.Errorf("rate %d note %d: expected %v, but got: %v", sampleRate, n, expected, actual)
			}
		}
	}
}

func TestDeltaTableReference(t *testing.T) {
	table, err := NewDeltaTable(48000, StandardTuning, nil)
	expectNoError(t, err)
	expectEqual(t, table.Freq(69), 440.0)
	expectNearlyEqual(t, table.Freq(81), 880)
	expectNearlyEqual(t, table.Freq(57), 220)
	expectEqual(t, table.Freq(NumNotes), 0.0)
	expectEqual(t, table.Delta(NumNotes, 0), 0.0)
	expectEqual(t, table.Delta(69, 1), 0.0)

	table, err = NewDeltaTable(48000, Tuning{A4: 432}, nil)
	expectNoError(t, err)
	expectEqual(t, table.Freq(69), 432.0)
	expectEqual(t, table.Tuning().A4, 432.0)
}

func TestDeltaTableInvalid(t *testing.T) {
	for _, sampleRate := range []int{0, -1, -48000} {
		_, err := NewDeltaTable(sampleRate, StandardTuning, nil)
		if !errors.Is(err, ErrInvalidSampleRate) {
			t.Errorf("expected ErrInvalidSampleRate for %d, but got: %v", sampleRate, err)
		}
	}
	if _, err := NewDeltaTable(48000, Tuning{A4: 0}, nil); err == nil {
		t.Errorf("expected an error for a4 = 0")
	}
	if _, err := NewDeltaTable(48000, Tuning{A4: math.NaN()}, nil); err == nil {
		t.Errorf("expected an error for a4 = NaN")
	}
	if _, err := NewDeltaTable(48000, StandardTuning, []Partial{{Harmonic: 0, Amplitude: 1}}); err == nil {
		t.Errorf("expected an error for harmonic 0")
	}
}

func TestDeltaTableNyquist(t *testing.T) {
	partials := []Partial{{Harmonic: 1, Amplitude: 1}, {Harmonic: 2, Amplitude: 0.5}}
	table, err := NewDeltaTable(1000, StandardTuning, partials)
	expectNoError(t, err)
	expectEqual(t, table.NumPartials(), 2)
	// 440 Hz is below 500 Hz, 880 Hz is not
	expectEqual(t, table.Audible(69), 1)
	expectNearlyEqual(t, table.Delta(69, 1), 2*math.Pi*880/1000)
	expectEqual(t, table.Audible(0), 2)

	table, err = NewDeltaTable(44100, StandardTuning, nil)
	expectNoError(t, err)
	expectEqual(t, table.Audible(NumNotes-1), 0)
	expectEqual(t, table.Audible(127), 1)
}

func TestDeltaTableDeterministic(t *testing.T) {
	partials := []Partial{{Harmonic: 1, Amplitude: 1}, {Harmonic: 3, Amplitude: 0.3}}
	a, err := NewDeltaTable(44100, StandardTuning, partials)
	expectNoError(t, err)
	b, err := NewDeltaTable(44100, StandardTuning, partials)
	expectNoError(t, err)
	for n := 0; n < NumNotes; n++ {
		expectEqual(t, a.Freq(Note(n)), b.Freq(Note(n)))
		for k := 0; k < len(partials); k++ {
			expectEqual(t, a.Delta(Note(n), k), b.Delta(Note(n), k))
		}
	}
}
