package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jinjor/desktop-sine/src/audio"
	"gopkg.in/yaml.v3"
)

func expectNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Errorf("expected no error, but got: %v", err)
	}
}

func expectEqual(t *testing.T, actual, expected interface{}) {
	t.Helper()
	if actual != expected {
		t.Errorf("expected %v, but got: %v", expected, actual)
	}
}

func TestSave(t *testing.T) {
	partials, err := parsePartials("1, 2")
	expectNoError(t, err)
	table, err := audio.NewDeltaTable(1000, audio.StandardTuning, partials)
	expectNoError(t, err)
	filename := filepath.Join(t.TempDir(), "delta_1000.yml")
	expectNoError(t, save(filename, table))

	data, err := os.ReadFile(filename)
	expectNoError(t, err)
	var f tableFile
	expectNoError(t, yaml.Unmarshal(data, &f))
	expectEqual(t, f.SampleRate, 1000)
	expectEqual(t, f.A4, 440.0)
	expectEqual(t, len(f.Notes), audio.NumNotes)
	a := f.Notes[69]
	expectEqual(t, a.Note, 69)
	expectEqual(t, a.Freq, 440.0)
	expectEqual(t, len(a.Deltas), 2)
	expectEqual(t, a.Deltas[0], table.Delta(69, 0))
	expectEqual(t, a.Audible, 1)
}

func TestParse(t *testing.T) {
	values, err := parseInts("44100,48000")
	expectNoError(t, err)
	expectEqual(t, len(values), 2)
	expectEqual(t, values[1], 48000)
	if _, err := parseInts("44100,fast"); err == nil {
		t.Errorf("expected an error")
	}
	if _, err := parsePartials("0"); err == nil {
		t.Errorf("expected an error")
	}
	partials, err := parsePartials("1,4")
	expectNoError(t, err)
	expectEqual(t, partials[1].Amplitude, 0.25)
}
