package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jinjor/desktop-sine/src/audio"
)

func expectEqual(t *testing.T, actual, expected interface{}) {
	t.Helper()
	if actual != expected {
		t.Errorf("expected %v, but got: %v", expected, actual)
	}
}

func expectNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Errorf("expected no error, but got: %v", err)
	}
}

func TestDefault(t *testing.T) {
	cfg, err := Default().AudioConfig()
	expectNoError(t, err)
	d := audio.DefaultConfig()
	expectEqual(t, cfg.SampleRate, d.SampleRate)
	expectEqual(t, cfg.Channels, d.Channels)
	expectEqual(t, cfg.RingCapacity, d.RingCapacity)
	expectEqual(t, cfg.BatchSize, d.BatchSize)
	expectEqual(t, cfg.Volume, d.Volume)
	expectEqual(t, cfg.Tuning, d.Tuning)
	expectEqual(t, len(cfg.Partials), 1)
	expectEqual(t, cfg.Retrigger, audio.RetriggerContinue)
	expectEqual(t, Default().ReadTimeout(), 100*time.Millisecond)
}

func TestParse(t *testing.T) {
	c, err := Parse([]byte(`
audio:
  sample_rate: 44100
  headless: true
engine:
  volume: 0.25
  retrigger: reset
tuning:
  a4: 432
partials:
  - harmonic: 1
    amplitude: 1
  - harmonic: 3
    amplitude: 0.33
midi:
  in: nanoKEY
`))
	expectNoError(t, err)
	cfg, err := c.AudioConfig()
	expectNoError(t, err)
	expectEqual(t, cfg.SampleRate, 44100)
	expectEqual(t, cfg.Headless, true)
	expectEqual(t, cfg.Volume, float32(0.25))
	expectEqual(t, cfg.Retrigger, audio.RetriggerReset)
	expectEqual(t, cfg.Tuning.A4, 432.0)
	expectEqual(t, len(cfg.Partials), 2)
	expectEqual(t, cfg.Partials[1], audio.Partial{Harmonic: 3, Amplitude: 0.33})
	expectEqual(t, c.MIDI.In, "nanoKEY")
	// untouched keys keep defaults
	expectEqual(t, cfg.Channels, 2)
	expectEqual(t, cfg.BatchSize, 1024)
	expectEqual(t, c.Audio.Autoplay, true)
}

func TestParseEmpty(t *testing.T) {
	c, err := Parse(nil)
	expectNoError(t, err)
	expectEqual(t, c.Audio.SampleRate, 48000)
}

func TestParseErrors(t *testing.T) {
	for name, data := range map[string]string{
		"unknown key": "audio:\n  samplerate: 1\n",
		"bad type":    "audio:\n  sample_rate: fast\n",
	} {
		if _, err := Parse([]byte(data)); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
	for name, data := range map[string]string{
		"rate":      "audio:\n  sample_rate: -1\n",
		"retrigger": "engine:\n  retrigger: legato\n",
		"a4":        "tuning:\n  a4: -440\n",
		"harmonic":  "partials:\n  - harmonic: 0\n    amplitude: 1\n",
		"batch":     "engine:\n  batch: 100000\n",
	} {
		c, err := Parse([]byte(data))
		expectNoError(t, err)
		if _, err := c.AudioConfig(); err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
}

func TestLoad(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "sine.yml")
	expectNoError(t, os.WriteFile(filename, []byte("engine:\n  volume: 0.75\n"), 0644))
	c, err := Load(filename)
	expectNoError(t, err)
	expectEqual(t, c.Engine.Volume, float32(0.75))

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yml")); err == nil {
		t.Errorf("expected an error for a missing file")
	}
}
