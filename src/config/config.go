package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jinjor/desktop-sine/src/audio"
	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration. Zero fields keep their defaults.
type Config struct {
	Audio struct {
		SampleRate  int  `yaml:"sample_rate"`
		Channels    int  `yaml:"channels"`
		BufferBytes int  `yaml:"buffer_bytes"`
		Headless    bool `yaml:"headless"`
		Autoplay    bool `yaml:"autoplay"`
	} `yaml:"audio"`

	Engine struct {
		RingCapacity int     `yaml:"ring_capacity"`
		Batch        int     `yaml:"batch"`
		Volume       float32 `yaml:"volume"`
		Retrigger    string  `yaml:"retrigger"`
	} `yaml:"engine"`

	Tuning struct {
		A4 float64 `yaml:"a4"`
	} `yaml:"tuning"`

	Partials []Partial `yaml:"partials"`

	MIDI struct {
		In            string `yaml:"in"`
		ReadTimeoutMS int    `yaml:"read_timeout_ms"`
	} `yaml:"midi"`
}

// Partial ...
type Partial struct {
	Harmonic  int     `yaml:"harmonic"`
	Amplitude float64 `yaml:"amplitude"`
}

// Default ...
func Default() *Config {
	d := audio.DefaultConfig()
	var c Config
	c.Audio.SampleRate = d.SampleRate
	c.Audio.Channels = d.Channels
	c.Audio.BufferBytes = d.BufferSizeInBytes
	c.Audio.Autoplay = true
	c.Engine.RingCapacity = d.RingCapacity
	c.Engine.Batch = d.BatchSize
	c.Engine.Volume = d.Volume
	c.Engine.Retrigger = "continue"
	c.Tuning.A4 = d.Tuning.A4
	for _, p := range d.Partials {
		c.Partials = append(c.Partials, Partial{Harmonic: p.Harmonic, Amplitude: p.Amplitude})
	}
	c.MIDI.ReadTimeoutMS = 100
	return &c
}

// Load reads filename on top of the defaults.
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return c, nil
}

// Parse decodes YAML on top of the defaults. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	c := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return c, nil
}

// ReadTimeout ...
func (c *Config) ReadTimeout() time.Duration {
	return time.Duration(c.MIDI.ReadTimeoutMS) * time.Millisecond
}

// AudioConfig converts c into an engine configuration and validates it.
func (c *Config) AudioConfig() (audio.Config, error) {
	retrigger, ok := audio.ParseRetrigger(c.Engine.Retrigger)
	if !ok {
		return audio.Config{}, fmt.Errorf("unknown retrigger policy: %q", c.Engine.Retrigger)
	}
	cfg := audio.Config{
		SampleRate:        c.Audio.SampleRate,
		Channels:          c.Audio.Channels,
		RingCapacity:      c.Engine.RingCapacity,
		BatchSize:         c.Engine.Batch,
		BufferSizeInBytes: c.Audio.BufferBytes,
		Volume:            c.Engine.Volume,
		Tuning:            audio.Tuning{A4: c.Tuning.A4},
		Retrigger:         retrigger,
		Headless:          c.Audio.Headless,
	}
	for _, p := range c.Partials {
		cfg.Partials = append(cfg.Partials, audio.Partial{Harmonic: p.Harmonic, Amplitude: p.Amplitude})
	}
	if err := cfg.Validate(); err != nil {
		return audio.Config{}, err
	}
	if !(cfg.Tuning.A4 > 0) {
		return audio.Config{}, fmt.Errorf("invalid tuning: a4 = %v", cfg.Tuning.A4)
	}
	for i, p := range cfg.Partials {
		if p.Harmonic < 1 {
			return audio.Config{}, fmt.Errorf("invalid partial %d: harmonic %d", i, p.Harmonic)
		}
	}
	return cfg, nil
}
