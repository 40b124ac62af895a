package audio

import (
	"context"
	"fmt"
	"io"
	"log"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

// ----- Config ----- //

// Config ...
type Config struct {
	SampleRate        int
	Channels          int
	RingCapacity      int // samples
	BatchSize         int // samples rendered per iteration
	BufferSizeInBytes int // device buffer
	Volume            float32
	Tuning            Tuning
	Partials          []Partial
	Retrigger         Retrigger
	Headless          bool
}

// DefaultConfig ...
func DefaultConfig() Config {
	return Config{
		SampleRate:        48000,
		Channels:          2,
		RingCapacity:      8192,
		BatchSize:         1024,
		BufferSizeInBytes: 4096,
		Volume:            0.5,
		Tuning:            StandardTuning,
		Partials:          []Partial{{Harmonic: 1, Amplitude: 1}},
		Retrigger:         RetriggerContinue,
	}
}

// Validate ...
func (c Config) Validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidSampleRate, c.SampleRate)
	}
	if c.Channels < 1 {
		return fmt.Errorf("channels must be at least 1: %d", c.Channels)
	}
	if c.RingCapacity < 1 {
		return fmt.Errorf("ring capacity must be at least 1: %d", c.RingCapacity)
	}
	if c.BatchSize < 1 || c.BatchSize > c.RingCapacity {
		return fmt.Errorf("batch size must be in [1, %d]: %d", c.RingCapacity, c.BatchSize)
	}
	if c.BufferSizeInBytes < bitDepthInBytes*c.Channels {
		return fmt.Errorf("buffer size must hold at least one frame: %d", c.BufferSizeInBytes)
	}
	return nil
}

const minIdle = 100 * time.Microsecond

// ----- Stats ----- //

// Stats ...
type Stats struct {
	Dropped     uint64 // samples the ring could not take
	Underflows  uint64 // frames played as silence
	Buffered    int    // samples waiting in the ring
	ActiveNotes int
	Peak        float32 // unscaled peak of the recent window
}

func (s Stats) String() string {
	return fmt.Sprintf("notes=%d buffered=%d dropped=%d underflows=%d peak=%.3f",
		s.ActiveNotes, s.Buffered, s.Dropped, s.Underflows, s.Peak)
}

// ----- Audio ----- //

// Audio wires the control channel, the synth, the ring and the output.
type Audio struct {
	config  Config
	table   *DeltaTable
	synth   *Synth
	ring    *Ring
	volume  *Volume
	control *ControlChannel
	output  *Output
	sink    Sink
	scope   *scope
	active  atomic.Int32
}

// NewAudio validates cfg, builds the tables and opens the output device.
func NewAudio(cfg Config) (*Audio, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	var sink Sink
	if cfg.Headless {
		sink = NewHeadlessSink(cfg.SampleRate, cfg.Channels)
	} else {
		var err error
		sink, err = NewOtoSink(cfg.SampleRate, cfg.Channels, cfg.BufferSizeInBytes)
		if err != nil {
			return nil, err
		}
	}
	a, err := newAudio(cfg, sink)
	if err != nil {
		sink.Close()
		return nil, err
	}
	return a, nil
}

func newAudio(cfg Config, sink Sink) (*Audio, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	table, err := NewDeltaTable(cfg.SampleRate, cfg.Tuning, cfg.Partials)
	if err != nil {
		return nil, err
	}
	ring := NewRing(cfg.RingCapacity)
	volume := NewVolume(cfg.Volume)
	frames := cfg.BufferSizeInBytes / (bitDepthInBytes * cfg.Channels)
	return &Audio{
		config:  cfg,
		table:   table,
		synth:   NewSynth(table, WithRetrigger(cfg.Retrigger)),
		ring:    ring,
		volume:  volume,
		control: NewControlChannel(),
		output:  NewOutput(ring, volume, cfg.Channels, frames),
		sink:    sink,
		scope:   newScope(),
	}, nil
}

// Send queues an event for the render loop.
func (a *Audio) Send(ev Event) error {
	return a.control.Send(ev)
}

// Volume ...
func (a *Audio) Volume() float32 {
	return a.volume.Load()
}

// Table ...
func (a *Audio) Table() *DeltaTable {
	return a.table
}

// Start renders and plays until a Disconnect is processed or ctx is done.
func (a *Audio) Start(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer a.output.close()
		return a.render(ctx)
	})
	g.Go(func() error {
		// block until the output is closed
		if _, err := io.CopyBuffer(a.sink, a.output, make([]byte, a.config.BufferSizeInBytes)); err != nil {
			return fmt.Errorf("failed to write to output: %w", err)
		}
		log.Println("output ended.")
		return nil
	})
	err := g.Wait()
	log.Println("Start() ended.")
	return err
}

func (a *Audio) render(ctx context.Context) error {
	batch := make([]float32, a.config.BatchSize)
	events := make([]Event, 0, 256)
	idle := max(a.batchDuration()/2, minIdle)
	ticker := time.NewTicker(idle)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Println("render() interrupted.")
			return nil
		default:
		}
		events = a.control.Drain(events[:0])
		for _, ev := range events {
			if ev.Kind == Disconnect {
				log.Println("render() disconnected.")
				a.drain(ctx, ticker)
				return nil
			}
			a.apply(ev)
		}
		if a.ring.Free() < len(batch) {
			select {
			case <-ctx.Done():
			case <-a.control.Wait():
			case <-ticker.C:
			}
			continue
		}
		a.synth.Render(batch)
		a.ring.Push(batch)
		a.scope.write(batch)
	}
}

func (a *Audio) apply(ev Event) {
	switch ev.Kind {
	case NoteOn, NoteOff:
		if a.synth.Apply(ev) {
			a.active.Store(int32(a.synth.Active()))
		}
	case SetVolume:
		a.volume.Store(ev.Gain)
	case Play:
		a.output.SetPlaying(true)
	case Stop:
		a.output.SetPlaying(false)
	}
}

// drain lets the output play what is already buffered, bounded by the time
// a full ring takes to play.
func (a *Audio) drain(ctx context.Context, ticker *time.Ticker) {
	deadline := time.Now().Add(a.ringDuration())
	for a.output.Playing() && a.ring.Len() > 0 && time.Now().Before(deadline) {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (a *Audio) batchDuration() time.Duration {
	return time.Duration(a.config.BatchSize) * time.Second / time.Duration(a.config.SampleRate)
}

func (a *Audio) ringDuration() time.Duration {
	return time.Duration(a.ring.Cap()) * time.Second / time.Duration(a.config.SampleRate)
}

// Stats ...
func (a *Audio) Stats() Stats {
	return Stats{
		Dropped:     a.ring.Dropped(),
		Underflows:  a.output.Underflows(),
		Buffered:    a.ring.Len(),
		ActiveNotes: int(a.active.Load()),
		Peak:        peakLevel(a.scope.snapshot(nil)),
	}
}

// PeakFrequency returns the dominant frequency of the recently rendered
// signal, or 0 when it is silent.
func (a *Audio) PeakFrequency() float64 {
	samples := a.scope.snapshot(nil)
	if peakLevel(samples) == 0 {
		return 0
	}
	freq, err := DominantFrequency(toFloat64(samples), a.config.SampleRate, Han)
	if err != nil {
		log.Printf("failed to analyze spectrum: %v\n", err)
		return 0
	}
	return freq
}

// Close ...
func (a *Audio) Close() error {
	log.Println("Closing Audio...")
	a.output.close()
	return a.sink.Close()
}
