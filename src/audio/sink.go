package audio

import (
	"fmt"
	"io"
	"time"

	"github.com/hajimehoshi/oto"
)

// ----- Sink ----- //

// Sink receives interleaved 16-bit PCM. Write blocks for roughly the time
// the device needs to play what it was given.
type Sink interface {
	io.Writer
	Close() error
}

type otoSink struct {
	context *oto.Context
	player  *oto.Player
}

// NewOtoSink opens the default output device.
func NewOtoSink(sampleRate int, channels int, bufferSizeInBytes int) (Sink, error) {
	context, err := oto.NewContext(sampleRate, channels, bitDepthInBytes, bufferSizeInBytes)
	if err != nil {
		return nil, fmt.Errorf("cannot create oto context: %w", err)
	}
	return &otoSink{context: context, player: context.NewPlayer()}, nil
}

func (s *otoSink) Write(buf []byte) (int, error) {
	return s.player.Write(buf)
}

func (s *otoSink) Close() error {
	if err := s.player.Close(); err != nil {
		return fmt.Errorf("cannot close oto player: %w", err)
	}
	if err := s.context.Close(); err != nil {
		return fmt.Errorf("cannot close oto context: %w", err)
	}
	return nil
}

// headlessSink discards PCM but consumes it at the sample rate, standing in
// for a device on machines without one.
type headlessSink struct {
	frameBytes int
	sampleRate int
	next       time.Time
}

// NewHeadlessSink ...
func NewHeadlessSink(sampleRate int, channels int) Sink {
	return &headlessSink{
		frameBytes: bitDepthInBytes * channels,
		sampleRate: sampleRate,
	}
}

func (s *headlessSink) Write(buf []byte) (int, error) {
	now := time.Now()
	if s.next.Before(now) {
		s.next = now
	}
	frames := len(buf) / s.frameBytes
	s.next = s.next.Add(time.Duration(frames) * time.Second / time.Duration(s.sampleRate))
	time.Sleep(time.Until(s.next))
	return len(buf), nil
}

func (s *headlessSink) Close() error {
	return nil
}
