package midi

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	gomidi "gitlab.com/gomidi/midi"
	"gitlab.com/gomidi/rtmididrv"
)

// ErrNoInput is returned when no MIDI IN matches.
var ErrNoInput = errors.New("MIDI IN not found")

type port interface {
	String() string
}

// choosePort returns the index of the first port whose name starts with
// prefix. An empty prefix takes the first port.
func choosePort[P port](ports []P, prefix string) (int, error) {
	for i, p := range ports {
		if strings.HasPrefix(p.String(), prefix) {
			return i, nil
		}
	}
	if prefix == "" {
		return -1, ErrNoInput
	}
	return -1, fmt.Errorf("%w: no name starts with %q", ErrNoInput, prefix)
}

// ListenToMidiIn opens the first input matching prefix and streams its
// messages as packets until ctx is done. The channel is closed after the
// port and the driver are released. Messages are dropped while the
// channel is full.
func ListenToMidiIn(ctx context.Context, prefix string) (<-chan []byte, error) {
	drv, err := rtmididrv.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize MIDI driver: %w", err)
	}
	closeDriver := func() {
		if err := drv.Close(); err != nil {
			log.Printf("failed to close MIDI driver: %v\n", err)
		}
	}
	ins, err := drv.Ins()
	if err != nil {
		closeDriver()
		return nil, fmt.Errorf("failed to get MIDI IN: %w", err)
	}
	log.Printf("MIDI IN: %v\n", ins)
	i, err := choosePort(ins, prefix)
	if err != nil {
		closeDriver()
		return nil, err
	}
	in := ins[i]
	if err := in.Open(); err != nil {
		closeDriver()
		return nil, fmt.Errorf("failed to open MIDI IN: %w", err)
	}
	log.Println("opened " + in.String())

	ch := make(chan []byte, 1024)
	if err := in.SetListener(func(data []byte, deltaMicroseconds int64) {
		select {
		case ch <- Frame(data):
		default:
		}
	}); err != nil {
		closePort(in)
		closeDriver()
		return nil, fmt.Errorf("failed to set listener: %w", err)
	}
	log.Println("start listening MIDI IN...")
	go func() {
		<-ctx.Done()
		log.Println("stop listening MIDI IN...")
		if err := in.StopListening(); err != nil {
			log.Printf("failed to stop listening: %v\n", err)
		}
		closePort(in)
		closeDriver()
		close(ch)
	}()
	return ch, nil
}

func closePort(in gomidi.In) {
	if err := in.Close(); err != nil {
		log.Printf("failed to close MIDI IN: %v\n", err)
	}
}
