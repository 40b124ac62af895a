package midi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/jinjor/desktop-sine/src/audio"
)

// DefaultTimeout bounds each read so that cancellation is noticed.
const DefaultTimeout = 100 * time.Millisecond

// ----- Pump ----- //

// Pump forwards decoded packets to a Sender.
type Pump struct {
	Reader  PacketReader
	Sink    audio.Sender
	Timeout time.Duration
	Verbose bool
}

// Run returns nil when ctx is done, the reader reaches EOF or the sink is
// disconnected.
func (p *Pump) Run(ctx context.Context) error {
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	for {
		select {
		case <-ctx.Done():
			log.Println("midi pump interrupted.")
			return nil
		default:
		}
		packet, err := p.Reader.ReadPacket(timeout)
		if errors.Is(err, ErrTimeout) {
			continue
		}
		if errors.Is(err, io.EOF) {
			log.Println("midi input closed.")
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read midi packet: %w", err)
		}
		ev := Decode(packet)
		if ev.Kind == audio.Unhandled {
			continue
		}
		if p.Verbose {
			log.Printf("midi: % x -> %v\n", packet, ev)
		}
		if err := p.Sink.Send(ev); err != nil {
			if errors.Is(err, audio.ErrDisconnected) {
				return nil
			}
			return fmt.Errorf("failed to send %v: %w", ev, err)
		}
	}
}
