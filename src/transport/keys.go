package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/jinjor/desktop-sine/src/audio"
)

const ctrlC = 0x03

// Keys maps single key presses to transport events. Ctrl-C is included
// because raw mode does not raise SIGINT.
var Keys = map[byte]audio.EventKind{
	'p':   audio.Play,
	's':   audio.Stop,
	'q':   audio.Disconnect,
	ctrlC: audio.Disconnect,
}

// Run reads key presses from in and sends the mapped events to sink. It
// returns after sending Disconnect, at EOF or when ctx is done.
func Run(ctx context.Context, in io.Reader, sink audio.Sender) error {
	// one channel for keys and the final error keeps them in order
	presses := make(chan press, 16)
	go readKeys(ctx, in, presses)
	for {
		var p press
		select {
		case <-ctx.Done():
			return nil
		case p = <-presses:
		}
		if p.err != nil {
			if errors.Is(p.err, io.EOF) {
				return nil
			}
			return fmt.Errorf("failed to read keys: %w", p.err)
		}
		kind, ok := Keys[p.key]
		if !ok {
			continue
		}
		log.Printf("key %q: %v\n", p.key, kind)
		if err := sink.Send(audio.Event{Kind: kind}); err != nil {
			if errors.Is(err, audio.ErrDisconnected) {
				return nil
			}
			return fmt.Errorf("failed to send %v: %w", kind, err)
		}
		if kind == audio.Disconnect {
			return nil
		}
	}
}

type press struct {
	key byte
	err error
}

func readKeys(ctx context.Context, in io.Reader, presses chan<- press) {
	buf := make([]byte, 1)
	for {
		n, err := in.Read(buf)
		if n > 0 {
			select {
			case presses <- press{key: buf[0]}:
			case <-ctx.Done():
				return
			}
		}
		if err != nil {
			select {
			case presses <- press{err: err}:
			case <-ctx.Done():
			}
			return
		}
	}
}
