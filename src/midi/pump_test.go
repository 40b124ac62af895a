package midi

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/jinjor/desktop-sine/src/audio"
)

type fakeSender struct {
	sync.Mutex
	events []audio.Event
	err    error
}

func (s *fakeSender) Send(ev audio.Event) error {
	s.Lock()
	defer s.Unlock()
	if s.err != nil {
		return s.err
	}
	s.events = append(s.events, ev)
	return nil
}

type failingReader struct{}

func (failingReader) ReadPacket(timeout time.Duration) ([]byte, error) {
	return nil, errors.New("device lost")
}

func TestPump(t *testing.T) {
	ch := make(chan []byte, 8)
	ch <- []byte{0x09, 0x90, 60, 100}
	ch <- []byte{0x0e, 0xe0, 0, 64}
	ch <- []byte{0x0b, 0xb0, 7, 0}
	ch <- []byte{0x09, 0x90, 60, 0}
	close(ch)
	sink := &fakeSender{}
	p := &Pump{Reader: NewChanReader(ch), Sink: sink, Verbose: true}
	expectNoError(t, p.Run(context.Background()))
	expectEqual(t, len(sink.events), 3)
	expectEqual(t, sink.events[0], audio.NewNoteOn(60, 100))
	expectEqual(t, sink.events[1], audio.NewSetVolume(0))
	expectEqual(t, sink.events[2], audio.NewNoteOff(60))
}

func TestPumpCancel(t *testing.T) {
	ch := make(chan []byte)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	p := &Pump{Reader: NewChanReader(ch), Sink: &fakeSender{}, Timeout: 5 * time.Millisecond}
	go func() {
		done <- p.Run(ctx)
	}()
	cancel()
	select {
	case err := <-done:
		expectNoError(t, err)
	case <-time.After(time.Second):
		t.Fatalf("expected Run to return after cancel")
	}
}

func TestPumpDisconnected(t *testing.T) {
	ch := make(chan []byte, 1)
	ch <- []byte{0x09, 0x90, 60, 100}
	p := &Pump{Reader: NewChanReader(ch), Sink: &fakeSender{err: audio.ErrDisconnected}}
	expectNoError(t, p.Run(context.Background()))
}

func TestPumpErrors(t *testing.T) {
	ch := make(chan []byte, 1)
	ch <- []byte{0x09, 0x90, 60, 100}
	p := &Pump{Reader: NewChanReader(ch), Sink: &fakeSender{err: errors.New("full")}}
	if err := p.Run(context.Background()); err == nil {
		t.Errorf("expected a send error")
	}
	p = &Pump{Reader: failingReader{}, Sink: &fakeSender{}}
	if err := p.Run(context.Background()); err == nil {
		t.Errorf("expected a read error")
	}
}

func TestChanReader(t *testing.T) {
	ch := make(chan []byte, 1)
	r := NewChanReader(ch)
	_, err := r.ReadPacket(time.Millisecond)
	expectEqual(t, err, ErrTimeout)
	ch <- []byte{1, 2, 3, 4}
	p, err := r.ReadPacket(time.Millisecond)
	expectNoError(t, err)
	expectEqual(t, len(p), 4)
	close(ch)
	_, err = r.ReadPacket(time.Millisecond)
	expectEqual(t, err, io.EOF)
}
