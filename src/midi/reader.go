package midi

import (
	"errors"
	"io"
	"time"
)

// ErrTimeout is returned by ReadPacket when nothing arrived in time.
var ErrTimeout = errors.New("midi read timed out")

// PacketReader ...
type PacketReader interface {
	// ReadPacket blocks for at most timeout. It returns io.EOF when the
	// source is gone.
	ReadPacket(timeout time.Duration) ([]byte, error)
}

// ChanReader reads packets from a channel such as the one returned by
// ListenToMidiIn.
type ChanReader struct {
	ch <-chan []byte
}

// NewChanReader ...
func NewChanReader(ch <-chan []byte) *ChanReader {
	return &ChanReader{ch: ch}
}

// ReadPacket ...
func (r *ChanReader) ReadPacket(timeout time.Duration) ([]byte, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case p, ok := <-r.ch:
		if !ok {
			return nil, io.EOF
		}
		return p, nil
	case <-timer.C:
		return nil, ErrTimeout
	}
}
