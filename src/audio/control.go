package audio

import (
	"errors"
	"sync"
)

// ErrDisconnected is returned by Send once a Disconnect has been queued.
var ErrDisconnected = errors.New("control channel disconnected")

// ----- Control Channel ----- //

// ControlChannel is an unbounded multi-producer single-consumer event queue.
// Events from one producer are drained in the order they were sent.
type ControlChannel struct {
	sync.Mutex
	queue  []Event
	closed bool
	wake   chan struct{}
}

// NewControlChannel ...
func NewControlChannel() *ControlChannel {
	return &ControlChannel{
		queue: make([]Event, 0, 256),
		wake:  make(chan struct{}, 1),
	}
}

// Send never blocks on the consumer.
func (c *ControlChannel) Send(ev Event) error {
	c.Lock()
	if c.closed {
		c.Unlock()
		return ErrDisconnected
	}
	c.queue = append(c.queue, ev)
	if ev.Kind == Disconnect {
		c.closed = true
	}
	c.Unlock()
	select {
	case c.wake <- struct{}{}:
	default:
	}
	return nil
}

// Drain appends all queued events to dst and empties the queue.
func (c *ControlChannel) Drain(dst []Event) []Event {
	c.Lock()
	dst = append(dst, c.queue...)
	c.queue = c.queue[:0]
	c.Unlock()
	return dst
}

// Wait is signaled after a Send. A signal may be stale, so consumers must
// Drain and tolerate an empty result.
func (c *ControlChannel) Wait() <-chan struct{} {
	return c.wake
}

// Len ...
func (c *ControlChannel) Len() int {
	c.Lock()
	defer c.Unlock()
	return len(c.queue)
}
