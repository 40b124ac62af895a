package audio

import "sync/atomic"

// ----- Ring ----- //

// Ring is a lock-free single-producer single-consumer sample queue.
// Push is called only by the render loop, Pop only by the output.
type Ring struct {
	buf     []float32
	mask    uint64
	head    atomic.Uint64 // next read, written by the consumer
	tail    atomic.Uint64 // next write, written by the producer
	dropped atomic.Uint64
}

// NewRing rounds capacity up to a power of two.
func NewRing(capacity int) *Ring {
	size := 1
	for size < capacity {
		size <<= 1
	}
	return &Ring{
		buf:  make([]float32, size),
		mask: uint64(size - 1),
	}
}

// Cap ...
func (r *Ring) Cap() int {
	return len(r.buf)
}

// Len returns the number of buffered samples.
func (r *Ring) Len() int {
	return int(r.tail.Load() - r.head.Load())
}

// Free ...
func (r *Ring) Free() int {
	return len(r.buf) - r.Len()
}

// Push writes as many samples as fit and drops the rest. It never blocks.
func (r *Ring) Push(samples []float32) int {
	tail := r.tail.Load()
	free := uint64(len(r.buf)) - (tail - r.head.Load())
	n := uint64(len(samples))
	if n > free {
		r.dropped.Add(n - free)
		n = free
	}
	for i := uint64(0); i < n; i++ {
		r.buf[(tail+i)&r.mask] = samples[i]
	}
	r.tail.Store(tail + n)
	return int(n)
}

// Pop returns false when the ring is empty.
func (r *Ring) Pop() (float32, bool) {
	head := r.head.Load()
	if head == r.tail.Load() {
		return 0, false
	}
	v := r.buf[head&r.mask]
	r.head.Store(head + 1)
	return v, true
}

// Dropped returns the number of samples discarded by Push.
func (r *Ring) Dropped() uint64 {
	return r.dropped.Load()
}
