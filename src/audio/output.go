package audio

import (
	"io"
	"math"
	"sync/atomic"

	"github.com/viterin/vek/vek32"
)

const bitDepthInBytes = 2

// ----- Output ----- //

// Output is the consumer side of the ring. Fill and Read run on the audio
// driver's schedule: they never lock, allocate or block.
type Output struct {
	ring       *Ring
	volume     *Volume
	channels   int
	playing    atomic.Bool
	closed     atomic.Bool
	underflows atomic.Uint64
	scratch    []float32 // whole frames
}

// NewOutput preallocates room for maxFrames frames per Fill inside Read.
func NewOutput(ring *Ring, volume *Volume, channels int, maxFrames int) *Output {
	if channels < 1 {
		channels = 1
	}
	if maxFrames < 1 {
		maxFrames = 1
	}
	return &Output{
		ring:     ring,
		volume:   volume,
		channels: channels,
		scratch:  make([]float32, maxFrames*channels),
	}
}

// Channels ...
func (o *Output) Channels() int {
	return o.channels
}

// SetPlaying ...
func (o *Output) SetPlaying(playing bool) {
	o.playing.Store(playing)
}

// Playing ...
func (o *Output) Playing() bool {
	return o.playing.Load()
}

// Underflows returns how many frames were filled with silence because the
// ring was empty while playing.
func (o *Output) Underflows() uint64 {
	return o.underflows.Load()
}

// Fill writes interleaved frames into dst. Each popped sample is copied to
// every channel of its frame and scaled by the current volume. While
// stopped it writes silence and leaves the ring untouched.
func (o *Output) Fill(dst []float32) {
	if !o.playing.Load() {
		clear(dst)
		return
	}
	ch := o.channels
	frames := len(dst) / ch
	for i := 0; i < frames; i++ {
		s, ok := o.ring.Pop()
		if !ok {
			o.underflows.Add(1)
		}
		frame := dst[i*ch : i*ch+ch]
		for c := range frame {
			frame[c] = s
		}
	}
	clear(dst[frames*ch:])
	vek32.MulNumber_Inplace(dst, o.volume.Load())
}

// Read implements io.Reader by producing 16-bit little-endian PCM.
func (o *Output) Read(buf []byte) (int, error) {
	if o.closed.Load() {
		return 0, io.EOF
	}
	frameBytes := bitDepthInBytes * o.channels
	n := len(buf) / frameBytes * frameBytes
	if n == 0 {
		return 0, io.ErrShortBuffer
	}
	chunkBytes := len(o.scratch) * bitDepthInBytes
	for offset := 0; offset < n; offset += chunkBytes {
		end := min(offset+chunkBytes, n)
		samples := o.scratch[:(end-offset)/bitDepthInBytes]
		o.Fill(samples)
		writeBuffer(samples, buf[offset:end])
	}
	return n, nil
}

func (o *Output) close() {
	o.closed.Store(true)
}

var _ io.Reader = (*Output)(nil)

// writeBuffer saturates at full scale so that a loud sum does not wrap
// around. The gain itself is never clamped.
func writeBuffer(samples []float32, buf []byte) {
	const max = math.MaxInt16
	for i, value := range samples {
		if value > 1 {
			value = 1
		} else if value < -1 {
			value = -1
		}
		b := int16(value * max)
		buf[bitDepthInBytes*i] = byte(b)
		buf[bitDepthInBytes*i+1] = byte(b >> 8)
	}
}
