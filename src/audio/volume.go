package audio

import (
	"math"
	"sync/atomic"
)

// Volume is a gain shared with the output. Values outside [0, 1] are kept
// as is; nothing downstream clamps them.
type Volume struct {
	bits atomic.Uint32
}

// NewVolume ...
func NewVolume(gain float32) *Volume {
	v := &Volume{}
	v.Store(gain)
	return v
}

// Load ...
func (v *Volume) Load() float32 {
	return math.Float32frombits(v.bits.Load())
}

// Store ...
func (v *Volume) Store(gain float32) {
	v.bits.Store(math.Float32bits(gain))
}
