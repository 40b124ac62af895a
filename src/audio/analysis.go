package audio

import (
	"math"
	"sync"

	"github.com/viterin/vek/vek32"
)

const fftSize = 4096

// ----- Window ----- //

// Window returns the coefficient of sample i out of n.
type Window func(i, n int) float64

// Han ...
func Han(i, n int) float64 {
	return 0.5 - 0.5*math.Cos(2.0*math.Pi*float64(i)/float64(n))
}

// Hamming ...
func Hamming(i, n int) float64 {
	return 0.54 - 0.46*math.Cos(2.0*math.Pi*float64(i)/float64(n))
}

// Blackman ...
func Blackman(i, n int) float64 {
	x := float64(i) / float64(n)
	return 0.42 - 0.5*math.Cos(2.0*math.Pi*x) + 0.08*math.Cos(4.0*math.Pi*x)
}

func applyWindow(data []float64, w Window) {
	n := len(data)
	for i := range data {
		data[i] *= w(i, n)
	}
}

// DominantFrequency returns the centre frequency of the strongest FFT bin,
// excluding DC. len(samples) must be a power of two.
func DominantFrequency(samples []float64, sampleRate int, w Window) (float64, error) {
	n := len(samples)
	x := make([]float64, n)
	copy(x, samples)
	if w != nil {
		applyWindow(x, w)
	}
	if err := NewFFT(n, false).CalcAbs(x); err != nil {
		return 0, err
	}
	peak := 1
	for i := 2; i < n/2; i++ {
		if x[i] > x[peak] {
			peak = i
		}
	}
	return float64(peak) * float64(sampleRate) / float64(n), nil
}

// ----- Scope ----- //

// scope keeps the most recent rendered samples. It is written by the render
// loop and read by reporters, never by the output.
type scope struct {
	sync.Mutex
	out []float32 // length: fftSize
	pos int
}

func newScope() *scope {
	return &scope{out: make([]float32, fftSize)}
}

func (s *scope) write(samples []float32) {
	s.Lock()
	defer s.Unlock()
	if len(samples) >= len(s.out) {
		copy(s.out, samples[len(samples)-len(s.out):])
		s.pos = 0
		return
	}
	n := copy(s.out[s.pos:], samples)
	copy(s.out, samples[n:])
	s.pos = (s.pos + len(samples)) % len(s.out)
}

// snapshot copies the window oldest first.
//
//	out:    | 4 | 1 | 2 | 3 |
//	pos:        ^
//	result: | 1 | 2 | 3 | 4 |
func (s *scope) snapshot(dst []float32) []float32 {
	s.Lock()
	defer s.Unlock()
	dst = append(dst[:0], s.out[s.pos:]...)
	return append(dst, s.out[:s.pos]...)
}

func peakLevel(samples []float32) float32 {
	if len(samples) == 0 {
		return 0
	}
	abs := vek32.Abs(samples)
	return vek32.Max(abs)
}

func toFloat64(samples []float32) []float64 {
	out := make([]float64, len(samples))
	for i, v := range samples {
		out[i] = float64(v)
	}
	return out
}
