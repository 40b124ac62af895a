package audio

import (
	"fmt"
	"math"
	"math/cmplx"
)

// FFT is a radix-2 transform of a fixed power-of-two length.
type FFT struct {
	bitReverseTable []int
	wTable          []complex128
	inverse         bool
}

// NewFFT ...
func NewFFT(length int, inverse bool) *FFT {
	return &FFT{
		bitReverseTable: makeBitReverseTable(length),
		wTable:          makeWTable(length),
		inverse:         inverse,
	}
}
func makeBitReverseTable(n int) []int {
	array := make([]int, n)
	for i := 0; i < n; i++ {
		array[i] = bitReverse(i, n)
	}
	return array
}
func bitReverse(k, n int) int {
	m := 0
	for ; n > 1; n = n >> 1 {
		m = m<<1 + k&1
		k = k >> 1
	}
	return m
}
func makeWTable(n int) []complex128 {
	array := make([]complex128, n)
	w := -2.0 * math.Pi / float64(n)
	for i := 0; i < n; i++ {
		array[i] = cmplx.Exp(complex(0, w*float64(i)))
	}
	return array
}

// Len ...
func (fft *FFT) Len() int {
	return len(fft.bitReverseTable)
}

// Calc transforms x in place.
func (fft *FFT) Calc(x []complex128) error {
	n := len(x)
	if n != len(fft.bitReverseTable) {
		return fmt.Errorf("length should be %v, but got %v", len(fft.bitReverseTable), n)
	}
	for i := 0; i < n; i++ {
		rev := fft.bitReverseTable[i]
		if i < rev {
			x[i], x[rev] = x[rev], x[i]
		}
	}
	for m := 1; m < n; m = m << 1 {
		step := m << 1
		for k := 0; k < m; k++ {
			w := fft.wTable[n/step*k]
			if fft.inverse {
				w = cmplx.Conj(w)
			}
			for i := k; i < n; i += step {
				j := i + m
				tmp := x[j] * w
				x[j] = x[i] - tmp
				x[i] = x[i] + tmp
			}
		}
	}
	if fft.inverse {
		for i := 0; i < n; i++ {
			x[i] /= complex(float64(n), 0)
		}
	}
	return nil
}

// CalcReal replaces x with the real part of its transform.
func (fft *FFT) CalcReal(x []float64) error {
	cx, err := fft.calcFromReal(x)
	if err != nil {
		return err
	}
	for i := range x {
		x[i] = real(cx[i])
	}
	return nil
}

// CalcAbs replaces x with the magnitude of its transform.
func (fft *FFT) CalcAbs(x []float64) error {
	cx, err := fft.calcFromReal(x)
	if err != nil {
		return err
	}
	for i := range x {
		x[i] = cmplx.Abs(cx[i])
	}
	return nil
}

func (fft *FFT) calcFromReal(x []float64) ([]complex128, error) {
	cx := make([]complex128, len(x))
	for i := range x {
		cx[i] = complex(x[i], 0)
	}
	if err := fft.Calc(cx); err != nil {
		return nil, err
	}
	return cx, nil
}
