package windowing

import (
	"fmt"
	"math"
)

// Hann is a Hann analysis window with a precomputed coefficient table.
// The table is generated once at construction and reused on every frame,
// so applying the window never allocates.
type Hann struct {
	size         int
	symmetric    bool
	coefficients []float64
}

// NewHann creates a Hann window of the given size. Periodic (symmetric=false)
// is the usual choice for FFT analysis; symmetric is for filter design.
func NewHann(size int, symmetric bool) *Hann {
	h := &Hann{
		size:      size,
		symmetric: symmetric,
	}
	h.generate()
	return h
}

func (h *Hann) generate() {
	h.coefficients = make([]float64, h.size)

	denominator := float64(h.size)
	if h.symmetric {
		denominator = float64(h.size - 1)
	}

	for i := 0; i < h.size; i++ {
		h.coefficients[i] = 0.5 * (1.0 - math.Cos(2*math.Pi*float64(i)/denominator))
	}
}

// Apply applies the window to a signal (creates new array).
func (h *Hann) Apply(signal []float64) []float64 {
	if len(signal) != h.size {
		return nil
	}

	windowed := make([]float64, h.size)
	for i := 0; i < h.size; i++ {
		windowed[i] = signal[i] * h.coefficients[i]
	}

	return windowed
}

// ApplyTo multiplies signal by the window into dst. dst and signal may be
// the same slice. This is the variant used on the real-time path.
func (h *Hann) ApplyTo(dst, signal []float64) error {
	if len(signal) != h.size {
		return fmt.Errorf("signal length (%d) doesn't match window size (%d)", len(signal), h.size)
	}
	if len(dst) != h.size {
		return fmt.Errorf("destination length (%d) doesn't match window size (%d)", len(dst), h.size)
	}

	for i := 0; i < h.size; i++ {
		dst[i] = signal[i] * h.coefficients[i]
	}

	return nil
}

// ApplyInPlace applies the window to a signal in-place.
func (h *Hann) ApplyInPlace(signal []float64) error {
	return h.ApplyTo(signal, signal)
}

// GetCoefficients returns a copy of the window coefficients.
func (h *Hann) GetCoefficients() []float64 {
	coeffs := make([]float64, len(h.coefficients))
	copy(coeffs, h.coefficients)
	return coeffs
}

// GetSize returns the window size.
func (h *Hann) GetSize() int {
	return h.size
}

// GetType returns the window type.
func (h *Hann) GetType() string {
	return "hann"
}
