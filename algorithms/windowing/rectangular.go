package windowing

import (
	"fmt"
)

// Rectangular is the identity window. It has the narrowest equivalent noise
// bandwidth and no leakage suppression, which makes it the right window for
// exact single-bin test signals.
type Rectangular struct {
	size         int
	coefficients []float64
}

// NewRectangular creates a new rectangular window
func NewRectangular(size int) *Rectangular {
	r := &Rectangular{
		size:         size,
		coefficients: make([]float64, size),
	}
	for i := range r.coefficients {
		r.coefficients[i] = 1.0
	}
	return r
}

// ApplyTo copies signal into dst unchanged.
func (r *Rectangular) ApplyTo(dst, signal []float64) error {
	if len(signal) != r.size {
		return fmt.Errorf("signal length (%d) doesn't match window size (%d)", len(signal), r.size)
	}
	if len(dst) != r.size {
		return fmt.Errorf("destination length (%d) doesn't match window size (%d)", len(dst), r.size)
	}

	copy(dst, signal)
	return nil
}

// GetCoefficients returns a copy of the window coefficients.
func (r *Rectangular) GetCoefficients() []float64 {
	coeffs := make([]float64, len(r.coefficients))
	copy(coeffs, r.coefficients)
	return coeffs
}

// GetSize returns the window size.
func (r *Rectangular) GetSize() int {
	return r.size
}

// GetType returns the window type.
func (r *Rectangular) GetType() string {
	return "rectangular"
}
