package windowing

// Window is the interface shared by analysis window implementations.
// Implementations precompute their coefficient table at construction.
type Window interface {
	// ApplyTo multiplies signal by the window into dst (dst may alias signal).
	ApplyTo(dst, signal []float64) error

	// GetCoefficients returns a copy of the window coefficients.
	GetCoefficients() []float64

	// GetSize returns the window size.
	GetSize() int

	// GetType returns the window type name.
	GetType() string
}
