package spectral

import (
	"fmt"
	"math"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/floats"

	"github.com/sonicvue/muse/algorithms/windowing"
)

// Transform converts a fixed-length PCM frame into a magnitude spectrum
// over linear frequency bins. The analysis window and the per-bin slope
// tilt are precomputed at construction; ComputeInto performs no
// allocation of its own and is safe to call from a real-time audio
// callback. Output is deterministic given the frame.
//
// Magnitudes are normalized by the window's coherent gain so that a
// unit-amplitude sine at a bin's center frequency reads 1.0 in that bin.
type Transform struct {
	fftSize    int
	sampleRate int
	window     windowing.Window
	gain       float64
	slope      float64

	norm     float64   // 1 / (coherentGain * N/2)
	tilt     []float64 // per-bin slope multiplier, nil when slope == 0
	windowed []float64 // scratch frame, reused every tick
}

// NewTransform creates a spectral transform for the given FFT size and
// sample rate. fftSize must be a power of two. gain must be >= 0; slope 0
// means no frequency tilt.
func NewTransform(fftSize, sampleRate int, window windowing.Window, gain, slope float64) (*Transform, error) {
	if fftSize <= 0 || fftSize&(fftSize-1) != 0 {
		return nil, fmt.Errorf("fft size must be a power of two, got %d", fftSize)
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive, got %d", sampleRate)
	}
	if window == nil {
		window = windowing.NewHann(fftSize, false)
	}
	if window.GetSize() != fftSize {
		return nil, fmt.Errorf("window size (%d) doesn't match fft size (%d)", window.GetSize(), fftSize)
	}
	if gain < 0 {
		return nil, fmt.Errorf("gain must be >= 0, got %f", gain)
	}

	coherentGain := 0.0
	for _, c := range window.GetCoefficients() {
		coherentGain += c
	}
	coherentGain /= float64(fftSize)

	t := &Transform{
		fftSize:    fftSize,
		sampleRate: sampleRate,
		window:     window,
		gain:       gain,
		norm:       1.0 / (coherentGain * float64(fftSize) / 2.0),
		windowed:   make([]float64, fftSize),
	}
	t.SetSlope(slope)

	return t, nil
}

// ComputeInto windows frame, runs the forward FFT and writes the N/2
// magnitudes into dst, scaled by gain and the slope tilt. A frame whose
// length differs from the configured FFT size is a programmer error and
// fails without touching dst.
func (t *Transform) ComputeInto(dst, frame []float64) error {
	if len(frame) != t.fftSize {
		return fmt.Errorf("frame length (%d) doesn't match configured fft size (%d)", len(frame), t.fftSize)
	}
	if len(dst) != t.Bins() {
		return fmt.Errorf("destination length (%d) doesn't match bin count (%d)", len(dst), t.Bins())
	}

	if err := t.window.ApplyTo(t.windowed, frame); err != nil {
		return err
	}

	spectrum := fft.FFTReal(t.windowed)

	for i := range dst {
		dst[i] = cmplxAbs(spectrum[i]) * t.norm
	}

	if t.gain != 1.0 {
		floats.Scale(t.gain, dst)
	}
	if t.tilt != nil {
		floats.Mul(dst, t.tilt)
	}

	return nil
}

func cmplxAbs(c complex128) float64 {
	return math.Hypot(real(c), imag(c))
}

// Bins returns the number of linear frequency bins (N/2).
func (t *Transform) Bins() int {
	return t.fftSize / 2
}

// BinWidth returns the width of one frequency bin in Hz.
func (t *Transform) BinWidth() float64 {
	return float64(t.sampleRate) / float64(t.fftSize)
}

// BinFrequency returns the center frequency of a bin in Hz.
func (t *Transform) BinFrequency(bin int) float64 {
	return float64(bin) * t.BinWidth()
}

// SampleRate returns the configured sample rate.
func (t *Transform) SampleRate() int {
	return t.sampleRate
}

// SetGain updates the post-transform gain scalar. Negative values are
// clamped to zero.
func (t *Transform) SetGain(gain float64) {
	if gain < 0 {
		gain = 0
	}
	t.gain = gain
}

// Gain returns the current gain scalar.
func (t *Transform) Gain() float64 {
	return t.gain
}

// SetSlope updates the frequency tilt and rebuilds the per-bin multiplier
// table: each bin is scaled by (binFreq/1kHz)^slope, bin 0 exempt. Not
// for use from the audio callback; the rebuild allocates.
func (t *Transform) SetSlope(slope float64) {
	t.slope = slope
	if slope == 0 {
		t.tilt = nil
		return
	}

	tilt := make([]float64, t.Bins())
	tilt[0] = 1.0
	for i := 1; i < len(tilt); i++ {
		tilt[i] = math.Pow(t.BinFrequency(i)/1000.0, slope)
	}
	t.tilt = tilt
}

// Slope returns the current slope exponent.
func (t *Transform) Slope() float64 {
	return t.slope
}
