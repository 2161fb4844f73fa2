package windowing

import (
	"math"
	"testing"
)

func TestHannPeriodicCoefficients(t *testing.T) {
	h := NewHann(8, false)
	coeffs := h.GetCoefficients()

	if len(coeffs) != 8 {
		t.Fatalf("got %d coefficients, want 8", len(coeffs))
	}
	if coeffs[0] != 0 {
		t.Errorf("first coefficient = %g, want 0", coeffs[0])
	}
	if math.Abs(coeffs[4]-1.0) > 1e-12 {
		t.Errorf("midpoint coefficient = %g, want 1.0", coeffs[4])
	}

	// The periodic Hann window sums to exactly N/2, which is what the
	// transform's coherent-gain normalization relies on.
	sum := 0.0
	for _, c := range coeffs {
		sum += c
	}
	if math.Abs(sum-4.0) > 1e-12 {
		t.Errorf("coefficient sum = %g, want 4.0", sum)
	}
}

func TestHannSymmetricEndpoints(t *testing.T) {
	h := NewHann(9, true)
	coeffs := h.GetCoefficients()

	if coeffs[0] != 0 || math.Abs(coeffs[8]) > 1e-12 {
		t.Errorf("symmetric endpoints = %g, %g, want 0, 0", coeffs[0], coeffs[8])
	}
	if math.Abs(coeffs[4]-1.0) > 1e-12 {
		t.Errorf("symmetric midpoint = %g, want 1.0", coeffs[4])
	}
}

func TestApplyToRejectsWrongLengths(t *testing.T) {
	h := NewHann(16, false)

	if err := h.ApplyTo(make([]float64, 16), make([]float64, 8)); err == nil {
		t.Error("expected error for short signal")
	}
	if err := h.ApplyTo(make([]float64, 8), make([]float64, 16)); err == nil {
		t.Error("expected error for short destination")
	}
	if h.Apply(make([]float64, 8)) != nil {
		t.Error("Apply should return nil for mismatched length")
	}
}

func TestApplyInPlaceMatchesApply(t *testing.T) {
	h := NewHann(32, false)

	signal := make([]float64, 32)
	for i := range signal {
		signal[i] = float64(i%5) - 2
	}

	want := h.Apply(signal)
	if err := h.ApplyInPlace(signal); err != nil {
		t.Fatalf("ApplyInPlace: %v", err)
	}

	for i := range signal {
		if signal[i] != want[i] {
			t.Fatalf("index %d: in-place %g != copy %g", i, signal[i], want[i])
		}
	}
}

func TestRectangularIsIdentity(t *testing.T) {
	r := NewRectangular(16)

	signal := make([]float64, 16)
	for i := range signal {
		signal[i] = float64(i)
	}

	dst := make([]float64, 16)
	if err := r.ApplyTo(dst, signal); err != nil {
		t.Fatalf("ApplyTo: %v", err)
	}
	for i := range dst {
		if dst[i] != signal[i] {
			t.Fatalf("index %d: %g != %g", i, dst[i], signal[i])
		}
	}

	if r.GetType() != "rectangular" {
		t.Errorf("type = %q", r.GetType())
	}
}
