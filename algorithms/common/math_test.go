package common

import (
	"math"
	"testing"
)

func TestMean(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5}

	if got := Mean(data); math.Abs(got-3.0) > 1e-12 {
		t.Errorf("Mean = %g, want 3", got)
	}
	if Mean(nil) != 0 {
		t.Error("Mean of empty slice should be 0")
	}
}

func TestMax(t *testing.T) {
	if got := Max([]float64{0.2, 0.9, 0.1}); got != 0.9 {
		t.Errorf("Max = %g, want 0.9", got)
	}
	if Max(nil) != 0 {
		t.Error("Max of empty slice should be 0")
	}
}

func TestClamp(t *testing.T) {
	cases := []struct {
		v, lo, hi, want float64
	}{
		{0.5, 0, 1, 0.5},
		{-0.1, 0, 1, 0},
		{1.7, 0, 1, 1},
	}
	for _, tc := range cases {
		if got := Clamp(tc.v, tc.lo, tc.hi); got != tc.want {
			t.Errorf("Clamp(%g) = %g, want %g", tc.v, got, tc.want)
		}
	}
}

func TestClampUnit(t *testing.T) {
	data := []float64{-0.5, 0.3, 1.5, 1.0, 0.0}
	ClampUnit(data)

	want := []float64{0, 0.3, 1, 1, 0}
	for i := range data {
		if data[i] != want[i] {
			t.Errorf("index %d = %g, want %g", i, data[i], want[i])
		}
	}
}
