package harmonic

import (
	"math"
	"testing"
)

const (
	testOctaves         = 8
	testHarmonicOctaves = 6
	testNotes           = 12
	testPoints          = 12
)

func newTestAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	a, err := NewAnalyzer(testHarmonicOctaves, testNotes, testPoints)
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}
	return a
}

func noteGrid() []float64 {
	return make([]float64, testOctaves*testNotes*testPoints)
}

// fullOffsetLimit is the last fundamental position whose six harmonic
// offsets all land inside the note spectrum.
func fullOffsetLimit(gridSize int) int {
	return gridSize - 1 - Offsets[len(Offsets)-1]*testPoints
}

func TestProductOfAllOnes(t *testing.T) {
	a := newTestAnalyzer(t)

	ns := noteGrid()
	for i := range ns {
		ns[i] = 1.0
	}

	dst := make([]float64, a.Length())
	if err := a.ProductInto(dst, ns); err != nil {
		t.Fatalf("ProductInto: %v", err)
	}

	limit := fullOffsetLimit(len(ns))
	for p := range dst {
		want := 1.0
		if p > limit {
			// At least one offset runs past the spectrum; the clamped
			// term is zero and zeroes the product.
			want = 0.0
		}
		if dst[p] != want {
			t.Fatalf("product[%d] = %g, want %g", p, dst[p], want)
		}
	}
}

func TestSumOfAllOnes(t *testing.T) {
	a := newTestAnalyzer(t)

	ns := noteGrid()
	for i := range ns {
		ns[i] = 1.0
	}

	dst := make([]float64, a.Length())
	if err := a.SumInto(dst, ns); err != nil {
		t.Fatalf("SumInto: %v", err)
	}

	for p := range dst {
		available := 0
		for _, off := range Offsets {
			if p+off*testPoints < len(ns) {
				available++
			}
		}
		want := float64(available) / float64(len(Offsets))
		if math.Abs(dst[p]-want) > 1e-12 {
			t.Fatalf("sum[%d] = %g, want %g", p, dst[p], want)
		}
	}
}

func TestProductMatchesOffsetSamples(t *testing.T) {
	a := newTestAnalyzer(t)

	ns := noteGrid()
	for i := range ns {
		ns[i] = 0.5 + 0.4*math.Sin(float64(i)/7.0)
	}

	dst := make([]float64, a.Length())
	if err := a.ProductInto(dst, ns); err != nil {
		t.Fatalf("ProductInto: %v", err)
	}

	for _, p := range []int{0, 1, 100, 500, fullOffsetLimit(len(ns))} {
		want := 1.0
		for _, off := range Offsets {
			want *= ns[p+off*testPoints]
		}
		if math.Abs(dst[p]-want) > 1e-12 {
			t.Errorf("product[%d] = %g, want %g", p, dst[p], want)
		}
	}
}

func TestSumIsMeanOfOffsetSamples(t *testing.T) {
	a := newTestAnalyzer(t)

	ns := noteGrid()
	for i := range ns {
		ns[i] = float64(i%10) / 10.0
	}

	dst := make([]float64, a.Length())
	if err := a.SumInto(dst, ns); err != nil {
		t.Fatalf("SumInto: %v", err)
	}

	p := 42
	want := 0.0
	for _, off := range Offsets {
		want += ns[p+off*testPoints]
	}
	want /= float64(len(Offsets))
	if math.Abs(dst[p]-want) > 1e-12 {
		t.Errorf("sum[%d] = %g, want %g", p, dst[p], want)
	}
}

func TestSilenceYieldsZeroSpectra(t *testing.T) {
	a := newTestAnalyzer(t)

	ns := noteGrid()
	sum := make([]float64, a.Length())
	product := make([]float64, a.Length())
	if err := a.SumInto(sum, ns); err != nil {
		t.Fatalf("SumInto: %v", err)
	}
	if err := a.ProductInto(product, ns); err != nil {
		t.Fatalf("ProductInto: %v", err)
	}

	for p := range sum {
		if sum[p] != 0 || product[p] != 0 {
			t.Fatalf("position %d: sum %g product %g, want 0", p, sum[p], product[p])
		}
	}
}

func TestAnalyzerLengthChecks(t *testing.T) {
	a := newTestAnalyzer(t)

	if err := a.SumInto(make([]float64, 3), noteGrid()); err == nil {
		t.Fatal("expected error for wrong destination length")
	}
	if err := a.ProductInto(make([]float64, a.Length()), make([]float64, 10)); err == nil {
		t.Fatal("expected error for short note spectrum")
	}
	if _, err := NewAnalyzer(0, testNotes, testPoints); err == nil {
		t.Fatal("expected error for zero harmonic octaves")
	}
}
