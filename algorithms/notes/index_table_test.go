package notes

import (
	"math"
	"testing"
)

const (
	testSampleRate = 44100
	testFFTSize    = 2048
	testOctaves    = 8
	testNotes      = 12
	testPoints     = 12
	baseC1         = 32.70319566257483
)

func newTestTable(t *testing.T, sampleRate, fftSize int) *IndexTable {
	t.Helper()
	table, err := NewIndexTable(sampleRate, fftSize, testOctaves, testNotes, testPoints, baseC1)
	if err != nil {
		t.Fatalf("NewIndexTable: %v", err)
	}
	return table
}

func TestOctaveRangesOrdered(t *testing.T) {
	table := newTestTable(t, testSampleRate, testFFTSize)

	for o := 0; o < table.Octaves(); o++ {
		if table.Empty(o) {
			continue
		}
		if table.BottomBin(o) > table.TopBin(o) {
			t.Errorf("octave %d: bottom bin %d > top bin %d", o, table.BottomBin(o), table.TopBin(o))
		}
	}

	// Consecutive non-empty octaves must not interleave.
	for o := 0; o < table.Octaves()-1; o++ {
		if table.Empty(o) || table.Empty(o+1) {
			continue
		}
		if table.TopBin(o) >= table.BottomBin(o+1) {
			t.Errorf("octave %d top bin %d overlaps octave %d bottom bin %d",
				o, table.TopBin(o), o+1, table.BottomBin(o+1))
		}
	}
}

func TestPositionsMonotonic(t *testing.T) {
	table := newTestTable(t, testSampleRate, testFFTSize)

	for bin := 2; bin < table.Bins(); bin++ {
		if table.Position(bin) <= table.Position(bin-1) {
			t.Fatalf("position not increasing at bin %d: %g <= %g",
				bin, table.Position(bin), table.Position(bin-1))
		}
	}
}

func TestFractionsWithinOctave(t *testing.T) {
	table := newTestTable(t, testSampleRate, testFFTSize)

	for o := 0; o < table.Octaves(); o++ {
		if table.Empty(o) {
			continue
		}
		prev := -1.0
		for bin := table.BottomBin(o); bin <= table.TopBin(o); bin++ {
			f := table.Fraction(bin)
			if f < 0 || f >= 1 {
				t.Fatalf("octave %d bin %d: fraction %g outside [0,1)", o, bin, f)
			}
			if f <= prev {
				t.Fatalf("octave %d bin %d: fraction %g not increasing (prev %g)", o, bin, f, prev)
			}
			prev = f
			if table.OctaveOf(bin) != o {
				t.Fatalf("bin %d assigned octave %d, range says %d", bin, table.OctaveOf(bin), o)
			}
		}
	}
}

func TestBinForInvertsPosition(t *testing.T) {
	table := newTestTable(t, testSampleRate, testFFTSize)

	for _, bin := range []int{5, 50, 500, 1000} {
		got := table.BinFor(table.Position(bin))
		if math.Abs(got-float64(bin)) > 1e-9 {
			t.Errorf("BinFor(Position(%d)) = %g, want %d", bin, got, bin)
		}
	}
}

func TestOctaveAboveNyquistIsEmpty(t *testing.T) {
	// 8 kHz rate: Nyquist 4 kHz, octave 7 spans ~4.2-8.4 kHz.
	table, err := NewIndexTable(8000, 1024, testOctaves, testNotes, testPoints, baseC1)
	if err != nil {
		t.Fatalf("NewIndexTable: %v", err)
	}

	if !table.Empty(7) {
		t.Errorf("octave 7 should be empty at 8 kHz sample rate")
	}
	if table.Empty(5) {
		t.Errorf("octave 5 should have bins at 8 kHz sample rate")
	}
}

func TestSampleRateChangesRanges(t *testing.T) {
	a := newTestTable(t, 44100, testFFTSize)
	b := newTestTable(t, 48000, testFFTSize)

	// The same octave draws from lower bins at a higher sample rate.
	if a.TopBin(7) == b.TopBin(7) {
		t.Errorf("expected different top bins for octave 7 at 44.1/48 kHz, both %d", a.TopBin(7))
	}
}

func TestGridSize(t *testing.T) {
	table := newTestTable(t, testSampleRate, testFFTSize)

	if got, want := table.GridSize(), testOctaves*testNotes*testPoints; got != want {
		t.Errorf("GridSize = %d, want %d", got, want)
	}
	if got, want := table.PointsPerOctave(), testNotes*testPoints; got != want {
		t.Errorf("PointsPerOctave = %d, want %d", got, want)
	}
}

func TestNewIndexTableRejectsBadConfig(t *testing.T) {
	cases := []struct {
		name               string
		rate, fft          int
		oct, notes, points int
		base               float64
	}{
		{"zero rate", 0, 2048, 8, 12, 12, baseC1},
		{"non-power-of-two fft", 44100, 1000, 8, 12, 12, baseC1},
		{"zero octaves", 44100, 2048, 0, 12, 12, baseC1},
		{"zero notes", 44100, 2048, 8, 0, 12, baseC1},
		{"zero points", 44100, 2048, 8, 12, 0, baseC1},
		{"zero base", 44100, 2048, 8, 12, 12, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewIndexTable(tc.rate, tc.fft, tc.oct, tc.notes, tc.points, tc.base); err == nil {
				t.Fatal("expected construction error")
			}
		})
	}
}
