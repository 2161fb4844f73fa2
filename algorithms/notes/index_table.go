package notes

import (
	"fmt"
	"math"
)

// IndexTable maps linear FFT bins onto a fixed logarithmic note grid
// (octaves x notes x sub-note points above a base frequency). It is built
// once for a (sampleRate, fftSize, grid) combination and is immutable
// afterwards; a sample rate change means building a new table.
//
// Bin positions follow the musical spacing f_k = base * 2^pos, so pos is
// log2(binFreq/base): the integer part selects the octave and the
// fractional part is the bin's position on that octave's [0,1) note axis.
type IndexTable struct {
	sampleRate     int
	fftSize        int
	octaves        int
	notesPerOctave int
	pointsPerNote  int
	baseFrequency  float64

	bottomBin []int     // per octave, first contributing bin (inclusive)
	topBin    []int     // per octave, last contributing bin (inclusive)
	empty     []bool    // octaves entirely above Nyquist or without bins
	position  []float64 // per bin, log2(binFreq/base); monotonically increasing
	octaveOf  []int     // per bin, owning octave or -1
}

// NewIndexTable builds the bin-to-note-grid table. Construction walks the
// bins once (O(fftSize/2)).
func NewIndexTable(sampleRate, fftSize, octaves, notesPerOctave, pointsPerNote int, baseFrequency float64) (*IndexTable, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive, got %d", sampleRate)
	}
	if fftSize <= 0 || fftSize&(fftSize-1) != 0 {
		return nil, fmt.Errorf("fft size must be a power of two, got %d", fftSize)
	}
	if octaves <= 0 || notesPerOctave <= 0 || pointsPerNote <= 0 {
		return nil, fmt.Errorf("octaves (%d), notes per octave (%d) and points per note (%d) must be positive",
			octaves, notesPerOctave, pointsPerNote)
	}
	if baseFrequency <= 0 {
		return nil, fmt.Errorf("base frequency must be positive, got %f", baseFrequency)
	}

	bins := fftSize / 2
	t := &IndexTable{
		sampleRate:     sampleRate,
		fftSize:        fftSize,
		octaves:        octaves,
		notesPerOctave: notesPerOctave,
		pointsPerNote:  pointsPerNote,
		baseFrequency:  baseFrequency,
		bottomBin:      make([]int, octaves),
		topBin:         make([]int, octaves),
		empty:          make([]bool, octaves),
		position:       make([]float64, bins),
		octaveOf:       make([]int, bins),
	}

	for o := range t.empty {
		t.empty[o] = true
	}

	binWidth := float64(sampleRate) / float64(fftSize)

	// Bin 0 (DC) has no defined log position; it never contributes.
	t.position[0] = math.Inf(-1)
	t.octaveOf[0] = -1

	for bin := 1; bin < bins; bin++ {
		pos := math.Log2(float64(bin) * binWidth / baseFrequency)
		t.position[bin] = pos

		o := int(math.Floor(pos))
		if pos < 0 || o >= octaves {
			t.octaveOf[bin] = -1
			continue
		}
		t.octaveOf[bin] = o

		if t.empty[o] {
			t.bottomBin[o] = bin
			t.topBin[o] = bin
			t.empty[o] = false
		} else {
			t.topBin[o] = bin
		}
	}

	return t, nil
}

// BottomBin returns the first linear bin contributing to octave o.
func (t *IndexTable) BottomBin(o int) int {
	return t.bottomBin[o]
}

// TopBin returns the last linear bin contributing to octave o.
func (t *IndexTable) TopBin(o int) int {
	return t.topBin[o]
}

// Empty reports whether octave o has no contributing bins (its band is
// below the first bin or above Nyquist).
func (t *IndexTable) Empty(o int) bool {
	return t.empty[o]
}

// BinCount returns the number of bins contributing to octave o.
func (t *IndexTable) BinCount(o int) int {
	if t.empty[o] {
		return 0
	}
	return t.topBin[o] - t.bottomBin[o] + 1
}

// Position returns the bin's position on the note axis, log2(binFreq/base).
// The integer part is the octave, the fractional part the [0,1) offset
// within it.
func (t *IndexTable) Position(bin int) float64 {
	return t.position[bin]
}

// Fraction returns the bin's fractional position within its owning octave.
func (t *IndexTable) Fraction(bin int) float64 {
	pos := t.position[bin]
	return pos - math.Floor(pos)
}

// OctaveOf returns the octave owning a bin, or -1 when the bin falls
// outside the note grid.
func (t *IndexTable) OctaveOf(bin int) int {
	return t.octaveOf[bin]
}

// BinFor returns the fractional linear-bin index whose center frequency
// sits at note-axis position pos (the inverse of Position).
func (t *IndexTable) BinFor(pos float64) float64 {
	binWidth := float64(t.sampleRate) / float64(t.fftSize)
	return t.baseFrequency * math.Pow(2, pos) / binWidth
}

// Octaves returns the configured octave count.
func (t *IndexTable) Octaves() int {
	return t.octaves
}

// PointsPerOctave returns notesPerOctave * pointsPerNote.
func (t *IndexTable) PointsPerOctave() int {
	return t.notesPerOctave * t.pointsPerNote
}

// GridSize returns the full note-grid length, octaves * notes * points.
func (t *IndexTable) GridSize() int {
	return t.octaves * t.notesPerOctave * t.pointsPerNote
}

// Bins returns the number of linear bins covered by the table.
func (t *IndexTable) Bins() int {
	return len(t.position)
}

// SampleRate returns the sample rate the table was built for.
func (t *IndexTable) SampleRate() int {
	return t.sampleRate
}

// BaseFrequency returns the frequency of the grid origin (octave 0, note 0).
func (t *IndexTable) BaseFrequency() float64 {
	return t.baseFrequency
}
