package harmonic

import (
	"fmt"
)

// Offsets are the semitone distances above a fundamental at which the
// first six harmonic partials of an equal-tempered note land: unison,
// octave, octave+fifth, two octaves, two octaves+third, two octaves+fifth.
var Offsets = [6]int{0, 12, 19, 24, 28, 31}

// Analyzer derives harmonic-combination spectra from a note spectrum.
// For each fundamental position the six samples one harmonic offset apart
// are combined: averaged for the sum spectrum, multiplied for the product
// spectrum. The product rewards true harmonic alignment — it stays near
// zero unless all six partials carry energy, which suppresses spurious
// single-partial content.
//
// Offsets reaching past the end of the note spectrum are clamped to the
// last valid index and that term contributes zero, in both the sum and
// the product ("no data" rather than an unrelated sample). The policy is
// uniform across both spectra.
type Analyzer struct {
	pointsPerNote int
	length        int // fundamental region length
}

// NewAnalyzer creates an analyzer whose fundamental region spans
// harmonicOctaves octaves of the note grid.
func NewAnalyzer(harmonicOctaves, notesPerOctave, pointsPerNote int) (*Analyzer, error) {
	if harmonicOctaves <= 0 || notesPerOctave <= 0 || pointsPerNote <= 0 {
		return nil, fmt.Errorf("harmonic octaves (%d), notes per octave (%d) and points per note (%d) must be positive",
			harmonicOctaves, notesPerOctave, pointsPerNote)
	}

	return &Analyzer{
		pointsPerNote: pointsPerNote,
		length:        harmonicOctaves * notesPerOctave * pointsPerNote,
	}, nil
}

// Length returns the fundamental region length, the size of both output
// spectra.
func (a *Analyzer) Length() int {
	return a.length
}

// SumInto fills dst with the harmonic-sum spectrum: the mean of the six
// harmonic samples above each fundamental position.
func (a *Analyzer) SumInto(dst, noteSpectrum []float64) error {
	if err := a.check(dst, noteSpectrum); err != nil {
		return err
	}

	for p := range dst {
		sum := 0.0
		for _, off := range Offsets {
			if idx := p + off*a.pointsPerNote; idx < len(noteSpectrum) {
				sum += noteSpectrum[idx]
			}
			// Clamped index: the term is zero, nothing to add.
		}
		dst[p] = sum / float64(len(Offsets))
	}

	return nil
}

// ProductInto fills dst with the harmonic-product spectrum: the raw
// product of the six harmonic samples above each fundamental position.
// No normalization is applied; callers scale for display.
func (a *Analyzer) ProductInto(dst, noteSpectrum []float64) error {
	if err := a.check(dst, noteSpectrum); err != nil {
		return err
	}

	for p := range dst {
		product := 1.0
		for _, off := range Offsets {
			idx := p + off*a.pointsPerNote
			if idx >= len(noteSpectrum) {
				product = 0
				break
			}
			product *= noteSpectrum[idx]
		}
		dst[p] = product
	}

	return nil
}

func (a *Analyzer) check(dst, noteSpectrum []float64) error {
	if len(dst) != a.length {
		return fmt.Errorf("destination length (%d) doesn't match fundamental region (%d)", len(dst), a.length)
	}
	if len(noteSpectrum) < a.length {
		return fmt.Errorf("note spectrum length (%d) shorter than fundamental region (%d)", len(noteSpectrum), a.length)
	}
	return nil
}
