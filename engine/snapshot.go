package engine

import (
	"time"

	"github.com/sonicvue/muse/algorithms/harmonic"
)

// Snapshot is one tick's complete analysis output. It is published
// atomically and must be treated as immutable by readers: a loaded
// snapshot stays untouched while the next tick is computed and is only
// reused for the tick after that. Readers that may hold a snapshot
// across more than one frame interval should copy the slices they need.
type Snapshot struct {
	// LinearSpectrum holds FFTSize/2 magnitudes on linear frequency bins.
	LinearSpectrum []float64

	// NoteSpectrum holds octaves*notesPerOctave*pointsPerNote amplitudes
	// in [0,1] on the logarithmic note grid.
	NoteSpectrum []float64

	// Peaks holds exactly K entries, descending by amplitude;
	// zero-amplitude entries are absent-slot sentinels.
	Peaks []harmonic.Peak

	// HarmonicSum and HarmonicProduct cover the fundamental region of the
	// note grid.
	HarmonicSum     []float64
	HarmonicProduct []float64

	// Timestamp is when the tick was published; Seq increments once per
	// analyzed frame (an underrun republish keeps the previous Seq).
	Timestamp time.Time
	Seq       uint64
}

func newSnapshot(cfg Config) *Snapshot {
	return &Snapshot{
		LinearSpectrum:  make([]float64, cfg.Bins()),
		NoteSpectrum:    make([]float64, cfg.GridSize()),
		Peaks:           make([]harmonic.Peak, cfg.PeakCount),
		HarmonicSum:     make([]float64, cfg.HarmonicGridSize()),
		HarmonicProduct: make([]float64, cfg.HarmonicGridSize()),
	}
}
