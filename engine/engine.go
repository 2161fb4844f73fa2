package engine

import (
	"sync/atomic"
	"time"

	"github.com/sonicvue/muse/algorithms/common"
	"github.com/sonicvue/muse/algorithms/harmonic"
	"github.com/sonicvue/muse/algorithms/notes"
	"github.com/sonicvue/muse/algorithms/spectral"
	"github.com/sonicvue/muse/logging"
)

// Engine is the real-time analysis pipeline: one producer (the audio
// callback driving OnFrame) and any number of unsynchronized readers
// consuming Snapshot and the history views.
//
// Concurrency contract: all mutation happens on the producer's
// goroutine. Readers only ever see fully-published snapshots through an
// atomic pointer; the producer never blocks on them and the steady-state
// tick performs no allocation (two snapshot buffers alternate, history
// slots are pre-allocated, algorithm scratch is reused). Rebuilding for
// a sample-rate change is the one reconfiguration that allocates.
type Engine struct {
	cfg Config
	log logging.Logger

	sampleRate int
	transform  *spectral.Transform
	table      *notes.IndexTable
	mapper     *notes.Mapper
	extractor  *harmonic.Extractor
	analyzer   *harmonic.Analyzer

	// Double-buffered snapshots: `working` is being computed while the
	// other one is published.
	snapshots [2]*Snapshot
	working   int

	published atomic.Pointer[Snapshot]
	dropped   atomic.Uint64
	seq       uint64

	noteHistory *History[[]float64]
	peakHistory *History[[]harmonic.Peak]

	// Pending gain/slope for setters called before the first frame.
	gain  float64
	slope float64
}

// New validates cfg and builds the engine. The transform and note table
// are sample-rate dependent and are built on the first OnFrame call (and
// rebuilt whenever the rate changes). A zeroed snapshot is published
// immediately so Snapshot never returns nil.
func New(cfg Config, logger logging.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}
	logger = logger.WithFields(logging.Fields{"component": "engine"})

	analyzer, err := harmonic.NewAnalyzer(cfg.HarmonicOctaves, cfg.NotesPerOctave, cfg.PointsPerNote)
	if err != nil {
		return nil, configErrorf("harmonic_octaves", "%v", err)
	}

	noteHistory, err := NewHistory(cfg.NoteHistoryFrames,
		func() []float64 { return make([]float64, cfg.GridSize()) },
		func(dst, src []float64) { copy(dst, src) },
	)
	if err != nil {
		return nil, configErrorf("note_history_frames", "%v", err)
	}

	peakHistory, err := NewHistory(cfg.PeakHistoryFrames,
		func() []harmonic.Peak { return make([]harmonic.Peak, cfg.PeakCount) },
		func(dst, src []harmonic.Peak) { copy(dst, src) },
	)
	if err != nil {
		return nil, configErrorf("peak_history_frames", "%v", err)
	}

	e := &Engine{
		cfg:         cfg,
		log:         logger,
		analyzer:    analyzer,
		snapshots:   [2]*Snapshot{newSnapshot(cfg), newSnapshot(cfg)},
		working:     1,
		noteHistory: noteHistory,
		peakHistory: peakHistory,
		gain:        cfg.Gain,
		slope:       cfg.Slope,
	}
	e.snapshots[0].Timestamp = time.Now()
	e.published.Store(e.snapshots[0])

	logger.Info("analysis engine configured", logging.Fields{
		"fft_size":  cfg.FFTSize,
		"grid_size": cfg.GridSize(),
		"peaks":     cfg.PeakCount,
	})

	return e, nil
}

// OnFrame runs one analysis tick: transform, note mapping, peak
// extraction, harmonic spectra, history pushes, then a single atomic
// publish. It either publishes a complete tick or returns an error and
// publishes nothing. A frame length that differs from the configured FFT
// size is a ConfigurationError — a programmer error, not a runtime
// condition.
func (e *Engine) OnFrame(samples []float64, sampleRate int) error {
	if len(samples) != e.cfg.FFTSize {
		return configErrorf("fft_size", "frame length %d doesn't match configured fft size %d", len(samples), e.cfg.FFTSize)
	}
	if sampleRate != e.sampleRate {
		if err := e.reconfigure(sampleRate); err != nil {
			return err
		}
	}

	w := e.snapshots[e.working]

	if err := e.transform.ComputeInto(w.LinearSpectrum, samples); err != nil {
		return configErrorf("fft_size", "%v", err)
	}
	if err := e.mapper.MapInto(w.NoteSpectrum, w.LinearSpectrum); err != nil {
		return configErrorf("note_grid", "%v", err)
	}
	if err := e.extractor.ExtractInto(w.Peaks, w.LinearSpectrum); err != nil {
		return configErrorf("peak_count", "%v", err)
	}
	if err := e.analyzer.SumInto(w.HarmonicSum, w.NoteSpectrum); err != nil {
		return configErrorf("harmonic_octaves", "%v", err)
	}
	if err := e.analyzer.ProductInto(w.HarmonicProduct, w.NoteSpectrum); err != nil {
		return configErrorf("harmonic_octaves", "%v", err)
	}

	e.noteHistory.Push(w.NoteSpectrum)
	e.peakHistory.Push(w.Peaks)

	e.seq++
	w.Seq = e.seq
	w.Timestamp = time.Now()

	e.published.Store(w)
	e.working ^= 1

	return nil
}

// reconfigure rebuilds the sample-rate dependent components. Runs on the
// producer goroutine, outside the steady-state path.
func (e *Engine) reconfigure(sampleRate int) error {
	transform, err := spectral.NewTransform(e.cfg.FFTSize, sampleRate, e.cfg.newWindow(), e.gain, e.slope)
	if err != nil {
		return configErrorf("fft_size", "%v", err)
	}

	table, err := notes.NewIndexTable(sampleRate, e.cfg.FFTSize,
		e.cfg.Octaves, e.cfg.NotesPerOctave, e.cfg.PointsPerNote, e.cfg.BaseFrequency)
	if err != nil {
		return configErrorf("note_grid", "%v", err)
	}

	extractor, err := harmonic.NewExtractor(sampleRate, e.cfg.FFTSize, e.cfg.PeakCount, e.cfg.MinPeakHeight)
	if err != nil {
		return configErrorf("peak_count", "%v", err)
	}

	e.transform = transform
	e.table = table
	e.mapper = notes.NewMapper(table)
	e.extractor = extractor
	e.sampleRate = sampleRate

	e.log.Info("note index table rebuilt", logging.Fields{
		"sample_rate": sampleRate,
		"fft_size":    e.cfg.FFTSize,
	})

	return nil
}

// OnUnderrun records a missed frame deadline: the published snapshot
// stays as-is (readers keep a valid, complete frame) and the
// dropped-frame counter increments. Never an error. This path is already
// off the nominal tick cadence, so it may log: the debug line carries the
// level of the frame readers are stuck with.
func (e *Engine) OnUnderrun() {
	dropped := e.dropped.Add(1)

	snap := e.published.Load()
	e.log.Debug("frame deadline missed", logging.Fields{
		"dropped":    dropped,
		"mean_level": common.Mean(snap.LinearSpectrum),
		"peak_level": common.Max(snap.LinearSpectrum),
	})
}

// Snapshot returns the most recently published analysis frame. Safe to
// call from any goroutine.
func (e *Engine) Snapshot() *Snapshot {
	return e.published.Load()
}

// DroppedFrames returns how many frame deadlines have been missed.
func (e *Engine) DroppedFrames() uint64 {
	return e.dropped.Load()
}

// NoteHistory returns a read-only view of the last NoteHistoryFrames
// note spectra (At(0) = newest).
func (e *Engine) NoteHistory() HistoryView[[]float64] {
	return e.noteHistory.View()
}

// PeakHistory returns a read-only view of the last PeakHistoryFrames
// peak lists (At(0) = newest).
func (e *Engine) PeakHistory() HistoryView[[]harmonic.Peak] {
	return e.peakHistory.View()
}

// Table returns the current note index table, or nil before the first
// frame.
func (e *Engine) Table() *notes.IndexTable {
	return e.table
}

// SampleRate returns the rate of the last frame, or 0 before the first.
func (e *Engine) SampleRate() int {
	return e.sampleRate
}

// SetGain updates the user gain scalar. Producer goroutine only, like
// OnFrame; negative values clamp to zero.
func (e *Engine) SetGain(gain float64) {
	if gain < 0 {
		gain = 0
	}
	e.gain = gain
	if e.transform != nil {
		e.transform.SetGain(gain)
	}
}

// SetSlope updates the frequency tilt exponent. Producer goroutine only;
// rebuilding the tilt table allocates, so not for use inside the tick.
func (e *Engine) SetSlope(slope float64) {
	e.slope = slope
	if e.transform != nil {
		e.transform.SetSlope(slope)
	}
}
