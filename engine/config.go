package engine

import (
	"github.com/sonicvue/muse/algorithms/windowing"
)

// Window type names accepted by Config.WindowType.
const (
	WindowHann        = "hann"
	WindowRectangular = "rectangular"
)

// BaseFrequencyC1 is the default note-grid origin, C1 in Hz (A4 = 440).
const BaseFrequencyC1 = 32.70319566257483

// Config holds every tunable of the analysis engine. It is constructed
// once and passed explicitly to New — there is no process-wide settings
// object. Gain and Slope can be adjusted later through the engine's
// setters; everything else is fixed for the engine's lifetime.
type Config struct {
	// FFTSize is the PCM frame length and transform size. Power of two.
	FFTSize int `json:"fft_size"`

	// Octaves spans the note spectrum; HarmonicOctaves spans the
	// fundamental region of the harmonic spectra and the history views.
	Octaves         int `json:"octaves"`
	HarmonicOctaves int `json:"harmonic_octaves"`

	NotesPerOctave int `json:"notes_per_octave"`
	PointsPerNote  int `json:"points_per_note"`

	// PeakCount is K, the fixed number of peak slots per frame. Maxima
	// below MinPeakHeight never become peaks.
	PeakCount     int     `json:"peak_count"`
	MinPeakHeight float64 `json:"min_peak_height"`

	// History depths, in frames.
	NoteHistoryFrames int `json:"note_history_frames"`
	PeakHistoryFrames int `json:"peak_history_frames"`

	// Gain is a post-transform scalar (>= 0). Slope tilts the spectrum by
	// (binFreq/1kHz)^Slope; 0 is flat.
	Gain  float64 `json:"gain"`
	Slope float64 `json:"slope"`

	// BaseFrequency anchors octave 0, note 0 of the note grid.
	BaseFrequency float64 `json:"base_frequency"`

	// WindowType selects the analysis window: "hann" (default) or
	// "rectangular".
	WindowType string `json:"window_type"`
}

// DefaultConfig returns the standard configuration: 2048-point FFT,
// 8-octave note grid at semitone/12-point resolution, 6-octave harmonic
// region, 16 peaks, 48/100-frame histories.
func DefaultConfig() Config {
	return Config{
		FFTSize:           2048,
		Octaves:           8,
		HarmonicOctaves:   6,
		NotesPerOctave:    12,
		PointsPerNote:     12,
		PeakCount:         16,
		MinPeakHeight:     1e-6,
		NoteHistoryFrames: 48,
		PeakHistoryFrames: 100,
		Gain:              1.0,
		Slope:             0.0,
		BaseFrequency:     BaseFrequencyC1,
		WindowType:        WindowHann,
	}
}

// Validate checks the configuration. Any violation is a
// ConfigurationError; the engine refuses to construct on the first one
// found.
func (c Config) Validate() error {
	if c.FFTSize < 256 || c.FFTSize&(c.FFTSize-1) != 0 {
		return configErrorf("fft_size", "must be a power of two >= 256, got %d", c.FFTSize)
	}
	if c.Octaves <= 0 {
		return configErrorf("octaves", "must be positive, got %d", c.Octaves)
	}
	if c.HarmonicOctaves <= 0 || c.HarmonicOctaves > c.Octaves {
		return configErrorf("harmonic_octaves", "must be in [1, octaves=%d], got %d", c.Octaves, c.HarmonicOctaves)
	}
	if c.NotesPerOctave <= 0 {
		return configErrorf("notes_per_octave", "must be positive, got %d", c.NotesPerOctave)
	}
	if c.PointsPerNote <= 0 {
		return configErrorf("points_per_note", "must be positive, got %d", c.PointsPerNote)
	}
	if c.PeakCount <= 0 {
		return configErrorf("peak_count", "must be positive, got %d", c.PeakCount)
	}
	if c.MinPeakHeight < 0 {
		return configErrorf("min_peak_height", "must be >= 0, got %f", c.MinPeakHeight)
	}
	if c.NoteHistoryFrames <= 0 {
		return configErrorf("note_history_frames", "must be positive, got %d", c.NoteHistoryFrames)
	}
	if c.PeakHistoryFrames <= 0 {
		return configErrorf("peak_history_frames", "must be positive, got %d", c.PeakHistoryFrames)
	}
	if c.Gain < 0 {
		return configErrorf("gain", "must be >= 0, got %f", c.Gain)
	}
	if c.BaseFrequency <= 0 {
		return configErrorf("base_frequency", "must be positive, got %f", c.BaseFrequency)
	}
	switch c.WindowType {
	case "", WindowHann, WindowRectangular:
	default:
		return configErrorf("window_type", "unknown window %q", c.WindowType)
	}
	return nil
}

// GridSize returns the note spectrum length.
func (c Config) GridSize() int {
	return c.Octaves * c.NotesPerOctave * c.PointsPerNote
}

// HarmonicGridSize returns the fundamental region length of the harmonic
// spectra.
func (c Config) HarmonicGridSize() int {
	return c.HarmonicOctaves * c.NotesPerOctave * c.PointsPerNote
}

// Bins returns the linear spectrum length, FFTSize/2.
func (c Config) Bins() int {
	return c.FFTSize / 2
}

func (c Config) newWindow() windowing.Window {
	if c.WindowType == WindowRectangular {
		return windowing.NewRectangular(c.FFTSize)
	}
	return windowing.NewHann(c.FFTSize, false)
}
