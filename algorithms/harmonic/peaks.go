package harmonic

import (
	"fmt"
	"sort"
)

// Peak is one dominant spectral maximum. A zero-amplitude peak is a
// sentinel meaning "no peak in this slot", never a silence reading at
// bin 0 — callers must check Amplitude before trusting BinIndex.
type Peak struct {
	BinIndex  int     // linear FFT bin of the maximum
	Frequency float64 // bin center frequency in Hz
	Amplitude float64 // magnitude at the bin
}

// Extractor finds the K loudest local maxima of a linear magnitude
// spectrum. The candidate scratch buffer is sized at construction so the
// per-tick scan does not allocate.
type Extractor struct {
	sampleRate    int
	fftSize       int
	maxPeaks      int
	minPeakHeight float64

	candidates []Peak // scratch, reused every tick
}

// NewExtractor creates a peak extractor. maxPeaks is the fixed number of
// slots every extraction fills (K); maxima below minPeakHeight are
// ignored, which keeps transform noise out of the peak list.
func NewExtractor(sampleRate, fftSize, maxPeaks int, minPeakHeight float64) (*Extractor, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive, got %d", sampleRate)
	}
	if fftSize <= 0 || fftSize&(fftSize-1) != 0 {
		return nil, fmt.Errorf("fft size must be a power of two, got %d", fftSize)
	}
	if maxPeaks <= 0 {
		return nil, fmt.Errorf("max peaks must be positive, got %d", maxPeaks)
	}
	if minPeakHeight < 0 {
		return nil, fmt.Errorf("min peak height must be >= 0, got %f", minPeakHeight)
	}

	return &Extractor{
		sampleRate:    sampleRate,
		fftSize:       fftSize,
		maxPeaks:      maxPeaks,
		minPeakHeight: minPeakHeight,
		// A local maximum needs a lower neighbor on each side, so at most
		// every other bin qualifies.
		candidates: make([]Peak, 0, fftSize/4+2),
	}, nil
}

// MaxPeaks returns K, the fixed number of peak slots.
func (e *Extractor) MaxPeaks() int {
	return e.maxPeaks
}

// ExtractInto scans spectrum for local maxima (strictly greater than both
// neighbors; boundary bins compared to their single neighbor), writes the
// K loudest into dst sorted by descending amplitude (ties broken by lower
// bin index) and zero-fills any remaining slots with sentinels.
func (e *Extractor) ExtractInto(dst []Peak, spectrum []float64) error {
	if len(dst) != e.maxPeaks {
		return fmt.Errorf("destination length (%d) doesn't match max peaks (%d)", len(dst), e.maxPeaks)
	}
	if len(spectrum) != e.fftSize/2 {
		return fmt.Errorf("spectrum length (%d) doesn't match bin count (%d)", len(spectrum), e.fftSize/2)
	}

	freqResolution := float64(e.sampleRate) / float64(e.fftSize)
	cand := e.candidates[:0]

	for i := range spectrum {
		if spectrum[i] <= 0 || spectrum[i] < e.minPeakHeight {
			continue
		}
		if i > 0 && spectrum[i] <= spectrum[i-1] {
			continue
		}
		if i < len(spectrum)-1 && spectrum[i] <= spectrum[i+1] {
			continue
		}
		cand = append(cand, Peak{
			BinIndex:  i,
			Frequency: float64(i) * freqResolution,
			Amplitude: spectrum[i],
		})
	}

	sort.Slice(cand, func(i, j int) bool {
		if cand[i].Amplitude != cand[j].Amplitude {
			return cand[i].Amplitude > cand[j].Amplitude
		}
		return cand[i].BinIndex < cand[j].BinIndex
	})

	n := copy(dst, cand)
	for i := n; i < len(dst); i++ {
		dst[i] = Peak{}
	}

	e.candidates = cand[:0]
	return nil
}
