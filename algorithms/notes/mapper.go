package notes

import (
	"fmt"

	"github.com/sonicvue/muse/algorithms/common"
)

// Mapper resamples a linear magnitude spectrum onto the uniform note grid
// described by an IndexTable. The policy differs by octave because FFT bin
// density is not uniform on a logarithmic axis:
//
//   - dense octaves (at least one bin per grid point, the high octaves)
//     reconstruct each grid point by linear interpolation at its fractional
//     bin index;
//   - sparse octaves (fewer bins than grid points, the low octaves) copy
//     the nearest bin's value onto each grid point, which yields the
//     expected blocky low-end rather than inventing detail between bins.
//
// The grid-point to fractional-bin mapping is precomputed at construction,
// so MapInto does no logarithms, no searches and no allocation per tick.
type Mapper struct {
	table  *IndexTable
	interp *common.Interpolator

	gridBin []float64 // per grid point, fractional linear-bin index
	dense   []bool    // per octave
}

// NewMapper creates a mapper for the given table.
func NewMapper(table *IndexTable) *Mapper {
	m := &Mapper{
		table:   table,
		interp:  common.NewInterpolator(common.Linear),
		gridBin: make([]float64, table.GridSize()),
		dense:   make([]bool, table.Octaves()),
	}

	ppo := table.PointsPerOctave()
	for o := 0; o < table.Octaves(); o++ {
		m.dense[o] = table.BinCount(o) >= ppo
		for p := 0; p < ppo; p++ {
			pos := float64(o) + float64(p)/float64(ppo)
			m.gridBin[o*ppo+p] = table.BinFor(pos)
		}
	}

	return m
}

// MapInto fills dst (length GridSize) with the note spectrum derived from
// the linear spectrum. Every output value is clamped to [0,1]. Octaves
// without contributing bins come out as zeros.
func (m *Mapper) MapInto(dst, spectrum []float64) error {
	if len(dst) != m.table.GridSize() {
		return fmt.Errorf("destination length (%d) doesn't match grid size (%d)", len(dst), m.table.GridSize())
	}
	if len(spectrum) != m.table.Bins() {
		return fmt.Errorf("spectrum length (%d) doesn't match table bin count (%d)", len(spectrum), m.table.Bins())
	}

	ppo := m.table.PointsPerOctave()
	for o := 0; o < m.table.Octaves(); o++ {
		base := o * ppo

		if m.table.Empty(o) {
			for p := 0; p < ppo; p++ {
				dst[base+p] = 0
			}
			continue
		}

		if m.dense[o] {
			for p := 0; p < ppo; p++ {
				dst[base+p] = m.interp.Interpolate(spectrum, m.gridBin[base+p])
			}
		} else {
			bottom, top := m.table.BottomBin(o), m.table.TopBin(o)
			for p := 0; p < ppo; p++ {
				bin := int(m.gridBin[base+p] + 0.5)
				if bin < bottom {
					bin = bottom
				} else if bin > top {
					bin = top
				}
				dst[base+p] = spectrum[bin]
			}
		}
	}

	common.ClampUnit(dst)
	return nil
}

// Table returns the index table the mapper was built from.
func (m *Mapper) Table() *IndexTable {
	return m.table
}
