// Package lasio fixes the interface of the LAS/LAZ reader collaborator
// spec.md §1/§6 places out of scope: decoding the actual binary format is
// left to an external library, this package only declares the contract
// the rest of the pipeline depends on, plus a hand-written mock for
// tests, following the teacher's internal/las/mocks.go.
package lasio

import (
	"fmt"

	"github.com/vladimirpajic/cesium-3d-tiles-generator/internal/geom"
)

// RawColor is a point's color as delivered by the reader, before the
// high-byte reduction the .pnts packager performs.
type RawColor struct {
	R, G, B uint16
}

// defaultMissingColor is the flat-yellow default spec.md §6/§9 specifies
// for points that carry no color: "the source sometimes applies
// classification-based default colors and sometimes a flat yellow
// default; choose one policy" — this repo always uses the flat default.
var defaultMissingColor = RawColor{R: 0xFFFF, G: 0xFFFF, B: 0x0000}

// RawPoint is a single point as yielded by the reader: native LAS
// x/y/z (degrees/degrees/meters, pre-projection), an optional color,
// the LAS classification byte, and the five flag bits.
type RawPoint struct {
	X, Y, Z        float64
	Color          *RawColor
	Classification uint8
	Flags          geom.FlagBits
}

// ResolvedColor returns p's color, or the flat-yellow default if p
// carries none.
func (p RawPoint) ResolvedColor() (r, g, b uint16) {
	if p.Color != nil {
		return p.Color.R, p.Color.G, p.Color.B
	}
	return defaultMissingColor.R, defaultMissingColor.G, defaultMissingColor.B
}

// Reader is the external LAS/LAZ decoder collaborator: given a file
// already opened by the caller, it reports its point count and yields
// points one at a time.
type Reader interface {
	NumberOfPoints() int
	GetNext() (RawPoint, error)
}

// OpenFunc opens the LAS/LAZ file at path, returning a Reader positioned
// at its first point. The concrete decoder is out of scope per spec.md
// §1/§6; this repo only fixes the contract pipeline.Run drives.
type OpenFunc func(path string) (Reader, error)

// MockReader is a hand-written Reader used by tests, grounded on the
// teacher's MockLasReader.
type MockReader struct {
	Cur int
	Pts []RawPoint
}

// NumberOfPoints returns the number of points stored in the mock.
func (m *MockReader) NumberOfPoints() int {
	return len(m.Pts)
}

// GetNext returns the next point, or an error once exhausted.
func (m *MockReader) GetNext() (RawPoint, error) {
	if m.Cur < len(m.Pts) {
		m.Cur++
		return m.Pts[m.Cur-1], nil
	}
	return RawPoint{}, fmt.Errorf("lasio: no more points")
}
