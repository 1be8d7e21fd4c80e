// Package morton quantizes a point's (x,y) position against a spatial
// extent and interleaves the quantized coordinates into a 64-bit Morton
// (Z-order) code, so that sorting points by the code clusters
// spatially-close points together.
package morton

import (
	"math"

	"github.com/vladimirpajic/cesium-3d-tiles-generator/internal/geom"
)

const u32Max = math.MaxUint32

// Quantize maps v into [0, U32_MAX] against [min, max]. A degenerate
// (max == min) axis quantizes to 0, per spec.md §4.2.
func Quantize(v, min, max float64) uint32 {
	if max == min {
		return 0
	}
	q := u32Max * (v - min) / (max - min)
	return uint32(math.Round(q))
}

// Encode computes the 64-bit Morton code for a point given the extent its
// (x,y) was quantized against.
func Encode(p geom.Point64, extent geom.SpatialExtent) uint64 {
	xq := Quantize(p.X, extent.XMin, extent.XMax)
	yq := Quantize(p.Y, extent.YMin, extent.YMax)
	return Interleave(xq, yq)
}

// Interleave produces the 64-bit Morton code for quantized (x,y): bit 2k of
// the result is bit k of x, bit 2k+1 is bit k of y.
func Interleave(x, y uint32) uint64 {
	return spread(x) | (spread(y) << 1)
}

// spread inserts a zero bit between each bit of v, so that ORing two spread
// values (one shifted left by one) interleaves them.
func spread(v uint32) uint64 {
	x := uint64(v)
	x = (x | (x << 16)) & 0x0000FFFF0000FFFF
	x = (x | (x << 8)) & 0x00FF00FF00FF00FF
	x = (x | (x << 4)) & 0x0F0F0F0F0F0F0F0F
	x = (x | (x << 2)) & 0x3333333333333333
	x = (x | (x << 1)) & 0x5555555555555555
	return x
}

// AssignAll computes and assigns the Morton field of every point in pts
// against extent, in place.
func AssignAll(pts []geom.Point64, extent geom.SpatialExtent) {
	for i := range pts {
		pts[i].Morton = Encode(pts[i], extent)
	}
}
