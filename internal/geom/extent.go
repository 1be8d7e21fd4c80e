package geom

import "math"

// SpatialExtent is a rolling per-axis min/max, used to size the root AABB
// of a file's quadtree and to quantize Morton coordinates.
type SpatialExtent struct {
	XMin, XMax float64
	YMin, YMax float64
	ZMin, ZMax float64
}

// NewSpatialExtent returns an extent initialized so that the first Update
// call always widens every bound, per spec.md §3.
func NewSpatialExtent() SpatialExtent {
	return SpatialExtent{
		XMin: math.Inf(1), XMax: math.Inf(-1),
		YMin: math.Inf(1), YMax: math.Inf(-1),
		ZMin: math.Inf(1), ZMax: math.Inf(-1),
	}
}

// Update widens the extent, if necessary, to cover p.
func (e *SpatialExtent) Update(p Point64) {
	if p.X < e.XMin {
		e.XMin = p.X
	}
	if p.X > e.XMax {
		e.XMax = p.X
	}
	if p.Y < e.YMin {
		e.YMin = p.Y
	}
	if p.Y > e.YMax {
		e.YMax = p.Y
	}
	if p.Z < e.ZMin {
		e.ZMin = p.Z
	}
	if p.Z > e.ZMax {
		e.ZMax = p.Z
	}
}

// RootAABB returns the AABB sized to exactly this extent: center at the
// midpoint of min/max on each axis, half-extents at (max-min)/2. Degenerate
// (single-point or zero-extent) inputs yield zero half-extents, which is
// not an error per spec.md §7.
func (e SpatialExtent) RootAABB() AABB {
	return AABB{
		XCenter:    e.XMin + (e.XMax-e.XMin)/2,
		YCenter:    e.YMin + (e.YMax-e.YMin)/2,
		ZCenter:    e.ZMin + (e.ZMax-e.ZMin)/2,
		HalfWidth:  (e.XMax - e.XMin) / 2,
		HalfLength: (e.YMax - e.YMin) / 2,
		HalfHeight: (e.ZMax - e.ZMin) / 2,
	}
}
