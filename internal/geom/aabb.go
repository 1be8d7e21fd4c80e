package geom

// AABB is an axis-aligned bounding box. Half-extents are independent along
// each axis; x/y split on subdivision, z is preserved unchanged by children.
type AABB struct {
	XCenter, YCenter, ZCenter          float64
	HalfWidth, HalfLength, HalfHeight float64
}

// Contains reports whether the point's (x,y) lies in the half-open box
// [xCenter-halfWidth, xCenter+halfWidth) x [yCenter-halfLength, yCenter+halfLength).
// Z is not part of the containment test: children share the parent's z extent.
//
// A zero half-extent axis (a degenerate, single-valued extent) is matched
// by exact equality instead of the half-open interval, which would
// otherwise always be empty: center >= center is true but center < center
// is false, so the literal half-open test can never select that axis.
func (b AABB) Contains(p Point64) bool {
	return axisContains(p.X, b.XCenter, b.HalfWidth) &&
		axisContains(p.Y, b.YCenter, b.HalfLength)
}

func axisContains(v, center, half float64) bool {
	if half == 0 {
		return v == center
	}
	return v >= center-half && v < center+half
}

// Quadrant identifies one of the four children produced by Split, in the
// order the children array is always built and walked.
type Quadrant int

const (
	TopLeft Quadrant = iota
	TopRight
	BottomLeft
	BottomRight
)

// Split tiles b's x/y extent into four children with half the width and
// half the length, preserving z_center and half_height unchanged. The
// returned array is always ordered [top-left, top-right, bottom-left,
// bottom-right], measured in the x/y plane.
func (b AABB) Split() [4]AABB {
	hw := b.HalfWidth / 2
	hl := b.HalfLength / 2
	return [4]AABB{
		TopLeft: {
			XCenter: b.XCenter - hw, YCenter: b.YCenter + hl, ZCenter: b.ZCenter,
			HalfWidth: hw, HalfLength: hl, HalfHeight: b.HalfHeight,
		},
		TopRight: {
			XCenter: b.XCenter + hw, YCenter: b.YCenter + hl, ZCenter: b.ZCenter,
			HalfWidth: hw, HalfLength: hl, HalfHeight: b.HalfHeight,
		},
		BottomLeft: {
			XCenter: b.XCenter - hw, YCenter: b.YCenter - hl, ZCenter: b.ZCenter,
			HalfWidth: hw, HalfLength: hl, HalfHeight: b.HalfHeight,
		},
		BottomRight: {
			XCenter: b.XCenter + hw, YCenter: b.YCenter - hl, ZCenter: b.ZCenter,
			HalfWidth: hw, HalfLength: hl, HalfHeight: b.HalfHeight,
		},
	}
}
