package geom

import "testing"

func TestSpatialExtentUpdateAndRootAABB(t *testing.T) {
	e := NewSpatialExtent()
	e.Update(Point64{X: 1, Y: 2, Z: 3})
	e.Update(Point64{X: -1, Y: 5, Z: 3})
	e.Update(Point64{X: 4, Y: 0, Z: -2})

	aabb := e.RootAABB()
	if aabb.XCenter != 1.5 || aabb.HalfWidth != 2.5 {
		t.Errorf("x: center=%v half=%v, want center=1.5 half=2.5", aabb.XCenter, aabb.HalfWidth)
	}
	if aabb.YCenter != 2.5 || aabb.HalfLength != 2.5 {
		t.Errorf("y: center=%v half=%v, want center=2.5 half=2.5", aabb.YCenter, aabb.HalfLength)
	}
	if aabb.ZCenter != 0.5 || aabb.HalfHeight != 2.5 {
		t.Errorf("z: center=%v half=%v, want center=0.5 half=2.5", aabb.ZCenter, aabb.HalfHeight)
	}
}

func TestSpatialExtentSinglePointDegenerate(t *testing.T) {
	e := NewSpatialExtent()
	e.Update(Point64{X: 3, Y: 3, Z: 3})

	aabb := e.RootAABB()
	if aabb.XCenter != 3 || aabb.HalfWidth != 0 {
		t.Errorf("single-point extent should collapse to zero half-width, got %+v", aabb)
	}
}
