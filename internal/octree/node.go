// Package octree implements the subsampling quadtree: a four-way spatial
// tree whose insertion policy distributes a Morton-sorted point stream
// into per-level subsamples plus a dense leaf set, per spec.md §4.3.
package octree

import (
	"github.com/vladimirpajic/cesium-3d-tiles-generator/internal/geom"
)

// Node is a node of the subsampling quadtree. Depth is 1 at the root.
// Children is nil until the node first splits; a node with children is still
// permitted to hold Points (internal nodes carry the level's subsample).
type Node struct {
	Bounds   geom.AABB
	Depth    uint8
	Capacity int
	Points   []geom.Point64
	Children *[4]*Node
}

// New creates a root node (depth 1) with the given bounds and capacity.
func New(bounds geom.AABB, capacity int) *Node {
	return &Node{Bounds: bounds, Depth: 1, Capacity: capacity}
}

// IsLeaf reports whether n has no children.
func (n *Node) IsLeaf() bool {
	return n.Children == nil
}

// Insert inserts point, which is at position index in a Morton-sorted
// stream of n total points, following spec.md §4.3's insertion contract.
// Points outside n's x/y extent are silently dropped (the containment
// check); callers insert against a root whose extent was sized from the
// true data, so this should never discard an in-range point.
func (n *Node) Insert(point geom.Point64, index, total int) {
	if !n.Bounds.Contains(point) {
		return
	}

	d := int64(n.Depth)
	s := int64(n.Capacity) * pow2(d-1)
	var step int64
	var ratio float64
	if s > 0 {
		step = int64(total) / s
		ratio = float64(total) / float64(s)
	}

	denseRegime := ratio > 4 && step > 0
	if denseRegime {
		rem := int64(index) + 1 - d
		if rem >= 0 && rem%step == 0 {
			n.Points = append(n.Points, point)
			return
		}
		n.descend(point, index, total)
		return
	}

	// Sparse regime.
	if len(n.Points) < n.Capacity {
		n.Points = append(n.Points, point)
		return
	}
	n.descend(point, index, total)
}

// descend splits n if needed and forwards point to every child; exactly
// one child accepts it, per the containment check in Insert.
func (n *Node) descend(point geom.Point64, index, total int) {
	if n.Children == nil {
		n.split()
	}
	for _, child := range n.Children {
		child.Insert(point, index, total)
	}
}

// split creates four children tiling n's x/y extent, in [tl,tr,bl,br]
// order, each at depth+1 and sharing n's capacity. z extents are preserved.
func (n *Node) split() {
	bounds := n.Bounds.Split()
	var children [4]*Node
	for i, b := range bounds {
		children[i] = &Node{Bounds: b, Depth: n.Depth + 1, Capacity: n.Capacity}
	}
	n.Children = &children
}

func pow2(exp int64) int64 {
	if exp < 0 {
		return 0
	}
	return int64(1) << uint(exp)
}
