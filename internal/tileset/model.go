// Package tileset builds the Cesium 3D Tiles tileset.json JSON model and
// recursively stitches per-node, per-file and global tilesets together,
// per spec.md §4.6/§4.7.
package tileset

// Asset is the tileset.json "asset" field.
type Asset struct {
	Version string `json:"version"`
}

// Content is a tile's content descriptor: the URI of its payload (a
// .pnts file) or, for an entry in a children array, the child's tileset.json.
type Content struct {
	URI string `json:"uri"`
}

// BoundingVolume wraps the 12-float oriented box spec.md §3/§4.7 defines:
// a center followed by three half-axis vectors.
type BoundingVolume struct {
	Box [12]float64 `json:"box"`
}

// Node is a tileset.json tile: either a per-file tree node or an
// outer-tileset child pointing at a per-file tileset.json.
type Node struct {
	Content        Content        `json:"content"`
	BoundingVolume BoundingVolume `json:"boundingVolume"`
	GeometricError float64        `json:"geometricError"`
	Refine         string         `json:"refine"`
	Children       []Node         `json:"children,omitempty"`
}

// TileSet is the top-level tileset.json document.
type TileSet struct {
	Asset          Asset   `json:"asset"`
	GeometricError float64 `json:"geometricError"`
	Root           Node    `json:"root"`
}

const refineAdd = "ADD"

// Box builds the 12-float bounding volume array: center followed by the
// three half-axis vectors, per spec.md §4.7.
func Box(cx, cy, cz, halfWidth, halfLength, halfHeight float64) [12]float64 {
	return [12]float64{
		cx, cy, cz,
		halfWidth, 0, 0,
		0, halfLength, 0,
		0, 0, halfHeight,
	}
}
