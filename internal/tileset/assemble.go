package tileset

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/vladimirpajic/cesium-3d-tiles-generator/internal/octree"
	"github.com/vladimirpajic/cesium-3d-tiles-generator/internal/pnts"
)

// FileEntry describes a completed per-file tileset, as needed by the outer
// (global) tileset's children array.
type FileEntry struct {
	Stem           string
	BoundingVolume BoundingVolume
	GeometricError float64
}

// WriteFileTileset recursively serializes root (and its whole subtree) to
// dir, per spec.md §4.6: dir/root.pnts + dir/tileset.json, and one
// subdirectory "0".."3" per child, each holding the same pair recursively.
// Empty nodes (no points) still get a tileset.json; .pnts emission is
// skipped for them, per spec.md §4.6's "Empty nodes" rule.
//
// It returns the root node's own bounding volume and geometric error, for
// the caller to reference from an enclosing tileset (the global tileset
// references every per-file root this way).
func WriteFileTileset(dir string, root *octree.Node) (BoundingVolume, float64, error) {
	return writeNode(dir, root)
}

func writeNode(dir string, node *octree.Node) (BoundingVolume, float64, error) {
	bv := nodeBoundingVolume(node)
	gErr := nodeGeometricError(node)

	if err := os.MkdirAll(dir, 0o777); err != nil {
		return bv, gErr, fmt.Errorf("tileset: create %s: %w", dir, err)
	}

	if len(node.Points) > 0 {
		data, err := pnts.Build(node.Points, node.Bounds.XCenter, node.Bounds.YCenter, node.Bounds.ZCenter)
		if err != nil {
			return bv, gErr, fmt.Errorf("tileset: build %s/root.pnts: %w", dir, err)
		}
		if err := os.WriteFile(filepath.Join(dir, "root.pnts"), data, 0o666); err != nil {
			return bv, gErr, fmt.Errorf("tileset: write %s/root.pnts: %w", dir, err)
		}
	}

	root := Node{
		Content:        Content{URI: "root.pnts"},
		BoundingVolume: bv,
		GeometricError: gErr,
		Refine:         refineAdd,
	}

	if !node.IsLeaf() {
		for i, child := range node.Children {
			childDir := filepath.Join(dir, strconv.Itoa(i))
			childBV, childGErr, err := writeNode(childDir, child)
			if err != nil {
				return bv, gErr, err
			}
			root.Children = append(root.Children, Node{
				Content:        Content{URI: strconv.Itoa(i) + "/tileset.json"},
				BoundingVolume: childBV,
				GeometricError: childGErr,
				Refine:         refineAdd,
			})
		}
	}

	ts := TileSet{
		Asset:          Asset{Version: "1.0"},
		GeometricError: gErr,
		Root:           root,
	}
	if err := writeJSON(filepath.Join(dir, "tileset.json"), ts); err != nil {
		return bv, gErr, err
	}
	return bv, gErr, nil
}

// globalRootCoefficient is the open question in spec.md §9 resolved in
// favor of 0.05 ("the last-written value", and the more conservative of
// the two coefficients observed in the source).
const globalRootCoefficient = 0.05

// WriteGlobalTileset writes the outer tileset at outputDir: root.pnts is
// the global-overview quadtree's serialization (spec.md §4.4), and the
// root's children list the per-file tilesets in files' order (callers
// must pass files already sorted by input path for reproducible output,
// per spec.md §5).
func WriteGlobalTileset(outputDir string, overview *octree.Node, files []FileEntry) error {
	if err := os.MkdirAll(outputDir, 0o777); err != nil {
		return fmt.Errorf("tileset: create %s: %w", outputDir, err)
	}

	bv := nodeBoundingVolume(overview)
	rootGErr := globalRootCoefficient * math.Sqrt(
		overview.Bounds.HalfWidth*overview.Bounds.HalfWidth+overview.Bounds.HalfLength*overview.Bounds.HalfLength)

	if len(overview.Points) > 0 {
		data, err := pnts.Build(overview.Points, overview.Bounds.XCenter, overview.Bounds.YCenter, overview.Bounds.ZCenter)
		if err != nil {
			return fmt.Errorf("tileset: build %s/root.pnts: %w", outputDir, err)
		}
		if err := os.WriteFile(filepath.Join(outputDir, "root.pnts"), data, 0o666); err != nil {
			return fmt.Errorf("tileset: write %s/root.pnts: %w", outputDir, err)
		}
	}

	root := Node{
		Content:        Content{URI: "root.pnts"},
		BoundingVolume: bv,
		GeometricError: rootGErr,
		Refine:         refineAdd,
	}
	for _, f := range files {
		root.Children = append(root.Children, Node{
			Content:        Content{URI: f.Stem + "/tileset.json"},
			BoundingVolume: f.BoundingVolume,
			GeometricError: f.GeometricError,
			Refine:         refineAdd,
		})
	}

	ts := TileSet{
		Asset:          Asset{Version: "1.0"},
		GeometricError: 5 * rootGErr,
		Root:           root,
	}
	return writeJSON(filepath.Join(outputDir, "tileset.json"), ts)
}

func writeJSON(path string, ts TileSet) error {
	data, err := json.MarshalIndent(ts, "", "  ")
	if err != nil {
		return fmt.Errorf("tileset: marshal %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o666); err != nil {
		return fmt.Errorf("tileset: write %s: %w", path, err)
	}
	return nil
}

// nodeGeometricError is sqrt(halfWidth^2 + halfLength^2) for a node with
// children, 0 for a leaf, per spec.md §4.6.
func nodeGeometricError(node *octree.Node) float64 {
	if node.IsLeaf() {
		return 0
	}
	hw, hl := node.Bounds.HalfWidth, node.Bounds.HalfLength
	return math.Sqrt(hw*hw + hl*hl)
}

// nodeBoundingVolume computes the box per spec.md §4.7: the observed
// z-range of the node's points when it holds any, the AABB's stored z
// fields otherwise.
func nodeBoundingVolume(node *octree.Node) BoundingVolume {
	if len(node.Points) == 0 {
		return BoundingVolume{Box: Box(
			node.Bounds.XCenter, node.Bounds.YCenter, node.Bounds.ZCenter,
			node.Bounds.HalfWidth, node.Bounds.HalfLength, node.Bounds.HalfHeight,
		)}
	}

	zMin, zMax := node.Points[0].Z, node.Points[0].Z
	for _, p := range node.Points[1:] {
		if p.Z < zMin {
			zMin = p.Z
		}
		if p.Z > zMax {
			zMax = p.Z
		}
	}
	halfHeight := (zMax - zMin) / 2
	czEffective := zMin + halfHeight
	return BoundingVolume{Box: Box(
		node.Bounds.XCenter, node.Bounds.YCenter, czEffective,
		node.Bounds.HalfWidth, node.Bounds.HalfLength, halfHeight,
	)}
}
