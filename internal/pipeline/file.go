// Package pipeline runs the per-file and global orchestration spec.md
// §2/§5 describe: read -> project -> extent -> Morton -> sort -> promote
// -> insert -> serialize -> write, per file, fanned out in parallel; then
// a sequential global-overview pass once every file has finished.
package pipeline

import (
	"context"
	"fmt"

	"github.com/vladimirpajic/cesium-3d-tiles-generator/internal/coor"
	"github.com/vladimirpajic/cesium-3d-tiles-generator/internal/geom"
	"github.com/vladimirpajic/cesium-3d-tiles-generator/internal/lasio"
	"github.com/vladimirpajic/cesium-3d-tiles-generator/internal/morton"
	"github.com/vladimirpajic/cesium-3d-tiles-generator/internal/octree"
	"github.com/vladimirpajic/cesium-3d-tiles-generator/internal/sortpoints"
	"github.com/vladimirpajic/cesium-3d-tiles-generator/internal/tileset"
)

// FileResult is what a single file's pipeline hands back to the
// orchestrator: its promoted points (destined for the global overview
// quadtree) and its own root bounding volume/geometric error, so the
// global tileset can reference it without re-reading the per-file
// tileset.json back off disk. This mirors the Rust prototype's
// tiles.rs::create_tile, which returns the root AABB only at depth 1.
type FileResult struct {
	Stem           string
	Promoted       []geom.Point64
	BoundingVolume tileset.BoundingVolume
	GeometricError float64
}

// ProcessFile runs one file's complete pipeline and writes its tileset
// under dir (normally <output>/<file-stem>/).
func ProcessFile(ctx context.Context, stem string, reader lasio.Reader, dir string, capacity int) (FileResult, error) {
	if err := ctx.Err(); err != nil {
		return FileResult{}, err
	}

	n := reader.NumberOfPoints()
	extent := geom.NewSpatialExtent()
	points := make([]geom.Point64, 0, n)
	for i := 0; i < n; i++ {
		raw, err := reader.GetNext()
		if err != nil {
			// Per-point decode errors are skipped silently, per spec.md §7.
			continue
		}
		x, y, z := coor.ToGeocentric(raw.X, raw.Y, raw.Z)
		r, g, b := raw.ResolvedColor()
		pt := geom.Point64{
			X: x, Y: y, Z: z,
			R: r, G: g, B: b,
			Classification: raw.Classification,
			Flags:          raw.Flags,
		}
		points = append(points, pt)
		extent.Update(pt)
	}

	bounds := geom.AABB{}
	if len(points) > 0 {
		bounds = extent.RootAABB()
	}

	morton.AssignAll(points, extent)

	sorted, err := sortpoints.Sort(ctx, points)
	if err != nil {
		return FileResult{}, fmt.Errorf("pipeline: sort %s: %w", stem, err)
	}

	total := len(sorted)
	promotionStride := 0
	if capacity > 0 {
		promotionStride = (4 * total) / capacity
	}

	root := octree.New(bounds, capacity)
	promoted := make([]geom.Point64, 0)
	for i, pt := range sorted {
		if promotionStride > 0 && i%promotionStride == 0 {
			promoted = append(promoted, pt)
			continue
		}
		root.Insert(pt, i, total)
	}

	bv, gErr, err := tileset.WriteFileTileset(dir, root)
	if err != nil {
		return FileResult{}, fmt.Errorf("pipeline: write tileset for %s: %w", stem, err)
	}

	return FileResult{
		Stem:           stem,
		Promoted:       promoted,
		BoundingVolume: bv,
		GeometricError: gErr,
	}, nil
}
