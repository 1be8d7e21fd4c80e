package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/vladimirpajic/cesium-3d-tiles-generator/internal/geom"
	"github.com/vladimirpajic/cesium-3d-tiles-generator/internal/lasio"
	"github.com/vladimirpajic/cesium-3d-tiles-generator/internal/octree"
	"github.com/vladimirpajic/cesium-3d-tiles-generator/internal/tileset"
)

// Stage identifies a point in a run's progress that a Tiler can surface
// through its callback.
type Stage int

const (
	StageFileStarted Stage = iota
	StageFileCompleted
	StageFileError
	StageGlobalStarted
	StageGlobalCompleted
	StageGlobalError
)

// ProgressFunc receives progress notifications during Run. desc is the
// file stem for file-scoped stages, empty for the global stages.
type ProgressFunc func(stage Stage, desc string, err error)

// Run fans out ProcessFile across files — sorted by path first, for
// reproducible output per spec.md §5's recommendation — then, once every
// file has finished, sequentially builds and writes the global-overview
// tileset from their promoted points, matching spec.md §2's "components
// 6-8 combine... sequentially" after the per-file parallel stage.
func Run(ctx context.Context, files []string, outputDir string, open lasio.OpenFunc, capacity, numWorkers int, progress ProgressFunc) error {
	sorted := append([]string(nil), files...)
	sort.Strings(sorted)

	results := make([]FileResult, len(sorted))

	g, gctx := errgroup.WithContext(ctx)
	if numWorkers > 0 {
		g.SetLimit(numWorkers)
	}
	for i, path := range sorted {
		i, path := i, path
		g.Go(func() error {
			stem := stemOf(path)
			report(progress, StageFileStarted, stem, nil)

			reader, err := open(path)
			if err != nil {
				err = fmt.Errorf("pipeline: open %s: %w", path, err)
				report(progress, StageFileError, stem, err)
				return err
			}

			dir := filepath.Join(outputDir, stem)
			result, err := ProcessFile(gctx, stem, reader, dir, capacity)
			if err != nil {
				report(progress, StageFileError, stem, err)
				return err
			}
			results[i] = result
			report(progress, StageFileCompleted, stem, nil)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	report(progress, StageGlobalStarted, "", nil)
	if err := writeGlobal(results, outputDir); err != nil {
		report(progress, StageGlobalError, "", err)
		return err
	}
	report(progress, StageGlobalCompleted, "", nil)
	return nil
}

// writeGlobal unions every file's promoted points into a single
// global-overview quadtree whose capacity is the union's own size, per
// spec.md §4.4, then writes the outer tileset referencing each per-file
// tileset in files' sorted order.
func writeGlobal(results []FileResult, outputDir string) error {
	var promoted []geom.Point64
	entries := make([]tileset.FileEntry, 0, len(results))
	extent := geom.NewSpatialExtent()
	for _, r := range results {
		entries = append(entries, tileset.FileEntry{
			Stem:           r.Stem,
			BoundingVolume: r.BoundingVolume,
			GeometricError: r.GeometricError,
		})
		for _, p := range r.Promoted {
			extent.Update(p)
		}
		promoted = append(promoted, r.Promoted...)
	}

	bounds := geom.AABB{}
	if len(promoted) > 0 {
		bounds = extent.RootAABB()
	}

	overview := octree.New(bounds, len(promoted))
	for i, p := range promoted {
		overview.Insert(p, i, len(promoted))
	}

	return tileset.WriteGlobalTileset(outputDir, overview, entries)
}

func report(progress ProgressFunc, stage Stage, desc string, err error) {
	if progress != nil {
		progress(stage, desc, err)
	}
}

func stemOf(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
