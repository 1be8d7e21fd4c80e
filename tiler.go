// Package tiler converts a folder of LAS/LAZ point cloud files into a
// Cesium 3D Tiles level-of-detail tileset: coordinate projection,
// Morton-order spatial sorting, a subsampling quadtree, bit-exact .pnts
// serialization and a JSON tileset hierarchy, per spec.md.
package tiler

import (
	"context"
	"fmt"

	"github.com/vladimirpajic/cesium-3d-tiles-generator/internal/lasio"
	"github.com/vladimirpajic/cesium-3d-tiles-generator/internal/pipeline"
	"github.com/vladimirpajic/cesium-3d-tiles-generator/internal/utils"
)

// Tiler converts every LAS/LAZ file in inputDir into a tileset rooted at
// outputDir.
type Tiler interface {
	ProcessFolder(inputDir, outputDir string, opts *TilerOptions, ctx context.Context) error
}

// GoCesiumTiler is the production Tiler. Open must be set to a real
// LAS/LAZ decoder before ProcessFolder is called; decoding the binary
// format itself is out of scope per spec.md §1/§6, so no default
// implementation is wired.
type GoCesiumTiler struct {
	Open lasio.OpenFunc
}

// NewGoCesiumTiler returns a GoCesiumTiler with no decoder configured.
func NewGoCesiumTiler() (*GoCesiumTiler, error) {
	return &GoCesiumTiler{Open: unconfiguredOpen}, nil
}

func unconfiguredOpen(path string) (lasio.Reader, error) {
	return nil, fmt.Errorf("tiler: no LAS/LAZ decoder configured, cannot open %s", path)
}

// ProcessFolder implements Tiler.
func (t *GoCesiumTiler) ProcessFolder(inputDir, outputDir string, opts *TilerOptions, ctx context.Context) error {
	if opts == nil {
		opts = NewDefaultTilerOptions()
	}

	files, err := utils.FindLasFilesInFolder(inputDir)
	if err != nil {
		return fmt.Errorf("tiler: scan %s: %w", inputDir, err)
	}

	progress := func(stage pipeline.Stage, desc string, stageErr error) {
		if opts.callback == nil {
			return
		}
		event, msg := translateStage(stage, stageErr)
		opts.callback(event, desc, 0, msg)
	}

	return pipeline.Run(ctx, files, outputDir, t.Open, opts.capacity, opts.numWorkers, progress)
}

func translateStage(stage pipeline.Stage, err error) (TilerEvent, string) {
	switch stage {
	case pipeline.StageFileStarted:
		return EventReadStarted, "reading"
	case pipeline.StageFileCompleted:
		return EventExportCompleted, "tileset written"
	case pipeline.StageFileError:
		return EventBuildError, errString(err)
	case pipeline.StageGlobalStarted:
		return EventExportStarted, "writing global tileset"
	case pipeline.StageGlobalCompleted:
		return EventExportCompleted, "global tileset written"
	case pipeline.StageGlobalError:
		return EventExportError, errString(err)
	default:
		return EventBuildStarted, ""
	}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// MockTiler is a hand-written Tiler used by cmd's tests, grounded on the
// teacher's internal/las MockLasReader pattern.
type MockTiler struct {
	ProcessFolderCalled bool
	InputFolder         string
	OutputFolder        string
	Err                 error
}

// ProcessFolder implements Tiler.
func (m *MockTiler) ProcessFolder(inputDir, outputDir string, opts *TilerOptions, ctx context.Context) error {
	m.ProcessFolderCalled = true
	m.InputFolder = inputDir
	m.OutputFolder = outputDir
	return m.Err
}
