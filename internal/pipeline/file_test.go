package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/vladimirpajic/cesium-3d-tiles-generator/internal/lasio"
	"github.com/vladimirpajic/cesium-3d-tiles-generator/internal/pnts"
)

func TestProcessFileSkipsDecodeErrorsAndWritesTileset(t *testing.T) {
	dir := t.TempDir()
	reader := &lasio.MockReader{Pts: []lasio.RawPoint{
		{X: 10, Y: 45, Z: 100},
		{X: 10.001, Y: 45.001, Z: 105},
		{X: 10.002, Y: 45.002, Z: 95},
	}}
	// NumberOfPoints claims one more point than the mock actually holds,
	// so the final GetNext call hits MockReader's exhaustion error and
	// must be skipped rather than aborting the whole file.
	result, err := ProcessFile(context.Background(), "tileA", &countingReader{MockReader: reader, claim: 4}, dir, 10)
	if err != nil {
		t.Fatalf("ProcessFile: %v", err)
	}
	if result.Stem != "tileA" {
		t.Errorf("Stem = %q, want tileA", result.Stem)
	}
}

func TestProcessFileCapacityControlsPromotion(t *testing.T) {
	dir := t.TempDir()
	pts := make([]lasio.RawPoint, 0, 40)
	for i := 0; i < 40; i++ {
		pts = append(pts, lasio.RawPoint{X: 10 + float64(i)*0.0001, Y: 45 + float64(i)*0.0001, Z: float64(i)})
	}
	reader := &lasio.MockReader{Pts: pts}

	result, err := ProcessFile(context.Background(), "tileB", reader, dir, 10)
	if err != nil {
		t.Fatalf("ProcessFile: %v", err)
	}
	// promotionStride = 4*40/10 = 16, so indices 0,16,32 of the sorted
	// stream are promoted: exactly 3 points.
	if len(result.Promoted) != 3 {
		t.Errorf("len(Promoted) = %d, want 3", len(result.Promoted))
	}
}

func TestProcessFileSmallFileRoundsStrideToZero(t *testing.T) {
	dir := t.TempDir()
	// promotionStride = 4*1/100 = 0 (integer division): a single point in
	// a large-capacity file must not be promoted.
	reader := &lasio.MockReader{Pts: []lasio.RawPoint{{X: 1, Y: 1, Z: 1}}}
	result, err := ProcessFile(context.Background(), "tileC", reader, dir, 100)
	if err != nil {
		t.Fatalf("ProcessFile: %v", err)
	}
	if len(result.Promoted) != 0 {
		t.Errorf("len(Promoted) = %d, want 0", len(result.Promoted))
	}
}

// A single-point file has a degenerate (zero half-extent) extent on every
// axis. The point must still be retained at the root and emitted to
// root.pnts, not silently dropped by the containment check.
func TestProcessFileSinglePointDegenerateExtentIsRetained(t *testing.T) {
	dir := t.TempDir()
	reader := &lasio.MockReader{Pts: []lasio.RawPoint{{X: 12.5, Y: -7.25, Z: 42}}}
	result, err := ProcessFile(context.Background(), "tileD", reader, dir, 10)
	if err != nil {
		t.Fatalf("ProcessFile: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "root.pnts"))
	if err != nil {
		t.Fatalf("root.pnts not written: %v", err)
	}
	decoded, err := pnts.Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(decoded.Positions) != 1 {
		t.Fatalf("root.pnts holds %d points, want 1", len(decoded.Positions))
	}
	if decoded.Positions[0] != ([3]float32{0, 0, 0}) {
		t.Errorf("single point's relative position = %v, want (0,0,0)", decoded.Positions[0])
	}
	if result.BoundingVolume.Box[3] != 0 || result.BoundingVolume.Box[7] != 0 {
		t.Errorf("expected a zero-half-extent bounding volume for a single-point file, got %v", result.BoundingVolume.Box)
	}
}

// countingReader lets a test claim a point count larger than the backing
// slice, so GetNext's "no more points" error is exercised mid-stream.
type countingReader struct {
	*lasio.MockReader
	claim int
}

func (c *countingReader) NumberOfPoints() int { return c.claim }
