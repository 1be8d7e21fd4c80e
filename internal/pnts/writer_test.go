package pnts

import (
	"testing"

	"github.com/vladimirpajic/cesium-3d-tiles-generator/internal/geom"
)

func TestPadSpacesNoPaddingWhenAligned(t *testing.T) {
	// headerSize(28) + 4 = 32, already a multiple of 8.
	data := make([]byte, 4)
	got := padSpaces(data, headerSize)
	if len(got) != 4 {
		t.Errorf("len = %d, want 4 (no padding needed)", len(got))
	}
}

func TestPadSpacesAddsSevenWhenOnePast(t *testing.T) {
	// headerSize(28) + 5 = 33, one byte past a multiple of 8: needs 7 spaces.
	data := make([]byte, 5)
	got := padSpaces(data, headerSize)
	if len(got) != 12 {
		t.Errorf("len = %d, want 12 (5 + 7 padding bytes)", len(got))
	}
	for _, b := range got[5:] {
		if b != 0x20 {
			t.Errorf("padding byte = %x, want 0x20", b)
		}
	}
}

func TestPadZerosAddsSevenWhenOnePast(t *testing.T) {
	data := make([]byte, 5)
	got := padZeros(data, headerSize)
	if len(got) != 12 {
		t.Errorf("len = %d, want 12", len(got))
	}
	for _, b := range got[5:] {
		if b != 0x00 {
			t.Errorf("padding byte = %x, want 0x00", b)
		}
	}
}

func TestBuildParseRoundTrip(t *testing.T) {
	points := []geom.Point64{
		{X: 100.5, Y: 200.25, Z: -10, R: 0x1234, G: 0xABCD, B: 0xFFFF},
		{X: 101.5, Y: 199.25, Z: -8, R: 0x0000, G: 0x8080, B: 0x00FF},
	}
	cx, cy, cz := 100.0, 200.0, 0.0

	data, err := Build(points, cx, cy, cz)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(data)%8 != 0 {
		t.Errorf("file length %d is not 8-byte aligned", len(data))
	}

	decoded, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if decoded.Header.Magic != "pnts" {
		t.Errorf("magic = %q, want pnts", decoded.Header.Magic)
	}
	if decoded.Header.BatchTableJSONLen != 0 || decoded.Header.BatchTableBinLen != 0 {
		t.Errorf("expected no batch table, got json=%d bin=%d", decoded.Header.BatchTableJSONLen, decoded.Header.BatchTableBinLen)
	}
	if int(decoded.FeatureTable.PointsLength) != len(points) {
		t.Errorf("POINTS_LENGTH = %d, want %d", decoded.FeatureTable.PointsLength, len(points))
	}
	if len(decoded.Positions) != len(points) || len(decoded.Colors) != len(points) {
		t.Fatalf("decoded %d positions, %d colors, want %d", len(decoded.Positions), len(decoded.Colors), len(points))
	}

	for i, p := range points {
		want := [3]float32{float32(p.X - cx), float32(p.Y - cy), float32(p.Z - cz)}
		got := decoded.Positions[i]
		if got != want {
			t.Errorf("point %d: position = %v, want %v", i, got, want)
		}
		wantColor := [3]uint8{byte(p.R >> 8), byte(p.G >> 8), byte(p.B >> 8)}
		if decoded.Colors[i] != wantColor {
			t.Errorf("point %d: color = %v, want %v", i, decoded.Colors[i], wantColor)
		}
	}
}

func TestBuildEmptyPointSet(t *testing.T) {
	data, err := Build(nil, 0, 0, 0)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	decoded, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if decoded.FeatureTable.PointsLength != 0 {
		t.Errorf("POINTS_LENGTH = %d, want 0", decoded.FeatureTable.PointsLength)
	}
	if len(data)%8 != 0 {
		t.Errorf("file length %d is not 8-byte aligned", len(data))
	}
}
