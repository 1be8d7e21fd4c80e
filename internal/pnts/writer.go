// Package pnts serializes a quadtree node's points into the 3D Tiles
// .pnts binary point-cloud format: a 28-byte header, a space-padded
// feature-table JSON region, and a zero-padded feature-table binary
// region, per spec.md §4.5.
package pnts

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"

	"github.com/vladimirpajic/cesium-3d-tiles-generator/internal/geom"
)

const (
	magic       = "pnts"
	version     = uint32(1)
	headerSize  = 28
	alignment   = 8
)

// offset is the {"byteOffset": N} shape shared by POSITION and RGB.
type offset struct {
	ByteOffset uint32 `json:"byteOffset"`
}

// featureTable is the feature-table JSON object, field order and names
// fixed per spec.md §4.5/§6.
type featureTable struct {
	PointsLength uint32     `json:"POINTS_LENGTH"`
	RTCCenter    [3]float32 `json:"RTC_CENTER"`
	Position     offset     `json:"POSITION"`
	RGB          offset     `json:"RGB"`
}

// Build serializes points (already expressed relative to nothing in
// particular) into a complete .pnts file, using (cx,cy,cz) as the tile's
// RTC_CENTER: every position is emitted relative to that center.
func Build(points []geom.Point64, cx, cy, cz float64) ([]byte, error) {
	k := len(points)

	positions := make([]byte, 0, 12*k)
	colors := make([]byte, 0, 3*k)
	var buf [4]byte
	for _, p := range points {
		binary.LittleEndian.PutUint32(buf[:], math.Float32bits(float32(p.X-cx)))
		positions = append(positions, buf[:]...)
		binary.LittleEndian.PutUint32(buf[:], math.Float32bits(float32(p.Y-cy)))
		positions = append(positions, buf[:]...)
		binary.LittleEndian.PutUint32(buf[:], math.Float32bits(float32(p.Z-cz)))
		positions = append(positions, buf[:]...)

		colors = append(colors, byte(p.R>>8), byte(p.G>>8), byte(p.B>>8))
	}

	ft := featureTable{
		PointsLength: uint32(k),
		RTCCenter:    [3]float32{float32(cx), float32(cy), float32(cz)},
		Position:     offset{ByteOffset: 0},
		RGB:          offset{ByteOffset: uint32(len(positions))},
	}
	ftJSON, err := json.Marshal(ft)
	if err != nil {
		return nil, fmt.Errorf("pnts: marshal feature table: %w", err)
	}
	ftJSON = padSpaces(ftJSON, headerSize)

	body := make([]byte, 0, len(ftJSON)+len(positions)+len(colors))
	body = append(body, ftJSON...)
	body = append(body, positions...)
	body = append(body, colors...)
	body = padZeros(body, headerSize)

	out := bytes.NewBuffer(make([]byte, 0, headerSize+len(body)))
	out.WriteString(magic)
	writeU32(out, version)
	writeU32(out, uint32(headerSize+len(body)))
	writeU32(out, uint32(len(ftJSON)))
	writeU32(out, uint32(len(body)-len(ftJSON)))
	writeU32(out, 0) // batch table JSON length: no batch table, per spec.md Non-goals
	writeU32(out, 0) // batch table binary length

	out.Write(body)
	return out.Bytes(), nil
}

func writeU32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

// padSpaces appends ASCII spaces to data until headerSize+len(data) is a
// multiple of alignment.
func padSpaces(data []byte, headerSize int) []byte {
	n := (alignment - (headerSize+len(data))%alignment) % alignment
	for i := 0; i < n; i++ {
		data = append(data, 0x20)
	}
	return data
}

// padZeros appends zero bytes to data until headerSize+len(data) is a
// multiple of alignment.
func padZeros(data []byte, headerSize int) []byte {
	n := (alignment - (headerSize+len(data))%alignment) % alignment
	for i := 0; i < n; i++ {
		data = append(data, 0x00)
	}
	return data
}
