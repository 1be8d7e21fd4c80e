package pnts

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
)

// Header is the decoded 28-byte .pnts header.
type Header struct {
	Magic                string
	Version              uint32
	ByteLength           uint32
	FeatureTableJSONLen  uint32
	FeatureTableBinLen   uint32
	BatchTableJSONLen    uint32
	BatchTableBinLen     uint32
}

// Decoded is a fully parsed .pnts file, used by round-trip property tests
// and by the cesiumtiler-inspect tool.
type Decoded struct {
	Header       Header
	FeatureTable featureTable
	Positions    [][3]float32
	Colors       [][3]uint8
}

// Parse decodes a complete .pnts file previously produced by Build.
func Parse(data []byte) (Decoded, error) {
	if len(data) < headerSize {
		return Decoded{}, fmt.Errorf("pnts: truncated header (%d bytes)", len(data))
	}
	h := Header{
		Magic:               string(data[0:4]),
		Version:             binary.LittleEndian.Uint32(data[4:8]),
		ByteLength:          binary.LittleEndian.Uint32(data[8:12]),
		FeatureTableJSONLen: binary.LittleEndian.Uint32(data[12:16]),
		FeatureTableBinLen:  binary.LittleEndian.Uint32(data[16:20]),
		BatchTableJSONLen:   binary.LittleEndian.Uint32(data[20:24]),
		BatchTableBinLen:    binary.LittleEndian.Uint32(data[24:28]),
	}
	if h.Magic != magic {
		return Decoded{}, fmt.Errorf("pnts: bad magic %q", h.Magic)
	}

	body := data[headerSize:]
	if uint32(len(body)) < h.FeatureTableJSONLen+h.FeatureTableBinLen {
		return Decoded{}, fmt.Errorf("pnts: truncated body")
	}

	jsonRegion := body[:h.FeatureTableJSONLen]
	binRegion := body[h.FeatureTableJSONLen : h.FeatureTableJSONLen+h.FeatureTableBinLen]

	var ft featureTable
	if err := json.Unmarshal(jsonRegion, &ft); err != nil {
		return Decoded{}, fmt.Errorf("pnts: unmarshal feature table: %w", err)
	}

	k := int(ft.PointsLength)
	positions := make([][3]float32, k)
	for i := 0; i < k; i++ {
		off := ft.Position.ByteOffset + uint32(i*12)
		positions[i] = [3]float32{
			math.Float32frombits(binary.LittleEndian.Uint32(binRegion[off:])),
			math.Float32frombits(binary.LittleEndian.Uint32(binRegion[off+4:])),
			math.Float32frombits(binary.LittleEndian.Uint32(binRegion[off+8:])),
		}
	}

	colors := make([][3]uint8, k)
	for i := 0; i < k; i++ {
		off := ft.RGB.ByteOffset + uint32(i*3)
		colors[i] = [3]uint8{binRegion[off], binRegion[off+1], binRegion[off+2]}
	}

	return Decoded{Header: h, FeatureTable: ft, Positions: positions, Colors: colors}, nil
}
