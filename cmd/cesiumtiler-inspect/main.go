// Command cesiumtiler-inspect prints a .pnts file's header fields and
// feature-table JSON to stdout, the way its author would otherwise have
// reached for a hex viewer to validate the bit-exact packager's output
// by hand.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/vladimirpajic/cesium-3d-tiles-generator/internal/pnts"
)

func main() {
	if len(os.Args) != 2 {
		log.Fatal("usage: cesiumtiler-inspect <path-to.pnts>")
	}

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		log.Fatal(err)
	}

	decoded, err := pnts.Parse(data)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("magic:              %s\n", decoded.Header.Magic)
	fmt.Printf("version:            %d\n", decoded.Header.Version)
	fmt.Printf("byteLength:         %d\n", decoded.Header.ByteLength)
	fmt.Printf("featureTableJSON:   %d bytes\n", decoded.Header.FeatureTableJSONLen)
	fmt.Printf("featureTableBinary: %d bytes\n", decoded.Header.FeatureTableBinLen)
	fmt.Printf("points:             %d\n", len(decoded.Positions))

	ft, err := json.MarshalIndent(decoded.FeatureTable, "", "  ")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("feature table:\n%s\n", ft)
}
