package sortpoints

import (
	"context"
	"testing"

	"github.com/lanrat/extsort"

	"github.com/vladimirpajic/cesium-3d-tiles-generator/internal/geom"
)

func TestRecordToBytesFromBytesRoundTrip(t *testing.T) {
	r := record{
		index: 42,
		pt: geom.Point64{
			X: 1.5, Y: -2.25, Z: 3.0,
			R: 0x1234, G: 0xABCD, B: 0xFFFF,
			Classification: 7,
			Flags:          geom.FlagBits{Synthetic: true, Withheld: true},
			Morton:         0xDEADBEEFCAFE,
		},
	}

	decoded := FromBytes(r.ToBytes()).(record)
	if decoded != r {
		t.Errorf("round trip mismatch:\n got  %+v\n want %+v", decoded, r)
	}
}

func TestLessOrdersByMortonThenIndex(t *testing.T) {
	a := record{index: 5, pt: geom.Point64{Morton: 10}}
	b := record{index: 1, pt: geom.Point64{Morton: 20}}
	if !Less(a, b) {
		t.Errorf("expected record with smaller Morton code to sort first")
	}
	if Less(b, a) {
		t.Errorf("expected record with larger Morton code to not sort first")
	}

	c := record{index: 3, pt: geom.Point64{Morton: 10}}
	d := record{index: 7, pt: geom.Point64{Morton: 10}}
	if !Less(c, d) {
		t.Errorf("expected equal Morton codes to break ties by index")
	}
	if Less(d, c) {
		t.Errorf("tie-break must be asymmetric")
	}
}

func TestSortOrdersAscendingByMorton(t *testing.T) {
	pts := []geom.Point64{
		{X: 3, Morton: 30},
		{X: 1, Morton: 10},
		{X: 2, Morton: 20},
		{X: 0, Morton: 10}, // ties with the second point; input order must win
	}

	sorted, err := Sort(context.Background(), pts)
	if err != nil {
		t.Fatalf("Sort: %v", err)
	}
	if len(sorted) != len(pts) {
		t.Fatalf("sorted length = %d, want %d", len(sorted), len(pts))
	}
	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].Morton > sorted[i].Morton {
			t.Errorf("not Morton-ascending at %d: %d > %d", i, sorted[i-1].Morton, sorted[i].Morton)
		}
	}
	// The tied pair (Morton==10) must keep their relative input order.
	var firstTiedIdx, secondTiedIdx = -1, -1
	for i, p := range sorted {
		if p.Morton == 10 && firstTiedIdx == -1 {
			firstTiedIdx = i
		} else if p.Morton == 10 {
			secondTiedIdx = i
		}
	}
	if sorted[firstTiedIdx].X != 1 || sorted[secondTiedIdx].X != 0 {
		t.Errorf("ties did not preserve input order: got X=%v then X=%v", sorted[firstTiedIdx].X, sorted[secondTiedIdx].X)
	}
}

var _ extsort.SortType = record{}
