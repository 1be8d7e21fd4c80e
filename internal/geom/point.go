package geom

// Point64 contains the data of a point cloud point as produced by the
// coordinate projector: X,Y,Z expressed in the earth-centered Cartesian
// frame, R,G,B at full LAS precision, the LAS classification byte, the
// five LAS flag bits and the point's Morton code.
//
// A Point64 is immutable once its Morton field has been assigned by the
// Morton encoder: nothing downstream mutates a Point64 in place, it is
// always passed and copied by value.
type Point64 struct {
	X, Y, Z        float64
	R, G, B        uint16
	Classification uint8
	Flags          FlagBits
	Morton         uint64
}

// FlagBits holds the five per-point LAS flag bits.
type FlagBits struct {
	EdgeOfFlightLine bool
	Synthetic        bool
	KeyPoint         bool
	Withheld         bool
	Overlap          bool
}

