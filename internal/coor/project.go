// Package coor projects geodetic LAS coordinates onto the earth-centered
// Cartesian frame 3D Tiles expects, using a fixed WGS-84 ellipsoid. It
// replaces the teacher's configurable EPSG-to-EPSG proj4 reprojection:
// this spec fixes the target frame and source ellipsoid, so there is no
// per-run SRID to carry.
package coor

import "math"

// WGS-84 ellipsoid parameters.
const (
	semiMajorAxis = 6378137.0
	flattening    = 1.0 / 298.257223563
)

// ToGeocentric maps a LAS point's native (x, y, z) fields to earth-centered
// Cartesian (X, Y, Z), in meters.
//
// The LAS x/y fields are swapped into lon/lat: lasY feeds latitude, lasX
// feeds longitude. This convention is preserved exactly as spec.md §4.1
// requires for bit-compatible output; lasX/lasY are in degrees, lasZ
// (height) is in meters.
func ToGeocentric(lasX, lasY, lasZ float64) (x, y, z float64) {
	lat := degToRad(lasY)
	lon := degToRad(lasX)
	h := lasZ

	t := 1 - flattening
	sinLat := math.Sin(lat)
	n := semiMajorAxis / math.Sqrt(1-(1-t*t)*sinLat*sinLat)

	x = (n + h) * math.Cos(lat) * math.Cos(lon)
	y = (n + h) * math.Cos(lat) * math.Sin(lon)
	z = (t*t*n + h) * sinLat
	return x, y, z
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}
