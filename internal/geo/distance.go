package geo

import "math"

// Distance returns the planar Euclidean distance between two coordinate
// pairs. Coordinates in this system live on a flat [0,100] grid, so no
// great-circle correction is applied.
func Distance(latA, lonA, latB, lonB float64) float64 {
	dLat := latA - latB
	dLon := lonA - lonB
	return math.Sqrt(dLat*dLat + dLon*dLon)
}
