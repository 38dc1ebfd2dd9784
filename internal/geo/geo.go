// Package geo provides great-circle distance and bounding-box helpers used
// by the fuel planning core. All distances are in statute miles.
package geo

import (
	"math"

	"fuel-route-service/internal/domain"
)

// Mean Earth radius in miles, the sphere used for all distance math.
const EarthRadiusMiles = 3958.8

// cos(latitude) below this is treated as the epsilon itself, so degree
// conversion near the poles never divides by zero.
const minCosLat = 1e-6

// Miles returns the great-circle distance between two points using the
// haversine formula. Pure and deterministic.
func Miles(a, b domain.Coordinates) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusMiles * c
}

// BoundingBox is a latitude/longitude rectangle used as a cheap superset
// pre-filter before exact distance computation.
type BoundingBox struct {
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

// Contains reports whether the point lies inside the box (inclusive).
func (b BoundingBox) Contains(c domain.Coordinates) bool {
	return c.Lat >= b.MinLat && c.Lat <= b.MaxLat &&
		c.Lon >= b.MinLon && c.Lon <= b.MaxLon
}

// BoxAround returns the bounding box covering a circle of radiusMiles around
// center. The longitude delta widens with latitude because degree-to-mile
// conversion is anisotropic away from the equator.
func BoxAround(center domain.Coordinates, radiusMiles float64) BoundingBox {
	deltaLat := (radiusMiles / EarthRadiusMiles) * (180 / math.Pi)

	cosLat := math.Cos(center.Lat * math.Pi / 180)
	if cosLat < minCosLat {
		cosLat = minCosLat
	}
	deltaLon := deltaLat / cosLat

	return BoundingBox{
		MinLat: center.Lat - deltaLat,
		MaxLat: center.Lat + deltaLat,
		MinLon: center.Lon - deltaLon,
		MaxLon: center.Lon + deltaLon,
	}
}
