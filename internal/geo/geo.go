// Package geo holds the distance math used by the nearby-barber search.
package geo

import (
	"math"

	"github.com/jftuga/geodist"
)

const (
	EarthRadiusKm = 6371.0

	// KmPerDegreeLat is the approximation used for bounding boxes.
	KmPerDegreeLat = 111.0
)

func degreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// HaversineKm returns the great-circle distance in kilometers between two
// points given in degrees, on a sphere of EarthRadiusKm.
func HaversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	_, km := geodist.HaversineDistance(geodist.Coord{Lat: lat1, Lon: lon1}, geodist.Coord{Lat: lat2, Lon: lon2})
	// Rounding can push the haversine term past 1 for antipodal points.
	if math.IsNaN(km) {
		return math.Pi * EarthRadiusKm
	}
	return km
}

// Box is a lat/long rectangle with inclusive bounds.
type Box struct {
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

// BoundingBox returns a rectangle that contains every point within radiusKm
// of (lat, lon). It is a superset: corners admit points farther than the
// radius, so callers still filter with HaversineKm.
func BoundingBox(lat, lon, radiusKm float64) Box {
	latDelta := radiusKm / KmPerDegreeLat
	lonDelta := radiusKm / (KmPerDegreeLat * math.Cos(degreesToRadians(lat)))

	return Box{
		MinLat: lat - latDelta,
		MaxLat: lat + latDelta,
		MinLon: lon - lonDelta,
		MaxLon: lon + lonDelta,
	}
}

// FiltersLongitude reports whether the longitude bounds narrow anything.
// Near the poles cos(lat) tends to zero and the delta diverges (or becomes
// Inf/NaN); a box that crosses the antimeridian is also treated as
// unbounded so no candidate is lost.
func (b Box) FiltersLongitude() bool {
	if math.IsNaN(b.MinLon) || math.IsNaN(b.MaxLon) || math.IsInf(b.MinLon, 0) || math.IsInf(b.MaxLon, 0) {
		return false
	}
	return b.MinLon >= -180 && b.MaxLon <= 180
}

// Contains reports whether the point is inside the box, honoring
// FiltersLongitude.
func (b Box) Contains(lat, lon float64) bool {
	if lat < b.MinLat || lat > b.MaxLat {
		return false
	}
	if !b.FiltersLongitude() {
		return true
	}
	return lon >= b.MinLon && lon <= b.MaxLon
}
