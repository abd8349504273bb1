package geo

import (
	"fmt"
	"math"
)

// EarthRadiusKm is the mean Earth radius used for great-circle distances.
const EarthRadiusKm = 6371.0

// Coordinate is an immutable (latitude, longitude) pair in decimal degrees.
type Coordinate struct {
	Lat float64
	Lon float64
}

// NewCoordinate validates ranges before constructing a Coordinate.
// Out-of-range or non-finite input is rejected, never clamped.
func NewCoordinate(lat, lon float64) (Coordinate, error) {
	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lon) || math.IsInf(lon, 0) {
		return Coordinate{}, fmt.Errorf("coordinate must be finite: (%v, %v)", lat, lon)
	}
	if lat < -90 || lat > 90 {
		return Coordinate{}, fmt.Errorf("latitude %v out of range [-90, 90]", lat)
	}
	if lon < -180 || lon > 180 {
		return Coordinate{}, fmt.Errorf("longitude %v out of range [-180, 180]", lon)
	}
	return Coordinate{Lat: lat, Lon: lon}, nil
}

// DistanceKm returns the haversine great-circle distance between two
// coordinates in kilometers. The asin argument is clamped so the result
// stays finite for near-identical and near-antipodal points.
func DistanceKm(a, b Coordinate) float64 {
	latA := radians(a.Lat)
	latB := radians(b.Lat)
	dLat := radians(b.Lat - a.Lat)
	dLon := radians(b.Lon - a.Lon)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	h := sinLat*sinLat + math.Cos(latA)*math.Cos(latB)*sinLon*sinLon
	if h < 0 {
		h = 0
	}
	if h > 1 {
		h = 1
	}
	return 2 * EarthRadiusKm * math.Asin(math.Sqrt(h))
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// BoundingBox is a latitude/longitude rectangle used to pre-filter
// candidate sets before exact distance computation.
type BoundingBox struct {
	LatMin float64
	LatMax float64
	LonMin float64
	LonMax float64
}

// Contains reports whether the coordinate lies inside the box.
func (b BoundingBox) Contains(c Coordinate) bool {
	return c.Lat >= b.LatMin && c.Lat <= b.LatMax && c.Lon >= b.LonMin && c.Lon <= b.LonMax
}

// BoxAround returns a bounding box that fully contains the circle of the
// given radius around center. Longitude span widens toward the poles; near
// the poles the box degenerates to the full longitude range.
func BoxAround(center Coordinate, radiusKm float64) BoundingBox {
	latDelta := radiusKm / 111.0
	box := BoundingBox{
		LatMin: math.Max(center.Lat-latDelta, -90),
		LatMax: math.Min(center.Lat+latDelta, 90),
		LonMin: -180,
		LonMax: 180,
	}
	cosLat := math.Cos(radians(center.Lat))
	if cosLat > 1e-6 {
		lonDelta := radiusKm / (111.0 * cosLat)
		if lonDelta < 180 {
			box.LonMin = center.Lon - lonDelta
			box.LonMax = center.Lon + lonDelta
		}
	}
	return box
}
