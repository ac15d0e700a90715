package domain

import (
	"fmt"
	"math"
)

// KmPerDegreeLat is the flat-earth approximation used for regional radii.
const KmPerDegreeLat = 111.0

// minCosLat keeps the longitude span finite at the poles.
const minCosLat = 1e-6

// BoundingBox is a lat/lon rectangle in the shape OpenSky expects.
type BoundingBox struct {
	LatMin float64 `json:"lamin"`
	LatMax float64 `json:"lamax"`
	LonMin float64 `json:"lomin"`
	LonMax float64 `json:"lomax"`
}

// ComputeBoundingBox converts a center and radius into a box.
// The longitude span widens with latitude; at ±90° it is bounded by
// minCosLat rather than becoming infinite.
func ComputeBoundingBox(lat, lon, radiusKm float64) (BoundingBox, error) {
	if math.IsNaN(lat) || lat < -90 || lat > 90 {
		return BoundingBox{}, fmt.Errorf("%w: latitude %v out of range", ErrInvalidInput, lat)
	}
	if math.IsNaN(lon) || math.IsInf(lon, 0) {
		return BoundingBox{}, fmt.Errorf("%w: longitude %v", ErrInvalidInput, lon)
	}
	if math.IsNaN(radiusKm) || math.IsInf(radiusKm, 0) || radiusKm <= 0 {
		return BoundingBox{}, fmt.Errorf("%w: radius must be positive, got %v", ErrInvalidInput, radiusKm)
	}

	latDelta := radiusKm / KmPerDegreeLat
	cosLat := math.Abs(math.Cos(lat * math.Pi / 180))
	if cosLat < minCosLat {
		cosLat = minCosLat
	}
	lonDelta := radiusKm / (KmPerDegreeLat * cosLat)

	return BoundingBox{
		LatMin: lat - latDelta,
		LatMax: lat + latDelta,
		LonMin: lon - lonDelta,
		LonMax: lon + lonDelta,
	}, nil
}

// Contains reports whether the point lies inside the box (edges inclusive).
func (b BoundingBox) Contains(lat, lon float64) bool {
	return lat >= b.LatMin && lat <= b.LatMax && lon >= b.LonMin && lon <= b.LonMax
}
