// Package geo converts metric distances to degree offsets on a spherical earth
// and builds the bounding boxes used by placement and proximity queries.
package geo

import (
	"math"

	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"
)

const (
	// MetersPerDegree is the length of one degree of latitude.
	MetersPerDegree = 111320.0

	// MaxSafeLatitude keeps cos(lat) away from zero near the poles.
	MaxSafeLatitude = 89.9

	// MaxRadiusMeters caps every radius accepted by placement and queries.
	MaxRadiusMeters = 500000.0
)

// Range is a closed interval of degrees.
type Range struct {
	Min float64
	Max float64
}

// Contains reports whether v lies inside the range, bounds included.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Box is a degree-space bounding box. Longitudes holds two ranges when the
// box crosses the antimeridian.
type Box struct {
	Latitude   Range
	Longitudes []Range
}

// Contains reports whether p (lon, lat) lies inside the box.
func (b Box) Contains(p orb.Point) bool {
	if !b.Latitude.Contains(p.Lat()) {
		return false
	}
	for _, lon := range b.Longitudes {
		if lon.Contains(p.Lon()) {
			return true
		}
	}

	return false
}

// ClampLatitude limits latitude to ±MaxSafeLatitude.
func ClampLatitude(lat float64) float64 {
	return math.Max(-MaxSafeLatitude, math.Min(MaxSafeLatitude, lat))
}

// CapRadius limits a radius to [0, MaxRadiusMeters].
func CapRadius(radiusMeters float64) float64 {
	if radiusMeters <= 0 || math.IsNaN(radiusMeters) {
		return 0
	}

	return math.Min(radiusMeters, MaxRadiusMeters)
}

// MetersToDegrees returns the latitude and longitude spans of radiusMeters at the given latitude.
func MetersToDegrees(radiusMeters, atLatitude float64) (deltaLat, deltaLon float64) {
	lat := ClampLatitude(atLatitude)
	deltaLat = radiusMeters / MetersPerDegree
	deltaLon = radiusMeters / (MetersPerDegree * math.Cos(lat*math.Pi/180))

	return deltaLat, deltaLon
}

// BoundingBox returns the box of half-side radiusMeters around center.
// The radius is capped at MaxRadiusMeters.
func BoundingBox(center orb.Point, radiusMeters float64) Box {
	deltaLat, deltaLon := MetersToDegrees(CapRadius(radiusMeters), center.Lat())

	return Box{
		Latitude: Range{
			Min: math.Max(-90, center.Lat()-deltaLat),
			Max: math.Min(90, center.Lat()+deltaLat),
		},
		Longitudes: LongitudeRanges(center.Lon(), deltaLon),
	}
}

// LongitudeRanges returns [lon-delta, lon+delta] split at the antimeridian.
func LongitudeRanges(lon, deltaLon float64) []Range {
	if deltaLon >= 180 {
		return []Range{{Min: -180, Max: 180}}
	}

	lo, hi := lon-deltaLon, lon+deltaLon
	switch {
	case lo < -180:
		return []Range{{Min: lo + 360, Max: 180}, {Min: -180, Max: hi}}
	case hi > 180:
		return []Range{{Min: lo, Max: 180}, {Min: -180, Max: hi - 360}}
	default:
		return []Range{{Min: lo, Max: hi}}
	}
}

// Offset moves center by distanceMeters along bearing (radians, 0 = north,
// clockwise) using the same flat approximation as MetersToDegrees.
func Offset(center orb.Point, distanceMeters, bearing float64) orb.Point {
	deltaLat, deltaLon := MetersToDegrees(distanceMeters, center.Lat())

	lat := center.Lat() + deltaLat*math.Cos(bearing)
	lon := center.Lon() + deltaLon*math.Sin(bearing)

	return orb.Point{NormalizeLongitude(lon), math.Max(-90, math.Min(90, lat))}
}

// NormalizeLongitude wraps lon into [-180, 180].
func NormalizeLongitude(lon float64) float64 {
	if lon >= -180 && lon <= 180 {
		return lon
	}

	lon = math.Mod(lon+180, 360)
	if lon < 0 {
		lon += 360
	}

	return lon - 180
}

// DistanceMeters is the great-circle distance between a and b.
func DistanceMeters(a, b orb.Point) float64 {
	return orbgeo.DistanceHaversine(a, b)
}

// ValidCoordinate reports whether lat and lon are finite and within range.
func ValidCoordinate(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lon) || math.IsInf(lat, 0) || math.IsInf(lon, 0) {
		return false
	}

	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}
