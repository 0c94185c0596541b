package geom

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/tidwall/geodesic"
)

const (
	EarthRadiusMeters = 6371000.0
	MetersPerMile     = 1609.344
)

// GeodesicMiles returns the distance in miles between two points along the
// WGS-84 ellipsoid. Points are orb points, so index 0 is longitude and index
// 1 is latitude.
func GeodesicMiles(a, b orb.Point) float64 {
	return GeodesicMeters(a, b) / MetersPerMile
}

// GeodesicMeters solves the inverse geodesic problem on WGS-84.
func GeodesicMeters(a, b orb.Point) float64 {
	if a == b {
		return 0
	}
	var s12 float64
	geodesic.WGS84.Inverse(a.Lat(), a.Lon(), b.Lat(), b.Lon(), &s12, nil, nil)
	return s12
}

// GreatCircleDistance calculates the distance between two points in meters using the Haversine formula
func GreatCircleDistance(lon1, lat1, lon2, lat2 float64) float64 {
	return geo.DistanceHaversine(orb.Point{lon1, lat1}, orb.Point{lon2, lat2})
}
