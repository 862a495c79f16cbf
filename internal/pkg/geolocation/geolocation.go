package geolocation

import "math"

const earthRadiusKm = 6371.0

// CalculateDistance returns the great-circle distance in meters between two
// coordinates given in degrees, using the haversine formula.
func CalculateDistance(lat1, lon1, lat2, lon2 float64) float64 {
	φ1 := lat1 * math.Pi / 180.0
	φ2 := lat2 * math.Pi / 180.0
	Δφ := (lat2 - lat1) * math.Pi / 180.0
	Δλ := (lon2 - lon1) * math.Pi / 180.0

	a := math.Sin(Δφ/2)*math.Sin(Δφ/2) + math.Cos(φ1)*math.Cos(φ2)*math.Sin(Δλ/2)*math.Sin(Δλ/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c * 1000
}

// IsWithinGeofence reports whether the point is within radiusMeters of the
// office location. The comparison is boundary-exact: a point at exactly the
// radius is inside.
func IsWithinGeofence(lat, lon, officeLat, officeLon, radiusMeters float64) bool {
	return CalculateDistance(lat, lon, officeLat, officeLon) <= radiusMeters
}
