package service

import (
	"math"

	"github.com/dennxbot/IMS-CICS-sub001/module/attendance/domain"
)

const earthRadiusMeters = 6371000

// Distance returns the great-circle distance in meters between a and b.
// Inputs are not range checked: a NaN coordinate yields NaN.
func Distance(a, b domain.Coordinate) float64 {
	return haversine(a.Lat, a.Lon, b.Lat, b.Lon)
}

func haversine(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadiusMeters * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
