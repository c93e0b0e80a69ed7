package service

import (
	"fmt"
	"math"

	"github.com/dennxbot/IMS-CICS-sub001/module/attendance/domain"
)

// CheckProximity reports whether point lies within target's radius. The
// boundary is inclusive.
func CheckProximity(point domain.Coordinate, target domain.GeofenceTarget) (domain.ProximityResult, error) {
	if err := point.Validate(); err != nil {
		return domain.ProximityResult{}, err
	}
	if err := target.Validate(); err != nil {
		return domain.ProximityResult{}, fmt.Errorf("geofence target: %w", err)
	}

	dist := Distance(point, target.Center)
	if dist <= target.RadiusMeters {
		return domain.ProximityResult{
			IsValid:  true,
			Distance: dist,
			Message:  fmt.Sprintf("Location verified. You are %dm from the company.", roundMeters(dist)),
		}, nil
	}

	return domain.ProximityResult{
		IsValid:  false,
		Distance: dist,
		Message: fmt.Sprintf(
			"You are %dm away from the company. You must be within %dm to clock in. Please move closer to the company location.",
			roundMeters(dist), roundMeters(target.RadiusMeters),
		),
	}, nil
}

// roundMeters rounds half away from zero.
func roundMeters(m float64) int64 {
	return int64(math.Round(m))
}
