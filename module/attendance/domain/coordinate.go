package domain

import (
	"fmt"
	"math"
)

// Coordinate is a WGS-84 point in decimal degrees.
type Coordinate struct {
	Lat float64 `json:"latitude"`
	Lon float64 `json:"longitude"`
}

func (c Coordinate) Validate() error {
	if math.IsNaN(c.Lat) || math.IsInf(c.Lat, 0) {
		return NewValidationError("latitude", "must be a finite number")
	}
	if math.IsNaN(c.Lon) || math.IsInf(c.Lon, 0) {
		return NewValidationError("longitude", "must be a finite number")
	}
	if c.Lat < -90 || c.Lat > 90 {
		return NewValidationError("latitude", "must be between -90 and 90")
	}
	if c.Lon < -180 || c.Lon > 180 {
		return NewValidationError("longitude", "must be between -180 and 180")
	}
	return nil
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(%f, %f)", c.Lat, c.Lon)
}
