package domain

import (
	"math"
	"time"
)

// LocationReading is a raw fix as reported by a device positioning API.
// Optional fields are nil when the device did not supply them.
type LocationReading struct {
	Coordinate
	Accuracy         *float64 `json:"accuracy"`
	Altitude         *float64 `json:"altitude"`
	AltitudeAccuracy *float64 `json:"altitude_accuracy"`
	Heading          *float64 `json:"heading"`
	Speed            *float64 `json:"speed"`
	// Timestamp is the device-reported capture time in epoch milliseconds.
	Timestamp int64 `json:"timestamp"`
}

func (r *LocationReading) Validate() error {
	if err := r.Coordinate.Validate(); err != nil {
		return err
	}
	optional := []struct {
		name string
		v    *float64
	}{
		{"accuracy", r.Accuracy},
		{"altitude", r.Altitude},
		{"altitude_accuracy", r.AltitudeAccuracy},
		{"heading", r.Heading},
		{"speed", r.Speed},
	}
	for _, f := range optional {
		if f.v != nil && (math.IsNaN(*f.v) || math.IsInf(*f.v, 0)) {
			return NewValidationError(f.name, "must be a finite number")
		}
	}
	if r.Accuracy != nil && *r.Accuracy < 0 {
		return NewValidationError("accuracy", "must not be negative")
	}
	if r.Speed != nil && *r.Speed < 0 {
		return NewValidationError("speed", "must not be negative")
	}
	if r.Heading != nil && (*r.Heading < 0 || *r.Heading > 360) {
		return NewValidationError("heading", "must be between 0 and 360")
	}
	return nil
}

// Time returns the device timestamp as a time.Time.
func (r *LocationReading) Time() time.Time {
	return time.UnixMilli(r.Timestamp)
}

// StoredReading is a reading as persisted in the location history.
type StoredReading struct {
	StudentID   string          `json:"student_id"`
	TimesheetID *string         `json:"timesheet_id,omitempty"`
	Reading     LocationReading `json:"reading"`
	H3Cell      int64           `json:"h3_cell"`
	RecordedAt  time.Time       `json:"recorded_at"`
}

type HistoryQuery struct {
	StudentID string
	Start     time.Time
	End       time.Time
}

// Float is a convenience for building optional reading fields.
func Float(v float64) *float64 {
	return &v
}
