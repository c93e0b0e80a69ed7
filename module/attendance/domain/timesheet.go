package domain

import "time"

type Timesheet struct {
	ID                 string      `json:"id"`
	StudentID          string      `json:"student_id"`
	CompanyID          string      `json:"company_id"`
	ClockInAt          time.Time   `json:"clock_in_at"`
	ClockOutAt         *time.Time  `json:"clock_out_at,omitempty"`
	ClockInLocation    Coordinate  `json:"clock_in_location"`
	ClockOutLocation   *Coordinate `json:"clock_out_location,omitempty"`
	ClockInConfidence  Confidence  `json:"clock_in_confidence"`
	ClockOutConfidence *Confidence `json:"clock_out_confidence,omitempty"`
}

// ClockRequest is what a device submits for a clock event. Previous is the
// last reading the client itself holds; server-side checks do not trust it.
type ClockRequest struct {
	Reading  LocationReading  `json:"reading"`
	Previous *LocationReading `json:"previous,omitempty"`
}

type ClockResult struct {
	Accepted     bool               `json:"accepted"`
	Verification VerificationResult `json:"verification"`
	Proximity    ProximityResult    `json:"proximity"`
	Assignment   Assignment         `json:"assignment"`
	Timesheet    *Timesheet         `json:"timesheet,omitempty"`
}

type AttendanceEventType string

const (
	EventClockIn       AttendanceEventType = "clock_in"
	EventClockOut      AttendanceEventType = "clock_out"
	EventClockRejected AttendanceEventType = "clock_rejected"
	EventPingRejected  AttendanceEventType = "ping_rejected"
)

type AttendanceEvent struct {
	Type        AttendanceEventType `json:"type"`
	StudentID   string              `json:"student_id"`
	CompanyID   string              `json:"company_id,omitempty"`
	TimesheetID string              `json:"timesheet_id,omitempty"`
	Location    Coordinate          `json:"location"`
	Confidence  Confidence          `json:"confidence"`
	Indicators  []string            `json:"indicators"`
	Message     string              `json:"message"`
	Distance    *float64            `json:"distance,omitempty"`
	Timestamp   int64               `json:"timestamp"`
}
