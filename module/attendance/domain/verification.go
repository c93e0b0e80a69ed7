package domain

type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// ConfidenceFor maps an indicator count onto a confidence level:
// none is high, one is medium, two or more is low.
func ConfidenceFor(indicators int) Confidence {
	switch {
	case indicators == 0:
		return ConfidenceHigh
	case indicators == 1:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

type MovementAnalysis struct {
	DistanceMeters   float64 `json:"distance_meters"`
	TimeDeltaMs      int64   `json:"time_delta_ms"`
	RequiredSpeedKmh float64 `json:"required_speed_kmh"`
	IsPossible       bool    `json:"is_possible"`
	// HistoryUnavailable is set when the previous reading could not be
	// fetched and the check was skipped.
	HistoryUnavailable bool `json:"history_unavailable,omitempty"`
}

type VerificationResult struct {
	IsValid          bool              `json:"is_valid"`
	Confidence       Confidence        `json:"confidence"`
	Indicators       []string          `json:"indicators"`
	Message          string            `json:"message"`
	MovementAnalysis *MovementAnalysis `json:"movement_analysis,omitempty"`
}

// MovementRequest carries a reading to check against the student's previous one.
// Previous is the client-held reading and may be nil.
type MovementRequest struct {
	StudentID string
	Current   LocationReading
	Previous  *LocationReading
}
