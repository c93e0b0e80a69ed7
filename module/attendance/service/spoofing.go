package service

import (
	"fmt"
	"time"

	"github.com/dennxbot/IMS-CICS-sub001/module/attendance/domain"
)

// SpoofingConfig holds the thresholds for single-reading heuristics.
type SpoofingConfig struct {
	// MaxAge is how old a reading may be before its timestamp is considered stale.
	MaxAge time.Duration
	// MaxFutureSkew is how far ahead of the server clock a reading may be stamped.
	MaxFutureSkew time.Duration
	// MinAccuracy in meters. Consumer GPS does not report better than this.
	MinAccuracy float64
	// MaxReportedSpeed in m/s.
	MaxReportedSpeed float64
}

var DefaultSpoofingConfig = SpoofingConfig{
	MaxAge:           30 * time.Second,
	MaxFutureSkew:    5 * time.Second,
	MinAccuracy:      1,
	MaxReportedSpeed: 50,
}

type SpoofingDetector struct {
	cfg SpoofingConfig
	now func() time.Time
}

func NewSpoofingDetector(cfg SpoofingConfig) *SpoofingDetector {
	return &SpoofingDetector{cfg: cfg, now: time.Now}
}

// WithClock returns a copy of d that reads the current time from now.
func (d *SpoofingDetector) WithClock(now func() time.Time) *SpoofingDetector {
	return &SpoofingDetector{cfg: d.cfg, now: now}
}

// Detect runs every heuristic against a single reading. All rules are
// evaluated; each one that fires adds an indicator.
func (d *SpoofingDetector) Detect(reading domain.LocationReading) (domain.VerificationResult, error) {
	if err := reading.Validate(); err != nil {
		return domain.VerificationResult{}, err
	}
	return d.detect(&reading), nil
}

func (d *SpoofingDetector) detect(r *domain.LocationReading) domain.VerificationResult {
	indicators := []string{}

	age := d.now().UnixMilli() - r.Timestamp
	switch {
	case age > d.cfg.MaxAge.Milliseconds():
		indicators = append(indicators, fmt.Sprintf("Location timestamp is stale (%.1fs old)", float64(age)/1000))
	case age < -d.cfg.MaxFutureSkew.Milliseconds():
		indicators = append(indicators, fmt.Sprintf("Location timestamp is %.1fs in the future", float64(-age)/1000))
	}

	if r.Accuracy != nil && *r.Accuracy < d.cfg.MinAccuracy {
		indicators = append(indicators, fmt.Sprintf("Suspiciously precise accuracy (%.2fm)", *r.Accuracy))
	}

	if r.Altitude == nil && r.AltitudeAccuracy != nil {
		indicators = append(indicators, "Altitude accuracy reported without an altitude")
	}

	if r.Speed != nil && *r.Speed > d.cfg.MaxReportedSpeed {
		indicators = append(indicators, fmt.Sprintf("Reported speed is implausible (%.1f m/s)", *r.Speed))
	}

	if r.Speed != nil && *r.Speed == 0 && r.Heading != nil {
		indicators = append(indicators, "Heading reported while stationary")
	}

	return newVerificationResult(indicators)
}

func newVerificationResult(indicators []string) domain.VerificationResult {
	conf := domain.ConfidenceFor(len(indicators))
	return domain.VerificationResult{
		IsValid:    len(indicators) == 0,
		Confidence: conf,
		Indicators: indicators,
		Message:    messageFor(conf, indicators),
	}
}

// messageFor is the student-facing message for a confidence level.
func messageFor(conf domain.Confidence, indicators []string) string {
	switch conf {
	case domain.ConfidenceHigh:
		return "Location verified"
	case domain.ConfidenceMedium:
		return "Location could not be fully verified: " + indicators[0]
	default:
		return "Location appears to be spoofed. Disable any mock location apps and try again."
	}
}
