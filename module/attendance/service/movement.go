package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/dennxbot/IMS-CICS-sub001/module/attendance/domain"
)

// MovementConfig holds the implied-speed thresholds, both in m/s.
type MovementConfig struct {
	// ImpossibleSpeed is an upper bound even for aircraft (~1000 km/h).
	ImpossibleSpeed float64
	// SuspiciousSpeed is ~300 km/h.
	SuspiciousSpeed float64
}

var DefaultMovementConfig = MovementConfig{
	ImpossibleSpeed: 278,
	SuspiciousSpeed: 83,
}

// minTimeDeltaMs replaces non-positive gaps between readings so the implied
// speed stays finite.
const minTimeDeltaMs = 1

// MovementChecker augments the spoofing verdict for a reading with a
// movement-plausibility check against the student's previous reading.
type MovementChecker interface {
	CheckMovement(ctx context.Context, req domain.MovementRequest) (domain.VerificationResult, error)
}

// MovementAnalyzer compares two readings. It holds no state.
type MovementAnalyzer struct {
	spoofing *SpoofingDetector
	cfg      MovementConfig
}

func NewMovementAnalyzer(spoofing *SpoofingDetector, cfg MovementConfig) *MovementAnalyzer {
	return &MovementAnalyzer{spoofing: spoofing, cfg: cfg}
}

// Analyze returns the spoofing verdict for current, extended with a movement
// analysis when previous is non-nil.
func (a *MovementAnalyzer) Analyze(current domain.LocationReading, previous *domain.LocationReading) (domain.VerificationResult, error) {
	if err := current.Validate(); err != nil {
		return domain.VerificationResult{}, err
	}
	if previous != nil {
		if err := previous.Validate(); err != nil {
			return domain.VerificationResult{}, fmt.Errorf("previous reading: %w", err)
		}
	}
	return a.analyze(&current, previous), nil
}

func (a *MovementAnalyzer) analyze(current, previous *domain.LocationReading) domain.VerificationResult {
	res := a.spoofing.detect(current)
	if previous == nil {
		return res
	}

	delta := current.Timestamp - previous.Timestamp
	if delta <= 0 {
		delta = minTimeDeltaMs
	}
	dist := Distance(previous.Coordinate, current.Coordinate)
	speedMs := dist / (float64(delta) / 1000)
	speedKmh := speedMs * 3.6

	res.MovementAnalysis = &domain.MovementAnalysis{
		DistanceMeters:   math.Round(dist),
		TimeDeltaMs:      delta,
		RequiredSpeedKmh: math.Round(speedKmh*10) / 10,
		IsPossible:       speedMs <= a.cfg.ImpossibleSpeed,
	}

	switch {
	case speedMs > a.cfg.ImpossibleSpeed:
		// A single impossible jump outweighs the indicator count.
		res.Indicators = append(res.Indicators, fmt.Sprintf(
			"Impossible movement: %dm in %.1fs would require %.1f km/h",
			roundMeters(dist), float64(delta)/1000, speedKmh,
		))
		res.IsValid = false
		res.Confidence = domain.ConfidenceLow
		res.Message = "Impossible movement detected. Your location changed faster than any vehicle can travel."
	case speedMs > a.cfg.SuspiciousSpeed:
		wasValid := res.IsValid
		res.Indicators = append(res.Indicators, fmt.Sprintf(
			"Suspicious movement: %dm in %.1fs (%.1f km/h)",
			roundMeters(dist), float64(delta)/1000, speedKmh,
		))
		res.Confidence = domain.ConfidenceFor(len(res.Indicators))
		if wasValid {
			res.Message = "Unusually fast movement detected since your last location"
		} else {
			res.Message = messageFor(res.Confidence, res.Indicators)
		}
	}
	return res
}

// ClientMovementChecker trusts the previous reading supplied with the request.
type ClientMovementChecker struct {
	analyzer *MovementAnalyzer
}

var _ MovementChecker = (*ClientMovementChecker)(nil)

func NewClientMovementChecker(analyzer *MovementAnalyzer) *ClientMovementChecker {
	return &ClientMovementChecker{analyzer: analyzer}
}

func (c *ClientMovementChecker) CheckMovement(_ context.Context, req domain.MovementRequest) (domain.VerificationResult, error) {
	return c.analyzer.Analyze(req.Current, req.Previous)
}

type lastReadingStore interface {
	GetLastReading(ctx context.Context, studentID string) (*domain.LocationReading, error)
}

// StoreMovementChecker ignores any client-supplied previous reading and
// compares against the last reading in the location history.
//
// A failed history lookup fails open: the reading is judged on the spoofing
// heuristics alone and the result carries HistoryUnavailable. While the store
// is down the movement check is effectively disabled.
type StoreMovementChecker struct {
	analyzer *MovementAnalyzer
	history  lastReadingStore
	log      *slog.Logger
}

var _ MovementChecker = (*StoreMovementChecker)(nil)

func NewStoreMovementChecker(analyzer *MovementAnalyzer, history lastReadingStore, log *slog.Logger) *StoreMovementChecker {
	return &StoreMovementChecker{analyzer: analyzer, history: history, log: log}
}

func (c *StoreMovementChecker) CheckMovement(ctx context.Context, req domain.MovementRequest) (domain.VerificationResult, error) {
	if req.StudentID == "" {
		return domain.VerificationResult{}, domain.NewValidationError("student_id", "required")
	}
	if err := req.Current.Validate(); err != nil {
		return domain.VerificationResult{}, err
	}

	previous, err := c.history.GetLastReading(ctx, req.StudentID)
	if err != nil {
		c.log.WarnContext(ctx, "location history unavailable, movement check skipped",
			"student_id", req.StudentID, "error", err)
		res := c.analyzer.spoofing.detect(&req.Current)
		res.MovementAnalysis = &domain.MovementAnalysis{IsPossible: true, HistoryUnavailable: true}
		return res, nil
	}
	return c.analyzer.analyze(&req.Current, previous), nil
}
