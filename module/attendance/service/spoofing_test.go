package service

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dennxbot/IMS-CICS-sub001/module/attendance/domain"
)

const nowMs int64 = 1715003456000

func fixedClock() time.Time { return time.UnixMilli(nowMs) }

func newTestDetector() *SpoofingDetector {
	return NewSpoofingDetector(DefaultSpoofingConfig).WithClock(fixedClock)
}

func freshReading() domain.LocationReading {
	return domain.LocationReading{
		Coordinate: office,
		Accuracy:   domain.Float(12),
		Timestamp:  nowMs - 1000,
	}
}

func TestDetect_CleanReading(t *testing.T) {
	r := domain.LocationReading{
		Coordinate:       office,
		Accuracy:         domain.Float(10),
		Altitude:         domain.Float(50),
		AltitudeAccuracy: domain.Float(5),
		Heading:          nil,
		Speed:            domain.Float(0),
		Timestamp:        nowMs,
	}

	res, err := newTestDetector().Detect(r)
	require.NoError(t, err)

	want := domain.VerificationResult{
		IsValid:    true,
		Confidence: domain.ConfidenceHigh,
		Indicators: []string{},
		Message:    "Location verified",
	}
	if diff := cmp.Diff(want, res); diff != "" {
		t.Errorf("Detect() mismatch (-want +got):\n%s", diff)
	}
}

func TestDetect_SingleRule(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(r *domain.LocationReading)
		indicator string
	}{
		{
			name:      "stale timestamp",
			mutate:    func(r *domain.LocationReading) { r.Timestamp = nowMs - 60000 },
			indicator: "Location timestamp is stale (60.0s old)",
		},
		{
			name:      "future timestamp",
			mutate:    func(r *domain.LocationReading) { r.Timestamp = nowMs + 10000 },
			indicator: "Location timestamp is 10.0s in the future",
		},
		{
			name:      "sub-meter accuracy",
			mutate:    func(r *domain.LocationReading) { r.Accuracy = domain.Float(0.5) },
			indicator: "Suspiciously precise accuracy (0.50m)",
		},
		{
			name:      "altitude accuracy without altitude",
			mutate:    func(r *domain.LocationReading) { r.AltitudeAccuracy = domain.Float(3) },
			indicator: "Altitude accuracy reported without an altitude",
		},
		{
			name:      "reported speed too high",
			mutate:    func(r *domain.LocationReading) { r.Speed = domain.Float(60) },
			indicator: "Reported speed is implausible (60.0 m/s)",
		},
		{
			name: "heading while stationary",
			mutate: func(r *domain.LocationReading) {
				r.Speed = domain.Float(0)
				r.Heading = domain.Float(90)
			},
			indicator: "Heading reported while stationary",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := freshReading()
			tt.mutate(&r)

			res, err := newTestDetector().Detect(r)
			require.NoError(t, err)

			assert.False(t, res.IsValid)
			assert.Equal(t, domain.ConfidenceMedium, res.Confidence)
			assert.Equal(t, []string{tt.indicator}, res.Indicators)
			assert.Equal(t, "Location could not be fully verified: "+tt.indicator, res.Message)
			assert.Nil(t, res.MovementAnalysis)
		})
	}
}

func TestDetect_Thresholds(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *domain.LocationReading)
	}{
		{"exactly max age", func(r *domain.LocationReading) { r.Timestamp = nowMs - 30000 }},
		{"exactly max future skew", func(r *domain.LocationReading) { r.Timestamp = nowMs + 5000 }},
		{"accuracy of one meter", func(r *domain.LocationReading) { r.Accuracy = domain.Float(1) }},
		{"speed at limit", func(r *domain.LocationReading) { r.Speed = domain.Float(50) }},
		{"altitude with accuracy", func(r *domain.LocationReading) {
			r.Altitude = domain.Float(12)
			r.AltitudeAccuracy = domain.Float(3)
		}},
		{"moving with heading", func(r *domain.LocationReading) {
			r.Speed = domain.Float(1.4)
			r.Heading = domain.Float(180)
		}},
		{"stationary without heading", func(r *domain.LocationReading) { r.Speed = domain.Float(0) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := freshReading()
			tt.mutate(&r)

			res, err := newTestDetector().Detect(r)
			require.NoError(t, err)
			assert.True(t, res.IsValid, "unexpected indicators: %v", res.Indicators)
			assert.Equal(t, domain.ConfidenceHigh, res.Confidence)
		})
	}
}

func TestDetect_AllRulesEvaluated(t *testing.T) {
	r := domain.LocationReading{
		Coordinate:       office,
		Accuracy:         domain.Float(0.2),
		AltitudeAccuracy: domain.Float(5),
		Speed:            domain.Float(75),
		Timestamp:        nowMs - 120000,
	}

	res, err := newTestDetector().Detect(r)
	require.NoError(t, err)

	assert.False(t, res.IsValid)
	assert.Equal(t, domain.ConfidenceLow, res.Confidence)
	assert.Len(t, res.Indicators, 4)
	assert.Equal(t, "Location appears to be spoofed. Disable any mock location apps and try again.", res.Message)
}

func TestDetect_InvalidReading(t *testing.T) {
	r := freshReading()
	r.Accuracy = domain.Float(-1)

	_, err := newTestDetector().Detect(r)
	require.Error(t, err)

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "accuracy", verr.Field)
}
