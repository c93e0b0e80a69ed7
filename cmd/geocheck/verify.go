package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dennxbot/IMS-CICS-sub001/module/attendance/domain"
	"github.com/dennxbot/IMS-CICS-sub001/module/attendance/service"
)

type verifyOutput struct {
	Accepted     bool                      `json:"accepted"`
	Verification domain.VerificationResult `json:"verification"`
	Proximity    *domain.ProximityResult   `json:"proximity,omitempty"`
}

func newVerifyCmd() *cobra.Command {
	var (
		readingPath  string
		previousPath string
		center       string
		radius       float64
		at           int64
	)

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "run spoofing, movement and geofence checks on a reading",
		RunE: func(cmd *cobra.Command, _ []string) error {
			current, err := readReading(readingPath)
			if err != nil {
				return err
			}

			var previous *domain.LocationReading
			if previousPath != "" {
				previous, err = readReading(previousPath)
				if err != nil {
					return err
				}
			}

			detector := service.NewSpoofingDetector(service.DefaultSpoofingConfig)
			if at > 0 {
				detector = detector.WithClock(func() time.Time { return time.UnixMilli(at) })
			}
			analyzer := service.NewMovementAnalyzer(detector, service.DefaultMovementConfig)

			verification, err := analyzer.Analyze(*current, previous)
			if err != nil {
				return err
			}
			out := verifyOutput{Accepted: verification.IsValid, Verification: verification}

			if center != "" {
				c, err := parseCenter(center)
				if err != nil {
					return err
				}
				prox, err := service.CheckProximity(current.Coordinate, domain.GeofenceTarget{Center: c, RadiusMeters: radius})
				if err != nil {
					return err
				}
				out.Proximity = &prox
				out.Accepted = out.Accepted && prox.IsValid
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}

	cmd.Flags().StringVar(&readingPath, "reading", "", "JSON file with the current reading")
	cmd.Flags().StringVar(&previousPath, "previous", "", "JSON file with the previous reading")
	cmd.Flags().StringVar(&center, "center", "", "geofence center as lat,lon")
	cmd.Flags().Float64Var(&radius, "radius", 100, "geofence radius in meters")
	cmd.Flags().Int64Var(&at, "at", 0, "evaluate as if now were this epoch-ms timestamp")
	_ = cmd.MarkFlagRequired("reading")

	return cmd
}

func readReading(path string) (*domain.LocationReading, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var r domain.LocationReading
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &r, nil
}

func parseCenter(s string) (domain.Coordinate, error) {
	lat, lon, ok := strings.Cut(s, ",")
	if !ok {
		return domain.Coordinate{}, fmt.Errorf("center: expected lat,lon, got %q", s)
	}
	la, err := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("center latitude: %w", err)
	}
	lo, err := strconv.ParseFloat(strings.TrimSpace(lon), 64)
	if err != nil {
		return domain.Coordinate{}, fmt.Errorf("center longitude: %w", err)
	}
	return domain.Coordinate{Lat: la, Lon: lo}, nil
}
