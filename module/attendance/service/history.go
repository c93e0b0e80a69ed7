package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/uber/h3-go/v4"

	"github.com/dennxbot/IMS-CICS-sub001/module/attendance/domain"
	"github.com/dennxbot/IMS-CICS-sub001/module/attendance/internal/repository/database"
)

const DefaultH3Resolution = 9

type LocationHistoryService struct {
	repo         database.LocationRepository
	h3Resolution int
	now          func() time.Time
}

func NewLocationHistoryService(repo database.LocationRepository, h3Resolution int) *LocationHistoryService {
	return &LocationHistoryService{repo: repo, h3Resolution: h3Resolution, now: time.Now}
}

// Append stores the reading verbatim, tagged with its H3 cell.
func (s *LocationHistoryService) Append(ctx context.Context, studentID string, reading domain.LocationReading, timesheetID *string) error {
	cell, err := h3.LatLngToCell(h3.NewLatLng(reading.Lat, reading.Lon), s.h3Resolution)
	if err != nil {
		return fmt.Errorf("h3 cell: %w", err)
	}

	return s.repo.Insert(ctx, &domain.StoredReading{
		StudentID:   studentID,
		TimesheetID: timesheetID,
		Reading:     reading,
		H3Cell:      int64(cell),
		RecordedAt:  s.now().UTC(),
	})
}

// GetLastReading returns nil without error when the student has no history.
func (s *LocationHistoryService) GetLastReading(ctx context.Context, studentID string) (*domain.LocationReading, error) {
	sr, err := s.repo.GetLatest(ctx, studentID)
	if errors.Is(err, domain.ErrNoHistory) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sr.Reading, nil
}

func (s *LocationHistoryService) GetLatest(ctx context.Context, studentID string) (*domain.StoredReading, error) {
	return s.repo.GetLatest(ctx, studentID)
}

func (s *LocationHistoryService) GetHistory(ctx context.Context, query *domain.HistoryQuery) ([]domain.StoredReading, error) {
	return s.repo.GetHistory(ctx, query)
}
