package database

import (
	"context"
	"time"

	"github.com/dennxbot/IMS-CICS-sub001/module/attendance/domain"
)

type LocationRepository interface {
	Insert(ctx context.Context, sr *domain.StoredReading) error
	// GetLatest returns domain.ErrNoHistory when the student has no readings.
	GetLatest(ctx context.Context, studentID string) (*domain.StoredReading, error)
	GetHistory(ctx context.Context, query *domain.HistoryQuery) ([]domain.StoredReading, error)
}

type TimesheetRepository interface {
	// Open returns domain.ErrAlreadyClockedIn when the student already has an open timesheet.
	Open(ctx context.Context, ts *domain.Timesheet) error
	// Close returns domain.ErrNotClockedIn when there is no open timesheet.
	Close(ctx context.Context, studentID string, at time.Time, loc domain.Coordinate, conf domain.Confidence) (*domain.Timesheet, error)
}

type AssignmentRepository interface {
	// GetActive returns domain.ErrNoActiveAssignment when the student has no placement.
	GetActive(ctx context.Context, studentID string) (*domain.Assignment, error)
}
