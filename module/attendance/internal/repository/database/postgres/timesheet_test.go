package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"github.com/dennxbot/IMS-CICS-sub001/module/attendance/domain"
)

func newTimesheet() *domain.Timesheet {
	return &domain.Timesheet{
		ID:                "ts-1",
		StudentID:         "student-1",
		CompanyID:         "company-1",
		ClockInAt:         time.Unix(1715003456, 0),
		ClockInLocation:   domain.Coordinate{Lat: -6.2088, Lon: 106.8456},
		ClockInConfidence: domain.ConfidenceHigh,
	}
}

func TestOpen_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db.Close() }()

	ts := newTimesheet()
	mock.ExpectExec(`INSERT INTO timesheets`).
		WithArgs("ts-1", "student-1", "company-1", ts.ClockInAt, -6.2088, 106.8456, "high").
		WillReturnResult(sqlmock.NewResult(1, 1))

	repo := NewTimesheetRepo(db)
	if err := repo.Open(context.Background(), ts); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestOpen_AlreadyClockedIn(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"lib/pq", &pq.Error{Code: "23505"}},
		{"pgx", &pgconn.PgError{Code: "23505"}},
		{"wrapped", fmt.Errorf("exec: %w", &pgconn.PgError{Code: "23505"})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			if err != nil {
				t.Fatal(err)
			}
			defer func() { _ = db.Close() }()

			mock.ExpectExec(`INSERT INTO timesheets`).WillReturnError(tt.err)

			repo := NewTimesheetRepo(db)
			err = repo.Open(context.Background(), newTimesheet())
			if !errors.Is(err, domain.ErrAlreadyClockedIn) {
				t.Fatalf("expected ErrAlreadyClockedIn, got %v", err)
			}
		})
	}
}

func TestOpen_OtherError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db.Close() }()

	mock.ExpectExec(`INSERT INTO timesheets`).WillReturnError(&pq.Error{Code: "23503"})

	repo := NewTimesheetRepo(db)
	err = repo.Open(context.Background(), newTimesheet())
	if err == nil || errors.Is(err, domain.ErrAlreadyClockedIn) {
		t.Fatalf("expected foreign key error, got %v", err)
	}
}

func TestClose_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db.Close() }()

	clockIn := time.Unix(1715003456, 0)
	clockOut := time.Unix(1715032256, 0)
	rows := sqlmock.NewRows([]string{"id", "company_id", "clock_in_at", "clock_in_latitude", "clock_in_longitude", "clock_in_confidence"}).
		AddRow("ts-1", "company-1", clockIn, -6.2088, 106.8456, "medium")

	mock.ExpectQuery(`UPDATE timesheets SET (.+) WHERE student_id = (.+) AND clock_out_at IS NULL RETURNING (.+)`).
		WithArgs("student-1", clockOut, -6.2089, 106.8457, "high").
		WillReturnRows(rows)

	repo := NewTimesheetRepo(db)
	ts, err := repo.Close(context.Background(), "student-1", clockOut, domain.Coordinate{Lat: -6.2089, Lon: 106.8457}, domain.ConfidenceHigh)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ts.ID != "ts-1" {
		t.Errorf("expected ts-1, got %s", ts.ID)
	}
	if ts.ClockInConfidence != domain.ConfidenceMedium {
		t.Errorf("expected medium, got %s", ts.ClockInConfidence)
	}
	if ts.ClockOutAt == nil || !ts.ClockOutAt.Equal(clockOut) {
		t.Errorf("expected clock out %v, got %v", clockOut, ts.ClockOutAt)
	}
	if ts.ClockOutConfidence == nil || *ts.ClockOutConfidence != domain.ConfidenceHigh {
		t.Errorf("expected clock out confidence high, got %v", ts.ClockOutConfidence)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestClose_NotClockedIn(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(`UPDATE timesheets`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "company_id", "clock_in_at", "clock_in_latitude", "clock_in_longitude", "clock_in_confidence"}))

	repo := NewTimesheetRepo(db)
	_, err = repo.Close(context.Background(), "student-1", time.Unix(1715032256, 0), domain.Coordinate{}, domain.ConfidenceHigh)
	if !errors.Is(err, domain.ErrNotClockedIn) {
		t.Fatalf("expected ErrNotClockedIn, got %v", err)
	}
}
