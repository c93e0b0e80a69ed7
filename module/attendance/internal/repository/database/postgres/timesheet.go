package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/dennxbot/IMS-CICS-sub001/module/attendance/domain"
	"github.com/dennxbot/IMS-CICS-sub001/module/attendance/internal/repository/database"
)

var _ database.TimesheetRepository = (*TimesheetRepo)(nil)

type TimesheetRepo struct {
	db *sql.DB
}

func NewTimesheetRepo(db *sql.DB) *TimesheetRepo {
	return &TimesheetRepo{db: db}
}

func (r *TimesheetRepo) Open(ctx context.Context, ts *domain.Timesheet) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO timesheets (id, student_id, company_id, clock_in_at, clock_in_latitude, clock_in_longitude, clock_in_confidence) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		ts.ID, ts.StudentID, ts.CompanyID, ts.ClockInAt, ts.ClockInLocation.Lat, ts.ClockInLocation.Lon, string(ts.ClockInConfidence),
	)
	if isUniqueViolation(err) {
		return domain.ErrAlreadyClockedIn
	}
	return err
}

func (r *TimesheetRepo) Close(ctx context.Context, studentID string, at time.Time, loc domain.Coordinate, conf domain.Confidence) (*domain.Timesheet, error) {
	row := r.db.QueryRowContext(ctx,
		`UPDATE timesheets SET clock_out_at = $2, clock_out_latitude = $3, clock_out_longitude = $4, clock_out_confidence = $5 WHERE student_id = $1 AND clock_out_at IS NULL RETURNING id, company_id, clock_in_at, clock_in_latitude, clock_in_longitude, clock_in_confidence`,
		studentID, at, loc.Lat, loc.Lon, string(conf),
	)

	ts := domain.Timesheet{StudentID: studentID}
	var inConf string
	err := row.Scan(&ts.ID, &ts.CompanyID, &ts.ClockInAt, &ts.ClockInLocation.Lat, &ts.ClockInLocation.Lon, &inConf)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotClockedIn
	}
	if err != nil {
		return nil, err
	}

	ts.ClockInConfidence = domain.Confidence(inConf)
	ts.ClockOutAt = &at
	ts.ClockOutLocation = &loc
	ts.ClockOutConfidence = &conf
	return &ts, nil
}
