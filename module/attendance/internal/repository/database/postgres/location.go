package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dennxbot/IMS-CICS-sub001/module/attendance/domain"
	"github.com/dennxbot/IMS-CICS-sub001/module/attendance/internal/repository/database"
)

var _ database.LocationRepository = (*LocationRepo)(nil)

const locationColumns = `student_id, timesheet_id, latitude, longitude, accuracy, altitude, altitude_accuracy, heading, speed, device_timestamp, h3_cell, recorded_at`

type LocationRepo struct {
	db *sql.DB
}

func NewLocationRepo(db *sql.DB) *LocationRepo {
	return &LocationRepo{db: db}
}

func (r *LocationRepo) Insert(ctx context.Context, sr *domain.StoredReading) error {
	rd := sr.Reading
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO student_locations (`+locationColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		sr.StudentID, sr.TimesheetID, rd.Lat, rd.Lon, rd.Accuracy, rd.Altitude, rd.AltitudeAccuracy, rd.Heading, rd.Speed,
		rd.Timestamp, sr.H3Cell, sr.RecordedAt,
	)
	return err
}

func (r *LocationRepo) GetLatest(ctx context.Context, studentID string) (*domain.StoredReading, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+locationColumns+` FROM student_locations WHERE student_id = $1 ORDER BY recorded_at DESC, id DESC LIMIT 1`,
		studentID,
	)

	sr, err := scanReading(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNoHistory
	}
	if err != nil {
		return nil, err
	}
	return sr, nil
}

func (r *LocationRepo) GetHistory(ctx context.Context, query *domain.HistoryQuery) ([]domain.StoredReading, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+locationColumns+` FROM student_locations WHERE student_id = $1 AND recorded_at >= $2 AND recorded_at <= $3 ORDER BY recorded_at ASC, id ASC`,
		query.StudentID, query.Start, query.End,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var results []domain.StoredReading
	for rows.Next() {
		sr, err := scanReading(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *sr)
	}
	return results, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanReading(s scanner) (*domain.StoredReading, error) {
	var (
		sr                                              domain.StoredReading
		timesheetID                                     sql.NullString
		accuracy, altitude, altAccuracy, heading, speed sql.NullFloat64
	)
	err := s.Scan(
		&sr.StudentID, &timesheetID,
		&sr.Reading.Lat, &sr.Reading.Lon,
		&accuracy, &altitude, &altAccuracy, &heading, &speed,
		&sr.Reading.Timestamp, &sr.H3Cell, &sr.RecordedAt,
	)
	if err != nil {
		return nil, err
	}

	if timesheetID.Valid {
		sr.TimesheetID = &timesheetID.String
	}
	sr.Reading.Accuracy = nullFloat(accuracy)
	sr.Reading.Altitude = nullFloat(altitude)
	sr.Reading.AltitudeAccuracy = nullFloat(altAccuracy)
	sr.Reading.Heading = nullFloat(heading)
	sr.Reading.Speed = nullFloat(speed)
	return &sr, nil
}

func nullFloat(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	v := n.Float64
	return &v
}
