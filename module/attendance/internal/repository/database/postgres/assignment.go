package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dennxbot/IMS-CICS-sub001/module/attendance/domain"
	"github.com/dennxbot/IMS-CICS-sub001/module/attendance/internal/repository/database"
)

var _ database.AssignmentRepository = (*AssignmentRepo)(nil)

type AssignmentRepo struct {
	db *sql.DB
}

func NewAssignmentRepo(db *sql.DB) *AssignmentRepo {
	return &AssignmentRepo{db: db}
}

func (r *AssignmentRepo) GetActive(ctx context.Context, studentID string) (*domain.Assignment, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT a.student_id, c.id, c.name, c.latitude, c.longitude, c.radius_meters FROM student_assignments a JOIN companies c ON c.id = a.company_id WHERE a.student_id = $1 AND a.status = 'active' LIMIT 1`,
		studentID,
	)

	var a domain.Assignment
	err := row.Scan(&a.StudentID, &a.CompanyID, &a.CompanyName, &a.Target.Center.Lat, &a.Target.Center.Lon, &a.Target.RadiusMeters)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNoActiveAssignment
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}
