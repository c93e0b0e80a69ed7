package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/dennxbot/IMS-CICS-sub001/module/attendance/domain"
	"github.com/dennxbot/IMS-CICS-sub001/module/attendance/internal/repository/database"
	"github.com/dennxbot/IMS-CICS-sub001/module/attendance/internal/repository/publisher"
)

type historyAppender interface {
	Append(ctx context.Context, studentID string, reading domain.LocationReading, timesheetID *string) error
}

// AttendanceService runs the verification pipeline for clock events and
// records the accepted ones.
type AttendanceService struct {
	assignments database.AssignmentRepository
	timesheets  database.TimesheetRepository
	history     historyAppender
	movement    MovementChecker
	publisher   publisher.AttendancePublisher
	log         *slog.Logger
	now         func() time.Time
	newID       func() string
}

func NewAttendanceService(
	assignments database.AssignmentRepository,
	timesheets database.TimesheetRepository,
	history historyAppender,
	movement MovementChecker,
	pub publisher.AttendancePublisher,
	log *slog.Logger,
) *AttendanceService {
	return &AttendanceService{
		assignments: assignments,
		timesheets:  timesheets,
		history:     history,
		movement:    movement,
		publisher:   pub,
		log:         log,
		now:         time.Now,
		newID:       uuid.NewString,
	}
}

// Verify runs the full pipeline without writing anything.
func (s *AttendanceService) Verify(ctx context.Context, studentID string, req *domain.ClockRequest) (*domain.ClockResult, error) {
	if studentID == "" {
		return nil, domain.NewValidationError("student_id", "required")
	}
	if err := req.Reading.Validate(); err != nil {
		return nil, err
	}

	assignment, err := s.assignments.GetActive(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("active assignment: %w", err)
	}

	verification, err := s.movement.CheckMovement(ctx, domain.MovementRequest{
		StudentID: studentID,
		Current:   req.Reading,
		Previous:  req.Previous,
	})
	if err != nil {
		return nil, fmt.Errorf("movement check: %w", err)
	}

	proximity, err := CheckProximity(req.Reading.Coordinate, assignment.Target)
	if err != nil {
		return nil, fmt.Errorf("proximity check: %w", err)
	}

	return &domain.ClockResult{
		Accepted:     verification.IsValid && proximity.IsValid,
		Verification: verification,
		Proximity:    proximity,
		Assignment:   *assignment,
	}, nil
}

func (s *AttendanceService) ClockIn(ctx context.Context, studentID string, req *domain.ClockRequest) (*domain.ClockResult, error) {
	res, err := s.Verify(ctx, studentID, req)
	if err != nil {
		return nil, err
	}
	if !res.Accepted {
		s.reject(ctx, studentID, req, res)
		return res, nil
	}

	ts := &domain.Timesheet{
		ID:                s.newID(),
		StudentID:         studentID,
		CompanyID:         res.Assignment.CompanyID,
		ClockInAt:         s.now().UTC(),
		ClockInLocation:   req.Reading.Coordinate,
		ClockInConfidence: res.Verification.Confidence,
	}
	if err := s.timesheets.Open(ctx, ts); err != nil {
		return nil, fmt.Errorf("open timesheet: %w", err)
	}
	res.Timesheet = ts

	s.record(ctx, domain.EventClockIn, studentID, req, res)
	return res, nil
}

func (s *AttendanceService) ClockOut(ctx context.Context, studentID string, req *domain.ClockRequest) (*domain.ClockResult, error) {
	res, err := s.Verify(ctx, studentID, req)
	if err != nil {
		return nil, err
	}
	if !res.Accepted {
		s.reject(ctx, studentID, req, res)
		return res, nil
	}

	ts, err := s.timesheets.Close(ctx, studentID, s.now().UTC(), req.Reading.Coordinate, res.Verification.Confidence)
	if err != nil {
		return nil, fmt.Errorf("close timesheet: %w", err)
	}
	res.Timesheet = ts

	s.record(ctx, domain.EventClockOut, studentID, req, res)
	return res, nil
}

// record appends the reading to history and publishes the event. Neither
// failure affects the clock event, which is already committed.
func (s *AttendanceService) record(ctx context.Context, typ domain.AttendanceEventType, studentID string, req *domain.ClockRequest, res *domain.ClockResult) {
	timesheetID := res.Timesheet.ID
	if err := s.history.Append(ctx, studentID, req.Reading, &timesheetID); err != nil {
		s.log.ErrorContext(ctx, "append location history failed",
			"student_id", studentID, "timesheet_id", timesheetID, "error", err)
	}

	s.publish(ctx, newEvent(typ, studentID, req, res))
	s.log.InfoContext(ctx, "clock event recorded",
		"event", typ, "student_id", studentID, "timesheet_id", timesheetID,
		"confidence", res.Verification.Confidence)
}

func (s *AttendanceService) reject(ctx context.Context, studentID string, req *domain.ClockRequest, res *domain.ClockResult) {
	s.log.InfoContext(ctx, "clock event rejected",
		"student_id", studentID,
		"location_valid", res.Verification.IsValid,
		"within_geofence", res.Proximity.IsValid,
		"indicators", res.Verification.Indicators)
	s.publish(ctx, newEvent(domain.EventClockRejected, studentID, req, res))
}

func (s *AttendanceService) publish(ctx context.Context, event *domain.AttendanceEvent) {
	if err := s.publisher.PublishEvent(ctx, event); err != nil {
		s.log.ErrorContext(ctx, "publish attendance event failed",
			"event", event.Type, "student_id", event.StudentID, "error", err)
	}
}

func newEvent(typ domain.AttendanceEventType, studentID string, req *domain.ClockRequest, res *domain.ClockResult) *domain.AttendanceEvent {
	dist := math.Round(res.Proximity.Distance)
	event := &domain.AttendanceEvent{
		Type:       typ,
		StudentID:  studentID,
		CompanyID:  res.Assignment.CompanyID,
		Location:   req.Reading.Coordinate,
		Confidence: res.Verification.Confidence,
		Indicators: res.Verification.Indicators,
		Message:    res.Verification.Message,
		Distance:   &dist,
		Timestamp:  req.Reading.Timestamp,
	}
	if !res.Proximity.IsValid {
		event.Message = res.Proximity.Message
	}
	if res.Timesheet != nil {
		event.TimesheetID = res.Timesheet.ID
	}
	return event
}

// RecordPing checks a background location ping and appends it to the
// student's history when it passes. Rejected pings are published, not stored.
func (s *AttendanceService) RecordPing(ctx context.Context, studentID string, reading domain.LocationReading) (*domain.VerificationResult, error) {
	res, err := s.movement.CheckMovement(ctx, domain.MovementRequest{
		StudentID: studentID,
		Current:   reading,
	})
	if err != nil {
		return nil, fmt.Errorf("movement check: %w", err)
	}

	if !res.IsValid {
		s.log.WarnContext(ctx, "location ping rejected",
			"student_id", studentID, "indicators", res.Indicators)
		s.publish(ctx, &domain.AttendanceEvent{
			Type:       domain.EventPingRejected,
			StudentID:  studentID,
			Location:   reading.Coordinate,
			Confidence: res.Confidence,
			Indicators: res.Indicators,
			Message:    res.Message,
			Timestamp:  reading.Timestamp,
		})
		return &res, nil
	}

	if err := s.history.Append(ctx, studentID, reading, nil); err != nil {
		return nil, fmt.Errorf("append location history: %w", err)
	}
	return &res, nil
}
