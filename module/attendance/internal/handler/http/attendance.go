package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dennxbot/IMS-CICS-sub001/module/attendance/domain"
)

type attendanceService interface {
	Verify(ctx context.Context, studentID string, req *domain.ClockRequest) (*domain.ClockResult, error)
	ClockIn(ctx context.Context, studentID string, req *domain.ClockRequest) (*domain.ClockResult, error)
	ClockOut(ctx context.Context, studentID string, req *domain.ClockRequest) (*domain.ClockResult, error)
}

type clockRequest struct {
	Reading  *domain.LocationReading `json:"reading"`
	Previous *domain.LocationReading `json:"previous"`
}

type AttendanceHandler struct {
	svc attendanceService
	log *slog.Logger
}

func NewAttendanceHandler(svc attendanceService, log *slog.Logger) *AttendanceHandler {
	return &AttendanceHandler{svc: svc, log: log}
}

func (h *AttendanceHandler) Register(r *gin.RouterGroup) {
	r.POST("/attendance/verify", h.Verify)
	r.POST("/attendance/clock-in", h.ClockIn)
	r.POST("/attendance/clock-out", h.ClockOut)
}

func (h *AttendanceHandler) Verify(c *gin.Context) {
	studentID, req, ok := h.bind(c)
	if !ok {
		return
	}

	res, err := h.svc.Verify(c.Request.Context(), studentID, req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *AttendanceHandler) ClockIn(c *gin.Context) {
	h.clock(c, h.svc.ClockIn)
}

func (h *AttendanceHandler) ClockOut(c *gin.Context) {
	h.clock(c, h.svc.ClockOut)
}

type clockFunc func(ctx context.Context, studentID string, req *domain.ClockRequest) (*domain.ClockResult, error)

func (h *AttendanceHandler) clock(c *gin.Context, fn clockFunc) {
	studentID, req, ok := h.bind(c)
	if !ok {
		return
	}

	res, err := fn(c.Request.Context(), studentID, req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if !res.Accepted {
		c.JSON(http.StatusUnprocessableEntity, res)
		return
	}
	c.JSON(http.StatusOK, res)
}

// bind resolves the student from the token and decodes the request body.
func (h *AttendanceHandler) bind(c *gin.Context) (string, *domain.ClockRequest, bool) {
	id := identityFrom(c)
	if id.Role != domain.RoleStudent {
		c.JSON(http.StatusForbidden, gin.H{"error": "only students can record attendance"})
		return "", nil, false
	}

	var body clockRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return "", nil, false
	}
	if body.Reading == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "reading: required"})
		return "", nil, false
	}
	if body.Reading.Timestamp <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "reading.timestamp: must be positive"})
		return "", nil, false
	}
	if body.Previous != nil && body.Previous.Timestamp <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "previous.timestamp: must be positive"})
		return "", nil, false
	}

	return id.UserID, &domain.ClockRequest{Reading: *body.Reading, Previous: body.Previous}, true
}

func (h *AttendanceHandler) respondError(c *gin.Context, err error) {
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error()})
	case errors.Is(err, domain.ErrNoActiveAssignment):
		c.JSON(http.StatusNotFound, gin.H{"error": "no active company assignment"})
	case errors.Is(err, domain.ErrAlreadyClockedIn):
		c.JSON(http.StatusConflict, gin.H{"error": "already clocked in"})
	case errors.Is(err, domain.ErrNotClockedIn):
		c.JSON(http.StatusConflict, gin.H{"error": "not clocked in"})
	default:
		h.log.ErrorContext(c.Request.Context(), "attendance request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process attendance"})
	}
}
