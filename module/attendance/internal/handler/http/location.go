package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/uber/h3-go/v4"

	"github.com/dennxbot/IMS-CICS-sub001/module/attendance/domain"
)

type locationService interface {
	GetLatest(ctx context.Context, studentID string) (*domain.StoredReading, error)
	GetHistory(ctx context.Context, query *domain.HistoryQuery) ([]domain.StoredReading, error)
}

type locationResponse struct {
	StudentID        string   `json:"student_id"`
	TimesheetID      *string  `json:"timesheet_id,omitempty"`
	Latitude         float64  `json:"latitude"`
	Longitude        float64  `json:"longitude"`
	Accuracy         *float64 `json:"accuracy"`
	Altitude         *float64 `json:"altitude"`
	AltitudeAccuracy *float64 `json:"altitude_accuracy"`
	Heading          *float64 `json:"heading"`
	Speed            *float64 `json:"speed"`
	Timestamp        int64    `json:"timestamp"`
	H3Cell           string   `json:"h3_cell"`
	RecordedAt       int64    `json:"recorded_at"`
}

type LocationHandler struct {
	locationSvc locationService
}

func NewLocationHandler(locationSvc locationService) *LocationHandler {
	return &LocationHandler{locationSvc: locationSvc}
}

func (h *LocationHandler) Register(r *gin.RouterGroup) {
	r.GET("/students/:student_id/locations/latest", h.GetLatestLocation)
	r.GET("/students/:student_id/locations", h.GetHistory)
}

func (h *LocationHandler) GetLatestLocation(c *gin.Context) {
	studentID, ok := authorizeStudent(c)
	if !ok {
		return
	}

	sr, err := h.locationSvc.GetLatest(c.Request.Context(), studentID)
	if errors.Is(err, domain.ErrNoHistory) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no location history"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch location"})
		return
	}

	c.JSON(http.StatusOK, toLocationResponse(sr))
}

func (h *LocationHandler) GetHistory(c *gin.Context) {
	studentID, ok := authorizeStudent(c)
	if !ok {
		return
	}

	start, err := strconv.ParseInt(c.Query("start"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start parameter"})
		return
	}

	end, err := strconv.ParseInt(c.Query("end"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end parameter"})
		return
	}

	query := &domain.HistoryQuery{
		StudentID: studentID,
		Start:     time.Unix(start, 0),
		End:       time.Unix(end, 0),
	}

	readings, err := h.locationSvc.GetHistory(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch history"})
		return
	}

	results := make([]locationResponse, len(readings))
	for i := range readings {
		results[i] = toLocationResponse(&readings[i])
	}
	c.JSON(http.StatusOK, results)
}

func authorizeStudent(c *gin.Context) (string, bool) {
	studentID := c.Param("student_id")
	if !identityFrom(c).CanReadStudent(studentID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return "", false
	}
	return studentID, true
}

func toLocationResponse(sr *domain.StoredReading) locationResponse {
	return locationResponse{
		StudentID:        sr.StudentID,
		TimesheetID:      sr.TimesheetID,
		Latitude:         sr.Reading.Lat,
		Longitude:        sr.Reading.Lon,
		Accuracy:         sr.Reading.Accuracy,
		Altitude:         sr.Reading.Altitude,
		AltitudeAccuracy: sr.Reading.AltitudeAccuracy,
		Heading:          sr.Reading.Heading,
		Speed:            sr.Reading.Speed,
		Timestamp:        sr.Reading.Timestamp,
		H3Cell:           h3.Cell(sr.H3Cell).String(),
		RecordedAt:       sr.RecordedAt.Unix(),
	}
}
