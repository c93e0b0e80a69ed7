package subscriber

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/dennxbot/IMS-CICS-sub001/module/attendance/domain"
)

const (
	TopicPattern  = "/ims/student/+/location"
	handleTimeout = 10 * time.Second
)

type pingService interface {
	RecordPing(ctx context.Context, studentID string, reading domain.LocationReading) (*domain.VerificationResult, error)
}

type pingMessage struct {
	StudentID string                 `json:"student_id"`
	Reading   domain.LocationReading `json:"reading"`
}

type LocationSubscriber struct {
	client  mqtt.Client
	pingSvc pingService
	log     *slog.Logger
}

func NewLocationSubscriber(client mqtt.Client, pingSvc pingService, log *slog.Logger) *LocationSubscriber {
	return &LocationSubscriber{
		client:  client,
		pingSvc: pingSvc,
		log:     log,
	}
}

func (s *LocationSubscriber) Start() error {
	token := s.client.Subscribe(TopicPattern, 1, s.handleMessage)
	token.Wait()
	return token.Error()
}

func (s *LocationSubscriber) handleMessage(_ mqtt.Client, msg mqtt.Message) {
	var raw pingMessage
	if err := json.Unmarshal(msg.Payload(), &raw); err != nil {
		s.log.Warn("invalid location message", "topic", msg.Topic(), "error", err)
		return
	}

	if err := validatePingMessage(msg.Topic(), &raw); err != nil {
		s.log.Warn("location message rejected", "topic", msg.Topic(), "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), handleTimeout)
	defer cancel()

	res, err := s.pingSvc.RecordPing(ctx, raw.StudentID, raw.Reading)
	if err != nil {
		s.log.Error("record location ping failed", "student_id", raw.StudentID, "error", err)
		return
	}
	s.log.Debug("location ping processed",
		"student_id", raw.StudentID, "valid", res.IsValid, "confidence", res.Confidence)
}

// topicStudentID extracts the student segment from /ims/student/{id}/location.
func topicStudentID(topic string) string {
	parts := strings.Split(strings.Trim(topic, "/"), "/")
	if len(parts) != 4 || parts[0] != "ims" || parts[1] != "student" || parts[3] != "location" {
		return ""
	}
	return parts[2]
}

func validatePingMessage(topic string, msg *pingMessage) error {
	if msg.StudentID == "" {
		return fmt.Errorf("student_id: required")
	}
	if id := topicStudentID(topic); id != msg.StudentID {
		return fmt.Errorf("student_id: does not match topic %q", topic)
	}
	if msg.Reading.Timestamp <= 0 {
		return fmt.Errorf("timestamp: must be positive")
	}
	return msg.Reading.Validate()
}
