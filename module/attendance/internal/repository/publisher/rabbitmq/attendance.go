package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/dennxbot/IMS-CICS-sub001/module/attendance/domain"
	"github.com/dennxbot/IMS-CICS-sub001/module/attendance/internal/repository/publisher"
)

var _ publisher.AttendancePublisher = (*AttendancePublisher)(nil)

const (
	exchangeName = "ims.attendance"
	queueName    = "attendance_events"
)

type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type AttendancePublisher struct {
	ch channel
}

func NewAttendancePublisher(conn *amqp.Connection) (*AttendancePublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}

	if err := declareTopology(ch); err != nil {
		return nil, err
	}

	return &AttendancePublisher{ch: ch}, nil
}

func declareTopology(ch *amqp.Channel) error {
	if err := ch.ExchangeDeclare(exchangeName, "fanout", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	if err := ch.QueueBind(queueName, "", exchangeName, false, nil); err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}
	return nil
}

type eventMessage struct {
	Type        domain.AttendanceEventType `json:"type"`
	StudentID   string                     `json:"student_id"`
	CompanyID   string                     `json:"company_id,omitempty"`
	TimesheetID string                     `json:"timesheet_id,omitempty"`
	Location    eventLocation              `json:"location"`
	Confidence  domain.Confidence          `json:"confidence"`
	Indicators  []string                   `json:"indicators"`
	Message     string                     `json:"message"`
	Distance    *float64                   `json:"distance_meters,omitempty"`
	Timestamp   int64                      `json:"timestamp"`
}

type eventLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (p *AttendancePublisher) PublishEvent(ctx context.Context, event *domain.AttendanceEvent) error {
	body, err := marshalEvent(event)
	if err != nil {
		return err
	}

	return p.ch.PublishWithContext(ctx, exchangeName, "", false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Type:         string(event.Type),
		Body:         body,
	})
}

func marshalEvent(event *domain.AttendanceEvent) ([]byte, error) {
	indicators := event.Indicators
	if indicators == nil {
		indicators = []string{}
	}
	msg := eventMessage{
		Type:        event.Type,
		StudentID:   event.StudentID,
		CompanyID:   event.CompanyID,
		TimesheetID: event.TimesheetID,
		Location: eventLocation{
			Latitude:  event.Location.Lat,
			Longitude: event.Location.Lon,
		},
		Confidence: event.Confidence,
		Indicators: indicators,
		Message:    event.Message,
		Distance:   event.Distance,
		Timestamp:  event.Timestamp,
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("marshal event: %w", err)
	}
	return body, nil
}
