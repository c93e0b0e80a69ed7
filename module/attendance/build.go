package attendance

import (
	"database/sql"
	"fmt"
	"log/slog"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/gin-gonic/gin"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/dennxbot/IMS-CICS-sub001/module/attendance/auth"
	handler "github.com/dennxbot/IMS-CICS-sub001/module/attendance/internal/handler/http"
	"github.com/dennxbot/IMS-CICS-sub001/module/attendance/internal/handler/subscriber"
	"github.com/dennxbot/IMS-CICS-sub001/module/attendance/internal/repository/database/postgres"
	"github.com/dennxbot/IMS-CICS-sub001/module/attendance/internal/repository/publisher/rabbitmq"
	"github.com/dennxbot/IMS-CICS-sub001/module/attendance/service"
)

type Options struct {
	Spoofing     service.SpoofingConfig
	Movement     service.MovementConfig
	H3Resolution int
	JWTSecret    string
}

type Module struct {
	HistorySvc    *service.LocationHistoryService
	AttendanceSvc *service.AttendanceService
	tokens        *auth.JWTService
	attendance    *handler.AttendanceHandler
	location      *handler.LocationHandler
	subscriber    *subscriber.LocationSubscriber
	log           *slog.Logger
}

func Build(db *sql.DB, amqpConn *amqp.Connection, mqttClient mqtt.Client, opts Options, log *slog.Logger) (*Module, error) {
	locationRepo := postgres.NewLocationRepo(db)
	timesheetRepo := postgres.NewTimesheetRepo(db)
	assignmentRepo := postgres.NewAssignmentRepo(db)

	eventPub, err := rabbitmq.NewAttendancePublisher(amqpConn)
	if err != nil {
		return nil, fmt.Errorf("attendance publisher: %w", err)
	}

	historySvc := service.NewLocationHistoryService(locationRepo, opts.H3Resolution)
	analyzer := service.NewMovementAnalyzer(service.NewSpoofingDetector(opts.Spoofing), opts.Movement)
	movement := service.NewStoreMovementChecker(analyzer, historySvc, log)
	attendanceSvc := service.NewAttendanceService(assignmentRepo, timesheetRepo, historySvc, movement, eventPub, log)

	return &Module{
		HistorySvc:    historySvc,
		AttendanceSvc: attendanceSvc,
		tokens:        auth.NewJWTService(opts.JWTSecret),
		attendance:    handler.NewAttendanceHandler(attendanceSvc, log),
		location:      handler.NewLocationHandler(historySvc),
		subscriber:    subscriber.NewLocationSubscriber(mqttClient, attendanceSvc, log),
		log:           log,
	}, nil
}

func (m *Module) RegisterRoutes(r *gin.RouterGroup) {
	authed := r.Group("", handler.RequireIdentity(m.tokens, m.log))
	m.attendance.Register(authed)
	m.location.Register(authed)
}

func (m *Module) StartSubscribers() error {
	return m.subscriber.Start()
}
