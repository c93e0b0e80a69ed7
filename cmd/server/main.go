package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dennxbot/IMS-CICS-sub001/config"
	"github.com/dennxbot/IMS-CICS-sub001/module/attendance"
	"github.com/dennxbot/IMS-CICS-sub001/module/attendance/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := config.NewLogger(cfg)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	db, err := config.NewPostgres(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	amqpConn, err := config.NewRabbitMQ(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = amqpConn.Close() }()

	mqttClient, err := config.NewMQTT(cfg, logger)
	if err != nil {
		return err
	}
	defer mqttClient.Disconnect(250)

	attendanceModule, err := attendance.Build(db, amqpConn, mqttClient, moduleOptions(cfg), logger)
	if err != nil {
		return err
	}

	if err := attendanceModule.StartSubscribers(); err != nil {
		return err
	}

	r := gin.Default()

	health := config.NewHealthChecker(
		config.PostgresCheck(db),
		config.RabbitMQCheck(amqpConn),
		config.MQTTCheck(mqttClient),
	)
	health.Register(r)

	attendanceModule.RegisterRoutes(r.Group("/api/v1"))

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-sig:
	}

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

func moduleOptions(cfg *config.Config) attendance.Options {
	return attendance.Options{
		Spoofing: service.SpoofingConfig{
			MaxAge:           time.Duration(cfg.Spoofing.MaxAgeMs) * time.Millisecond,
			MaxFutureSkew:    time.Duration(cfg.Spoofing.MaxFutureSkewMs) * time.Millisecond,
			MinAccuracy:      cfg.Spoofing.MinAccuracyMeters,
			MaxReportedSpeed: cfg.Spoofing.MaxReportedSpeedMs,
		},
		Movement: service.MovementConfig{
			ImpossibleSpeed: cfg.Movement.ImpossibleSpeedMs,
			SuspiciousSpeed: cfg.Movement.SuspiciousSpeedMs,
		},
		H3Resolution: cfg.H3Resolution,
		JWTSecret:    cfg.JWTSecret,
	}
}
