package config

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/gin-gonic/gin"
	amqp "github.com/rabbitmq/amqp091-go"
)

// DependencyCheck reports nil when the named dependency is usable.
type DependencyCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

type HealthChecker struct {
	checks []DependencyCheck
}

func NewHealthChecker(checks ...DependencyCheck) *HealthChecker {
	return &HealthChecker{checks: checks}
}

func PostgresCheck(db *sql.DB) DependencyCheck {
	return DependencyCheck{Name: "postgres", Check: db.PingContext}
}

func RabbitMQCheck(conn *amqp.Connection) DependencyCheck {
	return DependencyCheck{Name: "rabbitmq", Check: func(context.Context) error {
		if conn.IsClosed() {
			return errors.New("connection closed")
		}
		return nil
	}}
}

func MQTTCheck(client mqtt.Client) DependencyCheck {
	return DependencyCheck{Name: "mqtt", Check: func(context.Context) error {
		if !client.IsConnected() {
			return errors.New("not connected")
		}
		return nil
	}}
}

func (h *HealthChecker) Register(r *gin.Engine) {
	r.GET("/healthz", h.Handle)
}

func (h *HealthChecker) Handle(c *gin.Context) {
	status := http.StatusOK
	deps := gin.H{}

	for _, dc := range h.checks {
		if err := dc.Check(c.Request.Context()); err != nil {
			deps[dc.Name] = gin.H{"status": "down", "error": err.Error()}
			status = http.StatusServiceUnavailable
			continue
		}
		deps[dc.Name] = gin.H{"status": "up"}
	}

	overall := "healthy"
	if status != http.StatusOK {
		overall = "unhealthy"
	}

	c.JSON(status, gin.H{
		"status":       overall,
		"dependencies": deps,
	})
}
