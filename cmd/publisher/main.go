package main

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"strconv"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

type reading struct {
	Latitude         float64  `json:"latitude"`
	Longitude        float64  `json:"longitude"`
	Accuracy         float64  `json:"accuracy"`
	Altitude         *float64 `json:"altitude"`
	AltitudeAccuracy *float64 `json:"altitude_accuracy"`
	Heading          *float64 `json:"heading"`
	Speed            float64  `json:"speed"`
	Timestamp        int64    `json:"timestamp"`
}

type pingMessage struct {
	StudentID string  `json:"student_id"`
	Reading   reading `json:"reading"`
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <interval_seconds>\n", os.Args[0])
		os.Exit(1)
	}

	intervalSec, err := strconv.Atoi(os.Args[1])
	if err != nil || intervalSec <= 0 {
		fmt.Fprintf(os.Stderr, "error: interval must be a positive integer\n")
		os.Exit(1)
	}

	broker := "tcp://localhost:1883"
	if v := os.Getenv("MQTT_BROKER"); v != "" {
		broker = v
	}
	studentID := "stu-demo"
	if v := os.Getenv("STUDENT_ID"); v != "" {
		studentID = v
	}
	companyLat := envFloat("COMPANY_LAT", -6.2088)
	companyLon := envFloat("COMPANY_LON", 106.8456)

	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID("ims-mock-device-" + studentID)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		log.Fatalf("mqtt connect: %v", token.Error())
	}
	defer client.Disconnect(250)

	topic := fmt.Sprintf("/ims/student/%s/location", studentID)
	log.Printf("connected to %s, publishing to %s every %ds...", broker, topic, intervalSec)

	ticker := time.NewTicker(time.Duration(intervalSec) * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		alt := 40 + rand.Float64()*10
		altAcc := 3 + rand.Float64()*5
		r := reading{
			// ~30m drift around the company
			Latitude:         companyLat + (rand.Float64()-0.5)*0.0005,
			Longitude:        companyLon + (rand.Float64()-0.5)*0.0005,
			Accuracy:         5 + rand.Float64()*15,
			Altitude:         &alt,
			AltitudeAccuracy: &altAcc,
			Speed:            0,
			Timestamp:        time.Now().UnixMilli(),
		}

		// 10% chance to jump to the other side of the planet, which the
		// server should reject as impossible movement
		if rand.Float64() < 0.1 {
			r.Latitude = -companyLat
			r.Longitude = math.Mod(companyLon+360, 360) - 180
		}

		payload, _ := json.Marshal(pingMessage{StudentID: studentID, Reading: r})
		token := client.Publish(topic, 1, false, payload)
		token.Wait()

		log.Printf("published to %s: %s", topic, payload)
	}
}
