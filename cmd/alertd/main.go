package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/ukydev/fleet-lifecycle/internal/alerts"
	"github.com/ukydev/fleet-lifecycle/internal/db"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found, using environment")
	}

	client, err := db.ConnectMongo()
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to MongoDB")
	}
	defer client.Disconnect(context.Background())

	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "fleet"
	}
	contracts := &db.MongoContractCollection{
		Collection: client.Database(dbName).Collection("contracts"),
	}

	brokerURL := os.Getenv("MQTT_BROKER_URL")
	if brokerURL == "" {
		brokerURL = "tcp://localhost:1883"
	}
	topic := os.Getenv("ALERT_TOPIC")
	if topic == "" {
		topic = "fleet/alerts/insurance"
	}
	publisher, err := alerts.NewMQTTPublisher(brokerURL, "fleet-alertd", topic)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to MQTT broker")
	}
	defer publisher.Close()

	threshold := 30
	if v := os.Getenv("ALERT_THRESHOLD_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			threshold = n
		}
	}
	interval := time.Hour
	if v := os.Getenv("ALERT_SCAN_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			interval = d
		}
	}

	scanner := &alerts.Scanner{
		Contracts:     contracts,
		Publisher:     publisher,
		ThresholdDays: threshold,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.WithFields(log.Fields{
		"broker":    brokerURL,
		"topic":     topic,
		"threshold": threshold,
		"interval":  interval,
	}).Info("Starting fleet insurance alert daemon")

	// Run one pass immediately so a restart does not wait a full interval.
	if _, err := scanner.ScanOnce(ctx, time.Now()); err != nil {
		log.WithError(err).Error("Initial expiry scan failed")
	}
	scanner.Run(ctx, interval)
}
