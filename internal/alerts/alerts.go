package alerts

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	log "github.com/sirupsen/logrus"

	"github.com/ukydev/fleet-lifecycle/internal/db"
	"github.com/ukydev/fleet-lifecycle/internal/models"
)

// Severity levels for expiry alerts. A contract within a week of expiry is
// critical, anything else inside the scan threshold is a warning.
const (
	SeverityWarning  = "warning"
	SeverityCritical = "critical"

	criticalDays = 7
)

// ExpiryAlert is the message published when an insurance contract is close
// to its end date.
type ExpiryAlert struct {
	ContractID    string    `json:"contract_id"`
	CardNumber    string    `json:"card_number"`
	Agency        string    `json:"agency"`
	VehicleIDs    []string  `json:"vehicle_ids"`
	DaysRemaining int       `json:"days_remaining"`
	Severity      string    `json:"severity"`
	GeneratedAt   time.Time `json:"generated_at"`
}

// Publisher delivers expiry alerts to the notification transport.
type Publisher interface {
	Publish(ctx context.Context, alert ExpiryAlert) error
}

// MQTTPublisher publishes alerts as JSON on an MQTT topic, one subtopic per
// contract card number.
type MQTTPublisher struct {
	client mqtt.Client
	topic  string
}

// NewMQTTPublisher connects to the broker and returns a publisher rooted at
// the given topic.
func NewMQTTPublisher(brokerURL, clientID, topic string) (*MQTTPublisher, error) {
	opts := mqtt.NewClientOptions().AddBroker(brokerURL).SetClientID(clientID)
	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect error: %w", token.Error())
	}
	return &MQTTPublisher{client: client, topic: topic}, nil
}

// Publish sends a single alert.
func (p *MQTTPublisher) Publish(_ context.Context, alert ExpiryAlert) error {
	data, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("failed to marshal alert: %w", err)
	}
	token := p.client.Publish(p.topic+"/"+alert.CardNumber, 0, false, data)
	token.Wait()
	return token.Error()
}

// Close disconnects from the broker.
func (p *MQTTPublisher) Close() {
	p.client.Disconnect(250)
}

// Scanner periodically polls the contract store for coverage nearing expiry
// and hands alerts to the publisher. The expiry decision itself lives on the
// contract; the scanner only polls and forwards.
type Scanner struct {
	Contracts     db.ContractCollection
	Publisher     Publisher
	ThresholdDays int
}

// ScanOnce runs a single pass at the given reference time and returns the
// alerts it published.
func (s *Scanner) ScanOnce(ctx context.Context, ref time.Time) ([]ExpiryAlert, error) {
	expiring, err := s.Contracts.FindExpiringContracts(ctx, ref, s.ThresholdDays)
	if err != nil {
		return nil, fmt.Errorf("failed to scan contracts: %w", err)
	}

	alerts := make([]ExpiryAlert, 0, len(expiring))
	for _, contract := range expiring {
		alert := NewExpiryAlert(contract, ref)
		if err := s.Publisher.Publish(ctx, alert); err != nil {
			log.WithError(err).WithField("card_number", alert.CardNumber).Error("Failed to publish alert")
			continue
		}
		log.WithFields(log.Fields{
			"card_number":    alert.CardNumber,
			"days_remaining": alert.DaysRemaining,
			"severity":       alert.Severity,
		}).Info("Published expiry alert")
		alerts = append(alerts, alert)
	}
	return alerts, nil
}

// Run scans on a fixed interval until the context is cancelled.
func (s *Scanner) Run(ctx context.Context, interval time.Duration) {
	log.WithFields(log.Fields{
		"interval":       interval,
		"threshold_days": s.ThresholdDays,
	}).Info("Starting expiry scanner")

	tick := time.NewTicker(interval)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Info("Expiry scanner stopped")
			return
		case <-tick.C:
			if _, err := s.ScanOnce(ctx, time.Now()); err != nil {
				log.WithError(err).Error("Expiry scan failed")
			}
		}
	}
}

// NewExpiryAlert builds the alert payload for a contract at the given
// reference time.
func NewExpiryAlert(contract models.InsuranceContract, ref time.Time) ExpiryAlert {
	days := contract.DaysRemaining(ref)
	severity := SeverityWarning
	if days <= criticalDays {
		severity = SeverityCritical
	}
	return ExpiryAlert{
		ContractID:    contract.ID.Hex(),
		CardNumber:    contract.CardNumber,
		Agency:        contract.Agency,
		VehicleIDs:    contract.VehicleIDs,
		DaysRemaining: days,
		Severity:      severity,
		GeneratedAt:   ref,
	}
}
