package models

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaintenanceStatus is the lifecycle stage of a maintenance work order. It is
// deliberately a distinct type from MissionStatus: the two vocabularies carry
// different legal values and describe different processes.
type MaintenanceStatus string

const (
	MaintenanceOpen       MaintenanceStatus = "open"
	MaintenanceInProgress MaintenanceStatus = "in_progress"
	MaintenanceClosed     MaintenanceStatus = "closed"
)

// Code returns the canonical external representation of the status.
func (s MaintenanceStatus) Code() string { return string(s) }

// ParseMaintenanceStatus maps an external code to a MaintenanceStatus,
// matching case-insensitively.
func ParseMaintenanceStatus(code string) (MaintenanceStatus, error) {
	for _, s := range []MaintenanceStatus{MaintenanceOpen, MaintenanceInProgress, MaintenanceClosed} {
		if strings.EqualFold(code, string(s)) {
			return s, nil
		}
	}
	return "", unknownEnumError("maintenance status", code)
}

func (s MaintenanceStatus) rank() int {
	switch s {
	case MaintenanceOpen:
		return 0
	case MaintenanceInProgress:
		return 1
	case MaintenanceClosed:
		return 2
	default:
		return -1
	}
}

// MaintenanceType classifies a maintenance intervention.
type MaintenanceType string

const (
	MaintenancePreventive MaintenanceType = "preventive"
	MaintenanceCorrective MaintenanceType = "corrective"
)

// Code returns the canonical external representation of the maintenance type.
func (t MaintenanceType) Code() string { return string(t) }

// ParseMaintenanceType maps an external code to a MaintenanceType, matching
// case-insensitively.
func ParseMaintenanceType(code string) (MaintenanceType, error) {
	for _, t := range []MaintenanceType{MaintenancePreventive, MaintenanceCorrective} {
		if strings.EqualFold(code, string(t)) {
			return t, nil
		}
	}
	return "", unknownEnumError("maintenance type", code)
}

// MaintenanceOrder is a work order tracking a vehicle through the shop, from
// intake to release.
type MaintenanceOrder struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	VehicleID   string             `bson:"vehicle_id" json:"vehicle_id"`
	EntryDate   time.Time          `bson:"entry_date" json:"entry_date"`
	ExitDate    *time.Time         `bson:"exit_date,omitempty" json:"exit_date,omitempty"`
	Motive      string             `bson:"motive" json:"motive"`
	Observation string             `bson:"observation" json:"observation"`
	Cost        float64            `bson:"cost" json:"cost"` // in EUR
	Location    string             `bson:"location" json:"location"`
	Type        MaintenanceType    `bson:"type" json:"type"`
	Status      MaintenanceStatus  `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}

// NewMaintenanceOrder creates an order in the Open state at vehicle intake.
func NewMaintenanceOrder(vehicleID string, entry time.Time, motive string, mtype MaintenanceType) *MaintenanceOrder {
	return &MaintenanceOrder{
		VehicleID: vehicleID,
		EntryDate: entry,
		Motive:    motive,
		Type:      mtype,
		Status:    MaintenanceOpen,
		CreatedAt: time.Now(),
	}
}

// TransitionTo moves the order to the next status. Forward moves may skip
// stages (Open straight to Closed is legal); any backward move fails. The
// machine governs status ordering only; whether a closed order has an exit
// date recorded is Validate's concern at the persistence boundary.
func (o *MaintenanceOrder) TransitionTo(next MaintenanceStatus) error {
	if next.rank() < 0 {
		return unknownEnumError("maintenance status", string(next))
	}
	if next.rank() < o.Status.rank() {
		return transitionError(string(o.Status), string(next))
	}
	o.Status = next
	return nil
}

// RecordExit sets the shop exit instant. An exit before the entry instant is
// rejected.
func (o *MaintenanceOrder) RecordExit(exit time.Time) error {
	if exit.Before(o.EntryDate) {
		return fmt.Errorf("%w: entry %s, exit %s",
			ErrInvalidTemporalRange, o.EntryDate.Format(time.RFC3339), exit.Format(time.RFC3339))
	}
	o.ExitDate = &exit
	return nil
}

// InShopAt reports whether the vehicle was in the shop at ref.
func (o *MaintenanceOrder) InShopAt(ref time.Time) bool {
	return IsActiveAt(&o.EntryDate, o.ExitDate, ref)
}

// DurationHours returns the whole number of hours between entry and exit, or
// 0 while the order is still open.
func (o *MaintenanceOrder) DurationHours() int {
	if o.ExitDate == nil || o.ExitDate.Before(o.EntryDate) {
		return 0
	}
	return int(o.ExitDate.Sub(o.EntryDate).Hours())
}

// Validate checks the order record invariants ahead of persistence: temporal
// ordering of entry/exit, a non-negative cost, and an exit date on closed
// orders.
func (o *MaintenanceOrder) Validate() error {
	if o.ExitDate != nil && o.ExitDate.Before(o.EntryDate) {
		return fmt.Errorf("%w: entry %s, exit %s",
			ErrInvalidTemporalRange, o.EntryDate.Format(time.RFC3339), o.ExitDate.Format(time.RFC3339))
	}
	if o.Cost < 0 {
		return fmt.Errorf("%w: maintenance cost %.2f", ErrInvalidAmount, o.Cost)
	}
	if o.Status == MaintenanceClosed && o.ExitDate == nil {
		return fmt.Errorf("closed order %s has no exit date", o.ID.Hex())
	}
	return nil
}
