package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VehicleEnergy is the fuel/energy type of a vehicle.
type VehicleEnergy string

const (
	EnergyDiesel   VehicleEnergy = "diesel"
	EnergyPetrol   VehicleEnergy = "petrol"
	EnergyElectric VehicleEnergy = "electric"
	EnergyHybrid   VehicleEnergy = "hybrid"
)

// Code returns the canonical external representation of the energy type.
func (e VehicleEnergy) Code() string { return string(e) }

// ParseVehicleEnergy maps an external code to a VehicleEnergy, matching
// case-insensitively.
func ParseVehicleEnergy(code string) (VehicleEnergy, error) {
	for _, e := range []VehicleEnergy{EnergyDiesel, EnergyPetrol, EnergyElectric, EnergyHybrid} {
		if strings.EqualFold(code, string(e)) {
			return e, nil
		}
	}
	return "", unknownEnumError("vehicle energy", code)
}

// Vehicle represents a fleet vehicle snapshot. The vehicle itself is owned by
// the fleet inventory; assignments, contracts and orders reference it by ID.
type Vehicle struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Plate         string             `bson:"plate" json:"plate"`
	ChassisNumber string             `bson:"chassis_number" json:"chassis_number"`
	Make          string             `bson:"make" json:"make"`
	Model         string             `bson:"model" json:"model"`
	Energy        VehicleEnergy      `bson:"energy" json:"energy"`
	Seats         int                `bson:"seats" json:"seats"`
	Color         string             `bson:"color" json:"color"`
	Price         float64            `bson:"price" json:"price"` // in EUR
	Mileage       int                `bson:"mileage" json:"mileage"` // in kilometers
	AcquiredAt    *time.Time         `bson:"acquired_at,omitempty" json:"acquired_at,omitempty"`
	InServiceAt   *time.Time         `bson:"in_service_at,omitempty" json:"in_service_at,omitempty"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
}
