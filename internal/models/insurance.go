package models

import (
	"math"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InsuranceContract represents an insurance policy covering one or more fleet
// vehicles over a validity window. The covered vehicle list has set semantics;
// insertion order is kept only for display.
type InsuranceContract struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CardNumber string             `bson:"card_number" json:"card_number"`
	StartDate  *time.Time         `bson:"start_date,omitempty" json:"start_date,omitempty"`
	EndDate    *time.Time         `bson:"end_date,omitempty" json:"end_date,omitempty"`
	Agency     string             `bson:"agency" json:"agency"`
	TotalCost  float64            `bson:"total_cost" json:"total_cost"` // in EUR, for the whole period
	VehicleIDs []string           `bson:"vehicle_ids" json:"vehicle_ids"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
}

// NewInsuranceContract creates a contract with an empty coverage set.
func NewInsuranceContract(cardNumber string, start, end time.Time, agency string, totalCost float64) *InsuranceContract {
	return &InsuranceContract{
		CardNumber: cardNumber,
		StartDate:  &start,
		EndDate:    &end,
		Agency:     agency,
		TotalCost:  totalCost,
		CreatedAt:  time.Now(),
	}
}

// AddVehicle adds a vehicle to the coverage set. It returns true when
// membership changed, false when the vehicle was already covered or the id is
// empty.
func (c *InsuranceContract) AddVehicle(vehicleID string) bool {
	if vehicleID == "" || c.Covers(vehicleID) {
		return false
	}
	c.VehicleIDs = append(c.VehicleIDs, vehicleID)
	return true
}

// RemoveVehicle removes a vehicle from the coverage set. It returns true when
// membership changed, false when the vehicle was not covered.
func (c *InsuranceContract) RemoveVehicle(vehicleID string) bool {
	for i, id := range c.VehicleIDs {
		if id == vehicleID {
			c.VehicleIDs = append(c.VehicleIDs[:i], c.VehicleIDs[i+1:]...)
			return true
		}
	}
	return false
}

// Covers reports whether the contract covers the given vehicle.
func (c *InsuranceContract) Covers(vehicleID string) bool {
	for _, id := range c.VehicleIDs {
		if id == vehicleID {
			return true
		}
	}
	return false
}

// VehicleCount returns the number of covered vehicles.
func (c *InsuranceContract) VehicleCount() int {
	return len(c.VehicleIDs)
}

// IsValidAt reports whether the coverage window contains ref.
func (c *InsuranceContract) IsValidAt(ref time.Time) bool {
	return IsActiveAt(c.StartDate, c.EndDate, ref)
}

// IsValidNow reports whether the contract is currently in its coverage window.
func (c *InsuranceContract) IsValidNow() bool {
	return c.IsValidAt(time.Now())
}

// DaysRemaining returns the whole number of days until expiry, 0 once expired
// or when no end date is set.
func (c *InsuranceContract) DaysRemaining(ref time.Time) int {
	return DaysRemaining(c.EndDate, ref)
}

// IsExpiringSoon reports whether the contract is valid at ref and expires
// within thresholdDays.
func (c *InsuranceContract) IsExpiringSoon(ref time.Time, thresholdDays int) (bool, error) {
	return IsExpiringSoon(c.StartDate, c.EndDate, ref, thresholdDays)
}

// DurationMonths returns the contract duration as a whole-month difference of
// calendar year and month fields. Fractional months truncate toward zero, so
// Jan 31 to Feb 1 counts as one month while Jan 1 to Jan 31 counts as zero.
func (c *InsuranceContract) DurationMonths() int {
	if c.StartDate == nil || c.EndDate == nil {
		return 0
	}
	return (c.EndDate.Year()-c.StartDate.Year())*12 +
		int(c.EndDate.Month()) - int(c.StartDate.Month())
}

// MonthlyCost returns the per-month cost of the contract rounded half-up to
// two decimals, or 0 when the duration is not positive or the cost is unset.
// The degenerate cases are defined results, not errors.
func (c *InsuranceContract) MonthlyCost() float64 {
	months := c.DurationMonths()
	if months <= 0 || c.TotalCost == 0 {
		return 0
	}
	return round2(c.TotalCost / float64(months))
}

// Renew extends the coverage by the given number of months. Renewal of a
// still-valid contract compounds onto the current end date; renewal of an
// expired contract restarts from the present. Non-positive months and a
// missing end date are no-ops.
func (c *InsuranceContract) Renew(months int) {
	if months <= 0 || c.EndDate == nil {
		return
	}
	ref := time.Now()
	if c.IsValidNow() {
		ref = *c.EndDate
	}
	end := ref.AddDate(0, months, 0)
	c.EndDate = &end
}

// IsStructurallyValid reports whether the contract record itself is sound:
// both dates present and ordered, a positive cost and a named agency. This is
// the pre-persistence gate, distinct from temporal validity.
func (c *InsuranceContract) IsStructurallyValid() bool {
	return c.StartDate != nil &&
		c.EndDate != nil &&
		c.StartDate.Before(*c.EndDate) &&
		strings.TrimSpace(c.Agency) != "" &&
		c.TotalCost > 0
}

// round2 rounds to two decimals, half away from zero. Amounts here are never
// negative, so this matches round-half-up.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
