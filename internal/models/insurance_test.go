package models

import (
	"math"
	"testing"
	"time"
)

func testContract() *InsuranceContract {
	return NewInsuranceContract("AXA-2024-001",
		date(2024, time.January, 1), date(2024, time.July, 1), "AXA Centre", 1200.00)
}

func TestCoverageSetOperations(t *testing.T) {
	c := testContract()

	if !c.AddVehicle("veh-1") {
		t.Error("first add should change membership")
	}
	if c.AddVehicle("veh-1") {
		t.Error("second add of same vehicle should be unchanged")
	}
	if !c.Covers("veh-1") {
		t.Error("expected veh-1 covered")
	}
	if c.Covers("veh-2") {
		t.Error("veh-2 should not be covered")
	}

	c.AddVehicle("veh-2")
	if got := c.VehicleCount(); got != 2 {
		t.Errorf("VehicleCount() = %d, want 2", got)
	}

	if !c.RemoveVehicle("veh-1") {
		t.Error("removing a covered vehicle should change membership")
	}
	if c.RemoveVehicle("veh-1") {
		t.Error("removing an absent vehicle should be unchanged")
	}
	if c.AddVehicle("") {
		t.Error("empty vehicle id should be unchanged")
	}
}

func TestContractDurationAndMonthlyCost(t *testing.T) {
	c := testContract()

	if got := c.DurationMonths(); got != 6 {
		t.Errorf("DurationMonths() = %d, want 6", got)
	}
	if got := c.MonthlyCost(); got != 200.00 {
		t.Errorf("MonthlyCost() = %.2f, want 200.00", got)
	}
}

func TestMonthlyCostDegenerateCases(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *InsuranceContract)
	}{
		{"zero duration", func(c *InsuranceContract) { c.EndDate = c.StartDate }},
		{"missing end date", func(c *InsuranceContract) { c.EndDate = nil }},
		{"missing start date", func(c *InsuranceContract) { c.StartDate = nil }},
		{"unset cost", func(c *InsuranceContract) { c.TotalCost = 0 }},
		{"inverted window", func(c *InsuranceContract) {
			c.StartDate = datePtr(2024, time.July, 1)
			c.EndDate = datePtr(2024, time.January, 1)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testContract()
			tt.mutate(c)
			if got := c.MonthlyCost(); got != 0 {
				t.Errorf("MonthlyCost() = %.2f, want 0", got)
			}
		})
	}
}

func TestMonthlyCostRoundingStaysWithinOneCent(t *testing.T) {
	tests := []struct {
		cost   float64
		months int
	}{
		{1000.00, 7},
		{999.99, 12},
		{50.05, 3},
		{1.00, 36},
	}

	for _, tt := range tests {
		start := date(2024, time.January, 1)
		end := start.AddDate(0, tt.months, 0)
		c := NewInsuranceContract("C", start, end, "Agency", tt.cost)

		if got := c.DurationMonths(); got != tt.months {
			t.Fatalf("DurationMonths() = %d, want %d", got, tt.months)
		}
		reconstructed := c.MonthlyCost() * float64(c.DurationMonths())
		if diff := math.Abs(reconstructed - tt.cost); diff > 0.01*float64(tt.months) {
			t.Errorf("cost %.2f over %d months reconstructs to %.4f (off by %.4f)",
				tt.cost, tt.months, reconstructed, diff)
		}
	}
}

func TestContractTemporalValidity(t *testing.T) {
	c := testContract()

	if !c.IsValidAt(date(2024, time.January, 1)) {
		t.Error("contract should be valid exactly at start")
	}
	if !c.IsValidAt(date(2024, time.July, 1)) {
		t.Error("contract should be valid exactly at end")
	}
	if c.IsValidAt(date(2024, time.July, 2)) {
		t.Error("contract should be expired after end")
	}

	if got := c.DaysRemaining(date(2024, time.June, 24)); got != 7 {
		t.Errorf("DaysRemaining() = %d, want 7", got)
	}

	soon, err := c.IsExpiringSoon(date(2024, time.June, 25), 30)
	if err != nil {
		t.Fatalf("IsExpiringSoon failed: %v", err)
	}
	if !soon {
		t.Error("contract six days from expiry should be expiring soon at threshold 30")
	}
}

func TestRenewExtendsFromEndWhileValid(t *testing.T) {
	end := time.Now().AddDate(0, 0, 10)
	c := NewInsuranceContract("C", time.Now().AddDate(0, -6, 0), end, "Agency", 600)

	c.Renew(3)
	want := end.AddDate(0, 3, 0)
	if !c.EndDate.Equal(want) {
		t.Errorf("renewed end = %v, want %v", c.EndDate, want)
	}
}

func TestRenewExpiredRestartsFromNow(t *testing.T) {
	c := NewInsuranceContract("C",
		time.Now().AddDate(-1, 0, 0), time.Now().AddDate(0, -2, 0), "Agency", 600)

	before := time.Now()
	c.Renew(6)
	after := time.Now()

	// New end must be ~6 months from now, not compounded onto the stale expiry.
	if c.EndDate.Before(before.AddDate(0, 6, 0).Add(-time.Minute)) ||
		c.EndDate.After(after.AddDate(0, 6, 0).Add(time.Minute)) {
		t.Errorf("renewed end = %v, want about 6 months from now", c.EndDate)
	}
}

func TestRenewNoOps(t *testing.T) {
	c := testContract()
	original := *c.EndDate

	c.Renew(0)
	if !c.EndDate.Equal(original) {
		t.Error("Renew(0) must not change the end date")
	}
	c.Renew(-4)
	if !c.EndDate.Equal(original) {
		t.Error("Renew with negative months must not change the end date")
	}

	c.EndDate = nil
	c.Renew(6)
	if c.EndDate != nil {
		t.Error("Renew with no end date must stay a no-op")
	}
}

func TestRenewStrictlyIncreasesEnd(t *testing.T) {
	c := testContract()
	for months := 1; months <= 24; months += 5 {
		before := *c.EndDate
		c.Renew(months)
		if !c.EndDate.After(before) {
			t.Errorf("Renew(%d) did not move end forward: %v -> %v", months, before, c.EndDate)
		}
	}
}

func TestIsStructurallyValid(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(c *InsuranceContract)
		expected bool
	}{
		{"sound contract", func(c *InsuranceContract) {}, true},
		{"missing start", func(c *InsuranceContract) { c.StartDate = nil }, false},
		{"missing end", func(c *InsuranceContract) { c.EndDate = nil }, false},
		{"start equals end", func(c *InsuranceContract) { c.EndDate = c.StartDate }, false},
		{"inverted dates", func(c *InsuranceContract) {
			c.StartDate, c.EndDate = c.EndDate, c.StartDate
		}, false},
		{"blank agency", func(c *InsuranceContract) { c.Agency = "   " }, false},
		{"zero cost", func(c *InsuranceContract) { c.TotalCost = 0 }, false},
		{"negative cost", func(c *InsuranceContract) { c.TotalCost = -10 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testContract()
			tt.mutate(c)
			if got := c.IsStructurallyValid(); got != tt.expected {
				t.Errorf("IsStructurallyValid() = %v, want %v", got, tt.expected)
			}
		})
	}
}
