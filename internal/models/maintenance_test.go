package models

import (
	"errors"
	"testing"
	"time"
)

func TestMaintenanceStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    MaintenanceStatus
		to      MaintenanceStatus
		wantErr bool
	}{
		{"open to in progress", MaintenanceOpen, MaintenanceInProgress, false},
		{"in progress to closed", MaintenanceInProgress, MaintenanceClosed, false},
		{"open straight to closed", MaintenanceOpen, MaintenanceClosed, false},
		{"same state", MaintenanceOpen, MaintenanceOpen, false},
		{"closed back to in progress", MaintenanceClosed, MaintenanceInProgress, true},
		{"closed back to open", MaintenanceClosed, MaintenanceOpen, true},
		{"in progress back to open", MaintenanceInProgress, MaintenanceOpen, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := NewMaintenanceOrder("veh-1", date(2024, time.March, 1), "brake wear", MaintenanceCorrective)
			o.Status = tt.from
			err := o.TransitionTo(tt.to)
			if tt.wantErr {
				if !errors.Is(err, ErrIllegalStateTransition) {
					t.Fatalf("expected ErrIllegalStateTransition, got %v", err)
				}
				if o.Status != tt.from {
					t.Errorf("status mutated on rejected transition: %v", o.Status)
				}
				return
			}
			if err != nil {
				t.Fatalf("transition failed: %v", err)
			}
			if o.Status != tt.to {
				t.Errorf("status = %v, want %v", o.Status, tt.to)
			}
		})
	}
}

func TestNewMaintenanceOrderStartsOpen(t *testing.T) {
	o := NewMaintenanceOrder("veh-1", date(2024, time.March, 1), "scheduled service", MaintenancePreventive)
	if o.Status != MaintenanceOpen {
		t.Errorf("new order status = %v, want %v", o.Status, MaintenanceOpen)
	}
}

func TestMaintenanceVocabularyIsDistinct(t *testing.T) {
	// The maintenance machine has no "planned" stage; the mission vocabulary
	// must not leak in through the external representation.
	if _, err := ParseMaintenanceStatus("planned"); !errors.Is(err, ErrUnknownEnumValue) {
		t.Errorf("expected ErrUnknownEnumValue for mission-only code, got %v", err)
	}
	if _, err := ParseMissionStatus("open"); !errors.Is(err, ErrUnknownEnumValue) {
		t.Errorf("expected ErrUnknownEnumValue for maintenance-only code, got %v", err)
	}
}

func TestRecordExitRejectsExitBeforeEntry(t *testing.T) {
	o := NewMaintenanceOrder("veh-1", date(2024, time.March, 1), "brake wear", MaintenanceCorrective)
	err := o.RecordExit(date(2024, time.February, 28))
	if !errors.Is(err, ErrInvalidTemporalRange) {
		t.Errorf("expected ErrInvalidTemporalRange, got %v", err)
	}
	if o.ExitDate != nil {
		t.Error("rejected exit must not be recorded")
	}
}

func TestMaintenanceValidate(t *testing.T) {
	t.Run("exit before entry", func(t *testing.T) {
		o := NewMaintenanceOrder("veh-1", date(2024, time.March, 1), "brake wear", MaintenanceCorrective)
		o.ExitDate = datePtr(2024, time.February, 28)
		if err := o.Validate(); !errors.Is(err, ErrInvalidTemporalRange) {
			t.Errorf("expected ErrInvalidTemporalRange, got %v", err)
		}
	})

	t.Run("negative cost", func(t *testing.T) {
		o := NewMaintenanceOrder("veh-1", date(2024, time.March, 1), "brake wear", MaintenanceCorrective)
		o.Cost = -20
		if err := o.Validate(); !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("expected ErrInvalidAmount, got %v", err)
		}
	})

	t.Run("closed without exit date", func(t *testing.T) {
		o := NewMaintenanceOrder("veh-1", date(2024, time.March, 1), "brake wear", MaintenanceCorrective)
		if err := o.TransitionTo(MaintenanceClosed); err != nil {
			// The machine itself permits closing without an exit date.
			t.Fatalf("TransitionTo(closed) failed: %v", err)
		}
		if err := o.Validate(); err == nil {
			t.Error("Validate should flag a closed order with no exit date")
		}
	})

	t.Run("sound closed order", func(t *testing.T) {
		o := NewMaintenanceOrder("veh-1", date(2024, time.March, 1), "brake wear", MaintenanceCorrective)
		if err := o.RecordExit(date(2024, time.March, 3)); err != nil {
			t.Fatal(err)
		}
		o.Cost = 180.00
		if err := o.TransitionTo(MaintenanceClosed); err != nil {
			t.Fatal(err)
		}
		if err := o.Validate(); err != nil {
			t.Errorf("Validate failed on a sound order: %v", err)
		}
	})
}

func TestMaintenanceDurationAndShopWindow(t *testing.T) {
	o := NewMaintenanceOrder("veh-1", date(2024, time.March, 1), "brake wear", MaintenanceCorrective)

	if got := o.DurationHours(); got != 0 {
		t.Errorf("open order DurationHours() = %d, want 0", got)
	}
	if !o.InShopAt(date(2024, time.April, 1)) {
		t.Error("vehicle with no exit date is still in the shop")
	}

	if err := o.RecordExit(time.Date(2024, time.March, 2, 6, 30, 0, 0, time.UTC)); err != nil {
		t.Fatal(err)
	}
	if got := o.DurationHours(); got != 30 {
		t.Errorf("DurationHours() = %d, want 30", got)
	}
	if o.InShopAt(date(2024, time.April, 1)) {
		t.Error("vehicle released from the shop should not report in-shop")
	}
}

func TestParseMaintenanceEnums(t *testing.T) {
	s, err := ParseMaintenanceStatus("In_Progress")
	if err != nil || s != MaintenanceInProgress {
		t.Errorf("ParseMaintenanceStatus(In_Progress) = %v, %v", s, err)
	}

	mt, err := ParseMaintenanceType("PREVENTIVE")
	if err != nil || mt != MaintenancePreventive {
		t.Errorf("ParseMaintenanceType(PREVENTIVE) = %v, %v", mt, err)
	}
	if _, err := ParseMaintenanceType("predictive"); !errors.Is(err, ErrUnknownEnumValue) {
		t.Errorf("expected ErrUnknownEnumValue, got %v", err)
	}
}
