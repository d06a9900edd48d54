package models

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AssignmentKind classifies how a beneficiary holds a vehicle.
type AssignmentKind string

const (
	// AssignmentLongTermCredit is a five-year credit assignment to a societaire.
	AssignmentLongTermCredit AssignmentKind = "long_term_credit"
	// AssignmentMission is a temporary assignment for the duration of a mission.
	AssignmentMission AssignmentKind = "mission"
)

// Code returns the canonical external representation of the assignment kind.
func (k AssignmentKind) Code() string { return string(k) }

// ParseAssignmentKind maps an external code to an AssignmentKind, matching
// case-insensitively.
func ParseAssignmentKind(code string) (AssignmentKind, error) {
	for _, k := range []AssignmentKind{AssignmentLongTermCredit, AssignmentMission} {
		if strings.EqualFold(code, string(k)) {
			return k, nil
		}
	}
	return "", unknownEnumError("assignment kind", code)
}

// NoBeneficiary is the sentinel description for an assignment that currently
// names neither a personnel nor a societaire account.
const NoBeneficiary = "no beneficiary"

// VehicleAssignment records which beneficiary holds a vehicle over a time
// window. At most one of PersonnelID and SocietaireAccountID may be set;
// mutate the beneficiary through SetPersonnel/SetSocietaireAccount so the
// exclusivity invariant is re-checked on every path.
type VehicleAssignment struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	VehicleID           string             `bson:"vehicle_id" json:"vehicle_id"`
	PersonnelID         *string            `bson:"personnel_id,omitempty" json:"personnel_id,omitempty"`
	SocietaireAccountID *string            `bson:"societaire_account_id,omitempty" json:"societaire_account_id,omitempty"`
	Kind                AssignmentKind     `bson:"kind" json:"kind"`
	StartDate           time.Time          `bson:"start_date" json:"start_date"`
	EndDate             *time.Time         `bson:"end_date,omitempty" json:"end_date,omitempty"`
	CreatedAt           time.Time          `bson:"created_at" json:"created_at"`
}

// NewVehicleAssignment creates an open-ended assignment starting at start.
// Exactly one beneficiary is set afterwards via SetPersonnel or
// SetSocietaireAccount.
func NewVehicleAssignment(vehicleID string, kind AssignmentKind, start time.Time) *VehicleAssignment {
	return &VehicleAssignment{
		VehicleID: vehicleID,
		Kind:      kind,
		StartDate: start,
		CreatedAt: time.Now(),
	}
}

// ValidateBeneficiary fails when both beneficiary references are set. It is
// the single exclusivity check shared by every construction and mutation path.
func ValidateBeneficiary(personnelID, societaireAccountID *string) error {
	if personnelID != nil && societaireAccountID != nil {
		return fmt.Errorf("%w: personnel %s, account %s",
			ErrConflictingBeneficiary, *personnelID, *societaireAccountID)
	}
	return nil
}

// Validate checks the assignment invariants: beneficiary exclusivity and
// temporal ordering of the window.
func (a *VehicleAssignment) Validate() error {
	if err := ValidateBeneficiary(a.PersonnelID, a.SocietaireAccountID); err != nil {
		return err
	}
	if a.EndDate != nil && a.EndDate.Before(a.StartDate) {
		return fmt.Errorf("%w: start %s, end %s",
			ErrInvalidTemporalRange, a.StartDate.Format(time.RFC3339), a.EndDate.Format(time.RFC3339))
	}
	return nil
}

// SetPersonnel makes the given employee the beneficiary, clearing any
// societaire account reference first.
func (a *VehicleAssignment) SetPersonnel(personnelID string) error {
	a.SocietaireAccountID = nil
	a.PersonnelID = &personnelID
	return ValidateBeneficiary(a.PersonnelID, a.SocietaireAccountID)
}

// SetSocietaireAccount makes the given societaire account the beneficiary,
// clearing any personnel reference first.
func (a *VehicleAssignment) SetSocietaireAccount(accountID string) error {
	a.PersonnelID = nil
	a.SocietaireAccountID = &accountID
	return ValidateBeneficiary(a.PersonnelID, a.SocietaireAccountID)
}

// ClearBeneficiary removes both beneficiary references, leaving an unassigned
// placeholder. Swapping beneficiary kinds goes through here.
func (a *VehicleAssignment) ClearBeneficiary() {
	a.PersonnelID = nil
	a.SocietaireAccountID = nil
}

// HasBeneficiary reports whether the assignment currently names a holder.
func (a *VehicleAssignment) HasBeneficiary() bool {
	return a.PersonnelID != nil || a.SocietaireAccountID != nil
}

// IsActiveAt reports whether the assignment window contains ref.
func (a *VehicleAssignment) IsActiveAt(ref time.Time) bool {
	return IsActiveAt(&a.StartDate, a.EndDate, ref)
}

// IsActiveNow reports whether the assignment is active at the current time.
func (a *VehicleAssignment) IsActiveNow() bool {
	return a.IsActiveAt(time.Now())
}

// Close sets or extends the end of the assignment window.
func (a *VehicleAssignment) Close(end time.Time) error {
	if end.Before(a.StartDate) {
		return fmt.Errorf("%w: start %s, end %s",
			ErrInvalidTemporalRange, a.StartDate.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	a.EndDate = &end
	return nil
}

// DescribeBeneficiary renders the holder of the assignment from the supplied
// snapshots: the employee's full name, or the societaire name with account
// number. It falls back to the raw reference when the matching snapshot is
// missing and never fails.
func (a *VehicleAssignment) DescribeBeneficiary(p *Personnel, acct *SocietaireAccount) string {
	switch {
	case a.PersonnelID != nil:
		if p != nil && p.FullName() != "" {
			return p.FullName()
		}
		return "personnel " + *a.PersonnelID
	case a.SocietaireAccountID != nil:
		if acct != nil && acct.Name != "" {
			return fmt.Sprintf("%s (account %s)", acct.Name, acct.AccountNumber)
		}
		return "societaire account " + *a.SocietaireAccountID
	default:
		return NoBeneficiary
	}
}
