package models

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MissionStatus is the lifecycle stage of a travel mission. It is a separate
// vocabulary from MaintenanceStatus; the two must not be conflated even
// though both progress forward only.
type MissionStatus string

const (
	MissionPlanned    MissionStatus = "planned"
	MissionInProgress MissionStatus = "in_progress"
	MissionClosed     MissionStatus = "closed"
)

// Code returns the canonical external representation of the status.
func (s MissionStatus) Code() string { return string(s) }

// ParseMissionStatus maps an external code to a MissionStatus, matching
// case-insensitively.
func ParseMissionStatus(code string) (MissionStatus, error) {
	for _, s := range []MissionStatus{MissionPlanned, MissionInProgress, MissionClosed} {
		if strings.EqualFold(code, string(s)) {
			return s, nil
		}
	}
	return "", unknownEnumError("mission status", code)
}

func (s MissionStatus) rank() int {
	switch s {
	case MissionPlanned:
		return 0
	case MissionInProgress:
		return 1
	case MissionClosed:
		return 2
	default:
		return -1
	}
}

// ExpenseNature categorizes a mission expense. Exactly two categories exist:
// fuel, and everything else as incidental costs.
type ExpenseNature string

const (
	ExpenseFuel       ExpenseNature = "fuel"
	ExpenseIncidental ExpenseNature = "incidental"
)

// Code returns the canonical external representation of the expense nature.
func (n ExpenseNature) Code() string { return string(n) }

// ParseExpenseNature maps an external code to an ExpenseNature, matching
// case-insensitively.
func ParseExpenseNature(code string) (ExpenseNature, error) {
	for _, n := range []ExpenseNature{ExpenseFuel, ExpenseIncidental} {
		if strings.EqualFold(code, string(n)) {
			return n, nil
		}
	}
	return "", unknownEnumError("expense nature", code)
}

// MissionExpense is a single expense incurred during a mission. An expense
// belongs to exactly one mission at a time; AddExpense re-parents it and
// clears the old back-reference.
type MissionExpense struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	MissionID     primitive.ObjectID `bson:"mission_id,omitempty" json:"mission_id,omitempty"`
	Nature        ExpenseNature      `bson:"nature" json:"nature"`
	Amount        float64            `bson:"amount" json:"amount"` // in EUR
	Justification string             `bson:"justification" json:"justification"` // receipt path or reference
	IncurredAt    time.Time          `bson:"incurred_at" json:"incurred_at"`
	Note          string             `bson:"note" json:"note"`

	mission *Mission
}

// Mission returns the mission this expense is attached to, or nil.
func (e *MissionExpense) Mission() *Mission { return e.mission }

// Mission represents a vehicle mission from planning through execution to
// closure. It exclusively owns its expense collection; expense order is
// insertion order, relevant for display only.
type Mission struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	VehicleID    string             `bson:"vehicle_id" json:"vehicle_id"`
	Label        string             `bson:"label" json:"label"`
	Site         string             `bson:"site" json:"site"`
	StartDate    time.Time          `bson:"start_date" json:"start_date"`
	EndDate      *time.Time         `bson:"end_date,omitempty" json:"end_date,omitempty"`
	PlannedKm    int                `bson:"planned_km" json:"planned_km"`
	ActualKm     int                `bson:"actual_km" json:"actual_km"`
	Status       MissionStatus      `bson:"status" json:"status"`
	RecordedCost float64            `bson:"recorded_cost" json:"recorded_cost"` // in EUR
	Circuit      string             `bson:"circuit" json:"circuit"`
	Observations string             `bson:"observations" json:"observations"`
	Expenses     []*MissionExpense  `bson:"expenses" json:"expenses"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
}

// NewMission creates a mission in the Planned state.
func NewMission(vehicleID, label, site string, start time.Time) *Mission {
	return &Mission{
		VehicleID: vehicleID,
		Label:     label,
		Site:      site,
		StartDate: start,
		Status:    MissionPlanned,
		CreatedAt: time.Now(),
	}
}

// TransitionTo moves the mission to the next status. Forward moves may skip
// stages (Planned straight to Closed is legal); any backward move fails.
// Transition into Closed does not lock expense mutation, expenses may still
// document post-closure costs.
func (m *Mission) TransitionTo(next MissionStatus) error {
	if next.rank() < 0 {
		return unknownEnumError("mission status", string(next))
	}
	if next.rank() < m.Status.rank() {
		return transitionError(string(m.Status), string(next))
	}
	m.Status = next
	return nil
}

// AddExpense attaches an expense to the mission, re-parenting it away from
// any previous owner. A negative amount is rejected. Duplicate attachments of
// distinct expense values are preserved; expenses are distinguished by
// identity, not value.
func (m *Mission) AddExpense(e *MissionExpense) error {
	if e.Amount < 0 {
		return fmt.Errorf("%w: expense amount %.2f", ErrInvalidAmount, e.Amount)
	}
	if e.mission == m {
		return nil
	}
	if e.mission != nil {
		e.mission.RemoveExpense(e)
	}
	e.mission = m
	e.MissionID = m.ID
	m.Expenses = append(m.Expenses, e)
	return nil
}

// RemoveExpense detaches an expense from the mission. Removing an expense
// that is not attached is a no-op, matching list semantics.
func (m *Mission) RemoveExpense(e *MissionExpense) {
	for i, cur := range m.Expenses {
		if cur == e {
			m.Expenses = append(m.Expenses[:i], m.Expenses[i+1:]...)
			e.mission = nil
			e.MissionID = primitive.NilObjectID
			return
		}
	}
}

// ExpenseTotal returns the live sum of attached expenses, rounded to two
// decimals. RecordedCost stays authoritative as stored; neither value ever
// silently overwrites the other.
func (m *Mission) ExpenseTotal() float64 {
	var total float64
	for _, e := range m.Expenses {
		total += e.Amount
	}
	return round2(total)
}

// CostDiscrepancy returns RecordedCost minus ExpenseTotal, for the
// persistence boundary to reconcile explicitly.
func (m *Mission) CostDiscrepancy() float64 {
	return round2(m.RecordedCost - m.ExpenseTotal())
}

// IsActiveAt reports whether the mission window contains ref.
func (m *Mission) IsActiveAt(ref time.Time) bool {
	return IsActiveAt(&m.StartDate, m.EndDate, ref)
}

// DurationDays returns the inclusive day span of the mission, or 0 while the
// end date is open.
func (m *Mission) DurationDays() int {
	if m.EndDate == nil || m.EndDate.Before(m.StartDate) {
		return 0
	}
	return int(m.EndDate.Sub(m.StartDate).Hours()/24) + 1
}

// Validate checks the mission record invariants ahead of persistence.
func (m *Mission) Validate() error {
	if m.EndDate != nil && m.EndDate.Before(m.StartDate) {
		return fmt.Errorf("%w: start %s, end %s",
			ErrInvalidTemporalRange, m.StartDate.Format(time.RFC3339), m.EndDate.Format(time.RFC3339))
	}
	if m.RecordedCost < 0 {
		return fmt.Errorf("%w: recorded cost %.2f", ErrInvalidAmount, m.RecordedCost)
	}
	for _, e := range m.Expenses {
		if e.Amount < 0 {
			return fmt.Errorf("%w: expense amount %.2f", ErrInvalidAmount, e.Amount)
		}
	}
	return nil
}
