// Package goal models savings goals and their append-only contributions.
package goal

import (
	"fmt"
	"strings"
	"time"

	"github.com/amirasaad/famledger/pkg/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrGoalNotFound is returned when a goal id doesn't resolve inside the family.
var ErrGoalNotFound = fmt.Errorf("%w: goal not found", domain.ErrNotFound)

// Priority ranks goals: 0 low, 1 medium, 2 high.
type Priority int

const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
)

// SavingsGoal is a family savings target.
type SavingsGoal struct {
	ID              uuid.UUID        `json:"id"`
	FamilyID        uuid.UUID        `json:"familyId"`
	CreatedBy       uuid.UUID        `json:"createdBy"`
	Name            string           `json:"name"`
	Description     string           `json:"description,omitempty"`
	TargetAmount    decimal.Decimal  `json:"targetAmount"`
	CurrentAmount   decimal.Decimal  `json:"currentAmount"`
	TargetDate      *time.Time       `json:"targetDate,omitempty"`
	Priority        Priority         `json:"priority"`
	IsEmergencyFund bool             `json:"isEmergencyFund"`
	MonthlyExpenses *decimal.Decimal `json:"monthlyExpenses,omitempty"`
	TargetMonths    *int             `json:"targetMonths,omitempty"`
	IsCompleted     bool             `json:"isCompleted"`
	CompletedAt     *time.Time       `json:"completedAt,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

// Contribution is one deposit toward a goal. Contributions are never edited.
type Contribution struct {
	ID          uuid.UUID       `json:"id"`
	GoalID      uuid.UUID       `json:"goalId"`
	UserID      uuid.UUID       `json:"userId"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
	Date        time.Time       `json:"date"`
	EntradaID   *uuid.UUID      `json:"entradaId,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// NewGoalParams carries the fields accepted when creating a goal.
type NewGoalParams struct {
	FamilyID        uuid.UUID
	CreatedBy       uuid.UUID
	Name            string
	Description     string
	TargetAmount    decimal.Decimal
	TargetDate      *time.Time
	Priority        Priority
	IsEmergencyFund bool
	MonthlyExpenses *decimal.Decimal
	TargetMonths    *int
}

// NewGoal validates p and returns a goal with nothing saved yet.
func NewGoal(p NewGoalParams) (*SavingsGoal, error) {
	g := &SavingsGoal{
		ID:              uuid.New(),
		FamilyID:        p.FamilyID,
		CreatedBy:       p.CreatedBy,
		Name:            strings.TrimSpace(p.Name),
		Description:     strings.TrimSpace(p.Description),
		TargetAmount:    p.TargetAmount,
		CurrentAmount:   decimal.Zero,
		TargetDate:      p.TargetDate,
		Priority:        p.Priority,
		IsEmergencyFund: p.IsEmergencyFund,
		MonthlyExpenses: p.MonthlyExpenses,
		TargetMonths:    p.TargetMonths,
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	g.CreatedAt, g.UpdatedAt = now, now
	return g, nil
}

// Validate checks the goal invariants and derives the emergency fund target.
func (g *SavingsGoal) Validate() error {
	if g.Name == "" {
		return domain.Validationf("goal name is required")
	}
	if g.Priority < PriorityLow || g.Priority > PriorityHigh {
		return domain.Validationf("priority must be 0, 1 or 2")
	}
	if g.IsEmergencyFund {
		if g.MonthlyExpenses == nil || !g.MonthlyExpenses.IsPositive() {
			return domain.Validationf("monthlyExpenses is required for an emergency fund")
		}
		if g.TargetMonths == nil || *g.TargetMonths <= 0 {
			return domain.Validationf("targetMonths is required for an emergency fund")
		}
		g.TargetAmount = g.MonthlyExpenses.Mul(decimal.NewFromInt(int64(*g.TargetMonths)))
	}
	if !g.TargetAmount.IsPositive() {
		return domain.Validationf("targetAmount must be greater than zero")
	}
	return nil
}

// Contribute adds amount to the goal and marks it completed the first time
// the target is reached. It reports whether this call completed the goal.
// Completion is monotonic: nothing here ever clears it.
func (g *SavingsGoal) Contribute(amount decimal.Decimal, now time.Time) (bool, error) {
	if !amount.IsPositive() {
		return false, domain.Validationf("contribution amount must be greater than zero")
	}
	g.CurrentAmount = g.CurrentAmount.Add(amount)
	g.UpdatedAt = now
	if g.IsCompleted || g.CurrentAmount.LessThan(g.TargetAmount) {
		return false, nil
	}
	g.IsCompleted = true
	g.CompletedAt = &now
	return true, nil
}

// Progress is current/target clamped to [0, 1].
func (g *SavingsGoal) Progress() decimal.Decimal {
	if !g.TargetAmount.IsPositive() {
		return decimal.Zero
	}
	p := g.CurrentAmount.DivRound(g.TargetAmount, 4)
	if p.GreaterThan(decimal.NewFromInt(1)) {
		return decimal.NewFromInt(1)
	}
	return p
}

// NewContribution validates and returns a contribution to g. A zero date means now.
func NewContribution(g *SavingsGoal, userID uuid.UUID, amount decimal.Decimal, description string, date time.Time, entradaID *uuid.UUID) (*Contribution, error) {
	if !amount.IsPositive() {
		return nil, domain.Validationf("contribution amount must be greater than zero")
	}
	now := time.Now().UTC()
	if date.IsZero() {
		date = now
	}
	return &Contribution{
		ID:          uuid.New(),
		GoalID:      g.ID,
		UserID:      userID,
		Amount:      amount,
		Description: strings.TrimSpace(description),
		Date:        date,
		EntradaID:   entradaID,
		CreatedAt:   now,
	}, nil
}
