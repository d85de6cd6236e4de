package dto

import (
	"time"

	"github.com/amirasaad/famledger/pkg/domain/common"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GoalCreate is the body of POST /families/{familyId}/goals.
type GoalCreate struct {
	Name            string           `json:"name" validate:"required,max=100"`
	Description     string           `json:"description,omitempty" validate:"max=500"`
	TargetAmount    decimal.Decimal  `json:"targetAmount"`
	TargetDate      *time.Time       `json:"targetDate,omitempty"`
	Priority        int              `json:"priority" validate:"min=0,max=2"`
	IsEmergencyFund bool             `json:"isEmergencyFund"`
	MonthlyExpenses *decimal.Decimal `json:"monthlyExpenses,omitempty"`
	TargetMonths    *int             `json:"targetMonths,omitempty"`
}

// GoalUpdate is a sparse goal update. currentAmount and completion are
// driven by contributions only.
type GoalUpdate struct {
	Name            common.Optional[string]          `json:"name"`
	Description     common.Optional[string]          `json:"description"`
	TargetAmount    common.Optional[decimal.Decimal] `json:"targetAmount"`
	TargetDate      common.Optional[time.Time]       `json:"targetDate"`
	Priority        common.Optional[int]             `json:"priority"`
	MonthlyExpenses common.Optional[decimal.Decimal] `json:"monthlyExpenses"`
	TargetMonths    common.Optional[int]             `json:"targetMonths"`
}

// ContributionCreate is the body of POST .../goals/{goalId}/contributions.
type ContributionCreate struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty" validate:"max=255"`
	Date        *time.Time      `json:"date,omitempty"`
	EntradaID   *uuid.UUID      `json:"entradaId,omitempty"`
}
