package goal

import (
	"time"

	"github.com/amirasaad/famledger/pkg/domain/goal"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SavingsGoal represents a savings goal record.
type SavingsGoal struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	FamilyID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	CreatedBy       uuid.UUID       `gorm:"type:uuid;not null"`
	Name            string          `gorm:"not null;size:100"`
	Description     string          `gorm:"size:500"`
	TargetAmount    decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	CurrentAmount   decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	TargetDate      *time.Time
	Priority        int              `gorm:"not null"`
	IsEmergencyFund bool             `gorm:"not null"`
	MonthlyExpenses *decimal.Decimal `gorm:"type:decimal(15,2)"`
	TargetMonths    *int
	IsCompleted     bool `gorm:"not null"`
	CompletedAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName specifies the table name for the SavingsGoal model.
func (SavingsGoal) TableName() string {
	return "savings_goals"
}

// Contribution represents an append-only goal contribution record.
type Contribution struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	GoalID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Description string          `gorm:"size:255"`
	Date        time.Time       `gorm:"not null"`
	EntradaID   *uuid.UUID      `gorm:"type:uuid"`
	CreatedAt   time.Time
}

// TableName specifies the table name for the Contribution model.
func (Contribution) TableName() string {
	return "goal_contributions"
}

func fromDomain(g *goal.SavingsGoal) *SavingsGoal {
	return &SavingsGoal{
		ID:              g.ID,
		FamilyID:        g.FamilyID,
		CreatedBy:       g.CreatedBy,
		Name:            g.Name,
		Description:     g.Description,
		TargetAmount:    g.TargetAmount,
		CurrentAmount:   g.CurrentAmount,
		TargetDate:      g.TargetDate,
		Priority:        int(g.Priority),
		IsEmergencyFund: g.IsEmergencyFund,
		MonthlyExpenses: g.MonthlyExpenses,
		TargetMonths:    g.TargetMonths,
		IsCompleted:     g.IsCompleted,
		CompletedAt:     g.CompletedAt,
		CreatedAt:       g.CreatedAt,
		UpdatedAt:       g.UpdatedAt,
	}
}

func toDomain(m *SavingsGoal) *goal.SavingsGoal {
	return &goal.SavingsGoal{
		ID:              m.ID,
		FamilyID:        m.FamilyID,
		CreatedBy:       m.CreatedBy,
		Name:            m.Name,
		Description:     m.Description,
		TargetAmount:    m.TargetAmount,
		CurrentAmount:   m.CurrentAmount,
		TargetDate:      m.TargetDate,
		Priority:        goal.Priority(m.Priority),
		IsEmergencyFund: m.IsEmergencyFund,
		MonthlyExpenses: m.MonthlyExpenses,
		TargetMonths:    m.TargetMonths,
		IsCompleted:     m.IsCompleted,
		CompletedAt:     m.CompletedAt,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func contributionToDomain(m *Contribution) *goal.Contribution {
	return &goal.Contribution{
		ID:          m.ID,
		GoalID:      m.GoalID,
		UserID:      m.UserID,
		Amount:      m.Amount,
		Description: m.Description,
		Date:        m.Date,
		EntradaID:   m.EntradaID,
		CreatedAt:   m.CreatedAt,
	}
}
