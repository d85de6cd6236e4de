package task

import (
	"time"

	"github.com/amirasaad/famledger/pkg/domain/ledger"
	"github.com/amirasaad/famledger/pkg/domain/task"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Task represents a task record.
type Task struct {
	ID                       uuid.UUID  `gorm:"type:uuid;primaryKey"`
	FamilyID                 uuid.UUID  `gorm:"type:uuid;not null;index"`
	CreatedBy                uuid.UUID  `gorm:"type:uuid;not null"`
	AssigneeID               *uuid.UUID `gorm:"type:uuid;index"`
	Title                    string     `gorm:"not null;size:200"`
	Description              string     `gorm:"size:1000"`
	Status                   string     `gorm:"not null;size:20;index"`
	Priority                 string     `gorm:"not null;size:10"`
	DueDate                  *time.Time
	Type                     string           `gorm:"not null;size:20"`
	Amount                   *decimal.Decimal `gorm:"type:decimal(15,2)"`
	AutoGenerateTransaction  bool             `gorm:"not null"`
	IsRecurring              bool             `gorm:"not null"`
	RecurringType            string           `gorm:"size:20"`
	RecurringDay             *int
	RecurringEndDate         *time.Time
	LinkedRecurringEntradaID *uuid.UUID `gorm:"type:uuid"`
	LinkedRecurringSaidaID   *uuid.UUID `gorm:"type:uuid"`
	CompletedAt              *time.Time
	CreatedAt                time.Time
	UpdatedAt                time.Time
}

// TableName specifies the table name for the Task model.
func (Task) TableName() string {
	return "tasks"
}

func fromDomain(t *task.Task) *Task {
	return &Task{
		ID:                       t.ID,
		FamilyID:                 t.FamilyID,
		CreatedBy:                t.CreatedBy,
		AssigneeID:               t.AssigneeID,
		Title:                    t.Title,
		Description:              t.Description,
		Status:                   string(t.Status),
		Priority:                 string(t.Priority),
		DueDate:                  t.DueDate,
		Type:                     string(t.Type),
		Amount:                   t.Amount,
		AutoGenerateTransaction:  t.AutoGenerateTransaction,
		IsRecurring:              t.Recurrence.IsRecurring,
		RecurringType:            string(t.Recurrence.Type),
		RecurringDay:             t.Recurrence.Day,
		RecurringEndDate:         t.Recurrence.EndDate,
		LinkedRecurringEntradaID: t.LinkedRecurringEntradaID,
		LinkedRecurringSaidaID:   t.LinkedRecurringSaidaID,
		CompletedAt:              t.CompletedAt,
		CreatedAt:                t.CreatedAt,
		UpdatedAt:                t.UpdatedAt,
	}
}

func toDomain(m *Task) *task.Task {
	return &task.Task{
		ID:                      m.ID,
		FamilyID:                m.FamilyID,
		CreatedBy:               m.CreatedBy,
		AssigneeID:              m.AssigneeID,
		Title:                   m.Title,
		Description:             m.Description,
		Status:                  task.Status(m.Status),
		Priority:                task.Priority(m.Priority),
		DueDate:                 m.DueDate,
		Type:                    task.Type(m.Type),
		Amount:                  m.Amount,
		AutoGenerateTransaction: m.AutoGenerateTransaction,
		Recurrence: ledger.Recurrence{
			IsRecurring: m.IsRecurring,
			Type:        ledger.RecurringType(m.RecurringType),
			Day:         m.RecurringDay,
			EndDate:     m.RecurringEndDate,
		},
		LinkedRecurringEntradaID: m.LinkedRecurringEntradaID,
		LinkedRecurringSaidaID:   m.LinkedRecurringSaidaID,
		CompletedAt:              m.CompletedAt,
		CreatedAt:                m.CreatedAt,
		UpdatedAt:                m.UpdatedAt,
	}
}
