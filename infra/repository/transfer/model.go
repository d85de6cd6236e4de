package transfer

import (
	"time"

	"github.com/amirasaad/famledger/pkg/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transfer represents a transfer record. ExpenseID and IncomeID point at
// the two entries written with it.
type Transfer struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	FamilyID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	UserID        uuid.UUID       `gorm:"type:uuid;not null"`
	FromAccountID uuid.UUID       `gorm:"type:uuid;not null"`
	ToAccountID   uuid.UUID       `gorm:"type:uuid;not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Description   string          `gorm:"size:255"`
	Date          time.Time       `gorm:"not null"`
	ExpenseID     uuid.UUID       `gorm:"type:uuid;not null"`
	IncomeID      uuid.UUID       `gorm:"type:uuid;not null"`
	CreatedAt     time.Time
}

// TableName specifies the table name for the Transfer model.
func (Transfer) TableName() string {
	return "transfers"
}

func fromDomain(t *ledger.Transfer) *Transfer {
	return &Transfer{
		ID:            t.ID,
		FamilyID:      t.FamilyID,
		UserID:        t.UserID,
		FromAccountID: t.FromAccountID,
		ToAccountID:   t.ToAccountID,
		Amount:        t.Amount,
		Description:   t.Description,
		Date:          t.Date.UTC(),
		ExpenseID:     t.ExpenseID,
		IncomeID:      t.IncomeID,
		CreatedAt:     t.CreatedAt,
	}
}

func toDomain(m *Transfer) *ledger.Transfer {
	return &ledger.Transfer{
		ID:            m.ID,
		FamilyID:      m.FamilyID,
		UserID:        m.UserID,
		FromAccountID: m.FromAccountID,
		ToAccountID:   m.ToAccountID,
		Amount:        m.Amount,
		Description:   m.Description,
		Date:          m.Date,
		ExpenseID:     m.ExpenseID,
		IncomeID:      m.IncomeID,
		CreatedAt:     m.CreatedAt,
	}
}
