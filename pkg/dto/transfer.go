package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransferCreate is the body of POST /families/{familyId}/transfers.
type TransferCreate struct {
	FromAccountID uuid.UUID       `json:"fromAccountId" validate:"required"`
	ToAccountID   uuid.UUID       `json:"toAccountId" validate:"required"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description,omitempty" validate:"max=255"`
	Date          *time.Time      `json:"date,omitempty"`
}
