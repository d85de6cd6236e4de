package dto

import (
	"github.com/amirasaad/famledger/pkg/domain/common"
	"github.com/shopspring/decimal"
)

// AccountCreate is the body of POST /families/{familyId}/accounts.
type AccountCreate struct {
	Name           string           `json:"name" validate:"required,max=100"`
	Type           string           `json:"type" validate:"required,oneof=checking savings cash credit_card investment"`
	InitialBalance decimal.Decimal  `json:"initialBalance"`
	CreditLimit    *decimal.Decimal `json:"creditLimit,omitempty"`
	Color          string           `json:"color,omitempty" validate:"max=20"`
	Icon           string           `json:"icon,omitempty" validate:"max=50"`
	IsDefault      bool             `json:"isDefault"`
	IsActive       *bool            `json:"isActive,omitempty"`
}

// AccountUpdate is a sparse account update.
type AccountUpdate struct {
	Name           common.Optional[string]          `json:"name"`
	Type           common.Optional[string]          `json:"type"`
	InitialBalance common.Optional[decimal.Decimal] `json:"initialBalance"`
	CreditLimit    common.Optional[decimal.Decimal] `json:"creditLimit"`
	Color          common.Optional[string]          `json:"color"`
	Icon           common.Optional[string]          `json:"icon"`
	IsDefault      common.Optional[bool]            `json:"isDefault"`
	IsActive       common.Optional[bool]            `json:"isActive"`
	DisplayOrder   common.Optional[int]             `json:"displayOrder"`
}
