package account

import (
	"context"

	"github.com/amirasaad/famledger/pkg/domain/ledger"
	"github.com/google/uuid"
)

// Repository defines financial account data access. Every lookup is scoped
// to a family; an id belonging to another family is not found.
type Repository interface {
	Create(ctx context.Context, a *ledger.Account) error
	Update(ctx context.Context, a *ledger.Account) error
	Delete(ctx context.Context, familyID, id uuid.UUID) error
	Get(ctx context.Context, familyID, id uuid.UUID) (*ledger.Account, error)
	List(ctx context.Context, familyID uuid.UUID) ([]*ledger.Account, error)

	// GetBalance returns the account with its balance derived from entries.
	GetBalance(ctx context.Context, familyID, id uuid.UUID) (*ledger.AccountBalance, error)
	// ListBalances returns every account of the family, by display order,
	// with derived balances.
	ListBalances(ctx context.Context, familyID uuid.UUID) ([]*ledger.AccountBalance, error)

	// NameTaken reports whether another account of the family uses name.
	NameTaken(ctx context.Context, familyID uuid.UUID, name string, exceptID uuid.UUID) (bool, error)
	// MaxDisplayOrder returns the highest display order in use, or 0.
	MaxDisplayOrder(ctx context.Context, familyID uuid.UUID) (int, error)
	// ClearDefault unsets isDefault on every account of the family but exceptID.
	ClearDefault(ctx context.Context, familyID, exceptID uuid.UUID) error
	// CountEntries counts the incomes and expenses recorded on the account.
	CountEntries(ctx context.Context, id uuid.UUID) (int64, error)
}
