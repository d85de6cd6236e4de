package transfer

import (
	"context"

	"github.com/amirasaad/famledger/pkg/domain/ledger"
	"github.com/google/uuid"
)

// Repository defines transfer data access.
type Repository interface {
	Create(ctx context.Context, t *ledger.Transfer) error
	// List returns the family's transfers, newest first, with account summaries.
	List(ctx context.Context, familyID uuid.UUID) ([]*ledger.Transfer, error)
}
