package tag

import (
	"context"

	"github.com/amirasaad/famledger/pkg/domain/ledger"
	"github.com/google/uuid"
)

// Repository defines tag data access.
type Repository interface {
	Create(ctx context.Context, t *ledger.Tag) error
	List(ctx context.Context, familyID uuid.UUID) ([]ledger.Tag, error)
	// GetMany returns the family's tags among ids. Missing ids are omitted.
	GetMany(ctx context.Context, familyID uuid.UUID, ids []uuid.UUID) ([]ledger.Tag, error)
	NameTaken(ctx context.Context, familyID uuid.UUID, name string) (bool, error)
	// Delete removes the tag and its entry links.
	Delete(ctx context.Context, familyID, id uuid.UUID) error
}
