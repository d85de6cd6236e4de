package entry

import (
	"context"

	"github.com/amirasaad/famledger/pkg/domain/ledger"
	"github.com/amirasaad/famledger/pkg/dto"
	"github.com/google/uuid"
)

// Repository defines income and expense data access. kind selects the table.
type Repository interface {
	// Create inserts the entry and its tag links.
	Create(ctx context.Context, e *ledger.Entry) error
	// Get returns the entry with its tags.
	Get(ctx context.Context, kind ledger.Kind, familyID, id uuid.UUID) (*ledger.Entry, error)
	// List returns the family's entries of kind matching filter, newest first.
	List(ctx context.Context, kind ledger.Kind, familyID uuid.UUID, filter dto.EntryFilter) ([]*ledger.Entry, error)
	// ListAll returns incomes and expenses together, oldest first.
	ListAll(ctx context.Context, familyID uuid.UUID, filter dto.EntryFilter) ([]ledger.Entry, error)
	// Update saves the entry fields and replaces its tag links.
	Update(ctx context.Context, e *ledger.Entry) error
	Delete(ctx context.Context, kind ledger.Kind, familyID, id uuid.UUID) error
}
