package family

import (
	"context"

	"github.com/amirasaad/famledger/pkg/domain/family"
	"github.com/google/uuid"
)

// Repository defines family and membership data access.
type Repository interface {
	// Create inserts the family and its initial members.
	Create(ctx context.Context, f *family.Family) error

	// Get returns the family with its members.
	Get(ctx context.Context, id uuid.UUID) (*family.Family, error)

	// ListByUser returns the families userID belongs to.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*family.Family, error)

	// Rename updates the family name.
	Rename(ctx context.Context, id uuid.UUID, name string) error

	// GetMember returns the membership of userID in familyID.
	GetMember(ctx context.Context, familyID, userID uuid.UUID) (*family.Member, error)

	// AddMember inserts a membership.
	AddMember(ctx context.Context, m *family.Member) error
}
