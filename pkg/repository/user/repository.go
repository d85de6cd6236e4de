package user

import (
	"context"

	"github.com/amirasaad/famledger/pkg/domain/user"
	"github.com/google/uuid"
)

// Repository defines the interface for user data access operations.
type Repository interface {
	// Create inserts a new user. A taken email yields domain.ErrAlreadyExists.
	Create(ctx context.Context, u *user.User) error

	// Get retrieves a user by its ID.
	Get(ctx context.Context, id uuid.UUID) (*user.User, error)

	// GetByEmail retrieves a user by its (lowercase) email.
	GetByEmail(ctx context.Context, email string) (*user.User, error)

	// ExistsByEmail checks if a user with the given email exists.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
