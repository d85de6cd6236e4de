package goal

import (
	"context"

	"github.com/amirasaad/famledger/pkg/domain/goal"
	"github.com/google/uuid"
)

// Repository defines savings goal and contribution data access.
type Repository interface {
	Create(ctx context.Context, g *goal.SavingsGoal) error
	Get(ctx context.Context, familyID, id uuid.UUID) (*goal.SavingsGoal, error)
	// GetForUpdate loads the goal holding a row lock until the transaction ends.
	GetForUpdate(ctx context.Context, familyID, id uuid.UUID) (*goal.SavingsGoal, error)
	List(ctx context.Context, familyID uuid.UUID) ([]*goal.SavingsGoal, error)
	Update(ctx context.Context, g *goal.SavingsGoal) error
	// Delete removes the goal and its contributions.
	Delete(ctx context.Context, familyID, id uuid.UUID) error

	AddContribution(ctx context.Context, c *goal.Contribution) error
	ListContributions(ctx context.Context, goalID uuid.UUID) ([]*goal.Contribution, error)
}
