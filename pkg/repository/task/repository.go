package task

import (
	"context"

	"github.com/amirasaad/famledger/pkg/domain/task"
	"github.com/amirasaad/famledger/pkg/dto"
	"github.com/google/uuid"
)

// Repository defines task data access.
type Repository interface {
	Create(ctx context.Context, t *task.Task) error
	// Get returns the task with its creator, assignee and linked templates.
	Get(ctx context.Context, familyID, id uuid.UUID) (*task.Task, error)
	// GetForUpdate is Get holding a row lock on the task until the
	// transaction ends.
	GetForUpdate(ctx context.Context, familyID, id uuid.UUID) (*task.Task, error)
	List(ctx context.Context, familyID uuid.UUID, filter dto.TaskFilter) ([]*task.Task, error)
	Update(ctx context.Context, t *task.Task) error
	Delete(ctx context.Context, familyID, id uuid.UUID) error
}
