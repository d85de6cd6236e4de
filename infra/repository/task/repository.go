package task

import (
	"context"
	"errors"

	"github.com/amirasaad/famledger/infra/repository/common"
	"github.com/amirasaad/famledger/infra/repository/entry"
	"github.com/amirasaad/famledger/infra/repository/user"
	"github.com/amirasaad/famledger/pkg/domain/ledger"
	"github.com/amirasaad/famledger/pkg/domain/task"
	domainuser "github.com/amirasaad/famledger/pkg/domain/user"
	"github.com/amirasaad/famledger/pkg/dto"
	entryrepo "github.com/amirasaad/famledger/pkg/repository/entry"
	repo "github.com/amirasaad/famledger/pkg/repository/task"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repository struct {
	db *gorm.DB
}

// New returns a gorm-backed task repository.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, t *task.Task) error {
	return common.WrapError(func() error {
		return r.db.WithContext(ctx).Create(fromDomain(t)).Error
	})
}

func (r *repository) Get(ctx context.Context, familyID, id uuid.UUID) (*task.Task, error) {
	return r.get(ctx, r.db.WithContext(ctx), familyID, id)
}

func (r *repository) GetForUpdate(ctx context.Context, familyID, id uuid.UUID) (*task.Task, error) {
	return r.get(ctx, r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), familyID, id)
}

func (r *repository) get(ctx context.Context, db *gorm.DB, familyID, id uuid.UUID) (*task.Task, error) {
	var m Task
	if err := db.Where("family_id = ? AND id = ?", familyID, id).First(&m).Error; err != nil {
		return nil, common.NotFoundAs(err, task.ErrTaskNotFound)
	}
	out, err := r.withRelations(ctx, []Task{m})
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

func (r *repository) List(ctx context.Context, familyID uuid.UUID, filter dto.TaskFilter) ([]*task.Task, error) {
	q := r.db.WithContext(ctx).Where("family_id = ?", familyID)
	if filter.Status != nil {
		q = q.Where("status = ?", string(*filter.Status))
	}
	if filter.AssigneeID != nil {
		q = q.Where("assignee_id = ?", *filter.AssigneeID)
	}
	if filter.Type != nil {
		q = q.Where("type = ?", string(*filter.Type))
	}
	var rows []Task
	if err := q.Order("CASE WHEN due_date IS NULL THEN 1 ELSE 0 END, due_date, created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, common.MapGormErrorToDomain(err)
	}
	return r.withRelations(ctx, rows)
}

func (r *repository) Update(ctx context.Context, t *task.Task) error {
	return common.WrapError(func() error {
		return r.db.WithContext(ctx).Save(fromDomain(t)).Error
	})
}

func (r *repository) Delete(ctx context.Context, familyID, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("family_id = ? AND id = ?", familyID, id).Delete(&Task{})
	if res.Error != nil {
		return common.MapGormErrorToDomain(res.Error)
	}
	if res.RowsAffected == 0 {
		return task.ErrTaskNotFound
	}
	return nil
}

// withRelations maps rows to tasks with creator, assignee and linked
// templates. A template deleted since linking is left nil.
func (r *repository) withRelations(ctx context.Context, rows []Task) ([]*task.Task, error) {
	out := make([]*task.Task, 0, len(rows))
	if len(rows) == 0 {
		return out, nil
	}
	userIDs := make([]uuid.UUID, 0, len(rows)*2)
	for i := range rows {
		userIDs = append(userIDs, rows[i].CreatedBy)
		if rows[i].AssigneeID != nil {
			userIDs = append(userIDs, *rows[i].AssigneeID)
		}
	}
	var users []user.User
	if err := r.db.WithContext(ctx).Where("id IN ?", userIDs).Find(&users).Error; err != nil {
		return nil, common.MapGormErrorToDomain(err)
	}
	identities := make(map[uuid.UUID]*domainuser.Identity, len(users))
	for i := range users {
		identities[users[i].ID] = users[i].Identity()
	}

	entries := entry.New(r.db)
	for i := range rows {
		t := toDomain(&rows[i])
		t.Creator = identities[t.CreatedBy]
		if t.AssigneeID != nil {
			t.Assignee = identities[*t.AssigneeID]
		}
		var err error
		if t.LinkedRecurringSaidaID != nil {
			t.LinkedRecurringSaida, err = template(ctx, entries, ledger.Expense, t.FamilyID, *t.LinkedRecurringSaidaID)
		} else if t.LinkedRecurringEntradaID != nil {
			t.LinkedRecurringEntrada, err = template(ctx, entries, ledger.Income, t.FamilyID, *t.LinkedRecurringEntradaID)
		}
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func template(ctx context.Context, entries entryrepo.Repository, kind ledger.Kind, familyID, id uuid.UUID) (*ledger.Entry, error) {
	e, err := entries.Get(ctx, kind, familyID, id)
	if errors.Is(err, ledger.ErrEntryNotFound) {
		return nil, nil
	}
	return e, err
}

var _ repo.Repository = (*repository)(nil)
