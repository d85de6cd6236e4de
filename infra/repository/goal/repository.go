package goal

import (
	"context"

	"github.com/amirasaad/famledger/infra/repository/common"
	"github.com/amirasaad/famledger/pkg/domain/goal"
	repo "github.com/amirasaad/famledger/pkg/repository/goal"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repository struct {
	db *gorm.DB
}

// New returns a gorm-backed goal repository.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, g *goal.SavingsGoal) error {
	return common.WrapError(func() error {
		return r.db.WithContext(ctx).Create(fromDomain(g)).Error
	})
}

func (r *repository) Get(ctx context.Context, familyID, id uuid.UUID) (*goal.SavingsGoal, error) {
	return r.get(r.db.WithContext(ctx), familyID, id)
}

func (r *repository) GetForUpdate(ctx context.Context, familyID, id uuid.UUID) (*goal.SavingsGoal, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), familyID, id)
}

func (r *repository) get(db *gorm.DB, familyID, id uuid.UUID) (*goal.SavingsGoal, error) {
	var m SavingsGoal
	if err := db.Where("family_id = ? AND id = ?", familyID, id).First(&m).Error; err != nil {
		return nil, common.NotFoundAs(err, goal.ErrGoalNotFound)
	}
	return toDomain(&m), nil
}

func (r *repository) List(ctx context.Context, familyID uuid.UUID) ([]*goal.SavingsGoal, error) {
	var rows []SavingsGoal
	if err := r.db.WithContext(ctx).
		Where("family_id = ?", familyID).
		Order("is_completed, priority DESC, created_at").
		Find(&rows).Error; err != nil {
		return nil, common.MapGormErrorToDomain(err)
	}
	out := make([]*goal.SavingsGoal, 0, len(rows))
	for i := range rows {
		out = append(out, toDomain(&rows[i]))
	}
	return out, nil
}

func (r *repository) Update(ctx context.Context, g *goal.SavingsGoal) error {
	return common.WrapError(func() error {
		return r.db.WithContext(ctx).Save(fromDomain(g)).Error
	})
}

func (r *repository) Delete(ctx context.Context, familyID, id uuid.UUID) error {
	db := r.db.WithContext(ctx)
	res := db.Where("family_id = ? AND id = ?", familyID, id).Delete(&SavingsGoal{})
	if res.Error != nil {
		return common.MapGormErrorToDomain(res.Error)
	}
	if res.RowsAffected == 0 {
		return goal.ErrGoalNotFound
	}
	return common.WrapError(func() error {
		return db.Where("goal_id = ?", id).Delete(&Contribution{}).Error
	})
}

func (r *repository) AddContribution(ctx context.Context, c *goal.Contribution) error {
	return common.WrapError(func() error {
		return r.db.WithContext(ctx).Create(&Contribution{
			ID:          c.ID,
			GoalID:      c.GoalID,
			UserID:      c.UserID,
			Amount:      c.Amount,
			Description: c.Description,
			Date:        c.Date.UTC(),
			EntradaID:   c.EntradaID,
			CreatedAt:   c.CreatedAt,
		}).Error
	})
}

func (r *repository) ListContributions(ctx context.Context, goalID uuid.UUID) ([]*goal.Contribution, error) {
	var rows []Contribution
	if err := r.db.WithContext(ctx).
		Where("goal_id = ?", goalID).
		Order("date DESC, created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, common.MapGormErrorToDomain(err)
	}
	out := make([]*goal.Contribution, 0, len(rows))
	for i := range rows {
		out = append(out, contributionToDomain(&rows[i]))
	}
	return out, nil
}

var _ repo.Repository = (*repository)(nil)
