package tag

import (
	"context"

	"github.com/amirasaad/famledger/infra/repository/common"
	"github.com/amirasaad/famledger/pkg/domain/ledger"
	repo "github.com/amirasaad/famledger/pkg/repository/tag"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New returns a gorm-backed tag repository.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, t *ledger.Tag) error {
	return common.WrapError(func() error {
		return r.db.WithContext(ctx).Create(&Tag{
			ID:        t.ID,
			FamilyID:  t.FamilyID,
			Name:      t.Name,
			Color:     t.Color,
			CreatedAt: t.CreatedAt,
		}).Error
	})
}

func (r *repository) List(ctx context.Context, familyID uuid.UUID) ([]ledger.Tag, error) {
	var rows []Tag
	if err := r.db.WithContext(ctx).Where("family_id = ?", familyID).Order("name").Find(&rows).Error; err != nil {
		return nil, common.MapGormErrorToDomain(err)
	}
	return toDomainSlice(rows), nil
}

func (r *repository) GetMany(ctx context.Context, familyID uuid.UUID, ids []uuid.UUID) ([]ledger.Tag, error) {
	if len(ids) == 0 {
		return []ledger.Tag{}, nil
	}
	var rows []Tag
	if err := r.db.WithContext(ctx).
		Where("family_id = ? AND id IN ?", familyID, ids).
		Order("name").
		Find(&rows).Error; err != nil {
		return nil, common.MapGormErrorToDomain(err)
	}
	return toDomainSlice(rows), nil
}

func (r *repository) NameTaken(ctx context.Context, familyID uuid.UUID, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Tag{}).
		Where("family_id = ? AND name = ?", familyID, name).
		Count(&count).Error
	if err != nil {
		return false, common.MapGormErrorToDomain(err)
	}
	return count > 0, nil
}

func (r *repository) Delete(ctx context.Context, familyID, id uuid.UUID) error {
	db := r.db.WithContext(ctx)
	res := db.Where("family_id = ? AND id = ?", familyID, id).Delete(&Tag{})
	if res.Error != nil {
		return common.MapGormErrorToDomain(res.Error)
	}
	if res.RowsAffected == 0 {
		return ledger.ErrTagNotFound
	}
	for _, join := range []string{"income_tags", "expense_tags"} {
		if err := db.Exec("DELETE FROM "+join+" WHERE tag_id = ?", id).Error; err != nil {
			return common.MapGormErrorToDomain(err)
		}
	}
	return nil
}

func toDomainSlice(rows []Tag) []ledger.Tag {
	out := make([]ledger.Tag, 0, len(rows))
	for i := range rows {
		out = append(out, ToDomain(&rows[i]))
	}
	return out
}

var _ repo.Repository = (*repository)(nil)
