package user

import (
	"context"
	"strings"

	"github.com/amirasaad/famledger/infra/repository/common"
	"github.com/amirasaad/famledger/pkg/domain/user"
	repo "github.com/amirasaad/famledger/pkg/repository/user"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New returns a gorm-backed user repository.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, u *user.User) error {
	return common.WrapError(func() error {
		return r.db.WithContext(ctx).Create(fromDomain(u)).Error
	})
}

func (r *repository) Get(ctx context.Context, id uuid.UUID) (*user.User, error) {
	var m User
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, common.NotFoundAs(err, user.ErrUserNotFound)
	}
	return toDomain(&m), nil
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var m User
	if err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&m).Error; err != nil {
		return nil, common.NotFoundAs(err, user.ErrUserNotFound)
	}
	return toDomain(&m), nil
}

func (r *repository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&User{}).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		Count(&count).Error
	if err != nil {
		return false, common.MapGormErrorToDomain(err)
	}
	return count > 0, nil
}

var _ repo.Repository = (*repository)(nil)
