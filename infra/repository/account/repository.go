package account

import (
	"context"

	"github.com/amirasaad/famledger/infra/repository/common"
	"github.com/amirasaad/famledger/pkg/domain/ledger"
	repo "github.com/amirasaad/famledger/pkg/repository/account"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New returns a gorm-backed account repository.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, a *ledger.Account) error {
	return common.WrapError(func() error {
		return r.db.WithContext(ctx).Create(fromDomain(a)).Error
	})
}

func (r *repository) Update(ctx context.Context, a *ledger.Account) error {
	return common.WrapError(func() error {
		return r.db.WithContext(ctx).Save(fromDomain(a)).Error
	})
}

func (r *repository) Delete(ctx context.Context, familyID, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("family_id = ? AND id = ?", familyID, id).Delete(&Account{})
	if res.Error != nil {
		return common.MapGormErrorToDomain(res.Error)
	}
	if res.RowsAffected == 0 {
		return ledger.ErrAccountNotFound
	}
	return nil
}

func (r *repository) Get(ctx context.Context, familyID, id uuid.UUID) (*ledger.Account, error) {
	var m Account
	if err := r.db.WithContext(ctx).
		Where("family_id = ? AND id = ?", familyID, id).
		First(&m).Error; err != nil {
		return nil, common.NotFoundAs(err, ledger.ErrAccountNotFound)
	}
	return ToDomain(&m), nil
}

func (r *repository) List(ctx context.Context, familyID uuid.UUID) ([]*ledger.Account, error) {
	var rows []Account
	if err := r.db.WithContext(ctx).
		Where("family_id = ?", familyID).
		Order("display_order, created_at").
		Find(&rows).Error; err != nil {
		return nil, common.MapGormErrorToDomain(err)
	}
	out := make([]*ledger.Account, 0, len(rows))
	for i := range rows {
		out = append(out, ToDomain(&rows[i]))
	}
	return out, nil
}

func (r *repository) GetBalance(ctx context.Context, familyID, id uuid.UUID) (*ledger.AccountBalance, error) {
	var rows []balanceRow
	if err := r.db.WithContext(ctx).
		Model(&Account{}).
		Select(balanceSelect).
		Where("financial_accounts.family_id = ? AND financial_accounts.id = ?", familyID, id).
		Scan(&rows).Error; err != nil {
		return nil, common.MapGormErrorToDomain(err)
	}
	if len(rows) == 0 {
		return nil, ledger.ErrAccountNotFound
	}
	return rows[0].toDomain(), nil
}

func (r *repository) ListBalances(ctx context.Context, familyID uuid.UUID) ([]*ledger.AccountBalance, error) {
	var rows []balanceRow
	if err := r.db.WithContext(ctx).
		Model(&Account{}).
		Select(balanceSelect).
		Where("financial_accounts.family_id = ?", familyID).
		Order("financial_accounts.display_order, financial_accounts.created_at").
		Scan(&rows).Error; err != nil {
		return nil, common.MapGormErrorToDomain(err)
	}
	out := make([]*ledger.AccountBalance, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDomain())
	}
	return out, nil
}

func (r *repository) NameTaken(ctx context.Context, familyID uuid.UUID, name string, exceptID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Account{}).
		Where("family_id = ? AND name = ? AND id <> ?", familyID, name, exceptID).
		Count(&count).Error
	if err != nil {
		return false, common.MapGormErrorToDomain(err)
	}
	return count > 0, nil
}

func (r *repository) MaxDisplayOrder(ctx context.Context, familyID uuid.UUID) (int, error) {
	var maxOrder int
	err := r.db.WithContext(ctx).Model(&Account{}).
		Select("COALESCE(MAX(display_order), 0)").
		Where("family_id = ?", familyID).
		Scan(&maxOrder).Error
	if err != nil {
		return 0, common.MapGormErrorToDomain(err)
	}
	return maxOrder, nil
}

func (r *repository) ClearDefault(ctx context.Context, familyID, exceptID uuid.UUID) error {
	return common.WrapError(func() error {
		return r.db.WithContext(ctx).Model(&Account{}).
			Where("family_id = ? AND id <> ? AND is_default = ?", familyID, exceptID, true).
			Update("is_default", false).Error
	})
}

func (r *repository) CountEntries(ctx context.Context, id uuid.UUID) (int64, error) {
	var incomes, expenses int64
	db := r.db.WithContext(ctx)
	if err := db.Table("incomes").Where("account_id = ?", id).Count(&incomes).Error; err != nil {
		return 0, common.MapGormErrorToDomain(err)
	}
	if err := db.Table("expenses").Where("account_id = ?", id).Count(&expenses).Error; err != nil {
		return 0, common.MapGormErrorToDomain(err)
	}
	return incomes + expenses, nil
}

var _ repo.Repository = (*repository)(nil)
