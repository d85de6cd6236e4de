package transfer

import (
	"context"

	"github.com/amirasaad/famledger/infra/repository/account"
	"github.com/amirasaad/famledger/infra/repository/common"
	"github.com/amirasaad/famledger/pkg/domain/ledger"
	repo "github.com/amirasaad/famledger/pkg/repository/transfer"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// New returns a gorm-backed transfer repository.
func New(db *gorm.DB) repo.Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, t *ledger.Transfer) error {
	return common.WrapError(func() error {
		return r.db.WithContext(ctx).Create(fromDomain(t)).Error
	})
}

func (r *repository) List(ctx context.Context, familyID uuid.UUID) ([]*ledger.Transfer, error) {
	db := r.db.WithContext(ctx)
	var rows []Transfer
	if err := db.Where("family_id = ?", familyID).
		Order("date DESC, created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, common.MapGormErrorToDomain(err)
	}
	var accounts []account.Account
	if err := db.Where("family_id = ?", familyID).Find(&accounts).Error; err != nil {
		return nil, common.MapGormErrorToDomain(err)
	}
	summaries := make(map[uuid.UUID]ledger.AccountSummary, len(accounts))
	for i := range accounts {
		summaries[accounts[i].ID] = account.ToDomain(&accounts[i]).Summary()
	}
	out := make([]*ledger.Transfer, 0, len(rows))
	for i := range rows {
		t := toDomain(&rows[i])
		if s, ok := summaries[t.FromAccountID]; ok {
			t.FromAccount = &s
		}
		if s, ok := summaries[t.ToAccountID]; ok {
			t.ToAccount = &s
		}
		out = append(out, t)
	}
	return out, nil
}

var _ repo.Repository = (*repository)(nil)
