// Package account provides business logic for a family's financial
// accounts: creation with display ordering, the single-default rule,
// sparse updates, guarded deletion and balance reads.
package account

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/amirasaad/famledger/pkg/domain/ledger"
	"github.com/amirasaad/famledger/pkg/dto"
	"github.com/amirasaad/famledger/pkg/repository"
	accountrepo "github.com/amirasaad/famledger/pkg/repository/account"
	"github.com/amirasaad/famledger/pkg/service/membership"
	"github.com/google/uuid"
)

// Service provides business logic for account operations.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a new Service.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	return &Service{uow: uow, logger: logger}
}

// CreateAccount opens an account at the end of the display order. When it
// is the new default, every other default is cleared in the same transaction.
func (s *Service) CreateAccount(
	ctx context.Context,
	familyID, userID uuid.UUID,
	in dto.AccountCreate,
) (b *ledger.AccountBalance, err error) {
	log := s.logger.With("context", "CreateAccount", "family_id", familyID, "user_id", userID)
	log.Debug("CreateAccount called", "name", in.Name)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if _, err := membership.Require(ctx, uow, familyID, userID); err != nil {
			return err
		}
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		a, err := ledger.NewAccount(ledger.NewAccountParams{
			FamilyID:       familyID,
			Name:           in.Name,
			Type:           ledger.AccountType(in.Type),
			InitialBalance: in.InitialBalance,
			CreditLimit:    in.CreditLimit,
			Color:          in.Color,
			Icon:           in.Icon,
			IsDefault:      in.IsDefault,
		})
		if err != nil {
			return err
		}
		if in.IsActive != nil {
			a.IsActive = *in.IsActive
		}
		if err := ensureNameFree(ctx, repo, a); err != nil {
			return err
		}
		maxOrder, err := repo.MaxDisplayOrder(ctx, familyID)
		if err != nil {
			return err
		}
		a.DisplayOrder = maxOrder + 1
		if a.IsDefault {
			if err := repo.ClearDefault(ctx, familyID, a.ID); err != nil {
				return err
			}
		}
		if err := repo.Create(ctx, a); err != nil {
			return err
		}
		b, err = repo.GetBalance(ctx, familyID, a.ID)
		return err
	})
	if err != nil {
		log.Error("CreateAccount failed", "error", err)
		b = nil
		return
	}
	log.Info("CreateAccount successful", "account_id", b.ID)
	return
}

// ListAccounts returns every account with its derived balance, by display order.
func (s *Service) ListAccounts(
	ctx context.Context,
	familyID, userID uuid.UUID,
) (bs []*ledger.AccountBalance, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if _, err := membership.Require(ctx, uow, familyID, userID); err != nil {
			return err
		}
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		bs, err = repo.ListBalances(ctx, familyID)
		return err
	})
	return
}

// GetAccount returns one account with its derived balance.
func (s *Service) GetAccount(
	ctx context.Context,
	familyID, userID, accountID uuid.UUID,
) (b *ledger.AccountBalance, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if _, err := membership.Require(ctx, uow, familyID, userID); err != nil {
			return err
		}
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		b, err = repo.GetBalance(ctx, familyID, accountID)
		return err
	})
	if err != nil {
		b = nil
	}
	return
}

// UpdateAccount applies a sparse update. Setting isDefault clears the
// previous default in the same transaction.
func (s *Service) UpdateAccount(
	ctx context.Context,
	familyID, userID, accountID uuid.UUID,
	in dto.AccountUpdate,
) (b *ledger.AccountBalance, err error) {
	log := s.logger.With("context", "UpdateAccount", "family_id", familyID, "account_id", accountID)
	log.Debug("UpdateAccount called")
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if _, err := membership.Require(ctx, uow, familyID, userID); err != nil {
			return err
		}
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		a, err := repo.Get(ctx, familyID, accountID)
		if err != nil {
			return err
		}
		applyUpdate(a, in)
		if err := a.Validate(); err != nil {
			return err
		}
		if in.Name.HasValue() {
			if err := ensureNameFree(ctx, repo, a); err != nil {
				return err
			}
		}
		a.UpdatedAt = time.Now().UTC()
		if a.IsDefault {
			if err := repo.ClearDefault(ctx, familyID, a.ID); err != nil {
				return err
			}
		}
		if err := repo.Update(ctx, a); err != nil {
			return err
		}
		b, err = repo.GetBalance(ctx, familyID, a.ID)
		return err
	})
	if err != nil {
		log.Error("UpdateAccount failed", "error", err)
		b = nil
		return
	}
	log.Info("UpdateAccount successful")
	return
}

// DeleteAccount removes an account that carries no entries.
func (s *Service) DeleteAccount(
	ctx context.Context,
	familyID, userID, accountID uuid.UUID,
) error {
	log := s.logger.With("context", "DeleteAccount", "family_id", familyID, "account_id", accountID)
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if _, err := membership.Require(ctx, uow, familyID, userID); err != nil {
			return err
		}
		repo, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		if _, err := repo.Get(ctx, familyID, accountID); err != nil {
			return err
		}
		n, err := repo.CountEntries(ctx, accountID)
		if err != nil {
			return err
		}
		if n > 0 {
			return ledger.ErrAccountHasEntries
		}
		return repo.Delete(ctx, familyID, accountID)
	})
	if err != nil {
		log.Error("DeleteAccount failed", "error", err)
		return err
	}
	log.Info("DeleteAccount successful")
	return nil
}

func ensureNameFree(ctx context.Context, repo accountrepo.Repository, a *ledger.Account) error {
	taken, err := repo.NameTaken(ctx, a.FamilyID, a.Name, a.ID)
	if err != nil {
		return err
	}
	if taken {
		return ledger.ErrAccountNameTaken
	}
	return nil
}

func applyUpdate(a *ledger.Account, in dto.AccountUpdate) {
	if in.Name.Set {
		a.Name = strings.TrimSpace(in.Name.Value)
	}
	if in.Type.HasValue() {
		a.Type = ledger.AccountType(in.Type.Value)
	}
	if in.InitialBalance.HasValue() {
		a.InitialBalance = in.InitialBalance.Value
	}
	if in.CreditLimit.Set {
		a.CreditLimit = in.CreditLimit.Ptr()
	}
	if in.Color.Set {
		a.Color = in.Color.Value
	}
	if in.Icon.Set {
		a.Icon = in.Icon.Value
	}
	if in.IsDefault.HasValue() {
		a.IsDefault = in.IsDefault.Value
	}
	if in.IsActive.HasValue() {
		a.IsActive = in.IsActive.Value
	}
	if in.DisplayOrder.HasValue() {
		a.DisplayOrder = in.DisplayOrder.Value
	}
}
