// Package transfer moves money between two accounts of a family. A transfer
// is stored together with its backing expense and income in one transaction.
package transfer

import (
	"context"
	"errors"
	"log/slog"

	"github.com/amirasaad/famledger/pkg/domain"
	"github.com/amirasaad/famledger/pkg/domain/events"
	"github.com/amirasaad/famledger/pkg/domain/ledger"
	"github.com/amirasaad/famledger/pkg/dto"
	"github.com/amirasaad/famledger/pkg/eventbus"
	"github.com/amirasaad/famledger/pkg/repository"
	"github.com/amirasaad/famledger/pkg/service/membership"
	"github.com/google/uuid"
)

// ErrForeignAccount rejects a source or destination outside the family.
var ErrForeignAccount = domain.Validationf("both accounts must belong to this family")

// Service provides business logic for transfers.
type Service struct {
	uow    repository.UnitOfWork
	bus    eventbus.Bus
	logger *slog.Logger
}

// New creates a new Service.
func New(uow repository.UnitOfWork, bus eventbus.Bus, logger *slog.Logger) *Service {
	return &Service{uow: uow, bus: bus, logger: logger}
}

// CreateTransfer inserts the expense on the source, the income on the
// destination and the transfer row. Either all three are stored or none.
func (s *Service) CreateTransfer(
	ctx context.Context,
	familyID, userID uuid.UUID,
	in dto.TransferCreate,
) (t *ledger.Transfer, err error) {
	log := s.logger.With(
		"context", "CreateTransfer",
		"family_id", familyID,
		"user_id", userID,
		"from", in.FromAccountID,
		"to", in.ToAccountID,
	)
	log.Debug("CreateTransfer called", "amount", in.Amount)
	if in.FromAccountID == in.ToAccountID {
		log.Error("CreateTransfer failed", "error", ledger.ErrSameAccountTransfer)
		return nil, ledger.ErrSameAccountTransfer
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if _, err := membership.Require(ctx, uow, familyID, userID); err != nil {
			return err
		}
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		from, err := accounts.Get(ctx, familyID, in.FromAccountID)
		if err != nil {
			return foreign(err)
		}
		to, err := accounts.Get(ctx, familyID, in.ToAccountID)
		if err != nil {
			return foreign(err)
		}
		params := ledger.NewTransferParams{
			FamilyID:    familyID,
			UserID:      userID,
			From:        *from,
			To:          *to,
			Amount:      in.Amount,
			Description: in.Description,
		}
		if in.Date != nil {
			params.Date = in.Date.UTC()
		}
		created, expense, income, err := ledger.NewTransfer(params)
		if err != nil {
			return err
		}
		entries, err := uow.EntryRepository()
		if err != nil {
			return err
		}
		if err := entries.Create(ctx, expense); err != nil {
			return err
		}
		if err := entries.Create(ctx, income); err != nil {
			return err
		}
		transfers, err := uow.TransferRepository()
		if err != nil {
			return err
		}
		if err := transfers.Create(ctx, created); err != nil {
			return err
		}
		t = created
		return nil
	})
	if err != nil {
		log.Error("CreateTransfer failed", "error", err)
		t = nil
		return
	}
	log.Info("CreateTransfer successful", "transfer_id", t.ID)
	eventbus.EmitAll(ctx, s.bus, log, events.TransferCreated{
		FlowEvent:     events.NewFlowEvent(familyID, userID),
		TransferID:    t.ID,
		FromAccountID: t.FromAccountID,
		ToAccountID:   t.ToAccountID,
		Amount:        t.Amount,
	})
	return
}

// ListTransfers returns the family's transfers, newest first.
func (s *Service) ListTransfers(ctx context.Context, familyID, userID uuid.UUID) (ts []*ledger.Transfer, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		if _, err := membership.Require(ctx, uow, familyID, userID); err != nil {
			return err
		}
		repo, err := uow.TransferRepository()
		if err != nil {
			return err
		}
		ts, err = repo.List(ctx, familyID)
		return err
	})
	return
}

func foreign(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return ErrForeignAccount
	}
	return err
}
