// Package membership guards every family-scoped operation: the caller must
// belong to the family before anything inside it is read or written.
package membership

import (
	"context"
	"errors"

	"github.com/amirasaad/famledger/pkg/domain"
	"github.com/amirasaad/famledger/pkg/domain/family"
	"github.com/amirasaad/famledger/pkg/repository"
	"github.com/google/uuid"
)

// Require returns the caller's membership in familyID. A missing family and
// a missing membership both yield family.ErrNotMember, so the existence of
// other families never leaks.
func Require(
	ctx context.Context,
	uow repository.UnitOfWork,
	familyID, userID uuid.UUID,
) (*family.Member, error) {
	if userID == uuid.Nil {
		return nil, domain.ErrUnauthorized
	}
	repo, err := uow.FamilyRepository()
	if err != nil {
		return nil, err
	}
	m, err := repo.GetMember(ctx, familyID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrForbidden) {
			return nil, family.ErrNotMember
		}
		return nil, err
	}
	return m, nil
}

// RequireAdmin is Require restricted to admins.
func RequireAdmin(
	ctx context.Context,
	uow repository.UnitOfWork,
	familyID, userID uuid.UUID,
) (*family.Member, error) {
	m, err := Require(ctx, uow, familyID, userID)
	if err != nil {
		return nil, err
	}
	if !m.IsAdmin() {
		return nil, family.ErrNotAdmin
	}
	return m, nil
}
