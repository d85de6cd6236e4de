package repository

import (
	"context"
	"fmt"
	"reflect"

	"github.com/amirasaad/famledger/pkg/repository/account"
	"github.com/amirasaad/famledger/pkg/repository/entry"
	"github.com/amirasaad/famledger/pkg/repository/family"
	"github.com/amirasaad/famledger/pkg/repository/goal"
	"github.com/amirasaad/famledger/pkg/repository/tag"
	"github.com/amirasaad/famledger/pkg/repository/task"
	"github.com/amirasaad/famledger/pkg/repository/transfer"
	"github.com/amirasaad/famledger/pkg/repository/user"
)

// UnitOfWork defines the contract for transactional work and type-safe
// repository access. Repositories obtained from the UnitOfWork passed to
// Do's callback share that transaction.
type UnitOfWork interface {
	// Do executes fn within a transaction boundary. If fn returns an error,
	// the transaction is rolled back.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	// GetRepository returns a repository of the requested interface type,
	// bound to the current session.
	//
	//	repoAny, err := uow.GetRepository(reflect.TypeOf((*account.Repository)(nil)).Elem())
	GetRepository(repoType reflect.Type) (any, error)

	UserRepository() (user.Repository, error)
	FamilyRepository() (family.Repository, error)
	AccountRepository() (account.Repository, error)
	EntryRepository() (entry.Repository, error)
	TagRepository() (tag.Repository, error)
	TransferRepository() (transfer.Repository, error)
	GoalRepository() (goal.Repository, error)
	TaskRepository() (task.Repository, error)
}

// GetTyped resolves the repository interface T through uow.GetRepository.
func GetTyped[T any](uow UnitOfWork) (T, error) {
	var zero T
	repoAny, err := uow.GetRepository(reflect.TypeOf((*T)(nil)).Elem())
	if err != nil {
		return zero, err
	}
	repo, ok := repoAny.(T)
	if !ok {
		return zero, fmt.Errorf("repository %T does not implement %v", repoAny, reflect.TypeOf((*T)(nil)).Elem())
	}
	return repo, nil
}
