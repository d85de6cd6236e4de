package repository

import (
	"context"
	"fmt"
	"reflect"

	"github.com/amirasaad/famledger/infra/repository/account"
	"github.com/amirasaad/famledger/infra/repository/entry"
	"github.com/amirasaad/famledger/infra/repository/family"
	"github.com/amirasaad/famledger/infra/repository/goal"
	"github.com/amirasaad/famledger/infra/repository/tag"
	"github.com/amirasaad/famledger/infra/repository/task"
	"github.com/amirasaad/famledger/infra/repository/transfer"
	"github.com/amirasaad/famledger/infra/repository/user"
	"github.com/amirasaad/famledger/pkg/repository"
	accountrepo "github.com/amirasaad/famledger/pkg/repository/account"
	entryrepo "github.com/amirasaad/famledger/pkg/repository/entry"
	familyrepo "github.com/amirasaad/famledger/pkg/repository/family"
	goalrepo "github.com/amirasaad/famledger/pkg/repository/goal"
	tagrepo "github.com/amirasaad/famledger/pkg/repository/tag"
	taskrepo "github.com/amirasaad/famledger/pkg/repository/task"
	transferrepo "github.com/amirasaad/famledger/pkg/repository/transfer"
	userrepo "github.com/amirasaad/famledger/pkg/repository/user"
	"gorm.io/gorm"
)

// UoW provides transaction boundary and repository access in one abstraction.
// Repositories handed out inside Do share the transaction; outside Do they
// run on the plain connection.
type UoW struct {
	db           *gorm.DB
	tx           *gorm.DB
	repoRegistry map[reflect.Type]func(*gorm.DB) any
}

// NewUoW creates a new UoW for the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{
		db: db,
		repoRegistry: map[reflect.Type]func(*gorm.DB) any{
			typeOf[userrepo.Repository]():     func(db *gorm.DB) any { return user.New(db) },
			typeOf[familyrepo.Repository]():   func(db *gorm.DB) any { return family.New(db) },
			typeOf[accountrepo.Repository]():  func(db *gorm.DB) any { return account.New(db) },
			typeOf[entryrepo.Repository]():    func(db *gorm.DB) any { return entry.New(db) },
			typeOf[tagrepo.Repository]():      func(db *gorm.DB) any { return tag.New(db) },
			typeOf[transferrepo.Repository](): func(db *gorm.DB) any { return transfer.New(db) },
			typeOf[goalrepo.Repository]():     func(db *gorm.DB) any { return goal.New(db) },
			typeOf[taskrepo.Repository]():     func(db *gorm.DB) any { return task.New(db) },
		},
	}
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// Do runs the given function in a transaction boundary, providing a UoW with repository access.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	if u.tx != nil {
		return fn(u)
	}
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txnUow := &UoW{db: u.db, tx: tx, repoRegistry: u.repoRegistry}
		return fn(txnUow)
	})
}

func (u *UoW) session() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

// GetRepository returns the repository registered for repoType, bound to
// the current session.
func (u *UoW) GetRepository(repoType reflect.Type) (any, error) {
	constructor, ok := u.repoRegistry[repoType]
	if !ok {
		return nil, fmt.Errorf("unsupported repository type: %v", repoType)
	}
	return constructor(u.session()), nil
}

func (u *UoW) UserRepository() (userrepo.Repository, error) {
	return repository.GetTyped[userrepo.Repository](u)
}

func (u *UoW) FamilyRepository() (familyrepo.Repository, error) {
	return repository.GetTyped[familyrepo.Repository](u)
}

func (u *UoW) AccountRepository() (accountrepo.Repository, error) {
	return repository.GetTyped[accountrepo.Repository](u)
}

func (u *UoW) EntryRepository() (entryrepo.Repository, error) {
	return repository.GetTyped[entryrepo.Repository](u)
}

func (u *UoW) TagRepository() (tagrepo.Repository, error) {
	return repository.GetTyped[tagrepo.Repository](u)
}

func (u *UoW) TransferRepository() (transferrepo.Repository, error) {
	return repository.GetTyped[transferrepo.Repository](u)
}

func (u *UoW) GoalRepository() (goalrepo.Repository, error) {
	return repository.GetTyped[goalrepo.Repository](u)
}

func (u *UoW) TaskRepository() (taskrepo.Repository, error) {
	return repository.GetTyped[taskrepo.Repository](u)
}

var _ repository.UnitOfWork = (*UoW)(nil)
