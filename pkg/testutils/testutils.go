// Package testutils provides sqlite-backed databases and fixtures for
// service and repository tests.
package testutils

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/amirasaad/famledger/infra"
	infrarepo "github.com/amirasaad/famledger/infra/repository"
	"github.com/amirasaad/famledger/pkg/config"
	"github.com/amirasaad/famledger/pkg/domain/family"
	"github.com/amirasaad/famledger/pkg/domain/ledger"
	"github.com/amirasaad/famledger/pkg/domain/user"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Password is the plain-text password of every fixture user.
const Password = "password123"

// NewTestDB returns a migrated in-memory sqlite database private to t.
func NewTestDB(t testing.TB) *gorm.DB {
	t.Helper()
	url := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := infra.NewDBConnection(&config.DB{Url: url}, "test")
	require.NoError(t, err)
	require.NoError(t, infra.AutoMigrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// NewTestUoW returns a unit of work over a fresh test database.
func NewTestUoW(t testing.TB) (*infrarepo.UoW, *gorm.DB) {
	t.Helper()
	db := NewTestDB(t)
	return infrarepo.NewUoW(db), db
}

// DiscardLogger returns a logger that writes nowhere.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// CreateUser stores a user with a unique email and Password.
func CreateUser(t testing.TB, uow *infrarepo.UoW, name string) *user.User {
	t.Helper()
	email := fmt.Sprintf("%s_%s@example.com", name, uuid.NewString()[:8])
	u, err := user.New(email, name, Password)
	require.NoError(t, err)
	repo, err := uow.UserRepository()
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

// CreateFamily stores a family with admin as its only admin.
func CreateFamily(t testing.TB, uow *infrarepo.UoW, admin uuid.UUID) *family.Family {
	t.Helper()
	f, err := family.New("Test family", admin)
	require.NoError(t, err)
	repo, err := uow.FamilyRepository()
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), f))
	return f
}

// AddMember adds userID to the family with the member role.
func AddMember(t testing.TB, uow *infrarepo.UoW, familyID, userID uuid.UUID) {
	t.Helper()
	repo, err := uow.FamilyRepository()
	require.NoError(t, err)
	require.NoError(t, repo.AddMember(context.Background(), &family.Member{
		FamilyID: familyID,
		UserID:   userID,
		Role:     family.RoleMember,
	}))
}

// CreateAccount stores a checking account with the given initial balance.
func CreateAccount(t testing.TB, uow *infrarepo.UoW, familyID uuid.UUID, name string, initial int64) *ledger.Account {
	t.Helper()
	a, err := ledger.NewAccount(ledger.NewAccountParams{
		FamilyID:       familyID,
		Name:           name,
		Type:           ledger.AccountChecking,
		InitialBalance: decimal.NewFromInt(initial),
	})
	require.NoError(t, err)
	repo, err := uow.AccountRepository()
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), a))
	return a
}

// CreateEntry stores an entry of kind on the account.
func CreateEntry(t testing.TB, uow *infrarepo.UoW, kind ledger.Kind, a *ledger.Account, userID uuid.UUID, amount int64, recurring bool) *ledger.Entry {
	t.Helper()
	return CreateEntryAmount(t, uow, kind, a, userID, decimal.NewFromInt(amount), recurring)
}

// CreateEntryAmount is CreateEntry for fractional amounts.
func CreateEntryAmount(t testing.TB, uow *infrarepo.UoW, kind ledger.Kind, a *ledger.Account, userID uuid.UUID, amount decimal.Decimal, recurring bool) *ledger.Entry {
	t.Helper()
	rec := ledger.Recurrence{}
	if recurring {
		rec = ledger.Recurrence{IsRecurring: true, Type: ledger.Monthly}
	}
	e, err := ledger.NewEntry(ledger.NewEntryParams{
		Kind:        kind,
		FamilyID:    a.FamilyID,
		AccountID:   a.ID,
		UserID:      userID,
		Amount:      amount,
		Description: "fixture",
		Label:       "fixture",
		Recurrence:  rec,
	})
	require.NoError(t, err)
	repo, err := uow.EntryRepository()
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), e))
	return e
}

// ErrInjected is returned by inserts failed through FailInserts.
var ErrInjected = errors.New("injected insert failure")

// FailInserts makes every insert into table fail with ErrInjected until t ends.
func FailInserts(t testing.TB, db *gorm.DB, table string) {
	t.Helper()
	name := "testutils:fail_" + table
	require.NoError(t, db.Callback().Create().Before("gorm:create").Register(name, func(tx *gorm.DB) {
		if tx.Statement.Table == table {
			_ = tx.AddError(ErrInjected)
		}
	}))
	t.Cleanup(func() {
		_ = db.Callback().Create().Remove(name)
	})
}
