package repository

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/amirasaad/famledger/pkg/domain/ledger"
	"github.com/amirasaad/famledger/pkg/repository"
	accountrepo "github.com/amirasaad/famledger/pkg/repository/account"
	taskrepo "github.com/amirasaad/famledger/pkg/repository/task"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockUoW(t *testing.T) (*UoW, sqlmock.Sqlmock) {
	t.Helper()
	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDb.Close() })
	dialector := postgres.New(postgres.Config{
		Conn:       mockDb,
		DriverName: "postgres",
	})
	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	return NewUoW(db), mock
}

func TestUoW_DoAndGetRepository(t *testing.T) {
	uow, mock := newMockUoW(t)

	mock.ExpectBegin()
	mock.ExpectCommit()

	err := uow.Do(context.Background(), func(txUow repository.UnitOfWork) error {
		repoAny, err := txUow.GetRepository(reflect.TypeOf((*accountrepo.Repository)(nil)).Elem())
		require.NoError(t, err)
		_, ok := repoAny.(accountrepo.Repository)
		assert.True(t, ok)

		taskRepo, err := repository.GetTyped[taskrepo.Repository](txUow)
		require.NoError(t, err)
		assert.NotNil(t, taskRepo)
		return nil
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUoW_TypeSafeMethods(t *testing.T) {
	uow, _ := newMockUoW(t)

	getters := []func() (any, error){
		func() (any, error) { return uow.UserRepository() },
		func() (any, error) { return uow.FamilyRepository() },
		func() (any, error) { return uow.AccountRepository() },
		func() (any, error) { return uow.EntryRepository() },
		func() (any, error) { return uow.TagRepository() },
		func() (any, error) { return uow.TransferRepository() },
		func() (any, error) { return uow.GoalRepository() },
		func() (any, error) { return uow.TaskRepository() },
	}
	for _, get := range getters {
		repo, err := get()
		require.NoError(t, err)
		assert.NotNil(t, repo)
	}
}

func TestUoW_UnsupportedRepository(t *testing.T) {
	uow, _ := newMockUoW(t)
	_, err := uow.GetRepository(reflect.TypeOf((*error)(nil)).Elem())
	assert.Error(t, err)
}

func TestUoW_RollbackOnError(t *testing.T) {
	uow, mock := newMockUoW(t)
	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := uow.Do(context.Background(), func(repository.UnitOfWork) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUoW_WritesShareTheTransaction(t *testing.T) {
	uow, mock := newMockUoW(t)
	acc, err := ledger.NewAccount(ledger.NewAccountParams{
		FamilyID:       uuid.New(),
		Name:           "Conta corrente",
		Type:           ledger.AccountChecking,
		InitialBalance: decimal.NewFromInt(100),
	})
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "financial_accounts"`).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`UPDATE "financial_accounts" SET "is_default"`).WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err = uow.Do(context.Background(), func(txUow repository.UnitOfWork) error {
		repo, err := txUow.AccountRepository()
		if err != nil {
			return err
		}
		if err := repo.Create(context.Background(), acc); err != nil {
			return err
		}
		return repo.ClearDefault(context.Background(), acc.FamilyID, acc.ID)
	})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUoW_NestedDoReusesTransaction(t *testing.T) {
	uow, mock := newMockUoW(t)

	mock.ExpectBegin()
	mock.ExpectCommit()

	err := uow.Do(context.Background(), func(outer repository.UnitOfWork) error {
		return outer.Do(context.Background(), func(inner repository.UnitOfWork) error {
			assert.Same(t, outer, inner)
			return nil
		})
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
