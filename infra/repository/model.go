package repository

import (
	"github.com/amirasaad/famledger/infra/repository/account"
	"github.com/amirasaad/famledger/infra/repository/entry"
	"github.com/amirasaad/famledger/infra/repository/family"
	"github.com/amirasaad/famledger/infra/repository/goal"
	"github.com/amirasaad/famledger/infra/repository/tag"
	"github.com/amirasaad/famledger/infra/repository/task"
	"github.com/amirasaad/famledger/infra/repository/transfer"
	"github.com/amirasaad/famledger/infra/repository/user"
)

// Models lists every persisted model, in dependency order, for AutoMigrate.
func Models() []any {
	return []any{
		&user.User{},
		&family.Family{},
		&family.Member{},
		&account.Account{},
		&tag.Tag{},
		&entry.Income{},
		&entry.Expense{},
		&entry.IncomeTag{},
		&entry.ExpenseTag{},
		&transfer.Transfer{},
		&goal.SavingsGoal{},
		&goal.Contribution{},
		&task.Task{},
	}
}
