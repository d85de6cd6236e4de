// Package app assembles the services of the family ledger from their
// dependencies.
package app

import (
	"log/slog"

	"github.com/amirasaad/famledger/pkg/config"
	"github.com/amirasaad/famledger/pkg/eventbus"
	"github.com/amirasaad/famledger/pkg/repository"
	"github.com/amirasaad/famledger/pkg/service/account"
	"github.com/amirasaad/famledger/pkg/service/auth"
	"github.com/amirasaad/famledger/pkg/service/entry"
	"github.com/amirasaad/famledger/pkg/service/family"
	"github.com/amirasaad/famledger/pkg/service/goal"
	"github.com/amirasaad/famledger/pkg/service/report"
	"github.com/amirasaad/famledger/pkg/service/tag"
	"github.com/amirasaad/famledger/pkg/service/task"
	"github.com/amirasaad/famledger/pkg/service/transfer"
	"github.com/amirasaad/famledger/pkg/service/user"
	"gorm.io/gorm"
)

// Deps contains the infrastructure every service is built from.
type Deps struct {
	Uow      repository.UnitOfWork
	EventBus eventbus.Bus
	Logger   *slog.Logger
	DB       *gorm.DB
}

type App struct {
	Deps            *Deps
	Config          *config.App
	AuthService     *auth.Service
	UserService     *user.Service
	FamilyService   *family.Service
	AccountService  *account.Service
	EntryService    *entry.Service
	TagService      *tag.Service
	TransferService *transfer.Service
	GoalService     *goal.Service
	TaskService     *task.Service
	ReportService   *report.Service
}

func New(deps *Deps, cfg *config.App) *App {
	app := &App{
		Deps:   deps,
		Config: cfg,
	}
	app.setupEventBus()

	authMap := map[string]func() *auth.Service{
		"jwt": func() *auth.Service {
			return auth.NewWithJWT(deps.Uow, cfg.Auth.Jwt, deps.Logger)
		},
	}
	if authFactory, ok := authMap[cfg.Auth.Strategy]; ok {
		app.AuthService = authFactory()
	} else {
		app.AuthService = auth.NewWithBasic(deps.Uow, deps.Logger)
	}
	app.UserService = user.New(deps.Uow, deps.Logger)
	app.FamilyService = family.New(deps.Uow, deps.Logger)
	app.AccountService = account.New(deps.Uow, deps.Logger)
	app.EntryService = entry.New(deps.Uow, deps.Logger)
	app.TagService = tag.New(deps.Uow, deps.Logger)
	app.TransferService = transfer.New(deps.Uow, deps.EventBus, deps.Logger)
	app.GoalService = goal.New(deps.Uow, deps.EventBus, deps.Logger)
	app.TaskService = task.New(deps.Uow, deps.EventBus, deps.Logger)
	app.ReportService = report.New(deps.Uow, deps.Logger)
	return app
}
