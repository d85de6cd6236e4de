package infra

import (
	"embed"
	"errors"
	"fmt"
	"slices"

	infrarepo "github.com/amirasaad/famledger/infra/repository"
	"github.com/golang-migrate/migrate/v4"
	migratepostgres "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/gorm"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Direction selects whether Migrate applies or reverts the schema.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// Migrate brings the schema of db up or down. Postgres databases run the
// embedded SQL migrations; sqlite databases are migrated from the models.
func Migrate(db *gorm.DB, dir Direction) error {
	if db.Dialector.Name() == "sqlite" {
		return migrateModels(db, dir)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	driver, err := migratepostgres.WithInstance(sqlDB, &migratepostgres.Config{})
	if err != nil {
		return fmt.Errorf("create postgres driver: %w", err)
	}
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create iofs source: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}

	switch dir {
	case Up:
		err = m.Up()
	case Down:
		err = m.Down()
	default:
		return fmt.Errorf("unknown migration direction %q", dir)
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run migrations %s: %w", dir, err)
	}
	return nil
}

// AutoMigrate creates or updates every table from the gorm models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(infrarepo.Models()...)
}

func migrateModels(db *gorm.DB, dir Direction) error {
	switch dir {
	case Up:
		return AutoMigrate(db)
	case Down:
		models := infrarepo.Models()
		slices.Reverse(models)
		return db.Migrator().DropTable(models...)
	default:
		return fmt.Errorf("unknown migration direction %q", dir)
	}
}
