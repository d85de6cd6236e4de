package infra

import (
	"errors"
	"strings"
	"time"

	"github.com/amirasaad/famledger/pkg/config"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// IsSQLite reports whether url points at a sqlite database rather than postgres.
func IsSQLite(url string) bool {
	return strings.HasPrefix(url, "file:") ||
		strings.HasSuffix(url, ".db") ||
		url == ":memory:"
}

// NewDBConnection opens the configured database. postgres:// URLs use the
// postgres driver, file: URLs and *.db paths use sqlite.
func NewDBConnection(
	cnf *config.DB,
	appEnv string,
) (*gorm.DB, error) {
	if cnf == nil || cnf.Url == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}
	databaseUrl := cnf.Url

	var logMode logger.LogLevel
	if appEnv == "development" {
		logMode = logger.Info
	} else {
		logMode = logger.Silent
	}

	dialector := postgres.Open(databaseUrl)
	sqliteDB := IsSQLite(databaseUrl)
	if sqliteDB {
		dialector = sqlite.Open(databaseUrl)
	}

	connection, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 logger.Default.LogMode(logMode),
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := connection.DB()
	if err != nil {
		return nil, err
	}
	if sqliteDB {
		// sqlite serializes writers; a single connection avoids SQLITE_BUSY.
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
	} else {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(25)
	}
	sqlDB.SetConnMaxLifetime(1 * time.Hour)

	return connection, nil
}
