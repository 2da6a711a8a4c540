package db

import (
	"fmt"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ellenorzo/ellenorzo-backend/internal/platform/logger"
)

// SQLiteDSN builds a DSN with foreign keys enforced. An empty path or ":memory:" yields a
// named shared in-memory database.
func SQLiteDSN(path string) string {
	path = strings.TrimSpace(path)
	if path == "" || path == ":memory:" {
		return "file:ellenorzo?mode=memory&cache=shared&_foreign_keys=on"
	}
	if strings.HasPrefix(path, "file:") && strings.Contains(path, "?") {
		return path + "&_foreign_keys=on"
	}
	return "file:" + path + "?_foreign_keys=on"
}

func NewSQLiteService(path string, logg *logger.Logger) (*Service, error) {
	serviceLog := logg.With("service", "SQLiteService")
	return openSQLite(SQLiteDSN(path), gormConfig(), serviceLog)
}

// OpenSQLite opens dsn as-is with the given gorm config.
func OpenSQLite(dsn string, cfg *gorm.Config, logg *logger.Logger) (*Service, error) {
	return openSQLite(dsn, cfg, logg.With("service", "SQLiteService"))
}

func openSQLite(dsn string, cfg *gorm.Config, serviceLog *logger.Logger) (*Service, error) {
	db, err := gorm.Open(sqlite.Open(dsn), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlite pool: %w", err)
	}
	// one writer; also keeps a shared in-memory database alive
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	serviceLog.Info("SQLite opened", "dsn", dsn)
	return &Service{db: db, log: serviceLog, driver: "sqlite"}, nil
}
