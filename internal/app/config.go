package app

import (
	"strings"

	"github.com/joho/godotenv"

	dbpkg "github.com/ellenorzo/ellenorzo-backend/internal/data/db"
	"github.com/ellenorzo/ellenorzo-backend/internal/platform/envutil"
	"github.com/ellenorzo/ellenorzo-backend/internal/platform/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Environment string
	Version     string

	DBDriver   string
	Postgres   dbpkg.PostgresConfig
	SQLitePath string
}

// LoadDotEnv reads an optional .env file; real environment variables win.
func LoadDotEnv() {
	_ = godotenv.Load()
}

func LoadConfig(log *logger.Logger) Config {
	driver := strings.ToLower(envutil.String("DB_DRIVER", DriverPostgres, log))
	if driver != DriverSQLite {
		driver = DriverPostgres
	}
	return Config{
		Environment: envutil.String("APP_ENV", "development", log),
		Version:     envutil.String("APP_VERSION", "dev", log),
		DBDriver:    driver,
		Postgres: dbpkg.PostgresConfig{
			Host:         envutil.String("POSTGRES_HOST", "localhost", log),
			Port:         envutil.String("POSTGRES_PORT", "5432", log),
			User:         envutil.String("POSTGRES_USER", "postgres", log),
			Password:     envutil.String("POSTGRES_PASSWORD", "", log),
			Name:         envutil.String("POSTGRES_NAME", "ellenorzo", log),
			SSLMode:      envutil.String("POSTGRES_SSLMODE", "disable", log),
			MaxOpenConns: envutil.Int("DB_MAX_OPEN_CONNS", 20, log),
		},
		SQLitePath: envutil.String("SQLITE_PATH", "ellenorzo.db", log),
	}
}
