package database

import (
	"database/sql"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/example/oshxona/internal/config"
	"github.com/example/oshxona/internal/models"
)

// Connect opens the configured storage engine and runs migrations.
// The engine selector is validated by config.Load, so only supported
// values reach this point.
func Connect(cfg *config.Config) *gorm.DB {
	var dialector gorm.Dialector

	switch cfg.DBType {
	case config.EngineFile:
		if dir := filepath.Dir(cfg.DBFilePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				log.Fatalf("failed to create database directory: %v", err)
			}
		}
		dialector = sqlite.Open(cfg.DBFilePath)

	case config.EnginePostgres:
		if err := ensureDatabase(cfg.DatabaseURL); err != nil {
			log.Fatalf("failed to ensure database: %v", err)
		}
		dialector = postgres.Open(cfg.DatabaseURL)

	default:
		log.Fatalf("unsupported storage engine %q", cfg.DBType)
	}

	conn, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := Migrate(conn); err != nil {
		log.Fatalf("database migration failed: %v", err)
	}

	return conn
}

// Migrate creates or updates the schema. Safe to call every startup.
func Migrate(conn *gorm.DB) error {
	migrations := []interface{}{
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Address{},
		&models.Order{},
		&models.OrderItem{},
		&models.ScheduledJob{},
	}

	for _, migration := range migrations {
		if err := conn.AutoMigrate(migration); err != nil {
			return err
		}
	}

	return nil
}

func ensureDatabase(dsn string) error {
	if !strings.HasPrefix(dsn, "postgres://") && !strings.HasPrefix(dsn, "postgresql://") {
		return nil
	}

	parsed, err := url.Parse(dsn)
	if err != nil {
		return err
	}

	dbName := strings.TrimPrefix(parsed.Path, "/")
	if dbName == "" {
		return nil
	}

	parsed.Path = "/postgres"
	masterDSN := parsed.String()

	sqlDB, err := sql.Open("postgres", masterDSN)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		return err
	}

	var exists bool
	if err := sqlDB.QueryRow("SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = $1)", dbName).Scan(&exists); err != nil {
		return err
	}

	if exists {
		return nil
	}

	_, err = sqlDB.Exec("CREATE DATABASE " + pq.QuoteIdentifier(dbName))
	return err
}
