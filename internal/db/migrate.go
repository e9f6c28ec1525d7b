package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrations embed.FS

// Dialects understood by goose.
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite3"
)

func migrationsDir(dialect string) (string, error) {
	switch dialect {
	case DialectPostgres:
		return "migrations/postgres", nil
	case DialectSQLite:
		return "migrations/sqlite", nil
	default:
		return "", fmt.Errorf("unsupported dialect %q", dialect)
	}
}

func prepare(gdb *gorm.DB, dialect string) (*sql.DB, string, error) {
	dir, err := migrationsDir(dialect)
	if err != nil {
		return nil, "", err
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, "", fmt.Errorf("sql db: %w", err)
	}
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect(dialect); err != nil {
		return nil, "", err
	}
	return sqlDB, dir, nil
}

// Migrate applies all pending migrations.
func Migrate(ctx context.Context, gdb *gorm.DB, dialect string) error {
	sqlDB, dir, err := prepare(gdb, dialect)
	if err != nil {
		return err
	}
	if err := goose.UpContext(ctx, sqlDB, dir); err != nil {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}

// Rollback reverts the most recent migration.
func Rollback(ctx context.Context, gdb *gorm.DB, dialect string) error {
	sqlDB, dir, err := prepare(gdb, dialect)
	if err != nil {
		return err
	}
	if err := goose.DownContext(ctx, sqlDB, dir); err != nil {
		return fmt.Errorf("migrate down: %w", err)
	}
	return nil
}

// Status prints applied and pending migrations through the goose logger.
func Status(ctx context.Context, gdb *gorm.DB, dialect string) error {
	sqlDB, dir, err := prepare(gdb, dialect)
	if err != nil {
		return err
	}
	return goose.StatusContext(ctx, sqlDB, dir)
}

// Version returns the current schema version.
func Version(ctx context.Context, gdb *gorm.DB, dialect string) (int64, error) {
	sqlDB, _, err := prepare(gdb, dialect)
	if err != nil {
		return 0, err
	}
	return goose.GetDBVersionContext(ctx, sqlDB)
}
