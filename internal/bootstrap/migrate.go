package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/MuseLink-app/muselink-backend/db/migrations"
)

// Migrate applies pending schema migrations from the embedded FS.
func Migrate(ctx context.Context, dsn string) error {
	if dsn == "" {
		return fmt.Errorf("database DSN is not set")
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open sql connection: %w", err)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("configure goose: %w", err)
	}
	goose.SetBaseFS(migrations.FS)

	runCtx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	if err := goose.UpContext(runCtx, db, "."); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	log.Println("migrations applied")
	return nil
}

// MigrationStatus prints applied and pending migrations.
func MigrationStatus(dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open sql connection: %w", err)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("configure goose: %w", err)
	}
	goose.SetBaseFS(migrations.FS)

	if err := goose.Status(db, "."); err != nil {
		return fmt.Errorf("migration status: %w", err)
	}
	return nil
}
