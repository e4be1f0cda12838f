// Package repository implements the persistence ports on sqlx. Queries are
// written with ? placeholders and rebound per driver, so the same repository
// serves both the embedded sqlite file and PostgreSQL.
package repository

import (
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/Itsforsale2/Billdozer2/internal/config"
)

// NewDB creates a connection pool for the configured driver.
func NewDB(cfg *config.DBConfig) (*sqlx.DB, error) {
	var driver string
	switch cfg.Driver {
	case "sqlite":
		driver = "sqlite"
	case "postgres":
		driver = "pgx"
	default:
		return nil, fmt.Errorf("unsupported db driver %q", cfg.Driver)
	}

	db, err := sqlx.Connect(driver, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", cfg.Driver, err)
	}
	db.SetMaxOpenConns(cfg.MaxOpen)
	db.SetMaxIdleConns(cfg.MaxIdle)
	return db, nil
}
