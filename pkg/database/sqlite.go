package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/civicworks/hazard-portal/pkg/config"
)

// NewSQLite opens the portal's single database file, creating parent
// directories on first run.
func NewSQLite(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	if dir := filepath.Dir(cfg.Path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sqlx.Open("sqlite3", cfg.Path+"?_foreign_keys=on")
	if err != nil {
		return nil, err
	}

	// SQLite serialises writers; a single connection avoids database-locked
	// errors under the portal's light traffic.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}
