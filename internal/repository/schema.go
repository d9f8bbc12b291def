package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Migrate creates the portal's tables if they do not exist yet. There is no
// migrations system; the statements are idempotent and run at every startup.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS hazard_reports (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			before_image TEXT NOT NULL,
			after_image TEXT,
			description TEXT NOT NULL,
			latitude REAL NOT NULL,
			longitude REAL NOT NULL,
			status TEXT NOT NULL DEFAULT 'Pending',
			date_reported DATETIME NOT NULL,
			date_resolved DATETIME,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS admin (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS teacher_pins (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			pin TEXT UNIQUE NOT NULL,
			teacher_name TEXT,
			is_active INTEGER DEFAULT 1,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			created_by INTEGER,
			FOREIGN KEY (created_by) REFERENCES admin (id)
		)`,
		`CREATE TABLE IF NOT EXISTS rfid_logs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_type TEXT NOT NULL,
			card_id TEXT NOT NULL,
			card_data TEXT,
			teacher_pin TEXT,
			ip_address TEXT,
			user_agent TEXT,
			scan_timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
			is_verified INTEGER DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_rfid_logs_scan_timestamp ON rfid_logs(scan_timestamp)`,
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate schema: %w", err)
		}
	}

	return nil
}
