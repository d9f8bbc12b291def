package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/civicworks/hazard-portal/internal/models"
)

// AdminRepository manages the admin credential table.
type AdminRepository struct {
	db *sqlx.DB
}

// NewAdminRepository constructs an AdminRepository.
func NewAdminRepository(db *sqlx.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

// FindByUsername fetches an admin account by username.
func (r *AdminRepository) FindByUsername(ctx context.Context, username string) (*models.AdminAccount, error) {
	const query = `SELECT id, username, password_hash, created_at FROM admin WHERE username = ?`
	var account models.AdminAccount
	if err := r.db.GetContext(ctx, &account, query, username); err != nil {
		return nil, err
	}
	return &account, nil
}

// EnsureDefault inserts the seed credential unless the username already
// exists. Runs once per startup.
func (r *AdminRepository) EnsureDefault(ctx context.Context, username, passwordHash string) error {
	const check = `SELECT id FROM admin WHERE username = ?`
	var id int64
	err := r.db.GetContext(ctx, &id, check, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("check default admin: %w", err)
	}

	const insert = `INSERT INTO admin (username, password_hash) VALUES (?, ?)`
	if _, err := r.db.ExecContext(ctx, insert, username, passwordHash); err != nil {
		return fmt.Errorf("seed default admin: %w", err)
	}
	return nil
}
