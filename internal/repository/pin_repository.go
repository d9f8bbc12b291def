package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/civicworks/hazard-portal/internal/models"
)

// PinRepository manages the teacher PIN registry.
type PinRepository struct {
	db *sqlx.DB
}

// NewPinRepository constructs a PinRepository.
func NewPinRepository(db *sqlx.DB) *PinRepository {
	return &PinRepository{db: db}
}

// List returns every registered pin, newest first.
func (r *PinRepository) List(ctx context.Context) ([]models.TeacherPin, error) {
	const query = `SELECT id, pin, teacher_name, is_active, created_at, created_by
		FROM teacher_pins ORDER BY created_at DESC`
	var pins []models.TeacherPin
	if err := r.db.SelectContext(ctx, &pins, query); err != nil {
		return nil, fmt.Errorf("list teacher pins: %w", err)
	}
	return pins, nil
}

// FindActiveByPin returns the active pin with the given value, or
// sql.ErrNoRows when no active pin matches.
func (r *PinRepository) FindActiveByPin(ctx context.Context, pin string) (*models.TeacherPin, error) {
	const query = `SELECT id, pin, teacher_name, is_active, created_at, created_by
		FROM teacher_pins WHERE pin = ? AND is_active = 1`
	var record models.TeacherPin
	if err := r.db.GetContext(ctx, &record, query, pin); err != nil {
		return nil, err
	}
	return &record, nil
}

// FindByID fetches a pin row regardless of its active flag.
func (r *PinRepository) FindByID(ctx context.Context, id int64) (*models.TeacherPin, error) {
	const query = `SELECT id, pin, teacher_name, is_active, created_at, created_by
		FROM teacher_pins WHERE id = ?`
	var record models.TeacherPin
	if err := r.db.GetContext(ctx, &record, query, id); err != nil {
		return nil, err
	}
	return &record, nil
}

// ExistsByPin checks whether a pin value is already registered.
func (r *PinRepository) ExistsByPin(ctx context.Context, pin string) (bool, error) {
	const query = `SELECT 1 FROM teacher_pins WHERE pin = ? LIMIT 1`
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, pin); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check teacher pin: %w", err)
	}
	return true, nil
}

// Create inserts a new active pin and returns its id.
func (r *PinRepository) Create(ctx context.Context, pin, teacherName string, createdBy *int64) (int64, error) {
	const query = `INSERT INTO teacher_pins (pin, teacher_name, is_active, created_by)
		VALUES (?, ?, 1, ?)`
	res, err := r.db.ExecContext(ctx, query, pin, teacherName, createdBy)
	if err != nil {
		return 0, fmt.Errorf("create teacher pin: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read teacher pin id: %w", err)
	}
	return id, nil
}

// Delete removes a pin row. Deleting an absent id affects zero rows and is
// not an error.
func (r *PinRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM teacher_pins WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete teacher pin: %w", err)
	}
	return nil
}

// SetActive updates a pin's active flag.
func (r *PinRepository) SetActive(ctx context.Context, id int64, active bool) error {
	const query = `UPDATE teacher_pins SET is_active = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, active, id); err != nil {
		return fmt.Errorf("toggle teacher pin: %w", err)
	}
	return nil
}

// Count returns the number of registered pins, used to decide seeding.
func (r *PinRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM teacher_pins`); err != nil {
		return 0, fmt.Errorf("count teacher pins: %w", err)
	}
	return count, nil
}

// SeedDefaults inserts the default pin set when the registry is empty.
func (r *PinRepository) SeedDefaults(ctx context.Context, pins []string) error {
	count, err := r.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	const insert = `INSERT INTO teacher_pins (pin, teacher_name, is_active) VALUES (?, ?, 1)`
	for _, pin := range pins {
		if _, err := r.db.ExecContext(ctx, insert, pin, "Teacher "+pin); err != nil {
			return fmt.Errorf("seed teacher pin %s: %w", pin, err)
		}
	}
	return nil
}
