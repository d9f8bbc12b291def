package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/civicworks/hazard-portal/internal/models"
)

// ScanLogRepository appends and reads rfid_logs rows. The table is
// append-only; there are no update or delete paths.
type ScanLogRepository struct {
	db *sqlx.DB
}

// NewScanLogRepository constructs a ScanLogRepository.
func NewScanLogRepository(db *sqlx.DB) *ScanLogRepository {
	return &ScanLogRepository{db: db}
}

// Insert appends a scan event and returns its id. scan_timestamp is left to
// the database default.
func (r *ScanLogRepository) Insert(ctx context.Context, log *models.RFIDLog) (int64, error) {
	const query = `INSERT INTO rfid_logs
		(user_type, card_id, card_data, teacher_pin, ip_address, user_agent, is_verified)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		log.UserType,
		log.CardID,
		log.CardData,
		log.TeacherPin,
		log.IPAddress,
		log.UserAgent,
		log.IsVerified,
	)
	if err != nil {
		return 0, fmt.Errorf("insert rfid log: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read rfid log id: %w", err)
	}
	log.ID = id
	return id, nil
}

// List returns scan events newest first with limit/offset paging.
func (r *ScanLogRepository) List(ctx context.Context, limit, offset int) ([]models.RFIDLog, error) {
	const query = `SELECT id, user_type, card_id, card_data, teacher_pin,
		ip_address, user_agent, scan_timestamp, is_verified
		FROM rfid_logs ORDER BY scan_timestamp DESC LIMIT ? OFFSET ?`
	var logs []models.RFIDLog
	if err := r.db.SelectContext(ctx, &logs, query, limit, offset); err != nil {
		return nil, fmt.Errorf("list rfid logs: %w", err)
	}
	return logs, nil
}

// Count returns the total number of scan events.
func (r *ScanLogRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM rfid_logs`); err != nil {
		return 0, fmt.Errorf("count rfid logs: %w", err)
	}
	return total, nil
}

// Stats aggregates scan counts in a single pass. "Today" is the calendar
// date of the database clock.
func (r *ScanLogRepository) Stats(ctx context.Context) (*models.ScanStats, error) {
	const query = `SELECT
		COUNT(*) AS total_scans,
		COUNT(CASE WHEN DATE(scan_timestamp) = DATE('now') THEN 1 END) AS today_scans,
		COUNT(CASE WHEN user_type = 'teacher' THEN 1 END) AS teacher_scans,
		COUNT(CASE WHEN user_type = 'student' THEN 1 END) AS student_scans
		FROM rfid_logs`
	var stats models.ScanStats
	if err := r.db.GetContext(ctx, &stats, query); err != nil {
		return nil, fmt.Errorf("aggregate rfid stats: %w", err)
	}
	return &stats, nil
}
