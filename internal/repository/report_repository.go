package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/civicworks/hazard-portal/internal/models"
)

// ReportRepository manages persistence for hazard reports.
type ReportRepository struct {
	db *sqlx.DB
}

// NewReportRepository constructs a ReportRepository.
func NewReportRepository(db *sqlx.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// Create inserts a new pending report and returns its id.
func (r *ReportRepository) Create(ctx context.Context, report *models.HazardReport) (int64, error) {
	const query = `INSERT INTO hazard_reports
		(before_image, description, latitude, longitude, status, date_reported)
		VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		report.BeforeImage,
		report.Description,
		report.Latitude,
		report.Longitude,
		report.Status,
		report.DateReported,
	)
	if err != nil {
		return 0, fmt.Errorf("create hazard report: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read hazard report id: %w", err)
	}
	report.ID = id
	return id, nil
}

// List returns every report, newest first. The history page has no
// pagination or filtering.
func (r *ReportRepository) List(ctx context.Context) ([]models.HazardReport, error) {
	const query = `SELECT id, before_image, after_image, description, latitude, longitude,
		status, date_reported, date_resolved, created_at
		FROM hazard_reports ORDER BY date_reported DESC`
	var reports []models.HazardReport
	if err := r.db.SelectContext(ctx, &reports, query); err != nil {
		return nil, fmt.Errorf("list hazard reports: %w", err)
	}
	return reports, nil
}

// Resolve marks a report resolved in a single update. An unknown id affects
// zero rows and is not an error.
func (r *ReportRepository) Resolve(ctx context.Context, id int64, afterImage string, resolvedAt time.Time) error {
	const query = `UPDATE hazard_reports
		SET after_image = ?, status = ?, date_resolved = ?
		WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, afterImage, models.ReportStatusResolved, resolvedAt, id); err != nil {
		return fmt.Errorf("resolve hazard report: %w", err)
	}
	return nil
}
