package models

import "time"

// ReportStatus is the lifecycle state of a hazard report.
type ReportStatus string

const (
	ReportStatusPending  ReportStatus = "Pending"
	ReportStatusResolved ReportStatus = "Resolved"
)

// HazardReport is a citizen-submitted hazard stored in hazard_reports.
// A report is mutated exactly once, on resolution, when after_image and
// date_resolved are set together with the Resolved status.
type HazardReport struct {
	ID           int64        `db:"id" json:"id"`
	BeforeImage  string       `db:"before_image" json:"before_image"`
	AfterImage   *string      `db:"after_image" json:"after_image,omitempty"`
	Description  string       `db:"description" json:"description"`
	Latitude     float64      `db:"latitude" json:"latitude"`
	Longitude    float64      `db:"longitude" json:"longitude"`
	Status       ReportStatus `db:"status" json:"status"`
	DateReported time.Time    `db:"date_reported" json:"date_reported"`
	DateResolved *time.Time   `db:"date_resolved" json:"date_resolved,omitempty"`
	CreatedAt    time.Time    `db:"created_at" json:"created_at"`
}
