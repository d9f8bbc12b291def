package models

import "time"

// Scan user types recorded in rfid_logs.
const (
	UserTypeTeacher = "teacher"
	UserTypeStudent = "student"
)

// CardIDPinAuth is the sentinel card id recorded for PIN verifications.
const CardIDPinAuth = "PIN_AUTH"

// TeacherPin is a 4-digit badge-station PIN assigned to a teacher.
type TeacherPin struct {
	ID          int64     `db:"id" json:"id"`
	Pin         string    `db:"pin" json:"pin"`
	TeacherName string    `db:"teacher_name" json:"teacher_name"`
	IsActive    bool      `db:"is_active" json:"is_active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	CreatedBy   *int64    `db:"created_by" json:"created_by,omitempty"`
}

// RFIDLog is an append-only scan or PIN-verification event. Rows are never
// mutated or deleted.
type RFIDLog struct {
	ID            int64     `db:"id" json:"id"`
	UserType      string    `db:"user_type" json:"user_type"`
	CardID        string    `db:"card_id" json:"card_id"`
	CardData      string    `db:"card_data" json:"card_data"`
	TeacherPin    *string   `db:"teacher_pin" json:"teacher_pin,omitempty"`
	IPAddress     string    `db:"ip_address" json:"ip_address"`
	UserAgent     string    `db:"user_agent" json:"user_agent"`
	ScanTimestamp time.Time `db:"scan_timestamp" json:"scan_timestamp"`
	IsVerified    bool      `db:"is_verified" json:"is_verified"`
}

// ScanStats aggregates rfid_logs for the admin dashboard.
type ScanStats struct {
	TotalScans   int `db:"total_scans" json:"total_scans"`
	TodayScans   int `db:"today_scans" json:"today_scans"`
	TeacherScans int `db:"teacher_scans" json:"teacher_scans"`
	StudentScans int `db:"student_scans" json:"student_scans"`
}
