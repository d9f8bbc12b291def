package models

import "time"

// AdminAccount is a row in the admin table. A single account is seeded at
// startup; the schema permits more but no creation endpoint exists.
type AdminAccount struct {
	ID           int64     `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
