package models

import (
	"time"
)

// User is the users table row.
type User struct {
	UserID       string     `db:"user_id"`
	Username     string     `db:"username"`
	Name         string     `db:"name"`
	PasswordHash string     `db:"password_hash"`
	Role         string     `db:"role"`
	ProducerID   *string    `db:"producer_id"`
	BranchIDs    []string   `db:"branch_ids"`
	DeletedAt    *time.Time `db:"deleted_at"`
	AuditFields
}
