package domain

import "time"

// User represents an operator or producer login.
type User struct {
	UserID       string   `json:"userID"` // Primary Key (e.g., UUID)
	Username     string   `json:"username"`
	Name         string   `json:"name"`
	PasswordHash string   `json:"-"`
	Role         Role     `json:"role"`
	ProducerID   *string  `json:"producerID,omitempty"`
	BranchIDs    []string `json:"branchIDs"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // Used for soft delete
}

// Caller derives the explicit caller context for this user.
func (u User) Caller() Caller {
	c := Caller{
		UserID:    u.UserID,
		Role:      u.Role,
		BranchIDs: append([]string(nil), u.BranchIDs...),
	}
	if u.ProducerID != nil {
		c.ProducerID = *u.ProducerID
	}
	return c
}
