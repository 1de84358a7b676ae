package models

// Producer is the producers table row.
type Producer struct {
	ProducerID string `db:"producer_id"`
	BranchID   string `db:"branch_id"`
	Name       string `db:"name"`
	Phone      string `db:"phone"`
	Location   string `db:"location"`
	IsActive   bool   `db:"is_active"`
	AuditFields
}
