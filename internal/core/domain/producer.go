package domain

// Producer is a farmer or supplier whose produce is recorded as line items
// and who is paid through settlements.
type Producer struct {
	ProducerID  string `json:"producerID"`
	BranchID    string `json:"branchID"` // Branch that buys from this producer
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Location    string `json:"location"` // Village or market the producer delivers from
	IsActive    bool   `json:"isActive"`
	AuditFields        // Embed common audit fields
}
