package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultSettlementMethod is recorded when the operator does not name one.
const DefaultSettlementMethod = "manual"

// SettlementBatch is the immutable record of one confirmed payout to a producer.
type SettlementBatch struct {
	BatchID          string               `json:"batchID"`
	ProducerID       string               `json:"producerID"`
	TotalAmount      decimal.Decimal      `json:"totalAmount"`   // producer's outstanding total when the settlement was made
	SettledAmount    decimal.Decimal      `json:"settledAmount"` // sum of the snapshot totals
	ProductCount     int                  `json:"productCount"`
	ProofImageRef    string               `json:"proofImageRef"`
	SettlementDate   time.Time            `json:"settlementDate"`
	SettlementMethod string               `json:"settlementMethod"`
	Notes            string               `json:"notes"`
	CreatedBy        string               `json:"createdBy"`
	CreatedAt        time.Time            `json:"createdAt"`
	Snapshots        []SettlementSnapshot `json:"snapshots,omitempty"`
}

// SettlementSnapshot freezes a line item as it was at the moment it was settled.
// Later edits or deletion of the line item never change it.
type SettlementSnapshot struct {
	SnapshotID   string          `json:"snapshotID"`
	BatchID      string          `json:"batchID"`
	LineItemID   *string         `json:"lineItemID,omitempty"` // nil once the source item is deleted
	ProductName  string          `json:"productName"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         Unit            `json:"unit"`
	PricePerUnit decimal.Decimal `json:"pricePerUnit"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// SnapshotOf builds the frozen copy of a line item for the given batch.
func SnapshotOf(snapshotID, batchID string, item LineItem, at time.Time) SettlementSnapshot {
	lineItemID := item.LineItemID
	return SettlementSnapshot{
		SnapshotID:   snapshotID,
		BatchID:      batchID,
		LineItemID:   &lineItemID,
		ProductName:  item.Name,
		Quantity:     item.Quantity,
		Unit:         item.Unit,
		PricePerUnit: item.PricePerUnit,
		TotalAmount:  item.Amount(),
		CreatedAt:    at,
	}
}

// SettlementCandidate is the proposed payout built from a selection of unsettled items.
type SettlementCandidate struct {
	ProducerID      string          `json:"producerID"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	UnsettledAmount decimal.Decimal `json:"unsettledAmount"`
	Items           []LineItem      `json:"items"`
}
