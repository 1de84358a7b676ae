package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SettlementBatch is the settlement_batches table row.
type SettlementBatch struct {
	BatchID          string          `db:"batch_id"`
	ProducerID       string          `db:"producer_id"`
	TotalAmount      decimal.Decimal `db:"total_amount"`
	SettledAmount    decimal.Decimal `db:"settled_amount"`
	ProductCount     int             `db:"product_count"`
	ProofImageRef    string          `db:"proof_image_ref"`
	SettlementDate   time.Time       `db:"settlement_date"`
	SettlementMethod string          `db:"settlement_method"`
	Notes            string          `db:"notes"`
	CreatedAt        time.Time       `db:"created_at"`
	CreatedBy        string          `db:"created_by"`
}

// SettlementSnapshot is the settlement_snapshots table row.
type SettlementSnapshot struct {
	SnapshotID   string          `db:"snapshot_id"`
	BatchID      string          `db:"batch_id"`
	LineItemID   *string         `db:"line_item_id"`
	ProductName  string          `db:"product_name"`
	Quantity     decimal.Decimal `db:"quantity"`
	Unit         string          `db:"unit"`
	PricePerUnit decimal.Decimal `db:"price_per_unit"`
	TotalAmount  decimal.Decimal `db:"total_amount"`
	CreatedAt    time.Time       `db:"created_at"`
}
