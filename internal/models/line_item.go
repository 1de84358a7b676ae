package models

import (
	"github.com/shopspring/decimal"
)

// LineItem is the line_items table row.
type LineItem struct {
	LineItemID        string          `db:"line_item_id"`
	ProducerID        string          `db:"producer_id"`
	Name              string          `db:"name"`
	Category          string          `db:"category"`
	Quantity          decimal.Decimal `db:"quantity"`
	Unit              string          `db:"unit"`
	PricePerUnit      decimal.Decimal `db:"price_per_unit"`
	PaymentStatus     string          `db:"payment_status"`
	ProofImageRef     *string         `db:"proof_image_ref"`
	SettlementBatchID *string         `db:"settlement_batch_id"`
	AuditFields
}
