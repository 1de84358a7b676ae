package settlement_test

import (
	"time"

	"github.com/SscSPs/produce_settlement_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

func strPtr(s string) *string { return &s }

func item(id, name string, qty, price int64, status domain.PaymentStatus) domain.LineItem {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	return domain.LineItem{
		LineItemID:    id,
		ProducerID:    "producer-1",
		Name:          name,
		Quantity:      decimal.NewFromInt(qty),
		Unit:          domain.UnitKilogram,
		PricePerUnit:  decimal.NewFromInt(price),
		PaymentStatus: status,
		AuditFields:   domain.NewAuditFields(now, "user-1"),
	}
}

func at(li domain.LineItem, created, updated time.Time) domain.LineItem {
	li.CreatedAt = created
	li.LastUpdatedAt = updated
	return li
}

func settledWith(li domain.LineItem, batchID, proof *string) domain.LineItem {
	li.PaymentStatus = domain.PaymentSettled
	li.SettlementBatchID = batchID
	li.ProofImageRef = proof
	return li
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }
