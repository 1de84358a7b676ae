package mapping

import (
	"github.com/SscSPs/produce_settlement_app/internal/core/domain"
	"github.com/SscSPs/produce_settlement_app/internal/models"
)

// ToModelLineItem converts a domain LineItem to a model LineItem
func ToModelLineItem(d domain.LineItem) models.LineItem {
	return models.LineItem{
		LineItemID:        d.LineItemID,
		ProducerID:        d.ProducerID,
		Name:              d.Name,
		Category:          d.Category,
		Quantity:          d.Quantity,
		Unit:              string(d.Unit),
		PricePerUnit:      d.PricePerUnit,
		PaymentStatus:     string(d.PaymentStatus),
		ProofImageRef:     d.ProofImageRef,
		SettlementBatchID: d.SettlementBatchID,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLineItem converts a model LineItem to a domain LineItem
func ToDomainLineItem(m models.LineItem) domain.LineItem {
	return domain.LineItem{
		LineItemID:        m.LineItemID,
		ProducerID:        m.ProducerID,
		Name:              m.Name,
		Category:          m.Category,
		Quantity:          m.Quantity,
		Unit:              domain.Unit(m.Unit),
		PricePerUnit:      m.PricePerUnit,
		PaymentStatus:     domain.PaymentStatus(m.PaymentStatus),
		ProofImageRef:     m.ProofImageRef,
		SettlementBatchID: m.SettlementBatchID,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainLineItemSlice converts a slice of model LineItems to domain LineItems
func ToDomainLineItemSlice(ms []models.LineItem) []domain.LineItem {
	ds := make([]domain.LineItem, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLineItem(m)
	}
	return ds
}
