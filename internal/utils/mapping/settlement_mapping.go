package mapping

import (
	"github.com/SscSPs/produce_settlement_app/internal/core/domain"
	"github.com/SscSPs/produce_settlement_app/internal/models"
)

// ToModelSettlementBatch converts a domain SettlementBatch to a model SettlementBatch
func ToModelSettlementBatch(d domain.SettlementBatch) models.SettlementBatch {
	return models.SettlementBatch{
		BatchID:          d.BatchID,
		ProducerID:       d.ProducerID,
		TotalAmount:      d.TotalAmount,
		SettledAmount:    d.SettledAmount,
		ProductCount:     d.ProductCount,
		ProofImageRef:    d.ProofImageRef,
		SettlementDate:   d.SettlementDate,
		SettlementMethod: d.SettlementMethod,
		Notes:            d.Notes,
		CreatedAt:        d.CreatedAt,
		CreatedBy:        d.CreatedBy,
	}
}

// ToDomainSettlementBatch converts a model SettlementBatch to a domain SettlementBatch
func ToDomainSettlementBatch(m models.SettlementBatch) domain.SettlementBatch {
	return domain.SettlementBatch{
		BatchID:          m.BatchID,
		ProducerID:       m.ProducerID,
		TotalAmount:      m.TotalAmount,
		SettledAmount:    m.SettledAmount,
		ProductCount:     m.ProductCount,
		ProofImageRef:    m.ProofImageRef,
		SettlementDate:   m.SettlementDate,
		SettlementMethod: m.SettlementMethod,
		Notes:            m.Notes,
		CreatedAt:        m.CreatedAt,
		CreatedBy:        m.CreatedBy,
	}
}

// ToModelSettlementSnapshot converts a domain SettlementSnapshot to a model SettlementSnapshot
func ToModelSettlementSnapshot(d domain.SettlementSnapshot) models.SettlementSnapshot {
	return models.SettlementSnapshot{
		SnapshotID:   d.SnapshotID,
		BatchID:      d.BatchID,
		LineItemID:   d.LineItemID,
		ProductName:  d.ProductName,
		Quantity:     d.Quantity,
		Unit:         string(d.Unit),
		PricePerUnit: d.PricePerUnit,
		TotalAmount:  d.TotalAmount,
		CreatedAt:    d.CreatedAt,
	}
}

// ToDomainSettlementSnapshot converts a model SettlementSnapshot to a domain SettlementSnapshot
func ToDomainSettlementSnapshot(m models.SettlementSnapshot) domain.SettlementSnapshot {
	return domain.SettlementSnapshot{
		SnapshotID:   m.SnapshotID,
		BatchID:      m.BatchID,
		LineItemID:   m.LineItemID,
		ProductName:  m.ProductName,
		Quantity:     m.Quantity,
		Unit:         domain.Unit(m.Unit),
		PricePerUnit: m.PricePerUnit,
		TotalAmount:  m.TotalAmount,
		CreatedAt:    m.CreatedAt,
	}
}

// ToDomainSettlementSnapshotSlice converts a slice of model snapshots to domain snapshots
func ToDomainSettlementSnapshotSlice(ms []models.SettlementSnapshot) []domain.SettlementSnapshot {
	ds := make([]domain.SettlementSnapshot, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainSettlementSnapshot(m)
	}
	return ds
}
