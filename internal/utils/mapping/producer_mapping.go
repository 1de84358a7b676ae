package mapping

import (
	"github.com/SscSPs/produce_settlement_app/internal/core/domain"
	"github.com/SscSPs/produce_settlement_app/internal/models"
)

// ToModelProducer converts a domain Producer to a model Producer
func ToModelProducer(d domain.Producer) models.Producer {
	return models.Producer{
		ProducerID:  d.ProducerID,
		BranchID:    d.BranchID,
		Name:        d.Name,
		Phone:       d.Phone,
		Location:    d.Location,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainProducer converts a model Producer to a domain Producer
func ToDomainProducer(m models.Producer) domain.Producer {
	return domain.Producer{
		ProducerID:  m.ProducerID,
		BranchID:    m.BranchID,
		Name:        m.Name,
		Phone:       m.Phone,
		Location:    m.Location,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainProducerSlice converts a slice of model Producers to domain Producers
func ToDomainProducerSlice(ms []models.Producer) []domain.Producer {
	ds := make([]domain.Producer, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainProducer(m)
	}
	return ds
}
