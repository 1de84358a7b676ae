package mapping

import (
	"github.com/SscSPs/produce_settlement_app/internal/core/domain"
	"github.com/SscSPs/produce_settlement_app/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	branchIDs := d.BranchIDs
	if branchIDs == nil {
		branchIDs = []string{}
	}
	return models.User{
		UserID:       d.UserID,
		Username:     d.Username,
		Name:         d.Name,
		PasswordHash: d.PasswordHash,
		Role:         string(d.Role),
		ProducerID:   d.ProducerID,
		BranchIDs:    branchIDs,
		DeletedAt:    d.DeletedAt,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:       m.UserID,
		Username:     m.Username,
		Name:         m.Name,
		PasswordHash: m.PasswordHash,
		Role:         domain.Role(m.Role),
		ProducerID:   m.ProducerID,
		BranchIDs:    m.BranchIDs,
		DeletedAt:    m.DeletedAt,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}
