package dto

import (
	"time"

	"github.com/SscSPs/produce_settlement_app/internal/core/domain"
)

// CreateProducerRequest defines the data needed to register a producer.
type CreateProducerRequest struct {
	BranchID string `json:"branchID" binding:"required"`
	Name     string `json:"name" binding:"required,max=120"`
	Phone    string `json:"phone" binding:"omitempty,max=32"`
	Location string `json:"location" binding:"omitempty,max=120"`
}

// UpdateProducerRequest defines the data allowed for updating a producer.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateProducerRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=120"`
	Phone    *string `json:"phone" binding:"omitempty,max=32"`
	Location *string `json:"location" binding:"omitempty,max=120"`
	IsActive *bool   `json:"isActive"`
}

// ListProducersParams defines query parameters for listing producers.
type ListProducersParams struct {
	Limit  int `form:"limit,default=50" binding:"min=1,max=200"`
	Offset int `form:"offset,default=0" binding:"min=0"`
}

// ProducerResponse defines the data returned for a producer.
type ProducerResponse struct {
	ProducerID    string    `json:"producerID"`
	BranchID      string    `json:"branchID"`
	Name          string    `json:"name"`
	Phone         string    `json:"phone"`
	Location      string    `json:"location"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// ListProducersResponse wraps the list of producers.
type ListProducersResponse struct {
	Producers []ProducerResponse `json:"producers"`
}

// ToProducerResponse converts a domain.Producer to ProducerResponse DTO.
func ToProducerResponse(p *domain.Producer) ProducerResponse {
	return ProducerResponse{
		ProducerID:    p.ProducerID,
		BranchID:      p.BranchID,
		Name:          p.Name,
		Phone:         p.Phone,
		Location:      p.Location,
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt,
		LastUpdatedAt: p.LastUpdatedAt,
	}
}

// ToListProducersResponse converts a slice of domain.Producer to ListProducersResponse.
func ToListProducersResponse(producers []domain.Producer) ListProducersResponse {
	out := make([]ProducerResponse, len(producers))
	for i := range producers {
		out[i] = ToProducerResponse(&producers[i])
	}
	return ListProducersResponse{Producers: out}
}
