package dto

import (
	"time"

	"github.com/SscSPs/produce_settlement_app/internal/core/domain"
	"github.com/SscSPs/produce_settlement_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// CreateLineItemRequest records a delivery of produce from a producer.
type CreateLineItemRequest struct {
	Name         string          `json:"name" binding:"required,max=120"`
	Category     string          `json:"category" binding:"omitempty,max=60"`
	Quantity     decimal.Decimal `json:"quantity" binding:"required,gt=0"`
	Unit         domain.Unit     `json:"unit" binding:"required,unit"`
	PricePerUnit decimal.Decimal `json:"pricePerUnit" binding:"gte=0"`
}

// UpdateLineItemRequest corrects an unsettled line item.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateLineItemRequest struct {
	Name         *string          `json:"name" binding:"omitempty,min=1,max=120"`
	Category     *string          `json:"category" binding:"omitempty,max=60"`
	Quantity     *decimal.Decimal `json:"quantity" binding:"omitempty,gt=0"`
	Unit         *domain.Unit     `json:"unit" binding:"omitempty,unit"`
	PricePerUnit *decimal.Decimal `json:"pricePerUnit" binding:"omitempty,gte=0"`
}

// ListLineItemsParams defines query parameters for listing a producer's line items.
type ListLineItemsParams struct {
	Status string `form:"status" binding:"omitempty,oneof=unsettled settled"`
}

// LineItemResponse defines the data returned for a line item.
type LineItemResponse struct {
	LineItemID        string               `json:"lineItemID"`
	ProducerID        string               `json:"producerID"`
	Name              string               `json:"name"`
	Category          string               `json:"category"`
	Quantity          decimal.Decimal      `json:"quantity"`
	Unit              domain.Unit          `json:"unit"`
	PricePerUnit      decimal.Decimal      `json:"pricePerUnit"`
	Amount            decimal.Decimal      `json:"amount"`
	PaymentStatus     domain.PaymentStatus `json:"paymentStatus"`
	ProofImageRef     *string              `json:"proofImageRef,omitempty"`
	SettlementBatchID *string              `json:"settlementBatchID,omitempty"`
	CreatedAt         time.Time            `json:"createdAt"`
	LastUpdatedAt     time.Time            `json:"lastUpdatedAt"`
}

// ListLineItemsResponse wraps a producer's line items.
type ListLineItemsResponse struct {
	Items       []LineItemResponse `json:"items"`
	TotalAmount decimal.Decimal    `json:"totalAmount"`
}

// ToLineItemResponse converts a domain.LineItem to LineItemResponse DTO.
func ToLineItemResponse(li *domain.LineItem) LineItemResponse {
	return LineItemResponse{
		LineItemID:        li.LineItemID,
		ProducerID:        li.ProducerID,
		Name:              li.Name,
		Category:          li.Category,
		Quantity:          li.Quantity,
		Unit:              li.Unit,
		PricePerUnit:      li.PricePerUnit,
		Amount:            li.Amount(),
		PaymentStatus:     li.PaymentStatus,
		ProofImageRef:     li.ProofImageRef,
		SettlementBatchID: li.SettlementBatchID,
		CreatedAt:         li.CreatedAt,
		LastUpdatedAt:     li.LastUpdatedAt,
	}
}

// ToLineItemResponses converts a slice of domain.LineItem to []LineItemResponse.
func ToLineItemResponses(items []domain.LineItem) []LineItemResponse {
	responses := make([]LineItemResponse, len(items))
	for i := range items {
		responses[i] = ToLineItemResponse(&items[i])
	}
	return responses
}

// ToListLineItemsResponse wraps items with the total of their amounts.
func ToListLineItemsResponse(items []domain.LineItem) ListLineItemsResponse {
	return ListLineItemsResponse{
		Items:       ToLineItemResponses(items),
		TotalAmount: accounting.SumLineAmounts(items),
	}
}
