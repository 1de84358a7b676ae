package dto

import (
	"time"

	"github.com/SscSPs/produce_settlement_app/internal/core/domain"
	"github.com/SscSPs/produce_settlement_app/internal/core/settlement"
	"github.com/shopspring/decimal"
)

// PreviewSettlementRequest selects items for a settlement preview.
// Either ItemIDs or SettleAll must be set.
type PreviewSettlementRequest struct {
	ItemIDs   []string `json:"itemIDs" binding:"omitempty,dive,required"`
	SettleAll bool     `json:"settleAll"`
}

// SettleItemsRequest records a settlement of a subset of, or all, unsettled items.
// The proof reference is checked by the service so that a missing proof is
// reported with the same error as every other settlement precondition.
type SettleItemsRequest struct {
	ItemIDs          []string   `json:"itemIDs" binding:"omitempty,dive,required"`
	SettleAll        bool       `json:"settleAll"`
	ProofImageRef    string     `json:"proofImageRef"`
	SettlementMethod string     `json:"settlementMethod" binding:"omitempty,max=40"`
	Notes            string     `json:"notes" binding:"omitempty,max=500"`
	SettlementDate   *time.Time `json:"settlementDate"`
}

// SettleLineItemRequest records a settlement of one line item.
type SettleLineItemRequest struct {
	ProofImageRef    string     `json:"proofImageRef"`
	SettlementMethod string     `json:"settlementMethod" binding:"omitempty,max=40"`
	Notes            string     `json:"notes" binding:"omitempty,max=500"`
	SettlementDate   *time.Time `json:"settlementDate"`
}

// ToSettleItemsRequest widens a single-item request to the general form.
func (r SettleLineItemRequest) ToSettleItemsRequest(lineItemID string) SettleItemsRequest {
	return SettleItemsRequest{
		ItemIDs:          []string{lineItemID},
		ProofImageRef:    r.ProofImageRef,
		SettlementMethod: r.SettlementMethod,
		Notes:            r.Notes,
		SettlementDate:   r.SettlementDate,
	}
}

// Selection converts the request into the settlement selection.
func (r SettleItemsRequest) Selection() settlement.Selection {
	return settlement.Selection{ItemIDs: r.ItemIDs, All: r.SettleAll}
}

// Selection converts the request into the settlement selection.
func (r PreviewSettlementRequest) Selection() settlement.Selection {
	return settlement.Selection{ItemIDs: r.ItemIDs, All: r.SettleAll}
}

// SettlementSummaryResponse is a producer's ledger split by payment status.
type SettlementSummaryResponse struct {
	ProducerID      string             `json:"producerID"`
	UnsettledItems  []LineItemResponse `json:"unsettledItems"`
	SettledItems    []LineItemResponse `json:"settledItems"`
	UnsettledAmount decimal.Decimal    `json:"unsettledAmount"`
	SettledAmount   decimal.Decimal    `json:"settledAmount"`
	UnsettledCount  int                `json:"unsettledCount"`
	SettledCount    int                `json:"settledCount"`
}

// ToSettlementSummaryResponse builds the summary from a partitioned ledger.
func ToSettlementSummaryResponse(producerID string, p settlement.Partitioned) SettlementSummaryResponse {
	return SettlementSummaryResponse{
		ProducerID:      producerID,
		UnsettledItems:  ToLineItemResponses(p.Unsettled),
		SettledItems:    ToLineItemResponses(p.Settled),
		UnsettledAmount: settlement.SumAmount(p.Unsettled),
		SettledAmount:   settlement.SumAmount(p.Settled),
		UnsettledCount:  len(p.Unsettled),
		SettledCount:    len(p.Settled),
	}
}

// SettlementCandidateResponse is the proposed payout shown before confirmation.
type SettlementCandidateResponse struct {
	ProducerID      string             `json:"producerID"`
	TotalAmount     decimal.Decimal    `json:"totalAmount"`
	UnsettledAmount decimal.Decimal    `json:"unsettledAmount"`
	ItemCount       int                `json:"itemCount"`
	Items           []LineItemResponse `json:"items"`
}

// ToSettlementCandidateResponse converts a domain.SettlementCandidate.
func ToSettlementCandidateResponse(c domain.SettlementCandidate) SettlementCandidateResponse {
	return SettlementCandidateResponse{
		ProducerID:      c.ProducerID,
		TotalAmount:     c.TotalAmount,
		UnsettledAmount: c.UnsettledAmount,
		ItemCount:       len(c.Items),
		Items:           ToLineItemResponses(c.Items),
	}
}

// SettlementSnapshotResponse defines the data returned for a settled product snapshot.
type SettlementSnapshotResponse struct {
	SnapshotID   string          `json:"snapshotID"`
	LineItemID   *string         `json:"lineItemID,omitempty"`
	ProductName  string          `json:"productName"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         domain.Unit     `json:"unit"`
	PricePerUnit decimal.Decimal `json:"pricePerUnit"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
}

// SettlementBatchResponse defines the data returned for a settlement batch.
type SettlementBatchResponse struct {
	BatchID          string                       `json:"batchID"`
	ProducerID       string                       `json:"producerID"`
	TotalAmount      decimal.Decimal              `json:"totalAmount"`
	SettledAmount    decimal.Decimal              `json:"settledAmount"`
	ProductCount     int                          `json:"productCount"`
	ProofImageRef    string                       `json:"proofImageRef"`
	SettlementDate   time.Time                    `json:"settlementDate"`
	SettlementMethod string                       `json:"settlementMethod"`
	Notes            string                       `json:"notes"`
	CreatedBy        string                       `json:"createdBy"`
	CreatedAt        time.Time                    `json:"createdAt"`
	Snapshots        []SettlementSnapshotResponse `json:"snapshots,omitempty"`
}

// ToSettlementBatchResponse converts a domain.SettlementBatch to its DTO.
func ToSettlementBatchResponse(b *domain.SettlementBatch) SettlementBatchResponse {
	resp := SettlementBatchResponse{
		BatchID:          b.BatchID,
		ProducerID:       b.ProducerID,
		TotalAmount:      b.TotalAmount,
		SettledAmount:    b.SettledAmount,
		ProductCount:     b.ProductCount,
		ProofImageRef:    b.ProofImageRef,
		SettlementDate:   b.SettlementDate,
		SettlementMethod: b.SettlementMethod,
		Notes:            b.Notes,
		CreatedBy:        b.CreatedBy,
		CreatedAt:        b.CreatedAt,
	}
	for _, s := range b.Snapshots {
		resp.Snapshots = append(resp.Snapshots, SettlementSnapshotResponse{
			SnapshotID:   s.SnapshotID,
			LineItemID:   s.LineItemID,
			ProductName:  s.ProductName,
			Quantity:     s.Quantity,
			Unit:         s.Unit,
			PricePerUnit: s.PricePerUnit,
			TotalAmount:  s.TotalAmount,
		})
	}
	return resp
}

// SettleResponse is returned after a settlement is recorded, together with the
// producer's refreshed summary.
type SettleResponse struct {
	Settlement SettlementBatchResponse   `json:"settlement"`
	Summary    SettlementSummaryResponse `json:"summary"`
}

// ListSettlementsParams defines query parameters for listing settlement batches.
type ListSettlementsParams struct {
	Limit     int     `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// ListSettlementsResponse wraps a page of settlement batches.
type ListSettlementsResponse struct {
	Settlements []SettlementBatchResponse `json:"settlements"`
	NextToken   *string                   `json:"nextToken,omitempty"`
}

// ReceiptGroupResponse is a set of settled items paid under one receipt.
type ReceiptGroupResponse struct {
	Key           string             `json:"key"`
	BatchID       *string            `json:"batchID,omitempty"`
	ProofImageRef *string            `json:"proofImageRef,omitempty"`
	Total         decimal.Decimal    `json:"total"`
	ItemCount     int                `json:"itemCount"`
	Items         []LineItemResponse `json:"items"`
}

// ToReceiptGroupResponses converts receipt groups to their DTOs.
func ToReceiptGroupResponses(groups []settlement.ReceiptGroup) []ReceiptGroupResponse {
	out := make([]ReceiptGroupResponse, len(groups))
	for i, g := range groups {
		out[i] = ReceiptGroupResponse{
			Key:           g.Key,
			BatchID:       g.BatchID,
			ProofImageRef: g.ProofImageRef,
			Total:         g.Total,
			ItemCount:     len(g.Items),
			Items:         ToLineItemResponses(g.Items),
		}
	}
	return out
}

// HistoryParams carries the expand/collapse state of a history view.
// Expanded is the comma separated list of open group keys; Toggle flips one key.
type HistoryParams struct {
	Expanded string `form:"expanded"`
	Toggle   string `form:"toggle"`
}

// ExpandedKeys resolves the expand state after applying Toggle.
func (p HistoryParams) ExpandedKeys() settlement.ExpandedKeys {
	keys := settlement.ParseExpandedKeys(p.Expanded)
	if p.Toggle != "" {
		keys = keys.Toggle(p.Toggle)
	}
	return keys
}

// DailyGroupResponse is one day of settled items. Items are only listed when expanded.
type DailyGroupResponse struct {
	Key       string             `json:"key"`
	Date      time.Time          `json:"date"`
	SubTotal  decimal.Decimal    `json:"subTotal"`
	ItemCount int                `json:"itemCount"`
	Expanded  bool               `json:"expanded"`
	Items     []LineItemResponse `json:"items,omitempty"`
}

// DailyHistoryResponse is the day-by-day settlement history of a producer.
type DailyHistoryResponse struct {
	ProducerID  string               `json:"producerID"`
	Groups      []DailyGroupResponse `json:"groups"`
	TotalAmount decimal.Decimal      `json:"totalAmount"`
	Expanded    []string             `json:"expanded"`
}

// ToDailyHistoryResponse converts day groups, listing items only for expanded days.
func ToDailyHistoryResponse(producerID string, groups []settlement.DailyGroup, expanded settlement.ExpandedKeys) DailyHistoryResponse {
	resp := DailyHistoryResponse{
		ProducerID:  producerID,
		Groups:      make([]DailyGroupResponse, len(groups)),
		TotalAmount: decimal.Zero,
		Expanded:    expanded.Keys(),
	}
	for i, g := range groups {
		open := expanded.IsExpanded(g.Key)
		resp.Groups[i] = DailyGroupResponse{
			Key:       g.Key,
			Date:      g.Date,
			SubTotal:  g.SubTotal,
			ItemCount: g.ItemCount,
			Expanded:  open,
		}
		if open {
			resp.Groups[i].Items = ToLineItemResponses(g.Items)
		}
		resp.TotalAmount = resp.TotalAmount.Add(g.SubTotal)
	}
	return resp
}

// MonthlyRowResponse is one merged (name, payment status) row of a month.
type MonthlyRowResponse struct {
	Name          string               `json:"name"`
	PaymentStatus domain.PaymentStatus `json:"paymentStatus"`
	Unit          domain.Unit          `json:"unit"`
	Quantity      decimal.Decimal      `json:"quantity"`
	Amount        decimal.Decimal      `json:"amount"`
	Count         int                  `json:"count"`
}

// MonthlyGroupResponse is one month of merged rows. Rows are only listed when expanded.
type MonthlyGroupResponse struct {
	Key       string               `json:"key"`
	Label     string               `json:"label"`
	Total     decimal.Decimal      `json:"total"`
	ItemCount int                  `json:"itemCount"`
	Expanded  bool                 `json:"expanded"`
	Rows      []MonthlyRowResponse `json:"rows,omitempty"`
}

// MonthlyHistoryResponse is the month-by-month history of a producer.
type MonthlyHistoryResponse struct {
	ProducerID string                 `json:"producerID"`
	Groups     []MonthlyGroupResponse `json:"groups"`
	Expanded   []string               `json:"expanded"`
}

// ToMonthlyHistoryResponse converts month groups, listing rows only for expanded months.
func ToMonthlyHistoryResponse(producerID string, groups []settlement.MonthlyGroup, expanded settlement.ExpandedKeys) MonthlyHistoryResponse {
	resp := MonthlyHistoryResponse{
		ProducerID: producerID,
		Groups:     make([]MonthlyGroupResponse, len(groups)),
		Expanded:   expanded.Keys(),
	}
	for i, g := range groups {
		open := expanded.IsExpanded(g.Key)
		resp.Groups[i] = MonthlyGroupResponse{
			Key:       g.Key,
			Label:     settlement.MonthLabel(g),
			Total:     g.Total,
			ItemCount: g.ItemCount,
			Expanded:  open,
		}
		if !open {
			continue
		}
		rows := make([]MonthlyRowResponse, len(g.Rows))
		for j, r := range g.Rows {
			rows[j] = MonthlyRowResponse{
				Name:          r.Name,
				PaymentStatus: r.PaymentStatus,
				Unit:          r.Unit,
				Quantity:      r.Quantity,
				Amount:        r.Amount,
				Count:         r.Count,
			}
		}
		resp.Groups[i].Rows = rows
	}
	return resp
}
