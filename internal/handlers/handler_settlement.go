package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/produce_settlement_app/internal/core/ports/services"
	"github.com/SscSPs/produce_settlement_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// settlementHandler handles settlement recording, summaries and history.
type settlementHandler struct {
	settlementService portssvc.SettlementSvcFacade
}

// newSettlementHandler creates a new settlementHandler.
func newSettlementHandler(ss portssvc.SettlementSvcFacade) *settlementHandler {
	return &settlementHandler{
		settlementService: ss,
	}
}

// registerSettlementRoutes registers the per-producer settlement routes and
// the top level batch lookup.
func registerSettlementRoutes(rg *gin.RouterGroup, producer *gin.RouterGroup, settlementService portssvc.SettlementSvcFacade) {
	h := newSettlementHandler(settlementService)

	producer.GET("/settlement-summary", h.getSummary)
	producer.POST("/items/:itemID/settle", h.settleLineItem)

	settlements := producer.Group("/settlements")
	{
		settlements.POST("", h.settleItems)
		settlements.GET("", h.listSettlements)
		settlements.POST("/preview", h.previewSettlement)
		settlements.GET("/receipts", h.getReceiptGroups)
	}

	history := producer.Group("/history")
	{
		history.GET("/daily", h.getDailyHistory)
		history.GET("/monthly", h.getMonthlyHistory)
	}

	rg.GET("/settlements/:batchID", h.getSettlement)
}

// getSummary godoc
// @Summary Settlement summary
// @Description Splits the producer's ledger into unsettled and settled items with totals.
// @Tags settlements
// @Produce  json
// @Param   producerID path string true "Producer ID"
// @Success 200 {object} dto.SettlementSummaryResponse
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Producer not found"
// @Security BearerAuth
// @Router /producers/{producerID}/settlement-summary [get]
func (h *settlementHandler) getSummary(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	summary, err := h.settlementService.GetSummary(c.Request.Context(), caller, c.Param("producerID"))
	if err != nil {
		respondError(c, err, "Failed to load settlement summary")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// previewSettlement godoc
// @Summary Preview a settlement
// @Description Builds the settlement candidate for a selection so the amount can be confirmed. Nothing is written.
// @Tags settlements
// @Accept  json
// @Produce  json
// @Param   producerID path string true "Producer ID"
// @Param   selection body dto.PreviewSettlementRequest true "Items to settle"
// @Success 200 {object} dto.SettlementCandidateResponse
// @Failure 400 {object} ErrorResponse "Empty selection or zero amount"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Unknown items"
// @Failure 409 {object} ErrorResponse "Items already settled"
// @Security BearerAuth
// @Router /producers/{producerID}/settlements/preview [post]
func (h *settlementHandler) previewSettlement(c *gin.Context) {
	var req dto.PreviewSettlementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "request format", err)
		return
	}
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	candidate, err := h.settlementService.PreviewSettlement(c.Request.Context(), caller, c.Param("producerID"), req)
	if err != nil {
		respondError(c, err, "Failed to preview settlement")
		return
	}
	c.JSON(http.StatusOK, dto.ToSettlementCandidateResponse(*candidate))
}

// settleItems godoc
// @Summary Record a settlement
// @Description Settles the selected items, or every unsettled item with settleAll, in one transaction. A proof of payment reference is required.
// @Tags settlements
// @Accept  json
// @Produce  json
// @Param   producerID path string true "Producer ID"
// @Param   settlement body dto.SettleItemsRequest true "Selection and proof of payment"
// @Success 201 {object} dto.SettleResponse
// @Failure 400 {object} ErrorResponse "Missing proof, empty selection or zero amount"
// @Failure 403 {object} ErrorResponse "Caller may not settle for this producer"
// @Failure 404 {object} ErrorResponse "Unknown items"
// @Failure 409 {object} ErrorResponse "Items already settled"
// @Failure 500 {object} ErrorResponse "Failed to record settlement"
// @Security BearerAuth
// @Router /producers/{producerID}/settlements [post]
func (h *settlementHandler) settleItems(c *gin.Context) {
	var req dto.SettleItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "request format", err)
		return
	}
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	resp, err := h.settlementService.SettleItems(c.Request.Context(), caller, c.Param("producerID"), req)
	if err != nil {
		respondError(c, err, "Failed to record settlement")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// settleLineItem godoc
// @Summary Settle one line item
// @Tags settlements
// @Accept  json
// @Produce  json
// @Param   producerID path string true "Producer ID"
// @Param   itemID path string true "Line item ID"
// @Param   settlement body dto.SettleLineItemRequest true "Proof of payment"
// @Success 201 {object} dto.SettleResponse
// @Failure 400 {object} ErrorResponse "Missing proof or zero amount"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Line item not found"
// @Failure 409 {object} ErrorResponse "Line item already settled"
// @Security BearerAuth
// @Router /producers/{producerID}/items/{itemID}/settle [post]
func (h *settlementHandler) settleLineItem(c *gin.Context) {
	var req dto.SettleLineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "request format", err)
		return
	}
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	resp, err := h.settlementService.SettleLineItem(c.Request.Context(), caller, c.Param("producerID"), c.Param("itemID"), req)
	if err != nil {
		respondError(c, err, "Failed to record settlement")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// listSettlements godoc
// @Summary List settlement batches
// @Description Lists a producer's settlement batches, newest first, with token pagination.
// @Tags settlements
// @Produce  json
// @Param   producerID path string true "Producer ID"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListSettlementsResponse
// @Failure 400 {object} ErrorResponse "Invalid token"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Security BearerAuth
// @Router /producers/{producerID}/settlements [get]
func (h *settlementHandler) listSettlements(c *gin.Context) {
	var params dto.ListSettlementsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "query parameters", err)
		return
	}
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	resp, err := h.settlementService.ListSettlements(c.Request.Context(), caller, c.Param("producerID"), params)
	if err != nil {
		respondError(c, err, "Failed to list settlements")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getReceiptGroups godoc
// @Summary Settled items by receipt
// @Description Groups settled items by the batch, or legacy proof reference, they were paid under.
// @Tags settlements
// @Produce  json
// @Param   producerID path string true "Producer ID"
// @Success 200 {array} dto.ReceiptGroupResponse
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Security BearerAuth
// @Router /producers/{producerID}/settlements/receipts [get]
func (h *settlementHandler) getReceiptGroups(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	groups, err := h.settlementService.GetReceiptGroups(c.Request.Context(), caller, c.Param("producerID"))
	if err != nil {
		respondError(c, err, "Failed to load receipts")
		return
	}
	c.JSON(http.StatusOK, groups)
}

// getDailyHistory godoc
// @Summary Daily settlement history
// @Description Settled items grouped by day, newest first. Items are listed only for expanded days.
// @Tags history
// @Produce  json
// @Param   producerID path string true "Producer ID"
// @Param   expanded query string false "Comma separated day keys (YYYY-MM-DD) to expand"
// @Param   toggle query string false "Day key whose expand state is flipped"
// @Success 200 {object} dto.DailyHistoryResponse
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Security BearerAuth
// @Router /producers/{producerID}/history/daily [get]
func (h *settlementHandler) getDailyHistory(c *gin.Context) {
	var params dto.HistoryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "query parameters", err)
		return
	}
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	resp, err := h.settlementService.GetDailyHistory(c.Request.Context(), caller, c.Param("producerID"), params)
	if err != nil {
		respondError(c, err, "Failed to load daily history")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getMonthlyHistory godoc
// @Summary Monthly history
// @Description Items grouped by month with rows merged per product and payment status.
// @Tags history
// @Produce  json
// @Param   producerID path string true "Producer ID"
// @Param   expanded query string false "Comma separated month keys (YYYY-MM) to expand"
// @Param   toggle query string false "Month key whose expand state is flipped"
// @Success 200 {object} dto.MonthlyHistoryResponse
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Security BearerAuth
// @Router /producers/{producerID}/history/monthly [get]
func (h *settlementHandler) getMonthlyHistory(c *gin.Context) {
	var params dto.HistoryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "query parameters", err)
		return
	}
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	resp, err := h.settlementService.GetMonthlyHistory(c.Request.Context(), caller, c.Param("producerID"), params)
	if err != nil {
		respondError(c, err, "Failed to load monthly history")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getSettlement godoc
// @Summary Get a settlement batch
// @Description Returns a batch with the snapshots of the items it paid for.
// @Tags settlements
// @Produce  json
// @Param   batchID path string true "Settlement batch ID"
// @Success 200 {object} dto.SettlementBatchResponse
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Settlement not found"
// @Security BearerAuth
// @Router /settlements/{batchID} [get]
func (h *settlementHandler) getSettlement(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	batch, err := h.settlementService.GetSettlement(c.Request.Context(), caller, c.Param("batchID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve settlement")
		return
	}
	c.JSON(http.StatusOK, dto.ToSettlementBatchResponse(batch))
}
