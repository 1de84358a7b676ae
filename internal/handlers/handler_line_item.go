package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/produce_settlement_app/internal/core/ports/services"
	"github.com/SscSPs/produce_settlement_app/internal/dto"
	"github.com/SscSPs/produce_settlement_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// lineItemHandler handles HTTP requests for a producer's product ledger.
type lineItemHandler struct {
	lineItemService portssvc.LineItemSvcFacade
}

// newLineItemHandler creates a new lineItemHandler.
func newLineItemHandler(ls portssvc.LineItemSvcFacade) *lineItemHandler {
	return &lineItemHandler{
		lineItemService: ls,
	}
}

// registerLineItemRoutes registers ledger routes under /producers/:producerID.
func registerLineItemRoutes(producer *gin.RouterGroup, lineItemService portssvc.LineItemSvcFacade) {
	h := newLineItemHandler(lineItemService)

	items := producer.Group("/items")
	{
		items.POST("", h.createLineItem)
		items.GET("", h.listLineItems)
		items.GET("/:itemID", h.getLineItem)
		items.PUT("/:itemID", h.updateLineItem)
		items.DELETE("/:itemID", h.deleteLineItem)
	}
}

// createLineItem godoc
// @Summary Record a line item
// @Description Records a delivery of produce. New items always start unsettled.
// @Tags items
// @Accept  json
// @Produce  json
// @Param   producerID path string true "Producer ID"
// @Param   item body dto.CreateLineItemRequest true "Line item"
// @Success 201 {object} dto.LineItemResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Producer not found"
// @Failure 500 {object} ErrorResponse "Failed to create line item"
// @Security BearerAuth
// @Router /producers/{producerID}/items [post]
func (h *lineItemHandler) createLineItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateLineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "request format", err)
		return
	}
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	item, err := h.lineItemService.CreateLineItem(c.Request.Context(), caller, c.Param("producerID"), req)
	if err != nil {
		respondError(c, err, "Failed to create line item")
		return
	}

	logger.Info("Line item created successfully", slog.String("line_item_id", item.LineItemID))
	c.JSON(http.StatusCreated, dto.ToLineItemResponse(item))
}

// listLineItems godoc
// @Summary List a producer's line items
// @Tags items
// @Produce  json
// @Param   producerID path string true "Producer ID"
// @Param   status query string false "Filter by payment status" Enums(unsettled, settled)
// @Success 200 {object} dto.ListLineItemsResponse
// @Failure 400 {object} ErrorResponse "Invalid status"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Producer not found"
// @Security BearerAuth
// @Router /producers/{producerID}/items [get]
func (h *lineItemHandler) listLineItems(c *gin.Context) {
	var params dto.ListLineItemsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "query parameters", err)
		return
	}
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	items, err := h.lineItemService.ListLineItems(c.Request.Context(), caller, c.Param("producerID"), params)
	if err != nil {
		respondError(c, err, "Failed to list line items")
		return
	}
	c.JSON(http.StatusOK, dto.ToListLineItemsResponse(items))
}

// getLineItem godoc
// @Summary Get a line item
// @Tags items
// @Produce  json
// @Param   producerID path string true "Producer ID"
// @Param   itemID path string true "Line item ID"
// @Success 200 {object} dto.LineItemResponse
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Line item not found"
// @Security BearerAuth
// @Router /producers/{producerID}/items/{itemID} [get]
func (h *lineItemHandler) getLineItem(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	item, err := h.lineItemService.GetLineItem(c.Request.Context(), caller, c.Param("producerID"), c.Param("itemID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve line item")
		return
	}
	c.JSON(http.StatusOK, dto.ToLineItemResponse(item))
}

// updateLineItem godoc
// @Summary Correct a line item
// @Description Corrects quantity, price, unit or name of an unsettled item. Settled items answer 409.
// @Tags items
// @Accept  json
// @Produce  json
// @Param   producerID path string true "Producer ID"
// @Param   itemID path string true "Line item ID"
// @Param   item body dto.UpdateLineItemRequest true "Fields to update"
// @Success 200 {object} dto.LineItemResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Line item not found"
// @Failure 409 {object} ErrorResponse "Line item already settled"
// @Security BearerAuth
// @Router /producers/{producerID}/items/{itemID} [put]
func (h *lineItemHandler) updateLineItem(c *gin.Context) {
	var req dto.UpdateLineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "request format", err)
		return
	}
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	item, err := h.lineItemService.UpdateLineItem(c.Request.Context(), caller, c.Param("producerID"), c.Param("itemID"), req)
	if err != nil {
		respondError(c, err, "Failed to update line item")
		return
	}
	c.JSON(http.StatusOK, dto.ToLineItemResponse(item))
}

// deleteLineItem godoc
// @Summary Delete a line item
// @Description Deletes a line item. Settlement snapshots of a settled item are kept.
// @Tags items
// @Param   producerID path string true "Producer ID"
// @Param   itemID path string true "Line item ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Line item not found"
// @Security BearerAuth
// @Router /producers/{producerID}/items/{itemID} [delete]
func (h *lineItemHandler) deleteLineItem(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	if err := h.lineItemService.DeleteLineItem(c.Request.Context(), caller, c.Param("producerID"), c.Param("itemID")); err != nil {
		respondError(c, err, "Failed to delete line item")
		return
	}
	c.Status(http.StatusNoContent)
}
