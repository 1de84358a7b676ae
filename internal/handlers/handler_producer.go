package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/produce_settlement_app/internal/core/ports/services"
	"github.com/SscSPs/produce_settlement_app/internal/dto"
	"github.com/SscSPs/produce_settlement_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// producerHandler handles HTTP requests related to producers.
type producerHandler struct {
	producerService portssvc.ProducerSvcFacade
}

// newProducerHandler creates a new producerHandler.
func newProducerHandler(ps portssvc.ProducerSvcFacade) *producerHandler {
	return &producerHandler{
		producerService: ps,
	}
}

// registerProducerRoutes registers the producer routes and the nested
// ledger and settlement routes of a producer.
func registerProducerRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newProducerHandler(services.Producer)

	producers := rg.Group("/producers")
	{
		producers.POST("", h.createProducer)
		producers.GET("", h.listProducers)
		producers.GET("/:producerID", h.getProducer)
		producers.PUT("/:producerID", h.updateProducer)
	}

	producer := producers.Group("/:producerID")
	registerLineItemRoutes(producer, services.LineItem)
	registerSettlementRoutes(rg, producer, services.Settlement)
}

// createProducer godoc
// @Summary Register a producer
// @Description Registers a farmer or supplier under a branch the caller manages.
// @Tags producers
// @Accept  json
// @Produce  json
// @Param   producer body dto.CreateProducerRequest true "Producer details"
// @Success 201 {object} dto.ProducerResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Branch outside the caller's scope"
// @Failure 500 {object} ErrorResponse "Failed to create producer"
// @Security BearerAuth
// @Router /producers [post]
func (h *producerHandler) createProducer(c *gin.Context) {
	var req dto.CreateProducerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "request format", err)
		return
	}
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	producer, err := h.producerService.CreateProducer(c.Request.Context(), caller, req)
	if err != nil {
		respondError(c, err, "Failed to create producer")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Producer created successfully", slog.String("producer_id", producer.ProducerID))
	c.JSON(http.StatusCreated, dto.ToProducerResponse(producer))
}

// listProducers godoc
// @Summary List producers
// @Description Lists the producers visible to the caller, ordered by name.
// @Tags producers
// @Produce  json
// @Param   limit query int false "Limit number of results" default(50)
// @Param   offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListProducersResponse
// @Failure 400 {object} ErrorResponse "Invalid query parameters"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to list producers"
// @Security BearerAuth
// @Router /producers [get]
func (h *producerHandler) listProducers(c *gin.Context) {
	var params dto.ListProducersParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "query parameters", err)
		return
	}
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	producers, err := h.producerService.ListProducers(c.Request.Context(), caller, params)
	if err != nil {
		respondError(c, err, "Failed to list producers")
		return
	}
	c.JSON(http.StatusOK, dto.ToListProducersResponse(producers))
}

// getProducer godoc
// @Summary Get a producer
// @Tags producers
// @Produce  json
// @Param   producerID path string true "Producer ID"
// @Success 200 {object} dto.ProducerResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Producer not found"
// @Security BearerAuth
// @Router /producers/{producerID} [get]
func (h *producerHandler) getProducer(c *gin.Context) {
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}
	producer, err := h.producerService.GetProducer(c.Request.Context(), caller, c.Param("producerID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve producer")
		return
	}
	c.JSON(http.StatusOK, dto.ToProducerResponse(producer))
}

// updateProducer godoc
// @Summary Update a producer
// @Description Updates contact details or deactivates a producer.
// @Tags producers
// @Accept  json
// @Produce  json
// @Param   producerID path string true "Producer ID"
// @Param   producer body dto.UpdateProducerRequest true "Fields to update"
// @Success 200 {object} dto.ProducerResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 403 {object} ErrorResponse "Forbidden"
// @Failure 404 {object} ErrorResponse "Producer not found"
// @Security BearerAuth
// @Router /producers/{producerID} [put]
func (h *producerHandler) updateProducer(c *gin.Context) {
	var req dto.UpdateProducerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "request format", err)
		return
	}
	caller, ok := callerOrAbort(c)
	if !ok {
		return
	}

	producer, err := h.producerService.UpdateProducer(c.Request.Context(), caller, c.Param("producerID"), req)
	if err != nil {
		respondError(c, err, "Failed to update producer")
		return
	}
	c.JSON(http.StatusOK, dto.ToProducerResponse(producer))
}
