package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/produce_settlement_app/internal/apperrors"
	"github.com/SscSPs/produce_settlement_app/internal/core/domain"
	"github.com/SscSPs/produce_settlement_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string   `json:"error"`
	ItemIDs []string `json:"itemIDs,omitempty"`
}

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	var appErr *apperrors.AppError
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrConflict), errors.Is(err, apperrors.ErrDuplicate):
		return http.StatusConflict
	case errors.As(err, &appErr) && appErr.Code >= 400 && appErr.Code < 500:
		return appErr.Code
	}
	return http.StatusInternalServerError
}

// respondError writes the error response for err. Client errors carry the
// error text; server errors only carry fallback so internals never leak.
func respondError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := statusFor(err)

	body := ErrorResponse{Error: err.Error()}
	var itemsErr *apperrors.ItemsError
	if errors.As(err, &itemsErr) {
		body.ItemIDs = itemsErr.ItemIDs
	}

	if status >= http.StatusInternalServerError {
		logger.Error(fallback, slog.String("error", err.Error()))
		body.Error = fallback
	} else {
		logger.Warn(fallback, slog.String("error", err.Error()), slog.Int("status", status))
	}
	c.JSON(status, body)
}

// badRequest reports a binding failure.
func badRequest(c *gin.Context, what string, err error) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind "+what, slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid " + what + ": " + err.Error()})
}

// callerOrAbort fetches the authenticated caller, answering 401 when absent.
func callerOrAbort(c *gin.Context) (caller domain.Caller, ok bool) {
	caller, ok = middleware.GetCallerFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Caller not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
	}
	return caller, ok
}
