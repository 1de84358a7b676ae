package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/produce_settlement_app/internal/core/access"
	"github.com/SscSPs/produce_settlement_app/internal/core/domain"
	portssvc "github.com/SscSPs/produce_settlement_app/internal/core/ports/services"
	"github.com/SscSPs/produce_settlement_app/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	ProducerAuthorizer portssvc.ProducerAuthorizerSvc
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	s.GetLogger(ctx).Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// AuthorizeProducer loads the producer and checks the caller may perform action on it.
func (s *BaseService) AuthorizeProducer(ctx context.Context, caller domain.Caller, producerID string, action access.Action) (*domain.Producer, error) {
	return s.ProducerAuthorizer.AuthorizeProducerAction(ctx, caller, producerID, action)
}
