package services

import (
	"context"
	"log/slog"

	"github.com/flowhive/flowhive_backend/internal/apperrors"
	"github.com/flowhive/flowhive_backend/internal/core/domain"
	portssvc "github.com/flowhive/flowhive_backend/internal/core/ports/services"
	"github.com/flowhive/flowhive_backend/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	WorkspaceAuthorizer portssvc.WorkspaceAuthorizerSvc
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// AuthorizeMember checks that userID belongs to workspaceID with at least requiredRole and
// returns the acting user. Without an authorizer every request is refused.
func (s *BaseService) AuthorizeMember(ctx context.Context, userID, workspaceID string, requiredRole domain.Role) (*domain.User, error) {
	if s.WorkspaceAuthorizer == nil {
		s.LogError(ctx, apperrors.ErrForbidden, "No workspace authorizer configured",
			slog.String("user_id", userID), slog.String("workspace_id", workspaceID))
		return nil, apperrors.NewForbiddenError("Not enough permissions")
	}
	return s.WorkspaceAuthorizer.AuthorizeUserAction(ctx, userID, workspaceID, requiredRole)
}
