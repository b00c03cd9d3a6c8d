package services

import (
	"context"
	"time"

	"github.com/flowhive/flowhive_backend/internal/core/domain"
)

// AnalyticsSvc computes workspace analytics. Every operation requires workspace membership.
type AnalyticsSvc interface {
	Overview(ctx context.Context, workspaceID, userID string) (*domain.ActivityOverview, error)
	TopCustomers(ctx context.Context, workspaceID string, limit int, dateFrom *time.Time, userID string) ([]domain.TopCustomer, error)
	CustomerTimeline(ctx context.Context, workspaceID, customerID, userID string) (*domain.CustomerTimeline, error)
	HealthCheck(ctx context.Context, workspaceID string, thresholdDays *int, userID string) ([]domain.CustomerHealth, error)
	VisitFrequency(ctx context.Context, workspaceID, userID string) ([]domain.VisitFrequency, error)

	// WorkspaceStats is the manager-only breakdown by staff and category.
	WorkspaceStats(ctx context.Context, workspaceID string, from, to *time.Time, userID string) (*domain.WorkspaceActivityStats, error)
}
