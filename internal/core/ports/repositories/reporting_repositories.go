package repositories

import (
	"context"

	"github.com/flowhive/flowhive_backend/internal/core/domain"
)

// ReportingRepository defines aggregate queries used by report generation
type ReportingRepository interface {
	// WorkspaceActivityCounts returns, for every workspace, the number of activities in rng.
	// Workspaces without activities are included with a zero count.
	WorkspaceActivityCounts(ctx context.Context, rng domain.DateRange) ([]domain.WorkspaceActivityCount, error)
}
