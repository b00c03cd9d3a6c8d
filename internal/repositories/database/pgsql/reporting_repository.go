package pgsql

import (
	"context"

	"github.com/flowhive/flowhive_backend/internal/apperrors"
	"github.com/flowhive/flowhive_backend/internal/core/domain"
	portsrepo "github.com/flowhive/flowhive_backend/internal/core/ports/repositories"
	"github.com/flowhive/flowhive_backend/internal/models"
	"github.com/flowhive/flowhive_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

type reportingRepository struct {
	BaseRepository
}

func newReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReportingRepository = (*reportingRepository)(nil)

func (r *reportingRepository) WorkspaceActivityCounts(ctx context.Context, rng domain.DateRange) ([]domain.WorkspaceActivityCount, error) {
	query := `
		SELECT w.workspace_id, w.name, COUNT(fa.activity_id)::int AS activity_count
		FROM workspaces w
		LEFT JOIN field_activities fa
			ON fa.workspace_id = w.workspace_id
			AND fa.activity_date BETWEEN $1 AND $2
		GROUP BY w.workspace_id, w.name, w.created_at
		ORDER BY w.created_at ASC;
	`
	rows, err := r.Pool.Query(ctx, query, rng.From, rng.To)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query workspace activity counts", err)
	}
	defer rows.Close()
	ms, err := collect[models.WorkspaceActivityCount](rows, "failed to collect workspace activity counts")
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainWorkspaceActivityCounts(ms), nil
}
