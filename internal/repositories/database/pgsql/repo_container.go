package pgsql

import (
	portsrepo "github.com/flowhive/flowhive_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:          newPgxUserRepository(dbPool),
		WorkspaceRepo:     newPgxWorkspaceRepository(dbPool),
		TaskCategoryRepo:  newPgxTaskCategoryRepository(dbPool),
		FieldActivityRepo: newPgxFieldActivityRepository(dbPool),
		MeetingMinuteRepo: newPgxMeetingMinuteRepository(dbPool),
		ProjectRepo:       newPgxProjectRepository(dbPool),
		TaskRepo:          newPgxTaskRepository(dbPool),
		ReportingRepo:     newReportingRepository(dbPool),
	}
}
