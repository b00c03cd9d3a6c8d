package pgsql

import (
	"context"

	"github.com/flowhive/flowhive_backend/internal/apperrors"
	"github.com/flowhive/flowhive_backend/internal/core/domain"
	portsrepo "github.com/flowhive/flowhive_backend/internal/core/ports/repositories"
	"github.com/flowhive/flowhive_backend/internal/models"
	"github.com/flowhive/flowhive_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxProjectRepository struct {
	BaseRepository
}

func newPgxProjectRepository(pool *pgxpool.Pool) portsrepo.ProjectRepositoryWithTx {
	return &PgxProjectRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ProjectRepositoryWithTx = (*PgxProjectRepository)(nil)

const projectSelectQuery = `
SELECT project_id, workspace_id, name, description, color, icon, created_by, created_at, updated_at
FROM projects
`

const taskListSelectQuery = `
SELECT l.task_list_id, l.project_id, p.workspace_id, l.name, l.description, l.position, l.created_at, l.updated_at
FROM task_lists l
JOIN projects p ON p.project_id = l.project_id
`

func (r *PgxProjectRepository) FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error) {
	rows, err := r.Pool.Query(ctx, projectSelectQuery+`WHERE project_id = $1`, projectID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query project", err)
	}
	defer rows.Close()
	ms, err := collect[models.Project](rows, "failed to collect project")
	if err != nil {
		return nil, err
	}
	if len(ms) == 0 {
		return nil, apperrors.ErrNotFound
	}
	p := mapping.ToDomainProject(ms[0])
	return &p, nil
}

func (r *PgxProjectRepository) ListProjects(ctx context.Context, workspaceID string) ([]domain.Project, error) {
	rows, err := r.Pool.Query(ctx, projectSelectQuery+`WHERE workspace_id = $1 ORDER BY name ASC`, workspaceID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query projects", err)
	}
	defer rows.Close()
	ms, err := collect[models.Project](rows, "failed to collect projects")
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainProjectSlice(ms), nil
}

func (r *PgxProjectRepository) FindTaskListByID(ctx context.Context, taskListID string) (*domain.TaskList, error) {
	rows, err := r.Pool.Query(ctx, taskListSelectQuery+`WHERE l.task_list_id = $1`, taskListID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query task list", err)
	}
	defer rows.Close()
	ms, err := collect[models.TaskList](rows, "failed to collect task list")
	if err != nil {
		return nil, err
	}
	if len(ms) == 0 {
		return nil, apperrors.ErrNotFound
	}
	l := mapping.ToDomainTaskList(ms[0])
	return &l, nil
}

func (r *PgxProjectRepository) ListTaskLists(ctx context.Context, projectID string) ([]domain.TaskList, error) {
	rows, err := r.Pool.Query(ctx, taskListSelectQuery+`WHERE l.project_id = $1 ORDER BY l.position ASC, l.created_at ASC`, projectID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query task lists", err)
	}
	defer rows.Close()
	ms, err := collect[models.TaskList](rows, "failed to collect task lists")
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainTaskListSlice(ms), nil
}

func (r *PgxProjectRepository) SaveProject(ctx context.Context, p domain.Project) error {
	query := `
		INSERT INTO projects (project_id, workspace_id, name, description, color, icon, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		p.ProjectID, p.WorkspaceID, p.Name, p.Description, p.Color, p.Icon, p.CreatedBy, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return translateWriteError(err, "project already exists", "workspace does not exist", "failed to save project")
	}
	return nil
}

func (r *PgxProjectRepository) UpdateProject(ctx context.Context, p domain.Project) error {
	query := `
		UPDATE projects
		SET name = $1, description = $2, color = $3, icon = $4, updated_at = $5
		WHERE project_id = $6;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, p.Name, p.Description, p.Color, p.Icon, p.UpdatedAt, p.ProjectID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update project", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteProject removes the project (lists, tasks and their children cascade).
func (r *PgxProjectRepository) DeleteProject(ctx context.Context, projectID string) ([]domain.TaskAttachment, error) {
	var attachments []domain.TaskAttachment
	err := r.withTx(ctx, func(tx pgx.Tx) error {
		var err error
		seed := `task_list_id IN (SELECT task_list_id FROM task_lists WHERE project_id = $1)`
		if attachments, err = listSubtreeAttachments(ctx, tx, seed, projectID); err != nil {
			return err
		}
		return deleteByPolicy(ctx, tx, domain.EntityProject, "projects", "project_id", projectID)
	})
	if err != nil {
		return nil, err
	}
	return attachments, nil
}

func (r *PgxProjectRepository) SaveTaskList(ctx context.Context, l domain.TaskList) error {
	query := `
		INSERT INTO task_lists (task_list_id, project_id, name, description, position, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query, l.TaskListID, l.ProjectID, l.Name, l.Description, l.Position, l.CreatedAt, l.UpdatedAt)
	if err != nil {
		return translateWriteError(err, "task list already exists", "project does not exist", "failed to save task list")
	}
	return nil
}

func (r *PgxProjectRepository) UpdateTaskList(ctx context.Context, l domain.TaskList) error {
	query := `
		UPDATE task_lists
		SET name = $1, description = $2, position = $3, updated_at = $4
		WHERE task_list_id = $5;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, l.Name, l.Description, l.Position, l.UpdatedAt, l.TaskListID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update task list", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxProjectRepository) DeleteTaskList(ctx context.Context, taskListID string) ([]domain.TaskAttachment, error) {
	var attachments []domain.TaskAttachment
	err := r.withTx(ctx, func(tx pgx.Tx) error {
		var err error
		if attachments, err = listSubtreeAttachments(ctx, tx, `task_list_id = $1`, taskListID); err != nil {
			return err
		}
		return deleteByPolicy(ctx, tx, domain.EntityTaskList, "task_lists", "task_list_id", taskListID)
	})
	if err != nil {
		return nil, err
	}
	return attachments, nil
}
