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

type PgxTaskCategoryRepository struct {
	BaseRepository
}

func newPgxTaskCategoryRepository(pool *pgxpool.Pool) portsrepo.TaskCategoryRepositoryFacade {
	return &PgxTaskCategoryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TaskCategoryRepositoryFacade = (*PgxTaskCategoryRepository)(nil)

const categorySelectQuery = `
SELECT
	c.category_id, c.workspace_id, c.name, c.title, c.description, c.color, c.icon,
	c.required_role, c.is_active, c.created_by, c.created_at, c.updated_at
FROM task_categories c
`

func (r *PgxTaskCategoryRepository) getCategories(ctx context.Context, filterQuery string, args ...any) ([]domain.TaskCategory, error) {
	rows, err := r.Pool.Query(ctx, categorySelectQuery+filterQuery, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query task categories", err)
	}
	defer rows.Close()
	ms, err := collect[models.TaskCategory](rows, "failed to collect task category rows")
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainTaskCategorySlice(ms), nil
}

func (r *PgxTaskCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.TaskCategory, error) {
	categories, err := r.getCategories(ctx, `WHERE c.category_id = $1`, categoryID)
	if err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &categories[0], nil
}

func (r *PgxTaskCategoryRepository) ListCategories(ctx context.Context, workspaceID string, includeInactive bool) ([]domain.TaskCategory, error) {
	return r.getCategories(ctx, `WHERE c.workspace_id = $1 AND ($2 OR c.is_active) ORDER BY c.name`, workspaceID, includeInactive)
}

func (r *PgxTaskCategoryRepository) SaveCategory(ctx context.Context, category domain.TaskCategory) error {
	m := mapping.ToModelTaskCategory(category)
	query := `
		INSERT INTO task_categories (
			category_id, workspace_id, name, title, description, color, icon, required_role,
			is_active, created_by, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CategoryID, m.WorkspaceID, m.Name, m.Title, m.Description, m.Color, m.Icon, m.RequiredRole,
		m.IsActive, m.CreatedBy, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return translateWriteError(err, "Category '"+m.Name+"' already exists in this workspace", "workspace does not exist", "failed to save task category")
	}
	return nil
}

func (r *PgxTaskCategoryRepository) UpdateCategory(ctx context.Context, category domain.TaskCategory) error {
	m := mapping.ToModelTaskCategory(category)
	query := `
		UPDATE task_categories
		SET name = $1, title = $2, description = $3, color = $4, icon = $5, required_role = $6,
			is_active = $7, updated_at = $8
		WHERE category_id = $9;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.Name, m.Title, m.Description, m.Color, m.Icon, m.RequiredRole, m.IsActive, m.UpdatedAt, m.CategoryID,
	)
	if err != nil {
		return translateWriteError(err, "Category '"+m.Name+"' already exists in this workspace", "workspace does not exist", "failed to update task category")
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxTaskCategoryRepository) DeleteCategory(ctx context.Context, categoryID string) error {
	return deleteByPolicy(ctx, r.Pool, domain.EntityTaskCategory, "task_categories", "category_id", categoryID)
}
