package repositories

import (
	"context"

	"github.com/flowhive/flowhive_backend/internal/core/domain"
)

// TaskCategoryReader defines read operations for task categories
type TaskCategoryReader interface {
	FindCategoryByID(ctx context.Context, categoryID string) (*domain.TaskCategory, error)

	// ListCategories returns a workspace's categories ordered by name.
	ListCategories(ctx context.Context, workspaceID string, includeInactive bool) ([]domain.TaskCategory, error)
}

// TaskCategoryWriter defines write operations for task categories
type TaskCategoryWriter interface {
	SaveCategory(ctx context.Context, category domain.TaskCategory) error
	UpdateCategory(ctx context.Context, category domain.TaskCategory) error

	// DeleteCategory applies the category deletion policy.
	DeleteCategory(ctx context.Context, categoryID string) error
}

// TaskCategoryRepositoryFacade combines all task category repository interfaces
type TaskCategoryRepositoryFacade interface {
	TaskCategoryReader
	TaskCategoryWriter
}
