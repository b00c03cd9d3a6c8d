package services

import (
	"context"

	"github.com/flowhive/flowhive_backend/internal/core/domain"
	"github.com/flowhive/flowhive_backend/internal/dto"
)

// TaskCategorySvcFacade defines operations on a workspace's task categories.
// Every operation requires workspace membership.
type TaskCategorySvcFacade interface {
	CreateCategory(ctx context.Context, workspaceID string, req dto.CreateTaskCategoryRequest, userID string) (*domain.TaskCategory, error)
	ListCategories(ctx context.Context, workspaceID string, includeInactive bool, userID string) ([]domain.TaskCategory, error)
	GetCategory(ctx context.Context, categoryID, userID string) (*domain.TaskCategory, error)
	UpdateCategory(ctx context.Context, categoryID string, req dto.UpdateTaskCategoryRequest, userID string) (*domain.TaskCategory, error)
	// DeleteCategory deactivates the category. Existing activities keep their reference.
	DeleteCategory(ctx context.Context, categoryID, userID string) error
}
