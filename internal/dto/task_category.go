package dto

import (
	"time"

	"github.com/flowhive/flowhive_backend/internal/core/domain"
)

// CreateTaskCategoryRequest defines data for creating a task category.
type CreateTaskCategoryRequest struct {
	Name         string       `json:"name" binding:"required,max=100"`
	Title        string       `json:"title" binding:"required,max=255"`
	Description  *string      `json:"description"`
	Color        *string      `json:"color"`
	Icon         *string      `json:"icon"`
	RequiredRole *domain.Role `json:"required_role" binding:"omitempty,oneof=team_member manager executive"`
}

// UpdateTaskCategoryRequest defines a partial category update.
type UpdateTaskCategoryRequest struct {
	Name         *string      `json:"name" binding:"omitempty,max=100"`
	Title        *string      `json:"title" binding:"omitempty,max=255"`
	Description  *string      `json:"description"`
	Color        *string      `json:"color"`
	Icon         *string      `json:"icon"`
	RequiredRole *domain.Role `json:"required_role" binding:"omitempty,oneof=team_member manager executive"`
	IsActive     *bool        `json:"is_active"`
}

func (r UpdateTaskCategoryRequest) ToDomain() domain.TaskCategoryUpdate {
	return domain.TaskCategoryUpdate{
		Name:         r.Name,
		Title:        r.Title,
		Description:  r.Description,
		Color:        r.Color,
		Icon:         r.Icon,
		RequiredRole: r.RequiredRole,
		IsActive:     r.IsActive,
	}
}

// ListTaskCategoriesParams defines query parameters for category listings.
type ListTaskCategoriesParams struct {
	IncludeInactive bool `form:"include_inactive"`
}

type TaskCategoryResponse struct {
	ID           string      `json:"id"`
	WorkspaceID  string      `json:"workspace_id"`
	Name         string      `json:"name"`
	Title        string      `json:"title"`
	Description  *string     `json:"description"`
	Color        *string     `json:"color"`
	Icon         *string     `json:"icon"`
	RequiredRole domain.Role `json:"required_role"`
	IsActive     bool        `json:"is_active"`
	CreatedBy    string      `json:"created_by"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

func ToTaskCategoryResponse(c *domain.TaskCategory) TaskCategoryResponse {
	return TaskCategoryResponse{
		ID:           c.CategoryID,
		WorkspaceID:  c.WorkspaceID,
		Name:         c.Name,
		Title:        c.Title,
		Description:  c.Description,
		Color:        c.Color,
		Icon:         c.Icon,
		RequiredRole: c.RequiredRole,
		IsActive:     c.IsActive,
		CreatedBy:    c.CreatedBy,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func ToTaskCategoryResponses(cs []domain.TaskCategory) []TaskCategoryResponse {
	list := make([]TaskCategoryResponse, len(cs))
	for i := range cs {
		list[i] = ToTaskCategoryResponse(&cs[i])
	}
	return list
}

// CategoryRefResponse is the short form of a category embedded in activities.
type CategoryRefResponse struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Title        string      `json:"title"`
	Color        *string     `json:"color"`
	Icon         *string     `json:"icon"`
	RequiredRole domain.Role `json:"required_role"`
}

func toCategoryRefResponse(c *domain.CategoryRef) *CategoryRefResponse {
	if c == nil {
		return nil
	}
	return &CategoryRefResponse{
		ID:           c.CategoryID,
		Name:         c.Name,
		Title:        c.Title,
		Color:        c.Color,
		Icon:         c.Icon,
		RequiredRole: c.RequiredRole,
	}
}
