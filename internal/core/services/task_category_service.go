package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/flowhive/flowhive_backend/internal/apperrors"
	"github.com/flowhive/flowhive_backend/internal/core/domain"
	portsrepo "github.com/flowhive/flowhive_backend/internal/core/ports/repositories"
	portssvc "github.com/flowhive/flowhive_backend/internal/core/ports/services"
	"github.com/flowhive/flowhive_backend/internal/dto"
	"github.com/flowhive/flowhive_backend/internal/utils"
)

type taskCategoryService struct {
	BaseService
	categoryRepo portsrepo.TaskCategoryRepositoryFacade
	now          func() time.Time
}

// NewTaskCategoryService creates a task category service guarded by the workspace authorizer.
func NewTaskCategoryService(repo portsrepo.TaskCategoryRepositoryFacade, authorizer portssvc.WorkspaceAuthorizerSvc) portssvc.TaskCategorySvcFacade {
	svc := &taskCategoryService{categoryRepo: repo, now: time.Now}
	svc.WorkspaceAuthorizer = authorizer
	return svc
}

var _ portssvc.TaskCategorySvcFacade = (*taskCategoryService)(nil)

func (s *taskCategoryService) CreateCategory(ctx context.Context, workspaceID string, req dto.CreateTaskCategoryRequest, userID string) (*domain.TaskCategory, error) {
	if _, err := s.AuthorizeMember(ctx, userID, workspaceID, domain.RoleTeamMember); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	title := strings.TrimSpace(req.Title)
	if name == "" || title == "" {
		return nil, apperrors.NewValidationFailedError("name and title are required")
	}
	role := domain.RoleTeamMember
	if req.RequiredRole != nil {
		if !req.RequiredRole.IsValid() {
			return nil, apperrors.NewValidationFailedError("Invalid required_role")
		}
		role = *req.RequiredRole
	}

	now := s.now().UTC()
	category := domain.TaskCategory{
		CategoryID:   uuid.NewString(),
		WorkspaceID:  workspaceID,
		Name:         utils.StripTags(name),
		Title:        utils.StripTags(title),
		Description:  utils.SanitizeHTMLPtr(req.Description),
		Color:        req.Color,
		Icon:         req.Icon,
		RequiredRole: role,
		IsActive:     true,
		CreatedBy:    userID,
		Timestamps:   domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}
	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		s.LogError(ctx, err, "Failed to create task category", slog.String("workspace_id", workspaceID))
		return nil, err
	}
	return &category, nil
}

func (s *taskCategoryService) ListCategories(ctx context.Context, workspaceID string, includeInactive bool, userID string) ([]domain.TaskCategory, error) {
	if _, err := s.AuthorizeMember(ctx, userID, workspaceID, domain.RoleTeamMember); err != nil {
		return nil, err
	}
	categories, err := s.categoryRepo.ListCategories(ctx, workspaceID, includeInactive)
	if err != nil {
		s.LogError(ctx, err, "Failed to list task categories", slog.String("workspace_id", workspaceID))
		return nil, err
	}
	return categories, nil
}

// loadAuthorized fetches a category and checks the caller belongs to its workspace.
func (s *taskCategoryService) loadAuthorized(ctx context.Context, categoryID, userID string) (*domain.TaskCategory, error) {
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Task category not found")
		}
		return nil, err
	}
	if _, err := s.AuthorizeMember(ctx, userID, category.WorkspaceID, domain.RoleTeamMember); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *taskCategoryService) GetCategory(ctx context.Context, categoryID, userID string) (*domain.TaskCategory, error) {
	return s.loadAuthorized(ctx, categoryID, userID)
}

func (s *taskCategoryService) UpdateCategory(ctx context.Context, categoryID string, req dto.UpdateTaskCategoryRequest, userID string) (*domain.TaskCategory, error) {
	category, err := s.loadAuthorized(ctx, categoryID, userID)
	if err != nil {
		return nil, err
	}

	u := req.ToDomain()
	if u.Name != nil {
		if category.Name = strings.TrimSpace(utils.StripTags(*u.Name)); category.Name == "" {
			return nil, apperrors.NewValidationFailedError("name must not be empty")
		}
	}
	if u.Title != nil {
		if category.Title = strings.TrimSpace(utils.StripTags(*u.Title)); category.Title == "" {
			return nil, apperrors.NewValidationFailedError("title must not be empty")
		}
	}
	if u.Description != nil {
		category.Description = utils.SanitizeHTMLPtr(u.Description)
	}
	if u.Color != nil {
		category.Color = u.Color
	}
	if u.Icon != nil {
		category.Icon = u.Icon
	}
	if u.RequiredRole != nil {
		if !u.RequiredRole.IsValid() {
			return nil, apperrors.NewValidationFailedError("Invalid required_role")
		}
		category.RequiredRole = *u.RequiredRole
	}
	if u.IsActive != nil {
		category.IsActive = *u.IsActive
	}
	category.UpdatedAt = s.now().UTC()

	if err := s.categoryRepo.UpdateCategory(ctx, *category); err != nil {
		s.LogError(ctx, err, "Failed to update task category", slog.String("category_id", categoryID))
		return nil, err
	}
	return category, nil
}

func (s *taskCategoryService) DeleteCategory(ctx context.Context, categoryID, userID string) error {
	if _, err := s.loadAuthorized(ctx, categoryID, userID); err != nil {
		return err
	}
	if err := s.categoryRepo.DeleteCategory(ctx, categoryID); err != nil {
		s.LogError(ctx, err, "Failed to delete task category", slog.String("category_id", categoryID))
		return err
	}
	s.LogInfo(ctx, "Task category deactivated", slog.String("category_id", categoryID))
	return nil
}
