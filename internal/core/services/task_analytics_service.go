package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/flowhive/flowhive_backend/internal/apperrors"
	"github.com/flowhive/flowhive_backend/internal/core/domain"
	portsrepo "github.com/flowhive/flowhive_backend/internal/core/ports/repositories"
	portssvc "github.com/flowhive/flowhive_backend/internal/core/ports/services"
	"github.com/flowhive/flowhive_backend/internal/utils/aggregation"
)

const executiveWorkspaceLimit = 500

// taskAnalyticsService loads projects and tasks and hands them to the aggregation package.
type taskAnalyticsService struct {
	BaseService
	projectRepo   portsrepo.ProjectReader
	taskRepo      portsrepo.TaskReader
	workspaceRepo portsrepo.WorkspaceRepositoryFacade
	userRepo      portsrepo.UserReader
	activityRepo  portsrepo.FieldActivityReader
	now           func() time.Time
}

// NewTaskAnalyticsService creates a new task analytics service
func NewTaskAnalyticsService(
	projectRepo portsrepo.ProjectReader,
	taskRepo portsrepo.TaskReader,
	workspaceRepo portsrepo.WorkspaceRepositoryFacade,
	userRepo portsrepo.UserReader,
	activityRepo portsrepo.FieldActivityReader,
	authorizer portssvc.WorkspaceAuthorizerSvc,
) portssvc.TaskAnalyticsSvc {
	return &taskAnalyticsService{
		BaseService:   BaseService{WorkspaceAuthorizer: authorizer},
		projectRepo:   projectRepo,
		taskRepo:      taskRepo,
		workspaceRepo: workspaceRepo,
		userRepo:      userRepo,
		activityRepo:  activityRepo,
		now:           time.Now,
	}
}

var _ portssvc.TaskAnalyticsSvc = (*taskAnalyticsService)(nil)

func (s *taskAnalyticsService) workspaceTasks(ctx context.Context, workspaceID string) ([]domain.Task, error) {
	tasks, err := s.taskRepo.ListTasks(ctx, domain.TaskFilter{WorkspaceID: workspaceID})
	if err != nil {
		s.LogError(ctx, err, "Failed to load tasks for analytics", slog.String("workspace_id", workspaceID))
		return nil, err
	}
	return tasks, nil
}

func (s *taskAnalyticsService) TaskOverview(ctx context.Context, workspaceID, userID string) (*domain.TaskOverview, error) {
	if _, err := s.AuthorizeMember(ctx, userID, workspaceID, domain.RoleTeamMember); err != nil {
		return nil, err
	}
	tasks, err := s.workspaceTasks(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	overview := aggregation.TaskOverview(tasks, s.now())
	return &overview, nil
}

func (s *taskAnalyticsService) ProjectAnalytics(ctx context.Context, projectID, userID string) (*domain.ProjectProgress, error) {
	project, err := s.projectRepo.FindProjectByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Project not found")
		}
		return nil, err
	}
	if _, err := s.AuthorizeMember(ctx, userID, project.WorkspaceID, domain.RoleTeamMember); err != nil {
		return nil, err
	}
	tasks, err := s.taskRepo.ListTasks(ctx, domain.TaskFilter{WorkspaceID: project.WorkspaceID, ProjectID: &projectID})
	if err != nil {
		s.LogError(ctx, err, "Failed to load project tasks", slog.String("project_id", projectID))
		return nil, err
	}
	progress := aggregation.ProjectProgress(*project, tasks)
	return &progress, nil
}

func (s *taskAnalyticsService) UserProductivity(ctx context.Context, workspaceID string, limit int, userID string) ([]domain.UserProductivity, error) {
	if _, err := s.AuthorizeMember(ctx, userID, workspaceID, domain.RoleManager); err != nil {
		return nil, err
	}
	members, err := s.workspaceRepo.ListMembers(ctx, workspaceID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load workspace members", slog.String("workspace_id", workspaceID))
		return nil, err
	}
	tasks, err := s.workspaceTasks(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = aggregation.DefaultProductivityLimit
	}
	ranked := aggregation.Productivity(members, tasks)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

// ExecutiveDashboard aggregates over every workspace the executive belongs to.
func (s *taskAnalyticsService) ExecutiveDashboard(ctx context.Context, userID string) (*domain.ExecutiveDashboard, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("User not found")
		}
		return nil, err
	}
	if !user.Role.AtLeast(domain.RoleExecutive) {
		return nil, apperrors.NewForbiddenError("Executive access required")
	}

	workspaces, err := s.workspaceRepo.ListWorkspacesByUserID(ctx, userID, executiveWorkspaceLimit, 0)
	if err != nil {
		s.LogError(ctx, err, "Failed to list executive workspaces", slog.String("user_id", userID))
		return nil, err
	}
	snapshots := make([]aggregation.WorkspaceSnapshot, 0, len(workspaces))
	for _, ws := range workspaces {
		snap := aggregation.WorkspaceSnapshot{Workspace: ws}
		if snap.Projects, err = s.projectRepo.ListProjects(ctx, ws.WorkspaceID); err != nil {
			return nil, err
		}
		if snap.Tasks, err = s.workspaceTasks(ctx, ws.WorkspaceID); err != nil {
			return nil, err
		}
		if snap.Members, err = s.workspaceRepo.ListMembers(ctx, ws.WorkspaceID); err != nil {
			return nil, err
		}
		if snap.Activities, err = s.activityRepo.ListActivities(ctx, domain.FieldActivityFilter{WorkspaceID: ws.WorkspaceID}); err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snap)
	}
	dashboard := aggregation.ExecutiveDashboard(snapshots, s.now())
	return &dashboard, nil
}
