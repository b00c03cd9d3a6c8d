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
	"github.com/flowhive/flowhive_backend/internal/core/ports/gateways"
	portsrepo "github.com/flowhive/flowhive_backend/internal/core/ports/repositories"
	portssvc "github.com/flowhive/flowhive_backend/internal/core/ports/services"
	"github.com/flowhive/flowhive_backend/internal/dto"
	"github.com/flowhive/flowhive_backend/internal/utils"
)

// projectService implements the ProjectSvcFacade interface
type projectService struct {
	BaseService
	projectRepo portsrepo.ProjectRepositoryWithTx
	taskRepo    portsrepo.TaskReader
	store       gateways.FileStore
	notifier    gateways.WorkspaceNotifier
	now         func() time.Time
}

// ProjectOption is a functional option for configuring the project service
type ProjectOption func(*projectService)

func WithProjectAuthorizer(authorizer portssvc.WorkspaceAuthorizerSvc) ProjectOption {
	return func(s *projectService) {
		s.WorkspaceAuthorizer = authorizer
	}
}

func WithProjectNotifier(notifier gateways.WorkspaceNotifier) ProjectOption {
	return func(s *projectService) {
		s.notifier = notifier
	}
}

// WithProjectFileStore lets deletions remove the stored files of cascaded task attachments.
func WithProjectFileStore(store gateways.FileStore) ProjectOption {
	return func(s *projectService) {
		s.store = store
	}
}

// NewProjectService creates a new project service with the provided options
func NewProjectService(projectRepo portsrepo.ProjectRepositoryWithTx, taskRepo portsrepo.TaskReader, options ...ProjectOption) portssvc.ProjectSvcFacade {
	svc := &projectService{
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
		now:         time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ProjectSvcFacade = (*projectService)(nil)

func (s *projectService) notify(ctx context.Context, eventType, workspaceID string, data any) {
	publishEvent(ctx, &s.BaseService, s.notifier, eventType, workspaceID, data)
}

func (s *projectService) loadProject(ctx context.Context, projectID, userID string) (*domain.Project, error) {
	project, err := s.projectRepo.FindProjectByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Project not found")
		}
		s.LogError(ctx, err, "Failed to find project", slog.String("project_id", projectID))
		return nil, err
	}
	if _, err := s.AuthorizeMember(ctx, userID, project.WorkspaceID, domain.RoleTeamMember); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *projectService) loadTaskList(ctx context.Context, taskListID, userID string) (*domain.TaskList, error) {
	list, err := s.projectRepo.FindTaskListByID(ctx, taskListID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Task list not found")
		}
		s.LogError(ctx, err, "Failed to find task list", slog.String("task_list_id", taskListID))
		return nil, err
	}
	if _, err := s.AuthorizeMember(ctx, userID, list.WorkspaceID, domain.RoleTeamMember); err != nil {
		return nil, err
	}
	return list, nil
}

func sanitizeProject(p *domain.Project) error {
	p.Name = strings.TrimSpace(utils.StripTags(p.Name))
	if p.Name == "" {
		return apperrors.NewValidationFailedError("name is required")
	}
	p.Description = utils.SanitizeHTMLPtr(p.Description)
	p.Color = cleanOptional(p.Color)
	p.Icon = cleanOptional(p.Icon)
	return nil
}

func (s *projectService) ListProjects(ctx context.Context, workspaceID, userID string) ([]domain.Project, error) {
	if _, err := s.AuthorizeMember(ctx, userID, workspaceID, domain.RoleTeamMember); err != nil {
		return nil, err
	}
	projects, err := s.projectRepo.ListProjects(ctx, workspaceID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list projects", slog.String("workspace_id", workspaceID))
		return nil, err
	}
	return projects, nil
}

// GetProject returns the project with its lists in position order. Each list carries its
// top-level tasks; subtasks are listed through their parent.
func (s *projectService) GetProject(ctx context.Context, projectID, userID string) (*domain.Project, error) {
	project, err := s.loadProject(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}
	lists, err := s.projectRepo.ListTaskLists(ctx, projectID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list task lists", slog.String("project_id", projectID))
		return nil, err
	}
	tasks, err := s.taskRepo.ListTasks(ctx, domain.TaskFilter{WorkspaceID: project.WorkspaceID, ProjectID: &projectID})
	if err != nil {
		s.LogError(ctx, err, "Failed to list project tasks", slog.String("project_id", projectID))
		return nil, err
	}

	byList := make(map[string][]domain.Task, len(lists))
	for _, t := range tasks {
		if t.ParentTaskID != nil {
			continue
		}
		byList[t.TaskListID] = append(byList[t.TaskListID], t)
	}
	project.TaskLists = make([]domain.TaskList, len(lists))
	for i, l := range lists {
		l.Tasks = byList[l.TaskListID]
		if l.Tasks == nil {
			l.Tasks = []domain.Task{}
		}
		project.TaskLists[i] = l
	}
	return project, nil
}

func (s *projectService) CreateProject(ctx context.Context, workspaceID string, req dto.CreateProjectRequest, userID string) (*domain.Project, error) {
	if _, err := s.AuthorizeMember(ctx, userID, workspaceID, domain.RoleTeamMember); err != nil {
		return nil, err
	}
	project := req.ToDomain()
	if err := sanitizeProject(&project); err != nil {
		return nil, err
	}
	now := s.now().UTC()
	project.ProjectID = uuid.NewString()
	project.WorkspaceID = workspaceID
	project.CreatedBy = userID
	project.Timestamps = domain.Timestamps{CreatedAt: now, UpdatedAt: now}

	if err := s.projectRepo.SaveProject(ctx, project); err != nil {
		s.LogError(ctx, err, "Failed to save project", slog.String("workspace_id", workspaceID))
		return nil, err
	}
	s.LogInfo(ctx, "Project created", slog.String("project_id", project.ProjectID))
	s.notify(ctx, domain.EventProjectCreated, workspaceID, dto.ToProjectResponse(&project))
	return &project, nil
}

func (s *projectService) UpdateProject(ctx context.Context, projectID string, req dto.UpdateProjectRequest, userID string) (*domain.Project, error) {
	project, err := s.loadProject(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}
	merged := req.ToDomain().ApplyTo(*project)
	if err := sanitizeProject(&merged); err != nil {
		return nil, err
	}
	merged.UpdatedAt = s.now().UTC()
	if err := s.projectRepo.UpdateProject(ctx, merged); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Project not found")
		}
		s.LogError(ctx, err, "Failed to update project", slog.String("project_id", projectID))
		return nil, err
	}
	s.notify(ctx, domain.EventProjectUpdated, merged.WorkspaceID, dto.ToProjectResponse(&merged))
	return &merged, nil
}

// DeleteProject removes the project with everything under it. Stored attachment files are
// removed after the rows are gone.
func (s *projectService) DeleteProject(ctx context.Context, projectID, userID string) error {
	project, err := s.loadProject(ctx, projectID, userID)
	if err != nil {
		return err
	}
	attachments, err := s.projectRepo.DeleteProject(ctx, projectID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("Project not found")
		}
		s.LogError(ctx, err, "Failed to delete project", slog.String("project_id", projectID))
		return err
	}
	removeTaskFiles(ctx, &s.BaseService, s.store, attachments)
	s.notify(ctx, domain.EventProjectDeleted, project.WorkspaceID, map[string]string{"id": projectID})
	return nil
}

func (s *projectService) CreateTaskList(ctx context.Context, projectID string, req dto.CreateTaskListRequest, userID string) (*domain.TaskList, error) {
	project, err := s.loadProject(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}
	list := req.ToDomain()
	list.Name = strings.TrimSpace(utils.StripTags(list.Name))
	if list.Name == "" {
		return nil, apperrors.NewValidationFailedError("name is required")
	}
	list.Description = cleanOptional(list.Description)
	now := s.now().UTC()
	list.TaskListID = uuid.NewString()
	list.ProjectID = projectID
	list.WorkspaceID = project.WorkspaceID
	list.Timestamps = domain.Timestamps{CreatedAt: now, UpdatedAt: now}

	if err := s.projectRepo.SaveTaskList(ctx, list); err != nil {
		s.LogError(ctx, err, "Failed to save task list", slog.String("project_id", projectID))
		return nil, err
	}
	return &list, nil
}

func (s *projectService) UpdateTaskList(ctx context.Context, taskListID string, req dto.UpdateTaskListRequest, userID string) (*domain.TaskList, error) {
	list, err := s.loadTaskList(ctx, taskListID, userID)
	if err != nil {
		return nil, err
	}
	merged := req.ToDomain().ApplyTo(*list)
	merged.Name = strings.TrimSpace(utils.StripTags(merged.Name))
	if merged.Name == "" {
		return nil, apperrors.NewValidationFailedError("name cannot be empty")
	}
	merged.Description = cleanOptional(merged.Description)
	merged.UpdatedAt = s.now().UTC()
	if err := s.projectRepo.UpdateTaskList(ctx, merged); err != nil {
		s.LogError(ctx, err, "Failed to update task list", slog.String("task_list_id", taskListID))
		return nil, err
	}
	return &merged, nil
}

func (s *projectService) DeleteTaskList(ctx context.Context, taskListID, userID string) error {
	if _, err := s.loadTaskList(ctx, taskListID, userID); err != nil {
		return err
	}
	attachments, err := s.projectRepo.DeleteTaskList(ctx, taskListID)
	if err != nil {
		s.LogError(ctx, err, "Failed to delete task list", slog.String("task_list_id", taskListID))
		return err
	}
	removeTaskFiles(ctx, &s.BaseService, s.store, attachments)
	return nil
}
