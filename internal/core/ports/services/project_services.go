package services

import (
	"context"

	"github.com/flowhive/flowhive_backend/internal/core/domain"
	"github.com/flowhive/flowhive_backend/internal/dto"
)

// ProjectReaderSvc defines read operations for projects
type ProjectReaderSvc interface {
	ListProjects(ctx context.Context, workspaceID, userID string) ([]domain.Project, error)
	// GetProject returns the project with its lists, each carrying its tasks.
	GetProject(ctx context.Context, projectID, userID string) (*domain.Project, error)
}

// ProjectWriterSvc defines write operations for projects
type ProjectWriterSvc interface {
	CreateProject(ctx context.Context, workspaceID string, req dto.CreateProjectRequest, userID string) (*domain.Project, error)
	UpdateProject(ctx context.Context, projectID string, req dto.UpdateProjectRequest, userID string) (*domain.Project, error)
	DeleteProject(ctx context.Context, projectID, userID string) error
}

// TaskListSvc defines operations on the lists of a project
type TaskListSvc interface {
	CreateTaskList(ctx context.Context, projectID string, req dto.CreateTaskListRequest, userID string) (*domain.TaskList, error)
	UpdateTaskList(ctx context.Context, taskListID string, req dto.UpdateTaskListRequest, userID string) (*domain.TaskList, error)
	DeleteTaskList(ctx context.Context, taskListID, userID string) error
}

// ProjectSvcFacade combines all project service interfaces
type ProjectSvcFacade interface {
	ProjectReaderSvc
	ProjectWriterSvc
	TaskListSvc
}
