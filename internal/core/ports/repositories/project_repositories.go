package repositories

import (
	"context"

	"github.com/flowhive/flowhive_backend/internal/core/domain"
)

// ProjectReader defines read operations for projects and their task lists
type ProjectReader interface {
	FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error)

	// ListProjects returns a workspace's projects ordered by name.
	ListProjects(ctx context.Context, workspaceID string) ([]domain.Project, error)

	// FindTaskListByID retrieves a task list with its project's workspace resolved.
	FindTaskListByID(ctx context.Context, taskListID string) (*domain.TaskList, error)

	// ListTaskLists returns a project's lists ordered by position.
	ListTaskLists(ctx context.Context, projectID string) ([]domain.TaskList, error)
}

// ProjectWriter defines write operations for projects and their task lists
type ProjectWriter interface {
	SaveProject(ctx context.Context, project domain.Project) error
	UpdateProject(ctx context.Context, project domain.Project) error

	// DeleteProject removes a project with its lists and tasks, returning the task
	// attachments that were removed so their stored files can be cleaned up.
	DeleteProject(ctx context.Context, projectID string) ([]domain.TaskAttachment, error)

	SaveTaskList(ctx context.Context, list domain.TaskList) error
	UpdateTaskList(ctx context.Context, list domain.TaskList) error

	// DeleteTaskList removes a list and its tasks, returning the removed task attachments.
	DeleteTaskList(ctx context.Context, taskListID string) ([]domain.TaskAttachment, error)
}

// ProjectRepositoryFacade combines all project repository interfaces
type ProjectRepositoryFacade interface {
	ProjectReader
	ProjectWriter
}

// ProjectRepositoryWithTx extends ProjectRepositoryFacade with transaction capabilities
type ProjectRepositoryWithTx interface {
	ProjectRepositoryFacade
	TransactionManager
}
