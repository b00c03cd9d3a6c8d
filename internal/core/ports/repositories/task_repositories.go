package repositories

import (
	"context"

	"github.com/flowhive/flowhive_backend/internal/core/domain"
)

// TaskReader defines read operations for tasks
type TaskReader interface {
	// FindTaskByID retrieves a task with its project, workspace, creator and assignee resolved.
	FindTaskByID(ctx context.Context, taskID string) (*domain.Task, error)

	// ListTasks returns tasks ordered by list position, then task position.
	ListTasks(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error)

	// ListAssignedTasks returns every task assigned to userID across workspaces, newest first.
	ListAssignedTasks(ctx context.Context, userID string, status *domain.TaskStatus) ([]domain.Task, error)
}

// TaskWriter defines write operations for tasks
type TaskWriter interface {
	SaveTask(ctx context.Context, task domain.Task) error
	UpdateTask(ctx context.Context, task domain.Task) error

	// DeleteTask removes a task with its subtasks, returning the removed attachments.
	DeleteTask(ctx context.Context, taskID string) ([]domain.TaskAttachment, error)
}

// TaskActivityRecorder defines operations on the task history
type TaskActivityRecorder interface {
	SaveTaskActivity(ctx context.Context, entry domain.TaskActivity) error
	ListTaskActivity(ctx context.Context, taskID string) ([]domain.TaskActivity, error)
}

// TaskCommentManager defines operations on task comments
type TaskCommentManager interface {
	SaveComment(ctx context.Context, comment domain.Comment) error
	FindCommentByID(ctx context.Context, commentID string) (*domain.Comment, error)

	// ListComments returns a task's comments oldest first.
	ListComments(ctx context.Context, taskID string) ([]domain.Comment, error)
	UpdateComment(ctx context.Context, comment domain.Comment) error
	DeleteComment(ctx context.Context, commentID string) error
}

// TaskAttachmentManager defines operations on task attachments
type TaskAttachmentManager interface {
	SaveTaskAttachment(ctx context.Context, attachment domain.TaskAttachment) error
	FindTaskAttachmentByID(ctx context.Context, attachmentID string) (*domain.TaskAttachment, error)
	ListTaskAttachments(ctx context.Context, taskID string) ([]domain.TaskAttachment, error)
	DeleteTaskAttachment(ctx context.Context, attachmentID string) error
}

// TaskRepositoryFacade combines all task repository interfaces
type TaskRepositoryFacade interface {
	TaskReader
	TaskWriter
	TaskActivityRecorder
	TaskCommentManager
	TaskAttachmentManager
}

// TaskRepositoryWithTx extends TaskRepositoryFacade with transaction capabilities
type TaskRepositoryWithTx interface {
	TaskRepositoryFacade
	TransactionManager
}
