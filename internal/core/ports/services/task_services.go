package services

import (
	"context"

	"github.com/flowhive/flowhive_backend/internal/core/domain"
	"github.com/flowhive/flowhive_backend/internal/dto"
)

// TaskReaderSvc defines read operations for tasks
type TaskReaderSvc interface {
	ListTasks(ctx context.Context, workspaceID string, params dto.ListTasksParams, userID string) ([]domain.Task, error)
	// MyTasks lists tasks assigned to the caller across every workspace.
	MyTasks(ctx context.Context, userID string, status *domain.TaskStatus) ([]domain.Task, error)
	GetTask(ctx context.Context, taskID, userID string) (*domain.Task, error)
	ListSubtasks(ctx context.Context, taskID, userID string) ([]domain.Task, error)
	ListTaskActivity(ctx context.Context, taskID, userID string) ([]domain.TaskActivity, error)
}

// TaskWriterSvc defines write operations for tasks
type TaskWriterSvc interface {
	CreateTask(ctx context.Context, req dto.CreateTaskRequest, userID string) (*domain.Task, error)
	UpdateTask(ctx context.Context, taskID string, req dto.UpdateTaskRequest, userID string) (*domain.Task, error)
	DeleteTask(ctx context.Context, taskID, userID string) error
}

// TaskCommentSvc defines operations on task comments. Only the author may edit or delete.
// Membership of the task's workspace is checked before the comment is looked up.
type TaskCommentSvc interface {
	AddComment(ctx context.Context, taskID string, req dto.CreateCommentRequest, userID string) (*domain.Comment, error)
	ListComments(ctx context.Context, taskID, userID string) ([]domain.Comment, error)
	UpdateComment(ctx context.Context, taskID, commentID string, req dto.UpdateCommentRequest, userID string) (*domain.Comment, error)
	DeleteComment(ctx context.Context, taskID, commentID, userID string) error
}

// TaskAttachmentSvc defines operations on task attachments. Only the uploader may delete.
type TaskAttachmentSvc interface {
	AddTaskAttachment(ctx context.Context, taskID string, upload domain.Upload, userID string) (*domain.TaskAttachment, error)
	ListTaskAttachments(ctx context.Context, taskID, userID string) ([]domain.TaskAttachment, error)
	DeleteTaskAttachment(ctx context.Context, taskID, attachmentID, userID string) error
}

// TaskSvcFacade combines all task service interfaces
type TaskSvcFacade interface {
	TaskReaderSvc
	TaskWriterSvc
	TaskCommentSvc
	TaskAttachmentSvc
}

// TaskAnalyticsSvc computes progress figures over projects and tasks.
type TaskAnalyticsSvc interface {
	TaskOverview(ctx context.Context, workspaceID, userID string) (*domain.TaskOverview, error)
	ProjectAnalytics(ctx context.Context, projectID, userID string) (*domain.ProjectProgress, error)
	// UserProductivity requires manager rank.
	UserProductivity(ctx context.Context, workspaceID string, limit int, userID string) ([]domain.UserProductivity, error)
	// ExecutiveDashboard covers every workspace the caller belongs to. Executives only.
	ExecutiveDashboard(ctx context.Context, userID string) (*domain.ExecutiveDashboard, error)
}
