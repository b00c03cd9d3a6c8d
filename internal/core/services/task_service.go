package services

import (
	"context"
	"errors"
	"fmt"
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

const taskAttachmentFolder = "flowhive/tasks"

// taskService implements the TaskSvcFacade interface: tasks, their history, comments and attachments.
type taskService struct {
	BaseService
	taskRepo     portsrepo.TaskRepositoryWithTx
	projectRepo  portsrepo.ProjectReader
	memberRepo   portsrepo.WorkspaceMembershipManager
	store        gateways.FileStore
	notifier     gateways.WorkspaceNotifier
	maxFileBytes int64
	now          func() time.Time
}

// TaskOption is a functional option for configuring the task service
type TaskOption func(*taskService)

func WithTaskAuthorizer(authorizer portssvc.WorkspaceAuthorizerSvc) TaskOption {
	return func(s *taskService) {
		s.WorkspaceAuthorizer = authorizer
	}
}

func WithTaskNotifier(notifier gateways.WorkspaceNotifier) TaskOption {
	return func(s *taskService) {
		s.notifier = notifier
	}
}

// WithTaskAttachmentStore sets where task attachments are written
func WithTaskAttachmentStore(store gateways.FileStore, maxBytes int64) TaskOption {
	return func(s *taskService) {
		s.store = store
		s.maxFileBytes = maxBytes
	}
}

// NewTaskService creates a new task service with the provided options
func NewTaskService(
	taskRepo portsrepo.TaskRepositoryWithTx,
	projectRepo portsrepo.ProjectReader,
	memberRepo portsrepo.WorkspaceMembershipManager,
	options ...TaskOption,
) portssvc.TaskSvcFacade {
	svc := &taskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		memberRepo:  memberRepo,
		now:         time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.TaskSvcFacade = (*taskService)(nil)

// publishEvent sends a realtime event when a notifier is configured. Failures are logged only.
func publishEvent(ctx context.Context, base *BaseService, notifier gateways.WorkspaceNotifier, eventType, workspaceID string, data any) {
	if notifier == nil {
		return
	}
	if err := notifier.Publish(ctx, domain.RealtimeEvent{Type: eventType, WorkspaceID: workspaceID, Data: data}); err != nil {
		base.LogError(ctx, err, "Failed to publish realtime event",
			slog.String("event", eventType), slog.String("workspace_id", workspaceID))
	}
}

// removeTaskFiles deletes the stored files of attachments whose rows are already gone.
func removeTaskFiles(ctx context.Context, base *BaseService, store gateways.FileStore, attachments []domain.TaskAttachment) {
	if store == nil {
		return
	}
	for _, a := range attachments {
		if err := store.Delete(ctx, a.StoragePublicID, a.ResourceType); err != nil {
			base.LogError(ctx, err, "Failed to remove stored task attachment", slog.String("attachment_id", a.AttachmentID))
		}
	}
}

func (s *taskService) notify(ctx context.Context, eventType, workspaceID string, data any) {
	publishEvent(ctx, &s.BaseService, s.notifier, eventType, workspaceID, data)
}

// loadTask fetches a task and checks the caller belongs to its workspace.
func (s *taskService) loadTask(ctx context.Context, taskID, userID string) (*domain.Task, error) {
	task, err := s.taskRepo.FindTaskByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Task not found")
		}
		s.LogError(ctx, err, "Failed to find task", slog.String("task_id", taskID))
		return nil, err
	}
	if _, err := s.AuthorizeMember(ctx, userID, task.WorkspaceID, domain.RoleTeamMember); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) findTaskList(ctx context.Context, taskListID string) (*domain.TaskList, error) {
	list, err := s.projectRepo.FindTaskListByID(ctx, taskListID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Task list not found")
		}
		return nil, err
	}
	return list, nil
}

func (s *taskService) checkAssignee(ctx context.Context, workspaceID string, assigneeID *string) error {
	if assigneeID == nil || *assigneeID == "" {
		return nil
	}
	if _, err := s.memberRepo.FindMember(ctx, workspaceID, *assigneeID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewValidationFailedError("Assignee is not a member of this workspace")
		}
		return err
	}
	return nil
}

// record appends to the task history. A failed write is logged and does not undo the change.
func (s *taskService) record(ctx context.Context, taskID, userID, action string, details map[string]any) {
	entry := domain.TaskActivity{
		LogID:     uuid.NewString(),
		TaskID:    taskID,
		UserID:    userID,
		Action:    action,
		Details:   details,
		CreatedAt: s.now().UTC(),
	}
	if err := s.taskRepo.SaveTaskActivity(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to record task activity",
			slog.String("task_id", taskID), slog.String("action", action))
	}
}

func (s *taskService) reload(ctx context.Context, taskID string) (*domain.Task, error) {
	task, err := s.taskRepo.FindTaskByID(ctx, taskID)
	if err != nil {
		s.LogError(ctx, err, "Failed to reload task", slog.String("task_id", taskID))
		return nil, err
	}
	return task, nil
}

func (s *taskService) ListTasks(ctx context.Context, workspaceID string, params dto.ListTasksParams, userID string) ([]domain.Task, error) {
	if _, err := s.AuthorizeMember(ctx, userID, workspaceID, domain.RoleTeamMember); err != nil {
		return nil, err
	}
	tasks, err := s.taskRepo.ListTasks(ctx, params.ToFilter(workspaceID))
	if err != nil {
		s.LogError(ctx, err, "Failed to list tasks", slog.String("workspace_id", workspaceID))
		return nil, err
	}
	return tasks, nil
}

func (s *taskService) MyTasks(ctx context.Context, userID string, status *domain.TaskStatus) ([]domain.Task, error) {
	if status != nil && !status.IsValid() {
		return nil, apperrors.NewValidationFailedError("Invalid task status")
	}
	tasks, err := s.taskRepo.ListAssignedTasks(ctx, userID, status)
	if err != nil {
		s.LogError(ctx, err, "Failed to list assigned tasks", slog.String("user_id", userID))
		return nil, err
	}
	return tasks, nil
}

func (s *taskService) GetTask(ctx context.Context, taskID, userID string) (*domain.Task, error) {
	return s.loadTask(ctx, taskID, userID)
}

func (s *taskService) ListSubtasks(ctx context.Context, taskID, userID string) ([]domain.Task, error) {
	task, err := s.loadTask(ctx, taskID, userID)
	if err != nil {
		return nil, err
	}
	return s.taskRepo.ListTasks(ctx, domain.TaskFilter{WorkspaceID: task.WorkspaceID, ParentTaskID: &taskID})
}

func (s *taskService) ListTaskActivity(ctx context.Context, taskID, userID string) ([]domain.TaskActivity, error) {
	if _, err := s.loadTask(ctx, taskID, userID); err != nil {
		return nil, err
	}
	return s.taskRepo.ListTaskActivity(ctx, taskID)
}

// CreateTask adds a task to a list. A parent task must belong to the same project and the
// assignee must be a member of the workspace.
func (s *taskService) CreateTask(ctx context.Context, req dto.CreateTaskRequest, userID string) (*domain.Task, error) {
	task, err := req.ToDomain()
	if err != nil {
		return nil, err
	}
	list, err := s.findTaskList(ctx, task.TaskListID)
	if err != nil {
		return nil, err
	}
	if _, err := s.AuthorizeMember(ctx, userID, list.WorkspaceID, domain.RoleTeamMember); err != nil {
		return nil, err
	}
	if task.ParentTaskID != nil {
		parent, err := s.taskRepo.FindTaskByID(ctx, *task.ParentTaskID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.NewValidationFailedError("Parent task not found")
			}
			return nil, err
		}
		if parent.ProjectID != list.ProjectID {
			return nil, apperrors.NewValidationFailedError("Parent task must belong to the same project")
		}
	}
	if err := s.checkAssignee(ctx, list.WorkspaceID, task.AssigneeID); err != nil {
		return nil, err
	}

	task.Title = strings.TrimSpace(utils.StripTags(task.Title))
	if task.Title == "" {
		return nil, apperrors.NewValidationFailedError("title is required")
	}
	task.Description = utils.SanitizeHTMLPtr(task.Description)
	if !task.Status.IsValid() || !task.Priority.IsValid() {
		return nil, apperrors.NewValidationFailedError("Invalid task status or priority")
	}

	now := s.now().UTC()
	task.TaskID = uuid.NewString()
	task.ProjectID = list.ProjectID
	task.WorkspaceID = list.WorkspaceID
	task.CreatorID = userID
	task.Timestamps = domain.Timestamps{CreatedAt: now, UpdatedAt: now}
	status := task.Status
	task.Status = domain.TaskTodo
	task.SetStatus(status, now)

	if err := s.taskRepo.SaveTask(ctx, task); err != nil {
		s.LogError(ctx, err, "Failed to save task", slog.String("task_list_id", task.TaskListID))
		return nil, err
	}
	s.record(ctx, task.TaskID, userID, domain.TaskActionCreated, map[string]any{"title": task.Title})

	saved, err := s.reload(ctx, task.TaskID)
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Task created", slog.String("task_id", saved.TaskID))
	s.notify(ctx, domain.EventTaskCreated, saved.WorkspaceID, dto.ToTaskResponse(saved))
	return saved, nil
}

// UpdateTask applies a partial update and records the changed fields in the task history.
// Moving the task to another list is limited to lists of the same project.
func (s *taskService) UpdateTask(ctx context.Context, taskID string, req dto.UpdateTaskRequest, userID string) (*domain.Task, error) {
	task, err := s.loadTask(ctx, taskID, userID)
	if err != nil {
		return nil, err
	}
	update, err := req.ToDomain()
	if err != nil {
		return nil, err
	}
	if update.Title != nil {
		title := strings.TrimSpace(utils.StripTags(*update.Title))
		if title == "" {
			return nil, apperrors.NewValidationFailedError("title cannot be empty")
		}
		update.Title = &title
	}
	if update.Description != nil {
		desc := utils.SanitizeHTML(*update.Description)
		update.Description = &desc
	}
	if update.Status != nil && !update.Status.IsValid() {
		return nil, apperrors.NewValidationFailedError("Invalid task status")
	}
	if update.Priority != nil && !update.Priority.IsValid() {
		return nil, apperrors.NewValidationFailedError("Invalid task priority")
	}
	if update.TaskListID != nil && *update.TaskListID != task.TaskListID {
		list, err := s.findTaskList(ctx, *update.TaskListID)
		if err != nil {
			return nil, err
		}
		if list.ProjectID != task.ProjectID {
			return nil, apperrors.NewValidationFailedError("Task list must belong to the task's project")
		}
	}
	if err := s.checkAssignee(ctx, task.WorkspaceID, update.AssigneeID); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	merged, changes := update.ApplyTo(*task, now)
	if len(changes) == 0 {
		return task, nil
	}
	merged.UpdatedAt = now
	if err := s.taskRepo.UpdateTask(ctx, merged); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Task not found")
		}
		s.LogError(ctx, err, "Failed to update task", slog.String("task_id", taskID))
		return nil, err
	}
	s.record(ctx, taskID, userID, domain.TaskActionUpdated, changes)

	saved, err := s.reload(ctx, taskID)
	if err != nil {
		return nil, err
	}
	s.notify(ctx, domain.EventTaskUpdated, saved.WorkspaceID, dto.ToTaskResponse(saved))
	return saved, nil
}

// DeleteTask removes the task with its subtasks. Any workspace member may delete.
func (s *taskService) DeleteTask(ctx context.Context, taskID, userID string) error {
	task, err := s.loadTask(ctx, taskID, userID)
	if err != nil {
		return err
	}
	attachments, err := s.taskRepo.DeleteTask(ctx, taskID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("Task not found")
		}
		s.LogError(ctx, err, "Failed to delete task", slog.String("task_id", taskID))
		return err
	}
	removeTaskFiles(ctx, &s.BaseService, s.store, attachments)
	s.notify(ctx, domain.EventTaskDeleted, task.WorkspaceID, map[string]string{"id": taskID})
	return nil
}

// findComment returns the comment only when it belongs to taskID.
func (s *taskService) findComment(ctx context.Context, taskID, commentID string) (*domain.Comment, error) {
	comment, err := s.taskRepo.FindCommentByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Comment not found")
		}
		return nil, err
	}
	if comment.TaskID != taskID {
		return nil, apperrors.NewNotFoundError("Comment not found")
	}
	return comment, nil
}

func (s *taskService) AddComment(ctx context.Context, taskID string, req dto.CreateCommentRequest, userID string) (*domain.Comment, error) {
	task, err := s.loadTask(ctx, taskID, userID)
	if err != nil {
		return nil, err
	}
	content := strings.TrimSpace(utils.SanitizeHTML(req.Content))
	if content == "" {
		return nil, apperrors.NewValidationFailedError("content is required")
	}
	parentID := domain.StringPtr(strings.TrimSpace(domain.StringValue(req.ParentCommentID)))
	if parentID != nil {
		if _, err := s.findComment(ctx, taskID, *parentID); err != nil {
			return nil, apperrors.NewValidationFailedError("Parent comment not found on this task")
		}
	}

	now := s.now().UTC()
	comment := domain.Comment{
		CommentID:       uuid.NewString(),
		TaskID:          taskID,
		UserID:          userID,
		ParentCommentID: parentID,
		Content:         content,
		Timestamps:      domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}
	if err := s.taskRepo.SaveComment(ctx, comment); err != nil {
		s.LogError(ctx, err, "Failed to save comment", slog.String("task_id", taskID))
		return nil, err
	}
	s.record(ctx, taskID, userID, domain.TaskActionCommented, map[string]any{"comment_id": comment.CommentID})

	saved, err := s.taskRepo.FindCommentByID(ctx, comment.CommentID)
	if err != nil {
		return nil, err
	}
	s.notify(ctx, domain.EventCommentCreated, task.WorkspaceID, dto.ToCommentResponse(saved))
	return saved, nil
}

func (s *taskService) ListComments(ctx context.Context, taskID, userID string) ([]domain.Comment, error) {
	if _, err := s.loadTask(ctx, taskID, userID); err != nil {
		return nil, err
	}
	return s.taskRepo.ListComments(ctx, taskID)
}

func (s *taskService) UpdateComment(ctx context.Context, taskID, commentID string, req dto.UpdateCommentRequest, userID string) (*domain.Comment, error) {
	if _, err := s.loadTask(ctx, taskID, userID); err != nil {
		return nil, err
	}
	comment, err := s.findComment(ctx, taskID, commentID)
	if err != nil {
		return nil, err
	}
	if comment.UserID != userID {
		return nil, apperrors.NewForbiddenError("Can only edit your own comments")
	}
	content := strings.TrimSpace(utils.SanitizeHTML(req.Content))
	if content == "" {
		return nil, apperrors.NewValidationFailedError("content cannot be empty")
	}
	comment.Content = content
	comment.UpdatedAt = s.now().UTC()
	if err := s.taskRepo.UpdateComment(ctx, *comment); err != nil {
		s.LogError(ctx, err, "Failed to update comment", slog.String("comment_id", commentID))
		return nil, err
	}
	return comment, nil
}

func (s *taskService) DeleteComment(ctx context.Context, taskID, commentID, userID string) error {
	if _, err := s.loadTask(ctx, taskID, userID); err != nil {
		return err
	}
	comment, err := s.findComment(ctx, taskID, commentID)
	if err != nil {
		return err
	}
	if comment.UserID != userID {
		return apperrors.NewForbiddenError("Can only delete your own comments")
	}
	return s.taskRepo.DeleteComment(ctx, commentID)
}

func (s *taskService) AddTaskAttachment(ctx context.Context, taskID string, upload domain.Upload, userID string) (*domain.TaskAttachment, error) {
	if _, err := s.loadTask(ctx, taskID, userID); err != nil {
		return nil, err
	}
	if s.store == nil {
		return nil, apperrors.NewInternalServerError("Attachment storage is not configured")
	}
	if s.maxFileBytes > 0 && upload.Size > s.maxFileBytes {
		return nil, apperrors.NewTooLargeError(fmt.Sprintf("File size exceeds maximum of %d bytes", s.maxFileBytes))
	}
	if !domain.AllowedTaskAttachmentTypes[upload.ContentType] {
		return nil, apperrors.NewUnsupportedMediaError(fmt.Sprintf("File type %s not allowed", upload.ContentType))
	}

	stored, err := s.store.Save(ctx, taskAttachmentFolder, upload)
	if err != nil {
		s.LogError(ctx, err, "Failed to store task attachment", slog.String("task_id", taskID))
		return nil, err
	}
	attachment := domain.TaskAttachment{
		AttachmentID:    uuid.NewString(),
		TaskID:          taskID,
		StoragePublicID: stored.PublicID,
		URL:             stored.URL,
		ResourceType:    stored.ResourceType,
		FileName:        utils.StripTags(upload.FileName),
		FileSize:        stored.Size,
		MimeType:        upload.ContentType,
		UploadedBy:      userID,
		UploadedAt:      s.now().UTC(),
	}
	if attachment.ResourceType == "" {
		attachment.ResourceType = domain.ResourceTypeFor(upload.ContentType)
	}
	if err := s.taskRepo.SaveTaskAttachment(ctx, attachment); err != nil {
		removeTaskFiles(ctx, &s.BaseService, s.store, []domain.TaskAttachment{attachment})
		s.LogError(ctx, err, "Failed to save task attachment record", slog.String("task_id", taskID))
		return nil, err
	}
	s.record(ctx, taskID, userID, domain.TaskActionAttached, map[string]any{"file_name": attachment.FileName})
	return &attachment, nil
}

func (s *taskService) ListTaskAttachments(ctx context.Context, taskID, userID string) ([]domain.TaskAttachment, error) {
	if _, err := s.loadTask(ctx, taskID, userID); err != nil {
		return nil, err
	}
	return s.taskRepo.ListTaskAttachments(ctx, taskID)
}

// DeleteTaskAttachment checks membership before looking the attachment up, then allows only
// the uploader to remove it.
func (s *taskService) DeleteTaskAttachment(ctx context.Context, taskID, attachmentID, userID string) error {
	if _, err := s.loadTask(ctx, taskID, userID); err != nil {
		return err
	}
	attachment, err := s.taskRepo.FindTaskAttachmentByID(ctx, attachmentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("Attachment not found")
		}
		return err
	}
	if attachment.TaskID != taskID {
		return apperrors.NewNotFoundError("Attachment not found")
	}
	if attachment.UploadedBy != userID {
		return apperrors.NewForbiddenError("Can only delete your own attachments")
	}
	if err := s.taskRepo.DeleteTaskAttachment(ctx, attachmentID); err != nil {
		s.LogError(ctx, err, "Failed to delete task attachment record", slog.String("attachment_id", attachmentID))
		return err
	}
	removeTaskFiles(ctx, &s.BaseService, s.store, []domain.TaskAttachment{*attachment})
	return nil
}
