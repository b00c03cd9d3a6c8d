package pgsql

import (
	"context"
	"fmt"

	"github.com/flowhive/flowhive_backend/internal/apperrors"
	"github.com/flowhive/flowhive_backend/internal/core/domain"
	portsrepo "github.com/flowhive/flowhive_backend/internal/core/ports/repositories"
	"github.com/flowhive/flowhive_backend/internal/models"
	"github.com/flowhive/flowhive_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTaskRepository struct {
	BaseRepository
}

func newPgxTaskRepository(pool *pgxpool.Pool) portsrepo.TaskRepositoryWithTx {
	return &PgxTaskRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TaskRepositoryWithTx = (*PgxTaskRepository)(nil)

const taskSelectQuery = `
SELECT t.task_id, t.task_list_id, l.project_id, p.workspace_id, t.parent_task_id, t.creator_id, t.assignee_id,
	t.title, t.description, t.status, t.priority, t.due_date, t.start_date, t.completed_at, t.position,
	t.estimated_hours, t.actual_hours, t.created_at, t.updated_at,
	c.username AS creator_username, c.email AS creator_email, c.full_name AS creator_full_name,
	a.username AS assignee_username, a.email AS assignee_email, a.full_name AS assignee_full_name
FROM tasks t
JOIN task_lists l ON l.task_list_id = t.task_list_id
JOIN projects p ON p.project_id = l.project_id
LEFT JOIN users c ON c.user_id = t.creator_id
LEFT JOIN users a ON a.user_id = t.assignee_id
`

const commentSelectQuery = `
SELECT tc.comment_id, tc.task_id, tc.user_id, tc.parent_comment_id, tc.content, tc.created_at, tc.updated_at,
	u.username AS author_username, u.email AS author_email, u.full_name AS author_full_name, u.avatar_url AS author_avatar
FROM task_comments tc
LEFT JOIN users u ON u.user_id = tc.user_id
`

const taskAttachmentSelectQuery = `
SELECT ta.attachment_id, ta.task_id, ta.storage_public_id, ta.url, ta.resource_type, ta.file_name, ta.file_size,
	ta.mime_type, ta.uploaded_by, ta.uploaded_at,
	u.username AS uploader_username, u.email AS uploader_email, u.full_name AS uploader_full_name
FROM task_attachments ta
LEFT JOIN users u ON u.user_id = ta.uploaded_by
`

const taskActivitySelectQuery = `
SELECT al.log_id, al.task_id, al.user_id, al.action, al.details, al.created_at,
	u.username, u.email, u.full_name
FROM task_activity_logs al
LEFT JOIN users u ON u.user_id = al.user_id
`

// listSubtreeAttachments returns the attachments of every task matching seed and all of
// their subtasks. seed is a condition on tasks with a single $1 argument.
func listSubtreeAttachments(ctx context.Context, q querier, seed, arg string) ([]domain.TaskAttachment, error) {
	query := taskAttachmentSelectQuery + `
		WHERE ta.task_id IN (
			WITH RECURSIVE subtree AS (
				SELECT task_id FROM tasks WHERE ` + seed + `
				UNION
				SELECT t.task_id FROM tasks t JOIN subtree s ON t.parent_task_id = s.task_id
			)
			SELECT task_id FROM subtree
		)`
	rows, err := q.Query(ctx, query, arg)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query task attachments", err)
	}
	defer rows.Close()
	ms, err := collect[models.TaskAttachment](rows, "failed to collect task attachments")
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainTaskAttachmentSlice(ms), nil
}

func (r *PgxTaskRepository) queryTasks(ctx context.Context, query string, args ...any) ([]domain.Task, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query tasks", err)
	}
	defer rows.Close()
	ms, err := collect[models.Task](rows, "failed to collect tasks")
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainTaskSlice(ms), nil
}

func (r *PgxTaskRepository) FindTaskByID(ctx context.Context, taskID string) (*domain.Task, error) {
	tasks, err := r.queryTasks(ctx, taskSelectQuery+`WHERE t.task_id = $1`, taskID)
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &tasks[0], nil
}

func (r *PgxTaskRepository) ListTasks(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error) {
	q := &whereBuilder{}
	q.add("p.workspace_id = ?", filter.WorkspaceID)
	if filter.ProjectID != nil {
		q.add("l.project_id = ?", *filter.ProjectID)
	}
	if filter.TaskListID != nil {
		q.add("t.task_list_id = ?", *filter.TaskListID)
	}
	if filter.AssigneeID != nil {
		q.add("t.assignee_id = ?", *filter.AssigneeID)
	}
	if filter.ParentTaskID != nil {
		q.add("t.parent_task_id = ?", *filter.ParentTaskID)
	}
	if filter.Status != nil {
		q.add("t.status = ?", string(*filter.Status))
	}
	query := taskSelectQuery + q.where() + `ORDER BY l.position ASC, t.position ASC, t.created_at ASC`
	args := q.args
	if filter.Limit > 0 {
		query += fmt.Sprintf(` LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
		args = append(args, filter.Limit, filter.Offset)
	}
	return r.queryTasks(ctx, query, args...)
}

func (r *PgxTaskRepository) ListAssignedTasks(ctx context.Context, userID string, status *domain.TaskStatus) ([]domain.Task, error) {
	q := &whereBuilder{}
	q.add("t.assignee_id = ?", userID)
	if status != nil {
		q.add("t.status = ?", string(*status))
	}
	return r.queryTasks(ctx, taskSelectQuery+q.where()+`ORDER BY t.created_at DESC`, q.args...)
}

func (r *PgxTaskRepository) SaveTask(ctx context.Context, t domain.Task) error {
	query := `
		INSERT INTO tasks (
			task_id, task_list_id, parent_task_id, creator_id, assignee_id, title, description, status, priority,
			due_date, start_date, completed_at, position, estimated_hours, actual_hours, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	_, err := r.Pool.Exec(ctx, query,
		t.TaskID, t.TaskListID, t.ParentTaskID, t.CreatorID, t.AssigneeID, t.Title, t.Description,
		string(t.Status), string(t.Priority), t.DueDate, t.StartDate, t.CompletedAt, t.Position,
		t.EstimatedHours, t.ActualHours, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return translateWriteError(err, "task already exists", "task list, parent task or assignee does not exist", "failed to save task")
	}
	return nil
}

func (r *PgxTaskRepository) UpdateTask(ctx context.Context, t domain.Task) error {
	query := `
		UPDATE tasks
		SET task_list_id = $1, assignee_id = $2, title = $3, description = $4, status = $5, priority = $6,
			due_date = $7, start_date = $8, completed_at = $9, position = $10, estimated_hours = $11,
			actual_hours = $12, updated_at = $13
		WHERE task_id = $14;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		t.TaskListID, t.AssigneeID, t.Title, t.Description, string(t.Status), string(t.Priority),
		t.DueDate, t.StartDate, t.CompletedAt, t.Position, t.EstimatedHours, t.ActualHours, t.UpdatedAt, t.TaskID,
	)
	if err != nil {
		return translateWriteError(err, "task conflicts with an existing task", "task list or assignee does not exist", "failed to update task")
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteTask removes the task; subtasks, comments, attachments and history cascade.
func (r *PgxTaskRepository) DeleteTask(ctx context.Context, taskID string) ([]domain.TaskAttachment, error) {
	var attachments []domain.TaskAttachment
	err := r.withTx(ctx, func(tx pgx.Tx) error {
		var err error
		if attachments, err = listSubtreeAttachments(ctx, tx, `task_id = $1`, taskID); err != nil {
			return err
		}
		return deleteByPolicy(ctx, tx, domain.EntityTask, "tasks", "task_id", taskID)
	})
	if err != nil {
		return nil, err
	}
	return attachments, nil
}

func (r *PgxTaskRepository) SaveTaskActivity(ctx context.Context, entry domain.TaskActivity) error {
	details, err := mapping.TaskActivityDetailsJSON(entry.Details)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode task activity details", err)
	}
	query := `
		INSERT INTO task_activity_logs (log_id, task_id, user_id, action, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err = r.Pool.Exec(ctx, query, entry.LogID, entry.TaskID, entry.UserID, entry.Action, string(details), entry.CreatedAt)
	if err != nil {
		return translateWriteError(err, "task activity already recorded", "task does not exist", "failed to save task activity")
	}
	return nil
}

func (r *PgxTaskRepository) ListTaskActivity(ctx context.Context, taskID string) ([]domain.TaskActivity, error) {
	rows, err := r.Pool.Query(ctx, taskActivitySelectQuery+`WHERE al.task_id = $1 ORDER BY al.created_at DESC`, taskID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query task activity", err)
	}
	defer rows.Close()
	ms, err := collect[models.TaskActivity](rows, "failed to collect task activity")
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainTaskActivitySlice(ms), nil
}

func (r *PgxTaskRepository) SaveComment(ctx context.Context, c domain.Comment) error {
	query := `
		INSERT INTO task_comments (comment_id, task_id, user_id, parent_comment_id, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query, c.CommentID, c.TaskID, c.UserID, c.ParentCommentID, c.Content, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return translateWriteError(err, "comment already exists", "task or parent comment does not exist", "failed to save comment")
	}
	return nil
}

func (r *PgxTaskRepository) queryComments(ctx context.Context, query string, args ...any) ([]domain.Comment, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query comments", err)
	}
	defer rows.Close()
	ms, err := collect[models.TaskComment](rows, "failed to collect comments")
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainCommentSlice(ms), nil
}

func (r *PgxTaskRepository) FindCommentByID(ctx context.Context, commentID string) (*domain.Comment, error) {
	comments, err := r.queryComments(ctx, commentSelectQuery+`WHERE tc.comment_id = $1`, commentID)
	if err != nil {
		return nil, err
	}
	if len(comments) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &comments[0], nil
}

func (r *PgxTaskRepository) ListComments(ctx context.Context, taskID string) ([]domain.Comment, error) {
	return r.queryComments(ctx, commentSelectQuery+`WHERE tc.task_id = $1 ORDER BY tc.created_at ASC`, taskID)
}

func (r *PgxTaskRepository) UpdateComment(ctx context.Context, c domain.Comment) error {
	cmdTag, err := r.Pool.Exec(ctx, `UPDATE task_comments SET content = $1, updated_at = $2 WHERE comment_id = $3`,
		c.Content, c.UpdatedAt, c.CommentID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update comment", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxTaskRepository) DeleteComment(ctx context.Context, commentID string) error {
	return deleteByPolicy(ctx, r.Pool, domain.EntityTaskComment, "task_comments", "comment_id", commentID)
}

func (r *PgxTaskRepository) SaveTaskAttachment(ctx context.Context, a domain.TaskAttachment) error {
	query := `
		INSERT INTO task_attachments (
			attachment_id, task_id, storage_public_id, url, resource_type, file_name, file_size,
			mime_type, uploaded_by, uploaded_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		a.AttachmentID, a.TaskID, a.StoragePublicID, a.URL, string(a.ResourceType), a.FileName, a.FileSize,
		a.MimeType, a.UploadedBy, a.UploadedAt,
	)
	if err != nil {
		return translateWriteError(err, "attachment already exists", "task does not exist", "failed to save task attachment")
	}
	return nil
}

func (r *PgxTaskRepository) queryTaskAttachments(ctx context.Context, query string, args ...any) ([]domain.TaskAttachment, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query task attachments", err)
	}
	defer rows.Close()
	ms, err := collect[models.TaskAttachment](rows, "failed to collect task attachments")
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainTaskAttachmentSlice(ms), nil
}

func (r *PgxTaskRepository) FindTaskAttachmentByID(ctx context.Context, attachmentID string) (*domain.TaskAttachment, error) {
	as, err := r.queryTaskAttachments(ctx, taskAttachmentSelectQuery+`WHERE ta.attachment_id = $1`, attachmentID)
	if err != nil {
		return nil, err
	}
	if len(as) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &as[0], nil
}

func (r *PgxTaskRepository) ListTaskAttachments(ctx context.Context, taskID string) ([]domain.TaskAttachment, error) {
	return r.queryTaskAttachments(ctx, taskAttachmentSelectQuery+`WHERE ta.task_id = $1 ORDER BY ta.uploaded_at ASC`, taskID)
}

func (r *PgxTaskRepository) DeleteTaskAttachment(ctx context.Context, attachmentID string) error {
	return deleteByPolicy(ctx, r.Pool, domain.EntityTaskAttachment, "task_attachments", "attachment_id", attachmentID)
}
