package models

import "time"

// Project is a row of the projects table.
type Project struct {
	ProjectID   string  `db:"project_id"`
	WorkspaceID string  `db:"workspace_id"`
	Name        string  `db:"name"`
	Description *string `db:"description"`
	Color       *string `db:"color"`
	Icon        *string `db:"icon"`
	CreatedBy   string  `db:"created_by"`
	Timestamps
}

// TaskList is a task_lists row with its project's workspace.
type TaskList struct {
	TaskListID  string  `db:"task_list_id"`
	ProjectID   string  `db:"project_id"`
	WorkspaceID string  `db:"workspace_id"`
	Name        string  `db:"name"`
	Description *string `db:"description"`
	Position    int     `db:"position"`
	Timestamps
}

// Task is a tasks row joined with its list, project, creator and assignee.
type Task struct {
	TaskID         string     `db:"task_id"`
	TaskListID     string     `db:"task_list_id"`
	ProjectID      string     `db:"project_id"`
	WorkspaceID    string     `db:"workspace_id"`
	ParentTaskID   *string    `db:"parent_task_id"`
	CreatorID      string     `db:"creator_id"`
	AssigneeID     *string    `db:"assignee_id"`
	Title          string     `db:"title"`
	Description    *string    `db:"description"`
	Status         string     `db:"status"`
	Priority       string     `db:"priority"`
	DueDate        *time.Time `db:"due_date"`
	StartDate      *time.Time `db:"start_date"`
	CompletedAt    *time.Time `db:"completed_at"`
	Position       int        `db:"position"`
	EstimatedHours *int       `db:"estimated_hours"`
	ActualHours    *int       `db:"actual_hours"`
	Timestamps

	CreatorUsername  *string `db:"creator_username"`
	CreatorEmail     *string `db:"creator_email"`
	CreatorFullName  *string `db:"creator_full_name"`
	AssigneeUsername *string `db:"assignee_username"`
	AssigneeEmail    *string `db:"assignee_email"`
	AssigneeFullName *string `db:"assignee_full_name"`
}

type TaskComment struct {
	CommentID       string  `db:"comment_id"`
	TaskID          string  `db:"task_id"`
	UserID          string  `db:"user_id"`
	ParentCommentID *string `db:"parent_comment_id"`
	Content         string  `db:"content"`
	Timestamps

	AuthorUsername *string `db:"author_username"`
	AuthorEmail    *string `db:"author_email"`
	AuthorFullName *string `db:"author_full_name"`
	AuthorAvatar   *string `db:"author_avatar"`
}

type TaskAttachment struct {
	AttachmentID    string    `db:"attachment_id"`
	TaskID          string    `db:"task_id"`
	StoragePublicID string    `db:"storage_public_id"`
	URL             string    `db:"url"`
	ResourceType    string    `db:"resource_type"`
	FileName        string    `db:"file_name"`
	FileSize        int64     `db:"file_size"`
	MimeType        string    `db:"mime_type"`
	UploadedBy      string    `db:"uploaded_by"`
	UploadedAt      time.Time `db:"uploaded_at"`

	UploaderUsername *string `db:"uploader_username"`
	UploaderEmail    *string `db:"uploader_email"`
	UploaderFullName *string `db:"uploader_full_name"`
}

// TaskActivity is a task_activity_logs row joined with the acting user.
type TaskActivity struct {
	LogID     string    `db:"log_id"`
	TaskID    string    `db:"task_id"`
	UserID    string    `db:"user_id"`
	Action    string    `db:"action"`
	Details   []byte    `db:"details"`
	CreatedAt time.Time `db:"created_at"`

	Username *string `db:"username"`
	Email    *string `db:"email"`
	FullName *string `db:"full_name"`
}
