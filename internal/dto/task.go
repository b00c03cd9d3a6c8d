package dto

import (
	"time"

	"github.com/flowhive/flowhive_backend/internal/core/domain"
)

// CreateTaskRequest defines data for creating a task or, with parent_task_id, a subtask.
type CreateTaskRequest struct {
	TaskListID     string               `json:"task_list_id" binding:"required"`
	ParentTaskID   *string              `json:"parent_task_id"`
	Title          string               `json:"title" binding:"required,max=255"`
	Description    *string              `json:"description"`
	Status         *domain.TaskStatus   `json:"status" binding:"omitempty,oneof=todo in_progress in_review completed blocked"`
	Priority       *domain.TaskPriority `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	AssigneeID     *string              `json:"assignee_id"`
	DueDate        *string              `json:"due_date"`
	StartDate      *string              `json:"start_date"`
	EstimatedHours *int                 `json:"estimated_hours" binding:"omitempty,min=0"`
	Position       int                  `json:"position" binding:"min=0"`
}

func (r CreateTaskRequest) ToDomain() (domain.Task, error) {
	due, err := parseOptionalDate("due_date", r.DueDate)
	if err != nil {
		return domain.Task{}, err
	}
	start, err := parseOptionalDate("start_date", r.StartDate)
	if err != nil {
		return domain.Task{}, err
	}
	t := domain.Task{
		TaskListID:     r.TaskListID,
		ParentTaskID:   emptyToNil(r.ParentTaskID),
		Title:          r.Title,
		Description:    emptyToNil(r.Description),
		Status:         domain.TaskTodo,
		Priority:       domain.PriorityMedium,
		AssigneeID:     emptyToNil(r.AssigneeID),
		DueDate:        due,
		StartDate:      start,
		EstimatedHours: r.EstimatedHours,
		Position:       r.Position,
	}
	if r.Status != nil {
		t.Status = *r.Status
	}
	if r.Priority != nil {
		t.Priority = *r.Priority
	}
	return t, nil
}

// UpdateTaskRequest defines a partial task update. An empty assignee_id unassigns the task.
type UpdateTaskRequest struct {
	Title          *string              `json:"title" binding:"omitempty,min=1,max=255"`
	Description    *string              `json:"description"`
	Status         *domain.TaskStatus   `json:"status" binding:"omitempty,oneof=todo in_progress in_review completed blocked"`
	Priority       *domain.TaskPriority `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	AssigneeID     *string              `json:"assignee_id"`
	TaskListID     *string              `json:"task_list_id"`
	DueDate        *string              `json:"due_date"`
	StartDate      *string              `json:"start_date"`
	EstimatedHours *int                 `json:"estimated_hours" binding:"omitempty,min=0"`
	ActualHours    *int                 `json:"actual_hours" binding:"omitempty,min=0"`
	Position       *int                 `json:"position" binding:"omitempty,min=0"`
}

func (r UpdateTaskRequest) ToDomain() (domain.TaskUpdate, error) {
	due, err := parseOptionalDate("due_date", r.DueDate)
	if err != nil {
		return domain.TaskUpdate{}, err
	}
	start, err := parseOptionalDate("start_date", r.StartDate)
	if err != nil {
		return domain.TaskUpdate{}, err
	}
	return domain.TaskUpdate{
		Title:          r.Title,
		Description:    r.Description,
		Status:         r.Status,
		Priority:       r.Priority,
		DueDate:        due,
		StartDate:      start,
		AssigneeID:     r.AssigneeID,
		TaskListID:     emptyToNil(r.TaskListID),
		EstimatedHours: r.EstimatedHours,
		ActualHours:    r.ActualHours,
		Position:       r.Position,
	}, nil
}

// ListTasksParams defines query parameters for workspace task listings.
type ListTasksParams struct {
	ProjectID  *string `form:"project_id"`
	TaskListID *string `form:"task_list_id"`
	AssigneeID *string `form:"assignee_id"`
	Status     *string `form:"status" binding:"omitempty,oneof=todo in_progress in_review completed blocked"`
	Skip       int     `form:"skip,default=0" binding:"min=0"`
	Limit      int     `form:"limit,default=100" binding:"min=1,max=500"`
}

func (p ListTasksParams) ToFilter(workspaceID string) domain.TaskFilter {
	f := domain.TaskFilter{
		WorkspaceID: workspaceID,
		ProjectID:   emptyToNil(p.ProjectID),
		TaskListID:  emptyToNil(p.TaskListID),
		AssigneeID:  emptyToNil(p.AssigneeID),
		Limit:       p.Limit,
		Offset:      p.Skip,
	}
	if s := emptyToNil(p.Status); s != nil {
		status := domain.TaskStatus(*s)
		f.Status = &status
	}
	return f
}

// MyTasksParams filters the caller's assigned tasks.
type MyTasksParams struct {
	Status *string `form:"status" binding:"omitempty,oneof=todo in_progress in_review completed blocked"`
}

func (p MyTasksParams) StatusFilter() *domain.TaskStatus {
	if s := emptyToNil(p.Status); s != nil {
		status := domain.TaskStatus(*s)
		return &status
	}
	return nil
}

type TaskResponse struct {
	ID             string              `json:"id"`
	TaskListID     string              `json:"task_list_id"`
	ProjectID      string              `json:"project_id"`
	WorkspaceID    string              `json:"workspace_id"`
	ParentTaskID   *string             `json:"parent_task_id"`
	Title          string              `json:"title"`
	Description    *string             `json:"description"`
	Status         domain.TaskStatus   `json:"status"`
	Priority       domain.TaskPriority `json:"priority"`
	CreatorID      string              `json:"creator_id"`
	AssigneeID     *string             `json:"assignee_id"`
	DueDate        *string             `json:"due_date"`
	StartDate      *string             `json:"start_date"`
	CompletedAt    *time.Time          `json:"completed_at"`
	Position       int                 `json:"position"`
	EstimatedHours *int                `json:"estimated_hours"`
	ActualHours    *int                `json:"actual_hours"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
	Creator        *UserRefResponse    `json:"creator,omitempty"`
	Assignee       *UserRefResponse    `json:"assignee,omitempty"`
}

func ToTaskResponse(t *domain.Task) TaskResponse {
	return TaskResponse{
		ID:             t.TaskID,
		TaskListID:     t.TaskListID,
		ProjectID:      t.ProjectID,
		WorkspaceID:    t.WorkspaceID,
		ParentTaskID:   t.ParentTaskID,
		Title:          t.Title,
		Description:    t.Description,
		Status:         t.Status,
		Priority:       t.Priority,
		CreatorID:      t.CreatorID,
		AssigneeID:     t.AssigneeID,
		DueDate:        formatDate(t.DueDate),
		StartDate:      formatDate(t.StartDate),
		CompletedAt:    t.CompletedAt,
		Position:       t.Position,
		EstimatedHours: t.EstimatedHours,
		ActualHours:    t.ActualHours,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
		Creator:        toUserRefResponse(t.Creator),
		Assignee:       toUserRefResponse(t.Assignee),
	}
}

func ToTaskResponses(in []domain.Task) []TaskResponse {
	out := make([]TaskResponse, len(in))
	for i := range in {
		out[i] = ToTaskResponse(&in[i])
	}
	return out
}

type TaskActivityResponse struct {
	ID        string           `json:"id"`
	TaskID    string           `json:"task_id"`
	UserID    string           `json:"user_id"`
	Action    string           `json:"action"`
	Details   map[string]any   `json:"details"`
	CreatedAt time.Time        `json:"created_at"`
	User      *UserRefResponse `json:"user,omitempty"`
}

func ToTaskActivityResponses(in []domain.TaskActivity) []TaskActivityResponse {
	out := make([]TaskActivityResponse, len(in))
	for i, a := range in {
		out[i] = TaskActivityResponse{
			ID:        a.LogID,
			TaskID:    a.TaskID,
			UserID:    a.UserID,
			Action:    a.Action,
			Details:   a.Details,
			CreatedAt: a.CreatedAt,
			User:      toUserRefResponse(a.User),
		}
	}
	return out
}

// CreateCommentRequest adds a comment, optionally as a reply.
type CreateCommentRequest struct {
	Content         string  `json:"content" binding:"required"`
	ParentCommentID *string `json:"parent_comment_id"`
}

type UpdateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

type CommentResponse struct {
	ID              string           `json:"id"`
	TaskID          string           `json:"task_id"`
	UserID          string           `json:"user_id"`
	ParentCommentID *string          `json:"parent_comment_id"`
	Content         string           `json:"content"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
	Author          *UserRefResponse `json:"author,omitempty"`
	AuthorAvatar    *string          `json:"author_avatar"`
}

func ToCommentResponse(c *domain.Comment) CommentResponse {
	return CommentResponse{
		ID:              c.CommentID,
		TaskID:          c.TaskID,
		UserID:          c.UserID,
		ParentCommentID: c.ParentCommentID,
		Content:         c.Content,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
		Author:          toUserRefResponse(c.Author),
		AuthorAvatar:    c.AuthorAvatar,
	}
}

func ToCommentResponses(in []domain.Comment) []CommentResponse {
	out := make([]CommentResponse, len(in))
	for i := range in {
		out[i] = ToCommentResponse(&in[i])
	}
	return out
}

type TaskAttachmentResponse struct {
	ID           string              `json:"id"`
	TaskID       string              `json:"task_id"`
	URL          string              `json:"url"`
	ResourceType domain.ResourceType `json:"resource_type"`
	FileName     string              `json:"file_name"`
	FileSize     int64               `json:"file_size"`
	MimeType     string              `json:"mime_type"`
	UploadedBy   string              `json:"uploaded_by"`
	UploadedAt   time.Time           `json:"uploaded_at"`
	Uploader     *UserRefResponse    `json:"uploader,omitempty"`
}

func ToTaskAttachmentResponse(a *domain.TaskAttachment) TaskAttachmentResponse {
	return TaskAttachmentResponse{
		ID:           a.AttachmentID,
		TaskID:       a.TaskID,
		URL:          a.URL,
		ResourceType: a.ResourceType,
		FileName:     a.FileName,
		FileSize:     a.FileSize,
		MimeType:     a.MimeType,
		UploadedBy:   a.UploadedBy,
		UploadedAt:   a.UploadedAt,
		Uploader:     toUserRefResponse(a.Uploader),
	}
}

func ToTaskAttachmentResponses(in []domain.TaskAttachment) []TaskAttachmentResponse {
	out := make([]TaskAttachmentResponse, len(in))
	for i := range in {
		out[i] = ToTaskAttachmentResponse(&in[i])
	}
	return out
}

// UserProductivityParams bounds the productivity ranking.
type UserProductivityParams struct {
	Limit int `form:"limit,default=10" binding:"min=1,max=100"`
}

type TaskOverviewResponse struct {
	TotalTasks            int      `json:"total_tasks"`
	CompletedTasks        int      `json:"completed_tasks"`
	InProgressTasks       int      `json:"in_progress_tasks"`
	OverdueTasks          int      `json:"overdue_tasks"`
	CompletionRate        float64  `json:"completion_rate"`
	AverageCompletionDays *float64 `json:"average_completion_time_days"`
}

func ToTaskOverviewResponse(o domain.TaskOverview) TaskOverviewResponse {
	return TaskOverviewResponse{
		TotalTasks:            o.TotalTasks,
		CompletedTasks:        o.CompletedTasks,
		InProgressTasks:       o.InProgressTasks,
		OverdueTasks:          o.OverdueTasks,
		CompletionRate:        o.CompletionRate,
		AverageCompletionDays: o.AverageCompletionDays,
	}
}

type ProjectProgressResponse struct {
	ProjectID      string  `json:"project_id"`
	ProjectName    string  `json:"project_name"`
	TotalTasks     int     `json:"total_tasks"`
	CompletedTasks int     `json:"completed_tasks"`
	CompletionRate float64 `json:"completion_rate"`
}

func ToProjectProgressResponse(p domain.ProjectProgress) ProjectProgressResponse {
	return ProjectProgressResponse{
		ProjectID:      p.ProjectID,
		ProjectName:    p.ProjectName,
		TotalTasks:     p.TotalTasks,
		CompletedTasks: p.CompletedTasks,
		CompletionRate: p.CompletionRate,
	}
}

type UserProductivityResponse struct {
	UserID              string   `json:"user_id"`
	UserName            string   `json:"user_name"`
	TasksAssigned       int      `json:"tasks_assigned"`
	TasksCompleted      int      `json:"tasks_completed"`
	CompletionRate      float64  `json:"completion_rate"`
	AverageHoursPerTask *float64 `json:"average_hours_per_task"`
}

func ToUserProductivityResponses(in []domain.UserProductivity) []UserProductivityResponse {
	out := make([]UserProductivityResponse, len(in))
	for i, p := range in {
		out[i] = UserProductivityResponse{
			UserID:              p.UserID,
			UserName:            p.UserName,
			TasksAssigned:       p.TasksAssigned,
			TasksCompleted:      p.TasksCompleted,
			CompletionRate:      p.CompletionRate,
			AverageHoursPerTask: p.AverageHoursPerTask,
		}
	}
	return out
}

type WorkspaceProgressResponse struct {
	WorkspaceID     string                    `json:"workspace_id"`
	WorkspaceName   string                    `json:"workspace_name"`
	TotalProjects   int                       `json:"total_projects"`
	TotalTasks      int                       `json:"total_tasks"`
	CompletedTasks  int                       `json:"completed_tasks"`
	ActiveMembers   int                       `json:"active_members"`
	CompletionRate  float64                   `json:"completion_rate"`
	Projects        []ProjectProgressResponse `json:"projects"`
	FieldActivities *OverviewResponse         `json:"field_activities,omitempty"`
}

type CompletionTrendPointResponse struct {
	Date      string `json:"date"`
	Completed int    `json:"completed"`
}

type ExecutiveDashboardResponse struct {
	Overview             TaskOverviewResponse           `json:"overview"`
	Workspaces           []WorkspaceProgressResponse    `json:"workspaces"`
	TopPerformers        []UserProductivityResponse     `json:"top_performers"`
	CompletionTrend      []CompletionTrendPointResponse `json:"completion_trend"`
	PriorityDistribution map[domain.TaskPriority]int    `json:"priority_distribution"`
	StatusDistribution   map[domain.TaskStatus]int      `json:"status_distribution"`
}

func ToExecutiveDashboardResponse(d domain.ExecutiveDashboard) ExecutiveDashboardResponse {
	workspaces := make([]WorkspaceProgressResponse, len(d.Workspaces))
	for i, w := range d.Workspaces {
		projects := make([]ProjectProgressResponse, len(w.Projects))
		for j, p := range w.Projects {
			projects[j] = ToProjectProgressResponse(p)
		}
		workspaces[i] = WorkspaceProgressResponse{
			WorkspaceID:    w.WorkspaceID,
			WorkspaceName:  w.WorkspaceName,
			TotalProjects:  w.TotalProjects,
			TotalTasks:     w.TotalTasks,
			CompletedTasks: w.CompletedTasks,
			ActiveMembers:  w.ActiveMembers,
			CompletionRate: w.CompletionRate,
			Projects:       projects,
		}
		if w.FieldActivities != nil {
			overview := ToOverviewResponse(*w.FieldActivities)
			workspaces[i].FieldActivities = &overview
		}
	}
	trend := make([]CompletionTrendPointResponse, len(d.CompletionTrend))
	for i, p := range d.CompletionTrend {
		trend[i] = CompletionTrendPointResponse{Date: p.Date.Format(domain.DateLayout), Completed: p.Completed}
	}
	return ExecutiveDashboardResponse{
		Overview:             ToTaskOverviewResponse(d.Overview),
		Workspaces:           workspaces,
		TopPerformers:        ToUserProductivityResponses(d.TopPerformers),
		CompletionTrend:      trend,
		PriorityDistribution: d.PriorityDistribution,
		StatusDistribution:   d.StatusDistribution,
	}
}
