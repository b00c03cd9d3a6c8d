package domain

import "time"

// TaskStatus is where a task sits in its workflow.
type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in_progress"
	TaskInReview   TaskStatus = "in_review"
	TaskCompleted  TaskStatus = "completed"
	TaskBlocked    TaskStatus = "blocked"
)

// TaskStatuses lists every status in workflow order.
var TaskStatuses = []TaskStatus{TaskTodo, TaskInProgress, TaskInReview, TaskCompleted, TaskBlocked}

func (s TaskStatus) IsValid() bool {
	for _, v := range TaskStatuses {
		if v == s {
			return true
		}
	}
	return false
}

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
	PriorityUrgent TaskPriority = "urgent"
)

// TaskPriorities lists every priority, lowest first.
var TaskPriorities = []TaskPriority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

func (p TaskPriority) IsValid() bool {
	for _, v := range TaskPriorities {
		if v == p {
			return true
		}
	}
	return false
}

// Task is a unit of project work. A task with ParentTaskID set is a subtask.
// ProjectID and WorkspaceID are resolved through the task list.
type Task struct {
	TaskID         string
	TaskListID     string
	ProjectID      string
	WorkspaceID    string
	ParentTaskID   *string
	CreatorID      string
	AssigneeID     *string
	Title          string
	Description    *string
	Status         TaskStatus
	Priority       TaskPriority
	DueDate        *time.Time
	StartDate      *time.Time
	CompletedAt    *time.Time
	Position       int
	EstimatedHours *int
	ActualHours    *int
	Timestamps

	Creator  *UserRef
	Assignee *UserRef
}

// SetStatus updates the status and keeps CompletedAt consistent with it.
func (t *Task) SetStatus(status TaskStatus, now time.Time) {
	if status == TaskCompleted && t.Status != TaskCompleted {
		t.CompletedAt = &now
	} else if status != TaskCompleted {
		t.CompletedAt = nil
	}
	t.Status = status
}

// IsOverdue reports whether the task is past its due date and not completed.
func (t Task) IsOverdue(now time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(now) && t.Status != TaskCompleted
}

// TaskUpdate carries a partial task update. Status changes go through Task.SetStatus.
type TaskUpdate struct {
	Title          *string
	Description    *string
	Status         *TaskStatus
	Priority       *TaskPriority
	DueDate        *time.Time
	StartDate      *time.Time
	AssigneeID     *string
	TaskListID     *string
	EstimatedHours *int
	ActualHours    *int
	Position       *int
}

// ApplyTo returns a copy of t with the non-nil fields applied and a map of the changed
// fields in old/new form, suitable for the task activity log.
func (u TaskUpdate) ApplyTo(t Task, now time.Time) (Task, map[string]any) {
	changes := map[string]any{}
	record := func(field string, old, new any) {
		changes[field] = map[string]any{"old": old, "new": new}
	}
	if u.Title != nil && *u.Title != t.Title {
		record("title", t.Title, *u.Title)
		t.Title = *u.Title
	}
	if u.Description != nil && StringValue(u.Description) != StringValue(t.Description) {
		record("description", StringValue(t.Description), *u.Description)
		t.Description = u.Description
	}
	if u.Priority != nil && *u.Priority != t.Priority {
		record("priority", t.Priority, *u.Priority)
		t.Priority = *u.Priority
	}
	if u.DueDate != nil && (t.DueDate == nil || !t.DueDate.Equal(*u.DueDate)) {
		record("due_date", t.DueDate, *u.DueDate)
		t.DueDate = u.DueDate
	}
	if u.StartDate != nil && (t.StartDate == nil || !t.StartDate.Equal(*u.StartDate)) {
		record("start_date", t.StartDate, *u.StartDate)
		t.StartDate = u.StartDate
	}
	if u.AssigneeID != nil && StringValue(u.AssigneeID) != StringValue(t.AssigneeID) {
		record("assignee_id", StringValue(t.AssigneeID), *u.AssigneeID)
		t.AssigneeID = StringPtr(*u.AssigneeID)
	}
	if u.TaskListID != nil && *u.TaskListID != t.TaskListID {
		record("task_list_id", t.TaskListID, *u.TaskListID)
		t.TaskListID = *u.TaskListID
	}
	if u.EstimatedHours != nil && (t.EstimatedHours == nil || *t.EstimatedHours != *u.EstimatedHours) {
		record("estimated_hours", t.EstimatedHours, *u.EstimatedHours)
		t.EstimatedHours = u.EstimatedHours
	}
	if u.ActualHours != nil && (t.ActualHours == nil || *t.ActualHours != *u.ActualHours) {
		record("actual_hours", t.ActualHours, *u.ActualHours)
		t.ActualHours = u.ActualHours
	}
	if u.Position != nil && *u.Position != t.Position {
		record("position", t.Position, *u.Position)
		t.Position = *u.Position
	}
	if u.Status != nil && *u.Status != t.Status {
		record("status", t.Status, *u.Status)
		t.SetStatus(*u.Status, now)
	}
	return t, changes
}

// TaskFilter narrows task listings. Empty fields do not filter.
type TaskFilter struct {
	WorkspaceID  string
	ProjectID    *string
	TaskListID   *string
	AssigneeID   *string
	ParentTaskID *string
	Status       *TaskStatus
	Limit        int
	Offset       int
}

// Task activity log actions.
const (
	TaskActionCreated   = "created"
	TaskActionUpdated   = "updated"
	TaskActionCommented = "commented"
	TaskActionAttached  = "attached"
)

// TaskActivity is one entry of a task's history.
type TaskActivity struct {
	LogID     string
	TaskID    string
	UserID    string
	Action    string
	Details   map[string]any
	CreatedAt time.Time

	User *UserRef
}
