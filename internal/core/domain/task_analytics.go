package domain

import "time"

// TaskOverview summarises the tasks of a workspace.
type TaskOverview struct {
	TotalTasks      int
	CompletedTasks  int
	InProgressTasks int
	OverdueTasks    int
	CompletionRate  float64
	// AverageCompletionDays is nil when no task has been completed.
	AverageCompletionDays *float64
}

// ProjectProgress is a project's completion summary.
type ProjectProgress struct {
	ProjectID      string
	ProjectName    string
	TotalTasks     int
	CompletedTasks int
	CompletionRate float64
}

// UserProductivity summarises the tasks assigned to one member.
type UserProductivity struct {
	UserID         string
	UserName       string
	TasksAssigned  int
	TasksCompleted int
	CompletionRate float64
	// AverageHoursPerTask averages actual_hours over completed tasks that recorded them.
	AverageHoursPerTask *float64
}

// WorkspaceProgress is one workspace's section of the executive dashboard.
type WorkspaceProgress struct {
	WorkspaceID    string
	WorkspaceName  string
	TotalProjects  int
	TotalTasks     int
	CompletedTasks int
	ActiveMembers  int
	CompletionRate float64
	Projects       []ProjectProgress
	// FieldActivities is set only for workspaces that have logged activities.
	FieldActivities *ActivityOverview
}

// CompletionTrendPoint counts tasks completed on one calendar day.
type CompletionTrendPoint struct {
	Date      time.Time
	Completed int
}

// ExecutiveDashboard is the cross-workspace view for executives.
type ExecutiveDashboard struct {
	Overview             TaskOverview
	Workspaces           []WorkspaceProgress
	TopPerformers        []UserProductivity
	CompletionTrend      []CompletionTrendPoint
	PriorityDistribution map[TaskPriority]int
	StatusDistribution   map[TaskStatus]int
}
