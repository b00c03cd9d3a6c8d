package aggregation

import (
	"sort"
	"time"

	"github.com/flowhive/flowhive_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

const (
	// DefaultProductivityLimit applies when the caller passes a non-positive limit.
	DefaultProductivityLimit = 10
	executiveTopPerformers   = 5
	// CompletionTrendDays is the length of the executive completion trend, today included.
	CompletionTrendDays = 7
)

// CompletionRate is completed/total as a percentage with two decimals. A zero total yields 0.
func CompletionRate(completed, total int) float64 {
	if total <= 0 {
		return 0
	}
	return decimal.NewFromInt(int64(completed)).
		Div(decimal.NewFromInt(int64(total))).
		Mul(hundred).
		Round(2).
		InexactFloat64()
}

// TaskOverview counts tasks by state. Average completion time is measured in whole days
// from creation to completion and is nil when nothing has been completed.
func TaskOverview(tasks []domain.Task, now time.Time) domain.TaskOverview {
	out := domain.TaskOverview{TotalTasks: len(tasks)}
	totalDays := 0
	timed := 0
	for _, t := range tasks {
		switch t.Status {
		case domain.TaskCompleted:
			out.CompletedTasks++
			if t.CompletedAt != nil && !t.CreatedAt.IsZero() {
				totalDays += int(t.CompletedAt.Sub(t.CreatedAt).Hours() / 24)
				timed++
			}
		case domain.TaskInProgress:
			out.InProgressTasks++
		}
		if t.IsOverdue(now) {
			out.OverdueTasks++
		}
	}
	out.CompletionRate = CompletionRate(out.CompletedTasks, out.TotalTasks)
	if timed > 0 {
		avg := round2(decimal.NewFromInt(int64(totalDays)).Div(decimal.NewFromInt(int64(timed))))
		out.AverageCompletionDays = &avg
	}
	return out
}

// ProjectProgress summarises the tasks belonging to project.
func ProjectProgress(project domain.Project, tasks []domain.Task) domain.ProjectProgress {
	out := domain.ProjectProgress{ProjectID: project.ProjectID, ProjectName: project.Name}
	for _, t := range tasks {
		if t.ProjectID != project.ProjectID {
			continue
		}
		out.TotalTasks++
		if t.Status == domain.TaskCompleted {
			out.CompletedTasks++
		}
	}
	out.CompletionRate = CompletionRate(out.CompletedTasks, out.TotalTasks)
	return out
}

// Productivity computes per-member task counts, highest completion rate first.
// Members keep their input order on ties.
func Productivity(members []domain.MemberProfile, tasks []domain.Task) []domain.UserProductivity {
	type tally struct {
		assigned, completed, timed int
		hours                      int64
	}
	byUser := make(map[string]*tally, len(members))
	for _, m := range members {
		byUser[m.UserID] = &tally{}
	}
	for _, t := range tasks {
		if t.AssigneeID == nil {
			continue
		}
		c, ok := byUser[*t.AssigneeID]
		if !ok {
			continue
		}
		c.assigned++
		if t.Status == domain.TaskCompleted {
			c.completed++
			if t.ActualHours != nil {
				c.hours += int64(*t.ActualHours)
				c.timed++
			}
		}
	}

	out := make([]domain.UserProductivity, 0, len(members))
	for _, m := range members {
		c := byUser[m.UserID]
		p := domain.UserProductivity{
			UserID:         m.UserID,
			UserName:       m.DisplayName(),
			TasksAssigned:  c.assigned,
			TasksCompleted: c.completed,
			CompletionRate: CompletionRate(c.completed, c.assigned),
		}
		if c.timed > 0 {
			avg := round2(decimal.NewFromInt(c.hours).Div(decimal.NewFromInt(int64(c.timed))))
			p.AverageHoursPerTask = &avg
		}
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CompletionRate > out[j].CompletionRate })
	return out
}

// CompletionTrend counts tasks completed on each of the last days calendar days (UTC),
// oldest first and ending today.
func CompletionTrend(tasks []domain.Task, now time.Time, days int) []domain.CompletionTrendPoint {
	today := domain.TruncateToDate(now.UTC())
	first := today.AddDate(0, 0, -(days - 1))
	out := make([]domain.CompletionTrendPoint, days)
	for i := range out {
		out[i].Date = first.AddDate(0, 0, i)
	}
	for _, t := range tasks {
		if t.CompletedAt == nil {
			continue
		}
		d := domain.TruncateToDate(t.CompletedAt.UTC())
		if d.Before(first) || d.After(today) {
			continue
		}
		out[int(d.Sub(first).Hours()/24)].Completed++
	}
	return out
}

// PriorityDistribution counts tasks per priority. Every priority is present.
func PriorityDistribution(tasks []domain.Task) map[domain.TaskPriority]int {
	out := make(map[domain.TaskPriority]int, len(domain.TaskPriorities))
	for _, p := range domain.TaskPriorities {
		out[p] = 0
	}
	for _, t := range tasks {
		out[t.Priority]++
	}
	return out
}

// StatusDistribution counts tasks per status. Every status is present.
func StatusDistribution(tasks []domain.Task) map[domain.TaskStatus]int {
	out := make(map[domain.TaskStatus]int, len(domain.TaskStatuses))
	for _, s := range domain.TaskStatuses {
		out[s] = 0
	}
	for _, t := range tasks {
		out[t.Status]++
	}
	return out
}

// WorkspaceSnapshot is everything the executive dashboard reads for one workspace.
type WorkspaceSnapshot struct {
	Workspace  domain.Workspace
	Projects   []domain.Project
	Tasks      []domain.Task
	Members    []domain.MemberProfile
	Activities []domain.FieldActivity
}

// ExecutiveDashboard combines workspace snapshots into the executive view. Members of
// several workspaces are counted once in the top performers, over all their tasks.
func ExecutiveDashboard(snapshots []WorkspaceSnapshot, now time.Time) domain.ExecutiveDashboard {
	var allTasks []domain.Task
	var allMembers []domain.MemberProfile
	seen := make(map[string]struct{})
	out := domain.ExecutiveDashboard{Workspaces: make([]domain.WorkspaceProgress, 0, len(snapshots))}

	for _, s := range snapshots {
		allTasks = append(allTasks, s.Tasks...)
		for _, m := range s.Members {
			if _, ok := seen[m.UserID]; !ok {
				seen[m.UserID] = struct{}{}
				allMembers = append(allMembers, m)
			}
		}

		wp := domain.WorkspaceProgress{
			WorkspaceID:   s.Workspace.WorkspaceID,
			WorkspaceName: s.Workspace.Name,
			TotalProjects: len(s.Projects),
			TotalTasks:    len(s.Tasks),
			ActiveMembers: len(s.Members),
			Projects:      make([]domain.ProjectProgress, 0, len(s.Projects)),
		}
		for _, t := range s.Tasks {
			if t.Status == domain.TaskCompleted {
				wp.CompletedTasks++
			}
		}
		wp.CompletionRate = CompletionRate(wp.CompletedTasks, wp.TotalTasks)
		for _, p := range s.Projects {
			wp.Projects = append(wp.Projects, ProjectProgress(p, s.Tasks))
		}
		if len(s.Activities) > 0 {
			overview := Overview(s.Activities, now)
			wp.FieldActivities = &overview
		}
		out.Workspaces = append(out.Workspaces, wp)
	}

	out.Overview = TaskOverview(allTasks, now)

	out.TopPerformers = []domain.UserProductivity{}
	for _, p := range Productivity(allMembers, allTasks) {
		if p.TasksAssigned == 0 {
			continue
		}
		out.TopPerformers = append(out.TopPerformers, p)
		if len(out.TopPerformers) == executiveTopPerformers {
			break
		}
	}
	out.CompletionTrend = CompletionTrend(allTasks, now, CompletionTrendDays)
	out.PriorityDistribution = PriorityDistribution(allTasks)
	out.StatusDistribution = StatusDistribution(allTasks)
	return out
}
