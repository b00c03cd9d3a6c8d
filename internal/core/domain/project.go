package domain

// Project groups task lists inside a workspace.
type Project struct {
	ProjectID   string
	WorkspaceID string
	Name        string
	Description *string
	Color       *string
	Icon        *string
	CreatedBy   string
	Timestamps

	TaskLists []TaskList
}

// ProjectUpdate carries a partial project update.
type ProjectUpdate struct {
	Name        *string
	Description *string
	Color       *string
	Icon        *string
}

// ApplyTo returns a copy of p with the non-nil fields applied.
func (u ProjectUpdate) ApplyTo(p Project) Project {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Description != nil {
		p.Description = u.Description
	}
	if u.Color != nil {
		p.Color = u.Color
	}
	if u.Icon != nil {
		p.Icon = u.Icon
	}
	return p
}

// TaskList is an ordered column of tasks within a project.
type TaskList struct {
	TaskListID  string
	ProjectID   string
	WorkspaceID string
	Name        string
	Description *string
	Position    int
	Timestamps

	Tasks []Task
}

// TaskListUpdate carries a partial task list update.
type TaskListUpdate struct {
	Name        *string
	Description *string
	Position    *int
}

func (u TaskListUpdate) ApplyTo(l TaskList) TaskList {
	if u.Name != nil {
		l.Name = *u.Name
	}
	if u.Description != nil {
		l.Description = u.Description
	}
	if u.Position != nil {
		l.Position = *u.Position
	}
	return l
}
