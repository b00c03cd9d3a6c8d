package dto

import (
	"time"

	"github.com/flowhive/flowhive_backend/internal/core/domain"
)

// CreateProjectRequest defines data for creating a project.
type CreateProjectRequest struct {
	Name        string  `json:"name" binding:"required,max=255"`
	Description *string `json:"description"`
	Color       *string `json:"color" binding:"omitempty,max=20"`
	Icon        *string `json:"icon" binding:"omitempty,max=50"`
}

func (r CreateProjectRequest) ToDomain() domain.Project {
	return domain.Project{
		Name:        r.Name,
		Description: emptyToNil(r.Description),
		Color:       emptyToNil(r.Color),
		Icon:        emptyToNil(r.Icon),
	}
}

// UpdateProjectRequest defines a partial project update.
type UpdateProjectRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=255"`
	Description *string `json:"description"`
	Color       *string `json:"color" binding:"omitempty,max=20"`
	Icon        *string `json:"icon" binding:"omitempty,max=50"`
}

func (r UpdateProjectRequest) ToDomain() domain.ProjectUpdate {
	return domain.ProjectUpdate{Name: r.Name, Description: r.Description, Color: r.Color, Icon: r.Icon}
}

// CreateTaskListRequest defines data for adding a list to a project.
type CreateTaskListRequest struct {
	Name        string  `json:"name" binding:"required,max=255"`
	Description *string `json:"description"`
	Position    int     `json:"position" binding:"min=0"`
}

func (r CreateTaskListRequest) ToDomain() domain.TaskList {
	return domain.TaskList{Name: r.Name, Description: emptyToNil(r.Description), Position: r.Position}
}

type UpdateTaskListRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=255"`
	Description *string `json:"description"`
	Position    *int    `json:"position" binding:"omitempty,min=0"`
}

func (r UpdateTaskListRequest) ToDomain() domain.TaskListUpdate {
	return domain.TaskListUpdate{Name: r.Name, Description: r.Description, Position: r.Position}
}

type ProjectResponse struct {
	ID          string             `json:"id"`
	WorkspaceID string             `json:"workspace_id"`
	Name        string             `json:"name"`
	Description *string            `json:"description"`
	Color       *string            `json:"color"`
	Icon        *string            `json:"icon"`
	CreatedBy   string             `json:"created_by"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
	TaskLists   []TaskListResponse `json:"task_lists,omitempty"`
}

func ToProjectResponse(p *domain.Project) ProjectResponse {
	resp := ProjectResponse{
		ID:          p.ProjectID,
		WorkspaceID: p.WorkspaceID,
		Name:        p.Name,
		Description: p.Description,
		Color:       p.Color,
		Icon:        p.Icon,
		CreatedBy:   p.CreatedBy,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.TaskLists != nil {
		resp.TaskLists = make([]TaskListResponse, len(p.TaskLists))
		for i := range p.TaskLists {
			resp.TaskLists[i] = ToTaskListResponse(&p.TaskLists[i])
		}
	}
	return resp
}

func ToProjectResponses(in []domain.Project) []ProjectResponse {
	out := make([]ProjectResponse, len(in))
	for i := range in {
		out[i] = ToProjectResponse(&in[i])
	}
	return out
}

type TaskListResponse struct {
	ID          string         `json:"id"`
	ProjectID   string         `json:"project_id"`
	Name        string         `json:"name"`
	Description *string        `json:"description"`
	Position    int            `json:"position"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	Tasks       []TaskResponse `json:"tasks,omitempty"`
}

func ToTaskListResponse(l *domain.TaskList) TaskListResponse {
	resp := TaskListResponse{
		ID:          l.TaskListID,
		ProjectID:   l.ProjectID,
		Name:        l.Name,
		Description: l.Description,
		Position:    l.Position,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
	if l.Tasks != nil {
		resp.Tasks = ToTaskResponses(l.Tasks)
	}
	return resp
}
