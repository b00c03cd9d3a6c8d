package dto

import (
	"time"

	"github.com/flowhive/flowhive_backend/internal/core/domain"
)

// --- Workspace DTOs ---

// CreateWorkspaceRequest defines data for creating a new workspace.
type CreateWorkspaceRequest struct {
	Name          string               `json:"name" binding:"required,max=255"`
	Description   *string              `json:"description"`
	WorkspaceType domain.WorkspaceType `json:"workspace_type" binding:"omitempty,oneof=PROJECT_MANAGEMENT FIELD_OPERATIONS"`
	Icon          *string              `json:"icon"`
	Color         *string              `json:"color"`
}

// UpdateWorkspaceRequest defines a partial workspace update.
type UpdateWorkspaceRequest struct {
	Name          *string               `json:"name" binding:"omitempty,max=255"`
	Description   *string               `json:"description"`
	WorkspaceType *domain.WorkspaceType `json:"workspace_type" binding:"omitempty,oneof=PROJECT_MANAGEMENT FIELD_OPERATIONS"`
	Icon          *string               `json:"icon"`
	Color         *string               `json:"color"`
}

func (r UpdateWorkspaceRequest) ToDomain() domain.WorkspaceUpdate {
	return domain.WorkspaceUpdate{
		Name:          r.Name,
		Description:   r.Description,
		WorkspaceType: r.WorkspaceType,
		Icon:          r.Icon,
		Color:         r.Color,
	}
}

// WorkspaceResponse defines data returned for a workspace.
type WorkspaceResponse struct {
	ID            string               `json:"id"`
	Name          string               `json:"name"`
	Description   *string              `json:"description"`
	OwnerID       string               `json:"owner_id"`
	WorkspaceType domain.WorkspaceType `json:"workspace_type"`
	Icon          *string              `json:"icon"`
	Color         *string              `json:"color"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
	Members       []MemberResponse     `json:"members,omitempty"`
}

// ToWorkspaceResponse converts domain.Workspace to DTO.
func ToWorkspaceResponse(w *domain.Workspace) WorkspaceResponse {
	return WorkspaceResponse{
		ID:            w.WorkspaceID,
		Name:          w.Name,
		Description:   w.Description,
		OwnerID:       w.OwnerID,
		WorkspaceType: w.WorkspaceType,
		Icon:          w.Icon,
		Color:         w.Color,
		CreatedAt:     w.CreatedAt,
		UpdatedAt:     w.UpdatedAt,
	}
}

// ToWorkspaceDetailResponse includes the member list.
func ToWorkspaceDetailResponse(w *domain.Workspace, members []domain.MemberProfile) WorkspaceResponse {
	resp := ToWorkspaceResponse(w)
	resp.Members = ToMemberResponses(members)
	return resp
}

// ToWorkspaceResponses converts a slice of domain.Workspace to DTOs.
func ToWorkspaceResponses(ws []domain.Workspace) []WorkspaceResponse {
	list := make([]WorkspaceResponse, len(ws))
	for i := range ws {
		list[i] = ToWorkspaceResponse(&ws[i])
	}
	return list
}

// ListWorkspacesParams defines pagination for workspace listings.
type ListWorkspacesParams struct {
	Skip  int `form:"skip,default=0" binding:"min=0"`
	Limit int `form:"limit,default=100" binding:"min=1,max=500"`
}

// --- Membership DTOs ---

// MemberResponse describes a workspace member.
type MemberResponse struct {
	UserID    string      `json:"user_id"`
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	FullName  *string     `json:"full_name"`
	AvatarURL *string     `json:"avatar_url"`
	Role      domain.Role `json:"role"`
	IsActive  bool        `json:"is_active"`
	JoinedAt  time.Time   `json:"joined_at"`
}

func ToMemberResponses(members []domain.MemberProfile) []MemberResponse {
	list := make([]MemberResponse, len(members))
	for i, m := range members {
		list[i] = MemberResponse{
			UserID:    m.UserID,
			Username:  m.Username,
			Email:     m.Email,
			FullName:  m.FullName,
			AvatarURL: m.AvatarURL,
			Role:      m.Role,
			IsActive:  m.IsActive,
			JoinedAt:  m.JoinedAt,
		}
	}
	return list
}
