package domain

import "time"

// WorkspaceType distinguishes the product area a workspace belongs to.
type WorkspaceType string

const (
	WorkspaceProjectManagement WorkspaceType = "PROJECT_MANAGEMENT"
	WorkspaceFieldOperations   WorkspaceType = "FIELD_OPERATIONS"
)

func (t WorkspaceType) IsValid() bool {
	return t == WorkspaceProjectManagement || t == WorkspaceFieldOperations
}

// Workspace is the tenant boundary for activities, categories and minutes.
type Workspace struct {
	WorkspaceID   string
	Name          string
	Description   *string
	OwnerID       string
	WorkspaceType WorkspaceType
	Icon          *string
	Color         *string
	Timestamps
}

// WorkspaceMember records that a user belongs to a workspace.
type WorkspaceMember struct {
	WorkspaceID string
	UserID      string
	JoinedAt    time.Time
}

// MemberProfile is a membership joined with the member's user record.
type MemberProfile struct {
	UserID    string
	Username  string
	Email     string
	FullName  *string
	AvatarURL *string
	Role      Role
	IsActive  bool
	JoinedAt  time.Time
}

func (m MemberProfile) DisplayName() string {
	if m.FullName != nil && *m.FullName != "" {
		return *m.FullName
	}
	return m.Username
}

// WorkspaceUpdate carries a partial workspace update.
type WorkspaceUpdate struct {
	Name          *string
	Description   *string
	WorkspaceType *WorkspaceType
	Icon          *string
	Color         *string
}
