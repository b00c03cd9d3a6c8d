package models

import "time"

// Workspace is a row of the workspaces table.
type Workspace struct {
	WorkspaceID   string  `db:"workspace_id"`
	Name          string  `db:"name"`
	Description   *string `db:"description"`
	OwnerID       string  `db:"owner_id"`
	WorkspaceType string  `db:"workspace_type"`
	Icon          *string `db:"icon"`
	Color         *string `db:"color"`
	Timestamps
}

type WorkspaceMember struct {
	WorkspaceID string    `db:"workspace_id"`
	UserID      string    `db:"user_id"`
	JoinedAt    time.Time `db:"joined_at"`
}

// MemberProfile is a workspace_members row joined with users.
type MemberProfile struct {
	UserID    string    `db:"user_id"`
	Username  string    `db:"username"`
	Email     string    `db:"email"`
	FullName  *string   `db:"full_name"`
	AvatarURL *string   `db:"avatar_url"`
	Role      string    `db:"role"`
	IsActive  bool      `db:"is_active"`
	JoinedAt  time.Time `db:"joined_at"`
}

// WorkspaceActivityCount is a row of the weekly activity count query.
type WorkspaceActivityCount struct {
	WorkspaceID   string `db:"workspace_id"`
	WorkspaceName string `db:"name"`
	ActivityCount int    `db:"activity_count"`
}
