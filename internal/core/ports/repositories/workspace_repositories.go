package repositories

import (
	"context"

	"github.com/flowhive/flowhive_backend/internal/core/domain"
)

// WorkspaceReader defines read operations for workspace data
type WorkspaceReader interface {
	// FindWorkspaceByID retrieves a specific workspace by its ID.
	FindWorkspaceByID(ctx context.Context, workspaceID string) (*domain.Workspace, error)

	// ListWorkspacesByUserID retrieves the workspaces a user belongs to.
	ListWorkspacesByUserID(ctx context.Context, userID string, limit, offset int) ([]domain.Workspace, error)

	// ListAllWorkspaces retrieves every workspace, used by background jobs.
	ListAllWorkspaces(ctx context.Context) ([]domain.Workspace, error)
}

// WorkspaceWriter defines write operations for workspace data
type WorkspaceWriter interface {
	// SaveWorkspace persists a new workspace and adds its owner as a member.
	SaveWorkspace(ctx context.Context, workspace domain.Workspace) error

	// UpdateWorkspace updates mutable workspace fields.
	UpdateWorkspace(ctx context.Context, workspace domain.Workspace) error

	// DeleteWorkspace removes a workspace and everything scoped to it.
	DeleteWorkspace(ctx context.Context, workspaceID string) error
}

// WorkspaceMembershipManager defines operations for managing workspace memberships
type WorkspaceMembershipManager interface {
	// AddMember adds a user to a workspace.
	AddMember(ctx context.Context, member domain.WorkspaceMember) error

	// RemoveMember removes a user from a workspace.
	RemoveMember(ctx context.Context, workspaceID, userID string) error

	// FindMember returns the membership row, or ErrNotFound.
	FindMember(ctx context.Context, workspaceID, userID string) (*domain.WorkspaceMember, error)

	// ListMembers returns members joined with their user records, oldest first.
	ListMembers(ctx context.Context, workspaceID string) ([]domain.MemberProfile, error)
}

// WorkspaceRepositoryFacade combines all workspace-related repository interfaces
type WorkspaceRepositoryFacade interface {
	WorkspaceReader
	WorkspaceWriter
	WorkspaceMembershipManager
}

// WorkspaceRepositoryWithTx extends WorkspaceRepositoryFacade with transaction capabilities
type WorkspaceRepositoryWithTx interface {
	WorkspaceRepositoryFacade
	TransactionManager
}
