package services

import (
	"context"

	"github.com/flowhive/flowhive_backend/internal/core/domain"
	"github.com/flowhive/flowhive_backend/internal/dto"
)

// WorkspaceReaderSvc defines read operations for workspace data
type WorkspaceReaderSvc interface {
	// GetWorkspace retrieves a workspace the requesting user is a member of.
	GetWorkspace(ctx context.Context, workspaceID, requestingUserID string) (*domain.Workspace, error)

	// ListUserWorkspaces retrieves workspaces a user belongs to.
	ListUserWorkspaces(ctx context.Context, userID string, limit, offset int) ([]domain.Workspace, error)

	// ListMembers retrieves the members of a workspace. Only members can access this data.
	ListMembers(ctx context.Context, workspaceID, requestingUserID string) ([]domain.MemberProfile, error)
}

// WorkspaceWriterSvc defines write operations for workspace data
type WorkspaceWriterSvc interface {
	// CreateWorkspace persists a new workspace owned by the creator, who becomes its first member.
	CreateWorkspace(ctx context.Context, req dto.CreateWorkspaceRequest, creatorUserID string) (*domain.Workspace, error)

	// UpdateWorkspace changes workspace details. Owner only.
	UpdateWorkspace(ctx context.Context, workspaceID string, req dto.UpdateWorkspaceRequest, requestingUserID string) (*domain.Workspace, error)

	// DeleteWorkspace removes a workspace. Owner only.
	DeleteWorkspace(ctx context.Context, workspaceID, requestingUserID string) error
}

// WorkspaceMembershipSvc defines operations for managing workspace membership
type WorkspaceMembershipSvc interface {
	// AddMember adds a user to a workspace. Owner or manager rank required.
	AddMember(ctx context.Context, workspaceID, targetUserID, requestingUserID string) error

	// RemoveMember removes a user from a workspace. Owner only.
	RemoveMember(ctx context.Context, workspaceID, targetUserID, requestingUserID string) error
}

// WorkspaceAuthorizerSvc defines operations for workspace authorization
type WorkspaceAuthorizerSvc interface {
	// AuthorizeUserAction checks that userID is an active member of workspaceID and ranks
	// at least requiredRole. It returns the acting user.
	AuthorizeUserAction(ctx context.Context, userID, workspaceID string, requiredRole domain.Role) (*domain.User, error)
}

// WorkspaceSvcFacade combines all workspace-related service interfaces
// This is a facade for clients that need access to all operations
type WorkspaceSvcFacade interface {
	WorkspaceReaderSvc
	WorkspaceWriterSvc
	WorkspaceMembershipSvc
	WorkspaceAuthorizerSvc
}
