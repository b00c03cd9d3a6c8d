package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/flowhive/flowhive_backend/internal/apperrors"
	"github.com/flowhive/flowhive_backend/internal/core/domain"
	portsrepo "github.com/flowhive/flowhive_backend/internal/core/ports/repositories"
	portssvc "github.com/flowhive/flowhive_backend/internal/core/ports/services"
	"github.com/flowhive/flowhive_backend/internal/dto"
	"github.com/flowhive/flowhive_backend/internal/utils"
)

// workspaceService implements the WorkspaceSvcFacade interface
type workspaceService struct {
	BaseService
	workspaceRepo portsrepo.WorkspaceRepositoryWithTx
	userRepo      portsrepo.UserReader
	now           func() time.Time
}

// NewWorkspaceService creates a new workspace service with the provided dependencies
func NewWorkspaceService(workspaceRepo portsrepo.WorkspaceRepositoryWithTx, userRepo portsrepo.UserReader) portssvc.WorkspaceSvcFacade {
	svc := &workspaceService{
		workspaceRepo: workspaceRepo,
		userRepo:      userRepo,
		now:           time.Now,
	}
	svc.WorkspaceAuthorizer = svc
	return svc
}

// Ensure workspaceService implements the WorkspaceSvcFacade interface
var _ portssvc.WorkspaceSvcFacade = (*workspaceService)(nil)

func (s *workspaceService) findWorkspace(ctx context.Context, workspaceID string) (*domain.Workspace, error) {
	ws, err := s.workspaceRepo.FindWorkspaceByID(ctx, workspaceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Workspace not found")
		}
		s.LogError(ctx, err, "Failed to find workspace", slog.String("workspace_id", workspaceID))
		return nil, err
	}
	return ws, nil
}

func (s *workspaceService) findUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("User not found")
		}
		return nil, err
	}
	return user, nil
}

// AuthorizeUserAction checks that the user is an active member of the workspace ranking at
// least requiredRole.
// Returns a 404 AppError when the workspace does not exist and 403 for non-members,
// inactive users or insufficient rank.
func (s *workspaceService) AuthorizeUserAction(ctx context.Context, userID, workspaceID string, requiredRole domain.Role) (*domain.User, error) {
	if _, err := s.findWorkspace(ctx, workspaceID); err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewUnauthorizedError("Could not validate credentials")
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.NewAppError(403, "Inactive user", apperrors.ErrInactiveUser)
	}

	if _, err := s.workspaceRepo.FindMember(ctx, workspaceID, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.GetLogger(ctx).Warn("Authorization failed: user is not a member",
				slog.String("user_id", userID), slog.String("workspace_id", workspaceID))
			return nil, apperrors.NewForbiddenError("Not a member of this workspace")
		}
		s.LogError(ctx, err, "Failed to check workspace membership",
			slog.String("user_id", userID), slog.String("workspace_id", workspaceID))
		return nil, err
	}

	if !user.Role.AtLeast(requiredRole) {
		s.GetLogger(ctx).Warn("Authorization failed: user lacks required role",
			slog.String("user_id", userID),
			slog.String("workspace_id", workspaceID),
			slog.String("user_role", string(user.Role)),
			slog.String("required_role", string(requiredRole)))
		return nil, apperrors.NewForbiddenError("Not enough permissions")
	}
	return user, nil
}

func (s *workspaceService) GetWorkspace(ctx context.Context, workspaceID, requestingUserID string) (*domain.Workspace, error) {
	if _, err := s.AuthorizeUserAction(ctx, requestingUserID, workspaceID, domain.RoleTeamMember); err != nil {
		return nil, err
	}
	return s.findWorkspace(ctx, workspaceID)
}

func (s *workspaceService) ListUserWorkspaces(ctx context.Context, userID string, limit, offset int) ([]domain.Workspace, error) {
	workspaces, err := s.workspaceRepo.ListWorkspacesByUserID(ctx, userID, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list workspaces for user", slog.String("user_id", userID))
		return nil, err
	}
	if workspaces == nil {
		return []domain.Workspace{}, nil
	}
	s.LogDebug(ctx, "Workspaces listed successfully",
		slog.Int("count", len(workspaces)),
		slog.String("user_id", userID))
	return workspaces, nil
}

func (s *workspaceService) ListMembers(ctx context.Context, workspaceID, requestingUserID string) ([]domain.MemberProfile, error) {
	if _, err := s.AuthorizeUserAction(ctx, requestingUserID, workspaceID, domain.RoleTeamMember); err != nil {
		return nil, err
	}
	members, err := s.workspaceRepo.ListMembers(ctx, workspaceID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list workspace members", slog.String("workspace_id", workspaceID))
		return nil, err
	}
	return members, nil
}

func (s *workspaceService) CreateWorkspace(ctx context.Context, req dto.CreateWorkspaceRequest, creatorUserID string) (*domain.Workspace, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidationFailedError("Workspace name is required")
	}
	wsType := req.WorkspaceType
	if wsType == "" {
		wsType = domain.WorkspaceProjectManagement
	}
	if !wsType.IsValid() {
		return nil, apperrors.NewValidationFailedError("Invalid workspace type")
	}

	now := s.now().UTC()
	ws := domain.Workspace{
		WorkspaceID:   uuid.NewString(),
		Name:          utils.StripTags(name),
		Description:   utils.SanitizeHTMLPtr(req.Description),
		OwnerID:       creatorUserID,
		WorkspaceType: wsType,
		Icon:          req.Icon,
		Color:         req.Color,
		Timestamps:    domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}
	if err := s.workspaceRepo.SaveWorkspace(ctx, ws); err != nil {
		s.LogError(ctx, err, "Failed to create workspace", slog.String("workspace_name", name))
		return nil, err
	}
	s.LogInfo(ctx, "Workspace created successfully",
		slog.String("workspace_id", ws.WorkspaceID),
		slog.String("creator_user_id", creatorUserID))
	return &ws, nil
}

func (s *workspaceService) requireOwner(ctx context.Context, workspaceID, userID, message string) (*domain.Workspace, error) {
	ws, err := s.findWorkspace(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if ws.OwnerID != userID {
		return nil, apperrors.NewForbiddenError(message)
	}
	return ws, nil
}

func (s *workspaceService) UpdateWorkspace(ctx context.Context, workspaceID string, req dto.UpdateWorkspaceRequest, requestingUserID string) (*domain.Workspace, error) {
	ws, err := s.requireOwner(ctx, workspaceID, requestingUserID, "Only workspace owner can update")
	if err != nil {
		return nil, err
	}

	update := req.ToDomain()
	if update.Name != nil {
		name := strings.TrimSpace(utils.StripTags(*update.Name))
		if name == "" {
			return nil, apperrors.NewValidationFailedError("Workspace name is required")
		}
		ws.Name = name
	}
	if update.Description != nil {
		ws.Description = utils.SanitizeHTMLPtr(update.Description)
	}
	if update.WorkspaceType != nil {
		if !update.WorkspaceType.IsValid() {
			return nil, apperrors.NewValidationFailedError("Invalid workspace type")
		}
		ws.WorkspaceType = *update.WorkspaceType
	}
	if update.Icon != nil {
		ws.Icon = update.Icon
	}
	if update.Color != nil {
		ws.Color = update.Color
	}
	ws.UpdatedAt = s.now().UTC()

	if err := s.workspaceRepo.UpdateWorkspace(ctx, *ws); err != nil {
		s.LogError(ctx, err, "Failed to update workspace", slog.String("workspace_id", workspaceID))
		return nil, err
	}
	return ws, nil
}

func (s *workspaceService) DeleteWorkspace(ctx context.Context, workspaceID, requestingUserID string) error {
	if _, err := s.requireOwner(ctx, workspaceID, requestingUserID, "Only workspace owner can delete"); err != nil {
		return err
	}
	if err := s.workspaceRepo.DeleteWorkspace(ctx, workspaceID); err != nil {
		s.LogError(ctx, err, "Failed to delete workspace", slog.String("workspace_id", workspaceID))
		return err
	}
	s.LogInfo(ctx, "Workspace deleted", slog.String("workspace_id", workspaceID))
	return nil
}

// AddMember is open to the workspace owner and to any manager or executive.
func (s *workspaceService) AddMember(ctx context.Context, workspaceID, targetUserID, requestingUserID string) error {
	ws, err := s.findWorkspace(ctx, workspaceID)
	if err != nil {
		return err
	}
	if ws.OwnerID != requestingUserID {
		requester, err := s.findUser(ctx, requestingUserID)
		if err != nil {
			return err
		}
		if !requester.Role.IsElevated() {
			return apperrors.NewForbiddenError("Only workspace owner, managers, and executives can add members")
		}
	}
	if _, err := s.findUser(ctx, targetUserID); err != nil {
		return err
	}

	if _, err := s.workspaceRepo.FindMember(ctx, workspaceID, targetUserID); err == nil {
		return apperrors.NewValidationFailedError("User is already a member")
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}

	member := domain.WorkspaceMember{WorkspaceID: workspaceID, UserID: targetUserID, JoinedAt: s.now().UTC()}
	if err := s.workspaceRepo.AddMember(ctx, member); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return apperrors.NewValidationFailedError("User is already a member")
		}
		s.LogError(ctx, err, "Failed to add workspace member",
			slog.String("workspace_id", workspaceID), slog.String("target_user_id", targetUserID))
		return err
	}
	s.LogInfo(ctx, "User added to workspace",
		slog.String("workspace_id", workspaceID),
		slog.String("target_user_id", targetUserID),
		slog.String("added_by_user_id", requestingUserID))
	return nil
}

func (s *workspaceService) RemoveMember(ctx context.Context, workspaceID, targetUserID, requestingUserID string) error {
	ws, err := s.requireOwner(ctx, workspaceID, requestingUserID, "Only workspace owner can remove members")
	if err != nil {
		return err
	}
	if ws.OwnerID == targetUserID {
		return apperrors.NewValidationFailedError("The workspace owner cannot be removed")
	}
	if err := s.workspaceRepo.RemoveMember(ctx, workspaceID, targetUserID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("Member not found")
		}
		s.LogError(ctx, err, "Failed to remove workspace member",
			slog.String("workspace_id", workspaceID), slog.String("target_user_id", targetUserID))
		return err
	}
	return nil
}
