package services

import (
	"context"
	"errors"
	"fmt"
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

const duplicateAccountMessage = "Email or username already registered"

type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryWithTx
	now      func() time.Time
}

// NewUserService creates a new user service.
func NewUserService(userRepo portsrepo.UserRepositoryWithTx) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo, now: time.Now}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("User not found")
		}
		s.LogError(ctx, err, "Failed to get user by ID", slog.String("user_id", userID))
		return nil, err
	}
	return user, nil
}

func (s *userService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.userRepo.FindUserByEmail(ctx, strings.TrimSpace(email))
}

func (s *userService) ListUsers(ctx context.Context, limit, offset int, requestingUserID string) ([]domain.User, error) {
	requester, err := s.GetUserByID(ctx, requestingUserID)
	if err != nil {
		return nil, err
	}
	if !requester.Role.IsElevated() {
		return nil, apperrors.NewForbiddenError("Not enough permissions")
	}
	users, err := s.userRepo.FindUsers(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list users")
		return nil, err
	}
	return users, nil
}

func (s *userService) SearchUsers(ctx context.Context, q string, limit int) ([]domain.User, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return []domain.User{}, nil
	}
	return s.userRepo.SearchUsers(ctx, q, limit)
}

// CreateUser registers a team member. Self-registration never grants an elevated role.
func (s *userService) CreateUser(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	username := strings.TrimSpace(req.Username)
	if email == "" || username == "" {
		return nil, apperrors.NewValidationFailedError("Email and username are required")
	}
	if len(req.Password) < utils.MinPasswordLength {
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("Password must be at least %d characters", utils.MinPasswordLength))
	}

	if taken, err := s.accountTaken(ctx, email, username); err != nil {
		return nil, err
	} else if taken {
		return nil, apperrors.NewValidationFailedError(duplicateAccountMessage)
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, apperrors.NewAppError(500, "Failed to register user", err)
	}

	now := s.now().UTC()
	user := domain.User{
		UserID:         uuid.NewString(),
		Email:          email,
		Username:       username,
		HashedPassword: hashed,
		FullName:       cleanOptional(req.FullName),
		Role:           domain.RoleTeamMember,
		IsActive:       true,
		Timestamps:     domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}
	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, apperrors.NewValidationFailedError(duplicateAccountMessage)
		}
		s.LogError(ctx, err, "Failed to save user", slog.String("username", username))
		return nil, err
	}

	s.LogInfo(ctx, "User registered", slog.String("user_id", user.UserID))
	return &user, nil
}

func (s *userService) accountTaken(ctx context.Context, email, username string) (bool, error) {
	if _, err := s.userRepo.FindUserByEmail(ctx, email); err == nil {
		return true, nil
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return false, err
	}
	if _, err := s.userRepo.FindUserByUsername(ctx, username); err == nil {
		return true, nil
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return false, err
	}
	return false, nil
}

// UpdateUser applies a partial update. Users may edit themselves; executives may edit anyone
// and are the only ones allowed to change role or activation.
func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error) {
	requester, err := s.GetUserByID(ctx, requestingUserID)
	if err != nil {
		return nil, err
	}
	isExecutive := requester.Role.AtLeast(domain.RoleExecutive)
	if requestingUserID != userID && !isExecutive {
		return nil, apperrors.NewForbiddenError("Not enough permissions")
	}

	update := req.ToDomain()
	if (update.Role != nil || update.IsActive != nil) && !isExecutive {
		return nil, apperrors.NewForbiddenError("Only executives can change role or active status")
	}

	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if update.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*update.Email))
	}
	if update.Username != nil {
		user.Username = strings.TrimSpace(*update.Username)
	}
	if update.FullName != nil {
		user.FullName = cleanOptional(update.FullName)
	}
	if update.AvatarURL != nil {
		user.AvatarURL = domain.StringPtr(strings.TrimSpace(*update.AvatarURL))
	}
	if update.Password != nil {
		if len(*update.Password) < utils.MinPasswordLength {
			return nil, apperrors.NewValidationFailedError(fmt.Sprintf("Password must be at least %d characters", utils.MinPasswordLength))
		}
		hashed, err := utils.HashPassword(*update.Password)
		if err != nil {
			return nil, apperrors.NewAppError(500, "Failed to update user", err)
		}
		user.HashedPassword = hashed
	}
	if update.Role != nil {
		if !update.Role.IsValid() {
			return nil, apperrors.NewValidationFailedError("Invalid role")
		}
		user.Role = *update.Role
	}
	if update.IsActive != nil {
		user.IsActive = *update.IsActive
	}
	user.UpdatedAt = s.now().UTC()

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, apperrors.NewValidationFailedError(duplicateAccountMessage)
		}
		s.LogError(ctx, err, "Failed to update user", slog.String("user_id", userID))
		return nil, err
	}
	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, userID string, requestingUserID string) error {
	requester, err := s.GetUserByID(ctx, requestingUserID)
	if err != nil {
		return err
	}
	if !requester.Role.AtLeast(domain.RoleExecutive) {
		return apperrors.NewForbiddenError("Not enough permissions")
	}
	if userID == requestingUserID {
		return apperrors.NewValidationFailedError("You cannot delete your own account")
	}
	if err := s.userRepo.DeleteUser(ctx, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("User not found")
		}
		s.LogError(ctx, err, "Failed to delete user", slog.String("user_id", userID))
		return err
	}
	s.LogInfo(ctx, "User deleted", slog.String("user_id", userID), slog.String("deleted_by", requestingUserID))
	return nil
}

// AuthenticateUser checks credentials. Unknown logins and wrong passwords are indistinguishable.
func (s *userService) AuthenticateUser(ctx context.Context, login, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByLogin(ctx, strings.TrimSpace(login))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewUnauthorizedError("Incorrect username or password")
		}
		s.LogError(ctx, err, "Failed to look up user for login")
		return nil, err
	}
	if !utils.CheckPasswordHash(password, user.HashedPassword) {
		return nil, apperrors.NewUnauthorizedError("Incorrect username or password")
	}
	if !user.IsActive {
		return nil, apperrors.NewAppError(403, "Inactive user", apperrors.ErrInactiveUser)
	}
	return user, nil
}

// cleanOptional trims s and strips markup, returning nil for blank input.
func cleanOptional(s *string) *string {
	if s == nil {
		return nil
	}
	return domain.StringPtr(strings.TrimSpace(utils.StripTags(*s)))
}
