package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/flowhive/flowhive_backend/internal/apperrors"
	"github.com/flowhive/flowhive_backend/internal/core/domain"
	portssvc "github.com/flowhive/flowhive_backend/internal/core/ports/services"
	"github.com/flowhive/flowhive_backend/internal/core/services"
	"github.com/flowhive/flowhive_backend/internal/dto"
	"github.com/flowhive/flowhive_backend/internal/utils"
)

// --- Test Suite ---
type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockUserRepo)
}

// --- CreateUser Tests ---
func (suite *UserServiceTestSuite) TestCreateUser_Success() {
	ctx := context.Background()
	req := dto.RegisterRequest{
		Email:    "New.User@Example.com",
		Username: "newuser",
		Password: "password123",
	}

	suite.mockUserRepo.On("FindUserByEmail", ctx, "new.user@example.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("FindUserByUsername", ctx, "newuser").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.Email == "new.user@example.com" &&
			user.Role == domain.RoleTeamMember &&
			user.IsActive &&
			user.HashedPassword != req.Password
	})).Return(nil).Once()

	user, err := suite.service.CreateUser(ctx, req)

	suite.Require().NoError(err)
	suite.NotEmpty(user.UserID)
	suite.Equal(domain.RoleTeamMember, user.Role)
	suite.True(utils.CheckPasswordHash(req.Password, user.HashedPassword))
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUser_DuplicateEmail() {
	ctx := context.Background()
	req := dto.RegisterRequest{Email: "taken@example.com", Username: "someone", Password: "password123"}

	suite.mockUserRepo.On("FindUserByEmail", ctx, "taken@example.com").Return(&domain.User{UserID: uuid.NewString()}, nil).Once()

	user, err := suite.service.CreateUser(ctx, req)

	suite.Require().Error(err)
	suite.Nil(user)
	suite.Equal(400, apperrors.StatusCode(err))
	suite.Equal("Email or username already registered", apperrors.Message(err))
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestCreateUser_ConflictOnSave() {
	ctx := context.Background()
	req := dto.RegisterRequest{Email: "race@example.com", Username: "racer", Password: "password123"}

	suite.mockUserRepo.On("FindUserByEmail", ctx, "race@example.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("FindUserByUsername", ctx, "racer").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).Return(apperrors.ErrConflict).Once()

	_, err := suite.service.CreateUser(ctx, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUser_ShortPassword() {
	_, err := suite.service.CreateUser(context.Background(),
		dto.RegisterRequest{Email: "a@example.com", Username: "a", Password: "short"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- GetUserByID Tests ---
func (suite *UserServiceTestSuite) TestGetUserByID_NotFound() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(nil, apperrors.ErrNotFound).Once()

	user, err := suite.service.GetUserByID(ctx, userID)

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestGetUserByID_RepoError() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockUserRepo.On("FindUserByID", ctx, userID).Return(nil, assert.AnError).Once()

	_, err := suite.service.GetUserByID(ctx, userID)

	suite.ErrorIs(err, assert.AnError)
}

// --- ListUsers Tests ---
func (suite *UserServiceTestSuite) TestListUsers_RequiresManager() {
	ctx := context.Background()
	requester := &domain.User{UserID: uuid.NewString(), Role: domain.RoleTeamMember}

	suite.mockUserRepo.On("FindUserByID", ctx, requester.UserID).Return(requester, nil).Once()

	users, err := suite.service.ListUsers(ctx, 10, 0, requester.UserID)

	suite.Require().Error(err)
	suite.Nil(users)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "FindUsers", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestListUsers_Success() {
	ctx := context.Background()
	requester := &domain.User{UserID: uuid.NewString(), Role: domain.RoleManager}
	expected := []domain.User{{UserID: uuid.NewString()}, {UserID: uuid.NewString()}}

	suite.mockUserRepo.On("FindUserByID", ctx, requester.UserID).Return(requester, nil).Once()
	suite.mockUserRepo.On("FindUsers", ctx, 10, 0).Return(expected, nil).Once()

	users, err := suite.service.ListUsers(ctx, 10, 0, requester.UserID)

	suite.Require().NoError(err)
	suite.Len(users, 2)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

// --- UpdateUser Tests ---
func (suite *UserServiceTestSuite) TestUpdateUser_SelfCannotChangeRole() {
	ctx := context.Background()
	self := &domain.User{UserID: uuid.NewString(), Role: domain.RoleTeamMember}
	role := domain.RoleExecutive

	suite.mockUserRepo.On("FindUserByID", ctx, self.UserID).Return(self, nil).Once()

	_, err := suite.service.UpdateUser(ctx, self.UserID, dto.UpdateUserRequest{Role: &role}, self.UserID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.Equal("Only executives can change role or active status", apperrors.Message(err))
}

func (suite *UserServiceTestSuite) TestUpdateUser_OtherUserForbidden() {
	ctx := context.Background()
	requester := &domain.User{UserID: uuid.NewString(), Role: domain.RoleManager}
	name := "New Name"

	suite.mockUserRepo.On("FindUserByID", ctx, requester.UserID).Return(requester, nil).Once()

	_, err := suite.service.UpdateUser(ctx, uuid.NewString(), dto.UpdateUserRequest{FullName: &name}, requester.UserID)

	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *UserServiceTestSuite) TestUpdateUser_ExecutiveChangesRole() {
	ctx := context.Background()
	exec := &domain.User{UserID: uuid.NewString(), Role: domain.RoleExecutive, IsActive: true}
	target := &domain.User{UserID: uuid.NewString(), Role: domain.RoleTeamMember, IsActive: true}
	role := domain.RoleManager

	suite.mockUserRepo.On("FindUserByID", ctx, exec.UserID).Return(exec, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, target.UserID).Return(target, nil).Once()
	suite.mockUserRepo.On("UpdateUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.UserID == target.UserID && u.Role == domain.RoleManager
	})).Return(nil).Once()

	updated, err := suite.service.UpdateUser(ctx, target.UserID, dto.UpdateUserRequest{Role: &role}, exec.UserID)

	suite.Require().NoError(err)
	suite.Equal(domain.RoleManager, updated.Role)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

// --- DeleteUser Tests ---
func (suite *UserServiceTestSuite) TestDeleteUser_RefusesSelf() {
	ctx := context.Background()
	exec := &domain.User{UserID: uuid.NewString(), Role: domain.RoleExecutive}

	suite.mockUserRepo.On("FindUserByID", ctx, exec.UserID).Return(exec, nil).Once()

	err := suite.service.DeleteUser(ctx, exec.UserID, exec.UserID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "DeleteUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestDeleteUser_RequiresExecutive() {
	ctx := context.Background()
	manager := &domain.User{UserID: uuid.NewString(), Role: domain.RoleManager}

	suite.mockUserRepo.On("FindUserByID", ctx, manager.UserID).Return(manager, nil).Once()

	err := suite.service.DeleteUser(ctx, uuid.NewString(), manager.UserID)

	suite.ErrorIs(err, apperrors.ErrForbidden)
}

// --- AuthenticateUser Tests ---
func (suite *UserServiceTestSuite) TestAuthenticateUser() {
	ctx := context.Background()
	hashed, err := utils.HashPassword("password123")
	suite.Require().NoError(err)
	active := &domain.User{UserID: uuid.NewString(), Username: "field", HashedPassword: hashed, IsActive: true}
	inactive := &domain.User{UserID: uuid.NewString(), Username: "gone", HashedPassword: hashed}

	suite.mockUserRepo.On("FindUserByLogin", ctx, "field").Return(active, nil)
	suite.mockUserRepo.On("FindUserByLogin", ctx, "gone").Return(inactive, nil)
	suite.mockUserRepo.On("FindUserByLogin", ctx, "nobody").Return(nil, apperrors.ErrNotFound)

	user, err := suite.service.AuthenticateUser(ctx, "field", "password123")
	suite.Require().NoError(err)
	suite.Equal(active.UserID, user.UserID)

	_, err = suite.service.AuthenticateUser(ctx, "field", "wrong-password")
	suite.Equal(401, apperrors.StatusCode(err))
	suite.Equal("Incorrect username or password", apperrors.Message(err))

	_, err = suite.service.AuthenticateUser(ctx, "nobody", "password123")
	suite.Equal(401, apperrors.StatusCode(err))

	_, err = suite.service.AuthenticateUser(ctx, "gone", "password123")
	suite.Equal(403, apperrors.StatusCode(err))
	suite.ErrorIs(err, apperrors.ErrInactiveUser)
}

// --- Run Test Suite ---
func TestUserService(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
