package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/flowhive/flowhive_backend/internal/apperrors"
	"github.com/flowhive/flowhive_backend/internal/core/domain"
	"github.com/flowhive/flowhive_backend/internal/dto"
)

func testUser(id string, role domain.Role) *domain.User {
	return &domain.User{
		UserID:   id,
		Email:    id + "@acme.test",
		Username: id,
		Role:     role,
		IsActive: true,
	}
}

func (suite *HandlerTestSuite) TestRegister_Created() {
	req := dto.RegisterRequest{Email: "ana@acme.test", Username: "ana", Password: "s3cretpass"}
	suite.users.On("CreateUser", mock.Anything, req).Return(testUser("ana", domain.RoleTeamMember), nil).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/auth/register",
		`{"email":"ana@acme.test","username":"ana","password":"s3cretpass"}`, "")

	suite.Equal(http.StatusCreated, w.Code)
	var body dto.UserResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("ana", body.ID)
	suite.Equal(domain.RoleTeamMember, body.Role)
	suite.users.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestRegister_Duplicate() {
	suite.users.On("CreateUser", mock.Anything, mock.Anything).
		Return(nil, apperrors.NewValidationFailedError("Email or username already registered")).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/auth/register",
		`{"email":"ana@acme.test","username":"ana","password":"s3cretpass"}`, "")

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.JSONEq(`{"error":"Email or username already registered"}`, w.Body.String())
}

func (suite *HandlerTestSuite) TestRegister_ShortPasswordRejectedBeforeService() {
	w := suite.doJSON(http.MethodPost, "/api/v1/auth/register",
		`{"email":"ana@acme.test","username":"ana","password":"short"}`, "")

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.users.AssertNotCalled(suite.T(), "CreateUser", mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestLogin_ReturnsBearerToken() {
	user := testUser("u1", domain.RoleManager)
	suite.users.On("AuthenticateUser", mock.Anything, "u1@acme.test", "s3cretpass").Return(user, nil).Once()
	suite.tokens.On("GenerateAccessToken", mock.Anything, user).Return("signed.jwt", time.Now().Add(time.Hour), nil).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/auth/login", `{"username":"u1@acme.test","password":"s3cretpass"}`, "")

	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"access_token":"signed.jwt","token_type":"bearer"}`, w.Body.String())
}

func (suite *HandlerTestSuite) TestLogin_BadCredentials() {
	suite.users.On("AuthenticateUser", mock.Anything, "ana", "wrong-password").
		Return(nil, apperrors.NewUnauthorizedError("Incorrect username or password")).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/auth/login", `{"username":"ana","password":"wrong-password"}`, "")

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.tokens.AssertNotCalled(suite.T(), "GenerateAccessToken", mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestLogin_InactiveUser() {
	suite.users.On("AuthenticateUser", mock.Anything, "ana", "s3cretpass").
		Return(nil, apperrors.NewAppError(http.StatusForbidden, "Inactive user", apperrors.ErrInactiveUser)).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/auth/login", `{"username":"ana","password":"s3cretpass"}`, "")

	suite.Equal(http.StatusForbidden, w.Code)
	suite.JSONEq(`{"error":"Inactive user"}`, w.Body.String())
}

func (suite *HandlerTestSuite) TestLogin_RateLimited() {
	suite.cfg.LoginRateLimit = "2-M"
	suite.buildRouter()
	suite.users.On("AuthenticateUser", mock.Anything, "ana", "wrong-password").
		Return(nil, apperrors.NewUnauthorizedError("Incorrect username or password"))

	for i := 0; i < 2; i++ {
		w := suite.doJSON(http.MethodPost, "/api/v1/auth/login", `{"username":"ana","password":"wrong-password"}`, "")
		suite.Equal(http.StatusUnauthorized, w.Code)
	}
	w := suite.doJSON(http.MethodPost, "/api/v1/auth/login", `{"username":"ana","password":"wrong-password"}`, "")
	suite.Equal(http.StatusTooManyRequests, w.Code)
	suite.users.AssertNumberOfCalls(suite.T(), "AuthenticateUser", 2)
}

func (suite *HandlerTestSuite) TestForgotPassword_SameAnswerOnFailure() {
	suite.resets.On("RequestPasswordReset", mock.Anything, "ghost@acme.test").Return(errors.New("smtp down")).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/auth/forgot-password", `{"email":"ghost@acme.test"}`, "")

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), "If an account with that email exists")
}

func (suite *HandlerTestSuite) TestResetPassword_InvalidToken() {
	suite.resets.On("ResetPassword", mock.Anything, "stale", "n3wpassword").
		Return(apperrors.NewAppError(http.StatusBadRequest, "Invalid or expired reset token", apperrors.ErrResetTokenInvalid)).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/auth/reset-password", `{"token":"stale","new_password":"n3wpassword"}`, "")

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.JSONEq(`{"error":"Invalid or expired reset token"}`, w.Body.String())
}

func (suite *HandlerTestSuite) TestMe() {
	suite.users.On("GetUserByID", mock.Anything, "u1").Return(testUser("u1", domain.RoleExecutive), nil).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/auth/me", "", "u1")

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"role":"executive"`)

	w = suite.doJSON(http.MethodGet, "/api/v1/auth/me", "", "")
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *HandlerTestSuite) TestDeleteUser_SelfDeletionRejected() {
	suite.users.On("DeleteUser", mock.Anything, "u1", "u1").
		Return(apperrors.NewValidationFailedError("You cannot delete your own account")).Once()

	w := suite.doJSON(http.MethodDelete, "/api/v1/users/u1", "", "u1")

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestListUsers_PassesPagination() {
	suite.users.On("ListUsers", mock.Anything, 20, 40, "mgr").Return([]domain.User{*testUser("a", domain.RoleTeamMember)}, nil).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/users?skip=40&limit=20", "", "mgr")

	suite.Equal(http.StatusOK, w.Code)
	var body []dto.UserResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Len(body, 1)
}
