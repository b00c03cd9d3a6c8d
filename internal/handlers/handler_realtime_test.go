package handlers_test

import (
	"errors"
	"net/http"

	"github.com/stretchr/testify/mock"

	"github.com/flowhive/flowhive_backend/internal/apperrors"
	"github.com/flowhive/flowhive_backend/internal/core/domain"
)

func (suite *HandlerTestSuite) TestRealtime_MissingToken() {
	w := suite.do(http.MethodGet, "/api/v1/ws/workspaces/ws1", nil, "", "")

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.JSONEq(`{"error":"Missing token"}`, w.Body.String())
}

func (suite *HandlerTestSuite) TestRealtime_InvalidToken() {
	suite.tokens.On("ParseAccessToken", mock.Anything, "garbage").Return("", errors.New("token is malformed")).Once()

	w := suite.do(http.MethodGet, "/api/v1/ws/workspaces/ws1?token=garbage", nil, "", "")

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.realtime.AssertNotCalled(suite.T(), "Serve", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestRealtime_NonMember() {
	suite.tokens.On("ParseAccessToken", mock.Anything, "tok").Return("u9", nil).Once()
	suite.workspaces.On("AuthorizeUserAction", mock.Anything, "u9", "ws1", domain.RoleTeamMember).
		Return(nil, apperrors.NewForbiddenError("You are not a member of this workspace")).Once()

	w := suite.do(http.MethodGet, "/api/v1/ws/workspaces/ws1?token=tok", nil, "", "")

	suite.Equal(http.StatusForbidden, w.Code)
	suite.realtime.AssertNotCalled(suite.T(), "Serve", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestRealtime_HandsOffToServer() {
	suite.tokens.On("ParseAccessToken", mock.Anything, "tok").Return("u1", nil).Once()
	suite.workspaces.On("AuthorizeUserAction", mock.Anything, "u1", "ws1", domain.RoleTeamMember).
		Return(testUser("u1", domain.RoleTeamMember), nil).Once()
	suite.realtime.On("Serve", mock.Anything, mock.Anything, "ws1").Return(nil).Once()

	suite.do(http.MethodGet, "/api/v1/ws/workspaces/ws1?token=tok", nil, "", "")

	suite.realtime.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestCompanies_Unavailable() {
	suite.companies.On("ListCompanies", mock.Anything).Return(nil, errors.New("dial tcp: connection refused")).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/customers/companies", "", "u1")

	suite.Equal(http.StatusServiceUnavailable, w.Code)
	suite.JSONEq(`{"error":"Companies service is unavailable"}`, w.Body.String())
}

func (suite *HandlerTestSuite) TestCompanies_PassThrough() {
	suite.companies.On("ListCompanies", mock.Anything).
		Return([]map[string]any{{"id": "c1", "name": "Acme", "industry": "Mining"}}, nil).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/customers/companies", "", "u1")

	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`[{"id":"c1","name":"Acme","industry":"Mining"}]`, w.Body.String())
}
