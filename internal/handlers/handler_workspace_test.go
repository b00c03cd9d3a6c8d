package handlers_test

import (
	"encoding/json"
	"net/http"

	"github.com/stretchr/testify/mock"

	"github.com/flowhive/flowhive_backend/internal/apperrors"
	"github.com/flowhive/flowhive_backend/internal/core/domain"
	"github.com/flowhive/flowhive_backend/internal/dto"
)

func (suite *HandlerTestSuite) TestListWorkspaces() {
	suite.workspaces.On("ListUserWorkspaces", mock.Anything, "u1", 100, 0).
		Return([]domain.Workspace{{WorkspaceID: "ws1", Name: "Field Ops", OwnerID: "u1"}}, nil).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/workspaces", "", "u1")

	suite.Equal(http.StatusOK, w.Code)
	var body []dto.WorkspaceResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Require().Len(body, 1)
	suite.Equal("Field Ops", body[0].Name)
}

func (suite *HandlerTestSuite) TestAddMember_Created() {
	suite.workspaces.On("AddMember", mock.Anything, "ws1", "u2", "u1").Return(nil).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/workspaces/ws1/members/u2", "", "u1")

	suite.Equal(http.StatusCreated, w.Code)
	suite.JSONEq(`{"message":"Member added successfully"}`, w.Body.String())
}

func (suite *HandlerTestSuite) TestAddMember_AlreadyMember() {
	suite.workspaces.On("AddMember", mock.Anything, "ws1", "u2", "u1").
		Return(apperrors.NewValidationFailedError("User is already a member of this workspace")).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/workspaces/ws1/members/u2", "", "u1")

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestDeleteWorkspace_NotOwner() {
	suite.workspaces.On("DeleteWorkspace", mock.Anything, "ws1", "u2").
		Return(apperrors.NewForbiddenError("Only the workspace owner can delete it")).Once()

	w := suite.doJSON(http.MethodDelete, "/api/v1/workspaces/ws1", "", "u2")

	suite.Equal(http.StatusForbidden, w.Code)
}
