package handlers_test

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/flowhive/flowhive_backend/internal/apperrors"
	"github.com/flowhive/flowhive_backend/internal/core/domain"
	"github.com/flowhive/flowhive_backend/internal/dto"
)

func (suite *HandlerTestSuite) TestCreateProject_Created() {
	now := time.Now().UTC()
	suite.projects.On("CreateProject", mock.Anything, "ws1", dto.CreateProjectRequest{Name: "Website"}, "u1").
		Return(&domain.Project{
			ProjectID: "p1", WorkspaceID: "ws1", Name: "Website", CreatedBy: "u1",
			Timestamps: domain.Timestamps{CreatedAt: now, UpdatedAt: now},
		}, nil).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/workspaces/ws1/projects", `{"name":"Website"}`, "u1")

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.ProjectResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("p1", resp.ID)
	suite.Nil(resp.TaskLists)
}

func (suite *HandlerTestSuite) TestCreateProject_MissingName() {
	w := suite.doJSON(http.MethodPost, "/api/v1/workspaces/ws1/projects", `{"color":"#fff"}`, "u1")

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.projects.AssertNotCalled(suite.T(), "CreateProject", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestGetProject_IncludesListsAndTasks() {
	suite.projects.On("GetProject", mock.Anything, "p1", "u1").Return(&domain.Project{
		ProjectID: "p1", WorkspaceID: "ws1", Name: "Website",
		TaskLists: []domain.TaskList{{
			TaskListID: "l1", ProjectID: "p1", Name: "Backlog",
			Tasks: []domain.Task{{TaskID: "t1", TaskListID: "l1", Title: "Wireframes", Status: domain.TaskTodo, Priority: domain.PriorityHigh}},
		}},
	}, nil).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/projects/p1", "", "u1")

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ProjectResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.TaskLists, 1)
	suite.Require().Len(resp.TaskLists[0].Tasks, 1)
	suite.Equal("Wireframes", resp.TaskLists[0].Tasks[0].Title)
}

func (suite *HandlerTestSuite) TestGetProject_NotFound() {
	suite.projects.On("GetProject", mock.Anything, "gone", "u1").
		Return(nil, apperrors.NewNotFoundError("Project not found")).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/projects/gone", "", "u1")

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestDeleteTaskList_Forbidden() {
	suite.projects.On("DeleteTaskList", mock.Anything, "l1", "u9").
		Return(apperrors.NewForbiddenError("Not a member of this workspace")).Once()

	w := suite.doJSON(http.MethodDelete, "/api/v1/task-lists/l1", "", "u9")

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *HandlerTestSuite) TestCreateTaskList_NegativePosition() {
	w := suite.doJSON(http.MethodPost, "/api/v1/projects/p1/task-lists", `{"name":"Backlog","position":-1}`, "u1")

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestProjectAnalytics_OK() {
	suite.taskAnalytics.On("ProjectAnalytics", mock.Anything, "p1", "u1").Return(&domain.ProjectProgress{
		ProjectID: "p1", ProjectName: "Website", TotalTasks: 3, CompletedTasks: 1, CompletionRate: 33.33,
	}, nil).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/projects/p1/analytics", "", "u1")

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ProjectProgressResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(33.33, resp.CompletionRate)
}
