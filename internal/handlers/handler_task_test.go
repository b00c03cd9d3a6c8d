package handlers_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/flowhive/flowhive_backend/internal/apperrors"
	"github.com/flowhive/flowhive_backend/internal/core/domain"
	"github.com/flowhive/flowhive_backend/internal/dto"
)

func (suite *HandlerTestSuite) fileBody(name, contentType string, content []byte) (*bytes.Buffer, string) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+name+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	suite.Require().NoError(err)
	_, err = part.Write(content)
	suite.Require().NoError(err)
	suite.Require().NoError(writer.Close())
	return body, writer.FormDataContentType()
}

func (suite *HandlerTestSuite) TestCreateTask_Created() {
	suite.tasks.On("CreateTask", mock.Anything, mock.MatchedBy(func(r dto.CreateTaskRequest) bool {
		return r.TaskListID == "l1" && r.Title == "Wireframes" && r.Priority != nil && *r.Priority == domain.PriorityHigh
	}), "u1").Return(&domain.Task{
		TaskID: "t1", TaskListID: "l1", ProjectID: "p1", WorkspaceID: "ws1",
		Title: "Wireframes", Status: domain.TaskTodo, Priority: domain.PriorityHigh, CreatorID: "u1",
	}, nil).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/tasks", `{"task_list_id":"l1","title":"Wireframes","priority":"high"}`, "u1")

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.TaskResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("t1", resp.ID)
	suite.Equal(domain.PriorityHigh, resp.Priority)
}

func (suite *HandlerTestSuite) TestCreateTask_UnknownPriority() {
	w := suite.doJSON(http.MethodPost, "/api/v1/tasks", `{"task_list_id":"l1","title":"x","priority":"critical"}`, "u1")

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.tasks.AssertNotCalled(suite.T(), "CreateTask", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestMyTasks_StatusFilter() {
	suite.tasks.On("MyTasks", mock.Anything, "u1", mock.MatchedBy(func(s *domain.TaskStatus) bool {
		return s != nil && *s == domain.TaskInProgress
	})).Return([]domain.Task{{TaskID: "t1", Status: domain.TaskInProgress}}, nil).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/tasks/my-tasks?status=in_progress", "", "u1")

	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.TaskResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp, 1)
}

func (suite *HandlerTestSuite) TestMyTasks_InvalidStatus() {
	w := suite.doJSON(http.MethodGet, "/api/v1/tasks/my-tasks?status=someday", "", "u1")

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.tasks.AssertNotCalled(suite.T(), "MyTasks", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestListTasks_PassesFilters() {
	suite.tasks.On("ListTasks", mock.Anything, "ws1", mock.MatchedBy(func(p dto.ListTasksParams) bool {
		return p.ProjectID != nil && *p.ProjectID == "p1" && p.Limit == 100 && p.Skip == 0
	}), "u1").Return([]domain.Task{}, nil).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/workspaces/ws1/tasks?project_id=p1", "", "u1")

	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`[]`, w.Body.String())
}

func (suite *HandlerTestSuite) TestUpdateComment_NotAuthor() {
	suite.tasks.On("UpdateComment", mock.Anything, "t1", "c1", dto.UpdateCommentRequest{Content: "edited"}, "u2").
		Return(nil, apperrors.NewForbiddenError("Can only edit your own comments")).Once()

	w := suite.doJSON(http.MethodPatch, "/api/v1/tasks/t1/comments/c1", `{"content":"edited"}`, "u2")

	suite.Equal(http.StatusForbidden, w.Code)
	suite.JSONEq(`{"error":"Can only edit your own comments"}`, w.Body.String())
}

func (suite *HandlerTestSuite) TestDeleteComment_NoContent() {
	suite.tasks.On("DeleteComment", mock.Anything, "t1", "c1", "u1").Return(nil).Once()

	w := suite.doJSON(http.MethodDelete, "/api/v1/tasks/t1/comments/c1", "", "u1")

	suite.Equal(http.StatusNoContent, w.Code)
}

func (suite *HandlerTestSuite) TestAddTaskAttachment_Created() {
	body, contentType := suite.fileBody("leads.csv", "text/csv", []byte("a,b\n1,2\n"))
	suite.tasks.On("AddTaskAttachment", mock.Anything, "t1", mock.MatchedBy(func(u domain.Upload) bool {
		return u.FileName == "leads.csv" && u.ContentType == "text/csv" && u.Size == 8
	}), "u1").Return(&domain.TaskAttachment{
		AttachmentID: "a1", TaskID: "t1", URL: "/uploads/flowhive/tasks/a1.csv", ResourceType: domain.ResourceRaw,
		FileName: "leads.csv", FileSize: 8, MimeType: "text/csv", UploadedBy: "u1", UploadedAt: time.Now().UTC(),
	}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/tasks/t1/attachments", body, contentType, "u1")

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.TaskAttachmentResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("a1", resp.ID)
	suite.Equal(domain.ResourceRaw, resp.ResourceType)
}

func (suite *HandlerTestSuite) TestAddTaskAttachment_TooLarge() {
	body, contentType := suite.fileBody("dump.pdf", "application/pdf", []byte("pdf"))
	suite.tasks.On("AddTaskAttachment", mock.Anything, "t1", mock.Anything, "u1").
		Return(nil, apperrors.NewTooLargeError("File size exceeds maximum")).Once()

	w := suite.do(http.MethodPost, "/api/v1/tasks/t1/attachments", body, contentType, "u1")

	suite.Equal(http.StatusRequestEntityTooLarge, w.Code)
}

func (suite *HandlerTestSuite) TestDeleteTaskAttachment_NotUploader() {
	suite.tasks.On("DeleteTaskAttachment", mock.Anything, "t1", "a1", "u2").
		Return(apperrors.NewForbiddenError("Can only delete your own attachments")).Once()

	w := suite.doJSON(http.MethodDelete, "/api/v1/tasks/t1/attachments/a1", "", "u2")

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *HandlerTestSuite) TestTaskOverview_NullAverageWhenNothingCompleted() {
	suite.taskAnalytics.On("TaskOverview", mock.Anything, "ws1", "u1").
		Return(&domain.TaskOverview{TotalTasks: 2}, nil).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/workspaces/ws1/analytics/tasks/overview", "", "u1")

	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"total_tasks":2,"completed_tasks":0,"in_progress_tasks":0,"overdue_tasks":0,
		"completion_rate":0,"average_completion_time_days":null}`, w.Body.String())
}

func (suite *HandlerTestSuite) TestUserProductivity_DefaultLimit() {
	suite.taskAnalytics.On("UserProductivity", mock.Anything, "ws1", 10, "u1").
		Return([]domain.UserProductivity{{UserID: "u2", UserName: "bob", TasksAssigned: 2, TasksCompleted: 1, CompletionRate: 50}}, nil).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/workspaces/ws1/analytics/user-productivity", "", "u1")

	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.UserProductivityResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp, 1)
	suite.Equal(50.0, resp[0].CompletionRate)
}

func (suite *HandlerTestSuite) TestUserProductivity_LimitOutOfRange() {
	w := suite.doJSON(http.MethodGet, "/api/v1/workspaces/ws1/analytics/user-productivity?limit=500", "", "u1")

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestExecutiveDashboard_Forbidden() {
	suite.taskAnalytics.On("ExecutiveDashboard", mock.Anything, "u1").
		Return(nil, apperrors.NewForbiddenError("Executive access required")).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/analytics/executive-dashboard", "", "u1")

	suite.Equal(http.StatusForbidden, w.Code)
	suite.JSONEq(`{"error":"Executive access required"}`, w.Body.String())
}

func (suite *HandlerTestSuite) TestExecutiveDashboard_OK() {
	suite.taskAnalytics.On("ExecutiveDashboard", mock.Anything, "u1").Return(&domain.ExecutiveDashboard{
		Workspaces:           []domain.WorkspaceProgress{{WorkspaceID: "ws1", WorkspaceName: "Sales", TotalTasks: 4, CompletedTasks: 1, CompletionRate: 25}},
		TopPerformers:        []domain.UserProductivity{},
		PriorityDistribution: map[domain.TaskPriority]int{domain.PriorityHigh: 4},
		StatusDistribution:   map[domain.TaskStatus]int{domain.TaskCompleted: 1},
	}, nil).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/analytics/executive-dashboard", "", "u1")

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ExecutiveDashboardResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Workspaces, 1)
	suite.Equal(25.0, resp.Workspaces[0].CompletionRate)
	suite.Equal(4, resp.PriorityDistribution[domain.PriorityHigh])
}
