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

func (suite *HandlerTestSuite) TestSendReport_Individual() {
	suite.reporting.On("SendReport", mock.Anything, "ws1", mock.MatchedBy(func(r dto.SendReportRequest) bool {
		return r.Mode == domain.DistributionIndividual && r.DateFrom == "2024-03-04"
	}), "mgr").Return(&domain.DistributionResult{
		Mode: domain.DistributionIndividual,
		Individual: &domain.IndividualResult{
			Message:     "Sent 2 of 3 individual reports",
			SentCount:   2,
			FailedCount: 1,
			Errors:      []string{"Failed to send to c@acme.test: mailbox unavailable"},
		},
	}, nil).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/workspaces/ws1/reports/field-activities/send",
		`{"date_from":"2024-03-04","date_to":"2024-03-10","mode":"individual"}`, "mgr")

	suite.Equal(http.StatusOK, w.Code)
	var body dto.IndividualReportResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(2, body.SentCount)
	suite.Equal(1, body.FailedCount)
	suite.Len(body.Errors, 1)
}

func (suite *HandlerTestSuite) TestSendReport_Bulk() {
	suite.reporting.On("SendReport", mock.Anything, "ws1", mock.MatchedBy(func(r dto.SendReportRequest) bool {
		return r.Mode == domain.DistributionBulk && len(r.Recipients) == 2
	}), "mgr").Return(&domain.DistributionResult{
		Mode: domain.DistributionBulk,
		Bulk: &domain.BulkResult{Message: "Report sent to 2 recipients", EmailID: "em_123"},
	}, nil).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/workspaces/ws1/reports/field-activities/send",
		`{"date_from":"2024-03-04","date_to":"2024-03-10","mode":"bulk","recipients":["a@acme.test","b@acme.test"]}`, "mgr")

	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"message":"Report sent to 2 recipients","email_id":"em_123"}`, w.Body.String())
}

func (suite *HandlerTestSuite) TestSendReport_InvalidRecipient() {
	w := suite.doJSON(http.MethodPost, "/api/v1/workspaces/ws1/reports/field-activities/send",
		`{"date_from":"2024-03-04","date_to":"2024-03-10","mode":"bulk","recipients":["not-an-email"]}`, "mgr")

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.reporting.AssertNotCalled(suite.T(), "SendReport", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestSendReport_ProviderFailure() {
	suite.reporting.On("SendReport", mock.Anything, "ws1", mock.Anything, "mgr").
		Return(nil, apperrors.NewTransportError("Failed to send email: provider returned 500", errors.New("500"))).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/workspaces/ws1/reports/field-activities/send",
		`{"date_from":"2024-03-04","date_to":"2024-03-10"}`, "mgr")

	suite.Equal(http.StatusBadGateway, w.Code)
	suite.JSONEq(`{"error":"Failed to send email: provider returned 500"}`, w.Body.String())
}

func (suite *HandlerTestSuite) TestPreviewReport_HTML() {
	rng, err := dto.ParseDateRange("2024-03-04", "2024-03-10")
	suite.Require().NoError(err)
	suite.reporting.On("PreviewReport", mock.Anything, "ws1", rng, "mgr").
		Return("<html><body>Field Activity Report</body></html>", nil).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/workspaces/ws1/reports/field-activities/preview?date_from=2024-03-04&date_to=2024-03-10", "", "mgr")

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("text/html; charset=utf-8", w.Header().Get("Content-Type"))
	suite.Contains(w.Body.String(), "Field Activity Report")
}

func (suite *HandlerTestSuite) TestPreviewReport_MissingRange() {
	w := suite.doJSON(http.MethodGet, "/api/v1/workspaces/ws1/reports/field-activities/preview?date_from=2024-03-04", "", "mgr")

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.reporting.AssertNotCalled(suite.T(), "PreviewReport", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestExportReport_Filename() {
	suite.reporting.On("ExportReport", mock.Anything, "ws1", mock.Anything, "mgr").Return([]byte("PK"), nil).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/workspaces/ws1/reports/field-activities/export?date_from=2024-03-04&date_to=2024-03-10", "", "mgr")

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal(`attachment; filename="field_activity_report_2024-03-04_2024-03-10.xlsx"`, w.Header().Get("Content-Disposition"))
}

func (suite *HandlerTestSuite) TestRunWeekly_RequiresExecutive() {
	suite.users.On("GetUserByID", mock.Anything, "mgr").Return(testUser("mgr", domain.RoleManager), nil).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/admin/reports/weekly/run", "", "mgr")

	suite.Equal(http.StatusForbidden, w.Code)
	suite.scheduler.AssertNotCalled(suite.T(), "RunWeekly", mock.Anything)
}

func (suite *HandlerTestSuite) TestRunWeekly_Executive() {
	rng, err := dto.ParseDateRange("2024-03-04", "2024-03-10")
	suite.Require().NoError(err)
	suite.users.On("GetUserByID", mock.Anything, "boss").Return(testUser("boss", domain.RoleExecutive), nil).Once()
	suite.scheduler.On("RunWeekly", mock.Anything).Return(&domain.WeeklyRunSummary{
		Range:               rng,
		StartedAt:           time.Date(2024, 3, 11, 8, 0, 0, 0, time.UTC),
		WorkspacesProcessed: 3,
		WorkspacesSkipped:   1,
	}, nil).Once()

	w := suite.doJSON(http.MethodPost, "/api/v1/admin/reports/weekly/run", "", "boss")

	suite.Equal(http.StatusOK, w.Code)
	var body dto.WeeklyRunResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal("2024-03-04", body.DateFrom)
	suite.Equal("2024-03-10", body.DateTo)
	suite.Equal(3, body.WorkspacesProcessed)
	suite.Equal(1, body.WorkspacesSkipped)
}
