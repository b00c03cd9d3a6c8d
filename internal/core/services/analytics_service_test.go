package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/flowhive/flowhive_backend/internal/apperrors"
	"github.com/flowhive/flowhive_backend/internal/core/domain"
	portssvc "github.com/flowhive/flowhive_backend/internal/core/ports/services"
	"github.com/flowhive/flowhive_backend/internal/core/services"
)

type AnalyticsServiceTestSuite struct {
	suite.Suite
	activityRepo *MockFieldActivityRepository
	authorizer   *MockAuthorizer
	service      portssvc.AnalyticsSvc

	ctx         context.Context
	workspaceID string
	user        *domain.User
}

func (suite *AnalyticsServiceTestSuite) SetupTest() {
	suite.activityRepo = new(MockFieldActivityRepository)
	suite.authorizer = new(MockAuthorizer)
	suite.service = services.NewAnalyticsService(suite.activityRepo, suite.authorizer)
	suite.ctx = context.Background()
	suite.workspaceID = uuid.NewString()
	suite.user = &domain.User{UserID: uuid.NewString(), Role: domain.RoleTeamMember}
}

func visit(customerID, customer string, day int, hours int) domain.FieldActivity {
	start, _ := domain.NewTimeOfDay(9, 0, 0)
	end, _ := domain.NewTimeOfDay(9+hours, 0, 0)
	return domain.FieldActivity{
		ActivityID:   uuid.NewString(),
		CustomerID:   &customerID,
		CustomerName: customer,
		ActivityDate: time.Date(2024, 3, day, 0, 0, 0, 0, time.UTC),
		StartTime:    &start,
		EndTime:      &end,
		LocationType: domain.LocationOnSite,
		Status:       domain.StatusCompleted,
	}
}

func (suite *AnalyticsServiceTestSuite) TestTopCustomers_PassesDateFrom() {
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	suite.authorizer.On("AuthorizeUserAction", suite.ctx, suite.user.UserID, suite.workspaceID, domain.RoleTeamMember).
		Return(suite.user, nil).Once()
	suite.activityRepo.On("ListActivities", suite.ctx, mock.MatchedBy(func(f domain.FieldActivityFilter) bool {
		return f.WorkspaceID == suite.workspaceID && f.DateFrom != nil && f.DateFrom.Equal(from)
	})).Return([]domain.FieldActivity{
		visit("c1", "Acme", 4, 1), visit("c2", "Globex", 5, 2), visit("c1", "Acme", 6, 2),
	}, nil).Once()

	top, err := suite.service.TopCustomers(suite.ctx, suite.workspaceID, 0, &from, suite.user.UserID)

	suite.Require().NoError(err)
	suite.Require().Len(top, 2)
	suite.Equal("c1", top[0].CustomerID)
	suite.Equal(2, top[0].ActivityCount)
	suite.Equal(3.0, top[0].TotalHours)
}

func (suite *AnalyticsServiceTestSuite) TestCustomerTimeline_NoActivities() {
	suite.authorizer.On("AuthorizeUserAction", suite.ctx, suite.user.UserID, suite.workspaceID, domain.RoleTeamMember).
		Return(suite.user, nil).Once()
	suite.activityRepo.On("ListActivities", suite.ctx, mock.MatchedBy(func(f domain.FieldActivityFilter) bool {
		return f.CustomerID != nil && *f.CustomerID == "c9"
	})).Return([]domain.FieldActivity{}, nil).Once()

	_, err := suite.service.CustomerTimeline(suite.ctx, suite.workspaceID, "c9", suite.user.UserID)

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AnalyticsServiceTestSuite) TestWorkspaceStats_RequiresManager() {
	suite.authorizer.On("AuthorizeUserAction", suite.ctx, suite.user.UserID, suite.workspaceID, domain.RoleManager).
		Return(nil, apperrors.NewForbiddenError("Not enough permissions")).Once()

	_, err := suite.service.WorkspaceStats(suite.ctx, suite.workspaceID, nil, nil, suite.user.UserID)

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.activityRepo.AssertNotCalled(suite.T(), "ListActivities", mock.Anything, mock.Anything)
}

func (suite *AnalyticsServiceTestSuite) TestOverview_Counts() {
	suite.authorizer.On("AuthorizeUserAction", suite.ctx, suite.user.UserID, suite.workspaceID, domain.RoleTeamMember).
		Return(suite.user, nil).Once()
	suite.activityRepo.On("ListActivities", suite.ctx, mock.AnythingOfType("domain.FieldActivityFilter")).
		Return([]domain.FieldActivity{visit("c1", "Acme", 4, 1), visit("c2", "Globex", 5, 2)}, nil).Once()

	overview, err := suite.service.Overview(suite.ctx, suite.workspaceID, suite.user.UserID)

	suite.Require().NoError(err)
	suite.Equal(2, overview.TotalActivities)
	suite.Equal(3.0, overview.TotalHours)
	suite.Equal(2, overview.UniqueCustomers)
}

func (suite *AnalyticsServiceTestSuite) recentVisit() domain.FieldActivity {
	a := visit("c1", "Acme", 1, 1)
	a.ActivityDate = domain.TruncateToDate(time.Now()).AddDate(0, 0, -5)
	return a
}

func (suite *AnalyticsServiceTestSuite) TestHealthCheck_DefaultsWhenThresholdAbsent() {
	suite.authorizer.On("AuthorizeUserAction", suite.ctx, suite.user.UserID, suite.workspaceID, domain.RoleTeamMember).
		Return(suite.user, nil).Once()
	suite.activityRepo.On("ListActivities", suite.ctx, mock.AnythingOfType("domain.FieldActivityFilter")).
		Return([]domain.FieldActivity{suite.recentVisit()}, nil).Once()

	rows, err := suite.service.HealthCheck(suite.ctx, suite.workspaceID, nil, suite.user.UserID)

	suite.Require().NoError(err)
	suite.Require().Len(rows, 1)
	suite.Equal(domain.HealthHealthy, rows[0].Status)
}

func (suite *AnalyticsServiceTestSuite) TestHealthCheck_ExplicitZeroThresholdIsHonoured() {
	suite.authorizer.On("AuthorizeUserAction", suite.ctx, suite.user.UserID, suite.workspaceID, domain.RoleTeamMember).
		Return(suite.user, nil).Once()
	suite.activityRepo.On("ListActivities", suite.ctx, mock.AnythingOfType("domain.FieldActivityFilter")).
		Return([]domain.FieldActivity{suite.recentVisit()}, nil).Once()
	zero := 0

	rows, err := suite.service.HealthCheck(suite.ctx, suite.workspaceID, &zero, suite.user.UserID)

	suite.Require().NoError(err)
	suite.Require().Len(rows, 1)
	suite.Equal(domain.HealthAtRisk, rows[0].Status)
}

func (suite *AnalyticsServiceTestSuite) TestHealthCheck_NegativeThresholdRejected() {
	negative := -1

	_, err := suite.service.HealthCheck(suite.ctx, suite.workspaceID, &negative, suite.user.UserID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.activityRepo.AssertNotCalled(suite.T(), "ListActivities", mock.Anything, mock.Anything)
}

func TestAnalyticsService(t *testing.T) {
	suite.Run(t, new(AnalyticsServiceTestSuite))
}
