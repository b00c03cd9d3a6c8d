package handlers_test

import (
	"net/http"

	"github.com/stretchr/testify/mock"

	"github.com/flowhive/flowhive_backend/internal/core/domain"
)

func (suite *HandlerTestSuite) TestHealthCheck_ThresholdAbsent() {
	suite.analytics.On("HealthCheck", mock.Anything, "ws1", (*int)(nil), "u1").
		Return([]domain.CustomerHealth{}, nil).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/workspaces/ws1/analytics/customers/health-check", "", "u1")

	suite.Equal(http.StatusOK, w.Code)
	suite.analytics.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestHealthCheck_ZeroThresholdPassedThrough() {
	suite.analytics.On("HealthCheck", mock.Anything, "ws1", mock.MatchedBy(func(d *int) bool {
		return d != nil && *d == 0
	}), "u1").Return([]domain.CustomerHealth{}, nil).Once()

	w := suite.doJSON(http.MethodGet, "/api/v1/workspaces/ws1/analytics/customers/health-check?days_threshold=0", "", "u1")

	suite.Equal(http.StatusOK, w.Code)
	suite.analytics.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestHealthCheck_ThresholdOutOfRange() {
	w := suite.doJSON(http.MethodGet, "/api/v1/workspaces/ws1/analytics/customers/health-check?days_threshold=400", "", "u1")

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.analytics.AssertNotCalled(suite.T(), "HealthCheck", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
