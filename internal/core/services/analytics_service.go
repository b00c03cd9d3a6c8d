package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/flowhive/flowhive_backend/internal/apperrors"
	"github.com/flowhive/flowhive_backend/internal/core/domain"
	portsrepo "github.com/flowhive/flowhive_backend/internal/core/ports/repositories"
	portssvc "github.com/flowhive/flowhive_backend/internal/core/ports/services"
	"github.com/flowhive/flowhive_backend/internal/utils/aggregation"
)

// analyticsService loads a workspace's activities and hands them to the aggregation package.
type analyticsService struct {
	BaseService
	activityRepo portsrepo.FieldActivityReader
	now          func() time.Time
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(activityRepo portsrepo.FieldActivityReader, authorizer portssvc.WorkspaceAuthorizerSvc) portssvc.AnalyticsSvc {
	return &analyticsService{
		BaseService:  BaseService{WorkspaceAuthorizer: authorizer},
		activityRepo: activityRepo,
		now:          time.Now,
	}
}

var _ portssvc.AnalyticsSvc = (*analyticsService)(nil)

func (s *analyticsService) load(ctx context.Context, workspaceID, userID string, required domain.Role, filter domain.FieldActivityFilter) ([]domain.FieldActivity, error) {
	if _, err := s.AuthorizeMember(ctx, userID, workspaceID, required); err != nil {
		return nil, err
	}
	filter.WorkspaceID = workspaceID
	activities, err := s.activityRepo.ListActivities(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to load activities for analytics", slog.String("workspace_id", workspaceID))
		return nil, err
	}
	return activities, nil
}

func (s *analyticsService) Overview(ctx context.Context, workspaceID, userID string) (*domain.ActivityOverview, error) {
	activities, err := s.load(ctx, workspaceID, userID, domain.RoleTeamMember, domain.FieldActivityFilter{})
	if err != nil {
		return nil, err
	}
	overview := aggregation.Overview(activities, s.now())
	return &overview, nil
}

func (s *analyticsService) TopCustomers(ctx context.Context, workspaceID string, limit int, dateFrom *time.Time, userID string) ([]domain.TopCustomer, error) {
	activities, err := s.load(ctx, workspaceID, userID, domain.RoleTeamMember, domain.FieldActivityFilter{DateFrom: dateFrom})
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = aggregation.DefaultTopCustomersLimit
	}
	return aggregation.TopCustomers(activities, limit), nil
}

func (s *analyticsService) CustomerTimeline(ctx context.Context, workspaceID, customerID, userID string) (*domain.CustomerTimeline, error) {
	activities, err := s.load(ctx, workspaceID, userID, domain.RoleTeamMember,
		domain.FieldActivityFilter{CustomerID: &customerID})
	if err != nil {
		return nil, err
	}
	return aggregation.CustomerTimeline(customerID, activities)
}

// HealthCheck uses the default threshold only when none was supplied; an explicit 0 is honoured.
func (s *analyticsService) HealthCheck(ctx context.Context, workspaceID string, thresholdDays *int, userID string) ([]domain.CustomerHealth, error) {
	threshold := domain.DefaultHealthThresholdDays
	if thresholdDays != nil {
		if *thresholdDays < 0 {
			return nil, apperrors.NewValidationFailedError("days_threshold must not be negative")
		}
		threshold = *thresholdDays
	}
	activities, err := s.load(ctx, workspaceID, userID, domain.RoleTeamMember, domain.FieldActivityFilter{})
	if err != nil {
		return nil, err
	}
	return aggregation.HealthCheck(activities, threshold, s.now()), nil
}

func (s *analyticsService) VisitFrequency(ctx context.Context, workspaceID, userID string) ([]domain.VisitFrequency, error) {
	activities, err := s.load(ctx, workspaceID, userID, domain.RoleTeamMember, domain.FieldActivityFilter{})
	if err != nil {
		return nil, err
	}
	return aggregation.VisitFrequency(activities), nil
}

func (s *analyticsService) WorkspaceStats(ctx context.Context, workspaceID string, from, to *time.Time, userID string) (*domain.WorkspaceActivityStats, error) {
	activities, err := s.load(ctx, workspaceID, userID, domain.RoleManager,
		domain.FieldActivityFilter{DateFrom: from, DateTo: to})
	if err != nil {
		return nil, err
	}
	stats := aggregation.WorkspaceStats(activities)
	return &stats, nil
}
