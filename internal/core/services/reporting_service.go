package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/flowhive/flowhive_backend/internal/apperrors"
	"github.com/flowhive/flowhive_backend/internal/core/domain"
	"github.com/flowhive/flowhive_backend/internal/core/ports/gateways"
	portsrepo "github.com/flowhive/flowhive_backend/internal/core/ports/repositories"
	portssvc "github.com/flowhive/flowhive_backend/internal/core/ports/services"
	"github.com/flowhive/flowhive_backend/internal/dto"
	"github.com/flowhive/flowhive_backend/internal/observability"
	"github.com/flowhive/flowhive_backend/internal/utils/aggregation"
)

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	activityRepo portsrepo.FieldActivityReader
	memberRepo   portsrepo.WorkspaceMembershipManager
	composer     portssvc.ReportComposer
	email        gateways.EmailSender
	export       portssvc.ExportService
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithReportingWorkspaceAuthorizer sets the workspace authorizer for the reporting service.
func WithReportingWorkspaceAuthorizer(authorizer portssvc.WorkspaceAuthorizerSvc) ReportingServiceOption {
	return func(s *reportingService) {
		s.WorkspaceAuthorizer = authorizer
	}
}

// WithReportExport enables workbook exports.
func WithReportExport(export portssvc.ExportService) ReportingServiceOption {
	return func(s *reportingService) {
		s.export = export
	}
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(
	activityRepo portsrepo.FieldActivityReader,
	memberRepo portsrepo.WorkspaceMembershipManager,
	composer portssvc.ReportComposer,
	email gateways.EmailSender,
	options ...ReportingServiceOption,
) portssvc.ReportingService {
	svc := &reportingService{
		activityRepo: activityRepo,
		memberRepo:   memberRepo,
		composer:     composer,
		email:        email,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

func bulkSubject(rng domain.DateRange) string {
	return fmt.Sprintf("Weekly Activity Report - %s to %s", rng.FromString(), rng.ToString())
}

func allStaffSubject(rng domain.DateRange) string {
	return fmt.Sprintf("Weekly Activity Report - All Staff (%s to %s)", rng.FromString(), rng.ToString())
}

func personalSubject(rng domain.DateRange) string {
	return fmt.Sprintf("Your Weekly Activity Report (%s to %s)", rng.FromString(), rng.ToString())
}

// BuildReport aggregates every activity of the workspace in rng, oldest first.
func (s *reportingService) BuildReport(ctx context.Context, workspaceID string, rng domain.DateRange) (*domain.ActivityReport, error) {
	from, to := rng.From, rng.To
	activities, err := s.activityRepo.ListActivities(ctx, domain.FieldActivityFilter{
		WorkspaceID: workspaceID,
		DateFrom:    &from,
		DateTo:      &to,
		Order:       domain.OrderChronological,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to load activities for report",
			slog.String("workspace_id", workspaceID),
			slog.String("date_from", rng.FromString()),
			slog.String("date_to", rng.ToString()))
		return nil, fmt.Errorf("failed to load activities for report: %w", err)
	}
	report := aggregation.BuildReport(workspaceID, rng, activities)
	return &report, nil
}

// SendBulk sends one copy of the full report to all recipients. Any transport failure aborts.
func (s *reportingService) SendBulk(ctx context.Context, report domain.ActivityReport, recipients []string) (*domain.BulkResult, error) {
	if len(recipients) == 0 {
		return nil, apperrors.NewValidationFailedError("At least one recipient is required for bulk reports")
	}
	html, err := s.composer.Compose(report)
	if err != nil {
		return nil, err
	}

	res, err := s.email.Send(ctx, domain.EmailMessage{
		To:      recipients,
		Subject: bulkSubject(report.Range),
		HTML:    html,
	})
	observability.RecordReportDelivery(string(domain.DistributionBulk), err == nil)
	if err != nil {
		s.LogError(ctx, err, "Bulk report delivery failed",
			slog.String("workspace_id", report.WorkspaceID), slog.Int("recipients", len(recipients)))
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}
		return nil, apperrors.NewTransportError(err.Error(), err)
	}

	s.LogInfo(ctx, "Bulk report sent",
		slog.String("workspace_id", report.WorkspaceID),
		slog.Int("recipients", len(recipients)),
		slog.String("email_id", res.ID))
	return &domain.BulkResult{Message: res.Message, EmailID: res.ID}, nil
}

// SendIndividual mails every member the part of the report they may see. Elevated members get
// the full report, others only their own bucket. Per-recipient failures are collected.
func (s *reportingService) SendIndividual(ctx context.Context, report domain.ActivityReport) (*domain.IndividualResult, error) {
	members, err := s.memberRepo.ListMembers(ctx, report.WorkspaceID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list workspace members", slog.String("workspace_id", report.WorkspaceID))
		return nil, err
	}
	if len(members) == 0 {
		return nil, apperrors.NewNotFoundError("No members found in workspace")
	}

	var fullHTML string
	result := &domain.IndividualResult{}
	for _, m := range members {
		email := strings.TrimSpace(m.Email)
		if email == "" {
			continue
		}

		var msg domain.EmailMessage
		if m.Role.IsElevated() {
			if fullHTML == "" {
				if fullHTML, err = s.composer.Compose(report); err != nil {
					return nil, err
				}
			}
			msg = domain.EmailMessage{To: []string{email}, Subject: allStaffSubject(report.Range), HTML: fullHTML}
		} else {
			bucket, ok := report.BucketFor(m.UserID)
			if !ok {
				continue
			}
			html, err := s.composer.Compose(aggregation.SingleStaffReport(report, bucket))
			if err != nil {
				return nil, err
			}
			msg = domain.EmailMessage{To: []string{email}, Subject: personalSubject(report.Range), HTML: html}
		}

		_, sendErr := s.email.Send(ctx, msg)
		observability.RecordReportDelivery(string(domain.DistributionIndividual), sendErr == nil)
		if sendErr != nil {
			result.FailedCount++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %s", email, apperrors.Message(sendErr)))
			s.LogError(ctx, sendErr, "Individual report delivery failed",
				slog.String("workspace_id", report.WorkspaceID), slog.String("user_id", m.UserID))
			continue
		}
		result.SentCount++
	}

	result.Message = fmt.Sprintf("Individual reports sent to %d member(s)", result.SentCount)
	s.LogInfo(ctx, "Individual reports sent",
		slog.String("workspace_id", report.WorkspaceID),
		slog.Int("sent", result.SentCount),
		slog.Int("failed", result.FailedCount))
	return result, nil
}

func (s *reportingService) SendReport(ctx context.Context, workspaceID string, req dto.SendReportRequest, userID string) (*domain.DistributionResult, error) {
	if _, err := s.AuthorizeMember(ctx, userID, workspaceID, domain.RoleManager); err != nil {
		return nil, err
	}
	rng, err := dto.ParseDateRange(req.DateFrom, req.DateTo)
	if err != nil {
		return nil, err
	}
	mode := req.Mode
	if mode == "" {
		mode = domain.DistributionBulk
	}
	if mode == domain.DistributionBulk && len(req.Recipients) == 0 {
		return nil, apperrors.NewValidationFailedError("Recipients are required for bulk mode")
	}

	report, err := s.BuildReport(ctx, workspaceID, rng)
	if err != nil {
		return nil, err
	}

	out := &domain.DistributionResult{Mode: mode}
	switch mode {
	case domain.DistributionBulk:
		out.Bulk, err = s.SendBulk(ctx, *report, req.Recipients)
	case domain.DistributionIndividual:
		out.Individual, err = s.SendIndividual(ctx, *report)
	default:
		return nil, apperrors.NewValidationFailedError(fmt.Sprintf("invalid mode %q", mode))
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *reportingService) PreviewReport(ctx context.Context, workspaceID string, rng domain.DateRange, userID string) (string, error) {
	if _, err := s.AuthorizeMember(ctx, userID, workspaceID, domain.RoleManager); err != nil {
		return "", err
	}
	report, err := s.BuildReport(ctx, workspaceID, rng)
	if err != nil {
		return "", err
	}
	return s.composer.Compose(*report)
}

func (s *reportingService) ExportReport(ctx context.Context, workspaceID string, rng domain.DateRange, userID string) ([]byte, error) {
	if _, err := s.AuthorizeMember(ctx, userID, workspaceID, domain.RoleManager); err != nil {
		return nil, err
	}
	if s.export == nil {
		return nil, apperrors.NewInternalServerError("Report export is not configured")
	}
	report, err := s.BuildReport(ctx, workspaceID, rng)
	if err != nil {
		return nil, err
	}
	return s.export.ReportWorkbook(*report)
}
