package services

import (
	"context"

	"github.com/flowhive/flowhive_backend/internal/core/domain"
	"github.com/flowhive/flowhive_backend/internal/dto"
)

// ReportComposer renders an aggregated report as a standalone HTML document.
type ReportComposer interface {
	Compose(report domain.ActivityReport) (string, error)
}

// ReportingService builds and distributes field activity reports.
type ReportingService interface {
	// BuildReport aggregates a workspace's activities in rng.
	BuildReport(ctx context.Context, workspaceID string, rng domain.DateRange) (*domain.ActivityReport, error)

	// SendBulk emails the full report to recipients in one send. Transport failures are returned.
	SendBulk(ctx context.Context, report domain.ActivityReport, recipients []string) (*domain.BulkResult, error)

	// SendIndividual emails each workspace member the report slice they are entitled to.
	SendIndividual(ctx context.Context, report domain.ActivityReport) (*domain.IndividualResult, error)

	// SendReport authorizes a manager, builds the report and distributes it in the requested mode.
	SendReport(ctx context.Context, workspaceID string, req dto.SendReportRequest, userID string) (*domain.DistributionResult, error)

	// PreviewReport returns the composed HTML for a manager.
	PreviewReport(ctx context.Context, workspaceID string, rng domain.DateRange, userID string) (string, error)

	// ExportReport returns an xlsx workbook with a summary sheet and one sheet per staff member.
	ExportReport(ctx context.Context, workspaceID string, rng domain.DateRange, userID string) ([]byte, error)
}

// ReportScheduler runs the weekly distribution on a cron schedule.
type ReportScheduler interface {
	// Start registers the weekly job and starts the cron loop. It is a no-op when disabled.
	Start() error
	// Stop halts the cron loop and waits for a running job until ctx is done.
	Stop(ctx context.Context) error
	// RunWeekly runs one distribution over the last completed week.
	RunWeekly(ctx context.Context) (*domain.WeeklyRunSummary, error)
}

// ExportService renders activity listings as spreadsheets.
type ExportService interface {
	ActivitiesWorkbook(activities []domain.FieldActivity) ([]byte, error)
	ReportWorkbook(report domain.ActivityReport) ([]byte, error)
}
