package services

import (
	"log/slog"

	"github.com/flowhive/flowhive_backend/internal/core/ports/gateways"
	portsrepo "github.com/flowhive/flowhive_backend/internal/core/ports/repositories"
	portssvc "github.com/flowhive/flowhive_backend/internal/core/ports/services"
	"github.com/flowhive/flowhive_backend/internal/platform/config"
)

// GatewayProvider holds the outbound adapters services talk to.
type GatewayProvider struct {
	Email       gateways.EmailSender
	Photos      gateways.FileStore
	Attachments gateways.FileStore
	Companies   gateways.CompanyDirectory
	Notifier    gateways.WorkspaceNotifier
	Logger      *slog.Logger
}

// WeeklyScheduleFromConfig maps the WEEKLY_REPORT_* settings.
func WeeklyScheduleFromConfig(cfg *config.Config) WeeklySchedule {
	return WeeklySchedule{
		Enabled:    cfg.WeeklyReportEnabled,
		Day:        cfg.WeeklyReportDay,
		Hour:       cfg.WeeklyReportHour,
		Timezone:   cfg.WeeklyReportTimezone,
		Recipients: cfg.WeeklyReportRecipients,
	}
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, gw GatewayProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Workspace service first: every other service authorizes through it
	container.Workspace = NewWorkspaceService(repos.WorkspaceRepo, repos.UserRepo)
	authorizer := container.Workspace.(portssvc.WorkspaceAuthorizerSvc)

	container.User = NewUserService(repos.UserRepo)
	container.TaskCategory = NewTaskCategoryService(repos.TaskCategoryRepo, authorizer)

	container.FieldActivity = NewFieldActivityService(
		repos.FieldActivityRepo,
		repos.TaskCategoryRepo,
		repos.WorkspaceRepo,
		WithActivityAuthorizer(authorizer),
		WithActivityNotifier(gw.Notifier),
		WithPhotoStore(gw.Photos, cfg.MaxUploadSize),
	)
	container.Analytics = NewAnalyticsService(repos.FieldActivityRepo, authorizer)

	container.Export = NewExportService()
	container.Reporting = NewReportingService(
		repos.FieldActivityRepo,
		repos.WorkspaceRepo,
		NewReportComposer(cfg.FrontendURL),
		gw.Email,
		WithReportingWorkspaceAuthorizer(authorizer),
		WithReportExport(container.Export),
	)
	container.Scheduler = NewSchedulerService(
		WeeklyScheduleFromConfig(cfg),
		repos.ReportingRepo,
		container.Reporting,
		gw.Logger,
	)

	container.MeetingMinute = NewMeetingMinuteService(
		repos.MeetingMinuteRepo,
		WithMinuteAuthorizer(authorizer),
		WithMinuteNotifier(gw.Notifier),
		WithAttachmentStore(gw.Attachments, cfg.MaxUploadSize),
	)

	container.Project = NewProjectService(
		repos.ProjectRepo,
		repos.TaskRepo,
		WithProjectAuthorizer(authorizer),
		WithProjectNotifier(gw.Notifier),
		WithProjectFileStore(gw.Attachments),
	)
	container.Task = NewTaskService(
		repos.TaskRepo,
		repos.ProjectRepo,
		repos.WorkspaceRepo,
		WithTaskAuthorizer(authorizer),
		WithTaskNotifier(gw.Notifier),
		WithTaskAttachmentStore(gw.Attachments, cfg.MaxUploadSize),
	)
	container.TaskAnalytics = NewTaskAnalyticsService(
		repos.ProjectRepo,
		repos.TaskRepo,
		repos.WorkspaceRepo,
		repos.UserRepo,
		repos.FieldActivityRepo,
		authorizer,
	)

	container.TokenService = NewTokenService(cfg)
	container.GoogleOAuthHandler = NewGoogleOAuthHandlerService(cfg)
	container.PasswordReset = NewPasswordResetService(repos.UserRepo, gw.Email, cfg.FrontendURL, cfg.PasswordResetExpiry)
	container.Companies = gw.Companies

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.WorkspaceSvcFacade     = (*workspaceService)(nil)
	_ portssvc.FieldActivitySvcFacade = (*fieldActivityService)(nil)
	_ portssvc.ReportScheduler        = (*schedulerService)(nil)
)
