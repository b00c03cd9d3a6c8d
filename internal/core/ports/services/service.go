package services

import (
	"github.com/flowhive/flowhive_backend/internal/core/ports/gateways"
)

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	User               UserSvcFacade
	Workspace          WorkspaceSvcFacade
	TaskCategory       TaskCategorySvcFacade
	FieldActivity      FieldActivitySvcFacade
	Analytics          AnalyticsSvc
	Reporting          ReportingService
	Scheduler          ReportScheduler
	Export             ExportService
	MeetingMinute      MeetingMinuteSvcFacade
	Project            ProjectSvcFacade
	Task               TaskSvcFacade
	TaskAnalytics      TaskAnalyticsSvc
	TokenService       TokenSvcFacade
	PasswordReset      PasswordResetSvc
	GoogleOAuthHandler GoogleOAuthHandlerSvcFacade
	Companies          gateways.CompanyDirectory
}
