package handlers_test

import (
	"context"
	"net/http"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/flowhive/flowhive_backend/internal/core/domain"
	"github.com/flowhive/flowhive_backend/internal/core/ports/gateways"
	portssvc "github.com/flowhive/flowhive_backend/internal/core/ports/services"
	"github.com/flowhive/flowhive_backend/internal/dto"
	"github.com/flowhive/flowhive_backend/internal/handlers"
)

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) ListUsers(ctx context.Context, limit, offset int, requestingUserID string) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *MockUserService) SearchUsers(ctx context.Context, q string, limit int) ([]domain.User, error) {
	args := m.Called(ctx, q, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}
func (m *MockUserService) CreateUser(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, requestingUserID string) (*domain.User, error) {
	args := m.Called(ctx, userID, req, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) DeleteUser(ctx context.Context, userID string, requestingUserID string) error {
	args := m.Called(ctx, userID, requestingUserID)
	return args.Error(0)
}
func (m *MockUserService) AuthenticateUser(ctx context.Context, login, password string) (*domain.User, error) {
	args := m.Called(ctx, login, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// --- Mock WorkspaceService ---
type MockWorkspaceService struct {
	mock.Mock
}

func (m *MockWorkspaceService) GetWorkspace(ctx context.Context, workspaceID, requestingUserID string) (*domain.Workspace, error) {
	args := m.Called(ctx, workspaceID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Workspace), args.Error(1)
}
func (m *MockWorkspaceService) ListUserWorkspaces(ctx context.Context, userID string, limit, offset int) ([]domain.Workspace, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Workspace), args.Error(1)
}
func (m *MockWorkspaceService) ListMembers(ctx context.Context, workspaceID, requestingUserID string) ([]domain.MemberProfile, error) {
	args := m.Called(ctx, workspaceID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MemberProfile), args.Error(1)
}
func (m *MockWorkspaceService) CreateWorkspace(ctx context.Context, req dto.CreateWorkspaceRequest, creatorUserID string) (*domain.Workspace, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Workspace), args.Error(1)
}
func (m *MockWorkspaceService) UpdateWorkspace(ctx context.Context, workspaceID string, req dto.UpdateWorkspaceRequest, requestingUserID string) (*domain.Workspace, error) {
	args := m.Called(ctx, workspaceID, req, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Workspace), args.Error(1)
}
func (m *MockWorkspaceService) DeleteWorkspace(ctx context.Context, workspaceID, requestingUserID string) error {
	return m.Called(ctx, workspaceID, requestingUserID).Error(0)
}
func (m *MockWorkspaceService) AddMember(ctx context.Context, workspaceID, targetUserID, requestingUserID string) error {
	return m.Called(ctx, workspaceID, targetUserID, requestingUserID).Error(0)
}
func (m *MockWorkspaceService) RemoveMember(ctx context.Context, workspaceID, targetUserID, requestingUserID string) error {
	return m.Called(ctx, workspaceID, targetUserID, requestingUserID).Error(0)
}
func (m *MockWorkspaceService) AuthorizeUserAction(ctx context.Context, userID, workspaceID string, requiredRole domain.Role) (*domain.User, error) {
	args := m.Called(ctx, userID, workspaceID, requiredRole)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

var _ portssvc.WorkspaceSvcFacade = (*MockWorkspaceService)(nil)

// --- Mock FieldActivityService ---
type MockFieldActivityService struct {
	mock.Mock
}

func (m *MockFieldActivityService) ListActivities(ctx context.Context, workspaceID string, params dto.ListFieldActivitiesParams, userID string) ([]domain.FieldActivity, *string, error) {
	args := m.Called(ctx, workspaceID, params, userID)
	var next *string
	if v := args.Get(1); v != nil {
		next = v.(*string)
	}
	if args.Get(0) == nil {
		return nil, next, args.Error(2)
	}
	return args.Get(0).([]domain.FieldActivity), next, args.Error(2)
}
func (m *MockFieldActivityService) GetActivity(ctx context.Context, activityID, userID string) (*domain.FieldActivity, error) {
	args := m.Called(ctx, activityID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FieldActivity), args.Error(1)
}
func (m *MockFieldActivityService) ListActivitiesInRange(ctx context.Context, workspaceID string, rng domain.DateRange, userID string) ([]domain.FieldActivity, error) {
	args := m.Called(ctx, workspaceID, rng, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FieldActivity), args.Error(1)
}
func (m *MockFieldActivityService) CreateActivity(ctx context.Context, workspaceID string, req dto.CreateFieldActivityRequest, userID string) (*domain.FieldActivity, error) {
	args := m.Called(ctx, workspaceID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FieldActivity), args.Error(1)
}
func (m *MockFieldActivityService) UpdateActivity(ctx context.Context, activityID string, req dto.UpdateFieldActivityRequest, userID string) (*domain.FieldActivity, error) {
	args := m.Called(ctx, activityID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FieldActivity), args.Error(1)
}
func (m *MockFieldActivityService) DeleteActivity(ctx context.Context, activityID, userID string) error {
	return m.Called(ctx, activityID, userID).Error(0)
}
func (m *MockFieldActivityService) AddPhoto(ctx context.Context, activityID string, upload domain.Upload, userID string) (*domain.FieldActivityPhoto, error) {
	args := m.Called(ctx, activityID, upload, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FieldActivityPhoto), args.Error(1)
}
func (m *MockFieldActivityService) DeletePhoto(ctx context.Context, activityID, photoID, userID string) error {
	return m.Called(ctx, activityID, photoID, userID).Error(0)
}

var _ portssvc.FieldActivitySvcFacade = (*MockFieldActivityService)(nil)

// --- Mock AnalyticsService ---
type MockAnalyticsService struct {
	mock.Mock
}

func (m *MockAnalyticsService) Overview(ctx context.Context, workspaceID, userID string) (*domain.ActivityOverview, error) {
	args := m.Called(ctx, workspaceID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ActivityOverview), args.Error(1)
}
func (m *MockAnalyticsService) TopCustomers(ctx context.Context, workspaceID string, limit int, dateFrom *time.Time, userID string) ([]domain.TopCustomer, error) {
	args := m.Called(ctx, workspaceID, limit, dateFrom, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TopCustomer), args.Error(1)
}
func (m *MockAnalyticsService) CustomerTimeline(ctx context.Context, workspaceID, customerID, userID string) (*domain.CustomerTimeline, error) {
	args := m.Called(ctx, workspaceID, customerID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CustomerTimeline), args.Error(1)
}
func (m *MockAnalyticsService) HealthCheck(ctx context.Context, workspaceID string, thresholdDays *int, userID string) ([]domain.CustomerHealth, error) {
	args := m.Called(ctx, workspaceID, thresholdDays, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CustomerHealth), args.Error(1)
}
func (m *MockAnalyticsService) VisitFrequency(ctx context.Context, workspaceID, userID string) ([]domain.VisitFrequency, error) {
	args := m.Called(ctx, workspaceID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VisitFrequency), args.Error(1)
}
func (m *MockAnalyticsService) WorkspaceStats(ctx context.Context, workspaceID string, from, to *time.Time, userID string) (*domain.WorkspaceActivityStats, error) {
	args := m.Called(ctx, workspaceID, from, to, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkspaceActivityStats), args.Error(1)
}

var _ portssvc.AnalyticsSvc = (*MockAnalyticsService)(nil)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) BuildReport(ctx context.Context, workspaceID string, rng domain.DateRange) (*domain.ActivityReport, error) {
	args := m.Called(ctx, workspaceID, rng)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ActivityReport), args.Error(1)
}
func (m *MockReportingService) SendBulk(ctx context.Context, report domain.ActivityReport, recipients []string) (*domain.BulkResult, error) {
	args := m.Called(ctx, report, recipients)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BulkResult), args.Error(1)
}
func (m *MockReportingService) SendIndividual(ctx context.Context, report domain.ActivityReport) (*domain.IndividualResult, error) {
	args := m.Called(ctx, report)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IndividualResult), args.Error(1)
}
func (m *MockReportingService) SendReport(ctx context.Context, workspaceID string, req dto.SendReportRequest, userID string) (*domain.DistributionResult, error) {
	args := m.Called(ctx, workspaceID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DistributionResult), args.Error(1)
}
func (m *MockReportingService) PreviewReport(ctx context.Context, workspaceID string, rng domain.DateRange, userID string) (string, error) {
	args := m.Called(ctx, workspaceID, rng, userID)
	return args.String(0), args.Error(1)
}
func (m *MockReportingService) ExportReport(ctx context.Context, workspaceID string, rng domain.DateRange, userID string) ([]byte, error) {
	args := m.Called(ctx, workspaceID, rng, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

var _ portssvc.ReportingService = (*MockReportingService)(nil)

// --- Mock ReportScheduler ---
type MockScheduler struct {
	mock.Mock
}

func (m *MockScheduler) Start() error                   { return m.Called().Error(0) }
func (m *MockScheduler) Stop(ctx context.Context) error { return m.Called(ctx).Error(0) }
func (m *MockScheduler) RunWeekly(ctx context.Context) (*domain.WeeklyRunSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WeeklyRunSummary), args.Error(1)
}

var _ portssvc.ReportScheduler = (*MockScheduler)(nil)

// --- Mock ExportService ---
type MockExportService struct {
	mock.Mock
}

func (m *MockExportService) ActivitiesWorkbook(activities []domain.FieldActivity) ([]byte, error) {
	args := m.Called(activities)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
func (m *MockExportService) ReportWorkbook(report domain.ActivityReport) ([]byte, error) {
	args := m.Called(report)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

var _ portssvc.ExportService = (*MockExportService)(nil)

// --- Mock TokenService ---
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}
func (m *MockTokenService) ParseAccessToken(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

var _ portssvc.TokenSvcFacade = (*MockTokenService)(nil)

// --- Mock PasswordResetService ---
type MockPasswordResetService struct {
	mock.Mock
}

func (m *MockPasswordResetService) RequestPasswordReset(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}
func (m *MockPasswordResetService) ResetPassword(ctx context.Context, token, newPassword string) error {
	return m.Called(ctx, token, newPassword).Error(0)
}

var _ portssvc.PasswordResetSvc = (*MockPasswordResetService)(nil)

// --- Mock CompanyDirectory ---
type MockCompanyDirectory struct {
	mock.Mock
}

func (m *MockCompanyDirectory) ListCompanies(ctx context.Context) ([]map[string]any, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]map[string]any), args.Error(1)
}

var _ gateways.CompanyDirectory = (*MockCompanyDirectory)(nil)

// --- Mock RealtimeServer ---
type MockRealtimeServer struct {
	mock.Mock
}

func (m *MockRealtimeServer) Serve(w http.ResponseWriter, r *http.Request, workspaceID string) error {
	return m.Called(w, r, workspaceID).Error(0)
}

var _ handlers.RealtimeServer = (*MockRealtimeServer)(nil)

// --- Mock ProjectService ---
type MockProjectService struct {
	mock.Mock
}

func (m *MockProjectService) ListProjects(ctx context.Context, workspaceID, userID string) ([]domain.Project, error) {
	args := m.Called(ctx, workspaceID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Project), args.Error(1)
}
func (m *MockProjectService) GetProject(ctx context.Context, projectID, userID string) (*domain.Project, error) {
	args := m.Called(ctx, projectID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}
func (m *MockProjectService) CreateProject(ctx context.Context, workspaceID string, req dto.CreateProjectRequest, userID string) (*domain.Project, error) {
	args := m.Called(ctx, workspaceID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}
func (m *MockProjectService) UpdateProject(ctx context.Context, projectID string, req dto.UpdateProjectRequest, userID string) (*domain.Project, error) {
	args := m.Called(ctx, projectID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}
func (m *MockProjectService) DeleteProject(ctx context.Context, projectID, userID string) error {
	return m.Called(ctx, projectID, userID).Error(0)
}
func (m *MockProjectService) CreateTaskList(ctx context.Context, projectID string, req dto.CreateTaskListRequest, userID string) (*domain.TaskList, error) {
	args := m.Called(ctx, projectID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaskList), args.Error(1)
}
func (m *MockProjectService) UpdateTaskList(ctx context.Context, taskListID string, req dto.UpdateTaskListRequest, userID string) (*domain.TaskList, error) {
	args := m.Called(ctx, taskListID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaskList), args.Error(1)
}
func (m *MockProjectService) DeleteTaskList(ctx context.Context, taskListID, userID string) error {
	return m.Called(ctx, taskListID, userID).Error(0)
}

var _ portssvc.ProjectSvcFacade = (*MockProjectService)(nil)

// --- Mock TaskService ---
type MockTaskService struct {
	mock.Mock
}

func (m *MockTaskService) tasks(args mock.Arguments) ([]domain.Task, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Task), args.Error(1)
}
func (m *MockTaskService) task(args mock.Arguments) (*domain.Task, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}
func (m *MockTaskService) ListTasks(ctx context.Context, workspaceID string, params dto.ListTasksParams, userID string) ([]domain.Task, error) {
	return m.tasks(m.Called(ctx, workspaceID, params, userID))
}
func (m *MockTaskService) MyTasks(ctx context.Context, userID string, status *domain.TaskStatus) ([]domain.Task, error) {
	return m.tasks(m.Called(ctx, userID, status))
}
func (m *MockTaskService) GetTask(ctx context.Context, taskID, userID string) (*domain.Task, error) {
	return m.task(m.Called(ctx, taskID, userID))
}
func (m *MockTaskService) ListSubtasks(ctx context.Context, taskID, userID string) ([]domain.Task, error) {
	return m.tasks(m.Called(ctx, taskID, userID))
}
func (m *MockTaskService) ListTaskActivity(ctx context.Context, taskID, userID string) ([]domain.TaskActivity, error) {
	args := m.Called(ctx, taskID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TaskActivity), args.Error(1)
}
func (m *MockTaskService) CreateTask(ctx context.Context, req dto.CreateTaskRequest, userID string) (*domain.Task, error) {
	return m.task(m.Called(ctx, req, userID))
}
func (m *MockTaskService) UpdateTask(ctx context.Context, taskID string, req dto.UpdateTaskRequest, userID string) (*domain.Task, error) {
	return m.task(m.Called(ctx, taskID, req, userID))
}
func (m *MockTaskService) DeleteTask(ctx context.Context, taskID, userID string) error {
	return m.Called(ctx, taskID, userID).Error(0)
}
func (m *MockTaskService) AddComment(ctx context.Context, taskID string, req dto.CreateCommentRequest, userID string) (*domain.Comment, error) {
	args := m.Called(ctx, taskID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}
func (m *MockTaskService) ListComments(ctx context.Context, taskID, userID string) ([]domain.Comment, error) {
	args := m.Called(ctx, taskID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Comment), args.Error(1)
}
func (m *MockTaskService) UpdateComment(ctx context.Context, taskID, commentID string, req dto.UpdateCommentRequest, userID string) (*domain.Comment, error) {
	args := m.Called(ctx, taskID, commentID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Comment), args.Error(1)
}
func (m *MockTaskService) DeleteComment(ctx context.Context, taskID, commentID, userID string) error {
	return m.Called(ctx, taskID, commentID, userID).Error(0)
}
func (m *MockTaskService) AddTaskAttachment(ctx context.Context, taskID string, upload domain.Upload, userID string) (*domain.TaskAttachment, error) {
	args := m.Called(ctx, taskID, upload, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaskAttachment), args.Error(1)
}
func (m *MockTaskService) ListTaskAttachments(ctx context.Context, taskID, userID string) ([]domain.TaskAttachment, error) {
	args := m.Called(ctx, taskID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TaskAttachment), args.Error(1)
}
func (m *MockTaskService) DeleteTaskAttachment(ctx context.Context, taskID, attachmentID, userID string) error {
	return m.Called(ctx, taskID, attachmentID, userID).Error(0)
}

var _ portssvc.TaskSvcFacade = (*MockTaskService)(nil)

// --- Mock TaskAnalyticsService ---
type MockTaskAnalyticsService struct {
	mock.Mock
}

func (m *MockTaskAnalyticsService) TaskOverview(ctx context.Context, workspaceID, userID string) (*domain.TaskOverview, error) {
	args := m.Called(ctx, workspaceID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaskOverview), args.Error(1)
}
func (m *MockTaskAnalyticsService) ProjectAnalytics(ctx context.Context, projectID, userID string) (*domain.ProjectProgress, error) {
	args := m.Called(ctx, projectID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProjectProgress), args.Error(1)
}
func (m *MockTaskAnalyticsService) UserProductivity(ctx context.Context, workspaceID string, limit int, userID string) ([]domain.UserProductivity, error) {
	args := m.Called(ctx, workspaceID, limit, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserProductivity), args.Error(1)
}
func (m *MockTaskAnalyticsService) ExecutiveDashboard(ctx context.Context, userID string) (*domain.ExecutiveDashboard, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExecutiveDashboard), args.Error(1)
}

var _ portssvc.TaskAnalyticsSvc = (*MockTaskAnalyticsService)(nil)
