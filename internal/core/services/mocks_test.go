package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"

	"github.com/flowhive/flowhive_backend/internal/core/domain"
	"github.com/flowhive/flowhive_backend/internal/dto"
)

// --- Transaction manager shared by the *WithTx mocks ---
type mockTx struct{}

func (mockTx) Begin(ctx context.Context) (pgx.Tx, error)     { return nil, nil }
func (mockTx) Commit(ctx context.Context, tx pgx.Tx) error   { return nil }
func (mockTx) Rollback(ctx context.Context, tx pgx.Tx) error { return nil }

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
	mockTx
}

func userResult(args mock.Arguments) (*domain.User, error) {
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return userResult(m.Called(ctx, userID))
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return userResult(m.Called(ctx, email))
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return userResult(m.Called(ctx, username))
}

func (m *MockUserRepository) FindUserByLogin(ctx context.Context, login string) (*domain.User, error) {
	return userResult(m.Called(ctx, login))
}

func (m *MockUserRepository) FindUserByResetTokenHash(ctx context.Context, tokenHash string) (*domain.User, error) {
	return userResult(m.Called(ctx, tokenHash))
}

func (m *MockUserRepository) FindUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	var users []domain.User
	if args.Get(0) != nil {
		users = args.Get(0).([]domain.User)
	}
	return users, args.Error(1)
}

func (m *MockUserRepository) SearchUsers(ctx context.Context, q string, limit int) ([]domain.User, error) {
	args := m.Called(ctx, q, limit)
	var users []domain.User
	if args.Get(0) != nil {
		users = args.Get(0).([]domain.User)
	}
	return users, args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) SetResetToken(ctx context.Context, userID, tokenHash string, expires time.Time) error {
	return m.Called(ctx, userID, tokenHash, expires).Error(0)
}

func (m *MockUserRepository) ClearResetToken(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockUserRepository) DeleteUser(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

// --- Mock WorkspaceRepository ---
type MockWorkspaceRepository struct {
	mock.Mock
	mockTx
}

func (m *MockWorkspaceRepository) FindWorkspaceByID(ctx context.Context, workspaceID string) (*domain.Workspace, error) {
	args := m.Called(ctx, workspaceID)
	var ws *domain.Workspace
	if args.Get(0) != nil {
		ws = args.Get(0).(*domain.Workspace)
	}
	return ws, args.Error(1)
}

func (m *MockWorkspaceRepository) ListWorkspacesByUserID(ctx context.Context, userID string, limit, offset int) ([]domain.Workspace, error) {
	args := m.Called(ctx, userID, limit, offset)
	var out []domain.Workspace
	if args.Get(0) != nil {
		out = args.Get(0).([]domain.Workspace)
	}
	return out, args.Error(1)
}

func (m *MockWorkspaceRepository) ListAllWorkspaces(ctx context.Context) ([]domain.Workspace, error) {
	args := m.Called(ctx)
	var out []domain.Workspace
	if args.Get(0) != nil {
		out = args.Get(0).([]domain.Workspace)
	}
	return out, args.Error(1)
}

func (m *MockWorkspaceRepository) SaveWorkspace(ctx context.Context, ws domain.Workspace) error {
	return m.Called(ctx, ws).Error(0)
}

func (m *MockWorkspaceRepository) UpdateWorkspace(ctx context.Context, ws domain.Workspace) error {
	return m.Called(ctx, ws).Error(0)
}

func (m *MockWorkspaceRepository) DeleteWorkspace(ctx context.Context, workspaceID string) error {
	return m.Called(ctx, workspaceID).Error(0)
}

func (m *MockWorkspaceRepository) AddMember(ctx context.Context, member domain.WorkspaceMember) error {
	return m.Called(ctx, member).Error(0)
}

func (m *MockWorkspaceRepository) RemoveMember(ctx context.Context, workspaceID, userID string) error {
	return m.Called(ctx, workspaceID, userID).Error(0)
}

func (m *MockWorkspaceRepository) FindMember(ctx context.Context, workspaceID, userID string) (*domain.WorkspaceMember, error) {
	args := m.Called(ctx, workspaceID, userID)
	var member *domain.WorkspaceMember
	if args.Get(0) != nil {
		member = args.Get(0).(*domain.WorkspaceMember)
	}
	return member, args.Error(1)
}

func (m *MockWorkspaceRepository) ListMembers(ctx context.Context, workspaceID string) ([]domain.MemberProfile, error) {
	args := m.Called(ctx, workspaceID)
	var out []domain.MemberProfile
	if args.Get(0) != nil {
		out = args.Get(0).([]domain.MemberProfile)
	}
	return out, args.Error(1)
}

// --- Mock TaskCategoryRepository ---
type MockTaskCategoryRepository struct {
	mock.Mock
}

func (m *MockTaskCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.TaskCategory, error) {
	args := m.Called(ctx, categoryID)
	var c *domain.TaskCategory
	if args.Get(0) != nil {
		c = args.Get(0).(*domain.TaskCategory)
	}
	return c, args.Error(1)
}

func (m *MockTaskCategoryRepository) ListCategories(ctx context.Context, workspaceID string, includeInactive bool) ([]domain.TaskCategory, error) {
	args := m.Called(ctx, workspaceID, includeInactive)
	var out []domain.TaskCategory
	if args.Get(0) != nil {
		out = args.Get(0).([]domain.TaskCategory)
	}
	return out, args.Error(1)
}

func (m *MockTaskCategoryRepository) SaveCategory(ctx context.Context, c domain.TaskCategory) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockTaskCategoryRepository) UpdateCategory(ctx context.Context, c domain.TaskCategory) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockTaskCategoryRepository) DeleteCategory(ctx context.Context, categoryID string) error {
	return m.Called(ctx, categoryID).Error(0)
}

// --- Mock FieldActivityRepository ---
type MockFieldActivityRepository struct {
	mock.Mock
	mockTx
}

func (m *MockFieldActivityRepository) FindActivityByID(ctx context.Context, activityID string) (*domain.FieldActivity, error) {
	args := m.Called(ctx, activityID)
	var a *domain.FieldActivity
	if args.Get(0) != nil {
		a = args.Get(0).(*domain.FieldActivity)
	}
	return a, args.Error(1)
}

func (m *MockFieldActivityRepository) ListActivities(ctx context.Context, filter domain.FieldActivityFilter) ([]domain.FieldActivity, error) {
	args := m.Called(ctx, filter)
	var out []domain.FieldActivity
	if args.Get(0) != nil {
		out = args.Get(0).([]domain.FieldActivity)
	}
	return out, args.Error(1)
}

func (m *MockFieldActivityRepository) SaveActivity(ctx context.Context, a domain.FieldActivity) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockFieldActivityRepository) UpdateActivity(ctx context.Context, a domain.FieldActivity) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockFieldActivityRepository) DeleteActivity(ctx context.Context, activityID string) ([]domain.FieldActivityPhoto, error) {
	args := m.Called(ctx, activityID)
	var out []domain.FieldActivityPhoto
	if args.Get(0) != nil {
		out = args.Get(0).([]domain.FieldActivityPhoto)
	}
	return out, args.Error(1)
}

func (m *MockFieldActivityRepository) SavePhoto(ctx context.Context, p domain.FieldActivityPhoto) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockFieldActivityRepository) FindPhotoByID(ctx context.Context, activityID, photoID string) (*domain.FieldActivityPhoto, error) {
	args := m.Called(ctx, activityID, photoID)
	var p *domain.FieldActivityPhoto
	if args.Get(0) != nil {
		p = args.Get(0).(*domain.FieldActivityPhoto)
	}
	return p, args.Error(1)
}

func (m *MockFieldActivityRepository) DeletePhoto(ctx context.Context, photoID string) error {
	return m.Called(ctx, photoID).Error(0)
}

// --- Mock MeetingMinuteRepository ---
type MockMeetingMinuteRepository struct {
	mock.Mock
	mockTx
}

func (m *MockMeetingMinuteRepository) FindMinuteByID(ctx context.Context, minuteID string) (*domain.MeetingMinute, error) {
	args := m.Called(ctx, minuteID)
	var out *domain.MeetingMinute
	if args.Get(0) != nil {
		out = args.Get(0).(*domain.MeetingMinute)
	}
	return out, args.Error(1)
}

func (m *MockMeetingMinuteRepository) ListMinutes(ctx context.Context, filter domain.MeetingMinuteFilter) ([]domain.MeetingMinuteSummary, error) {
	args := m.Called(ctx, filter)
	var out []domain.MeetingMinuteSummary
	if args.Get(0) != nil {
		out = args.Get(0).([]domain.MeetingMinuteSummary)
	}
	return out, args.Error(1)
}

func (m *MockMeetingMinuteRepository) SaveMinute(ctx context.Context, minute domain.MeetingMinute) error {
	return m.Called(ctx, minute).Error(0)
}

func (m *MockMeetingMinuteRepository) UpdateMinute(ctx context.Context, minute domain.MeetingMinute) error {
	return m.Called(ctx, minute).Error(0)
}

func (m *MockMeetingMinuteRepository) DeleteMinute(ctx context.Context, minuteID string) ([]domain.MinuteAttachment, error) {
	args := m.Called(ctx, minuteID)
	var out []domain.MinuteAttachment
	if args.Get(0) != nil {
		out = args.Get(0).([]domain.MinuteAttachment)
	}
	return out, args.Error(1)
}

func (m *MockMeetingMinuteRepository) SaveAttachment(ctx context.Context, a domain.MinuteAttachment) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockMeetingMinuteRepository) FindAttachmentByID(ctx context.Context, minuteID, attachmentID string) (*domain.MinuteAttachment, error) {
	args := m.Called(ctx, minuteID, attachmentID)
	var out *domain.MinuteAttachment
	if args.Get(0) != nil {
		out = args.Get(0).(*domain.MinuteAttachment)
	}
	return out, args.Error(1)
}

func (m *MockMeetingMinuteRepository) DeleteAttachment(ctx context.Context, attachmentID string) error {
	return m.Called(ctx, attachmentID).Error(0)
}

func (m *MockMeetingMinuteRepository) SaveActionItem(ctx context.Context, item domain.MinuteActionItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockMeetingMinuteRepository) FindActionItemByID(ctx context.Context, minuteID, itemID string) (*domain.MinuteActionItem, error) {
	args := m.Called(ctx, minuteID, itemID)
	var out *domain.MinuteActionItem
	if args.Get(0) != nil {
		out = args.Get(0).(*domain.MinuteActionItem)
	}
	return out, args.Error(1)
}

func (m *MockMeetingMinuteRepository) UpdateActionItem(ctx context.Context, item domain.MinuteActionItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockMeetingMinuteRepository) DeleteActionItem(ctx context.Context, itemID string) error {
	return m.Called(ctx, itemID).Error(0)
}

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) WorkspaceActivityCounts(ctx context.Context, rng domain.DateRange) ([]domain.WorkspaceActivityCount, error) {
	args := m.Called(ctx, rng)
	var out []domain.WorkspaceActivityCount
	if args.Get(0) != nil {
		out = args.Get(0).([]domain.WorkspaceActivityCount)
	}
	return out, args.Error(1)
}

// --- Gateways ---
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) Send(ctx context.Context, msg domain.EmailMessage) (*domain.SendResult, error) {
	args := m.Called(ctx, msg)
	var res *domain.SendResult
	if args.Get(0) != nil {
		res = args.Get(0).(*domain.SendResult)
	}
	return res, args.Error(1)
}

type MockFileStore struct {
	mock.Mock
}

func (m *MockFileStore) Save(ctx context.Context, folder string, upload domain.Upload) (*domain.StoredFile, error) {
	args := m.Called(ctx, folder, upload)
	var out *domain.StoredFile
	if args.Get(0) != nil {
		out = args.Get(0).(*domain.StoredFile)
	}
	return out, args.Error(1)
}

func (m *MockFileStore) Delete(ctx context.Context, publicID string, resourceType domain.ResourceType) error {
	return m.Called(ctx, publicID, resourceType).Error(0)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Publish(ctx context.Context, event domain.RealtimeEvent) error {
	return m.Called(ctx, event).Error(0)
}

// MockAuthorizer stands in for the workspace service's membership check.
type MockAuthorizer struct {
	mock.Mock
}

func (m *MockAuthorizer) AuthorizeUserAction(ctx context.Context, userID, workspaceID string, requiredRole domain.Role) (*domain.User, error) {
	return userResult(m.Called(ctx, userID, workspaceID, requiredRole))
}

// MockReportingService is used by the scheduler tests.
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) BuildReport(ctx context.Context, workspaceID string, rng domain.DateRange) (*domain.ActivityReport, error) {
	args := m.Called(ctx, workspaceID, rng)
	var r *domain.ActivityReport
	if args.Get(0) != nil {
		r = args.Get(0).(*domain.ActivityReport)
	}
	return r, args.Error(1)
}

func (m *MockReportingService) SendBulk(ctx context.Context, report domain.ActivityReport, recipients []string) (*domain.BulkResult, error) {
	args := m.Called(ctx, report, recipients)
	var r *domain.BulkResult
	if args.Get(0) != nil {
		r = args.Get(0).(*domain.BulkResult)
	}
	return r, args.Error(1)
}

func (m *MockReportingService) SendIndividual(ctx context.Context, report domain.ActivityReport) (*domain.IndividualResult, error) {
	args := m.Called(ctx, report)
	var r *domain.IndividualResult
	if args.Get(0) != nil {
		r = args.Get(0).(*domain.IndividualResult)
	}
	return r, args.Error(1)
}

func (m *MockReportingService) SendReport(ctx context.Context, workspaceID string, req dto.SendReportRequest, userID string) (*domain.DistributionResult, error) {
	args := m.Called(ctx, workspaceID, req, userID)
	var r *domain.DistributionResult
	if args.Get(0) != nil {
		r = args.Get(0).(*domain.DistributionResult)
	}
	return r, args.Error(1)
}

func (m *MockReportingService) PreviewReport(ctx context.Context, workspaceID string, rng domain.DateRange, userID string) (string, error) {
	args := m.Called(ctx, workspaceID, rng, userID)
	return args.String(0), args.Error(1)
}

func (m *MockReportingService) ExportReport(ctx context.Context, workspaceID string, rng domain.DateRange, userID string) ([]byte, error) {
	args := m.Called(ctx, workspaceID, rng, userID)
	var b []byte
	if args.Get(0) != nil {
		b = args.Get(0).([]byte)
	}
	return b, args.Error(1)
}

// --- Mock ProjectRepository ---
type MockProjectRepository struct {
	mock.Mock
	mockTx
}

func (m *MockProjectRepository) FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error) {
	args := m.Called(ctx, projectID)
	var p *domain.Project
	if args.Get(0) != nil {
		p = args.Get(0).(*domain.Project)
	}
	return p, args.Error(1)
}

func (m *MockProjectRepository) ListProjects(ctx context.Context, workspaceID string) ([]domain.Project, error) {
	args := m.Called(ctx, workspaceID)
	var out []domain.Project
	if args.Get(0) != nil {
		out = args.Get(0).([]domain.Project)
	}
	return out, args.Error(1)
}

func (m *MockProjectRepository) FindTaskListByID(ctx context.Context, taskListID string) (*domain.TaskList, error) {
	args := m.Called(ctx, taskListID)
	var l *domain.TaskList
	if args.Get(0) != nil {
		l = args.Get(0).(*domain.TaskList)
	}
	return l, args.Error(1)
}

func (m *MockProjectRepository) ListTaskLists(ctx context.Context, projectID string) ([]domain.TaskList, error) {
	args := m.Called(ctx, projectID)
	var out []domain.TaskList
	if args.Get(0) != nil {
		out = args.Get(0).([]domain.TaskList)
	}
	return out, args.Error(1)
}

func (m *MockProjectRepository) SaveProject(ctx context.Context, p domain.Project) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockProjectRepository) UpdateProject(ctx context.Context, p domain.Project) error {
	return m.Called(ctx, p).Error(0)
}

func taskAttachmentsResult(args mock.Arguments) ([]domain.TaskAttachment, error) {
	var out []domain.TaskAttachment
	if args.Get(0) != nil {
		out = args.Get(0).([]domain.TaskAttachment)
	}
	return out, args.Error(1)
}

func (m *MockProjectRepository) DeleteProject(ctx context.Context, projectID string) ([]domain.TaskAttachment, error) {
	return taskAttachmentsResult(m.Called(ctx, projectID))
}

func (m *MockProjectRepository) SaveTaskList(ctx context.Context, l domain.TaskList) error {
	return m.Called(ctx, l).Error(0)
}

func (m *MockProjectRepository) UpdateTaskList(ctx context.Context, l domain.TaskList) error {
	return m.Called(ctx, l).Error(0)
}

func (m *MockProjectRepository) DeleteTaskList(ctx context.Context, taskListID string) ([]domain.TaskAttachment, error) {
	return taskAttachmentsResult(m.Called(ctx, taskListID))
}

// --- Mock TaskRepository ---
type MockTaskRepository struct {
	mock.Mock
	mockTx
}

func taskResult(args mock.Arguments) (*domain.Task, error) {
	var t *domain.Task
	if args.Get(0) != nil {
		t = args.Get(0).(*domain.Task)
	}
	return t, args.Error(1)
}

func tasksResult(args mock.Arguments) ([]domain.Task, error) {
	var out []domain.Task
	if args.Get(0) != nil {
		out = args.Get(0).([]domain.Task)
	}
	return out, args.Error(1)
}

func (m *MockTaskRepository) FindTaskByID(ctx context.Context, taskID string) (*domain.Task, error) {
	return taskResult(m.Called(ctx, taskID))
}

func (m *MockTaskRepository) ListTasks(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error) {
	return tasksResult(m.Called(ctx, filter))
}

func (m *MockTaskRepository) ListAssignedTasks(ctx context.Context, userID string, status *domain.TaskStatus) ([]domain.Task, error) {
	return tasksResult(m.Called(ctx, userID, status))
}

func (m *MockTaskRepository) SaveTask(ctx context.Context, t domain.Task) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockTaskRepository) UpdateTask(ctx context.Context, t domain.Task) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockTaskRepository) DeleteTask(ctx context.Context, taskID string) ([]domain.TaskAttachment, error) {
	return taskAttachmentsResult(m.Called(ctx, taskID))
}

func (m *MockTaskRepository) SaveTaskActivity(ctx context.Context, entry domain.TaskActivity) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockTaskRepository) ListTaskActivity(ctx context.Context, taskID string) ([]domain.TaskActivity, error) {
	args := m.Called(ctx, taskID)
	var out []domain.TaskActivity
	if args.Get(0) != nil {
		out = args.Get(0).([]domain.TaskActivity)
	}
	return out, args.Error(1)
}

func (m *MockTaskRepository) SaveComment(ctx context.Context, c domain.Comment) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockTaskRepository) FindCommentByID(ctx context.Context, commentID string) (*domain.Comment, error) {
	args := m.Called(ctx, commentID)
	var c *domain.Comment
	if args.Get(0) != nil {
		c = args.Get(0).(*domain.Comment)
	}
	return c, args.Error(1)
}

func (m *MockTaskRepository) ListComments(ctx context.Context, taskID string) ([]domain.Comment, error) {
	args := m.Called(ctx, taskID)
	var out []domain.Comment
	if args.Get(0) != nil {
		out = args.Get(0).([]domain.Comment)
	}
	return out, args.Error(1)
}

func (m *MockTaskRepository) UpdateComment(ctx context.Context, c domain.Comment) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockTaskRepository) DeleteComment(ctx context.Context, commentID string) error {
	return m.Called(ctx, commentID).Error(0)
}

func (m *MockTaskRepository) SaveTaskAttachment(ctx context.Context, a domain.TaskAttachment) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockTaskRepository) FindTaskAttachmentByID(ctx context.Context, attachmentID string) (*domain.TaskAttachment, error) {
	args := m.Called(ctx, attachmentID)
	var a *domain.TaskAttachment
	if args.Get(0) != nil {
		a = args.Get(0).(*domain.TaskAttachment)
	}
	return a, args.Error(1)
}

func (m *MockTaskRepository) ListTaskAttachments(ctx context.Context, taskID string) ([]domain.TaskAttachment, error) {
	return taskAttachmentsResult(m.Called(ctx, taskID))
}

func (m *MockTaskRepository) DeleteTaskAttachment(ctx context.Context, attachmentID string) error {
	return m.Called(ctx, attachmentID).Error(0)
}
