//go:build integration

package pgsql

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	postgrescontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/flowhive/flowhive_backend/internal/apperrors"
	"github.com/flowhive/flowhive_backend/internal/core/domain"
	portsrepo "github.com/flowhive/flowhive_backend/internal/core/ports/repositories"
	"github.com/flowhive/flowhive_backend/pkg/database"
)

func startDatabase(t *testing.T) portsrepo.RepositoryProvider {
	t.Helper()
	ctx := context.Background()

	pg, err := postgrescontainer.RunContainer(ctx,
		testcontainers.WithImage("postgres:16-alpine"),
		postgrescontainer.WithDatabase("flowhive"),
		postgrescontainer.WithUsername("flowhive"),
		postgrescontainer.WithPassword("flowhive"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pg.Terminate(ctx) })

	connStr, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	require.NoError(t, database.RunMigrations(connStr, "file://../../../../migrations", slog.Default()))

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	return NewRepositoryProvider(pool)
}

func seedUser(t *testing.T, repos portsrepo.RepositoryProvider, username string, role domain.Role) domain.User {
	t.Helper()
	now := time.Now().UTC()
	u := domain.User{
		UserID:     uuid.NewString(),
		Email:      username + "@example.com",
		Username:   username,
		Role:       role,
		IsActive:   true,
		Timestamps: domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}
	require.NoError(t, repos.UserRepo.SaveUser(context.Background(), u))
	return u
}

func clockPtr(t *testing.T, s string) *domain.TimeOfDay {
	t.Helper()
	v, err := domain.ParseTimeOfDay(s)
	require.NoError(t, err)
	return &v
}

func TestRepositories_ActivityVisibilityAndPaging(t *testing.T) {
	ctx := context.Background()
	repos := startDatabase(t)

	owner := seedUser(t, repos, "owner", domain.RoleManager)
	member := seedUser(t, repos, "member", domain.RoleTeamMember)

	dup := owner
	dup.UserID = uuid.NewString()
	err := repos.UserRepo.SaveUser(ctx, dup)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	now := time.Now().UTC()
	ws := domain.Workspace{
		WorkspaceID:   uuid.NewString(),
		Name:          "Field Ops",
		OwnerID:       owner.UserID,
		WorkspaceType: domain.WorkspaceFieldOperations,
		Timestamps:    domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}
	require.NoError(t, repos.WorkspaceRepo.SaveWorkspace(ctx, ws))
	require.NoError(t, repos.WorkspaceRepo.AddMember(ctx, domain.WorkspaceMember{WorkspaceID: ws.WorkspaceID, UserID: member.UserID, JoinedAt: now}))

	members, err := repos.WorkspaceRepo.ListMembers(ctx, ws.WorkspaceID)
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, owner.UserID, members[0].UserID)

	restricted := domain.TaskCategory{
		CategoryID:   uuid.NewString(),
		WorkspaceID:  ws.WorkspaceID,
		Name:         "audit",
		Title:        "Audit",
		RequiredRole: domain.RoleManager,
		IsActive:     true,
		CreatedBy:    owner.UserID,
		Timestamps:   domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}
	require.NoError(t, repos.TaskCategoryRepo.SaveCategory(ctx, restricted))

	desc := "Replaced router"
	for i, day := range []int{4, 5, 6} {
		a := domain.FieldActivity{
			ActivityID:      uuid.NewString(),
			WorkspaceID:     ws.WorkspaceID,
			SupportStaffID:  member.UserID,
			ActivityDate:    time.Date(2024, 3, day, 0, 0, 0, 0, time.UTC),
			StartTime:       clockPtr(t, "09:00"),
			EndTime:         clockPtr(t, "11:30"),
			Title:           "Visit",
			CustomerName:    "Acme",
			LocationType:    domain.LocationOnSite,
			TaskDescription: &desc,
			Status:          domain.StatusCompleted,
			CreatedBy:       owner.UserID,
			Timestamps:      domain.Timestamps{CreatedAt: now, UpdatedAt: now},
		}
		if i == 2 {
			a.TaskCategoryID = &restricted.CategoryID
		}
		require.NoError(t, repos.FieldActivityRepo.SaveActivity(ctx, a))
	}

	all, err := repos.FieldActivityRepo.ListActivities(ctx, domain.FieldActivityFilter{WorkspaceID: ws.WorkspaceID})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, 6, all[0].ActivityDate.Day())
	require.NotNil(t, all[0].TaskCategory)
	assert.Equal(t, 2.5, all[0].DurationHours())
	require.NotNil(t, all[0].SupportStaff)
	assert.Equal(t, "member", all[0].SupportStaff.Username)

	visible, err := repos.FieldActivityRepo.ListActivities(ctx, domain.FieldActivityFilter{
		WorkspaceID:  ws.WorkspaceID,
		VisibleRoles: domain.RolesVisibleTo(domain.RoleTeamMember),
	})
	require.NoError(t, err)
	assert.Len(t, visible, 2)

	firstPage, err := repos.FieldActivityRepo.ListActivities(ctx, domain.FieldActivityFilter{WorkspaceID: ws.WorkspaceID, Limit: 2})
	require.NoError(t, err)
	require.Len(t, firstPage, 2)
	cursor := domain.CursorFor(firstPage[1])
	secondPage, err := repos.FieldActivityRepo.ListActivities(ctx, domain.FieldActivityFilter{WorkspaceID: ws.WorkspaceID, Limit: 2, After: &cursor})
	require.NoError(t, err)
	require.Len(t, secondPage, 1)
	assert.Equal(t, 4, secondPage[0].ActivityDate.Day())

	require.NoError(t, repos.TaskCategoryRepo.DeleteCategory(ctx, restricted.CategoryID))
	stored, err := repos.TaskCategoryRepo.FindCategoryByID(ctx, restricted.CategoryID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)
	active, err := repos.TaskCategoryRepo.ListCategories(ctx, ws.WorkspaceID, false)
	require.NoError(t, err)
	assert.Empty(t, active)

	counts, err := repos.ReportingRepo.WorkspaceActivityCounts(ctx, domain.DateRange{
		From: time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, counts, 1)
	assert.Equal(t, 3, counts[0].ActivityCount)

	photos, err := repos.FieldActivityRepo.DeleteActivity(ctx, all[0].ActivityID)
	require.NoError(t, err)
	assert.Empty(t, photos)
	_, err = repos.FieldActivityRepo.FindActivityByID(ctx, all[0].ActivityID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestRepositories_MeetingMinutes(t *testing.T) {
	ctx := context.Background()
	repos := startDatabase(t)
	owner := seedUser(t, repos, "chair", domain.RoleExecutive)
	now := time.Now().UTC()

	ws := domain.Workspace{
		WorkspaceID:   uuid.NewString(),
		Name:          "Board",
		OwnerID:       owner.UserID,
		WorkspaceType: domain.WorkspaceProjectManagement,
		Timestamps:    domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}
	require.NoError(t, repos.WorkspaceRepo.SaveWorkspace(ctx, ws))

	minuteID := uuid.NewString()
	minute := domain.MeetingMinute{
		MinuteID:    minuteID,
		WorkspaceID: ws.WorkspaceID,
		Title:       "Weekly sync",
		MeetingDate: time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC),
		Attendees:   []domain.Attendee{{ID: &owner.UserID, Name: "Chair"}, {Name: "Guest"}},
		CreatedBy:   owner.UserID,
		Timestamps:  domain.Timestamps{CreatedAt: now, UpdatedAt: now},
		ActionItems: []domain.MinuteActionItem{{
			ItemID:          uuid.NewString(),
			MeetingMinuteID: minuteID,
			Description:     "Send quote",
			Status:          domain.ActionPending,
			CreatedAt:       now,
		}},
	}
	require.NoError(t, repos.MeetingMinuteRepo.SaveMinute(ctx, minute))

	stored, err := repos.MeetingMinuteRepo.FindMinuteByID(ctx, minuteID)
	require.NoError(t, err)
	assert.Len(t, stored.Attendees, 2)
	assert.Len(t, stored.ActionItems, 1)
	require.NotNil(t, stored.Creator)
	assert.Equal(t, "chair", stored.Creator.Username)

	summaries, err := repos.MeetingMinuteRepo.ListMinutes(ctx, domain.MeetingMinuteFilter{WorkspaceID: ws.WorkspaceID})
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, 1, summaries[0].ActionItemCount)
	assert.Equal(t, 0, summaries[0].AttachmentCount)

	_, err = repos.MeetingMinuteRepo.DeleteMinute(ctx, minuteID)
	require.NoError(t, err)
	_, err = repos.MeetingMinuteRepo.FindActionItemByID(ctx, minuteID, minute.ActionItems[0].ItemID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestRepositories_ProjectsAndTasks(t *testing.T) {
	ctx := context.Background()
	repos := startDatabase(t)
	owner := seedUser(t, repos, "planner", domain.RoleManager)
	now := time.Now().UTC().Truncate(time.Microsecond)
	stamps := domain.Timestamps{CreatedAt: now, UpdatedAt: now}

	ws := domain.Workspace{
		WorkspaceID:   uuid.NewString(),
		Name:          "Launch",
		OwnerID:       owner.UserID,
		WorkspaceType: domain.WorkspaceProjectManagement,
		Timestamps:    stamps,
	}
	require.NoError(t, repos.WorkspaceRepo.SaveWorkspace(ctx, ws))

	project := domain.Project{ProjectID: uuid.NewString(), WorkspaceID: ws.WorkspaceID, Name: "Website", CreatedBy: owner.UserID, Timestamps: stamps}
	require.NoError(t, repos.ProjectRepo.SaveProject(ctx, project))
	list := domain.TaskList{TaskListID: uuid.NewString(), ProjectID: project.ProjectID, Name: "Backlog", Timestamps: stamps}
	require.NoError(t, repos.ProjectRepo.SaveTaskList(ctx, list))

	newTask := func(title string, parent *string) domain.Task {
		task := domain.Task{
			TaskID:       uuid.NewString(),
			TaskListID:   list.TaskListID,
			ParentTaskID: parent,
			CreatorID:    owner.UserID,
			AssigneeID:   &owner.UserID,
			Title:        title,
			Status:       domain.TaskTodo,
			Priority:     domain.PriorityMedium,
			Timestamps:   stamps,
		}
		require.NoError(t, repos.TaskRepo.SaveTask(ctx, task))
		return task
	}
	parent := newTask("Launch page", nil)
	child := newTask("Hero copy", &parent.TaskID)
	other := newTask("Analytics", nil)

	stored, err := repos.TaskRepo.FindTaskByID(ctx, child.TaskID)
	require.NoError(t, err)
	assert.Equal(t, project.ProjectID, stored.ProjectID)
	assert.Equal(t, ws.WorkspaceID, stored.WorkspaceID)
	require.NotNil(t, stored.Creator)
	assert.Equal(t, "planner", stored.Creator.Username)

	subtasks, err := repos.TaskRepo.ListTasks(ctx, domain.TaskFilter{WorkspaceID: ws.WorkspaceID, ParentTaskID: &parent.TaskID})
	require.NoError(t, err)
	require.Len(t, subtasks, 1)
	assert.Equal(t, child.TaskID, subtasks[0].TaskID)

	require.NoError(t, repos.TaskRepo.SaveTaskActivity(ctx, domain.TaskActivity{
		LogID: uuid.NewString(), TaskID: parent.TaskID, UserID: owner.UserID,
		Action: domain.TaskActionCreated, Details: map[string]any{"title": parent.Title}, CreatedAt: now,
	}))
	history, err := repos.TaskRepo.ListTaskActivity(ctx, parent.TaskID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "Launch page", history[0].Details["title"])

	attach := func(taskID, publicID string) {
		require.NoError(t, repos.TaskRepo.SaveTaskAttachment(ctx, domain.TaskAttachment{
			AttachmentID: uuid.NewString(), TaskID: taskID, StoragePublicID: publicID, URL: "/uploads/" + publicID,
			ResourceType: domain.ResourceRaw, FileName: publicID + ".txt", FileSize: 3, MimeType: "text/plain",
			UploadedBy: owner.UserID, UploadedAt: now,
		}))
	}
	attach(parent.TaskID, "parent-file")
	attach(child.TaskID, "child-file")
	attach(other.TaskID, "other-file")

	removed, err := repos.TaskRepo.DeleteTask(ctx, parent.TaskID)
	require.NoError(t, err)
	ids := []string{}
	for _, a := range removed {
		ids = append(ids, a.StoragePublicID)
	}
	assert.ElementsMatch(t, []string{"parent-file", "child-file"}, ids)
	_, err = repos.TaskRepo.FindTaskByID(ctx, child.TaskID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	removed, err = repos.ProjectRepo.DeleteProject(ctx, project.ProjectID)
	require.NoError(t, err)
	require.Len(t, removed, 1)
	assert.Equal(t, "other-file", removed[0].StoragePublicID)
	_, err = repos.ProjectRepo.FindTaskListByID(ctx, list.TaskListID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
