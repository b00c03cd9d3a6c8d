package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	UserRepo          UserRepositoryWithTx
	WorkspaceRepo     WorkspaceRepositoryWithTx
	TaskCategoryRepo  TaskCategoryRepositoryFacade
	FieldActivityRepo FieldActivityRepositoryWithTx
	MeetingMinuteRepo MeetingMinuteRepositoryWithTx
	ProjectRepo       ProjectRepositoryWithTx
	TaskRepo          TaskRepositoryWithTx
	ReportingRepo     ReportingRepository
}
