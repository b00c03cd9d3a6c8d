package repositories

import (
	"context"

	"github.com/flowhive/flowhive_backend/internal/core/domain"
)

// FieldActivityReader defines read operations for field activities
type FieldActivityReader interface {
	// FindActivityByID retrieves an activity with its staff, category and photos loaded.
	FindActivityByID(ctx context.Context, activityID string) (*domain.FieldActivity, error)

	// ListActivities returns activities matching the filter with staff and category loaded.
	ListActivities(ctx context.Context, filter domain.FieldActivityFilter) ([]domain.FieldActivity, error)
}

// FieldActivityWriter defines write operations for field activities
type FieldActivityWriter interface {
	SaveActivity(ctx context.Context, activity domain.FieldActivity) error
	UpdateActivity(ctx context.Context, activity domain.FieldActivity) error

	// DeleteActivity removes the activity and its photo rows, returning the removed photos.
	DeleteActivity(ctx context.Context, activityID string) ([]domain.FieldActivityPhoto, error)
}

// FieldActivityPhotoManager defines operations on activity photos
type FieldActivityPhotoManager interface {
	SavePhoto(ctx context.Context, photo domain.FieldActivityPhoto) error
	FindPhotoByID(ctx context.Context, activityID, photoID string) (*domain.FieldActivityPhoto, error)
	DeletePhoto(ctx context.Context, photoID string) error
}

// FieldActivityRepositoryFacade combines all field activity repository interfaces
type FieldActivityRepositoryFacade interface {
	FieldActivityReader
	FieldActivityWriter
	FieldActivityPhotoManager
}

// FieldActivityRepositoryWithTx extends FieldActivityRepositoryFacade with transaction capabilities
type FieldActivityRepositoryWithTx interface {
	FieldActivityRepositoryFacade
	TransactionManager
}
