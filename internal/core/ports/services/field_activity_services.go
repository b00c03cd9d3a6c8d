package services

import (
	"context"

	"github.com/flowhive/flowhive_backend/internal/core/domain"
	"github.com/flowhive/flowhive_backend/internal/dto"
)

// FieldActivityReaderSvc defines read operations for field activities
type FieldActivityReaderSvc interface {
	// ListActivities returns a page of activities visible to the user and the next page token, if any.
	ListActivities(ctx context.Context, workspaceID string, params dto.ListFieldActivitiesParams, userID string) ([]domain.FieldActivity, *string, error)

	// GetActivity returns one activity with photos. ErrForbidden when its category is hidden from the user.
	GetActivity(ctx context.Context, activityID, userID string) (*domain.FieldActivity, error)

	// ListActivitiesInRange returns every visible activity in rng, oldest first. Used by exports.
	ListActivitiesInRange(ctx context.Context, workspaceID string, rng domain.DateRange, userID string) ([]domain.FieldActivity, error)
}

// FieldActivityWriterSvc defines write operations for field activities
type FieldActivityWriterSvc interface {
	CreateActivity(ctx context.Context, workspaceID string, req dto.CreateFieldActivityRequest, userID string) (*domain.FieldActivity, error)
	UpdateActivity(ctx context.Context, activityID string, req dto.UpdateFieldActivityRequest, userID string) (*domain.FieldActivity, error)
	DeleteActivity(ctx context.Context, activityID, userID string) error
}

// FieldActivityPhotoSvc defines operations on activity photos
type FieldActivityPhotoSvc interface {
	AddPhoto(ctx context.Context, activityID string, upload domain.Upload, userID string) (*domain.FieldActivityPhoto, error)
	DeletePhoto(ctx context.Context, activityID, photoID, userID string) error
}

// FieldActivitySvcFacade combines all field activity service interfaces
type FieldActivitySvcFacade interface {
	FieldActivityReaderSvc
	FieldActivityWriterSvc
	FieldActivityPhotoSvc
}
