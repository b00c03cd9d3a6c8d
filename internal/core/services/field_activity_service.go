package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/flowhive/flowhive_backend/internal/apperrors"
	"github.com/flowhive/flowhive_backend/internal/core/domain"
	"github.com/flowhive/flowhive_backend/internal/core/ports/gateways"
	portsrepo "github.com/flowhive/flowhive_backend/internal/core/ports/repositories"
	portssvc "github.com/flowhive/flowhive_backend/internal/core/ports/services"
	"github.com/flowhive/flowhive_backend/internal/dto"
	"github.com/flowhive/flowhive_backend/internal/utils"
	"github.com/flowhive/flowhive_backend/internal/utils/pagination"
)

const photoFolder = "field_photos"

// fieldActivityService implements the FieldActivitySvcFacade interface
type fieldActivityService struct {
	BaseService
	activityRepo  portsrepo.FieldActivityRepositoryWithTx
	categoryRepo  portsrepo.TaskCategoryReader
	memberRepo    portsrepo.WorkspaceMembershipManager
	photoStore    gateways.FileStore
	notifier      gateways.WorkspaceNotifier
	maxPhotoBytes int64
	now           func() time.Time
}

// FieldActivityOption is a functional option for configuring the field activity service
type FieldActivityOption func(*fieldActivityService)

// WithActivityAuthorizer adds the workspace authorizer dependency
func WithActivityAuthorizer(authorizer portssvc.WorkspaceAuthorizerSvc) FieldActivityOption {
	return func(s *fieldActivityService) {
		s.WorkspaceAuthorizer = authorizer
	}
}

// WithActivityNotifier publishes realtime events after mutations
func WithActivityNotifier(notifier gateways.WorkspaceNotifier) FieldActivityOption {
	return func(s *fieldActivityService) {
		s.notifier = notifier
	}
}

// WithPhotoStore sets where activity photos are written
func WithPhotoStore(store gateways.FileStore, maxBytes int64) FieldActivityOption {
	return func(s *fieldActivityService) {
		s.photoStore = store
		s.maxPhotoBytes = maxBytes
	}
}

// NewFieldActivityService creates a new field activity service with the provided options
func NewFieldActivityService(
	activityRepo portsrepo.FieldActivityRepositoryWithTx,
	categoryRepo portsrepo.TaskCategoryReader,
	memberRepo portsrepo.WorkspaceMembershipManager,
	options ...FieldActivityOption,
) portssvc.FieldActivitySvcFacade {
	svc := &fieldActivityService{
		activityRepo: activityRepo,
		categoryRepo: categoryRepo,
		memberRepo:   memberRepo,
		now:          time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.FieldActivitySvcFacade = (*fieldActivityService)(nil)

func (s *fieldActivityService) notify(ctx context.Context, eventType, workspaceID string, data any) {
	if s.notifier == nil {
		return
	}
	event := domain.RealtimeEvent{Type: eventType, WorkspaceID: workspaceID, Data: data}
	if err := s.notifier.Publish(ctx, event); err != nil {
		s.LogError(ctx, err, "Failed to publish realtime event",
			slog.String("event", eventType), slog.String("workspace_id", workspaceID))
	}
}

func (s *fieldActivityService) findActivity(ctx context.Context, activityID string) (*domain.FieldActivity, error) {
	activity, err := s.activityRepo.FindActivityByID(ctx, activityID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Field activity not found")
		}
		s.LogError(ctx, err, "Failed to find field activity", slog.String("activity_id", activityID))
		return nil, err
	}
	return activity, nil
}

// loadVisible fetches an activity, authorizes the caller against its workspace and applies the
// category role gate.
func (s *fieldActivityService) loadVisible(ctx context.Context, activityID, userID string) (*domain.FieldActivity, *domain.User, error) {
	activity, err := s.findActivity(ctx, activityID)
	if err != nil {
		return nil, nil, err
	}
	user, err := s.AuthorizeMember(ctx, userID, activity.WorkspaceID, domain.RoleTeamMember)
	if err != nil {
		return nil, nil, err
	}
	if !activity.VisibleTo(user.Role) {
		return nil, nil, apperrors.NewForbiddenError("Insufficient permissions to view this activity")
	}
	return activity, user, nil
}

func (s *fieldActivityService) checkCategory(ctx context.Context, workspaceID string, categoryID *string) error {
	if categoryID == nil || *categoryID == "" {
		return nil
	}
	category, err := s.categoryRepo.FindCategoryByID(ctx, *categoryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewValidationFailedError("Invalid task category for this workspace")
		}
		return err
	}
	if category.WorkspaceID != workspaceID || !category.IsActive {
		return apperrors.NewValidationFailedError("Invalid task category for this workspace")
	}
	return nil
}

func (s *fieldActivityService) checkAssignee(ctx context.Context, workspaceID, staffID string) error {
	if _, err := s.memberRepo.FindMember(ctx, workspaceID, staffID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewValidationFailedError("Assigned staff member is not in this workspace")
		}
		return err
	}
	return nil
}

// sanitizeActivity strips markup from plain text fields and cleans the rich text ones.
func sanitizeActivity(a *domain.FieldActivity) {
	a.Title = strings.TrimSpace(utils.StripTags(a.Title))
	a.CustomerName = strings.TrimSpace(utils.StripTags(a.CustomerName))
	a.Location = strings.TrimSpace(utils.StripTags(a.Location))
	a.CustomerRep = cleanOptional(a.CustomerRep)
	a.TaskDescription = utils.SanitizeHTMLPtr(a.TaskDescription)
	a.Remarks = utils.SanitizeHTMLPtr(a.Remarks)
	if a.CustomerID != nil && strings.TrimSpace(*a.CustomerID) == "" {
		a.CustomerID = nil
	}
	if a.TaskCategoryID != nil && *a.TaskCategoryID == "" {
		a.TaskCategoryID = nil
	}
}

func (s *fieldActivityService) CreateActivity(ctx context.Context, workspaceID string, req dto.CreateFieldActivityRequest, userID string) (*domain.FieldActivity, error) {
	user, err := s.AuthorizeMember(ctx, userID, workspaceID, domain.RoleTeamMember)
	if err != nil {
		return nil, err
	}

	activity, err := req.ToDomain()
	if err != nil {
		return nil, err
	}
	if activity.SupportStaffID == "" {
		activity.SupportStaffID = userID
	}
	if activity.SupportStaffID != userID {
		if err := s.checkAssignee(ctx, workspaceID, activity.SupportStaffID); err != nil {
			return nil, err
		}
		if activity.Status == domain.StatusPending && !user.Role.IsElevated() {
			return nil, apperrors.NewForbiddenError("Only managers can assign pending activities to other staff")
		}
	}
	if err := s.checkCategory(ctx, workspaceID, activity.TaskCategoryID); err != nil {
		return nil, err
	}

	sanitizeActivity(&activity)
	now := s.now().UTC()
	activity.ActivityID = uuid.NewString()
	activity.WorkspaceID = workspaceID
	activity.CreatedBy = userID
	activity.Timestamps = domain.Timestamps{CreatedAt: now, UpdatedAt: now}
	if err := activity.Validate(); err != nil {
		return nil, err
	}

	if err := s.activityRepo.SaveActivity(ctx, activity); err != nil {
		s.LogError(ctx, err, "Failed to save field activity", slog.String("workspace_id", workspaceID))
		return nil, err
	}

	saved, err := s.findActivity(ctx, activity.ActivityID)
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Field activity created",
		slog.String("activity_id", saved.ActivityID), slog.String("workspace_id", workspaceID))
	s.notify(ctx, domain.EventFieldActivityCreated, workspaceID, dto.ToFieldActivityResponse(saved))
	return saved, nil
}

func (s *fieldActivityService) ListActivities(ctx context.Context, workspaceID string, params dto.ListFieldActivitiesParams, userID string) ([]domain.FieldActivity, *string, error) {
	user, err := s.AuthorizeMember(ctx, userID, workspaceID, domain.RoleTeamMember)
	if err != nil {
		return nil, nil, err
	}

	filter, err := params.ToFilter(workspaceID)
	if err != nil {
		return nil, nil, err
	}
	if params.PageToken != nil && *params.PageToken != "" {
		cursor, err := pagination.DecodeActivityCursor(*params.PageToken)
		if err != nil {
			return nil, nil, apperrors.NewValidationFailedError("Invalid page_token")
		}
		filter.After = cursor
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	filter.Limit = limit + 1
	filter.Order = domain.OrderNewestFirst
	filter.VisibleRoles = domain.RolesVisibleTo(user.Role)

	activities, err := s.activityRepo.ListActivities(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list field activities", slog.String("workspace_id", workspaceID))
		return nil, nil, err
	}

	var next *string
	if len(activities) > limit {
		activities = activities[:limit]
		token := pagination.EncodeActivityCursor(domain.CursorFor(activities[limit-1]))
		next = &token
	}
	return activities, next, nil
}

func (s *fieldActivityService) GetActivity(ctx context.Context, activityID, userID string) (*domain.FieldActivity, error) {
	activity, _, err := s.loadVisible(ctx, activityID, userID)
	return activity, err
}

func (s *fieldActivityService) ListActivitiesInRange(ctx context.Context, workspaceID string, rng domain.DateRange, userID string) ([]domain.FieldActivity, error) {
	user, err := s.AuthorizeMember(ctx, userID, workspaceID, domain.RoleTeamMember)
	if err != nil {
		return nil, err
	}
	from, to := rng.From, rng.To
	return s.activityRepo.ListActivities(ctx, domain.FieldActivityFilter{
		WorkspaceID:  workspaceID,
		DateFrom:     &from,
		DateTo:       &to,
		VisibleRoles: domain.RolesVisibleTo(user.Role),
		Order:        domain.OrderChronological,
	})
}

func (s *fieldActivityService) UpdateActivity(ctx context.Context, activityID string, req dto.UpdateFieldActivityRequest, userID string) (*domain.FieldActivity, error) {
	activity, user, err := s.loadVisible(ctx, activityID, userID)
	if err != nil {
		return nil, err
	}
	if activity.SupportStaffID != userID && activity.CreatedBy != userID && !user.Role.IsElevated() {
		return nil, apperrors.NewForbiddenError("Only the assignee, the creator or managers can update this activity")
	}

	update, err := req.ToDomain()
	if err != nil {
		return nil, err
	}
	if update.SupportStaffID != nil && *update.SupportStaffID != activity.SupportStaffID {
		if err := s.checkAssignee(ctx, activity.WorkspaceID, *update.SupportStaffID); err != nil {
			return nil, err
		}
	}
	if update.TaskCategoryID != nil {
		if err := s.checkCategory(ctx, activity.WorkspaceID, update.TaskCategoryID); err != nil {
			return nil, err
		}
	}

	merged := update.ApplyTo(*activity)
	sanitizeActivity(&merged)
	merged.UpdatedBy = &userID
	merged.UpdatedAt = s.now().UTC()
	if err := merged.Validate(); err != nil {
		return nil, err
	}

	if err := s.activityRepo.UpdateActivity(ctx, merged); err != nil {
		s.LogError(ctx, err, "Failed to update field activity", slog.String("activity_id", activityID))
		return nil, err
	}

	saved, err := s.findActivity(ctx, activityID)
	if err != nil {
		return nil, err
	}
	s.notify(ctx, domain.EventFieldActivityUpdated, saved.WorkspaceID, dto.ToFieldActivityResponse(saved))
	return saved, nil
}

func (s *fieldActivityService) DeleteActivity(ctx context.Context, activityID, userID string) error {
	activity, user, err := s.loadVisible(ctx, activityID, userID)
	if err != nil {
		return err
	}
	if activity.CreatedBy != userID && !user.Role.IsElevated() {
		return apperrors.NewForbiddenError("Only the creator or managers can delete this activity")
	}

	photos, err := s.activityRepo.DeleteActivity(ctx, activityID)
	if err != nil {
		s.LogError(ctx, err, "Failed to delete field activity", slog.String("activity_id", activityID))
		return err
	}
	for _, p := range photos {
		s.removeStoredPhoto(ctx, p)
	}

	s.LogInfo(ctx, "Field activity deleted",
		slog.String("activity_id", activityID), slog.Int("photos_removed", len(photos)))
	s.notify(ctx, domain.EventFieldActivityDeleted, activity.WorkspaceID, map[string]string{"id": activityID})
	return nil
}

func (s *fieldActivityService) removeStoredPhoto(ctx context.Context, p domain.FieldActivityPhoto) {
	if s.photoStore == nil {
		return
	}
	if err := s.photoStore.Delete(ctx, p.FilePath, domain.ResourceImage); err != nil {
		s.LogError(ctx, err, "Failed to remove stored photo", slog.String("photo_id", p.PhotoID))
	}
}

func (s *fieldActivityService) AddPhoto(ctx context.Context, activityID string, upload domain.Upload, userID string) (*domain.FieldActivityPhoto, error) {
	if _, _, err := s.loadVisible(ctx, activityID, userID); err != nil {
		return nil, err
	}
	if s.photoStore == nil {
		return nil, apperrors.NewInternalServerError("Photo storage is not configured")
	}
	if !domain.AllowedPhotoTypes[upload.ContentType] {
		return nil, apperrors.NewUnsupportedMediaError(
			fmt.Sprintf("File type %s not allowed. Only images are supported.", upload.ContentType))
	}
	if s.maxPhotoBytes > 0 && upload.Size > s.maxPhotoBytes {
		return nil, apperrors.NewTooLargeError(
			fmt.Sprintf("File size exceeds maximum allowed size of %d bytes", s.maxPhotoBytes))
	}

	stored, err := s.photoStore.Save(ctx, photoFolder, upload)
	if err != nil {
		s.LogError(ctx, err, "Failed to store photo", slog.String("activity_id", activityID))
		return nil, err
	}

	photo := domain.FieldActivityPhoto{
		PhotoID:         uuid.NewString(),
		FieldActivityID: activityID,
		FilePath:        stored.URL,
		FileName:        utils.StripTags(upload.FileName),
		FileSize:        stored.Size,
		MimeType:        upload.ContentType,
		UploadedBy:      userID,
		UploadedAt:      s.now().UTC(),
	}
	if err := s.activityRepo.SavePhoto(ctx, photo); err != nil {
		s.removeStoredPhoto(ctx, photo)
		s.LogError(ctx, err, "Failed to save photo record", slog.String("activity_id", activityID))
		return nil, err
	}
	return &photo, nil
}

// DeletePhoto checks membership before looking the photo up; non-members always get 403.
func (s *fieldActivityService) DeletePhoto(ctx context.Context, activityID, photoID, userID string) error {
	if _, _, err := s.loadVisible(ctx, activityID, userID); err != nil {
		return err
	}
	photo, err := s.activityRepo.FindPhotoByID(ctx, activityID, photoID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("Photo not found")
		}
		return err
	}
	if err := s.activityRepo.DeletePhoto(ctx, photoID); err != nil {
		s.LogError(ctx, err, "Failed to delete photo record", slog.String("photo_id", photoID))
		return err
	}
	s.removeStoredPhoto(ctx, *photo)
	return nil
}
