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
)

const minuteAttachmentFolder = "flowhive/minutes"

// meetingMinuteService implements the MeetingMinuteSvcFacade interface
type meetingMinuteService struct {
	BaseService
	minuteRepo   portsrepo.MeetingMinuteRepositoryWithTx
	store        gateways.FileStore
	notifier     gateways.WorkspaceNotifier
	maxFileBytes int64
	now          func() time.Time
}

// MeetingMinuteOption is a functional option for configuring the meeting minute service
type MeetingMinuteOption func(*meetingMinuteService)

// WithMinuteAuthorizer adds the workspace authorizer dependency
func WithMinuteAuthorizer(authorizer portssvc.WorkspaceAuthorizerSvc) MeetingMinuteOption {
	return func(s *meetingMinuteService) {
		s.WorkspaceAuthorizer = authorizer
	}
}

// WithMinuteNotifier publishes realtime events after mutations
func WithMinuteNotifier(notifier gateways.WorkspaceNotifier) MeetingMinuteOption {
	return func(s *meetingMinuteService) {
		s.notifier = notifier
	}
}

// WithAttachmentStore sets where attachments are written
func WithAttachmentStore(store gateways.FileStore, maxBytes int64) MeetingMinuteOption {
	return func(s *meetingMinuteService) {
		s.store = store
		s.maxFileBytes = maxBytes
	}
}

// NewMeetingMinuteService creates a new meeting minute service with the provided options
func NewMeetingMinuteService(minuteRepo portsrepo.MeetingMinuteRepositoryWithTx, options ...MeetingMinuteOption) portssvc.MeetingMinuteSvcFacade {
	svc := &meetingMinuteService{
		minuteRepo: minuteRepo,
		now:        time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.MeetingMinuteSvcFacade = (*meetingMinuteService)(nil)

func (s *meetingMinuteService) notify(ctx context.Context, eventType, workspaceID string, data any) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Publish(ctx, domain.RealtimeEvent{Type: eventType, WorkspaceID: workspaceID, Data: data}); err != nil {
		s.LogError(ctx, err, "Failed to publish realtime event",
			slog.String("event", eventType), slog.String("workspace_id", workspaceID))
	}
}

// loadForMember fetches minutes and checks the caller belongs to their workspace.
func (s *meetingMinuteService) loadForMember(ctx context.Context, minuteID, userID string) (*domain.MeetingMinute, *domain.User, error) {
	minute, err := s.minuteRepo.FindMinuteByID(ctx, minuteID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, apperrors.NewNotFoundError("Meeting minute not found")
		}
		s.LogError(ctx, err, "Failed to find meeting minute", slog.String("minute_id", minuteID))
		return nil, nil, err
	}
	user, err := s.AuthorizeMember(ctx, userID, minute.WorkspaceID, domain.RoleTeamMember)
	if err != nil {
		return nil, nil, err
	}
	return minute, user, nil
}

func sanitizeMinute(m *domain.MeetingMinute) {
	m.Title = utils.StripTags(m.Title)
	m.Location = cleanOptional(m.Location)
	m.Agenda = utils.SanitizeHTMLPtr(m.Agenda)
	m.Discussions = utils.SanitizeHTMLPtr(m.Discussions)
	m.Decisions = utils.SanitizeHTMLPtr(m.Decisions)
	for i := range m.Attendees {
		m.Attendees[i].Name = utils.StripTags(m.Attendees[i].Name)
	}
}

func validateMinute(m domain.MeetingMinute) error {
	if strings.TrimSpace(m.Title) == "" {
		return apperrors.NewValidationFailedError("title is required")
	}
	if m.MeetingDate.IsZero() {
		return apperrors.NewValidationFailedError("meeting_date is required")
	}
	return nil
}

func (s *meetingMinuteService) ListMinutes(ctx context.Context, workspaceID string, params dto.ListMeetingMinutesParams, userID string) ([]domain.MeetingMinuteSummary, error) {
	if _, err := s.AuthorizeMember(ctx, userID, workspaceID, domain.RoleTeamMember); err != nil {
		return nil, err
	}
	filter, err := params.ToFilter(workspaceID)
	if err != nil {
		return nil, err
	}
	minutes, err := s.minuteRepo.ListMinutes(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list meeting minutes", slog.String("workspace_id", workspaceID))
		return nil, err
	}
	return minutes, nil
}

func (s *meetingMinuteService) GetMinute(ctx context.Context, minuteID, userID string) (*domain.MeetingMinute, error) {
	minute, _, err := s.loadForMember(ctx, minuteID, userID)
	return minute, err
}

func (s *meetingMinuteService) CreateMinute(ctx context.Context, workspaceID string, req dto.CreateMeetingMinuteRequest, userID string) (*domain.MeetingMinute, error) {
	if _, err := s.AuthorizeMember(ctx, userID, workspaceID, domain.RoleTeamMember); err != nil {
		return nil, err
	}
	minute, err := req.ToDomain()
	if err != nil {
		return nil, err
	}
	sanitizeMinute(&minute)
	if err := validateMinute(minute); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	minute.MinuteID = uuid.NewString()
	minute.WorkspaceID = workspaceID
	minute.CreatedBy = userID
	minute.Timestamps = domain.Timestamps{CreatedAt: now, UpdatedAt: now}
	for i := range minute.ActionItems {
		item := &minute.ActionItems[i]
		item.ItemID = uuid.NewString()
		item.MeetingMinuteID = minute.MinuteID
		item.Description = utils.StripTags(item.Description)
		item.CreatedAt = now
		status := item.Status
		item.Status = domain.ActionPending
		item.SetStatus(status, now)
	}

	if err := s.minuteRepo.SaveMinute(ctx, minute); err != nil {
		s.LogError(ctx, err, "Failed to save meeting minute", slog.String("workspace_id", workspaceID))
		return nil, err
	}
	saved, err := s.minuteRepo.FindMinuteByID(ctx, minute.MinuteID)
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Meeting minute created", slog.String("minute_id", saved.MinuteID))
	s.notify(ctx, domain.EventMeetingMinuteCreated, workspaceID, dto.ToMeetingMinuteResponse(saved))
	return saved, nil
}

func (s *meetingMinuteService) UpdateMinute(ctx context.Context, minuteID string, req dto.UpdateMeetingMinuteRequest, userID string) (*domain.MeetingMinute, error) {
	minute, _, err := s.loadForMember(ctx, minuteID, userID)
	if err != nil {
		return nil, err
	}
	update, err := req.ToDomain()
	if err != nil {
		return nil, err
	}
	merged := update.ApplyTo(*minute)
	sanitizeMinute(&merged)
	if err := validateMinute(merged); err != nil {
		return nil, err
	}
	merged.UpdatedBy = &userID
	merged.UpdatedAt = s.now().UTC()

	if err := s.minuteRepo.UpdateMinute(ctx, merged); err != nil {
		s.LogError(ctx, err, "Failed to update meeting minute", slog.String("minute_id", minuteID))
		return nil, err
	}
	saved, err := s.minuteRepo.FindMinuteByID(ctx, minuteID)
	if err != nil {
		return nil, err
	}
	s.notify(ctx, domain.EventMeetingMinuteUpdated, saved.WorkspaceID, dto.ToMeetingMinuteResponse(saved))
	return saved, nil
}

func (s *meetingMinuteService) DeleteMinute(ctx context.Context, minuteID, userID string) error {
	minute, user, err := s.loadForMember(ctx, minuteID, userID)
	if err != nil {
		return err
	}
	if minute.CreatedBy != userID && !user.Role.IsElevated() {
		return apperrors.NewForbiddenError("Only the creator or managers can delete meeting minutes")
	}

	attachments, err := s.minuteRepo.DeleteMinute(ctx, minuteID)
	if err != nil {
		s.LogError(ctx, err, "Failed to delete meeting minute", slog.String("minute_id", minuteID))
		return err
	}
	for _, a := range attachments {
		s.removeStored(ctx, a)
	}
	s.notify(ctx, domain.EventMeetingMinuteDeleted, minute.WorkspaceID, map[string]string{"id": minuteID})
	return nil
}

func (s *meetingMinuteService) removeStored(ctx context.Context, a domain.MinuteAttachment) {
	if s.store == nil {
		return
	}
	if err := s.store.Delete(ctx, a.StoragePublicID, a.ResourceType); err != nil {
		s.LogError(ctx, err, "Failed to remove stored attachment", slog.String("attachment_id", a.AttachmentID))
	}
}

func (s *meetingMinuteService) AddAttachment(ctx context.Context, minuteID string, upload domain.Upload, userID string) (*domain.MinuteAttachment, error) {
	if _, _, err := s.loadForMember(ctx, minuteID, userID); err != nil {
		return nil, err
	}
	if s.store == nil {
		return nil, apperrors.NewInternalServerError("Attachment storage is not configured")
	}
	if s.maxFileBytes > 0 && upload.Size > s.maxFileBytes {
		return nil, apperrors.NewTooLargeError(fmt.Sprintf("File size exceeds maximum of %d bytes", s.maxFileBytes))
	}
	if !domain.AllowedAttachmentTypes[upload.ContentType] {
		return nil, apperrors.NewUnsupportedMediaError(fmt.Sprintf("File type %s not allowed", upload.ContentType))
	}

	stored, err := s.store.Save(ctx, minuteAttachmentFolder, upload)
	if err != nil {
		s.LogError(ctx, err, "Failed to store attachment", slog.String("minute_id", minuteID))
		return nil, err
	}

	attachment := domain.MinuteAttachment{
		AttachmentID:    uuid.NewString(),
		MeetingMinuteID: minuteID,
		StoragePublicID: stored.PublicID,
		URL:             stored.URL,
		ResourceType:    stored.ResourceType,
		FileName:        utils.StripTags(upload.FileName),
		FileSize:        stored.Size,
		MimeType:        upload.ContentType,
		UploadedBy:      userID,
		UploadedAt:      s.now().UTC(),
	}
	if attachment.ResourceType == "" {
		attachment.ResourceType = domain.ResourceTypeFor(upload.ContentType)
	}
	if err := s.minuteRepo.SaveAttachment(ctx, attachment); err != nil {
		s.removeStored(ctx, attachment)
		s.LogError(ctx, err, "Failed to save attachment record", slog.String("minute_id", minuteID))
		return nil, err
	}
	return &attachment, nil
}

// DeleteAttachment checks membership before looking the attachment up.
func (s *meetingMinuteService) DeleteAttachment(ctx context.Context, minuteID, attachmentID, userID string) error {
	if _, _, err := s.loadForMember(ctx, minuteID, userID); err != nil {
		return err
	}
	attachment, err := s.minuteRepo.FindAttachmentByID(ctx, minuteID, attachmentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("Attachment not found")
		}
		return err
	}
	s.removeStored(ctx, *attachment)
	if err := s.minuteRepo.DeleteAttachment(ctx, attachmentID); err != nil {
		s.LogError(ctx, err, "Failed to delete attachment record", slog.String("attachment_id", attachmentID))
		return err
	}
	return nil
}

func (s *meetingMinuteService) findActionItem(ctx context.Context, minuteID, itemID string) (*domain.MinuteActionItem, error) {
	item, err := s.minuteRepo.FindActionItemByID(ctx, minuteID, itemID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("Action item not found")
		}
		return nil, err
	}
	return item, nil
}

func (s *meetingMinuteService) AddActionItem(ctx context.Context, minuteID string, req dto.CreateActionItemRequest, userID string) (*domain.MinuteActionItem, error) {
	if _, _, err := s.loadForMember(ctx, minuteID, userID); err != nil {
		return nil, err
	}
	item, err := req.ToDomain()
	if err != nil {
		return nil, err
	}
	item.Description = utils.StripTags(item.Description)
	if item.Description == "" {
		return nil, apperrors.NewValidationFailedError("description is required")
	}
	now := s.now().UTC()
	item.ItemID = uuid.NewString()
	item.MeetingMinuteID = minuteID
	item.CreatedAt = now
	status := item.Status
	item.Status = domain.ActionPending
	item.SetStatus(status, now)

	if err := s.minuteRepo.SaveActionItem(ctx, item); err != nil {
		s.LogError(ctx, err, "Failed to save action item", slog.String("minute_id", minuteID))
		return nil, err
	}
	return &item, nil
}

func (s *meetingMinuteService) UpdateActionItem(ctx context.Context, minuteID, itemID string, req dto.UpdateActionItemRequest, userID string) (*domain.MinuteActionItem, error) {
	if _, _, err := s.loadForMember(ctx, minuteID, userID); err != nil {
		return nil, err
	}
	item, err := s.findActionItem(ctx, minuteID, itemID)
	if err != nil {
		return nil, err
	}
	update, err := req.ToDomain()
	if err != nil {
		return nil, err
	}
	if update.Description != nil {
		desc := utils.StripTags(*update.Description)
		if desc == "" {
			return nil, apperrors.NewValidationFailedError("description cannot be empty")
		}
		item.Description = desc
	}
	if update.AssignedTo != nil {
		item.AssignedTo = cleanOptional(update.AssignedTo)
	}
	if update.DueDate != nil {
		item.DueDate = update.DueDate
	}
	if update.Status != nil {
		item.SetStatus(*update.Status, s.now().UTC())
	}

	if err := s.minuteRepo.UpdateActionItem(ctx, *item); err != nil {
		s.LogError(ctx, err, "Failed to update action item", slog.String("item_id", itemID))
		return nil, err
	}
	return item, nil
}

func (s *meetingMinuteService) DeleteActionItem(ctx context.Context, minuteID, itemID, userID string) error {
	if _, _, err := s.loadForMember(ctx, minuteID, userID); err != nil {
		return err
	}
	if _, err := s.findActionItem(ctx, minuteID, itemID); err != nil {
		return err
	}
	return s.minuteRepo.DeleteActionItem(ctx, itemID)
}
