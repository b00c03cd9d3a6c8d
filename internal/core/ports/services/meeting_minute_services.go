package services

import (
	"context"

	"github.com/flowhive/flowhive_backend/internal/core/domain"
	"github.com/flowhive/flowhive_backend/internal/dto"
)

// MeetingMinuteReaderSvc defines read operations for meeting minutes
type MeetingMinuteReaderSvc interface {
	ListMinutes(ctx context.Context, workspaceID string, params dto.ListMeetingMinutesParams, userID string) ([]domain.MeetingMinuteSummary, error)
	GetMinute(ctx context.Context, minuteID, userID string) (*domain.MeetingMinute, error)
}

// MeetingMinuteWriterSvc defines write operations for meeting minutes
type MeetingMinuteWriterSvc interface {
	CreateMinute(ctx context.Context, workspaceID string, req dto.CreateMeetingMinuteRequest, userID string) (*domain.MeetingMinute, error)
	UpdateMinute(ctx context.Context, minuteID string, req dto.UpdateMeetingMinuteRequest, userID string) (*domain.MeetingMinute, error)
	// DeleteMinute removes minutes. Creator or manager rank required.
	DeleteMinute(ctx context.Context, minuteID, userID string) error
}

// MinuteAttachmentSvc defines operations on minute attachments
type MinuteAttachmentSvc interface {
	AddAttachment(ctx context.Context, minuteID string, upload domain.Upload, userID string) (*domain.MinuteAttachment, error)
	DeleteAttachment(ctx context.Context, minuteID, attachmentID, userID string) error
}

// MinuteActionItemSvc defines operations on minute action items
type MinuteActionItemSvc interface {
	AddActionItem(ctx context.Context, minuteID string, req dto.CreateActionItemRequest, userID string) (*domain.MinuteActionItem, error)
	UpdateActionItem(ctx context.Context, minuteID, itemID string, req dto.UpdateActionItemRequest, userID string) (*domain.MinuteActionItem, error)
	DeleteActionItem(ctx context.Context, minuteID, itemID, userID string) error
}

// MeetingMinuteSvcFacade combines all meeting minute service interfaces
type MeetingMinuteSvcFacade interface {
	MeetingMinuteReaderSvc
	MeetingMinuteWriterSvc
	MinuteAttachmentSvc
	MinuteActionItemSvc
}
