package repositories

import (
	"context"

	"github.com/flowhive/flowhive_backend/internal/core/domain"
)

// MeetingMinuteReader defines read operations for meeting minutes
type MeetingMinuteReader interface {
	// FindMinuteByID retrieves minutes with creator, attachments and action items loaded.
	FindMinuteByID(ctx context.Context, minuteID string) (*domain.MeetingMinute, error)

	// ListMinutes returns minutes ordered by meeting date, newest first.
	ListMinutes(ctx context.Context, filter domain.MeetingMinuteFilter) ([]domain.MeetingMinuteSummary, error)
}

// MeetingMinuteWriter defines write operations for meeting minutes
type MeetingMinuteWriter interface {
	// SaveMinute persists minutes together with their initial action items.
	SaveMinute(ctx context.Context, minute domain.MeetingMinute) error
	UpdateMinute(ctx context.Context, minute domain.MeetingMinute) error

	// DeleteMinute removes minutes and their children, returning the removed attachments.
	DeleteMinute(ctx context.Context, minuteID string) ([]domain.MinuteAttachment, error)
}

// MinuteAttachmentManager defines operations on minute attachments
type MinuteAttachmentManager interface {
	SaveAttachment(ctx context.Context, attachment domain.MinuteAttachment) error
	FindAttachmentByID(ctx context.Context, minuteID, attachmentID string) (*domain.MinuteAttachment, error)
	DeleteAttachment(ctx context.Context, attachmentID string) error
}

// MinuteActionItemManager defines operations on minute action items
type MinuteActionItemManager interface {
	SaveActionItem(ctx context.Context, item domain.MinuteActionItem) error
	FindActionItemByID(ctx context.Context, minuteID, itemID string) (*domain.MinuteActionItem, error)
	UpdateActionItem(ctx context.Context, item domain.MinuteActionItem) error
	DeleteActionItem(ctx context.Context, itemID string) error
}

// MeetingMinuteRepositoryFacade combines all meeting minute repository interfaces
type MeetingMinuteRepositoryFacade interface {
	MeetingMinuteReader
	MeetingMinuteWriter
	MinuteAttachmentManager
	MinuteActionItemManager
}

// MeetingMinuteRepositoryWithTx extends MeetingMinuteRepositoryFacade with transaction capabilities
type MeetingMinuteRepositoryWithTx interface {
	MeetingMinuteRepositoryFacade
	TransactionManager
}
