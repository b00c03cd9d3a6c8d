package domain

import "time"

// Attendee is a meeting participant, optionally linked to a user.
type Attendee struct {
	ID   *string `json:"id,omitempty"`
	Name string  `json:"name"`
}

// MeetingMinute records a meeting held within a workspace.
type MeetingMinute struct {
	MinuteID         string
	WorkspaceID      string
	Title            string
	MeetingDate      time.Time
	MeetingTimeStart *TimeOfDay
	MeetingTimeEnd   *TimeOfDay
	Location         *string
	Attendees        []Attendee
	Agenda           *string
	Discussions      *string
	Decisions        *string
	CreatedBy        string
	UpdatedBy        *string
	Timestamps

	Creator     *UserRef
	Attachments []MinuteAttachment
	ActionItems []MinuteActionItem
}

// MeetingMinuteSummary is a list row with related counts.
type MeetingMinuteSummary struct {
	MeetingMinute
	AttachmentCount int
	ActionItemCount int
}

// MeetingMinuteUpdate carries a partial update.
type MeetingMinuteUpdate struct {
	Title            *string
	MeetingDate      *time.Time
	MeetingTimeStart *TimeOfDay
	MeetingTimeEnd   *TimeOfDay
	Location         *string
	Attendees        *[]Attendee
	Agenda           *string
	Discussions      *string
	Decisions        *string
}

// ApplyTo returns a copy of m with the non-nil fields applied.
func (u MeetingMinuteUpdate) ApplyTo(m MeetingMinute) MeetingMinute {
	if u.Title != nil {
		m.Title = *u.Title
	}
	if u.MeetingDate != nil {
		m.MeetingDate = TruncateToDate(*u.MeetingDate)
	}
	if u.MeetingTimeStart != nil {
		m.MeetingTimeStart = u.MeetingTimeStart
	}
	if u.MeetingTimeEnd != nil {
		m.MeetingTimeEnd = u.MeetingTimeEnd
	}
	if u.Location != nil {
		m.Location = u.Location
	}
	if u.Attendees != nil {
		m.Attendees = *u.Attendees
	}
	if u.Agenda != nil {
		m.Agenda = u.Agenda
	}
	if u.Discussions != nil {
		m.Discussions = u.Discussions
	}
	if u.Decisions != nil {
		m.Decisions = u.Decisions
	}
	return m
}

// MeetingMinuteFilter narrows minute listings.
type MeetingMinuteFilter struct {
	WorkspaceID string
	DateFrom    *time.Time
	DateTo      *time.Time
	Search      *string
	Limit       int
	Offset      int
}

// ResourceType tells the file store how to treat an upload.
type ResourceType string

const (
	ResourceImage ResourceType = "image"
	ResourceRaw   ResourceType = "raw"
)

// ResourceTypeFor returns image for image/* content types and raw otherwise.
func ResourceTypeFor(mimeType string) ResourceType {
	if len(mimeType) >= 6 && mimeType[:6] == "image/" {
		return ResourceImage
	}
	return ResourceRaw
}

// MinuteAttachment is a document attached to meeting minutes.
type MinuteAttachment struct {
	AttachmentID    string
	MeetingMinuteID string
	StoragePublicID string
	URL             string
	ResourceType    ResourceType
	FileName        string
	FileSize        int64
	MimeType        string
	UploadedBy      string
	UploadedAt      time.Time
}

// AllowedAttachmentTypes lists the content types accepted for minute attachments.
var AllowedAttachmentTypes = map[string]bool{
	"application/pdf":    true,
	"image/jpeg":         true,
	"image/png":          true,
	"image/gif":          true,
	"image/webp":         true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/vnd.ms-excel": true,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": true,
}

// ActionItemStatus is the state of a minute's follow-up item.
type ActionItemStatus string

const (
	ActionPending    ActionItemStatus = "pending"
	ActionInProgress ActionItemStatus = "in_progress"
	ActionCompleted  ActionItemStatus = "completed"
)

func (s ActionItemStatus) IsValid() bool {
	switch s {
	case ActionPending, ActionInProgress, ActionCompleted:
		return true
	}
	return false
}

// MinuteActionItem is a follow-up task recorded in meeting minutes.
type MinuteActionItem struct {
	ItemID          string
	MeetingMinuteID string
	Description     string
	AssignedTo      *string
	DueDate         *time.Time
	Status          ActionItemStatus
	CreatedAt       time.Time
	CompletedAt     *time.Time
}

// SetStatus updates the status and keeps CompletedAt consistent with it.
func (i *MinuteActionItem) SetStatus(status ActionItemStatus, now time.Time) {
	if status == ActionCompleted && i.Status != ActionCompleted {
		i.CompletedAt = &now
	} else if status != ActionCompleted {
		i.CompletedAt = nil
	}
	i.Status = status
}

// ActionItemUpdate carries a partial action item update.
type ActionItemUpdate struct {
	Description *string
	AssignedTo  *string
	DueDate     *time.Time
	Status      *ActionItemStatus
}
