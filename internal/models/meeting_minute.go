package models

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// MeetingMinute is a meeting_minutes row joined with its creator.
type MeetingMinute struct {
	MinuteID         string      `db:"minute_id"`
	WorkspaceID      string      `db:"workspace_id"`
	Title            string      `db:"title"`
	MeetingDate      time.Time   `db:"meeting_date"`
	MeetingTimeStart pgtype.Time `db:"meeting_time_start"`
	MeetingTimeEnd   pgtype.Time `db:"meeting_time_end"`
	Location         *string     `db:"location"`
	Attendees        []byte      `db:"attendees"`
	Agenda           *string     `db:"agenda"`
	Discussions      *string     `db:"discussions"`
	Decisions        *string     `db:"decisions"`
	CreatedBy        string      `db:"created_by"`
	UpdatedBy        *string     `db:"updated_by"`
	Timestamps

	CreatorUsername *string `db:"creator_username"`
	CreatorEmail    *string `db:"creator_email"`
	CreatorFullName *string `db:"creator_full_name"`
}

// MeetingMinuteSummary adds the related row counts shown in listings.
type MeetingMinuteSummary struct {
	MeetingMinute
	AttachmentCount int `db:"attachment_count"`
	ActionItemCount int `db:"action_item_count"`
}

type MinuteAttachment struct {
	AttachmentID    string    `db:"attachment_id"`
	MeetingMinuteID string    `db:"meeting_minute_id"`
	StoragePublicID string    `db:"storage_public_id"`
	URL             string    `db:"url"`
	ResourceType    string    `db:"resource_type"`
	FileName        string    `db:"file_name"`
	FileSize        int64     `db:"file_size"`
	MimeType        string    `db:"mime_type"`
	UploadedBy      string    `db:"uploaded_by"`
	UploadedAt      time.Time `db:"uploaded_at"`
}

type MinuteActionItem struct {
	ItemID          string     `db:"item_id"`
	MeetingMinuteID string     `db:"meeting_minute_id"`
	Description     string     `db:"description"`
	AssignedTo      *string    `db:"assigned_to"`
	DueDate         *time.Time `db:"due_date"`
	Status          string     `db:"status"`
	CreatedAt       time.Time  `db:"created_at"`
	CompletedAt     *time.Time `db:"completed_at"`
}
