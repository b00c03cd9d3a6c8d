package domain

import "io"

// Upload is a file received from a client, not yet stored.
type Upload struct {
	FileName    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// StoredFile describes where a file store put an upload.
type StoredFile struct {
	PublicID     string
	URL          string
	Path         string
	ResourceType ResourceType
	Size         int64
}

// RealtimeEvent is a message published to every connection of a workspace.
type RealtimeEvent struct {
	Type        string `json:"type"`
	WorkspaceID string `json:"workspace_id"`
	Data        any    `json:"data,omitempty"`
}

const (
	EventFieldActivityCreated = "field_activity_created"
	EventFieldActivityUpdated = "field_activity_updated"
	EventFieldActivityDeleted = "field_activity_deleted"
	EventMeetingMinuteCreated = "meeting_minute_created"
	EventMeetingMinuteUpdated = "meeting_minute_updated"
	EventMeetingMinuteDeleted = "meeting_minute_deleted"
	EventProjectCreated       = "project_created"
	EventProjectUpdated       = "project_updated"
	EventProjectDeleted       = "project_deleted"
	EventTaskCreated          = "task_created"
	EventTaskUpdated          = "task_updated"
	EventTaskDeleted          = "task_deleted"
	EventCommentCreated       = "comment_created"
)
