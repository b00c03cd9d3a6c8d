package domain

import "time"

// Comment is a message on a task. ParentCommentID makes it a reply.
type Comment struct {
	CommentID       string
	TaskID          string
	UserID          string
	ParentCommentID *string
	Content         string
	Timestamps

	Author *UserRef
	// AuthorAvatar is the author's avatar URL when one is set.
	AuthorAvatar *string
}

// TaskAttachment is a file attached to a task.
type TaskAttachment struct {
	AttachmentID    string
	TaskID          string
	StoragePublicID string
	URL             string
	ResourceType    ResourceType
	FileName        string
	FileSize        int64
	MimeType        string
	UploadedBy      string
	UploadedAt      time.Time

	Uploader *UserRef
}

// AllowedTaskAttachmentTypes extends the minute attachment types with plain text and CSV.
var AllowedTaskAttachmentTypes = func() map[string]bool {
	types := map[string]bool{"text/plain": true, "text/csv": true}
	for t := range AllowedAttachmentTypes {
		types[t] = true
	}
	return types
}()
