package domain

// EntityKind names a persisted entity for deletion policy lookups.
type EntityKind string

const (
	EntityUser               EntityKind = "user"
	EntityWorkspace          EntityKind = "workspace"
	EntityWorkspaceMember    EntityKind = "workspace_member"
	EntityTaskCategory       EntityKind = "task_category"
	EntityFieldActivity      EntityKind = "field_activity"
	EntityFieldActivityPhoto EntityKind = "field_activity_photo"
	EntityMeetingMinute      EntityKind = "meeting_minute"
	EntityMinuteAttachment   EntityKind = "minute_attachment"
	EntityMinuteActionItem   EntityKind = "minute_action_item"
	EntityProject            EntityKind = "project"
	EntityTaskList           EntityKind = "task_list"
	EntityTask               EntityKind = "task"
	EntityTaskComment        EntityKind = "task_comment"
	EntityTaskAttachment     EntityKind = "task_attachment"
)

// DeletionMode is how a delete request is carried out.
type DeletionMode string

const (
	// SoftDelete flips the entity's active flag and keeps the row.
	SoftDelete DeletionMode = "soft"
	// HardDelete removes the row and anything that cascades from it.
	HardDelete DeletionMode = "hard"
)

var deletionPolicy = map[EntityKind]DeletionMode{
	EntityUser:               HardDelete,
	EntityWorkspace:          HardDelete,
	EntityWorkspaceMember:    HardDelete,
	EntityTaskCategory:       SoftDelete,
	EntityFieldActivity:      HardDelete,
	EntityFieldActivityPhoto: HardDelete,
	EntityMeetingMinute:      HardDelete,
	EntityMinuteAttachment:   HardDelete,
	EntityMinuteActionItem:   HardDelete,
	EntityProject:            HardDelete,
	EntityTaskList:           HardDelete,
	EntityTask:               HardDelete,
	EntityTaskComment:        HardDelete,
	EntityTaskAttachment:     HardDelete,
}

// DeletionPolicyFor returns the deletion mode for kind. Unlisted kinds are hard-deleted.
func DeletionPolicyFor(kind EntityKind) DeletionMode {
	if mode, ok := deletionPolicy[kind]; ok {
		return mode
	}
	return HardDelete
}
