package mapping

import (
	"encoding/json"

	"github.com/flowhive/flowhive_backend/internal/core/domain"
	"github.com/flowhive/flowhive_backend/internal/models"
)

// ToDomainMeetingMinute converts a joined minute row. Malformed attendee JSON yields an empty list.
func ToDomainMeetingMinute(m models.MeetingMinute) domain.MeetingMinute {
	attendees := []domain.Attendee{}
	if len(m.Attendees) > 0 {
		if err := json.Unmarshal(m.Attendees, &attendees); err != nil {
			attendees = []domain.Attendee{}
		}
	}
	return domain.MeetingMinute{
		MinuteID:         m.MinuteID,
		WorkspaceID:      m.WorkspaceID,
		Title:            m.Title,
		MeetingDate:      domain.TruncateToDate(m.MeetingDate),
		MeetingTimeStart: ToDomainTimeOfDay(m.MeetingTimeStart),
		MeetingTimeEnd:   ToDomainTimeOfDay(m.MeetingTimeEnd),
		Location:         m.Location,
		Attendees:        attendees,
		Agenda:           m.Agenda,
		Discussions:      m.Discussions,
		Decisions:        m.Decisions,
		CreatedBy:        m.CreatedBy,
		UpdatedBy:        m.UpdatedBy,
		Timestamps:       ToDomainTimestamps(m.Timestamps),
		Creator:          toUserRef(m.CreatedBy, m.CreatorUsername, m.CreatorEmail, m.CreatorFullName),
	}
}

// AttendeesJSON encodes attendees for the JSONB column, never as null.
func AttendeesJSON(attendees []domain.Attendee) ([]byte, error) {
	if attendees == nil {
		attendees = []domain.Attendee{}
	}
	return json.Marshal(attendees)
}

func ToDomainMeetingMinuteSummaries(ms []models.MeetingMinuteSummary) []domain.MeetingMinuteSummary {
	ds := make([]domain.MeetingMinuteSummary, len(ms))
	for i, m := range ms {
		ds[i] = domain.MeetingMinuteSummary{
			MeetingMinute:   ToDomainMeetingMinute(m.MeetingMinute),
			AttachmentCount: m.AttachmentCount,
			ActionItemCount: m.ActionItemCount,
		}
	}
	return ds
}

func ToDomainMinuteAttachment(m models.MinuteAttachment) domain.MinuteAttachment {
	return domain.MinuteAttachment{
		AttachmentID:    m.AttachmentID,
		MeetingMinuteID: m.MeetingMinuteID,
		StoragePublicID: m.StoragePublicID,
		URL:             m.URL,
		ResourceType:    domain.ResourceType(m.ResourceType),
		FileName:        m.FileName,
		FileSize:        m.FileSize,
		MimeType:        m.MimeType,
		UploadedBy:      m.UploadedBy,
		UploadedAt:      m.UploadedAt,
	}
}

func ToDomainMinuteAttachmentSlice(ms []models.MinuteAttachment) []domain.MinuteAttachment {
	ds := make([]domain.MinuteAttachment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainMinuteAttachment(m)
	}
	return ds
}

func ToDomainMinuteActionItem(m models.MinuteActionItem) domain.MinuteActionItem {
	return domain.MinuteActionItem{
		ItemID:          m.ItemID,
		MeetingMinuteID: m.MeetingMinuteID,
		Description:     m.Description,
		AssignedTo:      m.AssignedTo,
		DueDate:         m.DueDate,
		Status:          domain.ActionItemStatus(m.Status),
		CreatedAt:       m.CreatedAt,
		CompletedAt:     m.CompletedAt,
	}
}

func ToDomainMinuteActionItemSlice(ms []models.MinuteActionItem) []domain.MinuteActionItem {
	ds := make([]domain.MinuteActionItem, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainMinuteActionItem(m)
	}
	return ds
}
