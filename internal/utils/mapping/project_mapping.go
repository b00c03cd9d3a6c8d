package mapping

import (
	"encoding/json"

	"github.com/flowhive/flowhive_backend/internal/core/domain"
	"github.com/flowhive/flowhive_backend/internal/models"
)

func ToDomainProject(m models.Project) domain.Project {
	return domain.Project{
		ProjectID:   m.ProjectID,
		WorkspaceID: m.WorkspaceID,
		Name:        m.Name,
		Description: m.Description,
		Color:       m.Color,
		Icon:        m.Icon,
		CreatedBy:   m.CreatedBy,
		Timestamps:  ToDomainTimestamps(m.Timestamps),
	}
}

func ToDomainProjectSlice(ms []models.Project) []domain.Project {
	ds := make([]domain.Project, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainProject(m)
	}
	return ds
}

func ToDomainTaskList(m models.TaskList) domain.TaskList {
	return domain.TaskList{
		TaskListID:  m.TaskListID,
		ProjectID:   m.ProjectID,
		WorkspaceID: m.WorkspaceID,
		Name:        m.Name,
		Description: m.Description,
		Position:    m.Position,
		Timestamps:  ToDomainTimestamps(m.Timestamps),
	}
}

func ToDomainTaskListSlice(ms []models.TaskList) []domain.TaskList {
	ds := make([]domain.TaskList, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTaskList(m)
	}
	return ds
}

func ToDomainTask(m models.Task) domain.Task {
	t := domain.Task{
		TaskID:         m.TaskID,
		TaskListID:     m.TaskListID,
		ProjectID:      m.ProjectID,
		WorkspaceID:    m.WorkspaceID,
		ParentTaskID:   m.ParentTaskID,
		CreatorID:      m.CreatorID,
		AssigneeID:     m.AssigneeID,
		Title:          m.Title,
		Description:    m.Description,
		Status:         domain.TaskStatus(m.Status),
		Priority:       domain.TaskPriority(m.Priority),
		DueDate:        m.DueDate,
		StartDate:      m.StartDate,
		CompletedAt:    m.CompletedAt,
		Position:       m.Position,
		EstimatedHours: m.EstimatedHours,
		ActualHours:    m.ActualHours,
		Timestamps:     ToDomainTimestamps(m.Timestamps),
		Creator:        toUserRef(m.CreatorID, m.CreatorUsername, m.CreatorEmail, m.CreatorFullName),
	}
	if m.AssigneeID != nil {
		t.Assignee = toUserRef(*m.AssigneeID, m.AssigneeUsername, m.AssigneeEmail, m.AssigneeFullName)
	}
	return t
}

func ToDomainTaskSlice(ms []models.Task) []domain.Task {
	ds := make([]domain.Task, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTask(m)
	}
	return ds
}

func ToDomainComment(m models.TaskComment) domain.Comment {
	return domain.Comment{
		CommentID:       m.CommentID,
		TaskID:          m.TaskID,
		UserID:          m.UserID,
		ParentCommentID: m.ParentCommentID,
		Content:         m.Content,
		Timestamps:      ToDomainTimestamps(m.Timestamps),
		Author:          toUserRef(m.UserID, m.AuthorUsername, m.AuthorEmail, m.AuthorFullName),
		AuthorAvatar:    m.AuthorAvatar,
	}
}

func ToDomainCommentSlice(ms []models.TaskComment) []domain.Comment {
	ds := make([]domain.Comment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainComment(m)
	}
	return ds
}

func ToDomainTaskAttachment(m models.TaskAttachment) domain.TaskAttachment {
	return domain.TaskAttachment{
		AttachmentID:    m.AttachmentID,
		TaskID:          m.TaskID,
		StoragePublicID: m.StoragePublicID,
		URL:             m.URL,
		ResourceType:    domain.ResourceType(m.ResourceType),
		FileName:        m.FileName,
		FileSize:        m.FileSize,
		MimeType:        m.MimeType,
		UploadedBy:      m.UploadedBy,
		UploadedAt:      m.UploadedAt,
		Uploader:        toUserRef(m.UploadedBy, m.UploaderUsername, m.UploaderEmail, m.UploaderFullName),
	}
}

func ToDomainTaskAttachmentSlice(ms []models.TaskAttachment) []domain.TaskAttachment {
	ds := make([]domain.TaskAttachment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTaskAttachment(m)
	}
	return ds
}

// ToDomainTaskActivity converts a log row. Malformed details JSON yields an empty map.
func ToDomainTaskActivity(m models.TaskActivity) domain.TaskActivity {
	details := map[string]any{}
	if len(m.Details) > 0 {
		if err := json.Unmarshal(m.Details, &details); err != nil {
			details = map[string]any{}
		}
	}
	return domain.TaskActivity{
		LogID:     m.LogID,
		TaskID:    m.TaskID,
		UserID:    m.UserID,
		Action:    m.Action,
		Details:   details,
		CreatedAt: m.CreatedAt,
		User:      toUserRef(m.UserID, m.Username, m.Email, m.FullName),
	}
}

func ToDomainTaskActivitySlice(ms []models.TaskActivity) []domain.TaskActivity {
	ds := make([]domain.TaskActivity, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTaskActivity(m)
	}
	return ds
}

// TaskActivityDetailsJSON encodes details for the JSONB column, never as null.
func TaskActivityDetailsJSON(details map[string]any) ([]byte, error) {
	if details == nil {
		details = map[string]any{}
	}
	return json.Marshal(details)
}
