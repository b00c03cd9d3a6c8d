package mapping

import (
	"github.com/flowhive/flowhive_backend/internal/core/domain"
	"github.com/flowhive/flowhive_backend/internal/models"
)

func ToModelTaskCategory(d domain.TaskCategory) models.TaskCategory {
	return models.TaskCategory{
		CategoryID:   d.CategoryID,
		WorkspaceID:  d.WorkspaceID,
		Name:         d.Name,
		Title:        d.Title,
		Description:  d.Description,
		Color:        d.Color,
		Icon:         d.Icon,
		RequiredRole: string(d.RequiredRole),
		IsActive:     d.IsActive,
		CreatedBy:    d.CreatedBy,
		Timestamps:   ToModelTimestamps(d.Timestamps),
	}
}

func ToDomainTaskCategory(m models.TaskCategory) domain.TaskCategory {
	return domain.TaskCategory{
		CategoryID:   m.CategoryID,
		WorkspaceID:  m.WorkspaceID,
		Name:         m.Name,
		Title:        m.Title,
		Description:  m.Description,
		Color:        m.Color,
		Icon:         m.Icon,
		RequiredRole: domain.Role(m.RequiredRole),
		IsActive:     m.IsActive,
		CreatedBy:    m.CreatedBy,
		Timestamps:   ToDomainTimestamps(m.Timestamps),
	}
}

func ToDomainTaskCategorySlice(ms []models.TaskCategory) []domain.TaskCategory {
	ds := make([]domain.TaskCategory, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTaskCategory(m)
	}
	return ds
}
