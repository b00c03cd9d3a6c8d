package mapping

import (
	"github.com/flowhive/flowhive_backend/internal/core/domain"
	"github.com/flowhive/flowhive_backend/internal/models"
)

// ToDomainFieldActivity converts a joined activity row. Photos are loaded separately.
func ToDomainFieldActivity(m models.FieldActivity) domain.FieldActivity {
	a := domain.FieldActivity{
		ActivityID:      m.ActivityID,
		WorkspaceID:     m.WorkspaceID,
		SupportStaffID:  m.SupportStaffID,
		ActivityDate:    domain.TruncateToDate(m.ActivityDate),
		StartTime:       ToDomainTimeOfDay(m.StartTime),
		EndTime:         ToDomainTimeOfDay(m.EndTime),
		Title:           m.Title,
		CustomerID:      m.CustomerID,
		CustomerName:    m.CustomerName,
		LocationType:    domain.LocationType(m.LocationType),
		Location:        m.Location,
		TaskCategoryID:  m.TaskCategoryID,
		TaskDescription: m.TaskDescription,
		Remarks:         m.Remarks,
		CustomerRep:     m.CustomerRep,
		Status:          domain.ActivityStatus(m.Status),
		CreatedBy:       m.CreatedBy,
		UpdatedBy:       m.UpdatedBy,
		Timestamps:      ToDomainTimestamps(m.Timestamps),
		SupportStaff:    toUserRef(m.SupportStaffID, m.StaffUsername, m.StaffEmail, m.StaffFullName),
	}
	if m.TaskCategoryID != nil && m.CategoryTitle != nil {
		a.TaskCategory = &domain.CategoryRef{
			CategoryID:   *m.TaskCategoryID,
			Name:         domain.StringValue(m.CategoryName),
			Title:        *m.CategoryTitle,
			Color:        m.CategoryColor,
			Icon:         m.CategoryIcon,
			RequiredRole: domain.Role(domain.StringValue(m.CategoryRequiredRole)),
		}
	}
	return a
}

func ToDomainFieldActivitySlice(ms []models.FieldActivity) []domain.FieldActivity {
	ds := make([]domain.FieldActivity, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainFieldActivity(m)
	}
	return ds
}

func ToModelFieldActivityPhoto(d domain.FieldActivityPhoto) models.FieldActivityPhoto {
	return models.FieldActivityPhoto(d)
}

func ToDomainFieldActivityPhoto(m models.FieldActivityPhoto) domain.FieldActivityPhoto {
	return domain.FieldActivityPhoto(m)
}

func ToDomainFieldActivityPhotoSlice(ms []models.FieldActivityPhoto) []domain.FieldActivityPhoto {
	ds := make([]domain.FieldActivityPhoto, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainFieldActivityPhoto(m)
	}
	return ds
}
