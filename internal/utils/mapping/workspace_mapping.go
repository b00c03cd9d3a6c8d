package mapping

import (
	"github.com/flowhive/flowhive_backend/internal/core/domain"
	"github.com/flowhive/flowhive_backend/internal/models"
)

func ToModelWorkspace(d domain.Workspace) models.Workspace {
	return models.Workspace{
		WorkspaceID:   d.WorkspaceID,
		Name:          d.Name,
		Description:   d.Description,
		OwnerID:       d.OwnerID,
		WorkspaceType: string(d.WorkspaceType),
		Icon:          d.Icon,
		Color:         d.Color,
		Timestamps:    ToModelTimestamps(d.Timestamps),
	}
}

func ToDomainWorkspace(m models.Workspace) domain.Workspace {
	return domain.Workspace{
		WorkspaceID:   m.WorkspaceID,
		Name:          m.Name,
		Description:   m.Description,
		OwnerID:       m.OwnerID,
		WorkspaceType: domain.WorkspaceType(m.WorkspaceType),
		Icon:          m.Icon,
		Color:         m.Color,
		Timestamps:    ToDomainTimestamps(m.Timestamps),
	}
}

func ToDomainWorkspaceSlice(ms []models.Workspace) []domain.Workspace {
	ds := make([]domain.Workspace, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainWorkspace(m)
	}
	return ds
}

func ToDomainMemberProfiles(ms []models.MemberProfile) []domain.MemberProfile {
	ds := make([]domain.MemberProfile, len(ms))
	for i, m := range ms {
		ds[i] = domain.MemberProfile{
			UserID:    m.UserID,
			Username:  m.Username,
			Email:     m.Email,
			FullName:  m.FullName,
			AvatarURL: m.AvatarURL,
			Role:      domain.Role(m.Role),
			IsActive:  m.IsActive,
			JoinedAt:  m.JoinedAt,
		}
	}
	return ds
}

func ToDomainWorkspaceActivityCounts(ms []models.WorkspaceActivityCount) []domain.WorkspaceActivityCount {
	ds := make([]domain.WorkspaceActivityCount, len(ms))
	for i, m := range ms {
		ds[i] = domain.WorkspaceActivityCount{
			WorkspaceID:   m.WorkspaceID,
			WorkspaceName: m.WorkspaceName,
			ActivityCount: m.ActivityCount,
		}
	}
	return ds
}
