package mapping

import (
	"github.com/flowhive/flowhive_backend/internal/core/domain"
	"github.com/flowhive/flowhive_backend/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	return models.User{
		UserID:            d.UserID,
		Email:             d.Email,
		Username:          d.Username,
		HashedPassword:    d.HashedPassword,
		FullName:          d.FullName,
		Role:              string(d.Role),
		IsActive:          d.IsActive,
		AvatarURL:         d.AvatarURL,
		ResetTokenHash:    d.ResetTokenHash,
		ResetTokenExpires: d.ResetTokenExpires,
		Timestamps:        ToModelTimestamps(d.Timestamps),
	}
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:            m.UserID,
		Email:             m.Email,
		Username:          m.Username,
		HashedPassword:    m.HashedPassword,
		FullName:          m.FullName,
		Role:              domain.Role(m.Role),
		IsActive:          m.IsActive,
		AvatarURL:         m.AvatarURL,
		ResetTokenHash:    m.ResetTokenHash,
		ResetTokenExpires: m.ResetTokenExpires,
		Timestamps:        ToDomainTimestamps(m.Timestamps),
	}
}

// ToDomainUserSlice converts a slice of model Users to a slice of domain Users
func ToDomainUserSlice(ms []models.User) []domain.User {
	ds := make([]domain.User, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainUser(m)
	}
	return ds
}

// toUserRef builds a UserRef from joined user columns, or nil when the join found nothing.
func toUserRef(userID string, username, email, fullName *string) *domain.UserRef {
	if username == nil {
		return nil
	}
	return &domain.UserRef{
		UserID:   userID,
		Username: *username,
		Email:    domain.StringValue(email),
		FullName: fullName,
	}
}
