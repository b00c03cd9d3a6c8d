package domain

import "time"

// User represents an account holder of the application.
type User struct {
	UserID            string
	Email             string
	Username          string
	HashedPassword    string
	FullName          *string
	Role              Role
	IsActive          bool
	AvatarURL         *string
	ResetTokenHash    *string
	ResetTokenExpires *time.Time
	Timestamps
}

// DisplayName is the full name when set, otherwise the username.
func (u User) DisplayName() string {
	if u.FullName != nil && *u.FullName != "" {
		return *u.FullName
	}
	return u.Username
}

// UserRef is the short form of a user embedded in other entities.
type UserRef struct {
	UserID   string
	Username string
	Email    string
	FullName *string
}

func (u UserRef) DisplayName() string {
	if u.FullName != nil && *u.FullName != "" {
		return *u.FullName
	}
	return u.Username
}

// UserUpdate carries a partial user update. Nil fields are left unchanged.
type UserUpdate struct {
	Email     *string
	Username  *string
	FullName  *string
	AvatarURL *string
	Password  *string
	Role      *Role
	IsActive  *bool
}
