package models

import "time"

// User is a row of the users table.
type User struct {
	UserID            string     `db:"user_id"`
	Email             string     `db:"email"`
	Username          string     `db:"username"`
	HashedPassword    string     `db:"hashed_password"`
	FullName          *string    `db:"full_name"`
	Role              string     `db:"role"`
	IsActive          bool       `db:"is_active"`
	AvatarURL         *string    `db:"avatar_url"`
	ResetTokenHash    *string    `db:"reset_token_hash"`
	ResetTokenExpires *time.Time `db:"reset_token_expires"`
	Timestamps
}
