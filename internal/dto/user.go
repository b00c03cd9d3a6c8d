package dto

import (
	"time"

	"github.com/flowhive/flowhive_backend/internal/core/domain"
)

// UpdateUserRequest defines the data allowed for updating a user.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateUserRequest struct {
	Email     *string      `json:"email" binding:"omitempty,email"`
	Username  *string      `json:"username" binding:"omitempty,min=3,max=50"`
	FullName  *string      `json:"full_name"`
	AvatarURL *string      `json:"avatar_url"`
	Password  *string      `json:"password" binding:"omitempty,min=8"`
	Role      *domain.Role `json:"role" binding:"omitempty,oneof=team_member manager executive"`
	IsActive  *bool        `json:"is_active"`
}

// ToDomain converts the request to a domain update.
func (r UpdateUserRequest) ToDomain() domain.UserUpdate {
	return domain.UserUpdate{
		Email:     r.Email,
		Username:  r.Username,
		FullName:  r.FullName,
		AvatarURL: r.AvatarURL,
		Password:  r.Password,
		Role:      r.Role,
		IsActive:  r.IsActive,
	}
}

// ListUsersParams defines query parameters for listing users.
type ListUsersParams struct {
	Skip  int `form:"skip,default=0" binding:"min=0"`
	Limit int `form:"limit,default=100" binding:"min=1,max=500"`
}

// SearchUsersParams defines query parameters for user search.
type SearchUsersParams struct {
	Q     string `form:"q" binding:"required"`
	Limit int    `form:"limit,default=10" binding:"min=1,max=50"`
}

type UserResponse struct {
	ID        string      `json:"id"`
	Email     string      `json:"email"`
	Username  string      `json:"username"`
	FullName  *string     `json:"full_name"`
	Role      domain.Role `json:"role"`
	IsActive  bool        `json:"is_active"`
	AvatarURL *string     `json:"avatar_url"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.UserID,
		Email:     user.Email,
		Username:  user.Username,
		FullName:  user.FullName,
		Role:      user.Role,
		IsActive:  user.IsActive,
		AvatarURL: user.AvatarURL,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// ToUserResponses converts a slice of domain.User to DTOs.
func ToUserResponses(users []domain.User) []UserResponse {
	userResponses := make([]UserResponse, len(users))
	for i := range users {
		userResponses[i] = ToUserResponse(&users[i])
	}
	return userResponses
}

// UserRefResponse is the embedded short form of a user.
type UserRefResponse struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	Email    string  `json:"email"`
	FullName *string `json:"full_name"`
}

func toUserRefResponse(u *domain.UserRef) *UserRefResponse {
	if u == nil {
		return nil
	}
	return &UserRefResponse{ID: u.UserID, Username: u.Username, Email: u.Email, FullName: u.FullName}
}
