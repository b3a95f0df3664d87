package http

import (
	"time"

	"github.com/quickcourt/quickcourt-backend/internal/pkg/request"
	"github.com/quickcourt/quickcourt-backend/internal/user"
)

// UserResponse is the shape of user data returned in API responses.
type UserResponse struct {
	ID              string    `json:"id"`
	Username        string    `json:"username"`
	Email           string    `json:"email"`
	ProfilePic      string    `json:"profilePic"`
	IsAdmin         bool      `json:"isAdmin"`
	IsFacilityOwner bool      `json:"isFacilityOwner"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// UserTag is a brief representation of a user for embedding in other
// responses.
type UserTag struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// NewUserResponse converts a domain user.User to the API shape.
func NewUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:              u.ID,
		Username:        u.Username,
		Email:           u.Email,
		ProfilePic:      u.ProfilePic,
		IsAdmin:         u.IsAdmin,
		IsFacilityOwner: u.IsFacilityOwner,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}

// RegisterRequest defines the payload for user registration.
type RegisterRequest struct {
	Username        string `json:"username" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=8"`
	IsFacilityOwner bool   `json:"isFacilityOwner"`
}

// LoginRequest defines the payload for user login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ListUsersRequest defines query parameters for the admin user listing.
type ListUsersRequest struct {
	request.ListParams
	Email           string `form:"email"`
	Username        string `form:"username"`
	IsFacilityOwner *bool  `form:"isFacilityOwner"`
	SortBy          string `form:"sort_by" binding:"omitempty,oneof=username email created_at"`
}

// UpdateUserRequest defines fields an admin may change. Pointers distinguish
// "field not sent" from zero values.
type UpdateUserRequest struct {
	Username        *string `json:"username"`
	ProfilePic      *string `json:"profilePic"`
	IsAdmin         *bool   `json:"isAdmin"`
	IsFacilityOwner *bool   `json:"isFacilityOwner"`
}

// AuthEnvelope wraps auth responses in the standard success envelope.
type AuthEnvelope struct {
	Success     bool         `json:"success"`
	Message     string       `json:"message"`
	AccessToken string       `json:"accessToken,omitempty"`
	User        UserResponse `json:"user"`
}

// UserEnvelope wraps a single user in the standard success envelope.
type UserEnvelope struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}
