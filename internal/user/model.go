package user

import (
	"net/http"
	"time"

	"github.com/quickcourt/quickcourt-backend/internal/pkg/apperror"
)

var (
	ErrNotFound           = apperror.New(http.StatusNotFound, "user not found")
	ErrEmailAlreadyUsed   = apperror.New(http.StatusConflict, "email already used")
	ErrUsernameTaken      = apperror.New(http.StatusConflict, "username already taken")
	ErrInvalidCredentials = apperror.New(http.StatusUnauthorized, "invalid email or password")
	ErrEmailRequired      = apperror.New(http.StatusBadRequest, "email is required")
	ErrInvalidUsername    = apperror.New(http.StatusBadRequest, "username must be 5-30 lowercase alphanumeric characters")
	ErrPasswordTooShort   = apperror.New(http.StatusBadRequest, "password is too short")
)

// DefaultProfilePic is used when a user has not uploaded an avatar.
const DefaultProfilePic = "/static/default-avatar.jpg"

// User represents an account. The two role flags drive every authorization
// decision: IsAdmin grants moderation rights, IsFacilityOwner allows
// creating facilities.
type User struct {
	ID              string // UUID
	Username        string
	Email           string
	PasswordHash    string
	ProfilePic      string
	IsAdmin         bool
	IsFacilityOwner bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Filter defines filter options for listing users.
type Filter struct {
	Email           string
	Username        string
	IsFacilityOwner *bool // pointer to distinguish false from not-set

	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
