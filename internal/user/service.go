package user

import (
	"context"
	"regexp"
	"strings"

	"github.com/quickcourt/quickcourt-backend/internal/auth"
)

var usernamePattern = regexp.MustCompile(`^[a-z0-9]{5,30}$`)

const minPasswordLength = 8

// RegisterRequest carries data for creating an account.
type RegisterRequest struct {
	Username        string
	Email           string
	Password        string
	IsFacilityOwner bool
}

// UpdateRequest carries data for admin-side partial updates.
type UpdateRequest struct {
	Username        *string
	ProfilePic      *string
	IsAdmin         *bool
	IsFacilityOwner *bool
}

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*User, error)
	Login(ctx context.Context, email, password string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	List(ctx context.Context, filter Filter) ([]*User, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*User, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	hasher auth.PasswordHasher
}

func NewService(repo Repository, hasher auth.PasswordHasher) Service {
	return &service{
		repo:   repo,
		hasher: hasher,
	}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(strings.ToLower(req.Email))

	if email == "" {
		return nil, ErrEmailRequired
	}
	if !usernamePattern.MatchString(username) {
		return nil, ErrInvalidUsername
	}
	if len(req.Password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	u := &User{
		Username:        username,
		Email:           email,
		PasswordHash:    hash,
		ProfilePic:      DefaultProfilePic,
		IsFacilityOwner: req.IsFacilityOwner,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}

func (s *service) Login(ctx context.Context, email, password string) (*User, error) {
	u, err := s.repo.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		// Do not reveal whether the email exists.
		return nil, ErrInvalidCredentials
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	return u, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*User, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Username != nil {
		if !usernamePattern.MatchString(*req.Username) {
			return nil, ErrInvalidUsername
		}
		u.Username = *req.Username
	}
	if req.ProfilePic != nil {
		u.ProfilePic = *req.ProfilePic
	}
	if req.IsAdmin != nil {
		u.IsAdmin = *req.IsAdmin
	}
	if req.IsFacilityOwner != nil {
		u.IsFacilityOwner = *req.IsFacilityOwner
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
