package facility

import (
	"context"
	"strings"

	"github.com/quickcourt/quickcourt-backend/internal/authz"
)

// CreateRequest carries data to create a facility.
type CreateRequest struct {
	Name        string
	Location    string
	Description string
	Sports      []string
	Amenities   []string
	Images      []string
}

// UpdateRequest carries data for partial updates. Status changes go through
// UpdateStatus instead; owners cannot approve their own facilities.
type UpdateRequest struct {
	Name        *string
	Location    *string
	Description *string
	Sports      []string
	Amenities   []string
	Images      []string
}

type Service interface {
	Create(ctx context.Context, p authz.Principal, req CreateRequest) (*Facility, error)
	GetByID(ctx context.Context, id string) (*Facility, error)
	List(ctx context.Context, filter Filter) ([]*Facility, int, error)
	Update(ctx context.Context, p authz.Principal, id string, req UpdateRequest) (*Facility, error)
	UpdateStatus(ctx context.Context, p authz.Principal, id string, status Status) (*Facility, error)
	Delete(ctx context.Context, p authz.Principal, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func validateCore(name, location string, sports []string) error {
	if n := len(strings.TrimSpace(name)); n < 3 || n > 100 {
		return ErrNameRequired
	}
	if strings.TrimSpace(location) == "" {
		return ErrLocationRequired
	}
	if len(sports) == 0 {
		return ErrSportsRequired
	}
	for _, s := range sports {
		if strings.TrimSpace(s) == "" {
			return ErrSportsRequired
		}
	}
	return nil
}

func (s *service) Create(ctx context.Context, p authz.Principal, req CreateRequest) (*Facility, error) {
	if d := authz.CanCreateFacility(p); !d.Allowed() {
		return nil, ErrPermissionDenied
	}

	if err := validateCore(req.Name, req.Location, req.Sports); err != nil {
		return nil, err
	}

	f := &Facility{
		OwnerID:     p.UserID,
		Name:        strings.TrimSpace(req.Name),
		Location:    strings.TrimSpace(req.Location),
		Description: strings.TrimSpace(req.Description),
		Sports:      req.Sports,
		Amenities:   req.Amenities,
		Images:      req.Images,
		Status:      StatusPending,
	}
	if f.Amenities == nil {
		f.Amenities = []string{}
	}
	if f.Images == nil {
		f.Images = []string{}
	}

	if err := s.repo.Create(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Facility, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Facility, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, p authz.Principal, id string, req UpdateRequest) (*Facility, error) {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if d := authz.CanManageFacility(p, f.OwnerID); !d.Allowed() {
		return nil, ErrPermissionDenied
	}

	if req.Name != nil {
		f.Name = strings.TrimSpace(*req.Name)
	}
	if req.Location != nil {
		f.Location = strings.TrimSpace(*req.Location)
	}
	if req.Description != nil {
		f.Description = strings.TrimSpace(*req.Description)
	}
	if req.Sports != nil {
		f.Sports = req.Sports
	}
	if req.Amenities != nil {
		f.Amenities = req.Amenities
	}
	if req.Images != nil {
		f.Images = req.Images
	}

	if err := validateCore(f.Name, f.Location, f.Sports); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *service) UpdateStatus(ctx context.Context, p authz.Principal, id string, status Status) (*Facility, error) {
	if d := authz.CanModerateFacility(p); !d.Allowed() {
		return nil, ErrPermissionDenied
	}
	if !ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	f.Status = status
	if err := s.repo.Update(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *service) Delete(ctx context.Context, p authz.Principal, id string) error {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if d := authz.CanManageFacility(p, f.OwnerID); !d.Allowed() {
		return ErrPermissionDenied
	}

	// Refuse deletion while courts reference this facility. Cascading would
	// silently drop booking history with them.
	n, err := s.repo.CountCourts(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return ErrHasCourts
	}

	return s.repo.Delete(ctx, id)
}
