package court

import (
	"context"
	"errors"
	"strings"

	"github.com/quickcourt/quickcourt-backend/internal/authz"
	"github.com/quickcourt/quickcourt-backend/internal/facility"
	"github.com/quickcourt/quickcourt-backend/internal/pkg/timeofday"
)

// CreateRequest carries data to create a court. Operating hours are the
// wall-clock strings from the API ("HH:MM").
type CreateRequest struct {
	FacilityID   string
	Name         string
	SportType    string
	PricePerHour float64
	OpenTime     string
	CloseTime    string
}

// UpdateRequest carries data for partial updates.
type UpdateRequest struct {
	Name         *string
	SportType    *string
	PricePerHour *float64
	OpenTime     *string
	CloseTime    *string
}

type Service interface {
	Create(ctx context.Context, p authz.Principal, req CreateRequest) (*Court, error)
	GetByID(ctx context.Context, id string) (*Court, error)
	List(ctx context.Context, filter Filter) ([]*Court, int, error)
	Update(ctx context.Context, p authz.Principal, id string, req UpdateRequest) (*Court, error)
	Delete(ctx context.Context, p authz.Principal, id string) error
}

type service struct {
	repo       Repository
	facService facility.Service
}

func NewService(repo Repository, facService facility.Service) Service {
	return &service{
		repo:       repo,
		facService: facService,
	}
}

func validName(name string) bool {
	n := len(strings.TrimSpace(name))
	return n >= 2 && n <= 50
}

func (s *service) Create(ctx context.Context, p authz.Principal, req CreateRequest) (*Court, error) {
	fac, err := s.facService.GetByID(ctx, req.FacilityID)
	if err != nil {
		if errors.Is(err, facility.ErrNotFound) {
			return nil, ErrFacilityNotFound
		}
		return nil, err
	}

	if d := authz.CanManageFacility(p, fac.OwnerID); !d.Allowed() {
		return nil, ErrPermissionDenied
	}

	name := strings.TrimSpace(req.Name)
	sportType := strings.TrimSpace(req.SportType)

	if !validName(name) {
		return nil, ErrInvalidName
	}
	if !fac.OffersSport(sportType) {
		return nil, ErrSportNotOffered
	}
	if req.PricePerHour < 0 {
		return nil, ErrNegativePrice
	}

	open, close, err := parseHours(req.OpenTime, req.CloseTime)
	if err != nil {
		return nil, err
	}

	ct := &Court{
		FacilityID:      fac.ID,
		FacilityName:    fac.Name,
		FacilityOwnerID: fac.OwnerID,
		Name:            name,
		SportType:       sportType,
		PricePerHour:    req.PricePerHour,
		OpenMin:         open,
		CloseMin:        close,
	}

	if err := s.repo.Create(ctx, ct); err != nil {
		return nil, err
	}
	return ct, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Court, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Court, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, p authz.Principal, id string, req UpdateRequest) (*Court, error) {
	ct, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if d := authz.CanManageFacility(p, ct.FacilityOwnerID); !d.Allowed() {
		return nil, ErrPermissionDenied
	}

	if req.Name != nil {
		if !validName(*req.Name) {
			return nil, ErrInvalidName
		}
		ct.Name = strings.TrimSpace(*req.Name)
	}

	if req.SportType != nil {
		// Re-check against the parent facility's sports set.
		fac, err := s.facService.GetByID(ctx, ct.FacilityID)
		if err != nil {
			return nil, err
		}
		sportType := strings.TrimSpace(*req.SportType)
		if !fac.OffersSport(sportType) {
			return nil, ErrSportNotOffered
		}
		ct.SportType = sportType
	}

	if req.PricePerHour != nil {
		if *req.PricePerHour < 0 {
			return nil, ErrNegativePrice
		}
		ct.PricePerHour = *req.PricePerHour
	}

	if req.OpenTime != nil || req.CloseTime != nil {
		openStr := ct.OpenMin.String()
		closeStr := ct.CloseMin.String()
		if req.OpenTime != nil {
			openStr = *req.OpenTime
		}
		if req.CloseTime != nil {
			closeStr = *req.CloseTime
		}
		open, close, err := parseHours(openStr, closeStr)
		if err != nil {
			return nil, err
		}
		ct.OpenMin = open
		ct.CloseMin = close
	}

	if err := s.repo.Update(ctx, ct); err != nil {
		return nil, err
	}
	return ct, nil
}

func (s *service) Delete(ctx context.Context, p authz.Principal, id string) error {
	ct, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if d := authz.CanManageFacility(p, ct.FacilityOwnerID); !d.Allowed() {
		return ErrPermissionDenied
	}

	return s.repo.Delete(ctx, id)
}

func parseHours(openStr, closeStr string) (timeofday.Minutes, timeofday.Minutes, error) {
	open, err := timeofday.Parse(openStr)
	if err != nil {
		return 0, 0, ErrInvalidHours
	}
	close, err := timeofday.Parse(closeStr)
	if err != nil {
		return 0, 0, ErrInvalidHours
	}
	if open >= close {
		return 0, 0, ErrInvalidHours
	}
	return open, close, nil
}
