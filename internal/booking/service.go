package booking

import (
	"context"
	"errors"
	"time"

	"github.com/quickcourt/quickcourt-backend/internal/authz"
	"github.com/quickcourt/quickcourt-backend/internal/court"
	"github.com/quickcourt/quickcourt-backend/internal/facility"
	"github.com/quickcourt/quickcourt-backend/internal/pkg/timeofday"
)

// ReserveRequest carries data to book a court. Date and times are the
// wall-clock strings from the API ("YYYY-MM-DD", "HH:MM").
type ReserveRequest struct {
	CourtID   string
	Date      string
	StartTime string
	EndTime   string
}

// BlockRequest carries data for an owner to block a slot on a court.
type BlockRequest struct {
	CourtID   string
	Date      string
	StartTime string
	EndTime   string
	Reason    string
}

// DefaultBlockReason is used when the owner gives none.
const DefaultBlockReason = "maintenance"

type Service interface {
	Reserve(ctx context.Context, p authz.Principal, req ReserveRequest) (*Booking, error)
	GetByID(ctx context.Context, p authz.Principal, id string) (*Booking, error)
	List(ctx context.Context, p authz.Principal, filter Filter) ([]*Booking, int, error)
	Cancel(ctx context.Context, p authz.Principal, id string) (*Booking, error)
	MarkCompleted(ctx context.Context, p authz.Principal, id string) (*Booking, error)

	// ListAvailability returns the ordered partition of the court's
	// operating window on the given date.
	ListAvailability(ctx context.Context, courtID, date string) ([]Slot, error)

	BlockSlot(ctx context.Context, p authz.Principal, req BlockRequest) (*Block, error)
	UnblockSlot(ctx context.Context, p authz.Principal, slotID string) error

	// Sweep completes confirmed bookings whose end time has passed.
	Sweep(ctx context.Context) (int64, error)
}

type service struct {
	repo         Repository
	courtService court.Service
	facService   facility.Service
	now          func() time.Time
}

func NewService(repo Repository, courtService court.Service, facService facility.Service) Service {
	return &service{
		repo:         repo,
		courtService: courtService,
		facService:   facService,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// parseInterval validates the date and time strings shared by Reserve and
// BlockSlot and checks them against the court's operating window.
func parseInterval(ct *court.Court, dateStr, startStr, endStr string) (time.Time, timeofday.Minutes, timeofday.Minutes, error) {
	date, err := timeofday.ParseDate(dateStr)
	if err != nil {
		return time.Time{}, 0, 0, ErrInvalidDate
	}
	start, err := timeofday.Parse(startStr)
	if err != nil {
		return time.Time{}, 0, 0, ErrInvalidTimeRange
	}
	end, err := timeofday.Parse(endStr)
	if err != nil {
		return time.Time{}, 0, 0, ErrInvalidTimeRange
	}
	if start >= end {
		return time.Time{}, 0, 0, ErrInvalidTimeRange
	}
	if start < ct.OpenMin || end > ct.CloseMin {
		return time.Time{}, 0, 0, ErrOutsideOperatingHours
	}
	return date, start, end, nil
}

func (s *service) getCourt(ctx context.Context, id string) (*court.Court, error) {
	ct, err := s.courtService.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, court.ErrNotFound) {
			return nil, ErrCourtNotFound
		}
		return nil, err
	}
	return ct, nil
}

func (s *service) Reserve(ctx context.Context, p authz.Principal, req ReserveRequest) (*Booking, error) {
	ct, err := s.getCourt(ctx, req.CourtID)
	if err != nil {
		return nil, err
	}

	date, start, end, err := parseInterval(ct, req.Date, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	if date.Add(time.Duration(start) * time.Minute).Before(s.now()) {
		return nil, ErrStartTimePast
	}

	b := &Booking{
		CourtID:         ct.ID,
		CourtName:       ct.Name,
		FacilityID:      ct.FacilityID,
		FacilityName:    ct.FacilityName,
		FacilityOwnerID: ct.FacilityOwnerID,
		UserID:          p.UserID,
		Date:            date,
		StartMin:        start,
		EndMin:          end,
		TotalPrice:      ct.PricePerHour * timeofday.Hours(start, end),
		Status:          StatusConfirmed,
	}

	if err := s.repo.Reserve(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) GetByID(ctx context.Context, p authz.Principal, id string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d := authz.CanViewBooking(p, b.UserID, b.FacilityOwnerID); !d.Allowed() {
		return nil, ErrPermissionDenied
	}
	return b, nil
}

func (s *service) List(ctx context.Context, p authz.Principal, filter Filter) ([]*Booking, int, error) {
	if !p.IsAdmin {
		if filter.FacilityID != "" {
			// Facility owners may list their own facility's bookings.
			fac, err := s.facService.GetByID(ctx, filter.FacilityID)
			if err != nil {
				return nil, 0, err
			}
			if d := authz.CanManageFacility(p, fac.OwnerID); !d.Allowed() {
				return nil, 0, ErrPermissionDenied
			}
		} else {
			filter.UserID = p.UserID
		}
	}
	return s.repo.List(ctx, filter)
}

func (s *service) Cancel(ctx context.Context, p authz.Principal, id string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if d := authz.CanCancelBooking(p, b.UserID); !d.Allowed() {
		return nil, ErrPermissionDenied
	}

	switch b.Status {
	case StatusCancelled:
		// Cancelling twice is a no-op.
		return b, nil
	case StatusCompleted:
		return nil, ErrAlreadyCompleted
	}

	if err := s.repo.UpdateStatus(ctx, id, StatusCancelled); err != nil {
		return nil, err
	}
	b.Status = StatusCancelled
	return b, nil
}

func (s *service) MarkCompleted(ctx context.Context, p authz.Principal, id string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if d := authz.CanManageFacility(p, b.FacilityOwnerID); !d.Allowed() {
		return nil, ErrPermissionDenied
	}

	switch b.Status {
	case StatusCompleted:
		return b, nil
	case StatusCancelled:
		return nil, ErrNotConfirmed
	}

	if err := s.repo.UpdateStatus(ctx, id, StatusCompleted); err != nil {
		return nil, err
	}
	b.Status = StatusCompleted
	return b, nil
}

func (s *service) ListAvailability(ctx context.Context, courtID, dateStr string) ([]Slot, error) {
	ct, err := s.getCourt(ctx, courtID)
	if err != nil {
		return nil, err
	}

	date, err := timeofday.ParseDate(dateStr)
	if err != nil {
		return nil, ErrInvalidDate
	}

	bookings, err := s.repo.ListForDate(ctx, ct.ID, date)
	if err != nil {
		return nil, err
	}
	blocks, err := s.repo.ListBlocksForDate(ctx, ct.ID, date)
	if err != nil {
		return nil, err
	}

	occupied := make([]Occupied, 0, len(bookings)+len(blocks))
	for _, b := range bookings {
		occupied = append(occupied, Occupied{StartMin: b.StartMin, EndMin: b.EndMin, Reason: ReasonBooked})
	}
	for _, blk := range blocks {
		occupied = append(occupied, Occupied{StartMin: blk.StartMin, EndMin: blk.EndMin, Reason: blk.Reason})
	}

	return BuildSchedule(ct.OpenMin, ct.CloseMin, occupied), nil
}

func (s *service) BlockSlot(ctx context.Context, p authz.Principal, req BlockRequest) (*Block, error) {
	ct, err := s.getCourt(ctx, req.CourtID)
	if err != nil {
		return nil, err
	}

	if d := authz.CanManageFacility(p, ct.FacilityOwnerID); !d.Allowed() {
		return nil, ErrPermissionDenied
	}

	date, start, end, err := parseInterval(ct, req.Date, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	reason := req.Reason
	if reason == "" {
		reason = DefaultBlockReason
	}

	blk := &Block{
		CourtID:         ct.ID,
		FacilityOwnerID: ct.FacilityOwnerID,
		Date:            date,
		StartMin:        start,
		EndMin:          end,
		Reason:          reason,
	}

	if err := s.repo.CreateBlock(ctx, blk); err != nil {
		return nil, err
	}
	return blk, nil
}

func (s *service) UnblockSlot(ctx context.Context, p authz.Principal, slotID string) error {
	blk, err := s.repo.GetBlockByID(ctx, slotID)
	if err != nil {
		return err
	}

	if d := authz.CanManageFacility(p, blk.FacilityOwnerID); !d.Allowed() {
		return ErrPermissionDenied
	}

	return s.repo.DeleteBlock(ctx, slotID)
}

func (s *service) Sweep(ctx context.Context) (int64, error) {
	return s.repo.SweepCompleted(ctx, s.now())
}
