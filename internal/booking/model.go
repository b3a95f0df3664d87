package booking

import (
	"net/http"
	"time"

	"github.com/quickcourt/quickcourt-backend/internal/pkg/apperror"
	"github.com/quickcourt/quickcourt-backend/internal/pkg/timeofday"
)

type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

func ValidStatus(s Status) bool {
	return s == StatusConfirmed || s == StatusCancelled || s == StatusCompleted
}

var (
	ErrNotFound              = apperror.New(http.StatusNotFound, "booking not found")
	ErrCourtNotFound         = apperror.New(http.StatusNotFound, "court not found")
	ErrBlockNotFound         = apperror.New(http.StatusNotFound, "blocked slot not found")
	ErrInvalidDate           = apperror.New(http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
	ErrInvalidTimeRange      = apperror.New(http.StatusBadRequest, "start time must be before end time")
	ErrOutsideOperatingHours = apperror.New(http.StatusBadRequest, "requested time is outside the court's operating hours")
	ErrInvalidStatus         = apperror.New(http.StatusBadRequest, "invalid booking status")
	ErrStartTimePast         = apperror.New(http.StatusBadRequest, "booking start time cannot be in the past")
	ErrTimeConflict          = apperror.New(http.StatusConflict, "the selected time slot is already taken")
	ErrAlreadyCompleted      = apperror.New(http.StatusConflict, "a completed booking cannot be cancelled")
	ErrNotConfirmed          = apperror.New(http.StatusConflict, "only confirmed bookings can be completed")
	ErrPermissionDenied      = apperror.New(http.StatusForbidden, "you are not allowed to perform this action on the booking")
)

// Booking is one confirmed-at-creation reservation of a court for a
// half-open interval [StartMin, EndMin) on a single calendar date.
type Booking struct {
	ID              string
	CourtID         string
	CourtName       string
	FacilityID      string
	FacilityName    string
	FacilityOwnerID string
	UserID          string
	UserName        string
	Date            time.Time
	StartMin        timeofday.Minutes
	EndMin          timeofday.Minutes
	TotalPrice      float64
	Status          Status
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Block is an owner-declared unavailable interval on a court. Blocks compete
// with bookings for admission and surface in availability with their reason.
type Block struct {
	ID              string
	CourtID         string
	FacilityOwnerID string
	Date            time.Time
	StartMin        timeofday.Minutes
	EndMin          timeofday.Minutes
	Reason          string
	CreatedAt       time.Time
}

// Slot is one segment of a court's operating window on a date. Unavailable
// slots carry the reason ("booked" or the block's reason).
type Slot struct {
	StartMin    timeofday.Minutes
	EndMin      timeofday.Minutes
	IsAvailable bool
	Reason      string
}

// Filter defines parameters for listing bookings.
type Filter struct {
	UserID     string
	CourtID    string
	FacilityID string
	Status     Status
	DateFrom   *time.Time
	DateTo     *time.Time

	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
