package court

import (
	"net/http"
	"time"

	"github.com/quickcourt/quickcourt-backend/internal/pkg/apperror"
	"github.com/quickcourt/quickcourt-backend/internal/pkg/timeofday"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "court not found")
	ErrFacilityNotFound = apperror.New(http.StatusNotFound, "facility not found")
	ErrInvalidName      = apperror.New(http.StatusBadRequest, "court name must be 2-50 characters")
	ErrSportNotOffered  = apperror.New(http.StatusBadRequest, "sport type is not offered by the facility")
	ErrNegativePrice    = apperror.New(http.StatusBadRequest, "price per hour cannot be negative")
	ErrInvalidHours     = apperror.New(http.StatusBadRequest, "operating hours start must be before end")
	ErrHasBookings      = apperror.New(http.StatusConflict, "court has bookings; it cannot be deleted")
	ErrPermissionDenied = apperror.New(http.StatusForbidden, "you are not allowed to manage courts of this facility")
)

// Court is a bookable unit inside a facility, tied to one sport and a daily
// operating window. FacilityID never changes after creation.
type Court struct {
	ID              string
	FacilityID      string
	FacilityName    string
	FacilityOwnerID string
	Name            string
	SportType       string
	PricePerHour    float64
	OpenMin         timeofday.Minutes // operating hours start
	CloseMin        timeofday.Minutes // operating hours end, exclusive
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Filter defines parameters for listing courts.
type Filter struct {
	FacilityID string
	SportType  string
	SearchTerm string

	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
