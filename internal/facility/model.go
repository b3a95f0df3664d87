package facility

import (
	"net/http"
	"time"

	"github.com/quickcourt/quickcourt-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "facility not found")
	ErrNameRequired     = apperror.New(http.StatusBadRequest, "facility name must be 3-100 characters")
	ErrLocationRequired = apperror.New(http.StatusBadRequest, "location is required")
	ErrSportsRequired   = apperror.New(http.StatusBadRequest, "at least one sport type is required")
	ErrDuplicateName    = apperror.New(http.StatusConflict, "a facility with this name already exists")
	ErrHasCourts        = apperror.New(http.StatusConflict, "facility still has courts; delete them first")
	ErrInvalidStatus    = apperror.New(http.StatusBadRequest, "invalid facility status")
	ErrPermissionDenied = apperror.New(http.StatusForbidden, "permission denied")
)

// Status is the moderation state of a facility. New facilities start as
// pending until an admin approves or rejects them.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// ValidStatus reports whether s is one of the known statuses.
func ValidStatus(s Status) bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

// Facility is a physical venue offering one or more sports. OwnerID is set
// at creation and never changes.
type Facility struct {
	ID          string
	OwnerID     string
	OwnerName   string
	Name        string
	Location    string
	Description string
	Sports      []string
	Amenities   []string
	Images      []string
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OffersSport reports whether the facility lists the given sport.
func (f *Facility) OffersSport(sport string) bool {
	for _, s := range f.Sports {
		if s == sport {
			return true
		}
	}
	return false
}

// Filter defines parameters for listing facilities.
type Filter struct {
	OwnerID    string
	Sport      string
	Status     string
	SearchTerm string // matches name, description or location

	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}
