package http

import (
	"time"

	"github.com/quickcourt/quickcourt-backend/internal/facility"
	"github.com/quickcourt/quickcourt-backend/internal/pkg/request"
	userHttp "github.com/quickcourt/quickcourt-backend/internal/user/http"
)

// FacilityResponse is the API shape of a facility.
type FacilityResponse struct {
	ID          string           `json:"id"`
	Owner       userHttp.UserTag `json:"owner"`
	Name        string           `json:"name"`
	Location    string           `json:"location"`
	Description string           `json:"description"`
	Sports      []string         `json:"sports"`
	Amenities   []string         `json:"amenities"`
	Images      []string         `json:"images"`
	Status      string           `json:"status"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// FacilityTag is a brief representation for embedding in other responses.
type FacilityTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func NewFacilityResponse(f *facility.Facility) FacilityResponse {
	return FacilityResponse{
		ID:          f.ID,
		Owner:       userHttp.UserTag{ID: f.OwnerID, Username: f.OwnerName},
		Name:        f.Name,
		Location:    f.Location,
		Description: f.Description,
		Sports:      f.Sports,
		Amenities:   f.Amenities,
		Images:      f.Images,
		Status:      string(f.Status),
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}

// FacilityEnvelope wraps a single facility in the standard success envelope.
type FacilityEnvelope struct {
	Success  bool             `json:"success"`
	Message  string           `json:"message"`
	Facility FacilityResponse `json:"facility"`
}

// CreateFacilityRequest is the payload for POST /api/facility/create.
type CreateFacilityRequest struct {
	Name        string   `json:"name" binding:"required"`
	Location    string   `json:"location" binding:"required"`
	Description string   `json:"description"`
	Sports      []string `json:"sports" binding:"required,min=1"`
	Amenities   []string `json:"amenities"`
	Images      []string `json:"images"`
}

// UpdateFacilityRequest is the payload for PUT /api/facility/updatefacility/:id.
type UpdateFacilityRequest struct {
	Name        *string  `json:"name"`
	Location    *string  `json:"location"`
	Description *string  `json:"description"`
	Sports      []string `json:"sports"`
	Amenities   []string `json:"amenities"`
	Images      []string `json:"images"`
}

// UpdateStatusRequest is the payload for PATCH /api/facility/status/:id.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending approved rejected"`
}

// ListFacilitiesRequest defines query parameters for listing facilities.
type ListFacilitiesRequest struct {
	request.ListParams
	FacilityID string `form:"facilityId" binding:"omitempty,uuid"`
	OwnerID    string `form:"ownerId" binding:"omitempty,uuid"`
	Sport      string `form:"sport"`
	Status     string `form:"status" binding:"omitempty,oneof=pending approved rejected"`
	SearchTerm string `form:"searchTerm"`
	SortBy     string `form:"sort_by" binding:"omitempty,oneof=name created_at"`
}
