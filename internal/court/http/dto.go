package http

import (
	"time"

	"github.com/quickcourt/quickcourt-backend/internal/court"
	facilityHttp "github.com/quickcourt/quickcourt-backend/internal/facility/http"
	"github.com/quickcourt/quickcourt-backend/internal/pkg/request"
)

// CourtResponse is the API shape of a court. Operating hours are rendered
// back as "HH:MM" strings.
type CourtResponse struct {
	ID           string                   `json:"id"`
	Facility     facilityHttp.FacilityTag `json:"facility"`
	Name         string                   `json:"name"`
	SportType    string                   `json:"sportType"`
	PricePerHour float64                  `json:"pricePerHour"`
	OpenTime     string                   `json:"openTime"`
	CloseTime    string                   `json:"closeTime"`
	CreatedAt    time.Time                `json:"createdAt"`
	UpdatedAt    time.Time                `json:"updatedAt"`
}

func NewCourtResponse(ct *court.Court) CourtResponse {
	return CourtResponse{
		ID:           ct.ID,
		Facility:     facilityHttp.FacilityTag{ID: ct.FacilityID, Name: ct.FacilityName},
		Name:         ct.Name,
		SportType:    ct.SportType,
		PricePerHour: ct.PricePerHour,
		OpenTime:     ct.OpenMin.String(),
		CloseTime:    ct.CloseMin.String(),
		CreatedAt:    ct.CreatedAt,
		UpdatedAt:    ct.UpdatedAt,
	}
}

// CourtEnvelope wraps a single court in the standard success envelope.
type CourtEnvelope struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Court   CourtResponse `json:"court"`
}

// CreateCourtRequest is the payload for POST /api/court/create.
type CreateCourtRequest struct {
	FacilityID   string  `json:"facilityId" binding:"required,uuid"`
	Name         string  `json:"name" binding:"required"`
	SportType    string  `json:"sportType" binding:"required"`
	PricePerHour float64 `json:"pricePerHour" binding:"required"`
	OpenTime     string  `json:"openTime" binding:"required"`
	CloseTime    string  `json:"closeTime" binding:"required"`
}

// UpdateCourtRequest is the payload for PUT /api/court/updatecourt/:id.
type UpdateCourtRequest struct {
	Name         *string  `json:"name"`
	SportType    *string  `json:"sportType"`
	PricePerHour *float64 `json:"pricePerHour"`
	OpenTime     *string  `json:"openTime"`
	CloseTime    *string  `json:"closeTime"`
}

// ListCourtsRequest defines query parameters for listing courts.
type ListCourtsRequest struct {
	request.ListParams
	CourtID    string `form:"courtId" binding:"omitempty,uuid"`
	FacilityID string `form:"facilityId" binding:"omitempty,uuid"`
	SportType  string `form:"sportType"`
	SearchTerm string `form:"searchTerm"`
	SortBy     string `form:"sort_by" binding:"omitempty,oneof=name price_per_hour created_at"`
}
