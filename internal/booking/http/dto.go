package http

import (
	"time"

	"github.com/quickcourt/quickcourt-backend/internal/booking"
	facilityHttp "github.com/quickcourt/quickcourt-backend/internal/facility/http"
	"github.com/quickcourt/quickcourt-backend/internal/pkg/request"
	"github.com/quickcourt/quickcourt-backend/internal/pkg/timeofday"
)

// BookingResponse is the API shape of a booking. Date and times are rendered
// as "YYYY-MM-DD" and "HH:MM" strings.
type BookingResponse struct {
	ID         string                   `json:"id"`
	Court      CourtTag                 `json:"court"`
	Facility   facilityHttp.FacilityTag `json:"facility"`
	UserID     string                   `json:"userId"`
	UserName   string                   `json:"userName,omitempty"`
	Date       string                   `json:"date"`
	StartTime  string                   `json:"startTime"`
	EndTime    string                   `json:"endTime"`
	TotalPrice float64                  `json:"totalPrice"`
	Status     string                   `json:"status"`
	CreatedAt  time.Time                `json:"createdAt"`
	UpdatedAt  time.Time                `json:"updatedAt"`
}

// CourtTag is a brief court representation for embedding.
type CourtTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:         b.ID,
		Court:      CourtTag{ID: b.CourtID, Name: b.CourtName},
		Facility:   facilityHttp.FacilityTag{ID: b.FacilityID, Name: b.FacilityName},
		UserID:     b.UserID,
		UserName:   b.UserName,
		Date:       timeofday.FormatDate(b.Date),
		StartTime:  b.StartMin.String(),
		EndTime:    b.EndMin.String(),
		TotalPrice: b.TotalPrice,
		Status:     string(b.Status),
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}

// BookingEnvelope wraps a single booking in the standard success envelope.
type BookingEnvelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Booking BookingResponse `json:"booking"`
}

// SlotResponse is one segment of a court's daily schedule.
type SlotResponse struct {
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	IsAvailable bool   `json:"isAvailable"`
	Reason      string `json:"reason,omitempty"`
}

// AvailabilityEnvelope is the response of GET /api/booking/availability.
type AvailabilityEnvelope struct {
	Success bool           `json:"success"`
	CourtID string         `json:"courtId"`
	Date    string         `json:"date"`
	Slots   []SlotResponse `json:"slots"`
}

// BlockResponse is the API shape of a blocked slot.
type BlockResponse struct {
	ID        string    `json:"id"`
	CourtID   string    `json:"courtId"`
	Date      string    `json:"date"`
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewBlockResponse(blk *booking.Block) BlockResponse {
	return BlockResponse{
		ID:        blk.ID,
		CourtID:   blk.CourtID,
		Date:      timeofday.FormatDate(blk.Date),
		StartTime: blk.StartMin.String(),
		EndTime:   blk.EndMin.String(),
		Reason:    blk.Reason,
		CreatedAt: blk.CreatedAt,
	}
}

// BlockEnvelope wraps a blocked slot in the standard success envelope.
type BlockEnvelope struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Slot    BlockResponse `json:"slot"`
}

// ReserveBookingRequest is the payload for POST /api/booking.
type ReserveBookingRequest struct {
	CourtID   string `json:"courtId" binding:"required,uuid"`
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"startTime" binding:"required"`
	EndTime   string `json:"endTime" binding:"required"`
}

// UpdateBookingRequest is the payload for PUT /api/booking/:id. Users may
// only cancel; completing is for admins and facility owners.
type UpdateBookingRequest struct {
	Status string `json:"status" binding:"required,oneof=cancelled completed"`
}

// BlockSlotRequest is the payload for POST /api/court/blockslot/:courtId.
type BlockSlotRequest struct {
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"startTime" binding:"required"`
	EndTime   string `json:"endTime" binding:"required"`
	Reason    string `json:"reason"`
}

// AvailabilityRequest defines query parameters for the availability endpoint.
type AvailabilityRequest struct {
	CourtID string `form:"courtId" binding:"required,uuid"`
	Date    string `form:"date" binding:"required"`
}

// ListBookingsRequest defines query parameters for listing bookings.
type ListBookingsRequest struct {
	request.ListParams
	UserID     string `form:"userId" binding:"omitempty,uuid"`
	CourtID    string `form:"courtId" binding:"omitempty,uuid"`
	FacilityID string `form:"facilityId" binding:"omitempty,uuid"`
	Status     string `form:"status" binding:"omitempty,oneof=confirmed cancelled completed"`
	DateFrom   string `form:"dateFrom"`
	DateTo     string `form:"dateTo"`
	SortBy     string `form:"sort_by" binding:"omitempty,oneof=date created_at total_price"`
}
