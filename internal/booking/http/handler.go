package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/quickcourt/quickcourt-backend/internal/authz"
	"github.com/quickcourt/quickcourt-backend/internal/booking"
	"github.com/quickcourt/quickcourt-backend/internal/pkg/apperror"
	"github.com/quickcourt/quickcourt-backend/internal/pkg/response"
	"github.com/quickcourt/quickcourt-backend/internal/pkg/timeofday"
)

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

// Reserve books a court slot for the requesting user.
func (h *Handler) Reserve(c *gin.Context) {
	var body ReserveBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, apperror.Wrap(err, http.StatusBadRequest, "please provide all required fields (courtId, date, startTime, endTime)"))
		return
	}

	b, err := h.service.Reserve(c.Request.Context(), authz.PrincipalFrom(c), booking.ReserveRequest{
		CourtID:   body.CourtID,
		Date:      body.Date,
		StartTime: body.StartTime,
		EndTime:   body.EndTime,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, BookingEnvelope{
		Success: true,
		Message: "booking confirmed successfully",
		Booking: NewBookingResponse(b),
	})
}

// List returns the requesting user's bookings. Admins may list anyone's;
// facility owners may list their facility's by facilityId.
func (h *Handler) List(c *gin.Context) {
	var req ListBookingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, apperror.Wrap(err, http.StatusBadRequest, "invalid query parameters"))
		return
	}

	filter := booking.Filter{
		UserID:     req.UserID,
		CourtID:    req.CourtID,
		FacilityID: req.FacilityID,
		Status:     booking.Status(req.Status),
		Page:       req.Page,
		PageSize:   req.PageSize,
		SortBy:     req.SortBy,
		SortOrder:  strings.ToUpper(req.SortOrder),
	}

	var err error
	if filter.DateFrom, err = optionalDate(req.DateFrom); err != nil {
		response.Error(c, booking.ErrInvalidDate)
		return
	}
	if filter.DateTo, err = optionalDate(req.DateTo); err != nil {
		response.Error(c, booking.ErrInvalidDate)
		return
	}

	bookings, total, err := h.service.List(c.Request.Context(), authz.PrincipalFrom(c), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

// Get returns one booking. Booking owner, facility owner or admin only.
func (h *Handler) Get(c *gin.Context) {
	id, ok := bookingIDParam(c)
	if !ok {
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), authz.PrincipalFrom(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, BookingEnvelope{
		Success: true,
		Message: "booking retrieved successfully",
		Booking: NewBookingResponse(b),
	})
}

// Update changes a booking's status. Cancelling is open to the booking
// owner; completing requires the facility owner or an admin.
func (h *Handler) Update(c *gin.Context) {
	id, ok := bookingIDParam(c)
	if !ok {
		return
	}

	var body UpdateBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, apperror.Wrap(err, http.StatusBadRequest, "status must be cancelled or completed"))
		return
	}

	var (
		b   *booking.Booking
		err error
	)
	switch booking.Status(body.Status) {
	case booking.StatusCancelled:
		b, err = h.service.Cancel(c.Request.Context(), authz.PrincipalFrom(c), id)
	case booking.StatusCompleted:
		b, err = h.service.MarkCompleted(c.Request.Context(), authz.PrincipalFrom(c), id)
	default:
		err = booking.ErrInvalidStatus
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, BookingEnvelope{
		Success: true,
		Message: "booking updated successfully",
		Booking: NewBookingResponse(b),
	})
}

// Availability returns the court's schedule for one date.
func (h *Handler) Availability(c *gin.Context) {
	var req AvailabilityRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, apperror.Wrap(err, http.StatusBadRequest, "courtId and date query parameters are required"))
		return
	}

	slots, err := h.service.ListAvailability(c.Request.Context(), req.CourtID, req.Date)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]SlotResponse, len(slots))
	for i, s := range slots {
		items[i] = SlotResponse{
			StartTime:   s.StartMin.String(),
			EndTime:     s.EndMin.String(),
			IsAvailable: s.IsAvailable,
			Reason:      s.Reason,
		}
	}

	c.JSON(http.StatusOK, AvailabilityEnvelope{
		Success: true,
		CourtID: req.CourtID,
		Date:    req.Date,
		Slots:   items,
	})
}

// BlockSlot marks an interval on a court as unavailable.
func (h *Handler) BlockSlot(c *gin.Context) {
	courtID := c.Param("courtId")
	if !isUUID(courtID) {
		response.Error(c, apperror.New(http.StatusBadRequest, "invalid court id"))
		return
	}

	var body BlockSlotRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, apperror.Wrap(err, http.StatusBadRequest, "please provide all required fields (date, startTime, endTime)"))
		return
	}

	blk, err := h.service.BlockSlot(c.Request.Context(), authz.PrincipalFrom(c), booking.BlockRequest{
		CourtID:   courtID,
		Date:      body.Date,
		StartTime: body.StartTime,
		EndTime:   body.EndTime,
		Reason:    body.Reason,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, BlockEnvelope{
		Success: true,
		Message: "time slot blocked successfully",
		Slot:    NewBlockResponse(blk),
	})
}

// UnblockSlot removes a blocked slot.
func (h *Handler) UnblockSlot(c *gin.Context) {
	slotID := c.Param("slotId")
	if !isUUID(slotID) {
		response.Error(c, apperror.New(http.StatusBadRequest, "invalid slot id"))
		return
	}

	if err := h.service.UnblockSlot(c.Request.Context(), authz.PrincipalFrom(c), slotID); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "time slot unblocked successfully",
	})
}

func bookingIDParam(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if !isUUID(id) {
		response.Error(c, apperror.New(http.StatusBadRequest, "invalid booking id"))
		return "", false
	}
	return id, true
}

func optionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	d, err := timeofday.ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
