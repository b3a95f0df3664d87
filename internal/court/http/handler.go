package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/quickcourt/quickcourt-backend/internal/authz"
	"github.com/quickcourt/quickcourt-backend/internal/court"
	"github.com/quickcourt/quickcourt-backend/internal/pkg/apperror"
	"github.com/quickcourt/quickcourt-backend/internal/pkg/response"
)

type Handler struct {
	service court.Service
}

func NewHandler(service court.Service) *Handler {
	return &Handler{service: service}
}

// Create adds a court to a facility. Facility owner or admin only.
func (h *Handler) Create(c *gin.Context) {
	var body CreateCourtRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, apperror.Wrap(err, http.StatusBadRequest, "please provide all required fields (facilityId, name, sportType, pricePerHour, openTime, closeTime)"))
		return
	}

	ct, err := h.service.Create(c.Request.Context(), authz.PrincipalFrom(c), court.CreateRequest{
		FacilityID:   body.FacilityID,
		Name:         body.Name,
		SportType:    body.SportType,
		PricePerHour: body.PricePerHour,
		OpenTime:     body.OpenTime,
		CloseTime:    body.CloseTime,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, CourtEnvelope{
		Success: true,
		Message: "court created successfully",
		Court:   NewCourtResponse(ct),
	})
}

// List returns courts, optionally filtered. Passing courtId returns that
// single court in the envelope instead of a page.
func (h *Handler) List(c *gin.Context) {
	var req ListCourtsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, apperror.Wrap(err, http.StatusBadRequest, "invalid query parameters"))
		return
	}

	if req.CourtID != "" {
		ct, err := h.service.GetByID(c.Request.Context(), req.CourtID)
		if err != nil {
			response.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, CourtEnvelope{
			Success: true,
			Message: "court retrieved successfully",
			Court:   NewCourtResponse(ct),
		})
		return
	}

	filter := court.Filter{
		FacilityID: req.FacilityID,
		SportType:  req.SportType,
		SearchTerm: req.SearchTerm,
		Page:       req.Page,
		PageSize:   req.PageSize,
		SortBy:     req.SortBy,
		SortOrder:  strings.ToUpper(req.SortOrder),
	}

	courts, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]CourtResponse, len(courts))
	for i, ct := range courts {
		items[i] = NewCourtResponse(ct)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

// Update modifies a court. Facility owner or admin only.
func (h *Handler) Update(c *gin.Context) {
	id, ok := courtIDParam(c)
	if !ok {
		return
	}

	var body UpdateCourtRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, apperror.Wrap(err, http.StatusBadRequest, "invalid request body"))
		return
	}

	ct, err := h.service.Update(c.Request.Context(), authz.PrincipalFrom(c), id, court.UpdateRequest{
		Name:         body.Name,
		SportType:    body.SportType,
		PricePerHour: body.PricePerHour,
		OpenTime:     body.OpenTime,
		CloseTime:    body.CloseTime,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, CourtEnvelope{
		Success: true,
		Message: "court updated successfully",
		Court:   NewCourtResponse(ct),
	})
}

// Delete removes a court with no bookings. Facility owner or admin only.
func (h *Handler) Delete(c *gin.Context) {
	id, ok := courtIDParam(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), authz.PrincipalFrom(c), id); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "court deleted successfully",
	})
}

func courtIDParam(c *gin.Context) (string, bool) {
	id := c.Param("courtId")
	if !isUUID(id) {
		response.Error(c, apperror.New(http.StatusBadRequest, "invalid court id"))
		return "", false
	}
	return id, true
}
