package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/quickcourt/quickcourt-backend/internal/authz"
	"github.com/quickcourt/quickcourt-backend/internal/facility"
	"github.com/quickcourt/quickcourt-backend/internal/pkg/apperror"
	"github.com/quickcourt/quickcourt-backend/internal/pkg/response"
)

type Handler struct {
	service facility.Service
}

func NewHandler(service facility.Service) *Handler {
	return &Handler{service: service}
}

// Create registers a new facility owned by the requesting principal.
func (h *Handler) Create(c *gin.Context) {
	var body CreateFacilityRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, apperror.Wrap(err, http.StatusBadRequest, "please provide all required fields (name, location, and at least one sport)"))
		return
	}

	f, err := h.service.Create(c.Request.Context(), authz.PrincipalFrom(c), facility.CreateRequest{
		Name:        body.Name,
		Location:    body.Location,
		Description: body.Description,
		Sports:      body.Sports,
		Amenities:   body.Amenities,
		Images:      body.Images,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, FacilityEnvelope{
		Success:  true,
		Message:  "facility created successfully",
		Facility: NewFacilityResponse(f),
	})
}

// List returns facilities, optionally filtered. Passing facilityId returns
// that single facility in the envelope instead of a page.
func (h *Handler) List(c *gin.Context) {
	var req ListFacilitiesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, apperror.Wrap(err, http.StatusBadRequest, "invalid query parameters"))
		return
	}

	// Single-facility lookup by id.
	if req.FacilityID != "" {
		f, err := h.service.GetByID(c.Request.Context(), req.FacilityID)
		if err != nil {
			response.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, FacilityEnvelope{
			Success:  true,
			Message:  "facility retrieved successfully",
			Facility: NewFacilityResponse(f),
		})
		return
	}

	filter := facility.Filter{
		OwnerID:    req.OwnerID,
		Sport:      req.Sport,
		Status:     req.Status,
		SearchTerm: req.SearchTerm,
		Page:       req.Page,
		PageSize:   req.PageSize,
		SortBy:     req.SortBy,
		SortOrder:  strings.ToUpper(req.SortOrder),
	}

	facilities, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]FacilityResponse, len(facilities))
	for i, f := range facilities {
		items[i] = NewFacilityResponse(f)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

// Update modifies a facility. Owner or admin only.
func (h *Handler) Update(c *gin.Context) {
	id, ok := facilityIDParam(c)
	if !ok {
		return
	}

	var body UpdateFacilityRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, apperror.Wrap(err, http.StatusBadRequest, "invalid request body"))
		return
	}

	f, err := h.service.Update(c.Request.Context(), authz.PrincipalFrom(c), id, facility.UpdateRequest{
		Name:        body.Name,
		Location:    body.Location,
		Description: body.Description,
		Sports:      body.Sports,
		Amenities:   body.Amenities,
		Images:      body.Images,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, FacilityEnvelope{
		Success:  true,
		Message:  "facility updated successfully",
		Facility: NewFacilityResponse(f),
	})
}

// UpdateStatus approves or rejects a facility. Admin only; the middleware
// gate is backed by the same policy check in the service.
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, ok := facilityIDParam(c)
	if !ok {
		return
	}

	var body UpdateStatusRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, apperror.Wrap(err, http.StatusBadRequest, "invalid request body"))
		return
	}

	f, err := h.service.UpdateStatus(c.Request.Context(), authz.PrincipalFrom(c), id, facility.Status(body.Status))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, FacilityEnvelope{
		Success:  true,
		Message:  "facility status updated successfully",
		Facility: NewFacilityResponse(f),
	})
}

// Delete removes a facility without courts. Owner or admin only.
func (h *Handler) Delete(c *gin.Context) {
	id, ok := facilityIDParam(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), authz.PrincipalFrom(c), id); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "facility deleted successfully",
	})
}

func facilityIDParam(c *gin.Context) (string, bool) {
	id := c.Param("facilityId")
	if !isUUID(id) {
		response.Error(c, apperror.New(http.StatusBadRequest, "invalid facility id"))
		return "", false
	}
	return id, true
}
