package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/quickcourt/quickcourt-backend/internal/auth"
	"github.com/quickcourt/quickcourt-backend/internal/pkg/apperror"
	"github.com/quickcourt/quickcourt-backend/internal/pkg/request"
	"github.com/quickcourt/quickcourt-backend/internal/pkg/response"
	"github.com/quickcourt/quickcourt-backend/internal/user"
)

type Handler struct {
	service    user.Service
	jwtManager *auth.JWTManager
}

func NewHandler(service user.Service, jwtManager *auth.JWTManager) *Handler {
	return &Handler{
		service:    service,
		jwtManager: jwtManager,
	}
}

// Register creates a new account. Accounts registering as facility owners
// get the flag immediately; admin is never self-assignable.
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Wrap(err, http.StatusBadRequest, "invalid request body"))
		return
	}

	u, err := h.service.Register(c.Request.Context(), user.RegisterRequest{
		Username:        req.Username,
		Email:           req.Email,
		Password:        req.Password,
		IsFacilityOwner: req.IsFacilityOwner,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	// Registering signs the user in right away.
	token, err := h.jwtManager.GenerateAccessToken(u.ID, u.Email)
	if err != nil {
		response.Error(c, apperror.Wrap(err, http.StatusInternalServerError, "failed to generate token"))
		return
	}

	c.SetCookie(auth.AccessTokenCookie, token, 0, "/", "", false, true)

	c.JSON(http.StatusCreated, AuthEnvelope{
		Success:     true,
		Message:     "user registered successfully",
		AccessToken: token,
		User:        NewUserResponse(u),
	})
}

// Login authenticates with email and password. On success the access token
// is returned in the body and also set as a cookie for browser clients.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Wrap(err, http.StatusBadRequest, "invalid request body"))
		return
	}

	u, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	token, err := h.jwtManager.GenerateAccessToken(u.ID, u.Email)
	if err != nil {
		response.Error(c, apperror.Wrap(err, http.StatusInternalServerError, "failed to generate token"))
		return
	}

	c.SetCookie(auth.AccessTokenCookie, token, 0, "/", "", false, true)

	c.JSON(http.StatusOK, AuthEnvelope{
		Success:     true,
		Message:     "login successful",
		AccessToken: token,
		User:        NewUserResponse(u),
	})
}

// Me returns the profile of the currently authenticated user.
func (h *Handler) Me(c *gin.Context) {
	userID := auth.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, response.ErrorBody{Success: false, Message: "unauthorized"})
		return
	}

	u, err := h.service.GetByID(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, UserEnvelope{
		Success: true,
		Message: "user retrieved successfully",
		User:    NewUserResponse(u),
	})
}

// List retrieves a paginated list of users. Admin only.
func (h *Handler) List(c *gin.Context) {
	var req ListUsersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, apperror.Wrap(err, http.StatusBadRequest, "invalid query parameters"))
		return
	}

	filter := user.Filter{
		Email:           req.Email,
		Username:        req.Username,
		IsFacilityOwner: req.IsFacilityOwner,
		Page:            req.Page,
		PageSize:        req.PageSize,
		SortBy:          req.SortBy,
		SortOrder:       strings.ToUpper(req.SortOrder),
	}

	users, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]UserResponse, len(users))
	for i, u := range users {
		items[i] = NewUserResponse(u)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

// Get retrieves a specific user by ID. Admin only.
func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.Error(c, apperror.Wrap(err, http.StatusBadRequest, "invalid user id"))
		return
	}

	u, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, UserEnvelope{
		Success: true,
		Message: "user retrieved successfully",
		User:    NewUserResponse(u),
	})
}

// Update changes a user's profile or role flags. Admin only.
func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Error(c, apperror.Wrap(err, http.StatusBadRequest, "invalid user id"))
		return
	}

	var body UpdateUserRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, apperror.Wrap(err, http.StatusBadRequest, "invalid request body"))
		return
	}

	u, err := h.service.Update(c.Request.Context(), uri.ID, user.UpdateRequest{
		Username:        body.Username,
		ProfilePic:      body.ProfilePic,
		IsAdmin:         body.IsAdmin,
		IsFacilityOwner: body.IsFacilityOwner,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, UserEnvelope{
		Success: true,
		Message: "user updated successfully",
		User:    NewUserResponse(u),
	})
}
