package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quickcourt/quickcourt-backend/internal/auth"
	"github.com/quickcourt/quickcourt-backend/internal/authz"
	"github.com/quickcourt/quickcourt-backend/internal/user"
)

// Authenticated validates the JWT and resolves the account into a principal
// for downstream policy checks. Role flags come from the database on every
// request so revocations take effect immediately, not at token expiry.
func Authenticated(jwtManager *auth.JWTManager, userService user.Service) gin.HandlerFunc {
	validate := auth.AuthRequired(jwtManager)

	return func(c *gin.Context) {
		validate(c)
		if c.IsAborted() {
			return
		}

		u, err := userService.GetByID(c.Request.Context(), auth.GetUserID(c))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "account no longer exists",
			})
			return
		}

		authz.SetPrincipal(c, authz.Principal{
			UserID:          u.ID,
			IsAdmin:         u.IsAdmin,
			IsFacilityOwner: u.IsFacilityOwner,
		})
	}
}

// RequireAdmin gates admin-only routes. Must run after Authenticated.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authz.PrincipalFrom(c).IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "admin access required",
			})
			return
		}
	}
}
