package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// AccessTokenCookie is the cookie the browser client stores the access token
// in. The Authorization header takes precedence when both are present.
const AccessTokenCookie = "access_token"

// AuthRequired is a Gin middleware that validates the JWT from
// Authorization: Bearer <token>, falling back to the access_token cookie.
func AuthRequired(jwtManager *JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := bearerToken(c)
		if tokenStr == "" {
			if cookie, err := c.Cookie(AccessTokenCookie); err == nil {
				tokenStr = cookie
			}
		}

		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "no token - unauthorized",
			})
			return
		}

		claims, err := jwtManager.ParseAndValidate(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "invalid or expired token",
			})
			return
		}

		// Store user info into the Gin context for later handlers.
		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxUserEmail, claims.Email)
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
