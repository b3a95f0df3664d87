package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers auth and user-management routes.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	// Public routes
	authGroup := g.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
	}

	// Authenticated routes
	g.GET("/auth/me", authMiddleware, h.Me)

	// Admin routes
	usersGroup := g.Group("/user")
	usersGroup.Use(authMiddleware, adminMiddleware)
	{
		usersGroup.GET("/list", h.List)
		usersGroup.GET("/:id", h.Get)
		usersGroup.PATCH("/:id", h.Update)
	}
}
