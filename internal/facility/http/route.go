package http

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RegisterRoutes registers facility routes under /facility.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/facility")

	// Public reads
	group.GET("/getfacilities", h.List)

	// Authenticated mutations
	group.POST("/create", authMiddleware, h.Create)
	group.PUT("/updatefacility/:facilityId", authMiddleware, h.Update)
	group.DELETE("/deletefacility/:facilityId", authMiddleware, h.Delete)

	// Admin moderation
	group.PATCH("/status/:facilityId", authMiddleware, adminMiddleware, h.UpdateStatus)
}

func isUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
