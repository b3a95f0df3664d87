package http

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RegisterRoutes registers court routes under /court. Slot blocking lives on
// the same group but is handled by the booking module; the router wires it.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/court")

	// Public reads
	group.GET("/getcourts", h.List)

	// Facility owner or admin mutations
	group.POST("/create", authMiddleware, h.Create)
	group.PUT("/updatecourt/:courtId", authMiddleware, h.Update)
	group.DELETE("/deletecourt/:courtId", authMiddleware, h.Delete)
}

func isUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
