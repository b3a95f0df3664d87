package http

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RegisterRoutes registers booking routes under /booking, plus the slot
// blocking endpoints that live under /court.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/booking")

	// Availability is public so visitors can browse before signing up.
	group.GET("/availability", h.Availability)

	group.POST("", authMiddleware, h.Reserve)
	group.GET("", authMiddleware, h.List)
	group.GET("/:id", authMiddleware, h.Get)
	group.PUT("/:id", authMiddleware, h.Update)

	courtGroup := g.Group("/court")
	courtGroup.POST("/blockslot/:courtId", authMiddleware, h.BlockSlot)
	courtGroup.DELETE("/unblockslot/:slotId", authMiddleware, h.UnblockSlot)
}

func isUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
