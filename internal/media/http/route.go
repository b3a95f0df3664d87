package http

import "github.com/gin-gonic/gin"

// RegisterRoutes registers the upload endpoint under the API group and the
// public file-serving endpoints at the root.
func RegisterRoutes(api *gin.RouterGroup, root gin.IRouter, h *Handler, authMiddleware gin.HandlerFunc) {
	api.POST("/upload/image", authMiddleware, h.UploadImage)

	files := root.Group("/files")
	files.GET("/:id", h.ServeFile)
	files.GET("/:id/thumbnail", h.ServeThumbnail)
	files.DELETE("/:id", authMiddleware, h.Delete)
}
