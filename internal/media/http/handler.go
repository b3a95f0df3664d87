package http

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quickcourt/quickcourt-backend/internal/auth"
	"github.com/quickcourt/quickcourt-backend/internal/authz"
	"github.com/quickcourt/quickcourt-backend/internal/media"
	"github.com/quickcourt/quickcourt-backend/internal/pkg/apperror"
	"github.com/quickcourt/quickcourt-backend/internal/pkg/response"
)

type Handler struct {
	service media.Service
}

func NewHandler(service media.Service) *Handler {
	return &Handler{service: service}
}

// UploadImage stores an image from the "file" form field and returns its
// public URLs.
func (h *Handler) UploadImage(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		response.Error(c, apperror.New(http.StatusBadRequest, "file is required"))
		return
	}

	m, err := h.service.Upload(c.Request.Context(), header, auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	var thumbURL *string
	if m.ThumbnailPath != nil {
		t := media.ThumbnailURL(m.ID)
		thumbURL = &t
	}

	c.JSON(http.StatusCreated, UploadResponse{
		Success:      true,
		Message:      "image uploaded successfully",
		FileID:       m.ID,
		URL:          media.FileURL(m.ID),
		ThumbnailURL: thumbURL,
	})
}

// ServeFile streams the original upload.
func (h *Handler) ServeFile(c *gin.Context) {
	stream, m, err := h.service.Download(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	defer stream.Close()

	c.Header("Content-Type", m.ContentType)
	c.Header("Content-Disposition", "inline; filename=\""+m.Filename+"\"")

	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, stream); err != nil {
		// Response already started, nothing sensible left to send.
		return
	}
}

// ServeThumbnail streams the generated thumbnail. Thumbnails are always JPEG.
func (h *Handler) ServeThumbnail(c *gin.Context) {
	stream, m, err := h.service.DownloadThumbnail(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	defer stream.Close()

	c.Header("Content-Type", "image/jpeg")
	c.Header("Content-Disposition", "inline; filename=\""+m.Filename+"_thumb.jpg\"")

	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, stream); err != nil {
		return
	}
}

// Delete removes an upload. Uploader or admin only.
func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), authz.PrincipalFrom(c), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "file deleted successfully",
	})
}
