package media

import (
	"net/http"
	"time"

	"github.com/quickcourt/quickcourt-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "file not found")
	ErrNoThumbnail      = apperror.New(http.StatusNotFound, "thumbnail not available for this file")
	ErrNotImage         = apperror.New(http.StatusBadRequest, "only image uploads are supported")
	ErrTooLarge         = apperror.New(http.StatusBadRequest, "uploaded file exceeds the size limit")
	ErrPermissionDenied = apperror.New(http.StatusForbidden, "you can only delete your own uploads")
)

// Media is an uploaded image (facility photos, profile pictures) plus its
// generated thumbnail.
type Media struct {
	ID            string
	UserID        string
	Filename      string
	StoragePath   string
	ThumbnailPath *string
	ContentType   string
	Size          int64
	CreatedAt     time.Time
}

// FileURL returns the public URL for accessing a file by its ID.
func FileURL(id string) string {
	return "/files/" + id
}

// ThumbnailURL returns the public URL for a file's thumbnail.
func ThumbnailURL(id string) string {
	return "/files/" + id + "/thumbnail"
}
