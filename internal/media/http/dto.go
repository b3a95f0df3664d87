package http

// UploadResponse is the payload returned after a successful image upload.
type UploadResponse struct {
	Success      bool    `json:"success"`
	Message      string  `json:"message"`
	FileID       string  `json:"fileId"`
	URL          string  `json:"url"`
	ThumbnailURL *string `json:"thumbnailUrl,omitempty"`
}
