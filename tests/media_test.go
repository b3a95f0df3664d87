package tests

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mediaHttp "github.com/quickcourt/quickcourt-backend/internal/media/http"
)

// 1x1 transparent PNG.
const tinyPNGBase64 = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mP8z8BQDwAEhQGAhKmMIQAAAABJRU5ErkJggg=="

func tinyPNG(t *testing.T) []byte {
	t.Helper()
	b, err := base64.StdEncoding.DecodeString(tinyPNGBase64)
	require.NoError(t, err)
	return b
}

func TestImageUpload(t *testing.T) {
	clearTables()

	uploader := createTestUser(t, "uploader", "uploader@media.com", false, false)
	stranger := createTestUser(t, "bystander", "stranger@media.com", false, false)
	admin := createTestUser(t, "siteadmin", "admin@media.com", true, false)

	png := tinyPNG(t)

	var fileID string

	t.Run("Upload", func(t *testing.T) {
		w := executeUpload("/api/upload/image", "file", "court.png", "image/png", png, uploader.Token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var resp mediaHttp.UploadResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.NotEmpty(t, resp.FileID)
		assert.Equal(t, "/files/"+resp.FileID, resp.URL)
		require.NotNil(t, resp.ThumbnailURL)
		fileID = resp.FileID
	})

	t.Run("Upload: requires auth", func(t *testing.T) {
		w := executeUpload("/api/upload/image", "file", "court.png", "image/png", png, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Upload: non-image rejected", func(t *testing.T) {
		w := executeUpload("/api/upload/image", "file", "notes.txt", "text/plain", []byte("not an image"), uploader.Token)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Serve original and thumbnail", func(t *testing.T) {
		w := executeRequest("GET", "/files/"+fileID, nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
		assert.Equal(t, png, w.Body.Bytes())

		wThumb := executeRequest("GET", "/files/"+fileID+"/thumbnail", nil, "")
		require.Equal(t, http.StatusOK, wThumb.Code)
		assert.Equal(t, "image/jpeg", wThumb.Header().Get("Content-Type"))
		assert.NotEmpty(t, wThumb.Body.Bytes())
	})

	t.Run("Delete: uploader or admin only", func(t *testing.T) {
		w := executeRequest("DELETE", "/files/"+fileID, nil, stranger.Token)
		assert.Equal(t, http.StatusForbidden, w.Code)

		wOwner := executeRequest("DELETE", "/files/"+fileID, nil, uploader.Token)
		require.Equal(t, http.StatusOK, wOwner.Code, wOwner.Body.String())

		wGone := executeRequest("GET", "/files/"+fileID, nil, "")
		assert.Equal(t, http.StatusNotFound, wGone.Code)

		// Admin can delete someone else's upload.
		wUp := executeUpload("/api/upload/image", "file", "court2.png", "image/png", png, uploader.Token)
		require.Equal(t, http.StatusCreated, wUp.Code)

		var resp mediaHttp.UploadResponse
		require.NoError(t, json.Unmarshal(wUp.Body.Bytes(), &resp))

		wAdmin := executeRequest("DELETE", "/files/"+resp.FileID, nil, admin.Token)
		assert.Equal(t, http.StatusOK, wAdmin.Code)
	})
}
