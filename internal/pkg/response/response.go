package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quickcourt/quickcourt-backend/internal/pkg/apperror"
)

// ErrorBody is the uniform error envelope: {"success": false, "message": "..."}.
type ErrorBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Error sends the uniform error envelope. The status code is taken from the
// AppError if the error is one; anything else becomes a 500 without leaking
// the internal message.
func Error(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.Code, ErrorBody{Success: false, Message: appErr.Message})
		return
	}

	c.JSON(http.StatusInternalServerError, ErrorBody{Success: false, Message: "internal server error"})
}

// PageResponse is the standard wrapper for list endpoints.
type PageResponse[T any] struct {
	Success  bool `json:"success"`
	Items    []T  `json:"items"`
	Page     int  `json:"page"`
	PageSize int  `json:"page_size"`
	Total    int  `json:"total"`
}

// NewPageResponse is a helper to quickly create a list response.
func NewPageResponse[T any](items []T, page, pageSize, total int) PageResponse[T] {
	// Handle nil slice to avoid JSON outputting null
	if items == nil {
		items = make([]T, 0)
	}

	return PageResponse[T]{
		Success:  true,
		Items:    items,
		Page:     page,
		PageSize: pageSize,
		Total:    total,
	}
}
