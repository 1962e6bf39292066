package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kkurihara/planboard/internal/wbs"
)

// statusForError maps the error taxonomy onto HTTP status codes. Allocation
// failures are the one retryable kind and surface as 503.
func statusForError(err error) int {
	switch {
	case errors.Is(err, wbs.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, wbs.ErrOutOfRange), errors.Is(err, wbs.ErrInvalidPrefix):
		return http.StatusBadRequest
	case errors.Is(err, wbs.ErrInvalidNode),
		errors.Is(err, wbs.ErrBoundary),
		errors.Is(err, wbs.ErrNoTarget),
		errors.Is(err, wbs.ErrNoSchedule):
		return http.StatusUnprocessableEntity
	case errors.Is(err, wbs.ErrAllocationFailed):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// renderError writes the error with its mapped status. The message keeps
// the wrapped context (node id, attempted operation) so callers learn why
// the call failed, not just that it did.
func renderError(c *gin.Context, err error) {
	c.JSON(statusForError(err), gin.H{
		"success": false,
		"error":   err.Error(),
	})
}
