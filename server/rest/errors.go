package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// Sentinel errors shared by all handlers. Wrap them with pkg/errors to attach
// context, handlers unwrap with errors.Is when mapping to HTTP status.
var (
	ErrNotFound   = errors.New("resource not found")
	ErrForbidden  = errors.New("operation not permitted")
	ErrBadRequest = errors.New("invalid request")
)

// abortWithError translates a core error into an HTTP response. Unknown
// errors map to 500, the caller is expected to have logged them.
func abortWithError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
	case errors.Is(err, ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"message": err.Error()})
	case errors.Is(err, ErrBadRequest):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
	}
}
