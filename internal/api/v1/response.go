package v1

import (
	"github.com/gin-gonic/gin"

	ierr "github.com/ardentinvoicing/ardent/internal/errors"
)

// ErrorResponse is the error body returned by every handler
type ErrorResponse struct {
	Error string `json:"error"`
	Hint  string `json:"hint,omitempty"`
}

// NewErrorResponse maps the error chain to an HTTP status and renders the
// error body
func NewErrorResponse(c *gin.Context, err error) {
	c.JSON(ierr.HTTPStatusFromErr(err), ErrorResponse{
		Error: err.Error(),
		Hint:  ierr.Hint(err),
	})
}
