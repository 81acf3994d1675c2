package response

import (
	"log"
	"net/http"

	"nextcut/internal/apperr"

	"github.com/gin-gonic/gin"
)

// ExposeDetails controls whether wrapped causes reach clients. It is switched
// off in release mode, where only validation causes are shown.
var ExposeDetails = true

// SuccessResponse is a plain acknowledgement.
type SuccessResponse struct {
	Message string `json:"message" example:"operation completed"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	// Machine-readable error code
	// example: VALIDATION_ERROR
	Code string `json:"code"`

	// Human-readable message
	// example: latitude must be between -90 and 90
	Message string `json:"message"`

	// Optional details
	Details string `json:"details,omitempty"`
}

// StatusFor maps an apperr kind to an HTTP status.
func StatusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.Validation:
		return http.StatusBadRequest
	case apperr.Auth:
		return http.StatusUnauthorized
	case apperr.Forbidden:
		return http.StatusForbidden
	case apperr.NotFound:
		return http.StatusNotFound
	case apperr.Conflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Build converts err into a status and body.
func Build(err error) (int, ErrorResponse) {
	e, ok := apperr.As(err)
	if !ok {
		body := ErrorResponse{Code: "INTERNAL_ERROR", Message: "internal server error"}
		if ExposeDetails {
			body.Details = err.Error()
		}
		return http.StatusInternalServerError, body
	}

	status := StatusFor(e.Kind)
	body := ErrorResponse{Code: e.Code, Message: e.Message}
	if e.Err != nil && e.Kind != apperr.Auth && (ExposeDetails || e.Kind == apperr.Validation) {
		body.Details = e.Err.Error()
	}
	return status, body
}

// Fail writes err as JSON. Internal errors are logged.
func Fail(c *gin.Context, err error) {
	status, body := Build(err)
	if status >= http.StatusInternalServerError {
		log.Printf("%s %s: %v", c.Request.Method, c.FullPath(), err)
	}
	c.JSON(status, body)
}

// Abort is Fail for middleware.
func Abort(c *gin.Context, err error) {
	Fail(c, err)
	c.Abort()
}
