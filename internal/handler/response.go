package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"gantabya/internal/auth"
	"gantabya/internal/repository"
	"gantabya/internal/service"
)

// ErrorResponse represents an error response.
// Message is either a string or a map of field path to validation message.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message any    `json:"message,omitempty"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		_ = c.Error(err)
		msg = "internal server error"
	}
	c.JSON(code, ErrorResponse{Error: msg, Message: msg})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	// Rejected registrations - Bad Request
	case errors.Is(err, service.ErrInvalidVehicle),
		errors.Is(err, service.ErrUserExists),
		errors.Is(err, service.ErrCaptainExists),
		errors.Is(err, repository.ErrDuplicateEmail):
		return http.StatusBadRequest

	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrTokenRevoked),
		errors.Is(err, auth.ErrInvalidToken):
		return http.StatusUnauthorized

	case errors.Is(err, service.ErrRegistrationInProgress):
		return http.StatusConflict

	default:
		return http.StatusInternalServerError
	}
}
