package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"rentfleet/internal/repository"
	"rentfleet/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
// Internal failures get a generic message so storage details never leak out.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	message := err.Error()
	if code == http.StatusInternalServerError {
		message = "internal server error"
	}
	c.JSON(code, ErrorResponse{Error: message})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	// Validation errors - Bad Request
	case errors.Is(err, service.ErrInvalidVehicleName),
		errors.Is(err, service.ErrInvalidVehicleCategory),
		errors.Is(err, service.ErrInvalidRegistrationNumber),
		errors.Is(err, service.ErrInvalidDailyPrice),
		errors.Is(err, service.ErrInvalidVehicleID),
		errors.Is(err, service.ErrInvalidCustomerID),
		errors.Is(err, service.ErrInvalidBookingID),
		errors.Is(err, service.ErrInvalidDateRange),
		errors.Is(err, service.ErrInvalidBookingStatus),
		errors.Is(err, service.ErrMissingUserFields),
		errors.Is(err, service.ErrInvalidUserRole):
		return http.StatusBadRequest

	// Conflict errors
	case errors.Is(err, service.ErrVehicleUnavailable),
		errors.Is(err, service.ErrDuplicateRegistration),
		errors.Is(err, service.ErrBookingNotActive),
		errors.Is(err, service.ErrBookingAlreadyReturned),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, repository.ErrDuplicate):
		return http.StatusConflict

	// Forbidden/Business rule errors
	case errors.Is(err, service.ErrRoleNotAllowed),
		errors.Is(err, service.ErrBookingNotOwned),
		errors.Is(err, service.ErrCancelWindowClosed):
		return http.StatusForbidden

	// Unauthorized
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}
