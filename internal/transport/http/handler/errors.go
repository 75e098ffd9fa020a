package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ErlanBelekov/task-api/internal/domain"
	"github.com/gin-gonic/gin"
)

const (
	errInternalServer     = "Internal server error"
	errValidation         = "Incorrect value for field, please provide valid data"
	errRelatedNotFound    = "Related record not found, please provide valid data"
	errDuplicateEmail     = "Email is already registered"
	errUserNotFound       = "User not found"
	errTaskNotFound       = "Task not found"
	errInvalidCredentials = "Invalid credentials"
	errTokenInvalid       = "Token is invalid or expired"
	errUnauthorized       = "Unauthorized"
	errMalformedBody      = "Malformed request body"
)

// respondError maps a domain error to its status and message. Anything it
// does not recognise is logged and answered with a bare 500.
func respondError(c *gin.Context, logger *slog.Logger, op string, err error) {
	status, msg := http.StatusInternalServerError, errInternalServer

	switch {
	case errors.Is(err, domain.ErrValidation):
		status, msg = http.StatusBadRequest, errValidation
	case errors.Is(err, domain.ErrRelatedNotFound):
		status, msg = http.StatusBadRequest, errRelatedNotFound
	case errors.Is(err, domain.ErrDuplicateCredential):
		status, msg = http.StatusBadRequest, errDuplicateEmail
	case errors.Is(err, domain.ErrInvalidCredentials):
		status, msg = http.StatusUnauthorized, errInvalidCredentials
	case errors.Is(err, domain.ErrTokenInvalid):
		status, msg = http.StatusUnauthorized, errTokenInvalid
	case errors.Is(err, domain.ErrUnauthorized):
		status, msg = http.StatusUnauthorized, errUnauthorized
	case errors.Is(err, domain.ErrUserNotFound):
		status, msg = http.StatusNotFound, errUserNotFound
	case errors.Is(err, domain.ErrTaskNotFound):
		status, msg = http.StatusNotFound, errTaskNotFound
	default:
		logger.ErrorContext(c.Request.Context(), op, "error", err)
	}

	c.JSON(status, gin.H{"error": msg})
}
