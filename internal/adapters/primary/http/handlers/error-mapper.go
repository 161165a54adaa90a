package handlers

import (
	"errors"
	"net/http"

	"permeability-service/internal/core/domain"

	"github.com/gin-gonic/gin"
)

func statusFor(err error) int {
	switch {
	// Bad request
	case errors.Is(err, domain.ErrMissingUpload),
		errors.Is(err, domain.ErrInvalidUploadType),
		errors.Is(err, domain.ErrMalformedCSV):
		return http.StatusBadRequest

	// Well-formed upload that does not fit the model or the reference data
	case errors.Is(err, domain.ErrColumnNotFound),
		errors.Is(err, domain.ErrNonNumericFeature),
		errors.Is(err, domain.ErrReferenceLengthMismatch):
		return http.StatusUnprocessableEntity

	case errors.Is(err, domain.ErrUploadTooLarge):
		return http.StatusRequestEntityTooLarge

	case errors.Is(err, domain.ErrNoUpload):
		return http.StatusNotFound

	case errors.Is(err, domain.ErrReferenceUnavailable):
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}

// publicMessage hides internal failures behind a generic message.
func publicMessage(err error) string {
	if statusFor(err) == http.StatusInternalServerError {
		return "internal server error"
	}
	return err.Error()
}

func mapDomainError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": publicMessage(err)})
}
