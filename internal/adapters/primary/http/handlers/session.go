package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"permeability-service/internal/core/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	sessionCookie = "permeability_session"
	uploadField   = "file"
)

// sessionID returns the caller's session, issuing a new cookie when the
// request has none or an unparsable one.
func sessionID(c *gin.Context) uuid.UUID {
	if raw, err := c.Cookie(sessionCookie); err == nil {
		if id, err := uuid.Parse(raw); err == nil {
			return id
		}
	}
	id := uuid.New()
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     sessionCookie,
		Value:    id.String(),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// readUpload reads the multipart "file" field, bounded by h.maxUpload.
func (h *Handler) readUpload(c *gin.Context) (string, []byte, error) {
	if h.maxUpload > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload)
	}

	fh, err := c.FormFile(uploadField)
	if err != nil {
		if isTooLarge(err) {
			return "", nil, domain.ErrUploadTooLarge
		}
		return "", nil, domain.ErrMissingUpload
	}

	f, err := fh.Open()
	if err != nil {
		return "", nil, err
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return "", nil, err
	}
	return fh.Filename, content, nil
}

func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return true
	}
	return strings.Contains(err.Error(), "request body too large")
}
