package handlers

import (
	"errors"
	"net/http"

	"permeability-service/internal/adapters/primary/http/view"
	"permeability-service/internal/core/domain"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Index renders the page. When the session already has an upload it is
// re-rendered so a reload does not clear the view.
func (h *Handler) Index(c *gin.Context) {
	id := sessionID(c)

	session, report, err := h.sessionSvc.Current(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNoUpload) {
			c.HTML(http.StatusOK, view.PageTemplate, view.NewPage(h.style, nil))
			return
		}
		fileName := ""
		if session != nil {
			fileName = session.FileName
		}
		h.renderError(c, id, fileName, err)
		return
	}

	c.HTML(http.StatusOK, view.PageTemplate, view.NewPage(h.style, report))
}

func (h *Handler) Upload(c *gin.Context) {
	id := sessionID(c)

	name, content, err := h.readUpload(c)
	if err != nil {
		h.renderError(c, id, "", err)
		return
	}

	report, err := h.sessionSvc.Upload(c.Request.Context(), id, name, content)
	if err != nil {
		h.renderError(c, id, name, err)
		return
	}

	c.HTML(http.StatusOK, view.PageTemplate, view.NewPage(h.style, report))
}

func (h *Handler) renderError(c *gin.Context, id uuid.UUID, fileName string, err error) {
	log.WithError(err).WithFields(log.Fields{
		"session_id": id.String(),
		"file":       fileName,
	}).Error("render failed")

	page := view.NewPage(h.style, nil)
	page.FileName = fileName
	page.Error = publicMessage(err)
	c.HTML(statusFor(err), view.PageTemplate, page)
}
