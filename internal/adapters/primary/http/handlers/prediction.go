package handlers

import (
	"net/http"

	"permeability-service/internal/adapters/primary/http/dto"
	"permeability-service/internal/core/services"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// Predict runs the pipeline on the uploaded file without touching the session.
func (h *Handler) Predict(c *gin.Context) {
	name, content, err := h.readUpload(c)
	if err != nil {
		mapDomainError(c, err)
		return
	}
	if err := services.ValidateUploadName(name); err != nil {
		mapDomainError(c, err)
		return
	}

	report, err := h.predictionSvc.Run(c.Request.Context(), name, content)
	if err != nil {
		log.WithError(err).WithField("file", name).Error("prediction failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPredictionResponse(report, h.style.Chart))
}

func (h *Handler) LastUpload(c *gin.Context) {
	session, err := h.sessionSvc.Last(c.Request.Context(), sessionID(c))
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUploadSessionResponse(session))
}

func (h *Handler) ClearSession(c *gin.Context) {
	if err := h.sessionSvc.Clear(c.Request.Context(), sessionID(c)); err != nil {
		log.WithError(err).Error("clear session failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "cleared"})
}
