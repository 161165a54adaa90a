package handlers

import (
	"permeability-service/internal/adapters/primary/http/view"
	"permeability-service/internal/core/services"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	sessionSvc    *services.SessionService
	predictionSvc *services.PredictionService
	style         *view.Presentation
	maxUpload     int64
}

func New(
	sessionSvc *services.SessionService,
	predictionSvc *services.PredictionService,
	style *view.Presentation,
	maxUpload int64,
) *Handler {
	return &Handler{
		sessionSvc:    sessionSvc,
		predictionSvc: predictionSvc,
		style:         style,
		maxUpload:     maxUpload,
	}
}

// RegisterRoutes mounts the page and the JSON API. The router must have the
// view templates installed with SetHTMLTemplate.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	// Page
	r.GET("/", h.Index)
	r.POST("/upload", h.Upload)

	// JSON API
	api := r.Group("/api/v1")
	api.POST("/predictions", h.Predict)
	api.GET("/session/last", h.LastUpload)
	api.DELETE("/session", h.ClearSession)
}
