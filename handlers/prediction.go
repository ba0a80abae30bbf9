package handlers

import (
	"net/http"

	"demand-forecast-app/models"
	"demand-forecast-app/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PredictionHandler struct {
	forecaster *services.Forecaster
	log        *zap.Logger
}

func NewPredictionHandler(forecaster *services.Forecaster, log *zap.Logger) *PredictionHandler {
	return &PredictionHandler{forecaster: forecaster, log: log}
}

// banner is the startup load failure, shown on every page render.
func (h *PredictionHandler) banner() *services.Message {
	state := h.forecaster.State()
	if state.Loaded() {
		return nil
	}
	msg := services.PresentLoadError(state.Err)
	return &msg
}

// Form renders the input form with default values.
func (h *PredictionHandler) Form(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", newPageView(models.DefaultPredictionRequest(), h.banner(), nil))
}

// Submit handles a form post and renders the form again with the outcome.
func (h *PredictionHandler) Submit(c *gin.Context) {
	req := models.DefaultPredictionRequest()
	if err := c.ShouldBind(&req); err != nil {
		h.log.Debug("invalid form submission", zap.Error(err))
		msg := services.PresentInvalidInput(bindingError(err))
		c.HTML(http.StatusBadRequest, "index.html", newPageView(req, h.banner(), &msg))
		return
	}

	msg := services.Present(h.forecaster.Submit(c.Request.Context(), req))
	c.HTML(http.StatusOK, "index.html", newPageView(req, h.banner(), &msg))
}

// Predict is the JSON counterpart of Submit. Fields left out of the body
// keep the form defaults.
func (h *PredictionHandler) Predict(c *gin.Context) {
	req := models.DefaultPredictionRequest()
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Debug("invalid predict request", zap.Error(err))
		msg := services.PresentInvalidInput(bindingError(err))
		c.JSON(http.StatusBadRequest, models.PredictionResponse{Message: msg.Text, Level: string(msg.Level)})
		return
	}

	outcome := h.forecaster.Submit(c.Request.Context(), req)
	msg := services.Present(outcome)
	resp := models.PredictionResponse{Message: msg.Text, Level: string(msg.Level)}
	if outcome.Kind == services.OutcomeSuccess {
		value := outcome.Value
		resp.UnitsSold = &value
	}
	c.JSON(statusFor(outcome.Kind), resp)
}

// Model describes the loaded artifact.
func (h *PredictionHandler) Model(c *gin.Context) {
	c.JSON(http.StatusOK, h.forecaster.Info())
}

func (h *PredictionHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":       "UP",
		"model_loaded": h.forecaster.State().Loaded(),
	})
}

func statusFor(kind services.OutcomeKind) int {
	switch kind {
	case services.OutcomeSuccess:
		return http.StatusOK
	case services.OutcomeModelNotLoaded, services.OutcomeModelNotFitted:
		return http.StatusServiceUnavailable
	case services.OutcomeFailed:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
