package handlers

import (
	"fmt"

	"demand-forecast-app/config"
	"demand-forecast-app/middleware"
	"demand-forecast-app/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// NewRouter wires the form page, the JSON API, health and metrics.
func NewRouter(cfg *config.Config, forecaster *services.Forecaster, log *zap.Logger) (*gin.Engine, error) {
	tpl, err := LoadTemplates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	router := gin.New()
	router.Use(middleware.Recovery(log), middleware.RequestLogger(log))
	router.SetHTMLTemplate(tpl)

	predictions := NewPredictionHandler(forecaster, log)

	router.GET("/", predictions.Form)
	router.POST("/predict", predictions.Submit)
	router.GET("/health", predictions.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/v1")
	api.Use(middleware.SetupCORS(cfg.CORS))
	{
		api.POST("/predict", predictions.Predict)
		api.GET("/model", predictions.Model)
		// preflight requests are answered by the CORS middleware
		api.OPTIONS("/*path", func(c *gin.Context) {})
	}

	return router, nil
}
