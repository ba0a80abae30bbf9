package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	predictionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "demand_forecast_predictions_total",
		Help: "Total number of prediction submissions by outcome.",
	}, []string{"outcome"})
	predictionCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "demand_forecast_prediction_cache_hits_total",
		Help: "Total number of predictions served from the cache.",
	})
	modelLoaded = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "demand_forecast_model_loaded",
		Help: "1 when the model artifact loaded at startup, 0 otherwise.",
	})
	predictionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "demand_forecast_prediction_duration_seconds",
		Help:    "Duration of a single submission from reconcile to result.",
		Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
	})
)
