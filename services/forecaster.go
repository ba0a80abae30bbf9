package services

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"demand-forecast-app/models"

	"go.uber.org/zap"
)

// ErrModelNotLoaded is the cause recorded when a submission arrives while the
// artifact failed to load.
var ErrModelNotLoaded = errors.New("model not loaded")

// ModelState is the result of the one-time artifact load: exactly one of
// Model and Err is set. Digest is the sha256 of the artifact bytes.
type ModelState struct {
	Path   string
	Digest string
	Model  Regressor
	Err    error
}

func (s ModelState) Loaded() bool {
	return s.Model != nil
}

// LoadModelState loads the artifact at path and records the outcome instead
// of failing.
func LoadModelState(path string) ModelState {
	model, digest, err := loadArtifact(path)
	if err != nil {
		return ModelState{Path: path, Err: err}
	}
	return ModelState{Path: path, Digest: digest, Model: model}
}

// PredictionCache stores reconciled-row predictions.
type PredictionCache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// Forecaster owns the loaded model for the lifetime of the process and runs
// submissions against it. It is immutable after construction and safe for
// concurrent use.
type Forecaster struct {
	state    ModelState
	cache    PredictionCache
	cacheTTL time.Duration
	log      *zap.Logger
}

type Option func(*Forecaster)

// WithCache enables prediction caching for ttl.
func WithCache(cache PredictionCache, ttl time.Duration) Option {
	return func(f *Forecaster) {
		f.cache = cache
		f.cacheTTL = ttl
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(f *Forecaster) {
		f.log = log
	}
}

func NewForecaster(state ModelState, opts ...Option) *Forecaster {
	f := &Forecaster{state: state, log: zap.NewNop()}
	for _, opt := range opts {
		opt(f)
	}
	if state.Loaded() {
		modelLoaded.Set(1)
	} else {
		modelLoaded.Set(0)
	}
	return f
}

func (f *Forecaster) State() ModelState {
	return f.state
}

// Info summarizes the model for the API.
func (f *Forecaster) Info() models.ModelInfo {
	info := models.ModelInfo{Loaded: f.state.Loaded(), Path: f.state.Path}
	if !info.Loaded {
		if f.state.Err != nil {
			info.Error = f.state.Err.Error()
		}
		return info
	}
	info.ModelType = f.state.Model.ModelType()
	names, err := f.state.Model.FeatureNames()
	if err != nil {
		info.Error = err.Error()
		return info
	}
	info.Fitted = true
	info.FeatureNames = names
	return info
}

// Submit reconciles req against the model schema, predicts, and returns the
// outcome. It never panics and never returns an error: every failure is
// folded into the Outcome.
func (f *Forecaster) Submit(ctx context.Context, req models.PredictionRequest) Outcome {
	start := time.Now()
	outcome := f.submit(ctx, req)
	predictionDuration.Observe(time.Since(start).Seconds())
	predictionsTotal.WithLabelValues(outcome.Kind.String()).Inc()

	if outcome.Kind != OutcomeSuccess {
		f.log.Warn("prediction failed",
			zap.String("outcome", outcome.Kind.String()),
			zap.Error(outcome.Err))
	}
	return outcome
}

func (f *Forecaster) submit(ctx context.Context, req models.PredictionRequest) Outcome {
	if !f.state.Loaded() {
		return Outcome{Kind: OutcomeModelNotLoaded, Err: ErrModelNotLoaded}
	}
	model := f.state.Model

	expected, err := model.FeatureNames()
	if err != nil {
		return outcomeFromError(classify(err))
	}
	if len(expected) == 0 {
		return Outcome{Kind: OutcomeFailed, Err: errors.New("model declares no feature names")}
	}

	raw := req.Features()
	if missing := MissingFeatures(raw, expected); len(missing) > 0 {
		f.log.Debug("filling missing features with 0", zap.Strings("features", missing))
	}
	row := Reconcile(raw, expected)

	key := cacheKey(f.state.Digest, model.ModelType(), row)
	if f.cache != nil {
		var cached float64
		found, err := f.cache.Get(ctx, key, &cached)
		if err != nil {
			f.log.Warn("prediction cache read failed", zap.String("key", key), zap.Error(err))
		} else if found {
			predictionCacheHits.Inc()
			return Outcome{Kind: OutcomeSuccess, Value: cached}
		}
	}

	value, err := Infer(model, row)
	if err != nil {
		return outcomeFromError(classify(err))
	}

	if f.cache != nil {
		if err := f.cache.Set(ctx, key, value, f.cacheTTL); err != nil {
			f.log.Warn("prediction cache write failed", zap.String("key", key), zap.Error(err))
		}
	}

	f.log.Debug("prediction computed", zap.Float64("units_sold", value))
	return Outcome{Kind: OutcomeSuccess, Value: value}
}

func outcomeFromError(err *InferenceError) Outcome {
	switch err.Kind {
	case KindModelNotFitted:
		return Outcome{Kind: OutcomeModelNotFitted, Err: err}
	case KindGeneric:
		return Outcome{Kind: OutcomeFailed, Err: err}
	default:
		return Outcome{Kind: OutcomeFailed, Err: err}
	}
}

// cacheKey identifies a prediction by artifact digest, model type and
// reconciled row. The path is not part of the key: a retrained artifact at
// the same path must miss.
func cacheKey(digest, modelType string, row Row) string {
	var b strings.Builder
	b.WriteString("prediction:")
	b.WriteString(digest)
	b.WriteByte(':')
	b.WriteString(modelType)
	for i, col := range row.Columns {
		b.WriteByte(':')
		b.WriteString(col)
		b.WriteByte('=')
		b.WriteString(strconv.FormatFloat(row.Values[i], 'g', -1, 64))
	}
	return b.String()
}
