package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"demand-forecast-app/config"
	"demand-forecast-app/models"
	"demand-forecast-app/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// constantModel always predicts 123.456 and expects a promo_flag column the
// form does not provide.
const constantModel = `{
  "model_type": "linear_regression",
  "feature_names_in": ["day", "promo_flag"],
  "coef": [0, 0],
  "intercept": 123.456
}`

const unfittedModel = `{"model_type": "random_forest_regressor", "estimators": []}`

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T, artifact string) *gin.Engine {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.json")
	if artifact != "" {
		require.NoError(t, os.WriteFile(path, []byte(artifact), 0o600))
	}

	forecaster := services.NewForecaster(services.LoadModelState(path))
	router, err := NewRouter(&config.Config{CORS: config.CORSConfig{AllowedOrigins: "*"}}, forecaster, zap.NewNop())
	require.NoError(t, err)
	return router
}

func postForm(router *gin.Engine, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func postJSON(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/predict", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestFormRendersFields(t *testing.T) {
	router := newTestRouter(t, constantModel)

	w := get(router, "/")
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	for _, field := range models.FormFields {
		assert.Contains(t, body, `name="`+field.Name+`"`)
		assert.Contains(t, body, field.Label)
	}
	assert.Contains(t, body, `value="1001"`)
	assert.Contains(t, body, `value="500"`)
	assert.Contains(t, body, `min="1" max="31"`)
	assert.Contains(t, body, "Predict Units Sold")
	assert.NotContains(t, body, `id="banner"`)
	assert.NotContains(t, body, `id="result"`)
}

func TestFormShowsLoadErrorBanner(t *testing.T) {
	router := newTestRouter(t, "")

	w := get(router, "/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Error loading model:")
	assert.Contains(t, w.Body.String(), `name="store_id"`)
}

func TestSubmitForm(t *testing.T) {
	tests := []struct {
		name     string
		artifact string
		values   url.Values
		status   int
		want     string
	}{
		{
			"success",
			constantModel,
			url.Values{"store_id": {"1"}, "sku_id": {"1001"}, "day": {"15"}},
			http.StatusOK,
			"Predicted Units Sold: 123.46",
		},
		{
			"model not loaded",
			"",
			url.Values{"store_id": {"1"}},
			http.StatusOK,
			"Model not loaded. Please check your model path.",
		},
		{
			"model not trained",
			unfittedModel,
			url.Values{"store_id": {"1"}},
			http.StatusOK,
			"The model is not trained. Please ensure the model is fitted before saving.",
		},
		{
			"day out of range",
			constantModel,
			url.Values{"day": {"40"}},
			http.StatusBadRequest,
			"Invalid input: day must be at most 31",
		},
		{
			"negative store",
			constantModel,
			url.Values{"store_id": {"-3"}},
			http.StatusBadRequest,
			"Invalid input: store_id must be at least 0",
		},
		{
			"binary choice",
			constantModel,
			url.Values{"is_featured_sku": {"2"}},
			http.StatusBadRequest,
			"Invalid input: is_featured_sku must be one of 0, 1",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(t, tt.artifact)
			w := postForm(router, tt.values)

			assert.Equal(t, tt.status, w.Code)
			body := w.Body.String()
			assert.Contains(t, body, tt.want)
			assert.Equal(t, 1, strings.Count(body, `id="result"`), "exactly one message per submission")
			assert.Contains(t, body, `name="year"`, "form stays usable")
		})
	}
}

func TestSubmitFormKeepsValues(t *testing.T) {
	router := newTestRouter(t, constantModel)

	w := postForm(router, url.Values{"sku_id": {"2002"}, "is_display_sku": {"1"}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `value="2002"`)
	assert.Contains(t, w.Body.String(), `<option value="1" selected>`)
}

func TestSubmitFormKeepsFullPrecision(t *testing.T) {
	router := newTestRouter(t, constantModel)

	w := postForm(router, url.Values{"total_price": {"499.999"}, "base_price": {"450.125"}})
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `value="499.999"`)
	assert.Contains(t, body, `value="450.125"`)
	assert.NotContains(t, body, `value="500.00"`)
}

func TestPredictAPI(t *testing.T) {
	tests := []struct {
		name      string
		artifact  string
		body      string
		status    int
		message   string
		unitsSold *float64
	}{
		{
			"success",
			constantModel,
			`{"store_id": 1, "sku_id": 1001, "day": 15, "month": 6, "year": 2025}`,
			http.StatusOK,
			"Predicted Units Sold: 123.46",
			floatPtr(123.456),
		},
		{
			"not loaded",
			"",
			`{}`,
			http.StatusServiceUnavailable,
			"Model not loaded. Please check your model path.",
			nil,
		},
		{
			"not fitted",
			unfittedModel,
			`{}`,
			http.StatusServiceUnavailable,
			"The model is not trained. Please ensure the model is fitted before saving.",
			nil,
		},
		{
			"malformed json",
			constantModel,
			`{"day": `,
			http.StatusBadRequest,
			"",
			nil,
		},
		{
			"month out of range",
			constantModel,
			`{"month": 13}`,
			http.StatusBadRequest,
			"Invalid input: month must be at most 12",
			nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(t, tt.artifact)
			w := postJSON(router, tt.body)
			require.Equal(t, tt.status, w.Code)

			var resp models.PredictionResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			if tt.message != "" {
				assert.Equal(t, tt.message, resp.Message)
			}
			if tt.unitsSold != nil {
				require.NotNil(t, resp.UnitsSold)
				assert.InDelta(t, *tt.unitsSold, *resp.UnitsSold, 1e-9)
				assert.Equal(t, "success", resp.Level)
			} else {
				assert.Nil(t, resp.UnitsSold)
				assert.Equal(t, "error", resp.Level)
			}
		})
	}
}

func TestModelEndpoint(t *testing.T) {
	router := newTestRouter(t, constantModel)

	w := get(router, "/api/v1/model")
	require.Equal(t, http.StatusOK, w.Code)

	var info models.ModelInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.True(t, info.Loaded)
	assert.True(t, info.Fitted)
	assert.Equal(t, services.ModelTypeLinear, info.ModelType)
	assert.Equal(t, []string{"day", "promo_flag"}, info.FeatureNames)
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name     string
		artifact string
		loaded   bool
	}{
		{"model loaded", constantModel, true},
		{"model missing", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(newTestRouter(t, tt.artifact), "/health")
			require.Equal(t, http.StatusOK, w.Code)

			var payload map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
			assert.Equal(t, "UP", payload["status"])
			assert.Equal(t, tt.loaded, payload["model_loaded"])
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t, constantModel)
	postJSON(router, `{}`)

	w := get(router, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "demand_forecast_predictions_total")
	assert.Contains(t, w.Body.String(), "demand_forecast_model_loaded")
}

func floatPtr(v float64) *float64 { return &v }
