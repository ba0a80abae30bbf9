package models

// PredictionRequest is one submission of the input form. It is built fresh
// for every request and discarded once the outcome is rendered.
type PredictionRequest struct {
	StoreID       int     `form:"store_id" json:"store_id" binding:"gte=0"`
	SKUID         int     `form:"sku_id" json:"sku_id" binding:"gte=0"`
	TotalPrice    float64 `form:"total_price" json:"total_price"`
	BasePrice     float64 `form:"base_price" json:"base_price"`
	IsFeaturedSKU int     `form:"is_featured_sku" json:"is_featured_sku" binding:"oneof=0 1"`
	IsDisplaySKU  int     `form:"is_display_sku" json:"is_display_sku" binding:"oneof=0 1"`
	Day           int     `form:"day" json:"day" binding:"min=1,max=31"`
	Month         int     `form:"month" json:"month" binding:"min=1,max=12"`
	Year          int     `form:"year" json:"year"`
}

// DefaultPredictionRequest returns the values the form shows on first load.
func DefaultPredictionRequest() PredictionRequest {
	return PredictionRequest{
		StoreID:       1,
		SKUID:         1001,
		TotalPrice:    500.0,
		BasePrice:     450.0,
		IsFeaturedSKU: 0,
		IsDisplaySKU:  0,
		Day:           15,
		Month:         6,
		Year:          2025,
	}
}

// Features snapshots the request as a name -> value mapping keyed by the
// form field names.
func (r PredictionRequest) Features() map[string]float64 {
	return map[string]float64{
		FieldStoreID:       float64(r.StoreID),
		FieldSKUID:         float64(r.SKUID),
		FieldTotalPrice:    r.TotalPrice,
		FieldBasePrice:     r.BasePrice,
		FieldIsFeaturedSKU: float64(r.IsFeaturedSKU),
		FieldIsDisplaySKU:  float64(r.IsDisplaySKU),
		FieldDay:           float64(r.Day),
		FieldMonth:         float64(r.Month),
		FieldYear:          float64(r.Year),
	}
}

// PredictionResponse is the JSON body of the predict API.
type PredictionResponse struct {
	Message   string   `json:"message"`
	Level     string   `json:"level"`
	UnitsSold *float64 `json:"units_sold,omitempty"`
}

// ModelInfo describes the loaded artifact for the model endpoint.
type ModelInfo struct {
	Loaded       bool     `json:"loaded"`
	Path         string   `json:"path"`
	ModelType    string   `json:"model_type,omitempty"`
	Fitted       bool     `json:"fitted"`
	FeatureNames []string `json:"feature_names,omitempty"`
	Error        string   `json:"error,omitempty"`
}
