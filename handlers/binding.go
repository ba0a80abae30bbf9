package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// fieldNames maps PredictionRequest struct fields to their form names.
var fieldNames = map[string]string{
	"StoreID":       "store_id",
	"SKUID":         "sku_id",
	"TotalPrice":    "total_price",
	"BasePrice":     "base_price",
	"IsFeaturedSKU": "is_featured_sku",
	"IsDisplaySKU":  "is_display_sku",
	"Day":           "day",
	"Month":         "month",
	"Year":          "year",
}

// bindingError turns gin binding failures into a short, field-oriented
// error. Non-validation errors (bad numbers, malformed JSON) pass through.
func bindingError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		name, ok := fieldNames[fe.Field()]
		if !ok {
			name = fe.Field()
		}
		switch fe.Tag() {
		case "gte", "min":
			parts = append(parts, fmt.Sprintf("%s must be at least %s", name, fe.Param()))
		case "max", "lte":
			parts = append(parts, fmt.Sprintf("%s must be at most %s", name, fe.Param()))
		case "oneof":
			parts = append(parts, fmt.Sprintf("%s must be one of %s", name, strings.ReplaceAll(fe.Param(), " ", ", ")))
		default:
			parts = append(parts, fmt.Sprintf("%s failed %s validation", name, fe.Tag()))
		}
	}
	return errors.New(strings.Join(parts, "; "))
}
