package handlers

import (
	"embed"
	"html/template"
	"strconv"

	"demand-forecast-app/models"
	"demand-forecast-app/services"
)

//go:embed templates/*.html
var templateFS embed.FS

const pageTitle = "Demand Forecasting App"

// LoadTemplates parses the embedded page templates.
func LoadTemplates() (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/*.html")
}

type pageView struct {
	Title  string
	Banner *services.Message
	Rows   [][]fieldView
	Result *services.Message
}

type fieldView struct {
	Name    string
	Label   string
	Value   string
	Step    string
	Min     string
	Max     string
	Options []optionView
}

type optionView struct {
	Value    string
	Selected bool
}

func newPageView(req models.PredictionRequest, banner, result *services.Message) pageView {
	values := req.Features()
	specs := models.FormRows()

	rows := make([][]fieldView, len(specs))
	for i, row := range specs {
		rows[i] = make([]fieldView, len(row))
		for j, spec := range row {
			rows[i][j] = newFieldView(spec, values[spec.Name])
		}
	}
	return pageView{Title: pageTitle, Banner: banner, Rows: rows, Result: result}
}

func newFieldView(spec models.FieldSpec, value float64) fieldView {
	fv := fieldView{Name: spec.Name, Label: spec.Label}
	switch spec.Kind {
	case models.KindFloat:
		fv.Value = strconv.FormatFloat(value, 'f', -1, 64)
		fv.Step = "any"
	case models.KindChoice:
		for _, choice := range spec.Choices {
			fv.Options = append(fv.Options, optionView{
				Value:    strconv.Itoa(choice),
				Selected: float64(choice) == value,
			})
		}
	default:
		fv.Value = strconv.FormatFloat(value, 'f', -1, 64)
		fv.Step = "1"
	}
	if spec.Min != nil {
		fv.Min = strconv.Itoa(*spec.Min)
	}
	if spec.Max != nil {
		fv.Max = strconv.Itoa(*spec.Max)
	}
	return fv
}
