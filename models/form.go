package models

const (
	FieldStoreID       = "store_id"
	FieldSKUID         = "sku_id"
	FieldTotalPrice    = "total_price"
	FieldBasePrice     = "base_price"
	FieldIsFeaturedSKU = "is_featured_sku"
	FieldIsDisplaySKU  = "is_display_sku"
	FieldDay           = "day"
	FieldMonth         = "month"
	FieldYear          = "year"
)

type FieldKind string

const (
	KindInteger FieldKind = "integer"
	KindFloat   FieldKind = "float"
	KindChoice  FieldKind = "choice"
)

// FieldSpec describes one input control of the form.
type FieldSpec struct {
	Name    string
	Label   string
	Kind    FieldKind
	Default float64
	Min     *int
	Max     *int
	Choices []int
}

func bound(v int) *int { return &v }

// FormFields lists the controls in display order.
var FormFields = []FieldSpec{
	{Name: FieldStoreID, Label: "Store ID", Kind: KindInteger, Default: 1, Min: bound(0)},
	{Name: FieldSKUID, Label: "SKU ID", Kind: KindInteger, Default: 1001, Min: bound(0)},
	{Name: FieldTotalPrice, Label: "Total Price", Kind: KindFloat, Default: 500.0},
	{Name: FieldBasePrice, Label: "Base Price", Kind: KindFloat, Default: 450.0},
	{Name: FieldIsFeaturedSKU, Label: "Is Featured SKU", Kind: KindChoice, Default: 0, Choices: []int{0, 1}},
	{Name: FieldIsDisplaySKU, Label: "Is Display SKU", Kind: KindChoice, Default: 0, Choices: []int{0, 1}},
	{Name: FieldDay, Label: "Day", Kind: KindInteger, Default: 15, Min: bound(1), Max: bound(31)},
	{Name: FieldMonth, Label: "Month", Kind: KindInteger, Default: 6, Min: bound(1), Max: bound(12)},
	{Name: FieldYear, Label: "Year", Kind: KindInteger, Default: 2025},
}

const formColumns = 3

// FormRows groups FormFields into rows of three.
func FormRows() [][]FieldSpec {
	rows := make([][]FieldSpec, 0, (len(FormFields)+formColumns-1)/formColumns)
	for i := 0; i < len(FormFields); i += formColumns {
		end := i + formColumns
		if end > len(FormFields) {
			end = len(FormFields)
		}
		rows = append(rows, FormFields[i:end])
	}
	return rows
}
