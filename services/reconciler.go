package services

// Row is a single input record whose columns are in model order.
type Row struct {
	Columns []string
	Values  []float64
}

// Value returns the value of column name.
func (r Row) Value(name string) (float64, bool) {
	for i, col := range r.Columns {
		if col == name {
			return r.Values[i], true
		}
	}
	return 0, false
}

// Reconcile aligns raw form values to the model's expected schema: columns
// the model expects but raw lacks are filled with 0, columns raw has but the
// model does not expect are dropped, and the order follows expected. raw is
// not modified.
func Reconcile(raw map[string]float64, expected []string) Row {
	row := Row{
		Columns: make([]string, len(expected)),
		Values:  make([]float64, len(expected)),
	}
	copy(row.Columns, expected)
	for i, name := range expected {
		// missing keys read as the zero value
		row.Values[i] = raw[name]
	}
	return row
}

// MissingFeatures lists the expected names absent from raw, in schema order.
func MissingFeatures(raw map[string]float64, expected []string) []string {
	var missing []string
	for _, name := range expected {
		if _, ok := raw[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}
