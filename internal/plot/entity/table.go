package entity

import "time"

// Column is a single named column of a loaded dataset.
//
// Cells always holds the raw (trimmed) text of every row. For numeric
// columns Floats is populated in parallel, with NaN standing in for empty
// cells; for datetime columns Times is populated the same way with the zero
// time for empty cells.
type Column struct {
	Name   string
	Type   ColumnType
	Cells  []string
	Floats []float64
	Times  []time.Time
}

// Table is an in-memory dataset with uniquely named, equal-length columns.
// It is owned by a single request and discarded after rendering.
type Table struct {
	Columns []Column
	Rows    int
}

// Column returns the column with the given name, or nil when absent.
func (t *Table) Column(name string) *Column {
	for i := range t.Columns {
		if t.Columns[i].Name == name {
			return &t.Columns[i]
		}
	}
	return nil
}

// NumericColumns returns all numeric columns in table order.
func (t *Table) NumericColumns() []*Column {
	var cols []*Column
	for i := range t.Columns {
		if t.Columns[i].Type == ColumnNumeric {
			cols = append(cols, &t.Columns[i])
		}
	}
	return cols
}

// ColumnSet is the outcome of column resolution for one plot request.
// X and Y are nil when the plot type does not use them; Numeric is only
// populated for the heatmap, which operates on every numeric column.
type ColumnSet struct {
	X       *Column
	Y       *Column
	Numeric []*Column
}
