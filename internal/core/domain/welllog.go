package domain

import (
	"fmt"
	"math"
)

// Column is a named sequence of cells. Raw keeps the text as read; Values is
// only meaningful when Numeric is set, with empty cells stored as NaN.
type Column struct {
	Name    string
	Numeric bool
	Raw     []string
	Values  []float64
}

func (c *Column) Len() int {
	if c.Numeric {
		return len(c.Values)
	}
	return len(c.Raw)
}

// NewNumericColumn builds a numeric column and fills Raw from values.
func NewNumericColumn(name string, values []float64) *Column {
	raw := make([]string, len(values))
	for i, v := range values {
		raw[i] = formatRaw(v)
	}
	return &Column{Name: name, Numeric: true, Raw: raw, Values: values}
}

// PositionalIndex returns the unnamed 0..n-1 index used when no Depth column is present.
func PositionalIndex(n int) *Column {
	values := make([]float64, n)
	for i := range values {
		values[i] = float64(i)
	}
	return NewNumericColumn("", values)
}

// Table is the well-log table: an index column plus ordered data columns.
type Table struct {
	Index   *Column
	Columns []*Column
}

func (t *Table) Rows() int {
	if t.Index == nil {
		return 0
	}
	return t.Index.Len()
}

// IndexName is "Depth" after promotion and empty for a positional index.
func (t *Table) IndexName() string {
	if t.Index == nil {
		return ""
	}
	return t.Index.Name
}

// Column returns the data column with the given name, or nil.
func (t *Table) Column(name string) *Column {
	for _, c := range t.Columns {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// SetColumn replaces a column of the same name in place or appends it.
func (t *Table) SetColumn(col *Column) error {
	if col.Len() != t.Rows() {
		return fmt.Errorf("column %q has %d values, table has %d rows", col.Name, col.Len(), t.Rows())
	}
	for i, c := range t.Columns {
		if c.Name == col.Name {
			t.Columns[i] = col
			return nil
		}
	}
	t.Columns = append(t.Columns, col)
	return nil
}

// ColumnNames lists data column names in order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

func formatRaw(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return fmt.Sprintf("%g", v)
}
