package view

import (
	"fmt"
	"math"

	"permeability-service/internal/core/domain"
)

// TableView is a report table with every cell already formatted.
type TableView struct {
	IndexName string
	Headers   []string
	Rows      []RowView
}

type RowView struct {
	Index string
	Cells []string
}

func BuildTable(t *domain.Table, style TableStyle) TableView {
	tv := TableView{
		IndexName: t.IndexName(),
		Headers:   t.ColumnNames(),
		Rows:      make([]RowView, t.Rows()),
	}
	for i := range tv.Rows {
		row := RowView{
			Index: indexLabel(t.Index, i),
			Cells: make([]string, len(t.Columns)),
		}
		for j, c := range t.Columns {
			row.Cells[j] = FormatCell(c, i, style)
		}
		tv.Rows[i] = row
	}
	return tv
}

// FormatCell prints numeric cells with the column's format and text cells as read.
func FormatCell(c *domain.Column, i int, style TableStyle) string {
	if !c.Numeric {
		return c.Raw[i]
	}
	v := c.Values[i]
	if math.IsNaN(v) {
		return style.MissingValue
	}
	return fmt.Sprintf(style.FormatFor(c.Name), v)
}

func indexLabel(c *domain.Column, i int) string {
	if c.Numeric && c.Name == "" {
		return fmt.Sprintf("%d", int(c.Values[i]))
	}
	return c.Raw[i]
}
