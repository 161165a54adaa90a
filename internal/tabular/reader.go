// Package tabular reads CSV well logs into domain tables.
package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"permeability-service/internal/core/domain"
)

// naTokens are cell values read as missing, matching what common dataframe
// readers treat as NA by default.
var naTokens = map[string]struct{}{
	"": {}, "#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {}, "N/A": {},
	"NA": {}, "NULL": {}, "NaN": {}, "None": {}, "n/a": {}, "nan": {}, "null": {},
}

// Read parses a CSV stream with a header row. Every column whose non-missing
// cells all parse as floats becomes numeric. The returned table carries an
// unnamed positional index.
func Read(r io.Reader) (*domain.Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: no columns to parse", domain.ErrMalformedCSV)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedCSV, err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	header = dedupe(header)

	cells := make([][]string, len(header))
	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrMalformedCSV, err)
		}
		line++
		if len(rec) > len(header) {
			return nil, fmt.Errorf("%w: line %d: expected %d fields, saw %d",
				domain.ErrMalformedCSV, line, len(header), len(rec))
		}
		for i := range header {
			v := ""
			if i < len(rec) {
				v = rec[i]
			}
			cells[i] = append(cells[i], v)
		}
	}

	rows := 0
	if len(cells) > 0 {
		rows = len(cells[0])
	}

	t := &domain.Table{Index: domain.PositionalIndex(rows)}
	for i, name := range header {
		raw := cells[i]
		if raw == nil {
			raw = []string{}
		}
		t.Columns = append(t.Columns, inferColumn(name, raw))
	}
	return t, nil
}

// SetIndex promotes the named column to the table index and removes it from
// the data columns. It reports whether the column existed.
func SetIndex(t *domain.Table, name string) bool {
	for i, c := range t.Columns {
		if c.Name != name {
			continue
		}
		t.Index = c
		t.Columns = append(t.Columns[:i:i], t.Columns[i+1:]...)
		return true
	}
	return false
}

func inferColumn(name string, raw []string) *domain.Column {
	values := make([]float64, len(raw))
	for i, cell := range raw {
		s := strings.TrimSpace(cell)
		if _, ok := naTokens[s]; ok {
			values[i] = math.NaN()
			continue
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return &domain.Column{Name: name, Raw: raw}
		}
		values[i] = f
	}
	return &domain.Column{Name: name, Numeric: true, Raw: raw, Values: values}
}

// dedupe names blank headers "Unnamed: <position>" and renames repeated
// headers to "name.1", "name.2", ...
func dedupe(header []string) []string {
	counts := make(map[string]int, len(header))
	used := make(map[string]bool, len(header))
	out := make([]string, len(header))
	for i, h := range header {
		if h == "" {
			h = fmt.Sprintf("Unnamed: %d", i)
		}
		name := h
		for used[name] {
			counts[h]++
			name = fmt.Sprintf("%s.%d", h, counts[h])
		}
		used[name] = true
		out[i] = name
	}
	return out
}
