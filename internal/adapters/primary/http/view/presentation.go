package view

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed presentation.yaml
var defaultPresentation []byte

// Presentation maps columns and series to their formatting and style rules.
type Presentation struct {
	Page   PageStyle   `yaml:"page"`
	Table  TableStyle  `yaml:"table"`
	Chart  ChartStyle  `yaml:"chart"`
	Layout LayoutStyle `yaml:"layout"`
}

type PageStyle struct {
	Title         string `yaml:"title"`
	Icon          string `yaml:"icon"`
	SidebarHeader string `yaml:"sidebar_header"`
	UploadLabel   string `yaml:"upload_label"`
}

type TableStyle struct {
	Height        int               `yaml:"height"`
	Header        HeaderStyle       `yaml:"header"`
	BodyFontSize  string            `yaml:"body_font_size"`
	NumericFormat string            `yaml:"numeric_format"`
	MissingValue  string            `yaml:"missing_value"`
	Columns       map[string]string `yaml:"columns"`
}

type HeaderStyle struct {
	FontWeight string `yaml:"font_weight"`
	FontSize   string `yaml:"font_size"`
	WhiteSpace string `yaml:"white_space"`
	TextAlign  string `yaml:"text_align"`
	Color      string `yaml:"color"`
}

type ChartStyle struct {
	Title         string        `yaml:"title"`
	XAxisTitle    string        `yaml:"x_axis_title"`
	YAxisTitle    string        `yaml:"y_axis_title"`
	LegendTitle   string        `yaml:"legend_title"`
	Template      string        `yaml:"template"`
	Width         int           `yaml:"width"`
	Height        int           `yaml:"height"`
	Background    string        `yaml:"background"`
	TitleFont     FontStyle     `yaml:"title_font"`
	AxisTitleFont FontStyle     `yaml:"axis_title_font"`
	Margin        MarginStyle   `yaml:"margin"`
	Series        []SeriesStyle `yaml:"series"`
}

type FontStyle struct {
	Family string `yaml:"family" json:"family"`
	Size   int    `yaml:"size" json:"size"`
	Color  string `yaml:"color" json:"color"`
	Weight string `yaml:"weight" json:"weight"`
}

type MarginStyle struct {
	L int `yaml:"l" json:"l"`
	R int `yaml:"r" json:"r"`
	T int `yaml:"t" json:"t"`
	B int `yaml:"b" json:"b"`
}

type SeriesStyle struct {
	Column string `yaml:"column"`
	Color  string `yaml:"color"`
}

type LayoutStyle struct {
	Columns []int `yaml:"columns"`
}

// DefaultPresentation returns the embedded styling table.
func DefaultPresentation() (*Presentation, error) {
	var p Presentation
	if err := yaml.Unmarshal(defaultPresentation, &p); err != nil {
		return nil, fmt.Errorf("decode default presentation: %w", err)
	}
	return &p, nil
}

// LoadPresentation applies the YAML file at path over the defaults. An empty
// path returns the defaults.
func LoadPresentation(path string) (*Presentation, error) {
	p, err := DefaultPresentation()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return p, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read presentation config: %w", err)
	}
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("decode presentation config %s: %w", path, err)
	}
	if len(p.Chart.Series) == 0 {
		return nil, fmt.Errorf("presentation config %s: chart needs at least one series", path)
	}
	if len(p.Layout.Columns) != 2 {
		return nil, fmt.Errorf("presentation config %s: layout needs two column widths", path)
	}
	if !knownTemplate(p.Chart.Template) {
		return nil, fmt.Errorf("presentation config %s: unknown chart template %q", path, p.Chart.Template)
	}
	return p, nil
}

// FormatFor returns the printf verb used for a numeric column.
func (t TableStyle) FormatFor(column string) string {
	if f, ok := t.Columns[column]; ok && f != "" {
		return f
	}
	if t.NumericFormat != "" {
		return t.NumericFormat
	}
	return "%.4f"
}

// Widths returns the layout column widths as percentages.
func (l LayoutStyle) Widths() []float64 {
	cols := l.Columns
	if len(cols) != 2 {
		cols = []int{1, 1}
	}
	total := 0
	for _, c := range cols {
		total += c
	}
	out := make([]float64, len(cols))
	for i, c := range cols {
		out[i] = float64(c) * 100 / float64(total)
	}
	return out
}
