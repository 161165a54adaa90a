package view

import (
	"encoding/json"
	"math"

	"permeability-service/internal/core/domain"
)

// Number marshals NaN and infinities as null so missing points become gaps.
type Number float64

func (n Number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(f)
}

// Figure is a Plotly figure specification drawn client-side by plotly.js.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

type Trace struct {
	Type string        `json:"type"`
	Mode string        `json:"mode"`
	Name string        `json:"name"`
	X    []interface{} `json:"x"`
	Y    []Number      `json:"y"`
	Line LineStyle     `json:"line"`
}

type LineStyle struct {
	Color string `json:"color"`
}

type Layout struct {
	Title        Title       `json:"title"`
	XAxis        Axis        `json:"xaxis"`
	YAxis        Axis        `json:"yaxis"`
	Legend       Legend      `json:"legend"`
	Template     *Template   `json:"template,omitempty"`
	Width        int         `json:"width"`
	Height       int         `json:"height"`
	Margin       MarginStyle `json:"margin"`
	PlotBGColor  string      `json:"plot_bgcolor"`
	PaperBGColor string      `json:"paper_bgcolor"`
}

// Template is a plotly.js layout template. plotly.js only accepts template
// objects, so named templates are resolved server-side.
type Template struct {
	Layout TemplateLayout `json:"layout"`
}

type TemplateLayout struct {
	PaperBGColor string       `json:"paper_bgcolor"`
	PlotBGColor  string       `json:"plot_bgcolor"`
	Font         TemplateFont `json:"font"`
	Colorway     []string     `json:"colorway"`
	XAxis        TemplateAxis `json:"xaxis"`
	YAxis        TemplateAxis `json:"yaxis"`
}

type TemplateFont struct {
	Color string `json:"color"`
}

type TemplateAxis struct {
	GridColor     string `json:"gridcolor"`
	LineColor     string `json:"linecolor"`
	ZeroLineColor string `json:"zerolinecolor"`
	ZeroLineWidth int    `json:"zerolinewidth"`
	Ticks         string `json:"ticks"`
	AutoMargin    bool   `json:"automargin"`
}

var plotlyColorway = []string{
	"#636efa", "#EF553B", "#00cc96", "#ab63fa", "#FFA15A",
	"#19d3f3", "#FF6692", "#B6E880", "#FF97FF", "#FECB52",
}

func whiteAxis() TemplateAxis {
	return TemplateAxis{
		GridColor:     "#EBF0F8",
		LineColor:     "#EBF0F8",
		ZeroLineColor: "#EBF0F8",
		ZeroLineWidth: 2,
		AutoMargin:    true,
	}
}

var plotlyWhite = &Template{Layout: TemplateLayout{
	PaperBGColor: "white",
	PlotBGColor:  "white",
	Font:         TemplateFont{Color: "#2a3f5f"},
	Colorway:     plotlyColorway,
	XAxis:        whiteAxis(),
	YAxis:        whiteAxis(),
}}

// templates holds the named chart templates. "none" and "" draw with
// plotly.js defaults.
var templates = map[string]*Template{
	"":             nil,
	"none":         nil,
	"plotly_white": plotlyWhite,
}

func knownTemplate(name string) bool {
	_, ok := templates[name]
	return ok
}

type Title struct {
	Text    string    `json:"text"`
	X       float64   `json:"x"`
	XAnchor string    `json:"xanchor"`
	YAnchor string    `json:"yanchor"`
	Font    FontStyle `json:"font"`
}

type Axis struct {
	Title AxisTitle `json:"title"`
}

type AxisTitle struct {
	Text string    `json:"text"`
	Font FontStyle `json:"font"`
}

type Legend struct {
	Title LegendTitle `json:"title"`
}

type LegendTitle struct {
	Text string `json:"text"`
}

// BuildFigure draws one line per configured series against the table index.
// Series whose column is absent from the table are skipped.
func BuildFigure(t *domain.Table, style ChartStyle) Figure {
	x := indexValues(t.Index)

	traces := make([]Trace, 0, len(style.Series))
	for _, s := range style.Series {
		col := t.Column(s.Column)
		if col == nil || !col.Numeric {
			continue
		}
		y := make([]Number, len(col.Values))
		for i, v := range col.Values {
			y[i] = Number(v)
		}
		traces = append(traces, Trace{
			Type: "scatter",
			Mode: "lines",
			Name: s.Column,
			X:    x,
			Y:    y,
			Line: LineStyle{Color: s.Color},
		})
	}

	return Figure{
		Data: traces,
		Layout: Layout{
			Title: Title{
				Text:    style.Title,
				X:       0.5,
				XAnchor: "center",
				YAnchor: "top",
				Font:    style.TitleFont,
			},
			XAxis:        Axis{Title: AxisTitle{Text: style.XAxisTitle, Font: style.AxisTitleFont}},
			YAxis:        Axis{Title: AxisTitle{Text: style.YAxisTitle, Font: style.AxisTitleFont}},
			Legend:       Legend{Title: LegendTitle{Text: style.LegendTitle}},
			Template:     templates[style.Template],
			Width:        style.Width,
			Height:       style.Height,
			Margin:       style.Margin,
			PlotBGColor:  style.Background,
			PaperBGColor: style.Background,
		},
	}
}

func indexValues(c *domain.Column) []interface{} {
	out := make([]interface{}, c.Len())
	for i := range out {
		if c.Numeric {
			out[i] = Number(c.Values[i])
		} else {
			out[i] = c.Raw[i]
		}
	}
	return out
}
