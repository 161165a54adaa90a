package view

import (
	"embed"
	"html/template"

	"permeability-service/internal/core/domain"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

const PageTemplate = "index.html.tmpl"

// Templates parses the embedded page templates for gin's HTML renderer.
func Templates() (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/*.tmpl")
}

// PageData is everything the page template needs. Table and Figure are nil
// until a file has been rendered.
type PageData struct {
	Style         *Presentation
	FileName      string
	Error         string
	RowCount      int
	MergeStrategy domain.MergeStrategy
	Table         *TableView
	Figure        *Figure
	Widths        []float64
}

// NewPage builds page data. A nil report renders the upload form only.
func NewPage(style *Presentation, report *domain.Report) PageData {
	p := PageData{Style: style, Widths: style.Layout.Widths()}
	if report == nil {
		return p
	}
	tv := BuildTable(report.Table, style.Table)
	fig := BuildFigure(report.Table, style.Chart)
	p.FileName = report.FileName
	p.RowCount = report.RowCount()
	p.MergeStrategy = report.MergeStrategy
	p.Table = &tv
	p.Figure = &fig
	return p
}
