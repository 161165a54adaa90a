package testutil

import (
	"fmt"
	"strings"

	"permeability-service/internal/core/domain"
)

// WellLogCSV builds an upload with a Depth column and every feature column.
// Row i has depth 1000+0.5*i and feature j set to (i+1)*0.1+j.
func WellLogCSV(rows int) string {
	var b strings.Builder
	b.WriteString(domain.DepthColumn)
	for _, f := range domain.FeatureSchema {
		b.WriteString(",")
		b.WriteString(f)
	}
	b.WriteString("\n")
	for i := 0; i < rows; i++ {
		fmt.Fprintf(&b, "%g", 1000+0.5*float64(i))
		for j := range domain.FeatureSchema {
			fmt.Fprintf(&b, ",%g", float64(i+1)*0.1+float64(j))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// ReferenceCSV builds a reference file with Depth and Actual Permeability
// columns; the permeability of row i is 1.123456*(i+1).
func ReferenceCSV(rows int) string {
	var b strings.Builder
	b.WriteString(domain.DepthColumn + "," + domain.ActualPermeabilityColumn + "\n")
	for i := 0; i < rows; i++ {
		fmt.Fprintf(&b, "%g,%g\n", 1000+0.5*float64(i), 1.123456*float64(i+1))
	}
	return b.String()
}

// ReferenceTable is ReferenceCSV already parsed.
func ReferenceTable(rows int) *domain.Table {
	depth := make([]float64, rows)
	actual := make([]float64, rows)
	for i := 0; i < rows; i++ {
		depth[i] = 1000 + 0.5*float64(i)
		actual[i] = 1.123456 * float64(i+1)
	}
	return &domain.Table{
		Index: domain.PositionalIndex(rows),
		Columns: []*domain.Column{
			domain.NewNumericColumn(domain.DepthColumn, depth),
			domain.NewNumericColumn(domain.ActualPermeabilityColumn, actual),
		},
	}
}

// ModelJSON is a two-tree gbtree artifact over domain.FeatureSchema.
const ModelJSON = `{
  "booster": "gbtree",
  "objective": "reg:squarederror",
  "base_score": 0.5,
  "feature_names": ["Acoustic (AC)", "Density Log (DEN)", "Gamma Ray (GR)", "Neutron (NEU)",
    "Photoelectric Absorption Factor (PEF)", "Density Correction (DENC)", "Deep Resistivity (RDEP)",
    "Porosity", "Grain Density"],
  "trees": [
    {"nodeid": 0, "split": "Porosity", "split_condition": 7.5, "yes": 1, "no": 2, "missing": 1,
     "children": [{"nodeid": 1, "leaf": 0.123456789}, {"nodeid": 2, "leaf": 1.987654321}]},
    {"nodeid": 0, "split": "Acoustic (AC)", "split_condition": 0.35, "yes": 1, "no": 2, "missing": 2,
     "children": [{"nodeid": 1, "leaf": -0.0111111}, {"nodeid": 2, "leaf": 0.0222222}]}
  ]
}`
