package domain

const (
	DepthColumn                 = "Depth"
	ActualPermeabilityColumn    = "Actual Permeability"
	PredictedPermeabilityColumn = "Predicted Permeability"
)

// FeatureSchema is the ordered set of input columns the model was trained on.
var FeatureSchema = []string{
	"Acoustic (AC)",
	"Density Log (DEN)",
	"Gamma Ray (GR)",
	"Neutron (NEU)",
	"Photoelectric Absorption Factor (PEF)",
	"Density Correction (DENC)",
	"Deep Resistivity (RDEP)",
	"Porosity",
	"Grain Density",
}

// RoundingPlaces is the number of decimals kept for predictions and rendered cells.
const RoundingPlaces = 4

type MergeStrategy string

const (
	MergePositional MergeStrategy = "positional"
	MergeByDepth    MergeStrategy = "depth"
)

func ParseMergeStrategy(s string) (MergeStrategy, error) {
	switch MergeStrategy(s) {
	case MergePositional, "":
		return MergePositional, nil
	case MergeByDepth:
		return MergeByDepth, nil
	default:
		return "", ErrUnknownMergeStrategy
	}
}
