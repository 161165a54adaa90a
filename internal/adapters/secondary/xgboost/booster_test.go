package xgboost

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"permeability-service/internal/core/domain"
)

// row builds a feature vector with the given porosity (index 7), gamma ray
// (index 2) and deep resistivity (index 6).
func row(porosity, gammaRay, rdep float64) []float64 {
	r := make([]float64, len(domain.FeatureSchema))
	r[2] = gammaRay
	r[6] = rdep
	r[7] = porosity
	return r
}

func loadFixture(t *testing.T) *Booster {
	t.Helper()
	b, err := LoadArtifact(filepath.Join("testdata", "model.json"), domain.FeatureSchema)
	require.NoError(t, err)
	return b
}

func TestLoadArtifact(t *testing.T) {
	b := loadFixture(t)

	assert.Equal(t, BoosterTree, b.Kind())
	assert.Equal(t, "reg:squarederror", b.Objective())
	assert.Equal(t, 2, b.Trees())
	assert.Equal(t, domain.FeatureSchema, b.Features())
}

func TestBooster_Predict(t *testing.T) {
	b := loadFixture(t)

	out, err := b.Predict([][]float64{
		row(0.10, 50, 5),  // yes, yes | yes: 0.5 - 0.25 + 0.125
		row(0.10, 80, 20), // yes, no  | no:  0.5 - 0.4 + 0.5
		row(0.30, 80, 20), // no       | no:  0.5 + 1.75 + 0.5
	})
	require.NoError(t, err)

	assert.InDelta(t, 0.375, out[0], 1e-12)
	assert.InDelta(t, 0.6, out[1], 1e-12)
	assert.InDelta(t, 2.75, out[2], 1e-12)
}

func TestBooster_Predict_MissingValues(t *testing.T) {
	b := loadFixture(t)

	// Porosity missing goes to node 2, RDEP missing goes to node 1.
	out, err := b.Predict([][]float64{row(math.NaN(), 0, math.NaN())})
	require.NoError(t, err)
	assert.InDelta(t, 0.5+1.75+0.125, out[0], 1e-12)
}

func TestBooster_Predict_Deterministic(t *testing.T) {
	b := loadFixture(t)
	r := row(0.12, 61, 9)

	first, err := b.Predict([][]float64{r, r})
	require.NoError(t, err)
	second, err := b.Predict([][]float64{r})
	require.NoError(t, err)

	assert.Equal(t, first[0], first[1])
	assert.Equal(t, first[0], second[0])
}

func TestBooster_Predict_WrongWidth(t *testing.T) {
	b := loadFixture(t)

	_, err := b.Predict([][]float64{{1, 2}})
	assert.Error(t, err)
}

func TestParseArtifact_Linear(t *testing.T) {
	data := `{"booster":"gblinear","base_score":0.5,"bias":1,
		"feature_names":["Acoustic (AC)","Density Log (DEN)","Gamma Ray (GR)","Neutron (NEU)",
		"Photoelectric Absorption Factor (PEF)","Density Correction (DENC)","Deep Resistivity (RDEP)",
		"Porosity","Grain Density"],
		"weights":[1,0,0,0,0,0,0,2,0]}`

	b, err := ParseArtifact([]byte(data), domain.FeatureSchema)
	require.NoError(t, err)

	r := make([]float64, 9)
	r[0] = 3
	r[7] = math.NaN()
	out, err := b.Predict([][]float64{r})
	require.NoError(t, err)
	assert.InDelta(t, 0.5+1+3, out[0], 1e-12)
}

func TestParseArtifact_Invalid(t *testing.T) {
	fixture, err := os.ReadFile(filepath.Join("testdata", "model.json"))
	require.NoError(t, err)

	cases := map[string]string{
		"not json":         `{`,
		"unknown booster":  `{"booster":"dart","feature_names":["a"]}`,
		"feature mismatch": `{"booster":"gbtree","feature_names":["a"],"trees":[{"nodeid":0,"leaf":1}]}`,
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseArtifact([]byte(data), domain.FeatureSchema)
			assert.ErrorIs(t, err, domain.ErrInvalidModelArtifact)
		})
	}

	t.Run("wrong schema order", func(t *testing.T) {
		schema := append([]string(nil), domain.FeatureSchema...)
		schema[0], schema[1] = schema[1], schema[0]
		_, err := ParseArtifact(fixture, schema)
		assert.ErrorIs(t, err, domain.ErrInvalidModelArtifact)
	})
}

func TestCompile_TreeValidation(t *testing.T) {
	leaf := func(v float64) *float64 { return &v }
	base := func(split string, yes int) *Artifact {
		return &Artifact{
			Booster:      BoosterTree,
			FeatureNames: domain.FeatureSchema,
			Trees: []Node{{
				NodeID: 0, Split: split, SplitCondition: 1, Yes: yes, No: 2, Missing: 2,
				Children: []Node{{NodeID: 1, Leaf: leaf(1)}, {NodeID: 2, Leaf: leaf(2)}},
			}},
		}
	}

	_, err := Compile(base("Porosity", 1), domain.FeatureSchema)
	assert.NoError(t, err)

	_, err = Compile(base("f8", 1), domain.FeatureSchema)
	assert.NoError(t, err)

	_, err = Compile(base("Caliper", 1), domain.FeatureSchema)
	assert.ErrorIs(t, err, domain.ErrInvalidModelArtifact)

	_, err = Compile(base("f9", 1), domain.FeatureSchema)
	assert.ErrorIs(t, err, domain.ErrInvalidModelArtifact)

	_, err = Compile(base("Porosity", 0), domain.FeatureSchema)
	assert.ErrorIs(t, err, domain.ErrInvalidModelArtifact)

	_, err = Compile(base("Porosity", 7), domain.FeatureSchema)
	assert.ErrorIs(t, err, domain.ErrInvalidModelArtifact)
}

func TestLoadArtifact_MissingFile(t *testing.T) {
	_, err := LoadArtifact(filepath.Join(t.TempDir(), "absent.json"), domain.FeatureSchema)
	assert.ErrorIs(t, err, domain.ErrInvalidModelArtifact)
}

func singleLeaf(objective string, leaf float64) *Artifact {
	return &Artifact{
		Booster:      BoosterTree,
		Objective:    objective,
		FeatureNames: domain.FeatureSchema,
		Trees:        []Node{{NodeID: 0, Leaf: &leaf}},
	}
}

func TestBooster_Predict_ObjectiveLink(t *testing.T) {
	cases := map[string]float64{
		"reg:squarederror": 2,
		"reg:logistic":     1 / (1 + math.Exp(-2)),
		"binary:logistic":  1 / (1 + math.Exp(-2)),
		"count:poisson":    math.Exp(2),
		"reg:gamma":        math.Exp(2),
		"reg:tweedie":      math.Exp(2),
	}
	for objective, want := range cases {
		t.Run(objective, func(t *testing.T) {
			b, err := Compile(singleLeaf(objective, 2), domain.FeatureSchema)
			require.NoError(t, err)

			out, err := b.Predict([][]float64{make([]float64, len(domain.FeatureSchema))})
			require.NoError(t, err)
			assert.InDelta(t, want, out[0], 1e-12)
		})
	}

	t.Run("logistic is about 0.8808", func(t *testing.T) {
		b, err := Compile(singleLeaf("reg:logistic", 2), domain.FeatureSchema)
		require.NoError(t, err)
		out, err := b.Predict([][]float64{make([]float64, len(domain.FeatureSchema))})
		require.NoError(t, err)
		assert.InDelta(t, 0.8808, out[0], 1e-4)
	})
}

func TestCompile_UnsupportedObjective(t *testing.T) {
	for _, objective := range []string{"multi:softprob", "rank:pairwise", "survival:cox"} {
		_, err := Compile(singleLeaf(objective, 1), domain.FeatureSchema)
		assert.ErrorIs(t, err, domain.ErrInvalidModelArtifact, objective)
	}
}

func TestBooster_Predict_SplitComparesInFloat32(t *testing.T) {
	b := loadFixture(t)

	// 0.149999999 rounds to float32(0.15), so it is not below the threshold.
	out, err := b.Predict([][]float64{
		row(0.149999999, 50, 5),
		row(0.1499, 50, 5),
	})
	require.NoError(t, err)

	assert.InDelta(t, 0.5+1.75+0.125, out[0], 1e-12)
	assert.InDelta(t, 0.5-0.25+0.125, out[1], 1e-12)
}
