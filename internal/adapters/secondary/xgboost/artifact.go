// Package xgboost evaluates gradient-boosted models exported as XGBoost JSON
// tree dumps.
package xgboost

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"permeability-service/internal/core/domain"
)

const (
	BoosterTree   = "gbtree"
	BoosterLinear = "gblinear"
)

// Artifact is the on-disk envelope around the tree dump produced by
// Booster.get_dump(dump_format="json").
type Artifact struct {
	Booster      string    `json:"booster"`
	Objective    string    `json:"objective"`
	BaseScore    float64   `json:"base_score"`
	FeatureNames []string  `json:"feature_names"`
	Trees        []Node    `json:"trees,omitempty"`
	Weights      []float64 `json:"weights,omitempty"`
	Bias         float64   `json:"bias,omitempty"`
}

// Node is one node of a dumped tree. Leaf nodes carry Leaf and no children.
type Node struct {
	NodeID         int      `json:"nodeid"`
	Depth          int      `json:"depth,omitempty"`
	Split          string   `json:"split,omitempty"`
	SplitCondition float64  `json:"split_condition,omitempty"`
	Yes            int      `json:"yes,omitempty"`
	No             int      `json:"no,omitempty"`
	Missing        int      `json:"missing,omitempty"`
	Leaf           *float64 `json:"leaf,omitempty"`
	Children       []Node   `json:"children,omitempty"`
}

// LoadArtifact reads and compiles the model at path. The schema is the
// expected feature order; the artifact's feature names must match it.
func LoadArtifact(path string, schema []string) (*Booster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", domain.ErrInvalidModelArtifact, path, err)
	}
	return ParseArtifact(data, schema)
}

func ParseArtifact(data []byte, schema []string) (*Booster, error) {
	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", domain.ErrInvalidModelArtifact, err)
	}
	return Compile(&a, schema)
}

// Compile validates a decoded artifact and flattens its trees for evaluation.
func Compile(a *Artifact, schema []string) (*Booster, error) {
	if a.Booster == "" {
		a.Booster = BoosterTree
	}
	if err := checkFeatures(a.FeatureNames, schema); err != nil {
		return nil, err
	}
	link, err := linkFor(a.Objective)
	if err != nil {
		return nil, err
	}

	b := &Booster{
		kind:      a.Booster,
		objective: a.Objective,
		link:      link,
		baseScore: a.BaseScore,
		features:  append([]string(nil), schema...),
	}

	switch a.Booster {
	case BoosterTree:
		if len(a.Trees) == 0 {
			return nil, fmt.Errorf("%w: gbtree artifact has no trees", domain.ErrInvalidModelArtifact)
		}
		index := featureIndex(schema)
		for i := range a.Trees {
			t, err := compileTree(&a.Trees[i], index)
			if err != nil {
				return nil, fmt.Errorf("%w: tree %d: %v", domain.ErrInvalidModelArtifact, i, err)
			}
			b.trees = append(b.trees, t)
		}
	case BoosterLinear:
		if len(a.Weights) != len(schema) {
			return nil, fmt.Errorf("%w: gblinear has %d weights for %d features",
				domain.ErrInvalidModelArtifact, len(a.Weights), len(schema))
		}
		b.weights = append([]float64(nil), a.Weights...)
		b.bias = a.Bias
	default:
		return nil, fmt.Errorf("%w: unsupported booster %q", domain.ErrInvalidModelArtifact, a.Booster)
	}

	return b, nil
}

func checkFeatures(names, schema []string) error {
	if len(names) == 0 {
		return fmt.Errorf("%w: feature_names missing", domain.ErrInvalidModelArtifact)
	}
	if len(names) != len(schema) {
		return fmt.Errorf("%w: model has %d features, expected %d", domain.ErrInvalidModelArtifact, len(names), len(schema))
	}
	for i := range names {
		if names[i] != schema[i] {
			return fmt.Errorf("%w: feature %d is %q, expected %q", domain.ErrInvalidModelArtifact, i, names[i], schema[i])
		}
	}
	return nil
}

func featureIndex(schema []string) map[string]int {
	index := make(map[string]int, len(schema))
	for i, name := range schema {
		index[name] = i
	}
	return index
}

// resolveFeature accepts a feature name or the positional "f<k>" form.
func resolveFeature(split string, index map[string]int) (int, error) {
	if i, ok := index[split]; ok {
		return i, nil
	}
	if strings.HasPrefix(split, "f") {
		if k, err := strconv.Atoi(split[1:]); err == nil && k >= 0 && k < len(index) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown split feature %q", split)
}
