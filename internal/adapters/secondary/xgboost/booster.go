package xgboost

import (
	"fmt"
	"math"
)

// flatNode is a compiled tree node. Children are slice positions, not node ids.
type flatNode struct {
	leaf      bool
	value     float64
	feature   int
	threshold float32
	yes       int
	no        int
	missing   int
}

type tree []flatNode

// Booster is an immutable compiled model. It is safe for concurrent use.
type Booster struct {
	kind      string
	objective string
	link      func(float64) float64
	baseScore float64
	features  []string
	trees     []tree
	weights   []float64
	bias      float64
}

func (b *Booster) Features() []string {
	return append([]string(nil), b.features...)
}

func (b *Booster) Kind() string { return b.kind }

func (b *Booster) Objective() string { return b.objective }

func (b *Booster) Trees() int { return len(b.trees) }

// Predict scores every row and applies the objective's inverse link to the
// margin. NaN marks a missing value.
func (b *Booster) Predict(rows [][]float64) ([]float64, error) {
	out := make([]float64, len(rows))
	for i, row := range rows {
		if len(row) != len(b.features) {
			return nil, fmt.Errorf("row %d has %d features, model expects %d", i, len(row), len(b.features))
		}
		out[i] = b.link(b.score(row))
	}
	return out, nil
}

func (b *Booster) score(row []float64) float64 {
	if b.kind == BoosterLinear {
		sum := b.baseScore + b.bias
		for j, w := range b.weights {
			if !math.IsNaN(row[j]) {
				sum += w * row[j]
			}
		}
		return sum
	}

	sum := b.baseScore
	for _, t := range b.trees {
		sum += t.leaf(row)
	}
	return sum
}

// leaf walks one tree. Splits compare in float32, as xgboost does.
func (t tree) leaf(row []float64) float64 {
	n := &t[0]
	for !n.leaf {
		x := row[n.feature]
		switch {
		case math.IsNaN(x):
			n = &t[n.missing]
		case float32(x) < n.threshold:
			n = &t[n.yes]
		default:
			n = &t[n.no]
		}
	}
	return n.value
}
