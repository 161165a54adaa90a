package xgboost

import (
	"fmt"
	"math"

	"permeability-service/internal/core/domain"
)

// linkFor returns the transform from raw margin to prediction for an
// objective. base_score is read as a margin. An empty objective is treated as
// squared error.
func linkFor(objective string) (func(float64) float64, error) {
	switch objective {
	case "", "reg:squarederror", "reg:linear", "reg:pseudohubererror",
		"reg:absoluteerror", "reg:squaredlogerror", "reg:quantileerror",
		"binary:logitraw":
		return identity, nil
	case "reg:logistic", "binary:logistic":
		return sigmoid, nil
	case "count:poisson", "reg:gamma", "reg:tweedie":
		return math.Exp, nil
	default:
		return nil, fmt.Errorf("%w: unsupported objective %q", domain.ErrInvalidModelArtifact, objective)
	}
}

func identity(x float64) float64 { return x }

func sigmoid(x float64) float64 { return 1 / (1 + math.Exp(-x)) }
