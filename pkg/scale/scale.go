// Package scale projects the fixed six-feature vector out of the derived
// frame and rescales it into the unit interval, recording the bounds the
// consumer needs to normalize its own query points identically.
package scale

import (
	"fmt"

	"github.com/loanworks/modelprep/pkg/dataset"
	"github.com/loanworks/modelprep/pkg/features"
)

// FeatureColumns is the feature-vector projection, in contract order. The
// consumer application indexes scaled rows positionally; do not reorder.
var FeatureColumns = []string{
	dataset.ColDependents,
	features.ColEducationNum,
	dataset.ColIncome,
	dataset.ColLoanAmount,
	dataset.ColCibilScore,
	features.ColAssetsTotal,
}

// SemanticKeys maps internal column names to the frontend-facing keys used
// in normalization_ranges. Hand-maintained contract with the consumer; keep
// in sync with its inference code, never derive it positionally.
var SemanticKeys = map[string]string{
	dataset.ColDependents:    "dependents",
	features.ColEducationNum: "education",
	dataset.ColIncome:        "income",
	dataset.ColLoanAmount:    "loan_amount",
	dataset.ColCibilScore:    "cibil",
	features.ColAssetsTotal:  "assets_total",
}

// currencyColumns are divided by Lakh before normalization. Dependent count,
// education indicator and credit score stay in native units.
var currencyColumns = map[string]bool{
	dataset.ColIncome:       true,
	dataset.ColLoanAmount:   true,
	features.ColAssetsTotal: true,
}

// Lakh is the hundred-thousand-unit base the currency features are
// expressed in before normalization.
const Lakh = 100000.0

// Bounds holds the pre-scaling min and max of one feature.
type Bounds struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Project extracts the six-column feature matrix from the frame, applying
// the per-column currency rescale. Rows keep source order.
func Project(frame *dataset.Frame) ([][]float64, error) {
	matrix := make([][]float64, len(frame.Rows))
	for i := range frame.Rows {
		row := make([]float64, len(FeatureColumns))
		for j, name := range FeatureColumns {
			value, err := frame.Float(i, name)
			if err != nil {
				return nil, fmt.Errorf("failed to project feature matrix: %w", err)
			}
			if currencyColumns[name] {
				value /= Lakh
			}
			row[j] = value
		}
		matrix[i] = row
	}
	return matrix, nil
}

// MinMax linearly maps each column of X to [0,1] and returns the per-column
// bounds used. A constant column scales to all zeros rather than dividing
// by zero; the consumer relies on that convention.
func MinMax(X [][]float64) ([][]float64, []Bounds) {
	if len(X) == 0 {
		return nil, nil
	}

	cols := len(X[0])
	bounds := make([]Bounds, cols)
	for j := 0; j < cols; j++ {
		min, max := X[0][j], X[0][j]
		for i := 1; i < len(X); i++ {
			if X[i][j] < min {
				min = X[i][j]
			}
			if X[i][j] > max {
				max = X[i][j]
			}
		}
		bounds[j] = Bounds{Min: min, Max: max}
	}

	out := make([][]float64, len(X))
	for i := range X {
		out[i] = make([]float64, cols)
		for j := 0; j < cols; j++ {
			if bounds[j].Max != bounds[j].Min {
				out[i][j] = (X[i][j] - bounds[j].Min) / (bounds[j].Max - bounds[j].Min)
			}
		}
	}
	return out, bounds
}

// Normalize projects and min-max scales the frame's feature matrix. The
// returned bounds are keyed by the semantic frontend names.
func Normalize(frame *dataset.Frame) ([][]float64, map[string]Bounds, error) {
	matrix, err := Project(frame)
	if err != nil {
		return nil, nil, err
	}

	scaled, bounds := MinMax(matrix)

	named := make(map[string]Bounds, len(FeatureColumns))
	for j, name := range FeatureColumns {
		named[SemanticKeys[name]] = bounds[j]
	}
	return scaled, named, nil
}
