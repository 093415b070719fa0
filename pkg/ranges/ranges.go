// Package ranges computes per-column {min,max,step} metadata for the
// consumer UI's input validation. It is read-only with respect to the
// modeling pipeline.
package ranges

import (
	"github.com/loanworks/modelprep/pkg/dataset"
	"github.com/loanworks/modelprep/pkg/features"
)

// InputRange bounds one numeric input column. Step is UI granularity only
// and carries no computational meaning.
type InputRange struct {
	Min  int `json:"min"`
	Max  int `json:"max"`
	Step int `json:"step"`
}

// unitStepColumns get step 1; every other numeric column is currency and
// gets a coarse 100000 step.
var unitStepColumns = map[string]bool{
	dataset.ColDependents: true,
	dataset.ColLoanTerm:   true,
	dataset.ColCibilScore: true,
}

const currencyStep = 100000

// excluded columns never appear in the range metadata: the row identifier
// and the derived label.
var excluded = map[string]bool{
	dataset.ColLoanID: true,
	features.ColLabel: true,
}

// Extract walks every numeric column of the frame, raw and derived alike,
// and returns its input range. Non-numeric columns are skipped.
func Extract(frame *dataset.Frame) (map[string]InputRange, error) {
	result := make(map[string]InputRange)

	for _, name := range frame.Columns {
		if excluded[name] || !frame.IsNumeric(name) {
			continue
		}

		values, err := frame.Floats(name)
		if err != nil {
			return nil, err
		}

		min, max := values[0], values[0]
		for _, v := range values[1:] {
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}

		step := currencyStep
		if unitStepColumns[name] {
			step = 1
		}

		result[name] = InputRange{Min: int(min), Max: int(max), Step: step}
	}

	return result, nil
}
