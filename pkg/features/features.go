// Package features derives the classifier-facing columns from the raw
// loan-application table: the education indicator, the aggregate asset value
// and the binary approval label.
package features

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/loanworks/modelprep/internal/logging"
	"github.com/loanworks/modelprep/pkg/dataset"
)

// Derived column names appended to the frame.
const (
	ColEducationNum = "education_num"
	ColAssetsTotal  = "assets_total"
	ColLabel        = "loan_status_num"
)

// GraduateSynonyms are the education spellings that classify as graduate.
// Membership is tested on trimmed, lower-cased text.
var GraduateSynonyms = map[string]bool{
	"graduate": true,
	"grad":     true,
	"g":        true,
}

// ApprovedSynonyms are the loan_status spellings that classify as approved.
var ApprovedSynonyms = map[string]bool{
	"approved": true,
	"yes":      true,
	"y":        true,
	"1":        true,
	"true":     true,
}

// assetColumns are summed into assets_total.
var assetColumns = []string{
	dataset.ColResidential,
	dataset.ColCommercial,
	dataset.ColLuxury,
	dataset.ColBankAsset,
}

// Distribution holds the derived label counts for diagnostic reporting.
type Distribution struct {
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

// SingleClass reports whether only one label value occurs in the dataset.
func (d Distribution) SingleClass() bool {
	return d.Approved == 0 || d.Rejected == 0
}

// IsGraduate classifies free-text education against the graduate synonym set.
func IsGraduate(education string) bool {
	return GraduateSynonyms[strings.ToLower(strings.TrimSpace(education))]
}

// IsApproved classifies free-text loan status against the approval synonym set.
func IsApproved(status string) bool {
	return ApprovedSynonyms[strings.ToLower(strings.TrimSpace(status))]
}

// Derive appends education_num, assets_total and loan_status_num to the
// frame, preserving row order and row count, and returns the label
// distribution. A single-class distribution is logged as a warning but is
// not an error; downstream evaluation handles it.
func Derive(frame *dataset.Frame, logger *logging.Logger) (Distribution, error) {
	var dist Distribution

	education, err := frame.Strings(dataset.ColEducation)
	if err != nil {
		return dist, fmt.Errorf("failed to derive education indicator: %w", err)
	}
	educationNum := make([]string, len(education))
	for i, value := range education {
		educationNum[i] = "0"
		if IsGraduate(value) {
			educationNum[i] = "1"
		}
	}
	if err := frame.AddColumn(ColEducationNum, educationNum); err != nil {
		return dist, err
	}

	totals := make([]string, len(frame.Rows))
	for i := range frame.Rows {
		sum := 0.0
		for _, col := range assetColumns {
			value, err := frame.Float(i, col)
			if err != nil {
				return dist, fmt.Errorf("failed to compute assets_total: %w", err)
			}
			sum += value
		}
		totals[i] = strconv.FormatFloat(sum, 'f', -1, 64)
	}
	if err := frame.AddColumn(ColAssetsTotal, totals); err != nil {
		return dist, err
	}

	status, err := frame.Strings(dataset.ColLoanStatus)
	if err != nil {
		return dist, fmt.Errorf("failed to derive label: %w", err)
	}
	labels := make([]string, len(status))
	for i, value := range status {
		if IsApproved(value) {
			labels[i] = "1"
			dist.Approved++
		} else {
			labels[i] = "0"
			dist.Rejected++
		}
	}
	if err := frame.AddColumn(ColLabel, labels); err != nil {
		return dist, err
	}

	logger.Info("derived label distribution",
		logging.Component("features"),
		logging.Int("approved", dist.Approved),
		logging.Int("rejected", dist.Rejected))
	if dist.SingleClass() {
		logger.Warn("only one label class present, check loan_status values",
			logging.Component("features"))
	}

	return dist, nil
}

// Labels returns the derived label column as integers.
func Labels(frame *dataset.Frame) ([]int, error) {
	raw, err := frame.Strings(ColLabel)
	if err != nil {
		return nil, err
	}
	labels := make([]int, len(raw))
	for i, value := range raw {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return nil, fmt.Errorf("invalid label at row %d: %q", i, value)
		}
		labels[i] = parsed
	}
	return labels, nil
}
