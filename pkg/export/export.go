// Package export assembles the pipeline's JSON artifact and writes it
// atomically, so a failed run never clobbers a previous artifact.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/loanworks/modelprep/pkg/ranges"
	"github.com/loanworks/modelprep/pkg/scale"
)

// Artifact is the single JSON document this system exports. Every key,
// nesting level and scaling convention here is the contract with the
// consumer application and must not drift.
type Artifact struct {
	TrainingDataInitial [][]float64                  `json:"training_data_initial"`
	InputRanges         map[string]ranges.InputRange `json:"input_ranges"`
	NormalizationRanges map[string]scale.Bounds      `json:"normalization_ranges"`
	InitialAccuracy     float64                      `json:"initial_accuracy"`
}

// Assemble builds the artifact. Each training row is the scaled feature
// vector with the integer label appended, in source order; no shuffling
// from the evaluator's split leaks into the export.
func Assemble(scaled [][]float64, labels []int, inputRanges map[string]ranges.InputRange, normRanges map[string]scale.Bounds, accuracy float64) (*Artifact, error) {
	if len(scaled) != len(labels) {
		return nil, fmt.Errorf("scaled matrix has %d rows for %d labels", len(scaled), len(labels))
	}

	training := make([][]float64, len(scaled))
	for i, row := range scaled {
		combined := make([]float64, len(row)+1)
		copy(combined, row)
		combined[len(row)] = float64(labels[i])
		training[i] = combined
	}

	return &Artifact{
		TrainingDataInitial: training,
		InputRanges:         inputRanges,
		NormalizationRanges: normRanges,
		InitialAccuracy:     accuracy,
	}, nil
}

// Write serializes the artifact pretty-printed to path. The payload goes to
// a temporary file in the destination directory first and is renamed into
// place, so the previous artifact survives any write failure.
func Write(path string, artifact *Artifact) error {
	payload, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal artifact: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create artifact directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary artifact: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temporary artifact: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to move artifact into place: %w", err)
	}
	return nil
}
