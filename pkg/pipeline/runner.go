// Package pipeline wires the preprocessing stages together: load, derive,
// extract ranges, normalize, evaluate, export. It is a pure function of the
// configuration; a run either writes one artifact or writes nothing.
package pipeline

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/loanworks/modelprep/internal/logging"
	"github.com/loanworks/modelprep/pkg/config"
	"github.com/loanworks/modelprep/pkg/dataset"
	"github.com/loanworks/modelprep/pkg/export"
	"github.com/loanworks/modelprep/pkg/features"
	"github.com/loanworks/modelprep/pkg/model"
	"github.com/loanworks/modelprep/pkg/ranges"
	"github.com/loanworks/modelprep/pkg/scale"
)

// Summary reports the outcome of one pipeline run.
type Summary struct {
	RunID        string  `json:"run_id"`
	Records      int     `json:"records"`
	Approved     int     `json:"approved"`
	Rejected     int     `json:"rejected"`
	Accuracy     float64 `json:"accuracy"`
	ArtifactPath string  `json:"artifact_path"`
}

// Run executes the whole pipeline. Stages run strictly forward; no stage
// reads back from a later one. On any error the artifact path is left
// untouched.
func Run(cfg *config.Config, logger *logging.Logger) (*Summary, error) {
	runID := uuid.New().String()
	logger.Info("starting preprocessing run",
		logging.RunID(runID),
		logging.String("dataset", cfg.DatasetPath))

	frame, err := dataset.Load(cfg.DatasetPath)
	if err != nil {
		return nil, err
	}
	logger.Info("dataset loaded",
		logging.RunID(runID),
		logging.Component("dataset"),
		logging.Int("rows", len(frame.Rows)),
		logging.Int("columns", len(frame.Columns)))

	dist, err := features.Derive(frame, logger)
	if err != nil {
		return nil, err
	}

	inputRanges, err := ranges.Extract(frame)
	if err != nil {
		return nil, fmt.Errorf("failed to extract input ranges: %w", err)
	}

	scaled, normRanges, err := scale.Normalize(frame)
	if err != nil {
		return nil, err
	}

	labels, err := features.Labels(frame)
	if err != nil {
		return nil, err
	}

	evaluator := model.NewEvaluator(model.EvaluatorConfig{
		Neighbors:    cfg.Neighbors,
		TestFraction: cfg.TestFraction,
		Seed:         cfg.Seed,
	})
	accuracy, err := evaluator.Accuracy(scaled, labels)
	if err != nil {
		return nil, err
	}
	logger.Info("reference classifier evaluated",
		logging.RunID(runID),
		logging.Component("model"),
		logging.Float("accuracy", accuracy))

	artifact, err := export.Assemble(scaled, labels, inputRanges, normRanges, accuracy)
	if err != nil {
		return nil, err
	}
	if err := export.Write(cfg.ArtifactPath, artifact); err != nil {
		return nil, err
	}
	logger.Info("artifact written",
		logging.RunID(runID),
		logging.Component("export"),
		logging.String("path", cfg.ArtifactPath))

	return &Summary{
		RunID:        runID,
		Records:      len(frame.Rows),
		Approved:     dist.Approved,
		Rejected:     dist.Rejected,
		Accuracy:     accuracy,
		ArtifactPath: cfg.ArtifactPath,
	}, nil
}
