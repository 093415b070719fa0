// Package model measures the quality of the exported training set by
// fitting a reference k-nearest-neighbor classifier on a held-out split.
package model

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strconv"

	"github.com/sjwhitworth/golearn/base"
	"github.com/sjwhitworth/golearn/evaluation"
	"github.com/sjwhitworth/golearn/knn"

	"github.com/loanworks/modelprep/pkg/scale"
)

// ErrEmptyPartition indicates the train/test split produced an empty side,
// which means the input data is too small or degenerate to evaluate.
var ErrEmptyPartition = errors.New("train/test split produced an empty partition")

// EvaluatorConfig holds the reference-classifier settings.
type EvaluatorConfig struct {
	Neighbors    int     `json:"neighbors" yaml:"neighbors"`
	TestFraction float64 `json:"test_fraction" yaml:"test_fraction"`
	Seed         int64   `json:"seed" yaml:"seed"`
}

// DefaultEvaluatorConfig is k=5 with 30% held out and a fixed seed, so
// identical input yields identical accuracy.
func DefaultEvaluatorConfig() EvaluatorConfig {
	return EvaluatorConfig{
		Neighbors:    5,
		TestFraction: 0.3,
		Seed:         42,
	}
}

// Evaluator fits a KNN classifier over Euclidean distance and reports
// held-out accuracy as a percentage.
type Evaluator struct {
	config EvaluatorConfig
}

// NewEvaluator creates an evaluator, falling back to defaults for unset
// config fields.
func NewEvaluator(config EvaluatorConfig) *Evaluator {
	defaults := DefaultEvaluatorConfig()
	if config.Neighbors <= 0 {
		config.Neighbors = defaults.Neighbors
	}
	if config.TestFraction <= 0 || config.TestFraction >= 1 {
		config.TestFraction = defaults.TestFraction
	}
	return &Evaluator{config: config}
}

// Accuracy evaluates the scaled feature matrix against its labels. With at
// least two label classes it splits, fits and scores; with a single class
// evaluation is skipped and the defined fallback of exactly 100.0 is
// returned. The result is rounded to two decimal places.
func (e *Evaluator) Accuracy(X [][]float64, y []int) (float64, error) {
	if len(X) == 0 || len(X) != len(y) {
		return 0, fmt.Errorf("feature matrix has %d rows for %d labels", len(X), len(y))
	}

	if distinctLabels(y) < 2 {
		return 100.0, nil
	}

	trainX, trainY, testX, testY := trainTestSplit(X, y, e.config.TestFraction, e.config.Seed)
	if len(trainX) == 0 || len(testX) == 0 {
		return 0, fmt.Errorf("%w: %d train rows, %d test rows", ErrEmptyPartition, len(trainX), len(testX))
	}

	trainData, err := newInstances(trainX, trainY)
	if err != nil {
		return 0, fmt.Errorf("failed to build training instances: %w", err)
	}
	testData, err := newInstances(testX, testY)
	if err != nil {
		return 0, fmt.Errorf("failed to build test instances: %w", err)
	}

	// k cannot exceed the training partition on small datasets.
	k := e.config.Neighbors
	if k > len(trainX) {
		k = len(trainX)
	}

	classifier := knn.NewKnnClassifier("euclidean", "linear", k)
	if err := classifier.Fit(trainData); err != nil {
		return 0, fmt.Errorf("failed to fit KNN classifier: %w", err)
	}

	predictions, err := classifier.Predict(testData)
	if err != nil {
		return 0, fmt.Errorf("failed to predict held-out partition: %w", err)
	}

	confusion, err := evaluation.GetConfusionMatrix(testData, predictions)
	if err != nil {
		return 0, fmt.Errorf("failed to compute confusion matrix: %w", err)
	}

	return round2(evaluation.GetAccuracy(confusion) * 100), nil
}

// trainTestSplit shuffles row indices with a seeded source and cuts off the
// test fraction, so the partition is reproducible for identical input. The
// test size rounds up, so small datasets still get a held-out row.
func trainTestSplit(X [][]float64, y []int, testFraction float64, seed int64) (trainX [][]float64, trainY []int, testX [][]float64, testY []int) {
	rng := rand.New(rand.NewSource(seed))
	indices := rng.Perm(len(X))

	testSize := int(math.Ceil(float64(len(X)) * testFraction))
	for i, idx := range indices {
		if i < testSize {
			testX = append(testX, X[idx])
			testY = append(testY, y[idx])
		} else {
			trainX = append(trainX, X[idx])
			trainY = append(trainY, y[idx])
		}
	}
	return trainX, trainY, testX, testY
}

// newInstances packs a float matrix and integer labels into golearn dense
// instances. Both label values are registered up front so train and test
// grids share one categorical mapping.
func newInstances(X [][]float64, y []int) (*base.DenseInstances, error) {
	instances := base.NewDenseInstances()

	specs := make([]base.AttributeSpec, 0, len(scale.FeatureColumns)+1)
	for _, name := range scale.FeatureColumns {
		specs = append(specs, instances.AddAttribute(base.NewFloatAttribute(name)))
	}

	classAttr := base.NewCategoricalAttribute()
	classAttr.SetName("loan_status_num")
	classAttr.GetSysValFromString("0")
	classAttr.GetSysValFromString("1")
	classSpec := instances.AddAttribute(classAttr)
	if err := instances.AddClassAttribute(classAttr); err != nil {
		return nil, err
	}

	if err := instances.Extend(len(X)); err != nil {
		return nil, err
	}

	for i, row := range X {
		for j, value := range row {
			instances.Set(specs[j], i, base.PackFloatToBytes(value))
		}
		instances.Set(classSpec, i, classAttr.GetSysValFromString(strconv.Itoa(y[i])))
	}

	return instances, nil
}

func distinctLabels(y []int) int {
	seen := make(map[int]bool, 2)
	for _, label := range y {
		seen[label] = true
	}
	return len(seen)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
