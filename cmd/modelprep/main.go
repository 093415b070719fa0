package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/loanworks/modelprep/internal/logging"
	"github.com/loanworks/modelprep/pkg/config"
	"github.com/loanworks/modelprep/pkg/pipeline"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	dataPath := flag.String("data", "", "path to the loan application CSV (overrides config)")
	outPath := flag.String("out", "", "path for the exported JSON artifact (overrides config)")
	flag.Parse()

	logger := logging.New()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("failed to load configuration", err)
	}
	if *dataPath != "" {
		cfg.DatasetPath = *dataPath
	}
	if *outPath != "" {
		cfg.ArtifactPath = *outPath
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", err)
	}

	logger.SetLevel(logging.ParseLevel(cfg.LogLevel))
	logger.SetFormat(cfg.LogFormat)

	summary, err := pipeline.Run(cfg, logger)
	if err != nil {
		logger.Error("preprocessing run failed", err)
		os.Exit(1)
	}

	fmt.Printf("Records: %d (approved: %d, rejected: %d)\n",
		summary.Records, summary.Approved, summary.Rejected)
	fmt.Printf("KNN accuracy: %.2f%%\n", summary.Accuracy)
	fmt.Printf("Artifact: %s (run %s)\n", summary.ArtifactPath, summary.RunID)
}
