// Repeated optimization runs over one instance,
// with per-run seeds, a JSON report and optional charts.
package experiment

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/b21166/placefly/alg"
	"github.com/b21166/placefly/internal/config"
	"github.com/b21166/placefly/internal/model"
	"github.com/b21166/placefly/internal/utils"
	"github.com/b21166/placefly/logging"
	"github.com/google/uuid"
)

var log = logging.Get()

type RunReport struct {
	Id          string          `json:"id"`
	Seed        int64           `json:"seed"`
	BestScalar  float64         `json:"best_scalar"`
	BestFitness model.Fitness   `json:"best_fitness"`
	ArchiveSize int             `json:"archive_size"`
	Front       []model.Fitness `json:"front"`
	History     []float64       `json:"history"`
}

type Report struct {
	Name string      `json:"name"`
	Runs []RunReport `json:"runs"`
}

// Run executes the configured number of independent optimizer runs on
// the same problem. Each run gets its own seed, derived from the base
// seed when one is set and from the run id otherwise.
func Run(ctx context.Context, problem *model.Problem, cfg config.GeneralConfig) (*Report, error) {
	report := &Report{
		Name: cfg.Name,
		Runs: make([]RunReport, 0, cfg.Experiment.Runs),
	}

	for i := 0; i < cfg.Experiment.Runs; i++ {
		id := uuid.NewString()

		optimizerConfig := cfg.Optimizer
		if optimizerConfig.Seed == 0 {
			optimizerConfig.Seed = int64(utils.Hash(id))
		} else {
			optimizerConfig.Seed += int64(i)
		}

		optimizer, err := alg.New(problem, optimizerConfig)
		if err != nil {
			return nil, err
		}

		result, err := optimizer.Run(ctx)
		if err != nil {
			return report, fmt.Errorf("run %d (%s) stopped: %w", i, id, err)
		}

		front := make([]model.Fitness, len(result.Front))
		for f, entry := range result.Front {
			front[f] = entry.Fitness
		}

		report.Runs = append(report.Runs, RunReport{
			Id:          id,
			Seed:        optimizerConfig.Seed,
			BestScalar:  result.BestScalar,
			BestFitness: result.BestFitness,
			ArchiveSize: len(result.Front),
			Front:       front,
			History:     result.History,
		})

		log.Info().Msgf(
			"run %d/%d (%s, seed %d): best %s",
			i+1, cfg.Experiment.Runs, id, optimizerConfig.Seed, result.BestFitness.Display(),
		)
	}

	return report, nil
}

// Write stores the report as JSON in the report directory, plus the
// convergence and front charts when enabled.
func Write(report *Report, cfg config.ExperimentConfig) error {
	if err := os.MkdirAll(cfg.ReportDir, 0o755); err != nil {
		return fmt.Errorf("could not create report directory %s: %w", cfg.ReportDir, err)
	}

	content, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}

	path := filepath.Join(cfg.ReportDir, fmt.Sprintf("%s.json", report.Name))
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("could not write report %s: %w", path, err)
	}
	log.Info().Msgf("wrote report to %s", path)

	if !cfg.Charts {
		return nil
	}

	convergencePath := filepath.Join(cfg.ReportDir, fmt.Sprintf("%s_convergence.html", report.Name))
	if err := plotConvergence(report, convergencePath); err != nil {
		return err
	}

	frontPath := filepath.Join(cfg.ReportDir, fmt.Sprintf("%s_front.html", report.Name))
	return plotFronts(report, frontPath)
}
