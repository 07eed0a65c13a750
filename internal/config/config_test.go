package config

import "testing"

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got: %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	scenarios := []struct {
		name    string
		corrupt func(cfg *GeneralConfig)
	}{
		{"UnknownMode", func(cfg *GeneralConfig) { cfg.Mode = "train" }},
		{"UnknownSource", func(cfg *GeneralConfig) { cfg.SourceKind = "oracle" }},
		{"FileSourceWithoutPath", func(cfg *GeneralConfig) { cfg.SourceKind = "file" }},
		{"ZeroPopulation", func(cfg *GeneralConfig) { cfg.Optimizer.PopulationSize = 0 }},
		{"ZeroIterations", func(cfg *GeneralConfig) { cfg.Optimizer.MaxIterations = 0 }},
		{"ThresholdAtOne", func(cfg *GeneralConfig) { cfg.Optimizer.Threshold = 1 }},
		{"EmptyBounds", func(cfg *GeneralConfig) { cfg.Optimizer.PositionMin = 4 }},
		{"NegativeWeight", func(cfg *GeneralConfig) { cfg.Optimizer.CostWeight = -1 }},
		{"ZeroWeights", func(cfg *GeneralConfig) {
			cfg.Optimizer.CostWeight = 0
			cfg.Optimizer.LatencyWeight = 0
		}},
		{"ZeroPenaltyCoefficient", func(cfg *GeneralConfig) { cfg.Optimizer.PenaltyCoefficient = 0 }},
		{"AlphaDecayAboveOne", func(cfg *GeneralConfig) { cfg.Optimizer.Firefly.AlphaDecay = 1.5 }},
		{"NegativeArchiveSize", func(cfg *GeneralConfig) { cfg.Optimizer.ArchiveMaxSize = -1 }},
		{"ExperimentWithoutRuns", func(cfg *GeneralConfig) {
			cfg.Mode = "experiment"
			cfg.Experiment.Runs = 0
		}},
	}

	for _, scenario := range scenarios {
		t.Run(scenario.name, func(t *testing.T) {
			cfg := Default()
			scenario.corrupt(&cfg)

			if err := cfg.Validate(); err == nil {
				t.Error("expected a validation error")
			}
		})
	}
}
