package config

import "fmt"

type FireflyConfig struct {
	Beta0      float64 `yaml:"beta0"`
	Gamma      float64 `yaml:"gamma"`
	Alpha0     float64 `yaml:"alpha0"`
	AlphaDecay float64 `yaml:"alpha_decay"`
}

type PSOConfig struct {
	W  float64 `yaml:"w"`
	C1 float64 `yaml:"c1"`
	C2 float64 `yaml:"c2"`
}

type OptimizerConfig struct {
	PopulationSize int `yaml:"population_size"`
	MaxIterations  int `yaml:"max_iterations"`

	Firefly FireflyConfig `yaml:"firefly"`
	PSO     PSOConfig     `yaml:"pso"`

	Threshold       float64 `yaml:"threshold"`
	PositionMin     float64 `yaml:"position_min"`
	PositionMax     float64 `yaml:"position_max"`
	InitActiveShare float64 `yaml:"init_active_share"`

	CostWeight         float64 `yaml:"cost_weight"`
	LatencyWeight      float64 `yaml:"latency_weight"`
	PenaltyCoefficient float64 `yaml:"penalty_coefficient"`

	ArchiveMaxSize int   `yaml:"archive_max_size"` // 0 means unbounded
	Seed           int64 `yaml:"seed"`

	Evaluator   string `yaml:"evaluator"`
	Discretizer string `yaml:"discretizer"`
	Repairer    string `yaml:"repairer"`
}

type SyntheticConfig struct {
	Locations   int     `yaml:"locations"`
	Devices     int     `yaml:"devices"`
	FieldSize   float64 `yaml:"field_size"`
	CoverRadius float64 `yaml:"cover_radius"`
	CostMin     float64 `yaml:"cost_min"`
	CostMax     float64 `yaml:"cost_max"`
	CapacityMin int     `yaml:"capacity_min"`
	CapacityMax int     `yaml:"capacity_max"`
	DemandMin   float64 `yaml:"demand_min"`
	DemandMax   float64 `yaml:"demand_max"`
	Seed        int64   `yaml:"seed"`
}

type ExperimentConfig struct {
	Runs      int    `yaml:"runs"`
	ReportDir string `yaml:"report_dir"`
	Charts    bool   `yaml:"charts"`
}

type GeneralConfig struct {
	Name         string `yaml:"name"`
	Mode         string `yaml:"mode"`   // "solve" or "experiment"
	SourceKind   string `yaml:"source"` // "synthetic" or "file"
	InstanceFile string `yaml:"instance_file"`
	GuiEnabled   bool   `yaml:"gui"`
	GuiPort      int    `yaml:"gui_port"`

	Optimizer  OptimizerConfig  `yaml:"optimizer"`
	Synthetic  SyntheticConfig  `yaml:"synthetic"`
	Experiment ExperimentConfig `yaml:"experiment"`
}

var PlacementGeneralConfig GeneralConfig

func Default() GeneralConfig {
	return GeneralConfig{
		Name:       "placefly",
		Mode:       "solve",
		SourceKind: "synthetic",
		GuiPort:    8080,
		Optimizer: OptimizerConfig{
			PopulationSize: 40,
			MaxIterations:  300,
			Firefly: FireflyConfig{
				Beta0:      0.8,
				Gamma:      1.0,
				Alpha0:     0.5,
				AlphaDecay: 0.98,
			},
			PSO: PSOConfig{
				W:  0.7,
				C1: 1.2,
				C2: 1.2,
			},
			Threshold:          0.5,
			PositionMin:        -4,
			PositionMax:        4,
			InitActiveShare:    0.25,
			CostWeight:         0.4,
			LatencyWeight:      0.6,
			PenaltyCoefficient: 1e6,
			Seed:               42,
			Evaluator:          "weighted",
			Discretizer:        "sigmoid",
			Repairer:           "greedy",
		},
		Synthetic: SyntheticConfig{
			Locations:   20,
			Devices:     200,
			FieldSize:   100,
			CoverRadius: 30,
			CostMin:     1000,
			CostMax:     2500,
			CapacityMin: 10,
			CapacityMax: 40,
			DemandMin:   1,
			DemandMax:   4,
			Seed:        123,
		},
		Experiment: ExperimentConfig{
			Runs:      10,
			ReportDir: "./reports",
			Charts:    true,
		},
	}
}

func (c *OptimizerConfig) Validate() error {
	if c.PopulationSize <= 0 {
		return fmt.Errorf("population size must be positive, got %d", c.PopulationSize)
	}
	if c.MaxIterations <= 0 {
		return fmt.Errorf("max iterations must be positive, got %d", c.MaxIterations)
	}
	if c.Threshold <= 0 || c.Threshold >= 1 {
		return fmt.Errorf("threshold must be in (0, 1), got %f", c.Threshold)
	}
	if c.PositionMin >= c.PositionMax {
		return fmt.Errorf("position bounds are empty: [%f, %f]", c.PositionMin, c.PositionMax)
	}
	if c.InitActiveShare < 0 || c.InitActiveShare > 1 {
		return fmt.Errorf("initial active share must be in [0, 1], got %f", c.InitActiveShare)
	}
	if c.CostWeight < 0 || c.LatencyWeight < 0 || c.CostWeight+c.LatencyWeight == 0 {
		return fmt.Errorf("objective weights must be non-negative and not both zero")
	}
	if c.PenaltyCoefficient <= 0 {
		return fmt.Errorf("penalty coefficient must be positive, got %f", c.PenaltyCoefficient)
	}
	if c.Firefly.AlphaDecay <= 0 || c.Firefly.AlphaDecay > 1 {
		return fmt.Errorf("alpha decay must be in (0, 1], got %f", c.Firefly.AlphaDecay)
	}
	if c.ArchiveMaxSize < 0 {
		return fmt.Errorf("archive max size must be non-negative, got %d", c.ArchiveMaxSize)
	}

	return nil
}

func (c *GeneralConfig) Validate() error {
	switch c.Mode {
	case "solve", "experiment":
	default:
		return fmt.Errorf("mode %q is not recognized", c.Mode)
	}

	switch c.SourceKind {
	case "synthetic":
	case "file":
		if c.InstanceFile == "" {
			return fmt.Errorf("file source needs an instance_file path")
		}
	default:
		return fmt.Errorf("source kind %q is not recognized", c.SourceKind)
	}

	if c.Mode == "experiment" && c.Experiment.Runs <= 0 {
		return fmt.Errorf("experiment needs a positive number of runs, got %d", c.Experiment.Runs)
	}

	return c.Optimizer.Validate()
}
