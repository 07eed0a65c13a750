package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/b21166/placefly/alg"
	"github.com/b21166/placefly/experiment"
	"github.com/b21166/placefly/internal/config"
	"github.com/b21166/placefly/internal/gui"
	"github.com/b21166/placefly/internal/model"
	"github.com/b21166/placefly/internal/runner"
	"github.com/b21166/placefly/internal/source"
	"github.com/b21166/placefly/logging"
	"github.com/b21166/placefly/statistics"
	"gopkg.in/yaml.v2"
)

var log = logging.Get()

func main() {
	config_file_path := flag.String("config_file", "", "Path to config file")
	flag.Parse()

	config.PlacementGeneralConfig = config.Default()

	if *config_file_path != "" {
		yamlFile, err := os.ReadFile(*config_file_path)
		if err != nil {
			log.Err(err).Msgf("could not load config")
			os.Exit(1)
		}

		if err := yaml.UnmarshalStrict(yamlFile, &config.PlacementGeneralConfig); err != nil {
			log.Err(err).Msgf("could not load config")
			os.Exit(1)
		}
	}

	if err := config.PlacementGeneralConfig.Validate(); err != nil {
		log.Err(err).Msg("config is not valid")
		os.Exit(1)
	}

	var s source.Source

	switch config.PlacementGeneralConfig.SourceKind {
	case "synthetic":
		s = source.NewSyntheticSource(config.PlacementGeneralConfig.Synthetic)
	case "file":
		s = source.NewFileSource(config.PlacementGeneralConfig.InstanceFile)
	default:
		log.Error().Msg("source kind is not recognized")
		os.Exit(1)
	}

	problem, err := s.FetchProblem()
	if err != nil {
		log.Err(err).Msg("could not fetch the problem instance")
		os.Exit(1)
	}

	fmt.Print(problem.Display())

	runContext := context.Background()

	if config.PlacementGeneralConfig.Mode == "experiment" {
		report, err := experiment.Run(runContext, problem, config.PlacementGeneralConfig)
		if err != nil {
			log.Err(err).Msg("experiment failed")
			os.Exit(1)
		}

		if err := experiment.Write(report, config.PlacementGeneralConfig.Experiment); err != nil {
			log.Err(err).Msg("could not write the experiment report")
			os.Exit(1)
		}

		fmt.Print(statistics.Display())

		return
	}

	optimizer, err := alg.New(problem, config.PlacementGeneralConfig.Optimizer)
	if err != nil {
		log.Err(err).Msg("could not initiate optimizer")
		os.Exit(1)
	}

	bridge, outcomeStream := runner.New(optimizer).Run(runContext)

	if config.PlacementGeneralConfig.GuiEnabled {
		gui.SetUp(bridge)
		go finish(problem, <-outcomeStream)
		gui.Run()

		return
	}

	finish(problem, <-outcomeStream)
}

func finish(problem *model.Problem, outcome runner.Outcome) {
	if outcome.Err != nil {
		log.Err(outcome.Err).Msg("run did not finish cleanly")
	}

	result := outcome.Result
	if result == nil || result.Best == nil {
		log.Error().Msg("no solution found")
		os.Exit(1)
	}

	fmt.Printf("best %s (scalar %.4e)\n", result.BestFitness.Display(), result.BestScalar)
	fmt.Printf("active cloudlets: %d of %d candidates\n", result.Best.ActiveCount(), len(problem.Locations))

	usage := result.Best.Usage()
	for p, location := range problem.Locations {
		if !result.Best.Active[p] {
			continue
		}
		fmt.Printf(
			"cloudlet at location %d: %d/%d devices, cost %.2f\n",
			location.Id, usage[p], location.Capacity, location.Cost,
		)
	}

	shown := len(result.Best.Assign)
	if shown > 20 {
		shown = 20
	}
	for e := 0; e < shown; e++ {
		p := result.Best.Assign[e]
		if p == model.Unassigned {
			fmt.Printf("device %d: unassigned\n", e)
			continue
		}
		fmt.Printf("device %d -> location %d (latency %.2f)\n", e, p, problem.Latency.At(e, p))
	}
	if shown < len(result.Best.Assign) {
		fmt.Printf("... and %d more devices\n", len(result.Best.Assign)-shown)
	}

	fmt.Printf("pareto front holds %d solutions:\n", len(result.Front))
	for _, entry := range result.Front {
		fmt.Printf("  %s\n", entry.Fitness.Display())
	}

	fmt.Print(statistics.Display())
}
