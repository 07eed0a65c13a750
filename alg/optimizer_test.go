package alg

import (
	"context"
	"reflect"
	"testing"

	"github.com/b21166/placefly/internal/config"
	"github.com/b21166/placefly/internal/model/testing_tool"
)

func smallConfig() config.OptimizerConfig {
	cfg := config.Default().Optimizer
	cfg.PopulationSize = 5
	cfg.MaxIterations = 20
	cfg.Seed = 7

	return cfg
}

func TestHybridOptimizer(t *testing.T) {
	builder := testing_tool.New()
	problem := builder.GetLatencyProblem(
		10,
		[]float64{10, 15, 20},
		[]int{2, 2, 1},
		nil,
		[][]float64{
			{1, 5, 9},
			{2, 4, 8},
			{6, 1, 7},
			{7, 2, 3},
		},
	)

	t.Run("FindsAFeasiblePlacement", func(t *testing.T) {
		optimizer, err := New(problem, smallConfig())
		if err != nil {
			t.Fatalf("could not build optimizer: %v", err)
		}

		result, err := optimizer.Run(context.Background())
		if err != nil {
			t.Fatalf("run failed: %v", err)
		}

		// Total capacity covers every device, so repair always
		// reaches feasibility and the best must be penalty free.
		if !result.BestFitness.Feasible() {
			t.Errorf("expected a feasible best, got %s", result.BestFitness.Display())
		}
		testing_tool.ExpectConsistent(problem, result.Best)

		if len(result.Front) == 0 {
			t.Fatal("archive should hold at least one entry")
		}
		found := false
		for _, entry := range result.Front {
			if entry.Fitness == result.BestFitness {
				found = true
			}
		}
		if !found {
			t.Error("the best fitness should appear on the front")
		}
	})

	t.Run("HistoryIsNonIncreasing", func(t *testing.T) {
		optimizer, err := New(problem, smallConfig())
		if err != nil {
			t.Fatalf("could not build optimizer: %v", err)
		}

		result, err := optimizer.Run(context.Background())
		if err != nil {
			t.Fatalf("run failed: %v", err)
		}

		if len(result.History) != 20 {
			t.Fatalf("expected one history point per iteration, got %d", len(result.History))
		}
		for k := 1; k < len(result.History); k++ {
			if result.History[k] > result.History[k-1] {
				t.Fatalf(
					"best scalar worsened from %f to %f at iteration %d",
					result.History[k-1], result.History[k], k,
				)
			}
		}
	})

	t.Run("SameSeedSameRun", func(t *testing.T) {
		first, err := New(problem, smallConfig())
		if err != nil {
			t.Fatalf("could not build optimizer: %v", err)
		}
		second, err := New(problem, smallConfig())
		if err != nil {
			t.Fatalf("could not build optimizer: %v", err)
		}

		firstResult, err := first.Run(context.Background())
		if err != nil {
			t.Fatalf("run failed: %v", err)
		}
		secondResult, err := second.Run(context.Background())
		if err != nil {
			t.Fatalf("run failed: %v", err)
		}

		if firstResult.BestScalar != secondResult.BestScalar {
			t.Errorf(
				"same seed should reproduce the best scalar: %f vs %f",
				firstResult.BestScalar, secondResult.BestScalar,
			)
		}
		if !reflect.DeepEqual(firstResult.History, secondResult.History) {
			t.Error("same seed should reproduce the whole history")
		}
	})

	t.Run("UnsatisfiableInstanceStillCompletes", func(t *testing.T) {
		unsatisfiable := builder.GetLatencyProblem(
			5,
			[]float64{10, 15},
			[]int{4, 4},
			nil,
			[][]float64{
				{1, 2},
				{9, 9},
			},
		)

		optimizer, err := New(unsatisfiable, smallConfig())
		if err != nil {
			t.Fatalf("could not build optimizer: %v", err)
		}

		result, err := optimizer.Run(context.Background())
		if err != nil {
			t.Fatalf("run failed: %v", err)
		}

		if result.BestFitness.Feasible() {
			t.Error("an uncoverable device must keep the penalty positive")
		}
		for _, entry := range result.Front {
			if entry.Fitness.Feasible() {
				t.Error("no archived solution can be feasible on this instance")
			}
		}
	})

	t.Run("CancellationReturnsEarly", func(t *testing.T) {
		optimizer, err := New(problem, smallConfig())
		if err != nil {
			t.Fatalf("could not build optimizer: %v", err)
		}

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		result, err := optimizer.Run(ctx)
		if err != context.Canceled {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
		if result == nil {
			t.Fatal("a cancelled run should still hand back a partial result")
		}
	})

	t.Run("RejectsUnknownStrategies", func(t *testing.T) {
		cfg := smallConfig()
		cfg.Discretizer = "quantum"

		if _, err := New(problem, cfg); err == nil {
			t.Error("unknown discretizer should be rejected")
		}
	})

	t.Run("ProgressDuringAndAfterRun", func(t *testing.T) {
		optimizer, err := New(problem, smallConfig())
		if err != nil {
			t.Fatalf("could not build optimizer: %v", err)
		}

		before := optimizer.Progress()
		if before.Iteration != 0 {
			t.Errorf("expected iteration 0 before the run, got %d", before.Iteration)
		}

		result, err := optimizer.Run(context.Background())
		if err != nil {
			t.Fatalf("run failed: %v", err)
		}

		after := optimizer.Progress()
		if after.Iteration != 20 {
			t.Errorf("expected iteration 20 after the run, got %d", after.Iteration)
		}
		if after.BestScalar != result.BestScalar {
			t.Errorf("progress best %f disagrees with result best %f", after.BestScalar, result.BestScalar)
		}
		if after.ArchiveSize != len(after.Front) {
			t.Errorf("archive size %d disagrees with front length %d", after.ArchiveSize, len(after.Front))
		}
	})
}
