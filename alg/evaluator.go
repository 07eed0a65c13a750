package alg

import (
	"github.com/b21166/placefly/internal/model"
)

// Per-violation penalty units. The scalarization multiplies the
// accumulated penalty by the configured penalty coefficient, so the
// units only weigh coverage misses against capacity overflow.
const (
	COVER_VIOLATION_UNIT    float64 = 1
	CAPACITY_VIOLATION_UNIT float64 = 1
)

// Evaluator computes the objective vector of a solution against a
// fixed problem instance. Implementations must be pure.
type Evaluator interface {
	Evaluate(sol *model.Solution) model.Fitness
	Weights() model.Weights
}

// WeightedEvaluator is the default evaluator: demand-weighted total
// latency, summed activation cost, and a violation penalty combining
// coverage misses and capacity overflow.
type WeightedEvaluator struct {
	problem *model.Problem
	weights model.Weights
}

func NewWeightedEvaluator(problem *model.Problem, weights model.Weights) *WeightedEvaluator {
	return &WeightedEvaluator{
		problem: problem,
		weights: weights,
	}
}

func (ev *WeightedEvaluator) Weights() model.Weights {
	return ev.weights
}

func (ev *WeightedEvaluator) Evaluate(sol *model.Solution) model.Fitness {
	var fitness model.Fitness

	for p, active := range sol.Active {
		if active {
			fitness.Cost += ev.problem.Locations[p].Cost
		}
	}

	used := make([]int, len(sol.Active))
	for e, p := range sol.Assign {
		if p == model.Unassigned || !sol.Active[p] {
			fitness.Penalty += COVER_VIOLATION_UNIT
			continue
		}

		used[p] += 1
		fitness.Latency += ev.problem.Devices[e].Demand * ev.problem.Latency.At(e, p)
		if !ev.problem.Covers(e, p) {
			fitness.Penalty += COVER_VIOLATION_UNIT
		}
	}

	for p, count := range used {
		if capacity := ev.problem.Locations[p].Capacity; count > capacity {
			fitness.Penalty += float64(count-capacity) * CAPACITY_VIOLATION_UNIT
		}
	}

	return fitness
}
