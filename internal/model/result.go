package model

import "fmt"

// Fitness is the objective vector of one solution.
// Lower is better on all three axes.
type Fitness struct {
	Latency float64 `json:"latency"`
	Cost    float64 `json:"cost"`
	Penalty float64 `json:"penalty"`
}

// Weights scalarizes a fitness vector into the brightness used for
// firefly comparisons. PenaltyCoefficient must be large enough that
// any infeasible solution scores worse than any feasible one.
type Weights struct {
	Cost               float64
	Latency            float64
	PenaltyCoefficient float64
}

func (f Fitness) Feasible() bool {
	return f.Penalty == 0
}

func (f Fitness) Scalar(w Weights) float64 {
	return w.Cost*f.Cost + w.Latency*f.Latency + w.PenaltyCoefficient*f.Penalty
}

// Dominates implements the archive's dominance rule over cost and
// latency with feasibility preference: a lower penalty always wins,
// equal penalties fall back to Pareto dominance.
func (f Fitness) Dominates(o Fitness) bool {
	if f.Penalty < o.Penalty {
		return true
	}
	if f.Penalty > o.Penalty {
		return false
	}

	return f.Cost <= o.Cost && f.Latency <= o.Latency &&
		(f.Cost < o.Cost || f.Latency < o.Latency)
}

func (f Fitness) Display() string {
	return fmt.Sprintf("cost=%.2f latency=%.2f penalty=%.2f", f.Cost, f.Latency, f.Penalty)
}

// ArchiveEntry is a snapshot of one non-dominated solution.
type ArchiveEntry struct {
	Solution *Solution
	Fitness  Fitness
}

// Result is what one optimizer run hands back to its caller.
type Result struct {
	Best        *Solution
	BestFitness Fitness
	BestScalar  float64

	// Front is the Pareto archive snapshot, ordered by cost.
	Front []ArchiveEntry

	// History holds the best scalar fitness after each iteration,
	// non-increasing by construction.
	History []float64
}
