package alg

import (
	"math"

	"github.com/b21166/placefly/internal/model"
	"github.com/b21166/placefly/internal/utils"
	"gonum.org/v1/gonum/mat"
)

// Discretizer derives a discrete solution from a continuous position
// vector, one dimension per location-activation variable. It must be
// a pure function: the same position always yields the same solution.
type Discretizer interface {
	Discretize(position *mat.VecDense) *model.Solution
}

// SigmoidDiscretizer squashes each activation dimension through a
// sigmoid and compares it to a threshold, then assigns every device
// to its lowest-latency covering active location. Ties break towards
// the lowest location index.
type SigmoidDiscretizer struct {
	problem   *model.Problem
	threshold float64
}

func NewSigmoidDiscretizer(problem *model.Problem, threshold float64) *SigmoidDiscretizer {
	return &SigmoidDiscretizer{
		problem:   problem,
		threshold: threshold,
	}
}

func (d *SigmoidDiscretizer) Discretize(position *mat.VecDense) *model.Solution {
	sol := model.NewSolution(len(d.problem.Locations), len(d.problem.Devices))

	for p := range d.problem.Locations {
		sol.Active[p] = utils.Sigmoid(position.AtVec(p)) >= d.threshold
	}

	for e := range d.problem.Devices {
		best := model.Unassigned
		bestLatency := math.Inf(1)
		for p := range d.problem.Locations {
			if !sol.Active[p] || !d.problem.Covers(e, p) {
				continue
			}
			if latency := d.problem.Latency.At(e, p); latency < bestLatency {
				best = p
				bestLatency = latency
			}
		}
		sol.Assign[e] = best
	}

	return sol
}
