package alg

import (
	"errors"
	"math"
	"math/rand"
	"sort"

	"github.com/b21166/placefly/internal/model"
	"github.com/emirpasic/gods/trees/binaryheap"
)

// ErrRepairBound is returned when repair hits its reassignment
// bound with violations left. The residual violations stay in the
// solution and surface through the penalty term.
var ErrRepairBound = errors.New("repair reached its reassignment bound")

// Repairer restores coverage and capacity feasibility in a discrete
// solution with minimal disruption to its decisions.
type Repairer interface {
	Repair(sol *model.Solution) (*model.Solution, error)
}

// GreedyRepairer alternates a coverage pass and a capacity pass
// until a fixed point or until the reassignment bound of
// |devices| x |locations| trips.
type GreedyRepairer struct {
	problem *model.Problem
	rng     *rand.Rand
}

func NewGreedyRepairer(problem *model.Problem, rng *rand.Rand) *GreedyRepairer {
	return &GreedyRepairer{
		problem: problem,
		rng:     rng,
	}
}

func (r *GreedyRepairer) Repair(sol *model.Solution) (*model.Solution, error) {
	out := sol.Clone()
	used := out.Usage()

	budget := len(r.problem.Devices) * len(r.problem.Locations)
	pending := r.uncovered(out)

	for {
		var unattempted []int
		unattempted, budget = r.cover(out, used, pending, budget)

		evicted := r.decongest(out, used)
		if len(evicted) == 0 && len(unattempted) == 0 {
			return out, nil
		}
		if budget <= 0 {
			return out, ErrRepairBound
		}

		pending = append(unattempted, evicted...)
	}
}

// uncovered lists devices whose assignment violates coverage:
// unassigned, assigned to an inactive location, or out of radius.
func (r *GreedyRepairer) uncovered(sol *model.Solution) []int {
	var ret []int
	for e, p := range sol.Assign {
		if p == model.Unassigned || !sol.Active[p] || !r.problem.Covers(e, p) {
			sol.Assign[e] = model.Unassigned
			ret = append(ret, e)
		}
	}

	return ret
}

// cover reassigns every pending device to the lowest-latency active
// covering location with spare capacity, activating the cheapest
// covering location when none has room. Devices nothing can cover
// stay unassigned. Each attempt consumes one unit of budget; devices
// not attempted before the budget runs out are returned.
func (r *GreedyRepairer) cover(sol *model.Solution, used []int, pending []int, budget int) ([]int, int) {
	r.rng.Shuffle(len(pending), func(i, j int) {
		pending[i], pending[j] = pending[j], pending[i]
	})

	for i, e := range pending {
		if budget <= 0 {
			return pending[i:], 0
		}
		budget -= 1

		locationComparator := func(a, b interface{}) int {
			pa := a.(int)
			pb := b.(int)

			latencyA := r.problem.Latency.At(e, pa)
			latencyB := r.problem.Latency.At(e, pb)
			if latencyA < latencyB {
				return -1
			}
			if latencyA > latencyB {
				return 1
			}

			return pa - pb
		}

		candidates := binaryheap.NewWith(locationComparator)
		for p, active := range sol.Active {
			if active && r.problem.Covers(e, p) && used[p] < r.problem.Locations[p].Capacity {
				candidates.Push(p)
			}
		}

		if first, ok := candidates.Pop(); ok {
			p := first.(int)
			sol.Assign[e] = p
			used[p] += 1
			continue
		}

		// No active location has room, open the cheapest one
		// that can cover this device.
		best := model.Unassigned
		bestCost := math.Inf(1)
		for p, location := range r.problem.Locations {
			if sol.Active[p] || !r.problem.Covers(e, p) || location.Capacity == 0 {
				continue
			}
			if location.Cost < bestCost {
				best = p
				bestCost = location.Cost
			}
		}

		if best == model.Unassigned {
			// Irreducible, left for the penalty term.
			continue
		}

		sol.Active[best] = true
		sol.Assign[e] = best
		used[best] += 1
	}

	return nil, budget
}

// decongest evicts the highest-latency devices from every location
// over capacity and reports them for another coverage pass.
func (r *GreedyRepairer) decongest(sol *model.Solution, used []int) []int {
	var evicted []int

	for p, active := range sol.Active {
		capacity := r.problem.Locations[p].Capacity
		if !active || used[p] <= capacity {
			continue
		}

		var assigned []*model.Device
		for e, target := range sol.Assign {
			if target == p {
				assigned = append(assigned, r.problem.Devices[e])
			}
		}

		sort.Sort(&ReverseSorter[model.Device]{
			objects: assigned,
			by: func(device *model.Device) float64 {
				return r.problem.Latency.At(device.Id, p)
			},
		})

		for _, device := range assigned {
			if used[p] <= capacity {
				break
			}

			sol.Assign[device.Id] = model.Unassigned
			used[p] -= 1
			evicted = append(evicted, device.Id)
		}
	}

	return evicted
}
