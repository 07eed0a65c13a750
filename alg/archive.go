package alg

import (
	"math"
	"sort"
	"sync"

	"github.com/b21166/placefly/internal/model"
)

// ParetoArchive keeps the non-dominated cost-latency trade-offs seen
// during a run, feasible entries preferred. Offers are serialized by
// a mutex so the non-domination invariant holds under concurrent use.
type ParetoArchive struct {
	entries []model.ArchiveEntry
	maxSize int

	mutex sync.Mutex
}

// NewParetoArchive creates an empty archive. maxSize zero means
// unbounded; otherwise the least crowded entries survive pruning.
func NewParetoArchive(maxSize int) *ParetoArchive {
	return &ParetoArchive{
		maxSize: maxSize,
	}
}

// Offer inserts the solution unless an existing entry dominates or
// equals it, evicting every entry the newcomer dominates. It reports
// whether the solution entered the archive.
func (a *ParetoArchive) Offer(sol *model.Solution, fitness model.Fitness) bool {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	for _, entry := range a.entries {
		if entry.Fitness.Dominates(fitness) || entry.Fitness == fitness {
			return false
		}
	}

	kept := a.entries[:0]
	for _, entry := range a.entries {
		if !fitness.Dominates(entry.Fitness) {
			kept = append(kept, entry)
		}
	}
	a.entries = append(kept, model.ArchiveEntry{
		Solution: sol.Clone(),
		Fitness:  fitness,
	})

	if a.maxSize > 0 && len(a.entries) > a.maxSize {
		a.prune()
	}

	return true
}

func (a *ParetoArchive) Size() int {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	return len(a.entries)
}

// Snapshot returns deep copies of the entries ordered by cost.
func (a *ParetoArchive) Snapshot() []model.ArchiveEntry {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	ret := make([]model.ArchiveEntry, len(a.entries))
	for i, entry := range a.entries {
		ret[i] = model.ArchiveEntry{
			Solution: entry.Solution.Clone(),
			Fitness:  entry.Fitness,
		}
	}

	sort.Slice(ret, func(i, j int) bool {
		if ret[i].Fitness.Cost != ret[j].Fitness.Cost {
			return ret[i].Fitness.Cost < ret[j].Fitness.Cost
		}

		return ret[i].Fitness.Latency < ret[j].Fitness.Latency
	})

	return ret
}

// prune drops the most crowded entries until maxSize holds, keeping
// the cost and latency extremes.
func (a *ParetoArchive) prune() {
	for len(a.entries) > a.maxSize {
		distances := a.crowdingDistances()

		worst := -1
		worstDistance := math.Inf(1)
		for i, distance := range distances {
			if distance < worstDistance {
				worst = i
				worstDistance = distance
			}
		}

		a.entries[worst] = a.entries[len(a.entries)-1]
		a.entries = a.entries[:len(a.entries)-1]
	}
}

func (a *ParetoArchive) crowdingDistances() []float64 {
	n := len(a.entries)
	distances := make([]float64, n)

	dimensions := []func(model.Fitness) float64{
		func(f model.Fitness) float64 { return f.Cost },
		func(f model.Fitness) float64 { return f.Latency },
	}

	for _, dimension := range dimensions {
		order := make([]int, n)
		for i := range order {
			order[i] = i
		}
		sort.Slice(order, func(i, j int) bool {
			return dimension(a.entries[order[i]].Fitness) < dimension(a.entries[order[j]].Fitness)
		})

		lo := dimension(a.entries[order[0]].Fitness)
		hi := dimension(a.entries[order[n-1]].Fitness)
		if hi == lo {
			continue
		}

		distances[order[0]] = math.Inf(1)
		distances[order[n-1]] = math.Inf(1)
		for i := 1; i < n-1; i++ {
			gap := dimension(a.entries[order[i+1]].Fitness) - dimension(a.entries[order[i-1]].Fitness)
			distances[order[i]] += gap / (hi - lo)
		}
	}

	return distances
}
