package alg

import (
	"testing"

	"github.com/b21166/placefly/internal/model"
)

func offerFitness(t *testing.T, archive *ParetoArchive, fitness model.Fitness) bool {
	t.Helper()
	return archive.Offer(model.NewSolution(1, 1), fitness)
}

func TestParetoArchive(t *testing.T) {
	t.Run("KeepsTradeOffs", func(t *testing.T) {
		archive := NewParetoArchive(0)

		if !offerFitness(t, archive, model.Fitness{Cost: 10, Latency: 5}) {
			t.Error("first offer should enter")
		}
		if !offerFitness(t, archive, model.Fitness{Cost: 5, Latency: 10}) {
			t.Error("incomparable offer should enter")
		}

		if archive.Size() != 2 {
			t.Errorf("expected 2 entries, got %d", archive.Size())
		}
	})

	t.Run("RejectsDominatedAndDuplicates", func(t *testing.T) {
		archive := NewParetoArchive(0)

		offerFitness(t, archive, model.Fitness{Cost: 10, Latency: 5})

		if offerFitness(t, archive, model.Fitness{Cost: 12, Latency: 6}) {
			t.Error("dominated offer should be rejected")
		}
		if offerFitness(t, archive, model.Fitness{Cost: 10, Latency: 5}) {
			t.Error("duplicate fitness should be rejected")
		}
		if archive.Size() != 1 {
			t.Errorf("expected 1 entry, got %d", archive.Size())
		}
	})

	t.Run("EvictsNewlyDominated", func(t *testing.T) {
		archive := NewParetoArchive(0)

		offerFitness(t, archive, model.Fitness{Cost: 10, Latency: 5})
		offerFitness(t, archive, model.Fitness{Cost: 5, Latency: 10})

		if !offerFitness(t, archive, model.Fitness{Cost: 4, Latency: 4}) {
			t.Error("dominating offer should enter")
		}
		if archive.Size() != 1 {
			t.Errorf("dominating offer should evict both entries, got %d left", archive.Size())
		}
	})

	t.Run("PrefersFeasible", func(t *testing.T) {
		archive := NewParetoArchive(0)

		offerFitness(t, archive, model.Fitness{Cost: 1, Latency: 1, Penalty: 3})

		if !offerFitness(t, archive, model.Fitness{Cost: 100, Latency: 100}) {
			t.Error("feasible offer should displace an infeasible one")
		}
		if archive.Size() != 1 {
			t.Errorf("infeasible entry should be gone, got %d entries", archive.Size())
		}
		if !archive.Snapshot()[0].Fitness.Feasible() {
			t.Error("surviving entry should be the feasible one")
		}
	})

	t.Run("SnapshotIsNonDominatedAndSorted", func(t *testing.T) {
		archive := NewParetoArchive(0)

		offerFitness(t, archive, model.Fitness{Cost: 30, Latency: 1})
		offerFitness(t, archive, model.Fitness{Cost: 10, Latency: 9})
		offerFitness(t, archive, model.Fitness{Cost: 20, Latency: 4})

		snapshot := archive.Snapshot()
		for i, a := range snapshot {
			if i > 0 && snapshot[i-1].Fitness.Cost > a.Fitness.Cost {
				t.Error("snapshot should be ordered by cost")
			}
			for j, b := range snapshot {
				if i != j && a.Fitness.Dominates(b.Fitness) {
					t.Errorf("entry %d dominates entry %d", i, j)
				}
			}
		}
	})

	t.Run("PrunesToMaxSizeKeepingExtremes", func(t *testing.T) {
		archive := NewParetoArchive(3)

		for i := 0; i < 10; i++ {
			offerFitness(t, archive, model.Fitness{
				Cost:    float64(10 + i),
				Latency: float64(20 - i),
			})
		}

		if archive.Size() != 3 {
			t.Fatalf("expected 3 entries after pruning, got %d", archive.Size())
		}

		snapshot := archive.Snapshot()
		if snapshot[0].Fitness.Cost != 10 {
			t.Errorf("cheapest extreme should survive pruning, got cost %f", snapshot[0].Fitness.Cost)
		}
		if snapshot[2].Fitness.Cost != 19 {
			t.Errorf("lowest-latency extreme should survive pruning, got cost %f", snapshot[2].Fitness.Cost)
		}
	})

	t.Run("ArchivedSolutionIsACopy", func(t *testing.T) {
		archive := NewParetoArchive(0)

		sol := model.NewSolution(2, 2)
		archive.Offer(sol, model.Fitness{Cost: 1, Latency: 1})
		sol.Active[0] = true

		if archive.Snapshot()[0].Solution.Active[0] {
			t.Error("mutating the offered solution should not reach the archive")
		}
	})
}
