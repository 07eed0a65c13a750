package alg

import (
	"reflect"
	"testing"

	"github.com/b21166/placefly/internal/model"
	"github.com/b21166/placefly/internal/model/testing_tool"
	"gonum.org/v1/gonum/mat"
)

func TestSigmoidDiscretize(t *testing.T) {
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
			{3, 3, 30},
		},
	)

	discretizer := NewSigmoidDiscretizer(problem, 0.5)

	t.Run("ActivationThreshold", func(t *testing.T) {
		sol := discretizer.Discretize(mat.NewVecDense(3, []float64{2, -2, 0}))

		// Sigmoid maps 0 exactly onto the 0.5 threshold, so the
		// boundary dimension counts as active.
		expected := []bool{true, false, true}
		if !reflect.DeepEqual(sol.Active, expected) {
			t.Errorf("expected active %v, got %v", expected, sol.Active)
		}
	})

	t.Run("NearestActiveAssignment", func(t *testing.T) {
		sol := discretizer.Discretize(mat.NewVecDense(3, []float64{-2, 2, 2}))

		if sol.Assign[0] != 1 {
			t.Errorf("device 0 should go to location 1, got %d", sol.Assign[0])
		}
		if sol.Assign[2] != 1 {
			t.Errorf("device 2 should go to location 1, got %d", sol.Assign[2])
		}
	})

	t.Run("TieBreaksToLowestIndex", func(t *testing.T) {
		// Device 3 is equally far from locations 0 and 1.
		sol := discretizer.Discretize(mat.NewVecDense(3, []float64{2, 2, -2}))

		if sol.Assign[3] != 0 {
			t.Errorf("tie should break to location 0, got %d", sol.Assign[3])
		}
	})

	t.Run("UnassignedOutsideRadius", func(t *testing.T) {
		// Only location 2 is active, device 3 is 30 away from it.
		sol := discretizer.Discretize(mat.NewVecDense(3, []float64{-2, -2, 2}))

		if sol.Assign[3] != model.Unassigned {
			t.Errorf("device 3 has no covering active location, got %d", sol.Assign[3])
		}
	})

	t.Run("Deterministic", func(t *testing.T) {
		position := mat.NewVecDense(3, []float64{0.3, -1.7, 0.9})

		first := discretizer.Discretize(position)
		second := discretizer.Discretize(position)

		if !reflect.DeepEqual(first, second) {
			t.Errorf("same position produced different solutions:\n%s\n%s", first, second)
		}
	})
}
