// Because it is a testing package, no errors are returned,
// all problems cause a panic.

package testing_tool

import (
	"fmt"

	"github.com/b21166/placefly/internal/model"
	"gonum.org/v1/gonum/mat"
)

type LocationDesc struct {
	X        float64
	Y        float64
	Cost     float64
	Capacity int
}

type DeviceDesc struct {
	X      float64
	Y      float64
	Demand float64
}

type Builder struct{}

func New() *Builder {
	return &Builder{}
}

// GetProblem builds a coordinate-based instance, latencies are the
// Euclidean distances.
func (builder *Builder) GetProblem(coverRadius float64, locationsDesc []*LocationDesc, devicesDesc []*DeviceDesc) *model.Problem {
	locations := make([]*model.Location, len(locationsDesc))
	for p, locationDesc := range locationsDesc {
		locations[p] = &model.Location{
			Id:       p,
			Position: mat.NewVecDense(2, []float64{locationDesc.X, locationDesc.Y}),
			Cost:     locationDesc.Cost,
			Capacity: locationDesc.Capacity,
		}
	}

	devices := make([]*model.Device, len(devicesDesc))
	for e, deviceDesc := range devicesDesc {
		devices[e] = &model.Device{
			Id:       e,
			Position: mat.NewVecDense(2, []float64{deviceDesc.X, deviceDesc.Y}),
			Demand:   deviceDesc.Demand,
		}
	}

	problem, err := model.NewEuclideanProblem(locations, devices, coverRadius)
	if err != nil {
		panic(fmt.Sprintf("could not build problem: %v", err))
	}

	return problem
}

// GetLatencyProblem builds an instance from an explicit latency
// matrix, one row per device. Demands default to one when nil.
func (builder *Builder) GetLatencyProblem(
	coverRadius float64,
	costs []float64,
	capacities []int,
	demands []float64,
	latency [][]float64,
) *model.Problem {
	if len(costs) != len(capacities) {
		panic("costs and capacities must have the same length")
	}

	locations := make([]*model.Location, len(costs))
	for p := range costs {
		locations[p] = &model.Location{
			Id:       p,
			Cost:     costs[p],
			Capacity: capacities[p],
		}
	}

	devices := make([]*model.Device, len(latency))
	for e := range latency {
		demand := 1.0
		if demands != nil {
			demand = demands[e]
		}
		devices[e] = &model.Device{
			Id:     e,
			Demand: demand,
		}
	}

	matrix := mat.NewDense(len(devices), len(locations), nil)
	for e, row := range latency {
		if len(row) != len(locations) {
			panic(fmt.Sprintf("latency row %d has %d columns, want %d", e, len(row), len(locations)))
		}
		for p, value := range row {
			matrix.Set(e, p, value)
		}
	}

	problem, err := model.NewProblem(locations, devices, matrix, coverRadius)
	if err != nil {
		panic(fmt.Sprintf("could not build problem: %v", err))
	}

	return problem
}

// ExpectConsistent panics unless the solution assigns every device to
// an active, covering location and no location is over capacity.
func ExpectConsistent(problem *model.Problem, solution *model.Solution) {
	if len(solution.Active) != len(problem.Locations) || len(solution.Assign) != len(problem.Devices) {
		panic("solution shape does not match the problem")
	}

	used := solution.Usage()
	for p, location := range problem.Locations {
		if used[p] > location.Capacity {
			panic(fmt.Sprintf("location %d hosts %d devices over capacity %d", p, used[p], location.Capacity))
		}
	}

	for e, p := range solution.Assign {
		if p == model.Unassigned {
			panic(fmt.Sprintf("device %d is unassigned", e))
		}
		if p < 0 || p >= len(problem.Locations) {
			panic(fmt.Sprintf("device %d is assigned to location %d which does not exist", e, p))
		}
		if !solution.Active[p] {
			panic(fmt.Sprintf("device %d is assigned to inactive location %d", e, p))
		}
		if !problem.Covers(e, p) {
			panic(fmt.Sprintf("device %d is assigned to location %d outside the cover radius", e, p))
		}
	}
}
