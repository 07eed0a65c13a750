package model

import (
	"errors"
	"fmt"

	"github.com/b21166/placefly/internal/utils"
	"github.com/b21166/placefly/logging"
	"gonum.org/v1/gonum/mat"
)

var log = logging.Get()

var ErrBadInstance = errors.New("malformed problem instance")

// Problem is the static description of one placement instance.
// It is immutable after construction.
type Problem struct {
	Locations []*Location
	Devices   []*Device

	// Latency is the device-to-location latency cost matrix,
	// one row per device, one column per location.
	Latency *mat.Dense

	// CoverRadius is the latency threshold above which a device
	// does not count as covered by a location.
	CoverRadius float64

	uncoverable []int
}

// NewProblem builds a problem from an explicit latency matrix.
// Structural defects are fatal; devices out of every location's
// reach are only logged, the optimizer carries them as penalty.
func NewProblem(locations []*Location, devices []*Device, latency *mat.Dense, coverRadius float64) (*Problem, error) {
	if len(locations) == 0 {
		return nil, fmt.Errorf("%w: no candidate locations", ErrBadInstance)
	}
	if len(devices) == 0 {
		return nil, fmt.Errorf("%w: no devices", ErrBadInstance)
	}
	if coverRadius <= 0 {
		return nil, fmt.Errorf("%w: cover radius must be positive, got %f", ErrBadInstance, coverRadius)
	}

	rows, cols := latency.Dims()
	if rows != len(devices) || cols != len(locations) {
		return nil, fmt.Errorf(
			"%w: latency matrix is %dx%d, want %dx%d",
			ErrBadInstance, rows, cols, len(devices), len(locations),
		)
	}

	for p, location := range locations {
		if location.Id != p {
			return nil, fmt.Errorf("%w: location id %d does not match its index %d", ErrBadInstance, location.Id, p)
		}
		if location.Capacity < 0 {
			return nil, fmt.Errorf("%w: location %d has negative capacity", ErrBadInstance, location.Id)
		}
		if location.Cost < 0 {
			return nil, fmt.Errorf("%w: location %d has negative cost", ErrBadInstance, location.Id)
		}
	}
	for e, device := range devices {
		if device.Id != e {
			return nil, fmt.Errorf("%w: device id %d does not match its index %d", ErrBadInstance, device.Id, e)
		}
		if device.Demand <= 0 {
			return nil, fmt.Errorf("%w: device %d has non-positive demand", ErrBadInstance, device.Id)
		}
	}

	problem := &Problem{
		Locations:   locations,
		Devices:     devices,
		Latency:     latency,
		CoverRadius: coverRadius,
	}

	for e := range devices {
		covered := false
		for p := range locations {
			if problem.Covers(e, p) {
				covered = true
				break
			}
		}
		if !covered {
			problem.uncoverable = append(problem.uncoverable, e)
		}
	}

	if len(problem.uncoverable) > 0 {
		log.Warn().Msgf(
			"%d of %d devices are out of every location's reach, solutions will carry a residual penalty",
			len(problem.uncoverable), len(devices),
		)
	}

	return problem, nil
}

// NewEuclideanProblem derives the latency matrix from the
// location and device coordinates.
func NewEuclideanProblem(locations []*Location, devices []*Device, coverRadius float64) (*Problem, error) {
	latency := mat.NewDense(max(len(devices), 1), max(len(locations), 1), nil)
	for e, device := range devices {
		for p, location := range locations {
			if device.Position == nil || location.Position == nil {
				return nil, fmt.Errorf("%w: missing coordinates for latency derivation", ErrBadInstance)
			}
			latency.Set(e, p, utils.Euclidean(device.Position, location.Position))
		}
	}

	return NewProblem(locations, devices, latency, coverRadius)
}

// Covers reports whether location p serves device e within the
// coverage latency threshold.
func (problem *Problem) Covers(e, p int) bool {
	return problem.Latency.At(e, p) <= problem.CoverRadius
}

// Uncoverable lists devices no candidate location can cover.
// A non-empty result means the instance is unsatisfiable and every
// solution's penalty stays positive.
func (problem *Problem) Uncoverable() []int {
	ret := make([]int, len(problem.uncoverable))
	copy(ret, problem.uncoverable)

	return ret
}

func (problem *Problem) Display() string {
	repr := fmt.Sprintf(
		"instance with %d candidate locations, %d devices, cover radius %.2f\n",
		len(problem.Locations), len(problem.Devices), problem.CoverRadius,
	)
	for _, location := range problem.Locations {
		repr += fmt.Sprintf(
			"{location %d cost %.2f capacity %d}\n",
			location.Id, location.Cost, location.Capacity,
		)
	}

	return repr
}

func max(a, b int) int {
	if a > b {
		return a
	}

	return b
}
