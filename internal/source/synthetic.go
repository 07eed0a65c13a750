package source

import (
	"fmt"
	"math/rand"

	"github.com/b21166/placefly/internal/config"
	"github.com/b21166/placefly/internal/model"
	"gonum.org/v1/gonum/mat"
)

// SyntheticSource generates a random instance on a square field:
// uniform coordinates, uniform demands, per-location costs and
// capacities drawn from the configured ranges. The same seed always
// yields the same instance.
type SyntheticSource struct {
	cfg config.SyntheticConfig
}

func NewSyntheticSource(cfg config.SyntheticConfig) *SyntheticSource {
	return &SyntheticSource{
		cfg: cfg,
	}
}

func (s *SyntheticSource) FetchProblem() (*model.Problem, error) {
	if s.cfg.Locations <= 0 || s.cfg.Devices <= 0 {
		return nil, fmt.Errorf("%w: synthetic instance needs positive location and device counts", model.ErrBadInstance)
	}
	if s.cfg.CostMin > s.cfg.CostMax || s.cfg.CapacityMin > s.cfg.CapacityMax || s.cfg.DemandMin > s.cfg.DemandMax {
		return nil, fmt.Errorf("%w: synthetic ranges are empty", model.ErrBadInstance)
	}

	rng := rand.New(rand.NewSource(s.cfg.Seed))

	locations := make([]*model.Location, s.cfg.Locations)
	for p := range locations {
		locations[p] = &model.Location{
			Id: p,
			Position: mat.NewVecDense(2, []float64{
				rng.Float64() * s.cfg.FieldSize,
				rng.Float64() * s.cfg.FieldSize,
			}),
			Cost:     s.cfg.CostMin + rng.Float64()*(s.cfg.CostMax-s.cfg.CostMin),
			Capacity: s.cfg.CapacityMin + rng.Intn(s.cfg.CapacityMax-s.cfg.CapacityMin+1),
		}
	}

	devices := make([]*model.Device, s.cfg.Devices)
	for e := range devices {
		devices[e] = &model.Device{
			Id: e,
			Position: mat.NewVecDense(2, []float64{
				rng.Float64() * s.cfg.FieldSize,
				rng.Float64() * s.cfg.FieldSize,
			}),
			Demand: s.cfg.DemandMin + rng.Float64()*(s.cfg.DemandMax-s.cfg.DemandMin),
		}
	}

	problem, err := model.NewEuclideanProblem(locations, devices, s.cfg.CoverRadius)
	if err != nil {
		return nil, err
	}

	log.Info().Msgf(
		"generated synthetic instance: %d locations, %d devices, field %.0f, seed %d",
		s.cfg.Locations, s.cfg.Devices, s.cfg.FieldSize, s.cfg.Seed,
	)

	return problem, nil
}
