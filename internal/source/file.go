package source

import (
	"fmt"
	"os"

	"github.com/b21166/placefly/internal/model"
	"gonum.org/v1/gonum/mat"
	"gopkg.in/yaml.v2"
)

type locationDesc struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Cost     float64 `yaml:"cost"`
	Capacity int     `yaml:"capacity"`
}

type deviceDesc struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Demand float64 `yaml:"demand"`
}

type instanceDesc struct {
	CoverRadius float64        `yaml:"cover_radius"`
	Locations   []locationDesc `yaml:"locations"`
	Devices     []deviceDesc   `yaml:"devices"`

	// Latency overrides coordinate-derived latencies when present,
	// one row per device.
	Latency [][]float64 `yaml:"latency"`
}

// FileSource loads an instance description from a YAML file.
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{
		path: path,
	}
}

func (s *FileSource) FetchProblem() (*model.Problem, error) {
	content, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("could not read instance file %s: %w", s.path, err)
	}

	var desc instanceDesc
	if err := yaml.UnmarshalStrict(content, &desc); err != nil {
		return nil, fmt.Errorf("could not parse instance file %s: %w", s.path, err)
	}

	locations := make([]*model.Location, len(desc.Locations))
	for p, location := range desc.Locations {
		locations[p] = &model.Location{
			Id:       p,
			Position: mat.NewVecDense(2, []float64{location.X, location.Y}),
			Cost:     location.Cost,
			Capacity: location.Capacity,
		}
	}

	devices := make([]*model.Device, len(desc.Devices))
	for e, device := range desc.Devices {
		devices[e] = &model.Device{
			Id:       e,
			Position: mat.NewVecDense(2, []float64{device.X, device.Y}),
			Demand:   device.Demand,
		}
	}

	if len(desc.Latency) == 0 {
		return model.NewEuclideanProblem(locations, devices, desc.CoverRadius)
	}

	if len(desc.Latency) != len(devices) {
		return nil, fmt.Errorf(
			"%w: latency has %d rows, want one per device (%d)",
			model.ErrBadInstance, len(desc.Latency), len(devices),
		)
	}

	latency := mat.NewDense(len(devices), len(locations), nil)
	for e, row := range desc.Latency {
		if len(row) != len(locations) {
			return nil, fmt.Errorf(
				"%w: latency row %d has %d columns, want one per location (%d)",
				model.ErrBadInstance, e, len(row), len(locations),
			)
		}
		for p, value := range row {
			latency.Set(e, p, value)
		}
	}

	log.Info().Msgf("loaded instance from %s", s.path)

	return model.NewProblem(locations, devices, latency, desc.CoverRadius)
}
