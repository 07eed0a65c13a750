package alg

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"sync"

	"github.com/b21166/placefly/internal/config"
	"github.com/b21166/placefly/internal/model"
	"github.com/b21166/placefly/internal/utils"
	"github.com/b21166/placefly/logging"
	"github.com/b21166/placefly/statistics"
	"gonum.org/v1/gonum/mat"
)

var log = logging.Get()

// particle couples the continuous search state with the discrete
// solution derived from it and the personal best found so far.
type particle struct {
	position *mat.VecDense
	velocity *mat.VecDense

	solution *model.Solution
	fitness  model.Fitness
	scalar   float64

	bestPosition *mat.VecDense
	bestSolution *model.Solution
	bestFitness  model.Fitness
	bestScalar   float64

	// frozen at the start of each movement step so attraction only
	// reads state from the previous evaluation
	framePosition *mat.VecDense
	frameScalar   float64
}

// HybridOptimizer runs the firefly attraction and PSO velocity
// hybrid over a fixed population and iteration budget. All best-so-
// far state is scoped to one optimizer instance.
type HybridOptimizer struct {
	problem *model.Problem
	cfg     config.OptimizerConfig
	weights model.Weights
	rng     *rand.Rand

	evaluator   Evaluator
	discretizer Discretizer
	repairer    Repairer
	archive     *ParetoArchive

	particles []*particle

	best         *model.Solution
	bestFitness  model.Fitness
	bestScalar   float64
	bestPosition *mat.VecDense

	iteration int
	mutex     sync.Mutex
}

// Progress is a point-in-time view of a run, safe to request from
// another goroutine while the run is in flight.
type Progress struct {
	Iteration   int             `json:"iteration"`
	BestScalar  float64         `json:"best_scalar"`
	BestFitness model.Fitness   `json:"best_fitness"`
	ArchiveSize int             `json:"archive_size"`
	Front       []model.Fitness `json:"front"`
}

func New(problem *model.Problem, cfg config.OptimizerConfig) (*HybridOptimizer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("optimizer is misconfigured: %w", err)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	weights := model.Weights{
		Cost:               cfg.CostWeight,
		Latency:            cfg.LatencyWeight,
		PenaltyCoefficient: cfg.PenaltyCoefficient,
	}

	o := &HybridOptimizer{
		problem:    problem,
		cfg:        cfg,
		weights:    weights,
		rng:        rng,
		archive:    NewParetoArchive(cfg.ArchiveMaxSize),
		bestScalar: math.Inf(1),
	}

	switch cfg.Evaluator {
	case "", "weighted":
		o.evaluator = NewWeightedEvaluator(problem, weights)
	default:
		return nil, fmt.Errorf("evaluator %q is not recognized", cfg.Evaluator)
	}

	switch cfg.Discretizer {
	case "", "sigmoid":
		o.discretizer = NewSigmoidDiscretizer(problem, cfg.Threshold)
	default:
		return nil, fmt.Errorf("discretizer %q is not recognized", cfg.Discretizer)
	}

	switch cfg.Repairer {
	case "", "greedy":
		o.repairer = NewGreedyRepairer(problem, rng)
	default:
		return nil, fmt.Errorf("repairer %q is not recognized", cfg.Repairer)
	}

	o.particles = make([]*particle, cfg.PopulationSize)
	for i := range o.particles {
		o.particles[i] = o.newParticle()
	}

	return o, nil
}

// newParticle samples an initial position so that roughly
// InitActiveShare of the activation dimensions land above the
// discretization threshold.
func (o *HybridOptimizer) newParticle() *particle {
	dims := len(o.problem.Locations)

	split := utils.Clamp(
		-math.Log(1/o.cfg.Threshold-1),
		o.cfg.PositionMin,
		o.cfg.PositionMax,
	)

	position := mat.NewVecDense(dims, nil)
	for dim := 0; dim < dims; dim++ {
		if o.rng.Float64() < o.cfg.InitActiveShare {
			position.SetVec(dim, split+o.rng.Float64()*(o.cfg.PositionMax-split))
		} else {
			position.SetVec(dim, o.cfg.PositionMin+o.rng.Float64()*(split-o.cfg.PositionMin))
		}
	}

	return &particle{
		position:      position,
		velocity:      mat.NewVecDense(dims, nil),
		bestPosition:  mat.NewVecDense(dims, nil),
		framePosition: mat.NewVecDense(dims, nil),
		bestScalar:    math.Inf(1),
	}
}

// Run executes the iteration budget and returns the best solution
// found plus the Pareto archive snapshot. Cancelling the context
// stops early with the best found so far.
func (o *HybridOptimizer) Run(ctx context.Context) (*model.Result, error) {
	log.Info().Msgf(
		"starting hybrid run: population=%d iterations=%d locations=%d devices=%d",
		o.cfg.PopulationSize, o.cfg.MaxIterations, len(o.problem.Locations), len(o.problem.Devices),
	)

	history := make([]float64, 0, o.cfg.MaxIterations)
	reportEvery := o.cfg.MaxIterations / 10
	if reportEvery == 0 {
		reportEvery = 1
	}

	for k := 0; k < o.cfg.MaxIterations; k++ {
		select {
		case <-ctx.Done():
			log.Warn().Msgf("run cancelled at iteration %d, returning best found so far", k)
			return o.result(history), ctx.Err()
		default:
		}

		o.evaluatePopulation()
		history = append(history, o.bestScalar)

		o.mutex.Lock()
		o.iteration = k + 1
		o.mutex.Unlock()

		if k%reportEvery == 0 {
			log.Debug().Msgf(
				"iteration %d: best %.4e, archive size %d",
				k, o.bestScalar, o.archive.Size(),
			)
		}

		if k+1 < o.cfg.MaxIterations {
			o.move(k)
		}
	}

	log.Info().Msgf("run finished: best %s, archive size %d", o.bestFitness.Display(), o.archive.Size())

	return o.result(history), nil
}

func (o *HybridOptimizer) Progress() *Progress {
	o.mutex.Lock()
	iteration := o.iteration
	bestScalar := o.bestScalar
	bestFitness := o.bestFitness
	o.mutex.Unlock()

	snapshot := o.archive.Snapshot()
	front := make([]model.Fitness, len(snapshot))
	for i, entry := range snapshot {
		front[i] = entry.Fitness
	}

	return &Progress{
		Iteration:   iteration,
		BestScalar:  bestScalar,
		BestFitness: bestFitness,
		ArchiveSize: len(snapshot),
		Front:       front,
	}
}

// evaluatePopulation derives, repairs and scores every particle's
// discrete solution, then refreshes personal and global bests and
// offers the repaired solutions to the archive.
func (o *HybridOptimizer) evaluatePopulation() {
	for _, pt := range o.particles {
		repaired, err := o.repairer.Repair(o.discretizer.Discretize(pt.position))
		if err != nil {
			log.Debug().Msgf("keeping residual violations: %v", err)
			statistics.Change("repair bound hits", 1)
		}

		pt.solution = repaired
		pt.fitness = o.evaluator.Evaluate(repaired)
		pt.scalar = pt.fitness.Scalar(o.weights)
		statistics.Change("fitness evaluations", 1)

		if pt.scalar < pt.bestScalar {
			pt.bestScalar = pt.scalar
			pt.bestFitness = pt.fitness
			pt.bestSolution = repaired.Clone()
			pt.bestPosition.CopyVec(pt.position)
		}

		if pt.scalar < o.bestScalar {
			o.mutex.Lock()
			o.bestScalar = pt.scalar
			o.bestFitness = pt.fitness
			o.mutex.Unlock()

			o.best = repaired.Clone()
			o.bestPosition = mat.VecDenseCopyOf(pt.position)
		}

		if o.archive.Offer(pt.solution, pt.fitness) {
			statistics.Change("archive insertions", 1)
		}
	}
}

// move applies the firefly attraction towards every brighter
// particle followed by the PSO velocity blend, then clamps the
// position back into bounds.
func (o *HybridOptimizer) move(k int) {
	alpha := o.cfg.Firefly.Alpha0 * math.Pow(o.cfg.Firefly.AlphaDecay, float64(k))
	velocityLimit := o.cfg.PositionMax - o.cfg.PositionMin

	for _, pt := range o.particles {
		pt.framePosition.CopyVec(pt.position)
		pt.frameScalar = pt.scalar
	}

	ranked := make([]*particle, len(o.particles))
	copy(ranked, o.particles)
	sort.Sort(&Sorter[particle]{
		objects: ranked,
		by:      func(pt *particle) float64 { return pt.frameScalar },
	})

	invalidTotal := 0
	for i, pt := range ranked {
		for j := 0; j < i; j++ {
			brighter := ranked[j]
			if brighter.frameScalar >= pt.frameScalar {
				continue
			}

			distance := utils.SquaredDistance(pt.position, brighter.framePosition)
			beta := o.cfg.Firefly.Beta0 * math.Exp(-o.cfg.Firefly.Gamma*distance)

			for dim := 0; dim < pt.position.Len(); dim++ {
				step := beta*(brighter.framePosition.AtVec(dim)-pt.position.AtVec(dim)) +
					alpha*(o.rng.Float64()-0.5)
				pt.position.SetVec(dim, pt.position.AtVec(dim)+step)
			}
		}

		for dim := 0; dim < pt.position.Len(); dim++ {
			r1 := o.rng.Float64()
			r2 := o.rng.Float64()

			velocity := o.cfg.PSO.W*pt.velocity.AtVec(dim) +
				o.cfg.PSO.C1*r1*(pt.bestPosition.AtVec(dim)-pt.position.AtVec(dim)) +
				o.cfg.PSO.C2*r2*(o.bestPosition.AtVec(dim)-pt.position.AtVec(dim))
			velocity = utils.Clamp(velocity, -velocityLimit, velocityLimit)

			pt.velocity.SetVec(dim, velocity)
			pt.position.SetVec(dim, pt.position.AtVec(dim)+velocity)
		}

		_, invalid := utils.ClampVec(pt.position, o.cfg.PositionMin, o.cfg.PositionMax)
		invalidTotal += invalid
	}

	if invalidTotal > 0 {
		log.Warn().Msgf(
			"re-bounded %d non-finite position components, firefly/pso parameters look unstable",
			invalidTotal,
		)
	}
}

func (o *HybridOptimizer) result(history []float64) *model.Result {
	var best *model.Solution
	if o.best != nil {
		best = o.best.Clone()
	}

	ret := &model.Result{
		Best:        best,
		BestFitness: o.bestFitness,
		BestScalar:  o.bestScalar,
		Front:       o.archive.Snapshot(),
		History:     history,
	}

	return ret
}
