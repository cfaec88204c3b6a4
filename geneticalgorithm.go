package hybridsim

import (
	"math"
	"math/rand"
	"sort"
	"sync"
	"time"

	"gonum.org/v1/gonum/stat/distuv"
)

// GAConfig configures the real-coded genetic algorithm optimizer.
type GAConfig struct {
	MaxGen       int
	NPop         int
	MutationRate float64
	Verbose      bool
}

// gaIndividual is one population member: its fitness (math.Inf(1) if not
// yet evaluated this generation) and gene vector.
type gaIndividual struct {
	f float64
	x []float64
}

func (ind gaIndividual) clone() gaIndividual {
	x := make([]float64, len(ind.x))
	copy(x, ind.x)
	return gaIndividual{f: ind.f, x: x}
}

// Run drives the genetic algorithm over obj's search space. It requires
// obj's model to have supplied x_bounds via GetX; without them it returns
// a *ConfigError.
func (cfg GAConfig) Run(obj *Objective) (OptResult, error) {
	bounds := obj.XBounds()
	if len(bounds) != obj.LenX() {
		return OptResult{}, &ConfigError{Field: "GAConfig", Message: "model did not supply x_bounds required by the genetic algorithm"}
	}

	nPop := cfg.NPop
	nElite := nPop / 10
	if nElite == 0 {
		nElite = 1
	}
	lenX := obj.LenX()

	log10Lo := make([]float64, lenX)
	log10Hi := make([]float64, lenX)
	for i, b := range bounds {
		log10Lo[i] = math.Log10(b.Lo)
		log10Hi[i] = math.Log10(b.Hi)
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	var logger Logger
	if cfg.Verbose {
		defer logger.flush()
	}

	pop := makeInitialPopulation(nPop, lenX, log10Lo, log10Hi, rng)
	nextPop := make([]gaIndividual, nPop)

	var fcall int64
	for gen := 0; gen < cfg.MaxGen; gen++ {
		for _, ind := range pop {
			if math.IsInf(ind.f, 1) {
				fcall++
			}
		}
		evaluatePopulation(pop, obj)

		sort.SliceStable(pop, func(i, j int) bool { return pop[i].f < pop[j].f })

		if cfg.Verbose {
			logger.Logf("%6d:   f:%.4e   x:%v\n", gen, pop[0].f, pop[0].x)
		}

		for i := 0; i < nElite; i++ {
			nextPop[i] = pop[i].clone()
		}

		weights := rouletteWeights(pop)
		cat := distuv.NewCategorical(weights, rng)
		for i := nElite; i < nPop; i++ {
			p1 := int(cat.Rand())
			p2 := int(cat.Rand())
			nextPop[i] = crossover(pop[p1], pop[p2], lenX, rng)
		}

		for i := 1; i < nPop; i++ {
			mutate(&nextPop[i], log10Lo, log10Hi, cfg.MutationRate, rng)
		}

		pop, nextPop = nextPop, pop
	}

	if cfg.Verbose {
		logger.Logf("Finished. fcall = %d\n", fcall)
	}

	// pop[0] is whatever the final generation's elitism step carried
	// forward at index 0; it is never mutated, so its fitness from the
	// last evaluatePopulation call above is still valid. The rest of the
	// final pop is left unevaluated, matching the source optimizer this
	// was ported from.
	return OptResult{X: pop[0].x, Index: obj.XIndex(), F: pop[0].f}, nil
}

func makeInitialPopulation(nPop, lenX int, log10Lo, log10Hi []float64, rng *rand.Rand) []gaIndividual {
	pop := make([]gaIndividual, nPop)
	for i := range pop {
		x := make([]float64, lenX)
		for j := range x {
			u := distuv.Uniform{Min: log10Lo[j], Max: log10Hi[j], Src: rng}
			x[j] = math.Pow(10, u.Rand())
		}
		pop[i] = gaIndividual{f: math.Inf(1), x: x}
	}
	return pop
}

// evaluatePopulation computes obj(x) for every individual whose fitness is
// still unknown (+Inf), one goroutine per individual, joining before
// returning. Elites carried over from the previous generation already have
// a finite fitness and are skipped.
func evaluatePopulation(pop []gaIndividual, obj *Objective) {
	var wg sync.WaitGroup
	for i := range pop {
		if !math.IsInf(pop[i].f, 1) {
			continue
		}
		wg.Add(1)
		go func(ind *gaIndividual) {
			defer wg.Done()
			workerObj := obj.Clone()
			ind.f = workerObj.Obj(ind.x)
		}(&pop[i])
	}
	wg.Wait()
}

// rouletteWeights builds selection weights over an ascending-sorted
// population: w_j = (f_j - f_worst)/(f_best - f_worst), 1 for the best and
// 0 for the worst. The worst individual is therefore never selected as a
// parent; this is carried over unchanged from the system this optimizer
// was ported from.
func rouletteWeights(pop []gaIndividual) []float64 {
	fBest := pop[0].f
	fWorst := pop[len(pop)-1].f
	weights := make([]float64, len(pop))
	for i, ind := range pop {
		weights[i] = (ind.f - fWorst) / (fBest - fWorst)
	}
	return weights
}

func crossover(parent1, parent2 gaIndividual, lenX int, rng *rand.Rand) gaIndividual {
	child := gaIndividual{f: math.Inf(1), x: make([]float64, lenX)}
	for i := 0; i < lenX; i++ {
		if rng.Intn(101)%2 == 0 {
			child.x[i] = parent1.x[i]
		} else {
			child.x[i] = parent2.x[i]
		}
	}
	return child
}

func mutate(ind *gaIndividual, log10Lo, log10Hi []float64, mutationRate float64, rng *rand.Rand) {
	for i := range ind.x {
		if rng.Float64() >= mutationRate {
			continue
		}
		jitter := distuv.Uniform{Min: 0.8, Max: 1.25, Src: rng}.Rand()
		newX := ind.x[i] * jitter

		lo := math.Pow(10, log10Lo[i])
		hi := math.Pow(10, log10Hi[i])
		switch {
		case newX < lo:
			ind.x[i] = lo
		case newX > hi:
			ind.x[i] = hi
		default:
			ind.x[i] = newX
		}
	}
}
