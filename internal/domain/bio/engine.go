package bio

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/Farini/SkyNation-sub005/internal/domain/catalog"
)

var (
	ErrUnknownOption   = errors.New("unknown dna option")
	ErrEmptyPopulation = errors.New("population size must be at least 1")
)

const (
	alphabet       = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	tournamentSize = 3
)

type Engine struct {
	Catalog catalog.Catalog
}

func NewEngine(cat catalog.Catalog) Engine {
	return Engine{Catalog: cat}
}

// Populate fills the box with size random strings of the option's target
// length. Each position copies the target with a 1-in-bias chance.
func (e Engine) Populate(b *Box, option catalog.DNAOption, size int, rng *rand.Rand) error {
	spec, ok := e.Catalog.DNAFor(option)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownOption, option)
	}
	if size < 1 {
		return ErrEmptyPopulation
	}
	bias := e.Catalog.Tuning.BioSeedBias
	population := make([]string, size)
	for i := range population {
		population[i] = seeded(spec.Perfect, bias, rng)
	}
	b.Option = option
	b.PerfectDNA = spec.Perfect
	b.Population = population
	b.PopulationLimit = size
	b.CurrentGeneration = 0
	b.Age = 0
	return nil
}

func seeded(perfect string, bias int, rng *rand.Rand) string {
	var sb strings.Builder
	sb.Grow(len(perfect))
	for i := 0; i < len(perfect); i++ {
		if bias > 0 && rng.IntN(bias) == 0 {
			sb.WriteByte(perfect[i])
			continue
		}
		sb.WriteByte(alphabet[rng.IntN(len(alphabet))])
	}
	return sb.String()
}

// Advance breeds one generation in bloom mode. It keeps the population size,
// carries the fittest individual over unchanged and stops once the round's
// generation budget is spent.
func (e Engine) Advance(b *Box, rng *rand.Rand) bool {
	if b.Mode != ModeBloom || len(b.Population) == 0 || b.MutationChance <= 0 || b.BudgetSpent() {
		return false
	}
	scores := make([]int, len(b.Population))
	best := 0
	for i, dna := range b.Population {
		scores[i] = Fitness(dna, b.PerfectDNA)
		if scores[i] > scores[best] {
			best = i
		}
	}

	next := make([]string, 0, len(b.Population))
	next = append(next, b.Population[best])
	for len(next) < len(b.Population) {
		a := b.Population[tournament(scores, rng)]
		c := b.Population[tournament(scores, rng)]
		next = append(next, mutate(crossover(a, c, rng), b.MutationChance, rng))
	}
	b.Population = next
	b.CurrentGeneration++
	return true
}

func tournament(scores []int, rng *rand.Rand) int {
	winner := rng.IntN(len(scores))
	for i := 1; i < tournamentSize; i++ {
		challenger := rng.IntN(len(scores))
		if scores[challenger] > scores[winner] {
			winner = challenger
		}
	}
	return winner
}

func crossover(a, b string, rng *rand.Rand) string {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	if n < 2 {
		return a
	}
	cut := 1 + rng.IntN(n-1)
	return a[:cut] + b[cut:]
}

func mutate(dna string, chance int, rng *rand.Rand) string {
	out := []byte(dna)
	for i := range out {
		if rng.IntN(chance) == 0 {
			out[i] = alphabet[rng.IntN(len(alphabet))]
		}
	}
	return string(out)
}

// Grow ages a fit box and periodically turns fit individuals into yield.
// It returns the yield added this tick and whether the box was fit.
func (e Engine) Grow(b *Box) (int, bool) {
	threshold := e.Catalog.Tuning.BioYieldThreshold
	if len(b.Population) == 0 || FitnessRatio(b.Population, b.PerfectDNA) < threshold {
		return 0, false
	}
	b.Age++
	every := e.Catalog.Tuning.BioTicksPerYield
	if every <= 0 || b.Age%every != 0 {
		return 0, true
	}
	fit := 0
	for _, dna := range b.Population {
		if len(b.PerfectDNA) > 0 && float64(Fitness(dna, b.PerfectDNA))/float64(len(b.PerfectDNA)) >= threshold {
			fit++
		}
	}
	b.Yield += fit
	return fit, true
}
