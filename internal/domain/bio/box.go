package bio

import (
	"github.com/Farini/SkyNation-sub005/internal/domain/catalog"
)

type Mode string

const (
	ModeGrow    Mode = "grow"
	ModeBloom   Mode = "bloom"
	ModeCollect Mode = "collect"
	ModeStore   Mode = "store"
)

func (m Mode) Valid() bool {
	switch m {
	case ModeGrow, ModeBloom, ModeCollect, ModeStore:
		return true
	}
	return false
}

type Box struct {
	ID                string            `json:"id"`
	ModuleID          string            `json:"module_id"`
	Mode              Mode              `json:"mode"`
	Option            catalog.DNAOption `json:"option"`
	PerfectDNA        string            `json:"perfect_dna"`
	Population        []string          `json:"population"`
	PopulationLimit   int               `json:"population_limit"`
	Generations       int               `json:"generations"`
	CurrentGeneration int               `json:"current_generation"`
	// MutationChance is N in a 1-in-N per-character mutation.
	MutationChance int   `json:"mutation_chance"`
	Age            int   `json:"age"`
	Yield          int   `json:"yield"`
	// RoundStartTick is the station tick on which the current round opened.
	RoundStartTick int64 `json:"round_start_tick"`
}

// Restart opens a new accounting round with a fresh generation budget.
func (b *Box) Restart(generations int) {
	if generations < 0 {
		generations = 0
	}
	b.Generations = generations
	b.CurrentGeneration = 0
}

// RoundDue reports whether a blooming box has spent its budget and the round
// opened at least roundTicks ticks before tick. Zero roundTicks never renews.
func (b Box) RoundDue(tick int64, roundTicks int) bool {
	if b.Mode != ModeBloom || roundTicks <= 0 || b.Generations <= 0 {
		return false
	}
	return b.BudgetSpent() && tick-b.RoundStartTick >= int64(roundTicks)
}

// Collect hands over the accumulated yield.
func (b *Box) Collect() int {
	n := b.Yield
	b.Yield = 0
	return n
}

func (b Box) BudgetSpent() bool {
	return b.CurrentGeneration >= b.Generations
}

func Fitness(dna, perfect string) int {
	n := len(dna)
	if len(perfect) < n {
		n = len(perfect)
	}
	score := 0
	for i := 0; i < n; i++ {
		if dna[i] == perfect[i] {
			score++
		}
	}
	return score
}

// FitnessRatio is the mean match ratio of the whole population.
func FitnessRatio(population []string, perfect string) float64 {
	if len(population) == 0 || len(perfect) == 0 {
		return 0
	}
	total := 0
	for _, dna := range population {
		total += Fitness(dna, perfect)
	}
	return float64(total) / float64(len(population)*len(perfect))
}
