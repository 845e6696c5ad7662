package bio

import (
	"errors"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/Farini/SkyNation-sub005/internal/domain/catalog"
)

func newRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func bloomingBox(t *testing.T, e Engine, size, generations int) *Box {
	t.Helper()
	b := &Box{ID: "bb", ModuleID: "bio", Mode: ModeBloom, MutationChance: 20}
	if err := e.Populate(b, catalog.DNATomato, size, newRNG(11)); err != nil {
		t.Fatalf("populate: %v", err)
	}
	b.Restart(generations)
	return b
}

func TestPopulateShapesPopulation(t *testing.T) {
	e := NewEngine(catalog.Default())
	b := &Box{}
	if err := e.Populate(b, catalog.DNAPenicillin, 12, newRNG(3)); err != nil {
		t.Fatalf("populate: %v", err)
	}
	if len(b.Population) != 12 || b.PopulationLimit != 12 {
		t.Fatalf("population size mismatch: got=%d want=12", len(b.Population))
	}
	for _, dna := range b.Population {
		if len(dna) != len(b.PerfectDNA) {
			t.Fatalf("dna length mismatch: got=%d want=%d", len(dna), len(b.PerfectDNA))
		}
		for i := 0; i < len(dna); i++ {
			if dna[i] < 'A' || dna[i] > 'Z' {
				t.Fatalf("dna outside A-Z: %q", dna)
			}
		}
	}
	if err := e.Populate(b, catalog.DNAOption("apple"), 4, newRNG(3)); !errors.Is(err, ErrUnknownOption) {
		t.Fatalf("expected ErrUnknownOption, got %v", err)
	}
	if err := e.Populate(b, catalog.DNATomato, 0, newRNG(3)); !errors.Is(err, ErrEmptyPopulation) {
		t.Fatalf("expected ErrEmptyPopulation, got %v", err)
	}
}

func TestFitness(t *testing.T) {
	if got := Fitness("TOMXTO", "TOMATO"); got != 5 {
		t.Fatalf("fitness mismatch: got=%d want=5", got)
	}
	if got := Fitness("TOM", "TOMATO"); got != 3 {
		t.Fatalf("short dna fitness mismatch: got=%d want=3", got)
	}
}

func TestAdvanceKeepsSizeAndBoundsGenerations(t *testing.T) {
	e := NewEngine(catalog.Default())
	b := bloomingBox(t, e, 10, 25)
	rng := newRNG(5)
	advanced := 0
	for i := 0; i < 40; i++ {
		if e.Advance(b, rng) {
			advanced++
		}
		if len(b.Population) != 10 {
			t.Fatalf("population size changed: got=%d want=10", len(b.Population))
		}
		if b.CurrentGeneration > b.Generations {
			t.Fatalf("generation overran budget: %d > %d", b.CurrentGeneration, b.Generations)
		}
	}
	if advanced != 25 || b.CurrentGeneration != 25 {
		t.Fatalf("advance count mismatch: advanced=%d current=%d", advanced, b.CurrentGeneration)
	}
}

func TestAdvanceNeverLosesBestIndividual(t *testing.T) {
	e := NewEngine(catalog.Default())
	b := bloomingBox(t, e, 8, 50)
	rng := newRNG(9)
	best := 0
	for _, dna := range b.Population {
		best = max(best, Fitness(dna, b.PerfectDNA))
	}
	for e.Advance(b, rng) {
		top := 0
		for _, dna := range b.Population {
			top = max(top, Fitness(dna, b.PerfectDNA))
		}
		if top < best {
			t.Fatalf("elitism broken: best fell from %d to %d", best, top)
		}
		best = top
	}
}

func TestAdvanceIsDeterministic(t *testing.T) {
	e := NewEngine(catalog.Default())
	a := bloomingBox(t, e, 6, 10)
	b := bloomingBox(t, e, 6, 10)
	ra, rb := newRNG(42), newRNG(42)
	for e.Advance(a, ra) {
		e.Advance(b, rb)
	}
	if !slices.Equal(a.Population, b.Population) {
		t.Fatalf("same seed diverged:\n%v\n%v", a.Population, b.Population)
	}
}

func TestAdvanceEdgeCasesLeavePopulationUnchanged(t *testing.T) {
	e := NewEngine(catalog.Default())

	empty := &Box{Mode: ModeBloom, MutationChance: 10, Generations: 5}
	if e.Advance(empty, newRNG(1)) || empty.CurrentGeneration != 0 {
		t.Fatalf("empty population should not advance")
	}

	noMutation := bloomingBox(t, e, 4, 5)
	noMutation.MutationChance = 0
	before := slices.Clone(noMutation.Population)
	if e.Advance(noMutation, newRNG(1)) {
		t.Fatalf("zero mutation chance should not advance")
	}
	if !slices.Equal(before, noMutation.Population) || noMutation.CurrentGeneration != 0 {
		t.Fatalf("zero mutation chance changed the population")
	}

	growing := bloomingBox(t, e, 4, 5)
	growing.Mode = ModeGrow
	if e.Advance(growing, newRNG(1)) {
		t.Fatalf("only bloom mode evolves")
	}
}

func TestRestartOpensNewRound(t *testing.T) {
	e := NewEngine(catalog.Default())
	b := bloomingBox(t, e, 4, 2)
	rng := newRNG(2)
	for e.Advance(b, rng) {
	}
	if !b.BudgetSpent() {
		t.Fatalf("expected budget spent")
	}
	b.Restart(3)
	if b.CurrentGeneration != 0 || b.Generations != 3 || !e.Advance(b, rng) {
		t.Fatalf("restart did not open a new round: %+v", b)
	}
}

func TestRoundDue(t *testing.T) {
	spent := Box{Mode: ModeBloom, Generations: 3, CurrentGeneration: 3, RoundStartTick: 10}
	cases := []struct {
		name  string
		box   Box
		tick  int64
		round int
		want  bool
	}{
		{"spent and elapsed", spent, 34, 24, true},
		{"spent but early", spent, 33, 24, false},
		{"budget left", Box{Mode: ModeBloom, Generations: 3, CurrentGeneration: 1}, 100, 24, false},
		{"not blooming", Box{Mode: ModeGrow, Generations: 3, CurrentGeneration: 3}, 100, 24, false},
		{"rounds disabled", spent, 100, 0, false},
		{"no budget", Box{Mode: ModeBloom}, 100, 24, false},
	}
	for _, tc := range cases {
		if got := tc.box.RoundDue(tc.tick, tc.round); got != tc.want {
			t.Fatalf("%s: got=%v want=%v", tc.name, got, tc.want)
		}
	}
}

func TestGrowYieldsWhenFit(t *testing.T) {
	e := NewEngine(catalog.Default())
	b := &Box{
		ID:         "g",
		Mode:       ModeGrow,
		Option:     catalog.DNATomato,
		PerfectDNA: "TOMATO",
		Population: []string{"TOMATO", "TOMATX", "TOMAXX", "XXXXXX"},
	}
	// mean ratio (6+5+4+0)/24 = 0.625
	if _, fit := e.Grow(b); fit {
		t.Fatalf("expected unfit box")
	}
	b.Population[3] = "TOMATO"
	total := 0
	for i := 0; i < 8; i++ {
		n, fit := e.Grow(b)
		if !fit {
			t.Fatalf("expected fit box at tick %d", i)
		}
		total += n
	}
	// two yield ticks, each counting TOMATO, TOMATX, TOMATO
	if total != 6 || b.Yield != 6 || b.Age != 8 {
		t.Fatalf("grow mismatch: total=%d yield=%d age=%d", total, b.Yield, b.Age)
	}
}

func TestStepCollectsYield(t *testing.T) {
	e := NewEngine(catalog.Default())
	b := &Box{ID: "c", Mode: ModeCollect, Option: catalog.DNAPotato, Yield: 5}
	res := e.Step(b, newRNG(1))
	if res.Collected != 5 || b.Yield != 0 {
		t.Fatalf("collect mismatch: collected=%d yield=%d", res.Collected, b.Yield)
	}
	stored := &Box{ID: "s", Mode: ModeStore, Yield: 3}
	if res := e.Step(stored, newRNG(1)); res.Collected != 0 || stored.Yield != 3 {
		t.Fatalf("store mode must stay dormant")
	}
}

func TestStepReportsGenerationComplete(t *testing.T) {
	e := NewEngine(catalog.Default())
	b := bloomingBox(t, e, 4, 1)
	res := e.Step(b, newRNG(4))
	if !res.Advanced || !res.GenerationComplete {
		t.Fatalf("expected last generation to complete the round: %+v", res)
	}
	if res := e.Step(b, newRNG(4)); res.Advanced {
		t.Fatalf("spent budget should not advance")
	}
}
