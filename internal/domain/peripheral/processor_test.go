package peripheral

import (
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/Farini/SkyNation-sub005/internal/domain/catalog"
	"github.com/Farini/SkyNation-sub005/internal/domain/resource"
)

func tank(id string, t catalog.TankType, capacity, current int) *resource.Tank {
	return &resource.Tank{ID: id, Type: t, Level: resource.Level{Capacity: capacity, Current: current}}
}

func box(id string, ing catalog.Ingredient, capacity, current int) *resource.StorageBox {
	return &resource.StorageBox{ID: id, Ingredient: ing, Level: resource.Level{Capacity: capacity, Current: current}}
}

func charged(n int) []*resource.Battery {
	return []*resource.Battery{{ID: "bat", Level: resource.Level{Capacity: 100, Current: n}}}
}

func running(t catalog.PeripheralType, level int) *Peripheral {
	return &Peripheral{ID: "p1", ModuleID: "m1", Type: t, Level: level, PowerOn: true}
}

func TestWaterFilterFixedBand(t *testing.T) {
	dirty := tank("w", catalog.TankWasteLiquid, 100, 8)
	clean := tank("c", catalog.TankH2O, 100, 0)
	env := Env{
		Tanks:     map[catalog.TankType][]*resource.Tank{catalog.TankWasteLiquid: {dirty}, catalog.TankH2O: {clean}},
		Batteries: charged(50),
	}
	out := NewProcessor(catalog.Default()).Process(running(catalog.PeripheralWaterFilter, 0), env)
	if out.Status != StatusRan {
		t.Fatalf("expected ran, got %s (%s)", out.Status, out.Note)
	}
	if dirty.Current != 6 || clean.Current != 1 {
		t.Fatalf("fixed band mismatch: dirty=%d clean=%d want dirty=6 clean=1", dirty.Current, clean.Current)
	}
}

func TestWaterFilterScaledBatch(t *testing.T) {
	dirty := tank("w", catalog.TankWasteLiquid, 100, 40)
	clean := tank("c", catalog.TankH2O, 100, 0)
	env := Env{
		Tanks:     map[catalog.TankType][]*resource.Tank{catalog.TankWasteLiquid: {dirty}, catalog.TankH2O: {clean}},
		Batteries: charged(50),
	}
	NewProcessor(catalog.Default()).Process(running(catalog.PeripheralWaterFilter, 2), env)
	if dirty.Current != 33 || clean.Current != 7 {
		t.Fatalf("scaled batch mismatch: dirty=%d clean=%d want dirty=33 clean=7", dirty.Current, clean.Current)
	}
}

func TestFilterBatchBoundaries(t *testing.T) {
	cases := []struct {
		dirty, level, headroom int
		wantIn, wantOut        int
	}{
		{dirty: 4, level: 0, headroom: 100, wantIn: 0, wantOut: 0},
		{dirty: 5, level: 0, headroom: 100, wantIn: 2, wantOut: 1},
		{dirty: 10, level: 3, headroom: 100, wantIn: 2, wantOut: 1},
		{dirty: 10, level: 0, headroom: 0, wantIn: 0, wantOut: 0},
		{dirty: 11, level: 0, headroom: 100, wantIn: 2, wantOut: 2},
		{dirty: 40, level: 2, headroom: 100, wantIn: 7, wantOut: 7},
		{dirty: 40, level: 2, headroom: 3, wantIn: 3, wantOut: 3},
		{dirty: 90, level: 1, headroom: 100, wantIn: 11, wantOut: 11},
	}
	for _, tc := range cases {
		in, out := FilterBatch(tc.dirty, tc.level, tc.headroom)
		if in != tc.wantIn || out != tc.wantOut {
			t.Fatalf("batch(dirty=%d level=%d room=%d): got=%d/%d want=%d/%d",
				tc.dirty, tc.level, tc.headroom, in, out, tc.wantIn, tc.wantOut)
		}
	}
}

func TestBioSolidifierTurnsWasteIntoFertilizer(t *testing.T) {
	waste := box("ws", catalog.IngredientWasteSolid, 50, 20)
	fert := box("f", catalog.IngredientFertilizer, 50, 0)
	env := Env{
		Boxes:     map[catalog.Ingredient][]*resource.StorageBox{catalog.IngredientWasteSolid: {waste}, catalog.IngredientFertilizer: {fert}},
		Batteries: charged(10),
	}
	NewProcessor(catalog.Default()).Process(running(catalog.PeripheralBioSolidifier, 0), env)
	if waste.Current != 17 || fert.Current != 3 {
		t.Fatalf("solidifier mismatch: waste=%d fertilizer=%d want 17/3", waste.Current, fert.Current)
	}
}

func TestStarvedPeripheralDoesNotConvert(t *testing.T) {
	h2o := tank("h2o", catalog.TankH2O, 100, 10)
	h2 := tank("h2", catalog.TankH2, 100, 0)
	o2 := tank("o2", catalog.TankO2, 100, 0)
	env := Env{
		Tanks:     map[catalog.TankType][]*resource.Tank{catalog.TankH2O: {h2o}, catalog.TankH2: {h2}, catalog.TankO2: {o2}},
		Batteries: charged(1),
	}
	out := NewProcessor(catalog.Default()).Process(running(catalog.PeripheralElectrolizer, 0), env)
	if out.Status != StatusStarved {
		t.Fatalf("expected starved, got %s", out.Status)
	}
	if h2o.Current != 10 || h2.Current != 0 || o2.Current != 0 || env.Charge() != 1 {
		t.Fatalf("starved peripheral mutated state: h2o=%d h2=%d o2=%d charge=%d", h2o.Current, h2.Current, o2.Current, env.Charge())
	}
}

func TestElectrolizerSplitsWater(t *testing.T) {
	h2o := tank("h2o", catalog.TankH2O, 100, 10)
	h2 := tank("h2", catalog.TankH2, 100, 0)
	o2 := tank("o2", catalog.TankO2, 100, 0)
	env := Env{
		Tanks:     map[catalog.TankType][]*resource.Tank{catalog.TankH2O: {h2o}, catalog.TankH2: {h2}, catalog.TankO2: {o2}},
		Batteries: charged(20),
	}
	out := NewProcessor(catalog.Default()).Process(running(catalog.PeripheralElectrolizer, 0), env)
	if out.Status != StatusRan {
		t.Fatalf("expected ran, got %s (%s)", out.Status, out.Note)
	}
	if h2o.Current != 8 || h2.Current != 2 || o2.Current != 1 {
		t.Fatalf("electrolysis mismatch: h2o=%d h2=%d o2=%d", h2o.Current, h2.Current, o2.Current)
	}
	if got, want := env.Charge(), 15; got != want {
		t.Fatalf("energy debit mismatch: got=%d want=%d", got, want)
	}
}

func TestElectrolizerNeedsHeadroom(t *testing.T) {
	env := Env{
		Tanks: map[catalog.TankType][]*resource.Tank{
			catalog.TankH2O: {tank("h2o", catalog.TankH2O, 100, 10)},
			catalog.TankH2:  {tank("h2", catalog.TankH2, 100, 99)},
			catalog.TankO2:  {tank("o2", catalog.TankO2, 100, 0)},
		},
		Batteries: charged(20),
	}
	out := NewProcessor(catalog.Default()).Process(running(catalog.PeripheralElectrolizer, 0), env)
	if out.Status != StatusIdle || env.Charge() != 20 {
		t.Fatalf("expected idle without energy debit, got %s charge=%d", out.Status, env.Charge())
	}
}

func TestMethanizer(t *testing.T) {
	co2 := tank("co2", catalog.TankCO2, 100, 3)
	h2 := tank("h2", catalog.TankH2, 100, 4)
	ch4 := tank("ch4", catalog.TankCH4, 100, 0)
	o2 := tank("o2", catalog.TankO2, 100, 0)
	env := Env{
		Tanks: map[catalog.TankType][]*resource.Tank{
			catalog.TankCO2: {co2}, catalog.TankH2: {h2}, catalog.TankCH4: {ch4}, catalog.TankO2: {o2},
		},
		Batteries: charged(20),
	}
	NewProcessor(catalog.Default()).Process(running(catalog.PeripheralMethanizer, 0), env)
	if co2.Current != 2 || h2.Current != 2 || ch4.Current != 1 || o2.Current != 1 {
		t.Fatalf("methanation mismatch: co2=%d h2=%d ch4=%d o2=%d", co2.Current, h2.Current, ch4.Current, o2.Current)
	}
}

func TestCondensatorReturnsLeftoverVapor(t *testing.T) {
	air := &resource.Air{Volume: 100, Vapor: 5}
	h2o := tank("h2o", catalog.TankH2O, 10, 9)
	env := Env{
		Air:       air,
		Tanks:     map[catalog.TankType][]*resource.Tank{catalog.TankH2O: {h2o}},
		Batteries: charged(10),
	}
	NewProcessor(catalog.Default()).Process(running(catalog.PeripheralCondensator, 0), env)
	if h2o.Current != 10 || air.Vapor != 4 {
		t.Fatalf("condensator mismatch: h2o=%d vapor=%d want 10/4", h2o.Current, air.Vapor)
	}
}

func TestScrubberVentsWhatTanksCannotHold(t *testing.T) {
	air := &resource.Air{Volume: 100, CO2: 6}
	co2 := tank("co2", catalog.TankCO2, 10, 10)
	env := Env{
		Air:       air,
		Tanks:     map[catalog.TankType][]*resource.Tank{catalog.TankCO2: {co2}},
		Batteries: charged(10),
	}
	out := NewProcessor(catalog.Default()).Process(running(catalog.PeripheralScrubberCO2, 0), env)
	if out.Status != StatusRan || air.CO2 != 4 || co2.Current != 10 {
		t.Fatalf("scrubber mismatch: status=%s air=%d tank=%d", out.Status, air.CO2, co2.Current)
	}
}

func TestBrokenAndOffAreSkipped(t *testing.T) {
	pr := NewProcessor(catalog.Default())
	broken := running(catalog.PeripheralRadiator, 0)
	broken.IsBroken = true
	if out := pr.Process(broken, Env{Batteries: charged(10)}); out.Status != StatusBroken {
		t.Fatalf("expected broken, got %s", out.Status)
	}
	off := running(catalog.PeripheralRadiator, 0)
	off.PowerOn = false
	if out := pr.Process(off, Env{Batteries: charged(10)}); out.Status != StatusOff {
		t.Fatalf("expected off, got %s", out.Status)
	}
}

func TestRadiatorWithoutChargeStarves(t *testing.T) {
	pr := NewProcessor(catalog.Default())
	out := pr.Process(running(catalog.PeripheralRadiator, 0), Env{})
	if out.Status != StatusStarved {
		t.Fatalf("status got=%s want=%s", out.Status, StatusStarved)
	}
	batteries := charged(10)
	if out := pr.Process(running(catalog.PeripheralRadiator, 0), Env{Batteries: batteries}); out.Status != StatusRan {
		t.Fatalf("charged radiator status got=%s want=%s", out.Status, StatusRan)
	}
}

func TestRollBreakAndRepair(t *testing.T) {
	cat := catalog.Default()
	spec := cat.Peripherals[catalog.PeripheralElectrolizer]
	spec.BreakChance = 1
	cat.Peripherals[catalog.PeripheralElectrolizer] = spec

	rng := rand.New(rand.NewPCG(1, 2))
	p := running(catalog.PeripheralElectrolizer, 0)
	if !RollBreak(p, rng, cat) || !p.IsBroken {
		t.Fatalf("expected certain break")
	}
	if RollBreak(p, rng, cat) {
		t.Fatalf("already broken peripheral should not break again")
	}
	radiator := running(catalog.PeripheralRadiator, 0)
	for i := 0; i < 100; i++ {
		if RollBreak(radiator, rng, cat) {
			t.Fatalf("radiator is not breakable")
		}
	}

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	p.Repair(now)
	if p.IsBroken || p.LastFixed == nil || !p.LastFixed.Equal(now) {
		t.Fatalf("repair did not reset peripheral: %+v", p)
	}
}

func TestInstantScrub(t *testing.T) {
	pr := NewProcessor(catalog.Default())
	air := &resource.Air{Volume: 100, CO2: 20}
	tanks := []*resource.Tank{tank("co2", catalog.TankCO2, 100, 0)}
	moved, err := pr.InstantScrub(running(catalog.PeripheralScrubberCO2, 2), air, tanks)
	if err != nil {
		t.Fatalf("instant scrub: %v", err)
	}
	if moved != 9 || air.CO2 != 11 || tanks[0].Current != 9 {
		t.Fatalf("instant scrub mismatch: moved=%d air=%d tank=%d", moved, air.CO2, tanks[0].Current)
	}
	if _, err := pr.InstantScrub(running(catalog.PeripheralRadiator, 0), air, tanks); !errors.Is(err, ErrNotScrubber) {
		t.Fatalf("expected ErrNotScrubber, got %v", err)
	}
}
