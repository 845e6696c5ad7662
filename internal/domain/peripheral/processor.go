package peripheral

import (
	"errors"
	"fmt"

	"github.com/Farini/SkyNation-sub005/internal/domain/catalog"
	"github.com/Farini/SkyNation-sub005/internal/domain/resource"
)

var (
	ErrNotScrubber = errors.New("peripheral is not a co2 scrubber")
	ErrBroken      = errors.New("peripheral is broken")
)

type Status string

const (
	StatusRan     Status = "ran"
	StatusIdle    Status = "idle"
	StatusStarved Status = "starved"
	StatusBroken  Status = "broken"
	StatusOff     Status = "off"
)

type Outcome struct {
	Status Status `json:"status"`
	Note   string `json:"note"`
}

const (
	filterMinDirty  = 5
	filterFixedBand = 10
	filterFixedIn   = 2
	filterFixedOut  = 1
	filterMinBatch  = 2
	vaporPerTick    = 2
	scrubbedPerTick = 2
	electrolysisH2O = 2
	electrolysisH2  = 2
	electrolysisO2  = 1
	methanationCO2  = 1
	methanationH2   = 2
	methanationCH4  = 1
	methanationO2   = 1
)

type Processor struct {
	Catalog catalog.Catalog
}

func NewProcessor(cat catalog.Catalog) Processor {
	return Processor{Catalog: cat}
}

// conversion applies a planned rule once energy has been debited.
type conversion func()

func (pr Processor) Process(p *Peripheral, env Env) Outcome {
	if p.IsBroken {
		return Outcome{Status: StatusBroken, Note: fmt.Sprintf("%s %s is broken", p.Type, p.ID)}
	}
	if !p.PowerOn {
		return Outcome{Status: StatusOff, Note: fmt.Sprintf("%s %s is powered off", p.Type, p.ID)}
	}
	spec, _ := pr.Catalog.Peripheral(p.Type)

	// radiators always have work, so a flat battery starves them
	if p.Type == catalog.PeripheralRadiator {
		if !resource.ConsumeAll(env.Batteries, spec.EnergyDraw) {
			return Outcome{Status: StatusStarved, Note: fmt.Sprintf("radiator %s starved: needs %d energy, has %d", p.ID, spec.EnergyDraw, env.Charge())}
		}
		return Outcome{Status: StatusRan, Note: fmt.Sprintf("radiator %s rejected heat", p.ID)}
	}

	apply, note := pr.plan(p, env)
	if apply == nil {
		return Outcome{Status: StatusIdle, Note: note}
	}
	if !resource.ConsumeAll(env.Batteries, spec.EnergyDraw) {
		return Outcome{Status: StatusStarved, Note: fmt.Sprintf("%s %s starved: needs %d energy, has %d", p.Type, p.ID, spec.EnergyDraw, env.Charge())}
	}
	apply()
	return Outcome{Status: StatusRan, Note: note}
}

func (pr Processor) plan(p *Peripheral, env Env) (conversion, string) {
	switch p.Type {
	case catalog.PeripheralCondensator:
		return planCondensator(p, env)
	case catalog.PeripheralScrubberCO2:
		return planScrubber(p, env)
	case catalog.PeripheralElectrolizer:
		return planElectrolizer(p, env)
	case catalog.PeripheralMethanizer:
		return planMethanizer(p, env)
	case catalog.PeripheralWaterFilter:
		dirty := env.tanks(catalog.TankWasteLiquid)
		clean := env.tanks(catalog.TankH2O)
		return planFilter(p, resource.Total(dirty), resource.HeadroomAll(clean),
			func(n int) { resource.ConsumeAll(dirty, n) },
			func(n int) { resource.FillAll(clean, n) })
	case catalog.PeripheralBioSolidifier:
		dirty := env.boxes(catalog.IngredientWasteSolid)
		clean := env.boxes(catalog.IngredientFertilizer)
		return planFilter(p, resource.Total(dirty), resource.HeadroomAll(clean),
			func(n int) { resource.ConsumeAll(dirty, n) },
			func(n int) { resource.FillAll(clean, n) })
	default:
		return nil, fmt.Sprintf("%s %s has no rule", p.Type, p.ID)
	}
}

func planCondensator(p *Peripheral, env Env) (conversion, string) {
	if env.Air == nil || env.Air.Vapor < vaporPerTick {
		return nil, fmt.Sprintf("condensator %s: not enough vapor", p.ID)
	}
	h2o := env.tanks(catalog.TankH2O)
	if resource.HeadroomAll(h2o) == 0 {
		return nil, fmt.Sprintf("condensator %s: h2o tanks full", p.ID)
	}
	return func() {
		env.Air.Take(resource.GasVapor, vaporPerTick)
		if leftover := resource.FillAll(h2o, vaporPerTick); leftover > 0 {
			env.Air.Add(resource.GasVapor, leftover)
		}
	}, fmt.Sprintf("condensator %s condensed %d vapor", p.ID, vaporPerTick)
}

func planScrubber(p *Peripheral, env Env) (conversion, string) {
	if env.Air == nil || env.Air.CO2 < scrubbedPerTick {
		return nil, fmt.Sprintf("scrubber %s: not enough co2 in air", p.ID)
	}
	co2 := env.tanks(catalog.TankCO2)
	return func() {
		env.Air.Take(resource.GasCO2, scrubbedPerTick)
		// whatever the co2 tanks cannot hold is vented
		resource.FillAll(co2, scrubbedPerTick)
	}, fmt.Sprintf("scrubber %s removed %d co2", p.ID, scrubbedPerTick)
}

func planElectrolizer(p *Peripheral, env Env) (conversion, string) {
	h2o := env.tanks(catalog.TankH2O)
	h2 := env.tanks(catalog.TankH2)
	o2 := env.tanks(catalog.TankO2)
	switch {
	case resource.Total(h2o) < electrolysisH2O:
		return nil, fmt.Sprintf("electrolizer %s: not enough water", p.ID)
	case resource.HeadroomAll(h2) < electrolysisH2 || resource.HeadroomAll(o2) < electrolysisO2:
		return nil, fmt.Sprintf("electrolizer %s: no room for h2/o2", p.ID)
	}
	return func() {
		resource.ConsumeAll(h2o, electrolysisH2O)
		resource.FillAll(h2, electrolysisH2)
		resource.FillAll(o2, electrolysisO2)
	}, fmt.Sprintf("electrolizer %s split %d water", p.ID, electrolysisH2O)
}

func planMethanizer(p *Peripheral, env Env) (conversion, string) {
	co2 := env.tanks(catalog.TankCO2)
	h2 := env.tanks(catalog.TankH2)
	ch4 := env.tanks(catalog.TankCH4)
	o2 := env.tanks(catalog.TankO2)
	switch {
	case resource.Total(co2) < methanationCO2 || resource.Total(h2) < methanationH2:
		return nil, fmt.Sprintf("methanizer %s: not enough co2/h2", p.ID)
	case resource.HeadroomAll(ch4) < methanationCH4 || resource.HeadroomAll(o2) < methanationO2:
		return nil, fmt.Sprintf("methanizer %s: no room for ch4/o2", p.ID)
	}
	return func() {
		resource.ConsumeAll(co2, methanationCO2)
		resource.ConsumeAll(h2, methanationH2)
		resource.FillAll(ch4, methanationCH4)
		resource.FillAll(o2, methanationO2)
	}, fmt.Sprintf("methanizer %s produced %d ch4", p.ID, methanationCH4)
}

// FilterBatch returns how much a filter removes and adds for a dirty amount.
// Below 5 nothing happens, 5 to 10 is a fixed 2 in 1 out step, and above that
// the batch scales with dirt and level, capped by the receiver's headroom.
func FilterBatch(dirty, level, headroom int) (remove, add int) {
	if dirty < filterMinDirty || headroom <= 0 {
		return 0, 0
	}
	if dirty <= filterFixedBand {
		return filterFixedIn, filterFixedOut
	}
	amount := dirty/10 + level + 1
	if amount < filterMinBatch {
		amount = filterMinBatch
	}
	if amount > dirty {
		amount = dirty
	}
	if amount > headroom {
		amount = headroom
	}
	return amount, amount
}

func planFilter(p *Peripheral, dirty, headroom int, remove, add func(int)) (conversion, string) {
	in, out := FilterBatch(dirty, p.Level, headroom)
	if in == 0 {
		if dirty < filterMinDirty {
			return nil, fmt.Sprintf("%s %s: waste below threshold", p.Type, p.ID)
		}
		return nil, fmt.Sprintf("%s %s: receiver full", p.Type, p.ID)
	}
	return func() {
		remove(in)
		add(out)
	}, fmt.Sprintf("%s %s processed %d waste into %d", p.Type, p.ID, in, out)
}

// InstantScrub is the manual large batch of a co2 scrubber, run outside ticking.
// It moves up to base+perLevel*level co2 from the air into co2 tanks.
func (pr Processor) InstantScrub(p *Peripheral, air *resource.Air, tanks []*resource.Tank) (int, error) {
	if p.Type != catalog.PeripheralScrubberCO2 {
		return 0, ErrNotScrubber
	}
	if p.IsBroken {
		return 0, ErrBroken
	}
	amount := pr.Catalog.Tuning.ScrubberInstantBase + pr.Catalog.Tuning.ScrubberInstantPerLevel*p.Level
	if amount > air.CO2 {
		amount = air.CO2
	}
	if room := resource.HeadroomAll(tanks); amount > room {
		amount = room
	}
	if amount <= 0 {
		return 0, nil
	}
	air.Take(resource.GasCO2, amount)
	resource.FillAll(tanks, amount)
	return amount, nil
}
