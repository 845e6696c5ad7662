package station

import (
	"errors"
	"fmt"

	"github.com/Farini/SkyNation-sub005/internal/domain/catalog"
)

var ErrConfiguration = errors.New("station configuration error")

// ConfigError names the station whose graph is inconsistent. It aborts the
// pass for that station only.
type ConfigError struct {
	StationID string
	Detail    string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("station %s: %s", e.StationID, e.Detail)
}

func (e *ConfigError) Unwrap() error {
	return ErrConfiguration
}

func (s Station) configErr(format string, args ...any) error {
	return &ConfigError{StationID: s.ID, Detail: fmt.Sprintf(format, args...)}
}

func (s Station) Validate(cat catalog.Catalog) error {
	if s.ID == "" {
		return s.configErr("missing station id")
	}
	if s.Clock.LastAccounted.IsZero() {
		return s.configErr("accounting clock was never started")
	}
	if s.SolarPanels < 0 {
		return s.configErr("negative solar panel count %d", s.SolarPanels)
	}
	if !s.Air.Within() {
		return s.configErr("air mixture out of range")
	}

	ids := map[string]string{}
	claim := func(kind, id string) error {
		if id == "" {
			return s.configErr("%s without id", kind)
		}
		if prev, ok := ids[id]; ok {
			return s.configErr("duplicate id %q used by %s and %s", id, prev, kind)
		}
		ids[id] = kind
		return nil
	}

	modules := map[string]ModuleKind{}
	for _, m := range s.Modules {
		if err := claim("module", m.ID); err != nil {
			return err
		}
		if !m.Kind.Valid() {
			return s.configErr("module %s has unknown kind %q", m.ID, m.Kind)
		}
		modules[m.ID] = m.Kind
	}
	for _, t := range s.Tanks {
		if err := claim("tank", t.ID); err != nil {
			return err
		}
		if !t.Type.Valid() {
			return s.configErr("tank %s has unknown type %q", t.ID, t.Type)
		}
		if t.Capacity != cat.TankCapacity(t.Type) {
			return s.configErr("tank %s capacity %d does not match %s capacity %d", t.ID, t.Capacity, t.Type, cat.TankCapacity(t.Type))
		}
		if !t.Within() {
			return s.configErr("tank %s amount %d out of range", t.ID, t.Current)
		}
	}
	for _, b := range s.Boxes {
		if err := claim("storage box", b.ID); err != nil {
			return err
		}
		if !b.Ingredient.Valid() {
			return s.configErr("box %s has unknown ingredient %q", b.ID, b.Ingredient)
		}
		if b.Capacity != cat.BoxCapacity(b.Ingredient) {
			return s.configErr("box %s capacity %d does not match %s capacity %d", b.ID, b.Capacity, b.Ingredient, cat.BoxCapacity(b.Ingredient))
		}
		if !b.Within() {
			return s.configErr("box %s amount %d out of range", b.ID, b.Current)
		}
	}
	for _, b := range s.Batteries {
		if err := claim("battery", b.ID); err != nil {
			return err
		}
		if b.Capacity != cat.Tuning.BatteryCapacity {
			return s.configErr("battery %s capacity %d does not match %d", b.ID, b.Capacity, cat.Tuning.BatteryCapacity)
		}
		if !b.Within() {
			return s.configErr("battery %s charge %d out of range", b.ID, b.Current)
		}
	}
	for _, p := range s.Peripherals {
		if err := claim("peripheral", p.ID); err != nil {
			return err
		}
		if !p.Type.Valid() {
			return s.configErr("peripheral %s has unknown type %q", p.ID, p.Type)
		}
		if _, ok := modules[p.ModuleID]; !ok {
			return s.configErr("peripheral %s references missing module %q", p.ID, p.ModuleID)
		}
		if p.Level < 0 {
			return s.configErr("peripheral %s has negative level", p.ID)
		}
	}
	for _, o := range s.Outposts {
		if err := claim("outpost", o.ID); err != nil {
			return err
		}
		spec, ok := cat.Outpost(o.Type)
		if !o.Type.Valid() || !ok {
			return s.configErr("outpost %s has unknown type %q", o.ID, o.Type)
		}
		if o.Level < 0 || o.Level > spec.MaxLevel {
			return s.configErr("outpost %s level %d outside 0..%d", o.ID, o.Level, spec.MaxLevel)
		}
		if o.ProducedTotal < 0 || o.LastMilestone < 0 || o.LastMilestone > o.ProducedTotal {
			return s.configErr("outpost %s production counters inconsistent", o.ID)
		}
	}
	for _, b := range s.BioBoxes {
		if err := claim("biobox", b.ID); err != nil {
			return err
		}
		kind, ok := modules[b.ModuleID]
		if !ok {
			return s.configErr("biobox %s references missing module %q", b.ID, b.ModuleID)
		}
		if kind != ModuleBio {
			return s.configErr("biobox %s sits in %s module %s", b.ID, kind, b.ModuleID)
		}
		if !b.Mode.Valid() {
			return s.configErr("biobox %s has unknown mode %q", b.ID, b.Mode)
		}
		if !b.Option.Valid() {
			return s.configErr("biobox %s has unknown dna option %q", b.ID, b.Option)
		}
		if b.PopulationLimit < 0 || len(b.Population) > b.PopulationLimit {
			return s.configErr("biobox %s population %d exceeds limit %d", b.ID, len(b.Population), b.PopulationLimit)
		}
		for _, dna := range b.Population {
			if len(dna) != len(b.PerfectDNA) {
				return s.configErr("biobox %s holds dna of length %d, want %d", b.ID, len(dna), len(b.PerfectDNA))
			}
		}
		if b.Generations < 0 || b.CurrentGeneration < 0 || b.CurrentGeneration > b.Generations {
			return s.configErr("biobox %s generation %d outside 0..%d", b.ID, b.CurrentGeneration, b.Generations)
		}
		if b.MutationChance < 0 || b.Age < 0 || b.Yield < 0 {
			return s.configErr("biobox %s has negative counters", b.ID)
		}
	}
	for _, p := range s.People {
		if err := claim("person", p.ID); err != nil {
			return err
		}
		if p.Health < 0 || p.Health > MaxHealth {
			return s.configErr("person %s health %d outside 0..%d", p.ID, p.Health, MaxHealth)
		}
		for sk, lvl := range p.Skills {
			if !sk.Valid() {
				return s.configErr("person %s has unknown skill %q", p.ID, sk)
			}
			if lvl < 0 {
				return s.configErr("person %s has negative %s skill", p.ID, sk)
			}
		}
	}
	for opt, n := range s.Produce {
		if !opt.Valid() {
			return s.configErr("produce holds unknown option %q", opt)
		}
		if n < 0 {
			return s.configErr("produce %s is negative", opt)
		}
	}
	return nil
}
