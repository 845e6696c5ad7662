package catalog

import (
	"errors"
	"fmt"
)

var ErrInvalidCatalog = errors.New("invalid catalog")

type PeripheralSpec struct {
	EnergyDraw int  `yaml:"energy_draw" json:"energy_draw"`
	Breakable  bool `yaml:"breakable" json:"breakable"`
	// BreakChance is 1-in-N per tick; zero never breaks.
	BreakChance int `yaml:"break_chance" json:"break_chance"`
}

type Scaled struct {
	Base     int `yaml:"base" json:"base"`
	PerLevel int `yaml:"per_level" json:"per_level"`
}

func (s Scaled) At(level int) int {
	if level < 0 {
		level = 0
	}
	return s.Base + s.PerLevel*level
}

type YieldRow struct {
	Ingredient Ingredient `yaml:"ingredient" json:"ingredient"`
	Scaled     `yaml:",inline"`
}

type OutpostSpec struct {
	MaxLevel       int                   `yaml:"max_level" json:"max_level"`
	EnergyBase     int                   `yaml:"energy_base" json:"energy_base"`
	EnergyMult     int                   `yaml:"energy_mult" json:"energy_mult"`
	Yields         []YieldRow            `yaml:"yields" json:"yields"`
	JobIngredients map[Ingredient]Scaled `yaml:"job_ingredients" json:"job_ingredients"`
	JobSkills      map[Skill]Scaled      `yaml:"job_skills" json:"job_skills"`
}

type DNASpec struct {
	Perfect string     `yaml:"perfect" json:"perfect"`
	Output  OutputKind `yaml:"output" json:"output"`
}

// Catalog is the immutable configuration the engine reads. Only keys of the
// closed variant sets may appear in its maps.
type Catalog struct {
	Tanks       map[TankType]int                  `yaml:"tanks" json:"tanks"`
	Boxes       map[Ingredient]int                `yaml:"boxes" json:"boxes"`
	Peripherals map[PeripheralType]PeripheralSpec `yaml:"peripherals" json:"peripherals"`
	Outposts    map[OutpostType]OutpostSpec       `yaml:"outposts" json:"outposts"`
	DNA         map[DNAOption]DNASpec             `yaml:"dna" json:"dna"`
	FluidRoutes map[Ingredient]TankType           `yaml:"fluid_routes" json:"fluid_routes"`
	Tuning      Tuning                            `yaml:"tuning" json:"tuning"`
}

func (c Catalog) TankCapacity(t TankType) int {
	return c.Tanks[t]
}

func (c Catalog) BoxCapacity(i Ingredient) int {
	return c.Boxes[i]
}

func (c Catalog) Peripheral(p PeripheralType) (PeripheralSpec, bool) {
	spec, ok := c.Peripherals[p]
	return spec, ok
}

func (c Catalog) Outpost(o OutpostType) (OutpostSpec, bool) {
	spec, ok := c.Outposts[o]
	return spec, ok
}

func (c Catalog) DNAFor(d DNAOption) (DNASpec, bool) {
	spec, ok := c.DNA[d]
	return spec, ok
}

// FluidTank reports the tank type an ingredient is stored in, if it is a fluid.
func (c Catalog) FluidTank(i Ingredient) (TankType, bool) {
	t, ok := c.FluidRoutes[i]
	return t, ok
}

func (c Catalog) Clone() Catalog {
	out := Catalog{
		Tanks:       make(map[TankType]int, len(c.Tanks)),
		Boxes:       make(map[Ingredient]int, len(c.Boxes)),
		Peripherals: make(map[PeripheralType]PeripheralSpec, len(c.Peripherals)),
		Outposts:    make(map[OutpostType]OutpostSpec, len(c.Outposts)),
		DNA:         make(map[DNAOption]DNASpec, len(c.DNA)),
		FluidRoutes: make(map[Ingredient]TankType, len(c.FluidRoutes)),
		Tuning:      c.Tuning,
	}
	for k, v := range c.Tanks {
		out.Tanks[k] = v
	}
	for k, v := range c.Boxes {
		out.Boxes[k] = v
	}
	for k, v := range c.Peripherals {
		out.Peripherals[k] = v
	}
	for k, v := range c.Outposts {
		spec := v
		spec.Yields = append([]YieldRow(nil), v.Yields...)
		spec.JobIngredients = make(map[Ingredient]Scaled, len(v.JobIngredients))
		for ik, iv := range v.JobIngredients {
			spec.JobIngredients[ik] = iv
		}
		spec.JobSkills = make(map[Skill]Scaled, len(v.JobSkills))
		for sk, sv := range v.JobSkills {
			spec.JobSkills[sk] = sv
		}
		out.Outposts[k] = spec
	}
	for k, v := range c.DNA {
		out.DNA[k] = v
	}
	for k, v := range c.FluidRoutes {
		out.FluidRoutes[k] = v
	}
	return out
}

func (c Catalog) Validate() error {
	if c.Tuning.TickDuration <= 0 {
		return fmt.Errorf("%w: tick duration must be positive", ErrInvalidCatalog)
	}
	if c.Tuning.MaxTicksPerPass <= 0 {
		return fmt.Errorf("%w: max ticks per pass must be positive", ErrInvalidCatalog)
	}
	if c.Tuning.BatteryCapacity <= 0 {
		return fmt.Errorf("%w: battery capacity must be positive", ErrInvalidCatalog)
	}
	if c.Tuning.BioYieldThreshold < 0 || c.Tuning.BioYieldThreshold > 1 {
		return fmt.Errorf("%w: bio yield threshold must be within [0,1]", ErrInvalidCatalog)
	}
	if c.Tuning.BioRoundTicks < 0 {
		return fmt.Errorf("%w: bio round ticks must not be negative", ErrInvalidCatalog)
	}
	for _, t := range tankTypes {
		if c.Tanks[t] <= 0 {
			return fmt.Errorf("%w: tank %s needs a positive capacity", ErrInvalidCatalog, t)
		}
	}
	for k, v := range c.Boxes {
		if !k.Valid() {
			return fmt.Errorf("%w: unknown ingredient %q", ErrInvalidCatalog, k)
		}
		if v < 0 {
			return fmt.Errorf("%w: box %s has negative capacity", ErrInvalidCatalog, k)
		}
	}
	for _, p := range peripheralTypes {
		spec, ok := c.Peripherals[p]
		if !ok {
			return fmt.Errorf("%w: missing peripheral %s", ErrInvalidCatalog, p)
		}
		if spec.EnergyDraw < 0 || spec.BreakChance < 0 {
			return fmt.Errorf("%w: peripheral %s has negative attributes", ErrInvalidCatalog, p)
		}
	}
	for _, o := range outpostTypes {
		spec, ok := c.Outposts[o]
		if !ok {
			return fmt.Errorf("%w: missing outpost %s", ErrInvalidCatalog, o)
		}
		if spec.MaxLevel < 0 {
			return fmt.Errorf("%w: outpost %s has negative max level", ErrInvalidCatalog, o)
		}
		for ing, req := range spec.JobIngredients {
			if req.Base < 0 || req.PerLevel < 0 {
				return fmt.Errorf("%w: outpost %s job ingredient %s must not shrink", ErrInvalidCatalog, o, ing)
			}
		}
		for sk, req := range spec.JobSkills {
			if req.Base < 0 || req.PerLevel < 0 {
				return fmt.Errorf("%w: outpost %s job skill %s must not shrink", ErrInvalidCatalog, o, sk)
			}
		}
	}
	for _, d := range dnaOptions {
		spec, ok := c.DNA[d]
		if !ok || spec.Perfect == "" {
			return fmt.Errorf("%w: dna option %s needs a perfect encoding", ErrInvalidCatalog, d)
		}
	}
	for ing, t := range c.FluidRoutes {
		if !ing.Valid() || !t.Valid() {
			return fmt.Errorf("%w: bad fluid route %s -> %s", ErrInvalidCatalog, ing, t)
		}
	}
	return nil
}
