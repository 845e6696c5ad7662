package peripheral

import (
	"math/rand/v2"
	"time"

	"github.com/Farini/SkyNation-sub005/internal/domain/catalog"
	"github.com/Farini/SkyNation-sub005/internal/domain/resource"
)

type Peripheral struct {
	ID        string                 `json:"id"`
	ModuleID  string                 `json:"module_id"`
	Type      catalog.PeripheralType `json:"type"`
	Level     int                    `json:"level"`
	IsBroken  bool                   `json:"is_broken"`
	PowerOn   bool                   `json:"power_on"`
	LastFixed *time.Time             `json:"last_fixed,omitempty"`
}

func (p *Peripheral) Repair(now time.Time) {
	fixed := now.UTC()
	p.IsBroken = false
	p.LastFixed = &fixed
}

// RollBreak gives a breakable, running peripheral its 1-in-N chance to fail.
func RollBreak(p *Peripheral, rng *rand.Rand, cat catalog.Catalog) bool {
	if p == nil || rng == nil || p.IsBroken || !p.PowerOn {
		return false
	}
	spec, ok := cat.Peripheral(p.Type)
	if !ok || !spec.Breakable || spec.BreakChance <= 0 {
		return false
	}
	if rng.IntN(spec.BreakChance) != 0 {
		return false
	}
	p.IsBroken = true
	return true
}

// Env is the slice of station state a peripheral may touch during a tick.
type Env struct {
	Air       *resource.Air
	Tanks     map[catalog.TankType][]*resource.Tank
	Boxes     map[catalog.Ingredient][]*resource.StorageBox
	Batteries []*resource.Battery
}

func (e Env) tanks(t catalog.TankType) []*resource.Tank {
	return e.Tanks[t]
}

func (e Env) boxes(i catalog.Ingredient) []*resource.StorageBox {
	return e.Boxes[i]
}

func (e Env) Charge() int {
	return resource.Total(e.Batteries)
}
