package station

import (
	"github.com/Farini/SkyNation-sub005/internal/domain/catalog"
	"github.com/Farini/SkyNation-sub005/internal/domain/peripheral"
	"github.com/Farini/SkyNation-sub005/internal/domain/resource"
)

// arena indexes the station's containers by kind for the length of one pass.
// Slices are not resized during a pass so the pointers stay valid.
type arena struct {
	st        *Station
	cat       catalog.Catalog
	skills    SkillModel
	tanks     map[catalog.TankType][]*resource.Tank
	boxes     map[catalog.Ingredient][]*resource.StorageBox
	batteries []*resource.Battery
}

func newArena(st *Station, cat catalog.Catalog, skills SkillModel) *arena {
	a := &arena{
		st:     st,
		cat:    cat,
		skills: skills,
		tanks:  map[catalog.TankType][]*resource.Tank{},
		boxes:  map[catalog.Ingredient][]*resource.StorageBox{},
	}
	for i := range st.Tanks {
		t := &st.Tanks[i]
		a.tanks[t.Type] = append(a.tanks[t.Type], t)
	}
	for i := range st.Boxes {
		b := &st.Boxes[i]
		a.boxes[b.Ingredient] = append(a.boxes[b.Ingredient], b)
	}
	for i := range st.Batteries {
		a.batteries = append(a.batteries, &st.Batteries[i])
	}
	return a
}

func (a *arena) env() peripheral.Env {
	return peripheral.Env{
		Air:       &a.st.Air,
		Tanks:     a.tanks,
		Boxes:     a.boxes,
		Batteries: a.batteries,
	}
}

func (a *arena) fluidTanks(ing catalog.Ingredient) []*resource.Tank {
	t, ok := a.cat.FluidTank(ing)
	if !ok {
		return nil
	}
	return a.tanks[t]
}

// deliver stores produced ingredients and returns what did not fit.
func (a *arena) deliver(ing catalog.Ingredient, n int) int {
	if tanks := a.fluidTanks(ing); tanks != nil {
		return resource.FillAll(tanks, n)
	}
	return resource.FillAll(a.boxes[ing], n)
}

func (a *arena) Available(ing catalog.Ingredient) int {
	return resource.Total(a.boxes[ing]) + resource.Total(a.fluidTanks(ing))
}

// Take draws from storage boxes first and fluid tanks after.
func (a *arena) Take(ing catalog.Ingredient, n int) bool {
	if n < 0 || a.Available(ing) < n {
		return false
	}
	fromBoxes := resource.Total(a.boxes[ing])
	if fromBoxes > n {
		fromBoxes = n
	}
	resource.ConsumeAll(a.boxes[ing], fromBoxes)
	resource.ConsumeAll(a.fluidTanks(ing), n-fromBoxes)
	return true
}

func (a *arena) SkillPoints(sk catalog.Skill) int {
	total := 0
	for _, p := range a.st.People {
		if a.skills.Willing(p) {
			total += a.skills.SkillLevel(p, sk)
		}
	}
	return total
}

// takeFood eats from grown produce before touching food boxes.
func (a *arena) takeFood(n int) bool {
	available := resource.Total(a.boxes[catalog.IngredientFood])
	for _, opt := range catalog.DNAOptions() {
		if spec, ok := a.cat.DNAFor(opt); ok && spec.Output == catalog.OutputFood {
			available += a.st.Produce[opt]
		}
	}
	if available < n {
		return false
	}
	for _, opt := range catalog.DNAOptions() {
		if n == 0 {
			return true
		}
		spec, ok := a.cat.DNAFor(opt)
		if !ok || spec.Output != catalog.OutputFood {
			continue
		}
		take := a.st.Produce[opt]
		if take > n {
			take = n
		}
		if take > 0 {
			a.st.Produce[opt] -= take
			n -= take
		}
	}
	return resource.ConsumeAll(a.boxes[catalog.IngredientFood], n)
}
