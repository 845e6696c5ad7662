package station

import (
	"fmt"
	"strings"

	"github.com/Farini/SkyNation-sub005/internal/domain/catalog"
	"github.com/Farini/SkyNation-sub005/internal/domain/resource"
)

// breathe gives one person a tick of life support and returns the needs that
// went unmet.
func (a *arena) breathe(p *Person) []string {
	tune := a.cat.Tuning
	var unmet []string

	if !a.st.Air.Take(resource.GasO2, tune.O2PerPerson) &&
		!resource.ConsumeAll(a.tanks[catalog.TankO2], tune.O2PerPerson) {
		unmet = append(unmet, "oxygen")
	} else {
		a.st.Air.Add(resource.GasCO2, tune.CO2PerPerson)
	}

	if resource.ConsumeAll(a.tanks[catalog.TankH2O], tune.WaterPerPerson) {
		resource.FillAll(a.tanks[catalog.TankWasteLiquid], tune.WaterPerPerson)
	} else {
		unmet = append(unmet, "water")
	}

	if a.takeFood(tune.FoodPerPerson) {
		resource.FillAll(a.boxes[catalog.IngredientWasteSolid], tune.FoodPerPerson)
	} else {
		unmet = append(unmet, "food")
	}

	if len(unmet) > 0 && p.Health > 0 {
		p.Health--
	}
	return unmet
}

func (a *arena) lifeSupport(book *logbook) int {
	starved := 0
	for i := range a.st.People {
		p := &a.st.People[i]
		if !p.Alive() {
			continue
		}
		if unmet := a.breathe(p); len(unmet) > 0 {
			starved++
			book.add(fmt.Sprintf("%s went without %s", p.Name, strings.Join(unmet, ", ")))
		}
	}
	return starved
}
