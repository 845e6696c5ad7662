package stationbuild

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Farini/SkyNation-sub005/internal/domain/bio"
	"github.com/Farini/SkyNation-sub005/internal/domain/catalog"
	"github.com/Farini/SkyNation-sub005/internal/domain/outpost"
	"github.com/Farini/SkyNation-sub005/internal/domain/peripheral"
	"github.com/Farini/SkyNation-sub005/internal/domain/resource"
	"github.com/Farini/SkyNation-sub005/internal/domain/station"
)

const (
	starterAirVolume  = 1000
	starterBatteries  = 2
	starterPanels     = 4
	starterPopulation = 8
	starterGens       = 12
	starterMutation   = 20
)

var starterCrew = []struct {
	name   string
	skills map[catalog.Skill]int
}{
	{name: "Ada", skills: map[catalog.Skill]int{catalog.SkillMechanic: 2, catalog.SkillElectric: 1}},
	{name: "Bo", skills: map[catalog.Skill]int{catalog.SkillBiologic: 2, catalog.SkillMedic: 1}},
	{name: "Cy", skills: map[catalog.Skill]int{catalog.SkillDatacenter: 1, catalog.SkillSystemOS: 1}},
}

// Starter builds a fresh station whose accounting clock starts at now.
// Entity ids derive from the station id, so the same inputs build the same
// station. An empty id gets a random one.
func Starter(id string, seed uint64, now time.Time, cat catalog.Catalog) (station.Station, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		id = uuid.NewString()
	}
	ids := idMaker(id)
	st := station.Station{
		ID:          id,
		Seed:        seed,
		Clock:       station.NewClock(now),
		Air:         resource.Air{Volume: starterAirVolume, O2: 210, N2: 700, CO2: 4, Vapor: 20},
		SolarPanels: starterPanels,
		Produce:     map[catalog.DNAOption]int{},
		UpdatedAt:   now.UTC(),
	}

	hab := station.Module{ID: ids("module", "hab"), Kind: station.ModuleHab, Name: "Habitat"}
	lab := station.Module{ID: ids("module", "lab"), Kind: station.ModuleLab, Name: "Laboratory"}
	greenhouse := station.Module{ID: ids("module", "bio"), Kind: station.ModuleBio, Name: "Greenhouse"}
	st.Modules = []station.Module{hab, lab, greenhouse}

	for _, tt := range catalog.TankTypes() {
		st.Tanks = append(st.Tanks, resource.NewTank(ids("tank", string(tt)), tt, cat, cat.TankCapacity(tt)/2))
	}
	for _, ing := range catalog.Ingredients() {
		prefill := cat.BoxCapacity(ing) / 2
		if ing == catalog.IngredientWasteSolid {
			prefill = 0
		}
		st.Boxes = append(st.Boxes, resource.NewStorageBox(ids("box", string(ing)), ing, cat, prefill))
	}
	for i := 0; i < starterBatteries; i++ {
		st.Batteries = append(st.Batteries, resource.NewBattery(ids("battery", fmt.Sprint(i)), cat, cat.Tuning.BatteryCapacity))
	}
	for _, pt := range catalog.PeripheralTypes() {
		st.Peripherals = append(st.Peripherals, peripheral.Peripheral{
			ID:       ids("peripheral", string(pt)),
			ModuleID: hab.ID,
			Type:     pt,
			Level:    1,
			PowerOn:  true,
		})
	}
	for i, ot := range catalog.OutpostTypes() {
		st.Outposts = append(st.Outposts, outpost.Outpost{
			ID:     ids("outpost", string(ot)),
			Type:   ot,
			Posdex: outpost.Posdex(i + 1),
		})
	}

	box := bio.Box{
		ID:             ids("biobox", string(catalog.DNATomato)),
		ModuleID:       greenhouse.ID,
		Mode:           bio.ModeBloom,
		Generations:    starterGens,
		MutationChance: starterMutation,
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x5eed))
	if err := bio.NewEngine(cat).Populate(&box, catalog.DNATomato, starterPopulation, rng); err != nil {
		return station.Station{}, err
	}
	st.BioBoxes = []bio.Box{box}

	for _, c := range starterCrew {
		skills := make(map[catalog.Skill]int, len(c.skills))
		for k, v := range c.skills {
			skills[k] = v
		}
		st.People = append(st.People, station.Person{
			ID:     ids("person", c.name),
			Name:   c.name,
			Skills: skills,
			Health: station.MaxHealth,
		})
	}

	if err := st.Validate(cat); err != nil {
		return station.Station{}, err
	}
	return st, nil
}

func idMaker(stationID string) func(kind, name string) string {
	return func(kind, name string) string {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(stationID+"/"+kind+"/"+name)).String()
	}
}
