package gormrepo

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Farini/SkyNation-sub005/internal/adapter/repo/gorm/model"
	"github.com/Farini/SkyNation-sub005/internal/domain/bio"
	"github.com/Farini/SkyNation-sub005/internal/domain/catalog"
	"github.com/Farini/SkyNation-sub005/internal/domain/outpost"
	"github.com/Farini/SkyNation-sub005/internal/domain/peripheral"
	"github.com/Farini/SkyNation-sub005/internal/domain/resource"
	"github.com/Farini/SkyNation-sub005/internal/domain/station"
)

type stationRows struct {
	modules     []model.StationModule
	tanks       []model.StationTank
	boxes       []model.StationBox
	batteries   []model.StationBattery
	peripherals []model.StationPeripheral
	outposts    []model.StationOutpost
	bioboxes    []model.StationBiobox
	people      []model.StationPerson
	produce     []model.StationProduce
}

func toRows(st station.Station) (model.Station, stationRows, error) {
	root := model.Station{
		ID:            st.ID,
		Seed:          int64(st.Seed),
		LastAccounted: st.Clock.LastAccounted.UTC(),
		AirVolume:     int32(st.Air.Volume),
		AirO2:         int32(st.Air.O2),
		AirCo2:        int32(st.Air.CO2),
		AirN2:         int32(st.Air.N2),
		AirVapor:      int32(st.Air.Vapor),
		SolarPanels:   int32(st.SolarPanels),
		TickCount:     st.TickCount,
		Version:       st.Version,
		UpdatedAt:     st.UpdatedAt.UTC(),
	}
	var rows stationRows
	for i, m := range st.Modules {
		rows.modules = append(rows.modules, model.StationModule{
			StationID: st.ID, ID: m.ID, Position: int32(i), Kind: string(m.Kind), Name: m.Name,
		})
	}
	for i, t := range st.Tanks {
		rows.tanks = append(rows.tanks, model.StationTank{
			StationID: st.ID, ID: t.ID, Position: int32(i), Type: string(t.Type),
			Current: int64(t.Current), Capacity: int64(t.Capacity),
		})
	}
	for i, b := range st.Boxes {
		rows.boxes = append(rows.boxes, model.StationBox{
			StationID: st.ID, ID: b.ID, Position: int32(i), Ingredient: string(b.Ingredient),
			Current: int64(b.Current), Capacity: int64(b.Capacity),
		})
	}
	for i, b := range st.Batteries {
		rows.batteries = append(rows.batteries, model.StationBattery{
			StationID: st.ID, ID: b.ID, Position: int32(i),
			Current: int64(b.Current), Capacity: int64(b.Capacity),
		})
	}
	for i, p := range st.Peripherals {
		rows.peripherals = append(rows.peripherals, model.StationPeripheral{
			StationID: st.ID, ID: p.ID, Position: int32(i), ModuleID: p.ModuleID, Type: string(p.Type),
			Level: int32(p.Level), IsBroken: p.IsBroken, PowerOn: p.PowerOn, LastFixed: p.LastFixed,
		})
	}
	for i, o := range st.Outposts {
		rows.outposts = append(rows.outposts, model.StationOutpost{
			StationID: st.ID, ID: o.ID, Position: int32(i), Type: string(o.Type), Level: int32(o.Level),
			Posdex: int32(o.Posdex), GuildID: o.GuildID,
			ProducedTotal: int64(o.ProducedTotal), LastMilestone: int64(o.LastMilestone),
		})
	}
	for i, b := range st.BioBoxes {
		population := b.Population
		if population == nil {
			population = []string{}
		}
		pop, err := marshalJSON(population)
		if err != nil {
			return model.Station{}, stationRows{}, err
		}
		rows.bioboxes = append(rows.bioboxes, model.StationBiobox{
			StationID: st.ID, ID: b.ID, Position: int32(i), ModuleID: b.ModuleID, Mode: string(b.Mode),
			DnaOption: string(b.Option), PerfectDna: b.PerfectDNA, Population: pop,
			PopulationLimit: int32(b.PopulationLimit), Generations: int32(b.Generations),
			CurrentGeneration: int32(b.CurrentGeneration), MutationChance: int32(b.MutationChance),
			Age: int64(b.Age), Yield: int64(b.Yield), RoundStartTick: b.RoundStartTick,
		})
	}
	for i, p := range st.People {
		skills := p.Skills
		if skills == nil {
			skills = map[catalog.Skill]int{}
		}
		raw, err := marshalJSON(skills)
		if err != nil {
			return model.Station{}, stationRows{}, err
		}
		rows.people = append(rows.people, model.StationPerson{
			StationID: st.ID, ID: p.ID, Position: int32(i), Name: p.Name,
			Skills: raw, Busy: p.Busy, Health: int32(p.Health),
		})
	}
	for opt, n := range st.Produce {
		rows.produce = append(rows.produce, model.StationProduce{
			StationID: st.ID, DnaOption: string(opt), Amount: int64(n),
		})
	}
	return root, rows, nil
}

func fromRows(root model.Station, rows stationRows) (station.Station, error) {
	st := station.Station{
		ID:    root.ID,
		Seed:  uint64(root.Seed),
		Clock: station.NewClock(root.LastAccounted),
		Air: resource.Air{
			Volume: int(root.AirVolume),
			O2:     int(root.AirO2),
			CO2:    int(root.AirCo2),
			N2:     int(root.AirN2),
			Vapor:  int(root.AirVapor),
		},
		SolarPanels: int(root.SolarPanels),
		TickCount:   root.TickCount,
		Version:     root.Version,
		UpdatedAt:   root.UpdatedAt.UTC(),
		Produce:     make(map[catalog.DNAOption]int, len(rows.produce)),
	}
	for _, m := range rows.modules {
		st.Modules = append(st.Modules, station.Module{ID: m.ID, Kind: station.ModuleKind(m.Kind), Name: m.Name})
	}
	for _, t := range rows.tanks {
		st.Tanks = append(st.Tanks, resource.Tank{
			ID: t.ID, Type: catalog.TankType(t.Type),
			Level: resource.Level{Current: int(t.Current), Capacity: int(t.Capacity)},
		})
	}
	for _, b := range rows.boxes {
		st.Boxes = append(st.Boxes, resource.StorageBox{
			ID: b.ID, Ingredient: catalog.Ingredient(b.Ingredient),
			Level: resource.Level{Current: int(b.Current), Capacity: int(b.Capacity)},
		})
	}
	for _, b := range rows.batteries {
		st.Batteries = append(st.Batteries, resource.Battery{
			ID:    b.ID,
			Level: resource.Level{Current: int(b.Current), Capacity: int(b.Capacity)},
		})
	}
	for _, p := range rows.peripherals {
		var fixed *time.Time
		if p.LastFixed != nil {
			t := p.LastFixed.UTC()
			fixed = &t
		}
		st.Peripherals = append(st.Peripherals, peripheral.Peripheral{
			ID: p.ID, ModuleID: p.ModuleID, Type: catalog.PeripheralType(p.Type), Level: int(p.Level),
			IsBroken: p.IsBroken, PowerOn: p.PowerOn, LastFixed: fixed,
		})
	}
	for _, o := range rows.outposts {
		st.Outposts = append(st.Outposts, outpost.Outpost{
			ID: o.ID, Type: catalog.OutpostType(o.Type), Level: int(o.Level), Posdex: outpost.Posdex(o.Posdex),
			GuildID: o.GuildID, ProducedTotal: int(o.ProducedTotal), LastMilestone: int(o.LastMilestone),
		})
	}
	for _, b := range rows.bioboxes {
		var population []string
		if err := json.Unmarshal(b.Population, &population); err != nil {
			return station.Station{}, fmt.Errorf("decode population of biobox %s: %w", b.ID, err)
		}
		st.BioBoxes = append(st.BioBoxes, bio.Box{
			ID: b.ID, ModuleID: b.ModuleID, Mode: bio.Mode(b.Mode), Option: catalog.DNAOption(b.DnaOption),
			PerfectDNA: b.PerfectDna, Population: population, PopulationLimit: int(b.PopulationLimit),
			Generations: int(b.Generations), CurrentGeneration: int(b.CurrentGeneration),
			MutationChance: int(b.MutationChance), Age: int(b.Age), Yield: int(b.Yield),
			RoundStartTick: b.RoundStartTick,
		})
	}
	for _, p := range rows.people {
		skills := map[catalog.Skill]int{}
		if len(p.Skills) > 0 {
			if err := json.Unmarshal(p.Skills, &skills); err != nil {
				return station.Station{}, fmt.Errorf("decode skills of person %s: %w", p.ID, err)
			}
		}
		st.People = append(st.People, station.Person{
			ID: p.ID, Name: p.Name, Skills: skills, Busy: p.Busy, Health: int(p.Health),
		})
	}
	for _, p := range rows.produce {
		st.Produce[catalog.DNAOption(p.DnaOption)] = int(p.Amount)
	}
	return st, nil
}
