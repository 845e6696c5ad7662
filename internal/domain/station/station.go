package station

import (
	"time"

	"github.com/Farini/SkyNation-sub005/internal/domain/bio"
	"github.com/Farini/SkyNation-sub005/internal/domain/catalog"
	"github.com/Farini/SkyNation-sub005/internal/domain/outpost"
	"github.com/Farini/SkyNation-sub005/internal/domain/peripheral"
	"github.com/Farini/SkyNation-sub005/internal/domain/resource"
)

type ModuleKind string

const (
	ModuleHab ModuleKind = "hab"
	ModuleLab ModuleKind = "lab"
	ModuleBio ModuleKind = "bio"
)

func (k ModuleKind) Valid() bool {
	switch k {
	case ModuleHab, ModuleLab, ModuleBio:
		return true
	}
	return false
}

type Module struct {
	ID   string     `json:"id"`
	Kind ModuleKind `json:"kind"`
	Name string     `json:"name,omitempty"`
}

type Person struct {
	ID     string                `json:"id"`
	Name   string                `json:"name"`
	Skills map[catalog.Skill]int `json:"skills"`
	Busy   bool                  `json:"busy"`
	Health int                   `json:"health"`
}

const MaxHealth = 100

func (p Person) Alive() bool {
	return p.Health > 0
}

// Station is the arena every accounting pass works on. Entities reference
// each other by ID only.
type Station struct {
	ID          string                    `json:"id"`
	Seed        uint64                    `json:"seed"`
	Clock       Clock                     `json:"clock"`
	Air         resource.Air              `json:"air"`
	Tanks       []resource.Tank           `json:"tanks"`
	Boxes       []resource.StorageBox     `json:"boxes"`
	Batteries   []resource.Battery        `json:"batteries"`
	Modules     []Module                  `json:"modules"`
	Peripherals []peripheral.Peripheral   `json:"peripherals"`
	Outposts    []outpost.Outpost         `json:"outposts"`
	BioBoxes    []bio.Box                 `json:"bio_boxes"`
	People      []Person                  `json:"people"`
	SolarPanels int                       `json:"solar_panels"`
	Produce     map[catalog.DNAOption]int `json:"produce"`
	TickCount   int64                     `json:"tick_count"`
	Version     int64                     `json:"version"`
	UpdatedAt   time.Time                 `json:"updated_at"`
}

func (s Station) Module(id string) (Module, bool) {
	for _, m := range s.Modules {
		if m.ID == id {
			return m, true
		}
	}
	return Module{}, false
}

func (s *Station) Peripheral(id string) (*peripheral.Peripheral, bool) {
	for i := range s.Peripherals {
		if s.Peripherals[i].ID == id {
			return &s.Peripherals[i], true
		}
	}
	return nil, false
}

func (s *Station) BioBox(id string) (*bio.Box, bool) {
	for i := range s.BioBoxes {
		if s.BioBoxes[i].ID == id {
			return &s.BioBoxes[i], true
		}
	}
	return nil, false
}

// Clone returns a deep copy so a pass can run on a private graph.
func (s Station) Clone() Station {
	out := s
	out.Tanks = append([]resource.Tank(nil), s.Tanks...)
	out.Boxes = append([]resource.StorageBox(nil), s.Boxes...)
	out.Batteries = append([]resource.Battery(nil), s.Batteries...)
	out.Modules = append([]Module(nil), s.Modules...)
	out.Peripherals = make([]peripheral.Peripheral, len(s.Peripherals))
	for i, p := range s.Peripherals {
		if p.LastFixed != nil {
			fixed := *p.LastFixed
			p.LastFixed = &fixed
		}
		out.Peripherals[i] = p
	}
	out.Outposts = append([]outpost.Outpost(nil), s.Outposts...)
	out.BioBoxes = make([]bio.Box, len(s.BioBoxes))
	for i, b := range s.BioBoxes {
		b.Population = append([]string(nil), b.Population...)
		out.BioBoxes[i] = b
	}
	out.People = make([]Person, len(s.People))
	for i, p := range s.People {
		skills := make(map[catalog.Skill]int, len(p.Skills))
		for k, v := range p.Skills {
			skills[k] = v
		}
		p.Skills = skills
		out.People[i] = p
	}
	out.Produce = make(map[catalog.DNAOption]int, len(s.Produce))
	for k, v := range s.Produce {
		out.Produce[k] = v
	}
	return out
}
