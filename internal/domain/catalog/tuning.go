package catalog

import "time"

const (
	DefaultTickDuration    = time.Hour
	DefaultMaxTicksPerPass = 720

	DefaultTankCapacity = 100
	AirTankCapacity     = 300
	DefaultBoxCapacity  = 20
	WasteBoxCapacity    = 50

	DefaultBatteryCapacity = 100
	SolarOutputPerPanel    = 20

	O2PerPerson    = 2
	CO2PerPerson   = 2
	WaterPerPerson = 1
	FoodPerPerson  = 1

	BioYieldThreshold = 0.75
	BioTicksPerYield  = 4
	BioSeedBias       = 3
	BioRoundTicks     = 24

	ProductionMilestone = 1000

	ScrubberInstantBase     = 5
	ScrubberInstantPerLevel = 2
)

type Tuning struct {
	TickDuration            time.Duration `yaml:"tick_duration" json:"tick_duration"`
	MaxTicksPerPass         int           `yaml:"max_ticks_per_pass" json:"max_ticks_per_pass"`
	BatteryCapacity         int           `yaml:"battery_capacity" json:"battery_capacity"`
	SolarOutputPerPanel     int           `yaml:"solar_output_per_panel" json:"solar_output_per_panel"`
	O2PerPerson             int           `yaml:"o2_per_person" json:"o2_per_person"`
	CO2PerPerson            int           `yaml:"co2_per_person" json:"co2_per_person"`
	WaterPerPerson          int           `yaml:"water_per_person" json:"water_per_person"`
	FoodPerPerson           int           `yaml:"food_per_person" json:"food_per_person"`
	BioYieldThreshold       float64       `yaml:"bio_yield_threshold" json:"bio_yield_threshold"`
	BioTicksPerYield        int           `yaml:"bio_ticks_per_yield" json:"bio_ticks_per_yield"`
	BioSeedBias             int           `yaml:"bio_seed_bias" json:"bio_seed_bias"`
	BioRoundTicks           int           `yaml:"bio_round_ticks" json:"bio_round_ticks"`
	ProductionMilestone     int           `yaml:"production_milestone" json:"production_milestone"`
	ScrubberInstantBase     int           `yaml:"scrubber_instant_base" json:"scrubber_instant_base"`
	ScrubberInstantPerLevel int           `yaml:"scrubber_instant_per_level" json:"scrubber_instant_per_level"`
}

func DefaultTuning() Tuning {
	return Tuning{
		TickDuration:            DefaultTickDuration,
		MaxTicksPerPass:         DefaultMaxTicksPerPass,
		BatteryCapacity:         DefaultBatteryCapacity,
		SolarOutputPerPanel:     SolarOutputPerPanel,
		O2PerPerson:             O2PerPerson,
		CO2PerPerson:            CO2PerPerson,
		WaterPerPerson:          WaterPerPerson,
		FoodPerPerson:           FoodPerPerson,
		BioYieldThreshold:       BioYieldThreshold,
		BioTicksPerYield:        BioTicksPerYield,
		BioSeedBias:             BioSeedBias,
		BioRoundTicks:           BioRoundTicks,
		ProductionMilestone:     ProductionMilestone,
		ScrubberInstantBase:     ScrubberInstantBase,
		ScrubberInstantPerLevel: ScrubberInstantPerLevel,
	}
}
