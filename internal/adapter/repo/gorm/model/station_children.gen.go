package model

import "time"

const (
	TableNameStationModule     = "station_modules"
	TableNameStationTank       = "station_tanks"
	TableNameStationBox        = "station_boxes"
	TableNameStationBattery    = "station_batteries"
	TableNameStationPeripheral = "station_peripherals"
	TableNameStationOutpost    = "station_outposts"
	TableNameStationBiobox     = "station_bioboxes"
	TableNameStationPerson     = "station_people"
	TableNameStationProduce    = "station_produce"
)

type StationModule struct {
	StationID string `gorm:"column:station_id;primaryKey" json:"station_id"`
	ID        string `gorm:"column:id;primaryKey" json:"id"`
	Position  int32  `gorm:"column:position;not null" json:"position"`
	Kind      string `gorm:"column:kind;not null" json:"kind"`
	Name      string `gorm:"column:name;not null" json:"name"`
}

func (*StationModule) TableName() string {
	return TableNameStationModule
}

type StationTank struct {
	StationID string `gorm:"column:station_id;primaryKey" json:"station_id"`
	ID        string `gorm:"column:id;primaryKey" json:"id"`
	Position  int32  `gorm:"column:position;not null" json:"position"`
	Type      string `gorm:"column:type;not null" json:"type"`
	Current   int64  `gorm:"column:current;not null" json:"current"`
	Capacity  int64  `gorm:"column:capacity;not null" json:"capacity"`
}

func (*StationTank) TableName() string {
	return TableNameStationTank
}

type StationBox struct {
	StationID  string `gorm:"column:station_id;primaryKey" json:"station_id"`
	ID         string `gorm:"column:id;primaryKey" json:"id"`
	Position   int32  `gorm:"column:position;not null" json:"position"`
	Ingredient string `gorm:"column:ingredient;not null" json:"ingredient"`
	Current    int64  `gorm:"column:current;not null" json:"current"`
	Capacity   int64  `gorm:"column:capacity;not null" json:"capacity"`
}

func (*StationBox) TableName() string {
	return TableNameStationBox
}

type StationBattery struct {
	StationID string `gorm:"column:station_id;primaryKey" json:"station_id"`
	ID        string `gorm:"column:id;primaryKey" json:"id"`
	Position  int32  `gorm:"column:position;not null" json:"position"`
	Current   int64  `gorm:"column:current;not null" json:"current"`
	Capacity  int64  `gorm:"column:capacity;not null" json:"capacity"`
}

func (*StationBattery) TableName() string {
	return TableNameStationBattery
}

type StationPeripheral struct {
	StationID string     `gorm:"column:station_id;primaryKey" json:"station_id"`
	ID        string     `gorm:"column:id;primaryKey" json:"id"`
	Position  int32      `gorm:"column:position;not null" json:"position"`
	ModuleID  string     `gorm:"column:module_id;not null" json:"module_id"`
	Type      string     `gorm:"column:type;not null" json:"type"`
	Level     int32      `gorm:"column:level;not null" json:"level"`
	IsBroken  bool       `gorm:"column:is_broken;not null" json:"is_broken"`
	PowerOn   bool       `gorm:"column:power_on;not null" json:"power_on"`
	LastFixed *time.Time `gorm:"column:last_fixed" json:"last_fixed"`
}

func (*StationPeripheral) TableName() string {
	return TableNameStationPeripheral
}

type StationOutpost struct {
	StationID     string `gorm:"column:station_id;primaryKey" json:"station_id"`
	ID            string `gorm:"column:id;primaryKey" json:"id"`
	Position      int32  `gorm:"column:position;not null" json:"position"`
	Type          string `gorm:"column:type;not null" json:"type"`
	Level         int32  `gorm:"column:level;not null" json:"level"`
	Posdex        int32  `gorm:"column:posdex;not null" json:"posdex"`
	GuildID       string `gorm:"column:guild_id;not null" json:"guild_id"`
	ProducedTotal int64  `gorm:"column:produced_total;not null" json:"produced_total"`
	LastMilestone int64  `gorm:"column:last_milestone;not null" json:"last_milestone"`
}

func (*StationOutpost) TableName() string {
	return TableNameStationOutpost
}

type StationBiobox struct {
	StationID         string `gorm:"column:station_id;primaryKey" json:"station_id"`
	ID                string `gorm:"column:id;primaryKey" json:"id"`
	Position          int32  `gorm:"column:position;not null" json:"position"`
	ModuleID          string `gorm:"column:module_id;not null" json:"module_id"`
	Mode              string `gorm:"column:mode;not null" json:"mode"`
	DnaOption         string `gorm:"column:dna_option;not null" json:"dna_option"`
	PerfectDna        string `gorm:"column:perfect_dna;not null" json:"perfect_dna"`
	Population        []byte `gorm:"column:population;type:jsonb;not null" json:"population"`
	PopulationLimit   int32  `gorm:"column:population_limit;not null" json:"population_limit"`
	Generations       int32  `gorm:"column:generations;not null" json:"generations"`
	CurrentGeneration int32  `gorm:"column:current_generation;not null" json:"current_generation"`
	MutationChance    int32  `gorm:"column:mutation_chance;not null" json:"mutation_chance"`
	Age               int64  `gorm:"column:age;not null" json:"age"`
	Yield             int64  `gorm:"column:yield;not null" json:"yield"`
	RoundStartTick    int64  `gorm:"column:round_start_tick;not null" json:"round_start_tick"`
}

func (*StationBiobox) TableName() string {
	return TableNameStationBiobox
}

type StationPerson struct {
	StationID string `gorm:"column:station_id;primaryKey" json:"station_id"`
	ID        string `gorm:"column:id;primaryKey" json:"id"`
	Position  int32  `gorm:"column:position;not null" json:"position"`
	Name      string `gorm:"column:name;not null" json:"name"`
	Skills    []byte `gorm:"column:skills;type:jsonb;not null" json:"skills"`
	Busy      bool   `gorm:"column:busy;not null" json:"busy"`
	Health    int32  `gorm:"column:health;not null" json:"health"`
}

func (*StationPerson) TableName() string {
	return TableNameStationPerson
}

type StationProduce struct {
	StationID string `gorm:"column:station_id;primaryKey" json:"station_id"`
	DnaOption string `gorm:"column:dna_option;primaryKey" json:"dna_option"`
	Amount    int64  `gorm:"column:amount;not null" json:"amount"`
}

func (*StationProduce) TableName() string {
	return TableNameStationProduce
}
