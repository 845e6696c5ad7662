package model

import "time"

const TableNameStation = "stations"

type Station struct {
	ID            string    `gorm:"column:id;primaryKey" json:"id"`
	Seed          int64     `gorm:"column:seed;not null" json:"seed"`
	LastAccounted time.Time `gorm:"column:last_accounted;not null" json:"last_accounted"`
	AirVolume     int32     `gorm:"column:air_volume;not null" json:"air_volume"`
	AirO2         int32     `gorm:"column:air_o2;not null" json:"air_o2"`
	AirCo2        int32     `gorm:"column:air_co2;not null" json:"air_co2"`
	AirN2         int32     `gorm:"column:air_n2;not null" json:"air_n2"`
	AirVapor      int32     `gorm:"column:air_vapor;not null" json:"air_vapor"`
	SolarPanels   int32     `gorm:"column:solar_panels;not null" json:"solar_panels"`
	TickCount     int64     `gorm:"column:tick_count;not null" json:"tick_count"`
	Version       int64     `gorm:"column:version;not null" json:"version"`
	UpdatedAt     time.Time `gorm:"column:updated_at;not null;default:now()" json:"updated_at"`
}

func (*Station) TableName() string {
	return TableNameStation
}
