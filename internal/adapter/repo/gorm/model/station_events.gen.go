package model

import "time"

const TableNameStationEvent = "station_events"

type StationEvent struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement:true" json:"id"`
	StationID  string    `gorm:"column:station_id;not null" json:"station_id"`
	Type       string    `gorm:"column:type;not null" json:"type"`
	Tick       int64     `gorm:"column:tick;not null" json:"tick"`
	Message    string    `gorm:"column:message;not null" json:"message"`
	OccurredAt time.Time `gorm:"column:occurred_at;not null" json:"occurred_at"`
	Payload    []byte    `gorm:"column:payload;type:jsonb" json:"payload"`
}

func (*StationEvent) TableName() string {
	return TableNameStationEvent
}
