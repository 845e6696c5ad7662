package events

import "github.com/Farini/SkyNation-sub005/internal/domain/station"

type Request struct {
	StationID    string
	Limit        int
	Type         string
	OccurredFrom int64
	OccurredTo   int64
}

type Response struct {
	Events []station.Event `json:"events"`
	// Counts tallies the returned events by type.
	Counts map[string]int `json:"counts"`
}
