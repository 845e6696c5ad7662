package status

import "github.com/Farini/SkyNation-sub005/internal/domain/station"

type Request struct {
	StationID string
}

type Response struct {
	Station           station.Station `json:"station"`
	DueTicks          int64           `json:"due_ticks"`
	NextTickInSeconds int64           `json:"next_tick_in_seconds"`
	RemainingSeconds  int64           `json:"remaining_seconds"`
	Alive             int             `json:"alive"`
	Broken            int             `json:"broken_peripherals"`
	StoredEnergy      int             `json:"stored_energy"`
}
