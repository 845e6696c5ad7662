package maintenance

import "github.com/Farini/SkyNation-sub005/internal/domain/station"

type RepairRequest struct {
	StationID    string `json:"station_id"`
	PeripheralID string `json:"peripheral_id"`
}

type ScrubRequest struct {
	StationID    string `json:"station_id"`
	PeripheralID string `json:"peripheral_id"`
}

// BioModeRequest switches a biobox. Restart opens a fresh round; Generations
// of zero keeps the box's current budget.
type BioModeRequest struct {
	StationID   string `json:"station_id"`
	BioBoxID    string `json:"biobox_id"`
	Mode        string `json:"mode"`
	Restart     bool   `json:"restart"`
	Generations int    `json:"generations"`
}

type Response struct {
	Station station.Station `json:"station"`
	Event   station.Event   `json:"event"`
}

type ScrubResponse struct {
	Response
	Scrubbed int `json:"scrubbed"`
}
