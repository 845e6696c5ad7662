package accounting

import "github.com/Farini/SkyNation-sub005/internal/domain/station"

type Request struct {
	StationID string `json:"station_id"`
	Recursive bool   `json:"recursive"`
}

type Response struct {
	Report  station.Report  `json:"report"`
	Station station.Station `json:"station"`
}

// Result is the outcome of one station in a batch run.
type Result struct {
	StationID string
	Response  Response
	Err       error
}
