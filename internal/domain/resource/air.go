package resource

type Gas string

const (
	GasO2    Gas = "o2"
	GasCO2   Gas = "co2"
	GasN2    Gas = "n2"
	GasVapor Gas = "vapor"
)

// Air is the station atmosphere. Volume bounds the sum of all gases.
type Air struct {
	Volume int `json:"volume"`
	O2     int `json:"o2"`
	CO2    int `json:"co2"`
	N2     int `json:"n2"`
	Vapor  int `json:"vapor"`
}

func (a *Air) slot(g Gas) *int {
	switch g {
	case GasO2:
		return &a.O2
	case GasCO2:
		return &a.CO2
	case GasN2:
		return &a.N2
	case GasVapor:
		return &a.Vapor
	default:
		return nil
	}
}

func (a Air) Amount(g Gas) int {
	p := a.slot(g)
	if p == nil {
		return 0
	}
	return *p
}

func (a Air) Total() int {
	return a.O2 + a.CO2 + a.N2 + a.Vapor
}

// Take removes n of gas g, or nothing if there is not enough.
func (a *Air) Take(g Gas, n int) bool {
	p := a.slot(g)
	if p == nil || n < 0 || *p < n {
		return false
	}
	*p -= n
	return true
}

// Add mixes n of gas g into the air and returns what exceeded the volume.
func (a *Air) Add(g Gas, n int) int {
	p := a.slot(g)
	if p == nil || n <= 0 {
		return 0
	}
	accepted := n
	if a.Volume > 0 {
		room := a.Volume - a.Total()
		if room < 0 {
			room = 0
		}
		if accepted > room {
			accepted = room
		}
	}
	*p += accepted
	return n - accepted
}

func (a Air) Within() bool {
	if a.O2 < 0 || a.CO2 < 0 || a.N2 < 0 || a.Vapor < 0 {
		return false
	}
	return a.Volume <= 0 || a.Total() <= a.Volume
}
