package status

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Farini/SkyNation-sub005/internal/app/ports"
	"github.com/Farini/SkyNation-sub005/internal/domain/catalog"
	"github.com/Farini/SkyNation-sub005/internal/domain/resource"
)

var ErrInvalidRequest = errors.New("invalid status request")

// UseCase reports a station as last saved. It never runs accounting.
type UseCase struct {
	Stations     ports.StationRepository
	TickDuration time.Duration
	Now          func() time.Time
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	stationID := strings.TrimSpace(req.StationID)
	if stationID == "" {
		return Response{}, ErrInvalidRequest
	}
	st, err := u.Stations.Get(ctx, stationID)
	if err != nil {
		return Response{}, err
	}
	tick := u.TickDuration
	if tick <= 0 {
		tick = catalog.DefaultTickDuration
	}
	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	now := nowFn()

	due, remaining := st.Clock.Due(now, tick)
	resp := Response{
		Station:           st,
		DueTicks:          due,
		NextTickInSeconds: int64(st.Clock.NextTickIn(now, tick) / time.Second),
		RemainingSeconds:  int64(remaining / time.Second),
		StoredEnergy:      resource.Total(batteryPtrs(st.Batteries)),
	}
	for _, p := range st.People {
		if p.Alive() {
			resp.Alive++
		}
	}
	for _, p := range st.Peripherals {
		if p.IsBroken {
			resp.Broken++
		}
	}
	return resp, nil
}

func batteryPtrs(items []resource.Battery) []*resource.Battery {
	out := make([]*resource.Battery, len(items))
	for i := range items {
		out[i] = &items[i]
	}
	return out
}
