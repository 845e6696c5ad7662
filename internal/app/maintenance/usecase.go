// Package maintenance holds the crew actions that change a station between
// accounting passes.
package maintenance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Farini/SkyNation-sub005/internal/app/accounting"
	"github.com/Farini/SkyNation-sub005/internal/app/ports"
	"github.com/Farini/SkyNation-sub005/internal/domain/bio"
	"github.com/Farini/SkyNation-sub005/internal/domain/catalog"
	"github.com/Farini/SkyNation-sub005/internal/domain/peripheral"
	"github.com/Farini/SkyNation-sub005/internal/domain/resource"
	"github.com/Farini/SkyNation-sub005/internal/domain/station"
)

var (
	ErrInvalidRequest = errors.New("invalid maintenance request")
	ErrNotBroken      = errors.New("peripheral is not broken")
)

type UseCase struct {
	TxManager ports.TxManager
	Stations  ports.StationRepository
	Events    ports.EventRepository
	Notifier  ports.Notifier
	Catalog   catalog.Catalog
	// Locks should be the set the accounting use case holds so an action
	// never interleaves with a pass on the same station.
	Locks  *accounting.StationLocks
	Logger *slog.Logger
	Now    func() time.Time
}

func (u UseCase) logger() *slog.Logger {
	if u.Logger != nil {
		return u.Logger
	}
	return slog.Default()
}

func (u UseCase) now() time.Time {
	if u.Now == nil {
		return time.Now().UTC()
	}
	return u.Now().UTC()
}

// RepairPeripheral fixes a broken peripheral.
func (u UseCase) RepairPeripheral(ctx context.Context, req RepairRequest) (Response, error) {
	peripheralID := strings.TrimSpace(req.PeripheralID)
	if peripheralID == "" {
		return Response{}, ErrInvalidRequest
	}
	return u.apply(ctx, req.StationID, func(st *station.Station, now time.Time) (station.Event, error) {
		p, err := findPeripheral(st, peripheralID)
		if err != nil {
			return station.Event{}, err
		}
		if !p.IsBroken {
			return station.Event{}, fmt.Errorf("%w: %s", ErrNotBroken, p.ID)
		}
		p.Repair(now)
		return station.Event{
			Type:    station.EventPeripheralRepaired,
			Message: fmt.Sprintf("%s %s repaired", p.Type, p.ID),
			Payload: map[string]any{"peripheral_id": p.ID, "peripheral_type": string(p.Type)},
		}, nil
	})
}

// InstantScrub pulls a burst of CO2 out of the air with a working scrubber.
func (u UseCase) InstantScrub(ctx context.Context, req ScrubRequest) (ScrubResponse, error) {
	peripheralID := strings.TrimSpace(req.PeripheralID)
	if peripheralID == "" {
		return ScrubResponse{}, ErrInvalidRequest
	}
	scrubbed := 0
	resp, err := u.apply(ctx, req.StationID, func(st *station.Station, now time.Time) (station.Event, error) {
		p, err := findPeripheral(st, peripheralID)
		if err != nil {
			return station.Event{}, err
		}
		var tanks []*resource.Tank
		for i := range st.Tanks {
			if st.Tanks[i].Type == catalog.TankCO2 {
				tanks = append(tanks, &st.Tanks[i])
			}
		}
		n, err := peripheral.NewProcessor(u.Catalog).InstantScrub(p, &st.Air, tanks)
		if err != nil {
			return station.Event{}, err
		}
		scrubbed = n
		return station.Event{
			Type:    station.EventInstantScrub,
			Message: fmt.Sprintf("scrubber %s pulled %d co2", p.ID, n),
			Payload: map[string]any{"peripheral_id": p.ID, "scrubbed": n},
		}, nil
	})
	if err != nil {
		return ScrubResponse{}, err
	}
	return ScrubResponse{Response: resp, Scrubbed: scrubbed}, nil
}

// SetBioMode switches a biobox's mode and optionally opens a new round at the
// station's current tick.
func (u UseCase) SetBioMode(ctx context.Context, req BioModeRequest) (Response, error) {
	boxID := strings.TrimSpace(req.BioBoxID)
	mode := bio.Mode(strings.TrimSpace(req.Mode))
	if boxID == "" || !mode.Valid() || req.Generations < 0 {
		return Response{}, ErrInvalidRequest
	}
	return u.apply(ctx, req.StationID, func(st *station.Station, now time.Time) (station.Event, error) {
		var b *bio.Box
		for i := range st.BioBoxes {
			if st.BioBoxes[i].ID == boxID {
				b = &st.BioBoxes[i]
				break
			}
		}
		if b == nil {
			return station.Event{}, fmt.Errorf("%w: biobox %s", ports.ErrNotFound, boxID)
		}
		from := b.Mode
		b.Mode = mode
		if req.Restart {
			gens := req.Generations
			if gens == 0 {
				gens = b.Generations
			}
			b.Restart(gens)
			b.RoundStartTick = st.TickCount
		}
		return station.Event{
			Type:    station.EventBioModeChanged,
			Message: fmt.Sprintf("biobox %s switched from %s to %s", b.ID, from, mode),
			Payload: map[string]any{
				"biobox_id":   b.ID,
				"from":        string(from),
				"to":          string(mode),
				"restarted":   req.Restart,
				"generations": b.Generations,
			},
		}, nil
	})
}

type mutation func(st *station.Station, now time.Time) (station.Event, error)

// apply loads the station, runs fn on it and saves the result with one event
// in a single transaction.
func (u UseCase) apply(ctx context.Context, stationID string, fn mutation) (Response, error) {
	stationID = strings.TrimSpace(stationID)
	if stationID == "" {
		return Response{}, ErrInvalidRequest
	}
	log := u.logger().With("station", stationID)

	unlock := u.Locks.Lock(stationID)
	defer unlock()

	now := u.now()
	var out Response
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		st, err := u.Stations.Get(txCtx, stationID)
		if err != nil {
			return err
		}
		expected := st.Version
		evt, err := fn(&st, now)
		if err != nil {
			return err
		}
		evt.OccurredAt = now
		evt.Tick = st.TickCount

		st.Version = expected + 1
		st.UpdatedAt = now
		if err := u.Stations.SaveWithVersion(txCtx, st, expected); err != nil {
			return err
		}
		if err := u.Events.Append(txCtx, st.ID, []station.Event{evt}); err != nil {
			return err
		}
		out = Response{Station: st, Event: evt}
		return nil
	})
	if err != nil {
		log.Warn("maintenance rejected", "err", err)
		return Response{}, err
	}
	log.Info("maintenance applied", "event", out.Event.Type, "version", out.Station.Version)
	if u.Notifier != nil {
		if err := u.Notifier.Publish(ctx, stationID, []station.Event{out.Event}); err != nil {
			log.Warn("notify failed", "err", err)
		}
	}
	return out, nil
}

func findPeripheral(st *station.Station, id string) (*peripheral.Peripheral, error) {
	for i := range st.Peripherals {
		if st.Peripherals[i].ID == id {
			return &st.Peripherals[i], nil
		}
	}
	return nil, fmt.Errorf("%w: peripheral %s", ports.ErrNotFound, id)
}
