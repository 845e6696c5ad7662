package memory

import (
	"context"

	"github.com/Farini/SkyNation-sub005/internal/app/ports"
	"github.com/Farini/SkyNation-sub005/internal/domain/station"
)

type EventRepo struct {
	store *Store
}

func NewEventRepo(store *Store) EventRepo {
	return EventRepo{store: store}
}

func (r EventRepo) Append(ctx context.Context, stationID string, events []station.Event) error {
	if len(events) == 0 {
		return nil
	}
	if t := txFrom(ctx, r.store); t != nil {
		t.appendEvents(stationID, events)
		return nil
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.events[stationID] = append(r.store.events[stationID], events...)
	return nil
}

func (r EventRepo) ListByStation(ctx context.Context, stationID string, q ports.EventQuery) ([]station.Event, error) {
	r.store.mu.RLock()
	items := append([]station.Event(nil), r.store.events[stationID]...)
	r.store.mu.RUnlock()
	if t := txFrom(ctx, r.store); t != nil {
		items = append(items, t.stagedEvents(stationID)...)
	}
	if len(items) == 0 {
		return nil, ports.ErrNotFound
	}
	out := make([]station.Event, 0)
	for i := len(items) - 1; i >= 0; i-- {
		if !q.Matches(items[i]) {
			continue
		}
		out = append(out, items[i])
		if q.Limit > 0 && len(out) == q.Limit {
			break
		}
	}
	return out, nil
}
