package memory

import (
	"context"
	"sort"

	"github.com/Farini/SkyNation-sub005/internal/app/ports"
	"github.com/Farini/SkyNation-sub005/internal/domain/station"
)

type StationRepo struct {
	store *Store
}

func NewStationRepo(store *Store) StationRepo {
	return StationRepo{store: store}
}

func (r StationRepo) Get(ctx context.Context, stationID string) (station.Station, error) {
	if t := txFrom(ctx, r.store); t != nil {
		if st, ok := t.station(stationID); ok {
			return st, nil
		}
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	st, ok := r.store.stations[stationID]
	if !ok {
		return station.Station{}, ports.ErrNotFound
	}
	return st.Clone(), nil
}

func (r StationRepo) SaveWithVersion(ctx context.Context, st station.Station, expectedVersion int64) error {
	if t := txFrom(ctx, r.store); t != nil {
		return t.stage(st, expectedVersion)
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if !r.store.checkVersion(st.ID, expectedVersion) {
		return ports.ErrConflict
	}
	r.store.stations[st.ID] = st.Clone()
	return nil
}

func (r StationRepo) ListIDs(ctx context.Context) ([]string, error) {
	seen := map[string]bool{}
	r.store.mu.RLock()
	ids := make([]string, 0, len(r.store.stations))
	for id := range r.store.stations {
		seen[id] = true
		ids = append(ids, id)
	}
	r.store.mu.RUnlock()
	if t := txFrom(ctx, r.store); t != nil {
		for _, id := range t.stagedIDs() {
			if !seen[id] {
				ids = append(ids, id)
			}
		}
	}
	sort.Strings(ids)
	return ids, nil
}
