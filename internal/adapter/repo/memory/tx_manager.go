package memory

import (
	"context"
	"sync"

	"github.com/Farini/SkyNation-sub005/internal/app/ports"
	"github.com/Farini/SkyNation-sub005/internal/domain/station"
)

type TxManager struct {
	store *Store
}

func NewTxManager(store *Store) TxManager {
	return TxManager{store: store}
}

type txKey struct{}

type stagedSave struct {
	st       station.Station
	expected int64
}

// tx buffers writes until commit. The store lock is only taken for single
// reads and for the commit itself, so transactions on different stations run
// side by side and version checks settle races on the same one.
type tx struct {
	store *Store

	mu       sync.Mutex
	saves    map[string]stagedSave
	events   map[string][]station.Event
	appended []string
}

func txFrom(ctx context.Context, store *Store) *tx {
	t, ok := ctx.Value(txKey{}).(*tx)
	if !ok || t.store != store {
		return nil
	}
	return t
}

// RunInTx applies every write made through ctx when fn succeeds and drops
// them all when it fails. A stale version at commit time fails with
// ports.ErrConflict and nothing is applied.
func (t TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if txFrom(ctx, t.store) != nil {
		return fn(ctx)
	}
	current := &tx{
		store:  t.store,
		saves:  make(map[string]stagedSave),
		events: make(map[string][]station.Event),
	}
	if err := fn(context.WithValue(ctx, txKey{}, current)); err != nil {
		return err
	}
	return current.commit()
}

func (t *tx) commit() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := t.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, save := range t.saves {
		if !s.checkVersion(id, save.expected) {
			return ports.ErrConflict
		}
	}
	for id, save := range t.saves {
		s.stations[id] = save.st
	}
	for _, id := range t.appended {
		s.events[id] = append(s.events[id], t.events[id]...)
	}
	return nil
}

func (t *tx) station(stationID string) (station.Station, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	save, ok := t.saves[stationID]
	if !ok {
		return station.Station{}, false
	}
	return save.st.Clone(), true
}

// stage records a save. The first save of a station keeps the version it was
// read at; later saves in the same transaction check against the staged row.
func (t *tx) stage(st station.Station, expected int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if prev, ok := t.saves[st.ID]; ok {
		if prev.st.Version != expected {
			return ports.ErrConflict
		}
		t.saves[st.ID] = stagedSave{st: st.Clone(), expected: prev.expected}
		return nil
	}
	t.store.mu.RLock()
	ok := t.store.checkVersion(st.ID, expected)
	t.store.mu.RUnlock()
	if !ok {
		return ports.ErrConflict
	}
	t.saves[st.ID] = stagedSave{st: st.Clone(), expected: expected}
	return nil
}

func (t *tx) appendEvents(stationID string, events []station.Event) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.events[stationID]; !ok {
		t.appended = append(t.appended, stationID)
	}
	t.events[stationID] = append(t.events[stationID], events...)
}

func (t *tx) stagedEvents(stationID string) []station.Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]station.Event(nil), t.events[stationID]...)
}

func (t *tx) stagedIDs() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	ids := make([]string, 0, len(t.saves))
	for id := range t.saves {
		ids = append(ids, id)
	}
	return ids
}
