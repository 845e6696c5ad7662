package memory

import (
	"sync"

	"github.com/Farini/SkyNation-sub005/internal/domain/station"
)

type Store struct {
	mu       sync.RWMutex
	stations map[string]station.Station
	events   map[string][]station.Event
}

func NewStore() *Store {
	return &Store{
		stations: make(map[string]station.Station),
		events:   make(map[string][]station.Event),
	}
}

func (s *Store) SeedStation(st station.Station) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stations[st.ID] = st.Clone()
}

// checkVersion reports whether a save expecting expected may replace the
// stored row. Callers hold mu.
func (s *Store) checkVersion(stationID string, expected int64) bool {
	current, ok := s.stations[stationID]
	if !ok {
		return expected == 0
	}
	return current.Version == expected
}
