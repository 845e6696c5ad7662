package accounting

import "sync"

// StationLocks serializes passes per station inside one process. Different
// stations never wait on each other.
type StationLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewStationLocks() *StationLocks {
	return &StationLocks{locks: map[string]*sync.Mutex{}}
}

// Lock blocks until the station is free and returns its unlock func. A nil
// set hands out no-op locks and leaves serialization to the version check.
func (s *StationLocks) Lock(stationID string) func() {
	if s == nil {
		return func() {}
	}
	s.mu.Lock()
	l, ok := s.locks[stationID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[stationID] = l
	}
	s.mu.Unlock()
	l.Lock()
	return l.Unlock
}
