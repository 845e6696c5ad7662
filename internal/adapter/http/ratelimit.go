package httpadapter

import (
	"sync"

	"golang.org/x/time/rate"
)

// StationLimiter throttles accounting requests per station.
type StationLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	limit    rate.Limit
	burst    int
}

func NewStationLimiter(perSecond float64, burst int) *StationLimiter {
	return &StationLimiter{
		limiters: make(map[string]*rate.Limiter),
		limit:    rate.Limit(perSecond),
		burst:    burst,
	}
}

// Allow reports whether stationID may run now. A nil limiter allows all.
func (l *StationLimiter) Allow(stationID string) bool {
	if l == nil {
		return true
	}
	l.mu.Lock()
	limiter, ok := l.limiters[stationID]
	if !ok {
		limiter = rate.NewLimiter(l.limit, l.burst)
		l.limiters[stationID] = limiter
	}
	l.mu.Unlock()
	return limiter.Allow()
}
