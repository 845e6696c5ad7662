package ports

import (
	"context"
	"time"

	"github.com/Farini/SkyNation-sub005/internal/domain/station"
)

type StationRepository interface {
	Get(ctx context.Context, stationID string) (station.Station, error)
	// SaveWithVersion inserts when expectedVersion is 0 and otherwise updates
	// only if the stored version still equals expectedVersion.
	SaveWithVersion(ctx context.Context, st station.Station, expectedVersion int64) error
	ListIDs(ctx context.Context) ([]string, error)
}

// EventQuery narrows ListByStation. Zero fields match everything and a zero
// Limit returns every match. From and To are inclusive.
type EventQuery struct {
	Type  string
	From  time.Time
	To    time.Time
	Limit int
}

func (q EventQuery) Matches(e station.Event) bool {
	if q.Type != "" && e.Type != q.Type {
		return false
	}
	if !q.From.IsZero() && e.OccurredAt.Before(q.From) {
		return false
	}
	if !q.To.IsZero() && e.OccurredAt.After(q.To) {
		return false
	}
	return true
}

type EventRepository interface {
	Append(ctx context.Context, stationID string, events []station.Event) error
	// ListByStation returns matching events newest first. It fails with
	// ErrNotFound only when the station has no events at all.
	ListByStation(ctx context.Context, stationID string, q EventQuery) ([]station.Event, error)
}
