package ports

import (
	"context"
	"time"

	"github.com/Farini/SkyNation-sub005/internal/domain/station"
)

// SnapshotRecord is one archived station state. Hash chains each record to
// the previous one of the same station.
type SnapshotRecord struct {
	StationID string
	Tick      int64
	TakenAt   time.Time
	Hash      string
	PrevHash  string
	State     station.Station
}

type SnapshotArchive interface {
	Put(ctx context.Context, st station.Station, takenAt time.Time) (SnapshotRecord, error)
	Latest(ctx context.Context, stationID string) (SnapshotRecord, error)
}
