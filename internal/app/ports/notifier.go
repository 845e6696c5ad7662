package ports

import (
	"context"

	"github.com/Farini/SkyNation-sub005/internal/domain/station"
)

type Notifier interface {
	Publish(ctx context.Context, stationID string, events []station.Event) error
}
