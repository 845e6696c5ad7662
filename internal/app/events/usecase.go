package events

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Farini/SkyNation-sub005/internal/app/ports"
)

var ErrInvalidRequest = errors.New("invalid events request")

const (
	DefaultLimit = 50
	MaxLimit     = 500
)

type UseCase struct {
	Events ports.EventRepository
}

// Execute lists a station's stored events, newest first. Limit falls back to
// DefaultLimit and is capped at MaxLimit. The time window is in unix seconds
// and either bound may be zero.
func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	stationID := strings.TrimSpace(req.StationID)
	if stationID == "" {
		return Response{}, ErrInvalidRequest
	}
	if req.Limit < 0 || (req.OccurredFrom > 0 && req.OccurredTo > 0 && req.OccurredFrom > req.OccurredTo) {
		return Response{}, ErrInvalidRequest
	}
	limit := req.Limit
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	q := ports.EventQuery{Type: strings.TrimSpace(req.Type), Limit: limit}
	if req.OccurredFrom > 0 {
		q.From = time.Unix(req.OccurredFrom, 0)
	}
	if req.OccurredTo > 0 {
		q.To = time.Unix(req.OccurredTo, 0)
	}
	items, err := u.Events.ListByStation(ctx, stationID, q)
	if err != nil {
		return Response{}, err
	}

	counts := map[string]int{}
	for _, evt := range items {
		counts[evt.Type]++
	}
	return Response{Events: items, Counts: counts}, nil
}
