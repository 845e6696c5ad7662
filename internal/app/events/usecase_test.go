package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Farini/SkyNation-sub005/internal/app/ports"
	"github.com/Farini/SkyNation-sub005/internal/domain/station"
)

var base = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func sampleEvents() []station.Event {
	return []station.Event{
		{Type: station.EventAccountingSettled, OccurredAt: base.Add(3 * time.Hour), Tick: 3},
		{Type: station.EventOutpostLevelUp, OccurredAt: base.Add(2 * time.Hour), Tick: 2},
		{Type: station.EventBioYield, OccurredAt: base.Add(time.Hour), Tick: 1},
	}
}

func TestUseCase_ListsEvents(t *testing.T) {
	repo := &eventsRepo{items: sampleEvents()}
	uc := UseCase{Events: repo}
	resp, err := uc.Execute(context.Background(), Request{StationID: "st-1"})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if len(resp.Events) != 3 {
		t.Fatalf("events mismatch: got=%d want=3", len(resp.Events))
	}
	if repo.got.Limit != DefaultLimit {
		t.Fatalf("limit mismatch: got=%d want=%d", repo.got.Limit, DefaultLimit)
	}
	if resp.Counts[station.EventOutpostLevelUp] != 1 {
		t.Fatalf("counts mismatch: %+v", resp.Counts)
	}
}

func TestUseCase_FiltersByWindowAndType(t *testing.T) {
	uc := UseCase{Events: &eventsRepo{items: sampleEvents()}}
	resp, err := uc.Execute(context.Background(), Request{
		StationID:    "st-1",
		OccurredFrom: base.Add(90 * time.Minute).Unix(),
	})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if len(resp.Events) != 2 {
		t.Fatalf("window filter mismatch: got=%d want=2", len(resp.Events))
	}

	resp, err = uc.Execute(context.Background(), Request{StationID: "st-1", Type: station.EventBioYield})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if len(resp.Events) != 1 || resp.Events[0].Tick != 1 {
		t.Fatalf("type filter mismatch: %+v", resp.Events)
	}
}

func TestUseCase_TypeFilterAppliesBeforeLimit(t *testing.T) {
	var items []station.Event
	for i := 0; i < 2*DefaultLimit; i++ {
		items = append(items, station.Event{Type: station.EventAccountingSettled, OccurredAt: base.Add(time.Duration(1000-i) * time.Hour)})
	}
	items = append(items, station.Event{Type: station.EventBioYield, OccurredAt: base, Tick: 7})
	repo := &eventsRepo{items: items}
	uc := UseCase{Events: repo}
	resp, err := uc.Execute(context.Background(), Request{StationID: "st-1", Type: " " + station.EventBioYield + " "})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if repo.got.Type != station.EventBioYield {
		t.Fatalf("type not handed to the repository: %+v", repo.got)
	}
	if len(resp.Events) != 1 || resp.Events[0].Tick != 7 {
		t.Fatalf("old matching event lost behind the limit: %+v", resp.Events)
	}
}

func TestUseCase_CapsLimit(t *testing.T) {
	repo := &eventsRepo{}
	uc := UseCase{Events: repo}
	if _, err := uc.Execute(context.Background(), Request{StationID: "st-1", Limit: 10_000}); err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if repo.got.Limit != MaxLimit {
		t.Fatalf("limit mismatch: got=%d want=%d", repo.got.Limit, MaxLimit)
	}
}

func TestUseCase_RejectsBadRequests(t *testing.T) {
	uc := UseCase{Events: &eventsRepo{}}
	cases := []Request{
		{},
		{StationID: "st-1", Limit: -1},
		{StationID: "st-1", OccurredFrom: 10, OccurredTo: 5},
	}
	for _, req := range cases {
		if _, err := uc.Execute(context.Background(), req); !errors.Is(err, ErrInvalidRequest) {
			t.Fatalf("expected ErrInvalidRequest for %+v, got %v", req, err)
		}
	}
}

func TestUseCase_PropagatesNotFound(t *testing.T) {
	uc := UseCase{Events: &eventsRepo{err: ports.ErrNotFound}}
	if _, err := uc.Execute(context.Background(), Request{StationID: "st-1"}); !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

type eventsRepo struct {
	items []station.Event
	err   error
	got   ports.EventQuery
}

func (r *eventsRepo) Append(_ context.Context, _ string, _ []station.Event) error {
	return nil
}

func (r *eventsRepo) ListByStation(_ context.Context, _ string, q ports.EventQuery) ([]station.Event, error) {
	r.got = q
	if r.err != nil {
		return nil, r.err
	}
	var out []station.Event
	for _, evt := range r.items {
		if !q.Matches(evt) {
			continue
		}
		out = append(out, evt)
		if q.Limit > 0 && len(out) == q.Limit {
			break
		}
	}
	return out, nil
}

var _ ports.EventRepository = (*eventsRepo)(nil)
