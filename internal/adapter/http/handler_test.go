package httpadapter

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	metricsinmem "github.com/Farini/SkyNation-sub005/internal/adapter/metrics/inmemory"
	"github.com/Farini/SkyNation-sub005/internal/adapter/repo/memory"
	"github.com/Farini/SkyNation-sub005/internal/app/accounting"
	"github.com/Farini/SkyNation-sub005/internal/app/events"
	"github.com/Farini/SkyNation-sub005/internal/app/maintenance"
	"github.com/Farini/SkyNation-sub005/internal/app/stationbuild"
	"github.com/Farini/SkyNation-sub005/internal/app/status"
	"github.com/Farini/SkyNation-sub005/internal/domain/catalog"
	"github.com/Farini/SkyNation-sub005/internal/domain/station"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

var start = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func newHandler(t *testing.T, now time.Time, limiter *StationLimiter) (Handler, *memory.Store) {
	t.Helper()
	cat := catalog.Default()
	store := memory.NewStore()
	st, err := stationbuild.Starter("alpha", 5, start, cat)
	if err != nil {
		t.Fatalf("starter: %v", err)
	}
	store.SeedStation(st)
	stations := memory.NewStationRepo(store)
	eventRepo := memory.NewEventRepo(store)
	clock := func() time.Time { return now }
	locks := accounting.NewStationLocks()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return Handler{
		AccountingUC: accounting.UseCase{
			TxManager:  memory.NewTxManager(store),
			Stations:   stations,
			Events:     eventRepo,
			Metrics:    metricsinmem.NewRecorder(),
			Accountant: station.NewAccountant(cat, nil),
			Locks:      locks,
			Logger:     logger,
			Now:        clock,
		},
		Maintenance: maintenance.UseCase{
			TxManager: memory.NewTxManager(store),
			Stations:  stations,
			Events:    eventRepo,
			Catalog:   cat,
			Locks:     locks,
			Logger:    logger,
			Now:       clock,
		},
		StatusUC: status.UseCase{Stations: stations, TickDuration: cat.Tuning.TickDuration, Now: clock},
		EventsUC: events.UseCase{Events: eventRepo},
		Limiter:  limiter,
		Catalog:  cat,
		KPI:      metricsinmem.NewRecorder(),
	}, store
}

func errorCode(t *testing.T, ctx *app.RequestContext) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(ctx.Response.Body(), &body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body.Error.Code
}

func TestAccount_RunsPass(t *testing.T) {
	h, _ := newHandler(t, start.Add(3*time.Hour), nil)
	ctx := &app.RequestContext{}
	ctx.Request.SetBody([]byte(`{"station_id":"alpha"}`))

	h.account(context.Background(), ctx)

	if got := ctx.Response.StatusCode(); got != consts.StatusOK {
		t.Fatalf("status mismatch: got=%d body=%s", got, ctx.Response.Body())
	}
	var resp accounting.Response
	if err := json.Unmarshal(ctx.Response.Body(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Report.Ticks != 3 || resp.Station.Version != 1 {
		t.Fatalf("unexpected response: ticks=%d version=%d", resp.Report.Ticks, resp.Station.Version)
	}
}

func TestAccount_NonRecursiveDoesOneTick(t *testing.T) {
	h, _ := newHandler(t, start.Add(3*time.Hour), nil)
	ctx := &app.RequestContext{}
	ctx.Request.Header.Set(stationIDHeader, "alpha")
	ctx.Request.SetBody([]byte(`{"recursive":false}`))

	h.account(context.Background(), ctx)

	var resp accounting.Response
	if err := json.Unmarshal(ctx.Response.Body(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Report.Ticks != 1 || !resp.Report.MoreRemaining {
		t.Fatalf("expected one tick with more remaining, got ticks=%d more=%v", resp.Report.Ticks, resp.Report.MoreRemaining)
	}
}

func TestAccount_ErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{name: "invalid json", body: `{`, status: consts.StatusBadRequest, code: "invalid_json"},
		{name: "missing station", body: `{}`, status: consts.StatusBadRequest, code: "bad_request"},
		{name: "unknown station", body: `{"station_id":"ghost"}`, status: consts.StatusNotFound, code: "not_found"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h, _ := newHandler(t, start.Add(time.Hour), nil)
			ctx := &app.RequestContext{}
			ctx.Request.SetBody([]byte(tc.body))
			h.account(context.Background(), ctx)
			if got := ctx.Response.StatusCode(); got != tc.status {
				t.Fatalf("status mismatch: got=%d want=%d", got, tc.status)
			}
			if got := errorCode(t, ctx); got != tc.code {
				t.Fatalf("code mismatch: got=%q want=%q", got, tc.code)
			}
		})
	}
}

func TestAccount_MisconfiguredStation(t *testing.T) {
	h, store := newHandler(t, start.Add(time.Hour), nil)
	st, err := stationbuild.Starter("broken", 1, start, catalog.Default())
	if err != nil {
		t.Fatalf("starter: %v", err)
	}
	st.Tanks[0].Capacity = 1
	store.SeedStation(st)

	ctx := &app.RequestContext{}
	ctx.Request.SetBody([]byte(`{"station_id":"broken"}`))
	h.account(context.Background(), ctx)
	if got := ctx.Response.StatusCode(); got != consts.StatusUnprocessableEntity {
		t.Fatalf("status mismatch: got=%d", got)
	}
	if got := errorCode(t, ctx); got != "station_misconfigured" {
		t.Fatalf("code mismatch: got=%q", got)
	}
}

func TestAccount_RateLimited(t *testing.T) {
	h, _ := newHandler(t, start.Add(time.Hour), NewStationLimiter(0.001, 1))
	for i, want := range []int{consts.StatusOK, consts.StatusTooManyRequests} {
		ctx := &app.RequestContext{}
		ctx.Request.SetBody([]byte(`{"station_id":"alpha"}`))
		h.account(context.Background(), ctx)
		if got := ctx.Response.StatusCode(); got != want {
			t.Fatalf("call %d status mismatch: got=%d want=%d", i, got, want)
		}
	}
}

func TestAccountAll_ReportsEachStation(t *testing.T) {
	h, store := newHandler(t, start.Add(2*time.Hour), nil)
	st, err := stationbuild.Starter("beta", 2, start, catalog.Default())
	if err != nil {
		t.Fatalf("starter: %v", err)
	}
	store.SeedStation(st)

	ctx := &app.RequestContext{}
	h.accountAll(context.Background(), ctx)
	if got := ctx.Response.StatusCode(); got != consts.StatusOK {
		t.Fatalf("status mismatch: got=%d", got)
	}
	var body struct {
		Results []accountAllItem `json:"results"`
	}
	if err := json.Unmarshal(ctx.Response.Body(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Results) != 2 {
		t.Fatalf("results mismatch: got=%d want=2", len(body.Results))
	}
	for _, r := range body.Results {
		if r.Error != nil || r.Report == nil || r.Report.Ticks != 2 {
			t.Fatalf("unexpected result for %s: %+v", r.StationID, r)
		}
	}
}

func TestStatusAndEvents(t *testing.T) {
	h, _ := newHandler(t, start.Add(2*time.Hour+10*time.Minute), nil)

	acct := &app.RequestContext{}
	acct.Request.SetBody([]byte(`{"station_id":"alpha"}`))
	h.account(context.Background(), acct)

	st := &app.RequestContext{}
	st.Request.SetRequestURI("/api/station/status?station_id=alpha")
	h.status(context.Background(), st)
	if got := st.Response.StatusCode(); got != consts.StatusOK {
		t.Fatalf("status code mismatch: got=%d body=%s", got, st.Response.Body())
	}
	var statusResp status.Response
	if err := json.Unmarshal(st.Response.Body(), &statusResp); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if statusResp.DueTicks != 0 || statusResp.Station.TickCount != 2 || statusResp.NextTickInSeconds != 3000 {
		t.Fatalf("unexpected status: due=%d ticks=%d next=%d", statusResp.DueTicks, statusResp.Station.TickCount, statusResp.NextTickInSeconds)
	}

	ev := &app.RequestContext{}
	ev.Request.SetRequestURI("/api/station/events?station_id=alpha&type=accounting_settled")
	h.events(context.Background(), ev)
	if got := ev.Response.StatusCode(); got != consts.StatusOK {
		t.Fatalf("events code mismatch: got=%d body=%s", got, ev.Response.Body())
	}
	var eventsResp events.Response
	if err := json.Unmarshal(ev.Response.Body(), &eventsResp); err != nil {
		t.Fatalf("decode events: %v", err)
	}
	if len(eventsResp.Events) != 1 {
		t.Fatalf("expected one settled event, got %d", len(eventsResp.Events))
	}
}

func TestRepair_FixesBrokenPeripheral(t *testing.T) {
	h, store := newHandler(t, start.Add(time.Hour), nil)
	st, _ := memory.NewStationRepo(store).Get(context.Background(), "alpha")
	target := st.Peripherals[0]
	st.Peripherals[0].IsBroken = true
	store.SeedStation(st)

	ctx := &app.RequestContext{}
	ctx.Request.Header.Set(stationIDHeader, "alpha")
	ctx.Request.SetBody([]byte(`{"peripheral_id":"` + target.ID + `"}`))
	h.repair(context.Background(), ctx)
	if got := ctx.Response.StatusCode(); got != consts.StatusOK {
		t.Fatalf("status mismatch: got=%d body=%s", got, ctx.Response.Body())
	}
	var resp maintenance.Response
	if err := json.Unmarshal(ctx.Response.Body(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Station.Peripherals[0].IsBroken || resp.Event.Type != station.EventPeripheralRepaired {
		t.Fatalf("repair mismatch: broken=%v event=%s", resp.Station.Peripherals[0].IsBroken, resp.Event.Type)
	}

	again := &app.RequestContext{}
	again.Request.SetBody([]byte(`{"station_id":"alpha","peripheral_id":"` + target.ID + `"}`))
	h.repair(context.Background(), again)
	if got := again.Response.StatusCode(); got != consts.StatusConflict || errorCode(t, again) != "invalid_state" {
		t.Fatalf("second repair: status=%d body=%s", got, again.Response.Body())
	}
}

func TestScrub_ErrorMapping(t *testing.T) {
	h, store := newHandler(t, start.Add(time.Hour), nil)
	st, _ := memory.NewStationRepo(store).Get(context.Background(), "alpha")
	var radiator, scrubber string
	for _, p := range st.Peripherals {
		switch p.Type {
		case catalog.PeripheralRadiator:
			radiator = p.ID
		case catalog.PeripheralScrubberCO2:
			scrubber = p.ID
		}
	}
	cases := []struct {
		body string
		want int
	}{
		{`{"station_id":"alpha","peripheral_id":"` + scrubber + `"}`, consts.StatusOK},
		{`{"station_id":"alpha","peripheral_id":"` + radiator + `"}`, consts.StatusBadRequest},
		{`{"station_id":"alpha","peripheral_id":"ghost"}`, consts.StatusNotFound},
		{`{"station_id":"alpha"}`, consts.StatusBadRequest},
		{`{`, consts.StatusBadRequest},
	}
	for _, tc := range cases {
		ctx := &app.RequestContext{}
		ctx.Request.SetBody([]byte(tc.body))
		h.scrub(context.Background(), ctx)
		if got := ctx.Response.StatusCode(); got != tc.want {
			t.Fatalf("%s: status got=%d want=%d body=%s", tc.body, got, tc.want, ctx.Response.Body())
		}
	}
}

func TestBioMode_RestartsRound(t *testing.T) {
	h, store := newHandler(t, start.Add(time.Hour), nil)
	st, _ := memory.NewStationRepo(store).Get(context.Background(), "alpha")
	ctx := &app.RequestContext{}
	ctx.Request.SetBody([]byte(`{"station_id":"alpha","biobox_id":"` + st.BioBoxes[0].ID + `","mode":"bloom","restart":true,"generations":9}`))
	h.bioMode(context.Background(), ctx)
	if got := ctx.Response.StatusCode(); got != consts.StatusOK {
		t.Fatalf("status mismatch: got=%d body=%s", got, ctx.Response.Body())
	}
	got, _ := memory.NewStationRepo(store).Get(context.Background(), "alpha")
	if box := got.BioBoxes[0]; box.Generations != 9 || box.CurrentGeneration != 0 {
		t.Fatalf("round not reopened: %+v", box)
	}

	bad := &app.RequestContext{}
	bad.Request.SetBody([]byte(`{"station_id":"alpha","biobox_id":"x","mode":"dance"}`))
	h.bioMode(context.Background(), bad)
	if code := bad.Response.StatusCode(); code != consts.StatusBadRequest {
		t.Fatalf("bad mode status got=%d want=%d", code, consts.StatusBadRequest)
	}
}

func TestKPI_NotConfigured(t *testing.T) {
	h := Handler{}
	ctx := &app.RequestContext{}
	h.kpi(context.Background(), ctx)
	if got := ctx.Response.StatusCode(); got != consts.StatusNotFound {
		t.Fatalf("status mismatch: got=%d", got)
	}
}

func TestStationLimiter_IsPerStation(t *testing.T) {
	l := NewStationLimiter(0.001, 1)
	if !l.Allow("a") || !l.Allow("b") {
		t.Fatalf("first call per station should pass")
	}
	if l.Allow("a") {
		t.Fatalf("second call for the same station should be limited")
	}
	var nilLimiter *StationLimiter
	if !nilLimiter.Allow("a") {
		t.Fatalf("nil limiter should allow")
	}
}
