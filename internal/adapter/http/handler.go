package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/Farini/SkyNation-sub005/internal/app/accounting"
	"github.com/Farini/SkyNation-sub005/internal/app/events"
	"github.com/Farini/SkyNation-sub005/internal/app/maintenance"
	"github.com/Farini/SkyNation-sub005/internal/app/ports"
	"github.com/Farini/SkyNation-sub005/internal/app/status"
	"github.com/Farini/SkyNation-sub005/internal/domain/catalog"
	"github.com/Farini/SkyNation-sub005/internal/domain/peripheral"
	"github.com/Farini/SkyNation-sub005/internal/domain/station"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

const stationIDHeader = "X-Station-ID"

type Handler struct {
	AccountingUC accounting.UseCase
	StatusUC     status.UseCase
	EventsUC     events.UseCase
	Maintenance  maintenance.UseCase
	Limiter      *StationLimiter
	Catalog      catalog.Catalog
	KPI          kpiSnapshotProvider
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware())

	st := s.Group("/api/station")
	st.POST("/accounting", h.account)
	st.POST("/accounting/all", h.accountAll)
	st.GET("/status", h.status)
	st.GET("/events", h.events)
	st.POST("/peripherals/repair", h.repair)
	st.POST("/peripherals/scrub", h.scrub)
	st.POST("/bioboxes/mode", h.bioMode)

	s.GET("/api/catalog", h.catalog)
	s.GET("/ops/kpi", h.kpi)
}

type accountingRequest struct {
	StationID string `json:"station_id"`
	Recursive *bool  `json:"recursive,omitempty"`
}

type accountAllRequest struct {
	Recursive *bool `json:"recursive,omitempty"`
}

type accountAllItem struct {
	StationID string          `json:"station_id"`
	Report    *station.Report `json:"report,omitempty"`
	Error     *errorBody      `json:"error,omitempty"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (h Handler) account(c context.Context, ctx *app.RequestContext) {
	var body accountingRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	stationID := bodyOrHeaderStationID(ctx, body.StationID)
	if stationID != "" && !h.Limiter.Allow(stationID) {
		writeError(ctx, ports.ErrRateLimited)
		return
	}

	resp, err := h.AccountingUC.Execute(c, accounting.Request{
		StationID: stationID,
		Recursive: recursiveOrDefault(body.Recursive),
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) accountAll(c context.Context, ctx *app.RequestContext) {
	var body accountAllRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	results, err := h.AccountingUC.ExecuteStored(c, recursiveOrDefault(body.Recursive))
	if err != nil {
		writeError(ctx, err)
		return
	}
	items := make([]accountAllItem, 0, len(results))
	for _, r := range results {
		item := accountAllItem{StationID: r.StationID}
		if r.Err != nil {
			_, code, msg := classify(r.Err)
			item.Error = &errorBody{Code: code, Message: msg}
		} else {
			report := r.Response.Report
			item.Report = &report
		}
		items = append(items, item)
	}
	ctx.JSON(consts.StatusOK, map[string]any{"results": items})
}

func (h Handler) status(c context.Context, ctx *app.RequestContext) {
	resp, err := h.StatusUC.Execute(c, status.Request{StationID: queryStationID(ctx)})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) events(c context.Context, ctx *app.RequestContext) {
	limit, _ := strconv.Atoi(string(ctx.Query("limit")))
	occurredFrom, _ := strconv.ParseInt(string(ctx.Query("occurred_from")), 10, 64)
	occurredTo, _ := strconv.ParseInt(string(ctx.Query("occurred_to")), 10, 64)
	resp, err := h.EventsUC.Execute(c, events.Request{
		StationID:    queryStationID(ctx),
		Limit:        limit,
		Type:         string(ctx.Query("type")),
		OccurredFrom: occurredFrom,
		OccurredTo:   occurredTo,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

type peripheralRequest struct {
	StationID    string `json:"station_id"`
	PeripheralID string `json:"peripheral_id"`
}

func (h Handler) repair(c context.Context, ctx *app.RequestContext) {
	var body peripheralRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.Maintenance.RepairPeripheral(c, maintenance.RepairRequest{
		StationID:    bodyOrHeaderStationID(ctx, body.StationID),
		PeripheralID: body.PeripheralID,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) scrub(c context.Context, ctx *app.RequestContext) {
	var body peripheralRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.Maintenance.InstantScrub(c, maintenance.ScrubRequest{
		StationID:    bodyOrHeaderStationID(ctx, body.StationID),
		PeripheralID: body.PeripheralID,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) bioMode(c context.Context, ctx *app.RequestContext) {
	var body maintenance.BioModeRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	body.StationID = bodyOrHeaderStationID(ctx, body.StationID)
	resp, err := h.Maintenance.SetBioMode(c, body)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) catalog(_ context.Context, ctx *app.RequestContext) {
	ctx.JSON(consts.StatusOK, h.Catalog)
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

// Accounting defaults to a full catch-up when the caller does not say.
func recursiveOrDefault(v *bool) bool {
	if v == nil {
		return true
	}
	return *v
}

func queryStationID(ctx *app.RequestContext) string {
	if id := strings.TrimSpace(string(ctx.Query("station_id"))); id != "" {
		return id
	}
	return headerStationID(ctx)
}

func bodyOrHeaderStationID(ctx *app.RequestContext, fromBody string) string {
	if id := strings.TrimSpace(fromBody); id != "" {
		return id
	}
	return headerStationID(ctx)
}

func headerStationID(ctx *app.RequestContext) string {
	return strings.TrimSpace(string(ctx.GetHeader(stationIDHeader)))
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func writeError(ctx *app.RequestContext, err error) {
	status, code, msg := classify(err)
	writeErrorBody(ctx, status, code, msg)
}

func classify(err error) (int, string, string) {
	var cfgErr *station.ConfigError
	switch {
	case errors.Is(err, accounting.ErrInvalidRequest),
		errors.Is(err, status.ErrInvalidRequest),
		errors.Is(err, events.ErrInvalidRequest),
		errors.Is(err, maintenance.ErrInvalidRequest),
		errors.Is(err, peripheral.ErrNotScrubber):
		return consts.StatusBadRequest, "bad_request", err.Error()
	case errors.Is(err, maintenance.ErrNotBroken),
		errors.Is(err, peripheral.ErrBroken):
		return consts.StatusConflict, "invalid_state", err.Error()
	case errors.Is(err, ports.ErrRateLimited):
		return consts.StatusTooManyRequests, "rate_limited", err.Error()
	case errors.Is(err, ports.ErrNotFound):
		return consts.StatusNotFound, "not_found", err.Error()
	case errors.Is(err, ports.ErrConflict):
		return consts.StatusConflict, "conflict", err.Error()
	case errors.As(err, &cfgErr):
		return consts.StatusUnprocessableEntity, "station_misconfigured", cfgErr.Error()
	case station.IsInterrupted(err):
		return consts.StatusServiceUnavailable, "interrupted", "accounting interrupted"
	default:
		return consts.StatusInternalServerError, "internal_error", "internal error"
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
