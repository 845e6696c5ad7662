package accounting

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Farini/SkyNation-sub005/internal/app/ports"
	"github.com/Farini/SkyNation-sub005/internal/domain/station"
)

var ErrInvalidRequest = errors.New("invalid accounting request")

const defaultParallelism = 4

type UseCase struct {
	TxManager   ports.TxManager
	Stations    ports.StationRepository
	Events      ports.EventRepository
	Snapshots   ports.SnapshotArchive
	Notifier    ports.Notifier
	Metrics     ports.AccountingMetrics
	Accountant  station.Accountant
	Locks       *StationLocks
	Logger      *slog.Logger
	Parallelism int
	Now         func() time.Time
}

func (u UseCase) logger() *slog.Logger {
	if u.Logger != nil {
		return u.Logger
	}
	return slog.Default()
}

// Execute runs one accounting pass for a station and persists its outcome.
func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	req.StationID = strings.TrimSpace(req.StationID)
	if req.StationID == "" {
		return Response{}, ErrInvalidRequest
	}
	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	log := u.logger().With("station", req.StationID)

	unlock := u.Locks.Lock(req.StationID)
	defer unlock()

	now := nowFn().UTC()
	var out Response
	err := u.TxManager.RunInTx(ctx, func(txCtx context.Context) error {
		st, err := u.Stations.Get(txCtx, req.StationID)
		if err != nil {
			return err
		}
		expected := st.Version

		report, err := u.Accountant.Run(txCtx, &st, now, req.Recursive)
		if err != nil {
			return err
		}
		out = Response{Report: report, Station: st}
		if report.Ticks == 0 {
			return nil
		}

		st.Version = expected + 1
		st.UpdatedAt = now
		if err := u.Stations.SaveWithVersion(txCtx, st, expected); err != nil {
			return err
		}
		if err := u.Events.Append(txCtx, st.ID, report.Events); err != nil {
			return err
		}
		out.Station = st
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ports.ErrConflict):
			log.Warn("accounting conflict", "err", err)
			if u.Metrics != nil {
				u.Metrics.RecordConflict()
			}
		case errors.Is(err, station.ErrConfiguration):
			log.Error("station configuration rejected", "err", err)
			if u.Metrics != nil {
				u.Metrics.RecordFailure()
			}
		default:
			log.Error("accounting failed", "err", err)
			if u.Metrics != nil {
				u.Metrics.RecordFailure()
			}
		}
		return Response{}, err
	}

	report := out.Report
	for _, line := range report.Log {
		log.Debug("accounting note", "note", line)
	}
	log.Info("accounting pass",
		"ticks", report.Ticks,
		"remaining", report.Remaining,
		"more_remaining", report.MoreRemaining,
		"starved", report.Starved,
		"events", len(report.Events),
	)
	if u.Metrics != nil {
		u.Metrics.RecordPass(report.Ticks, report.Starved, report.MoreRemaining)
	}
	if report.Ticks > 0 {
		u.afterCommit(ctx, log, out.Station, report, now)
	}
	return out, nil
}

// afterCommit archives and announces a committed pass. Failures here never
// undo the pass.
func (u UseCase) afterCommit(ctx context.Context, log *slog.Logger, st station.Station, report station.Report, now time.Time) {
	if u.Snapshots != nil {
		rec, err := u.Snapshots.Put(ctx, st, now)
		if err != nil {
			log.Warn("snapshot archive failed", "err", err)
		} else {
			log.Debug("snapshot archived", "tick", rec.Tick, "hash", rec.Hash)
		}
	}
	if u.Notifier != nil && len(report.Events) > 0 {
		if err := u.Notifier.Publish(ctx, st.ID, report.Events); err != nil {
			log.Warn("notify failed", "err", err)
		}
	}
}

// ExecuteAll accounts several stations in parallel. A failing station does
// not stop the others; only cancellation of ctx is returned as an error.
func (u UseCase) ExecuteAll(ctx context.Context, stationIDs []string, recursive bool) ([]Result, error) {
	limit := u.Parallelism
	if limit <= 0 {
		limit = defaultParallelism
	}
	results := make([]Result, len(stationIDs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, id := range stationIDs {
		g.Go(func() error {
			resp, err := u.Execute(gctx, Request{StationID: id, Recursive: recursive})
			results[i] = Result{StationID: id, Response: resp, Err: err}
			if station.IsInterrupted(err) {
				return err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// ExecuteStored accounts every station the repository knows about.
func (u UseCase) ExecuteStored(ctx context.Context, recursive bool) ([]Result, error) {
	ids, err := u.Stations.ListIDs(ctx)
	if err != nil {
		return nil, err
	}
	return u.ExecuteAll(ctx, ids, recursive)
}
