package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	httpadapter "github.com/Farini/SkyNation-sub005/internal/adapter/http"
	metricsinmem "github.com/Farini/SkyNation-sub005/internal/adapter/metrics/inmemory"
	"github.com/Farini/SkyNation-sub005/internal/adapter/notify/wshub"
	sqlitearchive "github.com/Farini/SkyNation-sub005/internal/adapter/snapshot/sqlite"
	"github.com/Farini/SkyNation-sub005/internal/app/accounting"
	"github.com/Farini/SkyNation-sub005/internal/app/events"
	"github.com/Farini/SkyNation-sub005/internal/app/status"
	"github.com/Farini/SkyNation-sub005/internal/bootstrap"
	"github.com/Farini/SkyNation-sub005/internal/config"
	"github.com/Farini/SkyNation-sub005/internal/platform/logging"

	"github.com/cloudwego/hertz/pkg/app/server"
)

func main() {
	configPath := flag.String("config", resolveConfigPath(), "path to a YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}
	logger := logging.New(cfg.LogLevel, os.Stderr)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	cat, err := bootstrap.LoadCatalog(cfg)
	if err != nil {
		return err
	}
	repos, err := bootstrap.OpenRepos(ctx, cfg)
	if err != nil {
		return err
	}
	defer repos.Close()

	created, err := bootstrap.EnsureSeedStation(ctx, cfg, cat, repos.Stations, time.Now())
	if err != nil {
		return err
	}
	if created {
		logger.Info("seeded demo station", "station", cfg.SeedStationID)
	}

	archive, err := sqlitearchive.Open(cfg.SnapshotPath)
	if err != nil {
		return err
	}
	defer archive.Close()

	hub := wshub.New(logger)
	go hub.Run(ctx)
	notifySrv := &http.Server{Addr: cfg.NotifyAddr, Handler: hub, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := notifySrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("notify server", "err", err)
		}
	}()
	defer notifySrv.Close()

	kpiRecorder := metricsinmem.NewRecorder()
	accountingUC := bootstrap.AccountingUseCase(cfg, cat, repos, logger)
	accountingUC.Snapshots = archive
	accountingUC.Notifier = hub
	accountingUC.Metrics = kpiRecorder
	maintenanceUC := bootstrap.MaintenanceUseCase(cat, repos, accountingUC.Locks, logger)
	maintenanceUC.Notifier = hub

	var limiter *httpadapter.StationLimiter
	if cfg.RateLimitPerSecond > 0 {
		limiter = httpadapter.NewStationLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst)
	}

	h := httpadapter.Handler{
		AccountingUC: accountingUC,
		StatusUC:     status.UseCase{Stations: repos.Stations, TickDuration: cat.Tuning.TickDuration, Now: time.Now},
		EventsUC:     events.UseCase{Events: repos.Events},
		Maintenance:  maintenanceUC,
		Limiter:      limiter,
		Catalog:      cat,
		KPI:          kpiRecorder,
	}

	if cfg.AccountEvery > 0 {
		go accountPeriodically(ctx, accountingUC, cfg.AccountEvery, logger)
	}

	s := server.Default(server.WithHostPorts(cfg.HTTPAddr))
	h.RegisterRoutes(s)

	logger.Info("skynation server listening",
		"http", cfg.HTTPAddr,
		"notify", cfg.NotifyAddr,
		"backend", repos.Backend,
		"tick", cat.Tuning.TickDuration,
	)
	s.Spin()
	return nil
}

// accountPeriodically catches every stored station up on a fixed interval.
func accountPeriodically(ctx context.Context, uc accounting.UseCase, every time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			results, err := uc.ExecuteStored(ctx, true)
			if err != nil {
				logger.Warn("scheduled accounting interrupted", "err", err)
				continue
			}
			failed := 0
			for _, r := range results {
				if r.Err != nil {
					failed++
				}
			}
			logger.Info("scheduled accounting", "stations", len(results), "failed", failed)
		}
	}
}

func resolveConfigPath() string {
	return strings.TrimSpace(os.Getenv("SKYNATION_CONFIG"))
}
