// Package bootstrap wires config into the catalog, repositories and the use
// cases shared by the server and the CLI.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Farini/SkyNation-sub005/internal/adapter/catalog/yamlcatalog"
	gormrepo "github.com/Farini/SkyNation-sub005/internal/adapter/repo/gorm"
	"github.com/Farini/SkyNation-sub005/internal/adapter/repo/memory"
	"github.com/Farini/SkyNation-sub005/internal/app/accounting"
	"github.com/Farini/SkyNation-sub005/internal/app/maintenance"
	"github.com/Farini/SkyNation-sub005/internal/app/ports"
	"github.com/Farini/SkyNation-sub005/internal/app/stationbuild"
	"github.com/Farini/SkyNation-sub005/internal/config"
	"github.com/Farini/SkyNation-sub005/internal/domain/catalog"
	"github.com/Farini/SkyNation-sub005/internal/domain/outpost"
	"github.com/Farini/SkyNation-sub005/internal/domain/station"
)

const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
)

type Repos struct {
	Backend   string
	Stations  ports.StationRepository
	Events    ports.EventRepository
	TxManager ports.TxManager
	Close     func() error
}

// LoadCatalog applies the optional overrides file and the config's clock
// settings to the built-in catalog.
func LoadCatalog(cfg config.Config) (catalog.Catalog, error) {
	cat := catalog.Default()
	if path := strings.TrimSpace(cfg.CatalogFile); path != "" {
		loaded, err := yamlcatalog.Load(path, cat)
		if err != nil {
			return catalog.Catalog{}, err
		}
		cat = loaded
	}
	cfg.ApplyTuning(&cat)
	if err := cat.Validate(); err != nil {
		return catalog.Catalog{}, err
	}
	return cat, nil
}

// OpenRepos uses Postgres when a DSN is configured and the in-memory store
// otherwise. Migrations are applied before returning.
func OpenRepos(ctx context.Context, cfg config.Config) (Repos, error) {
	if strings.TrimSpace(cfg.DatabaseDSN) == "" {
		store := memory.NewStore()
		return Repos{
			Backend:   BackendMemory,
			Stations:  memory.NewStationRepo(store),
			Events:    memory.NewEventRepo(store),
			TxManager: memory.NewTxManager(store),
			Close:     func() error { return nil },
		}, nil
	}

	db, err := gormrepo.OpenPostgres(cfg.DatabaseDSN)
	if err != nil {
		return Repos{}, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return Repos{}, fmt.Errorf("postgres handle: %w", err)
	}
	if err := gormrepo.ApplyMigrations(ctx, db, cfg.MigrationsDir); err != nil {
		_ = sqlDB.Close()
		return Repos{}, err
	}
	return Repos{
		Backend:   BackendPostgres,
		Stations:  gormrepo.NewStationRepo(db),
		Events:    gormrepo.NewEventRepo(db),
		TxManager: gormrepo.NewTxManager(db),
		Close:     sqlDB.Close,
	}, nil
}

// CreateStation stores a new station at version 1.
func CreateStation(ctx context.Context, stations ports.StationRepository, st station.Station) (station.Station, error) {
	st.Version = 1
	st.UpdatedAt = st.Clock.LastAccounted
	if err := stations.SaveWithVersion(ctx, st, 0); err != nil {
		return station.Station{}, fmt.Errorf("create station %s: %w", st.ID, err)
	}
	return st, nil
}

// EnsureSeedStation creates the configured demo station unless it already
// exists. It reports whether a station was created.
func EnsureSeedStation(ctx context.Context, cfg config.Config, cat catalog.Catalog, stations ports.StationRepository, now time.Time) (bool, error) {
	id := strings.TrimSpace(cfg.SeedStationID)
	if id == "" {
		return false, nil
	}
	_, err := stations.Get(ctx, id)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, ports.ErrNotFound) {
		return false, fmt.Errorf("load seed station: %w", err)
	}
	st, err := stationbuild.Starter(id, cfg.SeedStationRNG, now, cat)
	if err != nil {
		return false, err
	}
	if _, err := CreateStation(ctx, stations, st); err != nil {
		return false, err
	}
	return true, nil
}

// AccountingUseCase assembles the use case without the optional archive,
// notifier and metrics; callers set those when they have them.
func AccountingUseCase(cfg config.Config, cat catalog.Catalog, repos Repos, logger *slog.Logger) accounting.UseCase {
	var guilds outpost.GuildDirectory
	if len(cfg.Guilds) > 0 {
		guilds = outpost.StaticGuilds(cfg.Guilds)
	}
	return accounting.UseCase{
		TxManager:   repos.TxManager,
		Stations:    repos.Stations,
		Events:      repos.Events,
		Accountant:  station.NewAccountant(cat, guilds),
		Locks:       accounting.NewStationLocks(),
		Logger:      logger,
		Parallelism: cfg.Parallelism,
		Now:         time.Now,
	}
}

// MaintenanceUseCase shares locks with the accounting use case so crew
// actions and passes on one station never interleave.
func MaintenanceUseCase(cat catalog.Catalog, repos Repos, locks *accounting.StationLocks, logger *slog.Logger) maintenance.UseCase {
	return maintenance.UseCase{
		TxManager: repos.TxManager,
		Stations:  repos.Stations,
		Events:    repos.Events,
		Catalog:   cat,
		Locks:     locks,
		Logger:    logger,
		Now:       time.Now,
	}
}
