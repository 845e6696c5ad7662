package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Farini/SkyNation-sub005/internal/app/accounting"
	"github.com/Farini/SkyNation-sub005/internal/app/maintenance"
	"github.com/Farini/SkyNation-sub005/internal/bootstrap"
	"github.com/Farini/SkyNation-sub005/internal/config"
	"github.com/Farini/SkyNation-sub005/internal/domain/catalog"
	"github.com/Farini/SkyNation-sub005/internal/platform/logging"
)

// cli holds what every subcommand shares. The backend is opened on first use
// and stays open across commands run on the same value.
type cli struct {
	configPath string
	jsonOut    bool
	now        func() time.Time

	opened bool
	cfg    config.Config
	cat    catalog.Catalog
	repos  bootstrap.Repos
	logger *slog.Logger
}

func (c *cli) open(ctx context.Context) error {
	if c.opened {
		return nil
	}
	path := c.configPath
	if path == "" {
		path = strings.TrimSpace(os.Getenv("SKYNATION_CONFIG"))
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	cat, err := bootstrap.LoadCatalog(cfg)
	if err != nil {
		return err
	}
	repos, err := bootstrap.OpenRepos(ctx, cfg)
	if err != nil {
		return err
	}
	if repos.Backend == bootstrap.BackendMemory {
		if _, err := bootstrap.EnsureSeedStation(ctx, cfg, cat, repos.Stations, c.now()); err != nil {
			_ = repos.Close()
			return err
		}
	}
	c.cfg, c.cat, c.repos = cfg, cat, repos
	c.logger = logging.New(cfg.LogLevel, os.Stderr)
	c.opened = true
	return nil
}

func (c *cli) close() {
	if c.opened && c.repos.Close != nil {
		_ = c.repos.Close()
	}
	c.opened = false
}

func (c *cli) accounting() accounting.UseCase {
	uc := bootstrap.AccountingUseCase(c.cfg, c.cat, c.repos, c.logger)
	uc.Now = c.now
	return uc
}

func (c *cli) maintenance() maintenance.UseCase {
	uc := bootstrap.MaintenanceUseCase(c.cat, c.repos, accounting.NewStationLocks(), c.logger)
	uc.Now = c.now
	return uc
}

func (c *cli) writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (c *cli) print(cmd *cobra.Command, v any, text func(w io.Writer)) error {
	if c.jsonOut {
		return c.writeJSON(cmd.OutOrStdout(), v)
	}
	text(cmd.OutOrStdout())
	return nil
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:   "stationctl",
		Short: "Operate SkyNation station accounting",
		Long: `stationctl creates stations, runs accounting passes and inspects
station state against the configured backend.

Without a database DSN the commands run on an in-memory store seeded
with the demo station, which is handy for trying out catalog overrides.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "path to a YAML config file (default $SKYNATION_CONFIG)")
	root.PersistentFlags().BoolVar(&c.jsonOut, "json", false, "output as JSON")

	root.AddCommand(
		newNewCmd(c),
		newAccountCmd(c),
		newStatusCmd(c),
		newEventsCmd(c),
		newRepairCmd(c),
		newScrubCmd(c),
		newBioBoxCmd(c),
		newCatalogCmd(c),
	)
	return root
}
