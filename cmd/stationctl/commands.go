package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Farini/SkyNation-sub005/internal/app/accounting"
	"github.com/Farini/SkyNation-sub005/internal/app/events"
	"github.com/Farini/SkyNation-sub005/internal/app/maintenance"
	"github.com/Farini/SkyNation-sub005/internal/app/stationbuild"
	"github.com/Farini/SkyNation-sub005/internal/app/status"
	"github.com/Farini/SkyNation-sub005/internal/bootstrap"
)

func newNewCmd(c *cli) *cobra.Command {
	var seed uint64
	cmd := &cobra.Command{
		Use:   "new [station-id]",
		Short: "Create a starter station",
		Long: `Create a station with the starter layout. Without an id a random
one is generated. The seed fixes the initial biobox population.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := c.open(ctx); err != nil {
				return err
			}
			id := ""
			if len(args) == 1 {
				id = args[0]
			}
			st, err := stationbuild.Starter(id, seed, c.now(), c.cat)
			if err != nil {
				return err
			}
			st, err = bootstrap.CreateStation(ctx, c.repos.Stations, st)
			if err != nil {
				return err
			}
			return c.print(cmd, st, func(w io.Writer) {
				fmt.Fprintf(w, "created station %s (%d people, %d modules)\n", st.ID, len(st.People), len(st.Modules))
			})
		},
	}
	cmd.Flags().Uint64Var(&seed, "seed", 1, "seed for the starter biobox")
	return cmd
}

func newAccountCmd(c *cli) *cobra.Command {
	var all, single bool
	cmd := &cobra.Command{
		Use:   "account [station-id...]",
		Short: "Run accounting passes",
		Long: `Catch stations up to the current time. Pass station ids, or --all for
every stored station. --single limits each station to one tick.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !all && len(args) == 0 {
				return errors.New("give at least one station id or --all")
			}
			if err := c.open(ctx); err != nil {
				return err
			}
			uc := c.accounting()
			recursive := !single

			var results []accounting.Result
			var err error
			if all {
				results, err = uc.ExecuteStored(ctx, recursive)
			} else {
				results, err = uc.ExecuteAll(ctx, args, recursive)
			}
			if err != nil {
				return err
			}

			type row struct {
				StationID     string `json:"station_id"`
				Ticks         int    `json:"ticks"`
				MoreRemaining bool   `json:"more_remaining"`
				Starved       int    `json:"starved"`
				Error         string `json:"error,omitempty"`
			}
			rows := make([]row, 0, len(results))
			failed := 0
			for _, r := range results {
				out := row{StationID: r.StationID}
				if r.Err != nil {
					out.Error = r.Err.Error()
					failed++
				} else {
					out.Ticks = r.Response.Report.Ticks
					out.MoreRemaining = r.Response.Report.MoreRemaining
					out.Starved = r.Response.Report.Starved
				}
				rows = append(rows, out)
			}
			if err := c.print(cmd, rows, func(w io.Writer) {
				for _, r := range rows {
					if r.Error != "" {
						fmt.Fprintf(w, "%s: failed: %s\n", r.StationID, r.Error)
						continue
					}
					fmt.Fprintf(w, "%s: %d ticks, starved %d", r.StationID, r.Ticks, r.Starved)
					if r.MoreRemaining {
						fmt.Fprint(w, ", more remaining")
					}
					fmt.Fprintln(w)
				}
			}); err != nil {
				return err
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d stations failed", failed, len(results))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "account every stored station")
	cmd.Flags().BoolVar(&single, "single", false, "run at most one tick per station")
	return cmd
}

func newStatusCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "status <station-id>",
		Short: "Show a station without accounting it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := c.open(ctx); err != nil {
				return err
			}
			uc := status.UseCase{Stations: c.repos.Stations, TickDuration: c.cat.Tuning.TickDuration, Now: c.now}
			resp, err := uc.Execute(ctx, status.Request{StationID: args[0]})
			if err != nil {
				return err
			}
			return c.print(cmd, resp, func(w io.Writer) {
				st := resp.Station
				fmt.Fprintf(w, "station %s  version %d  ticks %d\n", st.ID, st.Version, st.TickCount)
				fmt.Fprintf(w, "last accounted %s  due %d  next tick in %ds\n",
					st.Clock.LastAccounted.Format("2006-01-02 15:04:05"), resp.DueTicks, resp.NextTickInSeconds)
				fmt.Fprintf(w, "crew alive %d/%d  broken peripherals %d  stored energy %d\n",
					resp.Alive, len(st.People), resp.Broken, resp.StoredEnergy)
			})
		},
	}
}

func newEventsCmd(c *cli) *cobra.Command {
	var limit int
	var eventType string
	cmd := &cobra.Command{
		Use:   "events <station-id>",
		Short: "List recent station events, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := c.open(ctx); err != nil {
				return err
			}
			uc := events.UseCase{Events: c.repos.Events}
			resp, err := uc.Execute(ctx, events.Request{StationID: args[0], Limit: limit, Type: eventType})
			if err != nil {
				return err
			}
			return c.print(cmd, resp, func(w io.Writer) {
				for _, e := range resp.Events {
					fmt.Fprintf(w, "#%d %s %s", e.Tick, e.OccurredAt.Format("2006-01-02 15:04"), e.Type)
					if e.Message != "" {
						fmt.Fprintf(w, ": %s", e.Message)
					}
					fmt.Fprintln(w)
				}
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", events.DefaultLimit, "maximum events to show")
	cmd.Flags().StringVar(&eventType, "type", "", "only show events of this type")
	return cmd
}

func newRepairCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "repair <station-id> <peripheral-id>",
		Short: "Repair a broken peripheral",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := c.open(ctx); err != nil {
				return err
			}
			resp, err := c.maintenance().RepairPeripheral(ctx, maintenance.RepairRequest{StationID: args[0], PeripheralID: args[1]})
			if err != nil {
				return err
			}
			return c.print(cmd, resp, func(w io.Writer) {
				fmt.Fprintf(w, "%s (version %d)\n", resp.Event.Message, resp.Station.Version)
			})
		},
	}
}

func newScrubCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "scrub <station-id> <scrubber-id>",
		Short: "Run an instant CO2 scrub",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := c.open(ctx); err != nil {
				return err
			}
			resp, err := c.maintenance().InstantScrub(ctx, maintenance.ScrubRequest{StationID: args[0], PeripheralID: args[1]})
			if err != nil {
				return err
			}
			return c.print(cmd, resp, func(w io.Writer) {
				fmt.Fprintf(w, "scrubbed %d co2, air co2 now %d\n", resp.Scrubbed, resp.Station.Air.CO2)
			})
		},
	}
}

func newBioBoxCmd(c *cli) *cobra.Command {
	var mode string
	var restart bool
	var generations int
	cmd := &cobra.Command{
		Use:   "biobox <station-id> <biobox-id>",
		Short: "Switch a biobox mode or open a new round",
		Long: `Switch a biobox between grow, bloom, collect and store. --restart
opens a new round of generations at the station's current tick; without
--generations the box keeps its current budget.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := c.open(ctx); err != nil {
				return err
			}
			resp, err := c.maintenance().SetBioMode(ctx, maintenance.BioModeRequest{
				StationID:   args[0],
				BioBoxID:    args[1],
				Mode:        mode,
				Restart:     restart,
				Generations: generations,
			})
			if err != nil {
				return err
			}
			return c.print(cmd, resp, func(w io.Writer) {
				fmt.Fprintln(w, resp.Event.Message)
			})
		},
	}
	cmd.Flags().StringVar(&mode, "mode", "bloom", "grow, bloom, collect or store")
	cmd.Flags().BoolVar(&restart, "restart", false, "open a new round of generations")
	cmd.Flags().IntVar(&generations, "generations", 0, "generation budget for the new round")
	return cmd
}

func newCatalogCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "Print the effective catalog after overrides",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.open(cmd.Context()); err != nil {
				return err
			}
			if c.jsonOut {
				return c.writeJSON(cmd.OutOrStdout(), c.cat)
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(c.cat); err != nil {
				return err
			}
			return enc.Close()
		},
	}
}
