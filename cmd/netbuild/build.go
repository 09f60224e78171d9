package main

import (
	"errors"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/urban-transit/netbuild/config"
	"github.com/urban-transit/netbuild/geometry"
	"github.com/urban-transit/netbuild/gtfs"
	"github.com/urban-transit/netbuild/network"
	"github.com/urban-transit/netbuild/store"
)

var (
	cfgPath  string
	gtfsPath string
	dbPath   string
	logLevel string
	workers  int
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Generate transit lines and schedule traversals from a GTFS dataset",
	RunE:  runBuild,
}

func init() {
	buildCmd.Flags().StringVar(&cfgPath, "config", "", "YAML configuration file (flags override)")
	buildCmd.Flags().StringVar(&gtfsPath, "gtfs", "", "GTFS directory or zip archive")
	buildCmd.Flags().StringVar(&dbPath, "db", "netbuild.db", "output SQLite database path")
	buildCmd.Flags().StringVar(&logLevel, "log-level", "info", "log level [debug, info, warn, error]")
	buildCmd.Flags().IntVar(&workers, "workers", 0, "concurrent trip expansion (0 = one per CPU)")
	rootCmd.AddCommand(buildCmd)
}

func buildConfig(cmd *cobra.Command) (config.AppConfig, error) {
	cfg := config.AppConfig{
		Store: config.StoreConfig{Path: dbPath},
		Log:   config.LogConfig{Level: logLevel},
	}
	if cfgPath != "" {
		loaded, err := config.Load(cfgPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	if gtfsPath != "" {
		cfg.GTFS.Path = gtfsPath
	}
	if cmd.Flags().Changed("db") || cfg.Store.Path == "" {
		cfg.Store.Path = dbPath
	}
	if cmd.Flags().Changed("workers") {
		cfg.Build.Workers = workers
	}
	if cmd.Flags().Changed("log-level") || cfg.Log.Level == "" {
		cfg.Log.Level = logLevel
	}
	if cfg.GTFS.Path == "" {
		return cfg, errors.New("no GTFS dataset given, use --gtfs or a config file")
	}
	return cfg, nil
}

func runBuild(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	logrus.SetLevel(level)

	ctx := cmd.Context()

	logrus.Infof("loading GTFS data from %s", cfg.GTFS.Path)
	feed, err := gtfs.Load(cfg.GTFS.Path)
	if err != nil {
		return err
	}
	logrus.Infof("loaded %d routes, %d trips, %d stops, %d frequency windows",
		len(feed.Routes), len(feed.Trips), len(feed.Stops), len(feed.Frequencies))

	trips := lo.Map(feed.Trips, func(t gtfs.Trip, _ int) network.Trip {
		return network.Trip{
			ID:      t.TripID,
			RouteID: t.RouteID,
			Visits: lo.Map(feed.StopTimes[t.TripID], func(st gtfs.StopTime, _ int) network.StopVisit {
				return network.StopVisit{StopID: st.StopID, Arrival: st.Arrival, Departure: st.Departure}
			}),
		}
	})
	routes := lo.Map(feed.Routes, func(r gtfs.Route, _ int) network.RouteRow {
		return network.RouteRow{ID: r.RouteID, Type: r.RouteType}
	})
	freqs := lo.Map(feed.Frequencies, func(f gtfs.Frequency, _ int) network.FrequencyRow {
		return network.FrequencyRow{TripID: f.TripID, Start: f.Start, End: f.End, Headway: f.Headway}
	})

	logrus.Info("processing transit schedule and line information")
	res, err := network.Build(ctx, trips, routes, freqs, network.BuildOptions{Workers: cfg.Build.Workers})
	if err != nil {
		return err
	}
	logrus.Infof("expanded %d traversals over %d candidate edges", len(res.Traversals), res.Registry.Len())

	stops := feed.ResolvedStops()
	network.RemoveMissingStops(res.Registry, func(id string) bool {
		_, ok := stops[id]
		return ok
	}, res.Warnings)

	db, err := store.Open(cfg.Store.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	runID, err := db.CreateRun(ctx)
	if err != nil {
		return err
	}

	// Schedules are written with symbolic edge columns first; the
	// source_oid backfill happens after line generation.
	if err := db.InsertTraversals(ctx, res.Traversals); err != nil {
		return err
	}

	logrus.Info("generating transit lines")
	coords := make(map[string]geometry.Point, len(stops))
	for id, s := range stops {
		coords[id] = geometry.Point{Lon: s.Lon, Lat: s.Lat}
	}
	lines := geometry.BuildLines(res.Registry.Keys(), coords)
	res.Registry.ApplyAssignments(lines.IDs)

	network.ResolveEdgeIDs(res.Traversals, res.Registry, res.Warnings)

	if err := db.InsertLineFeatures(ctx, lines.Lines); err != nil {
		return err
	}
	if err := db.AssignEdgeIDs(ctx, res.Registry); err != nil {
		return err
	}
	if err := db.FinishRun(ctx, runID, len(trips), len(res.Traversals), len(lines.Lines)); err != nil {
		return err
	}

	res.Warnings.LogAll()
	logrus.Infof("finished run %s: %d lines and %d traversals written to %s",
		runID, len(lines.Lines), len(res.Traversals), cfg.Store.Path)
	return nil
}
