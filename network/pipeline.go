package network

import (
	"context"
	"runtime"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// BuildOptions tunes expansion. Workers caps the number of trips expanded
// concurrently; zero means GOMAXPROCS.
type BuildOptions struct {
	Workers int
}

// BuildResult carries everything expansion produced: every traversal record
// (still unresolved), the deduplicated edge registry, and the collected
// warnings.
type BuildResult struct {
	Traversals []Traversal
	Registry   *Registry
	Warnings   *WarningAggregator
}

// Build validates the reference tables and expands every trip into
// traversal records. Trips are independent given the reference snapshot, so
// they are expanded in parallel; edge registration goes through the
// concurrent registry. A duplicate trip id aborts before any expansion
// work.
func Build(ctx context.Context, trips []Trip, routes []RouteRow, freqs []FrequencyRow, opts BuildOptions) (*BuildResult, error) {
	warns := NewWarningAggregator()

	tripRows := lo.Map(trips, func(t Trip, _ int) TripRow {
		return TripRow{ID: t.ID, RouteID: t.RouteID}
	})
	refs, err := BuildRefTables(routes, tripRows, freqs, warns)
	if err != nil {
		return nil, err
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	reg := NewRegistry()
	perTrip := make([][]Traversal, len(trips))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, trip := range trips {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			perTrip[i] = ExpandTrip(trip, refs.TripModes[trip.ID], refs.Frequencies[trip.ID], reg)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &BuildResult{
		Traversals: lo.Flatten(perTrip),
		Registry:   reg,
		Warnings:   warns,
	}, nil
}
