package network

import (
	"fmt"
	"sort"
	"strings"

	"github.com/samber/lo"
)

// RouteRow, TripRow and FrequencyRow are the table rows consumed from the
// ingestion layer.
type RouteRow struct {
	ID   string
	Type string
}

type TripRow struct {
	ID      string
	RouteID string
}

type FrequencyRow struct {
	TripID  string
	Start   float64
	End     float64
	Headway int
}

// DuplicateTripError reports trip_id values occurring more than once in the
// trips table. Duplicate primary keys are a data-integrity violation and
// abort the build before any output is produced.
type DuplicateTripError struct {
	Counts map[string]int
}

func (e *DuplicateTripError) Error() string {
	ids := lo.Keys(e.Counts)
	sort.Strings(ids)
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, fmt.Sprintf("%d instances of trip_id %q", e.Counts[id], id))
	}
	return "trips table is invalid, it contains multiple trips with the same trip_id: " +
		strings.Join(parts, ", ")
}

// RefTables are the read-only lookups shared by trip expansion: the mode of
// every trip and the frequency windows of trips that repeat on a headway.
type RefTables struct {
	TripModes   map[string]Mode
	Frequencies map[string][]FrequencyWindow
}

// BuildRefTables derives trip→mode and trip→frequency-windows from the raw
// tables. Duplicate trip ids are fatal. A trip referencing an unknown route
// stays usable with UnknownRouteCode and a warning. Zero-headway frequency
// windows are discarded with a warning; remaining windows keep input order.
func BuildRefTables(routes []RouteRow, trips []TripRow, freqs []FrequencyRow, warns *WarningAggregator) (*RefTables, error) {
	counts := lo.CountValuesBy(trips, func(t TripRow) string { return t.ID })
	dups := lo.PickBy(counts, func(_ string, n int) bool { return n > 1 })
	if len(dups) > 0 {
		return nil, &DuplicateTripError{Counts: dups}
	}

	routeModes := make(map[string]Mode, len(routes))
	for _, r := range routes {
		routeModes[r.ID] = ParseMode(r.Type)
	}

	tripModes := make(map[string]Mode, len(trips))
	for _, t := range trips {
		mode, ok := routeModes[t.RouteID]
		if !ok {
			warns.Add(WarningUnknownRoute, t.ID)
			mode = ModeFromCode(UnknownRouteCode)
		}
		tripModes[t.ID] = mode
	}

	frequencies := make(map[string][]FrequencyWindow)
	for _, f := range freqs {
		if f.Headway == 0 {
			warns.Add(WarningZeroHeadway, f.TripID)
			continue
		}
		frequencies[f.TripID] = append(frequencies[f.TripID], FrequencyWindow{
			Start:   f.Start,
			End:     f.End,
			Headway: f.Headway,
		})
	}

	return &RefTables{TripModes: tripModes, Frequencies: frequencies}, nil
}
