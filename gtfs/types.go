package gtfs

// Route is one row of routes.txt. RouteType is kept raw; mode
// interpretation happens downstream.
type Route struct {
	RouteID   string
	RouteType string
}

// Trip is one row of trips.txt.
type Trip struct {
	TripID  string
	RouteID string
}

// Stop is one row of stops.txt.
type Stop struct {
	StopID        string
	StopName      string
	Lat           float64
	Lon           float64
	LocationType  int
	ParentStation string
}

// StopTime is one row of stop_times.txt, times in seconds from service-day
// start.
type StopTime struct {
	TripID    string
	StopID    string
	Arrival   int
	Departure int
	Seq       int
}

// Frequency is one row of frequencies.txt. Start and End stay float64 so
// downstream rounding of window boundaries is explicit.
type Frequency struct {
	TripID  string
	Start   float64
	End     float64
	Headway int
}

// Feed holds a loaded GTFS dataset. StopTimes are grouped per trip and
// sorted by stop_sequence.
type Feed struct {
	Routes      []Route
	Trips       []Trip
	Stops       []Stop
	StopTimes   map[string][]StopTime
	Frequencies []Frequency
}

// ResolvedStops returns the stops usable as network endpoints, keyed by
// stop_id. Stations (location_type 1) are kept only when some regular stop
// names them as parent_station; entrances (location_type 2) only when their
// parent station is itself used. Unused stations and orphaned entrances
// would only produce standalone junctions.
func (f *Feed) ResolvedStops() map[string]Stop {
	usedParents := make(map[string]bool)
	for _, s := range f.Stops {
		if s.LocationType == 0 && s.ParentStation != "" {
			usedParents[s.ParentStation] = true
		}
	}

	out := make(map[string]Stop, len(f.Stops))
	for _, s := range f.Stops {
		switch s.LocationType {
		case 1:
			if !usedParents[s.StopID] {
				continue
			}
		case 2:
			if !usedParents[s.ParentStation] {
				continue
			}
		}
		out[s.StopID] = s
	}
	return out
}
