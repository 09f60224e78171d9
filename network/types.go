package network

// StopVisit is one stop's timed position within a trip. Offsets are
// non-negative seconds from service-day start and non-decreasing along the
// trip's sequence.
type StopVisit struct {
	StopID    string
	Arrival   int
	Departure int
}

// Trip is one scheduled run of a vehicle visiting an ordered sequence of
// stops. Visits arrive pre-sorted by stop_sequence from the ingestion layer
// and are trusted as-is.
type Trip struct {
	ID      string
	RouteID string
	Visits  []StopVisit
}

// FrequencyWindow is a time-of-day range over which a trip repeats at a
// fixed headway instead of running once. Start and End carry the raw
// second values and are rounded to whole seconds only when expanded.
type FrequencyWindow struct {
	Start   float64
	End     float64
	Headway int
}

// NoEdge marks a traversal whose edge was dropped during geometry
// generation. Such traversals are intentionally orphaned, not an error.
const NoEdge int64 = -1

// Traversal is one timed use of an edge by one trip, or by one frequency
// tick of a trip. EdgeID is zero until resolution assigns the edge's
// numeric identifier or NoEdge.
type Traversal struct {
	Key    EdgeKey
	EdgeID int64
	Start  int
	End    int
	TripID string
}
