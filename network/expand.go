package network

import "math"

// ExpandTrip converts one trip into traversal records, registering every
// edge it touches. A trip with frequency windows is treated purely as a
// frequency trip: its stop times contribute only offsets relative to the
// first departure, never absolute emitted times. Edges are registered even
// before their stops are known to resolve; the missing-stop filter handles
// that later in one pass.
func ExpandTrip(trip Trip, mode Mode, windows []FrequencyWindow, reg *Registry) []Traversal {
	if len(trip.Visits) < 2 {
		return nil
	}
	if len(windows) > 0 {
		return expandFrequency(trip, mode, windows, reg)
	}
	return expandStatic(trip, mode, reg)
}

// expandStatic emits one traversal per segment. The running start is the
// previous stop's departure, so dwell time at an intermediate stop belongs
// to the following segment.
func expandStatic(trip Trip, mode Mode, reg *Registry) []Traversal {
	out := make([]Traversal, 0, len(trip.Visits)-1)
	start := trip.Visits[0].Departure
	for seg := range Segments(trip.Visits) {
		key := EdgeKey{FromStop: seg.From.StopID, ToStop: seg.To.StopID, Mode: mode}
		reg.Register(key)
		out = append(out, Traversal{
			Key:    key,
			Start:  start,
			End:    seg.To.Arrival,
			TripID: trip.ID,
		})
		start = seg.To.Departure
	}
	return out
}

// expandFrequency emits one traversal per segment per headway tick. Each
// segment's start and end are taken relative to the trip's first departure,
// then shifted by every tick i = start, start+headway, ... strictly below
// the window end.
func expandFrequency(trip Trip, mode Mode, windows []FrequencyWindow, reg *Registry) []Traversal {
	var out []Traversal
	first := trip.Visits[0].Departure
	start := trip.Visits[0].Departure
	for seg := range Segments(trip.Visits) {
		key := EdgeKey{FromStop: seg.From.StopID, ToStop: seg.To.StopID, Mode: mode}
		reg.Register(key)
		relStart := start - first
		relEnd := seg.To.Arrival - first
		for _, w := range windows {
			if w.Headway <= 0 {
				continue
			}
			for i := roundSeconds(w.Start); i < roundSeconds(w.End); i += w.Headway {
				out = append(out, Traversal{
					Key:    key,
					Start:  i + relStart,
					End:    i + relEnd,
					TripID: trip.ID,
				})
			}
		}
		start = seg.To.Departure
	}
	return out
}

// roundSeconds rounds a window boundary to the nearest whole second, ties
// rounding up for the non-negative offsets used here.
func roundSeconds(v float64) int {
	return int(math.Round(v))
}
