package network

import "iter"

// Segment is one directly-connected stop pair within a trip.
type Segment struct {
	From StopVisit
	To   StopVisit
}

// Segments yields the consecutive stop pairs of a visit sequence in order.
// The sequence is trusted to be sorted by stop_sequence upstream. Fewer
// than two visits yields nothing; such degenerate trips are legal and not
// worth a warning.
func Segments(visits []StopVisit) iter.Seq[Segment] {
	return func(yield func(Segment) bool) {
		for i := 1; i < len(visits); i++ {
			if !yield(Segment{From: visits[i-1], To: visits[i]}) {
				return
			}
		}
	}
}
