package network

// ResolveEdgeIDs backfills every traversal with the numeric identifier its
// edge received during geometry generation. Traversals whose edge was
// dropped get NoEdge and a dropped-edge warning; that is an expected
// outcome, not an error. The rewrite visits each record exactly once, in no
// particular order, and resolving again against an unchanged registry
// yields the same records.
func ResolveEdgeIDs(recs []Traversal, reg *Registry, warns *WarningAggregator) (resolved, dropped int) {
	for i := range recs {
		if id, ok := reg.Lookup(recs[i].Key); ok {
			recs[i].EdgeID = id
			resolved++
			continue
		}
		recs[i].EdgeID = NoEdge
		warns.Add(WarningDroppedEdge, recs[i].TripID)
		dropped++
	}
	return resolved, dropped
}
