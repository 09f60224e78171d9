// Package network derives a transit network graph from static schedule
// data. It reduces each trip's ordered stop visits to directed stop-to-stop
// edges, deduplicated across trips by (from stop, to stop, mode), and emits
// a traversal record for every timed use of an edge, expanding
// frequency-based trips into concrete headway ticks.
//
// Edge identifiers are not known while traversals are produced; they are
// assigned by geometry generation afterwards. The Registry carries the edge
// set through both phases and ResolveEdgeIDs backfills every traversal with
// its final identifier, or NoEdge for edges that were dropped.
package network
