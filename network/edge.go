package network

import (
	"github.com/puzpuzpuz/xsync/v3"
)

// EdgeKey identifies a directed, mode-tagged connection between two stops.
// Equality is exact tuple equality; trips producing the same key refer to
// the same physical connection and collapse to one edge.
type EdgeKey struct {
	FromStop string
	ToStop   string
	Mode     Mode
}

// Registry is the deduplicated set of edges observed during expansion and,
// after geometry generation, the mapping from each surviving edge to its
// assigned numeric identifier. Registration is safe to call from parallel
// per-trip expansion.
type Registry struct {
	edges *xsync.MapOf[EdgeKey, int64]
}

func NewRegistry() *Registry {
	return &Registry{edges: xsync.NewMapOf[EdgeKey, int64]()}
}

// Register records the edge as existing. Idempotent across trips and
// frequency ticks; an already assigned identifier is left untouched.
func (r *Registry) Register(key EdgeKey) {
	r.edges.LoadOrStore(key, 0)
}

// Has reports whether the edge is registered, assigned or not.
func (r *Registry) Has(key EdgeKey) bool {
	_, ok := r.edges.Load(key)
	return ok
}

// Remove deletes the edge. Traversals still referencing it resolve to
// NoEdge later; they are not chased down here since their volume may be
// large.
func (r *Registry) Remove(key EdgeKey) {
	r.edges.Delete(key)
}

// Lookup returns the identifier assigned to the edge, if one has been.
func (r *Registry) Lookup(key EdgeKey) (int64, bool) {
	id, ok := r.edges.Load(key)
	if !ok || id == 0 {
		return 0, false
	}
	return id, true
}

// Keys returns a snapshot of all registered edges.
func (r *Registry) Keys() []EdgeKey {
	keys := make([]EdgeKey, 0, r.edges.Size())
	r.edges.Range(func(key EdgeKey, _ int64) bool {
		keys = append(keys, key)
		return true
	})
	return keys
}

func (r *Registry) Len() int {
	return r.edges.Size()
}

// ApplyAssignments installs the identifiers produced by geometry
// generation. Edges absent from ids degenerated there and are removed
// rather than assigned.
func (r *Registry) ApplyAssignments(ids map[EdgeKey]int64) {
	r.edges.Range(func(key EdgeKey, _ int64) bool {
		if id, ok := ids[key]; ok {
			r.edges.Store(key, id)
		} else {
			r.edges.Delete(key)
		}
		return true
	})
}
