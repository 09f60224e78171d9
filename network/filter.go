package network

// RemoveMissingStops deletes every registered edge whose endpoints cannot
// be located in the resolved stop set and returns the removed keys. The
// offending stop ids are aggregated into a single warning category rather
// than warned per occurrence. Traversals referencing removed edges are left
// alone; resolution turns them into NoEdge.
func RemoveMissingStops(reg *Registry, stopExists func(stopID string) bool, warns *WarningAggregator) []EdgeKey {
	var removed []EdgeKey
	for _, key := range reg.Keys() {
		bad := false
		if !stopExists(key.FromStop) {
			warns.Add(WarningMissingStop, key.FromStop)
			bad = true
		}
		if !stopExists(key.ToStop) {
			warns.Add(WarningMissingStop, key.ToStop)
			bad = true
		}
		if bad {
			reg.Remove(key)
			removed = append(removed, key)
		}
	}
	return removed
}
