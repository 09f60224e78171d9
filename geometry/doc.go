// Package geometry materializes registered edges as straight line features
// between stop coordinates and assigns each surviving line a persistent
// numeric identifier. Edges whose endpoints are unknown or coincident
// produce no line; their absence from the identifier mapping is how
// downstream resolution learns they were dropped.
package geometry
