// Package gtfs ingests static GTFS feeds from a directory or zip archive
// into in-memory tables: routes, trips, stops, per-trip stop times sorted
// by stop_sequence, and frequency windows. Schedule times are converted to
// integer seconds from service-day start; hours past midnight (25:xx:xx)
// are kept as offsets beyond 24h, never wrapped.
package gtfs
