package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/urban-transit/netbuild/geometry"
	"github.com/urban-transit/netbuild/network"
)

// CreateRun records the start of a build run and returns its identifier.
func (db *DB) CreateRun(ctx context.Context) (string, error) {
	runID := uuid.New().String()
	_, err := db.conn.ExecContext(ctx,
		"INSERT INTO runs (run_id, started_at_utc) VALUES (?, ?)",
		runID, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return "", fmt.Errorf("store: creating run: %w", err)
	}
	return runID, nil
}

// FinishRun stamps the run with its completion time and counts.
func (db *DB) FinishRun(ctx context.Context, runID string, tripCount, traversalCount, edgeCount int) error {
	_, err := db.conn.ExecContext(ctx,
		`UPDATE runs SET finished_at_utc = ?, trip_count = ?, traversal_count = ?, edge_count = ?
		 WHERE run_id = ?`,
		time.Now().UTC().Format(time.RFC3339), tripCount, traversalCount, edgeCount, runID,
	)
	if err != nil {
		return fmt.Errorf("store: finishing run %s: %w", runID, err)
	}
	return nil
}

// InsertTraversals writes every traversal to the schedules table in one
// transaction. source_oid is left NULL; AssignEdgeIDs fills it in once
// geometry generation has run.
func (db *DB) InsertTraversals(ctx context.Context, recs []network.Traversal) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin traversal insert: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO schedules (from_stop, to_stop, mode, start_time, end_time, trip_id)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("store: prepare traversal insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range recs {
		_, err := stmt.ExecContext(ctx,
			rec.Key.FromStop, rec.Key.ToStop, rec.Key.Mode.String(),
			rec.Start, rec.End, rec.TripID)
		if err != nil {
			return fmt.Errorf("store: inserting traversal for trip %s: %w", rec.TripID, err)
		}
	}
	return tx.Commit()
}

// InsertLineFeatures writes the generated lines in one transaction.
// route_type is NULL when the mode never parsed as an integer code.
func (db *DB) InsertLineFeatures(ctx context.Context, lines []geometry.Line) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin line insert: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO linefeatures (source_oid, from_stop, to_stop, route_type, route_type_text, length_km)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("store: prepare line insert: %w", err)
	}
	defer stmt.Close()

	for _, line := range lines {
		var routeType sql.NullInt64
		if code, ok := line.Key.Mode.Code(); ok {
			routeType = sql.NullInt64{Int64: int64(code), Valid: true}
		}
		_, err := stmt.ExecContext(ctx,
			line.ID, line.Key.FromStop, line.Key.ToStop,
			routeType, line.Description, line.LengthKM)
		if err != nil {
			return fmt.Errorf("store: inserting line %d: %w", line.ID, err)
		}
	}
	return tx.Commit()
}

// AssignEdgeIDs backfills schedules.source_oid from the resolved registry.
// Every row starts at -1 so traversals whose edge was dropped keep the
// no-edge sentinel; surviving edges then overwrite their own rows. Safe to
// re-run against an unchanged registry.
func (db *DB) AssignEdgeIDs(ctx context.Context, reg *network.Registry) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin edge backfill: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "UPDATE schedules SET source_oid = ?", network.NoEdge); err != nil {
		return fmt.Errorf("store: resetting source_oid: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`UPDATE schedules SET source_oid = ? WHERE from_stop = ? AND to_stop = ? AND mode = ?`)
	if err != nil {
		return fmt.Errorf("store: prepare edge backfill: %w", err)
	}
	defer stmt.Close()

	for _, key := range reg.Keys() {
		id, ok := reg.Lookup(key)
		if !ok {
			continue
		}
		if _, err := stmt.ExecContext(ctx, id, key.FromStop, key.ToStop, key.Mode.String()); err != nil {
			return fmt.Errorf("store: backfilling edge %s→%s: %w", key.FromStop, key.ToStop, err)
		}
	}
	return tx.Commit()
}
