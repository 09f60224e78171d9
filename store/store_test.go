package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urban-transit/netbuild/geometry"
	"github.com/urban-transit/netbuild/network"
	"github.com/urban-transit/netbuild/store"
)

func openTestDB(t *testing.T) *store.DB {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "netbuild.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpenCreatesSchema(t *testing.T) {
	db := openTestDB(t)

	var n int
	err := db.Conn().QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name IN ('runs', 'schedules', 'linefeatures')`,
	).Scan(&n)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestRunLifecycle(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	runID, err := db.CreateRun(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, runID)

	require.NoError(t, db.FinishRun(ctx, runID, 10, 200, 30))

	var trips, traversals, edges int
	var finished string
	err = db.Conn().QueryRow(
		`SELECT trip_count, traversal_count, edge_count, finished_at_utc FROM runs WHERE run_id = ?`, runID,
	).Scan(&trips, &traversals, &edges, &finished)
	require.NoError(t, err)
	assert.Equal(t, 10, trips)
	assert.Equal(t, 200, traversals)
	assert.Equal(t, 30, edges)
	assert.NotEmpty(t, finished)
}

func TestInsertTraversalsAndBackfill(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	kept := network.EdgeKey{FromStop: "A", ToStop: "B", Mode: network.ModeFromCode(3)}
	dropped := network.EdgeKey{FromStop: "B", ToStop: "C", Mode: network.ModeFromCode(3)}

	recs := []network.Traversal{
		{Key: kept, Start: 0, End: 5, TripID: "T1"},
		{Key: dropped, Start: 10, End: 15, TripID: "T1"},
		{Key: kept, Start: 600, End: 605, TripID: "T2"},
	}
	require.NoError(t, db.InsertTraversals(ctx, recs))

	// Before backfill every source_oid is NULL.
	var nulls int
	err := db.Conn().QueryRow(`SELECT count(*) FROM schedules WHERE source_oid IS NULL`).Scan(&nulls)
	require.NoError(t, err)
	assert.Equal(t, 3, nulls)

	reg := network.NewRegistry()
	reg.Register(kept)
	reg.Register(dropped)
	reg.ApplyAssignments(map[network.EdgeKey]int64{kept: 42})

	require.NoError(t, db.AssignEdgeIDs(ctx, reg))

	var keptRows, droppedRows int
	require.NoError(t, db.Conn().QueryRow(
		`SELECT count(*) FROM schedules WHERE source_oid = 42`).Scan(&keptRows))
	require.NoError(t, db.Conn().QueryRow(
		`SELECT count(*) FROM schedules WHERE source_oid = -1`).Scan(&droppedRows))
	assert.Equal(t, 2, keptRows)
	assert.Equal(t, 1, droppedRows)

	// Re-running the backfill with an unchanged registry is a no-op.
	require.NoError(t, db.AssignEdgeIDs(ctx, reg))
	require.NoError(t, db.Conn().QueryRow(
		`SELECT count(*) FROM schedules WHERE source_oid = 42`).Scan(&keptRows))
	assert.Equal(t, 2, keptRows)
}

func TestInsertLineFeatures(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	lines := []geometry.Line{
		{
			ID:          1,
			Key:         network.EdgeKey{FromStop: "A", ToStop: "B", Mode: network.ModeFromCode(3)},
			LengthKM:    1.5,
			Description: "Bus",
		},
		{
			ID:          2,
			Key:         network.EdgeKey{FromStop: "B", ToStop: "C", Mode: network.ParseMode("monorail")},
			LengthKM:    2.5,
			Description: "Other / Type not specified (monorail)",
		},
	}
	require.NoError(t, db.InsertLineFeatures(ctx, lines))

	var routeType *int64
	var text string
	require.NoError(t, db.Conn().QueryRow(
		`SELECT route_type, route_type_text FROM linefeatures WHERE source_oid = 1`).Scan(&routeType, &text))
	require.NotNil(t, routeType)
	assert.Equal(t, int64(3), *routeType)
	assert.Equal(t, "Bus", text)

	// Non-numeric modes store NULL for route_type.
	require.NoError(t, db.Conn().QueryRow(
		`SELECT route_type, route_type_text FROM linefeatures WHERE source_oid = 2`).Scan(&routeType, &text))
	assert.Nil(t, routeType)
	assert.Equal(t, "Other / Type not specified (monorail)", text)
}
