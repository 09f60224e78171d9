package gtfs_test

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urban-transit/netbuild/gtfs"
)

func writeFeed(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func minimalFeedFiles() map[string]string {
	return map[string]string{
		"routes.txt": "route_id,route_short_name,route_type\n" +
			"R1,10,3\n" +
			"R2,M1,1\n",
		"trips.txt": "route_id,service_id,trip_id\n" +
			"R1,WK,T1\n" +
			"R2,WK,T2\n",
		"stops.txt": "stop_id,stop_name,stop_lat,stop_lon,location_type,parent_station\n" +
			"A,Alpha,41.38,2.17,0,\n" +
			"B,Beta,41.39,2.18,0,STA\n" +
			"STA,Station,41.39,2.18,1,\n" +
			"UNUSED,Ghost Station,41.40,2.19,1,\n" +
			"ENT,Entrance,41.39,2.18,2,STA\n" +
			"ORPHAN,Lost Entrance,41.41,2.20,2,UNUSED\n",
		"stop_times.txt": "trip_id,arrival_time,departure_time,stop_id,stop_sequence\n" +
			"T1,08:00:00,08:00:00,A,1\n" +
			"T1,08:05:00,08:06:00,B,2\n" +
			"T2,09:10:00,09:10:00,B,2\n" +
			"T2,09:00:00,09:00:00,A,1\n",
	}
}

func TestLoadDir(t *testing.T) {
	dir := writeFeed(t, minimalFeedFiles())

	feed, err := gtfs.Load(dir)
	require.NoError(t, err)

	assert.Len(t, feed.Routes, 2)
	assert.Equal(t, "3", feed.Routes[0].RouteType)
	assert.Len(t, feed.Trips, 2)
	assert.Len(t, feed.Stops, 6)
	assert.Empty(t, feed.Frequencies)

	// Stop times come back grouped per trip and ordered by stop_sequence,
	// regardless of file order.
	require.Len(t, feed.StopTimes["T2"], 2)
	assert.Equal(t, "A", feed.StopTimes["T2"][0].StopID)
	assert.Equal(t, "B", feed.StopTimes["T2"][1].StopID)
	assert.Equal(t, 9*3600, feed.StopTimes["T2"][0].Arrival)

	require.Len(t, feed.StopTimes["T1"], 2)
	assert.Equal(t, 8*3600+5*60, feed.StopTimes["T1"][1].Arrival)
	assert.Equal(t, 8*3600+6*60, feed.StopTimes["T1"][1].Departure)
}

func TestLoadZip(t *testing.T) {
	zipPath := filepath.Join(t.TempDir(), "feed.zip")
	f, err := os.Create(zipPath)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for name, content := range minimalFeedFiles() {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	feed, err := gtfs.Load(zipPath)
	require.NoError(t, err)

	assert.Len(t, feed.Routes, 2)
	assert.Len(t, feed.StopTimes["T1"], 2)
}

func TestLoadFrequencies(t *testing.T) {
	files := minimalFeedFiles()
	files["frequencies.txt"] = "trip_id,start_time,end_time,headway_secs\n" +
		"T1,06:00:00,10:00:00,600\n" +
		"T1,10:00:00,16:00:00,900\n"
	dir := writeFeed(t, files)

	feed, err := gtfs.Load(dir)
	require.NoError(t, err)

	require.Len(t, feed.Frequencies, 2)
	assert.Equal(t, "T1", feed.Frequencies[0].TripID)
	assert.Equal(t, float64(6*3600), feed.Frequencies[0].Start)
	assert.Equal(t, float64(10*3600), feed.Frequencies[0].End)
	assert.Equal(t, 600, feed.Frequencies[0].Headway)
}

func TestLoadMissingRequiredFile(t *testing.T) {
	files := minimalFeedFiles()
	delete(files, "stop_times.txt")
	dir := writeFeed(t, files)

	_, err := gtfs.Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stop_times.txt")
}

func TestLoadMalformedTime(t *testing.T) {
	files := minimalFeedFiles()
	files["stop_times.txt"] = "trip_id,arrival_time,departure_time,stop_id,stop_sequence\n" +
		"T1,junk,08:00:00,A,1\n"
	dir := writeFeed(t, files)

	_, err := gtfs.Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "T1")
}

func TestLoadBlankTimeFallback(t *testing.T) {
	files := minimalFeedFiles()
	files["stop_times.txt"] = "trip_id,arrival_time,departure_time,stop_id,stop_sequence\n" +
		"T1,,08:00:00,A,1\n" +
		"T1,08:05:00,,B,2\n"
	dir := writeFeed(t, files)

	feed, err := gtfs.Load(dir)
	require.NoError(t, err)

	sts := feed.StopTimes["T1"]
	require.Len(t, sts, 2)
	assert.Equal(t, sts[0].Departure, sts[0].Arrival)
	assert.Equal(t, sts[1].Arrival, sts[1].Departure)
}

func TestResolvedStops(t *testing.T) {
	dir := writeFeed(t, minimalFeedFiles())
	feed, err := gtfs.Load(dir)
	require.NoError(t, err)

	stops := feed.ResolvedStops()

	assert.Contains(t, stops, "A")
	assert.Contains(t, stops, "B")
	// STA is a used parent station, ENT an entrance of a used station.
	assert.Contains(t, stops, "STA")
	assert.Contains(t, stops, "ENT")
	// Unused stations and orphaned entrances are filtered out.
	assert.NotContains(t, stops, "UNUSED")
	assert.NotContains(t, stops, "ORPHAN")
}
