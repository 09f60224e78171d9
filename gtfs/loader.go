package gtfs

import (
	"archive/zip"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// tableFiles lists the GTFS files the loader consumes, in load order.
// frequencies.txt is optional.
var tableFiles = []string{"routes.txt", "trips.txt", "stops.txt", "stop_times.txt", "frequencies.txt"}

// Load reads a GTFS dataset from a directory of .txt files or a .zip
// archive.
func Load(path string) (*Feed, error) {
	if strings.HasSuffix(strings.ToLower(path), ".zip") {
		return loadZip(path)
	}
	return loadDir(path)
}

func loadDir(dir string) (*Feed, error) {
	return load(func(name string) (io.ReadCloser, bool, error) {
		f, err := os.Open(filepath.Join(dir, name))
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		if err != nil {
			return nil, false, err
		}
		return f, true, nil
	})
}

func loadZip(path string) (*Feed, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	return load(func(name string) (io.ReadCloser, bool, error) {
		for _, f := range zr.File {
			if strings.EqualFold(filepath.Base(f.Name), name) {
				rc, err := f.Open()
				if err != nil {
					return nil, false, err
				}
				return rc, true, nil
			}
		}
		return nil, false, nil
	})
}

func load(open func(name string) (io.ReadCloser, bool, error)) (*Feed, error) {
	feed := &Feed{StopTimes: make(map[string][]StopTime)}
	for _, name := range tableFiles {
		rc, ok, err := open(name)
		if err != nil {
			return nil, err
		}
		if !ok {
			if name == "frequencies.txt" {
				continue
			}
			return nil, fmt.Errorf("gtfs: required file %s not found", name)
		}
		err = consume(feed, name, rc)
		rc.Close()
		if err != nil {
			return nil, err
		}
	}

	for trip := range feed.StopTimes {
		sts := feed.StopTimes[trip]
		sort.Slice(sts, func(i, j int) bool { return sts[i].Seq < sts[j].Seq })
	}
	return feed, nil
}

func consume(feed *Feed, name string, r io.Reader) error {
	csvr := csv.NewReader(r)
	rec, err := csvr.ReadAll()
	if err != nil {
		return fmt.Errorf("gtfs: reading %s: %w", name, err)
	}
	if len(rec) == 0 {
		return nil
	}
	head := rec[0]
	idx := func(col string) int {
		for i, h := range head {
			if strings.EqualFold(strings.TrimSpace(h), col) {
				return i
			}
		}
		return -1
	}

	switch name {
	case "routes.txt":
		rID := idx("route_id")
		rType := idx("route_type")
		if rID < 0 {
			return fmt.Errorf("gtfs: routes.txt has no route_id column")
		}
		for _, row := range rec[1:] {
			route := Route{RouteID: row[rID]}
			if rType >= 0 {
				route.RouteType = row[rType]
			}
			feed.Routes = append(feed.Routes, route)
		}
	case "trips.txt":
		tID := idx("trip_id")
		rID := idx("route_id")
		if tID < 0 || rID < 0 {
			return fmt.Errorf("gtfs: trips.txt is missing trip_id or route_id")
		}
		for _, row := range rec[1:] {
			feed.Trips = append(feed.Trips, Trip{TripID: row[tID], RouteID: row[rID]})
		}
	case "stops.txt":
		sID := idx("stop_id")
		sName := idx("stop_name")
		sLat := idx("stop_lat")
		sLon := idx("stop_lon")
		sLoc := idx("location_type")
		sParent := idx("parent_station")
		if sID < 0 {
			return fmt.Errorf("gtfs: stops.txt has no stop_id column")
		}
		for _, row := range rec[1:] {
			stop := Stop{StopID: row[sID]}
			if sName >= 0 {
				stop.StopName = row[sName]
			}
			if sLat >= 0 && sLon >= 0 {
				stop.Lat, _ = strconv.ParseFloat(row[sLat], 64)
				stop.Lon, _ = strconv.ParseFloat(row[sLon], 64)
			}
			if sLoc >= 0 && row[sLoc] != "" {
				stop.LocationType, _ = strconv.Atoi(row[sLoc])
			}
			if sParent >= 0 {
				stop.ParentStation = row[sParent]
			}
			feed.Stops = append(feed.Stops, stop)
		}
	case "stop_times.txt":
		tID := idx("trip_id")
		sID := idx("stop_id")
		sq := idx("stop_sequence")
		arr := idx("arrival_time")
		dep := idx("departure_time")
		if tID < 0 || sID < 0 || sq < 0 {
			return fmt.Errorf("gtfs: stop_times.txt is missing trip_id, stop_id or stop_sequence")
		}
		for _, row := range rec[1:] {
			seq, err := strconv.Atoi(row[sq])
			if err != nil {
				return fmt.Errorf("gtfs: bad stop_sequence %q for trip %s", row[sq], row[tID])
			}
			st := StopTime{TripID: row[tID], StopID: row[sID], Seq: seq}
			arrRaw, depRaw := "", ""
			if arr >= 0 {
				arrRaw = row[arr]
			}
			if dep >= 0 {
				depRaw = row[dep]
			}
			// Timepoint-only rows may leave one of the two blank.
			if arrRaw == "" {
				arrRaw = depRaw
			}
			if depRaw == "" {
				depRaw = arrRaw
			}
			if arrRaw == "" {
				return fmt.Errorf("gtfs: stop_times row for trip %s stop %s has no times", row[tID], row[sID])
			}
			if st.Arrival, err = ParseTime(arrRaw); err != nil {
				return fmt.Errorf("gtfs: trip %s: %w", row[tID], err)
			}
			if st.Departure, err = ParseTime(depRaw); err != nil {
				return fmt.Errorf("gtfs: trip %s: %w", row[tID], err)
			}
			feed.StopTimes[st.TripID] = append(feed.StopTimes[st.TripID], st)
		}
	case "frequencies.txt":
		tID := idx("trip_id")
		start := idx("start_time")
		end := idx("end_time")
		headway := idx("headway_secs")
		if tID < 0 || start < 0 || end < 0 || headway < 0 {
			return fmt.Errorf("gtfs: frequencies.txt is missing required columns")
		}
		for _, row := range rec[1:] {
			startSec, err := ParseTime(row[start])
			if err != nil {
				return fmt.Errorf("gtfs: trip %s: %w", row[tID], err)
			}
			endSec, err := ParseTime(row[end])
			if err != nil {
				return fmt.Errorf("gtfs: trip %s: %w", row[tID], err)
			}
			hw, err := strconv.Atoi(row[headway])
			if err != nil {
				return fmt.Errorf("gtfs: bad headway_secs %q for trip %s", row[headway], row[tID])
			}
			feed.Frequencies = append(feed.Frequencies, Frequency{
				TripID:  row[tID],
				Start:   float64(startSec),
				End:     float64(endSec),
				Headway: hw,
			})
		}
	}
	return nil
}
