package geometry

import (
	"math"
	"sort"

	"github.com/urban-transit/netbuild/network"
)

// Point is a WGS84 coordinate.
type Point struct {
	Lon float64
	Lat float64
}

// Line is one materialized edge: a straight feature from the edge's from
// stop to its to stop, annotated with the mode description.
type Line struct {
	ID          int64
	Key         network.EdgeKey
	From        Point
	To          Point
	LengthKM    float64
	Description string
}

// Result holds the surviving lines, the EdgeKey→identifier mapping for
// resolution, and the edges dropped during generation.
type Result struct {
	Lines   []Line
	IDs     map[network.EdgeKey]int64
	Dropped []network.EdgeKey
}

// BuildLines generates a line feature for every edge whose endpoints are
// known and distinct, assigning sequential identifiers starting at 1 in a
// deterministic key order. Missing endpoints and zero-length lines drop the
// edge instead.
func BuildLines(keys []network.EdgeKey, coords map[string]Point) *Result {
	ordered := make([]network.EdgeKey, len(keys))
	copy(ordered, keys)
	sort.Slice(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if a.FromStop != b.FromStop {
			return a.FromStop < b.FromStop
		}
		if a.ToStop != b.ToStop {
			return a.ToStop < b.ToStop
		}
		return a.Mode.String() < b.Mode.String()
	})

	res := &Result{IDs: make(map[network.EdgeKey]int64, len(ordered))}
	var nextID int64 = 1
	for _, key := range ordered {
		from, okFrom := coords[key.FromStop]
		to, okTo := coords[key.ToStop]
		if !okFrom || !okTo {
			res.Dropped = append(res.Dropped, key)
			continue
		}
		length := HaversineKM(from.Lat, from.Lon, to.Lat, to.Lon)
		if length == 0 {
			res.Dropped = append(res.Dropped, key)
			continue
		}
		res.Lines = append(res.Lines, Line{
			ID:          nextID,
			Key:         key,
			From:        from,
			To:          to,
			LengthKM:    length,
			Description: key.Mode.Description(),
		})
		res.IDs[key] = nextID
		nextID++
	}
	return res
}

// HaversineKM returns the great-circle distance between two WGS84 points.
func HaversineKM(lat1, lon1, lat2, lon2 float64) float64 {
	const R = 6371.0
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180
	la1 := lat1 * math.Pi / 180
	la2 := lat2 * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(la1)*math.Cos(la2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return R * c
}
