package gtfs

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"fmt"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/theoremus-urban-solutions/transit-fares/errs"
	"github.com/theoremus-urban-solutions/transit-fares/internal"
)

// Options tune an import.
type Options struct {
	// DefaultZone is assigned to stops without a usable zone_id. Zero means 1.
	DefaultZone int
	// Source names the feed in log lines. Defaults to the zip file name.
	Source string
}

var requiredFiles = []string{"stops.txt", "routes.txt", "trips.txt", "stop_times.txt"}

// ParseZipFile imports a GTFS zip from disk.
func ParseZipFile(zipPath string, opts Options) (*Feed, error) {
	zr, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, fmt.Errorf("open GTFS zip: %w", err)
	}
	defer zr.Close()
	if opts.Source == "" {
		opts.Source = filepath.Base(zipPath)
	}
	return parse(&zr.Reader, opts)
}

// ParseZipBytes imports a GTFS zip held in memory.
func ParseZipBytes(data []byte, opts Options) (*Feed, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, errs.InvalidConfig("GTFS zip: %v", err)
	}
	if opts.Source == "" {
		opts.Source = "feed"
	}
	return parse(zr, opts)
}

// csvTable is one GTFS file with a case-insensitive header lookup.
type csvTable struct {
	head []string
	rows [][]string
}

func (t *csvTable) col(name string) int {
	for i, h := range t.head {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i
		}
	}
	return -1
}

func field(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func readTables(zr *zip.Reader) (map[string]*csvTable, error) {
	wanted := map[string]bool{}
	for _, name := range requiredFiles {
		wanted[name] = true
	}
	tables := map[string]*csvTable{}
	for _, f := range zr.File {
		name := strings.ToLower(path.Base(f.Name))
		if !wanted[name] {
			continue
		}
		t, err := consumeCSV(f)
		if err != nil {
			return nil, errs.InvalidConfig("GTFS %s: %v", name, err)
		}
		tables[name] = t
	}
	for _, name := range requiredFiles {
		if tables[name] == nil {
			return nil, errs.InvalidConfig("GTFS feed has no %s", name)
		}
	}
	return tables, nil
}

func consumeCSV(f *zip.File) (*csvTable, error) {
	r, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer r.Close()
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1
	rec, err := csvr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rec) == 0 {
		return &csvTable{}, nil
	}
	head := rec[0]
	if len(head) > 0 {
		head[0] = strings.TrimPrefix(head[0], "\ufeff")
	}
	return &csvTable{head: head, rows: rec[1:]}, nil
}

func requireCols(t *csvTable, file string, cols ...string) ([]int, error) {
	idx := make([]int, len(cols))
	for i, c := range cols {
		idx[i] = t.col(c)
		if idx[i] < 0 {
			return nil, errs.InvalidConfig("GTFS %s has no %s column", file, c)
		}
	}
	return idx, nil
}

type stopTime struct {
	stop      string
	seq       int
	arrival   string
	departure string
}

type segKey struct {
	from, to, route string
}

func parse(zr *zip.Reader, opts Options) (*Feed, error) {
	if opts.DefaultZone <= 0 {
		opts.DefaultZone = 1
	}
	tables, err := readTables(zr)
	if err != nil {
		return nil, err
	}
	w := NewWarningAggregator()
	feed := &Feed{}

	// stops.txt
	stopsT := tables["stops.txt"]
	cols, err := requireCols(stopsT, "stops.txt", "stop_id")
	if err != nil {
		return nil, err
	}
	sID, sName, sZone := cols[0], stopsT.col("stop_name"), stopsT.col("zone_id")
	stops := map[string]bool{}
	for _, row := range stopsT.rows {
		id := field(row, sID)
		if id == "" || stops[id] {
			continue
		}
		stops[id] = true
		zone, err := strconv.Atoi(field(row, sZone))
		if err != nil || zone < 1 {
			w.Add(WarningNoZone, id)
			zone = opts.DefaultZone
		}
		name := field(row, sName)
		if name == "" {
			name = id
		}
		feed.Stops = append(feed.Stops, Stop{ID: id, Name: name, Zone: zone})
	}

	// routes.txt
	routesT := tables["routes.txt"]
	if cols, err = requireCols(routesT, "routes.txt", "route_id"); err != nil {
		return nil, err
	}
	rID, rShort, rLong, rType := cols[0], routesT.col("route_short_name"), routesT.col("route_long_name"), routesT.col("route_type")
	routes := map[string]Route{}
	for _, row := range routesT.rows {
		id := field(row, rID)
		if id == "" {
			continue
		}
		typ, err := strconv.Atoi(field(row, rType))
		if err != nil {
			w.Add(WarningUnknownRouteType, id)
			typ = -1
		}
		name := field(row, rShort)
		if name == "" {
			name = field(row, rLong)
		}
		if name == "" {
			name = id
		}
		routes[id] = Route{ID: id, Name: name, Type: typ}
	}

	// trips.txt
	tripsT := tables["trips.txt"]
	if cols, err = requireCols(tripsT, "trips.txt", "trip_id", "route_id"); err != nil {
		return nil, err
	}
	tripRoute := map[string]string{}
	for _, row := range tripsT.rows {
		trip, route := field(row, cols[0]), field(row, cols[1])
		if _, ok := routes[route]; !ok {
			w.Add(WarningUnknownRoute, trip)
			continue
		}
		tripRoute[trip] = route
	}

	// stop_times.txt
	stT := tables["stop_times.txt"]
	if cols, err = requireCols(stT, "stop_times.txt", "trip_id", "stop_id", "stop_sequence"); err != nil {
		return nil, err
	}
	tID, stID, sq := cols[0], cols[1], cols[2]
	arrIdx, depIdx := stT.col("arrival_time"), stT.col("departure_time")
	byTrip := map[string][]stopTime{}
	for _, row := range stT.rows {
		trip := field(row, tID)
		if _, ok := tripRoute[trip]; !ok {
			w.Add(WarningUnknownTrip, trip)
			continue
		}
		seq, err := strconv.Atoi(field(row, sq))
		if err != nil {
			return nil, errs.InvalidConfig("GTFS stop_times.txt: trip %s has stop_sequence %q", trip, field(row, sq))
		}
		byTrip[trip] = append(byTrip[trip], stopTime{
			stop:      field(row, stID),
			seq:       seq,
			arrival:   field(row, arrIdx),
			departure: field(row, depIdx),
		})
	}

	best := map[segKey]int{}
	for trip, times := range byTrip {
		sort.Slice(times, func(i, j int) bool { return times[i].seq < times[j].seq })
		route := tripRoute[trip]
		for i := 1; i < len(times); i++ {
			prev, cur := times[i-1], times[i]
			if !stops[prev.stop] || !stops[cur.stop] {
				w.Add(WarningUnknownStop, trip)
				continue
			}
			if prev.stop == cur.stop {
				continue
			}
			dep, err1 := parseGTFSTime(firstNonEmpty(prev.departure, prev.arrival))
			arr, err2 := parseGTFSTime(firstNonEmpty(cur.arrival, cur.departure))
			if err1 != nil || err2 != nil {
				w.Add(WarningNoStopTime, trip)
				continue
			}
			if arr < dep {
				w.Add(WarningBackwardsTime, trip)
				continue
			}
			minutes := (arr - dep + 30) / 60
			k := segKey{prev.stop, cur.stop, route}
			if m, ok := best[k]; !ok || minutes < m {
				best[k] = minutes
			}
		}
	}

	used := map[string]bool{}
	for k, m := range best {
		feed.Segments = append(feed.Segments, Segment{From: k.from, To: k.to, Route: k.route, Minutes: m})
		used[k.route] = true
	}
	for id := range used {
		feed.Routes = append(feed.Routes, routes[id])
	}
	sort.Slice(feed.Stops, func(i, j int) bool { return feed.Stops[i].ID < feed.Stops[j].ID })
	sort.Slice(feed.Routes, func(i, j int) bool { return feed.Routes[i].ID < feed.Routes[j].ID })
	sort.Slice(feed.Segments, func(i, j int) bool {
		a, b := feed.Segments[i], feed.Segments[j]
		if a.From != b.From {
			return a.From < b.From
		}
		if a.To != b.To {
			return a.To < b.To
		}
		return a.Route < b.Route
	})

	feed.Warnings = map[string]int{}
	for _, kind := range w.Kinds() {
		feed.Warnings[kind] = w.Count(kind)
	}
	w.LogAll(opts.Source)
	internal.Infof("GTFS %s: %d stops, %d routes, %d connections", opts.Source, len(feed.Stops), len(feed.Routes), len(feed.Segments))
	return feed, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// parseGTFSTime parses H:MM:SS (hours may exceed 23) to seconds after midnight.
func parseGTFSTime(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("time %q is not H:MM:SS", s)
	}
	var v [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("time %q is not H:MM:SS", s)
		}
		v[i] = n
	}
	if v[1] > 59 || v[2] > 59 {
		return 0, fmt.Errorf("time %q is out of range", s)
	}
	return v[0]*3600 + v[1]*60 + v[2], nil
}
