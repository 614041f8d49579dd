package gtfs

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theoremus-urban-solutions/transit-fares/config"
	"github.com/theoremus-urban-solutions/transit-fares/errs"
	"github.com/theoremus-urban-solutions/transit-fares/network"
)

func buildZip(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func sampleFeed() map[string]string {
	return map[string]string{
		"stops.txt": "\ufeffstop_id,stop_name,zone_id\n" +
			"WFR,Waterfront,1\n" +
			"BRD,Burrard,1\n" +
			"CMB,Commercial-Broadway,2\n" +
			"LHG,Lonsdale Quay,\n",
		"routes.txt": "route_id,route_short_name,route_long_name,route_type\n" +
			"EXPO,,Expo Line,1\n" +
			"SB,SeaBus,,4\n" +
			"99,99,B-Line,3\n" +
			"UNUSED,U,,3\n",
		"trips.txt": "route_id,trip_id\n" +
			"EXPO,E1\n" +
			"EXPO,E2\n" +
			"SB,S1\n" +
			"99,B1\n" +
			"GHOST,G1\n",
		"stop_times.txt": "trip_id,arrival_time,departure_time,stop_id,stop_sequence\n" +
			// listed out of order on purpose
			"E1,08:02:00,08:02:30,BRD,2\n" +
			"E1,08:00:00,08:00:00,WFR,1\n" +
			"E1,08:11:00,08:11:00,CMB,3\n" +
			// slower trip on the same hops
			"E2,25:00:00,25:00:00,WFR,1\n" +
			"E2,25:04:00,25:04:00,BRD,2\n" +
			"S1,09:00:00,09:00:00,WFR,1\n" +
			"S1,09:12:00,09:12:00,LHG,2\n" +
			"B1,10:00:00,10:00:00,CMB,1\n" +
			"B1,09:55:00,09:55:00,BRD,2\n" +
			"X9,10:00:00,10:00:00,CMB,1\n",
	}
}

func TestParseZipBytes(t *testing.T) {
	feed, err := ParseZipBytes(buildZip(t, sampleFeed()), Options{DefaultZone: 3})
	require.NoError(t, err)

	assert.Equal(t, []Stop{
		{ID: "BRD", Name: "Burrard", Zone: 1},
		{ID: "CMB", Name: "Commercial-Broadway", Zone: 2},
		{ID: "LHG", Name: "Lonsdale Quay", Zone: 3},
		{ID: "WFR", Name: "Waterfront", Zone: 1},
	}, feed.Stops)

	assert.Equal(t, []Route{
		{ID: "EXPO", Name: "Expo Line", Type: 1},
		{ID: "SB", Name: "SeaBus", Type: 4},
	}, feed.Routes)

	// 08:00:00 -> 08:02:00 is 2 minutes, 08:02:30 -> 08:11:00 rounds to 9
	assert.Equal(t, []Segment{
		{From: "BRD", To: "CMB", Route: "EXPO", Minutes: 9},
		{From: "WFR", To: "BRD", Route: "EXPO", Minutes: 2},
		{From: "WFR", To: "LHG", Route: "SB", Minutes: 12},
	}, feed.Segments)

	assert.Equal(t, map[string]int{
		WarningNoZone:        1,
		WarningUnknownRoute:  1,
		WarningUnknownTrip:   1,
		WarningBackwardsTime: 1,
	}, feed.Warnings)
}

func TestModeForRouteType(t *testing.T) {
	cases := map[int]network.Mode{
		0:   network.ModeTrain,
		1:   network.ModeTrain,
		2:   network.ModeTrain,
		3:   network.ModeBus,
		4:   network.ModeTrain,
		11:  network.ModeBus,
		700: network.ModeBus,
		715: network.ModeBus,
		799: network.ModeBus,
		800: network.ModeTrain,
		-1:  network.ModeTrain,
	}
	for typ, want := range cases {
		assert.Equal(t, want, ModeForRouteType(typ), "route_type %d", typ)
	}
}

func TestParseZipBytes_Invalid(t *testing.T) {
	t.Run("not a zip", func(t *testing.T) {
		_, err := ParseZipBytes([]byte("nope"), Options{})
		assert.ErrorIs(t, err, errs.ErrInvalidConfig)
	})
	t.Run("missing file", func(t *testing.T) {
		files := sampleFeed()
		delete(files, "trips.txt")
		_, err := ParseZipBytes(buildZip(t, files), Options{})
		assert.ErrorIs(t, err, errs.ErrInvalidConfig)
	})
	t.Run("missing column", func(t *testing.T) {
		files := sampleFeed()
		files["stop_times.txt"] = "trip_id,stop_id\nE1,WFR\n"
		_, err := ParseZipBytes(buildZip(t, files), Options{})
		assert.ErrorIs(t, err, errs.ErrInvalidConfig)
	})
	t.Run("bad sequence", func(t *testing.T) {
		files := sampleFeed()
		files["stop_times.txt"] = "trip_id,stop_id,stop_sequence\nE1,WFR,first\n"
		_, err := ParseZipBytes(buildZip(t, files), Options{})
		assert.ErrorIs(t, err, errs.ErrInvalidConfig)
	})
}

func TestParseZipBytes_NestedAndMissingTimes(t *testing.T) {
	files := map[string]string{}
	for name, content := range sampleFeed() {
		files["feed/"+name] = content
	}
	files["feed/stop_times.txt"] = "trip_id,arrival_time,departure_time,stop_id,stop_sequence\n" +
		"E1,,08:00:00,WFR,1\n" +
		"E1,,,BRD,2\n" +
		"E1,08:10:00,,CMB,3\n" +
		"S1,09:00:00,09:00:00,WFR,1\n" +
		"S1,09:12:00,09:12:00,NOWHERE,2\n"

	feed, err := ParseZipBytes(buildZip(t, files), Options{})
	require.NoError(t, err)
	assert.Empty(t, feed.Segments)
	assert.Equal(t, 2, feed.Warnings[WarningNoStopTime])
	assert.Equal(t, 1, feed.Warnings[WarningUnknownStop])
	assert.Equal(t, 1, feed.Warnings[WarningNoZone])
}

func TestFeed_NetworkFile(t *testing.T) {
	feed, err := ParseZipBytes(buildZip(t, sampleFeed()), Options{})
	require.NoError(t, err)

	fares := &config.FaresSpec{Zones: map[string]float64{"1": 3.15, "2": 4.55}, BusFlat: 3.15}
	nf := feed.NetworkFile(fares)
	assert.Len(t, nf.Stations, 4)
	assert.Equal(t, []config.LineSpec{
		{ID: "EXPO", Name: "Expo Line", Mode: "train"},
		{ID: "SB", Name: "SeaBus", Mode: "train"},
	}, nf.Lines)
	assert.Same(t, fares, nf.Fares)

	net, engine, err := config.Build(nf, nil, config.AppConfig{})
	require.NoError(t, err)
	assert.Equal(t, 3, net.ConnectionCount())
	assert.NotNil(t, engine)
	assert.Empty(t, net.Outgoing("CMB"), "segments stay directed")
}

func TestCache_RoundTrip(t *testing.T) {
	feed, err := ParseZipBytes(buildZip(t, sampleFeed()), Options{})
	require.NoError(t, err)

	data, err := SerializeFeed(feed)
	require.NoError(t, err)
	back, err := DeserializeFeed(data)
	require.NoError(t, err)
	assert.Equal(t, feed, back)

	_, err = DeserializeFeed([]byte("garbage"))
	assert.Error(t, err)
}

func TestLoadFeed_Cache(t *testing.T) {
	dir := t.TempDir()
	zipPath := filepath.Join(dir, "feed.zip")
	cachePath := filepath.Join(dir, "feed.gob")
	require.NoError(t, os.WriteFile(zipPath, buildZip(t, sampleFeed()), 0644))

	feed, err := LoadFeed(zipPath, cachePath, Options{})
	require.NoError(t, err)
	require.FileExists(t, cachePath)

	// a fresh cache is used even when the zip would no longer parse
	require.NoError(t, os.WriteFile(zipPath, []byte("broken"), 0644))
	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(zipPath, past, past))
	cached, err := LoadFeed(zipPath, cachePath, Options{})
	require.NoError(t, err)
	assert.Equal(t, feed, cached)

	// a stale cache is ignored
	future := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(zipPath, future, future))
	_, err = LoadFeed(zipPath, cachePath, Options{})
	assert.Error(t, err)

	// without a cache path the zip is always parsed
	require.NoError(t, os.WriteFile(zipPath, buildZip(t, sampleFeed()), 0644))
	fresh, err := LoadFeed(zipPath, "", Options{})
	require.NoError(t, err)
	assert.Equal(t, feed.Segments, fresh.Segments)
}

func TestWarningAggregator(t *testing.T) {
	w := NewWarningAggregator()
	for _, id := range []string{"a", "b", "c", "d"} {
		w.Add(WarningNoZone, id)
	}
	w.Add(WarningBackwardsTime, "T1")

	assert.Equal(t, 4, w.Count(WarningNoZone))
	assert.Equal(t, 0, w.Count(WarningUnknownStop))
	assert.Equal(t, []string{WarningBackwardsTime, WarningNoZone}, w.Kinds())
	assert.Contains(t, w.message(WarningNoZone, "feed.zip"), "(4 occurrences)")
	assert.Contains(t, w.message(WarningNoZone, "feed.zip"), "Examples: a, b, c")
}
