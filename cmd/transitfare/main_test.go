package main

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theoremus-urban-solutions/transit-fares/config"
	"github.com/theoremus-urban-solutions/transit-fares/errs"
	"github.com/theoremus-urban-solutions/transit-fares/formatter"
)

const testNetwork = "testdata/network.yml"

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--network", testNetwork, "--log-level", "error"}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestRouteCmd_JSON(t *testing.T) {
	out, err := run(t, "route", "wfr", "KGG", "--at", "9:00", "--output", "json")
	require.NoError(t, err)

	var q struct {
		Route struct {
			TotalMinutes int `json:"total_minutes"`
		} `json:"route"`
		Fare struct {
			Kind   string  `json:"kind"`
			Amount float64 `json:"amount"`
		} `json:"fare"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &q))
	assert.Equal(t, 36, q.Route.TotalMinutes)
	assert.Equal(t, "fresh", q.Fare.Kind)
	assert.InDelta(t, 6.20, q.Fare.Amount, 1e-9)
}

func TestRouteCmd_Table(t *testing.T) {
	out, err := run(t, "route", "WFR", "LHG", "--at", "08:15")
	require.NoError(t, err)
	assert.Contains(t, out, "Waterfront (WFR) -> Lonsdale Quay (LHG) at 08:15")
	assert.Contains(t, out, "$3.15 (new fare)")
	assert.Contains(t, out, "bus flat fare")
}

func TestRouteCmd_Errors(t *testing.T) {
	cases := []struct {
		name string
		args []string
		code int
	}{
		{"unknown station", []string{"route", "WFR", "XXX"}, 3},
		{"bad clock", []string{"route", "WFR", "CMB", "--at", "25:00"}, 5},
		{"bad output", []string{"route", "WFR", "CMB", "--output", "xml"}, 2},
		{"missing network", []string{"route", "WFR", "CMB", "--network", "does-not-exist.yml"}, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := run(t, tc.args...)
			require.Error(t, err)
			assert.Equal(t, tc.code, exitCode(err))
		})
	}
}

func TestStationsCmd(t *testing.T) {
	out, err := run(t, "stations")
	require.NoError(t, err)
	assert.Contains(t, out, "King George")
	assert.Contains(t, out, "(5 stations)")
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 1, exitCode(errors.New("boom")))
	assert.Equal(t, 2, exitCode(errs.InvalidConfig("bad")))
	assert.Equal(t, 3, exitCode(errs.NotFound("station", "X")))
	assert.Equal(t, 4, exitCode(fmt.Errorf("wrapped: %w", errs.ErrNoRouteFound)))
	assert.Equal(t, 5, exitCode(errs.ErrInvalidTime))
}

func newTestREPL(t *testing.T) (*sessionREPL, *bytes.Buffer) {
	t.Helper()
	cfg := config.Defaults()
	cfg.Network = testNetwork
	cfg.LogLevel = "error"
	a := &app{cfg: cfg}
	p, f, err := a.newPlanner()
	require.NoError(t, err)
	var out bytes.Buffer
	day := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	return newSessionREPL(p, f, &out, day), &out
}

func TestSessionREPL_Journey(t *testing.T) {
	r, out := newTestREPL(t)

	assert.False(t, r.exec("WFR CMB 9:00"))
	assert.Contains(t, out.String(), "$4.55 (new fare)")

	out.Reset()
	assert.False(t, r.exec("cmb kgg 9:30"))
	assert.Contains(t, out.String(), "$1.65 (fare upgrade)")

	out.Reset()
	assert.False(t, r.exec("KGG WFR 10:00"))
	assert.Contains(t, out.String(), "$0.00 (free transfer)")

	assert.Equal(t, int64(620), int64(r.session.Total()))
	assert.Equal(t, 3, r.session.State().Trips)

	out.Reset()
	assert.False(t, r.exec("history"))
	assert.Contains(t, out.String(), "1. 09:00 WFR -> CMB  $4.55 (fresh)")
	assert.Contains(t, out.String(), "3. 10:00 KGG -> WFR  $0.00 (free_transfer)")
}

func TestSessionREPL_ErrorsKeepState(t *testing.T) {
	r, out := newTestREPL(t)
	require.False(t, r.exec("WFR CMB 9:00"))

	for _, line := range []string{"WFR XXX 9:10", "WFR CMB", "WFR CMB 9:5", "WFR CMB 8:00"} {
		out.Reset()
		assert.False(t, r.exec(line), line)
		assert.Contains(t, out.String(), "Error:", line)
	}
	assert.Equal(t, 1, r.session.State().Trips)
	assert.Equal(t, int64(455), int64(r.session.Total()))
}

func TestSessionREPL_Commands(t *testing.T) {
	r, out := newTestREPL(t)
	assert.False(t, r.exec(""))
	assert.False(t, r.exec("help"))
	assert.Contains(t, out.String(), "FROM TO HH:MM")

	out.Reset()
	assert.False(t, r.exec("state"))
	assert.Contains(t, out.String(), "Total charged")

	assert.True(t, r.exec("quit"))
	assert.True(t, r.exec("EXIT"))
}

func TestImportGTFSCmd_NeedsFares(t *testing.T) {
	_, err := run(t, "import-gtfs", "feed.zip", "-o", filepath.Join(t.TempDir(), "out.yml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrInvalidConfig)
}

func TestFormatterDefault(t *testing.T) {
	f, err := formatter.ParseFormat(config.Defaults().Output)
	require.NoError(t, err)
	assert.Equal(t, formatter.FormatTable, f)
}

func writeGTFSZip(t *testing.T, path string) {
	t.Helper()
	files := map[string]string{
		"stops.txt":  "stop_id,stop_name,zone_id\nWFR,Waterfront,1\nCMB,Commercial-Broadway,2\nKGG,King George,\n",
		"routes.txt": "route_id,route_short_name,route_long_name,route_type\nEXPO,,Expo Line,1\n",
		"trips.txt":  "route_id,trip_id\nEXPO,E1\n",
		"stop_times.txt": "trip_id,arrival_time,departure_time,stop_id,stop_sequence\n" +
			"E1,08:00:00,08:00:00,WFR,1\n" +
			"E1,08:11:00,08:11:00,CMB,2\n" +
			"E1,08:36:00,08:36:00,KGG,3\n",
	}
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))
}

func TestImportGTFSCmd(t *testing.T) {
	dir := t.TempDir()
	zipPath := filepath.Join(dir, "feed.zip")
	writeGTFSZip(t, zipPath)
	faresPath := filepath.Join(dir, "fares.yml")
	require.NoError(t, os.WriteFile(faresPath, []byte("zones: {1: 3.15, 2: 4.55, 3: 6.20}\nbus_flat: 3.15\n"), 0644))
	outPath := filepath.Join(dir, "network.yml")

	out, err := run(t, "import-gtfs", zipPath, "--fares", faresPath, "--default-zone", "3", "-o", outPath)
	require.NoError(t, err)
	assert.Contains(t, out, "3 stations, 1 lines, 2 connections")
	assert.Contains(t, out, "warning")

	nf, err := config.ReadNetworkFile(outPath)
	require.NoError(t, err)
	require.NotNil(t, nf.Fares)
	assert.Len(t, nf.Stations, 3)

	// the written file is a usable network
	out, err = run(t, "route", "WFR", "KGG", "--at", "8:00", "--network", outPath)
	require.NoError(t, err)
	assert.Contains(t, out, "$6.20 (new fare)")
}
