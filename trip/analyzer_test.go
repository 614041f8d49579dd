package trip

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theoremus-urban-solutions/transit-fares/errs"
	"github.com/theoremus-urban-solutions/transit-fares/network"
	"github.com/theoremus-urban-solutions/transit-fares/routing"
)

func testNetwork(t *testing.T) *network.Network {
	t.Helper()
	n, err := network.New(network.Config{
		Stations: []network.Station{
			{ID: "A", Name: "A", Zone: 1},
			{ID: "B", Name: "B", Zone: 1},
			{ID: "C", Name: "C", Zone: 2},
			{ID: "D", Name: "D", Zone: 3},
			{ID: "E", Name: "E", Zone: 2},
		},
		Lines: []network.Line{
			{ID: "EXPO", Name: "Expo", Mode: network.ModeTrain},
			{ID: "MILL", Name: "Millennium", Mode: network.ModeTrain},
			{ID: "99", Name: "99", Mode: network.ModeBus},
			{ID: "25", Name: "25", Mode: network.ModeBus},
		},
	})
	require.NoError(t, err)
	return n
}

func leg(from, to, line string, mode network.Mode, minutes int) routing.Leg {
	return routing.Leg{From: from, To: to, Line: line, Mode: mode, Minutes: minutes}
}

func TestAnalyze_EmptyRoute(t *testing.T) {
	s, err := NewAnalyzer(testNetwork(t)).Analyze(routing.Route{})
	require.NoError(t, err)

	assert.Equal(t, 0, s.TransferCount)
	assert.Equal(t, 0, s.ZonesCrossed())
	assert.True(t, s.Zones.Empty())
	assert.False(t, s.FlatFare, "nothing to ride, nothing flat")
	assert.Empty(t, s.LinesUsed)
	assert.Empty(t, s.TransferStations)
}

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name         string
		legs         []routing.Leg
		transfers    int
		transferAt   []string
		lines        []string
		zones        ZoneInterval
		zonesCrossed int
		flat         bool
	}{
		{
			name:         "single leg",
			legs:         []routing.Leg{leg("A", "B", "EXPO", network.ModeTrain, 3)},
			transferAt:   []string{},
			lines:        []string{"EXPO"},
			zones:        SingleZone(1),
			zonesCrossed: 1,
		},
		{
			name: "one line, zones 1-2",
			legs: []routing.Leg{
				leg("A", "B", "EXPO", network.ModeTrain, 5),
				leg("B", "C", "EXPO", network.ModeTrain, 5),
			},
			transferAt:   []string{},
			lines:        []string{"EXPO"},
			zones:        ZoneInterval{Min: 1, Max: 2},
			zonesCrossed: 2,
		},
		{
			name: "line changes and back",
			legs: []routing.Leg{
				leg("A", "B", "EXPO", network.ModeTrain, 2),
				leg("B", "C", "MILL", network.ModeTrain, 2),
				leg("C", "E", "MILL", network.ModeTrain, 2),
				leg("E", "D", "EXPO", network.ModeTrain, 2),
			},
			transfers:    2,
			transferAt:   []string{"B", "E"},
			lines:        []string{"EXPO", "MILL", "EXPO"},
			zones:        ZoneInterval{Min: 1, Max: 3},
			zonesCrossed: 3,
		},
		{
			name: "all bus is flat regardless of zones",
			legs: []routing.Leg{
				leg("A", "C", "99", network.ModeBus, 10),
				leg("C", "D", "25", network.ModeBus, 10),
			},
			transfers:    1,
			transferAt:   []string{"C"},
			lines:        []string{"99", "25"},
			zones:        ZoneInterval{Min: 1, Max: 3},
			zonesCrossed: 3,
			flat:         true,
		},
		{
			name: "bus plus train is zone priced",
			legs: []routing.Leg{
				leg("A", "B", "99", network.ModeBus, 10),
				leg("B", "C", "EXPO", network.ModeTrain, 3),
			},
			transfers:    1,
			transferAt:   []string{"B"},
			lines:        []string{"99", "EXPO"},
			zones:        ZoneInterval{Min: 1, Max: 2},
			zonesCrossed: 2,
		},
	}

	a := NewAnalyzer(testNetwork(t))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			route := routing.Route{Legs: tt.legs}
			for _, l := range tt.legs {
				route.TotalMinutes += l.Minutes
			}

			s, err := a.Analyze(route)
			require.NoError(t, err)

			assert.Equal(t, tt.transfers, s.TransferCount)
			assert.Equal(t, tt.transferAt, s.TransferStations)
			assert.Equal(t, tt.lines, s.LinesUsed)
			assert.Equal(t, tt.zones, s.Zones)
			assert.Equal(t, tt.zonesCrossed, s.ZonesCrossed())
			assert.Equal(t, tt.flat, s.FlatFare)
			assert.Equal(t, route.TotalMinutes, s.TotalMinutes)
		})
	}
}

func TestAnalyze_WideningNeverNarrows(t *testing.T) {
	a := NewAnalyzer(testNetwork(t))
	legs := []routing.Leg{
		leg("A", "B", "EXPO", network.ModeTrain, 1),
		leg("B", "C", "EXPO", network.ModeTrain, 1),
		leg("C", "D", "EXPO", network.ModeTrain, 1),
	}

	prev := 0
	for i := 1; i <= len(legs); i++ {
		s, err := a.Analyze(routing.Route{Legs: legs[:i]})
		require.NoError(t, err)
		assert.GreaterOrEqual(t, s.ZonesCrossed(), prev)
		prev = s.ZonesCrossed()
	}
	assert.Equal(t, 3, prev)
}

func TestAnalyze_UnknownStation(t *testing.T) {
	_, err := NewAnalyzer(testNetwork(t)).Analyze(routing.Route{
		Legs: []routing.Leg{leg("A", "ZZ", "EXPO", network.ModeTrain, 1)},
	})
	assert.ErrorIs(t, err, errs.ErrNotFound)
}
