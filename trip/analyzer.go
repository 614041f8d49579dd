// Package trip derives the fare-relevant facts of a computed route: transfers,
// lines used, the zone interval travelled and flat-fare eligibility.
package trip

import (
	"fmt"

	"github.com/theoremus-urban-solutions/transit-fares/network"
	"github.com/theoremus-urban-solutions/transit-fares/routing"
)

// Summary is what the fare engine needs to know about one trip.
type Summary struct {
	Legs             []routing.Leg `json:"legs"`
	TotalMinutes     int           `json:"total_minutes"`
	TransferCount    int           `json:"transfers"`
	TransferStations []string      `json:"transfer_stations"`
	LinesUsed        []string      `json:"lines_used"`
	Zones            ZoneInterval  `json:"zones"`
	FlatFare         bool          `json:"flat_fare"`
}

// ZonesCrossed is the width of the zone interval.
func (s Summary) ZonesCrossed() int { return s.Zones.Width() }

// Analyzer resolves station zones against a network.
type Analyzer struct {
	net *network.Network
}

// NewAnalyzer creates an analyzer over net.
func NewAnalyzer(net *network.Network) *Analyzer {
	return &Analyzer{net: net}
}

// Analyze summarizes route. Every station on the route must exist in the
// analyzer's network; routes produced by a routing.Router over the same
// network always satisfy this.
func (a *Analyzer) Analyze(route routing.Route) (Summary, error) {
	s := Summary{
		Legs:             route.Legs,
		TotalMinutes:     route.TotalMinutes,
		TransferStations: []string{},
		LinesUsed:        []string{},
	}
	if route.Empty() {
		return s, nil
	}

	allBus := true
	for i, leg := range route.Legs {
		if i == 0 {
			zone, err := a.zoneOf(leg.From)
			if err != nil {
				return Summary{}, err
			}
			s.Zones = SingleZone(zone)
		}
		zone, err := a.zoneOf(leg.To)
		if err != nil {
			return Summary{}, err
		}
		s.Zones = s.Zones.Extend(zone)

		if leg.Mode != network.ModeBus {
			allBus = false
		}
		if i == 0 || route.Legs[i-1].Line != leg.Line {
			s.LinesUsed = append(s.LinesUsed, leg.Line)
		}
		if i > 0 && route.Legs[i-1].Line != leg.Line {
			s.TransferCount++
			s.TransferStations = append(s.TransferStations, leg.From)
		}
	}
	s.FlatFare = allBus
	return s, nil
}

func (a *Analyzer) zoneOf(stationID string) (int, error) {
	st, err := a.net.Station(stationID)
	if err != nil {
		return 0, fmt.Errorf("analyze route: %w", err)
	}
	return st.Zone, nil
}
