package gtfs

import "github.com/theoremus-urban-solutions/transit-fares/network"

// Stop is a stops.txt row reduced to what the network needs.
type Stop struct {
	ID   string
	Name string
	Zone int
}

// Route is a routes.txt row.
type Route struct {
	ID   string
	Name string
	Type int
}

// Mode maps the GTFS route_type to a pricing mode.
func (r Route) Mode() network.Mode {
	return ModeForRouteType(r.Type)
}

// Segment is the fastest scheduled hop between two consecutive stops of a route.
type Segment struct {
	From    string
	To      string
	Route   string
	Minutes int
}

// Feed is a parsed GTFS feed. Slices are sorted by ID (segments by
// from, to, route) so that output is reproducible.
type Feed struct {
	Stops    []Stop
	Routes   []Route
	Segments []Segment
	Warnings map[string]int // kind -> occurrences
}

// ModeForRouteType classifies GTFS route types 3, 11 and 700-799 as bus.
func ModeForRouteType(t int) network.Mode {
	switch {
	case t == 3, t == 11, t >= 700 && t <= 799:
		return network.ModeBus
	default:
		return network.ModeTrain
	}
}
