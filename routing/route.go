package routing

import "github.com/theoremus-urban-solutions/transit-fares/network"

// Leg is one traversed connection of a route.
type Leg struct {
	From    string       `json:"from"`
	To      string       `json:"to"`
	Line    string       `json:"line"`
	Mode    network.Mode `json:"mode"`
	Minutes int          `json:"minutes"`
}

func legFromConnection(c network.Connection) Leg {
	return Leg{From: c.From, To: c.To, Line: c.Line, Mode: c.Mode, Minutes: c.Minutes}
}

// Route is a contiguous sequence of legs: Legs[i].To == Legs[i+1].From.
// The zero Route is the empty route produced when origin == destination.
type Route struct {
	Legs         []Leg `json:"legs"`
	TotalMinutes int   `json:"total_minutes"`
	Transfers    int   `json:"transfers"`
}

func newRoute(legs []Leg) Route {
	r := Route{Legs: legs}
	for i, l := range legs {
		r.TotalMinutes += l.Minutes
		if i > 0 && legs[i-1].Line != l.Line {
			r.Transfers++
		}
	}
	return r
}

// Empty reports whether the route has no legs.
func (r Route) Empty() bool { return len(r.Legs) == 0 }

// Stations returns the visited station ids in travel order, origin first.
// The empty route visits nothing.
func (r Route) Stations() []string {
	if len(r.Legs) == 0 {
		return nil
	}
	out := make([]string, 0, len(r.Legs)+1)
	out = append(out, r.Legs[0].From)
	for _, l := range r.Legs {
		out = append(out, l.To)
	}
	return out
}

func (r Route) clone() Route {
	if r.Legs == nil {
		return r
	}
	legs := make([]Leg, len(r.Legs))
	copy(legs, r.Legs)
	r.Legs = legs
	return r
}
