// Package planner is the query boundary of the engine: it routes a trip,
// summarizes it and prices it against a rider's fare state.
//
// A Planner is immutable after New and safe for concurrent use. A Session
// owns one rider's fare state and is not safe for concurrent use.
package planner

import (
	"time"

	"github.com/theoremus-urban-solutions/transit-fares/fare"
	"github.com/theoremus-urban-solutions/transit-fares/internal"
	"github.com/theoremus-urban-solutions/transit-fares/network"
	"github.com/theoremus-urban-solutions/transit-fares/routing"
	"github.com/theoremus-urban-solutions/transit-fares/trip"
)

// Quote is a routed and priced trip.
type Quote struct {
	Origin      string        `json:"origin"`
	Destination string        `json:"destination"`
	At          time.Time     `json:"at"`
	Route       routing.Route `json:"route"`
	Summary     trip.Summary  `json:"summary"`
	Fare        fare.Result   `json:"fare"`
}

// Planner answers trip queries over one network and fare policy.
type Planner struct {
	net      *network.Network
	router   *routing.Router
	analyzer *trip.Analyzer
	engine   *fare.Engine
}

// New wires a router with opts over net and prices trips with engine.
func New(net *network.Network, engine *fare.Engine, opts routing.Options) *Planner {
	return &Planner{
		net:      net,
		router:   routing.NewRouter(net, opts),
		analyzer: trip.NewAnalyzer(net),
		engine:   engine,
	}
}

// Network returns the network the planner routes over.
func (p *Planner) Network() *network.Network { return p.net }

// Engine returns the fare engine used for pricing.
func (p *Planner) Engine() *fare.Engine { return p.engine }

// Plan routes origin to destination and prices the trip at time at for a
// rider in state. The returned state is the rider's next state; on error the
// input state is returned unchanged.
func (p *Planner) Plan(state fare.State, origin, destination string, at time.Time) (Quote, fare.State, error) {
	route, err := p.router.ShortestPath(origin, destination)
	if err != nil {
		return Quote{}, state, err
	}
	summary, err := p.analyzer.Analyze(route)
	if err != nil {
		return Quote{}, state, err
	}
	res, next, err := p.engine.Charge(state, summary, at)
	if err != nil {
		return Quote{}, state, err
	}

	internal.Debugf("%s -> %s at %s: %d min, %d transfers, zones %s, %s %s",
		origin, destination, at.Format("15:04"), route.TotalMinutes, route.Transfers,
		summary.Zones, res.Kind, res.Amount)

	return Quote{
		Origin:      origin,
		Destination: destination,
		At:          at,
		Route:       route,
		Summary:     summary,
		Fare:        res,
	}, next, nil
}
