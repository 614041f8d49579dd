package routing

import (
	"fmt"

	"github.com/bluele/gcache"

	"github.com/theoremus-urban-solutions/transit-fares/errs"
	"github.com/theoremus-urban-solutions/transit-fares/network"
)

// Options configures a Router.
type Options struct {
	// CacheSize is the number of (origin, destination) routes kept in the LRU.
	// Zero disables caching.
	CacheSize int
}

// Router answers shortest-path queries over one network.
type Router struct {
	net   *network.Network
	cache gcache.Cache
}

// NewRouter creates a router over net.
func NewRouter(net *network.Network, opts Options) *Router {
	r := &Router{net: net}
	if opts.CacheSize > 0 {
		r.cache = gcache.New(opts.CacheSize).LRU().Build()
	}
	return r
}

// label is the best known way to reach a station.
type label struct {
	minutes int
	via     network.Connection
	origin  bool
}

func (l label) pred() string {
	if l.origin {
		return ""
	}
	return l.via.From
}

func (l label) line() string {
	if l.origin {
		return ""
	}
	return l.via.Line
}

// losesTo reports whether reaching the station in minutes via c should replace l.
func (l label) losesTo(minutes int, c network.Connection) bool {
	return pqItem{minutes: minutes, pred: c.From, line: c.Line}.less(
		pqItem{minutes: l.minutes, pred: l.pred(), line: l.line()})
}

// ShortestPath returns the minimum-time route from one station to another.
// It fails with errs.ErrNotFound when either station is unknown and with
// errs.ErrNoRouteFound when to is unreachable. from == to yields the empty route.
func (r *Router) ShortestPath(from, to string) (Route, error) {
	if !r.net.HasStation(from) {
		return Route{}, errs.NotFound("station", from)
	}
	if !r.net.HasStation(to) {
		return Route{}, errs.NotFound("station", to)
	}
	if from == to {
		return Route{}, nil
	}

	key := routeKey{from: from, to: to}
	if r.cache != nil {
		if v, err := r.cache.Get(key); err == nil {
			return v.(Route).clone(), nil
		}
	}

	route, err := r.search(from, to)
	if err != nil {
		return Route{}, err
	}
	if r.cache != nil {
		_ = r.cache.Set(key, route)
	}
	return route.clone(), nil
}

func (r *Router) search(from, to string) (Route, error) {
	best := map[string]label{from: {origin: true}}
	done := map[string]bool{}
	pq := &priorityQueue{}
	pq.push(pqItem{station: from})

	for pq.Len() > 0 {
		it := pq.pop()
		// labels tied with the destination may still replace its predecessor
		// through zero-minute connections, so stop only once the queue is past it
		if done[to] && it.minutes > best[to].minutes {
			break
		}
		if done[it.station] {
			continue
		}
		cur := best[it.station]
		if cur.minutes != it.minutes || cur.pred() != it.pred || cur.line() != it.line {
			// superseded by a later relaxation
			continue
		}
		done[it.station] = true

		for _, c := range r.net.Outgoing(it.station) {
			nd := it.minutes + c.Minutes
			if prev, seen := best[c.To]; seen && !prev.losesTo(nd, c) {
				continue
			}
			if done[c.To] {
				// only a zero-minute hop can tie a finalized station; its time
				// is unchanged, so the new predecessor needs no further relaxation
				if !reaches(best, c.From, c.To) {
					best[c.To] = label{minutes: nd, via: c}
				}
				continue
			}
			best[c.To] = label{minutes: nd, via: c}
			pq.push(pqItem{minutes: nd, pred: c.From, line: c.Line, station: c.To})
		}
	}

	if !done[to] {
		return Route{}, fmt.Errorf("%s -> %s: %w", from, to, errs.ErrNoRouteFound)
	}

	var legs []Leg
	for cur := to; cur != from; {
		l := best[cur]
		legs = append(legs, legFromConnection(l.via))
		cur = l.via.From
	}
	for i, j := 0, len(legs)-1; i < j; i, j = i+1, j-1 {
		legs[i], legs[j] = legs[j], legs[i]
	}
	return newRoute(legs), nil
}

// reaches reports whether target lies on the predecessor chain of station.
func reaches(best map[string]label, station, target string) bool {
	for cur := station; ; {
		if cur == target {
			return true
		}
		l := best[cur]
		if l.origin {
			return false
		}
		cur = l.via.From
	}
}

// routeKey identifies a cached route.
type routeKey struct {
	from, to string
}
