// Package routing computes shortest-time routes over a network.Network.
//
// The search is Dijkstra's algorithm with edge weight = travel minutes and an
// explicit min-priority queue ordered by (accumulated minutes, predecessor
// station id, line id, station id). Ties are therefore broken the same way on
// every run and independent of the order stations and lines were loaded in:
//
//   - equal accumulated time: the smaller predecessor station id wins
//   - still equal: the smaller line id wins
//
// A Router is safe for concurrent use. When built with a cache size, results
// are memoized in an LRU keyed by (origin, destination); every call returns a
// fresh copy of the route so callers own what they receive.
package routing
