/*
Package network holds the immutable transit network: stations, lines and the
directed, timed connections between stations.

A Network is built once from a Config and then shared read-only by every
router, analyzer and rider session in the process:

	net, err := network.New(network.Config{
	    Stations:    []network.Station{{ID: "A", Name: "Alpha", Zone: 1}},
	    Lines:       []network.Line{{ID: "L1", Name: "Line 1", Mode: network.ModeTrain}},
	    Connections: []network.Connection{...},
	})
	if errors.Is(err, errs.ErrInvalidConfig) {
	    // reject the whole network
	}

# Invariants

  - station and line ids are unique and non-empty
  - zones are positive integers
  - every connection references known stations and a known line
  - travel times are non-negative minutes
  - no two connections share the same (from, to, line) triple

Adjacency lists are sorted by (to, line) so enumeration order never depends on
the order the configuration listed things in.

# Thread Safety

A Network is never mutated after New returns and is safe for concurrent reads.
*/
package network
