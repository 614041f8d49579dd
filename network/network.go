package network

import (
	"sort"

	"github.com/theoremus-urban-solutions/transit-fares/errs"
)

// Network stores the validated network in memory for fast lookups
type Network struct {
	stations    map[string]Station
	lines       map[string]Line
	adjacency   map[string][]Connection // station_id -> outgoing, sorted by (to, line)
	stationIDs  []string                // sorted
	lineIDs     []string                // sorted
	connections int
}

// New validates cfg and builds the adjacency index.
// Any violation fails the whole build with errs.ErrInvalidConfig.
func New(cfg Config) (*Network, error) {
	n := &Network{
		stations:  make(map[string]Station, len(cfg.Stations)),
		lines:     make(map[string]Line, len(cfg.Lines)),
		adjacency: make(map[string][]Connection, len(cfg.Stations)),
	}

	for _, s := range cfg.Stations {
		if s.ID == "" {
			return nil, errs.InvalidConfig("station with empty id")
		}
		if _, dup := n.stations[s.ID]; dup {
			return nil, errs.InvalidConfig("duplicate station %q", s.ID)
		}
		if s.Zone <= 0 {
			return nil, errs.InvalidConfig("station %q has non-positive zone %d", s.ID, s.Zone)
		}
		n.stations[s.ID] = s
		n.stationIDs = append(n.stationIDs, s.ID)
	}

	for _, l := range cfg.Lines {
		if l.ID == "" {
			return nil, errs.InvalidConfig("line with empty id")
		}
		if _, dup := n.lines[l.ID]; dup {
			return nil, errs.InvalidConfig("duplicate line %q", l.ID)
		}
		if !l.Mode.Valid() {
			return nil, errs.InvalidConfig("line %q has unknown mode %q", l.ID, l.Mode)
		}
		n.lines[l.ID] = l
		n.lineIDs = append(n.lineIDs, l.ID)
	}

	seen := make(map[edgeKey]struct{}, len(cfg.Connections))
	for _, c := range cfg.Connections {
		if _, ok := n.stations[c.From]; !ok {
			return nil, errs.InvalidConfig("connection %s->%s references unknown station %q", c.From, c.To, c.From)
		}
		if _, ok := n.stations[c.To]; !ok {
			return nil, errs.InvalidConfig("connection %s->%s references unknown station %q", c.From, c.To, c.To)
		}
		line, ok := n.lines[c.Line]
		if !ok {
			return nil, errs.InvalidConfig("connection %s->%s references unknown line %q", c.From, c.To, c.Line)
		}
		if c.Minutes < 0 {
			return nil, errs.InvalidConfig("connection %s->%s on %s has negative travel time %d", c.From, c.To, c.Line, c.Minutes)
		}
		if c.Mode == "" {
			c.Mode = line.Mode
		}
		if !c.Mode.Valid() {
			return nil, errs.InvalidConfig("connection %s->%s has unknown mode %q", c.From, c.To, c.Mode)
		}
		key := edgeKey{from: c.From, to: c.To, line: c.Line}
		if _, dup := seen[key]; dup {
			return nil, errs.InvalidConfig("duplicate connection %s->%s on line %s", c.From, c.To, c.Line)
		}
		seen[key] = struct{}{}
		n.adjacency[c.From] = append(n.adjacency[c.From], c)
		n.connections++
	}

	for id, out := range n.adjacency {
		sort.Slice(out, func(i, j int) bool {
			if out[i].To != out[j].To {
				return out[i].To < out[j].To
			}
			return out[i].Line < out[j].Line
		})
		n.adjacency[id] = out
	}
	sort.Strings(n.stationIDs)
	sort.Strings(n.lineIDs)

	return n, nil
}

// Station looks up a station by id.
func (n *Network) Station(id string) (Station, error) {
	s, ok := n.stations[id]
	if !ok {
		return Station{}, errs.NotFound("station", id)
	}
	return s, nil
}

// HasStation reports whether id names a station.
func (n *Network) HasStation(id string) bool {
	_, ok := n.stations[id]
	return ok
}

// Line looks up a line by id.
func (n *Network) Line(id string) (Line, error) {
	l, ok := n.lines[id]
	if !ok {
		return Line{}, errs.NotFound("line", id)
	}
	return l, nil
}

// Outgoing returns the connections leaving a station. The slice must not be modified.
func (n *Network) Outgoing(stationID string) []Connection {
	return n.adjacency[stationID]
}

// Stations returns all stations sorted by id.
func (n *Network) Stations() []Station {
	out := make([]Station, 0, len(n.stationIDs))
	for _, id := range n.stationIDs {
		out = append(out, n.stations[id])
	}
	return out
}

// Lines returns all lines sorted by id.
func (n *Network) Lines() []Line {
	out := make([]Line, 0, len(n.lineIDs))
	for _, id := range n.lineIDs {
		out = append(out, n.lines[id])
	}
	return out
}

// LinesAt returns the sorted, distinct line ids leaving a station.
func (n *Network) LinesAt(stationID string) []string {
	set := map[string]struct{}{}
	for _, c := range n.adjacency[stationID] {
		set[c.Line] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// StationCount is the number of stations.
func (n *Network) StationCount() int { return len(n.stations) }

// LineCount is the number of lines.
func (n *Network) LineCount() int { return len(n.lines) }

// ConnectionCount is the number of directed connections.
func (n *Network) ConnectionCount() int { return n.connections }
