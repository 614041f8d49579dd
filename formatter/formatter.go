package formatter

import (
	"io"
	"strings"

	"github.com/theoremus-urban-solutions/transit-fares/errs"
	"github.com/theoremus-urban-solutions/transit-fares/fare"
	"github.com/theoremus-urban-solutions/transit-fares/network"
	"github.com/theoremus-urban-solutions/transit-fares/planner"
)

// Format selects the output encoding.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
)

// ParseFormat accepts "table" or "json", case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatTable, FormatJSON:
		return f, nil
	case "":
		return FormatTable, nil
	default:
		return "", errs.InvalidConfig("unknown output format %q", s)
	}
}

// Formatter writes results in one format. Station names are resolved
// against net.
type Formatter struct {
	net    *network.Network
	format Format
}

// New creates a formatter writing format.
func New(net *network.Network, format Format) *Formatter {
	return &Formatter{net: net, format: format}
}

// Stations writes every station, sorted by ID, with the lines serving it.
func (f *Formatter) Stations(w io.Writer) error {
	views := make([]stationView, 0, f.net.StationCount())
	for _, s := range f.net.Stations() {
		views = append(views, stationView{Station: s, Lines: f.net.LinesAt(s.ID)})
	}
	if f.format == FormatJSON {
		return writeJSON(w, views)
	}
	renderStations(w, views)
	return nil
}

// Quote writes one priced trip.
func (f *Formatter) Quote(w io.Writer, q planner.Quote) error {
	if f.format == FormatJSON {
		return writeJSON(w, q)
	}
	renderQuote(w, q, f.stationName)
	return nil
}

// State writes a rider's fare state and the session total.
func (f *Formatter) State(w io.Writer, st fare.State, total fare.Money) error {
	if f.format == FormatJSON {
		return writeJSON(w, stateView{State: st, Total: total})
	}
	renderState(w, st, total)
	return nil
}

func (f *Formatter) stationName(id string) string {
	s, err := f.net.Station(id)
	if err != nil {
		return id
	}
	return s.Name
}

type stationView struct {
	network.Station
	Lines []string `json:"lines"`
}

type stateView struct {
	fare.State
	Total fare.Money `json:"total"`
}
