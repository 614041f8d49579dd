package gtfs

import (
	"github.com/theoremus-urban-solutions/transit-fares/config"
)

// NetworkFile converts the feed to a network file priced by fares.
// Segments stay directed: GTFS lists each direction as its own trips.
func (f *Feed) NetworkFile(fares *config.FaresSpec) *config.NetworkFile {
	nf := &config.NetworkFile{
		Stations:    make([]config.StationSpec, 0, len(f.Stops)),
		Lines:       make([]config.LineSpec, 0, len(f.Routes)),
		Connections: make([]config.ConnectionSpec, 0, len(f.Segments)),
		Fares:       fares,
	}
	for _, s := range f.Stops {
		nf.Stations = append(nf.Stations, config.StationSpec{ID: s.ID, Name: s.Name, Zone: s.Zone})
	}
	for _, r := range f.Routes {
		nf.Lines = append(nf.Lines, config.LineSpec{ID: r.ID, Name: r.Name, Mode: string(r.Mode())})
	}
	for _, s := range f.Segments {
		nf.Connections = append(nf.Connections, config.ConnectionSpec{
			From:    s.From,
			To:      s.To,
			Line:    s.Route,
			Minutes: s.Minutes,
		})
	}
	return nf
}
