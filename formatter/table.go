package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/theoremus-urban-solutions/transit-fares/fare"
	"github.com/theoremus-urban-solutions/transit-fares/planner"
	"github.com/theoremus-urban-solutions/transit-fares/utils"
)

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	return t
}

func renderStations(w io.Writer, views []stationView) {
	t := newTable(w)
	t.AppendHeader(table.Row{"ID", "Name", "Zone", "Lines"})
	for _, v := range views {
		t.AppendRow(table.Row{v.ID, v.Name, v.Zone, strings.Join(v.Lines, ", ")})
	}
	t.Render()
	_, _ = fmt.Fprintf(w, "(%d stations)\n", len(views))
}

func renderQuote(w io.Writer, q planner.Quote, name func(string) string) {
	_, _ = fmt.Fprintf(w, "%s (%s) -> %s (%s) at %s\n",
		name(q.Origin), q.Origin, name(q.Destination), q.Destination, utils.FormatClock(q.At))

	if q.Route.Empty() {
		_, _ = fmt.Fprintln(w, "No travel - same origin and destination.")
	} else {
		legs := newTable(w)
		legs.AppendHeader(table.Row{"#", "From", "To", "Line", "Mode", "Min"})
		for i, l := range q.Route.Legs {
			legs.AppendRow(table.Row{i + 1, name(l.From), name(l.To), l.Line, l.Mode, l.Minutes})
		}
		legs.AppendFooter(table.Row{"", "", "", "", "Total", q.Route.TotalMinutes})
		legs.Render()
	}

	s := newTable(w)
	if !q.Route.Empty() {
		transfers := fmt.Sprint(q.Summary.TransferCount)
		if len(q.Summary.TransferStations) > 0 {
			at := make([]string, len(q.Summary.TransferStations))
			for i, id := range q.Summary.TransferStations {
				at[i] = name(id)
			}
			transfers += " (" + strings.Join(at, ", ") + ")"
		}
		s.AppendRows([]table.Row{
			{"Lines", strings.Join(q.Summary.LinesUsed, " -> ")},
			{"Transfers", transfers},
			{"Zones", fmt.Sprintf("%s, %d crossed", q.Summary.Zones, q.Fare.ZonesCrossed)},
		})
		if q.Summary.FlatFare {
			s.AppendRow(table.Row{"Fare", fmt.Sprintf("bus flat fare (%d-zone equivalent)", q.Fare.FareZones)})
		}
	}
	s.AppendRows([]table.Row{
		{"Charged", fmt.Sprintf("%s (%s)", q.Fare.Amount, kindLabel(q.Fare.Kind))},
	})
	if !q.Fare.WindowExpiry.IsZero() {
		s.AppendRow(table.Row{"Transfer window", fmt.Sprintf("until %s, paid %s", utils.FormatClock(q.Fare.WindowExpiry), q.Fare.Paid)})
	}
	s.Render()
}

func renderState(w io.Writer, st fare.State, total fare.Money) {
	t := newTable(w)
	t.AppendRows([]table.Row{
		{"Trips", st.Trips},
		{"Last trip", utils.FormatClock(st.LastTripAt)},
		{"Last payment", utils.FormatClock(st.LastPaymentAt)},
		{"Window", fmt.Sprintf("%s - %s", utils.FormatClock(st.WindowOpened), utils.FormatClock(st.WindowExpiry))},
		{"Paid zones", st.Paid.String()},
		{"Total charged", total.String()},
	})
	t.Render()
}

func kindLabel(k fare.Kind) string {
	switch k {
	case fare.KindFresh:
		return "new fare"
	case fare.KindUpgrade:
		return "fare upgrade"
	case fare.KindFreeTransfer:
		return "free transfer"
	case fare.KindNoTravel:
		return "no travel"
	default:
		return string(k)
	}
}
