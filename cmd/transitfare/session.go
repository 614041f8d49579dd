package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/theoremus-urban-solutions/transit-fares/formatter"
	"github.com/theoremus-urban-solutions/transit-fares/planner"
	"github.com/theoremus-urban-solutions/transit-fares/utils"
)

const sessionHelp = `Commands:
  FROM TO HH:MM   plan and price a trip, e.g. WFR LHG 9:30
  state           show the fare state and total charged
  history         list the trips of this session
  stations        list stations
  help            show this help
  quit            leave the session`

func newSessionCmd() *cobra.Command {
	var history string

	cmd := &cobra.Command{
		Use:   "session",
		Short: "Plan a sequence of trips sharing one fare state and transfer window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, f, err := appFrom(cmd.Context()).newPlanner()
			if err != nil {
				return err
			}

			items := []readline.PrefixCompleterInterface{
				readline.PcItem("state"),
				readline.PcItem("history"),
				readline.PcItem("stations"),
				readline.PcItem("help"),
				readline.PcItem("quit"),
			}
			for _, s := range p.Network().Stations() {
				items = append(items, readline.PcItem(s.ID))
			}

			rl, err := readline.NewEx(&readline.Config{
				Prompt:          "fare> ",
				HistoryFile:     history,
				AutoComplete:    readline.NewPrefixCompleter(items...),
				InterruptPrompt: "^C",
				EOFPrompt:       "quit",
			})
			if err != nil {
				return fmt.Errorf("failed to initialize session: %w", err)
			}
			defer func() { _ = rl.Close() }()

			r := newSessionREPL(p, f, cmd.OutOrStdout(), time.Now())
			_, _ = fmt.Fprintln(r.out, "Fare session started. Type help for commands.")
			for {
				line, err := rl.Readline()
				if errors.Is(err, readline.ErrInterrupt) {
					continue
				}
				if errors.Is(err, io.EOF) {
					break
				}
				if err != nil {
					return err
				}
				if r.exec(line) {
					break
				}
			}
			_, _ = fmt.Fprintf(r.out, "Goodbye! Total charged: %s\n", r.session.Total())
			return nil
		},
	}
	cmd.Flags().StringVar(&history, "history-file", "", "readline history file")
	return cmd
}

// sessionREPL interprets session lines against one planner.Session.
type sessionREPL struct {
	planner *planner.Planner
	fmt     *formatter.Formatter
	session *planner.Session
	out     io.Writer
	day     time.Time
}

func newSessionREPL(p *planner.Planner, f *formatter.Formatter, out io.Writer, day time.Time) *sessionREPL {
	return &sessionREPL{planner: p, fmt: f, session: p.NewSession(), out: out, day: day}
}

// exec runs one line and reports whether the session should end. Errors are
// printed and leave the session untouched.
func (r *sessionREPL) exec(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	var err error
	switch strings.ToLower(fields[0]) {
	case "quit", "exit", "q":
		return true
	case "help", "?":
		_, _ = fmt.Fprintln(r.out, sessionHelp)
	case "state":
		err = r.fmt.State(r.out, r.session.State(), r.session.Total())
	case "stations":
		err = r.fmt.Stations(r.out)
	case "history":
		for i, q := range r.session.History() {
			_, _ = fmt.Fprintf(r.out, "%d. %s %s -> %s  %s (%s)\n",
				i+1, utils.FormatClock(q.At), q.Origin, q.Destination, q.Fare.Amount, q.Fare.Kind)
		}
	default:
		err = r.trip(fields)
	}
	if err != nil {
		_, _ = fmt.Fprintf(r.out, "Error: %v\n", err)
	}
	return false
}

func (r *sessionREPL) trip(fields []string) error {
	if len(fields) != 3 {
		return fmt.Errorf("expected FROM TO HH:MM, got %q (type help)", strings.Join(fields, " "))
	}
	net := r.planner.Network()
	from, err := resolveStation(net, fields[0])
	if err != nil {
		return err
	}
	to, err := resolveStation(net, fields[1])
	if err != nil {
		return err
	}
	at, err := utils.ParseClock(fields[2], r.day)
	if err != nil {
		return err
	}
	q, err := r.session.Trip(from, to, at)
	if err != nil {
		return err
	}
	return r.fmt.Quote(r.out, q)
}
