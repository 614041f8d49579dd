package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/theoremus-urban-solutions/transit-fares/fare"
	"github.com/theoremus-urban-solutions/transit-fares/utils"
)

func newRouteCmd() *cobra.Command {
	var at string

	cmd := &cobra.Command{
		Use:   "route FROM TO",
		Short: "Find the fastest route between two stations and price it as a single trip",
		Example: `  transitfare route WFR LHG
  transitfare route wfr cmb --at 16:34 --output json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, f, err := appFrom(cmd.Context()).newPlanner()
			if err != nil {
				return err
			}
			from, err := resolveStation(p.Network(), args[0])
			if err != nil {
				return err
			}
			to, err := resolveStation(p.Network(), args[1])
			if err != nil {
				return err
			}
			when := time.Now()
			if at != "" {
				if when, err = utils.ParseClock(at, when); err != nil {
					return err
				}
			}
			q, _, err := p.Plan(fare.State{}, from, to, when)
			if err != nil {
				return err
			}
			return f.Quote(cmd.OutOrStdout(), q)
		},
	}
	cmd.Flags().StringVar(&at, "at", "", "trip start time HH:MM (default: now)")
	return cmd
}
