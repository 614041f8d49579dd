package main

import (
	"github.com/spf13/cobra"
)

func newStationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stations",
		Short: "List the stations of the network",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, f, err := appFrom(cmd.Context()).newPlanner()
			if err != nil {
				return err
			}
			return f.Stations(cmd.OutOrStdout())
		},
	}
}
