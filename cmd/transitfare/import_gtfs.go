package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/theoremus-urban-solutions/transit-fares/config"
	"github.com/theoremus-urban-solutions/transit-fares/errs"
	"github.com/theoremus-urban-solutions/transit-fares/gtfs"
)

func newImportGTFSCmd() *cobra.Command {
	var (
		out         string
		defaultZone int
	)

	cmd := &cobra.Command{
		Use:     "import-gtfs ZIP",
		Short:   "Convert a GTFS static zip into a network file",
		Example: `  transitfare import-gtfs translink.zip --fares fares.yml -o network.yml`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := appFrom(cmd.Context())
			if a.cfg.Fares == "" {
				return errs.InvalidConfig("import-gtfs needs a fares file (--fares)")
			}
			fares, err := config.ReadFaresFile(a.cfg.Fares)
			if err != nil {
				return err
			}
			feed, err := gtfs.LoadFeed(args[0], a.cfg.GTFSCache, gtfs.Options{DefaultZone: defaultZone})
			if err != nil {
				return err
			}
			nf := feed.NetworkFile(fares)
			// refuse to write a file that would not load
			net, _, err := config.Build(nf, nil, a.cfg)
			if err != nil {
				return err
			}
			if err := config.WriteNetworkFile(out, nf); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %s: %d stations, %d lines, %d connections\n",
				out, net.StationCount(), net.LineCount(), net.ConnectionCount())
			kinds := make([]string, 0, len(feed.Warnings))
			for kind := range feed.Warnings {
				kinds = append(kinds, kind)
			}
			sort.Strings(kinds)
			for _, kind := range kinds {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "  warning %s: %d\n", kind, feed.Warnings[kind])
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "network.yml", "network file to write")
	cmd.Flags().IntVar(&defaultZone, "default-zone", 1, "zone for stops without a numeric zone_id")
	return cmd
}
