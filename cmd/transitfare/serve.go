package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/theoremus-urban-solutions/transit-fares/server"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve routes and fare quotes over HTTP",
		Example: `  transitfare serve --listen :8080
  curl 'localhost:8080/api/route?from=WFR&to=LHG&at=9:30'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := appFrom(cmd.Context())
			p, _, err := a.newPlanner()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return server.New(p, a.cfg.Listen).Serve(ctx)
		},
	}
	cmd.Flags().String("listen", "", "address to listen on (default :8080)")
	return cmd
}
