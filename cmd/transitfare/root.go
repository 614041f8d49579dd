package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theoremus-urban-solutions/transit-fares/config"
	"github.com/theoremus-urban-solutions/transit-fares/errs"
	"github.com/theoremus-urban-solutions/transit-fares/fare"
	"github.com/theoremus-urban-solutions/transit-fares/formatter"
	"github.com/theoremus-urban-solutions/transit-fares/gtfs"
	"github.com/theoremus-urban-solutions/transit-fares/internal"
	"github.com/theoremus-urban-solutions/transit-fares/network"
	"github.com/theoremus-urban-solutions/transit-fares/planner"
	"github.com/theoremus-urban-solutions/transit-fares/routing"
)

var version = "0.1.0"

type appKey struct{}

// app is the per-invocation state shared by subcommands.
type app struct {
	cfg     config.AppConfig
	cfgFile string
}

func appFrom(ctx context.Context) *app {
	if a, ok := ctx.Value(appKey{}).(*app); ok {
		return a
	}
	return &app{cfg: config.Defaults()}
}

func newRootCmd() *cobra.Command {
	var cfgFile string

	root := &cobra.Command{
		Use:   "transitfare",
		Short: "Route and price trips on a zone-based transit network",
		Long: `transitfare finds the fastest route between two stations and prices it
under a zone fare policy with a transfer window.

The network is read from a YAML/JSON network file, a legacy data directory
(stations.json, edges.json, fares.json) or a GTFS zip plus a fares file.`,
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}
			cfg, used, err := config.LoadAppConfig(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			if err := internal.InitLogging(cfg.LogLevel); err != nil {
				return err
			}
			if used != "" {
				internal.Debugf("using config file %s", used)
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(context.WithValue(ctx, appKey{}, &app{cfg: cfg, cfgFile: used}))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: ./transitfare.yaml)")
	pf.StringP("network", "n", "", "network file, legacy data directory or GTFS zip")
	pf.String("fares", "", "fares file (required for GTFS zips)")
	pf.String("gtfs-cache", "", "gob cache for parsed GTFS feeds")
	pf.String("log-level", "", "log level (debug|info|warn|error)")
	pf.Int("route-cache-size", 0, "number of routes kept in the LRU cache")
	pf.Int("transfer-window-minutes", 0, "override the transfer window")
	pf.String("window-policy", "", "override the window policy (anchored|extend)")
	pf.String("output", "", "output format (table|json)")

	_ = root.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"table", "json"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = root.RegisterFlagCompletionFunc("window-policy", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"anchored", "extend"}, cobra.ShellCompDirectiveNoFileComp
	})

	root.AddCommand(newStationsCmd())
	root.AddCommand(newRouteCmd())
	root.AddCommand(newSessionCmd())
	root.AddCommand(newImportGTFSCmd())
	root.AddCommand(newServeCmd())
	return root
}

// newPlanner loads the configured network and wires a planner and formatter.
func (a *app) newPlanner() (*planner.Planner, *formatter.Formatter, error) {
	format, err := formatter.ParseFormat(a.cfg.Output)
	if err != nil {
		return nil, nil, err
	}
	net, engine, err := a.loadNetwork()
	if err != nil {
		return nil, nil, err
	}
	p := planner.New(net, engine, routing.Options{CacheSize: a.cfg.RouteCacheSize})
	return p, formatter.New(net, format), nil
}

func (a *app) loadNetwork() (*network.Network, *fare.Engine, error) {
	if !strings.HasSuffix(strings.ToLower(a.cfg.Network), ".zip") {
		return config.LoadNetwork(a.cfg)
	}
	if a.cfg.Fares == "" {
		return nil, nil, errs.InvalidConfig("GTFS network %s needs a fares file (--fares)", a.cfg.Network)
	}
	fares, err := config.ReadFaresFile(a.cfg.Fares)
	if err != nil {
		return nil, nil, err
	}
	feed, err := gtfs.LoadFeed(a.cfg.Network, a.cfg.GTFSCache, gtfs.Options{})
	if err != nil {
		return nil, nil, err
	}
	return config.Build(feed.NetworkFile(fares), nil, a.cfg)
}

// resolveStation matches raw against station ids exactly, then upper-cased.
func resolveStation(net *network.Network, raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if net.HasStation(raw) {
		return raw, nil
	}
	if up := strings.ToUpper(raw); net.HasStation(up) {
		return up, nil
	}
	return "", fmt.Errorf("%w (try the stations command)", errs.NotFound("station", raw))
}
