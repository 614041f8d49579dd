// Command transitfare plans and prices trips on a zone-priced transit network.
package main

import (
	"fmt"
	"os"

	"github.com/theoremus-urban-solutions/transit-fares/errs"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps failure kinds to distinct process exit codes.
func exitCode(err error) int {
	switch errs.Kind(err) {
	case "invalid_config":
		return 2
	case "not_found":
		return 3
	case "no_route_found":
		return 4
	case "invalid_time":
		return 5
	default:
		return 1
	}
}
