package gtfs

import (
	"fmt"
	"sort"
	"strings"

	"github.com/theoremus-urban-solutions/transit-fares/internal"
)

// Warning kinds raised while importing a feed.
const (
	WarningNoZone           = "no_zone"
	WarningUnknownRouteType = "unknown_route_type"
	WarningUnknownTrip      = "unknown_trip"
	WarningUnknownStop      = "unknown_stop"
	WarningUnknownRoute     = "unknown_route"
	WarningNoStopTime       = "no_stop_time"
	WarningBackwardsTime    = "backwards_time"
)

type warningInfo struct {
	count    int
	examples []string
}

// WarningAggregator collects import warnings and logs one summary line per kind.
type WarningAggregator struct {
	warnings map[string]*warningInfo
}

// NewWarningAggregator creates an empty warning aggregator.
func NewWarningAggregator() *WarningAggregator {
	return &WarningAggregator{
		warnings: make(map[string]*warningInfo),
	}
}

// Add records one occurrence of kind; the first three example IDs are kept.
func (w *WarningAggregator) Add(kind, exampleID string) {
	info := w.warnings[kind]
	if info == nil {
		info = &warningInfo{examples: make([]string, 0, 3)}
		w.warnings[kind] = info
	}
	info.count++
	if len(info.examples) < 3 {
		info.examples = append(info.examples, exampleID)
	}
}

// Count returns how many times kind was recorded.
func (w *WarningAggregator) Count(kind string) int {
	if info := w.warnings[kind]; info != nil {
		return info.count
	}
	return 0
}

// Kinds returns the recorded kinds in sorted order.
func (w *WarningAggregator) Kinds() []string {
	kinds := make([]string, 0, len(w.warnings))
	for k := range w.warnings {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// LogAll writes one warning per recorded kind.
func (w *WarningAggregator) LogAll(source string) {
	for _, kind := range w.Kinds() {
		internal.Warnf("%s", w.message(kind, source))
	}
}

func (w *WarningAggregator) message(kind, source string) string {
	var description, action string

	switch kind {
	case WarningNoZone:
		description = "stops without a numeric zone_id"
		action = "Using the default zone"
	case WarningUnknownRouteType:
		description = "routes with a missing or unparsable route_type"
		action = "Pricing them as train"
	case WarningUnknownTrip:
		description = "stop times for trips not in trips.txt"
		action = "Skipping them"
	case WarningUnknownStop:
		description = "stop times for stops not in stops.txt"
		action = "Skipping the affected hops"
	case WarningUnknownRoute:
		description = "trips on routes not in routes.txt"
		action = "Skipping them"
	case WarningNoStopTime:
		description = "hops without usable arrival or departure times"
		action = "Skipping the affected hops"
	case WarningBackwardsTime:
		description = "hops arriving before they depart"
		action = "Skipping the affected hops"
	default:
		description = "unknown issue"
		action = "Continuing"
	}

	info := w.warnings[kind]
	return fmt.Sprintf("GTFS %s has %s (%d occurrences). %s. Examples: %s",
		source, description, info.count, action, strings.Join(info.examples, ", "))
}
