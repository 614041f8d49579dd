/*
Package gtfs imports a GTFS static feed as a transit network.

Only the files that shape the network are read: stops.txt (stop_id,
stop_name, zone_id), routes.txt (route_id, route_short_name,
route_long_name, route_type), trips.txt (trip_id, route_id) and
stop_times.txt. Every pair of consecutive stops of a trip becomes a
connection on the trip's route, weighted by the scheduled minutes between
the departure from the first stop and the arrival at the second. When
several trips serve the same (from, to, route) the fastest is kept.

# Basic Usage

	feed, err := gtfs.ParseZipFile("translink.zip", gtfs.Options{})
	if err != nil {
	    return err
	}
	nf := feed.NetworkFile(fares)
	err = config.WriteNetworkFile("network.yml", nf)

# Zones and Modes

zone_id must be a positive integer to be used as a fare zone; stops without
one get Options.DefaultZone. Routes of type 3 (bus), 11 (trolleybus) and
700-799 (extended bus types) are buses, everything else prices as a train.

Problems that do not make the feed unusable (missing zones, unknown route
types, stop times that run backwards) are aggregated and logged once per
kind after the import.

# Caching

Parsing a large feed takes seconds. LoadFeed keeps a gob-encoded copy of the
parsed Feed next to the zip and reuses it while it is newer than the zip.
*/
package gtfs
