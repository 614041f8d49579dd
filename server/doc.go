/*
Package server exposes the planner over HTTP.

Endpoints:

	GET  /api/health                      liveness and network size
	GET  /api/stations                    every station with the lines serving it
	GET  /api/route?from=WFR&to=LHG&at=9:30
	                                      route and price a single trip
	POST /api/quote                       price the next trip of a rider whose
	                                      fare state travels with the request

The server keeps no rider state. A client that wants transfer-window pricing
posts the state returned by the previous quote together with the next trip.

Errors are returned as {"error": {"kind": "...", "message": "..."}} with a
status derived from the error kind.
*/
package server
