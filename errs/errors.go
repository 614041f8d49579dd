// Package errs defines the failure taxonomy shared by every layer of the
// route-and-fare engine.
//
// All failures returned by the engine wrap exactly one of the sentinels below,
// so callers classify them with errors.Is:
//
//	quote, err := session.Trip("WFR", "LHG", at)
//	switch {
//	case errors.Is(err, errs.ErrNotFound):
//	    // unknown station id, ask again
//	case errors.Is(err, errs.ErrNoRouteFound):
//	    // graph has no path
//	}
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig reports malformed or inconsistent network or fare data.
	// It is fatal at load time; nothing is partially loaded.
	ErrInvalidConfig = errors.New("invalid config")

	// ErrNotFound reports an unknown station or line identifier.
	ErrNotFound = errors.New("not found")

	// ErrNoRouteFound reports that the destination is unreachable from the origin.
	ErrNoRouteFound = errors.New("no route found")

	// ErrInvalidTime reports a trip timestamp earlier than the session's previous trip.
	ErrInvalidTime = errors.New("invalid time")
)

// InvalidConfig wraps ErrInvalidConfig with a formatted reason.
func InvalidConfig(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

// NotFound wraps ErrNotFound for the given kind of identifier ("station", "line").
func NotFound(kind, id string) error {
	return fmt.Errorf("%w: %s %q", ErrNotFound, kind, id)
}

// Kind returns the short name of the sentinel wrapped by err, or "internal"
// when err wraps none of them.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidConfig):
		return "invalid_config"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrNoRouteFound):
		return "no_route_found"
	case errors.Is(err, ErrInvalidTime):
		return "invalid_time"
	default:
		return "internal"
	}
}
