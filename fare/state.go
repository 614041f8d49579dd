package fare

import (
	"errors"
	"fmt"
	"time"

	"github.com/theoremus-urban-solutions/transit-fares/trip"
)

// State is one rider's fare position within a session.
// The zero value is a rider who has not travelled yet.
type State struct {
	Trips         int               `json:"trips"`
	LastTripAt    time.Time         `json:"last_trip_at"`
	LastPaymentAt time.Time         `json:"last_payment_at"`
	WindowOpened  time.Time         `json:"window_opened"`
	WindowExpiry  time.Time         `json:"window_expiry"`
	Paid          trip.ZoneInterval `json:"paid_zones"`
}

// Active reports whether the transfer window is open at t.
func (s State) Active(at time.Time) bool {
	return !s.WindowExpiry.IsZero() && at.Before(s.WindowExpiry)
}

// Validate checks the internal consistency of a state that did not come
// from Engine.Charge, such as one supplied by a client.
func (s State) Validate() error {
	if s.Trips < 0 {
		return fmt.Errorf("negative trip count %d", s.Trips)
	}
	if s.Trips > 0 && s.LastTripAt.IsZero() {
		return errors.New("state with trips has no last trip time")
	}
	if !s.WindowExpiry.IsZero() {
		if s.Paid.Empty() {
			return errors.New("open transfer window has no paid zones")
		}
		if s.Trips == 0 {
			return errors.New("open transfer window without trips")
		}
	}
	if !s.Paid.Empty() && s.WindowExpiry.IsZero() {
		return errors.New("paid zones without a transfer window")
	}
	return nil
}

// Kind names the transition a priced trip caused.
type Kind string

const (
	KindFresh        Kind = "fresh"
	KindUpgrade      Kind = "upgrade"
	KindFreeTransfer Kind = "free_transfer"
	KindNoTravel     Kind = "no_travel"
)

// Demand is the coverage a trip needs from the paid interval.
type Demand struct {
	Zones trip.ZoneInterval
	Flat  bool
}

// DemandOf extracts the fare demand of a trip summary.
func DemandOf(s trip.Summary) Demand {
	return Demand{Zones: s.Zones, Flat: s.FlatFare && !s.Zones.Empty()}
}

// paidInterval is what a fresh purchase for d records.
func (d Demand) paidInterval() trip.ZoneInterval {
	if d.Flat {
		return trip.SingleZone(1)
	}
	return d.Zones
}

func (d Demand) coveredBy(paid trip.ZoneInterval) bool {
	if d.Flat {
		return !paid.Empty()
	}
	return paid.Contains(d.Zones)
}

// Decide classifies a trip at time at against state s. It does not check
// time ordering; Engine.Charge does that before deciding.
func Decide(s State, d Demand, at time.Time) Kind {
	switch {
	case d.Zones.Empty():
		return KindNoTravel
	case !s.Active(at):
		return KindFresh
	case d.coveredBy(s.Paid):
		return KindFreeTransfer
	default:
		return KindUpgrade
	}
}
