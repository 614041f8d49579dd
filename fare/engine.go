package fare

import (
	"fmt"
	"time"

	"github.com/theoremus-urban-solutions/transit-fares/errs"
	"github.com/theoremus-urban-solutions/transit-fares/trip"
)

// WindowPolicy decides what a fare upgrade does to the window expiry.
type WindowPolicy string

const (
	// WindowAnchored keeps the expiry anchored to the trip that opened the window.
	WindowAnchored WindowPolicy = "anchored"
	// WindowExtend restarts the window at every upgrade.
	WindowExtend WindowPolicy = "extend"
)

// DefaultWindow is the transfer window used when a policy leaves it unset.
const DefaultWindow = 90 * time.Minute

// Policy is the fare configuration.
type Policy struct {
	Table        *Table
	BusFlat      Money
	Window       time.Duration
	WindowPolicy WindowPolicy
}

// Result is the outcome of pricing one trip.
type Result struct {
	Kind         Kind              `json:"kind"`
	Amount       Money             `json:"amount"`
	ZonesCrossed int               `json:"zones_crossed"`
	FareZones    int               `json:"fare_zones"`
	Paid         trip.ZoneInterval `json:"paid_zones"`
	WindowExpiry time.Time         `json:"window_expiry"`
}

// Engine applies a Policy. It holds no rider state and is safe for concurrent use.
type Engine struct {
	policy Policy
}

// NewEngine validates p and fills defaults.
func NewEngine(p Policy) (*Engine, error) {
	if p.Table == nil {
		return nil, errs.InvalidConfig("fare table is required")
	}
	if p.BusFlat < 0 {
		return nil, errs.InvalidConfig("negative bus fare %s", p.BusFlat)
	}
	if p.Window < 0 {
		return nil, errs.InvalidConfig("negative transfer window %s", p.Window)
	}
	if p.Window == 0 {
		p.Window = DefaultWindow
	}
	switch p.WindowPolicy {
	case "":
		p.WindowPolicy = WindowAnchored
	case WindowAnchored, WindowExtend:
	default:
		return nil, errs.InvalidConfig("unknown window policy %q", p.WindowPolicy)
	}
	return &Engine{policy: p}, nil
}

// Policy returns the effective policy.
func (e *Engine) Policy() Policy { return e.policy }

// Charge prices one trip taken at time at by a rider in state prev and returns
// the rider's next state. On error prev is returned unchanged.
//
// A trip earlier than prev.LastTripAt fails with errs.ErrInvalidTime. This is
// stricter than ordering against the last payment: free transfers also move
// the lower bound.
func (e *Engine) Charge(prev State, s trip.Summary, at time.Time) (Result, State, error) {
	if prev.Trips > 0 && at.Before(prev.LastTripAt) {
		return Result{}, prev, fmt.Errorf("%w: trip at %s precedes previous trip at %s",
			errs.ErrInvalidTime, at.Format(time.RFC3339), prev.LastTripAt.Format(time.RFC3339))
	}

	d := DemandOf(s)
	kind := Decide(prev, d, at)
	next := prev
	next.Trips++
	next.LastTripAt = at
	res := Result{Kind: kind, ZonesCrossed: s.ZonesCrossed()}

	switch kind {
	case KindFresh:
		amount, err := e.fullFare(d)
		if err != nil {
			return Result{}, prev, err
		}
		res.Amount = amount
		next.Paid = d.paidInterval()
		next.LastPaymentAt = at
		next.WindowOpened = at
		next.WindowExpiry = at.Add(e.policy.Window)

	case KindUpgrade:
		union := prev.Paid.Union(d.Zones)
		wider, err := e.policy.Table.Price(union.Width())
		if err != nil {
			return Result{}, prev, err
		}
		paid, err := e.policy.Table.Price(prev.Paid.Width())
		if err != nil {
			return Result{}, prev, err
		}
		res.Amount = max(wider-paid, 0)
		next.Paid = union
		next.LastPaymentAt = at
		if e.policy.WindowPolicy == WindowExtend {
			next.WindowExpiry = at.Add(e.policy.Window)
		}

	case KindFreeTransfer, KindNoTravel:
	}

	if d.Flat {
		res.FareZones = 1
	} else {
		res.FareZones = d.Zones.Width()
	}
	res.Paid = next.Paid
	res.WindowExpiry = next.WindowExpiry
	return res, next, nil
}

func (e *Engine) fullFare(d Demand) (Money, error) {
	if d.Flat {
		return e.policy.BusFlat, nil
	}
	return e.policy.Table.Price(d.Zones.Width())
}
