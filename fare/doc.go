/*
Package fare prices trips under a zone-based policy with a transfer window.

A rider's State is a plain value owned by the caller. Engine.Charge takes
the previous state and returns the next one, so one Engine can serve any
number of riders concurrently:

	engine, _ := fare.NewEngine(fare.Policy{Table: table, BusFlat: fare.Cents(315), Window: 90 * time.Minute})

	var st fare.State
	res, st, err := engine.Charge(st, summary, at)

# State Machine

For a trip demanding zone interval Z at time t:

  - no active window (zero state, or t at or after the expiry): charge the
    full fare for Z (or the flat bus fare), open a window of the configured
    duration anchored at t with paid interval Z (flat trips record {1})
  - active window whose paid interval covers Z: free transfer, nothing changes
    and the expiry is not extended
  - active window not covering Z: charge price(paid ∪ Z) - price(paid) and
    widen the paid interval; the expiry stays anchored to the first trip
    unless the policy is WindowExtend

A trip earlier than the previous trip of the same state fails with
errs.ErrInvalidTime and leaves the state untouched.

Bus-only trips are priced at the flat bus fare and count as a 1-zone trip when
compared with the paid interval.
*/
package fare
