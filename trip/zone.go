package trip

import "fmt"

// ZoneInterval is an inclusive range of fare zones [Min, Max].
// The zero value is the empty interval.
type ZoneInterval struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// SingleZone returns the interval holding only zone z.
func SingleZone(z int) ZoneInterval {
	return ZoneInterval{Min: z, Max: z}
}

// Empty reports whether the interval covers no zone.
func (z ZoneInterval) Empty() bool {
	return z.Min <= 0 || z.Max < z.Min
}

// Width is the number of zones crossed: Max - Min + 1, or 0 when empty.
func (z ZoneInterval) Width() int {
	if z.Empty() {
		return 0
	}
	return z.Max - z.Min + 1
}

// Contains reports whether every zone of o lies within z.
// The empty interval is contained by anything.
func (z ZoneInterval) Contains(o ZoneInterval) bool {
	if o.Empty() {
		return true
	}
	if z.Empty() {
		return false
	}
	return z.Min <= o.Min && o.Max <= z.Max
}

// Union returns the smallest interval covering both.
func (z ZoneInterval) Union(o ZoneInterval) ZoneInterval {
	switch {
	case z.Empty():
		return o
	case o.Empty():
		return z
	}
	return ZoneInterval{Min: min(z.Min, o.Min), Max: max(z.Max, o.Max)}
}

// Extend widens the interval to include zone.
func (z ZoneInterval) Extend(zone int) ZoneInterval {
	return z.Union(SingleZone(zone))
}

func (z ZoneInterval) String() string {
	switch {
	case z.Empty():
		return "{}"
	case z.Min == z.Max:
		return fmt.Sprintf("{%d}", z.Min)
	}
	return fmt.Sprintf("{%d-%d}", z.Min, z.Max)
}
