package fare

import (
	"sort"

	"github.com/theoremus-urban-solutions/transit-fares/errs"
)

// Table maps a zone count to the price of a trip crossing that many zones.
type Table struct {
	prices map[int]Money
	counts []int // sorted
}

// NewTable validates prices: at least one entry, zone counts >= 1,
// non-negative prices, and more zones never cheaper than fewer.
func NewTable(prices map[int]Money) (*Table, error) {
	if len(prices) == 0 {
		return nil, errs.InvalidConfig("fare table is empty")
	}
	t := &Table{prices: make(map[int]Money, len(prices))}
	for zones, price := range prices {
		if zones < 1 {
			return nil, errs.InvalidConfig("fare table entry for %d zones", zones)
		}
		if price < 0 {
			return nil, errs.InvalidConfig("negative fare %s for %d zones", price, zones)
		}
		t.prices[zones] = price
		t.counts = append(t.counts, zones)
	}
	sort.Ints(t.counts)
	for i := 1; i < len(t.counts); i++ {
		lo, hi := t.counts[i-1], t.counts[i]
		if t.prices[hi] < t.prices[lo] {
			return nil, errs.InvalidConfig("fare for %d zones (%s) is below fare for %d zones (%s)",
				hi, t.prices[hi], lo, t.prices[lo])
		}
	}
	return t, nil
}

// Price returns the fare for a trip crossing zones zones.
func (t *Table) Price(zones int) (Money, error) {
	p, ok := t.prices[zones]
	if !ok {
		return 0, errs.InvalidConfig("fare table has no entry for %d zones", zones)
	}
	return p, nil
}

// ZoneCounts returns the configured zone counts in ascending order.
func (t *Table) ZoneCounts() []int {
	return append([]int(nil), t.counts...)
}

// MaxZones is the largest configured zone count.
func (t *Table) MaxZones() int {
	return t.counts[len(t.counts)-1]
}
