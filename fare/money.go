package fare

import (
	"fmt"
	"math"
)

// Money is an amount in cents.
type Money int64

// Cents returns an amount of c cents.
func Cents(c int64) Money { return Money(c) }

// FromUnits converts a decimal currency amount (2.50) to Money, rounding to the cent.
func FromUnits(v float64) Money {
	return Money(math.Round(v * 100))
}

// Units returns the amount as a decimal currency value.
func (m Money) Units() float64 { return float64(m) / 100 }

func (m Money) String() string {
	sign := ""
	if m < 0 {
		sign = "-"
		m = -m
	}
	return fmt.Sprintf("%s$%d.%02d", sign, m/100, m%100)
}

// MarshalJSON writes the amount as a decimal number with two places.
func (m Money) MarshalJSON() ([]byte, error) {
	sign := ""
	if m < 0 {
		sign = "-"
		m = -m
	}
	return []byte(fmt.Sprintf("%s%d.%02d", sign, m/100, m%100)), nil
}
