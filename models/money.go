package models

import (
	"fmt"
	"math"
)

// Cents is an amount in minor currency units.
type Cents int64

// FromDollars converts a catalog price to minor units, rounding half away from zero.
func FromDollars(v float64) Cents {
	return Cents(math.Round(v * 100))
}

func (c Cents) String() string {
	sign := ""
	v := int64(c)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s$%d.%02d", sign, v/100, v%100)
}
