package domain

import "math"

const (
	MinRentalDays = 2
	MaxTierDays   = 7

	// DefaultExtraDayRate is the share of the 2-day price charged for every
	// day past the weekly tier.
	DefaultExtraDayRate = 0.4
)

// Pricing resolves duration-dependent unit prices.
type Pricing struct {
	ExtraDayRate float64
}

var DefaultPricing = Pricing{ExtraDayRate: DefaultExtraDayRate}

// UnitPrice returns the price of one unit for the given number of days.
// Durations below the minimum use the 2-day tier; past 7 days the weekly
// price grows linearly by ExtraDayRate * tier2 per day, rounded down.
func (pr Pricing) UnitPrice(p Product, days int) int64 {
	t := p.Prices
	switch {
	case days <= MinRentalDays:
		return t.Days2
	case days == 3:
		return t.Days3
	case days == 4:
		return t.Days4
	case days == 5:
		return t.Days5
	case days == 6:
		return t.Days6
	case days == MaxTierDays:
		return t.Days7
	}
	extra := float64(days-MaxTierDays) * float64(t.Days2) * pr.ExtraDayRate
	// absorb float error so 2*(50000*0.4) floors to 40000, not 39999
	return t.Days7 + int64(math.Floor(extra+1e-6))
}

// UnitPrice prices with DefaultPricing.
func UnitPrice(p Product, days int) int64 { return DefaultPricing.UnitPrice(p, days) }

// ClampDuration enforces the minimum rental.
func ClampDuration(days int) int {
	if days < MinRentalDays {
		return MinRentalDays
	}
	return days
}
