package tournament

import (
	"errors"
	"fmt"
	"sort"
)

var ErrInvalidPrizeDistribution = errors.New("invalid prize distribution")

// PlaceOrder lists payout places from first to last.
var PlaceOrder = []string{"first", "second", "third", "fourth", "fifth", "sixth", "seventh", "eighth"}

// PrizeDistribution maps a payout place to its share of the prize pool in percent.
type PrizeDistribution map[string]int

func DefaultPrizeDistribution() PrizeDistribution {
	return PrizeDistribution{"first": 50, "second": 30, "third": 20}
}

func (d PrizeDistribution) Validate() error {
	known := make(map[string]struct{}, len(PlaceOrder))
	for _, place := range PlaceOrder {
		known[place] = struct{}{}
	}

	total := 0
	for place, percent := range d {
		if _, ok := known[place]; !ok {
			return fmt.Errorf("%w: unknown place %q", ErrInvalidPrizeDistribution, place)
		}
		if percent < 0 {
			return fmt.Errorf("%w: negative share for %s", ErrInvalidPrizeDistribution, place)
		}
		total += percent
	}
	if total != 100 {
		return fmt.Errorf("%w: shares sum to %d, expected 100", ErrInvalidPrizeDistribution, total)
	}
	return nil
}

// Payout is one place's amount.
type Payout struct {
	Place   string
	Percent int
	Amount  float64
}

// Payouts splits pool across the configured places in place order.
func (d PrizeDistribution) Payouts(pool float64) []Payout {
	rank := make(map[string]int, len(PlaceOrder))
	for i, place := range PlaceOrder {
		rank[place] = i
	}

	out := make([]Payout, 0, len(d))
	for place, percent := range d {
		out = append(out, Payout{
			Place:   place,
			Percent: percent,
			Amount:  pool * float64(percent) / 100,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return rank[out[i].Place] < rank[out[j].Place]
	})
	return out
}
