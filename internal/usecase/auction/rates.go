package auction

import (
	"lendpool-backend/internal/domain/loan"
	"lendpool-backend/internal/domain/pool"
)

// Posted-rate tiers keyed on credit score. Lower bounds are inclusive and
// rates are annual fractions.
const (
	tierAScore = 700
	tierBScore = 600

	tierARate = 0.12
	tierBRate = 0.18
	tierCRate = 0.25
)

func RateForScore(score int) float64 {
	switch {
	case score >= tierAScore:
		return tierARate
	case score >= tierBScore:
		return tierBRate
	default:
		return tierCRate
	}
}

// bestLoanRate is the minimum existing bid rate, defaulting to the loan's
// posted rate when no bids exist. A new bid must be strictly below it.
func bestLoanRate(posted float64, bids []loan.LoanBid) float64 {
	best := posted
	for _, b := range bids {
		if b.InterestRate < best {
			best = b.InterestRate
		}
	}
	return best
}

// bestPoolRate is the minimum pool bid rate; ok is false when the pool has
// no bids yet, in which case any positive rate improves.
func bestPoolRate(bids []pool.PoolBid) (best float64, ok bool) {
	for _, b := range bids {
		if !ok || b.InterestRate < best {
			best, ok = b.InterestRate, true
		}
	}
	return best, ok
}
