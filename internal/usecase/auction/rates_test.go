package auction

import (
	"testing"
	"time"

	"lendpool-backend/internal/domain/loan"
	"lendpool-backend/internal/domain/pool"
)

func TestRateForScore_Tiers(t *testing.T) {
	cases := []struct {
		score int
		want  float64
	}{
		{850, 0.12},
		{700, 0.12}, // inclusive lower bound
		{699, 0.18},
		{600, 0.18}, // inclusive lower bound
		{599, 0.25},
		{500, 0.25},
		{0, 0.25},
	}
	for _, tc := range cases {
		if got := RateForScore(tc.score); got != tc.want {
			t.Errorf("RateForScore(%d) = %v, want %v", tc.score, got, tc.want)
		}
	}
}

func TestBestLoanRate(t *testing.T) {
	if got := bestLoanRate(0.18, nil); got != 0.18 {
		t.Fatalf("no bids: got %v, want posted rate", got)
	}
	bids := []loan.LoanBid{
		{InterestRate: 0.16},
		{InterestRate: 0.14},
		{InterestRate: 0.17},
	}
	if got := bestLoanRate(0.18, bids); got != 0.14 {
		t.Fatalf("got %v, want 0.14", got)
	}
}

func TestBestPoolRate(t *testing.T) {
	if _, ok := bestPoolRate(nil); ok {
		t.Fatal("expected ok=false with no bids")
	}
	now := time.Now()
	bids := []pool.PoolBid{
		{InterestRate: 0.2, CreatedAt: now},
		{InterestRate: 0.11, CreatedAt: now},
		{InterestRate: 0.15, CreatedAt: now},
	}
	best, ok := bestPoolRate(bids)
	if !ok || best != 0.11 {
		t.Fatalf("got (%v, %v), want (0.11, true)", best, ok)
	}
}
