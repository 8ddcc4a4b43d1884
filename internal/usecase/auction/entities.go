package auction

import (
	"time"

	"lendpool-backend/internal/domain/loan"
	"lendpool-backend/internal/domain/pool"
)

type CreateLoanInput struct {
	BorrowerID string  `json:"borrower_id"`
	Amount     float64 `json:"amount"`
	TermMonths int     `json:"term_months"`
	Purpose    string  `json:"purpose"`
	WantsPool  bool    `json:"wants_pool"`
	// PoolExpiresAt sets the bidding window if this request opens a new
	// pool. Nil leaves the pool without an expiry; scheduling one is the
	// caller's decision.
	PoolExpiresAt *time.Time `json:"-"`
}

type LoanDTO struct {
	LoanID       string    `json:"loan_id"`
	BorrowerID   string    `json:"borrower_id"`
	Amount       float64   `json:"amount"`
	TermMonths   int       `json:"term_months"`
	InterestRate float64   `json:"interest_rate"`
	Status       string    `json:"status"`
	Purpose      string    `json:"purpose"`
	CreditScore  *int      `json:"credit_score,omitempty"`
	InPool       bool      `json:"in_pool"`
	CreatedAt    time.Time `json:"created_at"`
}

type BidDTO struct {
	BidID        string    `json:"bid_id"`
	LenderID     string    `json:"lender_id"`
	InterestRate float64   `json:"interest_rate"`
	CreatedAt    time.Time `json:"created_at"`
}

type BorrowerSummary struct {
	Score         *int   `json:"score,omitempty"`
	ScoreCategory string `json:"score_category,omitempty"`
}

type LoanDetailDTO struct {
	LoanDTO
	BestBid  float64          `json:"best_bid"`
	Bids     []BidDTO         `json:"bids"`
	Borrower *BorrowerSummary `json:"borrower,omitempty"`
}

type PoolDTO struct {
	PoolID          string     `json:"pool_id"`
	Status          string     `json:"status"`
	MemberCount     int        `json:"member_count"`
	TotalAmount     float64    `json:"total_amount"`
	AvgInterestRate float64    `json:"avg_interest_rate"`
	AvgCreditScore  float64    `json:"avg_credit_score"`
	ExpiresAt       *time.Time `json:"expires_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

type PoolLoanDTO struct {
	LoanID     string  `json:"loan_id"`
	Amount     float64 `json:"amount"`
	TermMonths int     `json:"term_months"`
}

type PoolDetailDTO struct {
	PoolDTO
	BestBid *float64      `json:"best_bid,omitempty"`
	Bids    []BidDTO      `json:"bids"`
	Loans   []PoolLoanDTO `json:"loans"`
}

func toLoanDTO(l *loan.LoanRequest) LoanDTO {
	return LoanDTO{
		LoanID:       l.LoanID,
		BorrowerID:   l.BorrowerID,
		Amount:       l.Amount,
		TermMonths:   l.TermMonths,
		InterestRate: l.InterestRate,
		Status:       string(l.Status),
		Purpose:      l.Purpose,
		CreditScore:  l.CreditScore,
		InPool:       l.PoolID != nil,
		CreatedAt:    l.CreatedAt,
	}
}

func toLoanBidDTO(b *loan.LoanBid) BidDTO {
	return BidDTO{
		BidID:        b.BidID,
		LenderID:     b.LenderID,
		InterestRate: b.InterestRate,
		CreatedAt:    b.CreatedAt,
	}
}

func toPoolBidDTO(b *pool.PoolBid) BidDTO {
	return BidDTO{
		BidID:        b.BidID,
		LenderID:     b.LenderID,
		InterestRate: b.InterestRate,
		CreatedAt:    b.CreatedAt,
	}
}

func toPoolDTO(p *pool.LoanPool, members []loan.LoanRequest) PoolDTO {
	dto := PoolDTO{
		PoolID:      p.PoolID,
		Status:      string(p.Status),
		MemberCount: len(members),
		ExpiresAt:   p.ExpiresAt,
		CreatedAt:   p.CreatedAt,
	}
	if len(members) == 0 {
		return dto
	}
	var amount, rates float64
	var scores, scored int
	for _, l := range members {
		amount += l.Amount
		rates += l.InterestRate
		if l.CreditScore != nil {
			scores += *l.CreditScore
			scored++
		}
	}
	dto.TotalAmount = amount
	dto.AvgInterestRate = rates / float64(len(members))
	if scored > 0 {
		dto.AvgCreditScore = float64(scores) / float64(scored)
	}
	return dto
}
