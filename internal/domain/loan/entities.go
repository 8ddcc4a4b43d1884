package loan

import (
	"errors"
	"time"
)

var (
	ErrNotFound    = errors.New("loan not found")
	ErrBidNotFound = errors.New("loan bid not found")
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusFunded   Status = "funded"
	StatusRejected Status = "rejected"
	StatusPaid     Status = "paid"
)

// LoanRequest is a borrower's listing. Status and InterestRate are mutable
// only while pending; funded/rejected/paid rows are immutable history.
type LoanRequest struct {
	ID           uint64  `gorm:"primaryKey;column:id" json:"-"`
	LoanID       string  `gorm:"size:32;uniqueIndex:ux_loan_requests_loan_id" json:"loan_id"`
	BorrowerID   string  `gorm:"size:32;index:idx_loan_requests_borrower" json:"borrower_id"`
	Amount       float64 `gorm:"type:decimal(18,2)" json:"amount"`
	TermMonths   int     `gorm:"column:term_months" json:"term_months"`
	InterestRate float64 `gorm:"type:decimal(6,4)" json:"interest_rate"`
	Status       Status  `gorm:"size:16;default:'pending';index:idx_loan_requests_status" json:"status"`
	CreditScore  *int    `gorm:"column:credit_score" json:"credit_score,omitempty"`
	Purpose      string  `gorm:"type:text" json:"purpose"`
	WantsPool    bool    `gorm:"column:wants_pool" json:"wants_pool"`
	// Numeric FK to loan_pools.id. Membership is queried by this column,
	// never held as a live collection on the pool side.
	PoolID    *uint64   `gorm:"column:pool_id;index:idx_loan_requests_pool" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (LoanRequest) TableName() string { return "loan_requests" }

// LoanBid is an append-only offer against a single loan. Bids are never
// mutated or deleted; LenderID is a display back-reference only.
type LoanBid struct {
	ID           uint64    `gorm:"primaryKey;column:id" json:"-"`
	BidID        string    `gorm:"size:32;uniqueIndex:ux_loan_bids_bid_id" json:"bid_id"`
	LoanID       uint64    `gorm:"column:loan_id;index:idx_loan_bids_loan" json:"-"`
	LenderID     string    `gorm:"size:32;index:idx_loan_bids_lender" json:"lender_id"`
	InterestRate float64   `gorm:"type:decimal(6,4)" json:"interest_rate"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (LoanBid) TableName() string { return "loan_bids" }
