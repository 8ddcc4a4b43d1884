package pool

import (
	"errors"
	"time"
)

var (
	ErrNotFound    = errors.New("pool not found")
	ErrBidNotFound = errors.New("pool bid not found")
	// ErrFull reports a lost race during pool assignment: the candidate
	// pool filled or was resolved between the capacity scan and the
	// row lock.
	ErrFull = errors.New("pool is full")
)

// Capacity is the maximum number of member loans per pool.
const Capacity = 5

type Status string

const (
	StatusOpen   Status = "open"
	StatusFunded Status = "funded"
	StatusClosed Status = "closed"
)

// LoanPool groups up to Capacity loans into a single bidding unit. Once
// funded or closed, membership and status are immutable. Member loans are
// found by loan_requests.pool_id; the pool holds no collection.
type LoanPool struct {
	ID     uint64 `gorm:"primaryKey;column:id" json:"-"`
	PoolID string `gorm:"size:32;uniqueIndex:ux_loan_pools_pool_id" json:"pool_id"`
	Status Status `gorm:"size:16;default:'open';index:idx_loan_pools_status" json:"status"`
	// ExpiresAt bounds the bidding window; nil means no expiry scheduled
	// and the sweeper never touches the pool.
	ExpiresAt    *time.Time `gorm:"column:expires_at;index:idx_loan_pools_expires" json:"expires_at,omitempty"`
	WinningBidID *uint64    `gorm:"column:winning_bid_id" json:"-"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (LoanPool) TableName() string { return "loan_pools" }

// PoolBid is an append-only offer to fund a whole pool at one rate.
type PoolBid struct {
	ID           uint64    `gorm:"primaryKey;column:id" json:"-"`
	BidID        string    `gorm:"size:32;uniqueIndex:ux_pool_bids_bid_id" json:"bid_id"`
	PoolID       uint64    `gorm:"column:pool_id;index:idx_pool_bids_pool" json:"-"`
	LenderID     string    `gorm:"size:32;index:idx_pool_bids_lender" json:"lender_id"`
	InterestRate float64   `gorm:"type:decimal(6,4)" json:"interest_rate"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (PoolBid) TableName() string { return "pool_bids" }
