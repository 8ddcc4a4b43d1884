package pool

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, p *LoanPool) error
	GetByPoolID(ctx context.Context, poolID string) (*LoanPool, error)
	// GetByPoolIDForUpdate locks the row for the duration of the enclosing tx.
	GetByPoolIDForUpdate(ctx context.Context, poolID string) (*LoanPool, error)
	GetByIDForUpdate(ctx context.Context, id uint64) (*LoanPool, error)
	// FirstOpenWithCapacity returns the lowest-id open pool holding fewer
	// than capacity member loans.
	FirstOpenWithCapacity(ctx context.Context, capacity int) (*LoanPool, error)
	ListOpen(ctx context.Context) ([]LoanPool, error)
	// ListExpired returns open pools whose bidding window closed before now.
	ListExpired(ctx context.Context, now time.Time) ([]LoanPool, error)
	Save(ctx context.Context, p *LoanPool) error
}

type BidRepository interface {
	Create(ctx context.Context, b *PoolBid) error
	GetByBidID(ctx context.Context, bidID string) (*PoolBid, error)
	ListByPoolID(ctx context.Context, poolID uint64) ([]PoolBid, error)
}
