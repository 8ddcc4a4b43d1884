package loan

import "context"

type Repository interface {
	Create(ctx context.Context, l *LoanRequest) error
	GetByLoanID(ctx context.Context, loanID string) (*LoanRequest, error)
	// GetByLoanIDForUpdate locks the row for the duration of the enclosing tx.
	GetByLoanIDForUpdate(ctx context.Context, loanID string) (*LoanRequest, error)
	ListPending(ctx context.Context) ([]LoanRequest, error)
	ListByBorrowerID(ctx context.Context, borrowerID string) ([]LoanRequest, error)
	ListByPoolID(ctx context.Context, poolID uint64) ([]LoanRequest, error)
	CountByPoolID(ctx context.Context, poolID uint64) (int64, error)
	Save(ctx context.Context, l *LoanRequest) error
}

// BidRepository is append-only: bids are created and read, never updated.
type BidRepository interface {
	Create(ctx context.Context, b *LoanBid) error
	GetByBidID(ctx context.Context, bidID string) (*LoanBid, error)
	ListByLoanID(ctx context.Context, loanID uint64) ([]LoanBid, error)
}
