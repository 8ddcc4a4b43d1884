package uow

import (
	"context"

	"lendpool-backend/internal/domain/loan"
	"lendpool-backend/internal/domain/pool"
	"lendpool-backend/internal/domain/profile"
)

type Repos struct {
	Loans    loan.Repository
	LoanBids loan.BidRepository
	Pools    pool.Repository
	PoolBids pool.BidRepository
	Profiles profile.Repository
}

// UnitOfWork runs a function against transaction-bound repositories. The
// convenience variants lock the target row first so concurrent mutations of
// the same loan or pool are serialized.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	WithinLoanTx(ctx context.Context, loanID string, fn func(r Repos, l *loan.LoanRequest) error) error
	WithinPoolTx(ctx context.Context, poolID string, fn func(r Repos, p *pool.LoanPool) error) error
}
