package uowmock

import (
	"context"
	"errors"

	"lendpool-backend/internal/domain/loan"
	"lendpool-backend/internal/domain/pool"
	"lendpool-backend/internal/domain/uow"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork.
// Fill in the function fields you need in a test; unfilled ones return errUnimplemented.
type UoW struct {
	WithinTxFn     func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinLoanTxFn func(ctx context.Context, loanID string, fn func(r uow.Repos, l *loan.LoanRequest) error) error
	WithinPoolTxFn func(ctx context.Context, poolID string, fn func(r uow.Repos, p *pool.LoanPool) error) error
}

func New() *UoW { return &UoW{} }

// Passthrough builds a UoW that runs callbacks directly against the given
// repos, with lock lookups served by the repo getters. Handy when a test
// wants real-ish flow without a database.
func Passthrough(r uow.Repos) *UoW {
	return &UoW{
		WithinTxFn: func(ctx context.Context, fn func(uow.Repos) error) error {
			return fn(r)
		},
		WithinLoanTxFn: func(ctx context.Context, loanID string, fn func(uow.Repos, *loan.LoanRequest) error) error {
			l, err := r.Loans.GetByLoanIDForUpdate(ctx, loanID)
			if err != nil {
				return err
			}
			return fn(r, l)
		},
		WithinPoolTxFn: func(ctx context.Context, poolID string, fn func(uow.Repos, *pool.LoanPool) error) error {
			p, err := r.Pools.GetByPoolIDForUpdate(ctx, poolID)
			if err != nil {
				return err
			}
			return fn(r, p)
		},
	}
}

func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}

func (m *UoW) WithinLoanTx(ctx context.Context, loanID string, fn func(r uow.Repos, l *loan.LoanRequest) error) error {
	if m.WithinLoanTxFn != nil {
		return m.WithinLoanTxFn(ctx, loanID, fn)
	}
	return errUnimplemented
}

func (m *UoW) WithinPoolTx(ctx context.Context, poolID string, fn func(r uow.Repos, p *pool.LoanPool) error) error {
	if m.WithinPoolTxFn != nil {
		return m.WithinPoolTxFn(ctx, poolID, fn)
	}
	return errUnimplemented
}
