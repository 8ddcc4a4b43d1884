package loanmock

import (
	"context"

	domain "lendpool-backend/internal/domain/loan"
)

// Repo is a function-backed mock that satisfies loan.Repository.
// Only fill in the function fields a test needs.
type Repo struct {
	CreateFn               func(ctx context.Context, l *domain.LoanRequest) error
	GetByLoanIDFn          func(ctx context.Context, loanID string) (*domain.LoanRequest, error)
	GetByLoanIDForUpdateFn func(ctx context.Context, loanID string) (*domain.LoanRequest, error)
	ListPendingFn          func(ctx context.Context) ([]domain.LoanRequest, error)
	ListByBorrowerIDFn     func(ctx context.Context, borrowerID string) ([]domain.LoanRequest, error)
	ListByPoolIDFn         func(ctx context.Context, poolID uint64) ([]domain.LoanRequest, error)
	CountByPoolIDFn        func(ctx context.Context, poolID uint64) (int64, error)
	SaveFn                 func(ctx context.Context, l *domain.LoanRequest) error
}

var _ domain.Repository = (*Repo)(nil)

func (m *Repo) Create(ctx context.Context, l *domain.LoanRequest) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByLoanID(ctx context.Context, loanID string) (*domain.LoanRequest, error) {
	if m.GetByLoanIDFn != nil {
		return m.GetByLoanIDFn(ctx, loanID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*domain.LoanRequest, error) {
	if m.GetByLoanIDForUpdateFn != nil {
		return m.GetByLoanIDForUpdateFn(ctx, loanID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListPending(ctx context.Context) ([]domain.LoanRequest, error) {
	if m.ListPendingFn != nil {
		return m.ListPendingFn(ctx)
	}
	return nil, nil
}

func (m *Repo) ListByBorrowerID(ctx context.Context, borrowerID string) ([]domain.LoanRequest, error) {
	if m.ListByBorrowerIDFn != nil {
		return m.ListByBorrowerIDFn(ctx, borrowerID)
	}
	return nil, nil
}

func (m *Repo) ListByPoolID(ctx context.Context, poolID uint64) ([]domain.LoanRequest, error) {
	if m.ListByPoolIDFn != nil {
		return m.ListByPoolIDFn(ctx, poolID)
	}
	return nil, nil
}

func (m *Repo) CountByPoolID(ctx context.Context, poolID uint64) (int64, error) {
	if m.CountByPoolIDFn != nil {
		return m.CountByPoolIDFn(ctx, poolID)
	}
	return 0, nil
}

func (m *Repo) Save(ctx context.Context, l *domain.LoanRequest) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return nil
}

// BidRepo is a function-backed mock that satisfies loan.BidRepository.
type BidRepo struct {
	CreateFn       func(ctx context.Context, b *domain.LoanBid) error
	GetByBidIDFn   func(ctx context.Context, bidID string) (*domain.LoanBid, error)
	ListByLoanIDFn func(ctx context.Context, loanID uint64) ([]domain.LoanBid, error)
}

var _ domain.BidRepository = (*BidRepo)(nil)

func (m *BidRepo) Create(ctx context.Context, b *domain.LoanBid) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, b)
	}
	return nil
}

func (m *BidRepo) GetByBidID(ctx context.Context, bidID string) (*domain.LoanBid, error) {
	if m.GetByBidIDFn != nil {
		return m.GetByBidIDFn(ctx, bidID)
	}
	return nil, context.Canceled
}

func (m *BidRepo) ListByLoanID(ctx context.Context, loanID uint64) ([]domain.LoanBid, error) {
	if m.ListByLoanIDFn != nil {
		return m.ListByLoanIDFn(ctx, loanID)
	}
	return nil, nil
}
