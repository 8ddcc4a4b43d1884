package poolmock

import (
	"context"
	"time"

	domain "lendpool-backend/internal/domain/pool"
)

// Repo is a function-backed mock that satisfies pool.Repository.
type Repo struct {
	CreateFn                func(ctx context.Context, p *domain.LoanPool) error
	GetByPoolIDFn           func(ctx context.Context, poolID string) (*domain.LoanPool, error)
	GetByPoolIDForUpdateFn  func(ctx context.Context, poolID string) (*domain.LoanPool, error)
	GetByIDForUpdateFn      func(ctx context.Context, id uint64) (*domain.LoanPool, error)
	FirstOpenWithCapacityFn func(ctx context.Context, capacity int) (*domain.LoanPool, error)
	ListOpenFn              func(ctx context.Context) ([]domain.LoanPool, error)
	ListExpiredFn           func(ctx context.Context, now time.Time) ([]domain.LoanPool, error)
	SaveFn                  func(ctx context.Context, p *domain.LoanPool) error
}

var _ domain.Repository = (*Repo)(nil)

func (m *Repo) Create(ctx context.Context, p *domain.LoanPool) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}

func (m *Repo) GetByPoolID(ctx context.Context, poolID string) (*domain.LoanPool, error) {
	if m.GetByPoolIDFn != nil {
		return m.GetByPoolIDFn(ctx, poolID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByPoolIDForUpdate(ctx context.Context, poolID string) (*domain.LoanPool, error) {
	if m.GetByPoolIDForUpdateFn != nil {
		return m.GetByPoolIDForUpdateFn(ctx, poolID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByIDForUpdate(ctx context.Context, id uint64) (*domain.LoanPool, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) FirstOpenWithCapacity(ctx context.Context, capacity int) (*domain.LoanPool, error) {
	if m.FirstOpenWithCapacityFn != nil {
		return m.FirstOpenWithCapacityFn(ctx, capacity)
	}
	return nil, context.Canceled
}

func (m *Repo) ListOpen(ctx context.Context) ([]domain.LoanPool, error) {
	if m.ListOpenFn != nil {
		return m.ListOpenFn(ctx)
	}
	return nil, nil
}

func (m *Repo) ListExpired(ctx context.Context, now time.Time) ([]domain.LoanPool, error) {
	if m.ListExpiredFn != nil {
		return m.ListExpiredFn(ctx, now)
	}
	return nil, nil
}

func (m *Repo) Save(ctx context.Context, p *domain.LoanPool) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, p)
	}
	return nil
}

// BidRepo is a function-backed mock that satisfies pool.BidRepository.
type BidRepo struct {
	CreateFn       func(ctx context.Context, b *domain.PoolBid) error
	GetByBidIDFn   func(ctx context.Context, bidID string) (*domain.PoolBid, error)
	ListByPoolIDFn func(ctx context.Context, poolID uint64) ([]domain.PoolBid, error)
}

var _ domain.BidRepository = (*BidRepo)(nil)

func (m *BidRepo) Create(ctx context.Context, b *domain.PoolBid) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, b)
	}
	return nil
}

func (m *BidRepo) GetByBidID(ctx context.Context, bidID string) (*domain.PoolBid, error) {
	if m.GetByBidIDFn != nil {
		return m.GetByBidIDFn(ctx, bidID)
	}
	return nil, context.Canceled
}

func (m *BidRepo) ListByPoolID(ctx context.Context, poolID uint64) ([]domain.PoolBid, error) {
	if m.ListByPoolIDFn != nil {
		return m.ListByPoolIDFn(ctx, poolID)
	}
	return nil, nil
}
