package mysql

import (
	"context"

	"lendpool-backend/internal/domain/loan"
	"lendpool-backend/internal/domain/pool"
	"lendpool-backend/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func reposFor(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Loans:    &LoanRepository{db: tx},
		LoanBids: &LoanBidRepository{db: tx},
		Pools:    &PoolRepository{db: tx},
		PoolBids: &PoolBidRepository{db: tx},
		Profiles: &ProfileRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(reposFor(tx))
	})
}

func (u *GormUoW) WithinLoanTx(ctx context.Context, loanID string, fn func(r uow.Repos, l *loan.LoanRequest) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := reposFor(tx)
		// lock the loan row up-front to prevent races
		l, err := r.Loans.GetByLoanIDForUpdate(ctx, loanID)
		if err != nil {
			return err
		}
		return fn(r, l)
	})
}

func (u *GormUoW) WithinPoolTx(ctx context.Context, poolID string, fn func(r uow.Repos, p *pool.LoanPool) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := reposFor(tx)
		p, err := r.Pools.GetByPoolIDForUpdate(ctx, poolID)
		if err != nil {
			return err
		}
		return fn(r, p)
	})
}
