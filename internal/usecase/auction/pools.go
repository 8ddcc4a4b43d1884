package auction

import (
	"context"
	"errors"

	"lendpool-backend/internal/domain/loan"
	"lendpool-backend/internal/domain/market"
	poolDomain "lendpool-backend/internal/domain/pool"
	"lendpool-backend/internal/domain/uow"
	"lendpool-backend/pkg/id"

	"gorm.io/gorm"
)

// GetOpenPools lists open pools with member aggregates. Pools that have no
// member loans yet are omitted from the marketplace view.
func (u *Usecase) GetOpenPools(ctx context.Context) ([]PoolDTO, error) {
	pools, err := u.pools.ListOpen(ctx)
	if err != nil {
		return nil, market.Storage(err)
	}

	out := make([]PoolDTO, 0, len(pools))
	for i := range pools {
		p := &pools[i]
		members, err := u.loans.ListByPoolID(ctx, p.ID)
		if err != nil {
			return nil, market.Storage(err)
		}
		if len(members) == 0 {
			continue
		}
		out = append(out, toPoolDTO(p, members))
	}
	return out, nil
}

// GetPoolDetail returns the pool with member loans, bids, and best bid.
func (u *Usecase) GetPoolDetail(ctx context.Context, poolID string) (*PoolDetailDTO, error) {
	p, err := u.pools.GetByPoolID(ctx, poolID)
	if err != nil {
		return nil, storageOr(err, poolDomain.ErrNotFound)
	}
	members, err := u.loans.ListByPoolID(ctx, p.ID)
	if err != nil {
		return nil, market.Storage(err)
	}
	bids, err := u.poolBids.ListByPoolID(ctx, p.ID)
	if err != nil {
		return nil, market.Storage(err)
	}

	detail := &PoolDetailDTO{
		PoolDTO: toPoolDTO(p, members),
		Bids:    make([]BidDTO, 0, len(bids)),
		Loans:   make([]PoolLoanDTO, 0, len(members)),
	}
	if best, ok := bestPoolRate(bids); ok {
		detail.BestBid = &best
	}
	for i := range bids {
		detail.Bids = append(detail.Bids, toPoolBidDTO(&bids[i]))
	}
	for _, l := range members {
		detail.Loans = append(detail.Loans, PoolLoanDTO{
			LoanID:     l.LoanID,
			Amount:     l.Amount,
			TermMonths: l.TermMonths,
		})
	}
	return detail, nil
}

// PlacePoolBid appends a lender's offer on a whole pool. A lender who owns
// any member loan may not bid; the first bid may be any positive rate,
// later bids must strictly undercut the current best.
func (u *Usecase) PlacePoolBid(ctx context.Context, poolID, lenderID string, rate float64) (*BidDTO, error) {
	if lenderID == "" || rate <= 0 {
		return nil, errors.New("invalid input")
	}

	var dto *BidDTO
	err := u.uow.WithinPoolTx(ctx, poolID, func(r uow.Repos, p *poolDomain.LoanPool) error {
		if p.Status != poolDomain.StatusOpen {
			return market.ErrNotAcceptingBids
		}

		members, err := r.Loans.ListByPoolID(ctx, p.ID)
		if err != nil {
			return market.Storage(err)
		}
		for _, l := range members {
			if l.BorrowerID == lenderID {
				return market.ErrSelfBid
			}
		}

		bids, err := r.PoolBids.ListByPoolID(ctx, p.ID)
		if err != nil {
			return market.Storage(err)
		}
		if best, ok := bestPoolRate(bids); ok && rate >= best {
			return market.ErrBidNotImproving
		}

		b := &poolDomain.PoolBid{
			BidID:        id.NewID32(),
			PoolID:       p.ID,
			LenderID:     lenderID,
			InterestRate: rate,
		}
		if err := r.PoolBids.Create(ctx, b); err != nil {
			return market.Storage(err)
		}
		d := toPoolBidDTO(b)
		dto = &d
		return nil
	})
	if err != nil {
		return nil, wrapPoolTxErr(err)
	}
	return dto, nil
}

// InvestInPool funds the whole pool directly and cascades funded status to
// every member loan. Member loan rates stay at their posted values: only
// bid-driven resolution rewrites rates.
func (u *Usecase) InvestInPool(ctx context.Context, poolID, lenderID string) (*PoolDTO, error) {
	var dto *PoolDTO
	err := u.uow.WithinPoolTx(ctx, poolID, func(r uow.Repos, p *poolDomain.LoanPool) error {
		if p.Status != poolDomain.StatusOpen {
			// Someone else (a lender or the sweeper) resolved this pool
			// between the caller's read and our lock.
			return market.ErrConflictRetry
		}

		members, err := r.Loans.ListByPoolID(ctx, p.ID)
		if err != nil {
			return market.Storage(err)
		}
		for _, l := range members {
			if l.BorrowerID == lenderID {
				return market.ErrSelfInvest
			}
		}

		p.Status = poolDomain.StatusFunded
		if err := r.Pools.Save(ctx, p); err != nil {
			return market.Storage(err)
		}
		for i := range members {
			l := &members[i]
			if l.Status != loan.StatusPending {
				continue
			}
			l.Status = loan.StatusFunded
			if err := r.Loans.Save(ctx, l); err != nil {
				return market.Storage(err)
			}
		}

		d := toPoolDTO(p, members)
		dto = &d
		return nil
	})
	if err != nil {
		return nil, wrapPoolTxErr(err)
	}
	return dto, nil
}

func wrapPoolTxErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return poolDomain.ErrNotFound
	}
	return err
}
