package auction

import (
	"context"
	"errors"

	"lendpool-backend/internal/domain/loan"
	"lendpool-backend/internal/domain/market"
	"lendpool-backend/internal/domain/pool"
	"lendpool-backend/internal/domain/uow"
	"lendpool-backend/pkg/id"

	"gorm.io/gorm"
)

// Usecase orchestrates loan creation, pool assignment, bid placement and
// acceptance. Every mutation runs inside a unit-of-work transaction with the
// target row locked, so concurrent resolutions of the same loan or pool are
// serialized.
type Usecase struct {
	loans    loan.Repository
	loanBids loan.BidRepository
	pools    pool.Repository
	poolBids pool.BidRepository
	uow      uow.UnitOfWork
}

func NewUsecase(r uow.Repos, tx uow.UnitOfWork) *Usecase {
	return &Usecase{
		loans:    r.Loans,
		loanBids: r.LoanBids,
		pools:    r.Pools,
		poolBids: r.PoolBids,
		uow:      tx,
	}
}

// storageOr maps gorm's not-found onto the domain sentinel and wraps
// anything else as a storage failure.
func storageOr(err, notFound error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return market.Storage(err)
}

// CreateLoanRequest posts a new listing for the borrower. The posted rate
// comes from the borrower's credit score tier; a profile without a score is
// a hard precondition failure. With WantsPool set, the loan joins the
// lowest-id open pool with spare capacity, or opens a fresh pool.
func (u *Usecase) CreateLoanRequest(ctx context.Context, in CreateLoanInput) (*LoanDTO, error) {
	if in.BorrowerID == "" || in.Amount <= 0 || in.TermMonths <= 0 {
		return nil, errors.New("invalid input")
	}

	var dto *LoanDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		prof, err := r.Profiles.GetByUserID(ctx, in.BorrowerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return market.ErrProfileIncomplete
			}
			return market.Storage(err)
		}
		if !prof.Complete() {
			return market.ErrProfileIncomplete
		}

		l := &loan.LoanRequest{
			LoanID:       id.NewID32(),
			BorrowerID:   in.BorrowerID,
			Amount:       in.Amount,
			TermMonths:   in.TermMonths,
			InterestRate: RateForScore(*prof.Score),
			Status:       loan.StatusPending,
			CreditScore:  prof.Score,
			Purpose:      in.Purpose,
			WantsPool:    in.WantsPool,
		}

		if in.WantsPool {
			target, err := r.Pools.FirstOpenWithCapacity(ctx, pool.Capacity)
			if err != nil {
				if !errors.Is(err, gorm.ErrRecordNotFound) {
					return market.Storage(err)
				}
				target = &pool.LoanPool{
					PoolID:    id.NewID32(),
					Status:    pool.StatusOpen,
					ExpiresAt: in.PoolExpiresAt,
				}
				if err := r.Pools.Create(ctx, target); err != nil {
					return market.Storage(err)
				}
			} else {
				// The capacity filter ran against a snapshot. Lock the pool
				// row so concurrent joiners serialize, then re-check against
				// the locked state: a racing create may have taken the last
				// slot, or a lender may have resolved the pool.
				target, err = r.Pools.GetByIDForUpdate(ctx, target.ID)
				if err != nil {
					return market.Storage(err)
				}
				n, err := r.Loans.CountByPoolID(ctx, target.ID)
				if err != nil {
					return market.Storage(err)
				}
				if target.Status != pool.StatusOpen || n >= pool.Capacity {
					return pool.ErrFull
				}
			}
			l.PoolID = &target.ID
		}

		if err := r.Loans.Create(ctx, l); err != nil {
			return market.Storage(err)
		}
		d := toLoanDTO(l)
		dto = &d
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// GetOpenLoans lists pending listings for the lender marketplace view.
func (u *Usecase) GetOpenLoans(ctx context.Context) ([]LoanDTO, error) {
	loans, err := u.loans.ListPending(ctx)
	if err != nil {
		return nil, market.Storage(err)
	}
	out := make([]LoanDTO, 0, len(loans))
	for i := range loans {
		out = append(out, toLoanDTO(&loans[i]))
	}
	return out, nil
}

// GetMyLoans lists every listing the borrower ever posted.
func (u *Usecase) GetMyLoans(ctx context.Context, borrowerID string) ([]LoanDTO, error) {
	loans, err := u.loans.ListByBorrowerID(ctx, borrowerID)
	if err != nil {
		return nil, market.Storage(err)
	}
	out := make([]LoanDTO, 0, len(loans))
	for i := range loans {
		out = append(out, toLoanDTO(&loans[i]))
	}
	return out, nil
}

// GetLoanDetail returns the loan with its bids and the current best rate
// (minimum bid rate, defaulting to the posted rate).
func (u *Usecase) GetLoanDetail(ctx context.Context, loanID string) (*LoanDetailDTO, error) {
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, storageOr(err, loan.ErrNotFound)
	}
	bids, err := u.loanBids.ListByLoanID(ctx, l.ID)
	if err != nil {
		return nil, market.Storage(err)
	}

	detail := &LoanDetailDTO{
		LoanDTO: toLoanDTO(l),
		BestBid: bestLoanRate(l.InterestRate, bids),
		Bids:    make([]BidDTO, 0, len(bids)),
	}
	for i := range bids {
		detail.Bids = append(detail.Bids, toLoanBidDTO(&bids[i]))
	}
	if l.CreditScore != nil {
		detail.Borrower = &BorrowerSummary{Score: l.CreditScore}
	}
	return detail, nil
}

// PlaceBid appends a lender's rate offer. The ledger only accepts a rate
// strictly below the current best; ties are impossible by construction.
func (u *Usecase) PlaceBid(ctx context.Context, loanID, lenderID string, rate float64) (*BidDTO, error) {
	if lenderID == "" || rate <= 0 {
		return nil, errors.New("invalid input")
	}

	var dto *BidDTO
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loan.LoanRequest) error {
		if l.BorrowerID == lenderID {
			return market.ErrSelfBid
		}
		if l.Status != loan.StatusPending {
			return market.ErrNotAcceptingBids
		}

		bids, err := r.LoanBids.ListByLoanID(ctx, l.ID)
		if err != nil {
			return market.Storage(err)
		}
		if rate >= bestLoanRate(l.InterestRate, bids) {
			return market.ErrBidNotImproving
		}

		b := &loan.LoanBid{
			BidID:        id.NewID32(),
			LoanID:       l.ID,
			LenderID:     lenderID,
			InterestRate: rate,
		}
		if err := r.LoanBids.Create(ctx, b); err != nil {
			return market.Storage(err)
		}
		d := toLoanBidDTO(b)
		dto = &d
		return nil
	})
	if err != nil {
		return nil, wrapLoanTxErr(err)
	}
	return dto, nil
}

// AcceptBid funds the loan at the chosen bid's rate. Borrower-only.
func (u *Usecase) AcceptBid(ctx context.Context, loanID, bidID, actorID string) (*LoanDTO, error) {
	var dto *LoanDTO
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loan.LoanRequest) error {
		if l.BorrowerID != actorID {
			return market.ErrForbidden
		}
		if l.Status != loan.StatusPending {
			return market.ErrNotAcceptingBids
		}

		b, err := r.LoanBids.GetByBidID(ctx, bidID)
		if err != nil {
			return storageOr(err, loan.ErrBidNotFound)
		}
		if b.LoanID != l.ID {
			return loan.ErrBidNotFound
		}

		l.Status = loan.StatusFunded
		l.InterestRate = b.InterestRate
		if err := r.Loans.Save(ctx, l); err != nil {
			return market.Storage(err)
		}
		d := toLoanDTO(l)
		dto = &d
		return nil
	})
	if err != nil {
		return nil, wrapLoanTxErr(err)
	}
	return dto, nil
}

// CloseLoanRequest withdraws a pending listing. Borrower-only.
func (u *Usecase) CloseLoanRequest(ctx context.Context, loanID, actorID string) (*LoanDTO, error) {
	var dto *LoanDTO
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loan.LoanRequest) error {
		if l.BorrowerID != actorID {
			return market.ErrForbidden
		}
		if l.Status != loan.StatusPending {
			return market.ErrNotAcceptingBids
		}

		l.Status = loan.StatusRejected
		if err := r.Loans.Save(ctx, l); err != nil {
			return market.Storage(err)
		}
		d := toLoanDTO(l)
		dto = &d
		return nil
	})
	if err != nil {
		return nil, wrapLoanTxErr(err)
	}
	return dto, nil
}

// InvestDirect funds a pending loan instantly at its posted rate, without
// going through the bid ledger. Lender-only; self-investment is forbidden.
func (u *Usecase) InvestDirect(ctx context.Context, loanID, lenderID string) (*LoanDTO, error) {
	var dto *LoanDTO
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loan.LoanRequest) error {
		if l.BorrowerID == lenderID {
			return market.ErrSelfInvest
		}
		if l.Status != loan.StatusPending {
			return market.ErrNotAcceptingBids
		}

		// Rate stays at the posted value.
		l.Status = loan.StatusFunded
		if err := r.Loans.Save(ctx, l); err != nil {
			return market.Storage(err)
		}
		d := toLoanDTO(l)
		dto = &d
		return nil
	})
	if err != nil {
		return nil, wrapLoanTxErr(err)
	}
	return dto, nil
}

// wrapLoanTxErr translates the lock-acquisition not-found from WithinLoanTx
// and leaves domain errors untouched.
func wrapLoanTxErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return loan.ErrNotFound
	}
	return err
}
