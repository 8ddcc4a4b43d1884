// Package sweeper resolves pools whose bidding window has closed. One
// long-lived goroutine runs RunExpirySweep on a fixed interval; the same
// entry point is callable on demand.
package sweeper

import (
	"context"
	"errors"
	"log"
	"time"

	"lendpool-backend/internal/domain/loan"
	"lendpool-backend/internal/domain/market"
	poolDomain "lendpool-backend/internal/domain/pool"
	"lendpool-backend/internal/domain/uow"

	"gorm.io/gorm"
)

type Sweeper struct {
	pools    poolDomain.Repository
	uow      uow.UnitOfWork
	interval time.Duration
	stopChan chan struct{}
	doneChan chan struct{}
}

func New(pools poolDomain.Repository, tx uow.UnitOfWork, interval time.Duration) *Sweeper {
	return &Sweeper{
		pools:    pools,
		uow:      tx,
		interval: interval,
		stopChan: make(chan struct{}),
		doneChan: make(chan struct{}),
	}
}

// Report summarizes one sweep cycle.
type Report struct {
	Funded int `json:"funded"`
	Closed int `json:"closed"`
	Failed int `json:"failed"`
}

// Start runs sweep cycles until Stop is called. Cycles run sequentially on
// this goroutine, so two cycles never process the same pool concurrently;
// an in-flight cycle finishes before Stop returns control.
func (s *Sweeper) Start() {
	defer close(s.doneChan)
	log.Printf("sweeper: started (interval %v)", s.interval)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := s.RunExpirySweep(context.Background()); err != nil {
				log.Printf("sweeper: sweep cycle failed: %v", err)
			}
		case <-s.stopChan:
			log.Println("sweeper: stopped")
			return
		}
	}
}

// Stop signals the loop to exit and blocks until any in-flight cycle has
// finished. Only meaningful after Start has been launched.
func (s *Sweeper) Stop() {
	close(s.stopChan)
	<-s.doneChan
}

// RunExpirySweep resolves every open pool whose expiry has passed. Each
// pool commits in its own transaction: a failure rolls back that pool alone
// and the sweep continues. Already-resolved pools are skipped, so a second
// run with no new expirations changes nothing.
func (s *Sweeper) RunExpirySweep(ctx context.Context) (Report, error) {
	var rep Report

	expired, err := s.pools.ListExpired(ctx, time.Now().UTC())
	if err != nil {
		return rep, market.Storage(err)
	}

	for i := range expired {
		outcome, err := s.resolvePool(ctx, expired[i].ID)
		if err != nil {
			rep.Failed++
			log.Printf("sweeper: pool %s resolution failed: %v", expired[i].PoolID, err)
			continue
		}
		switch outcome {
		case poolFunded:
			rep.Funded++
		case poolClosed:
			rep.Closed++
		}
	}

	if rep.Funded+rep.Closed+rep.Failed > 0 {
		log.Printf("sweeper: cycle done funded=%d closed=%d failed=%d", rep.Funded, rep.Closed, rep.Failed)
	}
	return rep, nil
}

// errAlreadyResolved short-circuits a pool another actor resolved between
// the scan and the lock.
var errAlreadyResolved = errors.New("already resolved")

type outcome int

const (
	poolSkipped outcome = iota
	poolFunded
	poolClosed
)

func (s *Sweeper) resolvePool(ctx context.Context, poolID uint64) (outcome, error) {
	result := poolSkipped
	err := s.uow.WithinTx(ctx, func(r uow.Repos) error {
		p, err := r.Pools.GetByIDForUpdate(ctx, poolID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errAlreadyResolved
			}
			return market.Storage(err)
		}
		// Re-check under the lock: a lender may have funded the pool since
		// the scan, or a prior cycle already resolved it.
		if p.Status != poolDomain.StatusOpen {
			return errAlreadyResolved
		}
		if p.ExpiresAt == nil || p.ExpiresAt.After(time.Now().UTC()) {
			return errAlreadyResolved
		}

		bids, err := r.PoolBids.ListByPoolID(ctx, p.ID)
		if err != nil {
			return market.Storage(err)
		}

		if len(bids) == 0 {
			// No lender interest: close the pool. Member loans stay pending
			// with their pool reference intact rather than being rejected.
			p.Status = poolDomain.StatusClosed
			if err := r.Pools.Save(ctx, p); err != nil {
				return market.Storage(err)
			}
			result = poolClosed
			return nil
		}

		winner := pickWinner(bids)
		p.Status = poolDomain.StatusFunded
		p.WinningBidID = &winner.ID
		if err := r.Pools.Save(ctx, p); err != nil {
			return market.Storage(err)
		}

		members, err := r.Loans.ListByPoolID(ctx, p.ID)
		if err != nil {
			return market.Storage(err)
		}
		for i := range members {
			l := &members[i]
			if l.Status != loan.StatusPending {
				continue
			}
			l.Status = loan.StatusFunded
			l.InterestRate = winner.InterestRate
			if err := r.Loans.Save(ctx, l); err != nil {
				return market.Storage(err)
			}
		}
		result = poolFunded
		return nil
	})
	if errors.Is(err, errAlreadyResolved) {
		return poolSkipped, nil
	}
	if err != nil {
		return poolSkipped, err
	}
	return result, nil
}

// pickWinner selects the winning pool bid: lowest rate, then earliest
// creation time, then lowest numeric id. The final key makes the choice
// deterministic even for bids sharing rate and timestamp.
func pickWinner(bids []poolDomain.PoolBid) *poolDomain.PoolBid {
	best := &bids[0]
	for i := 1; i < len(bids); i++ {
		b := &bids[i]
		switch {
		case b.InterestRate < best.InterestRate:
			best = b
		case b.InterestRate > best.InterestRate:
		case b.CreatedAt.Before(best.CreatedAt):
			best = b
		case b.CreatedAt.After(best.CreatedAt):
		case b.ID < best.ID:
			best = b
		}
	}
	return best
}
