package sweeper

import (
	"context"
	"fmt"
	"testing"
	"time"

	infradb "lendpool-backend/internal/adapter/repository/mysql"
	loanDomain "lendpool-backend/internal/domain/loan"
	poolDomain "lendpool-backend/internal/domain/pool"
	"lendpool-backend/internal/infrastructure/db"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newSQLiteSweeper(t *testing.T) (*Sweeper, *gorm.DB) {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("underlying db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return New(infradb.NewPoolRepository(gdb), infradb.NewGormUoW(gdb), time.Minute), gdb
}

func hex32(n int) string { return fmt.Sprintf("%032d", n) }

func seedPool(t *testing.T, gdb *gorm.DB, n int, expiresAt *time.Time) *poolDomain.LoanPool {
	t.Helper()
	p := &poolDomain.LoanPool{PoolID: hex32(n), Status: poolDomain.StatusOpen, ExpiresAt: expiresAt}
	if err := gdb.Create(p).Error; err != nil {
		t.Fatalf("seed pool: %v", err)
	}
	return p
}

func seedMember(t *testing.T, gdb *gorm.DB, p *poolDomain.LoanPool, n int, rate float64) *loanDomain.LoanRequest {
	t.Helper()
	l := &loanDomain.LoanRequest{
		LoanID:       hex32(100 + n),
		BorrowerID:   hex32(200 + n),
		Amount:       100_000,
		TermMonths:   12,
		InterestRate: rate,
		Status:       loanDomain.StatusPending,
		WantsPool:    true,
		PoolID:       &p.ID,
	}
	if err := gdb.Create(l).Error; err != nil {
		t.Fatalf("seed member: %v", err)
	}
	return l
}

func seedPoolBid(t *testing.T, gdb *gorm.DB, p *poolDomain.LoanPool, n int, rate float64, at time.Time) *poolDomain.PoolBid {
	t.Helper()
	b := &poolDomain.PoolBid{
		BidID:        hex32(300 + n),
		PoolID:       p.ID,
		LenderID:     hex32(400 + n),
		InterestRate: rate,
		CreatedAt:    at,
	}
	if err := gdb.Create(b).Error; err != nil {
		t.Fatalf("seed bid: %v", err)
	}
	return b
}

func past() *time.Time {
	ts := time.Now().UTC().Add(-time.Minute)
	return &ts
}

func TestRunExpirySweep_LowestRateWins(t *testing.T) {
	sw, gdb := newSQLiteSweeper(t)
	ctx := context.Background()

	p := seedPool(t, gdb, 1, past())
	seedMember(t, gdb, p, 1, 0.18)
	seedMember(t, gdb, p, 2, 0.25)

	base := time.Now().UTC().Add(-time.Hour)
	seedPoolBid(t, gdb, p, 1, 0.10, base.Add(2*time.Second))
	seedPoolBid(t, gdb, p, 2, 0.10, base.Add(1*time.Second))
	win := seedPoolBid(t, gdb, p, 3, 0.09, base.Add(5*time.Second))

	rep, err := sw.RunExpirySweep(ctx)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if rep.Funded != 1 || rep.Closed != 0 || rep.Failed != 0 {
		t.Fatalf("report = %+v, want one funded", rep)
	}

	var got poolDomain.LoanPool
	if err := gdb.First(&got, p.ID).Error; err != nil {
		t.Fatalf("reload pool: %v", err)
	}
	if got.Status != poolDomain.StatusFunded {
		t.Fatalf("pool status = %s", got.Status)
	}
	if got.WinningBidID == nil || *got.WinningBidID != win.ID {
		t.Fatalf("winning bid = %v, want %d", got.WinningBidID, win.ID)
	}

	var members []loanDomain.LoanRequest
	if err := gdb.Where("pool_id = ?", p.ID).Find(&members).Error; err != nil {
		t.Fatalf("reload members: %v", err)
	}
	for _, l := range members {
		if l.Status != loanDomain.StatusFunded {
			t.Errorf("member %s status = %s", l.LoanID, l.Status)
		}
		if l.InterestRate != 0.09 {
			t.Errorf("member %s rate = %v, want winner rate 0.09", l.LoanID, l.InterestRate)
		}
	}
}

func TestRunExpirySweep_TieBreaks(t *testing.T) {
	sw, gdb := newSQLiteSweeper(t)
	ctx := context.Background()

	p := seedPool(t, gdb, 1, past())
	seedMember(t, gdb, p, 1, 0.18)

	base := time.Now().UTC().Add(-time.Hour)
	// Same rate: the earlier bid wins.
	seedPoolBid(t, gdb, p, 1, 0.11, base.Add(30*time.Second))
	early := seedPoolBid(t, gdb, p, 2, 0.11, base.Add(10*time.Second))
	seedPoolBid(t, gdb, p, 3, 0.11, base.Add(20*time.Second))

	if _, err := sw.RunExpirySweep(ctx); err != nil {
		t.Fatalf("sweep: %v", err)
	}

	var got poolDomain.LoanPool
	gdb.First(&got, p.ID)
	if got.WinningBidID == nil || *got.WinningBidID != early.ID {
		t.Fatalf("winning bid = %v, want earliest %d", got.WinningBidID, early.ID)
	}
}

func TestRunExpirySweep_SameRateSameInstantLowestID(t *testing.T) {
	sw, gdb := newSQLiteSweeper(t)
	ctx := context.Background()

	p := seedPool(t, gdb, 1, past())
	seedMember(t, gdb, p, 1, 0.18)

	at := time.Now().UTC().Add(-time.Hour)
	first := seedPoolBid(t, gdb, p, 1, 0.11, at)
	seedPoolBid(t, gdb, p, 2, 0.11, at)

	if _, err := sw.RunExpirySweep(ctx); err != nil {
		t.Fatalf("sweep: %v", err)
	}

	var got poolDomain.LoanPool
	gdb.First(&got, p.ID)
	if got.WinningBidID == nil || *got.WinningBidID != first.ID {
		t.Fatalf("winning bid = %v, want lowest id %d", got.WinningBidID, first.ID)
	}
}

func TestRunExpirySweep_NoBidsClosesPool(t *testing.T) {
	sw, gdb := newSQLiteSweeper(t)
	ctx := context.Background()

	p := seedPool(t, gdb, 1, past())
	m := seedMember(t, gdb, p, 1, 0.18)

	rep, err := sw.RunExpirySweep(ctx)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if rep.Closed != 1 || rep.Funded != 0 {
		t.Fatalf("report = %+v, want one closed", rep)
	}

	var got poolDomain.LoanPool
	gdb.First(&got, p.ID)
	if got.Status != poolDomain.StatusClosed {
		t.Fatalf("pool status = %s, want closed", got.Status)
	}
	if got.WinningBidID != nil {
		t.Fatalf("closed pool carries a winning bid: %d", *got.WinningBidID)
	}

	// Members stay pending at their posted rate; they can still be funded
	// individually.
	var l loanDomain.LoanRequest
	gdb.First(&l, m.ID)
	if l.Status != loanDomain.StatusPending || l.InterestRate != 0.18 {
		t.Fatalf("member after close: status=%s rate=%v", l.Status, l.InterestRate)
	}
}

func TestRunExpirySweep_SecondRunIsNoop(t *testing.T) {
	sw, gdb := newSQLiteSweeper(t)
	ctx := context.Background()

	funded := seedPool(t, gdb, 1, past())
	seedMember(t, gdb, funded, 1, 0.18)
	seedPoolBid(t, gdb, funded, 1, 0.10, time.Now().UTC().Add(-time.Hour))

	closed := seedPool(t, gdb, 2, past())
	seedMember(t, gdb, closed, 2, 0.25)

	rep, err := sw.RunExpirySweep(ctx)
	if err != nil {
		t.Fatalf("first sweep: %v", err)
	}
	if rep.Funded != 1 || rep.Closed != 1 {
		t.Fatalf("first report = %+v", rep)
	}

	rep, err = sw.RunExpirySweep(ctx)
	if err != nil {
		t.Fatalf("second sweep: %v", err)
	}
	if rep.Funded != 0 || rep.Closed != 0 || rep.Failed != 0 {
		t.Fatalf("second report = %+v, want all zero", rep)
	}
}

func TestRunExpirySweep_LeavesUnexpiredPoolsAlone(t *testing.T) {
	sw, gdb := newSQLiteSweeper(t)
	ctx := context.Background()

	future := time.Now().UTC().Add(time.Hour)
	live := seedPool(t, gdb, 1, &future)
	seedMember(t, gdb, live, 1, 0.18)
	seedPoolBid(t, gdb, live, 1, 0.10, time.Now().UTC())

	noWindow := seedPool(t, gdb, 2, nil)
	seedMember(t, gdb, noWindow, 2, 0.25)

	rep, err := sw.RunExpirySweep(ctx)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if rep.Funded != 0 || rep.Closed != 0 || rep.Failed != 0 {
		t.Fatalf("report = %+v, want untouched", rep)
	}

	var open int64
	gdb.Model(&poolDomain.LoanPool{}).Where("status = ?", poolDomain.StatusOpen).Count(&open)
	if open != 2 {
		t.Fatalf("open pools = %d, want both untouched", open)
	}
}

func TestStartStop_ResolvesOnTimerAndWaitsForCycle(t *testing.T) {
	sw, gdb := newSQLiteSweeper(t)
	sw.interval = 10 * time.Millisecond

	p := seedPool(t, gdb, 1, past())
	seedMember(t, gdb, p, 1, 0.18)

	go sw.Start()

	deadline := time.Now().Add(2 * time.Second)
	for {
		var got poolDomain.LoanPool
		if err := gdb.First(&got, p.ID).Error; err == nil && got.Status == poolDomain.StatusClosed {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("timer never resolved the expired pool")
		}
		time.Sleep(5 * time.Millisecond)
	}

	// Stop returns only once the loop (and any in-flight cycle) is done,
	// so the database is quiet afterwards.
	sw.Stop()

	rep, err := sw.RunExpirySweep(context.Background())
	if err != nil {
		t.Fatalf("sweep after stop: %v", err)
	}
	if rep.Funded != 0 || rep.Closed != 0 || rep.Failed != 0 {
		t.Fatalf("report = %+v, want nothing left to do", rep)
	}
}

func TestRunExpirySweep_SkipsFundedExpiredPool(t *testing.T) {
	sw, gdb := newSQLiteSweeper(t)
	ctx := context.Background()

	// A pool funded by a lender just before its window lapsed must not be
	// re-resolved even though its expiry has passed.
	p := seedPool(t, gdb, 1, past())
	m := seedMember(t, gdb, p, 1, 0.18)
	seedPoolBid(t, gdb, p, 1, 0.05, time.Now().UTC().Add(-time.Hour))

	gdb.Model(p).Update("status", poolDomain.StatusFunded)

	rep, err := sw.RunExpirySweep(ctx)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if rep.Funded != 0 || rep.Closed != 0 {
		t.Fatalf("report = %+v, want skip", rep)
	}

	var l loanDomain.LoanRequest
	gdb.First(&l, m.ID)
	if l.InterestRate != 0.18 {
		t.Fatalf("member rate rewritten to %v on skipped pool", l.InterestRate)
	}
}
