package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	httpadp "lendpool-backend/internal/adapter/http"
	mw "lendpool-backend/internal/adapter/middleware"
	"lendpool-backend/internal/adapter/repository/mysql"
	"lendpool-backend/internal/config"
	"lendpool-backend/internal/domain/uow"
	"lendpool-backend/internal/infrastructure/cache"
	"lendpool-backend/internal/infrastructure/db"
	auctionUC "lendpool-backend/internal/usecase/auction"
	profileUC "lendpool-backend/internal/usecase/profile"
	"lendpool-backend/internal/usecase/sweeper"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}

	repos := uow.Repos{
		Loans:    mysql.NewLoanRepository(gdb),
		LoanBids: mysql.NewLoanBidRepository(gdb),
		Pools:    mysql.NewPoolRepository(gdb),
		PoolBids: mysql.NewPoolBidRepository(gdb),
		Profiles: mysql.NewProfileRepository(gdb),
	}
	tx := mysql.NewGormUoW(gdb)

	auction := auctionUC.NewUsecase(repos, tx)
	profiles := profileUC.NewUsecase(repos.Profiles)
	sw := sweeper.New(repos.Pools, tx, cfg.SweepInterval)

	h := httpadp.NewHandler()
	loanHandler := httpadp.NewLoanHandler(auction, cfg.PoolBidWindow)
	poolHandler := httpadp.NewPoolHandler(auction)
	profileHandler := httpadp.NewProfileHandler(profiles)
	sweepHandler := httpadp.NewSweepHandler(sw)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(middleware.Logger(), middleware.Recover())

	e.GET("/health", h.Health)

	authed := e.Group("", mw.Identity(), mw.Idempotency(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second))
	authed.POST("/loans", loanHandler.CreateLoan)
	authed.GET("/loans", loanHandler.GetOpenLoans)
	authed.GET("/loans/my", loanHandler.GetMyLoans)
	authed.GET("/loans/:loan_id", loanHandler.GetLoanDetail)
	authed.POST("/loans/:loan_id/bids", loanHandler.PlaceBid)
	authed.POST("/loans/:loan_id/bids/:bid_id/accept", loanHandler.AcceptBid)
	authed.POST("/loans/:loan_id/close", loanHandler.CloseLoan)
	authed.POST("/loans/:loan_id/invest", loanHandler.InvestDirect)
	authed.GET("/pools", poolHandler.GetOpenPools)
	authed.GET("/pools/:pool_id", poolHandler.GetPoolDetail)
	authed.POST("/pools/:pool_id/bids", poolHandler.PlacePoolBid)
	authed.POST("/pools/:pool_id/invest", poolHandler.InvestInPool)
	authed.PUT("/profile", profileHandler.Upsert)
	authed.GET("/profile", profileHandler.Get)
	authed.POST("/sweep", sweepHandler.RunSweep)

	go sw.Start()

	go func() {
		addr := ":" + cfg.AppPort
		log.Printf("listening on %s", addr)
		if err := e.Start(addr); err != nil {
			log.Printf("server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down")

	sw.Stop()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
