package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"fintrack/config"
	httpLayer "fintrack/http"
	"fintrack/repository"
	"fintrack/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var debtRepo repository.DebtRepository
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("postgres: %v", err)
		}
		defer pool.Close()

		pgRepo := repository.NewDebtRepositoryPostgres(pool)
		if err := pgRepo.EnsureSchema(ctx); err != nil {
			log.Fatalf("postgres schema: %v", err)
		}
		debtRepo = pgRepo
	} else {
		debtRepo = repository.NewDebtRepositoryMemory()
	}

	var cache repository.CacheRepository
	if cfg.RedisAddr != "" {
		cache = repository.NewRedisCache(cfg.RedisAddr)
	} else {
		cache = repository.NewMockCache()
	}

	// Account and cashflow state is in-memory even when DATABASE_URL is set;
	// only debts need to survive restarts for the reminder sweep.
	accountRepo := repository.NewAccountRepositoryMemory()
	cashflowRepo := repository.NewCashflowRepositoryMemory()

	clock := service.NewZoneClock(cfg.Location)
	notifier := service.NewNotifyService(cfg.FCMServerKey, cfg.SMTPAddr, cfg.SMTPFrom)

	debtService := service.NewDebtService(debtRepo, clock, notifier)
	reminderService := service.NewReminderService(debtRepo, notifier, clock, cfg.RemindDays)
	balanceService := service.NewBalanceService(accountRepo, cache)
	cashflowService := service.NewCashflowService(cashflowRepo, accountRepo, balanceService, clock)

	debtHandler := httpLayer.NewDebtHandler(debtService)
	accountHandler := httpLayer.NewAccountHandler(balanceService)
	cashflowHandler := httpLayer.NewCashflowHandler(cashflowService)

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
	defer rateLimiter.Stop()

	mux := http.NewServeMux()
	route := func(pattern string, handler http.HandlerFunc) {
		mux.Handle(pattern, httpLayer.RateLimitMiddleware(rateLimiter, handler))
	}

	route("/debt/create", debtHandler.CreateDebt)
	route("/debt/list", debtHandler.ListDebts)
	route("/debt/get", debtHandler.GetDebt)
	route("/debt/complete-payment", debtHandler.CompletePayment)
	route("/debt/delete", debtHandler.DeleteDebt)

	route("/account/bank", accountHandler.Bank)
	route("/account/banks", accountHandler.Banks)
	route("/account/wallet", accountHandler.Wallet)
	route("/account/ewallet", accountHandler.Ewallet)
	route("/account/total-balance", accountHandler.TotalBalance)
	route("/account/bank-share", accountHandler.BankShare)

	route("/cashflow/record", cashflowHandler.Record)
	route("/cashflow/summary", cashflowHandler.MonthlySummary)
	route("/cashflow/today", cashflowHandler.Today)
	route("/cashflow/weekly", cashflowHandler.Weekly)
	route("/cashflow/entries", cashflowHandler.Entries)
	route("/cashflow/category-ratio", cashflowHandler.CategoryRatio)

	go reminderService.Run(ctx, service.ReminderInterval)

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("API listening on %s", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		log.Printf("Error starting server: %v", err)
		return
	case <-quit:
		log.Println("Shutting down server...")
	}

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}

	log.Println("Server exited")
}
