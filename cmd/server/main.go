package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/credistack/lending-ledger/internal/adapter/http/controller"
	"github.com/credistack/lending-ledger/internal/adapter/http/middleware"
	"github.com/credistack/lending-ledger/internal/adapter/http/router"
	"github.com/credistack/lending-ledger/internal/adapter/repository/memory"
	"github.com/credistack/lending-ledger/internal/adapter/repository/postgres"
	"github.com/credistack/lending-ledger/internal/adapter/repository/repo_interfaces"
	"github.com/credistack/lending-ledger/internal/clock"
	"github.com/credistack/lending-ledger/internal/config"
	"github.com/credistack/lending-ledger/internal/events"
	eventskafka "github.com/credistack/lending-ledger/internal/events/kafka"
	"github.com/credistack/lending-ledger/internal/usecase/services"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		userRepo        repo_interfaces.UserRepository
		accountRepo     repo_interfaces.AccountRepository
		transactionRepo repo_interfaces.TransactionRepository
		loanRepo        repo_interfaces.LoanRepository
	)

	if cfg.DatabaseDSN == "memory" {
		store := memory.NewStore()
		userRepo = store.Users()
		accountRepo = store.Accounts()
		transactionRepo = store.Transactions()
		loanRepo = store.Loans()
		log.Println("running with in-memory store")
	} else {
		openCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()

		db, err := postgres.Open(openCtx, cfg.DatabaseDSN)
		if err != nil {
			log.Fatalf("open database: %v", err)
		}
		defer db.Close()

		if err := postgres.RunMigrations(openCtx, db, cfg.MigrationsDir); err != nil {
			log.Fatalf("run migrations: %v", err)
		}

		userRepo = postgres.NewUserRepository(db)
		accountRepo = postgres.NewAccountRepository(db)
		transactionRepo = postgres.NewTransactionRepository(db)
		loanRepo = postgres.NewLoanRepository(db)
	}

	var publisher events.Publisher = events.Noop{}
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher := eventskafka.NewPublisher(cfg.KafkaBrokers)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	}

	clk := clock.System()

	accountService := services.NewAccountService(accountRepo, userRepo, clk)
	transactionService := services.NewTransactionService(transactionRepo, accountRepo, publisher, clk)
	loanService := services.NewLoanService(loanRepo, userRepo, publisher, clk)
	userService := services.NewUserService(userRepo)

	mux := router.New(
		middleware.BasicAuth(cfg.ChannelID, cfg.ChannelKey),
		controller.NewAccountController(accountService),
		controller.NewTransactionController(transactionService),
		controller.NewLoanController(loanService),
		controller.NewUserController(userService),
	)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		log.Printf("listening on %s", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		log.Fatalf("server: %v", err)
	}
}
