package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/lojaviva/pos-api/internal/di"
	"github.com/lojaviva/pos-api/internal/handlers"
	"github.com/lojaviva/pos-api/internal/platform/config"
	"github.com/lojaviva/pos-api/internal/platform/observability"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := observability.NewLogger(cfg.Log.Level)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server exited with error", zap.Error(err))
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	container, err := di.NewContainer(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := container.Close(closeCtx); err != nil {
			logger.Warn("failed to close container", zap.Error(err))
		}
	}()

	cartHandlers := handlers.NewCartHandlers(container.Carts)
	customerHandlers := handlers.NewCustomerHandlers(container.Customers)
	productHandlers := handlers.NewProductHandlers(container.Catalog)
	budgetHandlers := handlers.NewBudgetHandlers(container.Budgets)
	saleHandlers := handlers.NewSaleHandlers(container.Sales)

	router := handlers.NewRouter(
		handlers.WithMiddlewares(
			observability.InjectLoggerMiddleware(logger),
			observability.RequestLoggerMiddleware(),
			observability.RecoveryMiddleware(),
		),
		handlers.WithHealthHandlers(handlers.NewHealthHandlers(container.ReadinessChecks())),
		handlers.WithProductRoutes(productHandlers.Routes),
		handlers.WithCustomerRoutes(customerHandlers.Routes),
		handlers.WithBudgetRoutes(budgetHandlers.Routes),
		handlers.WithSaleRoutes(saleHandlers.Routes),
		handlers.WithRegisterRoutes(
			cartHandlers.Routes,
			customerHandlers.SelectionRoutes,
			budgetHandlers.RegisterRoutes,
			saleHandlers.RegisterRoutes,
		),
	)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening",
			zap.String("addr", server.Addr),
			zap.String("storage_backend", cfg.Storage.Backend),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
