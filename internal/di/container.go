// Package di wires configuration, storage backends, and services into a
// single application container.
package di

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/lojaviva/pos-api/internal/handlers"
	"github.com/lojaviva/pos-api/internal/platform/config"
	"github.com/lojaviva/pos-api/internal/platform/observability"
	"github.com/lojaviva/pos-api/internal/repositories"
	"github.com/lojaviva/pos-api/internal/repositories/file"
	"github.com/lojaviva/pos-api/internal/repositories/memory"
	"github.com/lojaviva/pos-api/internal/repositories/redis"
	"github.com/lojaviva/pos-api/internal/services"
)

// Container aggregates the application's wired dependencies.
type Container struct {
	Config   config.Config
	Logger   *zap.Logger
	Registry repositories.Registry

	Carts     services.CartService
	Customers services.CustomerService
	Catalog   services.CatalogService
	Budgets   services.BudgetService
	Sales     services.SaleService
	Counters  services.CounterService

	redisClient *goredis.Client
}

// NewContainer builds the registry for the configured storage backend and
// constructs every service on top of it.
func NewContainer(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Container, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Container{Config: cfg, Logger: logger}

	opts := memory.Options{
		SeedProducts:  memory.DefaultProducts(),
		SeedCustomers: memory.DefaultCustomers(),
		Sales:         memory.NewSaleRepository().WithLogger(logger),
	}

	switch cfg.Storage.Backend {
	case config.BackendMemory:
	case config.BackendFile:
		budgets, err := file.NewBudgetRepository(cfg.Storage.DataDir)
		if err != nil {
			return nil, fmt.Errorf("di: %w", err)
		}
		carts, err := file.NewCartRepository(cfg.Storage.DataDir)
		if err != nil {
			return nil, fmt.Errorf("di: %w", err)
		}
		opts.Budgets = budgets
		opts.Carts = carts
	case config.BackendRedis:
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := client.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("di: redis ping: %w", err)
		}
		c.redisClient = client
		opts.Budgets = redis.NewBudgetRepository(client)
	default:
		return nil, fmt.Errorf("di: unknown storage backend %q", cfg.Storage.Backend)
	}

	c.Registry = memory.NewRegistry(opts)

	serviceLogger := observability.ServiceLogger(logger)
	clock := time.Now

	counters, err := services.NewCounterService(services.CounterServiceDeps{
		Repository:  c.Registry.Counters(),
		OrderPrefix: cfg.Sales.OrderPrefix,
	})
	if err != nil {
		return nil, err
	}
	c.Counters = counters

	catalog, err := services.NewCatalogService(services.CatalogServiceDeps{
		Repository: c.Registry.Products(),
		Logger:     serviceLogger,
	})
	if err != nil {
		return nil, err
	}
	c.Catalog = catalog

	carts, err := services.NewCartService(services.CartServiceDeps{
		Repository: c.Registry.Carts(),
		Catalog:    c.Registry.Products(),
		Clock:      clock,
		Logger:     serviceLogger,
	})
	if err != nil {
		return nil, err
	}
	c.Carts = carts

	customers, err := services.NewCustomerService(services.CustomerServiceDeps{
		Repository: c.Registry.Customers(),
		Clock:      clock,
		Logger:     serviceLogger,
	})
	if err != nil {
		return nil, err
	}
	c.Customers = customers

	budgets, err := services.NewBudgetService(services.BudgetServiceDeps{
		Repository: c.Registry.Budgets(),
		Carts:      c.Carts,
		Customers:  c.Customers,
		UnitOfWork: c.Registry,
		Clock:      clock,
		Logger:     serviceLogger,
	})
	if err != nil {
		return nil, err
	}
	c.Budgets = budgets

	sales, err := services.NewSaleService(services.SaleServiceDeps{
		Repository: c.Registry.Sales(),
		Carts:      c.Carts,
		Customers:  c.Customers,
		Counters:   c.Counters,
		Clock:      clock,
		Logger:     serviceLogger,
	})
	if err != nil {
		return nil, err
	}
	c.Sales = sales

	return c, nil
}

// ReadinessChecks returns the named checks exposed on /readyz.
func (c *Container) ReadinessChecks() map[string]handlers.ReadinessChecker {
	checks := map[string]handlers.ReadinessChecker{
		"storage": func(ctx context.Context) error {
			if c.Registry == nil {
				return errors.New("registry not initialised")
			}
			_, err := c.Registry.Products().List(ctx)
			return err
		},
	}
	if c.redisClient != nil {
		checks["redis"] = func(ctx context.Context) error {
			return c.redisClient.Ping(ctx).Err()
		}
	}
	return checks
}

// Close releases backend connections.
func (c *Container) Close(ctx context.Context) error {
	var errs []error
	if c.Registry != nil {
		if err := c.Registry.Close(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	if c.redisClient != nil {
		if err := c.redisClient.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
