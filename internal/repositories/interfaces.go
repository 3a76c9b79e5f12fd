package repositories

import (
	"context"

	domain "github.com/lojaviva/pos-api/internal/domain"
)

// Registry exposes typed repository accessors and lifecycle hooks for dependency injection.
type Registry interface {
	Close(ctx context.Context) error

	Carts() CartRepository
	Budgets() BudgetRepository
	Sales() SaleRepository
	Products() ProductRepository
	Customers() CustomerRepository
	Counters() CounterRepository
	UnitOfWork
}

// RepositoryError wraps low-level persistence failures with categorisation used by services.
type RepositoryError interface {
	error
	IsNotFound() bool
	IsConflict() bool
	IsUnavailable() bool
}

// UnitOfWork allows grouping repository operations in a transactional boundary when supported.
type UnitOfWork interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// CartRepository persists per-register cart state across sessions.
type CartRepository interface {
	Get(ctx context.Context, registerID string) (domain.Cart, error)
	Upsert(ctx context.Context, cart domain.Cart) (domain.Cart, error)
	Delete(ctx context.Context, registerID string) error
}

// BudgetRepository is a durable key-value collection of saved quotes keyed
// by budget id. List tolerates malformed storage by returning an empty
// collection; Remove is a no-op when the id is absent.
type BudgetRepository interface {
	List(ctx context.Context) ([]domain.Budget, error)
	Upsert(ctx context.Context, budget domain.Budget) (domain.Budget, error)
	Remove(ctx context.Context, budgetID string) error
	Clear(ctx context.Context) error
}

// SaleRepository is the sink for finalized sales. Insert must be idempotent
// on duplicate submission of the same sale id.
type SaleRepository interface {
	Insert(ctx context.Context, sale domain.Sale) error
	List(ctx context.Context) ([]domain.Sale, error)
}

// ProductRepository reads the product directory.
type ProductRepository interface {
	List(ctx context.Context) ([]domain.Product, error)
	FindByID(ctx context.Context, productID string) (domain.Product, error)
}

// CustomerRepository reads and extends the customer directory.
type CustomerRepository interface {
	List(ctx context.Context) ([]domain.Customer, error)
	FindByID(ctx context.Context, customerID string) (domain.Customer, error)
	Insert(ctx context.Context, customer domain.Customer) (domain.Customer, error)
}

// CounterRepository provides transaction-safe sequence numbers.
type CounterRepository interface {
	Next(ctx context.Context, counterID string, step int64) (int64, error)
	Configure(ctx context.Context, counterID string, cfg CounterConfig) error
}

// CounterConfig customises increment behaviour and bounds for a counter.
type CounterConfig struct {
	Step         int64
	MaxValue     *int64
	InitialValue *int64
}
