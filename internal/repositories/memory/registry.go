package memory

import (
	"context"
	"sync"

	domain "github.com/lojaviva/pos-api/internal/domain"
	"github.com/lojaviva/pos-api/internal/repositories"
)

// Options customises the registry with seed data and repository overrides.
// Overrides let durable backends (file, redis) replace individual stores
// while the rest stay in memory.
type Options struct {
	SeedProducts  []domain.Product
	SeedCustomers []domain.Customer

	Carts   repositories.CartRepository
	Budgets repositories.BudgetRepository
	Sales   repositories.SaleRepository
}

// Registry is an in-memory repositories.Registry. All repositories share a
// single mutex-backed store, so access is serialised the way a single POS
// terminal drives it.
type Registry struct {
	txMu sync.Mutex

	carts     repositories.CartRepository
	budgets   repositories.BudgetRepository
	sales     repositories.SaleRepository
	products  *ProductRepository
	customers *CustomerRepository
	counters  *CounterRepository
}

// NewRegistry builds the in-memory registry, applying overrides when given.
func NewRegistry(opts Options) *Registry {
	reg := &Registry{
		carts:     opts.Carts,
		budgets:   opts.Budgets,
		sales:     opts.Sales,
		products:  NewProductRepository(opts.SeedProducts),
		customers: NewCustomerRepository(opts.SeedCustomers),
		counters:  NewCounterRepository(),
	}
	if reg.carts == nil {
		reg.carts = NewCartRepository()
	}
	if reg.budgets == nil {
		reg.budgets = NewBudgetRepository()
	}
	if reg.sales == nil {
		reg.sales = NewSaleRepository()
	}
	return reg
}

// Close releases nothing for the in-memory registry but satisfies the contract.
func (r *Registry) Close(ctx context.Context) error { return nil }

// Carts returns the cart repository.
func (r *Registry) Carts() repositories.CartRepository { return r.carts }

// Budgets returns the budget repository.
func (r *Registry) Budgets() repositories.BudgetRepository { return r.budgets }

// Sales returns the sale sink.
func (r *Registry) Sales() repositories.SaleRepository { return r.sales }

// Products returns the product directory.
func (r *Registry) Products() repositories.ProductRepository { return r.products }

// Customers returns the customer directory.
func (r *Registry) Customers() repositories.CustomerRepository { return r.customers }

// Counters returns the sequence counter repository.
func (r *Registry) Counters() repositories.CounterRepository { return r.counters }

// RunInTx serialises the callback against all other transactional work.
// Individual repositories stay safe on their own; the transaction mutex
// only guarantees that multi-repository sequences (such as a budget load
// transfer) are not interleaved.
func (r *Registry) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if fn == nil {
		return nil
	}
	r.txMu.Lock()
	defer r.txMu.Unlock()
	return fn(ctx)
}
