package services

import (
	"context"
	"fmt"
	"sync"

	domain "github.com/lojaviva/pos-api/internal/domain"
)

type stubRepoError struct {
	msg         string
	notFound    bool
	conflict    bool
	unavailable bool
}

func (e *stubRepoError) Error() string       { return e.msg }
func (e *stubRepoError) IsNotFound() bool    { return e.notFound }
func (e *stubRepoError) IsConflict() bool    { return e.conflict }
func (e *stubRepoError) IsUnavailable() bool { return e.unavailable }

func stubNotFound(msg string) error {
	return &stubRepoError{msg: msg, notFound: true}
}

type stubCartRepo struct {
	mu    sync.Mutex
	carts map[string]domain.Cart
}

func newStubCartRepo() *stubCartRepo {
	return &stubCartRepo{carts: make(map[string]domain.Cart)}
}

func (r *stubCartRepo) Get(ctx context.Context, registerID string) (domain.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cart, ok := r.carts[registerID]
	if !ok {
		return domain.Cart{}, stubNotFound("no cart for " + registerID)
	}
	return cart, nil
}

func (r *stubCartRepo) Upsert(ctx context.Context, cart domain.Cart) (domain.Cart, error) {
	stored := cart
	stored.Totals = nil
	r.mu.Lock()
	r.carts[cart.RegisterID] = stored
	r.mu.Unlock()
	return stored, nil
}

func (r *stubCartRepo) Delete(ctx context.Context, registerID string) error {
	r.mu.Lock()
	delete(r.carts, registerID)
	r.mu.Unlock()
	return nil
}

type stubProductRepo struct {
	products map[string]domain.Product
}

func newStubProductRepo(products ...domain.Product) *stubProductRepo {
	index := make(map[string]domain.Product, len(products))
	for _, p := range products {
		index[p.ID] = p
	}
	return &stubProductRepo{products: index}
}

func (r *stubProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, p)
	}
	return out, nil
}

func (r *stubProductRepo) FindByID(ctx context.Context, productID string) (domain.Product, error) {
	p, ok := r.products[productID]
	if !ok {
		return domain.Product{}, stubNotFound("no product " + productID)
	}
	return p, nil
}

type stubCustomerRepo struct {
	mu        sync.Mutex
	customers []domain.Customer
}

func newStubCustomerRepo(customers ...domain.Customer) *stubCustomerRepo {
	return &stubCustomerRepo{customers: customers}
}

func (r *stubCustomerRepo) List(ctx context.Context) ([]domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Customer, len(r.customers))
	copy(out, r.customers)
	return out, nil
}

func (r *stubCustomerRepo) FindByID(ctx context.Context, customerID string) (domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.customers {
		if c.ID == customerID {
			return c, nil
		}
	}
	return domain.Customer{}, stubNotFound("no customer " + customerID)
}

func (r *stubCustomerRepo) Insert(ctx context.Context, customer domain.Customer) (domain.Customer, error) {
	r.mu.Lock()
	r.customers = append(r.customers, customer)
	r.mu.Unlock()
	return customer, nil
}

type stubBudgetRepo struct {
	mu      sync.Mutex
	budgets []domain.Budget
}

func newStubBudgetRepo() *stubBudgetRepo {
	return &stubBudgetRepo{}
}

func (r *stubBudgetRepo) List(ctx context.Context) ([]domain.Budget, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Budget, len(r.budgets))
	copy(out, r.budgets)
	return out, nil
}

func (r *stubBudgetRepo) Upsert(ctx context.Context, budget domain.Budget) (domain.Budget, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.budgets {
		if r.budgets[i].ID == budget.ID {
			r.budgets[i] = budget
			return budget, nil
		}
	}
	r.budgets = append(r.budgets, budget)
	return budget, nil
}

func (r *stubBudgetRepo) Remove(ctx context.Context, budgetID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.budgets {
		if r.budgets[i].ID == budgetID {
			r.budgets = append(r.budgets[:i], r.budgets[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *stubBudgetRepo) Clear(ctx context.Context) error {
	r.mu.Lock()
	r.budgets = nil
	r.mu.Unlock()
	return nil
}

type stubSaleRepo struct {
	mu    sync.Mutex
	sales []domain.Sale
}

func newStubSaleRepo() *stubSaleRepo {
	return &stubSaleRepo{}
}

func (r *stubSaleRepo) Insert(ctx context.Context, sale domain.Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.sales {
		if existing.ID == sale.ID {
			return nil
		}
	}
	r.sales = append(r.sales, sale)
	return nil
}

func (r *stubSaleRepo) List(ctx context.Context) ([]domain.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Sale, len(r.sales))
	copy(out, r.sales)
	return out, nil
}

type sequentialIDs struct {
	mu     sync.Mutex
	prefix string
	n      int
}

func (g *sequentialIDs) next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%s-%d", g.prefix, g.n)
}
