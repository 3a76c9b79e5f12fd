package memory

import (
	"context"
	"strings"
	"sync"

	domain "github.com/lojaviva/pos-api/internal/domain"
)

// CustomerRepository serves a seeded customer directory that accepts new records.
type CustomerRepository struct {
	mu        sync.RWMutex
	customers []domain.Customer
}

// NewCustomerRepository constructs the directory from seed data.
func NewCustomerRepository(seed []domain.Customer) *CustomerRepository {
	customers := make([]domain.Customer, len(seed))
	copy(customers, seed)
	return &CustomerRepository{customers: customers}
}

// List returns every customer in insertion order.
func (r *CustomerRepository) List(ctx context.Context) ([]domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Customer, len(r.customers))
	copy(out, r.customers)
	return out, nil
}

// FindByID looks up a single customer.
func (r *CustomerRepository) FindByID(ctx context.Context, customerID string) (domain.Customer, error) {
	id := strings.TrimSpace(customerID)

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, c := range r.customers {
		if c.ID == id {
			return c, nil
		}
	}
	return domain.Customer{}, notFoundError("customers.find", "no customer with id "+id)
}

// Insert appends a new customer record.
func (r *CustomerRepository) Insert(ctx context.Context, customer domain.Customer) (domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.customers = append(r.customers, customer)
	return customer, nil
}
