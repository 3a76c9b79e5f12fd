package memory

import (
	"context"
	"strings"
	"sync"

	domain "github.com/lojaviva/pos-api/internal/domain"
)

// BudgetRepository stores saved quotes in memory, keyed by budget id.
// Insertion order is preserved for stable listings.
type BudgetRepository struct {
	mu      sync.RWMutex
	order   []string
	budgets map[string]domain.Budget
}

// NewBudgetRepository constructs an empty in-memory budget store.
func NewBudgetRepository() *BudgetRepository {
	return &BudgetRepository{budgets: make(map[string]domain.Budget)}
}

// List returns every stored budget in insertion order.
func (r *BudgetRepository) List(ctx context.Context) ([]domain.Budget, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Budget, 0, len(r.order))
	for _, id := range r.order {
		if b, ok := r.budgets[id]; ok {
			out = append(out, cloneBudget(b))
		}
	}
	return out, nil
}

// Upsert replaces the budget when the id exists, otherwise appends it.
func (r *BudgetRepository) Upsert(ctx context.Context, budget domain.Budget) (domain.Budget, error) {
	id := strings.TrimSpace(budget.ID)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.budgets[id]; !exists {
		r.order = append(r.order, id)
	}
	r.budgets[id] = cloneBudget(budget)
	return cloneBudget(budget), nil
}

// Remove deletes the budget by id; absent ids are a no-op.
func (r *BudgetRepository) Remove(ctx context.Context, budgetID string) error {
	id := strings.TrimSpace(budgetID)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.budgets[id]; !exists {
		return nil
	}
	delete(r.budgets, id)
	for i, stored := range r.order {
		if stored == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// Clear drops every stored budget.
func (r *BudgetRepository) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.order = nil
	r.budgets = make(map[string]domain.Budget)
	return nil
}

func cloneBudget(b domain.Budget) domain.Budget {
	dup := b
	dup.Items = domain.CloneItems(b.Items)
	if b.Customer != nil {
		customer := *b.Customer
		if b.Customer.Address != nil {
			addr := *b.Customer.Address
			customer.Address = &addr
		}
		dup.Customer = &customer
	}
	return dup
}
