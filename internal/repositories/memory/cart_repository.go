package memory

import (
	"context"
	"strings"
	"sync"

	domain "github.com/lojaviva/pos-api/internal/domain"
)

// CartRepository stores per-register carts in memory.
type CartRepository struct {
	mu    sync.RWMutex
	carts map[string]domain.Cart
}

// NewCartRepository constructs an empty in-memory cart store.
func NewCartRepository() *CartRepository {
	return &CartRepository{carts: make(map[string]domain.Cart)}
}

// Get returns the cart for the register, or a not-found error when the
// register has never been written.
func (r *CartRepository) Get(ctx context.Context, registerID string) (domain.Cart, error) {
	id := strings.TrimSpace(registerID)

	r.mu.RLock()
	defer r.mu.RUnlock()

	cart, ok := r.carts[id]
	if !ok {
		return domain.Cart{}, notFoundError("carts.get", "no cart for register "+id)
	}
	return cloneCart(cart), nil
}

// Upsert replaces the stored cart for its register.
func (r *CartRepository) Upsert(ctx context.Context, cart domain.Cart) (domain.Cart, error) {
	id := strings.TrimSpace(cart.RegisterID)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.carts[id] = cloneCart(cart)
	return cloneCart(cart), nil
}

// Delete removes the register's cart; absent registers are a no-op.
func (r *CartRepository) Delete(ctx context.Context, registerID string) error {
	id := strings.TrimSpace(registerID)

	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.carts, id)
	return nil
}

func cloneCart(cart domain.Cart) domain.Cart {
	dup := cart
	dup.Items = domain.CloneItems(cart.Items)
	dup.Totals = nil
	return dup
}
