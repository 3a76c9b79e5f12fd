package memory

import (
	"context"
	"strings"
	"sync"

	domain "github.com/lojaviva/pos-api/internal/domain"
)

// ProductRepository serves a seeded, read-only product directory.
type ProductRepository struct {
	mu       sync.RWMutex
	products []domain.Product
}

// NewProductRepository constructs the directory from seed data.
func NewProductRepository(seed []domain.Product) *ProductRepository {
	products := make([]domain.Product, len(seed))
	copy(products, seed)
	return &ProductRepository{products: products}
}

// List returns every product in seed order.
func (r *ProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

// FindByID looks up a single product.
func (r *ProductRepository) FindByID(ctx context.Context, productID string) (domain.Product, error) {
	id := strings.TrimSpace(productID)

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, notFoundError("products.find", "no product with id "+id)
}
