package file

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"time"

	domain "github.com/lojaviva/pos-api/internal/domain"
)

const cartsFileName = "carts.json"

type cartDocument struct {
	RegisterID string             `json:"registerId"`
	Items      []lineItemDocument `json:"items"`
	Discount   discountDocument   `json:"discount"`
	CreatedAt  time.Time          `json:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt"`
}

// CartRepository persists per-register carts as a single JSON document,
// keeping cart state alive across process restarts.
type CartRepository struct {
	mu   sync.Mutex
	path string
}

// NewCartRepository stores carts under dir.
func NewCartRepository(dir string) (*CartRepository, error) {
	trimmed := strings.TrimSpace(dir)
	if trimmed == "" {
		return nil, errors.New("file cart repository: data directory is required")
	}
	return &CartRepository{path: filepath.Join(trimmed, cartsFileName)}, nil
}

// Get returns the cart for the register, or a not-found error when the
// register has never been written.
func (r *CartRepository) Get(ctx context.Context, registerID string) (domain.Cart, error) {
	id := strings.TrimSpace(registerID)

	r.mu.Lock()
	defer r.mu.Unlock()

	carts, err := r.load()
	if err != nil {
		return domain.Cart{}, err
	}
	for _, cart := range carts {
		if cart.RegisterID == id {
			return cart, nil
		}
	}
	return domain.Cart{}, notFoundError("carts.get", errors.New("no cart for register "+id))
}

// Upsert replaces the stored cart for its register.
func (r *CartRepository) Upsert(ctx context.Context, cart domain.Cart) (domain.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	carts, err := r.load()
	if err != nil {
		return domain.Cart{}, err
	}

	stored := cart
	stored.Totals = nil

	replaced := false
	for i := range carts {
		if carts[i].RegisterID == stored.RegisterID {
			carts[i] = stored
			replaced = true
			break
		}
	}
	if !replaced {
		carts = append(carts, stored)
	}

	if err := r.save(carts); err != nil {
		return domain.Cart{}, err
	}
	return stored, nil
}

// Delete removes the register's cart; absent registers are a no-op.
func (r *CartRepository) Delete(ctx context.Context, registerID string) error {
	id := strings.TrimSpace(registerID)

	r.mu.Lock()
	defer r.mu.Unlock()

	carts, err := r.load()
	if err != nil {
		return err
	}

	filtered := carts[:0]
	removed := false
	for _, cart := range carts {
		if cart.RegisterID == id {
			removed = true
			continue
		}
		filtered = append(filtered, cart)
	}
	if !removed {
		return nil
	}
	return r.save(filtered)
}

func (r *CartRepository) load() ([]domain.Cart, error) {
	var docs []cartDocument
	ok, err := readDocument(r.path, &docs)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []domain.Cart{}, nil
	}

	carts := make([]domain.Cart, 0, len(docs))
	for _, doc := range docs {
		carts = append(carts, domain.Cart{
			RegisterID: doc.RegisterID,
			Items:      itemsFromDocuments(doc.Items),
			Discount:   discountFromDocument(doc.Discount),
			CreatedAt:  doc.CreatedAt,
			UpdatedAt:  doc.UpdatedAt,
		})
	}
	return carts, nil
}

func (r *CartRepository) save(carts []domain.Cart) error {
	docs := make([]cartDocument, 0, len(carts))
	for _, cart := range carts {
		docs = append(docs, cartDocument{
			RegisterID: cart.RegisterID,
			Items:      itemsToDocuments(cart.Items),
			Discount:   discountDocument{Kind: string(cart.Discount.Kind), Value: cart.Discount.Value},
			CreatedAt:  cart.CreatedAt.UTC(),
			UpdatedAt:  cart.UpdatedAt.UTC(),
		})
	}
	return writeDocument(r.path, docs)
}
