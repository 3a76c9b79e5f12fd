package memory

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	domain "github.com/lojaviva/pos-api/internal/domain"
)

// SaleRepository is the in-memory sale sink. Duplicate submissions of the
// same sale id are absorbed silently, keeping finalize retries idempotent.
type SaleRepository struct {
	mu     sync.RWMutex
	order  []string
	sales  map[string]domain.Sale
	logger *zap.Logger
}

// NewSaleRepository constructs an empty sale sink.
func NewSaleRepository() *SaleRepository {
	return &SaleRepository{sales: make(map[string]domain.Sale), logger: zap.NewNop()}
}

// WithLogger attaches a logger used to record accepted sales.
func (r *SaleRepository) WithLogger(logger *zap.Logger) *SaleRepository {
	if logger != nil {
		r.logger = logger
	}
	return r
}

// Insert records the sale. A second insert with the same id is a no-op.
func (r *SaleRepository) Insert(ctx context.Context, sale domain.Sale) error {
	id := strings.TrimSpace(sale.ID)
	if id == "" {
		return unavailableError("sales.insert", "sale id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sales[id]; exists {
		return nil
	}
	dup := sale
	dup.Items = domain.CloneItems(sale.Items)
	r.sales[id] = dup
	r.order = append(r.order, id)

	r.logger.Info("sale recorded",
		zap.String("saleID", id),
		zap.String("orderNumber", sale.OrderNumber),
		zap.Int64("total", sale.Total),
		zap.String("paymentMethod", string(sale.PaymentMethod)),
	)
	return nil
}

// List returns recorded sales in insertion order.
func (r *SaleRepository) List(ctx context.Context) ([]domain.Sale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Sale, 0, len(r.order))
	for _, id := range r.order {
		if s, ok := r.sales[id]; ok {
			dup := s
			dup.Items = domain.CloneItems(s.Items)
			out = append(out, dup)
		}
	}
	return out, nil
}
