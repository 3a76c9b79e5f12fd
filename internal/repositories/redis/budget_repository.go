// Package redis backs the budget collection with a Redis hash so several
// terminals can share one quote pool. Each budget is a JSON value stored
// under its id; entries that fail to decode are skipped on reads.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	domain "github.com/lojaviva/pos-api/internal/domain"
)

const budgetsKey = "pos:budgets"

// Error implements repositories.RepositoryError for Redis failures.
type Error struct {
	op  string
	err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %v", e.op, e.err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.err
}

// IsNotFound always reports false; lookup misses are resolved as empty results.
func (e *Error) IsNotFound() bool { return false }

// IsConflict always reports false; writes are last-write-wins.
func (e *Error) IsConflict() bool { return false }

// IsUnavailable reports true: any surfaced Redis failure means the backend
// is unreachable from this repository's perspective.
func (e *Error) IsUnavailable() bool { return e != nil }

type budgetPayload struct {
	ID       string            `json:"id"`
	Date     time.Time         `json:"date"`
	Customer *domain.Customer  `json:"customer,omitempty"`
	Items    []domain.LineItem `json:"items"`
	Discount domain.Discount   `json:"discount"`
	Subtotal int64             `json:"subtotal"`
	Total    int64             `json:"total"`
}

// BudgetRepository implements repositories.BudgetRepository on a Redis hash.
type BudgetRepository struct {
	client *redis.Client
}

// NewBudgetRepository wraps the provided client.
func NewBudgetRepository(client *redis.Client) *BudgetRepository {
	return &BudgetRepository{client: client}
}

// List returns every stored budget ordered by date, then id. Entries that
// cannot be decoded are dropped, mirroring the corrupted-storage tolerance
// of the other backends.
func (r *BudgetRepository) List(ctx context.Context) ([]domain.Budget, error) {
	values, err := r.client.HGetAll(ctx, budgetsKey).Result()
	if err != nil {
		return nil, &Error{op: "budgets.list", err: err}
	}

	budgets := make([]domain.Budget, 0, len(values))
	for _, raw := range values {
		var payload budgetPayload
		if err := json.Unmarshal([]byte(raw), &payload); err != nil {
			continue
		}
		budgets = append(budgets, domain.Budget{
			ID:       payload.ID,
			Date:     payload.Date,
			Customer: payload.Customer,
			Items:    payload.Items,
			Discount: normaliseDiscount(payload.Discount),
			Subtotal: payload.Subtotal,
			Total:    payload.Total,
		})
	}

	sort.Slice(budgets, func(i, j int) bool {
		if !budgets[i].Date.Equal(budgets[j].Date) {
			return budgets[i].Date.Before(budgets[j].Date)
		}
		return budgets[i].ID < budgets[j].ID
	})
	return budgets, nil
}

// Upsert stores the budget under its id, replacing any previous value.
func (r *BudgetRepository) Upsert(ctx context.Context, budget domain.Budget) (domain.Budget, error) {
	payload := budgetPayload{
		ID:       budget.ID,
		Date:     budget.Date.UTC(),
		Customer: budget.Customer,
		Items:    budget.Items,
		Discount: budget.Discount,
		Subtotal: budget.Subtotal,
		Total:    budget.Total,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return domain.Budget{}, &Error{op: "budgets.encode", err: err}
	}
	if err := r.client.HSet(ctx, budgetsKey, strings.TrimSpace(budget.ID), data).Err(); err != nil {
		return domain.Budget{}, &Error{op: "budgets.upsert", err: err}
	}
	return budget, nil
}

// Remove deletes the budget by id; absent ids are a no-op.
func (r *BudgetRepository) Remove(ctx context.Context, budgetID string) error {
	if err := r.client.HDel(ctx, budgetsKey, strings.TrimSpace(budgetID)).Err(); err != nil {
		return &Error{op: "budgets.remove", err: err}
	}
	return nil
}

// Clear drops the whole budget collection.
func (r *BudgetRepository) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, budgetsKey).Err(); err != nil {
		return &Error{op: "budgets.clear", err: err}
	}
	return nil
}

func normaliseDiscount(d domain.Discount) domain.Discount {
	switch d.Kind {
	case domain.DiscountPercentage, domain.DiscountFixed:
		return d
	}
	return domain.NoDiscount()
}
