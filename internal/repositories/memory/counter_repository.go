package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/lojaviva/pos-api/internal/repositories"
)

type counterRecord struct {
	currentValue int64
	step         int64
	maxValue     *int64
	updatedAt    time.Time
}

// CounterRepository implements transaction-safe sequence numbers in memory.
type CounterRepository struct {
	mu       sync.Mutex
	counters map[string]*counterRecord
}

// NewCounterRepository constructs an empty counter store.
func NewCounterRepository() *CounterRepository {
	return &CounterRepository{counters: make(map[string]*counterRecord)}
}

// Next atomically increments the counter identified by counterID and returns the next value.
func (r *CounterRepository) Next(ctx context.Context, counterID string, step int64) (int64, error) {
	id := strings.TrimSpace(counterID)
	if id == "" {
		return 0, repositories.NewCounterError(repositories.CounterErrorInvalidInput, "counter id is required", nil)
	}
	if step < 0 {
		return 0, repositories.NewCounterError(repositories.CounterErrorInvalidInput, fmt.Sprintf("step must be positive, got %d", step), nil)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	rec, ok := r.counters[id]
	if !ok {
		increment := step
		if increment <= 0 {
			increment = 1
		}
		rec = &counterRecord{currentValue: increment, step: increment, updatedAt: now}
		r.counters[id] = rec
		return rec.currentValue, nil
	}

	increment := step
	if increment <= 0 {
		if rec.step > 0 {
			increment = rec.step
		} else {
			increment = 1
		}
	}

	newValue := rec.currentValue + increment
	if rec.maxValue != nil && newValue > *rec.maxValue {
		return 0, repositories.NewCounterError(repositories.CounterErrorExhausted, fmt.Sprintf("counter %s exceeded max value %d", id, *rec.maxValue), nil)
	}

	rec.currentValue = newValue
	rec.step = increment
	rec.updatedAt = now
	return newValue, nil
}

// Configure updates optional settings for the counter such as step size, max value, or initial value.
func (r *CounterRepository) Configure(ctx context.Context, counterID string, cfg repositories.CounterConfig) error {
	id := strings.TrimSpace(counterID)
	if id == "" {
		return repositories.NewCounterError(repositories.CounterErrorInvalidInput, "counter id is required", nil)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.counters[id]
	if !ok {
		rec = &counterRecord{}
		r.counters[id] = rec
	}
	if cfg.Step > 0 {
		rec.step = cfg.Step
	}
	if cfg.MaxValue != nil {
		max := *cfg.MaxValue
		rec.maxValue = &max
	}
	if cfg.InitialValue != nil {
		rec.currentValue = *cfg.InitialValue
	}
	rec.updatedAt = time.Now().UTC()
	return nil
}
