package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lojaviva/pos-api/internal/repositories"
)

var (
	// ErrCounterInvalidInput indicates the caller supplied invalid counter parameters.
	ErrCounterInvalidInput = errors.New("counter: invalid input")
	// ErrCounterExhausted indicates the requested counter cannot increment further due to max bounds.
	ErrCounterExhausted = errors.New("counter: exhausted")
)

const defaultOrderPrefix = "PDV"

// CounterServiceDeps bundles collaborators required to construct a counter service instance.
type CounterServiceDeps struct {
	Repository  repositories.CounterRepository
	OrderPrefix string
}

type counterService struct {
	repo        repositories.CounterRepository
	orderPrefix string
}

// NewCounterService constructs a service that manages counter sequences on top of the repository.
func NewCounterService(deps CounterServiceDeps) (CounterService, error) {
	if deps.Repository == nil {
		return nil, errors.New("counter service: repository is required")
	}

	prefix := strings.TrimSpace(deps.OrderPrefix)
	if prefix == "" {
		prefix = defaultOrderPrefix
	}

	return &counterService{repo: deps.Repository, orderPrefix: prefix}, nil
}

// Next increments the named counter and returns the new value.
func (s *counterService) Next(ctx context.Context, name string) (int64, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return 0, fmt.Errorf("%w: name is required", ErrCounterInvalidInput)
	}

	value, err := s.repo.Next(ctx, trimmed, 1)
	if err != nil {
		var counterErr *repositories.CounterError
		if errors.As(err, &counterErr) {
			switch counterErr.Code {
			case repositories.CounterErrorInvalidInput:
				return 0, fmt.Errorf("%w: %s", ErrCounterInvalidInput, counterErr.Message)
			case repositories.CounterErrorExhausted:
				return 0, fmt.Errorf("%w: %s", ErrCounterExhausted, counterErr.Message)
			}
		}
		return 0, err
	}
	return value, nil
}

// NextOrderNumber issues the next order number for the year of the provided
// timestamp, in the form PREFIX-YYYY-NNNN. Each year uses its own sequence
// so numbering restarts at 1 in January.
func (s *counterService) NextOrderNumber(ctx context.Context, at time.Time) (string, error) {
	year := at.UTC().Year()
	value, err := s.Next(ctx, fmt.Sprintf("orders:%04d", year))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%04d-%04d", s.orderPrefix, year, value), nil
}
