package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	domain "github.com/lojaviva/pos-api/internal/domain"
	"github.com/lojaviva/pos-api/internal/repositories"
)

var (
	errBudgetRepositoryRequired = errors.New("budget service: repository is required")
	errBudgetCartsRequired      = errors.New("budget service: cart service is required")
	errBudgetCustomersRequired  = errors.New("budget service: customer service is required")
	errBudgetClockRequired      = errors.New("budget service: clock is required")
)

// ErrBudgetInvalidInput indicates the caller supplied invalid input.
var ErrBudgetInvalidInput = errors.New("budget service: invalid input")

// ErrBudgetNotFound indicates the requested budget does not exist.
var ErrBudgetNotFound = errors.New("budget service: not found")

// ErrBudgetEmptyCart indicates a save was attempted with no items in the cart.
var ErrBudgetEmptyCart = errors.New("budget service: cart has no items")

// ErrBudgetUnavailable indicates the budget store cannot be reached.
var ErrBudgetUnavailable = errors.New("budget service: unavailable")

// BudgetServiceDeps wires the budget repository and register-state collaborators.
type BudgetServiceDeps struct {
	Repository  repositories.BudgetRepository
	Carts       CartService
	Customers   CustomerService
	UnitOfWork  repositories.UnitOfWork
	Clock       func() time.Time
	IDGenerator func() string
	Logger      func(context.Context, string, map[string]any)
}

type budgetService struct {
	repo      repositories.BudgetRepository
	carts     CartService
	customers CustomerService
	uow       repositories.UnitOfWork
	now       func() time.Time
	newID     func() string
	logger    func(context.Context, string, map[string]any)
}

// NewBudgetService constructs a BudgetService enforcing dependency validation.
func NewBudgetService(deps BudgetServiceDeps) (BudgetService, error) {
	if deps.Repository == nil {
		return nil, errBudgetRepositoryRequired
	}
	if deps.Carts == nil {
		return nil, errBudgetCartsRequired
	}
	if deps.Customers == nil {
		return nil, errBudgetCustomersRequired
	}
	if deps.Clock == nil {
		return nil, errBudgetClockRequired
	}

	idGen := deps.IDGenerator
	if idGen == nil {
		idGen = func() string { return ulid.Make().String() }
	}

	logger := deps.Logger
	if logger == nil {
		logger = func(context.Context, string, map[string]any) {}
	}

	service := &budgetService{
		repo:      deps.Repository,
		carts:     deps.Carts,
		customers: deps.Customers,
		uow:       deps.UnitOfWork,
		now:       func() time.Time { return deps.Clock().UTC() },
		newID:     idGen,
		logger:    logger,
	}
	return service, nil
}

// ListBudgets returns every stored budget ordered by date, then id.
func (s *budgetService) ListBudgets(ctx context.Context) ([]Budget, error) {
	budgets, err := s.repo.List(ctx)
	if err != nil {
		return nil, s.translateRepoError(err)
	}
	sort.Slice(budgets, func(i, j int) bool {
		if !budgets[i].Date.Equal(budgets[j].Date) {
			return budgets[i].Date.Before(budgets[j].Date)
		}
		return budgets[i].ID < budgets[j].ID
	})
	return budgets, nil
}

// GetBudget fetches a single budget by id.
func (s *budgetService) GetBudget(ctx context.Context, budgetID string) (Budget, error) {
	id := strings.TrimSpace(budgetID)
	if id == "" {
		return Budget{}, ErrBudgetInvalidInput
	}

	budgets, err := s.repo.List(ctx)
	if err != nil {
		return Budget{}, s.translateRepoError(err)
	}
	for _, b := range budgets {
		if b.ID == id {
			return b, nil
		}
	}
	return Budget{}, ErrBudgetNotFound
}

// SaveBudget snapshots the register's cart, discount, and selected customer
// as a budget, then clears the register so the next transaction starts
// fresh. Saving an empty cart is rejected.
func (s *budgetService) SaveBudget(ctx context.Context, cmd SaveBudgetCommand) (Budget, error) {
	registerID := strings.TrimSpace(cmd.RegisterID)
	if registerID == "" {
		return Budget{}, ErrBudgetInvalidInput
	}

	cart, err := s.carts.GetCart(ctx, registerID)
	if err != nil {
		return Budget{}, s.translateCartError(err)
	}
	if len(cart.Items) == 0 {
		return Budget{}, ErrBudgetEmptyCart
	}

	customer, err := s.customers.SelectedCustomer(ctx, registerID)
	if err != nil {
		return Budget{}, err
	}

	totals := domain.CalculateTotals(cart.Items, cart.Discount)
	budget := domain.Budget{
		ID:       s.newID(),
		Date:     s.now(),
		Items:    domain.CloneItems(cart.Items),
		Discount: cart.Discount,
		Subtotal: totals.Subtotal,
		Total:    totals.Total,
	}
	if customer != nil {
		snapshot := *customer
		budget.Customer = &snapshot
	}

	saved, err := s.repo.Upsert(ctx, budget)
	if err != nil {
		return Budget{}, s.translateRepoError(err)
	}

	if err := s.carts.ClearCart(ctx, registerID); err != nil {
		return Budget{}, s.translateCartError(err)
	}
	if err := s.customers.ClearSelection(ctx, registerID); err != nil {
		return Budget{}, err
	}

	s.logger(ctx, "budget saved", map[string]any{
		"budget_id":   saved.ID,
		"register_id": registerID,
		"items":       len(saved.Items),
		"total":       saved.Total,
	})
	return saved, nil
}

// LoadBudget transfers the budget onto the register's cart and deletes it
// from the store. The restore and the delete run inside one transaction so
// a budget can never be loaded twice.
func (s *budgetService) LoadBudget(ctx context.Context, cmd LoadBudgetCommand) (Cart, error) {
	registerID := strings.TrimSpace(cmd.RegisterID)
	if registerID == "" {
		return Cart{}, ErrBudgetInvalidInput
	}
	budgetID := strings.TrimSpace(cmd.BudgetID)
	if budgetID == "" {
		return Cart{}, ErrBudgetInvalidInput
	}

	var restored Cart
	transfer := func(ctx context.Context) error {
		budget, err := s.GetBudget(ctx, budgetID)
		if err != nil {
			return err
		}

		now := s.now()
		cart, err := s.carts.ReplaceCart(ctx, domain.Cart{
			RegisterID: registerID,
			Items:      domain.CloneItems(budget.Items),
			Discount:   budget.Discount,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
		if err != nil {
			return s.translateCartError(err)
		}

		// The snapshot is authoritative: it is restored as-is even when the
		// customer has since left the directory, and a customerless budget
		// detaches whatever the register had selected before.
		if budget.Customer != nil {
			if err := s.customers.RestoreSelection(ctx, registerID, *budget.Customer); err != nil {
				return err
			}
		} else if err := s.customers.ClearSelection(ctx, registerID); err != nil {
			return err
		}

		if err := s.repo.Remove(ctx, budget.ID); err != nil {
			return s.translateRepoError(err)
		}

		restored = cart
		return nil
	}

	var err error
	if s.uow != nil {
		err = s.uow.RunInTx(ctx, transfer)
	} else {
		err = transfer(ctx)
	}
	if err != nil {
		return Cart{}, err
	}

	s.logger(ctx, "budget loaded", map[string]any{
		"budget_id":   budgetID,
		"register_id": registerID,
	})
	return restored, nil
}

// RemoveBudget deletes a budget by id. Removing an absent budget is a
// silent no-op.
func (s *budgetService) RemoveBudget(ctx context.Context, budgetID string) error {
	id := strings.TrimSpace(budgetID)
	if id == "" {
		return ErrBudgetInvalidInput
	}

	if err := s.repo.Remove(ctx, id); err != nil {
		return s.translateRepoError(err)
	}
	return nil
}

// ClearBudgets drops the whole budget collection.
func (s *budgetService) ClearBudgets(ctx context.Context) error {
	if err := s.repo.Clear(ctx); err != nil {
		return s.translateRepoError(err)
	}
	return nil
}

func (s *budgetService) translateRepoError(err error) error {
	if err == nil {
		return nil
	}
	var repoErr repositories.RepositoryError
	if errors.As(err, &repoErr) {
		if repoErr.IsNotFound() {
			return ErrBudgetNotFound
		}
		return ErrBudgetUnavailable
	}
	return ErrBudgetUnavailable
}

func (s *budgetService) translateCartError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, ErrCartInvalidInput):
		return fmt.Errorf("%w: %v", ErrBudgetInvalidInput, err)
	case errors.Is(err, ErrCartNotFound):
		return ErrBudgetNotFound
	}
	return ErrBudgetUnavailable
}
