package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	domain "github.com/lojaviva/pos-api/internal/domain"
	"github.com/lojaviva/pos-api/internal/repositories"
)

var (
	errSaleRepositoryRequired = errors.New("sale service: repository is required")
	errSaleCartsRequired      = errors.New("sale service: cart service is required")
	errSaleCustomersRequired  = errors.New("sale service: customer service is required")
	errSaleCountersRequired   = errors.New("sale service: counter service is required")
	errSaleClockRequired      = errors.New("sale service: clock is required")
)

const maxSaleNotesLength = 500

// ErrSaleInvalidInput indicates the caller supplied invalid input.
var ErrSaleInvalidInput = errors.New("sale service: invalid input")

// ErrSaleEmptyCart indicates finalization was attempted with no items in the cart.
var ErrSaleEmptyCart = errors.New("sale service: cart has no items")

// ErrSaleNoCustomer indicates finalization was attempted without a selected customer.
var ErrSaleNoCustomer = errors.New("sale service: no customer selected")

// ErrSaleZeroTotal indicates the cart total is not positive.
var ErrSaleZeroTotal = errors.New("sale service: total must be greater than zero")

// ErrSaleUnavailable indicates the sale could not be recorded due to backend issues.
var ErrSaleUnavailable = errors.New("sale service: unavailable")

// SaleServiceDeps wires the sale sink and register-state collaborators.
type SaleServiceDeps struct {
	Repository  repositories.SaleRepository
	Carts       CartService
	Customers   CustomerService
	Counters    CounterService
	Clock       func() time.Time
	IDGenerator func() string
	Logger      func(context.Context, string, map[string]any)
}

type saleService struct {
	repo      repositories.SaleRepository
	carts     CartService
	customers CustomerService
	counters  CounterService
	now       func() time.Time
	newID     func() string
	logger    func(context.Context, string, map[string]any)
}

// NewSaleService constructs a SaleService enforcing dependency validation.
func NewSaleService(deps SaleServiceDeps) (SaleService, error) {
	if deps.Repository == nil {
		return nil, errSaleRepositoryRequired
	}
	if deps.Carts == nil {
		return nil, errSaleCartsRequired
	}
	if deps.Customers == nil {
		return nil, errSaleCustomersRequired
	}
	if deps.Counters == nil {
		return nil, errSaleCountersRequired
	}
	if deps.Clock == nil {
		return nil, errSaleClockRequired
	}

	idGen := deps.IDGenerator
	if idGen == nil {
		idGen = func() string { return uuid.NewString() }
	}

	logger := deps.Logger
	if logger == nil {
		logger = func(context.Context, string, map[string]any) {}
	}

	service := &saleService{
		repo:      deps.Repository,
		carts:     deps.Carts,
		customers: deps.Customers,
		counters:  deps.Counters,
		now:       func() time.Time { return deps.Clock().UTC() },
		newID:     idGen,
		logger:    logger,
	}
	return service, nil
}

// FinalizeSale closes out the register's cart as a completed sale. The gate
// rejects an empty cart, a missing customer selection, and a non-positive
// total before anything is written. On success the cart and the customer
// selection are cleared.
func (s *saleService) FinalizeSale(ctx context.Context, cmd FinalizeSaleCommand) (Sale, error) {
	registerID := strings.TrimSpace(cmd.RegisterID)
	if registerID == "" {
		return Sale{}, ErrSaleInvalidInput
	}
	if !domain.ValidPaymentMethod(cmd.PaymentMethod) {
		return Sale{}, fmt.Errorf("%w: unknown payment method %q", ErrSaleInvalidInput, cmd.PaymentMethod)
	}
	notes := strings.TrimSpace(cmd.Notes)
	if len(notes) > maxSaleNotesLength {
		return Sale{}, fmt.Errorf("%w: notes must be %d characters or fewer", ErrSaleInvalidInput, maxSaleNotesLength)
	}

	cart, err := s.carts.GetCart(ctx, registerID)
	if err != nil {
		return Sale{}, s.translateCartError(err)
	}
	if len(cart.Items) == 0 {
		return Sale{}, ErrSaleEmptyCart
	}

	customer, err := s.customers.SelectedCustomer(ctx, registerID)
	if err != nil {
		return Sale{}, err
	}
	if customer == nil {
		return Sale{}, ErrSaleNoCustomer
	}

	totals := domain.CalculateTotals(cart.Items, cart.Discount)
	if totals.Total <= 0 {
		return Sale{}, ErrSaleZeroTotal
	}

	now := s.now()
	orderNumber, err := s.counters.NextOrderNumber(ctx, now)
	if err != nil {
		return Sale{}, ErrSaleUnavailable
	}

	sale := domain.Sale{
		ID:            s.newID(),
		OrderNumber:   orderNumber,
		Date:          now,
		Customer:      *customer,
		Items:         domain.CloneItems(cart.Items),
		Discount:      cart.Discount,
		Subtotal:      totals.Subtotal,
		Total:         totals.Total,
		PaymentMethod: cmd.PaymentMethod,
		Status:        domain.SaleCompleted,
		Notes:         notes,
	}

	if err := s.repo.Insert(ctx, sale); err != nil {
		return Sale{}, s.translateRepoError(err)
	}

	if err := s.carts.ClearCart(ctx, registerID); err != nil {
		return Sale{}, s.translateCartError(err)
	}
	if err := s.customers.ClearSelection(ctx, registerID); err != nil {
		return Sale{}, err
	}

	s.logger(ctx, "sale finalized", map[string]any{
		"sale_id":      sale.ID,
		"order_number": sale.OrderNumber,
		"register_id":  registerID,
		"total":        sale.Total,
		"payment":      string(sale.PaymentMethod),
	})
	return sale, nil
}

// ListSales returns every recorded sale.
func (s *saleService) ListSales(ctx context.Context) ([]Sale, error) {
	sales, err := s.repo.List(ctx)
	if err != nil {
		return nil, s.translateRepoError(err)
	}
	return sales, nil
}

func (s *saleService) translateRepoError(err error) error {
	if err == nil {
		return nil
	}
	var repoErr repositories.RepositoryError
	if errors.As(err, &repoErr) {
		return ErrSaleUnavailable
	}
	return ErrSaleUnavailable
}

func (s *saleService) translateCartError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrCartInvalidInput) {
		return fmt.Errorf("%w: %v", ErrSaleInvalidInput, err)
	}
	return ErrSaleUnavailable
}
