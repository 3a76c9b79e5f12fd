package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	domain "github.com/lojaviva/pos-api/internal/domain"
	"github.com/lojaviva/pos-api/internal/repositories"
)

var (
	errCartRepositoryRequired = errors.New("cart service: repository is required")
	errCartCatalogRequired    = errors.New("cart service: catalog is required")
	errCartClockRequired      = errors.New("cart service: clock is required")
)

const maxLineQuantity = 9999

// ErrCartInvalidInput indicates the caller supplied invalid input.
var ErrCartInvalidInput = errors.New("cart service: invalid input")

// ErrCartUnavailable indicates the cart service cannot fulfil the request due to backend issues.
var ErrCartUnavailable = errors.New("cart service: unavailable")

// ErrCartNotFound indicates the requested cart does not exist.
var ErrCartNotFound = errors.New("cart service: not found")

type productFinder interface {
	FindByID(ctx context.Context, productID string) (domain.Product, error)
}

// CartServiceDeps wires the repository and catalog dependencies for cart operations.
type CartServiceDeps struct {
	Repository repositories.CartRepository
	Catalog    productFinder
	Clock      func() time.Time
	Logger     func(context.Context, string, map[string]any)
}

type cartService struct {
	repo    repositories.CartRepository
	catalog productFinder
	now     func() time.Time
	logger  func(context.Context, string, map[string]any)
}

// NewCartService constructs a CartService enforcing dependency validation.
func NewCartService(deps CartServiceDeps) (CartService, error) {
	if deps.Repository == nil {
		return nil, errCartRepositoryRequired
	}
	if deps.Catalog == nil {
		return nil, errCartCatalogRequired
	}
	if deps.Clock == nil {
		return nil, errCartClockRequired
	}

	logger := deps.Logger
	if logger == nil {
		logger = func(context.Context, string, map[string]any) {}
	}

	service := &cartService{
		repo:    deps.Repository,
		catalog: deps.Catalog,
		now:     func() time.Time { return deps.Clock().UTC() },
		logger:  logger,
	}
	return service, nil
}

// GetCart loads the register's cart, creating an empty cart when none exists.
// Totals are recomputed on every read and never trusted from storage.
func (s *cartService) GetCart(ctx context.Context, registerID string) (Cart, error) {
	if s == nil || s.repo == nil {
		return Cart{}, ErrCartUnavailable
	}

	id := strings.TrimSpace(registerID)
	if id == "" {
		return Cart{}, ErrCartInvalidInput
	}

	cart, err := s.repo.Get(ctx, id)
	if err != nil {
		if isRepoNotFound(err) {
			cart = s.newCart(id)
		} else {
			return Cart{}, s.translateRepoError(err)
		}
	}

	return s.withTotals(s.normaliseCart(cart, id)), nil
}

// AddItem appends the product to the cart, merging quantities when a line for
// the product already exists.
func (s *cartService) AddItem(ctx context.Context, cmd AddItemCommand) (Cart, error) {
	if s == nil || s.repo == nil {
		return Cart{}, ErrCartUnavailable
	}

	registerID := strings.TrimSpace(cmd.RegisterID)
	if registerID == "" {
		return Cart{}, ErrCartInvalidInput
	}
	productID := strings.TrimSpace(cmd.ProductID)
	if productID == "" {
		return Cart{}, fmt.Errorf("%w: product id is required", ErrCartInvalidInput)
	}
	if cmd.Quantity <= 0 {
		return Cart{}, fmt.Errorf("%w: quantity must be greater than zero", ErrCartInvalidInput)
	}

	product, err := s.catalog.FindByID(ctx, productID)
	if err != nil {
		if isRepoNotFound(err) {
			return Cart{}, fmt.Errorf("%w: unknown product %s", ErrCatalogNotFound, productID)
		}
		return Cart{}, s.translateRepoError(err)
	}

	cart, err := s.loadOrCreate(ctx, registerID)
	if err != nil {
		return Cart{}, err
	}

	items := domain.CloneItems(cart.Items)
	idx := indexOfLine(items, productID)
	if idx >= 0 {
		quantity := items[idx].Quantity + cmd.Quantity
		if quantity > maxLineQuantity {
			return Cart{}, fmt.Errorf("%w: quantity exceeds the per-line limit", ErrCartInvalidInput)
		}
		items[idx].Quantity = quantity
		items[idx].Subtotal = items[idx].UnitPrice * int64(quantity)
	} else {
		items = append(items, domain.LineItem{
			ProductID: product.ID,
			Name:      product.Name,
			Image:     product.Image,
			Quantity:  cmd.Quantity,
			UnitPrice: product.Price,
			Subtotal:  product.Price * int64(cmd.Quantity),
		})
	}

	return s.persist(ctx, cart, items, cart.Discount)
}

// UpdateQuantity sets the absolute quantity of a line. A quantity of zero or
// less removes the line. Updating a product that is not in the cart is a
// silent no-op.
func (s *cartService) UpdateQuantity(ctx context.Context, cmd UpdateQuantityCommand) (Cart, error) {
	if s == nil || s.repo == nil {
		return Cart{}, ErrCartUnavailable
	}

	registerID := strings.TrimSpace(cmd.RegisterID)
	if registerID == "" {
		return Cart{}, ErrCartInvalidInput
	}
	productID := strings.TrimSpace(cmd.ProductID)
	if productID == "" {
		return Cart{}, fmt.Errorf("%w: product id is required", ErrCartInvalidInput)
	}
	if cmd.Quantity > maxLineQuantity {
		return Cart{}, fmt.Errorf("%w: quantity exceeds the per-line limit", ErrCartInvalidInput)
	}

	cart, err := s.loadOrCreate(ctx, registerID)
	if err != nil {
		return Cart{}, err
	}

	items := domain.CloneItems(cart.Items)
	idx := indexOfLine(items, productID)
	if idx < 0 {
		return s.withTotals(cart), nil
	}

	if cmd.Quantity <= 0 {
		items = append(items[:idx], items[idx+1:]...)
	} else {
		items[idx].Quantity = cmd.Quantity
		items[idx].Subtotal = items[idx].UnitPrice * int64(cmd.Quantity)
	}

	return s.persist(ctx, cart, items, cart.Discount)
}

// RemoveItem drops the product's line from the cart. Removing a product that
// is not in the cart is a silent no-op.
func (s *cartService) RemoveItem(ctx context.Context, cmd RemoveItemCommand) (Cart, error) {
	if s == nil || s.repo == nil {
		return Cart{}, ErrCartUnavailable
	}

	registerID := strings.TrimSpace(cmd.RegisterID)
	if registerID == "" {
		return Cart{}, ErrCartInvalidInput
	}
	productID := strings.TrimSpace(cmd.ProductID)
	if productID == "" {
		return Cart{}, fmt.Errorf("%w: product id is required", ErrCartInvalidInput)
	}

	cart, err := s.loadOrCreate(ctx, registerID)
	if err != nil {
		return Cart{}, err
	}

	items := domain.CloneItems(cart.Items)
	idx := indexOfLine(items, productID)
	if idx < 0 {
		return s.withTotals(cart), nil
	}

	items = append(items[:idx], items[idx+1:]...)
	return s.persist(ctx, cart, items, cart.Discount)
}

// SetDiscount applies a cart-level discount after validating its shape.
func (s *cartService) SetDiscount(ctx context.Context, cmd SetDiscountCommand) (Cart, error) {
	if s == nil || s.repo == nil {
		return Cart{}, ErrCartUnavailable
	}

	registerID := strings.TrimSpace(cmd.RegisterID)
	if registerID == "" {
		return Cart{}, ErrCartInvalidInput
	}
	if err := validateDiscount(cmd.Discount); err != nil {
		return Cart{}, err
	}

	cart, err := s.loadOrCreate(ctx, registerID)
	if err != nil {
		return Cart{}, err
	}

	return s.persist(ctx, cart, domain.CloneItems(cart.Items), cmd.Discount)
}

// ClearDiscount resets the cart discount to none.
func (s *cartService) ClearDiscount(ctx context.Context, registerID string) (Cart, error) {
	if s == nil || s.repo == nil {
		return Cart{}, ErrCartUnavailable
	}

	id := strings.TrimSpace(registerID)
	if id == "" {
		return Cart{}, ErrCartInvalidInput
	}

	cart, err := s.loadOrCreate(ctx, id)
	if err != nil {
		return Cart{}, err
	}

	return s.persist(ctx, cart, domain.CloneItems(cart.Items), domain.NoDiscount())
}

// ClearCart removes the register's cart entirely. Clearing an absent cart is
// a silent no-op.
func (s *cartService) ClearCart(ctx context.Context, registerID string) error {
	if s == nil || s.repo == nil {
		return ErrCartUnavailable
	}

	id := strings.TrimSpace(registerID)
	if id == "" {
		return ErrCartInvalidInput
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return s.translateRepoError(err)
	}
	return nil
}

// ReplaceCart overwrites the register's cart wholesale. It is used when a
// budget is transferred onto a register.
func (s *cartService) ReplaceCart(ctx context.Context, cart Cart) (Cart, error) {
	if s == nil || s.repo == nil {
		return Cart{}, ErrCartUnavailable
	}

	registerID := strings.TrimSpace(cart.RegisterID)
	if registerID == "" {
		return Cart{}, ErrCartInvalidInput
	}
	if err := validateDiscount(cart.Discount); err != nil {
		return Cart{}, err
	}

	normalised := s.normaliseCart(cart, registerID)
	normalised.Items = recalculateSubtotals(domain.CloneItems(normalised.Items))
	normalised.UpdatedAt = s.now()

	saved, err := s.repo.Upsert(ctx, normalised)
	if err != nil {
		return Cart{}, s.translateRepoError(err)
	}
	return s.withTotals(s.normaliseCart(saved, registerID)), nil
}

func (s *cartService) loadOrCreate(ctx context.Context, registerID string) (Cart, error) {
	cart, err := s.repo.Get(ctx, registerID)
	if err != nil {
		if isRepoNotFound(err) {
			return s.newCart(registerID), nil
		}
		return Cart{}, s.translateRepoError(err)
	}
	return s.normaliseCart(cart, registerID), nil
}

func (s *cartService) persist(ctx context.Context, cart Cart, items []domain.LineItem, discount domain.Discount) (Cart, error) {
	cart.Items = items
	cart.Discount = discount
	cart.UpdatedAt = s.now()
	if cart.CreatedAt.IsZero() {
		cart.CreatedAt = cart.UpdatedAt
	}

	saved, err := s.repo.Upsert(ctx, cart)
	if err != nil {
		return Cart{}, s.translateRepoError(err)
	}
	return s.withTotals(s.normaliseCart(saved, cart.RegisterID)), nil
}

func (s *cartService) newCart(registerID string) domain.Cart {
	now := s.now()
	return domain.Cart{
		RegisterID: registerID,
		Items:      []domain.LineItem{},
		Discount:   domain.NoDiscount(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func (s *cartService) normaliseCart(cart domain.Cart, registerID string) domain.Cart {
	if strings.TrimSpace(cart.RegisterID) == "" {
		cart.RegisterID = registerID
	}
	if cart.Items == nil {
		cart.Items = []domain.LineItem{}
	}
	switch cart.Discount.Kind {
	case domain.DiscountPercentage, domain.DiscountFixed:
	default:
		cart.Discount = domain.NoDiscount()
	}
	if cart.CreatedAt.IsZero() {
		cart.CreatedAt = s.now()
	}
	if cart.UpdatedAt.IsZero() {
		cart.UpdatedAt = s.now()
	}
	return cart
}

func (s *cartService) withTotals(cart domain.Cart) domain.Cart {
	totals := domain.CalculateTotals(cart.Items, cart.Discount)
	cart.Totals = &totals
	return cart
}

func (s *cartService) translateRepoError(err error) error {
	if err == nil {
		return nil
	}
	var repoErr repositories.RepositoryError
	if errors.As(err, &repoErr) {
		if repoErr.IsNotFound() {
			return ErrCartNotFound
		}
		return ErrCartUnavailable
	}
	return ErrCartUnavailable
}

func validateDiscount(discount domain.Discount) error {
	switch discount.Kind {
	case domain.DiscountNone:
		if discount.Value != 0 {
			return fmt.Errorf("%w: discount value must be zero when no discount is set", ErrCartInvalidInput)
		}
	case domain.DiscountPercentage:
		if discount.Value < 0 || discount.Value > 100 {
			return fmt.Errorf("%w: percentage discount must be between 0 and 100", ErrCartInvalidInput)
		}
	case domain.DiscountFixed:
		if discount.Value < 0 {
			return fmt.Errorf("%w: fixed discount must be non-negative", ErrCartInvalidInput)
		}
	default:
		return fmt.Errorf("%w: unknown discount kind %q", ErrCartInvalidInput, discount.Kind)
	}
	return nil
}

func recalculateSubtotals(items []domain.LineItem) []domain.LineItem {
	for i := range items {
		items[i].Subtotal = items[i].UnitPrice * int64(items[i].Quantity)
	}
	return items
}

func indexOfLine(items []domain.LineItem, productID string) int {
	for i, item := range items {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}
