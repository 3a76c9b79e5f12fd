// Package services hosts the application's business logic. Services accept
// validated commands, coordinate repositories, and translate repository
// failures into the package's sentinel errors.
package services

import (
	"context"
	"errors"
	"time"

	domain "github.com/lojaviva/pos-api/internal/domain"
	"github.com/lojaviva/pos-api/internal/repositories"
)

// Domain aliases keep service signatures terse.
type (
	Cart     = domain.Cart
	Budget   = domain.Budget
	Customer = domain.Customer
	Product  = domain.Product
	Sale     = domain.Sale
	Discount = domain.Discount
	Totals   = domain.Totals
)

// AddItemCommand adds a product to a register's cart.
type AddItemCommand struct {
	RegisterID string
	ProductID  string
	Quantity   int
}

// UpdateQuantityCommand sets the absolute quantity of a cart line.
type UpdateQuantityCommand struct {
	RegisterID string
	ProductID  string
	Quantity   int
}

// RemoveItemCommand removes a cart line by product id.
type RemoveItemCommand struct {
	RegisterID string
	ProductID  string
}

// SetDiscountCommand applies a percentage or fixed discount to the cart.
type SetDiscountCommand struct {
	RegisterID string
	Discount   domain.Discount
}

// SaveBudgetCommand snapshots the register's cart and customer as a budget.
type SaveBudgetCommand struct {
	RegisterID string
}

// LoadBudgetCommand transfers a stored budget into the register's cart.
type LoadBudgetCommand struct {
	RegisterID string
	BudgetID   string
}

// FinalizeSaleCommand closes out the register's cart as a completed sale.
type FinalizeSaleCommand struct {
	RegisterID    string
	PaymentMethod domain.PaymentMethod
	Notes         string
}

// CreateCustomerCommand registers a new customer in the directory.
type CreateCustomerCommand struct {
	Name    string              `validate:"required,min=3,max=100"`
	Email   string              `validate:"omitempty,email"`
	Phone   string              `validate:"required,min=10,max=20"`
	TaxID   string              `validate:"omitempty,min=11,max=18"`
	Type    domain.CustomerType `validate:"required,oneof=individual business"`
	Address *domain.Address
}

// CartService manages per-register cart state.
type CartService interface {
	GetCart(ctx context.Context, registerID string) (Cart, error)
	AddItem(ctx context.Context, cmd AddItemCommand) (Cart, error)
	UpdateQuantity(ctx context.Context, cmd UpdateQuantityCommand) (Cart, error)
	RemoveItem(ctx context.Context, cmd RemoveItemCommand) (Cart, error)
	SetDiscount(ctx context.Context, cmd SetDiscountCommand) (Cart, error)
	ClearDiscount(ctx context.Context, registerID string) (Cart, error)
	ClearCart(ctx context.Context, registerID string) error
	ReplaceCart(ctx context.Context, cart Cart) (Cart, error)
}

// CustomerService exposes the customer directory and the per-register
// customer selection.
type CustomerService interface {
	ListCustomers(ctx context.Context) ([]Customer, error)
	SearchCustomers(ctx context.Context, query string) ([]Customer, error)
	GetCustomer(ctx context.Context, customerID string) (Customer, error)
	ListCustomersByType(ctx context.Context, customerType domain.CustomerType) ([]Customer, error)
	CreateCustomer(ctx context.Context, cmd CreateCustomerCommand) (Customer, error)

	SelectCustomer(ctx context.Context, registerID, customerID string) (Customer, error)
	RestoreSelection(ctx context.Context, registerID string, customer Customer) error
	SelectedCustomer(ctx context.Context, registerID string) (*Customer, error)
	ClearSelection(ctx context.Context, registerID string) error
}

// CatalogService exposes the product directory.
type CatalogService interface {
	ListProducts(ctx context.Context) ([]Product, error)
	SearchProducts(ctx context.Context, query string) ([]Product, error)
	GetProduct(ctx context.Context, productID string) (Product, error)
	ListProductsByCategory(ctx context.Context, category domain.ProductCategory) ([]Product, error)
}

// BudgetService persists and restores cart snapshots as quotes.
type BudgetService interface {
	ListBudgets(ctx context.Context) ([]Budget, error)
	GetBudget(ctx context.Context, budgetID string) (Budget, error)
	SaveBudget(ctx context.Context, cmd SaveBudgetCommand) (Budget, error)
	LoadBudget(ctx context.Context, cmd LoadBudgetCommand) (Cart, error)
	RemoveBudget(ctx context.Context, budgetID string) error
	ClearBudgets(ctx context.Context) error
}

// SaleService finalizes sales from register state.
type SaleService interface {
	FinalizeSale(ctx context.Context, cmd FinalizeSaleCommand) (Sale, error)
	ListSales(ctx context.Context) ([]Sale, error)
}

// CounterService issues monotonically increasing sequence values.
type CounterService interface {
	Next(ctx context.Context, name string) (int64, error)
	NextOrderNumber(ctx context.Context, at time.Time) (string, error)
}

func isRepoNotFound(err error) bool {
	var repoErr repositories.RepositoryError
	if errors.As(err, &repoErr) {
		return repoErr.IsNotFound()
	}
	return false
}
