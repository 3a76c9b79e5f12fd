package domain

import (
	"time"
)

// DiscountKind enumerates the supported cart-level discount rules.
type DiscountKind string

const (
	// DiscountNone indicates no discount is active on the cart.
	DiscountNone DiscountKind = "none"
	// DiscountPercentage applies a percentage of the cart subtotal.
	DiscountPercentage DiscountKind = "percentage"
	// DiscountFixed applies a fixed amount, clamped to the subtotal.
	DiscountFixed DiscountKind = "fixed"
)

// Discount describes the active discount rule applied to a whole cart.
// For DiscountPercentage the value is whole percent in [0,100]; for
// DiscountFixed it is an amount in minor currency units. The value is
// never negative.
type Discount struct {
	Kind  DiscountKind
	Value int64
}

// NoDiscount returns the zero discount descriptor.
func NoDiscount() Discount {
	return Discount{Kind: DiscountNone, Value: 0}
}

// LineItem is one product entry in a cart. Subtotal is derived and kept
// consistent with Quantity × UnitPrice at every mutation; it is stored
// redundantly for display and snapshotting only.
type LineItem struct {
	ProductID string
	Name      string
	Image     string
	Quantity  int
	UnitPrice int64
	Subtotal  int64
}

// Cart is the mutable per-register state: an ordered list of line items
// keyed uniquely by product id plus the active discount descriptor.
// Totals is a derived view attached on every read, never persisted.
type Cart struct {
	RegisterID string
	Items      []LineItem
	Discount   Discount
	Totals     *Totals
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CustomerType distinguishes individual and business customers.
type CustomerType string

const (
	// CustomerIndividual marks a natural-person customer.
	CustomerIndividual CustomerType = "individual"
	// CustomerBusiness marks a company customer.
	CustomerBusiness CustomerType = "business"
)

// Address stores an optional customer street address.
type Address struct {
	Street       string
	Number       string
	Complement   string
	Neighborhood string
	City         string
	State        string
	ZipCode      string
}

// Customer is a selectable party record. TotalOrders and TotalSpent are
// informational aggregates maintained elsewhere.
type Customer struct {
	ID          string
	Name        string
	Avatar      string
	Email       string
	Phone       string
	TaxID       string
	Type        CustomerType
	Address     *Address
	CreatedAt   time.Time
	TotalOrders int
	TotalSpent  int64
}

// ProductCategory enumerates the catalog categories.
type ProductCategory string

const (
	CategoryClothing    ProductCategory = "clothing"
	CategoryShoes       ProductCategory = "shoes"
	CategoryAccessories ProductCategory = "accessories"
	CategoryElectronics ProductCategory = "electronics"
)

// Product is a sellable catalog entry.
type Product struct {
	ID          string
	Code        string
	Name        string
	Description string
	Category    ProductCategory
	Price       int64
	Image       string
	Stock       int
}

// Budget is a saved, reloadable quote: a snapshot of cart, customer, and
// derived totals. Loading a budget transfers it back into a register and
// removes the stored record, so each id is loadable at most once.
type Budget struct {
	ID       string
	Date     time.Time
	Customer *Customer
	Items    []LineItem
	Discount Discount
	Subtotal int64
	Total    int64
}

// PaymentMethod enumerates accepted payment methods for a finalized sale.
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentCredit   PaymentMethod = "credit"
	PaymentDebit    PaymentMethod = "debit"
	PaymentPix      PaymentMethod = "pix"
	PaymentMultiple PaymentMethod = "multiple"
)

// ValidPaymentMethod reports whether the method is one of the accepted values.
func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PaymentCash, PaymentCredit, PaymentDebit, PaymentPix, PaymentMultiple:
		return true
	}
	return false
}

// SaleStatus describes the lifecycle state of a sale. Sales are created
// completed and never mutated afterwards; refunds and voids are not modeled.
type SaleStatus string

// SaleCompleted is the only status a finalized sale can carry.
const SaleCompleted SaleStatus = "completed"

// Sale is a finalized, immutable transaction record.
type Sale struct {
	ID            string
	OrderNumber   string
	Date          time.Time
	Customer      Customer
	Items         []LineItem
	Discount      Discount
	Subtotal      int64
	Total         int64
	PaymentMethod PaymentMethod
	Notes         string
	Status        SaleStatus
}

// CloneItems returns a deep copy of a line item slice so snapshots cannot
// alias live cart state.
func CloneItems(items []LineItem) []LineItem {
	if len(items) == 0 {
		return []LineItem{}
	}
	dup := make([]LineItem, len(items))
	copy(dup, items)
	return dup
}
