package handlers

import (
	"strings"

	domain "github.com/lojaviva/pos-api/internal/domain"
	"github.com/lojaviva/pos-api/internal/services"
)

type lineItemPayload struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Image     string `json:"image,omitempty"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unitPrice"`
	Subtotal  int64  `json:"subtotal"`
}

// discountPayload mirrors discountRequest: a whole percent for kind
// "percentage", minor currency units for kind "fixed".
type discountPayload struct {
	Kind  string `json:"kind"`
	Value int64  `json:"value"`
}

type totalsPayload struct {
	Subtotal       int64 `json:"subtotal"`
	DiscountAmount int64 `json:"discountAmount"`
	Total          int64 `json:"total"`
	ItemCount      int   `json:"itemCount"`
	HasItems       bool  `json:"hasItems"`
}

type cartPayload struct {
	RegisterID string            `json:"registerId"`
	Items      []lineItemPayload `json:"items"`
	Discount   discountPayload   `json:"discount"`
	Totals     *totalsPayload    `json:"totals,omitempty"`
	UpdatedAt  string            `json:"updatedAt,omitempty"`
}

type addressPayload struct {
	Street       string `json:"street"`
	Number       string `json:"number"`
	Complement   string `json:"complement,omitempty"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zipCode"`
}

type customerPayload struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Avatar      string          `json:"avatar,omitempty"`
	Email       string          `json:"email,omitempty"`
	Phone       string          `json:"phone"`
	TaxID       string          `json:"taxId,omitempty"`
	Type        string          `json:"type"`
	Address     *addressPayload `json:"address,omitempty"`
	CreatedAt   string          `json:"createdAt,omitempty"`
	TotalOrders int             `json:"totalOrders"`
	TotalSpent  int64           `json:"totalSpent"`
}

type productPayload struct {
	ID          string `json:"id"`
	Code        string `json:"code,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category"`
	Price       int64  `json:"price"`
	Image       string `json:"image,omitempty"`
	Stock       int    `json:"stock"`
}

type budgetPayload struct {
	ID       string            `json:"id"`
	Date     string            `json:"date"`
	Customer *customerPayload  `json:"customer,omitempty"`
	Items    []lineItemPayload `json:"items"`
	Discount discountPayload   `json:"discount"`
	Subtotal int64             `json:"subtotal"`
	Total    int64             `json:"total"`
}

type salePayload struct {
	ID            string            `json:"id"`
	OrderNumber   string            `json:"orderNumber"`
	Date          string            `json:"date"`
	Customer      customerPayload   `json:"customer"`
	Items         []lineItemPayload `json:"items"`
	Discount      discountPayload   `json:"discount"`
	Subtotal      int64             `json:"subtotal"`
	Total         int64             `json:"total"`
	PaymentMethod string            `json:"paymentMethod"`
	Status        string            `json:"status"`
	Notes         string            `json:"notes,omitempty"`
}

func buildLineItems(items []domain.LineItem) []lineItemPayload {
	payload := make([]lineItemPayload, 0, len(items))
	for _, item := range items {
		payload = append(payload, lineItemPayload{
			ProductID: item.ProductID,
			Name:      item.Name,
			Image:     item.Image,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  item.Subtotal,
		})
	}
	return payload
}

func buildDiscountPayload(d domain.Discount) discountPayload {
	return discountPayload{Kind: string(d.Kind), Value: d.Value}
}

func buildCartPayload(cart services.Cart) cartPayload {
	payload := cartPayload{
		RegisterID: strings.TrimSpace(cart.RegisterID),
		Items:      buildLineItems(cart.Items),
		Discount:   buildDiscountPayload(cart.Discount),
	}
	if cart.Totals != nil {
		payload.Totals = &totalsPayload{
			Subtotal:       cart.Totals.Subtotal,
			DiscountAmount: cart.Totals.DiscountAmount,
			Total:          cart.Totals.Total,
			ItemCount:      cart.Totals.ItemCount,
			HasItems:       cart.Totals.HasItems,
		}
	}
	if !cart.UpdatedAt.IsZero() {
		payload.UpdatedAt = formatTime(cart.UpdatedAt)
	}
	return payload
}

func buildCustomerPayload(c domain.Customer) customerPayload {
	payload := customerPayload{
		ID:          c.ID,
		Name:        c.Name,
		Avatar:      c.Avatar,
		Email:       c.Email,
		Phone:       c.Phone,
		TaxID:       c.TaxID,
		Type:        string(c.Type),
		TotalOrders: c.TotalOrders,
		TotalSpent:  c.TotalSpent,
	}
	if c.Address != nil {
		payload.Address = &addressPayload{
			Street:       c.Address.Street,
			Number:       c.Address.Number,
			Complement:   c.Address.Complement,
			Neighborhood: c.Address.Neighborhood,
			City:         c.Address.City,
			State:        c.Address.State,
			ZipCode:      c.Address.ZipCode,
		}
	}
	if !c.CreatedAt.IsZero() {
		payload.CreatedAt = formatTime(c.CreatedAt)
	}
	return payload
}

func buildCustomerList(customers []domain.Customer) []customerPayload {
	payload := make([]customerPayload, 0, len(customers))
	for _, c := range customers {
		payload = append(payload, buildCustomerPayload(c))
	}
	return payload
}

func buildProductPayload(p domain.Product) productPayload {
	return productPayload{
		ID:          p.ID,
		Code:        p.Code,
		Name:        p.Name,
		Description: p.Description,
		Category:    string(p.Category),
		Price:       p.Price,
		Image:       p.Image,
		Stock:       p.Stock,
	}
}

func buildProductList(products []domain.Product) []productPayload {
	payload := make([]productPayload, 0, len(products))
	for _, p := range products {
		payload = append(payload, buildProductPayload(p))
	}
	return payload
}

func buildBudgetPayload(b domain.Budget) budgetPayload {
	payload := budgetPayload{
		ID:       b.ID,
		Date:     formatTime(b.Date),
		Items:    buildLineItems(b.Items),
		Discount: buildDiscountPayload(b.Discount),
		Subtotal: b.Subtotal,
		Total:    b.Total,
	}
	if b.Customer != nil {
		customer := buildCustomerPayload(*b.Customer)
		payload.Customer = &customer
	}
	return payload
}

func buildSalePayload(s domain.Sale) salePayload {
	return salePayload{
		ID:            s.ID,
		OrderNumber:   s.OrderNumber,
		Date:          formatTime(s.Date),
		Customer:      buildCustomerPayload(s.Customer),
		Items:         buildLineItems(s.Items),
		Discount:      buildDiscountPayload(s.Discount),
		Subtotal:      s.Subtotal,
		Total:         s.Total,
		PaymentMethod: string(s.PaymentMethod),
		Status:        string(s.Status),
		Notes:         s.Notes,
	}
}
