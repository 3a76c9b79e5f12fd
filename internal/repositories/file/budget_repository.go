package file

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"time"

	domain "github.com/lojaviva/pos-api/internal/domain"
)

const budgetsFileName = "budgets.json"

type budgetDocument struct {
	ID       string             `json:"id"`
	Date     time.Time          `json:"date"`
	Customer *customerDocument  `json:"customer,omitempty"`
	Items    []lineItemDocument `json:"items"`
	Discount discountDocument   `json:"discount"`
	Subtotal int64              `json:"subtotal"`
	Total    int64              `json:"total"`
}

type customerDocument struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Avatar      string           `json:"avatar,omitempty"`
	Email       string           `json:"email,omitempty"`
	Phone       string           `json:"phone"`
	TaxID       string           `json:"taxId,omitempty"`
	Type        string           `json:"type"`
	Address     *addressDocument `json:"address,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
	TotalOrders int              `json:"totalOrders,omitempty"`
	TotalSpent  int64            `json:"totalSpent,omitempty"`
}

type addressDocument struct {
	Street       string `json:"street"`
	Number       string `json:"number"`
	Complement   string `json:"complement,omitempty"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zipCode"`
}

type lineItemDocument struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Image     string `json:"image,omitempty"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unitPrice"`
	Subtotal  int64  `json:"subtotal"`
}

type discountDocument struct {
	Kind  string `json:"kind"`
	Value int64  `json:"value"`
}

// BudgetRepository persists budgets as a single JSON document on disk.
type BudgetRepository struct {
	mu   sync.Mutex
	path string
}

// NewBudgetRepository stores budgets under dir. The directory is created
// lazily on first write.
func NewBudgetRepository(dir string) (*BudgetRepository, error) {
	trimmed := strings.TrimSpace(dir)
	if trimmed == "" {
		return nil, errors.New("file budget repository: data directory is required")
	}
	return &BudgetRepository{path: filepath.Join(trimmed, budgetsFileName)}, nil
}

// List returns every stored budget. A missing or corrupted file yields an
// empty collection rather than an error.
func (r *BudgetRepository) List(ctx context.Context) ([]domain.Budget, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load()
}

// Upsert replaces the budget when the id exists, otherwise appends it.
func (r *BudgetRepository) Upsert(ctx context.Context, budget domain.Budget) (domain.Budget, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	budgets, err := r.load()
	if err != nil {
		return domain.Budget{}, err
	}

	replaced := false
	for i := range budgets {
		if budgets[i].ID == budget.ID {
			budgets[i] = budget
			replaced = true
			break
		}
	}
	if !replaced {
		budgets = append(budgets, budget)
	}

	if err := r.save(budgets); err != nil {
		return domain.Budget{}, err
	}
	return budget, nil
}

// Remove deletes the budget by id; absent ids are a no-op.
func (r *BudgetRepository) Remove(ctx context.Context, budgetID string) error {
	id := strings.TrimSpace(budgetID)

	r.mu.Lock()
	defer r.mu.Unlock()

	budgets, err := r.load()
	if err != nil {
		return err
	}

	filtered := budgets[:0]
	removed := false
	for _, b := range budgets {
		if b.ID == id {
			removed = true
			continue
		}
		filtered = append(filtered, b)
	}
	if !removed {
		return nil
	}
	return r.save(filtered)
}

// Clear drops every stored budget.
func (r *BudgetRepository) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.save(nil)
}

func (r *BudgetRepository) load() ([]domain.Budget, error) {
	var docs []budgetDocument
	ok, err := readDocument(r.path, &docs)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []domain.Budget{}, nil
	}

	budgets := make([]domain.Budget, 0, len(docs))
	for _, doc := range docs {
		budgets = append(budgets, budgetFromDocument(doc))
	}
	return budgets, nil
}

func (r *BudgetRepository) save(budgets []domain.Budget) error {
	docs := make([]budgetDocument, 0, len(budgets))
	for _, b := range budgets {
		docs = append(docs, budgetToDocument(b))
	}
	return writeDocument(r.path, docs)
}

func budgetToDocument(b domain.Budget) budgetDocument {
	doc := budgetDocument{
		ID:       b.ID,
		Date:     b.Date.UTC(),
		Items:    itemsToDocuments(b.Items),
		Discount: discountDocument{Kind: string(b.Discount.Kind), Value: b.Discount.Value},
		Subtotal: b.Subtotal,
		Total:    b.Total,
	}
	if b.Customer != nil {
		customer := customerToDocument(*b.Customer)
		doc.Customer = &customer
	}
	return doc
}

func budgetFromDocument(doc budgetDocument) domain.Budget {
	b := domain.Budget{
		ID:       doc.ID,
		Date:     doc.Date,
		Items:    itemsFromDocuments(doc.Items),
		Discount: discountFromDocument(doc.Discount),
		Subtotal: doc.Subtotal,
		Total:    doc.Total,
	}
	if doc.Customer != nil {
		customer := customerFromDocument(*doc.Customer)
		b.Customer = &customer
	}
	return b
}

func customerToDocument(c domain.Customer) customerDocument {
	doc := customerDocument{
		ID:          c.ID,
		Name:        c.Name,
		Avatar:      c.Avatar,
		Email:       c.Email,
		Phone:       c.Phone,
		TaxID:       c.TaxID,
		Type:        string(c.Type),
		CreatedAt:   c.CreatedAt.UTC(),
		TotalOrders: c.TotalOrders,
		TotalSpent:  c.TotalSpent,
	}
	if c.Address != nil {
		doc.Address = &addressDocument{
			Street:       c.Address.Street,
			Number:       c.Address.Number,
			Complement:   c.Address.Complement,
			Neighborhood: c.Address.Neighborhood,
			City:         c.Address.City,
			State:        c.Address.State,
			ZipCode:      c.Address.ZipCode,
		}
	}
	return doc
}

func customerFromDocument(doc customerDocument) domain.Customer {
	c := domain.Customer{
		ID:          doc.ID,
		Name:        doc.Name,
		Avatar:      doc.Avatar,
		Email:       doc.Email,
		Phone:       doc.Phone,
		TaxID:       doc.TaxID,
		Type:        domain.CustomerType(doc.Type),
		CreatedAt:   doc.CreatedAt,
		TotalOrders: doc.TotalOrders,
		TotalSpent:  doc.TotalSpent,
	}
	if doc.Address != nil {
		c.Address = &domain.Address{
			Street:       doc.Address.Street,
			Number:       doc.Address.Number,
			Complement:   doc.Address.Complement,
			Neighborhood: doc.Address.Neighborhood,
			City:         doc.Address.City,
			State:        doc.Address.State,
			ZipCode:      doc.Address.ZipCode,
		}
	}
	return c
}

func itemsToDocuments(items []domain.LineItem) []lineItemDocument {
	docs := make([]lineItemDocument, 0, len(items))
	for _, item := range items {
		docs = append(docs, lineItemDocument{
			ProductID: item.ProductID,
			Name:      item.Name,
			Image:     item.Image,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  item.Subtotal,
		})
	}
	return docs
}

func itemsFromDocuments(docs []lineItemDocument) []domain.LineItem {
	items := make([]domain.LineItem, 0, len(docs))
	for _, doc := range docs {
		items = append(items, domain.LineItem{
			ProductID: doc.ProductID,
			Name:      doc.Name,
			Image:     doc.Image,
			Quantity:  doc.Quantity,
			UnitPrice: doc.UnitPrice,
			Subtotal:  doc.Subtotal,
		})
	}
	return items
}

func discountFromDocument(doc discountDocument) domain.Discount {
	kind := domain.DiscountKind(doc.Kind)
	switch kind {
	case domain.DiscountPercentage, domain.DiscountFixed:
		return domain.Discount{Kind: kind, Value: doc.Value}
	}
	return domain.NoDiscount()
}
