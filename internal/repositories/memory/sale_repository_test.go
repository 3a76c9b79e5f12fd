package memory

import (
	"context"
	"testing"
	"time"

	domain "github.com/lojaviva/pos-api/internal/domain"
)

func sampleSale(id, orderNumber string) domain.Sale {
	return domain.Sale{
		ID:          id,
		OrderNumber: orderNumber,
		Date:        time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Customer:    domain.Customer{ID: "c-1", Name: "Maria Oliveira"},
		Items: []domain.LineItem{
			{ProductID: "prod-1", Name: "Camiseta Basica", Quantity: 1, UnitPrice: 4990, Subtotal: 4990},
		},
		Discount:      domain.NoDiscount(),
		Subtotal:      4990,
		Total:         4990,
		PaymentMethod: domain.PaymentCash,
		Status:        domain.SaleCompleted,
	}
}

func TestSaleRepositoryInsertIsIdempotent(t *testing.T) {
	repo := NewSaleRepository()
	ctx := context.Background()

	sale := sampleSale("s-1", "PDV-2025-0001")
	if err := repo.Insert(ctx, sale); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := repo.Insert(ctx, sale); err != nil {
		t.Fatalf("expected duplicate insert to be absorbed, got %v", err)
	}

	sales, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(sales) != 1 {
		t.Fatalf("expected one recorded sale, got %d", len(sales))
	}
}

func TestSaleRepositoryInsertRequiresID(t *testing.T) {
	repo := NewSaleRepository()

	if err := repo.Insert(context.Background(), sampleSale("", "PDV-2025-0001")); err == nil {
		t.Fatal("expected error for missing sale id")
	}
}

func TestSaleRepositoryListPreservesInsertionOrder(t *testing.T) {
	repo := NewSaleRepository()
	ctx := context.Background()

	if err := repo.Insert(ctx, sampleSale("s-1", "PDV-2025-0001")); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := repo.Insert(ctx, sampleSale("s-2", "PDV-2025-0002")); err != nil {
		t.Fatalf("insert: %v", err)
	}

	sales, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(sales) != 2 || sales[0].ID != "s-1" || sales[1].ID != "s-2" {
		t.Fatalf("unexpected order: %+v", sales)
	}
}
