package services

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "github.com/lojaviva/pos-api/internal/domain"
)

var testClock = func() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func newTestCartService(t *testing.T, repo *stubCartRepo, products *stubProductRepo) CartService {
	t.Helper()
	svc, err := NewCartService(CartServiceDeps{
		Repository: repo,
		Catalog:    products,
		Clock:      testClock,
	})
	if err != nil {
		t.Fatalf("new cart service: %v", err)
	}
	return svc
}

func testProducts() *stubProductRepo {
	return newStubProductRepo(
		domain.Product{ID: "prod-1", Name: "Camiseta", Price: 4990, Category: domain.CategoryClothing},
		domain.Product{ID: "prod-2", Name: "Tenis", Price: 29990, Category: domain.CategoryShoes},
	)
}

func TestCartServiceGetCartCreatesEmptyCart(t *testing.T) {
	svc := newTestCartService(t, newStubCartRepo(), testProducts())

	cart, err := svc.GetCart(context.Background(), "reg-1")
	if err != nil {
		t.Fatalf("get cart: %v", err)
	}
	if len(cart.Items) != 0 {
		t.Fatalf("expected empty cart, got %d items", len(cart.Items))
	}
	if cart.Totals == nil {
		t.Fatal("expected totals attached")
	}
	if cart.Totals.HasItems {
		t.Fatal("expected HasItems false on empty cart")
	}
	if cart.Discount.Kind != domain.DiscountNone {
		t.Fatalf("expected no discount, got %s", cart.Discount.Kind)
	}
}

func TestCartServiceAddItemCreatesLine(t *testing.T) {
	svc := newTestCartService(t, newStubCartRepo(), testProducts())

	cart, err := svc.AddItem(context.Background(), AddItemCommand{RegisterID: "reg-1", ProductID: "prod-1", Quantity: 2})
	if err != nil {
		t.Fatalf("add item: %v", err)
	}
	if len(cart.Items) != 1 {
		t.Fatalf("expected 1 line, got %d", len(cart.Items))
	}
	line := cart.Items[0]
	if line.Quantity != 2 || line.UnitPrice != 4990 || line.Subtotal != 9980 {
		t.Fatalf("unexpected line: %+v", line)
	}
	if cart.Totals == nil || cart.Totals.Total != 9980 {
		t.Fatalf("unexpected totals: %+v", cart.Totals)
	}
}

func TestCartServiceAddItemMergesQuantities(t *testing.T) {
	svc := newTestCartService(t, newStubCartRepo(), testProducts())
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, AddItemCommand{RegisterID: "reg-1", ProductID: "prod-1", Quantity: 1}); err != nil {
		t.Fatalf("first add: %v", err)
	}
	cart, err := svc.AddItem(ctx, AddItemCommand{RegisterID: "reg-1", ProductID: "prod-1", Quantity: 3})
	if err != nil {
		t.Fatalf("second add: %v", err)
	}
	if len(cart.Items) != 1 {
		t.Fatalf("expected merged line, got %d lines", len(cart.Items))
	}
	if cart.Items[0].Quantity != 4 {
		t.Fatalf("expected quantity 4, got %d", cart.Items[0].Quantity)
	}
	if cart.Items[0].Subtotal != 4*4990 {
		t.Fatalf("expected subtotal %d, got %d", 4*4990, cart.Items[0].Subtotal)
	}
}

func TestCartServiceAddItemRejectsUnknownProduct(t *testing.T) {
	svc := newTestCartService(t, newStubCartRepo(), testProducts())

	_, err := svc.AddItem(context.Background(), AddItemCommand{RegisterID: "reg-1", ProductID: "nope", Quantity: 1})
	if !errors.Is(err, ErrCatalogNotFound) {
		t.Fatalf("expected catalog not found, got %v", err)
	}
}

func TestCartServiceAddItemRejectsNonPositiveQuantity(t *testing.T) {
	svc := newTestCartService(t, newStubCartRepo(), testProducts())

	_, err := svc.AddItem(context.Background(), AddItemCommand{RegisterID: "reg-1", ProductID: "prod-1", Quantity: 0})
	if !errors.Is(err, ErrCartInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestCartServiceUpdateQuantityRemovesLineAtZero(t *testing.T) {
	svc := newTestCartService(t, newStubCartRepo(), testProducts())
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, AddItemCommand{RegisterID: "reg-1", ProductID: "prod-1", Quantity: 2}); err != nil {
		t.Fatalf("add: %v", err)
	}
	cart, err := svc.UpdateQuantity(ctx, UpdateQuantityCommand{RegisterID: "reg-1", ProductID: "prod-1", Quantity: 0})
	if err != nil {
		t.Fatalf("update quantity: %v", err)
	}
	if len(cart.Items) != 0 {
		t.Fatalf("expected line removed, got %d lines", len(cart.Items))
	}
}

func TestCartServiceUpdateQuantityMissingLineIsNoop(t *testing.T) {
	svc := newTestCartService(t, newStubCartRepo(), testProducts())
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, AddItemCommand{RegisterID: "reg-1", ProductID: "prod-1", Quantity: 1}); err != nil {
		t.Fatalf("add: %v", err)
	}
	cart, err := svc.UpdateQuantity(ctx, UpdateQuantityCommand{RegisterID: "reg-1", ProductID: "prod-2", Quantity: 5})
	if err != nil {
		t.Fatalf("update quantity: %v", err)
	}
	if len(cart.Items) != 1 || cart.Items[0].ProductID != "prod-1" {
		t.Fatalf("expected cart untouched, got %+v", cart.Items)
	}
}

func TestCartServiceRemoveItemMissingLineIsNoop(t *testing.T) {
	svc := newTestCartService(t, newStubCartRepo(), testProducts())

	cart, err := svc.RemoveItem(context.Background(), RemoveItemCommand{RegisterID: "reg-1", ProductID: "prod-1"})
	if err != nil {
		t.Fatalf("remove item: %v", err)
	}
	if len(cart.Items) != 0 {
		t.Fatalf("expected empty cart, got %d items", len(cart.Items))
	}
}

func TestCartServiceSetDiscountValidatesShape(t *testing.T) {
	svc := newTestCartService(t, newStubCartRepo(), testProducts())
	ctx := context.Background()

	cases := []domain.Discount{
		{Kind: domain.DiscountPercentage, Value: 150},
		{Kind: domain.DiscountPercentage, Value: -1},
		{Kind: domain.DiscountFixed, Value: -100},
		{Kind: "coupon", Value: 10},
	}
	for _, discount := range cases {
		if _, err := svc.SetDiscount(ctx, SetDiscountCommand{RegisterID: "reg-1", Discount: discount}); !errors.Is(err, ErrCartInvalidInput) {
			t.Fatalf("discount %+v: expected invalid input, got %v", discount, err)
		}
	}
}

func TestCartServiceDiscountAffectsTotals(t *testing.T) {
	svc := newTestCartService(t, newStubCartRepo(), testProducts())
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, AddItemCommand{RegisterID: "reg-1", ProductID: "prod-2", Quantity: 1}); err != nil {
		t.Fatalf("add: %v", err)
	}
	cart, err := svc.SetDiscount(ctx, SetDiscountCommand{
		RegisterID: "reg-1",
		Discount:   domain.Discount{Kind: domain.DiscountPercentage, Value: 10},
	})
	if err != nil {
		t.Fatalf("set discount: %v", err)
	}
	if cart.Totals.DiscountAmount != 2999 {
		t.Fatalf("expected discount 2999, got %d", cart.Totals.DiscountAmount)
	}
	if cart.Totals.Total != 29990-2999 {
		t.Fatalf("expected total %d, got %d", 29990-2999, cart.Totals.Total)
	}

	cleared, err := svc.ClearDiscount(ctx, "reg-1")
	if err != nil {
		t.Fatalf("clear discount: %v", err)
	}
	if cleared.Totals.Total != 29990 {
		t.Fatalf("expected total restored, got %d", cleared.Totals.Total)
	}
}

func TestCartServiceClearCart(t *testing.T) {
	repo := newStubCartRepo()
	svc := newTestCartService(t, repo, testProducts())
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, AddItemCommand{RegisterID: "reg-1", ProductID: "prod-1", Quantity: 1}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := svc.ClearCart(ctx, "reg-1"); err != nil {
		t.Fatalf("clear cart: %v", err)
	}

	cart, err := svc.GetCart(ctx, "reg-1")
	if err != nil {
		t.Fatalf("get cart: %v", err)
	}
	if len(cart.Items) != 0 {
		t.Fatalf("expected empty cart after clear, got %d items", len(cart.Items))
	}

	// Clearing again must stay silent.
	if err := svc.ClearCart(ctx, "reg-1"); err != nil {
		t.Fatalf("second clear: %v", err)
	}
}
