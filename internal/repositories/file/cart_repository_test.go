package file

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	domain "github.com/lojaviva/pos-api/internal/domain"
)

func testCart(registerID string) domain.Cart {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return domain.Cart{
		RegisterID: registerID,
		Items: []domain.LineItem{
			{ProductID: "prod-1", Name: "Camiseta Basica", Quantity: 3, UnitPrice: 4990, Subtotal: 14970},
		},
		Discount:  domain.Discount{Kind: domain.DiscountFixed, Value: 1000},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestCartRepositoryRequiresDirectory(t *testing.T) {
	if _, err := NewCartRepository(""); err == nil {
		t.Fatal("expected error for empty data directory")
	}
}

func TestCartRepositoryRoundTrip(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewCartRepository(dir)
	if err != nil {
		t.Fatalf("new repository: %v", err)
	}
	ctx := context.Background()

	if _, err := repo.Upsert(ctx, testCart("reg-1")); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	reopened, err := NewCartRepository(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	cart, err := reopened.Get(ctx, "reg-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(cart.Items) != 1 || cart.Items[0].Quantity != 3 {
		t.Fatalf("unexpected items: %+v", cart.Items)
	}
	if cart.Discount.Kind != domain.DiscountFixed || cart.Discount.Value != 1000 {
		t.Fatalf("unexpected discount: %+v", cart.Discount)
	}
}

func TestCartRepositoryGetUnknownRegister(t *testing.T) {
	repo, err := NewCartRepository(t.TempDir())
	if err != nil {
		t.Fatalf("new repository: %v", err)
	}

	_, err = repo.Get(context.Background(), "reg-1")
	var repoErr *Error
	if !errors.As(err, &repoErr) || !repoErr.IsNotFound() {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestCartRepositoryUpsertStripsDerivedTotals(t *testing.T) {
	repo, err := NewCartRepository(t.TempDir())
	if err != nil {
		t.Fatalf("new repository: %v", err)
	}
	ctx := context.Background()

	cart := testCart("reg-1")
	cart.Totals = &domain.Totals{Subtotal: 14970, Total: 13970}

	stored, err := repo.Upsert(ctx, cart)
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if stored.Totals != nil {
		t.Fatalf("expected totals stripped, got %+v", stored.Totals)
	}

	loaded, err := repo.Get(ctx, "reg-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if loaded.Totals != nil {
		t.Fatalf("expected totals absent on disk, got %+v", loaded.Totals)
	}
}

func TestCartRepositoryToleratesCorruptedFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, cartsFileName), []byte("not json at all"), 0o644); err != nil {
		t.Fatalf("write corrupted file: %v", err)
	}

	repo, err := NewCartRepository(dir)
	if err != nil {
		t.Fatalf("new repository: %v", err)
	}

	// Reads treat the corrupted document as an empty collection.
	if _, err := repo.Get(context.Background(), "reg-1"); err == nil {
		t.Fatal("expected not-found for register absent from corrupted file")
	}

	// Writes replace the corrupted document.
	if _, err := repo.Upsert(context.Background(), testCart("reg-1")); err != nil {
		t.Fatalf("upsert after corruption: %v", err)
	}
	cart, err := repo.Get(context.Background(), "reg-1")
	if err != nil {
		t.Fatalf("get after rewrite: %v", err)
	}
	if cart.RegisterID != "reg-1" {
		t.Fatalf("unexpected cart: %+v", cart)
	}
}

func TestCartRepositoryDelete(t *testing.T) {
	repo, err := NewCartRepository(t.TempDir())
	if err != nil {
		t.Fatalf("new repository: %v", err)
	}
	ctx := context.Background()

	if _, err := repo.Upsert(ctx, testCart("reg-1")); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if _, err := repo.Upsert(ctx, testCart("reg-2")); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	if err := repo.Delete(ctx, "reg-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.Delete(ctx, "ghost"); err != nil {
		t.Fatalf("expected absent delete to be a no-op, got %v", err)
	}

	if _, err := repo.Get(ctx, "reg-1"); err == nil {
		t.Fatal("expected not-found after delete")
	}
	if _, err := repo.Get(ctx, "reg-2"); err != nil {
		t.Fatalf("expected reg-2 to survive, got %v", err)
	}
}
