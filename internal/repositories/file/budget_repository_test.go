package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	domain "github.com/lojaviva/pos-api/internal/domain"
)

func testBudget(id string) domain.Budget {
	return domain.Budget{
		ID:   id,
		Date: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Customer: &domain.Customer{
			ID:    "c-1",
			Name:  "Maria Oliveira",
			Phone: "+55 11 98888-1234",
			Type:  domain.CustomerIndividual,
			Address: &domain.Address{
				Street:       "Rua das Flores",
				Number:       "123",
				Neighborhood: "Centro",
				City:         "Sao Paulo",
				State:        "SP",
				ZipCode:      "01000-000",
			},
		},
		Items: []domain.LineItem{
			{ProductID: "prod-1", Name: "Camiseta Basica", Quantity: 2, UnitPrice: 4990, Subtotal: 9980},
		},
		Discount: domain.Discount{Kind: domain.DiscountPercentage, Value: 10},
		Subtotal: 9980,
		Total:    8982,
	}
}

func TestBudgetRepositoryRequiresDirectory(t *testing.T) {
	if _, err := NewBudgetRepository("  "); err == nil {
		t.Fatal("expected error for empty data directory")
	}
}

func TestBudgetRepositoryRoundTrip(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewBudgetRepository(dir)
	if err != nil {
		t.Fatalf("new repository: %v", err)
	}
	ctx := context.Background()

	if _, err := repo.Upsert(ctx, testBudget("b-1")); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	// A fresh repository over the same directory must see the write.
	reopened, err := NewBudgetRepository(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	budgets, err := reopened.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(budgets) != 1 {
		t.Fatalf("expected one budget, got %d", len(budgets))
	}
	got := budgets[0]
	if got.ID != "b-1" || got.Subtotal != 9980 || got.Total != 8982 {
		t.Fatalf("unexpected budget: %+v", got)
	}
	if got.Discount.Kind != domain.DiscountPercentage || got.Discount.Value != 10 {
		t.Fatalf("unexpected discount: %+v", got.Discount)
	}
	if got.Customer == nil || got.Customer.Address == nil || got.Customer.Address.City != "Sao Paulo" {
		t.Fatalf("expected customer snapshot with address, got %+v", got.Customer)
	}
	if len(got.Items) != 1 || got.Items[0].Quantity != 2 {
		t.Fatalf("unexpected items: %+v", got.Items)
	}
}

func TestBudgetRepositoryToleratesCorruptedFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, budgetsFileName), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write corrupted file: %v", err)
	}

	repo, err := NewBudgetRepository(dir)
	if err != nil {
		t.Fatalf("new repository: %v", err)
	}
	budgets, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(budgets) != 0 {
		t.Fatalf("expected empty collection for corrupted file, got %d", len(budgets))
	}

	// Writes recover the file.
	if _, err := repo.Upsert(context.Background(), testBudget("b-1")); err != nil {
		t.Fatalf("upsert after corruption: %v", err)
	}
	budgets, err = repo.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(budgets) != 1 {
		t.Fatalf("expected one budget after rewrite, got %d", len(budgets))
	}
}

func TestBudgetRepositoryUnknownDiscountKindFallsBack(t *testing.T) {
	dir := t.TempDir()
	doc := `[{"id":"b-1","date":"2025-06-01T12:00:00Z","items":[],"discount":{"kind":"coupon","value":5},"subtotal":0,"total":0}]`
	if err := os.WriteFile(filepath.Join(dir, budgetsFileName), []byte(doc), 0o644); err != nil {
		t.Fatalf("write document: %v", err)
	}

	repo, err := NewBudgetRepository(dir)
	if err != nil {
		t.Fatalf("new repository: %v", err)
	}
	budgets, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(budgets) != 1 {
		t.Fatalf("expected one budget, got %d", len(budgets))
	}
	if budgets[0].Discount.Kind != domain.DiscountNone {
		t.Fatalf("expected unknown kind normalised to none, got %s", budgets[0].Discount.Kind)
	}
}

func TestBudgetRepositoryRemoveAndClear(t *testing.T) {
	repo, err := NewBudgetRepository(t.TempDir())
	if err != nil {
		t.Fatalf("new repository: %v", err)
	}
	ctx := context.Background()

	if _, err := repo.Upsert(ctx, testBudget("b-1")); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if _, err := repo.Upsert(ctx, testBudget("b-2")); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	if err := repo.Remove(ctx, "b-1"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := repo.Remove(ctx, "ghost"); err != nil {
		t.Fatalf("expected absent remove to be a no-op, got %v", err)
	}

	budgets, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(budgets) != 1 || budgets[0].ID != "b-2" {
		t.Fatalf("unexpected budgets after remove: %+v", budgets)
	}

	if err := repo.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	budgets, err = repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(budgets) != 0 {
		t.Fatalf("expected empty collection after clear, got %d", len(budgets))
	}
}
