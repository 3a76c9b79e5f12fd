package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	domain "github.com/lojaviva/pos-api/internal/domain"
)

func newTestCustomerService(t *testing.T, repo *stubCustomerRepo) CustomerService {
	t.Helper()
	ids := &sequentialIDs{prefix: "cust"}
	svc, err := NewCustomerService(CustomerServiceDeps{
		Repository:  repo,
		Clock:       testClock,
		IDGenerator: ids.next,
	})
	if err != nil {
		t.Fatalf("new customer service: %v", err)
	}
	return svc
}

func testCustomers() *stubCustomerRepo {
	return newStubCustomerRepo(
		domain.Customer{ID: "c-1", Name: "Maria Oliveira", Email: "maria@example.com", Phone: "+55 11 98888-1234", Type: domain.CustomerIndividual},
		domain.Customer{ID: "c-2", Name: "Joao Santos", Email: "joao@example.com", Phone: "+55 21 97777-5678", Type: domain.CustomerIndividual},
		domain.Customer{ID: "c-3", Name: "Moda Urbana LTDA", Email: "compras@modaurbana.example.com", Phone: "+55 11 3333-9090", Type: domain.CustomerBusiness},
	)
}

func TestCustomerServiceSearchMatchesPartialName(t *testing.T) {
	svc := newTestCustomerService(t, testCustomers())

	results, err := svc.SearchCustomers(context.Background(), "mari")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) == 0 {
		t.Fatal("expected at least one match")
	}
	if results[0].Name != "Maria Oliveira" {
		t.Fatalf("expected Maria first, got %s", results[0].Name)
	}
}

func TestCustomerServiceSearchEmptyQueryReturnsAll(t *testing.T) {
	svc := newTestCustomerService(t, testCustomers())

	results, err := svc.SearchCustomers(context.Background(), "   ")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected full directory, got %d", len(results))
	}
}

func TestCustomerServiceListByType(t *testing.T) {
	svc := newTestCustomerService(t, testCustomers())

	business, err := svc.ListCustomersByType(context.Background(), domain.CustomerBusiness)
	if err != nil {
		t.Fatalf("list by type: %v", err)
	}
	if len(business) != 1 || business[0].ID != "c-3" {
		t.Fatalf("unexpected business customers: %+v", business)
	}

	if _, err := svc.ListCustomersByType(context.Background(), "vip"); !errors.Is(err, ErrCustomerInvalidInput) {
		t.Fatalf("expected invalid input for unknown type, got %v", err)
	}
}

func TestCustomerServiceCreateValidates(t *testing.T) {
	svc := newTestCustomerService(t, testCustomers())
	ctx := context.Background()

	cases := []CreateCustomerCommand{
		{Name: "", Phone: "+55 11 90000-0000", Type: domain.CustomerIndividual},
		{Name: "Ana Lima", Phone: "", Type: domain.CustomerIndividual},
		{Name: "Ana Lima", Phone: "+55 11 90000-0000", Type: "vip"},
		{Name: "Ana Lima", Phone: "+55 11 90000-0000", Type: domain.CustomerIndividual, Email: "not-an-email"},
	}
	for i, cmd := range cases {
		if _, err := svc.CreateCustomer(ctx, cmd); !errors.Is(err, ErrCustomerInvalidInput) {
			t.Fatalf("case %d: expected invalid input, got %v", i, err)
		}
	}
}

func TestCustomerServiceCreateSynthesisesAvatar(t *testing.T) {
	svc := newTestCustomerService(t, testCustomers())

	customer, err := svc.CreateCustomer(context.Background(), CreateCustomerCommand{
		Name:  "Ana Lima",
		Phone: "+55 11 90000-0000",
		Type:  domain.CustomerIndividual,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if customer.ID == "" {
		t.Fatal("expected generated id")
	}
	if !strings.Contains(customer.Avatar, "Ana+Lima") {
		t.Fatalf("expected avatar synthesised from name, got %s", customer.Avatar)
	}
	if customer.CreatedAt.IsZero() {
		t.Fatal("expected created timestamp")
	}
}

func TestCustomerServiceSelectionLifecycle(t *testing.T) {
	svc := newTestCustomerService(t, testCustomers())
	ctx := context.Background()

	selected, err := svc.SelectedCustomer(ctx, "reg-1")
	if err != nil {
		t.Fatalf("selected: %v", err)
	}
	if selected != nil {
		t.Fatalf("expected no selection, got %+v", selected)
	}

	customer, err := svc.SelectCustomer(ctx, "reg-1", "c-1")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if customer.ID != "c-1" {
		t.Fatalf("expected c-1, got %s", customer.ID)
	}

	selected, err = svc.SelectedCustomer(ctx, "reg-1")
	if err != nil {
		t.Fatalf("selected: %v", err)
	}
	if selected == nil || selected.ID != "c-1" {
		t.Fatalf("expected c-1 selected, got %+v", selected)
	}

	// Selections are register scoped.
	other, err := svc.SelectedCustomer(ctx, "reg-2")
	if err != nil {
		t.Fatalf("selected reg-2: %v", err)
	}
	if other != nil {
		t.Fatalf("expected no selection on reg-2, got %+v", other)
	}

	if err := svc.ClearSelection(ctx, "reg-1"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	selected, err = svc.SelectedCustomer(ctx, "reg-1")
	if err != nil {
		t.Fatalf("selected after clear: %v", err)
	}
	if selected != nil {
		t.Fatalf("expected selection cleared, got %+v", selected)
	}
}

func TestCustomerServiceRestoreSelectionBypassesDirectory(t *testing.T) {
	svc := newTestCustomerService(t, testCustomers())
	ctx := context.Background()

	if _, err := svc.SelectCustomer(ctx, "reg-1", "c-1"); err != nil {
		t.Fatalf("select: %v", err)
	}

	snapshot := domain.Customer{ID: "c-gone", Name: "Beatriz Antiga", Phone: "+55 11 95555-0000", Type: domain.CustomerIndividual}
	if err := svc.RestoreSelection(ctx, "reg-1", snapshot); err != nil {
		t.Fatalf("restore: %v", err)
	}

	selected, err := svc.SelectedCustomer(ctx, "reg-1")
	if err != nil {
		t.Fatalf("selected: %v", err)
	}
	if selected == nil || selected.ID != "c-gone" || selected.Name != "Beatriz Antiga" {
		t.Fatalf("expected restored snapshot, got %+v", selected)
	}

	if err := svc.RestoreSelection(ctx, "", snapshot); !errors.Is(err, ErrCustomerInvalidInput) {
		t.Fatalf("expected invalid input for empty register, got %v", err)
	}
	if err := svc.RestoreSelection(ctx, "reg-1", domain.Customer{}); !errors.Is(err, ErrCustomerInvalidInput) {
		t.Fatalf("expected invalid input for id-less snapshot, got %v", err)
	}
}

func TestCustomerServiceSelectUnknownCustomer(t *testing.T) {
	svc := newTestCustomerService(t, testCustomers())

	_, err := svc.SelectCustomer(context.Background(), "reg-1", "ghost")
	if !errors.Is(err, ErrCustomerNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
