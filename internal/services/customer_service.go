package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/oklog/ulid/v2"
	"github.com/sahilm/fuzzy"

	domain "github.com/lojaviva/pos-api/internal/domain"
	"github.com/lojaviva/pos-api/internal/repositories"
)

var (
	errCustomerRepositoryRequired = errors.New("customer service: repository is required")
	errCustomerClockRequired      = errors.New("customer service: clock is required")
)

// ErrCustomerInvalidInput indicates the caller supplied invalid input.
var ErrCustomerInvalidInput = errors.New("customer service: invalid input")

// ErrCustomerNotFound indicates the requested customer does not exist.
var ErrCustomerNotFound = errors.New("customer service: not found")

// ErrCustomerConflict indicates a customer with the same identity already exists.
var ErrCustomerConflict = errors.New("customer service: conflict")

// ErrCustomerUnavailable indicates the customer directory cannot be reached.
var ErrCustomerUnavailable = errors.New("customer service: unavailable")

// CustomerServiceDeps wires the repository and id/clock hooks for customer operations.
type CustomerServiceDeps struct {
	Repository  repositories.CustomerRepository
	Clock       func() time.Time
	IDGenerator func() string
	Logger      func(context.Context, string, map[string]any)
}

type customerService struct {
	repo     repositories.CustomerRepository
	now      func() time.Time
	newID    func() string
	logger   func(context.Context, string, map[string]any)
	validate *validator.Validate

	mu       sync.Mutex
	selected map[string]domain.Customer
}

// NewCustomerService constructs a CustomerService enforcing dependency validation.
func NewCustomerService(deps CustomerServiceDeps) (CustomerService, error) {
	if deps.Repository == nil {
		return nil, errCustomerRepositoryRequired
	}
	if deps.Clock == nil {
		return nil, errCustomerClockRequired
	}

	idGen := deps.IDGenerator
	if idGen == nil {
		idGen = func() string { return ulid.Make().String() }
	}

	logger := deps.Logger
	if logger == nil {
		logger = func(context.Context, string, map[string]any) {}
	}

	service := &customerService{
		repo:     deps.Repository,
		now:      func() time.Time { return deps.Clock().UTC() },
		newID:    idGen,
		logger:   logger,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		selected: make(map[string]domain.Customer),
	}
	return service, nil
}

// ListCustomers returns the full directory ordered by name.
func (s *customerService) ListCustomers(ctx context.Context) ([]Customer, error) {
	customers, err := s.repo.List(ctx)
	if err != nil {
		return nil, s.translateRepoError(err)
	}
	sort.Slice(customers, func(i, j int) bool { return customers[i].Name < customers[j].Name })
	return customers, nil
}

// SearchCustomers fuzzy-matches the query against name, email, phone, and
// tax id. An empty query returns the full directory.
func (s *customerService) SearchCustomers(ctx context.Context, query string) ([]Customer, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return s.ListCustomers(ctx)
	}

	customers, err := s.repo.List(ctx)
	if err != nil {
		return nil, s.translateRepoError(err)
	}

	haystack := make([]string, len(customers))
	for i, c := range customers {
		haystack[i] = strings.ToLower(strings.Join([]string{c.Name, c.Email, c.Phone, c.TaxID}, " "))
	}

	matches := fuzzy.Find(strings.ToLower(trimmed), haystack)
	results := make([]Customer, 0, len(matches))
	for _, match := range matches {
		results = append(results, customers[match.Index])
	}
	return results, nil
}

// GetCustomer fetches a single customer by id.
func (s *customerService) GetCustomer(ctx context.Context, customerID string) (Customer, error) {
	id := strings.TrimSpace(customerID)
	if id == "" {
		return Customer{}, ErrCustomerInvalidInput
	}

	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return Customer{}, s.translateRepoError(err)
	}
	return customer, nil
}

// ListCustomersByType filters the directory by customer type.
func (s *customerService) ListCustomersByType(ctx context.Context, customerType domain.CustomerType) ([]Customer, error) {
	switch customerType {
	case domain.CustomerIndividual, domain.CustomerBusiness:
	default:
		return nil, fmt.Errorf("%w: unknown customer type %q", ErrCustomerInvalidInput, customerType)
	}

	customers, err := s.repo.List(ctx)
	if err != nil {
		return nil, s.translateRepoError(err)
	}

	filtered := make([]Customer, 0, len(customers))
	for _, c := range customers {
		if c.Type == customerType {
			filtered = append(filtered, c)
		}
	}
	sort.Slice(filtered, func(i, j int) bool { return filtered[i].Name < filtered[j].Name })
	return filtered, nil
}

// CreateCustomer validates the command and registers a new customer. The
// avatar is synthesised from the customer's name when none is supplied.
func (s *customerService) CreateCustomer(ctx context.Context, cmd CreateCustomerCommand) (Customer, error) {
	cmd.Name = strings.TrimSpace(cmd.Name)
	cmd.Email = strings.TrimSpace(cmd.Email)
	cmd.Phone = strings.TrimSpace(cmd.Phone)
	cmd.TaxID = strings.TrimSpace(cmd.TaxID)

	if err := s.validate.Struct(cmd); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
			field := validationErrs[0]
			return Customer{}, fmt.Errorf("%w: field %s failed on %s", ErrCustomerInvalidInput, field.Field(), field.Tag())
		}
		return Customer{}, ErrCustomerInvalidInput
	}

	customer := domain.Customer{
		ID:        s.newID(),
		Name:      cmd.Name,
		Avatar:    avatarURL(cmd.Name),
		Email:     cmd.Email,
		Phone:     cmd.Phone,
		TaxID:     cmd.TaxID,
		Type:      cmd.Type,
		CreatedAt: s.now(),
	}
	if cmd.Address != nil {
		address := *cmd.Address
		customer.Address = &address
	}

	saved, err := s.repo.Insert(ctx, customer)
	if err != nil {
		return Customer{}, s.translateRepoError(err)
	}

	s.logger(ctx, "customer created", map[string]any{
		"customer_id": saved.ID,
		"type":        string(saved.Type),
	})
	return saved, nil
}

// SelectCustomer binds the customer to the register for the current
// transaction. The selection lives in memory only.
func (s *customerService) SelectCustomer(ctx context.Context, registerID, customerID string) (Customer, error) {
	register := strings.TrimSpace(registerID)
	if register == "" {
		return Customer{}, ErrCustomerInvalidInput
	}

	customer, err := s.GetCustomer(ctx, customerID)
	if err != nil {
		return Customer{}, err
	}

	s.mu.Lock()
	s.selected[register] = customer
	s.mu.Unlock()
	return customer, nil
}

// RestoreSelection binds a customer snapshot to the register without
// consulting the directory. Stored snapshots must stay selectable even
// after the customer leaves the directory.
func (s *customerService) RestoreSelection(ctx context.Context, registerID string, customer Customer) error {
	register := strings.TrimSpace(registerID)
	if register == "" {
		return ErrCustomerInvalidInput
	}
	if strings.TrimSpace(customer.ID) == "" {
		return fmt.Errorf("%w: snapshot has no customer id", ErrCustomerInvalidInput)
	}

	s.mu.Lock()
	s.selected[register] = customer
	s.mu.Unlock()
	return nil
}

// SelectedCustomer returns the register's current selection, or nil when no
// customer is selected.
func (s *customerService) SelectedCustomer(ctx context.Context, registerID string) (*Customer, error) {
	register := strings.TrimSpace(registerID)
	if register == "" {
		return nil, ErrCustomerInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if customer, ok := s.selected[register]; ok {
		dup := customer
		return &dup, nil
	}
	return nil, nil
}

// ClearSelection detaches any customer from the register. Clearing an empty
// selection is a silent no-op.
func (s *customerService) ClearSelection(ctx context.Context, registerID string) error {
	register := strings.TrimSpace(registerID)
	if register == "" {
		return ErrCustomerInvalidInput
	}

	s.mu.Lock()
	delete(s.selected, register)
	s.mu.Unlock()
	return nil
}

func (s *customerService) translateRepoError(err error) error {
	if err == nil {
		return nil
	}
	var repoErr repositories.RepositoryError
	if errors.As(err, &repoErr) {
		switch {
		case repoErr.IsNotFound():
			return ErrCustomerNotFound
		case repoErr.IsConflict():
			return ErrCustomerConflict
		}
		return ErrCustomerUnavailable
	}
	return ErrCustomerUnavailable
}

func avatarURL(name string) string {
	return "https://ui-avatars.com/api/?name=" + url.QueryEscape(name) + "&background=random"
}
